// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"field-locator/internal/matcher"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format  string `yaml:"format"`
		Verbose bool   `yaml:"verbose"`
		Debug   bool   `yaml:"debug"`
		NoColor bool   `yaml:"no_color"`
	} `yaml:"defaults"`

	// Matcher tuning
	Matcher struct {
		MaxWindow       int             `yaml:"max_window"`
		ContextRadiusPx float64         `yaml:"context_radius_px"`
		MaxAlternatives int             `yaml:"max_alternatives"`
		PreferredPages  []int           `yaml:"preferred_pages"`
		Weights         matcher.Weights `yaml:"weights"`
	} `yaml:"matcher"`

	// OCR settings for image inputs
	OCR struct {
		Language string `yaml:"language"`
		PSM      int    `yaml:"psm"`
		Binarize bool   `yaml:"binarize"`
	} `yaml:"ocr"`

	// PDF text extraction settings
	PDF struct {
		MaxPages int `yaml:"max_pages"`
	} `yaml:"pdf"`

	// Profiles for different matching scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile represents a matching profile with specific settings
type Profile struct {
	Format          string  `yaml:"format"`
	Verbose         bool    `yaml:"verbose"`
	Debug           bool    `yaml:"debug"`
	NoColor         bool    `yaml:"no_color"`
	MaxWindow       int     `yaml:"max_window"`
	ContextRadiusPx float64 `yaml:"context_radius_px"`
	MaxAlternatives int     `yaml:"max_alternatives"`
	PreferredPages  []int   `yaml:"preferred_pages"`
	Description     string  `yaml:"description"`
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	// Default configuration
	config := &Config{
		Profiles: make(map[string]Profile),
	}

	// Set default values
	config.Defaults.Format = "text"
	config.Defaults.Verbose = false
	config.Defaults.Debug = false
	config.Defaults.NoColor = false

	config.Matcher.MaxWindow = matcher.DefaultMaxWindow
	config.Matcher.ContextRadiusPx = matcher.DefaultContextRadius
	config.Matcher.MaxAlternatives = matcher.DefaultMaxAlternatives
	config.Matcher.Weights = matcher.DefaultWeights()

	config.OCR.Language = "eng"
	config.OCR.PSM = 6
	config.OCR.Binarize = false

	config.PDF.MaxPages = 50

	// Add a scanned-documents profile tuned for noisier OCR tokens
	config.Profiles["scanned"] = Profile{
		Format:          "text",
		MaxWindow:       matcher.DefaultMaxWindow,
		ContextRadiusPx: 220,
		MaxAlternatives: matcher.DefaultMaxAlternatives,
		Description:     "Wider context radius for OCR tokens with pixel geometry",
	}

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	// Read config file
	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML over the defaults so omitted keys keep their values
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Validate the configuration
	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadConfigOrDefault loads the configuration, falling back to defaults on
// any error
func LoadConfigOrDefault(configPath string) *Config {
	config, err := LoadConfig(configPath)
	if err != nil {
		config, _ = LoadConfig("")
	}
	return config
}

// ValidateConfig checks the configuration for invalid values
func ValidateConfig(config *Config) error {
	if config.Matcher.MaxWindow < 1 {
		return fmt.Errorf("matcher.max_window must be at least 1, got %d", config.Matcher.MaxWindow)
	}
	if config.Matcher.ContextRadiusPx < 0 {
		return fmt.Errorf("matcher.context_radius_px must not be negative, got %g", config.Matcher.ContextRadiusPx)
	}
	if config.Matcher.MaxAlternatives < 0 {
		return fmt.Errorf("matcher.max_alternatives must not be negative, got %d", config.Matcher.MaxAlternatives)
	}
	w := config.Matcher.Weights
	if w.AcceptThreshold < 0 || w.AcceptThreshold > 1 {
		return fmt.Errorf("matcher.weights.accept_threshold must be in [0,1], got %g", w.AcceptThreshold)
	}
	if w.KeyAcceptThreshold < 0 || w.KeyAcceptThreshold > 1 {
		return fmt.Errorf("matcher.weights.key_accept_threshold must be in [0,1], got %g", w.KeyAcceptThreshold)
	}
	if config.OCR.PSM < 0 || config.OCR.PSM > 13 {
		return fmt.Errorf("ocr.psm must be a tesseract mode in [0,13], got %d", config.OCR.PSM)
	}
	if config.PDF.MaxPages < 1 {
		return fmt.Errorf("pdf.max_pages must be at least 1, got %d", config.PDF.MaxPages)
	}
	return nil
}

// MatcherOptions builds matcher options from the configured values
func (c *Config) MatcherOptions() matcher.Options {
	weights := c.Matcher.Weights
	return matcher.Options{
		MaxWindow:       c.Matcher.MaxWindow,
		ContextRadius:   c.Matcher.ContextRadiusPx,
		MaxAlternatives: c.Matcher.MaxAlternatives,
		PreferredPages:  c.Matcher.PreferredPages,
		Weights:         &weights,
	}
}

// ApplyProfile overlays a named profile's settings onto the defaults
func (c *Config) ApplyProfile(name string) error {
	profile, exists := c.Profiles[name]
	if !exists {
		return fmt.Errorf("profile '%s' not found", name)
	}
	if profile.Format != "" {
		c.Defaults.Format = profile.Format
	}
	c.Defaults.Verbose = profile.Verbose || c.Defaults.Verbose
	c.Defaults.Debug = profile.Debug || c.Defaults.Debug
	c.Defaults.NoColor = profile.NoColor || c.Defaults.NoColor
	if profile.MaxWindow > 0 {
		c.Matcher.MaxWindow = profile.MaxWindow
	}
	if profile.ContextRadiusPx > 0 {
		c.Matcher.ContextRadiusPx = profile.ContextRadiusPx
	}
	if profile.MaxAlternatives > 0 {
		c.Matcher.MaxAlternatives = profile.MaxAlternatives
	}
	if len(profile.PreferredPages) > 0 {
		c.Matcher.PreferredPages = profile.PreferredPages
	}
	return nil
}

// ListProfiles returns a list of available profile names
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	// Check current directory first
	if fileExists("field-locator.yaml") {
		return "field-locator.yaml"
	}
	if fileExists("field-locator.yml") {
		return "field-locator.yml"
	}
	if fileExists(".field-locator.yaml") {
		return ".field-locator.yaml"
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	homeConfig := filepath.Join(home, ".field-locator.yaml")
	if fileExists(homeConfig) {
		return homeConfig
	}

	// Check XDG config directory
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	xdgConfigFile := filepath.Join(xdgConfig, "field-locator", "config.yaml")
	if fileExists(xdgConfigFile) {
		return xdgConfigFile
	}

	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return !info.IsDir()
}
