// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"field-locator/internal/config"
	"field-locator/internal/help"
	"field-locator/internal/observability"
	"field-locator/internal/parallel"
	"field-locator/internal/records"
	"field-locator/internal/token"
	"field-locator/internal/tokensource"
	"field-locator/internal/tokensource/ocrimg"
	"field-locator/internal/tokensource/pdftext"
	"field-locator/internal/version"

	"field-locator/internal/formatters"
	_ "field-locator/internal/formatters/csv"
	_ "field-locator/internal/formatters/json"
	_ "field-locator/internal/formatters/text"

	"github.com/otiai10/gosseract/v2"
	"golang.org/x/term"
)

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string) *config.Config {
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg = config.LoadConfigOrDefault("")
	}
	return cfg
}

func main() {
	inputFile := flag.String("file", "", "Document to extract tokens from (.pdf or image)")
	tokensFile := flag.String("tokens", "", "JSON file with pre-extracted positioned tokens")
	fieldsFile := flag.String("fields", "", "JSON file listing key/value fields to locate")
	fieldKey := flag.String("key", "", "Single field key (used with --value)")
	fieldValue := flag.String("value", "", "Single field value to locate")
	outputFormat := flag.String("format", "", "Output format: text, json, csv (default: text)")
	outputFile := flag.String("output", "", "Path to output file (if not specified, output to stdout)")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	profileName := flag.String("profile", "", "Profile name to use from config file")
	listProfiles := flag.Bool("list-profiles", false, "List available profiles in config file")
	preferPages := flag.String("pages", "", "Comma-separated page numbers to prefer (soft bias)")
	numericHint := flag.Bool("numeric", false, "Force digit-only comparison for the value")
	contextRadius := flag.Float64("radius", 0, "Context radius around a candidate span")
	maxWindow := flag.Int("max-window", 0, "Maximum tokens per candidate span")
	workers := flag.Int("workers", 0, "Concurrent field lookups (default: number of CPUs)")
	verbose := flag.Bool("verbose", false, "Display score breakdowns and alternatives")
	debug := flag.Bool("debug", false, "Enable debug logging of extraction and matching steps")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	showHelp := flag.Bool("help", false, "Show help information")
	showVersion := flag.Bool("version", false, "Show version information")

	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	cfg := loadConfiguration(*configFile)

	if *showHelp {
		help.NewSystem(*noColor || cfg.Defaults.NoColor).ShowGeneralHelp()
		os.Exit(0)
	}

	if *listProfiles {
		printProfiles(cfg)
		os.Exit(0)
	}

	if *profileName != "" {
		if err := cfg.ApplyProfile(*profileName); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// Flags override config
	if *contextRadius > 0 {
		cfg.Matcher.ContextRadiusPx = *contextRadius
	}
	if *maxWindow > 0 {
		cfg.Matcher.MaxWindow = *maxWindow
	}
	format := cfg.Defaults.Format
	if *outputFormat != "" {
		format = *outputFormat
	}
	isVerbose := *verbose || cfg.Defaults.Verbose
	isDebug := *debug || cfg.Defaults.Debug
	disableColor := *noColor || cfg.Defaults.NoColor
	// Piped output never gets color codes
	if *outputFile != "" || !isTerminal(os.Stdout) {
		disableColor = true
	}

	var observer *observability.StandardObserver
	var debugObserver *observability.DebugObserver
	if isDebug {
		debugObserver = observability.NewDebugObserver(os.Stderr)
		observer = debugObserver.StandardObserver
	} else {
		observer = observability.NewStandardObserver(observability.ObservabilityOff, os.Stderr)
	}

	tokens, err := gatherTokens(*inputFile, *tokensFile, cfg, debugObserver)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fields, err := gatherFields(*fieldsFile, *fieldKey, *fieldValue)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(fields) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no fields to locate; use --fields or --key/--value")
		fmt.Fprintln(os.Stderr, "Run with --help for usage")
		os.Exit(1)
	}

	opts := cfg.MatcherOptions()
	opts.NumericHint = *numericHint
	if *preferPages != "" {
		pages, err := parsePages(*preferPages)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		opts.PreferredPages = append(opts.PreferredPages, pages...)
	}

	matches := parallel.LocateAll(fields, tokens, opts, *workers, observer)

	located := make([]formatters.LocatedField, len(fields))
	missing := 0
	for i, field := range fields {
		located[i] = formatters.LocatedField{
			Key:    field.Key,
			Value:  field.Value,
			Result: matches[i],
		}
		if matches[i] == nil {
			missing++
		}
	}

	output, err := formatters.Export(format, located, formatters.FormatterOptions{
		Verbose: isVerbose,
		NoColor: disableColor,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Println(output)
	}

	// Exit code 2 signals partial results for scripting
	if missing > 0 && missing == len(fields) {
		os.Exit(2)
	}
	os.Exit(0)
}

// gatherTokens loads tokens from a pre-extracted JSON file or extracts them
// from the input document
func gatherTokens(inputFile, tokensFile string, cfg *config.Config, debugObserver *observability.DebugObserver) ([]token.Token, error) {
	switch {
	case tokensFile != "" && inputFile != "":
		return nil, fmt.Errorf("--file and --tokens are mutually exclusive")
	case tokensFile != "":
		f, err := os.Open(tokensFile)
		if err != nil {
			return nil, fmt.Errorf("opening tokens file: %w", err)
		}
		defer f.Close()
		return tokensource.FromJSON(f)
	case inputFile != "":
		source, err := tokensource.ForFile(inputFile)
		if err != nil {
			return nil, err
		}
		configureSource(source, cfg)

		var complete func(bool, string)
		if debugObserver != nil {
			complete = debugObserver.StartStep(source.Name(), "extract_tokens", inputFile)
		}
		tokens, err := source.Extract(inputFile)
		if complete != nil {
			complete(err == nil, fmt.Sprintf("%d tokens", len(tokens)))
		}
		if err != nil {
			return nil, fmt.Errorf("extracting tokens from %s: %w", inputFile, err)
		}
		return tokens, nil
	default:
		return nil, fmt.Errorf("no input; use --file or --tokens")
	}
}

// configureSource applies config settings to the matched extractor
func configureSource(source tokensource.Source, cfg *config.Config) {
	switch s := source.(type) {
	case *ocrimg.Extractor:
		s.Language = cfg.OCR.Language
		s.PageSegMode = gosseract.PageSegMode(cfg.OCR.PSM)
		s.Binarize = cfg.OCR.Binarize
	case *pdftext.Extractor:
		s.MaxPages = cfg.PDF.MaxPages
	}
}

// gatherFields loads the fields list from JSON or builds one from the
// --key/--value pair
func gatherFields(fieldsFile, key, value string) ([]records.Field, error) {
	if fieldsFile != "" {
		data, err := os.ReadFile(fieldsFile)
		if err != nil {
			return nil, fmt.Errorf("reading fields file: %w", err)
		}
		fields, err := records.ParseFields(data)
		if err != nil {
			return nil, fmt.Errorf("parsing fields file: %w", err)
		}
		return fields, nil
	}
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	return []records.Field{{Key: key, Value: value}}, nil
}

func parsePages(list string) ([]int, error) {
	var pages []int
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid page number %q", part)
		}
		pages = append(pages, n)
	}
	return pages, nil
}

func printProfiles(cfg *config.Config) {
	profiles := cfg.ListProfiles()
	if len(profiles) == 0 {
		fmt.Println("No profiles defined in configuration file.")
		return
	}
	fmt.Println("Available profiles:")
	for _, name := range profiles {
		profile := cfg.GetProfile(name)
		if profile != nil && profile.Description != "" {
			fmt.Printf("  - %s: %s\n", name, profile.Description)
		} else {
			fmt.Printf("  - %s\n", name)
		}
	}
}

// isTerminal checks if the file descriptor is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
