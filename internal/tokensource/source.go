// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package tokensource routes a document file to the extractor that can
// produce positioned tokens from it: the PDF text layer, OCR over page
// images, or pre-extracted token JSON. The matching engine only ever sees
// the resulting token list; everything format-specific stays here.
package tokensource

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"

	"field-locator/internal/records"
	"field-locator/internal/token"
)

// Source produces positioned tokens from a document file.
type Source interface {
	// Name identifies the source in diagnostics.
	Name() string

	// Extract returns the document's tokens in a single shared coordinate
	// space. The engine sorts them; no ordering guarantee is required.
	Extract(path string) ([]token.Token, error)
}

// registry maps lowercase file extensions to constructors, filled by the
// extractor packages and by RegisterExt.
var registry = map[string]func() Source{}

// RegisterExt binds a file extension (with leading dot) to a source
// constructor. Later registrations win, which lets callers override the
// defaults.
func RegisterExt(ext string, ctor func() Source) {
	registry[strings.ToLower(ext)] = ctor
}

// ForFile returns a source able to handle the file, routed by extension.
func ForFile(path string) (Source, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ctor, ok := registry[ext]; ok {
		return ctor(), nil
	}
	return nil, fmt.Errorf("no token source for %q files", ext)
}

// tokensEnvelope is the OCR service's wire form.
type tokensEnvelope struct {
	Tokens []token.Token `json:"tokens"`
	Width  float64       `json:"width,omitempty"`
	Height float64       `json:"height,omitempty"`
}

// FromJSON decodes tokens from the OCR service envelope
// ({"tokens":[...], "width":..., "height":...}), a bare token array, or a
// wrapped DocAI payload with element geometry.
func FromJSON(r io.Reader) ([]token.Token, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading token payload: %w", err)
	}

	var bare []token.Token
	if err := sonic.Unmarshal(data, &bare); err == nil {
		return token.Filter(bare), nil
	}

	var env tokensEnvelope
	if err := sonic.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unrecognized token payload: %w", err)
	}
	if len(env.Tokens) == 0 {
		if toks, err := records.ParseDocAITokens(data); err == nil && len(toks) > 0 {
			return token.Filter(toks), nil
		}
	}
	return token.Filter(env.Tokens), nil
}

// JSONSource reads pre-extracted tokens from a JSON file.
type JSONSource struct{}

// NewJSONSource creates a token source for pre-extracted token files.
func NewJSONSource() *JSONSource { return &JSONSource{} }

func (s *JSONSource) Name() string { return "json-tokens" }

func (s *JSONSource) Extract(path string) ([]token.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening token file: %w", err)
	}
	defer f.Close()
	return FromJSON(f)
}

func init() {
	RegisterExt(".json", func() Source { return NewJSONSource() })
}
