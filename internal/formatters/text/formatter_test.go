// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"strings"
	"testing"

	"field-locator/internal/formatters"
	"field-locator/internal/matcher"
	"field-locator/internal/token"
)

func sampleFields() []formatters.LocatedField {
	return []formatters.LocatedField{
		{
			Key:   "customer.billTo.zip",
			Value: "90210",
			Result: &matcher.Result{
				Page:  2,
				Rect:  token.Rect{X0: 10, Y0: 20, X1: 60, Y1: 32},
				Score: 0.82,
				Breakdown: matcher.Breakdown{
					Text:    0.72,
					Context: 0.10,
				},
				Alternatives: []matcher.Candidate{
					{Page: 3, Rect: token.Rect{X0: 5, Y0: 5, X1: 50, Y1: 15}, Score: 0.61},
				},
			},
		},
		{Key: "customer.name", Value: "Acme Corp", Result: nil},
	}
}

func TestFormatBasic(t *testing.T) {
	f := NewFormatter()
	out, err := f.Format(sampleFields(), formatters.FormatterOptions{NoColor: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "customer.billTo.zip") {
		t.Error("expected located key in output")
	}
	if !strings.Contains(out, "page 2") {
		t.Error("expected page number in output")
	}
	if !strings.Contains(out, "[NOT FOUND]") {
		t.Error("expected miss marker for unlocated field")
	}
	if !strings.Contains(out, "Located 1 of 2 fields") {
		t.Errorf("expected summary line, got:\n%s", out)
	}
	// Alternatives are verbose-only
	if strings.Contains(out, "alt 1") {
		t.Error("alternatives should not appear without verbose")
	}
}

func TestFormatVerbose(t *testing.T) {
	f := NewFormatter()
	out, err := f.Format(sampleFields(), formatters.FormatterOptions{NoColor: true, Verbose: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "text=0.720") {
		t.Errorf("expected score breakdown, got:\n%s", out)
	}
	if !strings.Contains(out, "alt 1: page 3") {
		t.Errorf("expected alternative line, got:\n%s", out)
	}
}

func TestFormatEmpty(t *testing.T) {
	f := NewFormatter()
	out, err := f.Format(nil, formatters.FormatterOptions{NoColor: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "No fields to locate." {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestFormatterMetadata(t *testing.T) {
	f := NewFormatter()
	if f.Name() != "text" {
		t.Errorf("unexpected name %q", f.Name())
	}
	if f.FileExtension() != ".txt" {
		t.Errorf("unexpected extension %q", f.FileExtension())
	}
}
