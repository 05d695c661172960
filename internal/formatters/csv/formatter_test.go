// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"encoding/csv"
	"strings"
	"testing"

	"field-locator/internal/formatters"
	"field-locator/internal/matcher"
	"field-locator/internal/token"
)

func TestFormatRows(t *testing.T) {
	fields := []formatters.LocatedField{
		{
			Key:   "shipTo.zip",
			Value: "30301",
			Result: &matcher.Result{
				Page:  4,
				Rect:  token.Rect{X0: 1.5, Y0: 2.25, X1: 40, Y1: 12},
				Score: 0.7719,
			},
		},
		{Key: "shipTo.city, state", Value: "Atlanta, GA"},
	}

	f := NewFormatter()
	out, err := f.Format(fields, formatters.FormatterOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v\n%s", err, out)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}

	header := records[0]
	if header[0] != "Key" || header[8] != "Score" {
		t.Errorf("unexpected header: %v", header)
	}

	located := records[1]
	if located[2] != "true" || located[3] != "4" {
		t.Errorf("unexpected located row: %v", located)
	}
	if located[4] != "1.50" || located[8] != "0.7719" {
		t.Errorf("unexpected numeric formatting: %v", located)
	}

	// Commas in values must survive the round trip
	miss := records[2]
	if miss[0] != "shipTo.city, state" || miss[2] != "false" {
		t.Errorf("unexpected miss row: %v", miss)
	}
	if miss[3] != "" {
		t.Errorf("expected empty geometry for miss, got %v", miss)
	}
}

func TestFormatVerboseColumns(t *testing.T) {
	fields := []formatters.LocatedField{
		{
			Key:   "total",
			Value: "99",
			Result: &matcher.Result{
				Page:      1,
				Score:     0.8,
				Breakdown: matcher.Breakdown{Text: 0.72, LinePenalty: -0.01},
			},
		},
	}

	f := NewFormatter()
	out, err := f.Format(fields, formatters.FormatterOptions{Verbose: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	if len(records[0]) != 14 {
		t.Fatalf("expected 14 verbose columns, got %d", len(records[0]))
	}
	row := records[1]
	if row[9] != "0.7200" || row[13] != "-0.0100" {
		t.Errorf("unexpected breakdown columns: %v", row)
	}
}
