// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"field-locator/internal/formatters"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(fields []formatters.LocatedField, options formatters.FormatterOptions) (string, error) {
	var builder strings.Builder
	w := csv.NewWriter(&builder)

	headers := []string{"Key", "Value", "Located", "Page", "X0", "Y0", "X1", "Y1", "Score"}
	if options.Verbose {
		headers = append(headers, "Text", "Context", "Shape", "PageBias", "LinePenalty")
	}
	if err := w.Write(headers); err != nil {
		return "", fmt.Errorf("writing csv header: %w", err)
	}

	for _, field := range fields {
		if err := w.Write(f.row(field, options)); err != nil {
			return "", fmt.Errorf("writing csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}
	return builder.String(), nil
}

func (f *Formatter) row(field formatters.LocatedField, options formatters.FormatterOptions) []string {
	row := []string{field.Key, field.Value}
	if field.Result == nil {
		row = append(row, "false", "", "", "", "", "", "")
		if options.Verbose {
			row = append(row, "", "", "", "", "")
		}
		return row
	}

	r := field.Result
	row = append(row, "true",
		strconv.Itoa(r.Page),
		formatCoord(r.Rect.X0), formatCoord(r.Rect.Y0),
		formatCoord(r.Rect.X1), formatCoord(r.Rect.Y1),
		strconv.FormatFloat(r.Score, 'f', 4, 64))
	if options.Verbose {
		b := r.Breakdown
		row = append(row,
			strconv.FormatFloat(b.Text, 'f', 4, 64),
			strconv.FormatFloat(b.Context, 'f', 4, 64),
			strconv.FormatFloat(b.Shape, 'f', 4, 64),
			strconv.FormatFloat(b.PageBias, 'f', 4, 64),
			strconv.FormatFloat(b.LinePenalty, 'f', 4, 64))
	}
	return row
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func init() {
	formatters.Register(NewFormatter())
}
