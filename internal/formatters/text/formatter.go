// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"field-locator/internal/formatters"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(fields []formatters.LocatedField, options formatters.FormatterOptions) (string, error) {
	// Disable colors if requested
	if options.NoColor {
		color.NoColor = true
	}

	if len(fields) == 0 {
		return "No fields to locate.", nil
	}

	var builder strings.Builder
	located := 0
	for _, field := range fields {
		f.appendField(&builder, field, options)
		if field.Result != nil {
			located++
		}
	}

	builder.WriteString("\n")
	builder.WriteString(f.colors["white"].Sprintf("Located %d of %d fields\n", located, len(fields)))
	return builder.String(), nil
}

func (f *Formatter) appendField(builder *strings.Builder, field formatters.LocatedField, options formatters.FormatterOptions) {
	key := field.Key
	if key == "" {
		key = "(value only)"
	}

	if field.Result == nil {
		builder.WriteString(fmt.Sprintf("%s %s = %q\n",
			f.colors["red"].Sprint("[NOT FOUND]"), key, field.Value))
		return
	}

	r := field.Result
	builder.WriteString(fmt.Sprintf("%s %s = %q\n",
		f.scoreColor(r.Score).Sprintf("[%.2f]", r.Score), key, field.Value))
	builder.WriteString(fmt.Sprintf("  page %d  rect (%.1f, %.1f) - (%.1f, %.1f)\n",
		r.Page, r.Rect.X0, r.Rect.Y0, r.Rect.X1, r.Rect.Y1))

	if options.Verbose {
		b := r.Breakdown
		builder.WriteString(fmt.Sprintf("  text=%.3f context=%.3f shape=%.3f page=%.3f line=%.3f\n",
			b.Text, b.Context, b.Shape, b.PageBias, b.LinePenalty))
		for i, alt := range r.Alternatives {
			builder.WriteString(fmt.Sprintf("  alt %d: page %d rect (%.1f, %.1f) - (%.1f, %.1f) score %.2f\n",
				i+1, alt.Page, alt.Rect.X0, alt.Rect.Y0, alt.Rect.X1, alt.Rect.Y1, alt.Score))
		}
	}
}

// scoreColor maps a match score onto a traffic-light color
func (f *Formatter) scoreColor(score float64) *color.Color {
	switch {
	case score >= 0.8:
		return f.colors["green"]
	case score >= 0.65:
		return f.colors["yellow"]
	default:
		return f.colors["cyan"]
	}
}

func init() {
	formatters.Register(NewFormatter())
}
