// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"fmt"

	"github.com/bytedance/sonic"

	"field-locator/internal/formatters"
	"field-locator/internal/matcher"
)

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Structured JSON output for programmatic consumption"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

type fieldResult struct {
	Key     string          `json:"key"`
	Value   string          `json:"value"`
	Located bool            `json:"located"`
	Result  *matcher.Result `json:"result,omitempty"`
}

type response struct {
	Fields  []fieldResult `json:"fields"`
	Located int           `json:"located"`
	Total   int           `json:"total"`
}

func (f *Formatter) Format(fields []formatters.LocatedField, options formatters.FormatterOptions) (string, error) {
	resp := response{Fields: make([]fieldResult, 0, len(fields)), Total: len(fields)}
	for _, field := range fields {
		fr := fieldResult{
			Key:     field.Key,
			Value:   field.Value,
			Located: field.Result != nil,
			Result:  field.Result,
		}
		// Alternatives and breakdowns are verbose-only detail
		if !options.Verbose && fr.Result != nil {
			trimmed := *fr.Result
			trimmed.Alternatives = nil
			fr.Result = &trimmed
		}
		if fr.Located {
			resp.Located++
		}
		resp.Fields = append(resp.Fields, fr)
	}

	data, err := sonic.ConfigDefault.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("formatting json: %w", err)
	}
	return string(data), nil
}

func init() {
	formatters.Register(NewFormatter())
}
