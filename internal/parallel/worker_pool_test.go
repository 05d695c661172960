// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"fmt"
	"testing"

	"field-locator/internal/matcher"
	"field-locator/internal/records"
	"field-locator/internal/token"
)

func poolTokens() []token.Token {
	return []token.Token{
		{Page: 1, Text: "Invoice", X0: 0, Y0: 0, X1: 50, Y1: 10},
		{Page: 1, Text: "12345", X0: 60, Y0: 0, X1: 100, Y1: 10},
		{Page: 2, Text: "Acme", X0: 0, Y0: 0, X1: 30, Y1: 10},
		{Page: 2, Text: "Corporation", X0: 35, Y0: 0, X1: 110, Y1: 10},
	}
}

func TestLocateAllOrderAndResults(t *testing.T) {
	fields := []records.Field{
		{Key: "invoice.number", Value: "12345"},
		{Key: "vendor.name", Value: "Acme Corporation"},
		{Key: "vendor.fax", Value: "does not appear anywhere"},
	}

	matches := LocateAll(fields, poolTokens(), matcher.Options{}, 3, nil)
	if len(matches) != 3 {
		t.Fatalf("expected 3 results, got %d", len(matches))
	}

	if matches[0] == nil || matches[0].Page != 1 {
		t.Errorf("expected invoice number on page 1, got %+v", matches[0])
	}
	if matches[1] == nil || matches[1].Page != 2 {
		t.Errorf("expected vendor name on page 2, got %+v", matches[1])
	}
	if matches[2] != nil {
		t.Errorf("expected miss for absent value, got %+v", matches[2])
	}
}

func TestLocateAllMatchesSequential(t *testing.T) {
	var fields []records.Field
	for i := 0; i < 20; i++ {
		fields = append(fields, records.Field{Key: "invoice.number", Value: "12345"})
		fields = append(fields, records.Field{Key: fmt.Sprintf("extra.%d", i), Value: "Acme Corporation"})
	}

	parallelMatches := LocateAll(fields, poolTokens(), matcher.Options{}, 4, nil)
	for i, field := range fields {
		want := matcher.MatchField(field.Key, field.Value, poolTokens(), matcher.Options{})
		got := parallelMatches[i]
		if (want == nil) != (got == nil) {
			t.Fatalf("field %d: parallel and sequential disagree on hit", i)
		}
		if want != nil && (want.Page != got.Page || want.Rect != got.Rect || want.Score != got.Score) {
			t.Errorf("field %d: parallel result diverged: %+v vs %+v", i, got, want)
		}
	}
}

func TestLocateAllEmptyFields(t *testing.T) {
	matches := LocateAll(nil, poolTokens(), matcher.Options{}, 2, nil)
	if len(matches) != 0 {
		t.Errorf("expected no results, got %d", len(matches))
	}
}

func TestWorkerPoolDefaultWorkers(t *testing.T) {
	pool := NewWorkerPool(0, nil)
	if pool.workers < 1 {
		t.Errorf("expected at least one worker, got %d", pool.workers)
	}
}
