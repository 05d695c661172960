// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package matcher

import (
	"testing"

	"field-locator/internal/token"
)

func TestRankDeduplicatesOverlaps(t *testing.T) {
	a := Candidate{Page: 1, Rect: token.Rect{X0: 0, Y0: 0, X1: 100, Y1: 20}, Score: 0.8}
	b := Candidate{Page: 1, Rect: token.Rect{X0: 2, Y0: 0, X1: 100, Y1: 20}, Score: 0.9}
	c := Candidate{Page: 1, Rect: token.Rect{X0: 0, Y0: 500, X1: 100, Y1: 520}, Score: 0.7}

	got := rank([]Candidate{a, b, c}, overlapDuplicateRatio, 5)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates after dedup, got %d", len(got))
	}
	if got[0].Score != 0.9 {
		t.Errorf("higher-scoring duplicate should win, got %v", got[0].Score)
	}
	if got[1].Score != 0.7 {
		t.Errorf("distinct candidate lost: %+v", got)
	}
}

func TestRankKeepsDifferentPagesApart(t *testing.T) {
	same := token.Rect{X0: 0, Y0: 0, X1: 50, Y1: 10}
	got := rank([]Candidate{
		{Page: 1, Rect: same, Score: 0.6},
		{Page: 2, Rect: same, Score: 0.5},
	}, overlapDuplicateRatio, 5)
	if len(got) != 2 {
		t.Fatalf("identical rects on different pages are not duplicates, got %d", len(got))
	}
}

func TestRankSortsAndTruncates(t *testing.T) {
	var in []Candidate
	for i := 0; i < 10; i++ {
		in = append(in, Candidate{
			Page:  1,
			Rect:  token.Rect{X0: float64(i * 1000), X1: float64(i*1000 + 50), Y1: 10},
			Score: float64(i) / 10,
		})
	}
	got := rank(in, overlapDuplicateRatio, 3)
	if len(got) != 3 {
		t.Fatalf("expected truncation to 3, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("not sorted descending at %d", i)
		}
	}
	if got[0].Score != 0.9 {
		t.Errorf("top score = %v, want 0.9", got[0].Score)
	}
}

func TestRankTiePreservesDiscoveryOrder(t *testing.T) {
	first := Candidate{Page: 1, Rect: token.Rect{X0: 0, X1: 10, Y1: 10}, Score: 0.5}
	second := Candidate{Page: 2, Rect: token.Rect{X0: 0, X1: 10, Y1: 10}, Score: 0.5}
	got := rank([]Candidate{first, second}, overlapDuplicateRatio, 5)
	if got[0].Page != 1 || got[1].Page != 2 {
		t.Errorf("equal scores must keep discovery order: %+v", got)
	}
}
