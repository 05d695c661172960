// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"math"
	"testing"
)

func TestRectUnion(t *testing.T) {
	a := Rect{X0: 0, Y0: 0, X1: 10, Y1: 10}
	b := Rect{X0: 5, Y0: -2, X1: 20, Y1: 8}
	u := a.Union(b)
	if u.X0 != 0 || u.Y0 != -2 || u.X1 != 20 || u.Y1 != 10 {
		t.Errorf("unexpected union: %+v", u)
	}
}

func TestRectOverlapRatio(t *testing.T) {
	cases := []struct {
		name string
		a, b Rect
		want float64
	}{
		{"identical", Rect{0, 0, 10, 10}, Rect{0, 0, 10, 10}, 1.0},
		{"disjoint", Rect{0, 0, 10, 10}, Rect{20, 20, 30, 30}, 0.0},
		{"touching edges", Rect{0, 0, 10, 10}, Rect{10, 0, 20, 10}, 0.0},
		{"half of smaller", Rect{0, 0, 10, 10}, Rect{5, 0, 15, 10}, 0.5},
		{"contained", Rect{0, 0, 100, 100}, Rect{10, 10, 20, 20}, 1.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.a.OverlapRatio(tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("OverlapRatio = %v, want %v", got, tc.want)
			}
			// Symmetric by construction.
			if rev := tc.b.OverlapRatio(tc.a); math.Abs(rev-got) > 1e-9 {
				t.Errorf("OverlapRatio not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestTokenIsValid(t *testing.T) {
	cases := []struct {
		name  string
		tok   Token
		valid bool
	}{
		{"well formed", Token{Page: 1, Text: "abc", X0: 0, Y0: 0, X1: 5, Y1: 5}, true},
		{"blank text", Token{Page: 1, Text: "   ", X0: 0, Y0: 0, X1: 5, Y1: 5}, false},
		{"zero page", Token{Page: 0, Text: "abc", X1: 5, Y1: 5}, false},
		{"inverted box", Token{Page: 1, Text: "abc", X0: 5, Y0: 0, X1: 0, Y1: 5}, false},
		{"nan coordinate", Token{Page: 1, Text: "abc", X0: math.NaN(), X1: 5, Y1: 5}, false},
		{"zero area point", Token{Page: 1, Text: "abc"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tok.IsValid(); got != tc.valid {
				t.Errorf("IsValid = %v, want %v", got, tc.valid)
			}
		})
	}
}

func TestUnionBounds(t *testing.T) {
	span := []Token{
		{Page: 1, Text: "Bill", X0: 0, Y0: 0, X1: 20, Y1: 10},
		{Page: 1, Text: "To:", X0: 22, Y0: 0, X1: 40, Y1: 10},
	}
	r := UnionBounds(span)
	want := Rect{X0: 0, Y0: 0, X1: 40, Y1: 10}
	if r != want {
		t.Errorf("UnionBounds = %+v, want %+v", r, want)
	}
	if z := UnionBounds(nil); z != (Rect{}) {
		t.Errorf("empty span should yield zero rect, got %+v", z)
	}
}

func TestFilterDropsMalformed(t *testing.T) {
	in := []Token{
		{Page: 1, Text: "keep", X1: 5, Y1: 5},
		{Page: 1, Text: "", X1: 5, Y1: 5},
		{Page: 1, Text: "bad", X0: math.Inf(1), X1: 5, Y1: 5},
	}
	out := Filter(in)
	if len(out) != 1 || out[0].Text != "keep" {
		t.Errorf("unexpected filter result: %+v", out)
	}
}
