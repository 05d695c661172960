// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package matcher

import (
	"math"
	"testing"

	"field-locator/internal/token"
)

func TestLinePenalty(t *testing.T) {
	cases := []struct {
		name string
		span []token.Token
		want float64
	}{
		{"single token", []token.Token{{Y0: 0, Y1: 10}}, 0},
		{"aligned pair", []token.Token{{Y0: 0, Y1: 10}, {Y0: 0, Y1: 10}}, 0},
		{"slight jitter within slack", []token.Token{{Y0: 0, Y1: 10}, {Y0: 3, Y1: 13}}, 0},
		// Centers 5 and 35: spread 30, height 10 -> (30-6)/10 = 2.4.
		{"two lines", []token.Token{{Y0: 0, Y1: 10}, {Y0: 30, Y1: 40}}, 2.4},
		{"zero height span", []token.Token{{Y0: 5, Y1: 5}, {Y0: 5, Y1: 5}}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := linePenalty(tc.span)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("linePenalty = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestShapeBonus(t *testing.T) {
	addressCtx := []string{"street", "address", "anytown"}
	plainCtx := []string{"invoice", "total"}

	cases := []struct {
		name    string
		ctx     []string
		numeric bool
		value   string
		want    float64
	}{
		{"zip near address", addressCtx, true, "90210", 1.0},
		{"zip+4 near address", addressCtx, true, "90210-1234", 1.0},
		{"zip away from address", plainCtx, true, "90210", 0},
		{"name near address", addressCtx, false, "Main Office", 0.4},
		{"numeric non-zip near address", addressCtx, true, "1234567", 0},
		{"no context", nil, true, "90210", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := shapeBonus(tc.ctx, tc.numeric, tc.value)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("shapeBonus = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDefaultWeightsTextDominates(t *testing.T) {
	w := DefaultWeights()
	if w.Text <= w.Context+w.Shape {
		t.Errorf("text weight %v should dominate context %v + shape %v", w.Text, w.Context, w.Shape)
	}
	if w.AcceptThreshold >= w.KeyAcceptThreshold {
		t.Errorf("key-aware threshold %v should be stricter than value-only %v", w.KeyAcceptThreshold, w.AcceptThreshold)
	}
}
