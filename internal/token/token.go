// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"math"
	"strings"
)

// Token is one lexical unit of document text with known geometry. Pages are
// 1-based; coordinates live in a single document-wide space (pixels or
// points) shared with whatever produced them.
type Token struct {
	Page int     `json:"page"`
	Text string  `json:"text"`
	X0   float64 `json:"x0"`
	Y0   float64 `json:"y0"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
}

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Bounds returns the token's bounding rectangle.
func (t Token) Bounds() Rect {
	return Rect{X0: t.X0, Y0: t.Y0, X1: t.X1, Y1: t.Y1}
}

// IsValid reports whether the token has non-empty text and well-formed,
// finite geometry. Malformed tokens are the producer's responsibility to
// filter; this check lets callers skip them defensively instead of
// propagating NaN through scoring.
func (t Token) IsValid() bool {
	if strings.TrimSpace(t.Text) == "" || t.Page < 1 {
		return false
	}
	return t.Bounds().IsValid()
}

// IsValid reports whether the rectangle is finite and non-inverted.
func (r Rect) IsValid() bool {
	for _, v := range [4]float64{r.X0, r.Y0, r.X1, r.Y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.X1 >= r.X0 && r.Y1 >= r.Y0
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Area returns the rectangle's area.
func (r Rect) Area() float64 { return r.Width() * r.Height() }

// Center returns the rectangle's center point.
func (r Rect) Center() (float64, float64) {
	return (r.X0 + r.X1) / 2, (r.Y0 + r.Y1) / 2
}

// Union returns the smallest rectangle covering both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		X0: math.Min(r.X0, other.X0),
		Y0: math.Min(r.Y0, other.Y0),
		X1: math.Max(r.X1, other.X1),
		Y1: math.Max(r.Y1, other.Y1),
	}
}

// Expand grows the rectangle by margin on every side.
func (r Rect) Expand(margin float64) Rect {
	return Rect{X0: r.X0 - margin, Y0: r.Y0 - margin, X1: r.X1 + margin, Y1: r.Y1 + margin}
}

// Contains reports whether the point (x, y) falls inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// OverlapRatio returns intersection area divided by the smaller rectangle's
// area, in [0,1]. Degenerate rectangles overlap nothing.
func (r Rect) OverlapRatio(other Rect) float64 {
	ix0 := math.Max(r.X0, other.X0)
	iy0 := math.Max(r.Y0, other.Y0)
	ix1 := math.Min(r.X1, other.X1)
	iy1 := math.Min(r.Y1, other.Y1)
	if ix1 <= ix0 || iy1 <= iy0 {
		return 0
	}
	smaller := math.Min(r.Area(), other.Area())
	if smaller <= 0 {
		return 0
	}
	return (ix1 - ix0) * (iy1 - iy0) / smaller
}

// UnionBounds returns the union bounding rectangle of a token span. Zero
// rectangle for an empty span.
func UnionBounds(span []Token) Rect {
	if len(span) == 0 {
		return Rect{}
	}
	r := span[0].Bounds()
	for _, t := range span[1:] {
		r = r.Union(t.Bounds())
	}
	return r
}

// Filter returns tokens that pass IsValid, preserving order.
func Filter(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.IsValid() {
			out = append(out, t)
		}
	}
	return out
}
