// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package matcher

import (
	"math"

	"field-locator/internal/token"
)

// tokenGrid is a uniform-cell spatial index over one page's tokens, built
// once per page and reused across every window evaluated on it. Tokens are
// bucketed by bounding-box center; a context query scans only the cells the
// expanded span rectangle touches instead of the whole page.
type tokenGrid struct {
	cell       float64
	minX, minY float64
	cols, rows int
	cells      [][]int
	toks       []token.Token
	words      [][]string
}

// newTokenGrid indexes tokens with a cell size derived from the context
// radius, so a radius query touches a small constant number of cells.
// words holds each token's normalized words, parallel to toks.
func newTokenGrid(toks []token.Token, words [][]string, radius float64) *tokenGrid {
	g := &tokenGrid{cell: math.Max(radius, 1), toks: toks, words: words}
	if len(toks) == 0 {
		return g
	}

	g.minX, g.minY = math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, t := range toks {
		cx, cy := t.Bounds().Center()
		g.minX = math.Min(g.minX, cx)
		g.minY = math.Min(g.minY, cy)
		maxX = math.Max(maxX, cx)
		maxY = math.Max(maxY, cy)
	}

	g.cols = int((maxX-g.minX)/g.cell) + 1
	g.rows = int((maxY-g.minY)/g.cell) + 1
	g.cells = make([][]int, g.cols*g.rows)

	for i, t := range toks {
		cx, cy := t.Bounds().Center()
		idx := g.cellIndex(cx, cy)
		g.cells[idx] = append(g.cells[idx], i)
	}
	return g
}

func (g *tokenGrid) cellIndex(x, y float64) int {
	col := clampInt(int((x-g.minX)/g.cell), 0, g.cols-1)
	row := clampInt(int((y-g.minY)/g.cell), 0, g.rows-1)
	return row*g.cols + col
}

// contextWords gathers the normalized words of every token whose center
// falls inside the span rectangle expanded by radius. The span's own tokens
// are not excluded; the duplication is harmless to downstream scoring.
func (g *tokenGrid) contextWords(span token.Rect, radius float64) []string {
	if len(g.toks) == 0 {
		return nil
	}

	area := span.Expand(radius)
	c0 := clampInt(int((area.X0-g.minX)/g.cell), 0, g.cols-1)
	c1 := clampInt(int((area.X1-g.minX)/g.cell), 0, g.cols-1)
	r0 := clampInt(int((area.Y0-g.minY)/g.cell), 0, g.rows-1)
	r1 := clampInt(int((area.Y1-g.minY)/g.cell), 0, g.rows-1)

	var out []string
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			for _, i := range g.cells[row*g.cols+col] {
				cx, cy := g.toks[i].Bounds().Center()
				if area.Contains(cx, cy) {
					out = append(out, g.words[i]...)
				}
			}
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
