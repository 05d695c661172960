// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pdftext extracts positioned word tokens from a PDF's text layer.
// PDF text arrives as row-grouped character fragments in a bottom-up
// coordinate system; this package regroups fragments into words by
// horizontal gap and flips Y so tokens share the top-down space the OCR
// path produces.
package pdftext

import (
	"fmt"
	"sort"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"field-locator/internal/token"
	"field-locator/internal/tokensource"
)

// defaultMaxPages bounds processing for very large PDFs.
const defaultMaxPages = 50

// wordGapFactor: fragments further apart than this fraction of the font
// size start a new word.
const wordGapFactor = 0.25

// Extractor reads word tokens from the PDF text layer.
type Extractor struct {
	// MaxPages caps how many pages are processed; 0 means the default.
	MaxPages int
}

// New creates a PDF text-layer extractor with default limits.
func New() *Extractor {
	return &Extractor{MaxPages: defaultMaxPages}
}

func (e *Extractor) Name() string { return "pdf-text" }

// Extract returns the document's word tokens, one page at a time, in the
// shared top-down coordinate space (units are PDF points).
func (e *Extractor) Extract(path string) ([]token.Token, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pdf context: %w", err)
	}
	dims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("reading page dimensions: %w", err)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	pageCount := r.NumPage()
	maxPages := e.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	if pageCount > maxPages {
		pageCount = maxPages
	}

	var tokens []token.Token
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		p := r.Page(pageNum)
		if p.V.IsNull() {
			continue
		}

		pageHeight := 0.0
		if pageNum-1 < len(dims) {
			pageHeight = dims[pageNum-1].Height
		}

		rows, err := p.GetTextByRow()
		if err != nil {
			// Pages without a parsable text layer are skipped, not fatal.
			continue
		}
		for _, row := range rows {
			tokens = append(tokens, rowTokens(row.Content, pageNum, pageHeight)...)
		}
	}
	return token.Filter(tokens), nil
}

// rowTokens groups one row's character fragments into word tokens.
func rowTokens(fragments []pdf.Text, pageNum int, pageHeight float64) []token.Token {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]pdf.Text, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	var tokens []token.Token
	var word []pdf.Text
	flush := func() {
		if t, ok := wordToken(word, pageNum, pageHeight); ok {
			tokens = append(tokens, t)
		}
		word = word[:0]
	}

	for _, frag := range sorted {
		if len(word) > 0 {
			last := word[len(word)-1]
			gap := frag.X - (last.X + last.W)
			if frag.S == " " || gap > wordGapFactor*fontSize(last) {
				flush()
			}
		}
		if frag.S != " " {
			word = append(word, frag)
		}
	}
	flush()

	return tokens
}

// wordToken builds one token from consecutive fragments, flipping the PDF
// baseline coordinate into top-down space. The glyph box is approximated
// from the font size; exact ascent/descent metrics are not available here.
func wordToken(word []pdf.Text, pageNum int, pageHeight float64) (token.Token, bool) {
	if len(word) == 0 {
		return token.Token{}, false
	}

	text := ""
	x0 := word[0].X
	x1 := word[0].X + word[0].W
	size := 0.0
	baseline := word[0].Y
	for _, frag := range word {
		text += frag.S
		x1 = max(x1, frag.X+frag.W)
		size = max(size, fontSize(frag))
		baseline = min(baseline, frag.Y)
	}

	yBottom := pageHeight - baseline
	return token.Token{
		Page: pageNum,
		Text: text,
		X0:   x0,
		Y0:   yBottom - size,
		X1:   x1,
		Y1:   yBottom,
	}, true
}

func fontSize(t pdf.Text) float64 {
	if t.FontSize > 0 {
		return t.FontSize
	}
	return 10
}

func init() {
	tokensource.RegisterExt(".pdf", func() tokensource.Source { return New() })
}
