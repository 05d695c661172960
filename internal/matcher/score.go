// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package matcher

import (
	"regexp"
	"strings"

	"field-locator/internal/hints"
	"field-locator/internal/normalize"
	"field-locator/internal/similarity"
	"field-locator/internal/token"
)

// Weights are the scoring constants of the pipeline. Text similarity
// dominates; context and shape contribute secondary disambiguation signal.
// The defaults are tuned, not derived, so they are configuration rather
// than hardcoded magic numbers.
type Weights struct {
	Text     float64 `yaml:"text" json:"text"`
	Context  float64 `yaml:"context" json:"context"`
	Shape    float64 `yaml:"shape" json:"shape"`
	PageBias float64 `yaml:"page_bias" json:"page_bias"`

	// LinePenaltyScale multiplies the raw vertical-scatter penalty;
	// LinePenaltyCap bounds the scaled penalty so it cannot dominate.
	LinePenaltyScale float64 `yaml:"line_penalty_scale" json:"line_penalty_scale"`
	LinePenaltyCap   float64 `yaml:"line_penalty_cap" json:"line_penalty_cap"`

	// AcceptThreshold is the minimum score for a value-only match;
	// KeyAcceptThreshold applies when key-aware matching is attempted
	// (with a fallback to value-only below that bar).
	AcceptThreshold    float64 `yaml:"accept_threshold" json:"accept_threshold"`
	KeyAcceptThreshold float64 `yaml:"key_accept_threshold" json:"key_accept_threshold"`

	// FirstTokenGate is the minimum first-token similarity for scoring a
	// length-1 window in non-numeric mode.
	FirstTokenGate float64 `yaml:"first_token_gate" json:"first_token_gate"`
}

// DefaultWeights returns the standard scoring constants.
func DefaultWeights() Weights {
	return Weights{
		Text:               0.72,
		Context:            0.20,
		Shape:              0.08,
		PageBias:           0.05,
		LinePenaltyScale:   0.12,
		LinePenaltyCap:     0.25,
		AcceptThreshold:    0.55,
		KeyAcceptThreshold: 0.58,
		FirstTokenGate:     0.6,
	}
}

// Breakdown records each weighted contribution to the final score; the
// fields sum to the score. LinePenalty is recorded as a negative
// contribution. Diagnostics only: it never affects correctness.
type Breakdown struct {
	Text        float64 `json:"text"`
	Context     float64 `json:"context"`
	Shape       float64 `json:"shape"`
	PageBias    float64 `json:"page_bias"`
	LinePenalty float64 `json:"line_penalty"`
}

// numericValuePattern decides comparison mode: values consisting solely of
// digits, currency punctuation, and whitespace compare digit-to-digit.
var numericValuePattern = regexp.MustCompile(`^[0-9\s.,+\-$€£¥#]+$`)

// zipPattern recognizes ZIP-like values for the shape bonus.
var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// addressContextWords are neighborhood words that mark address-like
// surroundings for the shape heuristic.
var addressContextWords = map[string]bool{
	"address": true, "street": true, "road": true, "avenue": true,
	"boulevard": true, "lane": true, "drive": true, "suite": true,
	"apartment": true, "zip": true, "postal": true, "city": true,
	"state": true, "po": true, "box": true,
}

func looksNumeric(value string) bool {
	value = strings.TrimSpace(value)
	return value != "" && numericValuePattern.MatchString(value) && strings.ContainsAny(value, "0123456789")
}

// scoreSpan computes the blended score for the span pg.toks[start:end].
func scoreSpan(q query, pg *pageTokens, start, end int, onPreferred bool, opts Options) (float64, Breakdown) {
	w := opts.Weights
	span := pg.toks[start:end]
	rect := token.UnionBounds(span)
	ctxWords := pg.grid.contextWords(rect, opts.ContextRadius)

	var sText float64
	if q.numMode {
		sText = similarity.LevenshteinRatio(spanNumeric(span), q.numeric)
	} else {
		spanWords := spanWordsAt(pg, start, end)
		lev := similarity.LevenshteinRatio(strings.Join(spanWords, " "), q.text)
		cov := similarity.Coverage(q.words, spanWords)
		sText = max(lev, cov)
	}

	sCtx := hints.ContextScore(q.tags, ctxWords)
	sShape := shapeBonus(ctxWords, q.numMode, q.raw)
	pen := min(w.LinePenaltyCap, linePenalty(span)*w.LinePenaltyScale)

	var sPage float64
	if onPreferred {
		sPage = w.PageBias
	}

	bd := Breakdown{
		Text:        sText * w.Text,
		Context:     sCtx * w.Context,
		Shape:       sShape * w.Shape,
		PageBias:    sPage,
		LinePenalty: -pen,
	}
	score := bd.Text + bd.Context + bd.Shape + bd.PageBias + bd.LinePenalty
	return score, bd
}

// spanWordsAt concatenates the precomputed normalized words of
// pg.toks[start:end].
func spanWordsAt(pg *pageTokens, start, end int) []string {
	var out []string
	for i := start; i < end; i++ {
		out = append(out, pg.words[i]...)
	}
	return out
}

func spanNumeric(span []token.Token) string {
	var b strings.Builder
	for _, t := range span {
		b.WriteString(normalize.Numeric(t.Text))
	}
	return b.String()
}

// linePenalty measures the vertical scatter of a span's token centers
// relative to the average token height. Zero for single tokens and
// perfectly aligned spans; grows as the span straddles lines.
func linePenalty(span []token.Token) float64 {
	if len(span) < 2 {
		return 0
	}

	minC, maxC := 0.0, 0.0
	sumH := 0.0
	for i, t := range span {
		c := (t.Y0 + t.Y1) / 2
		if i == 0 {
			minC, maxC = c, c
		} else {
			minC = min(minC, c)
			maxC = max(maxC, c)
		}
		sumH += t.Y1 - t.Y0
	}

	avgH := sumH / float64(len(span))
	if avgH <= 0 {
		return 0
	}

	spread := maxC - minC
	return max(0, spread-0.6*avgH) / avgH
}

// shapeBonus rewards geometric+semantic agreement, in [0,1] before
// weighting: a ZIP-shaped value sitting in address-like context is at the
// maximum, any non-numeric value near address context earns a smaller
// bonus. This disambiguates numeric values that are indistinguishable by
// text alone.
func shapeBonus(ctxWords []string, numericMode bool, rawValue string) float64 {
	near := false
	for _, w := range ctxWords {
		if addressContextWords[w] {
			near = true
			break
		}
	}
	if !near {
		return 0
	}
	if zipPattern.MatchString(strings.TrimSpace(rawValue)) {
		return 1.0
	}
	if !numericMode {
		return 0.4
	}
	return 0
}
