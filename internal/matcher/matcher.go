// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package matcher locates the true position of an extracted field value
// inside a document's positioned token stream. Given a candidate value and
// an optional semantic key, it slides bounded windows over each page's
// tokens in reading order, scores every span on text similarity, semantic
// context, shape heuristics, and geometry penalties, and returns the best
// span's bounding rectangle with a ranked list of runner-ups.
//
// The engine is synchronous and allocation-only: each call is a pure
// function of its inputs and is safe to invoke concurrently as long as the
// token slice is not mutated mid-call.
package matcher

import (
	"sort"
	"strings"

	"field-locator/internal/hints"
	"field-locator/internal/normalize"
	"field-locator/internal/similarity"
	"field-locator/internal/token"
)

// Options configures one match invocation. The zero value is usable; unset
// fields fall back to defaults.
type Options struct {
	// MaxWindow bounds how many tokens a candidate span may contain.
	MaxWindow int

	// ContextRadius is the pixel margin around a span within which tokens
	// contribute to the neighborhood vocabulary.
	ContextRadius float64

	// PreferredPages is a soft bias toward the upstream extractor's page
	// hint. It is never a filter: a higher-scoring match on another page
	// still wins.
	PreferredPages []int

	// NumericHint forces digit-only comparison regardless of what the
	// value looks like.
	NumericHint bool

	// MaxAlternatives bounds the runner-up list.
	MaxAlternatives int

	// Weights overrides the scoring constants. Nil means DefaultWeights.
	Weights *Weights
}

// Defaults applied when the corresponding Options field is zero.
const (
	DefaultMaxWindow       = 16
	DefaultContextRadius   = 140
	DefaultMaxAlternatives = 5
)

func (o Options) withDefaults() Options {
	if o.MaxWindow <= 0 {
		o.MaxWindow = DefaultMaxWindow
	}
	if o.ContextRadius <= 0 {
		o.ContextRadius = DefaultContextRadius
	}
	if o.MaxAlternatives <= 0 {
		o.MaxAlternatives = DefaultMaxAlternatives
	}
	if o.Weights == nil {
		w := DefaultWeights()
		o.Weights = &w
	}
	return o
}

// Candidate is one evaluated span with its score and breakdown.
type Candidate struct {
	Page      int        `json:"page"`
	Rect      token.Rect `json:"rect"`
	Score     float64    `json:"score"`
	Breakdown Breakdown  `json:"breakdown"`
}

// Result is a successful match: the winning span's page and union bounding
// rectangle, the blended score, and deduplicated runner-ups.
type Result struct {
	Page         int         `json:"page"`
	Rect         token.Rect  `json:"rect"`
	Score        float64     `json:"score"`
	Breakdown    Breakdown   `json:"breakdown"`
	Alternatives []Candidate `json:"alternatives,omitempty"`
}

// MatchField searches the token stream for the span best matching value.
// key names the value's semantic role (e.g. "customer.billTo.zip") and may
// be empty. Returns nil when no span reaches the acceptance threshold; that
// is the normal outcome for extractor errors and OCR noise, not an error.
//
// When key carries semantic hints the match is attempted key-aware first at
// the stricter threshold, falling back to value-only matching below that
// bar.
func MatchField(key, value string, tokens []token.Token, opts Options) *Result {
	opts = opts.withDefaults()
	if strings.TrimSpace(value) == "" {
		return nil
	}

	usable := token.Filter(tokens)
	if len(usable) == 0 {
		return nil
	}

	pages := paginate(usable, opts.ContextRadius)
	w := opts.Weights

	if tags := hints.KeyHints(key); len(tags) > 0 {
		if r := matchOnce(tags, value, pages, opts, w.KeyAcceptThreshold); r != nil {
			return r
		}
	}
	return matchOnce(nil, value, pages, opts, w.AcceptThreshold)
}

// LocateByValue is MatchField with no semantic key: pure value matching.
func LocateByValue(value string, tokens []token.Token, opts Options) *Result {
	return MatchField("", value, tokens, opts)
}

// query carries the precomputed forms of one match attempt.
type query struct {
	tags    []string
	raw     string
	words   []string
	text    string
	numeric string
	numMode bool
}

// matchOnce runs the sliding-window search and applies threshold at the
// end, so the best-score computation itself is threshold-independent.
func matchOnce(tags []string, value string, pages []*pageTokens, opts Options, threshold float64) *Result {
	q := query{
		tags:    tags,
		raw:     value,
		words:   normalize.Words(value),
		text:    normalize.Text(value),
		numeric: normalize.Numeric(value),
		numMode: opts.NumericHint || looksNumeric(value),
	}
	if q.numMode && q.numeric == "" {
		return nil
	}
	if !q.numMode && len(q.words) == 0 {
		return nil
	}

	best, all := search(q, pages, opts)
	if best == nil || best.Score < threshold {
		return nil
	}

	ranked := rank(all, overlapDuplicateRatio, opts.MaxAlternatives+1)
	return &Result{
		Page:         best.Page,
		Rect:         best.Rect,
		Score:        best.Score,
		Breakdown:    best.Breakdown,
		Alternatives: alternativesFor(*best, ranked, opts.MaxAlternatives),
	}
}

// search walks every page in ascending order and, for each start index,
// grows a window up to MaxWindow tokens, scoring the span at each length.
// It returns the globally best candidate (ties broken by first-seen, which
// is deterministic given the sorted walk) and the best window per start
// index for downstream deduplication.
func search(q query, pages []*pageTokens, opts Options) (*Candidate, []Candidate) {
	preferred := make(map[int]bool, len(opts.PreferredPages))
	for _, p := range opts.PreferredPages {
		preferred[p] = true
	}

	var best *Candidate
	var all []Candidate

	for _, pg := range pages {
		onPreferred := preferred[pg.page]
		for i := range pg.toks {
			gateOK := q.numMode || firstTokenPasses(q, pg, i, opts.Weights.FirstTokenGate)

			var startBest *Candidate
			limit := min(opts.MaxWindow, len(pg.toks)-i)
			for w := 0; w < limit; w++ {
				if w == 0 && !gateOK {
					// Longer windows at this start are still tried; only
					// the length-1 span is skipped.
					continue
				}
				score, bd := scoreSpan(q, pg, i, i+w+1, onPreferred, opts)
				if startBest == nil || score > startBest.Score {
					startBest = &Candidate{
						Page:      pg.page,
						Rect:      token.UnionBounds(pg.toks[i : i+w+1]),
						Score:     score,
						Breakdown: bd,
					}
				}
			}
			if startBest == nil {
				continue
			}
			all = append(all, *startBest)
			if best == nil || startBest.Score > best.Score {
				best = startBest
			}
		}
	}

	return best, all
}

// firstTokenPasses applies the non-numeric pruning gate: the span's first
// token must resemble the query's first normalized word.
func firstTokenPasses(q query, pg *pageTokens, i int, gate float64) bool {
	if len(q.words) == 0 {
		return false
	}
	first := pg.words[i]
	if len(first) == 0 {
		return false
	}
	return similarity.LevenshteinRatio(first[0], q.words[0]) >= gate
}

// alternativesFor returns the ranked runner-ups, excluding the winning span
// itself.
func alternativesFor(best Candidate, ranked []Candidate, limit int) []Candidate {
	var alts []Candidate
	for _, c := range ranked {
		if c.Page == best.Page && c.Rect == best.Rect {
			continue
		}
		alts = append(alts, c)
		if len(alts) == limit {
			break
		}
	}
	return alts
}

// pageTokens holds one page's tokens in reading order along with their
// precomputed normalized words and the spatial grid used for context
// extraction.
type pageTokens struct {
	page  int
	toks  []token.Token
	words [][]string
	grid  *tokenGrid
}

// paginate partitions tokens by page and sorts each page into reading order
// (y0 ascending, ties by x0). Callers are not required to pre-sort.
func paginate(tokens []token.Token, radius float64) []*pageTokens {
	byPage := make(map[int][]token.Token)
	for _, t := range tokens {
		byPage[t.Page] = append(byPage[t.Page], t)
	}

	pageNums := make([]int, 0, len(byPage))
	for p := range byPage {
		pageNums = append(pageNums, p)
	}
	sort.Ints(pageNums)

	pages := make([]*pageTokens, 0, len(pageNums))
	for _, p := range pageNums {
		toks := byPage[p]
		sort.SliceStable(toks, func(i, j int) bool {
			if toks[i].Y0 != toks[j].Y0 {
				return toks[i].Y0 < toks[j].Y0
			}
			return toks[i].X0 < toks[j].X0
		})

		words := make([][]string, len(toks))
		for i, t := range toks {
			words[i] = normalize.Words(t.Text)
		}

		pages = append(pages, &pageTokens{
			page:  p,
			toks:  toks,
			words: words,
			grid:  newTokenGrid(toks, words, radius),
		})
	}
	return pages
}
