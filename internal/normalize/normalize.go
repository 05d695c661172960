// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package normalize canonicalizes raw document text into a comparable form.
// All functions are pure and deterministic.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// abbreviations maps common address abbreviations to their expanded form.
// Static data ported as-is; unmatched words pass through unchanged.
var abbreviations = map[string]string{
	"rd":   "road",
	"ave":  "avenue",
	"av":   "avenue",
	"blvd": "boulevard",
	"st":   "street",
	"str":  "street",
	"dr":   "drive",
	"ln":   "lane",
	"ct":   "court",
	"cir":  "circle",
	"hwy":  "highway",
	"pkwy": "parkway",
	"sq":   "square",
	"ter":  "terrace",
	"pl":   "place",
	"ste":  "suite",
	"apt":  "apartment",
	"bldg": "building",
	"fl":   "floor",
	"rm":   "room",
	"po":   "post",
	"n":    "north",
	"s":    "south",
	"e":    "east",
	"w":    "west",
	"ne":   "northeast",
	"nw":   "northwest",
	"se":   "southeast",
	"sw":   "southwest",
	"mt":   "mount",
	"ft":   "fort",
}

// Words canonicalizes text and returns its ordered word tokens: lowercase,
// NFKC normalization, punctuation stripped, whitespace collapsed, address
// abbreviations expanded.
func Words(text string) []string {
	cleaned := clean(text)
	if cleaned == "" {
		return nil
	}
	words := strings.Fields(cleaned)
	for i, w := range words {
		if full, ok := abbreviations[w]; ok {
			words[i] = full
		}
	}
	return words
}

// Text returns the canonical form of text as a single space-joined string.
func Text(text string) string {
	return strings.Join(Words(text), " ")
}

// Numeric strips everything except decimal digits. Idempotent, and
// concatenating digit-bearing substrings before or after normalization
// yields the same result.
func Numeric(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// clean lowercases, applies NFKC, maps non-breaking spaces to ordinary
// spaces, strips anything that is not a letter, digit, or whitespace, and
// collapses whitespace runs.
func clean(text string) string {
	s := norm.NFKC.String(strings.ToLower(text))
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range s {
		if r == ' ' {
			r = ' '
		}
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace && b.Len() > 0 {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}
