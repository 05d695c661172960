// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package similarity provides bounded [0,1] string similarity primitives
// used by the field matcher.
package similarity

// fuzzyWordThreshold is the minimum ratio at which two words are treated as
// the same word during coverage alignment.
const fuzzyWordThreshold = 0.8

// LevenshteinRatio returns 1 - editDistance(a,b)/max(1, len(a), len(b)),
// computed over runes with unit insert/delete/substitute costs. Two empty
// strings score 1.0.
func LevenshteinRatio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	longest := max(1, max(len(ra), len(rb)))
	return 1.0 - float64(editDistance(ra, rb))/float64(longest)
}

// editDistance computes Levenshtein distance with a single-row DP table.
func editDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, min(prev[j]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// Coverage reports the fraction of target words found, in order, among span
// words. A target word matches exactly or at LevenshteinRatio >=0.8; matched
// span words are consumed so each can satisfy only one target word.
// Contiguity is not required. Returns 0 for an empty target.
func Coverage(targetWords, spanWords []string) float64 {
	if len(targetWords) == 0 {
		return 0
	}

	matched := 0
	next := 0
	for _, tw := range targetWords {
		for j := next; j < len(spanWords); j++ {
			if tw == spanWords[j] || LevenshteinRatio(tw, spanWords[j]) >= fuzzyWordThreshold {
				matched++
				next = j + 1
				break
			}
		}
	}

	return float64(matched) / float64(len(targetWords))
}
