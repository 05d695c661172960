// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package matcher

import "sort"

// overlapDuplicateRatio: same-page candidates whose rectangles overlap by
// more than this fraction of the smaller rectangle's area are duplicates.
const overlapDuplicateRatio = 0.7

// rank deduplicates candidates and returns them sorted descending by score,
// truncated to limit. Duplicates merge in place: the higher-scoring one
// keeps the earlier aggregate slot, which keeps the list stable without a
// second sort pass per insertion. Ties preserve discovery order.
func rank(candidates []Candidate, overlap float64, limit int) []Candidate {
	var agg []Candidate

	for _, c := range candidates {
		merged := false
		for i := range agg {
			if agg[i].Page == c.Page && agg[i].Rect.OverlapRatio(c.Rect) > overlap {
				if c.Score > agg[i].Score {
					agg[i] = c
				}
				merged = true
				break
			}
		}
		if !merged {
			agg = append(agg, c)
		}
	}

	sort.SliceStable(agg, func(i, j int) bool {
		return agg[i].Score > agg[j].Score
	})

	if len(agg) > limit {
		agg = agg[:limit]
	}
	return agg
}
