// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package hints classifies upstream field keys into semantic tags and scores
// how well a candidate's neighborhood vocabulary supports those tags.
package hints

import (
	"regexp"
	"strings"
)

// tagPatterns maps each semantic tag to the patterns that detect it in a
// field key or key segment. Static data; matching is case-insensitive.
var tagPatterns = map[string][]*regexp.Regexp{
	"billing": {
		regexp.MustCompile(`(?i)bill`),
		regexp.MustCompile(`(?i)invoice`),
		regexp.MustCompile(`(?i)remit`),
	},
	"shipping": {
		regexp.MustCompile(`(?i)ship`),
		regexp.MustCompile(`(?i)deliver`),
		regexp.MustCompile(`(?i)consignee`),
	},
	"zip": {
		regexp.MustCompile(`(?i)zip`),
		regexp.MustCompile(`(?i)postal`),
		regexp.MustCompile(`(?i)postcode`),
	},
	"address": {
		regexp.MustCompile(`(?i)addr`),
		regexp.MustCompile(`(?i)street`),
		regexp.MustCompile(`(?i)line[12]`),
	},
	"city": {
		regexp.MustCompile(`(?i)city`),
		regexp.MustCompile(`(?i)town`),
	},
	"state": {
		regexp.MustCompile(`(?i)state`),
		regexp.MustCompile(`(?i)province`),
		regexp.MustCompile(`(?i)region`),
	},
	"account": {
		regexp.MustCompile(`(?i)acc(oun)?t`),
		regexp.MustCompile(`(?i)customer.?(no|num|id)`),
	},
}

// tagOrder keeps hint output deterministic regardless of map iteration.
var tagOrder = []string{"billing", "shipping", "zip", "address", "city", "state", "account"}

// tagSynonyms lists, per tag, phrases whose words mark supporting context.
// A tag is satisfied when every word of any one phrase appears in the
// neighborhood vocabulary.
var tagSynonyms = map[string][][]string{
	"billing":  {{"billing"}, {"bill", "to"}, {"billed", "to"}, {"invoice", "to"}, {"remit", "to"}},
	"shipping": {{"shipping"}, {"ship", "to"}, {"deliver", "to"}, {"delivery"}, {"consignee"}},
	"zip":      {{"zip"}, {"zip", "code"}, {"postal", "code"}, {"postcode"}},
	"address":  {{"address"}, {"street"}, {"road"}, {"avenue"}, {"boulevard"}},
	"city":     {{"city"}, {"town"}},
	"state":    {{"state"}, {"province"}},
	"account":  {{"account"}, {"account", "number"}, {"acct"}},
}

var keySeparators = regexp.MustCompile(`[.\[\]_\-\s]+`)

// KeyHints maps a semantic key such as "customer.billTo.zip" to the set of
// tags it implies. The whole key and every separator-delimited segment are
// tested against each tag's patterns. Output order is stable.
func KeyHints(key string) []string {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}

	segments := keySeparators.Split(key, -1)
	probes := append([]string{key}, segments...)

	var tags []string
	for _, tag := range tagOrder {
		if anyPatternMatches(tagPatterns[tag], probes) {
			tags = append(tags, tag)
		}
	}
	return tags
}

func anyPatternMatches(patterns []*regexp.Regexp, probes []string) bool {
	for _, p := range patterns {
		for _, probe := range probes {
			if probe != "" && p.MatchString(probe) {
				return true
			}
		}
	}
	return false
}

// ContextScore returns the fraction of hint tags supported by the context
// vocabulary, in [0,1]. No hints or no context words means no signal, which
// scores 0 rather than acting as a penalty.
func ContextScore(tags []string, contextWords []string) float64 {
	if len(tags) == 0 || len(contextWords) == 0 {
		return 0
	}

	vocab := make(map[string]bool, len(contextWords))
	for _, w := range contextWords {
		vocab[w] = true
	}

	satisfied := 0
	for _, tag := range tags {
		if tagSatisfied(tag, vocab) {
			satisfied++
		}
	}
	return float64(satisfied) / float64(len(tags))
}

func tagSatisfied(tag string, vocab map[string]bool) bool {
	for _, phrase := range tagSynonyms[tag] {
		all := true
		for _, w := range phrase {
			if !vocab[w] {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}
