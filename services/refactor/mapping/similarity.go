// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package mapping

import "github.com/AleutianAI/refactorscope/services/refactor/ast"

// Similarity weights. Name dominates because renames are the most
// common correspondence-preserving change.
const (
	nameWeight  = 0.5
	kindWeight  = 0.3
	paramWeight = 0.2
)

// AcceptThreshold is the minimum similarity for an automatic match.
// A best candidate at or below this leaves the legacy node unmapped.
const AcceptThreshold = 0.7

// Similarity scores how likely two normalized nodes are the same
// element across the two versions.
//
// The score is a weighted sum of name similarity (normalized
// Levenshtein), kind similarity (1.0 on equal kinds, 0.5 otherwise),
// and parameter overlap. Range [0,1]; a node compared with itself
// scores 1.0 whenever it has a name.
func Similarity(a, b *ast.Node) float64 {
	return nameWeight*nameSimilarity(a.Metadata.Name, b.Metadata.Name) +
		kindWeight*kindSimilarity(a.Kind, b.Kind) +
		paramWeight*parameterSimilarity(a.Metadata.Parameters, b.Metadata.Parameters)
}

// nameSimilarity is 1 for identical names, else 1 minus the Levenshtein
// distance normalized by the longer name's length.
func nameSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	if longer == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshteinDistance(a, b))/float64(longer)
}

// kindSimilarity treats a kind mismatch as half-credit rather than
// zero: a function turned into a method is still a plausible match.
func kindSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	return 0.5
}

// parameterSimilarity is |intersection| / max(|a|, |b|).
//
// Two empty lists score 1.0 (nothing contradicts the match); exactly
// one empty list scores 0.0.
func parameterSimilarity(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	set := make(map[string]bool, len(a))
	for _, p := range a {
		set[p] = true
	}
	common := 0
	seen := make(map[string]bool, len(b))
	for _, p := range b {
		if set[p] && !seen[p] {
			common++
			seen[p] = true
		}
	}

	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	return float64(common) / float64(longer)
}

// levenshteinDistance calculates the edit distance between two strings.
// Uses the two-row dynamic programming variant for O(min(a,b)) space.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Keep a as the shorter string so the rows stay small.
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j
		for i := 1; i <= len(a); i++ {
			if a[i-1] == b[j-1] {
				curr[i] = prev[i-1]
			} else {
				curr[i] = 1 + min3(prev[i-1], prev[i], curr[i-1])
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(a)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
