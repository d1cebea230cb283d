// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package diff classifies the structural changes between two normalized
// syntax trees.
//
// # Description
//
// Given the two trees and their correspondence mapping, the engine
// buckets nodes into added, removed, and modified sets, computes
// aggregate node statistics, and derives line-level statistics from a
// textual diff of the two full sources. The result is produced once per
// analysis and is immutable afterwards.
//
// # Thread Safety
//
// A Result is safe for concurrent reads after Compute returns.
package diff

import (
	"fmt"

	"github.com/AleutianAI/refactorscope/services/refactor/ast"
)

// ModifiedPair is a mapped node pair that is not structurally
// equivalent across versions.
type ModifiedPair struct {
	// Legacy is the node handle in the legacy tree.
	Legacy ast.NodeID `json:"-"`

	// Refactored is the node handle in the refactored tree.
	Refactored ast.NodeID `json:"-"`

	// Changes lists human-readable reasons, e.g.
	// `name changed from "computeTotal" to "calculateTotal"`.
	Changes []string `json:"changes"`
}

// Stats holds the aggregate change counts for one analysis.
type Stats struct {
	// NodesAdded is the number of refactored-only nodes.
	NodesAdded int `json:"nodes_added"`

	// NodesRemoved is the number of legacy-only nodes.
	NodesRemoved int `json:"nodes_removed"`

	// NodesModified is the number of mapped-but-changed pairs.
	NodesModified int `json:"nodes_modified"`

	// LinesAdded is the count of '+' lines in the textual diff.
	LinesAdded int `json:"lines_added"`

	// LinesRemoved is the count of '-' lines in the textual diff.
	LinesRemoved int `json:"lines_removed"`
}

// FileChange summarizes the change to one source file.
type FileChange struct {
	// Path is the display path of the file.
	Path string `json:"path"`

	// UnifiedDiff is the textual unified diff between versions.
	UnifiedDiff string `json:"unified_diff"`

	// Summary is a human-readable node-level summary, e.g.
	// "3 nodes added, 1 removed, 2 modified".
	Summary string `json:"summary"`

	// Impact is the per-file sub-score in [0,100]:
	// min(100, added*2 + removed*3 + modified*1). Removals weigh most
	// because they risk losing behavior.
	Impact int `json:"impact"`
}

// Result is the full structural diff between two trees.
type Result struct {
	// Legacy and Refactored are the trees the handles below index into.
	Legacy     *ast.Tree `json:"-"`
	Refactored *ast.Tree `json:"-"`

	// Added holds refactored-tree handles of added nodes, in
	// depth-first order.
	Added []ast.NodeID `json:"-"`

	// Removed holds legacy-tree handles of removed nodes, in
	// depth-first order.
	Removed []ast.NodeID `json:"-"`

	// Modified holds the changed mapped pairs, in mapping order.
	Modified []ModifiedPair `json:"modified"`

	// Files holds the per-file summaries (one entry per analyzed file).
	Files []FileChange `json:"files"`

	// Overall holds the aggregate statistics.
	Overall Stats `json:"overall"`
}

// Empty reports whether the diff recorded no change at all.
func (r *Result) Empty() bool {
	return r.Overall.NodesAdded == 0 &&
		r.Overall.NodesRemoved == 0 &&
		r.Overall.NodesModified == 0 &&
		r.Overall.LinesAdded == 0 &&
		r.Overall.LinesRemoved == 0
}

// summaryString renders the node-level summary used in FileChange.
func summaryString(s Stats) string {
	return fmt.Sprintf("%d nodes added, %d removed, %d modified",
		s.NodesAdded, s.NodesRemoved, s.NodesModified)
}

// fileImpact computes the per-file impact sub-score.
func fileImpact(s Stats) int {
	impact := s.NodesAdded*2 + s.NodesRemoved*3 + s.NodesModified
	if impact > 100 {
		impact = 100
	}
	return impact
}
