// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package mapping computes the best-effort correspondence between the
// nodes of two normalized syntax trees.
//
// # Description
//
// The mapping is a partial, injective function from legacy nodes to
// refactored nodes: each legacy node maps to at most one refactored
// node and no refactored node is claimed twice. It is built from
// explicit caller hints first, then from greedy per-node similarity
// matching, and is consumed by the diff engine to decide
// added/removed/modified status.
//
// The matcher is deliberately greedy, not a global optimal assignment:
// when two legacy nodes both prefer the same refactored node, the
// first one processed (depth-first order) wins and the second falls
// back to its next-best candidate or stays unmapped. See DESIGN.md for
// the trade-off discussion.
//
// # Thread Safety
//
// A Mapping is immutable after Build returns and safe for concurrent
// reads. Build itself touches only its arguments.
package mapping

import (
	"sort"

	"github.com/AleutianAI/refactorscope/services/refactor/ast"
)

// Pair is one legacy-to-refactored correspondence.
type Pair struct {
	// Legacy is the node handle in the legacy tree.
	Legacy ast.NodeID

	// Refactored is the node handle in the refactored tree.
	Refactored ast.NodeID
}

// Mapping is the partial injective correspondence between two trees.
type Mapping struct {
	pairs   []Pair
	forward map[ast.NodeID]ast.NodeID
	targets map[ast.NodeID]ast.NodeID
}

// Len returns the number of mapped pairs.
func (m *Mapping) Len() int {
	return len(m.pairs)
}

// Pairs returns the mapped pairs in the order they were established
// (hints first, then legacy depth-first order). The slice is shared;
// callers must not modify it.
func (m *Mapping) Pairs() []Pair {
	return m.pairs
}

// Target returns the refactored node a legacy node maps to.
func (m *Mapping) Target(legacy ast.NodeID) (ast.NodeID, bool) {
	id, ok := m.forward[legacy]
	return id, ok
}

// IsTarget reports whether a refactored node is claimed by any legacy
// node.
func (m *Mapping) IsTarget(refactored ast.NodeID) bool {
	_, ok := m.targets[refactored]
	return ok
}

// add records a pair, preserving injectivity. Returns false when either
// side is already mapped.
func (m *Mapping) add(legacy, refactored ast.NodeID) bool {
	if _, dup := m.forward[legacy]; dup {
		return false
	}
	if _, dup := m.targets[refactored]; dup {
		return false
	}
	m.pairs = append(m.pairs, Pair{Legacy: legacy, Refactored: refactored})
	m.forward[legacy] = refactored
	m.targets[refactored] = legacy
	return true
}

// Build computes the correspondence mapping between two trees.
//
// # Description
//
// Hints are applied first: for each (legacyName, refactoredName) pair
// the first depth-first node with that declared name is located in each
// tree and paired when both exist. Hints naming nothing are ignored
// (soft failure). Hint keys are processed in sorted order so results
// are deterministic regardless of map iteration.
//
// Remaining named legacy nodes are then matched greedily: each is
// scored against every unclaimed named refactored node and takes the
// best candidate, accepted only when similarity exceeds
// AcceptThreshold. Ties go to the first candidate in depth-first order.
//
// # Outputs
//
//   - *Mapping: never nil; empty when either tree has no named nodes.
func Build(legacy, refactored *ast.Tree, hints map[string]string) *Mapping {
	m := &Mapping{
		forward: make(map[ast.NodeID]ast.NodeID),
		targets: make(map[ast.NodeID]ast.NodeID),
	}

	// Explicit hints first.
	hintKeys := make([]string, 0, len(hints))
	for k := range hints {
		hintKeys = append(hintKeys, k)
	}
	sort.Strings(hintKeys)
	for _, legacyName := range hintKeys {
		refactoredName := hints[legacyName]
		l, lok := legacy.FindByName(legacyName)
		r, rok := refactored.FindByName(refactoredName)
		if lok && rok {
			m.add(l, r)
		}
	}

	// Greedy similarity matching over the remaining named nodes.
	candidates := refactored.NamedNodes()
	for _, l := range legacy.NamedNodes() {
		if _, mapped := m.forward[l]; mapped {
			continue
		}
		ln := legacy.Node(l)

		best := ast.InvalidNode
		bestScore := 0.0
		for _, r := range candidates {
			if m.IsTarget(r) {
				continue
			}
			score := Similarity(ln, refactored.Node(r))
			if score > bestScore {
				best, bestScore = r, score
			}
		}

		if best != ast.InvalidNode && bestScore > AcceptThreshold {
			m.add(l, best)
		}
	}

	return m
}
