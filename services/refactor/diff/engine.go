// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package diff

import (
	"fmt"

	"github.com/AleutianAI/refactorscope/services/refactor/ast"
	"github.com/AleutianAI/refactorscope/services/refactor/mapping"
)

// Compute classifies the changes between the legacy and refactored trees.
//
// # Description
//
// A refactored node is added when it is neither the target of a mapping
// entry nor structurally equivalent (same kind, text, and serialized
// metadata) to any legacy node. A legacy node is removed under the
// symmetric condition. Every mapped pair that is not structurally
// equivalent is modified, with the individual differences (kind, text,
// name/metadata) recorded as reason strings.
//
// Line statistics come from a textual unified diff of the two full
// sources; they are independent of the node-level classification.
//
// # Inputs
//
//   - legacy, refactored: normalized trees. Empty trees degrade to
//     empty change sets, never an error.
//   - m: the correspondence mapping. A nil mapping is treated as empty.
//   - path: display path for the per-file summary; "source" when blank.
//
// # Outputs
//
//   - *Result: the immutable diff. Never nil on success.
//   - error: only when the textual diff machinery fails.
func Compute(legacy, refactored *ast.Tree, m *mapping.Mapping, path string) (*Result, error) {
	if path == "" {
		path = "source"
	}
	if m == nil {
		m = mapping.Build(&ast.Tree{}, &ast.Tree{}, nil)
	}

	r := &Result{
		Legacy:     legacy,
		Refactored: refactored,
		Added:      make([]ast.NodeID, 0),
		Removed:    make([]ast.NodeID, 0),
		Modified:   make([]ModifiedPair, 0),
	}

	legacyShapes := shapeSet(legacy)
	refactoredShapes := shapeSet(refactored)

	refactored.Walk(func(id ast.NodeID, n *ast.Node) bool {
		if !m.IsTarget(id) && !legacyShapes[shape(n)] {
			r.Added = append(r.Added, id)
		}
		return true
	})

	legacy.Walk(func(id ast.NodeID, n *ast.Node) bool {
		if _, mapped := m.Target(id); !mapped && !refactoredShapes[shape(n)] {
			r.Removed = append(r.Removed, id)
		}
		return true
	})

	for _, pair := range m.Pairs() {
		ln := legacy.Node(pair.Legacy)
		rn := refactored.Node(pair.Refactored)
		if ln == nil || rn == nil {
			continue
		}
		changes := changeReasons(ln, rn)
		if len(changes) > 0 {
			r.Modified = append(r.Modified, ModifiedPair{
				Legacy:     pair.Legacy,
				Refactored: pair.Refactored,
				Changes:    changes,
			})
		}
	}

	r.Overall.NodesAdded = len(r.Added)
	r.Overall.NodesRemoved = len(r.Removed)
	r.Overall.NodesModified = len(r.Modified)

	unified, linesAdded, linesRemoved, err := lineStats(legacy.Source, refactored.Source, path)
	if err != nil {
		return nil, fmt.Errorf("line diff for %s: %w", path, err)
	}
	r.Overall.LinesAdded = linesAdded
	r.Overall.LinesRemoved = linesRemoved

	r.Files = []FileChange{{
		Path:        path,
		UnifiedDiff: unified,
		Summary:     summaryString(r.Overall),
		Impact:      fileImpact(r.Overall),
	}}

	return r, nil
}

// shape serializes the structural identity of a node: kind, text, and
// metadata fingerprint. Two nodes with equal shapes are structurally
// equivalent for add/remove purposes.
func shape(n *ast.Node) string {
	return n.Kind + "\x1e" + n.Text + "\x1e" + n.Metadata.Fingerprint()
}

// shapeSet collects the shapes of every node in a tree.
func shapeSet(t *ast.Tree) map[string]bool {
	set := make(map[string]bool, t.Len())
	t.Walk(func(_ ast.NodeID, n *ast.Node) bool {
		set[shape(n)] = true
		return true
	})
	return set
}

// changeReasons lists the differences between a mapped pair. Empty when
// the pair is structurally equivalent. Each difference is detected
// independently; a renamed node whose body also changed reports both.
func changeReasons(ln, rn *ast.Node) []string {
	var changes []string

	if ln.Kind != rn.Kind {
		changes = append(changes, fmt.Sprintf("kind changed from %s to %s", ln.Kind, rn.Kind))
	}
	if ln.Text != rn.Text {
		changes = append(changes, "text changed")
	}
	if ln.Metadata.Fingerprint() != rn.Metadata.Fingerprint() {
		if ln.Metadata.Name != rn.Metadata.Name {
			changes = append(changes, fmt.Sprintf("name changed from %q to %q", ln.Metadata.Name, rn.Metadata.Name))
		} else {
			changes = append(changes, "metadata changed")
		}
	}

	return changes
}
