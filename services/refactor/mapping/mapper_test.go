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

import (
	"context"
	"testing"

	"github.com/AleutianAI/refactorscope/services/refactor/ast"
)

// normalizeJS parses one JavaScript source into a normalized tree.
func normalizeJS(t *testing.T, source string) *ast.Tree {
	t.Helper()
	raw, err := ast.Parse(context.Background(), []byte(source), ast.LanguageJavaScript)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	defer raw.Close()
	return ast.Normalize(raw, []byte(source), ast.LanguageJavaScript)
}

func TestBuild_LinksRenamedFunction(t *testing.T) {
	legacy := normalizeJS(t, "function computeTotal(a, b) { return a + b; }")
	refactored := normalizeJS(t, "function calculateTotal(a, b) { return a + b; }")

	m := Build(legacy, refactored, nil)
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}

	l, _ := legacy.FindByName("computeTotal")
	r, _ := refactored.FindByName("calculateTotal")
	got, ok := m.Target(l)
	if !ok || got != r {
		t.Errorf("Target(computeTotal) = (%d, %v), want (%d, true)", got, ok, r)
	}
}

func TestBuild_RejectsWeakMatches(t *testing.T) {
	legacy := normalizeJS(t, "function alpha(x) { return x; }")
	refactored := normalizeJS(t, "function omega(y, z) { return y + z; }")

	m := Build(legacy, refactored, nil)
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for dissimilar functions", m.Len())
	}
}

func TestBuild_HintsOverrideSimilarity(t *testing.T) {
	legacy := normalizeJS(t, "function oldEntry(x) { return x; }")
	refactored := normalizeJS(t, "function redesignedMain(ctx) { return ctx; }")

	hints := map[string]string{"oldEntry": "redesignedMain"}
	m := Build(legacy, refactored, hints)
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 with an explicit hint", m.Len())
	}

	l, _ := legacy.FindByName("oldEntry")
	r, _ := refactored.FindByName("redesignedMain")
	if got, ok := m.Target(l); !ok || got != r {
		t.Errorf("hinted Target = (%d, %v), want (%d, true)", got, ok, r)
	}
}

func TestBuild_MissingHintNamesAreSoft(t *testing.T) {
	legacy := normalizeJS(t, "function keep(x) { return x; }")
	refactored := normalizeJS(t, "function keep(x) { return x; }")

	hints := map[string]string{"ghost": "alsoGhost"}
	m := Build(legacy, refactored, hints)

	// The bogus hint is skipped; the identical function still maps.
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestBuild_Injectivity(t *testing.T) {
	legacy := normalizeJS(t, "function add(a, b) { return a + b; }\nfunction addToo(a, b) { return a + b; }")
	refactored := normalizeJS(t, "function add(a, b) { return a + b; }")

	m := Build(legacy, refactored, nil)

	seen := make(map[ast.NodeID]int)
	for _, p := range m.Pairs() {
		seen[p.Refactored]++
	}
	for id, count := range seen {
		if count > 1 {
			t.Errorf("refactored node %d claimed %d times", id, count)
		}
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (one refactored candidate)", m.Len())
	}
}

func TestBuild_FirstMaxWinsTieBreak(t *testing.T) {
	// Both refactored functions are equally similar to the legacy one;
	// the first in depth-first order must win.
	legacy := normalizeJS(t, "function handler(a) { return a; }")
	refactored := normalizeJS(t, "function handlerA(a) { return a; }\nfunction handlerB(a) { return a; }")

	m := Build(legacy, refactored, nil)
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}

	first, _ := refactored.FindByName("handlerA")
	if got := m.Pairs()[0].Refactored; got != first {
		t.Errorf("tie went to node %d, want first candidate %d", got, first)
	}
}

func TestBuild_EmptyTrees(t *testing.T) {
	legacy := normalizeJS(t, "")
	refactored := normalizeJS(t, "function lonely() {}")

	m := Build(legacy, refactored, nil)
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for an empty legacy tree", m.Len())
	}
}
