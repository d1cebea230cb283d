// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ast provides the normalized syntax-tree model used by the
// refactor analysis pipeline.
//
// # Description
//
// This package wraps tree-sitter concrete syntax trees into a flat,
// language-tagged arena of normalized nodes. Each node carries extracted
// metadata (declared name, parameter texts, import targets) so that the
// mapper, diff engine, and classifier never touch tree-sitter types.
//
// Design principles:
//   - Arena storage: nodes live in one flat slice, parent/child links are
//     integer handles. Traversal and mapping allocate nothing per visit.
//   - Immutable after Normalize: a Tree is read-only for the lifetime of
//     an analysis and safe for concurrent reads.
//   - Language-specific structure lives in data tables, not conditionals.
package ast

import (
	"fmt"
	"strings"
)

// Language identifies a supported source language.
type Language string

const (
	// LanguageJavaScript covers .js sources (ES modules and CommonJS).
	LanguageJavaScript Language = "javascript"

	// LanguageJava covers .java sources.
	LanguageJava Language = "java"

	// LanguagePython covers .py sources.
	LanguagePython Language = "python"

	// LanguageC covers .c/.h sources.
	LanguageC Language = "c"

	// LanguageCPP covers .cpp/.cc/.hpp sources.
	LanguageCPP Language = "cpp"
)

// String returns the canonical language name.
func (l Language) String() string {
	return string(l)
}

// Supported reports whether a grammar is registered for the language.
func (l Language) Supported() bool {
	_, ok := grammars[l]
	return ok
}

// SupportedLanguages returns the registered languages in stable order.
func SupportedLanguages() []Language {
	return []Language{LanguageJavaScript, LanguageJava, LanguagePython, LanguageC, LanguageCPP}
}

// ParseLanguage converts a user-supplied string to a Language.
//
// Returns ErrUnsupportedLanguage for unknown names. Common aliases
// ("js", "c++") are accepted.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "javascript", "js":
		return LanguageJavaScript, nil
	case "java":
		return LanguageJava, nil
	case "python", "py":
		return LanguagePython, nil
	case "c":
		return LanguageC, nil
	case "cpp", "c++", "cxx":
		return LanguageCPP, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
}

// NodeID is an integer handle into a Tree's node arena.
type NodeID int

// InvalidNode is the handle returned when no node matches a lookup.
const InvalidNode NodeID = -1

// Span is a half-open position range in the source file.
//
// Rows and columns are 0-indexed, matching tree-sitter points.
type Span struct {
	// StartRow is the row of the first character.
	StartRow int `json:"start_row"`

	// StartCol is the column of the first character.
	StartCol int `json:"start_col"`

	// EndRow is the row just past the last character.
	EndRow int `json:"end_row"`

	// EndCol is the column just past the last character.
	EndCol int `json:"end_col"`
}

// String returns "startRow:startCol-endRow:endCol".
func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.StartRow, s.StartCol, s.EndRow, s.EndCol)
}

// Metadata carries the language-extracted facts about a node.
//
// All fields may be empty; the normalizer never fails on a node that
// declares nothing.
type Metadata struct {
	// Name is the declared identifier, when the node declares one.
	// Example: "computeTotal" for a function declaration.
	Name string `json:"name,omitempty"`

	// Parameters holds the source text of each declared parameter.
	Parameters []string `json:"parameters,omitempty"`

	// Imports holds import/include/using targets declared by this node.
	// Example: ["express"] for `import express from 'express'`.
	Imports []string `json:"imports,omitempty"`
}

// Fingerprint returns a stable serialization of the metadata, used by
// the diff engine's structural-equivalence check.
func (m Metadata) Fingerprint() string {
	var b strings.Builder
	b.WriteString(m.Name)
	b.WriteByte(0x1f)
	b.WriteString(strings.Join(m.Parameters, "\x1f"))
	b.WriteByte(0x1f)
	b.WriteString(strings.Join(m.Imports, "\x1f"))
	return b.String()
}

// Node is one normalized syntax-tree node.
//
// Nodes are created once by Normalize and never mutated afterwards.
// Child order is source order.
type Node struct {
	// Kind is the tree-sitter node type, e.g. "function_declaration".
	Kind string `json:"kind"`

	// Text is the node's full source text.
	Text string `json:"text"`

	// Span is the node's position range.
	Span Span `json:"span"`

	// Language tags the source language of the containing tree.
	Language Language `json:"language"`

	// Metadata holds the extracted name/parameters/imports.
	Metadata Metadata `json:"metadata"`

	// Parent is the handle of the parent node, InvalidNode for the root.
	Parent NodeID `json:"-"`

	// Children holds child handles in source order.
	Children []NodeID `json:"-"`
}

// Tree is an arena of normalized nodes for one source file.
//
// The zero value is an empty tree. Node 0, when present, is the root.
type Tree struct {
	// Language is the source language of the file.
	Language Language

	// Source is the full source text the tree was built from.
	Source string

	nodes []Node
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Root returns the root handle, or InvalidNode for an empty tree.
func (t *Tree) Root() NodeID {
	if len(t.nodes) == 0 {
		return InvalidNode
	}
	return 0
}

// Node returns the node for a handle.
//
// The returned pointer aliases the arena; callers must treat it as
// read-only. Out-of-range handles return nil.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

// Walk visits every node in depth-first preorder.
//
// Uses an explicit stack so pathological nesting cannot overflow the
// goroutine stack. Returning false from visit stops the walk.
func (t *Tree) Walk(visit func(id NodeID, n *Node) bool) {
	if len(t.nodes) == 0 {
		return
	}

	stack := []NodeID{0}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[id]
		if !visit(id, n) {
			return
		}

		// Push children reversed so the leftmost child pops first.
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}

// NamedNodes returns handles of all nodes with a non-empty declared
// name, in depth-first preorder.
func (t *Tree) NamedNodes() []NodeID {
	ids := make([]NodeID, 0)
	t.Walk(func(id NodeID, n *Node) bool {
		if n.Metadata.Name != "" {
			ids = append(ids, id)
		}
		return true
	})
	return ids
}

// FindByName returns the first node (depth-first) whose declared name
// equals name, or (InvalidNode, false) when absent.
func (t *Tree) FindByName(name string) (NodeID, bool) {
	found := InvalidNode
	t.Walk(func(id NodeID, n *Node) bool {
		if n.Metadata.Name == name {
			found = id
			return false
		}
		return true
	})
	return found, found != InvalidNode
}
