// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// languageProfile describes the import constructs of one language.
//
// Name and parameter extraction are grammar-field driven and shared
// across languages; only the import kinds differ enough to need a table.
type languageProfile struct {
	importKinds map[string]bool
}

func kindSet(kinds ...string) map[string]bool {
	set := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return set
}

// profiles is the per-language normalization table.
//
// Read-only after package initialization.
var profiles = map[Language]languageProfile{
	LanguageJavaScript: {importKinds: kindSet("import_statement")},
	LanguageJava:       {importKinds: kindSet("import_declaration")},
	LanguagePython:     {importKinds: kindSet("import_statement", "import_from_statement")},
	LanguageC:          {importKinds: kindSet("preproc_include")},
	LanguageCPP:        {importKinds: kindSet("preproc_include", "using_declaration")},
}

// Normalize converts a parsed concrete syntax tree into a normalized
// arena Tree.
//
// # Description
//
// Walks the tree-sitter tree depth-first, producing one normalized node
// per named source node with child order preserved. For each node it
// extracts the declared name (grammar "name" field, descending C/C++
// declarator chains), the parameter texts, and import targets for the
// language's import constructs.
//
// Normalize is a pure function of its inputs and never fails: nodes
// that declare nothing get empty metadata. Callers must reject
// unsupported languages before parsing; see Parse.
//
// The returned Tree does not retain tree or content; the caller may
// Close the tree-sitter tree immediately afterwards.
func Normalize(tree *sitter.Tree, content []byte, lang Language) *Tree {
	t := &Tree{
		Language: lang,
		Source:   string(content),
	}

	root := tree.RootNode()
	if root == nil {
		return t
	}

	profile := profiles[lang]

	type frame struct {
		sn     *sitter.Node
		parent NodeID
	}

	stack := []frame{{sn: root, parent: InvalidNode}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		id := NodeID(len(t.nodes))
		n := Node{
			Kind:     f.sn.Type(),
			Text:     nodeText(f.sn, content),
			Language: lang,
			Parent:   f.parent,
			Span: Span{
				StartRow: int(f.sn.StartPoint().Row),
				StartCol: int(f.sn.StartPoint().Column),
				EndRow:   int(f.sn.EndPoint().Row),
				EndCol:   int(f.sn.EndPoint().Column),
			},
			Metadata: Metadata{
				Name:       declaredName(f.sn, content),
				Parameters: parameterTexts(f.sn, content),
			},
		}
		if profile.importKinds[n.Kind] {
			n.Metadata.Imports = importTargets(f.sn, content)
		}

		t.nodes = append(t.nodes, n)
		if f.parent != InvalidNode {
			t.nodes[f.parent].Children = append(t.nodes[f.parent].Children, id)
		}

		// Reversed push keeps source order under the LIFO stack.
		for i := int(f.sn.NamedChildCount()) - 1; i >= 0; i-- {
			stack = append(stack, frame{sn: f.sn.NamedChild(i), parent: id})
		}
	}

	return t
}

// nodeText returns the source text covered by a tree-sitter node.
func nodeText(n *sitter.Node, content []byte) string {
	start, end := n.StartByte(), n.EndByte()
	if int(start) > len(content) || int(end) > len(content) || start > end {
		return ""
	}
	return string(content[start:end])
}

// declaredName extracts the declared identifier of a node.
//
// Most grammars expose it as the "name" field. C and C++ nest the
// identifier inside declarator chains (pointer_declarator,
// function_declarator), so those are descended as a fallback.
func declaredName(n *sitter.Node, content []byte) string {
	if f := n.ChildByFieldName("name"); f != nil {
		return nodeText(f, content)
	}

	d := n.ChildByFieldName("declarator")
	for d != nil {
		switch d.Type() {
		case "identifier", "field_identifier", "qualified_identifier", "operator_name", "destructor_name":
			return nodeText(d, content)
		}
		d = d.ChildByFieldName("declarator")
	}
	return ""
}

// parameterTexts extracts the source text of each declared parameter.
//
// The "parameters" field is checked on the node itself first, then
// along the C/C++ declarator chain.
func parameterTexts(n *sitter.Node, content []byte) []string {
	params := n.ChildByFieldName("parameters")
	if params == nil {
		d := n.ChildByFieldName("declarator")
		for d != nil && params == nil {
			params = d.ChildByFieldName("parameters")
			d = d.ChildByFieldName("declarator")
		}
	}
	if params == nil {
		return nil
	}

	out := make([]string, 0, params.NamedChildCount())
	for i := 0; i < int(params.NamedChildCount()); i++ {
		ch := params.NamedChild(i)
		if ch.Type() == "comment" {
			continue
		}
		out = append(out, nodeText(ch, content))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// importTargets extracts the imported module/path names from an import
// construct.
//
// Grammar fields ("source" in JavaScript, "path" in C/C++ includes,
// "module_name" in Python from-imports) are tried first; otherwise the
// named children carrying the target are collected directly, which
// covers Java scoped identifiers and Python multi-imports.
func importTargets(n *sitter.Node, content []byte) []string {
	for _, field := range []string{"source", "path", "module_name"} {
		if f := n.ChildByFieldName(field); f != nil {
			return []string{cleanImportTarget(nodeText(f, content))}
		}
	}

	var out []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		ch := n.NamedChild(i)
		switch ch.Type() {
		case "dotted_name", "scoped_identifier", "identifier", "qualified_identifier",
			"string", "string_literal", "system_lib_string":
			out = append(out, cleanImportTarget(nodeText(ch, content)))
		case "aliased_import":
			if d := ch.NamedChild(0); d != nil {
				out = append(out, cleanImportTarget(nodeText(d, content)))
			}
		}
	}
	return out
}

// cleanImportTarget strips quote and angle-bracket delimiters from an
// import target, e.g. `'express'` -> `express`, `<stdio.h>` -> `stdio.h`.
func cleanImportTarget(s string) string {
	return strings.Trim(s, `"'<>`)
}
