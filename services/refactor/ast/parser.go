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
	"context"
	"fmt"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
)

// DefaultMaxFileSize is the largest source file the parser accepts.
const DefaultMaxFileSize = 10 * 1024 * 1024 // 10MB

// grammars maps each supported language to its tree-sitter grammar.
//
// The table is read-only after package initialization; adding a language
// means adding a row here and a normalizer profile in normalizer.go.
var grammars = map[Language]func() *sitter.Language{
	LanguageJavaScript: javascript.GetLanguage,
	LanguageJava:       java.GetLanguage,
	LanguagePython:     python.GetLanguage,
	LanguageC:          c.GetLanguage,
	LanguageCPP:        cpp.GetLanguage,
}

// Parse parses source content into a tree-sitter tree for the language.
//
// # Description
//
// Unlike error-tolerant indexing parsers, analysis requires a clean
// tree on both sides of a comparison: a tree containing syntax errors
// aborts the whole analysis with ErrParse and no partial output.
//
// # Inputs
//
//   - ctx: Context for cancellation. Checked before and after parsing;
//     tree-sitter itself cannot be interrupted mid-parse.
//   - content: Raw source bytes. Must be valid UTF-8.
//   - lang: Source language. Must be one of SupportedLanguages.
//
// # Outputs
//
//   - *sitter.Tree: The concrete syntax tree. Callers own it and must
//     Close it (Normalize does not retain it).
//   - error: ErrUnsupportedLanguage, ErrFileTooLarge, ErrInvalidContent,
//     ErrParse, or a context error.
//
// # Thread Safety
//
// Safe for concurrent use; a fresh tree-sitter parser is created per call.
func Parse(ctx context.Context, content []byte, lang Language) (*sitter.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled before start: %w", err)
	}

	grammar, ok := grammars[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	if int64(len(content)) > DefaultMaxFileSize {
		return nil, fmt.Errorf("%w: size %d exceeds limit %d", ErrFileTooLarge, len(content), int64(DefaultMaxFileSize))
	}

	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", ErrInvalidContent)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(grammar())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	root := tree.RootNode()
	if root == nil {
		tree.Close()
		return nil, fmt.Errorf("%w: tree-sitter returned nil root", ErrParse)
	}
	if root.HasError() {
		tree.Close()
		return nil, fmt.Errorf("%w: %s source contains syntax errors", ErrParse, lang)
	}

	if err := ctx.Err(); err != nil {
		tree.Close()
		return nil, fmt.Errorf("parse canceled after tree-sitter: %w", err)
	}

	return tree, nil
}
