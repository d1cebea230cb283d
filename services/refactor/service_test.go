// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package refactor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/refactorscope/pkg/logging"
	"github.com/AleutianAI/refactorscope/services/refactor/ast"
	"github.com/AleutianAI/refactorscope/services/refactor/patterns"
	"github.com/AleutianAI/refactorscope/services/refactor/risk"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(WithLogger(logging.New(logging.Config{Quiet: true})))
	require.NoError(t, err)
	return svc
}

func TestAnalyze_IdenticalSources(t *testing.T) {
	svc := newTestService(t)
	source := "function add(a, b) { return a + b; }"

	result, err := svc.Analyze(context.Background(), &Request{
		LegacySource:     source,
		RefactoredSource: source,
		Language:         ast.LanguageJavaScript,
		Options:          Options{IncludeSecurityScan: true},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.OverallScore)
	assert.Equal(t, 0, result.Level)
	assert.Empty(t, result.RefactorTypes)
	assert.Empty(t, result.RiskFlags)
	assert.Equal(t, "no structural changes detected", result.Summary)
	assert.NotEmpty(t, result.ID)
	require.Len(t, result.Files, 1)
	assert.Empty(t, result.Files[0].UnifiedDiff)
}

func TestAnalyze_ServiceExtractionScenario(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Analyze(context.Background(), &Request{
		LegacySource: "function processOrder(order) { return order.total; }",
		RefactoredSource: "const express = require('express');\n" +
			"class OrderController {\n" +
			"    handle(req) { return req.body.total; }\n" +
			"}\n",
		Language: ast.LanguageJavaScript,
		FilePath: "orders.js",
		Options:  Options{IncludeSecurityScan: true},
	})
	require.NoError(t, err)

	var sawService, sawMove bool
	for _, tag := range result.RefactorTypes {
		switch tag.Type {
		case patterns.ServiceExtraction:
			sawService = true
			assert.Equal(t, 4, tag.Level)
		case patterns.MoveModularize:
			sawMove = true
		}
	}
	assert.True(t, sawService, "expected a Service Extraction tag: %v", result.RefactorTypes)
	assert.True(t, sawMove, "expected a Move/Modularize tag: %v", result.RefactorTypes)
	assert.Greater(t, result.Metrics.Breakdown.NewInfrastructure, 0.0)
	assert.Greater(t, result.OverallScore, 0)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "orders.js", result.Files[0].Path)
}

func TestAnalyze_RenameScenario(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Analyze(context.Background(), &Request{
		LegacySource:     "function computeTotal(a, b) { return a + b; }",
		RefactoredSource: "function calculateTotal(a, b) { return a + b; }",
		Language:         ast.LanguageJavaScript,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Metrics.MappedPairs, "mapper should link the renamed pair")
	assert.Equal(t, 1, result.Metrics.Diff.NodesModified)

	var sawRename bool
	for _, tag := range result.RefactorTypes {
		if tag.Type == patterns.RenameSymbol {
			sawRename = true
			assert.Equal(t, 1, tag.Level)
		}
	}
	assert.True(t, sawRename, "expected a Rename Symbol tag: %v", result.RefactorTypes)
}

func TestAnalyze_RiskScan(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Analyze(context.Background(), &Request{
		LegacySource:     "function login(user) { return user; }",
		RefactoredSource: `function login(user) { const password = "hunter2"; return user; }`,
		Language:         ast.LanguageJavaScript,
		Options:          Options{IncludeSecurityScan: true},
	})
	require.NoError(t, err)

	var sawSecret bool
	for _, flag := range result.RiskFlags {
		if flag.Kind == risk.KindSecurity && flag.Severity == risk.SeverityHigh {
			sawSecret = true
		}
	}
	assert.True(t, sawSecret, "expected a security/high flag: %+v", result.RiskFlags)
}

func TestAnalyze_SecurityScanDisabled(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Analyze(context.Background(), &Request{
		LegacySource:     "function f() {}",
		RefactoredSource: `function f() { const password = "hunter2"; }`,
		Language:         ast.LanguageJavaScript,
		Options:          Options{IncludeSecurityScan: false},
	})
	require.NoError(t, err)
	assert.Empty(t, result.RiskFlags)
}

func TestAnalyze_MapHints(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Analyze(context.Background(), &Request{
		LegacySource:     "function legacyEntry(x) { return x; }",
		RefactoredSource: "function brandNewMain(ctx) { return ctx; }",
		Language:         ast.LanguageJavaScript,
		Options: Options{
			MapHints: map[string]string{"legacyEntry": "brandNewMain"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Metrics.MappedPairs)
}

func TestAnalyze_Idempotent(t *testing.T) {
	svc := newTestService(t)
	req := &Request{
		LegacySource:     "function one(a) { return a; }",
		RefactoredSource: "function one(a) { return a; }\nfunction two(b) { return b * 2; }",
		Language:         ast.LanguageJavaScript,
		Options:          Options{IncludeSecurityScan: true},
	}

	first, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.OverallScore, second.OverallScore)
	assert.Equal(t, first.Level, second.Level)
	assert.Equal(t, first.RefactorTypes, second.RefactorTypes)
	assert.Equal(t, first.Metrics, second.Metrics)
	assert.Equal(t, first.Summary, second.Summary)
}

func TestAnalyze_Errors(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	t.Run("nil request", func(t *testing.T) {
		_, err := svc.Analyze(ctx, nil)
		assert.ErrorIs(t, err, ErrNilRequest)
	})

	t.Run("missing sources", func(t *testing.T) {
		_, err := svc.Analyze(ctx, &Request{Language: ast.LanguageJavaScript})
		assert.ErrorIs(t, err, ErrMissingSource)
	})

	t.Run("unsupported language", func(t *testing.T) {
		_, err := svc.Analyze(ctx, &Request{
			LegacySource:     "x",
			RefactoredSource: "x",
			Language:         ast.Language("cobol"),
		})
		assert.ErrorIs(t, err, ast.ErrUnsupportedLanguage)
	})

	t.Run("syntax error aborts", func(t *testing.T) {
		result, err := svc.Analyze(ctx, &Request{
			LegacySource:     "function broken ((( {",
			RefactoredSource: "function fine() {}",
			Language:         ast.LanguageJavaScript,
		})
		assert.ErrorIs(t, err, ast.ErrParse)
		assert.Nil(t, result, "no partial result on parse failure")
	})
}
