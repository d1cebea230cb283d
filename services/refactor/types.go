// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package refactor orchestrates the full refactor analysis pipeline.
//
// # Description
//
// One Analyze call runs: normalize(legacy), normalize(refactored) ->
// map -> diff -> classify -> score, with the lexical risk scan running
// concurrently since it only reads the refactored source text. The
// assembled AnalysisResult is the stable contract consumed by callers;
// its field set must not change shape without a version bump.
//
// # Thread Safety
//
// A Service is immutable after construction; Analyze may be called
// concurrently from multiple goroutines. Analyses share only the
// read-only signature tables.
package refactor

import (
	"github.com/AleutianAI/refactorscope/services/refactor/ast"
	"github.com/AleutianAI/refactorscope/services/refactor/diff"
	"github.com/AleutianAI/refactorscope/services/refactor/impact"
	"github.com/AleutianAI/refactorscope/services/refactor/patterns"
	"github.com/AleutianAI/refactorscope/services/refactor/risk"
)

// Options tunes a single analysis.
type Options struct {
	// MapHints pairs legacy element names with their refactored
	// names, pinning correspondences the similarity heuristic would
	// miss. Missing hints are soft: names absent from either tree are
	// skipped without error.
	MapHints map[string]string `json:"map_hints,omitempty"`

	// IncludeSecurityScan enables the lexical risk scan. When false
	// no risk family runs and RiskFlags is empty.
	IncludeSecurityScan bool `json:"include_security_scan"`
}

// Request carries the two source versions to analyze.
type Request struct {
	// LegacySource is the pre-refactor file content.
	LegacySource string `json:"legacy_source"`

	// RefactoredSource is the post-refactor file content.
	RefactoredSource string `json:"refactored_source"`

	// Language selects the grammar both sources parse with.
	Language ast.Language `json:"language"`

	// FilePath is the display path used in per-file summaries.
	// Defaults to "source" when empty.
	FilePath string `json:"file_path,omitempty"`

	// Options tunes the analysis.
	Options Options `json:"options"`
}

// Metrics exposes the raw numbers behind the overall score.
type Metrics struct {
	// Diff holds the aggregate node and line counts.
	Diff diff.Stats `json:"diff"`

	// MappedPairs is the number of legacy nodes linked to a
	// refactored counterpart.
	MappedPairs int `json:"mapped_pairs"`

	// Breakdown holds the normalized scoring sub-metrics.
	Breakdown impact.Breakdown `json:"breakdown"`
}

// AnalysisResult is the assembled output of one analysis.
type AnalysisResult struct {
	// ID uniquely identifies this analysis run.
	ID string `json:"id"`

	// Language is the grammar the sources were parsed with.
	Language ast.Language `json:"language"`

	// OverallScore is the composite impact score in [0,100].
	OverallScore int `json:"overall_score"`

	// Level is the discrete change level in [0,4].
	Level int `json:"level"`

	// Summary is a one-line human-readable digest.
	Summary string `json:"summary"`

	// RefactorTypes are the detected techniques, highest level first.
	RefactorTypes []patterns.RefactorTag `json:"refactor_types"`

	// Files holds the per-file change summaries.
	Files []diff.FileChange `json:"files"`

	// RiskFlags holds the lexical findings on the refactored source.
	RiskFlags []risk.Flag `json:"risk_flags"`

	// Metrics exposes the raw counts and scoring breakdown.
	Metrics Metrics `json:"metrics"`
}
