// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package impact

import (
	"math"

	"github.com/AleutianAI/refactorscope/services/refactor/ast"
	"github.com/AleutianAI/refactorscope/services/refactor/diff"
	"github.com/AleutianAI/refactorscope/services/refactor/patterns"
)

// Sub-metric weights. They sum to 1.0.
const (
	weightLines          = 0.30
	weightNodes          = 0.25
	weightInfrastructure = 0.20
	weightTestCoverage   = 0.15
	weightComplexity     = 0.10
)

// adjustment scales the tag-derived sub-metrics for one language.
type adjustment struct {
	complexity     float64
	infrastructure float64
}

// languageAdjustments tunes ComplexityDelta and NewInfrastructure per
// language. Manual-memory languages trend higher; scripting languages
// trend lower. Applied only through WithLanguageAdjustment.
var languageAdjustments = map[ast.Language]adjustment{
	ast.LanguageJavaScript:     {complexity: 1.0, infrastructure: 1.0},
	ast.Language("typescript"): {complexity: 0.95, infrastructure: 1.0},
	ast.LanguageJava:           {complexity: 1.1, infrastructure: 1.05},
	ast.LanguagePython:         {complexity: 0.9, infrastructure: 0.95},
	ast.LanguageC:              {complexity: 1.2, infrastructure: 1.1},
	ast.LanguageCPP:            {complexity: 1.25, infrastructure: 1.1},
}

// Option configures a Score call.
type Option func(*config)

type config struct {
	adjustLanguage ast.Language
	adjust         bool
}

// WithLanguageAdjustment scales the complexity and infrastructure
// sub-metrics by per-language factors before weighting. Languages
// absent from the table are left unscaled.
func WithLanguageAdjustment(lang ast.Language) Option {
	return func(c *config) {
		c.adjustLanguage = lang
		c.adjust = true
	}
}

// Score computes the impact assessment for one diff and its tags.
//
// # Description
//
// An empty diff with no tags short-circuits to a zero assessment:
// identical sources must score 0 regardless of the rescaling applied
// to the tag-derived sub-metrics. Otherwise each sub-metric is
// normalized to [0,100], optionally language-adjusted, and combined
// with the fixed weights. The weighted sum is rounded and clamped to
// [0,100] and the level derived from it by LevelForScore.
func Score(d *diff.Result, tags []patterns.RefactorTag, opts ...Option) Assessment {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	if d.Empty() && len(tags) == 0 {
		return Assessment{OverallScore: 0, Level: 0}
	}

	b := Breakdown{
		LinesChanged:      linesChangedMetric(d.Overall),
		ASTNodesChanged:   nodesChangedMetric(d.Overall),
		NewInfrastructure: infrastructureMetric(tags),
		TestCoverage:      testCoverageMetric(tags),
		ComplexityDelta:   complexityMetric(tags),
	}

	if cfg.adjust {
		if adj, ok := languageAdjustments[cfg.adjustLanguage]; ok {
			b.ComplexityDelta = clamp(b.ComplexityDelta*adj.complexity, 0, 100)
			b.NewInfrastructure = clamp(b.NewInfrastructure*adj.infrastructure, 0, 100)
		}
	}

	weighted := b.LinesChanged*weightLines +
		b.ASTNodesChanged*weightNodes +
		b.NewInfrastructure*weightInfrastructure +
		b.TestCoverage*weightTestCoverage +
		b.ComplexityDelta*weightComplexity

	score := int(clamp(math.Round(weighted), 0, 100))

	return Assessment{
		OverallScore: score,
		Level:        LevelForScore(score),
		Breakdown:    b,
	}
}

// linesChangedMetric normalizes the textual diff volume through a
// logistic curve centered at 200 lines with slope 100.
func linesChangedMetric(s diff.Stats) float64 {
	x := s.LinesAdded + s.LinesRemoved + s.NodesModified
	return logistic(float64(x), 200, 100)
}

// nodesChangedMetric normalizes the structural diff volume through a
// logistic curve centered at 50 nodes with slope 25.
func nodesChangedMetric(s diff.Stats) float64 {
	x := s.NodesAdded + s.NodesRemoved + s.NodesModified
	return logistic(float64(x), 50, 25)
}

// infrastructureMetric counts infrastructure-class tags, 20 points
// each, saturating at 100.
func infrastructureMetric(tags []patterns.RefactorTag) float64 {
	count := 0
	for _, tag := range tags {
		if infrastructureTypes[tag.Type] {
			count++
		}
	}
	return math.Min(float64(count)*20, 100)
}

// testCoverageMetric accumulates a delta of +10*level per Testing tag
// and -5 per tag of level >= 3, clamps it to [-50,50], then rescales
// to [0,100] via (delta+50)*2, clamped.
func testCoverageMetric(tags []patterns.RefactorTag) float64 {
	delta := 0.0
	for _, tag := range tags {
		if tag.Type == patterns.Testing {
			delta += 10 * float64(tag.Level)
		}
		if tag.Level >= 3 {
			delta -= 5
		}
	}
	delta = clamp(delta, -50, 50)
	return clamp((delta+50)*2, 0, 100)
}

// complexityMetric accumulates per-tag complexity growth (+2*level for
// the complex set, +level otherwise, -level for simplifying tags),
// floors the delta at -10, then rescales via (10-delta)*5 into [0,100].
func complexityMetric(tags []patterns.RefactorTag) float64 {
	delta := 0.0
	for _, tag := range tags {
		switch {
		case simplifyingTypes[tag.Type]:
			delta -= float64(tag.Level)
		case complexTypes[tag.Type]:
			delta += 2 * float64(tag.Level)
		default:
			delta += float64(tag.Level)
		}
	}
	if delta < -10 {
		delta = -10
	}
	return clamp((10-delta)*5, 0, 100)
}

// logistic evaluates 100 / (1 + e^(-(x-center)/slope)), pinned to 0 at
// x <= 0 so an empty change volume contributes nothing.
func logistic(x, center, slope float64) float64 {
	if x <= 0 {
		return 0
	}
	return 100 / (1 + math.Exp(-(x-center)/slope))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
