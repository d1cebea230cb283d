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
	"testing"

	"github.com/AleutianAI/refactorscope/services/refactor/ast"
	"github.com/AleutianAI/refactorscope/services/refactor/diff"
	"github.com/AleutianAI/refactorscope/services/refactor/patterns"
)

func TestLevelForScore_ThresholdMonotonicity(t *testing.T) {
	scores := []int{0, 19, 20, 39, 40, 59, 60, 79, 80, 100}
	wantLevels := []int{0, 0, 1, 1, 2, 2, 3, 3, 4, 4}

	prev := 0
	for i, score := range scores {
		got := LevelForScore(score)
		if got != wantLevels[i] {
			t.Errorf("LevelForScore(%d) = %d, want %d", score, got, wantLevels[i])
		}
		if got < prev {
			t.Errorf("level decreased from %d to %d at score %d", prev, got, score)
		}
		prev = got
	}
}

func TestScore_ZeroForEmptyDiff(t *testing.T) {
	a := Score(&diff.Result{}, nil)
	if a.OverallScore != 0 {
		t.Errorf("OverallScore = %d, want 0 for an empty diff", a.OverallScore)
	}
	if a.Level != 0 {
		t.Errorf("Level = %d, want 0", a.Level)
	}
}

func TestScore_GrowsWithChangeVolume(t *testing.T) {
	small := Score(&diff.Result{Overall: diff.Stats{
		NodesAdded: 2, LinesAdded: 5,
	}}, nil)
	large := Score(&diff.Result{Overall: diff.Stats{
		NodesAdded: 200, NodesRemoved: 150, NodesModified: 80,
		LinesAdded: 600, LinesRemoved: 400,
	}}, nil)

	if small.OverallScore >= large.OverallScore {
		t.Errorf("small change scored %d, large change %d; want small < large",
			small.OverallScore, large.OverallScore)
	}
	if large.Breakdown.LinesChanged <= small.Breakdown.LinesChanged {
		t.Error("LinesChanged metric did not grow with volume")
	}
}

func TestScore_InfrastructureTags(t *testing.T) {
	d := &diff.Result{Overall: diff.Stats{NodesAdded: 10, LinesAdded: 30}}
	tags := []patterns.RefactorTag{
		{Type: patterns.ServiceExtraction, Level: 4},
		{Type: patterns.Containerization, Level: 3},
		{Type: patterns.RenameSymbol, Level: 1},
	}

	a := Score(d, tags)
	if want := 40.0; a.Breakdown.NewInfrastructure != want {
		t.Errorf("NewInfrastructure = %v, want %v (two infrastructure tags)",
			a.Breakdown.NewInfrastructure, want)
	}
}

func TestScore_InfrastructureSaturates(t *testing.T) {
	tags := []patterns.RefactorTag{
		{Type: patterns.ServiceExtraction, Level: 4},
		{Type: patterns.CloudMigration, Level: 4},
		{Type: patterns.Containerization, Level: 3},
		{Type: patterns.InfrastructureAsCode, Level: 3},
		{Type: patterns.EventDriven, Level: 3},
		{Type: patterns.DatabaseMigration, Level: 3},
	}
	if got := infrastructureMetric(tags); got != 100 {
		t.Errorf("infrastructureMetric = %v, want saturation at 100", got)
	}
}

func TestTestCoverageMetric(t *testing.T) {
	tests := []struct {
		name string
		tags []patterns.RefactorTag
		want float64
	}{
		{"no tags is neutral", nil, 100},
		{
			"testing tag raises",
			[]patterns.RefactorTag{{Type: patterns.Testing, Level: 2}},
			// delta +20 -> (20+50)*2 = 140 clamped to 100... the raw
			// rescale exceeds the range, so it clamps.
			100,
		},
		{
			"heavy refactor without tests lowers",
			[]patterns.RefactorTag{
				{Type: patterns.ServiceExtraction, Level: 4},
				{Type: patterns.CloudMigration, Level: 4},
			},
			80, // delta -10 -> (40)*2
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testCoverageMetric(tt.tags); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("testCoverageMetric = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComplexityMetric(t *testing.T) {
	simplifying := []patterns.RefactorTag{{Type: patterns.ExtractMethod, Level: 1}}
	complexTags := []patterns.RefactorTag{{Type: patterns.ServiceExtraction, Level: 4}}

	if s, c := complexityMetric(simplifying), complexityMetric(complexTags); s <= c {
		t.Errorf("simplifying metric %v should exceed complex metric %v", s, c)
	}
}

func TestScore_LanguageAdjustmentIsExplicit(t *testing.T) {
	d := &diff.Result{Overall: diff.Stats{NodesAdded: 20, LinesAdded: 100}}
	tags := []patterns.RefactorTag{{Type: patterns.ServiceExtraction, Level: 4}}

	plain := Score(d, tags)
	adjusted := Score(d, tags, WithLanguageAdjustment(ast.LanguageC))

	// C scales infrastructure by 1.1: 20 -> 22.
	if plain.Breakdown.NewInfrastructure != 20 {
		t.Fatalf("unadjusted NewInfrastructure = %v, want 20", plain.Breakdown.NewInfrastructure)
	}
	if math.Abs(adjusted.Breakdown.NewInfrastructure-22) > 1e-9 {
		t.Errorf("adjusted NewInfrastructure = %v, want 22", adjusted.Breakdown.NewInfrastructure)
	}
}

func TestScore_UnknownAdjustmentLanguageIsNoop(t *testing.T) {
	d := &diff.Result{Overall: diff.Stats{NodesAdded: 20, LinesAdded: 100}}
	tags := []patterns.RefactorTag{{Type: patterns.ServiceExtraction, Level: 4}}

	plain := Score(d, tags)
	adjusted := Score(d, tags, WithLanguageAdjustment(ast.Language("fortran")))

	if plain.OverallScore != adjusted.OverallScore {
		t.Errorf("unknown language changed the score: %d vs %d",
			plain.OverallScore, adjusted.OverallScore)
	}
}

func TestLogistic(t *testing.T) {
	if got := logistic(0, 200, 100); got != 0 {
		t.Errorf("logistic(0) = %v, want the pinned 0", got)
	}
	if got := logistic(-5, 200, 100); got != 0 {
		t.Errorf("logistic(-5) = %v, want 0", got)
	}
	if got := logistic(200, 200, 100); math.Abs(got-50) > 1e-9 {
		t.Errorf("logistic(center) = %v, want 50", got)
	}
	if low, high := logistic(50, 200, 100), logistic(400, 200, 100); low >= high {
		t.Errorf("logistic not increasing: f(50)=%v >= f(400)=%v", low, high)
	}
}

func TestScore_StaysInRange(t *testing.T) {
	d := &diff.Result{Overall: diff.Stats{
		NodesAdded: 100000, NodesRemoved: 100000, NodesModified: 100000,
		LinesAdded: 100000, LinesRemoved: 100000,
	}}
	tags := []patterns.RefactorTag{
		{Type: patterns.ServiceExtraction, Level: 4},
		{Type: patterns.CloudMigration, Level: 4},
		{Type: patterns.EventDriven, Level: 3},
	}

	a := Score(d, tags)
	if a.OverallScore < 0 || a.OverallScore > 100 {
		t.Errorf("OverallScore = %d, want within [0,100]", a.OverallScore)
	}
	if a.Level < 0 || a.Level > 4 {
		t.Errorf("Level = %d, want within [0,4]", a.Level)
	}
}
