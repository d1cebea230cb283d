// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package impact aggregates diff statistics and refactor tags into a
// single 0-100 score and a discrete 0-4 change level.
//
// # Description
//
// Five sub-metrics are normalized to [0,100] and combined with fixed
// weights. Line and node volumes pass through logistic curves so that
// small changes stay near zero and very large changes saturate instead
// of growing without bound. Tag-derived metrics reward detected
// infrastructure work and penalize complexity growth.
//
// # Thread Safety
//
// Score is a pure function; all package state is read-only.
package impact

import "github.com/AleutianAI/refactorscope/services/refactor/patterns"

// Breakdown holds the five normalized sub-metrics, each in [0,100].
type Breakdown struct {
	// LinesChanged reflects the textual diff volume.
	LinesChanged float64 `json:"lines_changed"`

	// ASTNodesChanged reflects the structural diff volume.
	ASTNodesChanged float64 `json:"ast_nodes_changed"`

	// NewInfrastructure reflects how many infrastructure-class
	// refactor tags were detected.
	NewInfrastructure float64 `json:"new_infrastructure"`

	// TestCoverage rewards added Testing tags and penalizes heavy
	// refactors with no accompanying test work.
	TestCoverage float64 `json:"test_coverage"`

	// ComplexityDelta estimates complexity growth from the tag mix.
	ComplexityDelta float64 `json:"complexity_delta"`
}

// Assessment is the scorer's output for one analysis.
type Assessment struct {
	// OverallScore is the weighted sum of the breakdown, rounded and
	// clamped to [0,100].
	OverallScore int `json:"overall_score"`

	// Level is the discrete change level in [0,4] derived from
	// OverallScore by fixed thresholds.
	Level int `json:"level"`

	// Breakdown exposes the per-metric contributions.
	Breakdown Breakdown `json:"breakdown"`
}

// LevelForScore maps a score to its change level.
//
// The thresholds are fixed: [0,20) -> 0, [20,40) -> 1, [40,60) -> 2,
// [60,80) -> 3, [80,100] -> 4. The mapping is monotone non-decreasing.
func LevelForScore(score int) int {
	switch {
	case score < 20:
		return 0
	case score < 40:
		return 1
	case score < 60:
		return 2
	case score < 80:
		return 3
	default:
		return 4
	}
}

// infrastructureTypes are the tag types counted as new infrastructure.
var infrastructureTypes = map[patterns.RefactorType]bool{
	patterns.ServiceExtraction:    true,
	patterns.CloudMigration:       true,
	patterns.Containerization:     true,
	patterns.InfrastructureAsCode: true,
	patterns.EventDriven:          true,
}

// complexTypes grow estimated complexity at double rate.
var complexTypes = map[patterns.RefactorType]bool{
	patterns.ServiceExtraction:    true,
	patterns.CloudMigration:       true,
	patterns.EventDriven:          true,
	patterns.InfrastructureAsCode: true,
}

// simplifyingTypes reduce estimated complexity.
var simplifyingTypes = map[patterns.RefactorType]bool{
	patterns.ExtractMethod: true,
	patterns.InlineMethod:  true,
	patterns.RenameSymbol:  true,
}
