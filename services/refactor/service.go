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
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/refactorscope/pkg/logging"
	"github.com/AleutianAI/refactorscope/services/refactor/ast"
	"github.com/AleutianAI/refactorscope/services/refactor/diff"
	"github.com/AleutianAI/refactorscope/services/refactor/impact"
	"github.com/AleutianAI/refactorscope/services/refactor/mapping"
	"github.com/AleutianAI/refactorscope/services/refactor/patterns"
	"github.com/AleutianAI/refactorscope/services/refactor/risk"
)

// Service runs refactor analyses.
type Service struct {
	log     *logging.Logger
	scanner *risk.Scanner
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the structured logger. Defaults to logging.Default.
func WithLogger(l *logging.Logger) ServiceOption {
	return func(s *Service) {
		s.log = l
	}
}

// NewService builds a Service with the standard risk signature table.
func NewService(opts ...ServiceOption) (*Service, error) {
	scanner, err := risk.NewScanner(risk.DefaultSignatures)
	if err != nil {
		return nil, fmt.Errorf("compile risk signatures: %w", err)
	}

	s := &Service{scanner: scanner}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.Default()
	}
	return s, nil
}

// Analyze runs the full pipeline for one legacy/refactored pair.
//
// # Description
//
// The structural chain (parse, normalize, map, diff, classify, score)
// and the lexical risk scan run concurrently; the scan only reads the
// refactored source text. The call is all-or-nothing: any parse or
// language failure aborts the analysis with no partial result. Soft
// conditions (missing hints, empty trees, absent parameters) degrade
// to empty collections and zero metrics instead of failing.
//
// Parse and language errors wrap ast.ErrParse and
// ast.ErrUnsupportedLanguage for errors.Is matching.
func (s *Service) Analyze(ctx context.Context, req *Request) (*AnalysisResult, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	if req.LegacySource == "" && req.RefactoredSource == "" {
		return nil, ErrMissingSource
	}
	if !req.Language.Supported() {
		return nil, fmt.Errorf("%w: %q", ast.ErrUnsupportedLanguage, req.Language)
	}

	path := req.FilePath
	if path == "" {
		path = "source"
	}

	id := uuid.NewString()
	log := s.log.With("analysis_id", id, "language", req.Language.String())
	log.Info("analysis started",
		"legacy_bytes", len(req.LegacySource),
		"refactored_bytes", len(req.RefactoredSource),
	)

	var (
		d     *diff.Result
		tags  []patterns.RefactorTag
		score impact.Assessment
		pairs int
		flags []risk.Flag
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		legacy, err := s.normalize(gctx, req.LegacySource, req.Language)
		if err != nil {
			return fmt.Errorf("legacy source: %w", err)
		}
		refactored, err := s.normalize(gctx, req.RefactoredSource, req.Language)
		if err != nil {
			return fmt.Errorf("refactored source: %w", err)
		}

		m := mapping.Build(legacy, refactored, req.Options.MapHints)
		pairs = m.Len()

		d, err = diff.Compute(legacy, refactored, m, path)
		if err != nil {
			return fmt.Errorf("diff: %w", err)
		}

		tags = patterns.Classify(d, req.Language)
		score = impact.Score(d, tags)
		return nil
	})

	g.Go(func() error {
		flags = s.scanner.Scan(req.RefactoredSource, req.Language, req.Options.IncludeSecurityScan)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("analysis failed", "error", err)
		return nil, err
	}

	result := &AnalysisResult{
		ID:            id,
		Language:      req.Language,
		OverallScore:  score.OverallScore,
		Level:         score.Level,
		Summary:       buildSummary(d.Overall, tags, score),
		RefactorTypes: tags,
		Files:         d.Files,
		RiskFlags:     flags,
		Metrics: Metrics{
			Diff:        d.Overall,
			MappedPairs: pairs,
			Breakdown:   score.Breakdown,
		},
	}

	log.Info("analysis completed",
		"overall_score", result.OverallScore,
		"level", result.Level,
		"refactor_types", len(result.RefactorTypes),
		"risk_flags", len(result.RiskFlags),
	)
	return result, nil
}

// normalize parses one source and lifts it into the arena tree.
func (s *Service) normalize(ctx context.Context, source string, lang ast.Language) (*ast.Tree, error) {
	content := []byte(source)
	raw, err := ast.Parse(ctx, content, lang)
	if err != nil {
		return nil, err
	}
	defer raw.Close()
	return ast.Normalize(raw, content, lang), nil
}

// buildSummary renders the one-line digest carried on the result.
func buildSummary(stats diff.Stats, tags []patterns.RefactorTag, score impact.Assessment) string {
	if stats.NodesAdded == 0 && stats.NodesRemoved == 0 && stats.NodesModified == 0 &&
		stats.LinesAdded == 0 && stats.LinesRemoved == 0 && len(tags) == 0 {
		return "no structural changes detected"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d nodes added, %d removed, %d modified (+%d/-%d lines)",
		stats.NodesAdded, stats.NodesRemoved, stats.NodesModified,
		stats.LinesAdded, stats.LinesRemoved)

	if len(tags) > 0 {
		names := make([]string, 0, len(tags))
		for _, tag := range tags {
			names = append(names, tag.Type.String())
		}
		fmt.Fprintf(&b, "; techniques: %s", strings.Join(names, ", "))
	}

	fmt.Fprintf(&b, "; impact %d/100 (level %d)", score.OverallScore, score.Level)
	return b.String()
}
