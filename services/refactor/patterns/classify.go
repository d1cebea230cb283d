// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package patterns

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AleutianAI/refactorscope/services/refactor/ast"
	"github.com/AleutianAI/refactorscope/services/refactor/diff"
)

// Confidence ladder for raw detections. A detection starts at the base
// and is boosted by what corroborates it, capped at 1.0.
const (
	confidenceBase    = 0.5
	confidenceLexical = 0.3
	confidenceKind    = 0.2
	confidenceName    = 0.1
	confidenceImports = 0.1
)

// detection is one raw rule match before per-type merging.
type detection struct {
	sig        Signature
	evidence   string
	confidence float64
}

// Classify matches the diff against the signature library and returns
// the merged refactor tags.
//
// # Description
//
// Kind-based rules scan the added, removed, and modified node
// collections; lexical rules additionally scan each file's raw diff
// text and AST summary, catching patterns invisible at the single-node
// level (dependency and import changes in particular). Detections
// sharing a type merge into one tag: maximum level, evidence union,
// running-average confidence. Tags are returned sorted by level
// descending, type name ascending for determinism.
//
// An empty diff yields an empty (non-nil) tag list.
func Classify(d *diff.Result, lang ast.Language) []RefactorTag {
	detections := make([]detection, 0)

	for _, sig := range signatureLibrary {
		if !sig.appliesTo(lang) {
			continue
		}
		for _, rule := range sig.Rules {
			if rule.Lexical != "" {
				detections = append(detections, matchLexical(sig, rule, d)...)
			} else {
				detections = append(detections, matchKind(sig, rule, d)...)
			}
		}
	}

	return merge(detections)
}

// matchKind evaluates a kind-based rule over one diff collection.
func matchKind(sig Signature, rule Rule, d *diff.Result) []detection {
	var out []detection

	emit := func(n *ast.Node, verb string) {
		if !kindMatches(rule, n.Kind) {
			return
		}
		conf := confidenceBase + confidenceKind
		if n.Metadata.Name != "" {
			conf += confidenceName
		}
		if len(n.Metadata.Imports) > 0 {
			conf += confidenceImports
		}
		out = append(out, detection{
			sig:        sig,
			evidence:   fmt.Sprintf("%s %s %s", verb, n.Kind, describeNode(n)),
			confidence: capConfidence(conf),
		})
	}

	switch rule.On {
	case ClassAdded:
		for _, id := range d.Added {
			emit(d.Refactored.Node(id), "added")
		}
	case ClassRemoved:
		for _, id := range d.Removed {
			emit(d.Legacy.Node(id), "removed")
		}
	case ClassModified:
		for _, pair := range d.Modified {
			if rule.NameChanged && !mentionsNameChange(pair.Changes) {
				continue
			}
			emit(d.Refactored.Node(pair.Refactored), "modified")
		}
	}

	return out
}

// matchLexical evaluates a lexical rule over node texts, or over the
// per-file diff and summary when the rule is diff-scoped.
func matchLexical(sig Signature, rule Rule, d *diff.Result) []detection {
	var out []detection
	needle := strings.ToLower(rule.Lexical)

	if rule.OverDiff {
		for _, fc := range d.Files {
			haystack := strings.ToLower(fc.UnifiedDiff) + "\n" + strings.ToLower(fc.Summary)
			if strings.Contains(haystack, needle) {
				out = append(out, detection{
					sig:        sig,
					evidence:   fmt.Sprintf("diff of %s contains %q", fc.Path, rule.Lexical),
					confidence: capConfidence(confidenceBase + confidenceLexical),
				})
			}
		}
		return out
	}

	scan := func(n *ast.Node, verb string) {
		if n == nil || !strings.Contains(strings.ToLower(n.Text), needle) {
			return
		}
		conf := confidenceBase + confidenceLexical
		if n.Metadata.Name != "" {
			conf += confidenceName
		}
		if len(n.Metadata.Imports) > 0 {
			conf += confidenceImports
		}
		out = append(out, detection{
			sig:        sig,
			evidence:   fmt.Sprintf("%s %s contains %q", verb, n.Kind, rule.Lexical),
			confidence: capConfidence(conf),
		})
	}

	for _, id := range d.Added {
		scan(d.Refactored.Node(id), "added")
	}
	for _, id := range d.Removed {
		scan(d.Legacy.Node(id), "removed")
	}
	for _, pair := range d.Modified {
		scan(d.Refactored.Node(pair.Refactored), "modified")
	}

	return out
}

// kindMatches reports whether a rule accepts a node kind. Rules with no
// kinds accept any kind.
func kindMatches(rule Rule, kind string) bool {
	if len(rule.Kinds) == 0 {
		return true
	}
	for _, k := range rule.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// mentionsNameChange reports whether any change reason records a name
// or identifier change.
func mentionsNameChange(changes []string) bool {
	for _, c := range changes {
		lc := strings.ToLower(c)
		if strings.Contains(lc, "name") || strings.Contains(lc, "identifier") {
			return true
		}
	}
	return false
}

// describeNode renders a short node reference for evidence strings.
func describeNode(n *ast.Node) string {
	if n.Metadata.Name != "" {
		return fmt.Sprintf("%q at %s", n.Metadata.Name, n.Span)
	}
	return "at " + n.Span.String()
}

func capConfidence(c float64) float64 {
	if c > 1.0 {
		return 1.0
	}
	return c
}

// merge folds raw detections into one tag per type.
func merge(detections []detection) []RefactorTag {
	type accumulator struct {
		tag   RefactorTag
		seen  map[string]bool
		count int
	}

	order := make([]RefactorType, 0)
	byType := make(map[RefactorType]*accumulator)

	for _, det := range detections {
		acc, ok := byType[det.sig.Type]
		if !ok {
			acc = &accumulator{
				tag:  RefactorTag{Type: det.sig.Type, Level: det.sig.Level},
				seen: make(map[string]bool),
			}
			byType[det.sig.Type] = acc
			order = append(order, det.sig.Type)
		}

		if det.sig.Level > acc.tag.Level {
			acc.tag.Level = det.sig.Level
		}
		if !acc.seen[det.evidence] {
			acc.seen[det.evidence] = true
			acc.tag.Evidence = append(acc.tag.Evidence, det.evidence)
		}
		// Running average keeps confidence in [0,1] without a second pass.
		acc.count++
		acc.tag.Confidence += (det.confidence - acc.tag.Confidence) / float64(acc.count)
	}

	tags := make([]RefactorTag, 0, len(order))
	for _, t := range order {
		acc := byType[t]
		sort.Strings(acc.tag.Evidence)
		tags = append(tags, acc.tag)
	}

	sort.SliceStable(tags, func(i, j int) bool {
		if tags[i].Level != tags[j].Level {
			return tags[i].Level > tags[j].Level
		}
		return tags[i].Type < tags[j].Type
	})

	return tags
}
