// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package patterns classifies refactoring techniques from a structural
// diff.
//
// # Description
//
// A static signature library maps each refactor-technique type to a
// baseline level and a list of match rules. Rules are either kind-based
// (a node kind observed in the added/removed/modified sets) or lexical
// (case-insensitive substring over node text or the file-level diff).
// Raw detections sharing a type are merged into one tag.
//
// # Thread Safety
//
// The signature library is package-level, read-only data initialized
// once; Classify shares no mutable state between calls.
package patterns

// RefactorType names a detected refactoring technique.
type RefactorType string

const (
	// ExtractMethod: a function/method was split out of existing code.
	ExtractMethod RefactorType = "Extract Method"

	// InlineMethod: a function/method was folded into its callers.
	InlineMethod RefactorType = "Inline Method"

	// RenameSymbol: an element kept its shape but changed its name.
	RenameSymbol RefactorType = "Rename Symbol"

	// ExtractClass: a class/struct was introduced to hold moved state.
	ExtractClass RefactorType = "Extract Class"

	// MoveModularize: code moved across module boundaries; imports
	// changed.
	MoveModularize RefactorType = "Move/Modularize"

	// ServiceExtraction: logic was split into a separately served
	// component (controllers, routers, service endpoints).
	ServiceExtraction RefactorType = "Service Extraction"

	// CloudMigration: platform-specific cloud SDK usage was introduced.
	CloudMigration RefactorType = "Cloud Migration"

	// Containerization: container build/runtime artifacts appeared.
	Containerization RefactorType = "Containerization"

	// InfrastructureAsCode: declarative infrastructure tooling appeared.
	InfrastructureAsCode RefactorType = "Infrastructure as Code"

	// EventDriven: messaging/eventing primitives were introduced.
	EventDriven RefactorType = "Event-driven"

	// Testing: test scaffolding or assertions were introduced.
	Testing RefactorType = "Testing"

	// DependencyInjection: wiring moved to injected collaborators.
	DependencyInjection RefactorType = "Dependency Injection"

	// DatabaseMigration: schema or ORM migration constructs appeared.
	DatabaseMigration RefactorType = "Database Migration"

	// APIModernization: legacy call idioms were replaced with modern
	// async/HTTP APIs.
	APIModernization RefactorType = "API Modernization"
)

// String returns the display name of the refactor type.
func (t RefactorType) String() string {
	return string(t)
}

// ChangeClass identifies which diff collection a kind rule inspects.
type ChangeClass string

const (
	// ClassAdded matches nodes present only in the refactored tree.
	ClassAdded ChangeClass = "added"

	// ClassRemoved matches nodes present only in the legacy tree.
	ClassRemoved ChangeClass = "removed"

	// ClassModified matches mapped pairs with recorded changes.
	ClassModified ChangeClass = "modified"
)

// RefactorTag is one classified, leveled, evidenced technique.
type RefactorTag struct {
	// Type is the technique name.
	Type RefactorType `json:"type"`

	// Level is the technique's impact level in [0,4]; the maximum over
	// all merged raw detections.
	Level int `json:"level"`

	// Evidence lists the distinct matched evidence strings, sorted.
	Evidence []string `json:"evidence"`

	// Confidence is the running average of the merged detections'
	// confidences, in [0,1].
	Confidence float64 `json:"confidence"`
}
