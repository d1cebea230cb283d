// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package risk performs an independent lexical scan of refactored
// source for security, license, and compatibility signatures.
//
// # Description
//
// The scan is purely textual: pre-compiled regex families run over the
// raw source, independent of the structural diff pipeline. Each matched
// signature yields one flag with a fixed severity and a description
// that includes the match count; flags are deduplicated by
// (kind, severity, description).
//
// # Thread Safety
//
// A Scanner is immutable after construction and safe for concurrent
// use from multiple goroutines.
package risk

// Kind categorizes a risk flag.
type Kind string

const (
	// KindSecurity marks injection, secret-exposure, and weak-crypto
	// findings.
	KindSecurity Kind = "security"

	// KindLicense marks license-contamination findings.
	KindLicense Kind = "license"

	// KindCompatibility marks deprecated-API and legacy-platform
	// findings.
	KindCompatibility Kind = "compatibility"

	// KindPerformance marks findings that degrade runtime behavior.
	KindPerformance Kind = "performance"

	// KindMaintainability marks findings that impede future change.
	KindMaintainability Kind = "maintainability"
)

// Severity grades a risk flag.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Flag is one lexical finding in the scanned source.
type Flag struct {
	// Kind is the risk category.
	Kind Kind `json:"kind"`

	// Severity is the fixed severity of the matched signature.
	Severity Severity `json:"severity"`

	// Description names the finding and its match count.
	Description string `json:"description"`

	// Suggestion is the remediation hint attached to the signature.
	Suggestion string `json:"suggestion"`
}
