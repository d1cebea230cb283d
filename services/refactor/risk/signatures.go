// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package risk

import "github.com/AleutianAI/refactorscope/services/refactor/ast"

// Signature is one lexical risk pattern.
//
// A signature is versionable data: extending detection means appending
// a record here. The table is compiled once at Scanner construction and
// read-only afterwards.
type Signature struct {
	// Kind is the risk category the signature reports under.
	Kind Kind

	// Severity is the fixed severity of any match.
	Severity Severity

	// Pattern is the regex applied to the raw source.
	Pattern string

	// Description names the finding; the scanner appends the match
	// count.
	Description string

	// Suggestion is the remediation hint carried on the flag.
	Suggestion string

	// Languages restricts the signature to specific source languages.
	// Empty means every supported language.
	Languages []ast.Language
}

// DefaultSignatures is the standard security/license/compatibility
// table.
var DefaultSignatures = []Signature{
	// Security family.
	{
		Kind:        KindSecurity,
		Severity:    SeverityHigh,
		Pattern:     `(?i)(password|passwd|secret|api[_-]?key|access[_-]?token)\s*[:=]\s*["'][^"']+["']`,
		Description: "hardcoded secret assignment",
		Suggestion:  "Load credentials from the environment or a secret manager instead of source literals.",
	},
	{
		Kind:        KindSecurity,
		Severity:    SeverityMedium,
		Pattern:     `(?i)\b(md5|sha1)\s*\(`,
		Description: "weak hash algorithm",
		Suggestion:  "Use SHA-256 or stronger; use bcrypt/argon2 for passwords.",
	},
	{
		Kind:        KindSecurity,
		Severity:    SeverityHigh,
		Pattern:     `(?i)\b(select|insert|update|delete)\b[^\n;]*["']\s*\+`,
		Description: "SQL built by string concatenation",
		Suggestion:  "Use parameterized queries or a prepared statement API.",
	},
	{
		Kind:        KindSecurity,
		Severity:    SeverityCritical,
		Pattern:     `\beval\s*\(`,
		Description: "eval of dynamic input",
		Suggestion:  "Remove eval; parse data explicitly or dispatch through a whitelist.",
	},
	{
		Kind:        KindSecurity,
		Severity:    SeverityHigh,
		Pattern:     `(?i)(\.innerhtml\s*=|document\.write\s*\()`,
		Description: "direct DOM injection sink",
		Suggestion:  "Use textContent or a sanitizing templating layer.",
		Languages:   []ast.Language{ast.LanguageJavaScript},
	},
	{
		Kind:        KindSecurity,
		Severity:    SeverityMedium,
		Pattern:     `\.\./`,
		Description: "relative path traversal sequence",
		Suggestion:  "Canonicalize and validate paths before touching the filesystem.",
	},

	// License family.
	{
		Kind:        KindLicense,
		Severity:    SeverityHigh,
		Pattern:     `(?i)\b(gnu\s+(affero\s+)?general\s+public\s+license|agpl|gplv?[23]?)\b`,
		Description: "GPL/AGPL license reference",
		Suggestion:  "Confirm license compatibility before shipping this code.",
	},
	{
		Kind:        KindLicense,
		Severity:    SeverityMedium,
		Pattern:     `(?i)\bcopyleft\b`,
		Description: "copyleft license reference",
		Suggestion:  "Review the obligations the copyleft terms impose on this codebase.",
	},
	{
		Kind:        KindLicense,
		Severity:    SeverityMedium,
		Pattern:     `(?i)(\bproprietary\b|all rights reserved)`,
		Description: "proprietary license reference",
		Suggestion:  "Verify redistribution rights for this code.",
	},

	// Compatibility family.
	{
		Kind:        KindCompatibility,
		Severity:    SeverityMedium,
		Pattern:     `(document\.all|attachEvent\s*\(|ActiveXObject)`,
		Description: "legacy browser API",
		Suggestion:  "Replace with standard DOM APIs; these do not exist in modern engines.",
		Languages:   []ast.Language{ast.LanguageJavaScript},
	},
	{
		Kind:        KindCompatibility,
		Severity:    SeverityLow,
		Pattern:     `(?i)@?deprecated`,
		Description: "deprecated API marker",
		Suggestion:  "Migrate off deprecated interfaces before they are removed.",
	},
	{
		Kind:        KindCompatibility,
		Severity:    SeverityMedium,
		Pattern:     `new\s+Buffer\s*\(`,
		Description: "unsafe Buffer constructor",
		Suggestion:  "Use Buffer.from or Buffer.alloc.",
		Languages:   []ast.Language{ast.LanguageJavaScript},
	},
}
