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

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/AleutianAI/refactorscope/services/refactor/ast"
)

// ErrNoSignatures is returned when no signature in the table compiles.
var ErrNoSignatures = errors.New("risk: no valid signatures")

// compiledSignature pairs a signature with its compiled pattern.
type compiledSignature struct {
	sig Signature
	re  *regexp.Regexp
}

// Scanner runs the signature table over source text.
type Scanner struct {
	compiled []compiledSignature
}

// NewScanner compiles a signature table into a reusable Scanner.
//
// Signatures whose pattern fails to compile are skipped; construction
// fails only when nothing compiles. Use DefaultSignatures for the
// standard table.
func NewScanner(sigs []Signature) (*Scanner, error) {
	s := &Scanner{compiled: make([]compiledSignature, 0, len(sigs))}
	for _, sig := range sigs {
		re, err := regexp.Compile(sig.Pattern)
		if err != nil {
			continue
		}
		s.compiled = append(s.compiled, compiledSignature{sig: sig, re: re})
	}
	if len(s.compiled) == 0 {
		return nil, ErrNoSignatures
	}
	return s, nil
}

// Scan runs every applicable signature over source and returns the
// deduplicated flags.
//
// When includeSecurityScan is false no family runs at all and the
// result is empty. Missing matches never error; an unmatched table
// simply yields an empty (non-nil) slice.
func (s *Scanner) Scan(source string, lang ast.Language, includeSecurityScan bool) []Flag {
	flags := make([]Flag, 0)
	if !includeSecurityScan || source == "" {
		return flags
	}

	seen := make(map[string]bool)
	for _, cs := range s.compiled {
		if !signatureAppliesTo(cs.sig, lang) {
			continue
		}
		matches := cs.re.FindAllStringIndex(source, -1)
		if len(matches) == 0 {
			continue
		}
		flag := Flag{
			Kind:        cs.sig.Kind,
			Severity:    cs.sig.Severity,
			Description: fmt.Sprintf("%s (%d matches)", cs.sig.Description, len(matches)),
			Suggestion:  cs.sig.Suggestion,
		}
		key := string(flag.Kind) + "\x1f" + string(flag.Severity) + "\x1f" + flag.Description
		if seen[key] {
			continue
		}
		seen[key] = true
		flags = append(flags, flag)
	}

	return flags
}

// signatureAppliesTo reports whether the signature runs for lang.
func signatureAppliesTo(sig Signature, lang ast.Language) bool {
	if len(sig.Languages) == 0 {
		return true
	}
	for _, l := range sig.Languages {
		if l == lang {
			return true
		}
	}
	return false
}
