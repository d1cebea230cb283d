// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package diff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	godiff "github.com/sourcegraph/go-diff/diff"
)

// lineStats produces the unified diff between the two sources and the
// added/removed line counts.
//
// The diff text is generated with go-difflib and parsed back with
// go-diff so the counts come from the same hunks the caller sees in
// FileChange.UnifiedDiff. Identical sources yield an empty diff and
// zero counts.
func lineStats(legacySrc, refactoredSrc, path string) (unified string, added, removed int, err error) {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(legacySrc),
		B:        difflib.SplitLines(refactoredSrc),
		FromFile: "legacy/" + path,
		ToFile:   "refactored/" + path,
		Context:  3,
	}

	unified, err = difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", 0, 0, fmt.Errorf("generate unified diff: %w", err)
	}
	if unified == "" {
		return "", 0, 0, nil
	}

	fd, err := godiff.ParseFileDiff([]byte(unified))
	if err != nil {
		return "", 0, 0, fmt.Errorf("parse unified diff: %w", err)
	}

	for _, hunk := range fd.Hunks {
		for _, line := range strings.Split(string(hunk.Body), "\n") {
			if line == "" {
				continue
			}
			switch line[0] {
			case '+':
				added++
			case '-':
				removed++
			}
		}
	}

	return unified, added, removed, nil
}
