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

import "errors"

// Analysis errors. Parse and language failures from the ast package
// wrap through Analyze unchanged, so callers can match them with
// errors.Is against ast.ErrParse and ast.ErrUnsupportedLanguage.
var (
	// ErrNilRequest is returned when Analyze receives a nil request.
	ErrNilRequest = errors.New("refactor: nil request")

	// ErrMissingSource is returned when either source string is
	// entirely absent from the request.
	ErrMissingSource = errors.New("refactor: missing source")
)
