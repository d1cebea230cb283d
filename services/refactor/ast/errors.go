// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ast

import "errors"

// Sentinel errors for the ast package.
var (
	// ErrUnsupportedLanguage indicates no grammar is registered for the
	// requested language. The analysis fails fast without partial output.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrParse indicates the source could not be parsed for the given
	// language. The whole analysis aborts; no partial result is emitted.
	ErrParse = errors.New("parse failed")

	// ErrInvalidContent indicates the source is not valid UTF-8.
	ErrInvalidContent = errors.New("invalid content")

	// ErrFileTooLarge indicates the source exceeds the parser size limit.
	ErrFileTooLarge = errors.New("file too large")
)
