// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command refactorscope analyzes a legacy/refactored source pair and
// prints the analysis result as JSON.
//
// Usage:
//
//	refactorscope analyze --legacy old.js --refactored new.js --language javascript
//	refactorscope analyze --legacy Old.java --refactored New.java --language java --pretty
//	refactorscope languages
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
