// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/refactorscope/pkg/logging"
	"github.com/AleutianAI/refactorscope/services/refactor"
	"github.com/AleutianAI/refactorscope/services/refactor/ast"
)

var (
	rootCmd = &cobra.Command{
		Use:   "refactorscope",
		Short: "Analyze the impact of a source refactoring",
		Long: `Refactorscope compares a legacy and a refactored version of a source
file, classifies the structural changes, tags the refactoring techniques
it recognizes, and scores the overall impact.`,
	}

	analyzeCmd = &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a legacy/refactored file pair",
		Long: `Parses both files with the grammar selected by --language, diffs their
normalized syntax trees, and prints the full analysis result as JSON on
stdout. The optional --hints file is a YAML map of legacy element names
to their refactored names.`,
		RunE: runAnalyzeCommand,
	}
	legacyPath     string
	refactoredPath string
	languageName   string
	displayPath    string
	hintsPath      string
	noSecurity     bool
	pretty         bool
	verbose        bool

	languagesCmd = &cobra.Command{
		Use:   "languages",
		Short: "List the supported source languages",
		Run: func(cmd *cobra.Command, args []string) {
			for _, lang := range ast.SupportedLanguages() {
				fmt.Println(lang)
			}
		},
	}
)

func init() {
	analyzeCmd.Flags().StringVar(&legacyPath, "legacy", "", "Path to the legacy source file (required)")
	analyzeCmd.Flags().StringVar(&refactoredPath, "refactored", "", "Path to the refactored source file (required)")
	analyzeCmd.Flags().StringVar(&languageName, "language", "", "Source language, e.g. javascript, java, python, c, cpp (required)")
	analyzeCmd.Flags().StringVar(&displayPath, "file", "", "Display path used in the per-file summary (defaults to the refactored file name)")
	analyzeCmd.Flags().StringVar(&hintsPath, "hints", "", "YAML file mapping legacy element names to refactored names")
	analyzeCmd.Flags().BoolVar(&noSecurity, "no-security", false, "Disable the lexical risk scan")
	analyzeCmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the JSON output")
	analyzeCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	_ = analyzeCmd.MarkFlagRequired("legacy")
	_ = analyzeCmd.MarkFlagRequired("refactored")
	_ = analyzeCmd.MarkFlagRequired("language")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(languagesCmd)
}

func runAnalyzeCommand(cmd *cobra.Command, args []string) error {
	lang, err := ast.ParseLanguage(languageName)
	if err != nil {
		return err
	}

	legacy, err := os.ReadFile(legacyPath)
	if err != nil {
		return fmt.Errorf("read legacy file: %w", err)
	}
	refactored, err := os.ReadFile(refactoredPath)
	if err != nil {
		return fmt.Errorf("read refactored file: %w", err)
	}

	hints, err := loadHints(hintsPath)
	if err != nil {
		return err
	}

	level := logging.LevelInfo
	if verbose {
		level = logging.LevelDebug
	}
	logger := logging.New(logging.Config{Level: level, Service: "cli"})
	defer logger.Close()

	svc, err := refactor.NewService(refactor.WithLogger(logger))
	if err != nil {
		return err
	}

	path := displayPath
	if path == "" {
		path = filepath.Base(refactoredPath)
	}

	result, err := svc.Analyze(cmd.Context(), &refactor.Request{
		LegacySource:     string(legacy),
		RefactoredSource: string(refactored),
		Language:         lang,
		FilePath:         path,
		Options: refactor.Options{
			MapHints:            hints,
			IncludeSecurityScan: !noSecurity,
		},
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}

// loadHints reads the optional YAML hints file.
func loadHints(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hints file: %w", err)
	}
	hints := make(map[string]string)
	if err := yaml.Unmarshal(data, &hints); err != nil {
		return nil, fmt.Errorf("parse hints file: %w", err)
	}
	return hints, nil
}
