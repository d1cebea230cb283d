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

import (
	"context"
	"errors"
	"testing"
)

func TestParse_ValidSources(t *testing.T) {
	tests := []struct {
		lang   Language
		source string
	}{
		{LanguageJavaScript, "const x = 1;\n"},
		{LanguageJava, "class A {}\n"},
		{LanguagePython, "x = 1\n"},
		{LanguageC, "int x = 1;\n"},
		{LanguageCPP, "int x = 1;\n"},
	}

	for _, tt := range tests {
		t.Run(tt.lang.String(), func(t *testing.T) {
			tree, err := Parse(context.Background(), []byte(tt.source), tt.lang)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			defer tree.Close()
			if tree.RootNode() == nil {
				t.Fatal("Parse() returned a tree with nil root")
			}
		})
	}
}

func TestParse_SyntaxErrorIsHardFailure(t *testing.T) {
	tests := []struct {
		name   string
		lang   Language
		source string
	}{
		{"javascript", LanguageJavaScript, "function ((( {"},
		{"java", LanguageJava, "class { int"},
		{"python", LanguagePython, "def add(:\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(context.Background(), []byte(tt.source), tt.lang)
			if !errors.Is(err, ErrParse) {
				t.Errorf("Parse() error = %v, want ErrParse", err)
			}
		})
	}
}

func TestParse_UnsupportedLanguage(t *testing.T) {
	_, err := Parse(context.Background(), []byte("x"), Language("cobol"))
	if !errors.Is(err, ErrUnsupportedLanguage) {
		t.Errorf("Parse() error = %v, want ErrUnsupportedLanguage", err)
	}
}

func TestParse_InvalidUTF8(t *testing.T) {
	_, err := Parse(context.Background(), []byte{0xff, 0xfe, 0xfd}, LanguageJavaScript)
	if !errors.Is(err, ErrInvalidContent) {
		t.Errorf("Parse() error = %v, want ErrInvalidContent", err)
	}
}

func TestParse_FileTooLarge(t *testing.T) {
	content := make([]byte, DefaultMaxFileSize+1)
	for i := range content {
		content[i] = ' '
	}
	_, err := Parse(context.Background(), content, LanguageJavaScript)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("Parse() error = %v, want ErrFileTooLarge", err)
	}
}

func TestParse_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Parse(ctx, []byte("const x = 1;"), LanguageJavaScript)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Parse() error = %v, want context.Canceled", err)
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{"javascript", LanguageJavaScript, false},
		{"js", LanguageJavaScript, false},
		{"JAVA", LanguageJava, false},
		{"py", LanguagePython, false},
		{"c", LanguageC, false},
		{"c++", LanguageCPP, false},
		{"cxx", LanguageCPP, false},
		{" cpp ", LanguageCPP, false},
		{"rust", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLanguage(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedLanguage) {
					t.Errorf("ParseLanguage(%q) error = %v, want ErrUnsupportedLanguage", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLanguage(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseLanguage(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMetadata_Fingerprint(t *testing.T) {
	a := Metadata{Name: "add", Parameters: []string{"a", "b"}}
	b := Metadata{Name: "add", Parameters: []string{"a", "b"}}
	c := Metadata{Name: "add", Parameters: []string{"a,b"}}

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical metadata produced different fingerprints")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("distinct parameter lists produced the same fingerprint")
	}
}

func TestSpan_String(t *testing.T) {
	s := Span{StartRow: 1, StartCol: 2, EndRow: 3, EndCol: 4}
	if got, want := s.String(), "1:2-3:4"; got != want {
		t.Errorf("Span.String() = %q, want %q", got, want)
	}
}
