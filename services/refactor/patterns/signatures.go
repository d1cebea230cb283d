// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package patterns

import "github.com/AleutianAI/refactorscope/services/refactor/ast"

// Rule is one match condition inside a Signature.
//
// A rule is either kind-based (Kinds non-empty: match a node kind in
// the given change class, optionally requiring a recorded name change)
// or lexical (Lexical non-empty: case-insensitive substring over node
// text, or over the file-level diff and summary when OverDiff is set).
type Rule struct {
	// Kinds lists node kinds this rule matches (kind-based rules).
	Kinds []string

	// On selects the diff collection a kind-based rule inspects.
	On ChangeClass

	// NameChanged requires the modified pair's change reasons to
	// mention "name" or "identifier". Only meaningful with
	// On == ClassModified.
	NameChanged bool

	// Lexical is the lowercase substring a lexical rule searches for.
	Lexical string

	// OverDiff scopes a lexical rule to each file's raw diff text and
	// AST summary instead of individual node texts, catching changes
	// invisible at the single-node level.
	OverDiff bool
}

// Signature binds a refactor type to its baseline level and rules.
type Signature struct {
	// Type is the technique this signature detects.
	Type RefactorType

	// Level is the baseline impact level in [0,4].
	Level int

	// Languages restricts the signature to specific source languages.
	// Empty means the signature applies to every supported language.
	Languages []ast.Language

	// Rules are evaluated independently; each match yields one raw
	// detection that is later merged per type.
	Rules []Rule
}

// appliesTo reports whether the signature is evaluated for lang.
func (s Signature) appliesTo(lang ast.Language) bool {
	if len(s.Languages) == 0 {
		return true
	}
	for _, l := range s.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// functionKinds spans the function/method declaration kinds of the
// supported grammars.
var functionKinds = []string{
	"function_declaration", "function_definition", "method_definition",
	"method_declaration", "arrow_function", "generator_function_declaration",
}

// classKinds spans the class/struct declaration kinds.
var classKinds = []string{
	"class_declaration", "class_definition", "class_specifier", "struct_specifier",
}

// importKinds spans the import/include/using statement kinds.
var importKinds = []string{
	"import_statement", "import_from_statement", "import_declaration",
	"preproc_include", "using_declaration",
}

// signatureLibrary is the static refactor-technique table.
//
// Versionable data, not code: extending detection means appending a
// record here, never touching the traversal in classify.go. The table
// is read-only for the process lifetime.
var signatureLibrary = []Signature{
	{
		Type:  ServiceExtraction,
		Level: 4,
		Rules: []Rule{
			{Lexical: "express", OverDiff: true},
			{Lexical: "restcontroller", OverDiff: true},
			{Lexical: "fastapi", OverDiff: true},
			{Lexical: "flask", OverDiff: true},
			{Lexical: "controller"},
			{Lexical: "router"},
			{Lexical: "endpoint"},
		},
	},
	{
		Type:  CloudMigration,
		Level: 4,
		Rules: []Rule{
			{Lexical: "aws-sdk", OverDiff: true},
			{Lexical: "boto3", OverDiff: true},
			{Lexical: "s3client", OverDiff: true},
			{Lexical: "lambda_handler", OverDiff: true},
			{Lexical: "azure.", OverDiff: true},
			{Lexical: "cloud.google", OverDiff: true},
		},
	},
	{
		Type:  Containerization,
		Level: 3,
		Rules: []Rule{
			{Lexical: "dockerfile", OverDiff: true},
			{Lexical: "docker-compose", OverDiff: true},
			{Lexical: "kubernetes", OverDiff: true},
			{Lexical: "k8s", OverDiff: true},
		},
	},
	{
		Type:  InfrastructureAsCode,
		Level: 3,
		Rules: []Rule{
			{Lexical: "terraform", OverDiff: true},
			{Lexical: "cloudformation", OverDiff: true},
			{Lexical: "pulumi", OverDiff: true},
			{Lexical: "ansible", OverDiff: true},
		},
	},
	{
		Type:  EventDriven,
		Level: 3,
		Rules: []Rule{
			{Lexical: "kafka", OverDiff: true},
			{Lexical: "rabbitmq", OverDiff: true},
			{Lexical: "sqs", OverDiff: true},
			{Lexical: "pubsub", OverDiff: true},
			{Lexical: "eventemitter"},
			{Lexical: ".publish("},
			{Lexical: ".subscribe("},
		},
	},
	{
		Type:  DatabaseMigration,
		Level: 3,
		Rules: []Rule{
			{Lexical: "alter table", OverDiff: true},
			{Lexical: "create table", OverDiff: true},
			{Lexical: "sequelize", OverDiff: true},
			{Lexical: "alembic", OverDiff: true},
			{Lexical: "flyway", OverDiff: true},
		},
	},
	{
		Type:  ExtractClass,
		Level: 2,
		Rules: []Rule{
			{Kinds: classKinds, On: ClassAdded},
		},
	},
	{
		Type:  MoveModularize,
		Level: 2,
		Rules: []Rule{
			{Kinds: importKinds, On: ClassAdded},
			{Kinds: importKinds, On: ClassRemoved},
			{Lexical: "require(", OverDiff: true},
			{Lexical: "#include", OverDiff: true},
		},
	},
	{
		Type:  Testing,
		Level: 2,
		Rules: []Rule{
			{Lexical: "describe(", OverDiff: true},
			{Lexical: "test(", OverDiff: true},
			{Lexical: "expect(", OverDiff: true},
			{Lexical: "assert", OverDiff: true},
			{Lexical: "unittest", OverDiff: true},
			{Lexical: "pytest", OverDiff: true},
			{Lexical: "@test", OverDiff: true},
		},
	},
	{
		Type:  DependencyInjection,
		Level: 2,
		Rules: []Rule{
			{Lexical: "@inject", OverDiff: true},
			{Lexical: "@autowired", OverDiff: true},
			{Lexical: "injectable", OverDiff: true},
		},
	},
	{
		Type:      APIModernization,
		Level:     2,
		Languages: []ast.Language{ast.LanguageJavaScript, ast.LanguageJava, ast.LanguagePython},
		Rules: []Rule{
			{Lexical: "async ", OverDiff: true},
			{Lexical: "await ", OverDiff: true},
			{Lexical: "fetch(", OverDiff: true},
			{Lexical: "axios", OverDiff: true},
			{Lexical: "promise"},
		},
	},
	{
		Type:  ExtractMethod,
		Level: 1,
		Rules: []Rule{
			{Kinds: functionKinds, On: ClassAdded},
		},
	},
	{
		Type:  InlineMethod,
		Level: 1,
		Rules: []Rule{
			{Kinds: functionKinds, On: ClassRemoved},
		},
	},
	{
		Type:  RenameSymbol,
		Level: 1,
		Rules: []Rule{
			{Kinds: nil, On: ClassModified, NameChanged: true},
		},
	},
}
