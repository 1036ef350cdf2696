// Package sqlite provides the SQLite SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package sqlite

import (
	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
)

// Config is the SQLite dialect configuration.
var Config = &core.DialectConfig{
	Name:          "sqlite",
	DefaultSchema: "main",
	Placeholder:   core.PlaceholderQuestion,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormCaseInsensitive,
	},

	// SQLite accepts MySQL-style `ident` for compatibility.
	BacktickIdentifiers: true,

	ReadStatements:  dialect.StandardReadStatements,
	BlockedKeywords: dialect.Extend(dialect.StandardBlockedKeywords, "PRAGMA", "REINDEX"),
	BlockedFunctions: []string{
		"load_extension", "readfile", "writefile", "edit", "fts3_tokenizer",
	},
}
