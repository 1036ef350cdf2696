// Package duckdb provides the DuckDB SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package duckdb

import (
	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
)

// Config is the DuckDB dialect configuration.
// This is pure data - accessible by the adapter, the formatter and the safety policy.
var Config = &core.DialectConfig{
	Name:          "duckdb",
	DefaultSchema: "main",
	Placeholder:   core.PlaceholderQuestion,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormCaseInsensitive,
	},

	DollarQuoting: true,
	EscapeStrings: true,

	// DuckDB allows FROM-first queries: FROM tbl SELECT a.
	ReadStatements: dialect.Extend(dialect.StandardReadStatements, "FROM", "TABLE"),
	BlockedKeywords: dialect.Extend(dialect.StandardBlockedKeywords,
		"INSTALL", "LOAD", "COPY", "EXPORT", "IMPORT", "PRAGMA", "CHECKPOINT",
	),
	// Table functions that reach the local filesystem, the network or the environment.
	BlockedFunctions: []string{
		"read_csv", "read_csv_auto", "read_parquet", "parquet_scan",
		"read_json", "read_json_auto", "read_ndjson", "read_text", "read_blob",
		"glob", "sniff_csv", "query", "query_table", "getenv",
	},
}
