// Package postgres provides the PostgreSQL SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package postgres

import (
	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
)

// Config is the PostgreSQL dialect configuration.
// This is pure data - accessible by the adapter, the formatter and the safety policy.
var Config = &core.DialectConfig{
	Name:          "postgres",
	DefaultSchema: "public",
	Placeholder:   core.PlaceholderDollar,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormLowercase, // Postgres normalizes unquoted to lowercase
	},

	DollarQuoting: true,
	EscapeStrings: true,

	ReadStatements:   dialect.Extend(dialect.StandardReadStatements, "TABLE"),
	BlockedKeywords:  dialect.Extend(dialect.StandardBlockedKeywords, BlockedKeywords...),
	BlockedFunctions: BlockedFunctions,
}

// BlockedKeywords are PostgreSQL statements with side effects beyond the ANSI set.
var BlockedKeywords = []string{
	"COPY", "LISTEN", "NOTIFY", "DO", "CLUSTER", "REINDEX", "REFRESH", "DISCARD",
}

// BlockedFunctions read server files, reach other servers, signal backends or stall sessions.
var BlockedFunctions = []string{
	// Server filesystem
	"pg_read_file", "pg_read_binary_file", "pg_ls_dir", "pg_stat_file",
	"lo_import", "lo_export",
	// Remote connections
	"dblink", "dblink_exec", "dblink_connect",
	// Session and server control
	"pg_sleep", "pg_terminate_backend", "pg_cancel_backend",
	"set_config", "pg_reload_conf", "pg_rotate_logfile",
	"pg_advisory_lock",
	// Runs arbitrary query text
	"query_to_xml",
}
