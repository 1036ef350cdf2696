// Package mysql provides the MySQL SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package mysql

import (
	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
)

// Config is the MySQL dialect configuration.
// This is pure data - accessible by the adapter, the formatter and the safety policy.
var Config = &core.DialectConfig{
	Name:        "mysql",
	Placeholder: core.PlaceholderQuestion,
	Identifiers: core.IdentifierConfig{
		Quote:         "`",
		QuoteEnd:      "`",
		Escape:        "``",
		Normalization: core.NormCaseSensitive, // table names follow the filesystem
	},

	// MySQL lexing: `ident`, # comments, "--" needs a trailing space,
	// \' escapes and /*! ... */ comments run as code.
	BacktickIdentifiers:   true,
	HashComments:          true,
	DashCommentNeedsSpace: true,
	BackslashEscapes:      true,
	ExecutableComments:    true,

	ReadStatements: dialect.Extend(dialect.StandardReadStatements, "TABLE"),
	BlockedKeywords: dialect.Extend(dialect.StandardBlockedKeywords,
		"HANDLER", "LOAD", "OUTFILE", "DUMPFILE", "SHUTDOWN", "KILL", "FLUSH",
		"INSTALL", "UNINSTALL", "PREPARE", "DEALLOCATE",
	),
	BlockedFunctions: []string{
		"load_file", "sleep", "benchmark", "sys_exec", "sys_eval", "get_lock",
	},
}
