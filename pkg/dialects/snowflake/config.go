// Package snowflake provides the Snowflake SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package snowflake

import (
	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
)

// Config is the Snowflake dialect configuration.
var Config = &core.DialectConfig{
	Name:          "snowflake",
	DefaultSchema: "PUBLIC",
	Placeholder:   core.PlaceholderQuestion,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormUppercase, // Snowflake normalizes unquoted to uppercase
	},

	DollarQuoting: true,

	ReadStatements:  dialect.StandardReadStatements,
	BlockedKeywords: dialect.Extend(dialect.StandardBlockedKeywords, "COPY", "PUT", "UNDROP"),
	BlockedFunctions: []string{
		"SYSTEM$CANCEL_QUERY", "SYSTEM$CANCEL_ALL_QUERIES", "SYSTEM$ABORT_SESSION",
	},
}
