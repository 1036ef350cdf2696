// Package databricks provides the Databricks SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package databricks

import (
	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
)

// Config is the Databricks SQL dialect configuration.
var Config = &core.DialectConfig{
	Name:          "databricks",
	DefaultSchema: "default",
	Placeholder:   core.PlaceholderQuestion,
	Identifiers: core.IdentifierConfig{
		Quote:         "`",
		QuoteEnd:      "`",
		Escape:        "``",
		Normalization: core.NormCaseInsensitive,
	},

	BacktickIdentifiers: true,
	BackslashEscapes:    true,

	ReadStatements: dialect.StandardReadStatements,
	BlockedKeywords: dialect.Extend(dialect.StandardBlockedKeywords,
		"COPY", "OPTIMIZE", "RESTORE", "MSCK", "REFRESH", "CACHE", "UNCACHE",
	),
}
