// Package trino provides the Trino SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package trino

import (
	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
)

// Config is the Trino dialect configuration.
var Config = &core.DialectConfig{
	Name:          "trino",
	DefaultSchema: "default",
	Placeholder:   core.PlaceholderQuestion,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormLowercase,
	},

	ReadStatements: dialect.Extend(dialect.StandardReadStatements, "TABLE"),
	BlockedKeywords: dialect.Extend(dialect.StandardBlockedKeywords,
		"PREPARE", "DEALLOCATE", "REFRESH", "ANALYZE",
	),
}
