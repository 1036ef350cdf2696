// Package cockroachdb provides the CockroachDB SQL dialect definition.
// CockroachDB shares PostgreSQL's lexical rules and adds cluster-level bulk
// statements to the blocked set.
package cockroachdb

import (
	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
	"github.com/leapstack-labs/sqlframe/pkg/dialects/postgres"
)

// Config is the CockroachDB dialect configuration.
var Config = &core.DialectConfig{
	Name:          "cockroachdb",
	DefaultSchema: "public",
	Placeholder:   core.PlaceholderDollar,
	Identifiers:   postgres.Config.Identifiers,

	DollarQuoting: true,
	EscapeStrings: true,

	ReadStatements: dialect.Extend(dialect.StandardReadStatements, "TABLE"),
	BlockedKeywords: dialect.Extend(
		dialect.Extend(dialect.StandardBlockedKeywords, postgres.BlockedKeywords...),
		"IMPORT", "EXPORT", "BACKUP", "RESTORE",
	),
	BlockedFunctions: postgres.BlockedFunctions,
}
