package snowflake

import (
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
	"github.com/leapstack-labs/sqlframe/pkg/token"
)

func init() {
	dialect.Register(Snowflake)
}

// TokenQualify is the QUALIFY window filter clause.
var TokenQualify = token.Register("QUALIFY")

// Snowflake is the Snowflake SQL dialect.
var Snowflake = dialect.New(Config).
	WithReservedWords(dialect.StandardReservedWords...).
	WithReservedWords("account", "connection", "ilike", "increment", "issue",
		"minus", "qualify", "regexp", "rlike", "sample", "tablesample").
	Build()
