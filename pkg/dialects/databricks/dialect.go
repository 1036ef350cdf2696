package databricks

import (
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
	"github.com/leapstack-labs/sqlframe/pkg/token"
)

func init() {
	dialect.Register(Databricks)
}

// TokenQualify is the QUALIFY window filter clause.
var TokenQualify = token.Register("QUALIFY")

// Databricks is the Databricks SQL dialect.
var Databricks = dialect.New(Config).
	WithReservedWords(dialect.StandardReservedWords...).
	WithReservedWords("anti", "lateral", "minus", "pivot", "qualify", "semi", "unpivot").
	Build()
