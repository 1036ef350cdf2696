package duckdb

import (
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
	"github.com/leapstack-labs/sqlframe/pkg/token"
)

func init() {
	dialect.Register(DuckDB)
}

// TokenQualify is the QUALIFY window filter clause.
var TokenQualify = token.Register("QUALIFY")

// duckDBReservedWords are DuckDB reserved keywords beyond the ANSI set.
var duckDBReservedWords = []string{
	"analyse", "analyze", "any", "array", "asymmetric", "both", "collate",
	"deferrable", "do", "initially", "lateral", "leading", "only", "pivot",
	"pivot_longer", "pivot_wider", "placing", "qualify", "returning",
	"some", "summarize", "symmetric", "trailing", "unpivot", "variadic",
}

// DuckDB is the DuckDB dialect.
var DuckDB = dialect.New(Config).
	WithReservedWords(dialect.StandardReservedWords...).
	WithReservedWords(duckDBReservedWords...).
	Build()
