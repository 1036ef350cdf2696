package postgres

import (
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
)

func init() {
	dialect.Register(Postgres)
}

// pgReservedWords extends the ANSI list with PostgreSQL-only reserved words
// (pg_get_keywords() with catcode 'R').
var pgReservedWords = []string{
	"analyse", "analyze", "array", "asymmetric", "authorization", "binary",
	"both", "collate", "concurrently", "current_catalog", "current_role",
	"current_schema", "deferrable", "do", "freeze", "ilike", "initially",
	"isnull", "lateral", "leading", "localtime", "localtimestamp", "notnull",
	"only", "overlaps", "placing", "returning", "session_user", "similar",
	"some", "symmetric", "tablesample", "trailing", "variadic", "verbose",
}

// Postgres is the PostgreSQL dialect.
var Postgres = dialect.New(Config).
	WithReservedWords(dialect.StandardReservedWords...).
	WithReservedWords(pgReservedWords...).
	Build()
