package sqlite

import (
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
)

func init() {
	dialect.Register(SQLite)
}

// SQLite is the SQLite dialect.
var SQLite = dialect.New(Config).
	WithReservedWords(dialect.StandardReservedWords...).
	WithReservedWords("index", "glob", "regexp", "indexed", "abort", "conflict").
	Build()
