package cockroachdb

import (
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
)

func init() {
	dialect.Register(CockroachDB)
}

// CockroachDB is the CockroachDB dialect.
var CockroachDB = dialect.New(Config).
	WithReservedWords(dialect.StandardReservedWords...).
	WithReservedWords("index", "family", "interleave").
	Build()
