package trino

import (
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
)

func init() {
	dialect.Register(Trino)
}

// Trino is the Trino dialect.
var Trino = dialect.New(Config).
	WithReservedWords(dialect.StandardReservedWords...).
	WithReservedWords("cube", "rollup", "grouping", "extract", "normalize", "uescape").
	Build()
