package mysql

import (
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
)

func init() {
	dialect.Register(MySQL)
}

// mysqlReservedWords lists MySQL reserved words commonly used as column names.
var mysqlReservedWords = []string{
	"accessible", "add", "analyze", "change", "condition", "database",
	"databases", "div", "dual", "explain", "force", "generated", "groups",
	"high_priority", "ignore", "index", "interval", "key", "keys", "lines",
	"match", "mod", "optimize", "option", "range", "read", "regexp", "release",
	"rlike", "row", "rows", "schema", "show", "signal", "spatial", "sql",
	"ssl", "starting", "status", "use", "usage", "write", "xor", "zerofill",
}

// MySQL is the MySQL dialect.
var MySQL = dialect.New(Config).
	WithReservedWords(dialect.StandardReservedWords...).
	WithReservedWords(mysqlReservedWords...).
	Build()
