package query

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
	"github.com/leapstack-labs/sqlframe/pkg/format"
)

// PreviewLimit is the row bound of a preview query.
const PreviewLimit = 5

// BuildPreview compiles the bounded preview SELECT for a schema: every column
// double-quoted in declared order, the double-quoted table, LIMIT 5.
//
// The returned query is in canonical form (Text == Canonical) and is bound to
// the schema's connection and dataset path.
func BuildPreview(s *core.Schema) core.Query {
	quote := dialect.ANSI().QuoteIdentifier

	cols := make([]string, 0, len(s.ColumnNames()))
	for _, name := range s.ColumnNames() {
		cols = append(cols, quote(name))
	}

	// A schema always has at least one column, the only case ToSql rejects.
	text, _, _ := sq.Select(cols...).From(quote(s.Table())).Limit(PreviewLimit).ToSql()

	canonical := format.SQL(text, s.Dialect())
	return core.Query{
		Text:       canonical,
		Dialect:    s.Dialect(),
		Provenance: core.ProvenanceGenerated,
		Canonical:  canonical,
	}.For(s)
}
