package core

// Provenance records where a Query's text came from.
type Provenance int

const (
	// ProvenanceRaw is user-supplied text; identifiers are left exactly as written.
	ProvenanceRaw Provenance = iota
	// ProvenanceGenerated is text compiled from a Schema with fully quoted identifiers.
	ProvenanceGenerated
)

// String returns the string representation of Provenance.
func (p Provenance) String() string {
	switch p {
	case ProvenanceRaw:
		return "raw"
	case ProvenanceGenerated:
		return "generated"
	default:
		return "unknown"
	}
}

// Query is SQL text plus the dialect it runs against.
// Canonical is set when the canonical form is already known (generated queries).
type Query struct {
	Text       string
	Dialect    string
	Provenance Provenance
	Canonical  string
	Args       []any

	// Connection is handed to the backend executor unchanged.
	Connection ConnectionConfig
	// Dataset is the dataset path, used for logging only.
	Dataset string
}

// RawQuery returns a user-supplied query.
func RawQuery(text, dialect string, args ...any) Query {
	return Query{
		Text:       text,
		Dialect:    dialect,
		Provenance: ProvenanceRaw,
		Args:       args,
	}
}

// For returns a copy of q bound to the schema's connection and dataset path.
func (q Query) For(s *Schema) Query {
	q.Connection = s.Connection()
	q.Dataset = s.Path()
	return q
}

// IsGenerated reports whether the query was compiled from a Schema.
func (q Query) IsGenerated() bool {
	return q.Provenance == ProvenanceGenerated
}
