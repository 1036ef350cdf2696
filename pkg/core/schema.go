package core

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

// ErrInvalidSchema is returned when a schema cannot be constructed.
var ErrInvalidSchema = errors.New("invalid schema")

// Schema is the immutable description of one dataset: the dialect it lives in,
// the table or view it reads from, and its ordered columns.
//
// Column order is authoritative for generated SQL and for result-column ordering.
type Schema struct {
	dialect string
	table   string
	columns []Column
	path    string
	conn    ConnectionConfig
}

// SchemaOption configures optional Schema fields.
type SchemaOption func(*Schema)

// WithPath sets the dataset path (e.g. "acme/users"). It is used for addressing
// and logging only.
func WithPath(path string) SchemaOption {
	return func(s *Schema) {
		s.path = path
	}
}

// WithConnection sets the connection descriptor passed to the backend.
func WithConnection(conn ConnectionConfig) SchemaOption {
	return func(s *Schema) {
		s.conn = cloneConnection(conn)
	}
}

// NewSchema builds a Schema. Dialect is normalized to lowercase.
// Column names must be non-empty and unique.
func NewSchema(dialect, table string, columns []Column, opts ...SchemaOption) (*Schema, error) {
	dialect = strings.ToLower(strings.TrimSpace(dialect))
	if dialect == "" {
		return nil, fmt.Errorf("%w: dialect is required", ErrInvalidSchema)
	}
	if strings.TrimSpace(table) == "" {
		return nil, fmt.Errorf("%w: table name is required", ErrInvalidSchema)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: at least one column is required", ErrInvalidSchema)
	}

	seen := make(map[string]struct{}, len(columns))
	cols := make([]Column, len(columns))
	for i, c := range columns {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: column %d has no name", ErrInvalidSchema, i+1)
		}
		if _, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrInvalidSchema, c.Name)
		}
		seen[c.Name] = struct{}{}
		c.Position = i + 1
		cols[i] = c
	}

	s := &Schema{
		dialect: dialect,
		table:   table,
		columns: cols,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dialect returns the source dialect identifier.
func (s *Schema) Dialect() string { return s.dialect }

// Table returns the table or view identifier.
func (s *Schema) Table() string { return s.table }

// Path returns the dataset path, or "" if none was set.
func (s *Schema) Path() string { return s.path }

// Columns returns a copy of the ordered column descriptors.
func (s *Schema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// ColumnNames returns the column names in declared order.
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// Connection returns a copy of the connection descriptor.
func (s *Schema) Connection() ConnectionConfig {
	return cloneConnection(s.conn)
}

// String returns a short human-readable identifier for logs.
func (s *Schema) String() string {
	if s.path != "" {
		return s.path
	}
	return s.dialect + ":" + s.table
}

func cloneConnection(c ConnectionConfig) ConnectionConfig {
	c.Options = maps.Clone(c.Options)
	c.Params = maps.Clone(c.Params)
	return c
}
