// Package loader exposes a dataset as a lazy table: a cheap preview fetched
// once, plus arbitrary follow-up queries that always go to the backend.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/leapstack-labs/sqlframe/pkg/query"
)

// ErrColumnMismatch is returned when a preview result cannot be aligned with
// the schema's columns.
var ErrColumnMismatch = errors.New("preview columns do not match schema")

// Executor runs a query. *query.Executor satisfies it.
type Executor interface {
	Execute(ctx context.Context, q core.Query) (*core.ResultSet, error)
}

var _ Executor = (*query.Executor)(nil)

// SQLLoader loads a VirtualTable for one schema.
type SQLLoader struct {
	schema   *core.Schema
	executor Executor
	logger   *slog.Logger
}

// Option configures a SQLLoader.
type Option func(*SQLLoader)

// WithExecutor sets the executor used for the preview and for RunQuery.
func WithExecutor(e Executor) Option {
	return func(l *SQLLoader) { l.executor = e }
}

// WithLogger sets the logger. nil discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(l *SQLLoader) { l.logger = logger }
}

// NewSQLLoader creates a loader for schema. Without WithExecutor it uses
// query.NewExecutor with the loader's logger.
func NewSQLLoader(schema *core.Schema, opts ...Option) *SQLLoader {
	l := &SQLLoader{schema: schema}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.New(slog.DiscardHandler)
	}
	if l.executor == nil {
		l.executor = query.NewExecutor(query.WithLogger(l.logger))
	}
	return l
}

// Schema returns the schema the loader was created with.
func (l *SQLLoader) Schema() *core.Schema {
	return l.schema
}

// Load runs the preview query once and returns a table holding the result.
// Errors from the executor are returned unchanged.
func (l *SQLLoader) Load(ctx context.Context) (*VirtualTable, error) {
	if l.schema == nil {
		return nil, fmt.Errorf("%w: nil schema", core.ErrInvalidSchema)
	}

	l.logger.Debug("loading preview", slog.String("dataset", l.schema.String()))

	result, err := l.executor.Execute(ctx, query.BuildPreview(l.schema))
	if err != nil {
		return nil, err
	}

	preview, err := alignColumns(result, l.schema.ColumnNames())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.schema, err)
	}

	return &VirtualTable{
		schema:   l.schema,
		executor: l.executor,
		preview:  preview,
	}, nil
}

// alignColumns returns a copy of rs whose columns are exactly names, in order.
//
// Backend columns are matched to names exactly first, then case-insensitively
// (some backends fold unquoted names). When names cannot be matched but the
// counts agree, columns are renamed by position. A nil rs is an empty result.
func alignColumns(rs *core.ResultSet, names []string) (*core.ResultSet, error) {
	if rs == nil {
		return &core.ResultSet{Columns: append([]string(nil), names...), Rows: [][]any{}}, nil
	}
	if idx, ok := matchColumns(rs.Columns, names); ok {
		rows := make([][]any, len(rs.Rows))
		for r, row := range rs.Rows {
			out := make([]any, len(idx))
			for i, src := range idx {
				if src < len(row) {
					out[i] = row[src]
				}
			}
			rows[r] = out
		}
		return &core.ResultSet{Columns: append([]string(nil), names...), Rows: rows}, nil
	}

	if len(rs.Columns) != len(names) {
		return nil, fmt.Errorf("%w: backend returned %d columns, schema declares %d",
			ErrColumnMismatch, len(rs.Columns), len(names))
	}

	rows := make([][]any, len(rs.Rows))
	for r, row := range rs.Rows {
		rows[r] = append([]any(nil), row...)
	}
	return &core.ResultSet{Columns: append([]string(nil), names...), Rows: rows}, nil
}

// matchColumns maps each name to its index in got.
func matchColumns(got, names []string) ([]int, bool) {
	exact := make(map[string]int, len(got))
	folded := make(map[string]int, len(got))
	for i, c := range got {
		if _, dup := exact[c]; !dup {
			exact[c] = i
		}
		k := strings.ToLower(c)
		if _, dup := folded[k]; !dup {
			folded[k] = i
		}
	}

	idx := make([]int, len(names))
	for i, n := range names {
		if j, ok := exact[n]; ok {
			idx[i] = j
			continue
		}
		if j, ok := folded[strings.ToLower(n)]; ok {
			idx[i] = j
			continue
		}
		return nil, false
	}
	return idx, true
}
