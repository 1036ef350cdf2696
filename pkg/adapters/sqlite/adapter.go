// Package sqlite provides a SQLite database adapter for sqlframe, backed by
// the pure Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/sqlframe/pkg/adapter"
	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
	sqlitedialect "github.com/leapstack-labs/sqlframe/pkg/dialects/sqlite"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Dialect returns the SQLite dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return sqlitedialect.SQLite
}

// Connect opens the database file, or an in-memory database for ":memory:"
// or an empty path. Files are opened read-only unless options.mode says otherwise.
func (a *Adapter) Connect(ctx context.Context, cfg core.ConnectionConfig) error {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = buildDSN(cfg)
	}

	a.Logger.Debug("connecting to sqlite", slog.String("path", dsn))

	if err := a.Open(ctx, "sqlite", dsn); err != nil {
		return err
	}
	if dsn == ":memory:" {
		// Every pooled connection would otherwise see its own empty database.
		a.DB.SetMaxOpenConns(1)
	}
	a.Cfg = cfg
	return nil
}

func buildDSN(cfg core.ConnectionConfig) string {
	path := cfg.Path
	if path == "" || path == ":memory:" {
		return ":memory:"
	}

	mode := "ro"
	if m, ok := cfg.Options["mode"]; ok {
		mode = m
	}
	return "file:" + path + "?mode=" + mode
}

// GetTableMetadata reads column metadata with pragma_table_info; SQLite has
// no information_schema.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*core.TableMetadata, error) {
	if a.DB == nil {
		return nil, adapter.ErrNotConnected
	}

	schema, name := adapter.ParseQualifiedName(table, a.Dialect())

	rows, err := a.DB.QueryContext(ctx,
		`SELECT name, type, "notnull", cid FROM pragma_table_info(?, ?) ORDER BY cid`, name, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []core.Column
	for rows.Next() {
		var (
			col     core.Column
			notNull int
		)
		if err := rows.Scan(&col.Name, &col.Type, &notNull, &col.Position); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Position++
		col.Nullable = notNull == 0
		col.Type = strings.ToUpper(col.Type)
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found", table)
	}

	d := a.Dialect()
	var rowCount int64
	countQuery := "SELECT COUNT(*) FROM " + d.QuoteIdentifier(schema) + "." + d.QuoteIdentifier(name)
	if err := a.DB.QueryRowContext(ctx, countQuery).Scan(&rowCount); err != nil {
		rowCount = 0
	}

	return &core.TableMetadata{
		Schema:   schema,
		Name:     name,
		Columns:  columns,
		RowCount: rowCount,
	}, nil
}

var _ adapter.Adapter = (*Adapter)(nil)
