// Package duckdb provides a DuckDB database adapter for sqlframe.
package duckdb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sqlframe/pkg/adapter"
	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
	duckdbdialect "github.com/leapstack-labs/sqlframe/pkg/dialects/duckdb"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// Adapter implements the adapter.Adapter interface for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new DuckDB adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Dialect returns the DuckDB dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return duckdbdialect.DuckDB
}

// Connect establishes a connection to DuckDB.
// Use ":memory:" (or an empty path) for an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg core.ConnectionConfig) error {
	params, err := parseParams(cfg.Params)
	if err != nil {
		return err
	}

	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	a.Logger.Debug("connecting to duckdb", slog.String("path", path))
	if err := a.Open(ctx, "duckdb", path); err != nil {
		return err
	}

	for _, stmt := range setupStatements(params) {
		if _, err := a.DB.ExecContext(ctx, stmt); err != nil {
			_ = a.Close()
			return fmt.Errorf("failed to prepare duckdb session: %w", err)
		}
	}

	a.Cfg = cfg
	return nil
}

// GetTableMetadata retrieves metadata for a specified table.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*core.TableMetadata, error) {
	return a.GetTableMetadataCommon(ctx, table, a.Dialect())
}

var _ adapter.Adapter = (*Adapter)(nil)
