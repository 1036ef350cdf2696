// Package adapter provides the backend contract for sqlframe.
//
// An Adapter wraps one database/sql driver. Adapters are registered per
// dialect in a Registry, which resolves them late: a backend is looked up
// and connected only when a query is about to run.
//
// Concrete adapter implementations are in pkg/adapters/ subdirectories.
// Linking an adapter into a binary is done with a blank import:
//
//	import _ "github.com/leapstack-labs/sqlframe/pkg/adapters/postgres"
package adapter

import (
	"context"

	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
)

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg core.ConnectionConfig) error

	// Close closes the database connection and releases resources.
	Close() error

	// Query executes a statement and materializes every row.
	Query(ctx context.Context, sql string, args ...any) (*core.ResultSet, error)

	// GetTableMetadata retrieves metadata for a specified table.
	GetTableMetadata(ctx context.Context, table string) (*core.TableMetadata, error)

	// Dialect returns the SQL dialect this adapter speaks.
	Dialect() *dialect.Dialect
}

// ExecFunc runs one query against a backend described by conn.
// Each call is self-contained: it connects, queries and disconnects.
type ExecFunc func(ctx context.Context, conn core.ConnectionConfig, query string, args ...any) (*core.ResultSet, error)

// Resolver maps a dialect to an ExecFunc.
// It returns *core.BackendUnavailableError when no backend can serve the dialect.
type Resolver interface {
	Resolve(dialect string) (ExecFunc, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(dialect string) (ExecFunc, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(dialect string) (ExecFunc, error) {
	return f(dialect)
}
