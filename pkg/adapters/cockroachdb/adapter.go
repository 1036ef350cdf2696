// Package cockroachdb provides a CockroachDB adapter for sqlframe.
// It speaks the PostgreSQL wire protocol through lib/pq.
package cockroachdb

import (
	"context"
	"log/slog"
	"net"
	"net/url"
	"strconv"

	"github.com/leapstack-labs/sqlframe/pkg/adapter"
	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
	crdbdialect "github.com/leapstack-labs/sqlframe/pkg/dialects/cockroachdb"

	_ "github.com/lib/pq" // registers the "postgres" driver
)

// Adapter implements the adapter.Adapter interface for CockroachDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new CockroachDB adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Dialect returns the CockroachDB dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return crdbdialect.CockroachDB
}

// Connect establishes a connection to CockroachDB.
func (a *Adapter) Connect(ctx context.Context, cfg core.ConnectionConfig) error {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = buildURL(cfg)
	}

	a.Logger.Debug("connecting to cockroachdb", slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	if err := a.Open(ctx, "postgres", dsn); err != nil {
		return err
	}
	a.Cfg = cfg
	return nil
}

// buildURL constructs a postgresql:// connection URL.
func buildURL(cfg core.ConnectionConfig) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 26257
	}

	u := url.URL{
		Scheme: "postgresql",
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/" + cfg.Database,
	}
	switch {
	case cfg.Username != "" && cfg.Password != "":
		u.User = url.UserPassword(cfg.Username, cfg.Password)
	case cfg.Username != "":
		u.User = url.User(cfg.Username)
	}

	q := url.Values{}
	q.Set("sslmode", "disable")
	for k, v := range cfg.Options {
		q.Set(k, v)
	}
	if cfg.Schema != "" {
		q.Set("search_path", cfg.Schema)
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// GetTableMetadata retrieves metadata for a specified table.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*core.TableMetadata, error) {
	return a.GetTableMetadataCommon(ctx, table, a.Dialect())
}

var _ adapter.Adapter = (*Adapter)(nil)
