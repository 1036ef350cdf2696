// Package trino provides a Trino adapter for sqlframe.
package trino

import (
	"context"
	"log/slog"
	"net"
	"net/url"
	"strconv"

	"github.com/leapstack-labs/sqlframe/pkg/adapter"
	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
	trinodialect "github.com/leapstack-labs/sqlframe/pkg/dialects/trino"
	"github.com/trinodb/trino-go-client/trino"
)

// Adapter implements the adapter.Adapter interface for Trino.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new Trino adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Dialect returns the Trino dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return trinodialect.Trino
}

// Connect opens a Trino client. Database maps to the catalog and Schema to
// the schema.
func (a *Adapter) Connect(ctx context.Context, cfg core.ConnectionConfig) error {
	dsn := cfg.DSN
	if dsn == "" {
		var err error
		if dsn, err = buildDSN(cfg); err != nil {
			return err
		}
	}

	a.Logger.Debug("connecting to trino", slog.String("host", cfg.Host), slog.String("catalog", cfg.Database))

	if err := a.Open(ctx, "trino", dsn); err != nil {
		return err
	}
	a.Cfg = cfg
	return nil
}

// buildDSN builds a trino-go-client DSN. Options "ssl" ("true") switches to
// https; "source" names the client; other options become session properties.
func buildDSN(cfg core.ConnectionConfig) (string, error) {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 8080
	}

	scheme := "http"
	if cfg.Options["ssl"] == "true" {
		scheme = "https"
	}

	server := url.URL{Scheme: scheme, Host: net.JoinHostPort(host, strconv.Itoa(port))}
	user := cfg.Username
	if user == "" {
		user = "sqlframe"
	}
	if cfg.Password != "" {
		server.User = url.UserPassword(user, cfg.Password)
	} else {
		server.User = url.User(user)
	}

	source := "sqlframe"
	props := map[string]string{}
	for k, v := range cfg.Options {
		switch k {
		case "ssl":
		case "source":
			source = v
		default:
			props[k] = v
		}
	}

	tc := &trino.Config{
		ServerURI: server.String(),
		Source:    source,
		Catalog:   cfg.Database,
		Schema:    cfg.Schema,
	}
	if len(props) > 0 {
		tc.SessionProperties = props
	}
	return tc.FormatDSN()
}

// GetTableMetadata retrieves metadata from the catalog's information_schema.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*core.TableMetadata, error) {
	if _, name := adapter.ParseQualifiedName(table, a.Dialect()); name == table && a.Cfg.Schema != "" {
		table = a.Cfg.Schema + "." + table
	}
	return a.GetTableMetadataCommon(ctx, table, a.Dialect())
}

var _ adapter.Adapter = (*Adapter)(nil)
