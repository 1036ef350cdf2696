// Package mysql provides a MySQL database adapter for sqlframe.
package mysql

import (
	"context"
	"log/slog"
	"net"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/leapstack-labs/sqlframe/pkg/adapter"
	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
	mysqldialect "github.com/leapstack-labs/sqlframe/pkg/dialects/mysql"
)

// ansiQuotesMode appends ANSI_QUOTES to the session sql_mode so that
// generated queries, which always double-quote identifiers, run unchanged.
const ansiQuotesMode = "CONCAT(@@sql_mode, ',ANSI_QUOTES')"

// Adapter implements the adapter.Adapter interface for MySQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new MySQL adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Dialect returns the MySQL dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return mysqldialect.MySQL
}

// Connect establishes a connection to MySQL.
func (a *Adapter) Connect(ctx context.Context, cfg core.ConnectionConfig) error {
	dsn, err := buildMySQLDSN(cfg)
	if err != nil {
		return err
	}

	a.Logger.Debug("connecting to mysql", slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	if err := a.Open(ctx, "mysql", dsn); err != nil {
		return err
	}
	a.Cfg = cfg
	return nil
}

// buildMySQLDSN builds a go-sql-driver DSN. An explicit DSN is parsed and
// receives the same session settings.
func buildMySQLDSN(cfg core.ConnectionConfig) (string, error) {
	var mc *mysql.Config
	if cfg.DSN != "" {
		parsed, err := mysql.ParseDSN(cfg.DSN)
		if err != nil {
			return "", err
		}
		mc = parsed
	} else {
		host := cfg.Host
		if host == "" {
			host = "localhost"
		}
		port := cfg.Port
		if port == 0 {
			port = 3306
		}

		mc = mysql.NewConfig()
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(host, strconv.Itoa(port))
		mc.User = cfg.Username
		mc.Passwd = cfg.Password
		mc.DBName = cfg.Database
	}

	mc.ParseTime = true
	if mc.Params == nil {
		mc.Params = make(map[string]string)
	}
	for k, v := range cfg.Options {
		if k == "tls" {
			mc.TLSConfig = v
			continue
		}
		mc.Params[k] = v
	}
	if _, ok := mc.Params["sql_mode"]; !ok {
		mc.Params["sql_mode"] = ansiQuotesMode
	}

	return mc.FormatDSN(), nil
}

// GetTableMetadata retrieves metadata for a specified table.
// Unqualified names are looked up in the connected database.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*core.TableMetadata, error) {
	if !strings.Contains(table, ".") && a.Cfg.Database != "" {
		table = a.Cfg.Database + "." + table
	}
	return a.GetTableMetadataCommon(ctx, table, a.Dialect())
}

var _ adapter.Adapter = (*Adapter)(nil)
