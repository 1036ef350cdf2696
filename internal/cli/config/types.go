// Package config provides configuration management for the sqlframe CLI.
//
// Dataset descriptions are loaded by internal/config; this package adds the
// project file (sqlframe.yaml) with the datasets directory, output settings
// and named connections.
package config

import (
	intconfig "github.com/leapstack-labs/sqlframe/internal/config"
	"github.com/leapstack-labs/sqlframe/pkg/core"
)

// Config holds all CLI configuration options.
type Config struct {
	DatasetsDir  string `koanf:"datasets_dir"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`

	// Connection is used by datasets without connection_ref.
	Connection *core.ConnectionConfig `koanf:"connection"`
	// Connections are named connections, referenced by connection_ref.
	Connections map[string]core.ConnectionConfig `koanf:"connections"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultDatasetsDir = intconfig.DefaultDatasetsDir
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	ConfigFileName     = "sqlframe.yaml"
	ConfigFileNameAlt  = "sqlframe.yml"
)

// ConnectionFor resolves the connection a dataset runs with.
func (c *Config) ConnectionFor(ds *intconfig.Dataset) (core.ConnectionConfig, error) {
	return intconfig.ResolveConnection(ds, c.Connections, c.Connection)
}
