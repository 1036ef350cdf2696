package config

import (
	"maps"
	"os"
	"regexp"

	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
)

// Default configuration values.
const (
	DefaultDatasetsDir = "datasets"
	DatasetFileName    = "schema.yaml"
	DatasetFileNameAlt = "schema.yml"
)

// defaultPorts are applied to network connections without a port.
var defaultPorts = map[string]int{
	"postgres":    5432,
	"mysql":       3306,
	"cockroachdb": 26257,
	"trino":       8080,
}

// DefaultSchemaForType returns the default schema for a database type.
// It looks up the dialect in the registry; if not found, returns "".
func DefaultSchemaForType(dbType string) string {
	if d, ok := dialect.Get(dbType); ok {
		return d.DefaultSchema
	}
	return ""
}

// ApplyConnectionDefaults fills in the port and schema for a connection to dbType.
// File-based connections (Path or DSN set) get no port.
func ApplyConnectionDefaults(dbType string, c *core.ConnectionConfig) {
	if c == nil {
		return
	}
	if c.Port == 0 && c.Host != "" && c.Path == "" && c.DSN == "" {
		c.Port = defaultPorts[dbType]
	}
	if c.Schema == "" {
		c.Schema = DefaultSchemaForType(dbType)
	}
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// ExpandEnvVars expands ${VAR} patterns with environment variable values.
// Unset variables are left as written.
func ExpandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if val, ok := os.LookupEnv(match[2 : len(match)-1]); ok {
			return val
		}
		return match
	})
}

// ExpandConnectionEnvVars expands environment variables in the connection's
// host, user, password, database, path and DSN.
func ExpandConnectionEnvVars(c *core.ConnectionConfig) {
	if c == nil {
		return
	}
	c.Host = ExpandEnvVars(c.Host)
	c.Username = ExpandEnvVars(c.Username)
	c.Password = ExpandEnvVars(c.Password)
	c.Database = ExpandEnvVars(c.Database)
	c.Path = ExpandEnvVars(c.Path)
	c.DSN = ExpandEnvVars(c.DSN)
}

// MergeConnection merges two connections, with override taking precedence
// field by field. Options and params are merged key by key.
func MergeConnection(base, override *core.ConnectionConfig) *core.ConnectionConfig {
	if base == nil && override == nil {
		return nil
	}
	if base == nil {
		base = &core.ConnectionConfig{}
	}
	if override == nil {
		override = &core.ConnectionConfig{}
	}

	merged := *base
	merged.Options = make(map[string]string, len(base.Options)+len(override.Options))
	merged.Params = make(map[string]any, len(base.Params)+len(override.Params))
	maps.Copy(merged.Options, base.Options)
	maps.Copy(merged.Params, base.Params)

	if override.Path != "" {
		merged.Path = override.Path
	}
	if override.DSN != "" {
		merged.DSN = override.DSN
	}
	if override.Host != "" {
		merged.Host = override.Host
	}
	if override.Port != 0 {
		merged.Port = override.Port
	}
	if override.Database != "" {
		merged.Database = override.Database
	}
	if override.Username != "" {
		merged.Username = override.Username
	}
	if override.Password != "" {
		merged.Password = override.Password
	}
	if override.Schema != "" {
		merged.Schema = override.Schema
	}
	maps.Copy(merged.Options, override.Options)
	maps.Copy(merged.Params, override.Params)

	return &merged
}
