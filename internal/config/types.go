// Package config loads dataset descriptions for sqlframe.
// This package is decoupled from CLI concerns; the CLI layers project
// configuration (named connections, defaults) on top of it.
package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
)

// Dataset is one dataset description, loaded from datasets/<org>/<name>/schema.yaml.
type Dataset struct {
	Name        string         `koanf:"name" yaml:"name" json:"name"`
	Description string         `koanf:"description" yaml:"description,omitempty" json:"description,omitempty"`
	Source      SourceConfig   `koanf:"source" yaml:"source" json:"source"`
	Columns     []ColumnConfig `koanf:"columns" yaml:"columns" json:"columns"`

	// Path is the dataset path (org/name). It is set by the loader, not the file.
	Path string `koanf:"-" yaml:"-" json:"path"`
	// File is the schema file the dataset was read from.
	File string `koanf:"-" yaml:"-" json:"-"`
}

// SourceConfig describes where a dataset's rows live.
type SourceConfig struct {
	Type          string                 `koanf:"type" yaml:"type" json:"type"` // dialect name
	Table         string                 `koanf:"table" yaml:"table" json:"table"`
	Connection    *core.ConnectionConfig `koanf:"connection" yaml:"connection,omitempty" json:"connection,omitempty"`
	ConnectionRef string                 `koanf:"connection_ref" yaml:"connection_ref,omitempty" json:"connection_ref,omitempty"`
}

// ColumnConfig is one declared column.
type ColumnConfig struct {
	Name        string `koanf:"name" yaml:"name" json:"name"`
	Type        string `koanf:"type" yaml:"type,omitempty" json:"type,omitempty"`
	Description string `koanf:"description" yaml:"description,omitempty" json:"description,omitempty"`
}

// Validate checks the required fields of a dataset description.
func (d *Dataset) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(d.Source.Type) == "" {
		return fmt.Errorf("source.type is required\nHint: set it to a dialect name, one of %s",
			strings.Join(dialect.List(), ", "))
	}
	if strings.TrimSpace(d.Source.Table) == "" {
		return fmt.Errorf("source.table is required")
	}
	if len(d.Columns) == 0 {
		return fmt.Errorf("at least one column is required")
	}

	seen := make(map[string]bool, len(d.Columns))
	for i, c := range d.Columns {
		if c.Name == "" {
			return fmt.Errorf("columns[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("columns[%d]: duplicate column %q", i, c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

// Dialect returns the normalized dialect name.
func (d *Dataset) Dialect() string {
	return strings.ToLower(strings.TrimSpace(d.Source.Type))
}

// ColumnNames returns the declared column names in order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Schema converts the description into an immutable core.Schema using the
// dataset's inline connection.
func (d *Dataset) Schema() (*core.Schema, error) {
	var conn core.ConnectionConfig
	if d.Source.Connection != nil {
		conn = *d.Source.Connection
	}
	return d.SchemaWith(conn)
}

// SchemaWith converts the description into a core.Schema bound to conn.
func (d *Dataset) SchemaWith(conn core.ConnectionConfig) (*core.Schema, error) {
	cols := make([]core.Column, len(d.Columns))
	for i, c := range d.Columns {
		cols[i] = core.Column{Name: c.Name, Type: c.Type, Description: c.Description}
	}

	path := d.Path
	if path == "" {
		path = d.Name
	}
	return core.NewSchema(d.Source.Type, d.Source.Table, cols,
		core.WithPath(path),
		core.WithConnection(conn))
}
