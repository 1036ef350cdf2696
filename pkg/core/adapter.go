package core

// ConnectionConfig holds configuration for connecting to a database.
// It is the connection descriptor a backend executor receives on every call.
type ConnectionConfig struct {
	Path     string            `koanf:"path" yaml:"path,omitempty" json:"path,omitempty"`
	DSN      string            `koanf:"dsn" yaml:"dsn,omitempty" json:"dsn,omitempty"`
	Host     string            `koanf:"host" yaml:"host,omitempty" json:"host,omitempty"`
	Port     int               `koanf:"port" yaml:"port,omitempty" json:"port,omitempty"`
	Database string            `koanf:"database" yaml:"database,omitempty" json:"database,omitempty"`
	Username string            `koanf:"user" yaml:"user,omitempty" json:"user,omitempty"`
	Password string            `koanf:"password" yaml:"password,omitempty" json:"-"`
	Schema   string            `koanf:"schema" yaml:"schema,omitempty" json:"schema,omitempty"`
	Options  map[string]string `koanf:"options" yaml:"options,omitempty" json:"options,omitempty"`
	Params   map[string]any    `koanf:"params" yaml:"params,omitempty" json:"params,omitempty"`
}

// Column describes one column of a dataset or a live table.
type Column struct {
	Name        string `koanf:"name" yaml:"name" json:"name"`
	Type        string `koanf:"type" yaml:"type,omitempty" json:"type,omitempty"`
	Description string `koanf:"description" yaml:"description,omitempty" json:"description,omitempty"`
	Nullable    bool   `koanf:"-" yaml:"-" json:"-"`
	Position    int    `koanf:"-" yaml:"-" json:"-"`
}

// TableMetadata holds metadata about a database table.
type TableMetadata struct {
	Schema   string
	Name     string
	Columns  []Column
	RowCount int64
}
