package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/sqlframe/pkg/core"
	_ "github.com/leapstack-labs/sqlframe/pkg/dialects/all"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usersYAML = `name: users
description: Application users
source:
  type: MySQL
  table: users
  connection:
    host: ${SQLFRAME_TEST_DB_HOST}
    database: app
    user: app
    password: ${SQLFRAME_TEST_DB_PASSWORD}
    options:
      tls: "true"
columns:
  - name: email
    type: string
  - name: first_name
    type: string
  - name: timestamp
    type: datetime
    description: Signup time
`

func writeDataset(t *testing.T, root, datasetPath, name, content string) {
	t.Helper()
	dir := filepath.Join(root, filepath.FromSlash(datasetPath))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadDataset(t *testing.T) {
	t.Setenv("SQLFRAME_TEST_DB_HOST", "db.internal")
	t.Setenv("SQLFRAME_TEST_DB_PASSWORD", "s3cret")

	root := t.TempDir()
	writeDataset(t, root, "acme/users", DatasetFileName, usersYAML)

	ds, err := LoadDataset(root, "acme/users")
	require.NoError(t, err)

	assert.Equal(t, "users", ds.Name)
	assert.Equal(t, "acme/users", ds.Path)
	assert.Equal(t, filepath.Join(root, "acme", "users", DatasetFileName), ds.File)
	assert.Equal(t, "mysql", ds.Dialect())
	assert.Equal(t, []string{"email", "first_name", "timestamp"}, ds.ColumnNames())
	assert.Equal(t, "Signup time", ds.Columns[2].Description)

	require.NotNil(t, ds.Source.Connection)
	assert.Equal(t, "db.internal", ds.Source.Connection.Host)
	assert.Equal(t, "s3cret", ds.Source.Connection.Password)
	assert.Equal(t, "app", ds.Source.Connection.Username)
	assert.Equal(t, map[string]string{"tls": "true"}, ds.Source.Connection.Options)

	s, err := ds.Schema()
	require.NoError(t, err)
	assert.Equal(t, "mysql", s.Dialect())
	assert.Equal(t, "users", s.Table())
	assert.Equal(t, "acme/users", s.Path())
	assert.Equal(t, []string{"email", "first_name", "timestamp"}, s.ColumnNames())
	assert.Equal(t, "db.internal", s.Connection().Host)
}

func TestLoadDataset_AltFileName(t *testing.T) {
	root := t.TempDir()
	writeDataset(t, root, "acme/users", DatasetFileNameAlt, usersYAML)

	ds, err := LoadDataset(root, "acme/users")
	require.NoError(t, err)
	assert.Equal(t, "users", ds.Name)
}

func TestLoadDataset_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		wantErr string
	}{
		{"bad path", "users", "", "expected <org>/<name>"},
		{"traversal", "../users", "", "expected <org>/<name>"},
		{"too deep", "acme/users/v2", "", "expected <org>/<name>"},
		{"missing", "acme/missing", "", "dataset not found"},
		{
			name:    "no name",
			path:    "acme/users",
			content: "source:\n  type: mysql\n  table: users\ncolumns:\n  - name: email\n",
			wantErr: "name is required",
		},
		{
			name:    "no type",
			path:    "acme/users",
			content: "name: users\nsource:\n  table: users\ncolumns:\n  - name: email\n",
			wantErr: "source.type is required",
		},
		{
			name:    "no table",
			path:    "acme/users",
			content: "name: users\nsource:\n  type: mysql\ncolumns:\n  - name: email\n",
			wantErr: "source.table is required",
		},
		{
			name:    "no columns",
			path:    "acme/users",
			content: "name: users\nsource:\n  type: mysql\n  table: users\n",
			wantErr: "at least one column is required",
		},
		{
			name:    "duplicate column",
			path:    "acme/users",
			content: "name: users\nsource:\n  type: mysql\n  table: users\ncolumns:\n  - name: email\n  - name: email\n",
			wantErr: `duplicate column "email"`,
		},
		{
			name:    "unnamed column",
			path:    "acme/users",
			content: "name: users\nsource:\n  type: mysql\n  table: users\ncolumns:\n  - type: string\n",
			wantErr: "columns[0]: name is required",
		},
		{
			name:    "malformed yaml",
			path:    "acme/users",
			content: "name: [users\n",
			wantErr: "error reading",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.content != "" {
				writeDataset(t, root, tt.path, DatasetFileName, tt.content)
			}

			_, err := LoadDataset(root, tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestListDatasets(t *testing.T) {
	root := t.TempDir()
	writeDataset(t, root, "zeta/orders", DatasetFileName, usersYAML)
	writeDataset(t, root, "acme/users", DatasetFileName, usersYAML)
	writeDataset(t, root, "acme/events", DatasetFileNameAlt, usersYAML)
	writeDataset(t, root, "acme/notes", "README.md", "not a dataset")
	writeDataset(t, root, ".cache/x", DatasetFileName, usersYAML)
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.yaml"), []byte("x: 1"), 0o600))

	paths, err := ListDatasets(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"acme/events", "acme/users", "zeta/orders"}, paths)
}

func TestListDatasets_MissingRoot(t *testing.T) {
	paths, err := ListDatasets(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestResolveConnection(t *testing.T) {
	t.Setenv("SQLFRAME_TEST_PG_PASSWORD", "pw")

	named := map[string]core.ConnectionConfig{
		"prod": {
			Host:     "prod.internal",
			Username: "reader",
			Password: "${SQLFRAME_TEST_PG_PASSWORD}",
			Options:  map[string]string{"sslmode": "require"},
		},
	}
	fallback := &core.ConnectionConfig{Host: "localhost", Database: "dev"}

	tests := []struct {
		name    string
		ds      *Dataset
		want    core.ConnectionConfig
		wantErr string
	}{
		{
			name: "fallback",
			ds:   &Dataset{Source: SourceConfig{Type: "postgres"}},
			want: core.ConnectionConfig{
				Host: "localhost", Port: 5432, Database: "dev", Schema: "public",
				Options: map[string]string{}, Params: map[string]any{},
			},
		},
		{
			name: "named with inline override",
			ds: &Dataset{Source: SourceConfig{
				Type:          "postgres",
				ConnectionRef: "prod",
				Connection:    &core.ConnectionConfig{Database: "analytics", Options: map[string]string{"application_name": "sqlframe"}},
			}},
			want: core.ConnectionConfig{
				Host: "prod.internal", Port: 5432, Database: "analytics", Username: "reader", Password: "pw",
				Schema:  "public",
				Options: map[string]string{"sslmode": "require", "application_name": "sqlframe"},
				Params:  map[string]any{},
			},
		},
		{
			name: "file based gets no port",
			ds:   &Dataset{Source: SourceConfig{Type: "duckdb", Connection: &core.ConnectionConfig{Path: "warehouse.duckdb"}}},
			want: core.ConnectionConfig{
				Host: "localhost", Database: "dev", Path: "warehouse.duckdb", Port: 0, Schema: "main",
				Options: map[string]string{}, Params: map[string]any{},
			},
		},
		{
			name:    "unknown ref",
			ds:      &Dataset{Path: "acme/users", Source: SourceConfig{Type: "postgres", ConnectionRef: "staging"}},
			wantErr: `unknown connection "staging"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveConnection(tt.ds, named, fallback)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveConnection_NoneConfigured(t *testing.T) {
	got, err := ResolveConnection(&Dataset{Source: SourceConfig{Type: "sqlite"}}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, core.ConnectionConfig{Schema: "main"}, got)
}

func TestMergeConnection_DoesNotAliasBase(t *testing.T) {
	base := &core.ConnectionConfig{Options: map[string]string{"a": "1"}}
	merged := MergeConnection(base, &core.ConnectionConfig{Options: map[string]string{"b": "2"}})

	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, merged.Options)
	assert.Equal(t, map[string]string{"a": "1"}, base.Options)
	assert.Nil(t, MergeConnection(nil, nil))
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SQLFRAME_TEST_SET", "value")
	t.Setenv("SQLFRAME_TEST_EMPTY", "")

	assert.Equal(t, "value", ExpandEnvVars("${SQLFRAME_TEST_SET}"))
	assert.Equal(t, "x-value-y", ExpandEnvVars("x-${SQLFRAME_TEST_SET}-y"))
	assert.Equal(t, "", ExpandEnvVars("${SQLFRAME_TEST_EMPTY}"))
	assert.Equal(t, "${SQLFRAME_TEST_UNSET_VAR}", ExpandEnvVars("${SQLFRAME_TEST_UNSET_VAR}"))
	assert.Equal(t, "$PLAIN", ExpandEnvVars("$PLAIN"))
}

func TestDefaultSchemaForType(t *testing.T) {
	assert.Equal(t, "public", DefaultSchemaForType("postgres"))
	assert.Equal(t, "main", DefaultSchemaForType("duckdb"))
	assert.Equal(t, "", DefaultSchemaForType("mysql"))
	assert.Equal(t, "", DefaultSchemaForType("unknown"))
}
