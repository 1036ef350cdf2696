package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/sqlframe/pkg/adapter"
	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connectMemory(t *testing.T, seed ...string) *Adapter {
	t.Helper()
	adp := New(nil)
	require.NoError(t, adp.Connect(context.Background(), core.ConnectionConfig{Path: ":memory:"}))
	t.Cleanup(func() { _ = adp.Close() })

	for _, stmt := range seed {
		_, err := adp.DB.ExecContext(context.Background(), stmt)
		require.NoError(t, err, stmt)
	}
	return adp
}

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name   string
		config core.ConnectionConfig
		want   string
	}{
		{"empty path", core.ConnectionConfig{}, ":memory:"},
		{"memory", core.ConnectionConfig{Path: ":memory:"}, ":memory:"},
		{"file is read-only", core.ConnectionConfig{Path: "data/app.db"}, "file:data/app.db?mode=ro"},
		{"mode option", core.ConnectionConfig{Path: "app.db", Options: map[string]string{"mode": "rwc"}}, "file:app.db?mode=rwc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildDSN(tt.config))
		})
	}
}

func TestAdapter_Query(t *testing.T) {
	adp := connectMemory(t,
		`CREATE TABLE users (email TEXT NOT NULL, first_name TEXT, "timestamp" TEXT)`,
		`INSERT INTO users VALUES ('a@example.com', 'Ada', '2024-01-01'), ('b@example.com', 'Bob', '2024-01-02')`,
	)

	result, err := adp.Query(context.Background(), `SELECT
  "email",
  "first_name",
  "timestamp"
FROM "users"
LIMIT 5`)
	require.NoError(t, err)

	assert.Equal(t, []string{"email", "first_name", "timestamp"}, result.Columns)
	assert.Equal(t, [][]any{
		{"a@example.com", "Ada", "2024-01-01"},
		{"b@example.com", "Bob", "2024-01-02"},
	}, result.Rows)
}

func TestAdapter_QueryWithArgs(t *testing.T) {
	adp := connectMemory(t,
		`CREATE TABLE users (id INTEGER, email TEXT)`,
		`INSERT INTO users VALUES (1, 'a@example.com'), (2, 'b@example.com')`,
	)

	result, err := adp.Query(context.Background(), "SELECT email FROM users WHERE id = ?", 2)
	require.NoError(t, err)
	assert.Equal(t, [][]any{{"b@example.com"}}, result.Rows)
}

func TestAdapter_QueryError(t *testing.T) {
	adp := connectMemory(t)

	_, err := adp.Query(context.Background(), "SELECT * FROM missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to execute query")
}

func TestAdapter_GetTableMetadata(t *testing.T) {
	adp := connectMemory(t,
		`CREATE TABLE products (product_id INTEGER NOT NULL, name text, price REAL)`,
		`INSERT INTO products VALUES (1, 'Widget', 9.99), (2, 'Gadget', 19.99)`,
	)

	meta, err := adp.GetTableMetadata(context.Background(), "products")
	require.NoError(t, err)

	assert.Equal(t, "main", meta.Schema)
	assert.Equal(t, "products", meta.Name)
	assert.Equal(t, int64(2), meta.RowCount)
	require.Len(t, meta.Columns, 3)
	assert.Equal(t, core.Column{Name: "product_id", Type: "INTEGER", Position: 1}, meta.Columns[0])
	assert.Equal(t, core.Column{Name: "name", Type: "TEXT", Nullable: true, Position: 2}, meta.Columns[1])

	_, err = adp.GetTableMetadata(context.Background(), "missing")
	assert.Error(t, err)
}

func TestAdapter_ReadOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")

	rw := New(nil)
	require.NoError(t, rw.Connect(context.Background(), core.ConnectionConfig{
		Path:    path,
		Options: map[string]string{"mode": "rwc"},
	}))
	_, err := rw.DB.ExecContext(context.Background(), "CREATE TABLE t (id INTEGER)")
	require.NoError(t, err)
	require.NoError(t, rw.Close())

	ro := New(nil)
	require.NoError(t, ro.Connect(context.Background(), core.ConnectionConfig{Path: path}))
	defer func() { _ = ro.Close() }()

	_, err = ro.DB.ExecContext(context.Background(), "INSERT INTO t VALUES (1)")
	assert.Error(t, err, "default file mode is read-only")
}

func TestAdapter_Registered(t *testing.T) {
	assert.True(t, adapter.IsRegistered("sqlite"))
	assert.Equal(t, "sqlite", New(nil).Dialect().Name)
}
