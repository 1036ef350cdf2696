package duckdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/sqlframe/pkg/adapter"
	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seed runs setup statements directly on the handle; the adapter itself is read-only.
func seed(t *testing.T, adp *Adapter, stmts ...string) {
	t.Helper()
	for _, stmt := range stmts {
		_, err := adp.DB.ExecContext(context.Background(), stmt)
		require.NoError(t, err, stmt)
	}
}

func connectMemory(t *testing.T) *Adapter {
	t.Helper()
	adp := New(nil)
	require.NoError(t, adp.Connect(context.Background(), core.ConnectionConfig{Path: ":memory:"}))
	t.Cleanup(func() { _ = adp.Close() })
	return adp
}

func TestAdapter_Connect(t *testing.T) {
	tests := []struct {
		name      string
		setupPath func(t *testing.T) string
		verify    func(t *testing.T, path string)
	}{
		{
			name:      "in-memory",
			setupPath: func(*testing.T) string { return ":memory:" },
		},
		{
			name:      "empty path is in-memory",
			setupPath: func(*testing.T) string { return "" },
		},
		{
			name: "file-based",
			setupPath: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "test.duckdb")
			},
			verify: func(t *testing.T, path string) {
				_, err := os.Stat(path)
				assert.False(t, os.IsNotExist(err), "database file was not created")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adp := New(nil)

			dbPath := tt.setupPath(t)
			require.NoError(t, adp.Connect(context.Background(), core.ConnectionConfig{Path: dbPath}))
			defer func() { _ = adp.Close() }()

			assert.True(t, adp.IsConnected())
			if tt.verify != nil {
				tt.verify(t, dbPath)
			}
		})
	}
}

func TestAdapter_InvalidParams(t *testing.T) {
	adp := New(nil)
	err := adp.Connect(context.Background(), core.ConnectionConfig{
		Params: map[string]any{"extensionz": []any{"json"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duckdb params")
	assert.False(t, adp.IsConnected())
}

func TestAdapter_QueryBeforeConnect(t *testing.T) {
	_, err := New(nil).Query(context.Background(), "SELECT 1")
	assert.ErrorIs(t, err, adapter.ErrNotConnected)
}

func TestAdapter_Query(t *testing.T) {
	adp := connectMemory(t)
	seed(t, adp,
		`CREATE TABLE users (email VARCHAR, first_name VARCHAR, "timestamp" TIMESTAMP)`,
		`INSERT INTO users VALUES
			('a@example.com', 'Ada', '2024-01-01 00:00:00'),
			('b@example.com', 'Bob', '2024-01-02 00:00:00')`,
	)

	result, err := adp.Query(context.Background(), `SELECT
  "email",
  "first_name",
  "timestamp"
FROM "users"
LIMIT 5`)
	require.NoError(t, err)

	assert.Equal(t, []string{"email", "first_name", "timestamp"}, result.Columns)
	require.Equal(t, 2, result.Len())
	assert.Equal(t, "a@example.com", result.Rows[0][0])
	assert.Equal(t, "Bob", result.Rows[1][1])
}

func TestAdapter_QueryWithArgs(t *testing.T) {
	adp := connectMemory(t)
	seed(t, adp,
		`CREATE TABLE orders (order_id INTEGER, amount DOUBLE)`,
		`INSERT INTO orders VALUES (1, 100.0), (2, 150.0), (3, 200.0)`,
	)

	result, err := adp.Query(context.Background(), "SELECT order_id FROM orders WHERE amount > ? ORDER BY order_id", 120.0)
	require.NoError(t, err)
	require.Equal(t, 2, result.Len())
	assert.EqualValues(t, 2, result.Rows[0][0])
}

func TestAdapter_GetTableMetadata(t *testing.T) {
	tests := []struct {
		name        string
		setupTable  []string
		tableName   string
		wantErr     bool
		wantColumns []string
		wantRows    int64
	}{
		{
			name: "existing table with data",
			setupTable: []string{
				`CREATE TABLE products (product_id INTEGER NOT NULL, name VARCHAR, price DOUBLE)`,
				`INSERT INTO products VALUES (1, 'Widget', 9.99), (2, 'Gadget', 19.99)`,
			},
			tableName:   "products",
			wantColumns: []string{"product_id", "name", "price"},
			wantRows:    2,
		},
		{
			name:        "qualified name",
			setupTable:  []string{`CREATE TABLE events (id INTEGER)`},
			tableName:   "main.events",
			wantColumns: []string{"id"},
		},
		{
			name:      "nonexistent table",
			tableName: "nonexistent_table",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adp := connectMemory(t)
			seed(t, adp, tt.setupTable...)

			meta, err := adp.GetTableMetadata(context.Background(), tt.tableName)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, "main", meta.Schema)
			assert.Equal(t, tt.wantRows, meta.RowCount)
			names := make([]string, len(meta.Columns))
			for i, c := range meta.Columns {
				names[i] = c.Name
			}
			assert.Equal(t, tt.wantColumns, names)
		})
	}
}

func TestConnect_WithSettings(t *testing.T) {
	adp := New(nil)
	err := adp.Connect(context.Background(), core.ConnectionConfig{
		Path: ":memory:",
		Params: map[string]any{
			"settings": map[string]any{"threads": "2"},
		},
	})
	require.NoError(t, err)
	defer func() { _ = adp.Close() }()

	result, err := adp.Query(context.Background(), "SELECT current_setting('threads')")
	require.NoError(t, err)
	require.Equal(t, 1, result.Len())
	assert.Equal(t, "2", fmt.Sprint(result.Rows[0][0]))
}

func TestAdapter_Dialect(t *testing.T) {
	d := New(nil).Dialect()
	require.NotNil(t, d)
	assert.Equal(t, "duckdb", d.Name)
	assert.Equal(t, "main", d.DefaultSchema)
}
