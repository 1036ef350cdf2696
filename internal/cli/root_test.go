package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlframe/internal/cli/commands"
	"github.com/leapstack-labs/sqlframe/internal/cli/config"
	"github.com/leapstack-labs/sqlframe/internal/cli/output"
	"github.com/leapstack-labs/sqlframe/internal/cli/testutil"
	"github.com/leapstack-labs/sqlframe/pkg/core"
)

type result struct {
	out    string
	errOut string
	err    error
}

func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	config.ResetConfig()
	cfgFile = ""

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return result{out: out.String(), errOut: errOut.String(), err: err}
}

func TestHead(t *testing.T) {
	root := testutil.SetupTestProject(t)

	res := execute(t, "", "head", testutil.UsersDataset, "--project-dir", root)
	require.NoError(t, res.err, res.errOut)

	want := "| email | first_name | timestamp |\n" +
		"| --- | --- | --- |\n" +
		"| alice@example.com | Alice | 2024-01-01T00:00:00Z |\n" +
		"| bob@example.com | Bob | 2024-01-02T00:00:00Z |\n" +
		"\n(2 rows)\n"
	assert.Equal(t, want, res.out)
	testutil.AssertNoANSI(t, res.out)
}

func TestHead_JSON(t *testing.T) {
	root := testutil.SetupTestProject(t)

	res := execute(t, "", "head", testutil.UsersDataset, "--project-dir", root, "-o", "json")
	require.NoError(t, res.err, res.errOut)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "alice@example.com", rows[0]["email"])
	assert.Equal(t, "Bob", rows[1]["first_name"])
}

func TestHead_ShowSQL(t *testing.T) {
	root := testutil.SetupTestProject(t)

	res := execute(t, "", "head", testutil.UsersDataset, "--project-dir", root, "--show-sql", "-f", "csv")
	require.NoError(t, res.err, res.errOut)

	assert.Contains(t, res.errOut, "SELECT\n  \"email\",\n  \"first_name\",\n  \"timestamp\"\nFROM \"users\"\nLIMIT 5\n")
	assert.True(t, strings.HasPrefix(res.out, "email,first_name,timestamp\n"))
}

func TestHead_Errors(t *testing.T) {
	root := testutil.SetupTestProject(t)
	testutil.WriteDataset(t, root, "acme/warehouse", `name: warehouse
source:
  type: snowflake
  table: events
columns:
  - name: id
`)

	t.Run("missing dataset", func(t *testing.T) {
		res := execute(t, "", "head", "acme/nope", "--project-dir", root)
		require.Error(t, res.err)
		assert.Contains(t, res.err.Error(), "dataset not found")
	})

	t.Run("no backend", func(t *testing.T) {
		res := execute(t, "", "head", "acme/warehouse", "--project-dir", root)
		assert.ErrorIs(t, res.err, core.ErrBackendUnavailable)
	})
}

func TestQuery(t *testing.T) {
	root := testutil.SetupTestProject(t)

	t.Run("argument with bind arg", func(t *testing.T) {
		res := execute(t, "", "query", testutil.UsersDataset,
			"SELECT first_name FROM users WHERE email = ?",
			"--arg", "bob@example.com", "-f", "csv", "--project-dir", root)
		require.NoError(t, res.err, res.errOut)
		assert.Equal(t, "first_name\nBob\n", res.out)
	})

	t.Run("stdin", func(t *testing.T) {
		res := execute(t, "SELECT COUNT(*) AS n FROM users", "query", testutil.UsersDataset,
			"-f", "csv", "--project-dir", root)
		require.NoError(t, res.err, res.errOut)
		assert.Equal(t, "n\n2\n", res.out)
	})

	t.Run("input file", func(t *testing.T) {
		sqlFile := filepath.Join(t.TempDir(), "q.sql")
		require.NoError(t, os.WriteFile(sqlFile, []byte("SELECT email FROM users ORDER BY email DESC LIMIT 1"), 0600))

		res := execute(t, "", "query", testutil.UsersDataset, "-i", sqlFile, "-f", "csv", "--project-dir", root)
		require.NoError(t, res.err, res.errOut)
		assert.Equal(t, "email\nbob@example.com\n", res.out)
	})

	t.Run("rejected", func(t *testing.T) {
		res := execute(t, "", "query", testutil.UsersDataset, "DELETE FROM users", "--project-dir", root)
		assert.ErrorIs(t, res.err, core.ErrMaliciousQuery)

		res = execute(t, "", "query", testutil.UsersDataset, "SELECT COUNT(*) FROM users", "-f", "csv", "--project-dir", root)
		require.NoError(t, res.err, res.errOut)
		assert.Equal(t, "COUNT(*)\n2\n", res.out, "rejected statements never reach the database")
	})

	t.Run("backend error", func(t *testing.T) {
		res := execute(t, "", "query", testutil.UsersDataset, "SELECT missing FROM users", "--project-dir", root)
		assert.ErrorIs(t, res.err, core.ErrBackendExecution)
	})
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	t.Run("safe", func(t *testing.T) {
		res := execute(t, "", "validate", "select * from users", "--project-dir", dir)
		require.NoError(t, res.err)
		assert.Contains(t, res.out, "```sql\nSELECT\n  *\nFROM users\n```")
		assert.Contains(t, res.out, "- **Verdict:** safe")
		testutil.AssertValidMarkdown(t, res.out)
	})

	t.Run("unsafe json", func(t *testing.T) {
		res := execute(t, "DROP TABLE users", "validate", "-o", "json", "--project-dir", dir)
		assert.ErrorIs(t, res.err, commands.ErrUnsafeQuery)

		var got output.Validation
		require.NoError(t, json.Unmarshal([]byte(res.out), &got))
		assert.False(t, got.Safe)
		assert.Equal(t, "SF03", got.Rule)
		assert.Equal(t, "ansi", got.Dialect)
	})

	t.Run("mysql executable comment", func(t *testing.T) {
		res := execute(t, "", "validate", "--dialect", "mysql", "SELECT 1 /*! ; DROP TABLE t */", "--project-dir", dir)
		assert.ErrorIs(t, res.err, commands.ErrUnsafeQuery)
	})

	t.Run("unknown dialect warns", func(t *testing.T) {
		res := execute(t, "", "validate", "--dialect", "oracle", "SELECT 1", "--project-dir", dir)
		require.NoError(t, res.err)
		assert.Contains(t, res.errOut, `unknown dialect "oracle"`)
	})

	t.Run("no input", func(t *testing.T) {
		res := execute(t, "", "validate", "--project-dir", dir)
		require.Error(t, res.err)
	})
}

func TestFormat(t *testing.T) {
	res := execute(t, "", "format", "select email from users where email = ?", "--project-dir", t.TempDir())
	require.NoError(t, res.err)
	assert.Equal(t, "SELECT\n  email\nFROM users\nWHERE\n  email = ?\n", res.out)
}

func TestDatasets(t *testing.T) {
	root := testutil.SetupTestProject(t)
	testutil.WriteDataset(t, root, "acme/broken", "name: broken\n")

	res := execute(t, "", "datasets", "-o", "json", "--project-dir", root)
	require.NoError(t, res.err)

	var got output.DatasetList
	require.NoError(t, json.Unmarshal([]byte(res.out), &got))
	require.Equal(t, 1, got.Total)
	assert.Equal(t, "acme/users", got.Datasets[0].Path)
	assert.Equal(t, "sqlite", got.Datasets[0].Dialect)
	assert.Len(t, got.Datasets[0].Columns, 3)
	assert.Contains(t, res.errOut, "skipping acme/broken")
}

func TestDescribe(t *testing.T) {
	root := testutil.SetupTestProject(t)

	t.Run("yaml", func(t *testing.T) {
		res := execute(t, "", "describe", testutil.UsersDataset, "--format", "yaml", "--project-dir", root)
		require.NoError(t, res.err, res.errOut)
		assert.Contains(t, res.out, "path: acme/users\n")
		assert.Contains(t, res.out, "dialect: sqlite\n")
		assert.Contains(t, res.out, filepath.Join(root, "data", "app.db"))
	})

	t.Run("markdown", func(t *testing.T) {
		res := execute(t, "", "describe", testutil.UsersDataset, "--project-dir", root)
		require.NoError(t, res.err, res.errOut)
		assert.Contains(t, res.out, "# acme/users\n")
		assert.Contains(t, res.out, "- **Dialect:** sqlite\n")
		assert.Contains(t, res.out, "| email | string |  |\n")
		testutil.AssertValidMarkdown(t, res.out)
	})
}

func TestCheck(t *testing.T) {
	root := testutil.SetupTestProject(t)
	testutil.WriteDataset(t, root, "acme/warehouse", `name: warehouse
source:
  type: snowflake
  table: events
columns:
  - name: id
`)

	res := execute(t, "", "check", "-o", "json", "--project-dir", root)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "1 of 2 datasets failed")

	var got output.CheckSummary
	require.NoError(t, json.Unmarshal([]byte(res.out), &got))
	require.Len(t, got.Results, 2)
	assert.Equal(t, output.CheckResult{Dataset: "acme/users", Status: "success", Rows: 2}, got.Results[0])
	assert.Equal(t, "acme/warehouse", got.Results[1].Dataset)
	assert.Equal(t, "failed", got.Results[1].Status)
	assert.Equal(t, 1, got.Passed)
	assert.Equal(t, 1, got.Failed)

	res = execute(t, "", "check", testutil.UsersDataset, "--project-dir", root)
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "- ✓ acme/users: 2 rows")
}

func TestDialects(t *testing.T) {
	res := execute(t, "", "dialects", "-o", "json", "--project-dir", t.TempDir())
	require.NoError(t, res.err)

	var got []output.DialectInfo
	require.NoError(t, json.Unmarshal([]byte(res.out), &got))

	byName := make(map[string]output.DialectInfo, len(got))
	for _, d := range got {
		byName[d.Name] = d
	}
	assert.True(t, byName["sqlite"].Backend)
	assert.True(t, byName["postgres"].Backend)
	assert.False(t, byName["snowflake"].Backend)
	assert.Equal(t, "$1", byName["postgres"].Placeholder)
	assert.Equal(t, "public", byName["postgres"].DefaultSchema)
	assert.True(t, byName["ansi"].Default)
}

func TestIntrospect(t *testing.T) {
	root := testutil.SetupTestProject(t)

	res := execute(t, "", "introspect", "sqlite", "users", "--connection", "local",
		"--dataset", "acme/people", "--project-dir", root)
	require.NoError(t, res.err, res.errOut)
	assert.Contains(t, res.out, "Wrote")

	data, err := os.ReadFile(filepath.Join(root, "datasets", "acme", "people", "schema.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "connection_ref: local")
	assert.Contains(t, string(data), "- name: timestamp\n      type: text")

	res = execute(t, "", "head", "acme/people", "-f", "csv", "--project-dir", root)
	require.NoError(t, res.err, res.errOut)
	assert.True(t, strings.HasPrefix(res.out, "timestamp,first_name,email\n"))

	res = execute(t, "", "introspect", "sqlite", "users", "--connection", "local",
		"--dataset", "acme/people", "--project-dir", root)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "--force")
}

func TestVersionAndCompletion(t *testing.T) {
	res := execute(t, "", "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "sqlframe v"+Version)

	res = execute(t, "", "completion", "bash")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "sqlframe")
}

func TestGetConfigDefaults(t *testing.T) {
	cfg := GetConfig(context.Background())
	assert.Equal(t, config.DefaultDatasetsDir, cfg.DatasetsDir)
	assert.NotNil(t, GetRenderer(context.Background()))
}
