// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlframe/internal/cli/output"

	// sqlite driver for seeding test databases.
	_ "modernc.org/sqlite"
)

// UsersDataset is the dataset path created by SetupTestProject.
const UsersDataset = "acme/users"

// SetupTestProject creates a temporary project: a sqlite database with a
// users table, a sqlframe.yaml with a "local" connection to it, and the
// acme/users dataset. It returns the project root.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	dbPath := filepath.Join(root, "data", "app.db")
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("failed to create data directory: %v", err)
	}
	seedUsers(t, dbPath)

	cfg := "connections:\n  local:\n    path: " + dbPath + "\n"
	if err := os.WriteFile(filepath.Join(root, "sqlframe.yaml"), []byte(cfg), 0644); err != nil {
		t.Fatalf("failed to create sqlframe.yaml: %v", err)
	}

	WriteDataset(t, root, UsersDataset, `name: users
description: Application users
source:
  type: sqlite
  table: users
  connection_ref: local
columns:
  - name: email
    type: string
  - name: first_name
    type: string
  - name: timestamp
    type: datetime
`)

	return root
}

// WriteDataset writes datasets/<path>/schema.yaml under root.
func WriteDataset(t *testing.T, root, path, content string) {
	t.Helper()

	dir := filepath.Join(root, "datasets", filepath.FromSlash(path))
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "schema.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to create schema.yaml: %v", err)
	}
}

func seedUsers(t *testing.T, dbPath string) {
	t.Helper()

	db, err := sql.Open("sqlite", "file:"+dbPath+"?mode=rwc")
	if err != nil {
		t.Fatalf("failed to open %s: %v", dbPath, err)
	}
	defer func() { _ = db.Close() }()

	stmts := []string{
		`CREATE TABLE users ("timestamp" TEXT, first_name TEXT, email TEXT)`,
		`INSERT INTO users VALUES ('2024-01-01T00:00:00Z', 'Alice', 'alice@example.com')`,
		`INSERT INTO users VALUES ('2024-01-02T00:00:00Z', 'Bob', 'bob@example.com')`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to seed users: %v", err)
		}
	}
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererText creates a new test renderer in text mode (simulated TTY).
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, true)
}

// NewTestRendererMarkdown creates a new test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// Output returns the combined stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes ANSI escape codes from s.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and basic structure.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
