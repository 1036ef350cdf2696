package safety

import (
	"testing"

	_ "github.com/leapstack-labs/sqlframe/pkg/dialects/all"
	"github.com/leapstack-labs/sqlframe/pkg/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_Check(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		dialect string
		rule    string // empty means safe
	}{
		// Safe retrievals
		{"simple select", "SELECT\n  *\nFROM users", "mysql", ""},
		{"trailing semicolon", "SELECT 1;", "postgres", ""},
		{"cte", "WITH a AS (SELECT 1) SELECT * FROM a", "postgres", ""},
		{"parenthesized union", "(SELECT 1) UNION (SELECT 2)", "ansi", ""},
		{"values", "VALUES (1), (2)", "postgres", ""},
		{"keyword in string", "SELECT 'DROP TABLE users' AS s", "mysql", ""},
		{"keyword as quoted identifier", `SELECT "delete" FROM t`, "postgres", ""},
		{"keyword as backtick identifier", "SELECT `update` FROM t", "mysql", ""},
		{"qualified keyword column", "SELECT t.update FROM t", "postgres", ""},
		{"keyword in comment", "SELECT 1 -- DROP TABLE users", "postgres", ""},
		{"replace function", "SELECT REPLACE(name, 'a', 'b') FROM t", "mysql", ""},
		{"duckdb from first", "FROM users SELECT email", "duckdb", ""},
		{"postgres table statement", "TABLE users", "postgres", ""},
		{"dollar quoted keyword", "SELECT $x$ DELETE FROM t $x$", "postgres", ""},
		{"unknown dialect uses ansi", "SELECT 1", "oracle", ""},

		// Rejections
		{"empty", "", "mysql", RuleEmpty},
		{"only comment", "-- nothing", "mysql", RuleEmpty},
		{"drop", "DROP TABLE users", "mysql", RuleLeadingKeyword},
		{"insert", "insert into t values (1)", "postgres", RuleLeadingKeyword},
		{"stacked statements", "SELECT 1;\nDROP TABLE users", "mysql", RuleMultiStatement},
		{"stacked selects", "SELECT 1; SELECT 2", "postgres", RuleMultiStatement},
		{"data-modifying cte", "WITH d AS (DELETE FROM t RETURNING *) SELECT * FROM d", "postgres", RuleBlockedKeyword},
		{"select into", "SELECT * INTO backup FROM users", "postgres", RuleBlockedKeyword},
		{"mysql into outfile", "SELECT * FROM users INTO OUTFILE '/tmp/x'", "mysql", RuleBlockedKeyword},
		{"for update", "SELECT * FROM t FOR UPDATE", "postgres", RuleLockingRead},
		{"for share", "SELECT * FROM t FOR SHARE", "postgres", RuleLockingRead},
		{"for no key update", "SELECT * FROM t FOR NO KEY UPDATE", "postgres", RuleLockingRead},
		{"pg_sleep", "SELECT pg_sleep(10)", "postgres", RuleBlockedFunction},
		{"qualified pg_sleep", "SELECT pg_catalog.pg_sleep(10)", "postgres", RuleBlockedFunction},
		{"quoted pg_sleep", `SELECT "pg_sleep"(10)`, "postgres", RuleBlockedFunction},
		{"mysql sleep", "SELECT SLEEP(5)", "mysql", RuleBlockedFunction},
		{"mysql load_file", "SELECT load_file('/etc/passwd')", "mysql", RuleBlockedFunction},
		{"duckdb read_csv", "SELECT * FROM read_csv('/etc/passwd')", "duckdb", RuleBlockedFunction},
		{"duckdb install", "SELECT 1 FROM t WHERE 1 = (INSTALL httpfs)", "duckdb", RuleBlockedKeyword},
		{"sqlite attach", "SELECT 1 FROM t WHERE ATTACH", "sqlite", RuleBlockedKeyword},
		{"snowflake system function", "SELECT SYSTEM$CANCEL_QUERY('x')", "snowflake", RuleBlockedFunction},
		{"mysql executable comment", "SELECT 1 /*! ; DROP TABLE users */", "mysql", RuleMultiStatement},
		{"mysql hidden behind dash", "SELECT 1 --1\n; DROP TABLE t", "mysql", RuleMultiStatement},
		{"mysql hash comment does not hide newline", "SELECT 1 # x\n; DROP TABLE t", "mysql", RuleMultiStatement},
		{"leading paren then drop", "(DROP TABLE t)", "ansi", RuleLeadingKeyword},
	}

	p := NewPolicy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := p.Check(tt.sql, tt.dialect)
			if tt.rule == "" {
				assert.True(t, v.Safe, v.String())
				assert.True(t, p.IsSafe(tt.sql, tt.dialect))
				return
			}
			assert.False(t, v.Safe)
			assert.Equal(t, tt.rule, v.RuleID, v.String())
			assert.False(t, p.IsSafe(tt.sql, tt.dialect))
		})
	}
}

func TestPolicy_BackslashEscapesBothWays(t *testing.T) {
	// With backslash escapes the string ends at the last quote; without them
	// it ends after the backslash and DELETE is live code.
	sql := `SELECT 'a\' , (DELETE FROM t) , '' FROM t`

	v := NewPolicy().Check(sql, "mysql")
	require.False(t, v.Safe)
	assert.Equal(t, RuleBlockedKeyword, v.RuleID)
}

func TestPolicy_QuotingAmbiguity(t *testing.T) {
	// Each input runs through the formatter first, as the executor does.
	tests := []struct {
		name    string
		sql     string
		dialect string
		rule    string // empty means safe
	}{
		{"postgres escape string hides stacked drop", `SELECT E'\'' ; DROP TABLE users; -- '`, "postgres", RuleMultiStatement},
		{"postgres escape string hides pg_sleep", `SELECT E'\'' , pg_sleep(10) -- '`, "postgres", RuleBlockedFunction},
		{"postgres lowercase escape string", `select e'\'' , pg_sleep(10) -- '`, "postgres", RuleBlockedFunction},
		{"postgres plain string ends at backslash quote", `SELECT 'a\' , pg_sleep(1) -- '`, "postgres", RuleBlockedFunction},
		{"postgres escaped quote in escape string", `SELECT E'it\'s' AS s`, "postgres", ""},
		{"postgres doubled quote", `SELECT 'it''s; DROP TABLE t' AS s`, "postgres", ""},
		{"cockroachdb escape string hides stacked drop", `SELECT E'\'' ; DROP TABLE users; -- '`, "cockroachdb", RuleMultiStatement},
		{"cockroachdb escape string hides pg_sleep", `SELECT E'\'' , pg_sleep(10) -- '`, "cockroachdb", RuleBlockedFunction},
		{"duckdb escape string hides read_csv", `SELECT E'\'' , read_csv('/etc/passwd') -- '`, "duckdb", RuleBlockedFunction},
		{"mysql literal ends differently across modes", "SELECT 'a\\' -- ', 'b\n; DROP TABLE t; -- '", "mysql", RuleAmbiguousQuoting},
		{"mysql backslash quote", `SELECT 'it\'s'`, "mysql", RuleAmbiguousQuoting},
		{"mysql doubled quote", `SELECT 'it''s'`, "mysql", ""},
		{"mysql escaped backslash", `SELECT 'C:\\temp\\' AS dir`, "mysql", ""},
		{"mysql comment quote does not open a string", "SELECT 1 -- '\n; DROP TABLE t", "mysql", RuleMultiStatement},
		{"mysql hash comment quote", "SELECT 1 # '\n, (DELETE FROM t)", "mysql", RuleBlockedKeyword},
		{"databricks backslash quote", `SELECT 'a\' , (DELETE FROM t) , '' FROM t`, "databricks", RuleBlockedKeyword},
	}

	p := NewPolicy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canonical := format.SQL(tt.sql, tt.dialect)
			v := p.Check(canonical, tt.dialect)
			if tt.rule == "" {
				assert.True(t, v.Safe, "%q: %s", canonical, v)
				return
			}
			assert.False(t, v.Safe, "%q", canonical)
			assert.Equal(t, tt.rule, v.RuleID, "%q: %s", canonical, v)
		})
	}
}

func TestPolicy_AmbiguousQuotingRawAndCanonical(t *testing.T) {
	sql := "SELECT 'a\\' -- ', 'b\n; DROP TABLE t; -- '"
	p := NewPolicy()

	raw := p.Check(sql, "mysql")
	require.False(t, raw.Safe)
	assert.Equal(t, RuleMultiStatement, raw.RuleID)

	canonical := format.SQL(sql, "mysql")
	assert.Equal(t, "SELECT\n  'a\\' -- ',\n  'b\n; DROP TABLE t; -- '", canonical)
	v := p.Check(canonical, "mysql")
	require.False(t, v.Safe)
	assert.Equal(t, RuleAmbiguousQuoting, v.RuleID)
	assert.Equal(t, 2, v.Pos.Line)
}

func TestPolicy_Position(t *testing.T) {
	v := NewPolicy().Check("SELECT\n  pg_sleep(1)", "postgres")
	require.False(t, v.Safe)
	assert.Equal(t, 2, v.Pos.Line)
	assert.Equal(t, 3, v.Pos.Column)
	assert.Equal(t, "SF06 2:3: function pg_sleep is not allowed", v.String())
}

func TestPolicy_CanonicalText(t *testing.T) {
	// Formatting never turns rejected text into accepted text.
	inputs := []struct {
		sql     string
		dialect string
	}{
		{"select * from users;drop table users", "mysql"},
		{"SELECT - -1 + pg_sleep(1)", "postgres"},
		{"SELECT 1 /*!50000 ,(DELETE FROM t) */", "mysql"},
		{"select * from t for update", "postgres"},
	}
	p := NewPolicy()
	for _, in := range inputs {
		canonical := format.SQL(in.sql, in.dialect)
		assert.False(t, p.IsSafe(canonical, in.dialect), canonical)
	}
}

func TestVerdict_String(t *testing.T) {
	assert.Equal(t, "safe", Verdict{Safe: true}.String())
	assert.Equal(t, "SF01: no statement", Verdict{RuleID: RuleEmpty, Reason: "no statement"}.String())
}

func TestValidatorFunc(t *testing.T) {
	var got []string
	var v Validator = ValidatorFunc(func(canonical, dialect string) bool {
		got = append(got, canonical, dialect)
		return true
	})

	assert.True(t, v.IsSafe("SELECT 1", "mysql"))
	assert.Equal(t, []string{"SELECT 1", "mysql"}, got)
}

func TestLookupRule(t *testing.T) {
	r, ok := LookupRule(RuleBlockedFunction)
	require.True(t, ok)
	assert.Equal(t, "blocked-function", r.Name)

	_, ok = LookupRule("SF99")
	assert.False(t, ok)
}
