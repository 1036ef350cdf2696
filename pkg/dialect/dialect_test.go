package dialect

import (
	"testing"

	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/leapstack-labs/sqlframe/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderChaining(t *testing.T) {
	// Test that all builder methods can be chained
	d := NewDialect("test").
		Identifiers("`", "`", "``", core.NormCaseSensitive).
		DefaultSchema("main").
		PlaceholderStyle(core.PlaceholderDollar).
		Lexing(token.Options{Backticks: true}).
		WithReservedWords("order").
		ReadStatements("select").
		BlockKeywords("drop").
		BlockFunctions("SLEEP").
		Build()

	require.NotNil(t, d)
	assert.Equal(t, "test", d.GetName())
	assert.Equal(t, "main", d.DefaultSchema)
	assert.True(t, d.LexerOptions().Backticks)
	assert.True(t, d.AllowsLeading("SELECT"))
	assert.True(t, d.IsBlockedKeyword("Drop"))
	assert.True(t, d.IsBlockedFunction("sleep"))
	assert.Equal(t, "`order`", d.QuoteIdentifierIfNeeded("order"))
}

func TestNew_FromConfig(t *testing.T) {
	cfg := &core.DialectConfig{
		Name:                  "cfg",
		DefaultSchema:         "public",
		Placeholder:           core.PlaceholderDollar,
		BacktickIdentifiers:   true,
		HashComments:          true,
		DashCommentNeedsSpace: true,
		BackslashEscapes:      true,
		DollarQuoting:         true,
		ExecutableComments:    true,
		ReadStatements:        []string{"SELECT", "WITH"},
		BlockedKeywords:       []string{"DROP", "DELETE"},
		BlockedFunctions:      []string{"pg_sleep"},
	}
	d := New(cfg).Build()

	assert.Equal(t, token.Options{
		Backticks:             true,
		HashComments:          true,
		DashCommentNeedsSpace: true,
		BackslashEscapes:      true,
		DollarQuoting:         true,
		ExecutableComments:    true,
	}, d.LexerOptions())
	assert.Equal(t, []string{"SELECT", "WITH"}, d.ReadStatements())
	assert.Equal(t, []string{"DELETE", "DROP"}, d.BlockedKeywords())
	assert.Equal(t, []string{"pg_sleep"}, d.BlockedFunctions())
	assert.True(t, d.IsReservedWord("drop"), "blocked keywords are reserved")

	round := d.Config()
	assert.Equal(t, "cfg", round.Name)
	assert.Equal(t, "public", round.DefaultSchema)
	assert.True(t, round.ExecutableComments)
	assert.Equal(t, []string{"DELETE", "DROP"}, round.BlockedKeywords)
}

func TestNormalizationStrategies(t *testing.T) {
	tests := []struct {
		name  string
		norm  core.NormalizationStrategy
		input string
		want  string
	}{
		{"lowercase", core.NormLowercase, "FooBar", "foobar"},
		{"uppercase", core.NormUppercase, "FooBar", "FOOBAR"},
		{"case sensitive", core.NormCaseSensitive, "FooBar", "FooBar"},
		{"case insensitive", core.NormCaseInsensitive, "FooBar", "foobar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDialect("test").
				Identifiers(`"`, `"`, `""`, tt.norm).
				Build()

			assert.Equal(t, tt.want, d.NormalizeName(tt.input))
		})
	}
}

func TestQuoteIdentifier(t *testing.T) {
	d := NewDialect("test").WithReservedWords("user").Build()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "email", "email"},
		{"reserved", "user", `"user"`},
		{"reserved any case", "USER", `"USER"`},
		{"mixed case", "FirstName", `"FirstName"`},
		{"space", "first name", `"first name"`},
		{"leading digit", "1st", `"1st"`},
		{"embedded quote", `a"b`, `"a""b"`},
		{"empty", "", `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.QuoteIdentifierIfNeeded(tt.input))
		})
	}
}

func TestFormatPlaceholder(t *testing.T) {
	q := NewDialect("q").Build()
	p := NewDialect("p").PlaceholderStyle(core.PlaceholderDollar).Build()

	assert.Equal(t, "?", q.FormatPlaceholder(3))
	assert.Equal(t, "$3", p.FormatPlaceholder(3))
}

func TestRegistry(t *testing.T) {
	d := NewDialect("Registry_Test").Build()
	Register(d)

	got, ok := Get("registry_test")
	require.True(t, ok)
	assert.Same(t, d, got)
	assert.Contains(t, List(), "registry_test")

	assert.Same(t, d, GetOrDefault("REGISTRY_TEST"))
	assert.Same(t, ANSI(), GetOrDefault("no-such-dialect"))
}

func TestANSIBuiltin(t *testing.T) {
	d, ok := Get("ansi")
	require.True(t, ok)
	assert.Same(t, ANSI(), d)
	assert.Same(t, ANSI(), Default())

	assert.True(t, d.AllowsLeading("select"))
	assert.True(t, d.AllowsLeading("WITH"))
	assert.False(t, d.AllowsLeading("DROP"))
	for _, kw := range []string{"INSERT", "UPDATE", "DELETE", "DROP", "ALTER", "TRUNCATE"} {
		assert.True(t, d.IsBlockedKeyword(kw), kw)
	}
	for _, kw := range []string{"REPLACE", "SET", "GET", "SELECT"} {
		assert.False(t, d.IsBlockedKeyword(kw), kw)
	}
}

func TestExtend(t *testing.T) {
	base := []string{"a", "b"}
	out := Extend(base[:1], "c")

	assert.Equal(t, []string{"a", "c"}, out)
	assert.Equal(t, []string{"a", "b"}, base, "base is not mutated")
}
