// Package dialect provides SQL dialect configuration: identifier rules, lexing
// rules and the read-only statement policy.
//
// This package contains the public contract for dialect definitions used by the
// formatter, the safety validator and the query builder. Concrete dialect
// implementations are registered from pkg/dialects/*/ packages.
package dialect

import (
	"slices"
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/leapstack-labs/sqlframe/pkg/token"
)

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name        string
	Identifiers core.IdentifierConfig

	// Database-specific settings
	DefaultSchema string                // Default schema name ("main" for DuckDB, "public" for Postgres)
	Placeholder   core.PlaceholderStyle // How to format query parameters

	lexer token.Options

	reservedWords map[string]struct{} // Words that need quoting as identifiers

	// Read-only policy, keyed by uppercase keyword / lowercase function name
	readStatements   map[string]struct{}
	blockedKeywords  map[string]struct{}
	blockedFunctions map[string]struct{}
}

// Config returns the pure data configuration for this dialect.
func (d *Dialect) Config() *core.DialectConfig {
	return &core.DialectConfig{
		Name:                  d.Name,
		Identifiers:           d.Identifiers,
		DefaultSchema:         d.DefaultSchema,
		Placeholder:           d.Placeholder,
		BacktickIdentifiers:   d.lexer.Backticks,
		HashComments:          d.lexer.HashComments,
		DashCommentNeedsSpace: d.lexer.DashCommentNeedsSpace,
		BackslashEscapes:      d.lexer.BackslashEscapes,
		EscapeStrings:         d.lexer.EscapeStrings,
		DollarQuoting:         d.lexer.DollarQuoting,
		ExecutableComments:    d.lexer.ExecutableComments,
		ReadStatements:        d.ReadStatements(),
		BlockedKeywords:       d.BlockedKeywords(),
		BlockedFunctions:      d.BlockedFunctions(),
	}
}

// GetName returns the dialect name.
func (d *Dialect) GetName() string {
	return d.Name
}

// LexerOptions returns the tokenizer settings for this dialect.
func (d *Dialect) LexerOptions() token.Options {
	return d.lexer
}

// NormalizeName normalizes an identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case core.NormUppercase:
		return strings.ToUpper(name)
	case core.NormLowercase, core.NormCaseInsensitive:
		return strings.ToLower(name)
	default: // NormCaseSensitive
		return name
	}
}

// FormatPlaceholder returns a placeholder for the given parameter index (1-based).
// Returns "?" for PlaceholderQuestion style, "$1", "$2" etc. for PlaceholderDollar style.
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case core.PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	default: // PlaceholderQuestion
		return "?"
	}
}

// IsReservedWord returns true if the word needs quoting when used as an identifier.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[strings.ToLower(word)]
	return ok
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	// Escape any existing quote end characters in the name (e.g., ] -> ]])
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// QuoteIdentifierIfNeeded quotes an identifier only if it's a reserved word
// or cannot be written bare.
func (d *Dialect) QuoteIdentifierIfNeeded(name string) string {
	if d.IsReservedWord(name) || !isBareIdentifier(name) {
		return d.QuoteIdentifier(name)
	}
	return name
}

// AllowsLeading reports whether a statement may start with the given keyword.
func (d *Dialect) AllowsLeading(word string) bool {
	_, ok := d.readStatements[strings.ToUpper(word)]
	return ok
}

// IsBlockedKeyword reports whether the bare word disqualifies a statement.
func (d *Dialect) IsBlockedKeyword(word string) bool {
	_, ok := d.blockedKeywords[strings.ToUpper(word)]
	return ok
}

// IsBlockedFunction reports whether calling the named function disqualifies a statement.
// Only the unqualified name is compared.
func (d *Dialect) IsBlockedFunction(name string) bool {
	_, ok := d.blockedFunctions[strings.ToLower(name)]
	return ok
}

// ReadStatements returns the sorted keywords a statement may start with.
func (d *Dialect) ReadStatements() []string {
	return sortedKeys(d.readStatements)
}

// BlockedKeywords returns the sorted blocked keywords.
func (d *Dialect) BlockedKeywords() []string {
	return sortedKeys(d.blockedKeywords)
}

// BlockedFunctions returns the sorted blocked function names.
func (d *Dialect) BlockedFunctions() []string {
	return sortedKeys(d.blockedFunctions)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// isBareIdentifier reports whether name lexes as a single unquoted identifier.
func isBareIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z':
		case (r >= '0' && r <= '9') && i > 0:
		default:
			return false
		}
	}
	return true
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
	config  *core.DialectConfig // Optional config for auto-wiring features
}

// NewDialect creates a new dialect builder with the given name.
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name: name,
			Identifiers: core.IdentifierConfig{
				Quote:         `"`,
				QuoteEnd:      `"`,
				Escape:        `""`,
				Normalization: core.NormLowercase,
			},
			reservedWords:    make(map[string]struct{}),
			readStatements:   make(map[string]struct{}),
			blockedKeywords:  make(map[string]struct{}),
			blockedFunctions: make(map[string]struct{}),
		},
	}
}

// New creates a dialect builder from a DialectConfig.
// The builder wires lexing rules and the statement policy from the config when Build() is called.
// This is the preferred constructor for dialects.
func New(cfg *core.DialectConfig) *Builder {
	b := NewDialect(cfg.Name)
	b.config = cfg
	b.dialect.Identifiers = cfg.Identifiers
	b.dialect.DefaultSchema = cfg.DefaultSchema
	b.dialect.Placeholder = cfg.Placeholder
	return b
}

// Identifiers configures identifier quoting and normalization.
func (b *Builder) Identifiers(quote, quoteEnd, escape string, norm core.NormalizationStrategy) *Builder {
	b.dialect.Identifiers = core.IdentifierConfig{
		Quote:         quote,
		QuoteEnd:      quoteEnd,
		Escape:        escape,
		Normalization: norm,
	}
	return b
}

// DefaultSchema sets the default schema name.
func (b *Builder) DefaultSchema(schema string) *Builder {
	b.dialect.DefaultSchema = schema
	return b
}

// PlaceholderStyle sets how query parameters are formatted.
func (b *Builder) PlaceholderStyle(style core.PlaceholderStyle) *Builder {
	b.dialect.Placeholder = style
	return b
}

// Lexing sets the tokenizer options directly.
func (b *Builder) Lexing(opts token.Options) *Builder {
	b.dialect.lexer = opts
	return b
}

// WithReservedWords registers words that need quoting when used as identifiers.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		b.dialect.reservedWords[strings.ToLower(w)] = struct{}{}
	}
	return b
}

// ReadStatements adds keywords a statement may start with.
func (b *Builder) ReadStatements(words ...string) *Builder {
	for _, w := range words {
		b.dialect.readStatements[strings.ToUpper(w)] = struct{}{}
	}
	return b
}

// BlockKeywords adds keywords that disqualify a statement wherever they appear bare.
func (b *Builder) BlockKeywords(words ...string) *Builder {
	for _, w := range words {
		b.dialect.blockedKeywords[strings.ToUpper(w)] = struct{}{}
	}
	return b
}

// BlockFunctions adds functions that disqualify a statement when called.
func (b *Builder) BlockFunctions(names ...string) *Builder {
	for _, n := range names {
		b.dialect.blockedFunctions[strings.ToLower(n)] = struct{}{}
	}
	return b
}

// Build returns the constructed dialect.
// If the builder was created with New(cfg), config flags and lists are applied first.
func (b *Builder) Build() *Dialect {
	cfg := b.config
	if cfg == nil {
		return b.dialect
	}

	b.dialect.lexer = token.Options{
		Backticks:             cfg.BacktickIdentifiers,
		HashComments:          cfg.HashComments,
		DashCommentNeedsSpace: cfg.DashCommentNeedsSpace,
		BackslashEscapes:      cfg.BackslashEscapes,
		EscapeStrings:         cfg.EscapeStrings,
		DollarQuoting:         cfg.DollarQuoting,
		ExecutableComments:    cfg.ExecutableComments,
	}
	b.ReadStatements(cfg.ReadStatements...)
	b.BlockKeywords(cfg.BlockedKeywords...)
	b.BlockFunctions(cfg.BlockedFunctions...)

	// Blocked keywords are always quoted when used as identifiers.
	b.WithReservedWords(cfg.BlockedKeywords...)

	return b.dialect
}
