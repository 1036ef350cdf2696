package dialect

import "github.com/leapstack-labs/sqlframe/pkg/core"

// ANSIConfig is the portable ANSI SQL dialect configuration.
var ANSIConfig = &core.DialectConfig{
	Name: "ansi",
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormUppercase,
	},
	Placeholder:     core.PlaceholderQuestion,
	ReadStatements:  StandardReadStatements,
	BlockedKeywords: StandardBlockedKeywords,
}

// builtinANSI is the fallback dialect for names no package has registered.
// This is registered automatically when the package is loaded.
var builtinANSI = New(ANSIConfig).
	WithReservedWords(StandardReservedWords...).
	Build()

// ANSI returns the builtin ANSI dialect.
func ANSI() *Dialect {
	return builtinANSI
}

func init() {
	Register(builtinANSI)
	SetDefault(builtinANSI)
}
