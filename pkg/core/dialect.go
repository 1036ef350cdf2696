package core

// DialectConfig holds the static configuration for a SQL dialect.
// This is pure data: lexing rules plus the read-only safety policy.
//
// The runtime lookup tables live in pkg/dialect.Dialect, which is built from this config.
type DialectConfig struct {
	// Name is the dialect identifier (e.g., "mysql", "postgres")
	Name string

	// Identifiers defines quoting and normalization rules
	Identifiers IdentifierConfig

	// DefaultSchema is the default schema name ("main" for DuckDB, "public" for Postgres)
	DefaultSchema string

	// Placeholder defines how query parameters are formatted
	Placeholder PlaceholderStyle

	// Lexing
	BacktickIdentifiers   bool // `ident` is a quoted identifier
	HashComments          bool // # starts a line comment
	DashCommentNeedsSpace bool // -- only starts a comment when followed by whitespace
	BackslashEscapes      bool // \' escapes a quote inside string literals
	EscapeStrings         bool // E'..' literals honor backslash escapes regardless of BackslashEscapes
	DollarQuoting         bool // PostgreSQL $tag$ ... $tag$ string literals
	ExecutableComments    bool // MySQL /*! ... */ comments are executed by the server

	// Safety policy
	ReadStatements   []string // Keywords allowed to start a statement (SELECT, WITH, ...)
	BlockedKeywords  []string // Keywords that disqualify a statement anywhere
	BlockedFunctions []string // Functions that disqualify a statement when called
}

// NormalizationStrategy defines how unquoted identifiers are normalized.
type NormalizationStrategy int

const (
	// NormLowercase normalizes unquoted identifiers to lowercase (default SQL behavior).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase normalizes unquoted identifiers to uppercase (Snowflake, Oracle).
	NormUppercase
	// NormCaseSensitive preserves identifier case exactly (MySQL, ClickHouse).
	NormCaseSensitive
	// NormCaseInsensitive normalizes to lowercase for comparison (BigQuery, Hive, DuckDB).
	NormCaseInsensitive
)

// PlaceholderStyle defines how query parameters are formatted.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters (DuckDB, MySQL, SQLite).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. for parameters (PostgreSQL).
	PlaceholderDollar
)

// IdentifierConfig defines how identifiers are quoted and normalized.
type IdentifierConfig struct {
	Quote         string                // Quote character: ", `, [
	QuoteEnd      string                // End quote character (usually same as Quote, ] for [)
	Escape        string                // Escape sequence: "", ``, ]]
	Normalization NormalizationStrategy // How to normalize unquoted identifiers
}
