package dialect

// This file contains the standard policy lists - the "menu items" that
// dialect configs compose from.

// StandardReadStatements are the keywords a read-only ANSI statement may start with.
var StandardReadStatements = []string{"SELECT", "WITH", "VALUES"}

// StandardBlockedKeywords are data-definition, data-modification and session
// keywords rejected in every dialect.
//
// REPLACE, SET and GET are not listed: they double as function names
// (REPLACE(s, a, b)) and statements starting with them fail the
// leading-keyword rule anyway.
var StandardBlockedKeywords = []string{
	// DML
	"INSERT", "UPDATE", "DELETE", "MERGE", "UPSERT",
	// DDL
	"DROP", "CREATE", "ALTER", "TRUNCATE", "RENAME",
	// Privileges
	"GRANT", "REVOKE",
	// Procedures
	"CALL", "EXEC", "EXECUTE",
	// SELECT ... INTO creates a table
	"INTO",
	// Database files and locks
	"ATTACH", "DETACH", "VACUUM", "LOCK", "UNLOCK",
}

// StandardReservedWords are ANSI reserved words that need quoting when used as identifiers.
var StandardReservedWords = []string{
	"all", "and", "as", "asc", "between", "by", "case", "cast", "check",
	"column", "constraint", "cross", "current_date", "current_time",
	"current_timestamp", "current_user", "default", "desc", "distinct",
	"else", "end", "except", "exists", "false", "fetch", "for", "foreign",
	"from", "full", "group", "having", "in", "inner", "intersect", "is",
	"join", "left", "like", "limit", "natural", "not", "null", "offset",
	"on", "or", "order", "outer", "over", "partition", "primary",
	"references", "right", "select", "table", "then", "to", "true",
	"union", "unique", "user", "using", "values", "when", "where",
	"window", "with",
}

// Extend returns base followed by more, without mutating base.
func Extend(base []string, more ...string) []string {
	out := make([]string, 0, len(base)+len(more))
	out = append(out, base...)
	return append(out, more...)
}
