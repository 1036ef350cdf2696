// Package token defines the lexical tokens of SQL text and a single-pass lexer.
//
// ANSI core tokens are defined as constants (IDs 0-999) for switch performance.
// Dialect-specific keywords are registered dynamically via Register().
package token

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

//nolint:revive // TOKEN_* names are intentionally ALL_CAPS for SQL token conventions
const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL
	COMMENT // -- line, # line, /* block */

	// Literals
	IDENT        // bare identifier
	QUOTED_IDENT // "ident", `ident`
	NUMBER       // 123, 45.67, 1e10
	STRING       // 'hello', $$hello$$
	PARAM        // ?, $1, :name, @var

	// Operators (ANSI)
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	DPIPE     // ||
	EQ        // =
	NE        // != or <>
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	DCOLON    // ::
	OP        // any other operator (->, ->>, &, |, ^, ~, ...)
	DOT       // .
	COMMA     // ,
	SEMICOLON // ;
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]

	// ANSI Keywords (alphabetical)
	ALL
	ALTER
	AND
	AS
	ASC
	BETWEEN
	BY
	CASE
	CAST
	CREATE
	CROSS
	DELETE
	DESC
	DISTINCT
	DROP
	ELSE
	END
	EXCEPT
	EXISTS
	FALSE
	FETCH
	FOR
	FROM
	FULL
	GRANT
	GROUP
	HAVING
	IN
	INNER
	INSERT
	INTERSECT
	INTO
	IS
	JOIN
	LEFT
	LIKE
	LIMIT
	MERGE
	NATURAL
	NOT
	NULL
	OFFSET
	ON
	OR
	ORDER
	OUTER
	OVER
	PARTITION
	RECURSIVE
	REVOKE
	RIGHT
	SELECT
	SET
	TABLE
	THEN
	TRUE
	TRUNCATE
	UNION
	UPDATE
	USING
	VALUES
	WHEN
	WHERE
	WINDOW
	WITH

	// Sentinel - dynamic tokens start after this
	maxBuiltin TokenType = 999
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := getDynamicName(t); ok {
		return name
	}
	if name, ok := tokenNames[t]; ok {
		return name
	}
	if kw, ok := keywordNames[t]; ok {
		return kw
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps builtin non-keyword token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",
	COMMENT: "COMMENT",

	IDENT:        "IDENT",
	QUOTED_IDENT: "QUOTED_IDENT",
	NUMBER:       "NUMBER",
	STRING:       "STRING",
	PARAM:        "PARAM",

	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	PERCENT:   "%",
	DPIPE:     "||",
	EQ:        "=",
	NE:        "!=",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	DCOLON:    "::",
	OP:        "OP",
	DOT:       ".",
	COMMA:     ",",
	SEMICOLON: ";",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{
	"all":       ALL,
	"alter":     ALTER,
	"and":       AND,
	"as":        AS,
	"asc":       ASC,
	"between":   BETWEEN,
	"by":        BY,
	"case":      CASE,
	"cast":      CAST,
	"create":    CREATE,
	"cross":     CROSS,
	"delete":    DELETE,
	"desc":      DESC,
	"distinct":  DISTINCT,
	"drop":      DROP,
	"else":      ELSE,
	"end":       END,
	"except":    EXCEPT,
	"exists":    EXISTS,
	"false":     FALSE,
	"fetch":     FETCH,
	"for":       FOR,
	"from":      FROM,
	"full":      FULL,
	"grant":     GRANT,
	"group":     GROUP,
	"having":    HAVING,
	"in":        IN,
	"inner":     INNER,
	"insert":    INSERT,
	"intersect": INTERSECT,
	"into":      INTO,
	"is":        IS,
	"join":      JOIN,
	"left":      LEFT,
	"like":      LIKE,
	"limit":     LIMIT,
	"merge":     MERGE,
	"natural":   NATURAL,
	"not":       NOT,
	"null":      NULL,
	"offset":    OFFSET,
	"on":        ON,
	"or":        OR,
	"order":     ORDER,
	"outer":     OUTER,
	"over":      OVER,
	"partition": PARTITION,
	"recursive": RECURSIVE,
	"revoke":    REVOKE,
	"right":     RIGHT,
	"select":    SELECT,
	"set":       SET,
	"table":     TABLE,
	"then":      THEN,
	"true":      TRUE,
	"truncate":  TRUNCATE,
	"union":     UNION,
	"update":    UPDATE,
	"using":     USING,
	"values":    VALUES,
	"when":      WHEN,
	"where":     WHERE,
	"window":    WINDOW,
	"with":      WITH,
}

// keywordNames is the reverse of keywords, uppercased.
var keywordNames = func() map[TokenType]string {
	m := make(map[TokenType]string, len(keywords))
	for name, t := range keywords {
		m[t] = strings.ToUpper(name)
	}
	return m
}()

// LookupIdent returns the token type for the given bare word.
// Builtin keywords are checked first, then dynamically registered keywords.
// Otherwise, IDENT is returned.
func LookupIdent(ident string) TokenType {
	lower := strings.ToLower(ident)
	if tok, ok := keywords[lower]; ok {
		return tok
	}
	if tok, ok := LookupDynamicKeyword(strings.ToUpper(ident)); ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a builtin or registered keyword.
func IsKeyword(t TokenType) bool {
	return (t >= ALL && t <= WITH) || IsDynamic(t)
}

// IsOperator returns true if the token type is an operator or punctuation.
func IsOperator(t TokenType) bool {
	return t >= PLUS && t <= RBRACKET
}

// IsWord returns true for tokens spelled as a bare word (keywords and identifiers).
func IsWord(t TokenType) bool {
	return t == IDENT || IsKeyword(t)
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string // exact source text
	Span    Span

	// SpaceBefore is true when whitespace separated this token
	// from the previous one in the source.
	SpaceBefore bool
}

// Is reports whether the token is the given keyword, compared case-insensitively.
func (t Token) Is(word string) bool {
	return IsWord(t.Type) && strings.EqualFold(t.Literal, word)
}

// Upper returns the token literal uppercased.
func (t Token) Upper() string {
	return strings.ToUpper(t.Literal)
}
