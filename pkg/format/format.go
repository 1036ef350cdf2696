package format

import (
	"strings"

	"github.com/leapstack-labs/sqlframe/pkg/dialect"
	"github.com/leapstack-labs/sqlframe/pkg/token"
)

// Format renders SQL text in canonical form for the dialect:
//
//   - each top-level clause of a query starts a new line
//   - SELECT, GROUP BY, ORDER BY and WINDOW list one item per indented line
//   - WHERE, HAVING and QUALIFY put their condition on an indented line
//   - parenthesized queries become indented blocks
//   - keywords are uppercased; identifiers, literals and * are kept as written
//   - statements other than queries are rendered on one normalized line
//
// Statements are separated by ";\n"; empty statements are dropped. The result
// always lexes to the same tokens as the input. Identical input yields
// identical output. A nil dialect uses the default dialect.
func Format(text string, d *dialect.Dialect) string {
	if d == nil {
		d = dialect.Default()
	}
	opts := d.LexerOptions()

	stmts := splitStatements(token.Tokenize(text, opts))
	out := render(stmts, false)
	if !sameTokens(token.Tokenize(out, opts), joinStatements(stmts)) {
		return render(stmts, true)
	}
	return out
}

// SQL formats text for the named dialect. Unknown names use the default dialect.
func SQL(text, dialectName string) string {
	return Format(text, dialect.GetOrDefault(dialectName))
}

var statementSeparator = token.Token{Type: token.SEMICOLON, Literal: ";"}

func render(stmts [][]token.Token, plain bool) string {
	p := newPrinter(plain)
	for i, stmt := range stmts {
		if i > 0 {
			p.emit(statementSeparator)
			p.writeln()
		}
		p.formatStatement(stmt)
	}
	return p.String()
}

// splitStatements splits tokens at semicolons and drops empty statements.
func splitStatements(toks []token.Token) [][]token.Token {
	var (
		stmts [][]token.Token
		cur   []token.Token
	)
	for _, tok := range toks {
		if tok.Type == token.SEMICOLON {
			if len(cur) > 0 {
				stmts = append(stmts, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, tok)
	}
	if len(cur) > 0 {
		stmts = append(stmts, cur)
	}
	return stmts
}

func joinStatements(stmts [][]token.Token) []token.Token {
	var out []token.Token
	for i, stmt := range stmts {
		if i > 0 {
			out = append(out, statementSeparator)
		}
		out = append(out, stmt...)
	}
	return out
}

// sameTokens compares token streams by type and text; keyword case is ignored.
func sameTokens(a, b []token.Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Type != b[i].Type {
			return false
		}
		if a[i].Literal != b[i].Literal &&
			!(token.IsKeyword(a[i].Type) && strings.EqualFold(a[i].Literal, b[i].Literal)) {
			return false
		}
	}
	return true
}
