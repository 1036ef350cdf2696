// Package format renders SQL text in a canonical, deterministic layout.
//
// The formatter works on the token stream rather than a syntax tree, so it
// accepts any input, including statements it does not understand; those are
// rendered on a single normalized line.
package format

import (
	"bytes"
	"strings"

	"github.com/leapstack-labs/sqlframe/pkg/token"
)

const indentSize = 2

// Printer handles SQL formatting with proper indentation and style.
type Printer struct {
	output      *bytes.Buffer
	depth       int
	atLineStart bool

	// plain disables layout: tokens are separated by single spaces.
	plain bool

	prev      token.Token
	hasPrev   bool
	prevUnary bool
}

func newPrinter(plain bool) *Printer {
	return &Printer{
		output:      &bytes.Buffer{},
		atLineStart: true,
		plain:       plain,
	}
}

// String returns the formatted output without a trailing newline.
func (p *Printer) String() string {
	return strings.TrimRight(p.output.String(), "\n")
}

func (p *Printer) write(s string) {
	if p.atLineStart && len(s) > 0 && s[0] != '\n' {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

func (p *Printer) writeln() {
	p.output.WriteByte('\n')
	p.atLineStart = true
}

// newline starts a new line unless the printer is already at one.
func (p *Printer) newline() {
	if !p.atLineStart {
		p.writeln()
	}
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.depth*indentSize; i++ {
		p.output.WriteByte(' ')
	}
	p.atLineStart = false
}

func (p *Printer) indent() {
	p.depth++
}

func (p *Printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

func (p *Printer) space() {
	p.output.WriteByte(' ')
}

// emit prints one token, inserting a separating space where the layout needs one.
// A line comment always ends its line.
func (p *Printer) emit(tok token.Token) {
	text := p.text(tok)
	if !p.atLineStart && p.hasPrev && p.spaceBetween(text, tok) {
		p.space()
	}
	p.write(text)

	p.prevUnary = !p.plain && isUnary(p.prev, p.hasPrev, tok)
	p.prev, p.hasPrev = tok, true

	if isLineComment(tok) {
		p.writeln()
	}
}

func (p *Printer) emitAll(toks []token.Token) {
	for _, tok := range toks {
		p.emit(tok)
	}
}

// text returns the printed form of tok: keywords are uppercased, everything
// else is reproduced exactly.
func (p *Printer) text(tok token.Token) string {
	if p.plain || !token.IsKeyword(tok.Type) {
		return tok.Literal
	}
	if p.hasPrev && p.prev.Type == token.DOT {
		return tok.Literal // qualified name part, not a keyword
	}
	return tok.Upper()
}

func (p *Printer) spaceBetween(text string, cur token.Token) bool {
	if p.plain {
		return true
	}
	prev := p.prev
	if unsafeJoin(prev.Literal, text, prev) {
		return true
	}

	switch cur.Type {
	case token.COMMA, token.RPAREN, token.RBRACKET, token.DOT, token.SEMICOLON, token.DCOLON:
		return false
	}
	switch prev.Type {
	case token.LPAREN, token.LBRACKET, token.DOT, token.DCOLON:
		return false
	}
	if p.prevUnary {
		return false
	}
	// f(x), arr[1]: keep calls and subscripts attached when the source did.
	if (cur.Type == token.LPAREN || cur.Type == token.LBRACKET) && !cur.SpaceBefore {
		if token.IsWord(prev.Type) || prev.Type == token.QUOTED_IDENT ||
			prev.Type == token.RPAREN || prev.Type == token.RBRACKET {
			return false
		}
	}
	return true
}

// unsafeJoin reports whether printing a directly before b would lex differently.
func unsafeJoin(a, b string, prev token.Token) bool {
	if a == "" || b == "" {
		return false
	}
	last, first := a[len(a)-1], b[0]
	switch {
	case last == '-' && first == '-',
		last == '/' && first == '*',
		last == '*' && first == '/',
		last == '#' || first == '#':
		return true
	case isWordByte(last) && isWordByte(first):
		return true
	case prev.Type == token.NUMBER && (first == '.' || isWordByte(first)):
		return true
	}
	return false
}

func isWordByte(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// valueKeywords are keywords that end an operand, so a following +/- is binary.
var valueKeywords = map[token.TokenType]bool{
	token.TRUE:  true,
	token.FALSE: true,
	token.NULL:  true,
	token.END:   true,
}

// isUnary reports whether cur is a sign operator rather than a binary one.
func isUnary(prev token.Token, hasPrev bool, cur token.Token) bool {
	if cur.Type != token.PLUS && cur.Type != token.MINUS {
		return false
	}
	if !hasPrev {
		return true
	}
	switch {
	case prev.Type == token.RPAREN || prev.Type == token.RBRACKET:
		return false
	case token.IsOperator(prev.Type):
		return true
	case token.IsKeyword(prev.Type):
		return !valueKeywords[prev.Type]
	}
	return false
}

func isLineComment(tok token.Token) bool {
	return tok.Type == token.COMMENT && !strings.HasPrefix(tok.Literal, "/*")
}
