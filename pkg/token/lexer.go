package token

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Options controls dialect-specific lexing rules.
type Options struct {
	Backticks             bool // `ident` quoted identifiers (MySQL, Databricks)
	HashComments          bool // # line comments (MySQL)
	DashCommentNeedsSpace bool // -- only starts a comment when followed by whitespace (MySQL)
	BackslashEscapes      bool // \' escapes inside string literals (MySQL)
	EscapeStrings         bool // E'..' literals always honor backslash escapes (PostgreSQL)
	DollarQuoting         bool // $tag$ ... $tag$ string literals (PostgreSQL)
	ExecutableComments    bool // /*! ... */ content is lexed as code (MySQL)
}

// Lexer is a single-pass SQL scanner. It never fails: unknown bytes become
// ILLEGAL tokens and unterminated literals run to the end of input.
type Lexer struct {
	input  string
	opts   Options
	pos    int
	line   int
	col    int
	inExec bool
}

// NewLexer returns a lexer over input.
func NewLexer(input string, opts Options) *Lexer {
	return &Lexer{input: input, opts: opts, line: 1, col: 1}
}

// Tokenize lexes the whole input and returns every token except EOF.
func Tokenize(input string, opts Options) []Token {
	l := NewLexer(input, opts)
	var toks []Token
	for {
		tok := l.Next()
		if tok.Type == EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

// Next returns the next token.
func (l *Lexer) Next() Token {
	space := l.skipSpace()
	start := l.position()
	if l.pos >= len(l.input) {
		return Token{Type: EOF, Span: Span{Start: start, End: start}, SpaceBefore: space}
	}

	from := l.pos
	typ := l.scan()
	return Token{
		Type:        typ,
		Literal:     l.input[from:l.pos],
		Span:        Span{Start: start, End: l.position()},
		SpaceBefore: space,
	}
}

func (l *Lexer) position() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.pos}
}

// advance moves n bytes forward, keeping line and column current.
func (l *Lexer) advance(n int) {
	end := min(l.pos+n, len(l.input))
	for ; l.pos < end; l.pos++ {
		if l.input[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
	}
}

func (l *Lexer) peek(offset int) byte {
	if l.pos+offset < len(l.input) {
		return l.input[l.pos+offset]
	}
	return 0
}

func (l *Lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(l.input[l.pos:], s)
}

// skipSpace skips whitespace and executable-comment delimiters.
func (l *Lexer) skipSpace() bool {
	skipped := false
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v':
			l.advance(1)
		case l.opts.ExecutableComments && !l.inExec && l.hasPrefix("/*!"):
			l.advance(3)
			for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
				l.advance(1) // version gate, e.g. /*!50001
			}
			l.inExec = true
		case l.inExec && l.hasPrefix("*/"):
			l.advance(2)
			l.inExec = false
		default:
			return skipped
		}
		skipped = true
	}
	return skipped
}

func (l *Lexer) scan() TokenType {
	ch := l.input[l.pos]

	switch {
	case ch == '\'':
		l.scanString(l.opts.BackslashEscapes)
		return STRING
	case ch == '"':
		l.scanQuoted('"')
		return QUOTED_IDENT
	case ch == '`' && l.opts.Backticks:
		l.scanQuoted('`')
		return QUOTED_IDENT
	case l.isLineCommentStart():
		l.scanLineComment()
		return COMMENT
	case l.hasPrefix("/*"):
		l.scanBlockComment()
		return COMMENT
	case ch == '$':
		return l.scanDollar()
	case isDigit(ch) || (ch == '.' && isDigit(l.peek(1))):
		l.scanNumber()
		return NUMBER
	case ch == '?':
		l.advance(1)
		return PARAM
	case ch == ':':
		return l.scanColon()
	case ch == '@':
		l.advance(1)
		if l.peek(0) == '@' {
			l.advance(1)
		}
		l.scanWord()
		return PARAM
	}

	if r, _ := utf8.DecodeRuneInString(l.input[l.pos:]); isIdentStart(r) {
		word := l.scanWord()
		// typed string literals: E'..', N'..', X'..', B'..'
		if len(word) == 1 && l.peek(0) == '\'' && strings.ContainsAny(word, "EeNnXxBb") {
			escapes := l.opts.BackslashEscapes || (l.opts.EscapeStrings && (word == "E" || word == "e"))
			l.scanString(escapes)
			return STRING
		}
		return LookupIdent(word)
	}

	return l.scanOperator()
}

func (l *Lexer) isLineCommentStart() bool {
	if l.input[l.pos] == '#' && l.opts.HashComments {
		return true
	}
	if !l.hasPrefix("--") {
		return false
	}
	if !l.opts.DashCommentNeedsSpace {
		return true
	}
	next := l.peek(2)
	return next == 0 || next == ' ' || next == '\t' || next == '\n' || next == '\r'
}

// scanString reads a single-quoted literal; '' is an escaped quote, and so
// is \' when escapes is set.
func (l *Lexer) scanString(escapes bool) {
	l.advance(1) // opening quote
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case ch == '\\' && escapes:
			l.advance(2)
		case ch == '\'':
			l.advance(1)
			if l.peek(0) != '\'' {
				return
			}
			l.advance(1)
		default:
			l.advance(1)
		}
	}
}

// scanQuoted reads a quoted identifier; a doubled quote is an escaped quote.
func (l *Lexer) scanQuoted(quote byte) {
	l.advance(1)
	for l.pos < len(l.input) {
		if l.input[l.pos] == quote {
			l.advance(1)
			if l.peek(0) != quote {
				return
			}
		}
		l.advance(1)
	}
}

func (l *Lexer) scanLineComment() {
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.advance(1)
	}
}

func (l *Lexer) scanBlockComment() {
	end := strings.Index(l.input[l.pos+2:], "*/")
	if end < 0 {
		l.advance(len(l.input) - l.pos)
		return
	}
	l.advance(end + 4)
}

// scanDollar reads $1 parameters and, when enabled, $tag$ ... $tag$ strings.
func (l *Lexer) scanDollar() TokenType {
	if isDigit(l.peek(1)) {
		l.advance(1)
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.advance(1)
		}
		return PARAM
	}
	if l.opts.DollarQuoting {
		rest := l.input[l.pos+1:]
		if tagEnd := strings.IndexByte(rest, '$'); tagEnd >= 0 && isDollarTag(rest[:tagEnd]) {
			delim := "$" + rest[:tagEnd] + "$"
			l.advance(len(delim))
			if end := strings.Index(l.input[l.pos:], delim); end >= 0 {
				l.advance(end + len(delim))
			} else {
				l.advance(len(l.input) - l.pos)
			}
			return STRING
		}
	}
	l.advance(1)
	return OP
}

func (l *Lexer) scanColon() TokenType {
	if l.peek(1) == ':' {
		l.advance(2)
		return DCOLON
	}
	if r, _ := utf8.DecodeRuneInString(l.input[l.pos+1:]); isIdentStart(r) {
		l.advance(1)
		l.scanWord()
		return PARAM
	}
	if l.peek(1) == '=' {
		l.advance(2)
		return OP
	}
	l.advance(1)
	return OP
}

func (l *Lexer) scanNumber() {
	for l.pos < len(l.input) && (isDigit(l.input[l.pos]) || l.input[l.pos] == '.' || l.input[l.pos] == '_') {
		l.advance(1)
	}
	if ch := l.peek(0); ch == 'e' || ch == 'E' {
		next := l.peek(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peek(2))) {
			l.advance(2)
			for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
				l.advance(1)
			}
		}
	}
}

func (l *Lexer) scanWord() string {
	start := l.pos
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !isIdentChar(r) {
			break
		}
		l.advance(size)
	}
	return l.input[start:l.pos]
}

// multiOps lists multi-byte operators, longest first.
var multiOps = []struct {
	text string
	typ  TokenType
}{
	{"->>", OP}, {"!~*", OP}, {"<=>", OP},
	{"<=", LE}, {">=", GE}, {"<>", NE}, {"!=", NE}, {"||", DPIPE},
	{"->", OP}, {"=>", OP}, {"<<", OP}, {">>", OP}, {"~*", OP}, {"!~", OP},
	{"&&", OP}, {"@>", OP}, {"<@", OP},
}

var singleOps = map[byte]TokenType{
	'+': PLUS, '-': MINUS, '*': STAR, '/': SLASH, '%': PERCENT,
	'=': EQ, '<': LT, '>': GT, '.': DOT, ',': COMMA, ';': SEMICOLON,
	'(': LPAREN, ')': RPAREN, '[': LBRACKET, ']': RBRACKET,
	'&': OP, '|': OP, '^': OP, '~': OP, '!': OP, '{': OP, '}': OP,
}

func (l *Lexer) scanOperator() TokenType {
	for _, op := range multiOps {
		if l.hasPrefix(op.text) {
			l.advance(len(op.text))
			return op.typ
		}
	}
	if typ, ok := singleOps[l.input[l.pos]]; ok {
		l.advance(1)
		return typ
	}
	_, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.advance(size)
	return ILLEGAL
}

func isDollarTag(tag string) bool {
	for i, r := range tag {
		if !(r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r))) {
			return false
		}
	}
	return true
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// isIdentStart returns true if r can start an identifier (letter or underscore).
func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// isIdentChar returns true if r can continue an identifier.
func isIdentChar(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || r == '$'
}
