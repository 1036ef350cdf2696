package format

import (
	"github.com/leapstack-labs/sqlframe/pkg/token"
)

// clauseKind selects how a clause is laid out.
type clauseKind int

const (
	clauseList   clauseKind = iota // keyword line, then one item per indented line
	clauseBlock                    // keyword line, then the body on one indented line
	clauseInline                   // keyword and body on one line
	clauseJoin                     // join phrase, ON/USING on an indented line
	clauseSetOp                    // set operator alone on its line
)

type clause struct {
	kind clauseKind
	head []token.Token
	body []token.Token
}

// joinModifiers may precede JOIN in a join phrase.
var joinModifiers = map[string]bool{
	"NATURAL": true, "LEFT": true, "RIGHT": true, "FULL": true,
	"INNER": true, "CROSS": true, "OUTER": true,
	"SEMI": true, "ANTI": true, "ASOF": true, "POSITIONAL": true,
}

// isQuery reports whether the statement gets the clause layout.
func isQuery(toks []token.Token) bool {
	i := nextCode(toks, 0)
	if i >= len(toks) {
		return false
	}
	switch toks[i].Type {
	case token.SELECT, token.WITH, token.VALUES, token.TABLE, token.FROM, token.LPAREN:
		return true
	}
	return false
}

func (p *Printer) formatStatement(toks []token.Token) {
	if p.plain || !isQuery(toks) {
		p.emitAll(toks)
		return
	}
	p.formatQuery(toks)
}

func (p *Printer) formatQuery(toks []token.Token) {
	if i := nextCode(toks, 0); i < len(toks) && toks[i].Type == token.WITH {
		p.inline(toks[:i])
		toks = p.formatWith(toks[i:])
	}

	preamble, clauses := splitClauses(toks)
	if len(preamble) > 0 {
		p.newline()
		p.inline(preamble)
	}
	for _, c := range clauses {
		p.formatClause(c)
	}
}

// formatWith prints the WITH list and returns the tokens of the main query.
func (p *Printer) formatWith(toks []token.Token) []token.Token {
	n := 1
	if len(toks) > 1 && toks[1].Type == token.RECURSIVE {
		n = 2
	}
	p.newline()
	p.emitAll(toks[:n])

	p.indent()
	defer p.dedent()

	for i := n; i < len(toks); {
		open := cteBody(toks, i)
		if open < 0 {
			p.newline()
			p.inline(toks[i:])
			return nil
		}
		closeIdx := matchParen(toks, open)

		p.newline()
		p.inline(toks[i:open])
		p.subquery(toks, open, closeIdx)
		if closeIdx < 0 {
			return nil
		}

		i = closeIdx + 1
		j := nextCode(toks, i)
		if j >= len(toks) || toks[j].Type != token.COMMA {
			return toks[i:]
		}
		p.inline(toks[i : j+1])
		i = j + 1
	}
	return nil
}

// cteBody returns the index of the parenthesis opening a CTE body:
// the first top-level ( following AS or MATERIALIZED.
func cteBody(toks []token.Token, from int) int {
	depth := 0
	for i := from; i < len(toks); i++ {
		switch toks[i].Type {
		case token.LPAREN:
			if depth == 0 {
				if k := prevCode(toks, i); k >= from && (toks[k].Type == token.AS || toks[k].Is("MATERIALIZED")) {
					return i
				}
			}
			depth++
		case token.RPAREN:
			depth--
		}
	}
	return -1
}

func (p *Printer) formatClause(c clause) {
	p.newline()
	p.emitAll(c.head)

	switch c.kind {
	case clauseList:
		items, commas := splitList(c.body)
		p.indent()
		for k, item := range items {
			p.newline()
			p.inline(item)
			if k < len(commas) {
				p.emit(commas[k])
			}
		}
		p.dedent()

	case clauseBlock:
		if len(c.body) == 0 {
			return
		}
		p.indent()
		p.newline()
		p.inline(c.body)
		p.dedent()

	case clauseInline:
		p.inline(c.body)

	case clauseJoin:
		on := findTopLevel(c.body, token.ON, token.USING)
		if on < 0 {
			p.inline(c.body)
			return
		}
		p.inline(c.body[:on])
		p.indent()
		p.newline()
		p.inline(c.body[on:])
		p.dedent()

	case clauseSetOp:
		if len(c.body) > 0 {
			p.newline()
			p.inline(c.body)
		}
	}
}

// inline prints tokens on the current line; parenthesized queries become
// indented blocks.
func (p *Printer) inline(toks []token.Token) {
	for i := 0; i < len(toks); i++ {
		if toks[i].Type == token.LPAREN && isSubquery(toks, i) {
			closeIdx := matchParen(toks, i)
			p.subquery(toks, i, closeIdx)
			if closeIdx < 0 {
				return
			}
			i = closeIdx
			continue
		}
		p.emit(toks[i])
	}
}

// subquery prints ( query ) with the query indented one level.
// closeIdx is -1 when the parenthesis is never closed.
func (p *Printer) subquery(toks []token.Token, open, closeIdx int) {
	p.emit(toks[open])

	inner := toks[open+1:]
	if closeIdx >= 0 {
		inner = toks[open+1 : closeIdx]
	}
	p.indent()
	p.formatQuery(inner)
	p.dedent()

	if closeIdx >= 0 {
		p.newline()
		p.emit(toks[closeIdx])
	}
}

// splitClauses cuts a query at its top-level clause keywords. Tokens before
// the first clause are returned as the preamble.
func splitClauses(toks []token.Token) ([]token.Token, []clause) {
	var (
		preamble []token.Token
		clauses  []clause
	)
	first := nextCode(toks, 0)
	depth := 0

	for i := 0; i < len(toks); {
		if depth == 0 {
			if kind, n := clauseStart(toks, i, i == first); n > 0 {
				clauses = append(clauses, clause{kind: kind, head: toks[i : i+n]})
				i += n
				continue
			}
		}

		tok := toks[i]
		switch tok.Type {
		case token.LPAREN, token.LBRACKET:
			depth++
		case token.RPAREN, token.RBRACKET:
			if depth > 0 {
				depth--
			}
		}
		if len(clauses) == 0 {
			preamble = append(preamble, tok)
		} else {
			last := &clauses[len(clauses)-1]
			last.body = append(last.body, tok)
		}
		i++
	}
	return preamble, clauses
}

// clauseStart reports whether a clause begins at toks[i], returning its kind
// and the number of head tokens.
func clauseStart(toks []token.Token, i int, leading bool) (clauseKind, int) {
	tok := toks[i]
	next := token.EOF
	if i+1 < len(toks) {
		next = toks[i+1].Type
	}
	prev := token.EOF
	if i > 0 {
		prev = toks[i-1].Type
	}

	switch tok.Type {
	case token.SELECT:
		if next == token.DISTINCT || next == token.ALL {
			return clauseList, 2
		}
		return clauseList, 1
	case token.FROM:
		if prev == token.DISTINCT { // IS DISTINCT FROM
			return 0, 0
		}
		return clauseInline, 1
	case token.WHERE, token.HAVING:
		return clauseBlock, 1
	case token.GROUP, token.ORDER:
		if next == token.BY {
			return clauseList, 2
		}
		return 0, 0
	case token.WINDOW:
		return clauseList, 1
	case token.VALUES:
		if leading {
			return clauseList, 1
		}
		return 0, 0
	case token.TABLE:
		if leading {
			return clauseInline, 1
		}
		return 0, 0
	case token.LIMIT, token.OFFSET, token.FETCH, token.INTO, token.FOR:
		return clauseInline, 1
	case token.UNION, token.INTERSECT, token.EXCEPT:
		if tok.Type == token.EXCEPT && prev == token.STAR { // SELECT * EXCEPT (col)
			return 0, 0
		}
		if next == token.ALL || next == token.DISTINCT {
			return clauseSetOp, 2
		}
		return clauseSetOp, 1
	}

	if token.IsKeyword(tok.Type) && tok.Is("QUALIFY") {
		return clauseBlock, 1
	}
	if n := joinPhrase(toks, i); n > 0 {
		return clauseJoin, n
	}
	return 0, 0
}

// joinPhrase returns the length of a join phrase such as LEFT OUTER JOIN
// starting at toks[i], or 0.
func joinPhrase(toks []token.Token, i int) int {
	for j := i; j < len(toks); j++ {
		t := toks[j]
		if t.Type == token.JOIN || (t.Type == token.IDENT && t.Is("STRAIGHT_JOIN")) {
			return j - i + 1
		}
		if !token.IsWord(t.Type) || !joinModifiers[t.Upper()] {
			return 0
		}
	}
	return 0
}

// splitList splits a clause body at its top-level commas.
func splitList(toks []token.Token) ([][]token.Token, []token.Token) {
	if len(toks) == 0 {
		return nil, nil
	}
	var (
		items  [][]token.Token
		commas []token.Token
		start  int
		depth  int
	)
	for i, tok := range toks {
		switch tok.Type {
		case token.LPAREN, token.LBRACKET:
			depth++
		case token.RPAREN, token.RBRACKET:
			if depth > 0 {
				depth--
			}
		case token.COMMA:
			if depth == 0 {
				items = append(items, toks[start:i])
				commas = append(commas, tok)
				start = i + 1
			}
		}
	}
	return append(items, toks[start:]), commas
}

// findTopLevel returns the index of the first top-level token of one of the given types.
func findTopLevel(toks []token.Token, types ...token.TokenType) int {
	depth := 0
	for i, tok := range toks {
		switch tok.Type {
		case token.LPAREN, token.LBRACKET:
			depth++
			continue
		case token.RPAREN, token.RBRACKET:
			depth--
			continue
		}
		if depth != 0 {
			continue
		}
		for _, t := range types {
			if tok.Type == t {
				return i
			}
		}
	}
	return -1
}

// isSubquery reports whether the parenthesis at toks[open] wraps a query.
func isSubquery(toks []token.Token, open int) bool {
	i := nextCode(toks, open+1)
	if i >= len(toks) {
		return false
	}
	return toks[i].Type == token.SELECT || toks[i].Type == token.WITH
}

// matchParen returns the index of the parenthesis closing toks[open], or -1.
func matchParen(toks []token.Token, open int) int {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch toks[i].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// nextCode returns the index of the first non-comment token at or after i.
func nextCode(toks []token.Token, i int) int {
	for i < len(toks) && toks[i].Type == token.COMMENT {
		i++
	}
	return i
}

// prevCode returns the index of the last non-comment token before i, or -1.
func prevCode(toks []token.Token, i int) int {
	for i--; i >= 0; i-- {
		if toks[i].Type != token.COMMENT {
			return i
		}
	}
	return -1
}
