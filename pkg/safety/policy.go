package safety

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlframe/pkg/dialect"
	"github.com/leapstack-labs/sqlframe/pkg/token"
)

// Validator decides whether canonical SQL text may be executed against a dialect.
// Implementations must be pure: the same input always yields the same answer.
type Validator interface {
	IsSafe(canonical, dialect string) bool
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(canonical, dialect string) bool

// IsSafe calls f.
func (f ValidatorFunc) IsSafe(canonical, dialect string) bool {
	return f(canonical, dialect)
}

// Verdict is the outcome of a policy check.
type Verdict struct {
	Safe   bool
	RuleID string         // Set when Safe is false
	Reason string         // Set when Safe is false
	Pos    token.Position // Offending token, when there is one
}

// String renders the verdict for logs and the CLI.
func (v Verdict) String() string {
	if v.Safe {
		return "safe"
	}
	if v.Pos.IsValid() {
		return fmt.Sprintf("%s %s: %s", v.RuleID, v.Pos, v.Reason)
	}
	return fmt.Sprintf("%s: %s", v.RuleID, v.Reason)
}

// Policy is the read-only allow-list policy, parameterized by dialect.
type Policy struct {
	lookup func(name string) *dialect.Dialect
}

var _ Validator = (*Policy)(nil)

// NewPolicy returns a policy that resolves dialects from the dialect registry.
// Unregistered dialect names are checked with the default (ANSI) rules.
func NewPolicy() *Policy {
	return &Policy{lookup: dialect.GetOrDefault}
}

// IsSafe reports whether canonical is a single read-only statement for the dialect.
func (p *Policy) IsSafe(canonical, dialectName string) bool {
	return p.Check(canonical, dialectName).Safe
}

// Check evaluates every rule and returns the first violation, if any.
func (p *Policy) Check(canonical, dialectName string) (v Verdict) {
	defer func() {
		if r := recover(); r != nil {
			v = Verdict{RuleID: ruleInternal, Reason: fmt.Sprintf("policy check failed: %v", r)}
		}
	}()

	d := p.lookup(dialectName)
	if d == nil {
		d = dialect.ANSI()
	}

	opts := d.LexerOptions()
	v = check(canonical, d, opts)
	if !v.Safe || !opts.BackslashEscapes {
		return v
	}

	// The server may run with backslash escapes disabled
	// (NO_BACKSLASH_ESCAPES). The text must be safe under both lexings and
	// both must agree on where every literal ends.
	plain := opts
	plain.BackslashEscapes = false
	if v = check(canonical, d, plain); !v.Safe {
		return v
	}
	return sameLexing(canonical, opts, plain)
}

// sameLexing rejects text whose code tokens differ between two lexings.
func sameLexing(text string, a, b token.Options) Verdict {
	x := codeTokens(token.Tokenize(text, a))
	y := codeTokens(token.Tokenize(text, b))
	for i := 0; i < len(x) || i < len(y); i++ {
		if i < len(x) && i < len(y) && x[i].Type == y[i].Type && x[i].Literal == y[i].Literal {
			continue
		}
		var pos token.Position
		switch {
		case i < len(x):
			pos = x[i].Span.Start
		case i < len(y):
			pos = y[i].Span.Start
		}
		return reject(RuleAmbiguousQuoting,
			`string literal ends differently with and without backslash escapes; use '' to escape quotes`, pos)
	}
	return Verdict{Safe: true}
}

func check(text string, d *dialect.Dialect, opts token.Options) Verdict {
	code := codeTokens(token.Tokenize(text, opts))
	if len(code) == 0 {
		return reject(RuleEmpty, "no statement", token.Position{})
	}

	for i, tok := range code {
		if tok.Type == token.SEMICOLON && i < len(code)-1 {
			next := code[i+1]
			return reject(RuleMultiStatement, "multiple statements are not allowed", next.Span.Start)
		}
	}

	first := 0
	for first < len(code) && code[first].Type == token.LPAREN {
		first++
	}
	if first == len(code) || !token.IsWord(code[first].Type) || !d.AllowsLeading(code[first].Literal) {
		at := code[min(first, len(code)-1)]
		return reject(RuleLeadingKeyword,
			fmt.Sprintf("statement must start with one of %s", strings.Join(d.ReadStatements(), ", ")),
			at.Span.Start)
	}

	for i, tok := range code {
		if tok.Type == token.FOR && i+1 < len(code) && isLockStrength(code[i+1]) {
			return reject(RuleLockingRead, "locking read "+tok.Upper()+" "+code[i+1].Upper(), tok.Span.Start)
		}

		if token.IsWord(tok.Type) && !qualified(code, i) && d.IsBlockedKeyword(tok.Literal) {
			return reject(RuleBlockedKeyword, fmt.Sprintf("keyword %s is not allowed", tok.Upper()), tok.Span.Start)
		}

		if i+1 < len(code) && code[i+1].Type == token.LPAREN {
			if name, ok := functionName(tok); ok && d.IsBlockedFunction(name) {
				return reject(RuleBlockedFunction, fmt.Sprintf("function %s is not allowed", name), tok.Span.Start)
			}
		}
	}

	return Verdict{Safe: true}
}

func reject(rule, reason string, pos token.Position) Verdict {
	return Verdict{RuleID: rule, Reason: reason, Pos: pos}
}

// codeTokens drops comments.
func codeTokens(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if t.Type != token.COMMENT {
			out = append(out, t)
		}
	}
	return out
}

// qualified reports whether code[i] is part of a dotted name such as t.update.
func qualified(code []token.Token, i int) bool {
	return (i > 0 && code[i-1].Type == token.DOT) ||
		(i+1 < len(code) && code[i+1].Type == token.DOT)
}

// isLockStrength matches the word after FOR in FOR UPDATE, FOR SHARE,
// FOR NO KEY UPDATE and FOR KEY SHARE.
func isLockStrength(t token.Token) bool {
	return t.Is("UPDATE") || t.Is("SHARE") || t.Is("NO") || t.Is("KEY")
}

// functionName returns the name of a token that may be called, unquoting
// quoted identifiers: "pg_sleep"(1) is still a call to pg_sleep.
func functionName(t token.Token) (string, bool) {
	switch {
	case token.IsWord(t.Type):
		return t.Literal, true
	case t.Type == token.QUOTED_IDENT && len(t.Literal) >= 2:
		q := t.Literal[:1]
		inner := t.Literal[1 : len(t.Literal)-1]
		return strings.ReplaceAll(inner, q+q, q), true
	}
	return "", false
}
