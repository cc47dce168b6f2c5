// Package parser implements SFL's recursive-descent, event-buffer
// parser (spec.md §4.2). Parsing never backtracks: a closed subtree
// can be retroactively re-parented via open_before, which is what
// makes left-recursive shapes (application, binary operators) and
// error recovery possible from a single linear pass over the tokens.
package parser

import (
	"github.com/sflang/sfl/internal/cst"
	"github.com/sflang/sfl/internal/diag"
	"github.com/sflang/sfl/internal/lexer"
)

// Option configures a Parser at construction time.
type Option func(*options)

type options struct {
	filename string
}

// WithFilename attributes every diagnostic and span emitted by the
// parser to the given path.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// Parser drives a flat token buffer through the grammar in spec.md
// §4.2, emitting an event stream later reduced into a cst.Tree.
type Parser struct {
	tokens []lexer.Token
	pos    int
	fuel   int

	events []event

	filename string
	errors   []diag.Diagnostic

	// fileMode switches the expression-core application fold to treat a
	// directly-adjacent '(' as the start of a Call's argument list
	// instead of folding a grouped expression in as an Application
	// operand (spec.md §4.2's file/definition variant). Never set by
	// ParseExpression; only ParseFile turns it on.
	fileMode bool
	// allowEmptyArgs permits a Call's argument list to be empty
	// ('f()'), a realistic extension of the grammar's 'arg
	// (',' arg)*' (which names at least one arg) that the file variant
	// would otherwise make awkward for zero-parameter definitions.
	allowEmptyArgs bool
}

// New lexes input eagerly and returns a parser positioned at the first
// significant token.
func New(input string, opts ...Option) *Parser {
	cfg := options{}
	for _, o := range opts {
		o(&cfg)
	}
	return newFromTokens(lexer.Lex(cfg.filename, input), cfg.filename)
}

// NewFromTokens builds a parser directly over a token stream a
// previous lexer phase already produced, rather than re-lexing from
// source text. This is the constructor the driver's ParsePhase uses,
// mirroring the original implementation's Parser::new(tokens) taking
// the Lexer phase's output as its own input (lexer and parser are
// separate phases sharing one token list, not one re-lexing the
// other's work).
func NewFromTokens(tokens []lexer.Token, filename string) *Parser {
	return newFromTokens(tokens, filename)
}

func newFromTokens(tokens []lexer.Token, filename string) *Parser {
	p := &Parser{filename: filename, fuel: 256, tokens: tokens}

	for _, tok := range lexerErrorsOf(p.tokens) {
		p.errors = append(p.errors, diag.Diagnostic{
			Stage:     diag.StageLexer,
			Severity:  diag.SeverityError,
			Message:   tok.Reason,
			Span:      tok.Span,
			Indicator: tok.Reason,
		})
	}

	return p
}

// lexerErrorsOf filters the token stream for Error-kind tokens. The
// lexer already appended them to its own Errors slice during scanning,
// but New re-derives them here from the materialized token slice so
// the parser has a single source of truth regardless of how tokens
// were produced (e.g. in tests that hand-build a token slice).
func lexerErrorsOf(toks []lexer.Token) []lexer.Token {
	var out []lexer.Token
	for _, t := range toks {
		if t.Kind == lexer.Error {
			out = append(out, t)
		}
	}
	return out
}

// Errors returns every recoverable diagnostic accumulated so far.
func (p *Parser) Errors() []diag.Diagnostic { return p.errors }

func (p *Parser) isEnd() bool { return p.at(lexer.Eof) }

// nth peeks k tokens ahead, clamped to the last (Eof) token. Each call
// burns one unit of fuel; exhausting it indicates a parser rule that
// makes no progress, a programmer error rather than a user-facing
// condition (spec.md §4.2, §5).
func (p *Parser) nth(k int) lexer.Token {
	p.fuel--
	if p.fuel == 0 {
		panic("parser stuck: fuel exhausted (no progress across 256 lookaheads)")
	}
	idx := p.pos + k
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // Eof
	}
	return p.tokens[idx]
}

func (p *Parser) cur() lexer.Token { return p.nth(0) }

// at reports whether the current token has the given kind. This is a
// variant-discriminant compare only: at(lexer.Name) matches any name
// regardless of its text (spec.md §4.2).
func (p *Parser) at(k lexer.Kind) bool { return p.cur().Kind == k }

func (p *Parser) currentSpan() lexer.Span { return p.cur().Span }

// expect consumes the current token if it matches kind, returning
// true; on mismatch it records an error and never advances, leaving
// resynchronization to the caller (spec.md §4.2).
func (p *Parser) expect(k lexer.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	p.reportError("expected "+string(k), p.currentSpan())
	return false
}

func (p *Parser) reportError(msg string, span lexer.Span) {
	p.errors = append(p.errors, diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Message:  msg,
		Span:     span,
	})
}

// tightness table: spec.md §4.2's "table of lists" — the index of the
// tightest-binding containing list is an operator's tightness. Only
// one level is defined; '*'/'/' are reserved for a future extension.
var tightnessTable = [][]lexer.Kind{
	{lexer.Plus, lexer.Minus},
}

const sentinelTightness = -1

func tightnessOf(k lexer.Kind) (int, bool) {
	for i, level := range tightnessTable {
		for _, op := range level {
			if op == k {
				return i, true
			}
		}
	}
	return 0, false
}

func startsExprDelim(k lexer.Kind) bool {
	switch k {
	case lexer.Backslash, lexer.KwLet, lexer.KwIf, lexer.LParen, lexer.Name, lexer.LiteralInt, lexer.LiteralBool:
		return true
	default:
		return false
	}
}

// ParseExpression parses the expression-core grammar (spec.md §4.2)
// and returns the resulting CST; recoverable diagnostics collected
// along the way are available from Errors. Any token left after the
// top-level expression is wrapped in its own ErrorTree, one token at a
// time, so it stays in the tree.
func (p *Parser) ParseExpression() *cst.Tree {
	p.parseExpression()
	for !p.isEnd() {
		p.advanceWithError("unexpected token after expression")
	}
	return buildTree(p.finish(cst.KindExpr))
}

// finish closes the implicit root the event buffer needs (spec.md
// §4.2's "virtual root"), returning the full event list. Every event
// ParseExpression/ParseFile recorded becomes a child of this root, so
// the same mechanism serves a single top-level expression (root wraps
// one child) and a file's def* sequence (root wraps many).
func (p *Parser) finish(rootKind cst.Kind) []event {
	rootOpen := event{kind: eventOpen, treeKind: rootKind}
	events := make([]event, 0, len(p.events)+2)
	events = append(events, rootOpen)
	events = append(events, p.events...)
	events = append(events, event{kind: eventClose})
	return events
}

// parseExpression implements:
//
//	expression ::= binary_op (expression_delim)*
//
// Trailing expression_delims fold the preceding expression into a
// left-associative Application, using open_before to retroactively
// wrap it (spec.md §4.2's Application rule).
func (p *Parser) parseExpression() MarkClosed {
	lhs := p.parseBinaryOp(sentinelTightness)

	for {
		if p.fileMode && p.at(lexer.LParen) {
			before := p.openBefore(lhs)
			p.parseCallArgs()
			lhs = p.close(before, cst.KindCall)
			continue
		}
		if p.isEnd() || !startsExprDelim(p.cur().Kind) {
			break
		}
		before := p.openBefore(lhs)
		p.parseExprDelim()
		lhs = p.close(before, cst.KindApplication)
	}

	return lhs
}

// parseBinaryOp implements:
//
//	binary_op(left) ::= expression_delim ( op binary_op(op) )*
//
// via precedence climbing: an operator is only folded in while it
// binds strictly tighter than the enclosing call's operator
// (tightness(right) > tightness(left)); the outer loop then continues
// to fold same-tightness operators left-associatively.
func (p *Parser) parseBinaryOp(leftTightness int) MarkClosed {
	lhs := p.parseExprDelim()

	for {
		opTightness, isOp := tightnessOf(p.cur().Kind)
		if !isOp || opTightness <= leftTightness {
			break
		}

		before := p.openBefore(lhs)
		p.advance() // consume the operator
		p.parseBinaryOp(opTightness)
		lhs = p.close(before, cst.KindBinaryOp)
	}

	return lhs
}

// parseExprDelim parses one expression_delim production: abstraction,
// let, if, a parenthesized expression, a name, or a literal. On an
// unmatched token it consumes one token inside an ErrorTree and
// continues (spec.md's error-recovery rule for this production).
func (p *Parser) parseExprDelim() MarkClosed {
	switch p.cur().Kind {
	case lexer.Backslash:
		return p.parseAbstraction()
	case lexer.KwLet:
		return p.parseLet()
	case lexer.KwIf:
		return p.parseIf()
	case lexer.LParen:
		return p.parseGrouped()
	case lexer.Name:
		return p.parseName()
	case lexer.LiteralInt, lexer.LiteralBool:
		return p.parseLiteral()
	default:
		return p.advanceWithError("expected expression")
	}
}

// parseAbstraction parses '\' name '->' expression.
func (p *Parser) parseAbstraction() MarkClosed {
	m := p.open()
	p.advance() // '\'
	p.expect(lexer.Name)
	p.expect(lexer.Arrow)
	p.parseExpression()
	return p.close(m, cst.KindAbstraction)
}

// parseLet parses 'let' name '=' expression 'in' expression.
func (p *Parser) parseLet() MarkClosed {
	m := p.open()
	p.advance() // 'let'
	p.expect(lexer.Name)
	p.expect(lexer.Assign)
	p.parseExpression()
	p.expect(lexer.KwIn)
	p.parseExpression()
	return p.close(m, cst.KindLet)
}

// parseIf parses 'if' expression 'then' expression 'else' expression.
func (p *Parser) parseIf() MarkClosed {
	m := p.open()
	p.advance() // 'if'
	p.parseExpression()
	p.expect(lexer.KwThen)
	p.parseExpression()
	p.expect(lexer.KwElse)
	p.parseExpression()
	return p.close(m, cst.KindIf)
}

// parseGrouped parses '(' expression ')'. Parenthesized expressions
// collapse to their inner expression during AST lowering (spec.md
// §4.3), but the CST keeps the parens for full-fidelity (P2).
func (p *Parser) parseGrouped() MarkClosed {
	m := p.open()
	p.advance() // '('
	p.parseExpression()
	p.expect(lexer.RParen)
	return p.close(m, cst.KindExpr)
}

func (p *Parser) parseName() MarkClosed {
	m := p.open()
	p.advance()
	return p.close(m, cst.KindName)
}

func (p *Parser) parseLiteral() MarkClosed {
	m := p.open()
	p.advance()
	return p.close(m, cst.KindLiteral)
}
