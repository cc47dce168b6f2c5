// Package ast defines SFL's abstract syntax tree: a lossy,
// layout-free structure lowered from a cst.Tree (spec.md §3, §4.3).
// Each node exclusively owns its children; AST nodes are never shared.
package ast

import "github.com/sflang/sfl/internal/lexer"

// Node is any AST node, exposing the source position diagnostics hang
// off of. Grounded on the teacher's internal/ast/ast.go Node
// interface, generalized from lexer.Span fields to a single method.
type Node interface {
	Span() lexer.Span
}

// Expr marks the expression variants of the AST.
type Expr interface {
	Node
	exprNode()
}

// Err stands in for any subtree the builder could not lower — a
// structural CST mismatch, not a type or scope error (spec.md §4.3:
// "On any structural mismatch the builder substitutes Ast::Err; it
// never fails the phase").
type Err struct {
	span lexer.Span
}

func NewErr(span lexer.Span) *Err   { return &Err{span: span} }
func (e *Err) Span() lexer.Span     { return e.span }
func (*Err) exprNode()              {}

// Literal wraps an Int or Bool token; its value lives on the token
// itself (IntValue / Bool fields).
type Literal struct {
	Token lexer.Token
}

func NewLiteral(tok lexer.Token) *Literal { return &Literal{Token: tok} }
func (l *Literal) Span() lexer.Span       { return l.Token.Span }
func (*Literal) exprNode()                {}

// Name is a reference to a bound identifier or a builtin operator
// name. The token is retained so the type-checker and interpreter can
// report a precise position on an undefined-name error.
type Name struct {
	Token lexer.Token
}

func NewName(tok lexer.Token) *Name { return &Name{Token: tok} }
func (n *Name) Span() lexer.Span    { return n.Token.Span }
func (*Name) exprNode()             {}

// Abstraction is `\name -> body`.
type Abstraction struct {
	Param lexer.Token
	Body  Expr
}

func NewAbstraction(param lexer.Token, body Expr) *Abstraction {
	return &Abstraction{Param: param, Body: body}
}
func (a *Abstraction) Span() lexer.Span { return a.Param.Span }
func (*Abstraction) exprNode()          {}

// Application is `fn arg`.
type Application struct {
	Fn  Expr
	Arg Expr
}

func NewApplication(fn, arg Expr) *Application { return &Application{Fn: fn, Arg: arg} }
func (a *Application) Span() lexer.Span        { return a.Fn.Span() }
func (*Application) exprNode()                 {}

// BinaryOp is `l op r`, op retained as a token so its text selects the
// builtin (`+`, `-`) at type-check and eval time.
type BinaryOp struct {
	Op lexer.Token
	L  Expr
	R  Expr
}

func NewBinaryOp(op lexer.Token, l, r Expr) *BinaryOp { return &BinaryOp{Op: op, L: l, R: r} }
func (b *BinaryOp) Span() lexer.Span                  { return b.Op.Span }
func (*BinaryOp) exprNode()                           {}

// Let is `let name = bound in body`.
type Let struct {
	Name  lexer.Token
	Bound Expr
	Body  Expr
}

func NewLet(name lexer.Token, bound, body Expr) *Let {
	return &Let{Name: name, Bound: bound, Body: body}
}
func (l *Let) Span() lexer.Span { return l.Name.Span }
func (*Let) exprNode()          {}

// If is `if cond then conseq else alt`. Not named among spec.md
// §4.3's AST variants (the distillation's inference-rule table and
// interpreter evaluation rules also omit it), but the grammar
// (spec.md §4.2) parses if/then/else as a first-class
// expression_delim production, and the original implementation's CST
// defines an If tree kind for it (SPEC_FULL.md §11 resolves this gap:
// If gets a full AST/TypeChecker/Interpreter treatment rather than
// being dropped to Err).
type If struct {
	// KwIf carries the position of the leading 'if' token.
	KwIf   lexer.Token
	Cond   Expr
	Conseq Expr
	Alt    Expr
}

func NewIf(kwIf lexer.Token, cond, conseq, alt Expr) *If {
	return &If{KwIf: kwIf, Cond: cond, Conseq: conseq, Alt: alt}
}
func (i *If) Span() lexer.Span { return i.KwIf.Span }
func (*If) exprNode()          {}
