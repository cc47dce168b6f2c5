package types

import (
	"fmt"

	"github.com/sflang/sfl/internal/ast"
	"github.com/sflang/sfl/internal/diag"
	"github.com/sflang/sfl/internal/lexer"
)

// Checker runs Algorithm W over one AST. Its fresh-variable counter is
// a per-instance field, never process-wide global state (spec.md §9's
// "Global state" redesign flag) — one Checker per type-check
// invocation, discarded afterward.
type Checker struct {
	counter int
	errs    []diag.Diagnostic
	path    string
}

// NewChecker returns a Checker attributing its diagnostics to path.
func NewChecker(path string) *Checker {
	return &Checker{path: path}
}

// Fresh yields the next globally-unique (within this Checker) type
// variable name: t0, t1, ... (spec.md §4.4).
func (c *Checker) Fresh() Type {
	name := fmt.Sprintf("t%d", c.counter)
	c.counter++
	return &Var{Name: name}
}

// Builtins returns the fixed context entries for SFL's two binary
// operators, both typed Int -> Int -> Int (spec.md §4.4's inference
// rule for Name: "if builtin (+, - -> Int->Int->Int), inst(builtin)").
func Builtins() Context {
	intToIntToInt := &Func{In: IntType(), Out: &Func{In: IntType(), Out: IntType()}}
	return Context{
		"+": intToIntToInt,
		"-": intToIntToInt,
	}
}

func (c *Checker) fail(msg string, span ast.Node) {
	s := span.Span()
	c.errs = append(c.errs, diag.Diagnostic{
		Stage:    diag.StageTypes,
		Severity: diag.SeverityError,
		Message:  msg,
		Span:     s,
	})
}

// Infer runs w(Γ, e), returning the substitution and type of a
// successful run and the accumulated diagnostics of a failed one.
// Per spec.md §4.4: "a unification or scope failure pushes a message
// and returns failure; the whole top-level expression fails (no
// partial types are emitted)" — a non-empty error slice means the
// returned substitution/type must be discarded by the caller.
func (c *Checker) Infer(ctx Context, e ast.Expr) (Subst, Type, []diag.Diagnostic) {
	c.errs = nil
	s, t := c.w(ctx, e)
	return s, t, c.errs
}

// errType is a placeholder type returned alongside a recorded failure;
// callers must check c.errs rather than trust this value.
var errType Type = &Var{Name: "<error>"}

func (c *Checker) w(ctx Context, e ast.Expr) (Subst, Type) {
	switch n := e.(type) {
	case *ast.Err:
		// A malformed subtree (itself already reported by the lexer or
		// parser) still yields a type failure here — spec.md's
		// scenario 7: an ErrorTree lowers to Ast::Err, "which itself
		// yields a type error" — so the phase's own error count always
		// reflects a failed type-check, not just a failed parse.
		c.fail("cannot infer a type for a malformed expression", n)
		return Subst{}, errType

	case *ast.Literal:
		if n.Token.Kind == lexer.LiteralBool {
			return Subst{}, BoolType()
		}
		return Subst{}, IntType()

	case *ast.Name:
		if t, ok := ctx[n.Token.Text]; ok {
			return Subst{}, c.Instantiate(t)
		}
		if t, ok := Builtins()[n.Token.Text]; ok {
			return Subst{}, c.Instantiate(t)
		}
		c.fail("undefined name: "+n.Token.Text, n)
		return Subst{}, errType

	case *ast.Abstraction:
		alpha := c.Fresh()
		s, tau := c.w(ctx.Extend(n.Param.Text, alpha), n.Body)
		return s, s.Apply(&Func{In: alpha, Out: tau})

	case *ast.Application:
		return c.inferApplication(ctx, n, n.Fn, n.Arg)

	case *ast.BinaryOp:
		// Desugar a ⊕ b to (⊕ a) b and reuse the application rule
		// (spec.md §4.4).
		opName := &ast.Name{Token: n.Op}
		return c.inferApplication(ctx, n, &ast.Application{Fn: opName, Arg: n.L}, n.R)

	case *ast.Let:
		s1, tau1 := c.w(ctx, n.Bound)
		if len(c.errs) > 0 {
			return s1, errType
		}
		ctxPrime := s1.ApplyCtx(ctx).Extend(n.Name.Text, Generalize(s1.ApplyCtx(ctx), tau1))
		s2, tau2 := c.w(ctxPrime, n.Body)
		return Compose(s2, s1), tau2

	case *ast.If:
		return c.inferIf(ctx, n)

	default:
		c.fail(fmt.Sprintf("internal error: unhandled AST node %T", e), e)
		return Subst{}, errType
	}
}

// inferApplication implements e1 e2's rule, shared by real
// Applications and the BinaryOp desugaring.
func (c *Checker) inferApplication(ctx Context, site ast.Node, fn, arg ast.Expr) (Subst, Type) {
	s1, tau1 := c.w(ctx, fn)
	if len(c.errs) > 0 {
		return s1, errType
	}
	s2, tau2 := c.w(s1.ApplyCtx(ctx), arg)
	if len(c.errs) > 0 {
		return Compose(s2, s1), errType
	}
	alpha := c.Fresh()
	s3, err := Unify(s2.Apply(tau1), &Func{In: tau2, Out: alpha})
	if err != nil {
		c.fail(err.Error(), site)
		return Compose(s2, s1), errType
	}
	result := Compose(s3, Compose(s2, s1))
	return result, s3.Apply(alpha)
}

func (c *Checker) inferIf(ctx Context, n *ast.If) (Subst, Type) {
	s1, tCond := c.w(ctx, n.Cond)
	if len(c.errs) > 0 {
		return s1, errType
	}
	s2, err := Unify(tCond, BoolType())
	if err != nil {
		c.fail(err.Error(), n.Cond)
		return s1, errType
	}
	s2 = Compose(s2, s1)

	ctxConseq := s2.ApplyCtx(ctx)
	s3, tConseq := c.w(ctxConseq, n.Conseq)
	if len(c.errs) > 0 {
		return Compose(s3, s2), errType
	}
	s3 = Compose(s3, s2)

	ctxAlt := s3.ApplyCtx(ctx)
	s4, tAlt := c.w(ctxAlt, n.Alt)
	if len(c.errs) > 0 {
		return Compose(s4, s3), errType
	}
	s4 = Compose(s4, s3)

	s5, err := Unify(s4.Apply(tConseq), tAlt)
	if err != nil {
		c.fail(err.Error(), n)
		return s4, errType
	}
	result := Compose(s5, s4)
	return result, result.Apply(tAlt)
}
