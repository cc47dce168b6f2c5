package interp

import (
	"fmt"

	"github.com/sflang/sfl/internal/ast"
	"github.com/sflang/sfl/internal/lexer"
)

// Eval evaluates e under env, following spec.md §4.5's rules exactly.
// Evaluation order is strict and left-to-right. A Name that fails to
// resolve, or an Ast::Err reaching evaluation, is a runtime panic: the
// type-checker is assumed to have already rejected any program where
// this can happen (spec.md §7, error kind 6 — "by construction
// prevented by the type-checker; if it occurs it is a compiler bug").
func Eval(env *Env, e ast.Expr) Value {
	switch n := e.(type) {
	case *ast.Literal:
		return literalValue(n)

	case *ast.Name:
		v, ok := env.Lookup(n.Token.Text)
		if !ok {
			panic(fmt.Sprintf("compiler bug: unresolved name %q reached the interpreter", n.Token.Text))
		}
		return v

	case *ast.Abstraction:
		return &Func{Param: n.Param.Text, Body: n.Body, Env: env}

	case *ast.Application:
		fnVal := Eval(env, n.Fn)
		argVal := Eval(env, n.Arg)
		fn, ok := fnVal.(*Func)
		if !ok {
			panic(fmt.Sprintf("compiler bug: application of a non-function value %v", fnVal))
		}
		return Eval(fn.Env.Extend(fn.Param, argVal), fn.Body)

	case *ast.BinaryOp:
		l := Eval(env, n.L)
		r := Eval(env, n.R)
		return evalBinaryOp(n.Op.Text, l, r)

	case *ast.Let:
		bound := Eval(env, n.Bound)
		return Eval(env.Extend(n.Name.Text, bound), n.Body)

	case *ast.If:
		cond := Eval(env, n.Cond)
		b, ok := cond.(Bool)
		if !ok {
			panic(fmt.Sprintf("compiler bug: if condition evaluated to non-bool %v", cond))
		}
		if bool(b) {
			return Eval(env, n.Conseq)
		}
		return Eval(env, n.Alt)

	case *ast.Err:
		panic("compiler bug: Ast::Err reached the interpreter")

	default:
		panic(fmt.Sprintf("compiler bug: unhandled AST node %T reached the interpreter", e))
	}
}

func literalValue(n *ast.Literal) Value {
	if n.Token.Kind == lexer.LiteralBool {
		return Bool(n.Token.Bool)
	}
	return Number(n.Token.IntValue)
}

func evalBinaryOp(op string, l, r Value) Value {
	ln, lok := l.(Number)
	rn, rok := r.(Number)
	if !lok || !rok {
		panic(fmt.Sprintf("compiler bug: binary op %q applied to non-numeric operands %v, %v", op, l, r))
	}
	switch op {
	case "+":
		return ln + rn
	case "-":
		return ln - rn
	default:
		panic(fmt.Sprintf("compiler bug: unknown binary operator %q reached the interpreter", op))
	}
}
