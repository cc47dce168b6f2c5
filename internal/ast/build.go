package ast

import (
	"github.com/sflang/sfl/internal/cst"
	"github.com/sflang/sfl/internal/lexer"
)

// Build lowers a cst.Tree into an Expr by positional child extraction,
// one cst.Kind at a time (spec.md §4.3). Any shape the tree does not
// match — wrong arity, a token where a subtree was expected, an
// unrecognized kind — yields Err for that subtree only; Build never
// panics and never aborts the rest of the tree.
func Build(tree *cst.Tree) Expr {
	if tree == nil {
		return &Err{}
	}

	switch tree.Kind {
	case cst.KindError:
		return &Err{span: errSpan(tree)}

	case cst.KindExpr:
		// A parenthesized group: '(' expression ')'. Collapses to its
		// inner expression — spec.md §3's invariant that no Expr
		// wrapper survives lowering.
		if inner := childTree(tree, 1); inner != nil {
			return Build(inner)
		}
		// The top-level synthetic root wraps a single child tree with
		// no surrounding tokens.
		if len(tree.Children) == 1 && tree.Children[0].Tree != nil {
			return Build(tree.Children[0].Tree)
		}
		return &Err{span: errSpan(tree)}

	case cst.KindLiteral, cst.KindName:
		tok := childToken(tree, 0)
		if tok == nil {
			return &Err{span: errSpan(tree)}
		}
		if tree.Kind == cst.KindLiteral {
			return &Literal{Token: *tok}
		}
		return &Name{Token: *tok}

	case cst.KindAbstraction:
		// children: '\' Name '->' body
		param := childToken(tree, 1)
		body := childTree(tree, 3)
		if param == nil || body == nil {
			return &Err{span: errSpan(tree)}
		}
		return &Abstraction{Param: *param, Body: Build(body)}

	case cst.KindApplication:
		fn := childTree(tree, 0)
		arg := childTree(tree, 1)
		if fn == nil || arg == nil {
			return &Err{span: errSpan(tree)}
		}
		return &Application{Fn: Build(fn), Arg: Build(arg)}

	case cst.KindBinaryOp:
		// children: lhs op rhs
		lhs := childTree(tree, 0)
		op := childToken(tree, 1)
		rhs := childTree(tree, 2)
		if lhs == nil || op == nil || rhs == nil {
			return &Err{span: errSpan(tree)}
		}
		return &BinaryOp{Op: *op, L: Build(lhs), R: Build(rhs)}

	case cst.KindLet:
		// children: 'let' Name '=' bound 'in' body
		name := childToken(tree, 1)
		bound := childTree(tree, 3)
		body := childTree(tree, 5)
		if name == nil || bound == nil || body == nil {
			return &Err{span: errSpan(tree)}
		}
		return &Let{Name: *name, Bound: Build(bound), Body: Build(body)}

	case cst.KindIf:
		// children: 'if' cond 'then' conseq 'else' alt
		kwIf := childToken(tree, 0)
		cond := childTree(tree, 1)
		conseq := childTree(tree, 3)
		alt := childTree(tree, 5)
		if kwIf == nil || cond == nil || conseq == nil || alt == nil {
			return &Err{span: errSpan(tree)}
		}
		return &If{KwIf: *kwIf, Cond: Build(cond), Conseq: Build(conseq), Alt: Build(alt)}

	case cst.KindCall:
		// children: callee '(' Args ')' — n-ary application desugars to
		// nested binary Application the same way 'f a b' already does.
		callee := childTree(tree, 0)
		argsTree := childTree(tree, 2)
		if callee == nil || argsTree == nil {
			return &Err{span: errSpan(tree)}
		}
		result := Build(callee)
		for _, c := range argsTree.Children {
			if c.Tree == nil || c.Tree.Kind != cst.KindArg {
				continue
			}
			argExprTree := childTree(c.Tree, 0)
			if argExprTree == nil {
				return &Err{span: errSpan(tree)}
			}
			result = &Application{Fn: result, Arg: Build(argExprTree)}
		}
		return result

	case cst.KindFile:
		return buildFile(tree)

	default:
		return &Err{span: errSpan(tree)}
	}
}

// buildFile desugars a file's def* into the nested-Let spine
// SPEC_FULL.md §11 resolves: every def other than the entry point
// becomes an outer Let binding (in source order, so a def may
// reference any def that precedes it, not ones that follow — standard
// non-recursive let scoping, the same rule Build already applies to a
// single 'let' expression); the entry point's own body is the chain's
// innermost expression. The entry point is the def named "main" if
// one exists, otherwise the file's last def.
func buildFile(tree *cst.Tree) Expr {
	var defs []*cst.Tree
	for _, c := range tree.Children {
		if c.Tree != nil && c.Tree.Kind == cst.KindDefinition {
			defs = append(defs, c.Tree)
		}
	}
	if len(defs) == 0 {
		return &Err{span: errSpan(tree)}
	}

	entry := len(defs) - 1
	for i, d := range defs {
		if tok := defName(d); tok != nil && tok.Text == "main" {
			entry = i
			break
		}
	}

	result := buildDefValue(defs[entry])
	for i := len(defs) - 1; i >= 0; i-- {
		if i == entry {
			continue
		}
		nameTok := defName(defs[i])
		if nameTok == nil {
			continue
		}
		result = &Let{Name: *nameTok, Bound: buildDefValue(defs[i]), Body: result}
	}
	return result
}

func defName(d *cst.Tree) *lexer.Token {
	return childToken(d, 1)
}

// buildDefValue curries a def's params (if any) around its body.
func buildDefValue(d *cst.Tree) Expr {
	body := buildDefBody(d)
	params := defParams(d)
	for i := len(params) - 1; i >= 0; i-- {
		body = &Abstraction{Param: params[i], Body: body}
	}
	return body
}

func defParams(d *cst.Tree) []lexer.Token {
	var params []lexer.Token
	for _, c := range d.Children {
		if c.Tree == nil || c.Tree.Kind != cst.KindParams {
			continue
		}
		for _, pc := range c.Tree.Children {
			if pc.Tree == nil || pc.Tree.Kind != cst.KindParam {
				continue
			}
			if tok := childToken(pc.Tree, 0); tok != nil {
				params = append(params, *tok)
			}
		}
	}
	return params
}

// buildDefBody lowers a def's '{' statement '}' block, or Err if the
// def has no block (a declaration-only def has nothing to evaluate).
func buildDefBody(d *cst.Tree) Expr {
	for _, c := range d.Children {
		if c.Tree == nil || c.Tree.Kind != cst.KindBlock {
			continue
		}
		for _, bc := range c.Tree.Children {
			if bc.Tree != nil && bc.Tree.Kind == cst.KindStatement {
				return buildStatement(bc.Tree)
			}
		}
	}
	return &Err{span: errSpan(d)}
}

// buildStatement lowers 'expression (';' expression)*': every
// expression but the last is sequenced via an anonymous Let binding
// (forcing its evaluation without naming its result), and the last
// expression's value is the statement's value.
func buildStatement(tree *cst.Tree) Expr {
	var exprs []*cst.Tree
	for _, c := range tree.Children {
		if c.Tree != nil {
			exprs = append(exprs, c.Tree)
		}
	}
	if len(exprs) == 0 {
		return &Err{span: errSpan(tree)}
	}

	result := Build(exprs[len(exprs)-1])
	for i := len(exprs) - 2; i >= 0; i-- {
		result = &Let{Name: lexer.Token{Kind: lexer.Name, Text: "_"}, Bound: Build(exprs[i]), Body: result}
	}
	return result
}

func childTree(t *cst.Tree, i int) *cst.Tree {
	if i < 0 || i >= len(t.Children) {
		return nil
	}
	return t.Children[i].Tree
}

func childToken(t *cst.Tree, i int) *lexer.Token {
	if i < 0 || i >= len(t.Children) {
		return nil
	}
	return t.Children[i].Token
}

// errSpan recovers a best-effort position for an Err node from the
// first token leaf under the malformed subtree, so diagnostics built
// atop a lowering failure still point somewhere useful.
func errSpan(t *cst.Tree) lexer.Span {
	if tok := t.FirstToken(); tok != nil {
		return tok.Span
	}
	return lexer.Span{}
}
