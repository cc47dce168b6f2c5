// Package cst defines the concrete syntax tree SFL's parser produces:
// a full-fidelity tree that retains every input token, including the
// ranges the parser could not make sense of (spec.md §3).
package cst

import "github.com/sflang/sfl/internal/lexer"

// Kind discriminates a Tree node's grammatical role.
type Kind string

const (
	KindError       Kind = "ErrorTree"
	KindFile        Kind = "File"
	KindExpr        Kind = "Expr"
	KindDefinition  Kind = "Definition"
	KindParams      Kind = "Params"
	KindParam       Kind = "Param"
	KindCall        Kind = "Call"
	KindArgs        Kind = "Args"
	KindArg         Kind = "Arg"
	KindTypeExpr    Kind = "TypeExpr"
	KindLiteral     Kind = "Literal"
	KindBinary      Kind = "Binary"
	KindIf          Kind = "If"
	KindLet         Kind = "Let"
	KindAbstraction Kind = "Abstraction"
	KindName        Kind = "Name"
	KindBlock       Kind = "Block"
	KindStatement   Kind = "Statement"
	KindApplication Kind = "Application"
	KindBinaryOp    Kind = "BinaryOp"
)

// Child is either a Token or a nested Tree — never both, never
// neither. Exactly the tagged union spec.md §3 describes.
type Child struct {
	Token *lexer.Token
	Tree  *Tree
}

// TokenChild wraps a token as a CST child.
func TokenChild(t lexer.Token) Child { return Child{Token: &t} }

// TreeChild wraps a subtree as a CST child.
func TreeChild(t *Tree) Child { return Child{Tree: t} }

// Tree is a CST node: a kind plus an ordered list of children.
type Tree struct {
	Kind     Kind
	Children []Child
}

// Tokens walks the tree in order and returns every token leaf,
// matching the order the parser consumed them (spec.md P2: CST
// fidelity).
func (t *Tree) Tokens() []lexer.Token {
	var out []lexer.Token
	var walk func(*Tree)
	walk = func(n *Tree) {
		for _, c := range n.Children {
			if c.Token != nil {
				out = append(out, *c.Token)
			} else if c.Tree != nil {
				walk(c.Tree)
			}
		}
	}
	walk(t)
	return out
}

// FirstToken returns the first token leaf under the tree, skipping
// empty subtrees, or nil if no token leaf exists anywhere under it.
func (t *Tree) FirstToken() *lexer.Token {
	for _, c := range t.Children {
		if c.Token != nil {
			return c.Token
		}
		if c.Tree != nil {
			if tok := c.Tree.FirstToken(); tok != nil {
				return tok
			}
		}
	}
	return nil
}
