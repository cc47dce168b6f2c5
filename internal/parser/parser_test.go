package parser

import (
	"testing"

	"github.com/sflang/sfl/internal/cst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOK(t *testing.T, src string) *cst.Tree {
	t.Helper()
	p := New(src, WithFilename("test.sfl"))
	tree := p.ParseExpression()
	require.Empty(t, p.Errors(), "unexpected parse errors for %q: %+v", src, p.Errors())
	return tree
}

func TestParseLiteral(t *testing.T) {
	tree := parseOK(t, "42")
	require.Len(t, tree.Children, 1)
	require.NotNil(t, tree.Children[0].Tree)
	assert.Equal(t, cst.KindLiteral, tree.Children[0].Tree.Kind)
}

func TestParseName(t *testing.T) {
	tree := parseOK(t, "x")
	require.Len(t, tree.Children, 1)
	assert.Equal(t, cst.KindName, tree.Children[0].Tree.Kind)
}

func TestParseBinaryOp(t *testing.T) {
	tree := parseOK(t, "1 + 2")
	require.Len(t, tree.Children, 1)
	bin := tree.Children[0].Tree
	assert.Equal(t, cst.KindBinaryOp, bin.Kind)
	// left, op token, right
	require.Len(t, bin.Children, 3)
	assert.Equal(t, cst.KindLiteral, bin.Children[0].Tree.Kind)
	assert.NotNil(t, bin.Children[1].Token)
	assert.Equal(t, cst.KindLiteral, bin.Children[2].Tree.Kind)
}

func TestParseBinaryOpLeftAssociative(t *testing.T) {
	// 1 - 2 - 3 should fold as ((1 - 2) - 3): the outer BinaryOp's
	// left child is itself a BinaryOp, not the right.
	tree := parseOK(t, "1 - 2 - 3")
	outer := tree.Children[0].Tree
	require.Equal(t, cst.KindBinaryOp, outer.Kind)
	left := outer.Children[0].Tree
	require.NotNil(t, left)
	assert.Equal(t, cst.KindBinaryOp, left.Kind)
	right := outer.Children[2].Tree
	require.NotNil(t, right)
	assert.Equal(t, cst.KindLiteral, right.Kind)
}

func TestParseApplication(t *testing.T) {
	tree := parseOK(t, "f x y")
	app := tree.Children[0].Tree
	require.Equal(t, cst.KindApplication, app.Kind)
	// application is left-associative: (f x) y
	inner := app.Children[0].Tree
	require.NotNil(t, inner)
	assert.Equal(t, cst.KindApplication, inner.Kind)
}

func TestParseAbstraction(t *testing.T) {
	tree := parseOK(t, `\x -> x`)
	abs := tree.Children[0].Tree
	assert.Equal(t, cst.KindAbstraction, abs.Kind)
}

func TestParseLet(t *testing.T) {
	tree := parseOK(t, "let x = 1 in x")
	let := tree.Children[0].Tree
	assert.Equal(t, cst.KindLet, let.Kind)
}

func TestParseIf(t *testing.T) {
	tree := parseOK(t, "if true then 1 else 2")
	ifTree := tree.Children[0].Tree
	assert.Equal(t, cst.KindIf, ifTree.Kind)
}

func TestParseGrouped(t *testing.T) {
	tree := parseOK(t, "(1 + 2)")
	grouped := tree.Children[0].Tree
	assert.Equal(t, cst.KindExpr, grouped.Kind)
	inner := grouped.Children[1].Tree
	// the '(' and ')' tokens are siblings of the inner expression
	require.NotNil(t, inner)
	assert.Equal(t, cst.KindBinaryOp, inner.Kind)
}

// TestParseDanglingOperatorRecovers covers spec.md's "1 +" scenario: a
// binary operator with no right-hand operand should report an error
// but still produce a tree (an ErrorTree standing in for the missing
// operand), not panic or loop forever.
func TestParseDanglingOperatorRecovers(t *testing.T) {
	p := New("1 +", WithFilename("test.sfl"))
	tree := p.ParseExpression()
	require.NotEmpty(t, p.Errors())
	require.NotNil(t, tree)

	bin := tree.Children[0].Tree
	require.Equal(t, cst.KindBinaryOp, bin.Kind)
	require.Len(t, bin.Children, 3)
	assert.Equal(t, cst.KindError, bin.Children[2].Tree.Kind)
}

// TestParseUnmatchedTokenRecovers covers an expression_delim position
// with no applicable prefix rule: the bad token is wrapped in an
// ErrorTree and parsing continues rather than aborting outright.
func TestParseUnmatchedTokenRecovers(t *testing.T) {
	p := New(")", WithFilename("test.sfl"))
	tree := p.ParseExpression()
	require.NotEmpty(t, p.Errors())
	require.Equal(t, cst.KindError, tree.Children[0].Tree.Kind)
}

// TestTokensRoundTrip is the parser-level half of property P2 (CST
// fidelity): every token the lexer produced (besides the trailing Eof)
// appears, in order, as a leaf of the resulting tree.
func TestTokensRoundTrip(t *testing.T) {
	src := "let x = 1 + 2 in f x"
	p := New(src, WithFilename("test.sfl"))
	tree := p.ParseExpression()
	require.Empty(t, p.Errors())

	toks := tree.Tokens()
	texts := make([]string, len(toks))
	for i, tok := range toks {
		texts[i] = tok.Text
	}
	assert.Equal(t, []string{"let", "x", "=", "1", "+", "2", "in", "f", "x"}, texts)
}

func TestParserSurfacesLexerErrors(t *testing.T) {
	p := New("1 @ 2", WithFilename("test.sfl"))
	p.ParseExpression()
	require.NotEmpty(t, p.Errors())
}
