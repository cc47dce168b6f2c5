package interp_test

import (
	"testing"

	"github.com/sflang/sfl/internal/ast"
	"github.com/sflang/sfl/internal/interp"
	"github.com/sflang/sfl/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eval(t *testing.T, src string) interp.Value {
	t.Helper()
	p := parser.New(src, parser.WithFilename("test.sfl"))
	tree := p.ParseExpression()
	require.Empty(t, p.Errors())
	e := ast.Build(tree)
	return interp.Eval(interp.NewEnv(), e)
}

// TestScenario1 covers spec.md's concrete scenario 1: 1 + 2 → 3.
func TestScenario1(t *testing.T) {
	v := eval(t, "1 + 2")
	assert.Equal(t, interp.Number(3), v)
}

// TestScenario2 covers scenario 2: let id = \x -> x in id evaluates
// to a closure.
func TestScenario2(t *testing.T) {
	v := eval(t, `let id = \x -> x in id`)
	_, ok := v.(*interp.Func)
	assert.True(t, ok)
}

// TestScenario3 covers scenario 3: (\x -> x + 1) 41 → 42.
func TestScenario3(t *testing.T) {
	v := eval(t, `(\x -> x + 1) 41`)
	assert.Equal(t, interp.Number(42), v)
}

// TestScenario4 covers scenario 4: let k = \x -> \y -> x in k 7 9 → 7,
// exercising environment-capturing closures: k's returned inner
// function must still see x after k's own call frame has returned.
func TestScenario4(t *testing.T) {
	v := eval(t, `let k = \x -> \y -> x in k 7 9`)
	assert.Equal(t, interp.Number(7), v)
}

func TestEvalIfTrue(t *testing.T) {
	v := eval(t, "if true then 1 else 2")
	assert.Equal(t, interp.Number(1), v)
}

func TestEvalIfFalse(t *testing.T) {
	v := eval(t, "if false then 1 else 2")
	assert.Equal(t, interp.Number(2), v)
}

func TestEvalMinus(t *testing.T) {
	v := eval(t, "10 - 3")
	assert.Equal(t, interp.Number(7), v)
}

// TestEvalClosureCapturesDefiningEnvironment exercises the resolved
// Open Question directly: a closure returned out of its defining
// scope must still resolve free variables against the environment it
// captured, not the caller's.
func TestEvalClosureCapturesDefiningEnvironment(t *testing.T) {
	v := eval(t, `let make = \x -> \y -> x + y in let add5 = make 5 in add5 10`)
	assert.Equal(t, interp.Number(15), v)
}

// TestEvalUndefinedNamePanics: a Name that escapes the type-checker
// unresolved is a compiler bug in this design, surfaced as a panic
// rather than a user-facing error (spec.md §4.5, §7 error kind 6).
func TestEvalUndefinedNamePanics(t *testing.T) {
	p := parser.New("y", parser.WithFilename("test.sfl"))
	tree := p.ParseExpression()
	require.Empty(t, p.Errors())
	e := ast.Build(tree)

	assert.Panics(t, func() {
		interp.Eval(interp.NewEnv(), e)
	})
}
