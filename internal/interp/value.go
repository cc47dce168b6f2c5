// Package interp is SFL's environment-passing tree-walking evaluator
// (spec.md §4.5). Closures capture their defining environment
// (SPEC_FULL.md §11's resolution of spec.md's open question, "for
// faithfulness to the more developed variant"). Grounded on the
// go-mix interpreter's scope-chain shape (akashmaji946-go-mix/scope),
// narrowed from its mutable, multi-kind Scope down to the single
// immutable binding map SFL's value-restricted language needs.
package interp

import (
	"fmt"

	"github.com/sflang/sfl/internal/ast"
)

// Value is any runtime value the evaluator can produce: Bool, Number,
// or a closure (spec.md §4.5).
type Value interface {
	value()
	String() string
}

type Bool bool

func (Bool) value() {}
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

type Number int64

func (Number) value()          {}
func (n Number) String() string { return fmt.Sprintf("%d", int64(n)) }

// Func is a closure: the parameter name, the body to evaluate on
// application, and the environment captured at the point the
// abstraction was evaluated.
type Func struct {
	Param string
	Body  ast.Expr
	Env   *Env
}

func (*Func) value()          {}
func (f *Func) String() string { return "<function>" }
