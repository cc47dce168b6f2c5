// Package types implements SFL's Hindley-Milner type system: monotypes,
// polytypes, substitutions, and Algorithm W (spec.md §4.4). The Type
// interface and its marker-method idiom follow the teacher's
// internal/types/types.go (Type{String() string; IsType()}), narrowed
// from the teacher's full structural/generic type universe down to
// spec.md's three constructors (Var, Func, the Bool/Int ground types)
// plus Forall for polytypes.
package types

import "fmt"

// Type is any monotype or polytype in the system.
type Type interface {
	String() string
	isType()
}

// Var is a type variable, identified by a name a fresh() counter
// produces (t0, t1, ...).
type Var struct {
	Name string
}

func (v *Var) String() string { return v.Name }
func (*Var) isType()          {}

// Func is the function-type constructor, the only way to build a
// compound type in this system (spec.md §3's TypeFunc).
type Func struct {
	In  Type
	Out Type
}

func (f *Func) String() string { return fmt.Sprintf("(%s -> %s)", f.In, f.Out) }
func (*Func) isType()          {}

// Bool and Int are the system's two ground types.
type Bool struct{}

func (*Bool) String() string { return "Bool" }
func (*Bool) isType()        {}

type Int struct{}

func (*Int) String() string { return "Int" }
func (*Int) isType()        {}

// Forall is a polytype: a monotype closed over the type variables in
// Vars. Generalization only ever wraps a Func/Var/ground type, never
// another Forall (spec.md's gen never nests quantifiers).
type Forall struct {
	Vars  []string
	Inner Type
}

func (f *Forall) String() string {
	s := "forall"
	for _, v := range f.Vars {
		s += " " + v
	}
	return s + ". " + f.Inner.String()
}
func (*Forall) isType() {}

var (
	boolType Type = &Bool{}
	intType  Type = &Int{}
)

// BoolType and IntType are the system's two shared ground-type values.
func BoolType() Type { return boolType }
func IntType() Type  { return intType }
