package types

import "fmt"

// UnifyError is a unification failure: an occurs-check violation or a
// ground-constructor mismatch (spec.md §4.4).
type UnifyError struct {
	Message string
}

func (e *UnifyError) Error() string { return e.Message }

// Unify computes the most general substitution that makes a and b
// identical, per spec.md §4.4's symmetric rules. It recurses into
// itself for Func types, and the checker's Application and If rules
// call it to reconcile two monotypes.
func Unify(a, b Type) (Subst, error) {
	av, aIsVar := a.(*Var)
	bv, bIsVar := b.(*Var)

	switch {
	case aIsVar && bIsVar && av.Name == bv.Name:
		return Subst{}, nil
	case aIsVar:
		return bindVar(av, b)
	case bIsVar:
		return bindVar(bv, a)
	}

	af, aIsFunc := a.(*Func)
	bf, bIsFunc := b.(*Func)
	if aIsFunc && bIsFunc {
		s1, err := Unify(af.In, bf.In)
		if err != nil {
			return nil, err
		}
		s2, err := Unify(s1.Apply(af.Out), s1.Apply(bf.Out))
		if err != nil {
			return nil, err
		}
		return Compose(s2, s1), nil
	}

	if sameGround(a, b) {
		return Subst{}, nil
	}

	return nil, &UnifyError{Message: fmt.Sprintf("expected %s, found %s", a, b)}
}

func sameGround(a, b Type) bool {
	switch a.(type) {
	case *Bool:
		_, ok := b.(*Bool)
		return ok
	case *Int:
		_, ok := b.(*Int)
		return ok
	default:
		return false
	}
}

// bindVar binds x to t, unless x occurs free in t (occurs check;
// spec.md's "infinite type" failure). Binding x to itself is the
// identity and is handled by the aIsVar&&bIsVar&&name-equal case in
// Unify before bindVar is ever reached for that case, but bindVar
// guards it too for callers that bind directly.
func bindVar(x *Var, t Type) (Subst, error) {
	if v, ok := t.(*Var); ok && v.Name == x.Name {
		return Subst{}, nil
	}
	if FreeVars(t)[x.Name] {
		return nil, &UnifyError{Message: fmt.Sprintf("infinite type: %s occurs in %s", x.Name, t)}
	}
	return Subst{x.Name: t}, nil
}

// Generalize closes over every type variable free in t but not free
// in ctx: gen(Γ, τ) = ∀a₁…aₙ. τ (spec.md §4.4). Applied only at let,
// producing let-polymorphism. The order type variables are listed in
// is unspecified by the spec and must not affect external semantics;
// this implementation walks t left-to-right for a deterministic (if
// arbitrary) order.
func Generalize(ctx Context, t Type) Type {
	ctxFree := FreeVarsCtx(ctx)
	var vars []string
	seen := map[string]bool{}
	var walk func(Type)
	walk = func(ty Type) {
		switch n := ty.(type) {
		case *Var:
			if !ctxFree[n.Name] && !seen[n.Name] {
				seen[n.Name] = true
				vars = append(vars, n.Name)
			}
		case *Func:
			walk(n.In)
			walk(n.Out)
		}
	}
	walk(t)
	if len(vars) == 0 {
		return t
	}
	return &Forall{Vars: vars, Inner: t}
}

// Instantiate replaces every quantified variable of a polytype with a
// fresh monotype variable: inst(∀a.τ) = τ[a ↦ fresh] (spec.md §4.4).
// Nested quantifiers unwrap left-to-right; a plain monotype is
// returned unchanged.
func (c *Checker) Instantiate(t Type) Type {
	f, ok := t.(*Forall)
	if !ok {
		return t
	}
	s := make(Subst, len(f.Vars))
	for _, v := range f.Vars {
		s[v] = c.Fresh()
	}
	return c.Instantiate(s.Apply(f.Inner))
}
