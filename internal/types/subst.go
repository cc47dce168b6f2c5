package types

// Subst is a finite map from type-variable name to monotype (spec.md
// §3). The zero value is the identity substitution.
type Subst map[string]Type

// Apply rewrites every free Var in t according to s, leaving variables
// bound by an enclosing Forall untouched.
func (s Subst) Apply(t Type) Type {
	return applyUnder(s, nil, t)
}

func applyUnder(s Subst, bound map[string]bool, t Type) Type {
	switch ty := t.(type) {
	case *Var:
		if bound[ty.Name] {
			return ty
		}
		if repl, ok := s[ty.Name]; ok {
			return repl
		}
		return ty
	case *Func:
		return &Func{In: applyUnder(s, bound, ty.In), Out: applyUnder(s, bound, ty.Out)}
	case *Forall:
		inner := make(map[string]bool, len(bound)+len(ty.Vars))
		for k := range bound {
			inner[k] = true
		}
		for _, v := range ty.Vars {
			inner[v] = true
		}
		return &Forall{Vars: ty.Vars, Inner: applyUnder(s, inner, ty.Inner)}
	default:
		return t // Bool, Int: no variables to rewrite
	}
}

// ApplyCtx applies s to every binding's range in a context.
func (s Subst) ApplyCtx(ctx Context) Context {
	out := make(Context, len(ctx))
	for name, t := range ctx {
		out[name] = s.Apply(t)
	}
	return out
}

// Compose returns s ∘ t: apply s to every range element of t, then
// overlay s's own mappings (right-biased on overlap) — spec.md §3's
// exact composition contract, so that Compose(s, t).Apply(x) ==
// s.Apply(t.Apply(x)) (property P5).
func Compose(s, t Subst) Subst {
	out := make(Subst, len(s)+len(t))
	for k, v := range t {
		out[k] = s.Apply(v)
	}
	for k, v := range s {
		out[k] = v
	}
	return out
}

// FreeVars returns the set of type-variable names free in t.
func FreeVars(t Type) map[string]bool {
	out := map[string]bool{}
	collectFreeVars(t, nil, out)
	return out
}

func collectFreeVars(t Type, bound map[string]bool, out map[string]bool) {
	switch ty := t.(type) {
	case *Var:
		if !bound[ty.Name] {
			out[ty.Name] = true
		}
	case *Func:
		collectFreeVars(ty.In, bound, out)
		collectFreeVars(ty.Out, bound, out)
	case *Forall:
		inner := make(map[string]bool, len(bound)+len(ty.Vars))
		for k := range bound {
			inner[k] = true
		}
		for _, v := range ty.Vars {
			inner[v] = true
		}
		collectFreeVars(ty.Inner, inner, out)
	}
}

// FreeVarsCtx returns the union of FreeVars over every binding in ctx
// — "free in Γ if free in any of its ranges" (spec.md §3).
func FreeVarsCtx(ctx Context) map[string]bool {
	out := map[string]bool{}
	for _, t := range ctx {
		for v := range FreeVars(t) {
			out[v] = true
		}
	}
	return out
}

// Context maps identifiers to their type, possibly a polytype behind
// an outermost Forall (spec.md §3).
type Context map[string]Type

// Extend returns a new context with name bound to t, leaving ctx
// itself unmodified (contexts are immutable value-like maps here;
// every extension is a fresh copy, matching spec.md §9's "no
// process-wide global" discipline applied down to Γ itself).
func (ctx Context) Extend(name string, t Type) Context {
	out := make(Context, len(ctx)+1)
	for k, v := range ctx {
		out[k] = v
	}
	out[name] = t
	return out
}
