package driver

import (
	"github.com/sflang/sfl/internal/ast"
	"github.com/sflang/sfl/internal/config"
	"github.com/sflang/sfl/internal/cst"
	"github.com/sflang/sfl/internal/diag"
	"github.com/sflang/sfl/internal/interp"
	"github.com/sflang/sfl/internal/lexer"
	"github.com/sflang/sfl/internal/parser"
	"github.com/sflang/sfl/internal/types"
)

// Phase is the capability every pipeline stage implements: take the
// whole project's input (keyed by source path) and the run
// configuration, produce the whole project's output. This replaces
// the duck-typed/dynamically-dispatched phase objects the original
// implementation's language would use, with one concrete struct per
// stage (spec.md §9's "Duck typing / dynamic dispatch" redesign
// flag).
type Phase[In, Out any] interface {
	Run(cfg config.Config, input map[string]In) Outcome[map[string]Out]
}

// LexPhase tokenizes each source (spec.md §4.1).
type LexPhase struct{}

func (LexPhase) Run(_ config.Config, sources map[string]string) Outcome[map[string][]lexer.Token] {
	out := make(map[string][]lexer.Token, len(sources))
	var diags []diag.Diagnostic

	for path, src := range sources {
		toks := lexer.Lex(path, src)
		out[path] = toks
		for _, t := range toks {
			if t.Kind == lexer.Error {
				diags = append(diags, diag.Diagnostic{
					Stage: diag.StageLexer, Severity: diag.SeverityError,
					Message: t.Reason, Span: t.Span, Indicator: t.Reason,
				})
			}
		}
	}

	if len(diags) > 0 {
		return SoftErr(out, diags)
	}
	return Ok(out)
}

// ParsePhase reduces each token stream into a CST (spec.md §4.2).
type ParsePhase struct{}

func (ParsePhase) Run(_ config.Config, toksByPath map[string][]lexer.Token) Outcome[map[string]*cst.Tree] {
	out := make(map[string]*cst.Tree, len(toksByPath))
	var diags []diag.Diagnostic

	for path, toks := range toksByPath {
		p := parser.NewFromTokens(toks, path)
		// A source starting with 'def' is the file/definition variant
		// (spec.md §4.2); anything else is a bare top-level expression.
		// The original implementation's run() only ever drove the
		// expression-core grammar (main.rs reads one expression from
		// main.sfl) — this dispatch is the supplemented surface that
		// lets a project's main.sfl use either grammar.
		if len(toks) > 0 && toks[0].Kind == lexer.KwDef {
			out[path] = p.ParseFile()
		} else {
			out[path] = p.ParseExpression()
		}
		// LexPhase already surfaced StageLexer diagnostics for this
		// source; only this phase's own syntactic errors are new.
		for _, d := range p.Errors() {
			if d.Stage != diag.StageLexer {
				diags = append(diags, d)
			}
		}
	}

	if len(diags) > 0 {
		return SoftErr(out, diags)
	}
	return Ok(out)
}

// LowerPhase lowers each CST to an AST (spec.md §4.3). Structural
// lowering never fails the phase — a malformed subtree becomes
// ast.Err locally — so LowerPhase always returns Ok.
type LowerPhase struct{}

func (LowerPhase) Run(_ config.Config, trees map[string]*cst.Tree) Outcome[map[string]ast.Expr] {
	out := make(map[string]ast.Expr, len(trees))
	for path, tree := range trees {
		out[path] = ast.Build(tree)
	}
	return Ok(out)
}

// CheckPhase runs Algorithm W over each AST (spec.md §4.4). A
// unification or scope failure fails the whole source's expression;
// the phase as a whole returns Err if any source failed (spec.md: "no
// partial types are emitted").
type CheckPhase struct{}

func (CheckPhase) Run(_ config.Config, asts map[string]ast.Expr) Outcome[map[string]types.Type] {
	out := make(map[string]types.Type, len(asts))
	var diags []diag.Diagnostic

	for path, expr := range asts {
		c := types.NewChecker(path)
		_, ty, errs := c.Infer(types.Builtins(), expr)
		if len(errs) > 0 {
			diags = append(diags, errs...)
			continue
		}
		out[path] = ty
	}

	if len(diags) > 0 {
		return Err[map[string]types.Type](diags)
	}
	return Ok(out)
}

// EvalPhase tree-walks each AST to a final value (spec.md §4.5).
// Runtime failures in this design are panics (compiler bugs,
// by-construction prevented by a prior successful CheckPhase), never
// diagnostics, so EvalPhase always returns Ok.
type EvalPhase struct{}

func (EvalPhase) Run(_ config.Config, asts map[string]ast.Expr) Outcome[map[string]interp.Value] {
	out := make(map[string]interp.Value, len(asts))
	for path, expr := range asts {
		out[path] = interp.Eval(interp.NewEnv(), expr)
	}
	return Ok(out)
}
