// Package driver sequences the five SFL phases over a set of sources
// and reports the outcome, mirroring the original implementation's
// main.rs::run/complete_phase pair
// (_examples/original_source/src/main.rs) with each phase's Ok /
// SoftErr / Err outcome now an explicit Outcome[T] value instead of a
// pattern-matched enum.
package driver

import (
	u "github.com/araddon/gou"
	"github.com/google/uuid"

	"github.com/sflang/sfl/internal/config"
	"github.com/sflang/sfl/internal/diag"
	"github.com/sflang/sfl/internal/interp"
	"github.com/sflang/sfl/internal/types"
)

// RunID correlates every log line a single driver.Run call emits.
type RunID = uuid.UUID

// Result is one source's final outcome: its inferred type and, if
// evaluation ran, its value.
type Result struct {
	Path  string
	Type  types.Type
	Value interp.Value
}

// Report is the full outcome of one driver.Run invocation.
type Report struct {
	ID          RunID
	Results     map[string]Result
	Diagnostics []diag.Diagnostic
	// Fatal is true when a phase returned Err and halted the pipeline,
	// or a SoftErr did so because cfg.Resilient was false.
	Fatal bool
}

// Run executes Lex -> Parse -> Lower -> Check -> Eval over sources
// (source path -> source text), honoring cfg.Resilient's halt policy
// at each SoftErr boundary (spec.md §7). The pipeline is
// single-threaded and synchronous throughout (spec.md §5); Run holds
// the only strong references between phases and lets each
// intermediate map fall out of scope once the next phase has
// consumed it.
func Run(cfg config.Config, sources map[string]string) Report {
	id := uuid.New()
	u.Debugf("run %s: starting, %d source(s)", id, len(sources))

	report := Report{ID: id, Results: map[string]Result{}}

	tokens, ok := runPhase(cfg, &report, "lex", LexPhase{}.Run(cfg, sources))
	if !ok {
		return report
	}
	sources = nil // tokens supersede the raw text for the rest of the run

	trees, ok := runPhase(cfg, &report, "parse", ParsePhase{}.Run(cfg, tokens))
	if !ok {
		return report
	}
	tokens = nil

	asts, ok := runPhase(cfg, &report, "lower", LowerPhase{}.Run(cfg, trees))
	if !ok {
		return report
	}
	trees = nil

	checked, ok := runPhase(cfg, &report, "check", CheckPhase{}.Run(cfg, asts))
	if !ok {
		return report
	}

	values, ok := runPhase(cfg, &report, "eval", EvalPhase{}.Run(cfg, asts))
	if !ok {
		return report
	}

	for path, ty := range checked {
		report.Results[path] = Result{Path: path, Type: ty, Value: values[path]}
	}

	u.Debugf("run %s: finished, %d result(s)", id, len(report.Results))
	return report
}

// runPhase records a phase's diagnostics onto report and applies
// cfg.Resilient's halt policy, returning (value, false) when the
// pipeline must stop here.
func runPhase[T any](cfg config.Config, report *Report, name string, o Outcome[T]) (T, bool) {
	if len(o.Diagnostics()) > 0 {
		report.Diagnostics = append(report.Diagnostics, o.Diagnostics()...)
	}

	switch {
	case o.IsErr():
		u.Warnf("run %s: phase %s: fatal, %d diagnostic(s)", report.ID, name, len(o.Diagnostics()))
		report.Fatal = true
		return o.Value(), false
	case o.IsSoftErr():
		u.Warnf("run %s: phase %s: soft error, %d diagnostic(s)", report.ID, name, len(o.Diagnostics()))
		if !cfg.Resilient {
			report.Fatal = true
			return o.Value(), false
		}
		return o.Value(), true
	default:
		u.Debugf("run %s: phase %s: ok", report.ID, name)
		return o.Value(), true
	}
}
