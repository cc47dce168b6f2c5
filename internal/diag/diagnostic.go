// Package diag defines the compiler's shared diagnostic contract and a
// renderer that prints it in the stable format spec.md §6 documents.
package diag

import "github.com/sflang/sfl/internal/lexer"

// Stage identifies which pipeline phase produced a diagnostic.
type Stage string

const (
	StageLexer     Stage = "lexer"
	StageParser    Stage = "parser"
	StageAst       Stage = "ast"
	StageTypes     Stage = "types"
	StageInterp    Stage = "interp"
)

// Severity is one of hint | warning | error, per spec.md §6.
type Severity string

const (
	SeverityHint    Severity = "hint"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic is a single compiler message surfaced to end-users.
// Spans carry source-path and position so the driver can join them
// against the source map for rendering (spec.md §7).
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Message  string
	Span     lexer.Span
	// Indicator is the short message printed under the '^^^^' marks,
	// e.g. "expected expression". May be empty.
	Indicator string
}

// Bundle groups every diagnostic produced for one source path, the
// aggregation spec.md §7's propagation policy describes ("phases
// collect all errors from independent siblings before returning").
// Grounded on the original Rust implementation's src/message.rs, which
// groups multiple messages per source before printing.
type Bundle struct {
	Path        string
	Diagnostics []Diagnostic
}

// HasErrors reports whether any diagnostic in the bundle is
// SeverityError. Severity alone does not pick a phase's outcome: the
// lexer and parser phases return SoftErr even for SeverityError
// diagnostics.
func (b Bundle) HasErrors() bool {
	for _, d := range b.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
