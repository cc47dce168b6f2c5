// Package errs defines the process-level constant errors the CLI can
// fail with, outside the diagnostic system phases use for per-source
// problems (spec.md §6-§7). Grounded on playbymail-ottomap's
// cerrs.Error pattern: a named string type implementing error, so
// every sentinel is comparable with == and safe to use as a const.
package errs

// Error is a constant error.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrMainNotFound is returned when no ./main.sfl exists in the
	// current project (spec.md §6's exact required message text is
	// produced by the caller; this sentinel only identifies the
	// condition for callers that need to branch on it).
	ErrMainNotFound = Error("no 'main.sfl' found in current project")

	// ErrFatalPhase is returned when a pipeline phase yields Err,
	// halting the run (spec.md §7's propagation policy).
	ErrFatalPhase = Error("compilation failed")
)
