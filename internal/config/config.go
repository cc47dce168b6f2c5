// Package config holds the process-wide configuration value SFL's
// driver threads through every phase call. It is always a value
// passed by the caller, never stored as package-level state (spec.md
// §9's "Global state" redesign flag).
package config

// Config is SFL's runtime configuration, with the exact defaults
// spec.md §6 specifies.
type Config struct {
	// Resilient, when true, lets the driver continue past a phase
	// that returned SoftErr instead of halting the run.
	Resilient bool
	// DisplayErrors echoes collected diagnostics to stderr even when
	// the overall run succeeds.
	DisplayErrors bool
}

// Default returns spec.md §6's defaults: resilient=true,
// display_errors=false.
func Default() Config {
	return Config{Resilient: true, DisplayErrors: false}
}
