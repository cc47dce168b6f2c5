package driver

import "github.com/sflang/sfl/internal/diag"

// outcomeKind discriminates the three-way result every phase returns
// (spec.md §7): success, success-with-diagnostics, or failure.
type outcomeKind int

const (
	kindOk outcomeKind = iota
	kindSoftErr
	kindErr
)

// Outcome is the Ok/SoftErr/Err discriminated union spec.md §7
// requires every phase to return instead of panicking or using Go
// errors for user-visible problems. Grounded on the original
// implementation's PhaseResult<R> enum
// (_examples/original_source/src/phase/phase.rs), expressed as a
// struct-plus-kind rather than a sum type since Go generics don't
// give us tagged unions directly.
type Outcome[T any] struct {
	kind        outcomeKind
	value       T
	diagnostics []diag.Diagnostic
}

// Ok wraps a successful phase result with no diagnostics.
func Ok[T any](v T) Outcome[T] { return Outcome[T]{kind: kindOk, value: v} }

// SoftErr wraps a usable result alongside diagnostics that do not, by
// themselves, invalidate it — the driver halts on these only when
// config.Resilient is false.
func SoftErr[T any](v T, diags []diag.Diagnostic) Outcome[T] {
	return Outcome[T]{kind: kindSoftErr, value: v, diagnostics: diags}
}

// Err wraps a fatal phase failure: no usable result, diagnostics only.
func Err[T any](diags []diag.Diagnostic) Outcome[T] {
	return Outcome[T]{kind: kindErr, diagnostics: diags}
}

// IsErr reports whether this outcome is a fatal (non-soft) failure.
func (o Outcome[T]) IsErr() bool { return o.kind == kindErr }

// IsSoftErr reports whether this outcome carries recoverable
// diagnostics alongside a usable value.
func (o Outcome[T]) IsSoftErr() bool { return o.kind == kindSoftErr }

// Diagnostics returns every diagnostic this outcome carries (empty
// for a plain Ok).
func (o Outcome[T]) Diagnostics() []diag.Diagnostic { return o.diagnostics }

// Value returns the phase's output. Callers must not trust it when
// IsErr() is true.
func (o Outcome[T]) Value() T { return o.value }
