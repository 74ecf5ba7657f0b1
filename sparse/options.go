// SPDX-License-Identifier: MIT

// Package sparse: functional configuration for matrix construction and
// numeric policy. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//   - Reusability: Options fields are unexported; public APIs consume ...Option.
//
// Notes:
//   - Bounds checking is a per-instance policy, not a build tag: the default
//     is ON so misuse fails loudly; hot assembly loops that have validated
//     their indices upstream may construct with WithBoundsCheck(false).
//   - The diagonal entry configured here is the value every implicit
//     identity row reads on its diagonal. It is shared per matrix, not per
//     row; changing it later (SetUnsetRowsDiagEntry) affects all absent rows
//     at once.
package sparse

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultDiagEntry is the diagonal value of implicit identity rows.
	DefaultDiagEntry = 1.0

	// DefaultBoundsCheck toggles index validation on At/Set/Add.
	// true ⇒ out-of-range indices return ErrOutOfRange instead of panicking.
	DefaultBoundsCheck = true

	// DefaultEpsilon defines the non-negative tolerance used by the
	// approximate comparisons (IsApproxEqual, IsSymmetric).
	DefaultEpsilon = 1e-9
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid   = "sparse: WithEpsilon: eps must be finite, non-negative"
	panicDiagEntryInvalid = "sparse: WithDiagEntry: value must be finite"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options carries construction-time policy for the matrix kinds.
// Fields are unexported; use the WithX constructors.
type Options struct {
	diagEntry   float64 // shared diagonal of implicit identity rows
	boundsCheck bool    // index validation on element access
	eps         float64 // tolerance for approximate comparisons
}

// defaultOptions returns the documented zero-configuration state.
// Keep in sync with the Default* constants above.
func defaultOptions() Options {
	return Options{
		diagEntry:   DefaultDiagEntry,
		boundsCheck: DefaultBoundsCheck,
		eps:         DefaultEpsilon,
	}
}

// gatherOptions folds user options over the defaults. Last writer wins.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithDiagEntry sets the shared diagonal value read by implicit identity
// rows. Panics if v is NaN or ±Inf (programmer error).
func WithDiagEntry(v float64) Option {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic(panicDiagEntryInvalid)
	}

	return func(o *Options) { o.diagEntry = v }
}

// WithBoundsCheck toggles index validation on element access. Off buys a
// branch per access in hot loops; misuse then panics like raw slice indexing.
func WithBoundsCheck(enabled bool) Option {
	return func(o *Options) { o.boundsCheck = enabled }
}

// WithEpsilon sets the tolerance used by IsApproxEqual and IsSymmetric.
// Panics if eps is negative, NaN or Inf (programmer error).
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}
