// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the sparse
// package. All operations MUST return these sentinels and tests MUST check
// them via errors.Is. No operation panics on user-triggered error conditions;
// panics are reserved for programmer errors in private helpers (if any).

package sparse

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "sparse: ..." for consistency and to allow
// easy grepping across logs. DO NOT %w wrap these sentinels when returning
// directly; if context is essential, wrap with fmt.Errorf("ctx: %w", ErrX)
// at the detection site — callers will still use errors.Is to match.
//
// ERROR PRIORITY (documented, enforced in tests):
// bounds -> dimension mismatch -> structural violations -> unsupported
// variants -> optional-feature limitations (ErrNotBuilt).

var (
	// ErrBadShape is returned when a requested shape is invalid (negative
	// dimensions). Constructors validate before allocation.
	ErrBadShape = errors.New("sparse: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid
	// bounds. Raised only when the bounds-check policy is enabled on the
	// matrix (default); with the policy off, out-of-range access panics the
	// way raw slice indexing does.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between a
	// matrix and its argument/result vectors, or between two matrices in a
	// whole-matrix operation (Assign, AddMultiple, IsApproxEqual).
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrRowAbsent signals a structural violation: writing a nonzero,
	// non-diagonal value into an implicit identity row. The row has no
	// storage; materialize it first (NewRow) or write through a matrix kind
	// that owns explicit rows.
	ErrRowAbsent = errors.New("sparse: row does not exist")

	// ErrShrinkCols signals that narrowing the column space of a row-stored
	// matrix is unsupported: rows are not column-size-aware, so a destructive
	// narrowing cannot be performed safely.
	ErrShrinkCols = errors.New("sparse: decreasing the number of columns is not supported")

	// ErrSameIndex is returned by row/column merge operations when source
	// and destination coincide (from == to).
	ErrSameIndex = errors.New("sparse: source and destination index must differ")

	// ErrUnsupportedCopyMode marks a CopyMode value outside the documented
	// set (DeepCopy, StructCopy, FlatCopy).
	ErrUnsupportedCopyMode = errors.New("sparse: unsupported copy mode")

	// ErrUnsupportedApplyMode marks an ApplyMode value outside the five
	// documented masked-multiplication modes.
	ErrUnsupportedApplyMode = errors.New("sparse: unsupported apply mode")

	// ErrOffsetMismatch is returned by block-view operations that only make
	// sense for diagonal blocks (rowOffset == colOffset), e.g. RemoveRowCol.
	ErrOffsetMismatch = errors.New("sparse: operation requires equal row and column offsets")

	// ErrNotImplemented marks an intentionally unsupported operation on a
	// matrix kind (e.g. Apply on TripletMatrix — convert first).
	ErrNotImplemented = errors.New("sparse: operation not implemented")

	// ErrNotBuilt is returned by optional hooks whose external collaborator
	// was not compiled in (e.g. the legacy Harwell-Boeing loader). It is a
	// hard failure on purpose: silently producing an empty matrix would be
	// worse.
	ErrNotBuilt = errors.New("sparse: feature not built")

	// ErrNilMatrix indicates that a nil matrix (receiver or argument) was
	// passed where a constructed one is required.
	ErrNilMatrix = errors.New("sparse: nil matrix")
)
