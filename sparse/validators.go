// SPDX-License-Identifier: MIT
// Package: sparse
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep matrix kinds minimal by delegating bounds/shape checks here.
//  - Return plain sentinel errors (no wrapping) so call sites can wrap
//    uniformly with their own method context.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.

package sparse

// validateIndex checks 0 ≤ i < rows and 0 ≤ j < cols when enabled.
// With the bounds-check policy off it accepts everything; the subsequent
// slice access then behaves like raw Go indexing.
// Complexity: O(1).
func validateIndex(i, j, rows, cols int, enabled bool) error {
	if !enabled {
		return nil
	}
	if i < 0 || i >= rows {
		return ErrOutOfRange
	}
	if j < 0 || j >= cols {
		return ErrOutOfRange
	}

	return nil
}

// validateRowIndex checks 0 ≤ i < rows unconditionally. Used by structural
// operations (InsertRow, DestroyRow, ...) where a bad index corrupts the
// matrix rather than one element, so the policy flag does not apply.
// Complexity: O(1).
func validateRowIndex(i, rows int) error {
	if i < 0 || i >= rows {
		return ErrOutOfRange
	}

	return nil
}

// validateColIndex checks 0 ≤ j < cols unconditionally, the column twin of
// validateRowIndex.
// Complexity: O(1).
func validateColIndex(j, cols int) error {
	if j < 0 || j >= cols {
		return ErrOutOfRange
	}

	return nil
}

// validateApplyShape checks the Apply/ApplyAdd contract:
// len(arg) == cols and len(dest) == rows.
// Complexity: O(1).
func validateApplyShape(rows, cols, argLen, destLen int) error {
	if argLen != cols || destLen != rows {
		return ErrDimensionMismatch
	}

	return nil
}

// validateSameShape checks that two matrices share dimensions.
// Assumes both are non-nil (caller must ensure).
// Complexity: O(1).
func validateSameShape(a, b Matrix) error {
	if a.NumRows() != b.NumRows() || a.NumCols() != b.NumCols() {
		return ErrDimensionMismatch
	}

	return nil
}

// validateMaskLen checks that a BitMask covers every row.
// Complexity: O(1).
func validateMaskLen(mask BitMask, rows int) error {
	if len(mask) != rows {
		return ErrDimensionMismatch
	}

	return nil
}
