// SPDX-License-Identifier: MIT

// Package sparse - matrix-vector products of RowMatrix, plain and masked.
//
// The masked variants let boundary-condition rows be processed as the
// numeric identity instead of their stored coefficients, the standard trick
// for constrained assembly: rows excluded by the mode contribute arg[i]
// (identity passthrough) to the result rather than row_i·arg.
//
// Concurrency note: each output element is written by exactly one row and
// all inputs are read-only, so callers may partition the row range across
// goroutines for any of these products without locking. The library itself
// stays single-threaded.
package sparse

import "fmt"

// ApplyMode selects which rows are multiplied with their stored
// coefficients and which are forced to the numeric identity during masked
// multiplication. By convention a set mask bit marks a boundary row.
type ApplyMode uint8

const (
	// AllWriteAll processes every row normally; the mask is ignored.
	AllWriteAll ApplyMode = iota

	// BoundaryWriteInterior multiplies rows whose mask bit is set;
	// rows with a clear bit pass arg through as the identity.
	BoundaryWriteInterior

	// InteriorWriteAll recomputes every row normally. It differs from
	// AllWriteAll only in name, kept for call-site symmetry with the
	// interior/boundary pairs.
	InteriorWriteAll

	// AllWriteInterior multiplies rows whose mask bit is set and forces
	// identity passthrough where the bit is clear.
	AllWriteInterior

	// InteriorWriteInterior multiplies rows whose mask bit is clear and
	// forces identity passthrough where the bit is set.
	InteriorWriteInterior
)

// String returns the mnemonic name of the apply mode.
func (a ApplyMode) String() string {
	switch a {
	case AllWriteAll:
		return "AllWriteAll"
	case BoundaryWriteInterior:
		return "BoundaryWriteInterior"
	case InteriorWriteAll:
		return "InteriorWriteAll"
	case AllWriteInterior:
		return "AllWriteInterior"
	case InteriorWriteInterior:
		return "InteriorWriteInterior"
	default:
		return "ApplyMode(?)"
	}
}

// includeRow maps an apply mode to its row-inclusion predicate: included
// rows multiply with stored coefficients, excluded rows become the numeric
// identity. Unknown modes yield ErrUnsupportedApplyMode.
func includeRow(mode ApplyMode) (func(maskBit bool) bool, error) {
	switch mode {
	case AllWriteAll, InteriorWriteAll:
		return func(bool) bool { return true }, nil
	case BoundaryWriteInterior, AllWriteInterior:
		return func(b bool) bool { return b }, nil
	case InteriorWriteInterior:
		return func(b bool) bool { return !b }, nil
	default:
		return nil, ErrUnsupportedApplyMode
	}
}

// Apply computes dest = M·arg row by row: explicit rows contribute their
// dot product, implicit rows diagEntry*arg[i].
// Complexity: O(nnz).
func (m *RowMatrix) Apply(arg, dest []float64) error {
	if err := validateApplyShape(m.numRows, m.numCols, len(arg), len(dest)); err != nil {
		return fmt.Errorf("RowMatrix.%s: %w", ctxApply, err)
	}
	for i := range m.rows {
		dest[i] = m.rows[i].Mult(arg, i)
	}

	return nil
}

// ApplyAdd computes dest += M·arg with the same shape contract as Apply.
// Complexity: O(nnz).
func (m *RowMatrix) ApplyAdd(arg, dest []float64) error {
	if err := validateApplyShape(m.numRows, m.numCols, len(arg), len(dest)); err != nil {
		return fmt.Errorf("RowMatrix.%s: %w", ctxApplyAdd, err)
	}
	for i := range m.rows {
		dest[i] += m.rows[i].Mult(arg, i)
	}

	return nil
}

// ApplyMasked computes dest[i] = row_i·arg for rows the mode includes and
// dest[i] = arg[i] (identity passthrough) for rows it excludes. With an
// all-true mask every mode reproduces plain Apply.
// len(mask) must equal NumRows.
func (m *RowMatrix) ApplyMasked(arg, dest []float64, mask BitMask, mode ApplyMode) error {
	include, err := m.maskedPrologue("ApplyMasked", arg, dest, mask, mode)
	if err != nil {
		return err
	}
	for i := range m.rows {
		if include(mask[i]) {
			dest[i] = m.rows[i].Mult(arg, i)
		} else {
			dest[i] = arg[i]
		}
	}

	return nil
}

// ApplyAddMasked is the accumulating variant of ApplyMasked: included rows
// add their product, excluded rows add arg[i].
func (m *RowMatrix) ApplyAddMasked(arg, dest []float64, mask BitMask, mode ApplyMode) error {
	include, err := m.maskedPrologue("ApplyAddMasked", arg, dest, mask, mode)
	if err != nil {
		return err
	}
	for i := range m.rows {
		if include(mask[i]) {
			dest[i] += m.rows[i].Mult(arg, i)
		} else {
			dest[i] += arg[i]
		}
	}

	return nil
}

// maskedPrologue validates the masked-product inputs and resolves the mode.
func (m *RowMatrix) maskedPrologue(method string, arg, dest []float64, mask BitMask, mode ApplyMode) (func(bool) bool, error) {
	if err := validateApplyShape(m.numRows, m.numCols, len(arg), len(dest)); err != nil {
		return nil, fmt.Errorf("RowMatrix.%s: %w", method, err)
	}
	if err := validateMaskLen(mask, m.numRows); err != nil {
		return nil, fmt.Errorf("RowMatrix.%s: mask: %w", method, err)
	}
	include, err := includeRow(mode)
	if err != nil {
		return nil, fmt.Errorf("RowMatrix.%s(%s): %w", method, mode, err)
	}

	return include, nil
}
