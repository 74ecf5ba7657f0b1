// SPDX-License-Identifier: MIT

// Package sparse - TripletBlock: an offset window into a TripletMatrix.
//
// Purpose:
//   - Let element assembly address a sub-block of a larger system matrix in
//     local coordinates: every access translates (i, j) to
//     (i+rowOffset, j+colOffset) on the base matrix.
//   - TripletBlockUpperTriangle additionally drops lower-triangle writes,
//     the usual convention when a symmetric block is assembled once.
//
// A block is a borrowing view. It holds the base *TripletMatrix and must
// not outlive it; concurrent mutation of base and view is the caller's to
// serialize.
package sparse

import "fmt"

// blockErrorf wraps a sentinel with TripletBlock method context.
func blockErrorf(method string, i, j int, err error) error {
	return fmt.Errorf("TripletBlock.%s(%d,%d): %w", method, i, j, err)
}

// TripletBlock is a numRows×numCols window into a base TripletMatrix,
// anchored at (rowOffset, colOffset).
type TripletBlock struct {
	mat                  *TripletMatrix
	numRows, numCols     int
	rowOffset, colOffset int
}

var _ Matrix = (*TripletBlock)(nil)

// NewTripletBlock creates a rows×cols view into mat anchored at
// (rowOffset, colOffset). The window must lie fully inside mat.
func NewTripletBlock(mat *TripletMatrix, rows, cols, rowOffset, colOffset int) (*TripletBlock, error) {
	if mat == nil {
		return nil, fmt.Errorf("NewTripletBlock: %w", ErrNilMatrix)
	}
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("NewTripletBlock: %w", ErrBadShape)
	}
	if rowOffset < 0 || colOffset < 0 ||
		rowOffset+rows > mat.NumRows() || colOffset+cols > mat.NumCols() {
		return nil, fmt.Errorf("NewTripletBlock: window %dx%d at (%d,%d) exceeds base %dx%d: %w",
			rows, cols, rowOffset, colOffset, mat.NumRows(), mat.NumCols(), ErrOutOfRange)
	}

	return &TripletBlock{mat: mat, numRows: rows, numCols: cols, rowOffset: rowOffset, colOffset: colOffset}, nil
}

// NumRows returns the window's row count. Complexity: O(1).
func (b *TripletBlock) NumRows() int { return b.numRows }

// NumCols returns the window's column count. Complexity: O(1).
func (b *TripletBlock) NumCols() int { return b.numCols }

// Base returns the underlying TripletMatrix the block writes through to.
func (b *TripletBlock) Base() *TripletMatrix { return b.mat }

// RowOffset returns the window's row anchor in base coordinates.
func (b *TripletBlock) RowOffset() int { return b.rowOffset }

// ColOffset returns the window's column anchor in base coordinates.
func (b *TripletBlock) ColOffset() int { return b.colOffset }

// validateLocal bounds-checks a local coordinate pair against the window.
// Window coordinates are always checked: a stray local index would silently
// write into a neighboring block of the base matrix.
func (b *TripletBlock) validateLocal(i, j int) error {
	return validateIndex(i, j, b.numRows, b.numCols, true)
}

// Add appends (i+rowOffset, j+colOffset, v) to the base matrix.
func (b *TripletBlock) Add(i, j int, v float64) error {
	if err := b.validateLocal(i, j); err != nil {
		return blockErrorf(ctxAdd, i, j, err)
	}

	return b.mat.Add(i+b.rowOffset, j+b.colOffset, v)
}

// At reads the summed value at the translated coordinates.
// Complexity: O(n) over the base storage.
func (b *TripletBlock) At(i, j int) (float64, error) {
	if err := b.validateLocal(i, j); err != nil {
		return 0, blockErrorf(ctxAt, i, j, err)
	}

	return b.mat.At(i+b.rowOffset, j+b.colOffset)
}

// Set overwrites the translated coordinate with base Set semantics (zeroed
// stubs stay behind).
func (b *TripletBlock) Set(i, j int, v float64) error {
	if err := b.validateLocal(i, j); err != nil {
		return blockErrorf(ctxSet, i, j, err)
	}

	return b.mat.Set(i+b.rowOffset, j+b.colOffset, v)
}

// SetZero physically removes every base triple that falls inside the
// window. Triples outside the window are untouched.
// Complexity: O(n) over the base storage.
func (b *TripletBlock) SetZero() {
	w := 0
	rows, cols, vals := b.mat.rowIndex, b.mat.colIndex, b.mat.value
	for k := range vals {
		if b.contains(rows[k], cols[k]) {
			continue
		}
		rows[w], cols[w], vals[w] = rows[k], cols[k], vals[k]
		w++
	}
	b.mat.truncate(w)
}

// contains reports whether a base coordinate lies inside the window.
func (b *TripletBlock) contains(baseRow, baseCol int) bool {
	return baseRow >= b.rowOffset && baseRow < b.rowOffset+b.numRows &&
		baseCol >= b.colOffset && baseCol < b.colOffset+b.numCols
}

// SetRowToZero zeroes the values of all base triples on local row i that
// fall inside the window's column span.
func (b *TripletBlock) SetRowToZero(i int) error {
	if err := validateRowIndex(i, b.numRows); err != nil {
		return fmt.Errorf("TripletBlock.SetRowToZero(%d): %w", i, err)
	}
	baseRow := i + b.rowOffset
	for k := range b.mat.value {
		if b.mat.rowIndex[k] == baseRow && b.contains(baseRow, b.mat.colIndex[k]) {
			b.mat.value[k] = 0
		}
	}

	return nil
}

// SetColToZero zeroes the values of all base triples on local column j that
// fall inside the window's row span.
func (b *TripletBlock) SetColToZero(j int) error {
	if err := validateColIndex(j, b.numCols); err != nil {
		return fmt.Errorf("TripletBlock.SetColToZero(%d): %w", j, err)
	}
	baseCol := j + b.colOffset
	for k := range b.mat.value {
		if b.mat.colIndex[k] == baseCol && b.contains(b.mat.rowIndex[k], baseCol) {
			b.mat.value[k] = 0
		}
	}

	return nil
}

// RemoveRowCol removes local row/column i of the window from the base
// matrix and closes the gap inside the window's span. Only meaningful for
// diagonal blocks, so mismatched anchors fail with ErrOffsetMismatch.
func (b *TripletBlock) RemoveRowCol(i int) error {
	if b.rowOffset != b.colOffset {
		return fmt.Errorf("TripletBlock.RemoveRowCol(%d): row offset %d vs col offset %d: %w",
			i, b.rowOffset, b.colOffset, ErrOffsetMismatch)
	}
	if err := validateRowIndex(i, minv(b.numRows, b.numCols)); err != nil {
		return fmt.Errorf("TripletBlock.RemoveRowCol(%d): %w", i, err)
	}
	base := i + b.rowOffset
	if err := b.mat.RemoveRowCol(base); err != nil {
		return err
	}
	b.numRows--
	b.numCols--

	return nil
}

// Apply is unsupported on views; assemble, convert, then multiply.
func (b *TripletBlock) Apply(_, _ []float64) error {
	return fmt.Errorf("TripletBlock.%s: %w", ctxApply, ErrNotImplemented)
}

// ApplyAdd is unsupported on views; see Apply.
func (b *TripletBlock) ApplyAdd(_, _ []float64) error {
	return fmt.Errorf("TripletBlock.%s: %w", ctxApplyAdd, ErrNotImplemented)
}

// TransposeTo is unsupported on views: transpose the base matrix instead.
func (b *TripletBlock) TransposeTo(_ Matrix) error {
	return fmt.Errorf("TripletBlock.%s: %w", ctxTranspose, ErrNotImplemented)
}

// Clone is unsupported on views. A view carries no storage of its own;
// clone the base matrix and re-anchor a fresh block on the copy.
func (b *TripletBlock) Clone(mode CopyMode) (Matrix, error) {
	return nil, fmt.Errorf("TripletBlock.Clone(%s): %w", mode, ErrUnsupportedCopyMode)
}

// TripletBlockUpperTriangle is a TripletBlock that keeps only the upper
// triangle: writes with local row > local col are silently dropped, so
// symmetric element contributions can be added wholesale.
type TripletBlockUpperTriangle struct {
	TripletBlock
}

var _ Matrix = (*TripletBlockUpperTriangle)(nil)

// NewTripletBlockUpperTriangle creates an upper-triangle filtering view with
// the same window contract as NewTripletBlock.
func NewTripletBlockUpperTriangle(mat *TripletMatrix, rows, cols, rowOffset, colOffset int) (*TripletBlockUpperTriangle, error) {
	b, err := NewTripletBlock(mat, rows, cols, rowOffset, colOffset)
	if err != nil {
		return nil, err
	}

	return &TripletBlockUpperTriangle{TripletBlock: *b}, nil
}

// Add appends the translated triple when i ≤ j and silently discards it
// otherwise. The drop is not an error: callers feed full symmetric stencils
// and rely on the filter.
func (b *TripletBlockUpperTriangle) Add(i, j int, v float64) error {
	if err := b.validateLocal(i, j); err != nil {
		return blockErrorf(ctxAdd, i, j, err)
	}
	if i > j {
		return nil
	}

	return b.mat.Add(i+b.rowOffset, j+b.colOffset, v)
}

// Set overwrites the translated coordinate when i ≤ j and silently ignores
// lower-triangle targets.
func (b *TripletBlockUpperTriangle) Set(i, j int, v float64) error {
	if err := b.validateLocal(i, j); err != nil {
		return blockErrorf(ctxSet, i, j, err)
	}
	if i > j {
		return nil
	}

	return b.mat.Set(i+b.rowOffset, j+b.colOffset, v)
}
