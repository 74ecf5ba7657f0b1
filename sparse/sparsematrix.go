// SPDX-License-Identifier: MIT

// Package sparse - SparseMatrix: explicit-storage matrix with structural
// editing.
//
// Purpose:
//   - Realize RowMatrix with every row materialized at construction, so all
//     writes land in storage and no structural violation can occur.
//   - Offer the structural edits assembly pipelines need: row insert/remove,
//     row/column merges, degree-of-freedom collapse, zero-entry compaction.
//   - Offer three copy policies: DeepCopy (independent), StructCopy (shape
//     only), FlatCopy (borrows the source's Row instances).
//
// Ownership:
//   - ownsRows records whether this instance owns its rows or borrows them
//     from a FlatCopy source. A borrowing instance must not outlive its
//     source, and structural edits through it mutate the shared rows. This
//     is a caller-enforced lifetime contract, not runtime-checked.
//
// Caveat:
//   - Mutation is not transactional. Resize validates the column change
//     after the row change has been carried out, so a failed call may leave
//     the row count already adjusted (same order of operations as the
//     historic implementation).
package sparse

import "fmt"

// sparseErrorf wraps a sentinel with SparseMatrix method context.
func sparseErrorf(method string, err error) error {
	return fmt.Errorf("SparseMatrix.%s: %w", method, err)
}

// SparseMatrix is an explicit-storage row-indexed matrix.
type SparseMatrix struct {
	*RowMatrix
	ownsRows bool
}

var _ Matrix = (*SparseMatrix)(nil)

// NewSparseMatrix creates a rows×cols matrix with every row explicit and
// empty. Negative dimensions yield ErrBadShape.
// Complexity: O(rows).
func NewSparseMatrix(rows, cols int, opts ...Option) (*SparseMatrix, error) {
	rm, err := NewRowMatrix(rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	for i := range rm.rows {
		rm.rows[i] = NewSparseRow()
	}

	return &SparseMatrix{RowMatrix: rm, ownsRows: true}, nil
}

// NewSparseMatrixFromGrid sizes a square explicit-storage matrix by the
// node count of any grid or mesh collaborator.
func NewSparseMatrixFromGrid(g NodeCounter, opts ...Option) (*SparseMatrix, error) {
	n := g.NumberOfNodes()

	return NewSparseMatrix(n, n, opts...)
}

// OwnsRows reports whether this instance owns its Row storage (false for
// the result of a FlatCopy).
func (m *SparseMatrix) OwnsRows() bool { return m.ownsRows }

// Copy duplicates the matrix under the given policy:
//   - DeepCopy: every row cloned, result fully independent.
//   - StructCopy: same shape, all rows explicit and empty, content dropped.
//   - FlatCopy: shares the source's Row instances; the result borrows and
//     must not outlive the receiver.
//
// Any other mode yields ErrUnsupportedCopyMode.
func (m *SparseMatrix) Copy(mode CopyMode) (*SparseMatrix, error) {
	base, err := NewRowMatrix(m.numRows, m.numCols,
		WithDiagEntry(m.diagEntry), WithBoundsCheck(m.boundsCheck), WithEpsilon(m.eps))
	if err != nil {
		return nil, err
	}
	cp := &SparseMatrix{RowMatrix: base, ownsRows: true}

	switch mode {
	case DeepCopy:
		for i := range m.rows {
			if r, ok := m.explicitRow(i); ok {
				cp.rows[i] = r.clone()
			}
		}
	case StructCopy:
		for i := range cp.rows {
			cp.rows[i] = NewSparseRow()
		}
	case FlatCopy:
		copy(cp.rows, m.rows)
		cp.ownsRows = false
	default:
		return nil, fmt.Errorf("SparseMatrix.Copy(%s): %w", mode, ErrUnsupportedCopyMode)
	}

	return cp, nil
}

// Clone implements the Matrix contract on top of Copy.
func (m *SparseMatrix) Clone(mode CopyMode) (Matrix, error) {
	return m.Copy(mode)
}

// Assign copies the content of src into the receiver. Dimensions must
// match; the receiver is not resized.
// Complexity: O(nnz(src)).
func (m *SparseMatrix) Assign(src *SparseMatrix) error {
	if src == nil {
		return sparseErrorf("Assign", ErrNilMatrix)
	}
	if m == src {
		return nil
	}
	if err := validateSameShape(m, src); err != nil {
		return sparseErrorf("Assign", err)
	}
	for i := range m.rows {
		if r, ok := src.explicitRow(i); ok {
			m.rows[i] = r.clone()
		} else {
			m.rows[i] = m.ident
		}
	}
	m.diagEntry = src.diagEntry

	return nil
}

// Reallocate resizes the matrix destroying old contents; all rows come
// back explicit and empty.
func (m *SparseMatrix) Reallocate(rows, cols int) error {
	if err := m.RowMatrix.Reallocate(rows, cols); err != nil {
		return err
	}
	for i := range m.rows {
		m.rows[i] = NewSparseRow()
	}

	return nil
}

// Resize changes the dimensions keeping old contents as far as possible:
// growing rows appends empty explicit rows, shrinking rows drops the extra
// ones. Growing columns is free because rows are not column-size-aware;
// shrinking columns fails with ErrShrinkCols (rows would be left holding
// invalid entries). The row change is applied before the column check.
func (m *SparseMatrix) Resize(newRows, newCols int) error {
	if newRows < 0 || newCols < 0 {
		return fmt.Errorf("SparseMatrix.Resize(%d,%d): %w", newRows, newCols, ErrBadShape)
	}
	m.resizeRows(newRows)
	if newCols < m.numCols {
		return fmt.Errorf("SparseMatrix.Resize(%d,%d): %w", newRows, newCols, ErrShrinkCols)
	}
	m.numCols = newCols

	return nil
}

// DestructiveResize changes the dimensions with the same row behavior as
// Resize but makes no claim about preserving column content: the column
// count is set unconditionally.
func (m *SparseMatrix) DestructiveResize(newRows, newCols int) error {
	if newRows < 0 || newCols < 0 {
		return fmt.Errorf("SparseMatrix.DestructiveResize(%d,%d): %w", newRows, newCols, ErrBadShape)
	}
	m.resizeRows(newRows)
	m.numCols = newCols

	return nil
}

// resizeRows grows with fresh explicit rows or truncates, then updates the
// row count.
func (m *SparseMatrix) resizeRows(newRows int) {
	switch {
	case newRows > m.numRows:
		for i := m.numRows; i < newRows; i++ {
			m.rows = append(m.rows, NewSparseRow())
		}
	case newRows < m.numRows:
		m.rows = m.rows[:newRows]
	}
	m.numRows = newRows
}

// InsertRow splices a fresh explicit row in at position i, shifting the
// rest down. i may equal NumRows (append).
// Complexity: O(rows).
func (m *SparseMatrix) InsertRow(i int) error {
	if i < 0 || i > m.numRows {
		return fmt.Errorf("SparseMatrix.InsertRow(%d): %w", i, ErrOutOfRange)
	}
	m.rows = append(m.rows, nil)
	copy(m.rows[i+1:], m.rows[i:])
	m.rows[i] = NewSparseRow()
	m.numRows++

	return nil
}

// DestroyRow removes row i, shifting the rest up.
// Complexity: O(rows).
func (m *SparseMatrix) DestroyRow(i int) error {
	if err := validateRowIndex(i, m.numRows); err != nil {
		return fmt.Errorf("SparseMatrix.DestroyRow(%d): %w", i, err)
	}
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
	m.numRows--

	return nil
}

// ensureExplicit materializes row i when a prior DeleteRow made it
// implicit, so the structural edits below always have storage to work on.
func (m *SparseMatrix) ensureExplicit(i int) *SparseRow {
	if r, ok := m.explicitRow(i); ok {
		return r
	}
	r := NewSparseRow()
	m.rows[i] = r

	return r
}

// AddMultipleRowToRow adds multiple*row(from) into row(to) with one merge
// scan over the two column-sorted association lists. from and to must
// differ.
// Complexity: O(len(from) + len(to)) plus insertion shifts.
func (m *SparseMatrix) AddMultipleRowToRow(from, to int, multiple float64) error {
	if from == to {
		return sparseErrorf("AddMultipleRowToRow", ErrSameIndex)
	}
	if err := validateRowIndex(from, m.numRows); err != nil {
		return fmt.Errorf("SparseMatrix.AddMultipleRowToRow(%d,%d): %w", from, to, err)
	}
	if err := validateRowIndex(to, m.numRows); err != nil {
		return fmt.Errorf("SparseMatrix.AddMultipleRowToRow(%d,%d): %w", from, to, err)
	}
	src := m.ensureExplicit(from)
	m.ensureExplicit(to).AddMultiple(src, multiple)

	return nil
}

// AddMultipleColToCol adds multiple*col(from) into col(to). Columns are not
// separately indexed, so the merge runs independently inside every row's
// association list: a stored from-entry (zero-valued stubs included)
// contributes multiple*value at column to.
// Complexity: O(rows * log rowLen) plus insertion shifts.
func (m *SparseMatrix) AddMultipleColToCol(from, to int, multiple float64) error {
	if from == to {
		return sparseErrorf("AddMultipleColToCol", ErrSameIndex)
	}
	if err := validateColIndex(from, m.numCols); err != nil {
		return fmt.Errorf("SparseMatrix.AddMultipleColToCol(%d,%d): %w", from, to, err)
	}
	if err := validateColIndex(to, m.numCols); err != nil {
		return fmt.Errorf("SparseMatrix.AddMultipleColToCol(%d,%d): %w", from, to, err)
	}
	for i := range m.rows {
		r, ok := m.explicitRow(i)
		if !ok {
			continue
		}
		pos, found := r.find(from)
		if !found {
			continue
		}
		v := r.entries[pos].Value
		posTo, foundTo := r.find(to)
		if foundTo {
			r.entries[posTo].Value += multiple * v
		} else {
			r.insertAt(posTo, RowEntry{Col: to, Value: multiple * v})
		}
	}

	return nil
}

// SetRowColToDiagonal zeroes row index and removes every stored entry in
// column index across all rows, then sets the (index,index) entry to diag.
// Complexity: O(rows * log rowLen).
func (m *SparseMatrix) SetRowColToDiagonal(index int, diag float64) error {
	if err := validateRowIndex(index, m.numRows); err != nil {
		return fmt.Errorf("SparseMatrix.SetRowColToDiagonal(%d): %w", index, err)
	}
	m.rows[index].SetZero()
	for i := range m.rows {
		if r, ok := m.explicitRow(i); ok {
			r.eraseCol(index)
		}
	}

	return m.ensureExplicit(index).Set(index, index, diag)
}

// CollapseRowCol eliminates one degree of freedom by merging row/column
// from into row/column to (scaled by multiple) and leaving an identity-like
// placeholder: the composite of AddMultipleRowToRow, AddMultipleColToCol
// and SetRowColToDiagonal(from, diag).
func (m *SparseMatrix) CollapseRowCol(from, to int, multiple, diag float64) error {
	if err := m.AddMultipleRowToRow(from, to, multiple); err != nil {
		return err
	}
	if err := m.AddMultipleColToCol(from, to, multiple); err != nil {
		return err
	}

	return m.SetRowColToDiagonal(from, diag)
}

// EraseZeroEntries compacts out exactly-zero stored entries across all
// explicit rows.
// Complexity: O(nnz).
func (m *SparseMatrix) EraseZeroEntries() {
	for i := range m.rows {
		if r, ok := m.explicitRow(i); ok {
			r.EraseZeroEntries()
		}
	}
}

// LoadHarwellBoeing is the hook for the legacy external sparse-format
// loader. The collaborator is not built into this module, so the hook
// fails loudly with ErrNotBuilt instead of producing an empty matrix.
func (m *SparseMatrix) LoadHarwellBoeing(path string) error {
	return fmt.Errorf("SparseMatrix.LoadHarwellBoeing(%q): %w", path, ErrNotBuilt)
}
