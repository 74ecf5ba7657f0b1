// SPDX-License-Identifier: MIT

// Package sparse - TripletMatrix: append-only COO assembly storage.
//
// Purpose:
//   - Collect matrix contributions as an unordered multiset of
//     (row, col, value) triples with O(1) amortized appends, the format of
//     choice while assembling. The semantic value at (i,j) is the sum of
//     all stored triples at that coordinate.
//   - Feed the downstream formats: ToSparseMatrix for structural editing,
//     NewCSRFromTriplet / NewCSCFromTriplet for fast multiplication.
//
// Zero-value quirk (kept on purpose):
//   - Set zeroes every matching triple and appends the new value, leaving
//     zero-valued stubs behind instead of removing them physically.
//   - SumDuplicates physically removes ALL exactly-zero values afterwards,
//     pre-existing genuine zeros included. Callers that need a structural
//     zero must re-add it after consolidation.
package sparse

import (
	"fmt"
	"sort"
)

// tripletErrorf wraps a sentinel with TripletMatrix method context.
func tripletErrorf(method string, i, j int, err error) error {
	return fmt.Errorf("TripletMatrix.%s(%d,%d): %w", method, i, j, err)
}

// TripletMatrix stores contributions in three parallel slices of equal
// length. No uniqueness constraint holds on (row, col) pairs.
type TripletMatrix struct {
	numRows, numCols int
	rowIndex         []int
	colIndex         []int
	value            []float64
	boundsCheck      bool
}

var _ Matrix = (*TripletMatrix)(nil)

// NewTripletMatrix creates an empty rows×cols assembly matrix.
func NewTripletMatrix(rows, cols int, opts ...Option) (*TripletMatrix, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrBadShape
	}
	o := gatherOptions(opts...)

	return &TripletMatrix{numRows: rows, numCols: cols, boundsCheck: o.boundsCheck}, nil
}

// NumRows returns the row count. Complexity: O(1).
func (t *TripletMatrix) NumRows() int { return t.numRows }

// NumCols returns the column count. Complexity: O(1).
func (t *TripletMatrix) NumCols() int { return t.numCols }

// NumStoredEntries returns the number of stored triples, duplicates and
// zero-valued stubs included.
func (t *TripletMatrix) NumStoredEntries() int { return len(t.value) }

// RowIndices exposes the row-index slice of the stored triples. Read-only
// view into the matrix's storage; do not modify.
func (t *TripletMatrix) RowIndices() []int { return t.rowIndex }

// ColIndices exposes the column-index slice. Read-only view.
func (t *TripletMatrix) ColIndices() []int { return t.colIndex }

// Values exposes the value slice. Read-only view.
func (t *TripletMatrix) Values() []float64 { return t.value }

// Add appends the triple (i, j, v) unconditionally. This is the hot
// assembly path: amortized O(1), no lookup, duplicates welcome.
func (t *TripletMatrix) Add(i, j int, v float64) error {
	if err := validateIndex(i, j, t.numRows, t.numCols, t.boundsCheck); err != nil {
		return tripletErrorf(ctxAdd, i, j, err)
	}
	t.rowIndex = append(t.rowIndex, i)
	t.colIndex = append(t.colIndex, j)
	t.value = append(t.value, v)

	return nil
}

// At sums every stored triple at (i, j). A correctness reference, not a
// hot path.
// Complexity: O(n).
func (t *TripletMatrix) At(i, j int) (float64, error) {
	if err := validateIndex(i, j, t.numRows, t.numCols, t.boundsCheck); err != nil {
		return 0, tripletErrorf(ctxAt, i, j, err)
	}
	var s float64
	for k := range t.value {
		if t.rowIndex[k] == i && t.colIndex[k] == j {
			s += t.value[k]
		}
	}

	return s, nil
}

// Set zeroes every stored triple at (i, j), then appends (i, j, v). The
// zeroed matches stay behind as stubs until a consolidation pass removes
// them.
// Complexity: O(n).
func (t *TripletMatrix) Set(i, j int, v float64) error {
	if err := validateIndex(i, j, t.numRows, t.numCols, t.boundsCheck); err != nil {
		return tripletErrorf(ctxSet, i, j, err)
	}
	t.setEntryToZero(i, j)

	return t.Add(i, j, v)
}

// setEntryToZero zeroes the value of every triple at (i, j) in place.
func (t *TripletMatrix) setEntryToZero(i, j int) {
	for k := range t.value {
		if t.rowIndex[k] == i && t.colIndex[k] == j {
			t.value[k] = 0
		}
	}
}

// SetRowToZero zeroes the values of all triples in row i without removing
// them.
func (t *TripletMatrix) SetRowToZero(i int) error {
	if err := validateRowIndex(i, t.numRows); err != nil {
		return fmt.Errorf("TripletMatrix.SetRowToZero(%d): %w", i, err)
	}
	for k := range t.value {
		if t.rowIndex[k] == i {
			t.value[k] = 0
		}
	}

	return nil
}

// SetColToZero zeroes the values of all triples in column j without
// removing them.
func (t *TripletMatrix) SetColToZero(j int) error {
	if err := validateColIndex(j, t.numCols); err != nil {
		return fmt.Errorf("TripletMatrix.SetColToZero(%d): %w", j, err)
	}
	for k := range t.value {
		if t.colIndex[k] == j {
			t.value[k] = 0
		}
	}

	return nil
}

// EraseValue physically removes every triple at (i, j).
// Complexity: O(n).
func (t *TripletMatrix) EraseValue(i, j int) error {
	if err := validateIndex(i, j, t.numRows, t.numCols, t.boundsCheck); err != nil {
		return tripletErrorf("EraseValue", i, j, err)
	}
	w := 0
	for k := range t.value {
		if t.rowIndex[k] == i && t.colIndex[k] == j {
			continue
		}
		t.rowIndex[w] = t.rowIndex[k]
		t.colIndex[w] = t.colIndex[k]
		t.value[w] = t.value[k]
		w++
	}
	t.truncate(w)

	return nil
}

// RemoveRowCol physically drops every triple touching row or column i and
// closes the index gap: larger row/column indices decrement by one. The
// caller is responsible for shrinking the declared dimensions.
// Complexity: O(n).
func (t *TripletMatrix) RemoveRowCol(i int) error {
	if err := validateRowIndex(i, maxv(t.numRows, t.numCols)); err != nil {
		return fmt.Errorf("TripletMatrix.RemoveRowCol(%d): %w", i, err)
	}
	w := 0
	for k := range t.value {
		if t.rowIndex[k] == i || t.colIndex[k] == i {
			continue
		}
		r, c := t.rowIndex[k], t.colIndex[k]
		if r > i {
			r--
		}
		if c > i {
			c--
		}
		t.rowIndex[w], t.colIndex[w], t.value[w] = r, c, t.value[k]
		w++
	}
	t.truncate(w)

	return nil
}

// SumDuplicates consolidates the multiset: triples are visited in
// row-major order, each run of equal (row, col) is accumulated into its
// first triple and the rest zeroed, then every exactly-zero value is
// physically removed (pre-existing genuine zeros included; see the package
// note on the zero-value quirk). Idempotent.
// Complexity: O(n log n) for the index sort plus O(n) scans.
func (t *TripletMatrix) SumDuplicates() {
	index := t.RowMajorOrder()

	i := 0
	for i < len(index) {
		j := i + 1
		for j < len(index) &&
			t.rowIndex[index[j]] == t.rowIndex[index[i]] &&
			t.colIndex[index[j]] == t.colIndex[index[i]] {
			t.value[index[i]] += t.value[index[j]]
			t.value[index[j]] = 0
			j++
		}
		i = j
	}

	t.removeZeroEntries()
}

// removeZeroEntries compacts out every triple whose value is exactly zero.
func (t *TripletMatrix) removeZeroEntries() {
	w := 0
	for k := range t.value {
		if t.value[k] == 0 {
			continue
		}
		t.rowIndex[w] = t.rowIndex[k]
		t.colIndex[w] = t.colIndex[k]
		t.value[w] = t.value[k]
		w++
	}
	t.truncate(w)
}

// truncate shortens all three parallel slices to length w.
func (t *TripletMatrix) truncate(w int) {
	t.rowIndex = t.rowIndex[:w]
	t.colIndex = t.colIndex[:w]
	t.value = t.value[:w]
}

// RowMajorOrder returns an index permutation over the stored triples
// ordered row-ascending, column-ascending within a row. The compressed-row
// conversion and SumDuplicates reuse this total order.
func (t *TripletMatrix) RowMajorOrder() []int {
	index := make([]int, len(t.value))
	for k := range index {
		index[k] = k
	}
	sort.Slice(index, func(a, b int) bool {
		ia, ib := index[a], index[b]

		return t.rowIndex[ia] < t.rowIndex[ib] ||
			(t.rowIndex[ia] == t.rowIndex[ib] && t.colIndex[ia] < t.colIndex[ib])
	})

	return index
}

// ColMajorOrder is the column-ascending, row-ascending-within-a-column
// twin of RowMajorOrder.
func (t *TripletMatrix) ColMajorOrder() []int {
	index := make([]int, len(t.value))
	for k := range index {
		index[k] = k
	}
	sort.Slice(index, func(a, b int) bool {
		ia, ib := index[a], index[b]

		return t.colIndex[ia] < t.colIndex[ib] ||
			(t.colIndex[ia] == t.colIndex[ib] && t.rowIndex[ia] < t.rowIndex[ib])
	})

	return index
}

// SetZero drops all stored triples, keeping shape and capacity.
func (t *TripletMatrix) SetZero() { t.truncate(0) }

// Reallocate resizes the matrix destroying old contents.
func (t *TripletMatrix) Reallocate(rows, cols int) error {
	if rows < 0 || cols < 0 {
		return fmt.Errorf("TripletMatrix.Reallocate(%d,%d): %w", rows, cols, ErrBadShape)
	}
	t.SetZero()
	t.numRows = rows
	t.numCols = cols

	return nil
}

// ToSparseMatrix reshapes target to the receiver's dimensions, zeroes it,
// and re-applies every stored triple through Add, so duplicates are summed
// by the target's add semantics.
// Complexity: O(n log rowLen).
func (t *TripletMatrix) ToSparseMatrix(target *SparseMatrix) error {
	if target == nil {
		return fmt.Errorf("TripletMatrix.ToSparseMatrix: %w", ErrNilMatrix)
	}
	if err := target.Reallocate(t.numRows, t.numCols); err != nil {
		return err
	}
	for k := range t.value {
		if err := target.Add(t.rowIndex[k], t.colIndex[k], t.value[k]); err != nil {
			return err
		}
	}

	return nil
}

// AddMultipleRowToRow appends multiple*value at (to, col) for every stored
// triple in row from. Pure appends, consistent with assembly semantics.
func (t *TripletMatrix) AddMultipleRowToRow(from, to int, multiple float64) error {
	if from == to {
		return fmt.Errorf("TripletMatrix.AddMultipleRowToRow: %w", ErrSameIndex)
	}
	n := len(t.value) // appended triples must not be revisited
	for k := 0; k < n; k++ {
		if t.rowIndex[k] == from {
			if err := t.Add(to, t.colIndex[k], multiple*t.value[k]); err != nil {
				return err
			}
		}
	}

	return nil
}

// AddMultipleColToCol appends multiple*value at (row, to) for every stored
// triple in column from.
func (t *TripletMatrix) AddMultipleColToCol(from, to int, multiple float64) error {
	if from == to {
		return fmt.Errorf("TripletMatrix.AddMultipleColToCol: %w", ErrSameIndex)
	}
	n := len(t.value)
	for k := 0; k < n; k++ {
		if t.colIndex[k] == from {
			if err := t.Add(t.rowIndex[k], to, multiple*t.value[k]); err != nil {
				return err
			}
		}
	}

	return nil
}

// SetRowColToDiagonal zeroes row and column index and appends the single
// diagonal triple (index, index, diag).
func (t *TripletMatrix) SetRowColToDiagonal(index int, diag float64) error {
	if err := t.SetRowToZero(index); err != nil {
		return err
	}
	if err := t.SetColToZero(index); err != nil {
		return err
	}

	return t.Add(index, index, diag)
}

// Apply is intentionally unsupported on the assembly format: convert to a
// compressed matrix (or SparseMatrix) first.
func (t *TripletMatrix) Apply(_, _ []float64) error {
	return fmt.Errorf("TripletMatrix.%s: %w", ctxApply, ErrNotImplemented)
}

// ApplyAdd is intentionally unsupported; see Apply.
func (t *TripletMatrix) ApplyAdd(_, _ []float64) error {
	return fmt.Errorf("TripletMatrix.%s: %w", ctxApplyAdd, ErrNotImplemented)
}

// TransposeTo zeroes target and adds every stored triple mirrored, letting
// the target's add semantics sum duplicates.
func (t *TripletMatrix) TransposeTo(target Matrix) error {
	if target == nil {
		return fmt.Errorf("TripletMatrix.%s: %w", ctxTranspose, ErrNilMatrix)
	}
	if target.NumRows() != t.numCols || target.NumCols() != t.numRows {
		return fmt.Errorf("TripletMatrix.%s: %w", ctxTranspose, ErrDimensionMismatch)
	}
	target.SetZero()
	for k := range t.value {
		if err := target.Add(t.colIndex[k], t.rowIndex[k], t.value[k]); err != nil {
			return fmt.Errorf("TripletMatrix.%s: %w", ctxTranspose, err)
		}
	}

	return nil
}

// Clone copies the matrix. DeepCopy duplicates the three slices; StructCopy
// keeps only the shape. FlatCopy is not offered: for a shared assembly
// surface use a TripletBlock view instead.
func (t *TripletMatrix) Clone(mode CopyMode) (Matrix, error) {
	switch mode {
	case DeepCopy:
		cp := &TripletMatrix{
			numRows:     t.numRows,
			numCols:     t.numCols,
			rowIndex:    append([]int(nil), t.rowIndex...),
			colIndex:    append([]int(nil), t.colIndex...),
			value:       append([]float64(nil), t.value...),
			boundsCheck: t.boundsCheck,
		}

		return cp, nil
	case StructCopy:
		return &TripletMatrix{numRows: t.numRows, numCols: t.numCols, boundsCheck: t.boundsCheck}, nil
	default:
		return nil, fmt.Errorf("TripletMatrix.Clone(%s): %w", mode, ErrUnsupportedCopyMode)
	}
}
