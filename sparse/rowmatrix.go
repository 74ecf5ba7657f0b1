// SPDX-License-Identifier: MIT

// Package sparse - RowMatrix: the row-indexed matrix.
//
// Purpose:
//   - Own one Row handle per matrix row; a handle may be the shared implicit
//     identity sentinel, meaning the row reads as diagEntry on the diagonal
//     and zero elsewhere without any storage.
//   - Implement the full Matrix contract by delegating to explicit rows and
//     synthesizing behavior for implicit ones.
//
// Invariants:
//   - len(rows) always equals numRows.
//   - rows[i] is never nil: absent rows hold the per-matrix identity
//     sentinel, so dispatch never branches on nil.
//   - The sentinel reads the matrix's shared diagEntry; changing it via
//     SetUnsetRowsDiagEntry affects every implicit row at once.
package sparse

import (
	"fmt"
	"math"
)

// ---------- error context tags ----------

const (
	ctxAt        = "At"
	ctxSet       = "Set"
	ctxAdd       = "Add"
	ctxApply     = "Apply"
	ctxApplyAdd  = "ApplyAdd"
	ctxTranspose = "TransposeTo"
)

// rowMatrixErrorf wraps a sentinel with RowMatrix method context and the
// callsite indices, preserving errors.Is matching through %w.
func rowMatrixErrorf(method string, i, j int, err error) error {
	return fmt.Errorf("RowMatrix.%s(%d,%d): %w", method, i, j, err)
}

// RowMatrix is a matrix stored as a sequence of Row handles, one per row.
// Rows are either explicit (*SparseRow) or the implicit identity sentinel.
type RowMatrix struct {
	numRows, numCols int
	rows             []Row        // len == numRows, entries never nil
	diagEntry        float64      // shared diagonal of implicit rows
	ident            *identityRow // per-matrix sentinel, reads &diagEntry
	boundsCheck      bool         // index validation policy
	eps              float64      // tolerance for approximate comparisons
}

var _ Matrix = (*RowMatrix)(nil)

// NewRowMatrix creates a rows×cols matrix whose rows are all implicit
// identity rows. Negative dimensions yield ErrBadShape.
// Complexity: O(rows).
func NewRowMatrix(rows, cols int, opts ...Option) (*RowMatrix, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrBadShape
	}
	o := gatherOptions(opts...)

	m := &RowMatrix{
		numRows:     rows,
		numCols:     cols,
		diagEntry:   o.diagEntry,
		boundsCheck: o.boundsCheck,
		eps:         o.eps,
	}
	m.ident = &identityRow{diag: &m.diagEntry}
	m.rows = make([]Row, rows)
	for i := range m.rows {
		m.rows[i] = m.ident
	}

	return m, nil
}

// NewRowMatrixFromGrid sizes a square matrix by the node count of any grid
// or mesh collaborator.
func NewRowMatrixFromGrid(g NodeCounter, opts ...Option) (*RowMatrix, error) {
	n := g.NumberOfNodes()

	return NewRowMatrix(n, n, opts...)
}

// NumRows returns the row count. Complexity: O(1).
func (m *RowMatrix) NumRows() int { return m.numRows }

// NumCols returns the column count. Complexity: O(1).
func (m *RowMatrix) NumCols() int { return m.numCols }

// RowAt returns the Row handle at index i. The handle aliases the matrix's
// storage; callers must not retain it across structural edits.
func (m *RowMatrix) RowAt(i int) (Row, error) {
	if err := validateRowIndex(i, m.numRows); err != nil {
		return nil, fmt.Errorf("RowMatrix.RowAt(%d): %w", i, err)
	}

	return m.rows[i], nil
}

// RowExplicit reports whether row i is explicit (owns storage).
func (m *RowMatrix) RowExplicit(i int) (bool, error) {
	if err := validateRowIndex(i, m.numRows); err != nil {
		return false, fmt.Errorf("RowMatrix.RowExplicit(%d): %w", i, err)
	}

	return m.rows[i].Explicit(), nil
}

// explicitRow returns row i as *SparseRow when it is explicit.
func (m *RowMatrix) explicitRow(i int) (*SparseRow, bool) {
	r, ok := m.rows[i].(*SparseRow)

	return r, ok
}

// At retrieves the entry at (i, j). Implicit rows read diagEntry on the
// diagonal and zero elsewhere.
// Complexity: O(log rowLen).
func (m *RowMatrix) At(i, j int) (float64, error) {
	if err := validateIndex(i, j, m.numRows, m.numCols, m.boundsCheck); err != nil {
		return 0, rowMatrixErrorf(ctxAt, i, j, err)
	}

	return m.rows[i].Get(i, j), nil
}

// Set assigns v at (i, j). On an implicit row only writes that change
// nothing are accepted (diagEntry onto the diagonal, or zero); everything
// else fails with ErrRowAbsent.
func (m *RowMatrix) Set(i, j int, v float64) error {
	if err := validateIndex(i, j, m.numRows, m.numCols, m.boundsCheck); err != nil {
		return rowMatrixErrorf(ctxSet, i, j, err)
	}
	if err := m.rows[i].Set(i, j, v); err != nil {
		return rowMatrixErrorf(ctxSet, i, j, err)
	}

	return nil
}

// Add accumulates v into (i, j). Implicit rows accept only v == 0.
func (m *RowMatrix) Add(i, j int, v float64) error {
	if err := validateIndex(i, j, m.numRows, m.numCols, m.boundsCheck); err != nil {
		return rowMatrixErrorf(ctxAdd, i, j, err)
	}
	if err := m.rows[i].Add(i, j, v); err != nil {
		return rowMatrixErrorf(ctxAdd, i, j, err)
	}

	return nil
}

// MultRow returns the dot product of row i with arg, or zero when the row
// is implicit. Caller guarantees len(arg) == NumCols.
func (m *RowMatrix) MultRow(arg []float64, i int) float64 {
	if r, ok := m.explicitRow(i); ok {
		return r.Mult(arg, i)
	}

	return 0
}

// RowSum returns the sum of row i's stored values. Implicit rows report 0.
func (m *RowMatrix) RowSum(i int) (float64, error) {
	if err := validateRowIndex(i, m.numRows); err != nil {
		return 0, fmt.Errorf("RowMatrix.RowSum(%d): %w", i, err)
	}

	return m.rows[i].Sum(i), nil
}

// Scale maps the matrix to factor*matrix. Implicit identity rows are NOT
// scaled and the shared diagonal stays untouched; materialize a row first
// (NewRow) if it must participate. Returns the receiver for chaining.
func (m *RowMatrix) Scale(factor float64) *RowMatrix {
	for i := range m.rows {
		m.rows[i].Scale(i, factor)
	}

	return m
}

// ScaleRow scales row i by factor unless the row is implicit (no-op then).
func (m *RowMatrix) ScaleRow(i int, factor float64) error {
	if err := validateRowIndex(i, m.numRows); err != nil {
		return fmt.Errorf("RowMatrix.ScaleRow(%d): %w", i, err)
	}
	m.rows[i].Scale(i, factor)

	return nil
}

// NewRow installs a fresh explicit row at index i, replacing the prior
// handle (explicit or implicit).
func (m *RowMatrix) NewRow(i int) error {
	if err := validateRowIndex(i, m.numRows); err != nil {
		return fmt.Errorf("RowMatrix.NewRow(%d): %w", i, err)
	}
	m.rows[i] = NewSparseRow()

	return nil
}

// DeleteRow discards row i's storage and makes it an implicit identity row.
func (m *RowMatrix) DeleteRow(i int) error {
	if err := validateRowIndex(i, m.numRows); err != nil {
		return fmt.Errorf("RowMatrix.DeleteRow(%d): %w", i, err)
	}
	m.rows[i] = m.ident

	return nil
}

// SetZero clears all explicit rows but keeps their instances; implicit
// rows are untouched (they still read diagEntry on the diagonal).
func (m *RowMatrix) SetZero() {
	for i := range m.rows {
		m.rows[i].SetZero()
	}
}

// SetRowToZero clears row i's stored values, keeping the instance.
func (m *RowMatrix) SetRowToZero(i int) error {
	if err := validateRowIndex(i, m.numRows); err != nil {
		return fmt.Errorf("RowMatrix.SetRowToZero(%d): %w", i, err)
	}
	m.rows[i].SetZero()

	return nil
}

// AddMultiple accumulates factor*other row-wise into the receiver. When a
// row is implicit here but explicit in other, an empty explicit row is
// materialized first and then merged. When other's row is implicit nothing
// is added for that row. Returns the receiver for chaining.
func (m *RowMatrix) AddMultiple(other *RowMatrix, factor float64) (*RowMatrix, error) {
	if err := validateSameShape(m, other); err != nil {
		return nil, fmt.Errorf("RowMatrix.AddMultiple: %w", err)
	}
	for i := range m.rows {
		or, otherExplicit := other.explicitRow(i)
		if !otherExplicit {
			continue
		}
		tr, ok := m.explicitRow(i)
		if !ok {
			tr = NewSparseRow()
			m.rows[i] = tr
		}
		tr.AddMultiple(or, factor)
	}

	return m, nil
}

// AddMatrix is AddMultiple with factor +1.
func (m *RowMatrix) AddMatrix(other *RowMatrix) (*RowMatrix, error) {
	return m.AddMultiple(other, 1)
}

// SubMatrix is AddMultiple with factor -1.
func (m *RowMatrix) SubMatrix(other *RowMatrix) (*RowMatrix, error) {
	return m.AddMultiple(other, -1)
}

// AddTensorProduct adds v1 ⊗ v2 to the matrix.
func (m *RowMatrix) AddTensorProduct(v1, v2 []float64) error {
	return m.AddTensorProductMultiple(v1, v2, 1)
}

// AddTensorProductMultiple adds factor * v1 ⊗ v2 entry by entry. Requires
// len(v1) == NumRows and len(v2) == NumCols. Writing a nonzero product into
// an implicit row fails with ErrRowAbsent like any other Add.
// Complexity: O(rows*cols*log rowLen).
func (m *RowMatrix) AddTensorProductMultiple(v1, v2 []float64, factor float64) error {
	if len(v1) != m.numRows || len(v2) != m.numCols {
		return fmt.Errorf("RowMatrix.AddTensorProductMultiple: %w", ErrDimensionMismatch)
	}
	for i := 0; i < m.numRows; i++ {
		for j := 0; j < m.numCols; j++ {
			if err := m.rows[i].Add(i, j, factor*v1[i]*v2[j]); err != nil {
				return rowMatrixErrorf(ctxAdd, i, j, err)
			}
		}
	}

	return nil
}

// NumNonZeroes counts stored values that are not exactly zero across all
// rows; an implicit row contributes one when diagEntry is nonzero.
func (m *RowMatrix) NumNonZeroes() int {
	n := 0
	for i := range m.rows {
		n += m.rows[i].NumNonZeroes()
	}

	return n
}

// NumNonZeroesInRow counts row i's values that are not exactly zero.
func (m *RowMatrix) NumNonZeroesInRow(i int) (int, error) {
	if err := validateRowIndex(i, m.numRows); err != nil {
		return 0, fmt.Errorf("RowMatrix.NumNonZeroesInRow(%d): %w", i, err)
	}

	return m.rows[i].NumNonZeroes(), nil
}

// NumStoredEntries counts stored associations including zero-valued stubs;
// implicit rows count as one conceptual diagonal entry each.
func (m *RowMatrix) NumStoredEntries() int {
	n := 0
	for i := range m.rows {
		n += m.rows[i].NumStoredEntries()
	}

	return n
}

// NumNonZeroRows counts rows contributing at least one nonzero: explicit
// rows always count, implicit rows only while diagEntry is nonzero.
func (m *RowMatrix) NumNonZeroRows() int {
	n := 0
	for i := range m.rows {
		if m.rows[i].Explicit() || m.diagEntry != 0 {
			n++
		}
	}

	return n
}

// IsSymmetric reports whether the matrix equals its transpose within tol.
// Non-square matrices are never symmetric. Implicit rows need no check:
// their only entry sits on the diagonal.
// Complexity: O(nnz log rowLen).
func (m *RowMatrix) IsSymmetric(tol float64) bool {
	if m.numRows != m.numCols {
		return false
	}
	for i := range m.rows {
		r, ok := m.explicitRow(i)
		if !ok {
			continue
		}
		for _, e := range r.entries {
			if math.Abs(e.Value-m.rows[e.Col].Get(e.Col, i)) > tol {
				return false
			}
		}
	}

	return true
}

// IsApproxEqual reports row-wise approximate equality. A row explicit on
// one side but implicit on the other compares unequal regardless of values;
// two implicit rows compare through the shared diagonal values.
func (m *RowMatrix) IsApproxEqual(other *RowMatrix, eps float64) bool {
	if m.numRows != other.numRows || m.numCols != other.numCols {
		return false
	}
	for i := range m.rows {
		a, b := m.rows[i].Explicit(), other.rows[i].Explicit()
		if a != b {
			return false
		}
		if a {
			if !m.rows[i].IsApproxEqual(i, other.rows[i], eps) {
				return false
			}
		} else if m.diagEntry != other.diagEntry {
			return false
		}
	}

	return true
}

// RowEntries returns row i's associations; zeros may be contained and the
// order is unspecified. An implicit row yields its single diagonal entry.
func (m *RowMatrix) RowEntries(i int) ([]RowEntry, error) {
	if err := validateRowIndex(i, m.numRows); err != nil {
		return nil, fmt.Errorf("RowMatrix.RowEntries(%d): %w", i, err)
	}

	return m.rows[i].RowEntries(i), nil
}

// SortedRowEntries is RowEntries ordered by column index.
func (m *RowMatrix) SortedRowEntries(i int) ([]RowEntry, error) {
	if err := validateRowIndex(i, m.numRows); err != nil {
		return nil, fmt.Errorf("RowMatrix.SortedRowEntries(%d): %w", i, err)
	}

	return m.rows[i].SortedRowEntries(i), nil
}

// TransposeTo zeroes target and writes the receiver's transpose into it,
// built row by row from SortedRowEntries. target must be NumCols×NumRows.
// Complexity: O(nnz log rowLen) plus target's Set cost per entry.
func (m *RowMatrix) TransposeTo(target Matrix) error {
	if target == nil {
		return fmt.Errorf("RowMatrix.%s: %w", ctxTranspose, ErrNilMatrix)
	}
	if target.NumRows() != m.numCols || target.NumCols() != m.numRows {
		return fmt.Errorf("RowMatrix.%s: %w", ctxTranspose, ErrDimensionMismatch)
	}
	target.SetZero()
	for i := range m.rows {
		for _, e := range m.rows[i].SortedRowEntries(i) {
			if err := target.Set(e.Col, i, e.Value); err != nil {
				return fmt.Errorf("RowMatrix.%s: %w", ctxTranspose, err)
			}
		}
	}

	return nil
}

// Diag returns the diagonal entry of row i.
func (m *RowMatrix) Diag(i int) (float64, error) {
	return m.At(i, i)
}

// UnsetRowsDiagEntry returns the diagonal value shared by implicit rows.
func (m *RowMatrix) UnsetRowsDiagEntry() float64 { return m.diagEntry }

// SetUnsetRowsDiagEntry replaces the shared diagonal value, affecting all
// implicit rows simultaneously.
func (m *RowMatrix) SetUnsetRowsDiagEntry(v float64) { m.diagEntry = v }

// HasNaNInf reports whether any stored value is NaN or ±Inf.
func (m *RowMatrix) HasNaNInf() bool {
	for i := range m.rows {
		if m.rows[i].HasNaNInf() {
			return true
		}
	}

	return false
}

// Reallocate resizes the matrix destroying old contents: every row becomes
// an implicit identity row again. Negative dimensions yield ErrBadShape.
func (m *RowMatrix) Reallocate(rows, cols int) error {
	if rows < 0 || cols < 0 {
		return fmt.Errorf("RowMatrix.Reallocate(%d,%d): %w", rows, cols, ErrBadShape)
	}
	m.rows = make([]Row, rows)
	for i := range m.rows {
		m.rows[i] = m.ident
	}
	m.numRows = rows
	m.numCols = cols

	return nil
}

// Clone copies the matrix under the given policy. DeepCopy duplicates every
// explicit row; StructCopy keeps only shape, diagonal and policy (all rows
// implicit again). FlatCopy is not offered here: row aliasing is the
// explicit-storage SparseMatrix's ownership game.
func (m *RowMatrix) Clone(mode CopyMode) (Matrix, error) {
	switch mode {
	case DeepCopy, StructCopy:
		cp, err := NewRowMatrix(m.numRows, m.numCols,
			WithDiagEntry(m.diagEntry), WithBoundsCheck(m.boundsCheck), WithEpsilon(m.eps))
		if err != nil {
			return nil, err
		}
		if mode == DeepCopy {
			for i := range m.rows {
				if r, ok := m.explicitRow(i); ok {
					cp.rows[i] = r.clone()
				}
			}
		}

		return cp, nil
	default:
		return nil, fmt.Errorf("RowMatrix.Clone(%s): %w", mode, ErrUnsupportedCopyMode)
	}
}
