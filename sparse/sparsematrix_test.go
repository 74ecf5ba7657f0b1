// SPDX-License-Identifier: MIT

package sparse_test

import (
	"testing"

	"github.com/katalvlaran/sparsemat/sparse"
	"github.com/stretchr/testify/require"
)

// newDenseSparse builds a SparseMatrix holding the given dense content.
func newDenseSparse(t *testing.T, dense [][]float64) *sparse.SparseMatrix {
	t.Helper()
	m, err := sparse.NewSparseMatrix(len(dense), len(dense[0]))
	require.NoError(t, err)
	for i := range dense {
		for j, v := range dense[i] {
			if v != 0 {
				require.NoError(t, m.Set(i, j, v))
			}
		}
	}

	return m
}

// requireDenseEqual compares a matrix entrywise against dense reference
// content.
func requireDenseEqual(t *testing.T, want [][]float64, m sparse.Matrix) {
	t.Helper()
	require.Equal(t, len(want), m.NumRows())
	require.Equal(t, len(want[0]), m.NumCols())
	for i := range want {
		for j := range want[i] {
			v, err := m.At(i, j)
			require.NoError(t, err)
			require.InDelta(t, want[i][j], v, 1e-12, "at (%d,%d)", i, j)
		}
	}
}

func TestSparseMatrix_AllRowsExplicit(t *testing.T) {
	m, err := sparse.NewSparseMatrix(3, 3)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		explicit, err := m.RowExplicit(i)
		require.NoError(t, err)
		require.True(t, explicit)
	}

	// Unlike RowMatrix, every write has storage to land in.
	require.NoError(t, m.Set(0, 1, 2))
	require.NoError(t, m.Add(2, 0, 3))
	requireDenseEqual(t, [][]float64{{0, 2, 0}, {0, 0, 0}, {3, 0, 0}}, m)
}

func TestSparseMatrix_CopyModes(t *testing.T) {
	m := newDenseSparse(t, [][]float64{{1, 0}, {0, 2}})

	deep, err := m.Copy(sparse.DeepCopy)
	require.NoError(t, err)
	require.True(t, deep.OwnsRows())
	require.NoError(t, deep.Set(0, 0, 9))
	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v) // source untouched

	st, err := m.Copy(sparse.StructCopy)
	require.NoError(t, err)
	require.True(t, st.OwnsRows())
	requireDenseEqual(t, [][]float64{{0, 0}, {0, 0}}, st)

	flat, err := m.Copy(sparse.FlatCopy)
	require.NoError(t, err)
	require.False(t, flat.OwnsRows())
	// Borrowed rows: a write through the borrower is visible in the source.
	require.NoError(t, flat.Set(1, 1, 7))
	v, err = m.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 7.0, v)

	_, err = m.Copy(sparse.CopyMode(42))
	require.ErrorIs(t, err, sparse.ErrUnsupportedCopyMode)
}

func TestSparseMatrix_Assign(t *testing.T) {
	src := newDenseSparse(t, [][]float64{{1, 2}, {3, 4}})
	dst, err := sparse.NewSparseMatrix(2, 2)
	require.NoError(t, err)

	require.NoError(t, dst.Assign(src))
	requireDenseEqual(t, [][]float64{{1, 2}, {3, 4}}, dst)

	// Independent after assignment.
	require.NoError(t, dst.Set(0, 0, 9))
	v, err := src.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)

	wrong, err := sparse.NewSparseMatrix(3, 2)
	require.NoError(t, err)
	require.ErrorIs(t, dst.Assign(wrong), sparse.ErrDimensionMismatch)
	require.ErrorIs(t, dst.Assign(nil), sparse.ErrNilMatrix)
}

func TestSparseMatrix_ResizeGrowsAndRefusesColumnShrink(t *testing.T) {
	m := newDenseSparse(t, [][]float64{{1, 2}, {3, 4}})

	// Growing keeps content; new rows are explicit and empty.
	require.NoError(t, m.Resize(3, 4))
	requireDenseEqual(t, [][]float64{{1, 2, 0, 0}, {3, 4, 0, 0}, {0, 0, 0, 0}}, m)

	// Shrinking rows drops the extras.
	require.NoError(t, m.Resize(1, 4))
	require.Equal(t, 1, m.NumRows())

	// Shrinking columns is refused; the row change sticks regardless
	// (non-transactional, as documented).
	err := m.Resize(2, 3)
	require.ErrorIs(t, err, sparse.ErrShrinkCols)
	require.Equal(t, 2, m.NumRows())
	require.Equal(t, 4, m.NumCols())

	// DestructiveResize takes any column count.
	require.NoError(t, m.DestructiveResize(2, 3))
	require.Equal(t, 3, m.NumCols())
}

func TestSparseMatrix_InsertAndDestroyRow(t *testing.T) {
	m := newDenseSparse(t, [][]float64{{1, 1}, {2, 2}})

	require.NoError(t, m.InsertRow(1))
	requireDenseEqual(t, [][]float64{{1, 1}, {0, 0}, {2, 2}}, m)

	// Insert at NumRows appends.
	require.NoError(t, m.InsertRow(3))
	require.Equal(t, 4, m.NumRows())
	require.ErrorIs(t, m.InsertRow(9), sparse.ErrOutOfRange)

	require.NoError(t, m.DestroyRow(3))
	require.NoError(t, m.DestroyRow(1))
	requireDenseEqual(t, [][]float64{{1, 1}, {2, 2}}, m)
	require.ErrorIs(t, m.DestroyRow(2), sparse.ErrOutOfRange)
}

func TestSparseMatrix_AddMultipleRowToRow(t *testing.T) {
	m := newDenseSparse(t, [][]float64{{1, 2, 0}, {3, 4, 5}, {0, 6, 7}})

	require.NoError(t, m.AddMultipleRowToRow(1, 0, -2))
	requireDenseEqual(t, [][]float64{{-5, -6, -10}, {3, 4, 5}, {0, 6, 7}}, m)

	require.ErrorIs(t, m.AddMultipleRowToRow(1, 1, 1), sparse.ErrSameIndex)
	require.ErrorIs(t, m.AddMultipleRowToRow(5, 0, 1), sparse.ErrOutOfRange)
}

func TestSparseMatrix_AddMultipleColToCol(t *testing.T) {
	m := newDenseSparse(t, [][]float64{{1, 2, 0}, {3, 4, 5}, {0, 6, 7}})

	require.NoError(t, m.AddMultipleColToCol(1, 0, -2))
	requireDenseEqual(t, [][]float64{{-3, 2, 0}, {-5, 4, 5}, {-12, 6, 7}}, m)

	require.ErrorIs(t, m.AddMultipleColToCol(0, 0, 1), sparse.ErrSameIndex)
	require.ErrorIs(t, m.AddMultipleColToCol(0, 9, 1), sparse.ErrOutOfRange)
}

func TestSparseMatrix_CollapseRowCol(t *testing.T) {
	m := newDenseSparse(t, [][]float64{{1, 2, 0}, {3, 4, 5}, {0, 6, 7}})

	require.NoError(t, m.CollapseRowCol(1, 0, -2, 9))
	requireDenseEqual(t, [][]float64{
		{7, 0, -10},
		{0, 9, 0},
		{-12, 0, 7},
	}, m)
}

func TestSparseMatrix_SetRowColToDiagonal(t *testing.T) {
	m := newDenseSparse(t, [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})

	require.NoError(t, m.SetRowColToDiagonal(1, 1))
	requireDenseEqual(t, [][]float64{{1, 0, 3}, {0, 1, 0}, {7, 0, 9}}, m)
}

func TestSparseMatrix_EraseZeroEntries(t *testing.T) {
	m, err := sparse.NewSparseMatrix(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 0)) // stored stub
	require.NoError(t, m.Set(0, 1, 3))
	require.NoError(t, m.Set(1, 0, 0)) // stored stub

	require.Equal(t, 3, m.NumStoredEntries())
	m.EraseZeroEntries()
	require.Equal(t, 1, m.NumStoredEntries())
	requireDenseEqual(t, [][]float64{{0, 3}, {0, 0}}, m)
}

func TestSparseMatrix_LoadHarwellBoeingNotBuilt(t *testing.T) {
	m, err := sparse.NewSparseMatrix(1, 1)
	require.NoError(t, err)
	require.ErrorIs(t, m.LoadHarwellBoeing("mat.hb"), sparse.ErrNotBuilt)
}

func TestNewSparseMatrixFromGrid(t *testing.T) {
	m, err := sparse.NewSparseMatrixFromGrid(nodeCount(4))
	require.NoError(t, err)
	require.Equal(t, 4, m.NumRows())
	require.Equal(t, 4, m.NumCols())
}
