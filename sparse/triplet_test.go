// SPDX-License-Identifier: MIT

package sparse_test

import (
	"sort"
	"testing"

	"github.com/katalvlaran/sparsemat/sparse"
	"github.com/stretchr/testify/require"
)

func TestTripletMatrix_AddAccumulates(t *testing.T) {
	m, err := sparse.NewTripletMatrix(3, 3)
	require.NoError(t, err)

	require.NoError(t, m.Add(1, 2, 4))
	require.NoError(t, m.Add(1, 2, 6))
	require.Equal(t, 2, m.NumStoredEntries())

	// The semantic value is the sum over duplicates.
	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 10.0, v)

	require.ErrorIs(t, m.Add(3, 0, 1), sparse.ErrOutOfRange)
}

func TestTripletMatrix_SetLeavesZeroStubs(t *testing.T) {
	m, err := sparse.NewTripletMatrix(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Add(0, 0, 3))
	require.NoError(t, m.Add(0, 0, 4))

	require.NoError(t, m.Set(0, 0, 5))
	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 5.0, v)

	// The two zeroed matches stay behind as stubs plus the new triple.
	require.Equal(t, 3, m.NumStoredEntries())

	m.SumDuplicates()
	require.Equal(t, 1, m.NumStoredEntries())
}

func TestTripletMatrix_SumDuplicates(t *testing.T) {
	m, err := sparse.NewTripletMatrix(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Add(0, 0, 3))
	require.NoError(t, m.Add(0, 0, -3))
	require.NoError(t, m.Add(1, 1, 4))

	m.SumDuplicates()

	// The (0,0) run cancels to exact zero and is removed physically.
	require.Equal(t, 1, m.NumStoredEntries())
	v, err := m.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 4.0, v)
	v, err = m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 0.0, v)

	// Idempotent.
	m.SumDuplicates()
	require.Equal(t, 1, m.NumStoredEntries())
}

func TestTripletMatrix_IndexOrders(t *testing.T) {
	m, err := sparse.NewTripletMatrix(3, 3)
	require.NoError(t, err)
	require.NoError(t, m.Add(2, 0, 1))
	require.NoError(t, m.Add(0, 2, 2))
	require.NoError(t, m.Add(1, 1, 3))
	require.NoError(t, m.Add(0, 1, 4))

	rm := m.RowMajorOrder()
	require.True(t, sort.SliceIsSorted(rm, func(a, b int) bool {
		ra, rb := m.RowIndices()[rm[a]], m.RowIndices()[rm[b]]

		return ra < rb || (ra == rb && m.ColIndices()[rm[a]] < m.ColIndices()[rm[b]])
	}))

	cm := m.ColMajorOrder()
	require.True(t, sort.SliceIsSorted(cm, func(a, b int) bool {
		ca, cb := m.ColIndices()[cm[a]], m.ColIndices()[cm[b]]

		return ca < cb || (ca == cb && m.RowIndices()[cm[a]] < m.RowIndices()[cm[b]])
	}))
}

func TestTripletMatrix_RowColZeroAndErase(t *testing.T) {
	m, err := sparse.NewTripletMatrix(3, 3)
	require.NoError(t, err)
	require.NoError(t, m.Add(0, 0, 1))
	require.NoError(t, m.Add(0, 1, 2))
	require.NoError(t, m.Add(1, 1, 3))

	require.NoError(t, m.SetRowToZero(0))
	v, err := m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 0.0, v)
	require.Equal(t, 3, m.NumStoredEntries()) // zeroed, not removed

	require.NoError(t, m.SetColToZero(1))
	v, err = m.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 0.0, v)

	require.NoError(t, m.EraseValue(0, 0))
	require.Equal(t, 2, m.NumStoredEntries())
}

func TestTripletMatrix_RemoveRowCol(t *testing.T) {
	m, err := sparse.NewTripletMatrix(3, 3)
	require.NoError(t, err)
	require.NoError(t, m.Add(0, 0, 1))
	require.NoError(t, m.Add(1, 1, 2))
	require.NoError(t, m.Add(2, 2, 3))
	require.NoError(t, m.Add(2, 0, 4))

	require.NoError(t, m.RemoveRowCol(1))

	// Triples touching row/col 1 are gone; larger indices shifted down,
	// the remaining order preserved.
	require.Equal(t, []int{0, 1, 1}, m.RowIndices())
	require.Equal(t, []int{0, 1, 0}, m.ColIndices())
	require.Equal(t, []float64{1, 3, 4}, m.Values())
}

func TestTripletMatrix_ToSparseMatrixRoundTrip(t *testing.T) {
	m, err := sparse.NewTripletMatrix(2, 3)
	require.NoError(t, err)
	require.NoError(t, m.Add(0, 1, 2))
	require.NoError(t, m.Add(0, 1, 3)) // duplicate, summed by the target
	require.NoError(t, m.Add(1, 2, 4))

	target, err := sparse.NewSparseMatrix(1, 1)
	require.NoError(t, err)
	require.NoError(t, m.ToSparseMatrix(target))
	requireDenseEqual(t, [][]float64{{0, 5, 0}, {0, 0, 4}}, target)

	require.ErrorIs(t, m.ToSparseMatrix(nil), sparse.ErrNilMatrix)
}

func TestTripletMatrix_RowColMerges(t *testing.T) {
	m, err := sparse.NewTripletMatrix(3, 3)
	require.NoError(t, err)
	require.NoError(t, m.Add(1, 0, 2))
	require.NoError(t, m.Add(1, 2, 3))

	require.NoError(t, m.AddMultipleRowToRow(1, 0, -1))
	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, -2.0, v)
	v, err = m.At(0, 2)
	require.NoError(t, err)
	require.Equal(t, -3.0, v)

	require.NoError(t, m.AddMultipleColToCol(0, 1, 2))
	v, err = m.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 4.0, v)
	v, err = m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, -4.0, v)

	require.ErrorIs(t, m.AddMultipleRowToRow(1, 1, 1), sparse.ErrSameIndex)

	require.NoError(t, m.SetRowColToDiagonal(0, 7))
	v, err = m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 7.0, v)
	v, err = m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 0.0, v)
	v, err = m.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, 0.0, v)
}

func TestTripletMatrix_ApplyUnsupported(t *testing.T) {
	m, err := sparse.NewTripletMatrix(2, 2)
	require.NoError(t, err)
	dest := make([]float64, 2)
	require.ErrorIs(t, m.Apply([]float64{1, 1}, dest), sparse.ErrNotImplemented)
	require.ErrorIs(t, m.ApplyAdd([]float64{1, 1}, dest), sparse.ErrNotImplemented)
}

func TestTripletMatrix_TransposeTo(t *testing.T) {
	m, err := sparse.NewTripletMatrix(2, 3)
	require.NoError(t, err)
	require.NoError(t, m.Add(0, 2, 5))
	require.NoError(t, m.Add(1, 0, 6))

	target, err := sparse.NewTripletMatrix(3, 2)
	require.NoError(t, err)
	require.NoError(t, m.TransposeTo(target))

	v, err := target.At(2, 0)
	require.NoError(t, err)
	require.Equal(t, 5.0, v)
	v, err = target.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 6.0, v)
}

func TestTripletMatrix_CloneModes(t *testing.T) {
	m, err := sparse.NewTripletMatrix(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Add(0, 1, 3))

	deepAny, err := m.Clone(sparse.DeepCopy)
	require.NoError(t, err)
	deep := deepAny.(*sparse.TripletMatrix)
	require.NoError(t, deep.Add(0, 1, 1))
	require.Equal(t, 1, m.NumStoredEntries()) // source untouched

	stAny, err := m.Clone(sparse.StructCopy)
	require.NoError(t, err)
	require.Equal(t, 0, stAny.(*sparse.TripletMatrix).NumStoredEntries())

	_, err = m.Clone(sparse.FlatCopy)
	require.ErrorIs(t, err, sparse.ErrUnsupportedCopyMode)
}

func TestTripletBlock_TranslatesCoordinates(t *testing.T) {
	base, err := sparse.NewTripletMatrix(5, 5)
	require.NoError(t, err)
	blk, err := sparse.NewTripletBlock(base, 2, 2, 2, 3)
	require.NoError(t, err)

	require.Equal(t, 2, blk.NumRows())
	require.Equal(t, base, blk.Base())

	require.NoError(t, blk.Add(0, 1, 4))
	v, err := base.At(2, 4)
	require.NoError(t, err)
	require.Equal(t, 4.0, v)

	v, err = blk.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 4.0, v)

	// Local coordinates are always window-checked.
	require.ErrorIs(t, blk.Add(2, 0, 1), sparse.ErrOutOfRange)

	// A window reaching past the base is rejected at construction.
	_, err = sparse.NewTripletBlock(base, 4, 2, 2, 3)
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
	_, err = sparse.NewTripletBlock(nil, 1, 1, 0, 0)
	require.ErrorIs(t, err, sparse.ErrNilMatrix)
}

func TestTripletBlock_SetZeroIsWindowLocal(t *testing.T) {
	base, err := sparse.NewTripletMatrix(4, 4)
	require.NoError(t, err)
	require.NoError(t, base.Add(0, 0, 1)) // outside the window
	require.NoError(t, base.Add(2, 2, 2)) // inside
	require.NoError(t, base.Add(3, 3, 3)) // inside

	blk, err := sparse.NewTripletBlock(base, 2, 2, 2, 2)
	require.NoError(t, err)
	blk.SetZero()

	require.Equal(t, 1, base.NumStoredEntries())
	v, err := base.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}

func TestTripletBlock_RemoveRowColNeedsDiagonalAnchor(t *testing.T) {
	base, err := sparse.NewTripletMatrix(4, 4)
	require.NoError(t, err)

	off, err := sparse.NewTripletBlock(base, 2, 2, 0, 1)
	require.NoError(t, err)
	require.ErrorIs(t, off.RemoveRowCol(0), sparse.ErrOffsetMismatch)

	require.NoError(t, base.Add(1, 1, 5))
	require.NoError(t, base.Add(2, 2, 6))
	diag, err := sparse.NewTripletBlock(base, 3, 3, 1, 1)
	require.NoError(t, err)
	require.NoError(t, diag.RemoveRowCol(0)) // base row/col 1

	require.Equal(t, 2, diag.NumRows())
	require.Equal(t, 1, base.NumStoredEntries())
	require.Equal(t, []int{1}, base.RowIndices()) // base index 2 shifted down
}

func TestTripletBlockUpperTriangle_DropsLowerWrites(t *testing.T) {
	base, err := sparse.NewTripletMatrix(4, 4)
	require.NoError(t, err)
	blk, err := sparse.NewTripletBlockUpperTriangle(base, 3, 3, 1, 1)
	require.NoError(t, err)

	require.NoError(t, blk.Add(0, 2, 1)) // upper: kept
	require.NoError(t, blk.Add(1, 1, 2)) // diagonal: kept
	require.NoError(t, blk.Add(2, 0, 3)) // lower: silently dropped

	require.Equal(t, 2, base.NumStoredEntries())
	v, err := base.At(3, 1)
	require.NoError(t, err)
	require.Equal(t, 0.0, v)

	require.NoError(t, blk.Set(2, 1, 4)) // lower: dropped too
	require.Equal(t, 2, base.NumStoredEntries())
}
