// SPDX-License-Identifier: MIT

package sparse_test

import (
	"testing"

	"github.com/katalvlaran/sparsemat/sparse"
	"github.com/stretchr/testify/require"
)

// newThreeByThree builds the canonical mixed matrix used across these
// tests: rows 0 and 2 implicit (identity diagonal 1), row 1 explicit with
// entries (1,0)=2, (1,1)=5, (1,2)=3.
func newThreeByThree(t *testing.T) *sparse.RowMatrix {
	t.Helper()
	m, err := sparse.NewRowMatrix(3, 3)
	require.NoError(t, err)
	require.NoError(t, m.NewRow(1))
	require.NoError(t, m.Set(1, 0, 2))
	require.NoError(t, m.Set(1, 1, 5))
	require.NoError(t, m.Set(1, 2, 3))

	return m
}

func TestRowMatrix_ImplicitRowsReadIdentity(t *testing.T) {
	m, err := sparse.NewRowMatrix(3, 3)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v, err := m.At(i, j)
			require.NoError(t, err)
			if i == j {
				require.Equal(t, 1.0, v)
			} else {
				require.Equal(t, 0.0, v)
			}
		}
	}

	explicit, err := m.RowExplicit(0)
	require.NoError(t, err)
	require.False(t, explicit)
}

func TestRowMatrix_WriteToImplicitRow(t *testing.T) {
	m, err := sparse.NewRowMatrix(3, 3)
	require.NoError(t, err)

	// Nonzero off-diagonal write into an absent row is a structural
	// violation.
	require.ErrorIs(t, m.Set(0, 1, 2.0), sparse.ErrRowAbsent)
	require.ErrorIs(t, m.Add(0, 0, 1.0), sparse.ErrRowAbsent)

	// Writes that change nothing are accepted.
	require.NoError(t, m.Set(0, 0, 1.0)) // the shared diagonal value
	require.NoError(t, m.Set(0, 2, 0.0))
	require.NoError(t, m.Add(0, 1, 0.0))

	// Materializing the row unlocks real writes.
	require.NoError(t, m.NewRow(0))
	require.NoError(t, m.Set(0, 1, 2.0))
	v, err := m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 2.0, v)
}

func TestRowMatrix_Apply(t *testing.T) {
	m := newThreeByThree(t)

	dest := make([]float64, 3)
	require.NoError(t, m.Apply([]float64{1, 1, 1}, dest))
	require.Equal(t, []float64{1, 10, 1}, dest)

	require.NoError(t, m.ApplyAdd([]float64{1, 1, 1}, dest))
	require.Equal(t, []float64{2, 20, 2}, dest)

	require.ErrorIs(t, m.Apply([]float64{1, 1}, dest), sparse.ErrDimensionMismatch)
}

func TestRowMatrix_ApplyMasked_AllTrueMaskEqualsPlainApply(t *testing.T) {
	m := newThreeByThree(t)
	arg := []float64{1, 2, 3}

	plain := make([]float64, 3)
	require.NoError(t, m.Apply(arg, plain))

	mask := sparse.BitMask{true, true, true}
	modes := []sparse.ApplyMode{
		sparse.AllWriteAll,
		sparse.BoundaryWriteInterior,
		sparse.InteriorWriteAll,
		sparse.AllWriteInterior,
	}
	for _, mode := range modes {
		dest := make([]float64, 3)
		require.NoError(t, m.ApplyMasked(arg, dest, mask, mode))
		require.Equal(t, plain, dest, "mode %s", mode)
	}

	// InteriorWriteInterior includes clear bits, so its all-true twin is
	// the all-false mask.
	dest := make([]float64, 3)
	require.NoError(t, m.ApplyMasked(arg, dest, sparse.BitMask{false, false, false}, sparse.InteriorWriteInterior))
	require.Equal(t, plain, dest)
}

func TestRowMatrix_ApplyMasked_ExcludedRowsPassThrough(t *testing.T) {
	m, err := sparse.NewSparseMatrix(3, 3)
	require.NoError(t, err)
	for j, v := range []float64{2, 5, 3} {
		require.NoError(t, m.Set(1, j, v))
	}
	require.NoError(t, m.Set(0, 0, 7))
	require.NoError(t, m.Set(2, 2, 9))

	arg := []float64{1, 2, 3}
	mask := sparse.BitMask{true, false, true} // rows 0, 2 are boundary

	// BoundaryWriteInterior multiplies the boundary rows; row 1 passes
	// arg[1] through.
	dest := make([]float64, 3)
	require.NoError(t, m.ApplyMasked(arg, dest, mask, sparse.BoundaryWriteInterior))
	require.Equal(t, []float64{7, 2, 27}, dest)

	// InteriorWriteInterior is the complement: only row 1 multiplies.
	require.NoError(t, m.ApplyMasked(arg, dest, mask, sparse.InteriorWriteInterior))
	require.Equal(t, []float64{1, 21, 3}, dest)

	// Accumulating variant adds the passthrough.
	require.NoError(t, m.ApplyAddMasked(arg, dest, mask, sparse.InteriorWriteInterior))
	require.Equal(t, []float64{2, 42, 6}, dest)

	require.ErrorIs(t,
		m.ApplyMasked(arg, dest, mask, sparse.ApplyMode(99)),
		sparse.ErrUnsupportedApplyMode)
	require.ErrorIs(t,
		m.ApplyMasked(arg, dest, sparse.BitMask{true}, sparse.AllWriteAll),
		sparse.ErrDimensionMismatch)
}

func TestRowMatrix_ScaleSkipsImplicitRows(t *testing.T) {
	m := newThreeByThree(t)
	m.Scale(10)

	v, err := m.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 50.0, v)

	// Implicit rows and the shared diagonal stay untouched.
	v, err = m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
	require.Equal(t, 1.0, m.UnsetRowsDiagEntry())
}

func TestRowMatrix_RowSum_ImplicitReportsZero(t *testing.T) {
	m := newThreeByThree(t)

	s, err := m.RowSum(1)
	require.NoError(t, err)
	require.Equal(t, 10.0, s)

	// Historic quirk: implicit rows sum to zero, diagonal notwithstanding.
	s, err = m.RowSum(0)
	require.NoError(t, err)
	require.Equal(t, 0.0, s)
}

func TestRowMatrix_Counters(t *testing.T) {
	m := newThreeByThree(t)

	// Explicit row stores three entries; each implicit row counts one
	// conceptual diagonal entry.
	require.Equal(t, 5, m.NumStoredEntries())
	require.Equal(t, 5, m.NumNonZeroes())
	require.Equal(t, 3, m.NumNonZeroRows())

	// A zero-valued stub is stored but not a nonzero.
	require.NoError(t, m.Set(1, 0, 0))
	require.Equal(t, 5, m.NumStoredEntries())
	require.Equal(t, 4, m.NumNonZeroes())

	n, err := m.NumNonZeroesInRow(1)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestRowMatrix_DeleteRowRestoresIdentity(t *testing.T) {
	m := newThreeByThree(t)
	require.NoError(t, m.DeleteRow(1))

	explicit, err := m.RowExplicit(1)
	require.NoError(t, err)
	require.False(t, explicit)

	v, err := m.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}

func TestRowMatrix_SetUnsetRowsDiagEntry_AffectsAllImplicitRows(t *testing.T) {
	m := newThreeByThree(t)
	m.SetUnsetRowsDiagEntry(4.5)

	for _, i := range []int{0, 2} {
		v, err := m.At(i, i)
		require.NoError(t, err)
		require.Equal(t, 4.5, v)
	}

	// The explicit row is unaffected.
	v, err := m.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 5.0, v)
}

func TestRowMatrix_AddMultiple_IgnoresImplicitSourceRows(t *testing.T) {
	m := newThreeByThree(t)

	other, err := sparse.NewRowMatrix(3, 3)
	require.NoError(t, err)
	require.NoError(t, other.NewRow(0))
	require.NoError(t, other.Set(0, 2, 4))

	_, err = m.AddMultiple(other, 2)
	require.NoError(t, err)

	// Row 0 was implicit here, explicit there: materialized and merged.
	v, err := m.At(0, 2)
	require.NoError(t, err)
	require.Equal(t, 8.0, v)
	explicit, err := m.RowExplicit(0)
	require.NoError(t, err)
	require.True(t, explicit)

	// Rows implicit in other contribute nothing; row 2 stays implicit.
	explicit, err = m.RowExplicit(2)
	require.NoError(t, err)
	require.False(t, explicit)

	bad, err := sparse.NewRowMatrix(2, 3)
	require.NoError(t, err)
	_, err = m.AddMultiple(bad, 1)
	require.ErrorIs(t, err, sparse.ErrDimensionMismatch)
}

func TestRowMatrix_AddTensorProduct(t *testing.T) {
	m, err := sparse.NewSparseMatrix(2, 3)
	require.NoError(t, err)

	require.NoError(t, m.AddTensorProduct([]float64{1, 2}, []float64{3, 0, 5}))
	want := [][]float64{{3, 0, 5}, {6, 0, 10}}
	for i := range want {
		for j := range want[i] {
			v, err := m.At(i, j)
			require.NoError(t, err)
			require.Equal(t, want[i][j], v)
		}
	}

	require.ErrorIs(t, m.AddTensorProduct([]float64{1}, []float64{1, 2, 3}), sparse.ErrDimensionMismatch)
}

func TestRowMatrix_IsSymmetric(t *testing.T) {
	m, err := sparse.NewSparseMatrix(3, 3)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 1, 2))
	require.NoError(t, m.Set(1, 0, 2))
	require.NoError(t, m.Set(2, 2, 7))
	require.True(t, m.IsSymmetric(0))

	require.NoError(t, m.Set(1, 0, 2.5))
	require.False(t, m.IsSymmetric(0))
	require.True(t, m.IsSymmetric(0.6))

	rect, err := sparse.NewSparseMatrix(2, 3)
	require.NoError(t, err)
	require.False(t, rect.IsSymmetric(0))
}

func TestRowMatrix_IsApproxEqual_ExplicitnessMatters(t *testing.T) {
	a := newThreeByThree(t)
	b := newThreeByThree(t)
	require.True(t, a.IsApproxEqual(b, 0))

	// Same values, different explicitness: not equal.
	require.NoError(t, b.NewRow(0))
	require.NoError(t, b.Set(0, 0, 1))
	require.False(t, a.IsApproxEqual(b, 0))

	// Implicit rows compare through the shared diagonal, exactly.
	c := newThreeByThree(t)
	c.SetUnsetRowsDiagEntry(1 + 1e-15)
	require.False(t, a.IsApproxEqual(c, 1))
}

func TestRowMatrix_TransposeTo(t *testing.T) {
	m, err := sparse.NewSparseMatrix(2, 3)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 2, 4))
	require.NoError(t, m.Set(1, 0, 5))

	target, err := sparse.NewSparseMatrix(3, 2)
	require.NoError(t, err)
	require.NoError(t, m.TransposeTo(target))

	v, err := target.At(2, 0)
	require.NoError(t, err)
	require.Equal(t, 4.0, v)
	v, err = target.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 5.0, v)

	wrong, err := sparse.NewSparseMatrix(2, 2)
	require.NoError(t, err)
	require.ErrorIs(t, m.TransposeTo(wrong), sparse.ErrDimensionMismatch)
}

func TestRowMatrix_BoundsCheckPolicy(t *testing.T) {
	m, err := sparse.NewRowMatrix(2, 2)
	require.NoError(t, err)

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 1), sparse.ErrOutOfRange)

	// Structural operations validate regardless of the policy.
	loose, err := sparse.NewRowMatrix(2, 2, sparse.WithBoundsCheck(false))
	require.NoError(t, err)
	require.ErrorIs(t, loose.NewRow(5), sparse.ErrOutOfRange)
}

func TestRowMatrix_CloneModes(t *testing.T) {
	m := newThreeByThree(t)

	deepAny, err := m.Clone(sparse.DeepCopy)
	require.NoError(t, err)
	deep := deepAny.(*sparse.RowMatrix)
	require.True(t, m.IsApproxEqual(deep, 0))

	// Independent storage: mutating the clone leaves the source alone.
	require.NoError(t, deep.Set(1, 1, 100))
	v, err := m.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 5.0, v)

	structAny, err := m.Clone(sparse.StructCopy)
	require.NoError(t, err)
	st := structAny.(*sparse.RowMatrix)
	require.Equal(t, 3, st.NumRows())
	explicit, err := st.RowExplicit(1)
	require.NoError(t, err)
	require.False(t, explicit)

	_, err = m.Clone(sparse.FlatCopy)
	require.ErrorIs(t, err, sparse.ErrUnsupportedCopyMode)
}

func TestRowMatrix_Reallocate(t *testing.T) {
	m := newThreeByThree(t)
	require.NoError(t, m.Reallocate(4, 2))

	require.Equal(t, 4, m.NumRows())
	require.Equal(t, 2, m.NumCols())
	for i := 0; i < 4; i++ {
		explicit, err := m.RowExplicit(i)
		require.NoError(t, err)
		require.False(t, explicit)
	}

	require.ErrorIs(t, m.Reallocate(-1, 2), sparse.ErrBadShape)
}

func TestNewRowMatrixFromGrid(t *testing.T) {
	m, err := sparse.NewRowMatrixFromGrid(nodeCount(5))
	require.NoError(t, err)
	require.Equal(t, 5, m.NumRows())
	require.Equal(t, 5, m.NumCols())
}

// nodeCount is a minimal NodeCounter for sizing tests.
type nodeCount int

func (n nodeCount) NumberOfNodes() int { return int(n) }
