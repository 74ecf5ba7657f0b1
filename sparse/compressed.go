// SPDX-License-Identifier: MIT

// Package sparse - CSRMatrix / CSCMatrix: compressed storage for fast
// matrix-vector products.
//
// Both formats share one layout (csBase) described along a major axis:
//   - ptr   : majorDim+1 offsets, ptr[m]..ptr[m+1] delimits slice m
//   - index : the minor index of each stored entry, ascending within a slice
//   - value : the stored values, parallel to index
//
// CSR reads the major axis as rows (ptr over rows, index holds columns),
// CSC as columns (ptr over columns, index holds rows). nnz = ptr[majorDim]
// always holds.
//
// The build path is a three-pass counting sort over a TripletMatrix,
// O(nnz + dim), no comparison sort:
//
//	pass 1  bucket the triples by the MINOR axis (counting sort)
//	pass 2  merge duplicates inside each bucket with a marker array that
//	        stores positions, not booleans: marker[major] is compared
//	        against the bucket's base offset, so the array never needs
//	        clearing between buckets
//	pass 3  bucket the merged triples by the MAJOR axis; visiting them in
//	        minor order makes every slice come out minor-sorted for free
//
// Point writes (Set/Add) on a built matrix are supported but slow: absent
// coordinates splice into the entry arrays and shift every later offset.
// Assemble in a TripletMatrix, convert once, then multiply.
package sparse

import (
	"fmt"
	"sort"
)

// compress is the shared triplet-to-compressed conversion kernel. minorIdx,
// majorIdx and vals are parallel triple slices; the result is the
// compressed layout along the major axis with duplicates summed and each
// slice's minor indices ascending. Out-of-bounds triples yield
// ErrOutOfRange.
// Complexity: O(n + minorDim + majorDim).
func compress(minorIdx, majorIdx []int, vals []float64, minorDim, majorDim int) (index, ptr []int, value []float64, err error) {
	n := len(vals)
	for k := 0; k < n; k++ {
		if minorIdx[k] < 0 || minorIdx[k] >= minorDim || majorIdx[k] < 0 || majorIdx[k] >= majorDim {
			return nil, nil, nil, fmt.Errorf("compress: triple %d at (%d,%d): %w",
				k, majorIdx[k], minorIdx[k], ErrOutOfRange)
		}
	}

	// Pass 1: counting sort by minor index.
	bucketStart := make([]int, minorDim+1)
	for k := 0; k < n; k++ {
		bucketStart[minorIdx[k]+1]++
	}
	for i := 0; i < minorDim; i++ {
		bucketStart[i+1] += bucketStart[i]
	}
	cursor := append([]int(nil), bucketStart[:minorDim]...)
	tmpMajor := make([]int, n)
	tmpVal := make([]float64, n)
	for k := 0; k < n; k++ {
		p := cursor[minorIdx[k]]
		cursor[minorIdx[k]]++
		tmpMajor[p] = majorIdx[k]
		tmpVal[p] = vals[k]
	}

	// Pass 2: merge duplicates bucket by bucket. marker[major] holds the
	// compacted position of the last entry seen for that major index; a
	// value below the current bucket's compacted base is stale leftover
	// from an earlier bucket, which is what makes one fill of the array
	// serve all of them.
	marker := make([]int, majorDim)
	for i := range marker {
		marker[i] = -1
	}
	compMinor := make([]int, 0, n)
	// compMajor/compVal compact tmpMajor/tmpVal in place: the write
	// position nnz never passes the read position p.
	compMajor := tmpMajor[:0]
	compVal := tmpVal[:0]
	nnz := 0
	for i := 0; i < minorDim; i++ {
		base := nnz
		for p := bucketStart[i]; p < bucketStart[i+1]; p++ {
			mj, v := tmpMajor[p], tmpVal[p]
			if w := marker[mj]; w >= base {
				compVal[w] += v

				continue
			}
			marker[mj] = nnz
			compMinor = append(compMinor, i)
			compMajor = append(compMajor, mj)
			compVal = append(compVal, v)
			nnz++
		}
	}

	// Pass 3: counting sort by major index. compMinor is ascending, so
	// every major slice receives its minor indices already sorted.
	ptr = make([]int, majorDim+1)
	for k := 0; k < nnz; k++ {
		ptr[compMajor[k]+1]++
	}
	for m := 0; m < majorDim; m++ {
		ptr[m+1] += ptr[m]
	}
	cursor = append(cursor[:0], ptr[:majorDim]...)
	index = make([]int, nnz)
	value = make([]float64, nnz)
	for k := 0; k < nnz; k++ {
		mj := compMajor[k]
		p := cursor[mj]
		cursor[mj]++
		index[p] = compMinor[k]
		value[p] = compVal[k]
	}

	return index, ptr, value, nil
}

// csBase is the orientation-free compressed layout shared by CSRMatrix and
// CSCMatrix. The embedding type fixes which matrix axis is major.
type csBase struct {
	numRows, numCols   int
	majorDim, minorDim int
	index              []int
	ptr                []int
	value              []float64
	boundsCheck        bool
}

// newCSBase allocates an empty layout: zero entries, all offsets zero.
func newCSBase(rows, cols, majorDim, minorDim int, o Options) (csBase, error) {
	if rows < 0 || cols < 0 {
		return csBase{}, ErrBadShape
	}

	return csBase{
		numRows:     rows,
		numCols:     cols,
		majorDim:    majorDim,
		minorDim:    minorDim,
		ptr:         make([]int, majorDim+1),
		boundsCheck: o.boundsCheck,
	}, nil
}

// NumRows returns the row count. Complexity: O(1).
func (c *csBase) NumRows() int { return c.numRows }

// NumCols returns the column count. Complexity: O(1).
func (c *csBase) NumCols() int { return c.numCols }

// NumStoredEntries returns the stored entry count, exact zeros included.
func (c *csBase) NumStoredEntries() int { return len(c.value) }

// NumNonZeroes counts stored entries whose value differs from exact zero.
// Complexity: O(nnz).
func (c *csBase) NumNonZeroes() int {
	n := 0
	for _, v := range c.value {
		if v != 0 {
			n++
		}
	}

	return n
}

// Values exposes the value slice. Read-only view; parallel to the minor
// index slice.
func (c *csBase) Values() []float64 { return c.value }

// SetZero drops every stored entry, keeping the shape.
func (c *csBase) SetZero() {
	c.index = c.index[:0]
	c.value = c.value[:0]
	for m := range c.ptr {
		c.ptr[m] = 0
	}
}

// findEntry locates minor within the major slice via binary search. It
// returns the entry position and whether it is present; when absent the
// position is where an insert keeps the slice sorted.
// Complexity: O(log sliceLen).
func (c *csBase) findEntry(major, minor int) (int, bool) {
	lo, hi := c.ptr[major], c.ptr[major+1]
	p := lo + sort.SearchInts(c.index[lo:hi], minor)

	return p, p < hi && c.index[p] == minor
}

// at reads the entry at (major, minor); absent coordinates read zero.
func (c *csBase) at(major, minor int) float64 {
	if p, ok := c.findEntry(major, minor); ok {
		return c.value[p]
	}

	return 0
}

// set overwrites the entry at (major, minor), splicing new storage in when
// the coordinate is absent. Zero values are stored, not elided, matching
// the association-list write semantics.
// Complexity: O(log sliceLen) when present, O(nnz + majorDim) when absent.
func (c *csBase) set(major, minor int, v float64) {
	p, ok := c.findEntry(major, minor)
	if ok {
		c.value[p] = v

		return
	}
	c.spliceAt(major, p, minor, v)
}

// add accumulates v into the entry at (major, minor). Adding exact zero to
// an absent coordinate stays structure-neutral.
func (c *csBase) add(major, minor int, v float64) {
	p, ok := c.findEntry(major, minor)
	if ok {
		c.value[p] += v

		return
	}
	if v == 0 {
		return
	}
	c.spliceAt(major, p, minor, v)
}

// spliceAt inserts a new entry at position p of major's slice and shifts
// every later offset up by one. This is the slow path point writes pay on a
// compressed layout.
func (c *csBase) spliceAt(major, p, minor int, v float64) {
	c.index = append(c.index, 0)
	copy(c.index[p+1:], c.index[p:])
	c.index[p] = minor
	c.value = append(c.value, 0)
	copy(c.value[p+1:], c.value[p:])
	c.value[p] = v
	for m := major + 1; m <= c.majorDim; m++ {
		c.ptr[m]++
	}
}

// setFromCompress installs a kernel result, replacing prior contents.
func (c *csBase) setFromCompress(index, ptr []int, value []float64) {
	c.index = index
	c.ptr = ptr
	c.value = value
}

// cloneInto copies the layout under the given policy into dst. FlatCopy
// shares the entry slices; point writes through either alias may then
// reallocate one side's slices and silently split the twins, so flat
// clones are for read-mostly use.
func (c *csBase) cloneInto(dst *csBase, mode CopyMode) error {
	*dst = csBase{
		numRows:     c.numRows,
		numCols:     c.numCols,
		majorDim:    c.majorDim,
		minorDim:    c.minorDim,
		boundsCheck: c.boundsCheck,
	}
	switch mode {
	case DeepCopy:
		dst.index = append([]int(nil), c.index...)
		dst.ptr = append([]int(nil), c.ptr...)
		dst.value = append([]float64(nil), c.value...)
	case StructCopy:
		dst.ptr = make([]int, c.majorDim+1)
	case FlatCopy:
		dst.index = c.index
		dst.ptr = c.ptr
		dst.value = c.value
	default:
		return ErrUnsupportedCopyMode
	}

	return nil
}

// CSRMatrix is the compressed sparse row realization: ptr runs over rows,
// index holds column indices.
type CSRMatrix struct {
	csBase
}

var _ Matrix = (*CSRMatrix)(nil)

// NewCSRMatrix creates an empty rows×cols compressed-row matrix.
func NewCSRMatrix(rows, cols int, opts ...Option) (*CSRMatrix, error) {
	base, err := newCSBase(rows, cols, rows, cols, gatherOptions(opts...))
	if err != nil {
		return nil, fmt.Errorf("NewCSRMatrix(%d,%d): %w", rows, cols, err)
	}

	return &CSRMatrix{csBase: base}, nil
}

// NewCSRFromTriplet builds a compressed-row matrix from an assembly
// matrix, summing duplicate triples.
// Complexity: O(nnz + rows + cols).
func NewCSRFromTriplet(t *TripletMatrix, opts ...Option) (*CSRMatrix, error) {
	if t == nil {
		return nil, fmt.Errorf("NewCSRFromTriplet: %w", ErrNilMatrix)
	}
	m, err := NewCSRMatrix(t.NumRows(), t.NumCols(), opts...)
	if err != nil {
		return nil, err
	}
	if err := m.SetFromTriplet(t); err != nil {
		return nil, err
	}

	return m, nil
}

// SetFromTriplet replaces the contents with the consolidated triples of t,
// resizing to t's dimensions. Row slices come out column-sorted.
func (m *CSRMatrix) SetFromTriplet(t *TripletMatrix) error {
	if t == nil {
		return fmt.Errorf("CSRMatrix.SetFromTriplet: %w", ErrNilMatrix)
	}
	index, ptr, value, err := compress(t.ColIndices(), t.RowIndices(), t.Values(), t.NumCols(), t.NumRows())
	if err != nil {
		return fmt.Errorf("CSRMatrix.SetFromTriplet: %w", err)
	}
	m.numRows, m.numCols = t.NumRows(), t.NumCols()
	m.majorDim, m.minorDim = m.numRows, m.numCols
	m.setFromCompress(index, ptr, value)

	return nil
}

// ColIndices exposes the column-index slice. Read-only view.
func (m *CSRMatrix) ColIndices() []int { return m.index }

// RowPointers exposes the numRows+1 row-offset slice. Read-only view.
func (m *CSRMatrix) RowPointers() []int { return m.ptr }

// At reads the value at (i, j); absent coordinates read zero.
func (m *CSRMatrix) At(i, j int) (float64, error) {
	if err := validateIndex(i, j, m.numRows, m.numCols, m.boundsCheck); err != nil {
		return 0, fmt.Errorf("CSRMatrix.%s(%d,%d): %w", ctxAt, i, j, err)
	}

	return m.at(i, j), nil
}

// Set overwrites the value at (i, j); see the package note on the cost of
// point writes.
func (m *CSRMatrix) Set(i, j int, v float64) error {
	if err := validateIndex(i, j, m.numRows, m.numCols, m.boundsCheck); err != nil {
		return fmt.Errorf("CSRMatrix.%s(%d,%d): %w", ctxSet, i, j, err)
	}
	m.set(i, j, v)

	return nil
}

// Add accumulates v into the value at (i, j).
func (m *CSRMatrix) Add(i, j int, v float64) error {
	if err := validateIndex(i, j, m.numRows, m.numCols, m.boundsCheck); err != nil {
		return fmt.Errorf("CSRMatrix.%s(%d,%d): %w", ctxAdd, i, j, err)
	}
	m.add(i, j, v)

	return nil
}

// Apply computes dest = M·arg: one running sum per row slice, the access
// pattern CSR exists for.
// Complexity: O(nnz).
func (m *CSRMatrix) Apply(arg, dest []float64) error {
	if err := validateApplyShape(m.numRows, m.numCols, len(arg), len(dest)); err != nil {
		return fmt.Errorf("CSRMatrix.%s: %w", ctxApply, err)
	}
	for i := 0; i < m.numRows; i++ {
		var s float64
		for p := m.ptr[i]; p < m.ptr[i+1]; p++ {
			s += m.value[p] * arg[m.index[p]]
		}
		dest[i] = s
	}

	return nil
}

// ApplyAdd computes dest += M·arg.
// Complexity: O(nnz).
func (m *CSRMatrix) ApplyAdd(arg, dest []float64) error {
	if err := validateApplyShape(m.numRows, m.numCols, len(arg), len(dest)); err != nil {
		return fmt.Errorf("CSRMatrix.%s: %w", ctxApplyAdd, err)
	}
	for i := 0; i < m.numRows; i++ {
		var s float64
		for p := m.ptr[i]; p < m.ptr[i+1]; p++ {
			s += m.value[p] * arg[m.index[p]]
		}
		dest[i] += s
	}

	return nil
}

// ApplyBlocks applies the matrix to several vectors at once:
// dest[b] = M·arg[b] for every block b. len(arg) must equal len(dest).
func (m *CSRMatrix) ApplyBlocks(arg, dest [][]float64) error {
	if len(arg) != len(dest) {
		return fmt.Errorf("CSRMatrix.ApplyBlocks: %d vs %d blocks: %w", len(arg), len(dest), ErrDimensionMismatch)
	}
	for b := range arg {
		if err := m.Apply(arg[b], dest[b]); err != nil {
			return err
		}
	}

	return nil
}

// ApplyAddBlocks is the accumulating variant of ApplyBlocks.
func (m *CSRMatrix) ApplyAddBlocks(arg, dest [][]float64) error {
	if len(arg) != len(dest) {
		return fmt.Errorf("CSRMatrix.ApplyAddBlocks: %d vs %d blocks: %w", len(arg), len(dest), ErrDimensionMismatch)
	}
	for b := range arg {
		if err := m.ApplyAdd(arg[b], dest[b]); err != nil {
			return err
		}
	}

	return nil
}

// TransposeTo writes the transpose into target, which must be cols×rows.
// Walking the row slices in order feeds target.Add column-major-sorted
// coordinates.
func (m *CSRMatrix) TransposeTo(target Matrix) error {
	return transposeCompressed("CSRMatrix", &m.csBase, target, false)
}

// Clone copies the matrix under the given policy; FlatCopy shares the
// entry slices with the receiver.
func (m *CSRMatrix) Clone(mode CopyMode) (Matrix, error) {
	cp := &CSRMatrix{}
	if err := m.cloneInto(&cp.csBase, mode); err != nil {
		return nil, fmt.Errorf("CSRMatrix.Clone(%s): %w", mode, err)
	}

	return cp, nil
}

// CSCMatrix is the compressed sparse column realization: ptr runs over
// columns, index holds row indices.
type CSCMatrix struct {
	csBase
}

var _ Matrix = (*CSCMatrix)(nil)

// NewCSCMatrix creates an empty rows×cols compressed-column matrix.
func NewCSCMatrix(rows, cols int, opts ...Option) (*CSCMatrix, error) {
	base, err := newCSBase(rows, cols, cols, rows, gatherOptions(opts...))
	if err != nil {
		return nil, fmt.Errorf("NewCSCMatrix(%d,%d): %w", rows, cols, err)
	}

	return &CSCMatrix{csBase: base}, nil
}

// NewCSCFromTriplet builds a compressed-column matrix from an assembly
// matrix, summing duplicate triples.
// Complexity: O(nnz + rows + cols).
func NewCSCFromTriplet(t *TripletMatrix, opts ...Option) (*CSCMatrix, error) {
	if t == nil {
		return nil, fmt.Errorf("NewCSCFromTriplet: %w", ErrNilMatrix)
	}
	m, err := NewCSCMatrix(t.NumRows(), t.NumCols(), opts...)
	if err != nil {
		return nil, err
	}
	if err := m.SetFromTriplet(t); err != nil {
		return nil, err
	}

	return m, nil
}

// SetFromTriplet replaces the contents with the consolidated triples of t,
// resizing to t's dimensions. Column slices come out row-sorted.
func (m *CSCMatrix) SetFromTriplet(t *TripletMatrix) error {
	if t == nil {
		return fmt.Errorf("CSCMatrix.SetFromTriplet: %w", ErrNilMatrix)
	}
	index, ptr, value, err := compress(t.RowIndices(), t.ColIndices(), t.Values(), t.NumRows(), t.NumCols())
	if err != nil {
		return fmt.Errorf("CSCMatrix.SetFromTriplet: %w", err)
	}
	m.numRows, m.numCols = t.NumRows(), t.NumCols()
	m.majorDim, m.minorDim = m.numCols, m.numRows
	m.setFromCompress(index, ptr, value)

	return nil
}

// RowIndices exposes the row-index slice. Read-only view.
func (m *CSCMatrix) RowIndices() []int { return m.index }

// ColPointers exposes the numCols+1 column-offset slice. Read-only view.
func (m *CSCMatrix) ColPointers() []int { return m.ptr }

// At reads the value at (i, j); absent coordinates read zero.
func (m *CSCMatrix) At(i, j int) (float64, error) {
	if err := validateIndex(i, j, m.numRows, m.numCols, m.boundsCheck); err != nil {
		return 0, fmt.Errorf("CSCMatrix.%s(%d,%d): %w", ctxAt, i, j, err)
	}

	return m.at(j, i), nil
}

// Set overwrites the value at (i, j); see the package note on the cost of
// point writes.
func (m *CSCMatrix) Set(i, j int, v float64) error {
	if err := validateIndex(i, j, m.numRows, m.numCols, m.boundsCheck); err != nil {
		return fmt.Errorf("CSCMatrix.%s(%d,%d): %w", ctxSet, i, j, err)
	}
	m.set(j, i, v)

	return nil
}

// Add accumulates v into the value at (i, j).
func (m *CSCMatrix) Add(i, j int, v float64) error {
	if err := validateIndex(i, j, m.numRows, m.numCols, m.boundsCheck); err != nil {
		return fmt.Errorf("CSCMatrix.%s(%d,%d): %w", ctxAdd, i, j, err)
	}
	m.add(j, i, v)

	return nil
}

// Apply computes dest = M·arg by column scatter: dest is zeroed, then each
// column's entries accumulate value*arg[j] into their rows.
// Complexity: O(rows + nnz).
func (m *CSCMatrix) Apply(arg, dest []float64) error {
	if err := validateApplyShape(m.numRows, m.numCols, len(arg), len(dest)); err != nil {
		return fmt.Errorf("CSCMatrix.%s: %w", ctxApply, err)
	}
	for i := range dest {
		dest[i] = 0
	}

	return m.applyAdd(arg, dest)
}

// ApplyAdd computes dest += M·arg.
// Complexity: O(nnz).
func (m *CSCMatrix) ApplyAdd(arg, dest []float64) error {
	if err := validateApplyShape(m.numRows, m.numCols, len(arg), len(dest)); err != nil {
		return fmt.Errorf("CSCMatrix.%s: %w", ctxApplyAdd, err)
	}

	return m.applyAdd(arg, dest)
}

// applyAdd is the shared column-scatter loop of Apply and ApplyAdd.
func (m *CSCMatrix) applyAdd(arg, dest []float64) error {
	for j := 0; j < m.numCols; j++ {
		a := arg[j]
		if a == 0 {
			continue
		}
		for p := m.ptr[j]; p < m.ptr[j+1]; p++ {
			dest[m.index[p]] += m.value[p] * a
		}
	}

	return nil
}

// ApplyBlocks applies the matrix to several vectors at once:
// dest[b] = M·arg[b] for every block b.
func (m *CSCMatrix) ApplyBlocks(arg, dest [][]float64) error {
	if len(arg) != len(dest) {
		return fmt.Errorf("CSCMatrix.ApplyBlocks: %d vs %d blocks: %w", len(arg), len(dest), ErrDimensionMismatch)
	}
	for b := range arg {
		if err := m.Apply(arg[b], dest[b]); err != nil {
			return err
		}
	}

	return nil
}

// ApplyAddBlocks is the accumulating variant of ApplyBlocks.
func (m *CSCMatrix) ApplyAddBlocks(arg, dest [][]float64) error {
	if len(arg) != len(dest) {
		return fmt.Errorf("CSCMatrix.ApplyAddBlocks: %d vs %d blocks: %w", len(arg), len(dest), ErrDimensionMismatch)
	}
	for b := range arg {
		if err := m.ApplyAdd(arg[b], dest[b]); err != nil {
			return err
		}
	}

	return nil
}

// TransposeTo writes the transpose into target, which must be cols×rows.
func (m *CSCMatrix) TransposeTo(target Matrix) error {
	return transposeCompressed("CSCMatrix", &m.csBase, target, true)
}

// Clone copies the matrix under the given policy; FlatCopy shares the
// entry slices with the receiver.
func (m *CSCMatrix) Clone(mode CopyMode) (Matrix, error) {
	cp := &CSCMatrix{}
	if err := m.cloneInto(&cp.csBase, mode); err != nil {
		return nil, fmt.Errorf("CSCMatrix.Clone(%s): %w", mode, err)
	}

	return cp, nil
}

// transposeCompressed streams every stored entry of c into target with row
// and column swapped. majorIsCol distinguishes the CSC layout, where the
// major axis already is the column.
func transposeCompressed(kind string, c *csBase, target Matrix, majorIsCol bool) error {
	if target == nil {
		return fmt.Errorf("%s.%s: %w", kind, ctxTranspose, ErrNilMatrix)
	}
	if target.NumRows() != c.numCols || target.NumCols() != c.numRows {
		return fmt.Errorf("%s.%s: %w", kind, ctxTranspose, ErrDimensionMismatch)
	}
	target.SetZero()
	for major := 0; major < c.majorDim; major++ {
		for p := c.ptr[major]; p < c.ptr[major+1]; p++ {
			i, j := major, c.index[p]
			if majorIsCol {
				i, j = c.index[p], major
			}
			if err := target.Add(j, i, c.value[p]); err != nil {
				return fmt.Errorf("%s.%s: %w", kind, ctxTranspose, err)
			}
		}
	}

	return nil
}
