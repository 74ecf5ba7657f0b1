// SPDX-License-Identifier: MIT

// Package sparse - Row abstraction.
//
// Purpose:
//   - Model one matrix row behind a single interface with two variants:
//     SparseRow (explicit, owns sorted column→value associations) and
//     identityRow (implicit identity, no storage, reads as a shared scalar
//     on the diagonal and zero elsewhere).
//   - Encode "absent row" as a real value of the Row interface instead of a
//     nil handle, so dispatch is explicit and nil never doubles as a flag.
//
// Invariant:
//   - SparseRow keeps its entries sorted by column index with unique columns.
//     Every mutating method preserves this; the merge scans in
//     sparsematrix.go rely on it.
package sparse

import (
	"math"
	"sort"
)

// Row is the polymorphic per-row contract of RowMatrix. The rowIdx argument
// tells a row which diagonal position it occupies; explicit rows ignore it
// for storage but identity rows need it to locate their single entry.
type Row interface {
	// Get returns the value at column col.
	Get(rowIdx, col int) float64

	// Set assigns v at column col. Identity rows accept only writes that
	// change nothing (diagonal value onto the diagonal, or zero) and fail
	// with ErrRowAbsent otherwise.
	Set(rowIdx, col int, v float64) error

	// Add accumulates v at column col. Identity rows accept only v == 0.
	Add(rowIdx, col int, v float64) error

	// Mult returns the dot product of this row with arg.
	Mult(arg []float64, rowIdx int) float64

	// Scale multiplies every stored value by factor. Identity rows are not
	// scaled (the shared diagonal is left untouched).
	Scale(rowIdx int, factor float64)

	// Sum returns the sum of stored values. Identity rows report 0,
	// matching the historic rowSum behavior for absent rows.
	Sum(rowIdx int) float64

	// SetZero clears stored values, keeping the instance.
	SetZero()

	// NumNonZeroes counts stored values that are not exactly zero.
	NumNonZeroes() int

	// NumStoredEntries counts stored associations, zeros included.
	// Identity rows count as one (their conceptual diagonal entry).
	NumStoredEntries() int

	// RowEntries returns the row's associations; zeros may be contained.
	RowEntries(rowIdx int) []RowEntry

	// SortedRowEntries is RowEntries with the result ordered by column.
	SortedRowEntries(rowIdx int) []RowEntry

	// IsApproxEqual reports whether this row and other agree entrywise
	// within eps.
	IsApproxEqual(rowIdx int, other Row, eps float64) bool

	// HasNaNInf reports whether any stored value is NaN or ±Inf.
	HasNaNInf() bool

	// Explicit distinguishes the two variants: true for SparseRow,
	// false for the implicit identity row.
	Explicit() bool
}

// ---------- explicit variant ----------

// SparseRow is an explicit row: a column-sorted slice of associations.
// The zero value is an empty row, ready to use.
type SparseRow struct {
	entries []RowEntry // sorted by Col, columns unique
}

// Compile-time conformance checks for both variants.
var (
	_ Row = (*SparseRow)(nil)
	_ Row = (*identityRow)(nil)
)

// NewSparseRow returns an empty explicit row.
func NewSparseRow() *SparseRow { return &SparseRow{} }

// find locates col in the sorted entries.
// Returns the insertion position and whether the column is present.
// Complexity: O(log len).
func (r *SparseRow) find(col int) (int, bool) {
	pos := sort.Search(len(r.entries), func(k int) bool { return r.entries[k].Col >= col })

	return pos, pos < len(r.entries) && r.entries[pos].Col == col
}

// insertAt splices e into position pos, keeping the column order.
// Complexity: O(len) due to the shift.
func (r *SparseRow) insertAt(pos int, e RowEntry) {
	r.entries = append(r.entries, RowEntry{})
	copy(r.entries[pos+1:], r.entries[pos:])
	r.entries[pos] = e
}

// Get returns the value at col, zero when no association is stored.
// Complexity: O(log len).
func (r *SparseRow) Get(_, col int) float64 {
	if pos, ok := r.find(col); ok {
		return r.entries[pos].Value
	}

	return 0
}

// Set assigns v at col, storing it even when v is zero (EraseZeroEntries
// compacts such stubs later). Never fails on an explicit row.
// Complexity: O(len) worst case (insertion shift).
func (r *SparseRow) Set(_, col int, v float64) error {
	pos, ok := r.find(col)
	if ok {
		r.entries[pos].Value = v

		return nil
	}
	r.insertAt(pos, RowEntry{Col: col, Value: v})

	return nil
}

// Add accumulates v at col. Adding an exact zero to an absent association
// is a no-op so assembly passes do not materialize junk entries.
// Complexity: O(len) worst case.
func (r *SparseRow) Add(_, col int, v float64) error {
	pos, ok := r.find(col)
	if ok {
		r.entries[pos].Value += v

		return nil
	}
	if v == 0 {
		return nil
	}
	r.insertAt(pos, RowEntry{Col: col, Value: v})

	return nil
}

// Mult returns the dot product with arg. Caller guarantees that every
// stored column is within len(arg).
// Complexity: O(len).
func (r *SparseRow) Mult(arg []float64, _ int) float64 {
	var s float64
	for k := range r.entries {
		s += r.entries[k].Value * arg[r.entries[k].Col]
	}

	return s
}

// Scale multiplies every stored value by factor. Complexity: O(len).
func (r *SparseRow) Scale(_ int, factor float64) {
	for k := range r.entries {
		r.entries[k].Value *= factor
	}
}

// Sum returns the sum of stored values. Complexity: O(len).
func (r *SparseRow) Sum(_ int) float64 {
	var s float64
	for k := range r.entries {
		s += r.entries[k].Value
	}

	return s
}

// SetZero drops all associations, keeping the backing capacity.
func (r *SparseRow) SetZero() { r.entries = r.entries[:0] }

// NumNonZeroes counts stored values that are not exactly zero.
func (r *SparseRow) NumNonZeroes() int {
	n := 0
	for k := range r.entries {
		if r.entries[k].Value != 0 {
			n++
		}
	}

	return n
}

// NumStoredEntries counts stored associations, zero-valued stubs included.
func (r *SparseRow) NumStoredEntries() int { return len(r.entries) }

// RowEntries returns a copy of the stored associations.
func (r *SparseRow) RowEntries(_ int) []RowEntry {
	out := make([]RowEntry, len(r.entries))
	copy(out, r.entries)

	return out
}

// SortedRowEntries equals RowEntries: the sorted order is a standing
// invariant of SparseRow, not a property recomputed here.
func (r *SparseRow) SortedRowEntries(rowIdx int) []RowEntry { return r.RowEntries(rowIdx) }

// AddMultiple merges factor*other into this row with a single linear scan
// over both column-sorted association lists: for each source entry the
// destination cursor advances until its column is not smaller; a match
// accumulates, a miss splices a new entry in place.
// Complexity: O(len(this) + len(other)) plus insertion shifts.
func (r *SparseRow) AddMultiple(other *SparseRow, factor float64) {
	to := 0
	for _, e := range other.entries {
		for to < len(r.entries) && r.entries[to].Col < e.Col {
			to++
		}
		if to == len(r.entries) || r.entries[to].Col != e.Col {
			r.insertAt(to, RowEntry{Col: e.Col, Value: factor * e.Value})
		} else {
			r.entries[to].Value += factor * e.Value
		}
	}
}

// EraseZeroEntries compacts out associations whose value is exactly zero.
// Complexity: O(len).
func (r *SparseRow) EraseZeroEntries() {
	w := 0
	for k := range r.entries {
		if r.entries[k].Value != 0 {
			r.entries[w] = r.entries[k]
			w++
		}
	}
	r.entries = r.entries[:w]
}

// eraseCol removes the association at col, if any.
func (r *SparseRow) eraseCol(col int) {
	if pos, ok := r.find(col); ok {
		r.entries = append(r.entries[:pos], r.entries[pos+1:]...)
	}
}

// IsApproxEqual walks both rows in column order and compares values within
// eps; an association missing on one side compares against zero.
func (r *SparseRow) IsApproxEqual(rowIdx int, other Row, eps float64) bool {
	o, ok := other.(*SparseRow)
	if !ok {
		// Explicit vs identity: compare against the identity pattern.
		for _, e := range r.entries {
			want := other.Get(rowIdx, e.Col)
			if math.Abs(e.Value-want) > eps {
				return false
			}
		}

		return math.Abs(r.Get(rowIdx, rowIdx)-other.Get(rowIdx, rowIdx)) <= eps
	}

	a, b := r.entries, o.entries
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j >= len(b) || (i < len(a) && a[i].Col < b[j].Col):
			if math.Abs(a[i].Value) > eps {
				return false
			}
			i++
		case i >= len(a) || b[j].Col < a[i].Col:
			if math.Abs(b[j].Value) > eps {
				return false
			}
			j++
		default:
			if math.Abs(a[i].Value-b[j].Value) > eps {
				return false
			}
			i++
			j++
		}
	}

	return true
}

// HasNaNInf reports whether any stored value is NaN or ±Inf.
func (r *SparseRow) HasNaNInf() bool {
	for k := range r.entries {
		v := r.entries[k].Value
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}

	return false
}

// Explicit reports the variant: always true for SparseRow.
func (r *SparseRow) Explicit() bool { return true }

// clone returns an independent deep copy of this row.
func (r *SparseRow) clone() *SparseRow {
	cp := make([]RowEntry, len(r.entries))
	copy(cp, r.entries)

	return &SparseRow{entries: cp}
}

// ---------- implicit variant ----------

// identityRow is the implicit identity sentinel. It carries no storage of
// its own; diag points at the owning matrix's shared diagonal value, so all
// absent rows of one matrix read the same scalar and follow updates to it.
type identityRow struct {
	diag *float64
}

func (r *identityRow) Get(rowIdx, col int) float64 {
	if col == rowIdx {
		return *r.diag
	}

	return 0
}

// Set accepts only writes that change nothing: the shared diagonal value
// onto the diagonal, or zero anywhere. Everything else is a structural
// violation because there is no storage to receive it.
func (r *identityRow) Set(rowIdx, col int, v float64) error {
	if (col == rowIdx && v == *r.diag) || v == 0 {
		return nil
	}

	return ErrRowAbsent
}

// Add accepts only v == 0; see Set.
func (r *identityRow) Add(_, _ int, v float64) error {
	if v == 0 {
		return nil
	}

	return ErrRowAbsent
}

func (r *identityRow) Mult(arg []float64, rowIdx int) float64 { return *r.diag * arg[rowIdx] }

// Scale is deliberately a no-op: scaling a matrix never touches implicit
// rows nor the shared diagonal. Materialize the row first if it must scale.
func (r *identityRow) Scale(_ int, _ float64) {}

// Sum reports 0 for the implicit row, diagonal value notwithstanding.
// Historic behavior, kept for compatibility with row-sum lumping callers.
func (r *identityRow) Sum(_ int) float64 { return 0 }

func (r *identityRow) SetZero() {}

func (r *identityRow) NumNonZeroes() int {
	if *r.diag != 0 {
		return 1
	}

	return 0
}

func (r *identityRow) NumStoredEntries() int { return 1 }

func (r *identityRow) RowEntries(rowIdx int) []RowEntry {
	return []RowEntry{{Col: rowIdx, Value: *r.diag}}
}

func (r *identityRow) SortedRowEntries(rowIdx int) []RowEntry { return r.RowEntries(rowIdx) }

func (r *identityRow) IsApproxEqual(rowIdx int, other Row, eps float64) bool {
	if o, ok := other.(*identityRow); ok {
		return math.Abs(*r.diag-*o.diag) <= eps
	}

	return other.IsApproxEqual(rowIdx, r, eps)
}

func (r *identityRow) HasNaNInf() bool {
	return math.IsNaN(*r.diag) || math.IsInf(*r.diag, 0)
}

func (r *identityRow) Explicit() bool { return false }
