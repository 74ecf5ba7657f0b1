// SPDX-License-Identifier: MIT

// Package sparse: domain types shared by all matrix kinds.
// This file intentionally contains ONLY domain-facing types (the Matrix
// contract, entry/mask value types, enumerated policies). Errors and options
// live in dedicated files (errors.go, options.go) per the global conventions.
package sparse

// RowEntry is one stored association of a sparse row: column index plus
// value. Slices of RowEntry returned by SortedRowEntries are ordered by Col.
type RowEntry struct {
	Col   int     // column index, 0-based
	Value float64 // stored coefficient
}

// BitMask selects rows for masked multiplication. Index i corresponds to
// matrix row i; by convention a set bit marks a boundary row and a clear bit
// an interior row. Length must equal the matrix row count.
type BitMask []bool

// NodeCounter is the construction-from-grid collaborator contract: anything
// that knows its node (degree-of-freedom) count can size a square matrix.
// grid.Rect satisfies it; so does any mesh object of the caller's own.
type NodeCounter interface {
	// NumberOfNodes returns the number of nodes / degrees of freedom.
	NumberOfNodes() int
}

// CopyMode enumerates the supported copy policies of Clone and the copying
// constructors. Any other value yields ErrUnsupportedCopyMode.
type CopyMode uint8

const (
	// DeepCopy duplicates storage: the result is fully independent.
	DeepCopy CopyMode = iota

	// StructCopy copies only the shape: same dimensions, all rows empty
	// (or zero stored entries), source content discarded.
	StructCopy

	// FlatCopy aliases the source's storage. The result borrows: it must
	// not outlive the source and never frees what it borrowed.
	FlatCopy
)

// String returns the mnemonic name of the copy mode.
func (c CopyMode) String() string {
	switch c {
	case DeepCopy:
		return "DeepCopy"
	case StructCopy:
		return "StructCopy"
	case FlatCopy:
		return "FlatCopy"
	default:
		return "CopyMode(?)"
	}
}

// Matrix is the generic contract every matrix kind in this package
// satisfies. It is what callers outside the core program against.
//
// Ownership note: Clone(FlatCopy) returns a borrowing instance sharing the
// receiver's storage; the caller must keep the receiver alive for the
// clone's lifetime. Concurrent read-only use (multiple Apply calls) is safe;
// concurrent mutation is not.
type Matrix interface {
	// NumRows returns the number of rows. Complexity: O(1).
	NumRows() int

	// NumCols returns the number of columns. Complexity: O(1).
	NumCols() int

	// At retrieves the entry at (i, j); absent entries read as zero
	// (or as the shared diagonal value on implicit identity rows).
	At(i, j int) (float64, error)

	// Set assigns v at (i, j).
	Set(i, j int, v float64) error

	// Add accumulates v into (i, j).
	Add(i, j int, v float64) error

	// Apply computes dest = M·arg. len(arg) must equal NumCols and
	// len(dest) must equal NumRows, else ErrDimensionMismatch.
	Apply(arg, dest []float64) error

	// ApplyAdd computes dest += M·arg with the same shape contract.
	ApplyAdd(arg, dest []float64) error

	// SetZero clears all stored values, keeping the shape.
	SetZero()

	// Clone copies the matrix under the given policy.
	Clone(mode CopyMode) (Matrix, error)

	// TransposeTo zeroes target and writes the transpose of the receiver
	// into it. target must be NumCols×NumRows.
	TransposeTo(target Matrix) error
}
