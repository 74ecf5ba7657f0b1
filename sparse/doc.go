// Package sparse implements the sparse-matrix substrate for assembled
// linear systems: row-indexed storage with implicit identity rows, an
// explicit-storage editor, an append-only triplet assembler with sub-block
// views, and a compressed CSR/CSC pair for fast products.
//
// What:
//
//   - Row / SparseRow / identityRow: one matrix row as a column-sorted
//     association list, or the shared implicit diagonal placeholder.
//   - RowMatrix: rows indexed by position, absent rows read as the
//     identity row scaled by a configurable diagonal value (default 1).
//   - SparseMatrix: RowMatrix with every row explicit, plus structural
//     edits (insert/remove rows, merge rows/columns, collapse a degree of
//     freedom) and three copy policies (deep, struct, flat).
//   - TripletMatrix: unordered COO multiset with O(1) appends, duplicate
//     consolidation, and offset block views (TripletBlock,
//     TripletBlockUpperTriangle).
//   - CSRMatrix / CSCMatrix: compressed storage built from a triplet
//     matrix by a three-pass counting sort, O(nnz + dim), slices sorted.
//   - Masked products: ApplyMasked/ApplyAddMasked process excluded rows as
//     the numeric identity, the boundary-condition trick.
//
// Why:
//
//   - Assembly wants cheap appends, editing wants per-row association
//     lists, multiplication wants compressed slices. One format cannot do
//     all three well, so the package offers the pipeline
//     TripletMatrix → SparseMatrix / CSRMatrix / CSCMatrix.
//
// Semantics worth knowing:
//
//   - Writes to an implicit row of a RowMatrix fail with ErrRowAbsent
//     unless they restate the identity content.
//   - Set stores exact zeros; Add elides them. EraseZeroEntries and
//     SumDuplicates remove every exact zero physically.
//   - FlatCopy borrows storage and must not outlive its source.
//
// Errors:
//
//   - Sentinels in errors.go (ErrOutOfRange, ErrRowAbsent,
//     ErrDimensionMismatch, ...) are wrapped with method context; match
//     with errors.Is.
//
// Determinism:
//
//   - Every traversal runs in a fixed order; equal inputs give bitwise
//     equal outputs.
package sparse
