// Package sparsemat is an in-memory substrate for large, mostly-zero
// matrices — assembly, structural editing, and fast multiplication.
//
// 🚀 What is sparsemat?
//
//	A small, deterministic library that brings together:
//		• Row-indexed storage: explicit sparse rows + implicit identity rows
//		• Triplet (COO) assembly: O(1) appends, duplicate-tolerant, consolidation
//		• Sub-block views: assemble rectangular blocks into one shared matrix
//		• Compressed formats: CSR/CSC with a linear-time counting-sort conversion
//
// ✨ Why choose sparsemat?
//
//   - Assembly-first – append unordered, duplicated contributions freely,
//     consolidate or convert once, multiply many times
//   - Rock-solid guarantees – sentinel errors, no panics on user input,
//     deterministic loop orders everywhere
//   - Pure Go – no cgo, no hidden deps
//
// Everything is organized under two subpackages:
//
//	sparse/ — Row, RowMatrix, SparseMatrix, TripletMatrix (+ block views),
//	          CSRMatrix/CSCMatrix and the triplet→compressed conversion
//	grid/   — minimal rectangular-grid size descriptor used to size
//	          square matrices by node count
//
// Quick flow:
//
//	producers ──Add──▶ TripletMatrix ──SumDuplicates──▶ consolidated COO
//	                        │                                │
//	                 ToSparseMatrix                   NewCSRFromTriplet
//	                        ▼                                ▼
//	                 SparseMatrix (edit)              CSRMatrix (Apply)
//
// Start with sparse.NewTripletMatrix, assemble, then pick your format.
package sparsemat
