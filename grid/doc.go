// Package grid models a rectangular lattice of nodes and numbers them
// row-major, the shape information sparse system matrices are sized from.
//
// What:
//
//   - Rect describes a numX×numY node lattice with O(1) index/coordinate
//     translation and bounds queries.
//   - Rect satisfies sparse.NodeCounter, so a system matrix can be sized
//     directly from the mesh: sparse.NewSparseMatrixFromGrid(rect).
//   - AssembleLaplacian fills a sparse.TripletMatrix with the standard
//     5-point finite-difference stencil over the lattice, the canonical
//     assembly workload.
//
// Why:
//
//   - Discretized PDE work sizes its operators from a mesh, not from raw
//     integers; keeping that translation here keeps matrix code shape-free.
//
// Complexity:
//
//   - NodeIndex / Coords / InBounds: O(1).
//   - AssembleLaplacian: O(numX×numY) appended triples.
//
// Errors:
//
//   - ErrEmptyGrid: a dimension below one node.
//   - ErrNodeOutOfRange: coordinate or node index outside the lattice.
package grid
