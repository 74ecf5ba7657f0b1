// SPDX-License-Identifier: MIT

package grid

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/sparsemat/sparse"
)

// Sentinel errors for grid operations.
var (
	// ErrEmptyGrid indicates a lattice dimension below one node.
	ErrEmptyGrid = errors.New("grid: lattice must have at least one node in each direction")
	// ErrNodeOutOfRange indicates a coordinate or node index outside the lattice.
	ErrNodeOutOfRange = errors.New("grid: node out of range")
)

// neighborOffsets is the 4-neighborhood of the 5-point stencil: W, E, S, N.
var neighborOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Rect is a numX×numY node lattice, immutable once built. Nodes are
// numbered row-major: index = y*numX + x.
type Rect struct {
	numX, numY int
}

var _ sparse.NodeCounter = (*Rect)(nil)

// NewRect constructs a lattice with numX nodes per row and numY rows.
func NewRect(numX, numY int) (*Rect, error) {
	if numX < 1 || numY < 1 {
		return nil, fmt.Errorf("NewRect(%d,%d): %w", numX, numY, ErrEmptyGrid)
	}

	return &Rect{numX: numX, numY: numY}, nil
}

// NumX returns the node count per row. Complexity: O(1).
func (r *Rect) NumX() int { return r.numX }

// NumY returns the row count. Complexity: O(1).
func (r *Rect) NumY() int { return r.numY }

// NumberOfNodes returns numX*numY, the dimension of a system matrix over
// this lattice.
func (r *Rect) NumberOfNodes() int { return r.numX * r.numY }

// InBounds reports whether (x, y) lies on the lattice.
// Complexity: O(1).
func (r *Rect) InBounds(x, y int) bool {
	return x >= 0 && x < r.numX && y >= 0 && y < r.numY
}

// NodeIndex translates lattice coordinates to the row-major node index.
func (r *Rect) NodeIndex(x, y int) (int, error) {
	if !r.InBounds(x, y) {
		return 0, fmt.Errorf("Rect.NodeIndex(%d,%d): %w", x, y, ErrNodeOutOfRange)
	}

	return y*r.numX + x, nil
}

// Coords translates a row-major node index back to lattice coordinates.
func (r *Rect) Coords(index int) (x, y int, err error) {
	if index < 0 || index >= r.NumberOfNodes() {
		return 0, 0, fmt.Errorf("Rect.Coords(%d): %w", index, ErrNodeOutOfRange)
	}

	return index % r.numX, index / r.numX, nil
}

// BoundaryMask returns a per-node mask with true on lattice-boundary nodes,
// ready for the masked matrix-vector products.
// Complexity: O(numX×numY).
func (r *Rect) BoundaryMask() sparse.BitMask {
	mask := make(sparse.BitMask, r.NumberOfNodes())
	for y := 0; y < r.numY; y++ {
		for x := 0; x < r.numX; x++ {
			if x == 0 || y == 0 || x == r.numX-1 || y == r.numY-1 {
				mask[y*r.numX+x] = true
			}
		}
	}

	return mask
}

// AssembleLaplacian appends the 5-point finite-difference Laplacian over
// the lattice into t: each node contributes its in-bounds neighbor count on
// the diagonal and -1 per neighbor. t must be N×N for N = NumberOfNodes.
// Complexity: O(numX×numY) appended triples.
func (r *Rect) AssembleLaplacian(t *sparse.TripletMatrix) error {
	n := r.NumberOfNodes()
	if t.NumRows() != n || t.NumCols() != n {
		return fmt.Errorf("Rect.AssembleLaplacian: matrix %dx%d for %d nodes: %w",
			t.NumRows(), t.NumCols(), n, sparse.ErrDimensionMismatch)
	}
	for y := 0; y < r.numY; y++ {
		for x := 0; x < r.numX; x++ {
			node := y*r.numX + x
			deg := 0
			for _, d := range neighborOffsets {
				nx, ny := x+d[0], y+d[1]
				if !r.InBounds(nx, ny) {
					continue
				}
				deg++
				if err := t.Add(node, ny*r.numX+nx, -1); err != nil {
					return err
				}
			}
			if err := t.Add(node, node, float64(deg)); err != nil {
				return err
			}
		}
	}

	return nil
}
