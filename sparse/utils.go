// SPDX-License-Identifier: MIT

package sparse

import (
	"golang.org/x/exp/constraints"
)

// minv returns the smaller of a and b.
func minv[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}

	return b
}

// maxv returns the larger of a and b.
func maxv[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}

	return b
}
