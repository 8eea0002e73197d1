// SPDX-License-Identifier: MIT

package vector

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lsqr/reduce"
)

// ErrDimensionMismatch indicates operands of different lengths.
var ErrDimensionMismatch = errors.New("vector: dimension mismatch")

// mismatchf wraps ErrDimensionMismatch with the operation and both lengths.
func mismatchf(op string, nx, ny int) error {
	return fmt.Errorf("%s(len %d, len %d): %w", op, nx, ny, ErrDimensionMismatch)
}

// NormSquared returns the sum of squares of x, accumulated in index order.
func NormSquared(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v * v
	}

	return s
}

// Norm returns the Euclidean norm of x.
func Norm(x []float64) float64 {
	return math.Sqrt(NormSquared(x))
}

// NormParallel returns the Euclidean norm of the vector distributed over the
// members of r, x being this member's slice. The local sum of squares is
// summed across members before the square root. It is a collective.
func NormParallel(x []float64, r reduce.Reducer) (float64, error) {
	if r == nil {
		return Norm(x), nil
	}
	buf := []float64{NormSquared(x)}
	if err := r.AllReduceSum(buf); err != nil {
		return 0, fmt.Errorf("NormParallel: %w", err)
	}

	return math.Sqrt(buf[0]), nil
}

// Multiply scales x by s in place.
func Multiply(x []float64, s float64) {
	floats.Scale(s, x)
}

// Add computes x += y in place.
func Add(x, y []float64) error {
	if len(x) != len(y) {
		return mismatchf("Add", len(x), len(y))
	}
	floats.Add(x, y)

	return nil
}

// Transform computes x = a*x + b*y in place.
func Transform(a float64, x []float64, b float64, y []float64) error {
	if len(x) != len(y) {
		return mismatchf("Transform", len(x), len(y))
	}
	floats.Scale(a, x)
	floats.AddScaled(x, b, y)

	return nil
}

// Normalize scales x to unit norm in place and returns the norm it had.
// If the norm is exactly zero, x is left untouched and ok is false.
func Normalize(x []float64) (norm float64, ok bool) {
	norm = Norm(x)
	if norm == 0 {
		return 0, false
	}
	floats.Scale(1/norm, x)

	return norm, true
}

// NormalizeParallel is Normalize with the norm reduced across r (see
// NormParallel). ok is false when the global norm is zero.
func NormalizeParallel(x []float64, r reduce.Reducer) (norm float64, ok bool, err error) {
	norm, err = NormParallel(x, r)
	if err != nil {
		return 0, false, err
	}
	if norm == 0 {
		return 0, false, nil
	}
	floats.Scale(1/norm, x)

	return norm, true, nil
}
