// SPDX-License-Identifier: MIT

package vector

import "gonum.org/v1/gonum/floats"

// Scaled returns s*x as a new slice.
func Scaled(x []float64, s float64) []float64 {
	out := make([]float64, len(x))
	floats.ScaleTo(out, s, x)

	return out
}

// Sum returns x + y as a new slice.
func Sum(x, y []float64) ([]float64, error) {
	if len(x) != len(y) {
		return nil, mismatchf("Sum", len(x), len(y))
	}
	out := make([]float64, len(x))
	floats.AddTo(out, x, y)

	return out, nil
}

// Combined returns a*x + b*y as a new slice.
func Combined(a float64, x []float64, b float64, y []float64) ([]float64, error) {
	if len(x) != len(y) {
		return nil, mismatchf("Combined", len(x), len(y))
	}
	out := make([]float64, len(x))
	floats.ScaleTo(out, a, x)
	floats.AddScaled(out, b, y)

	return out, nil
}

// Dot returns the scalar product of x and y.
func Dot(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, mismatchf("Dot", len(x), len(y))
	}

	return floats.Dot(x, y), nil
}
