// SPDX-License-Identifier: MIT

package vector

import (
	"fmt"
	"math"
)

// Point is a 3D point. Equality (==) is exact per field.
type Point struct {
	X, Y, Z float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Scale returns s*p.
func (p Point) Scale(s float64) Point {
	return Point{s * p.X, s * p.Y, s * p.Z}
}

// Dot returns the scalar product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Norm returns the Euclidean length of p.
func (p Point) Norm() float64 {
	return math.Sqrt(p.Dot(p))
}

// String implements fmt.Stringer.
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}
