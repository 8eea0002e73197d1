// SPDX-License-Identifier: MIT

// Package vector holds the value types and vector arithmetic used by the
// LSQR solver.
//
// A vector is a plain []float64. Functions named after a verb (Multiply,
// Add, Transform, Normalize) mutate their first argument in place; the
// noun-named variants (Scaled, Sum, Combined) allocate and leave their
// inputs untouched.
//
// Norms accumulate squares in index order with no rescaling, so results are
// reproducible bit for bit. NormParallel and NormalizeParallel reduce the
// local sum of squares across the members of a reduce.Reducer before taking
// the square root; with reduce.Local they are equivalent to Norm and
// Normalize.
package vector
