// SPDX-License-Identifier: MIT

// Package sparse provides a compressed-sparse-row (CSR) matrix built row by
// row, together with the two products an iterative least-squares solver
// needs: A·x and Aᵗ·y.
//
// Lifecycle:
//
//	building ──Finalize──▶ finalized ──Extend──▶ building (more rows)
//	    ▲                                            │
//	    └──────────────────── Reset ◀────────────────┘
//
// While building, NewRow opens the next row and Add appends entries to it.
// Finalize checks that every declared row was opened and that every stored
// column index is below the column count; only a finalized matrix can be
// multiplied, queried or extended.
//
// Storage layout:
//   - sa  values of stored entries, in insertion order;
//   - ija column index of each stored entry;
//   - ijl row offsets: row i occupies sa[ijl[i]:ijl[i+1]], len(ijl) == nl+1
//     once finalized.
//
// Exact zero values are never stored. Duplicate (row, column) entries are
// kept as they are; products sum them, At returns the first.
//
// In column-partitioned mode each member of a reduce.Reducer holds every row
// but only its own contiguous slice of columns, indexed locally. A·x then
// yields this member's partial contribution to the global product; the
// caller sums contributions with the reducer. Aᵗ·y needs no reduction.
//
// Interop with gonum: ToDense exports to *mat.Dense, FromDense imports any
// mat.Matrix, FromTriplets builds from coordinate triplets.
package sparse
