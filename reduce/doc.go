// SPDX-License-Identifier: MIT

// Package reduce provides the collective operations used by the
// column-partitioned LSQR solver.
//
// A Reducer is injected into sparse matrices and solvers at construction
// time. Two implementations ship with the package:
//
//   - Local: a single participant; every collective is an identity.
//   - Group: n in-process members that rendezvous on every collective,
//     one goroutine per member (see Run).
//
// Contract shared by all implementations:
//   - Every member must issue the same collectives in the same order.
//     A collective returns only after all members have entered it, which
//     makes each call an implicit barrier.
//   - Reductions are combined in rank order, so results are identical on
//     every member and independent of goroutine scheduling.
//
// Partition helpers (TotalElements, Offset, SplitEven) describe how the
// model-parameter (column) space is split into contiguous slices.
package reduce
