// SPDX-License-Identifier: MIT

package solver

import (
	"errors"
	"fmt"
)

// Sentinel errors. Messages carry the "solver: " prefix; call sites wrap
// them with the method name and callers match with errors.Is.
var (
	// ErrBadShape is returned by New for negative dimensions.
	ErrBadShape = errors.New("solver: invalid shape")

	// ErrDimensionMismatch is returned when b, x or the matrix do not match
	// the dimensions the solver was created for.
	ErrDimensionMismatch = errors.New("solver: dimension mismatch")

	// ErrNotFinalized is returned for a nil or unfinalized matrix.
	ErrNotFinalized = errors.New("solver: matrix not finalized")
)

// StopReason tells why Solve returned.
type StopReason int

const (
	// StopConverged: the relative residual dropped to rmin or below.
	StopConverged StopReason = iota + 1
	// StopIterationLimit: niter iterations ran without reaching rmin.
	StopIterationLimit
	// StopEmptyMatrix: the matrix stores no elements; x is untouched.
	StopEmptyMatrix
	// StopZeroRHS: ‖b‖ = 0; x is untouched.
	StopZeroRHS
	// StopZeroGradient: Aᵗb = 0, so x = 0 is a least-squares solution.
	StopZeroGradient
	// StopZeroRho: ρ = 0 inside the loop; the last update was skipped.
	StopZeroRho
	// StopSmallRhoBar: |ρ̄| fell below 1e-30, the solution is (numerically) exact.
	StopSmallRhoBar
)

var stopReasonNames = map[StopReason]string{
	StopConverged:      "converged",
	StopIterationLimit: "iteration-limit",
	StopEmptyMatrix:    "empty-matrix",
	StopZeroRHS:        "zero-rhs",
	StopZeroGradient:   "zero-gradient",
	StopZeroRho:        "zero-rho",
	StopSmallRhoBar:    "small-rhobar",
}

// String implements fmt.Stringer.
func (r StopReason) String() string {
	if s, ok := stopReasonNames[r]; ok {
		return s
	}

	return fmt.Sprintf("StopReason(%d)", int(r))
}

// Degenerate reports whether the solve ended on a degenerate condition
// rather than on the residual or iteration criteria.
func (r StopReason) Degenerate() bool {
	return r != StopConverged && r != StopIterationLimit
}

// Result summarizes a Solve call.
type Result struct {
	// Iterations is the number of completed iterations (x updates).
	Iterations int
	// Residual is the last relative residual ‖b−Ax‖/‖b‖ estimate.
	Residual float64
	// Reason is why the iteration stopped.
	Reason StopReason
	// History holds Residual after every iteration when WithHistory is set.
	History []float64
}
