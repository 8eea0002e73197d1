// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set.
// All methods return these sentinels (wrapped with method context) and tests
// match them via errors.Is. No method panics on user-triggered conditions.

package sparse

import "errors"

// Every message is prefixed with "sparse: ..." so log lines can be grepped.
// Call sites wrap with fmt.Errorf("Matrix.<Method>: %w", ErrX).

var (
	// ErrBadShape is returned for negative row, column or capacity counts.
	ErrBadShape = errors.New("sparse: invalid shape")

	// ErrFinalized is returned by NewRow/Add on a finalized matrix.
	ErrFinalized = errors.New("sparse: matrix already finalized")

	// ErrNotFinalized is returned by products, queries and Extend on a matrix
	// that has not been finalized.
	ErrNotFinalized = errors.New("sparse: matrix not finalized")

	// ErrNoRow is returned by Add before the first NewRow.
	ErrNoRow = errors.New("sparse: no row opened")

	// ErrRowOverflow is returned by NewRow when all declared rows are open.
	ErrRowOverflow = errors.New("sparse: more rows than declared")

	// ErrRowCount is returned by Finalize when fewer rows were opened than
	// declared.
	ErrRowCount = errors.New("sparse: wrong total number of rows")

	// ErrColumnOutOfRange signals a stored column index outside [0, ncolumns).
	ErrColumnOutOfRange = errors.New("sparse: column index out of range")

	// ErrOutOfRange signals a query index (At, triplets) outside the matrix.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrDimensionMismatch indicates a vector whose length does not match the
	// matrix dimension it is multiplied against.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrNilMatrix indicates a nil *Matrix or nil mat.Matrix argument.
	ErrNilMatrix = errors.New("sparse: nil matrix")
)
