// SPDX-License-Identifier: MIT

// Package sparse - CSR storage and the row-building lifecycle.
//
// Purpose:
//   - Build a matrix one row at a time with O(1) amortized appends.
//   - Keep the public surface safe: every user error is a returned sentinel.
//   - Keep storage reusable: Reset and Extend never drop capacity.
//
// Complexity quicksheet:
//   - NewRow, Add: O(1) amortized; Finalize: O(nel); Reset: O(1);
//     Extend: O(extra) for reservation; At: O(row length).

package sparse

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/lsqr/reduce"
)

// ---------- error context tags ----------

const (
	ctxNew       = "New"
	ctxNewRow    = "NewRow"
	ctxAdd       = "Add"
	ctxFinalize  = "Finalize"
	ctxExtend    = "Extend"
	ctxAt        = "At"
	ctxNonempty  = "NonemptyRows"
	ctxMult      = "MultVector"
	ctxTransMult = "TransMultVector"
	ctxToDense   = "ToDense"
)

// Matrix is a row-built CSR sparse matrix.
// The zero value is not usable; construct with New.
// A Matrix is not safe for concurrent mutation.
type Matrix struct {
	finalized bool
	nl        int // declared rows
	nlCurrent int // rows opened so far
	ncolumns  int // column count recorded by the last Finalize

	sa  []float64 // stored values
	ija []int     // column of each stored value
	ijl []int     // row start offsets; nl+1 entries once finalized

	reducer reduce.Reducer
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Matrix)(nil)

// New creates an empty matrix that will hold nl rows.
// MAIN DESCRIPTION:
//   - Allocates row-offset storage for nl rows and, when WithCapacity is
//     given, element storage for nnz entries.
//
// Behavior highlights:
//   - nl == 0 is legal: such a matrix can be finalized immediately and later
//     grown with Extend.
//
// Errors:
//   - ErrBadShape when nl < 0.
//
// Complexity:
//   - Time O(1), Space O(nl + nnz) reserved.
func New(nl int, opts ...Option) (*Matrix, error) {
	if nl < 0 {
		return nil, methodErrorf(ctxNew, fmt.Errorf("nl=%d: %w", nl, ErrBadShape))
	}
	o := gatherOptions(opts...)

	return &Matrix{
		nl:      nl,
		sa:      make([]float64, 0, o.capacity),
		ija:     make([]int, 0, o.capacity),
		ijl:     make([]int, 0, nl+1),
		reducer: o.reducer,
	}, nil
}

// NewRow opens the next row; subsequent Add calls append to it.
// Errors: ErrFinalized, ErrRowOverflow when all nl rows are already open.
// Complexity: O(1) amortized.
func (m *Matrix) NewRow() error {
	if err := validateBuilding(m); err != nil {
		return methodErrorf(ctxNewRow, err)
	}
	if m.nlCurrent >= m.nl {
		return methodErrorf(ctxNewRow, fmt.Errorf("row %d of %d: %w", m.nlCurrent+1, m.nl, ErrRowOverflow))
	}
	m.ijl = append(m.ijl, len(m.sa))
	m.nlCurrent++

	return nil
}

// Add appends value at column to the current row.
// MAIN DESCRIPTION:
//   - Stores (value, column) at the end of the row opened by the last NewRow.
//
// Behavior highlights:
//   - value == 0 is accepted and not stored.
//   - Duplicate columns are not merged; order within a row is append order.
//   - The upper column bound is checked at Finalize, when it is known.
//
// Errors:
//   - ErrFinalized, ErrNoRow before the first NewRow, ErrColumnOutOfRange
//     for column < 0.
//
// Complexity:
//   - Time O(1) amortized.
func (m *Matrix) Add(value float64, column int) error {
	if err := validateBuilding(m); err != nil {
		return methodErrorf(ctxAdd, err)
	}
	if m.nlCurrent == 0 {
		return methodErrorf(ctxAdd, ErrNoRow)
	}
	if column < 0 {
		return methodErrorf(ctxAdd, fmt.Errorf("column %d: %w", column, ErrColumnOutOfRange))
	}
	if value == 0 {
		return nil
	}
	m.sa = append(m.sa, value)
	m.ija = append(m.ija, column)

	return nil
}

// Finalize closes the build phase.
// Implementation:
//   - Stage 1: require every declared row to be open (ErrRowCount).
//   - Stage 2: record the end offset of the last row.
//   - Stage 3: validate every stored column against ncolumns.
//
// Behavior highlights:
//   - Calling Finalize on an already finalized matrix re-validates the
//     stored columns against the new ncolumns and records it.
//   - On a validation failure the matrix stays in the building phase.
//
// Errors:
//   - ErrBadShape (ncolumns < 0), ErrRowCount, ErrColumnOutOfRange.
//
// Complexity:
//   - Time O(nel).
func (m *Matrix) Finalize(ncolumns int) error {
	if m == nil {
		return methodErrorf(ctxFinalize, ErrNilMatrix)
	}
	if ncolumns < 0 {
		return methodErrorf(ctxFinalize, fmt.Errorf("ncolumns=%d: %w", ncolumns, ErrBadShape))
	}
	if m.nlCurrent != m.nl {
		return methodErrorf(ctxFinalize, fmt.Errorf("opened %d of %d rows: %w", m.nlCurrent, m.nl, ErrRowCount))
	}
	if !m.finalized {
		m.ijl = append(m.ijl[:m.nl], len(m.sa))
	}
	if err := validateColumns(m, ncolumns); err != nil {
		if !m.finalized {
			m.ijl = m.ijl[:m.nl]
		}

		return methodErrorf(ctxFinalize, err)
	}
	m.ncolumns = ncolumns
	m.finalized = true

	return nil
}

// Extend reopens a finalized matrix for extraRows more rows and reserves
// storage for extraNonzeros more elements. Existing rows are preserved; the
// caller adds the new rows with NewRow/Add and finalizes again.
// Errors: ErrNotFinalized, ErrBadShape for negative arguments.
// Complexity: O(extraRows + extraNonzeros) when storage has to grow.
func (m *Matrix) Extend(extraRows, extraNonzeros int) error {
	if err := validateFinalized(m); err != nil {
		return methodErrorf(ctxExtend, err)
	}
	if extraRows < 0 || extraNonzeros < 0 {
		return methodErrorf(ctxExtend, fmt.Errorf("extra rows=%d nonzeros=%d: %w", extraRows, extraNonzeros, ErrBadShape))
	}
	m.finalized = false
	m.ijl = slices.Grow(m.ijl[:m.nl], extraRows+1)
	m.nl += extraRows
	m.sa = slices.Grow(m.sa, extraNonzeros)
	m.ija = slices.Grow(m.ija, extraNonzeros)

	return nil
}

// Reset empties the matrix for a rebuild with the same row count.
// Capacity is kept, the column count is forgotten.
// Complexity: O(1).
func (m *Matrix) Reset() {
	m.finalized = false
	m.nlCurrent = 0
	m.ncolumns = 0
	m.sa = m.sa[:0]
	m.ija = m.ija[:0]
	m.ijl = m.ijl[:0]
}

// At returns the value stored at (row, col), or 0 if none is stored.
// With duplicate entries the first one in the row wins.
// Errors: ErrNotFinalized, ErrOutOfRange.
// Complexity: O(row length).
func (m *Matrix) At(row, col int) (float64, error) {
	if err := validateFinalized(m); err != nil {
		return 0, methodErrorf(ctxAt, err)
	}
	if row < 0 || row >= m.nl || col < 0 || col >= m.ncolumns {
		return 0, methodErrorf(ctxAt, fmt.Errorf("(%d,%d) in %dx%d: %w", row, col, m.nl, m.ncolumns, ErrOutOfRange))
	}
	for k := m.ijl[row]; k < m.ijl[row+1]; k++ {
		if m.ija[k] == col {
			return m.sa[k], nil
		}
	}

	return 0, nil
}

// NonemptyRows returns the number of rows holding at least one element.
// Errors: ErrNotFinalized.
func (m *Matrix) NonemptyRows() (int, error) {
	if err := validateFinalized(m); err != nil {
		return 0, methodErrorf(ctxNonempty, err)
	}
	n := 0
	for i := 0; i < m.nl; i++ {
		if m.ijl[i] != m.ijl[i+1] {
			n++
		}
	}

	return n, nil
}

// NumberElements returns the number of stored elements.
func (m *Matrix) NumberElements() int { return len(m.sa) }

// CurrentRows returns the number of rows opened so far.
func (m *Matrix) CurrentRows() int { return m.nlCurrent }

// TotalRows returns the declared number of rows.
func (m *Matrix) TotalRows() int { return m.nl }

// Columns returns the column count recorded by the last successful
// Finalize (0 before the first one and after Reset).
func (m *Matrix) Columns() int { return m.ncolumns }

// Finalized reports whether the matrix is finalized.
func (m *Matrix) Finalized() bool { return m.finalized }

// Reducer returns the reducer of the partition this matrix belongs to.
func (m *Matrix) Reducer() reduce.Reducer { return m.reducer }

// Values returns a copy of the stored values.
func (m *Matrix) Values() []float64 { return slices.Clone(m.sa) }

// ColumnIndices returns a copy of the column index of each stored value.
func (m *Matrix) ColumnIndices() []int { return slices.Clone(m.ija) }

// RowOffsets returns a copy of the row offsets (nl+1 entries once finalized).
func (m *Matrix) RowOffsets() []int { return slices.Clone(m.ijl) }

// String implements fmt.Stringer with a one-line summary.
func (m *Matrix) String() string {
	return fmt.Sprintf("sparse.Matrix{rows: %d/%d, cols: %d, nnz: %d, finalized: %t}",
		m.nlCurrent, m.nl, m.ncolumns, len(m.sa), m.finalized)
}
