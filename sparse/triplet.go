// SPDX-License-Identifier: MIT

package sparse

import (
	"cmp"
	"fmt"
	"slices"
)

const ctxFromTriplets = "FromTriplets"

// Triplet is one (row, column, value) entry in coordinate form.
type Triplet struct {
	Row, Col int
	Value    float64
}

// FromTriplets builds a finalized rows×cols matrix from coordinate entries.
// Entries are grouped by row with a stable sort, so within a row they keep
// their input order; duplicates are kept and zeros skipped, as with Add.
// The input slice is not modified.
// Errors: ErrBadShape for negative dimensions, ErrOutOfRange for an entry
// outside the matrix.
// Complexity: O(n log n + rows).
func FromTriplets(rows, cols int, ts []Triplet, opts ...Option) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%s(%d,%d): %w", ctxFromTriplets, rows, cols, ErrBadShape)
	}
	for idx, t := range ts {
		if t.Row < 0 || t.Row >= rows || t.Col < 0 || t.Col >= cols {
			return nil, fmt.Errorf("%s: entry %d at (%d,%d): %w", ctxFromTriplets, idx, t.Row, t.Col, ErrOutOfRange)
		}
	}
	sorted := slices.Clone(ts)
	slices.SortStableFunc(sorted, func(a, b Triplet) int { return cmp.Compare(a.Row, b.Row) })

	m, err := New(rows, append([]Option{WithCapacity(len(ts))}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxFromTriplets, err)
	}
	k := 0
	for i := 0; i < rows; i++ {
		if err = m.NewRow(); err != nil {
			return nil, fmt.Errorf("%s: %w", ctxFromTriplets, err)
		}
		for ; k < len(sorted) && sorted[k].Row == i; k++ {
			if err = m.Add(sorted[k].Value, sorted[k].Col); err != nil {
				return nil, fmt.Errorf("%s: %w", ctxFromTriplets, err)
			}
		}
	}
	if err = m.Finalize(cols); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxFromTriplets, err)
	}

	return m, nil
}
