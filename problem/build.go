// SPDX-License-Identifier: MIT

package problem

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/lsqr/reduce"
	"github.com/katalvlaran/lsqr/sparse"
)

// Local is one member's share of a problem: every row, restricted to the
// contiguous column slice [Offset, Offset+Count) and re-indexed locally.
type Local struct {
	M      *sparse.Matrix
	B      []float64 // full right-hand side, owned by this member
	Offset int
	Count  int
}

// Build assembles the local system for member r (nil means serial). Column
// slices come from reduce.SplitEven.
func (p *Problem) Build(r reduce.Reducer) (*Local, error) {
	r = reduce.Or(r)
	off, cnt, err := reduce.SplitEven(p.Columns, r.Size(), r.Rank())
	if err != nil {
		return nil, fmt.Errorf("Problem.Build: %w", err)
	}

	capacity := p.Nonzeros()
	if r.Size() > 1 {
		capacity = capacity/r.Size() + 1
	}
	m, err := sparse.New(len(p.Rows), sparse.WithCapacity(capacity), sparse.WithReducer(r))
	if err != nil {
		return nil, fmt.Errorf("Problem.Build: %w", err)
	}
	for _, row := range p.Rows {
		if err = m.NewRow(); err != nil {
			return nil, fmt.Errorf("Problem.Build: %w", err)
		}
		for k, c := range row.Columns {
			if c < off || c >= off+cnt {
				continue
			}
			if err = m.Add(row.Values[k], c-off); err != nil {
				return nil, fmt.Errorf("Problem.Build: %w", err)
			}
		}
	}
	if err = m.Finalize(cnt); err != nil {
		return nil, fmt.Errorf("Problem.Build: %w", err)
	}

	return &Local{M: m, B: slices.Clone(p.RHS), Offset: off, Count: cnt}, nil
}
