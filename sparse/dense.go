// SPDX-License-Identifier: MIT

// Package sparse - interop with gonum dense matrices.
//
// ToDense materializes a finalized matrix as *mat.Dense (duplicates summed);
// FromDense builds a finalized CSR matrix from any mat.Matrix, skipping
// zero entries. Both sweep rows then columns in ascending order.

package sparse

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const ctxFromDense = "FromDense"

// ToDense returns the dense TotalRows×Columns equivalent of m.
// Errors: ErrNotFinalized; ErrBadShape when either dimension is zero
// (gonum has no empty dense matrices).
// Complexity: O(nl·ncolumns) memory, O(nel) fill.
func (m *Matrix) ToDense() (*mat.Dense, error) {
	if err := validateFinalized(m); err != nil {
		return nil, methodErrorf(ctxToDense, err)
	}
	if m.nl == 0 || m.ncolumns == 0 {
		return nil, methodErrorf(ctxToDense, fmt.Errorf("%dx%d: %w", m.nl, m.ncolumns, ErrBadShape))
	}
	d := mat.NewDense(m.nl, m.ncolumns, nil)
	for i := 0; i < m.nl; i++ {
		for k := m.ijl[i]; k < m.ijl[i+1]; k++ {
			j := m.ija[k]
			d.Set(i, j, d.At(i, j)+m.sa[k])
		}
	}

	return d, nil
}

// FromDense builds a finalized matrix holding the nonzero entries of a.
// Options are passed to New; the capacity defaults to the nonzero count.
// Errors: ErrNilMatrix when a is nil.
func FromDense(a mat.Matrix, opts ...Option) (*Matrix, error) {
	if a == nil {
		return nil, fmt.Errorf("%s: %w", ctxFromDense, ErrNilMatrix)
	}
	r, c := a.Dims()
	nnz := 0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if a.At(i, j) != 0 {
				nnz++
			}
		}
	}

	m, err := New(r, append([]Option{WithCapacity(nnz)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxFromDense, err)
	}
	for i := 0; i < r; i++ {
		if err = m.NewRow(); err != nil {
			return nil, fmt.Errorf("%s: %w", ctxFromDense, err)
		}
		for j := 0; j < c; j++ {
			if err = m.Add(a.At(i, j), j); err != nil {
				return nil, fmt.Errorf("%s: %w", ctxFromDense, err)
			}
		}
	}
	if err = m.Finalize(c); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxFromDense, err)
	}

	return m, nil
}
