// SPDX-License-Identifier: MIT

package sparse

// resize returns b with length n, reusing its backing array when it is large
// enough. The contents are zeroed.
func resize(b []float64, n int) []float64 {
	if cap(b) < n {
		return make([]float64, n)
	}
	b = b[:n]
	clear(b)

	return b
}

// MultVector computes b = A·x and returns b.
// MAIN DESCRIPTION:
//   - Row-major sweep: b[i] = Σ sa[k]·x[ija[k]] over the stored entries of row i.
//
// Behavior highlights:
//   - b is resized to TotalRows (its capacity is reused) and overwritten.
//   - In column-partitioned mode the result is this member's partial sum;
//     reduce it across members to obtain the global product.
//
// Errors:
//   - ErrNotFinalized; ErrDimensionMismatch when len(x) != Columns().
//
// Complexity:
//   - Time O(nl + nel), no allocation when cap(b) >= nl.
func (m *Matrix) MultVector(x, b []float64) ([]float64, error) {
	if err := validateFinalized(m); err != nil {
		return b, methodErrorf(ctxMult, err)
	}
	if err := ValidateVecLen(x, m.ncolumns); err != nil {
		return b, methodErrorf(ctxMult, err)
	}
	b = resize(b, m.nl)
	for i := 0; i < m.nl; i++ {
		var s float64
		for k := m.ijl[i]; k < m.ijl[i+1]; k++ {
			s += m.sa[k] * x[m.ija[k]]
		}
		b[i] = s
	}

	return b, nil
}

// TransMultVector computes b = Aᵗ·x and returns b.
// MAIN DESCRIPTION:
//   - Scatter sweep: b[ija[k]] += sa[k]·x[i] over the stored entries of row i.
//
// Behavior highlights:
//   - b is resized to Columns() (its capacity is reused) and overwritten.
//   - No reduction is needed in column-partitioned mode: every member
//     produces its own slice of the result.
//
// Errors:
//   - ErrNotFinalized; ErrDimensionMismatch when len(x) != TotalRows().
//
// Complexity:
//   - Time O(nl + nel), no allocation when cap(b) >= ncolumns.
func (m *Matrix) TransMultVector(x, b []float64) ([]float64, error) {
	if err := validateFinalized(m); err != nil {
		return b, methodErrorf(ctxTransMult, err)
	}
	if err := ValidateVecLen(x, m.nl); err != nil {
		return b, methodErrorf(ctxTransMult, err)
	}
	b = resize(b, m.ncolumns)
	for i := 0; i < m.nl; i++ {
		xi := x[i]
		for k := m.ijl[i]; k < m.ijl[i+1]; k++ {
			b[m.ija[k]] += m.sa[k] * xi
		}
	}

	return b, nil
}
