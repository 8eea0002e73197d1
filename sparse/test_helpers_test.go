// SPDX-License-Identifier: MIT
package sparse_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lsqr/sparse"
)

// entry is one (column, value) pair of a row under construction.
type entry struct {
	col int
	val float64
}

// build creates a finalized matrix from per-row entries.
func build(tb testing.TB, ncolumns int, rows [][]entry, opts ...sparse.Option) *sparse.Matrix {
	tb.Helper()

	m, err := sparse.New(len(rows), opts...)
	require.NoError(tb, err)
	for _, row := range rows {
		require.NoError(tb, m.NewRow())
		for _, e := range row {
			require.NoError(tb, m.Add(e.val, e.col))
		}
	}
	require.NoError(tb, m.Finalize(ncolumns))

	return m
}

// full3x3 is [[1,2,3],[4,5,6],[7,8,9]].
func full3x3() [][]entry {
	return [][]entry{
		{{0, 1}, {1, 2}, {2, 3}},
		{{0, 4}, {1, 5}, {2, 6}},
		{{0, 7}, {1, 8}, {2, 9}},
	}
}

// zeroDiag3x3 is full3x3 with the diagonal left out.
func zeroDiag3x3() [][]entry {
	return [][]entry{
		{{1, 2}, {2, 3}},
		{{0, 4}, {2, 6}},
		{{0, 7}, {1, 8}},
	}
}

// randomRows returns nl rows over ncolumns columns with the given fill
// density, deterministic for a seed.
func randomRows(seed int64, nl, ncolumns int, density float64) [][]entry {
	rng := rand.New(rand.NewSource(seed))
	rows := make([][]entry, nl)
	for i := range rows {
		for j := 0; j < ncolumns; j++ {
			if rng.Float64() < density {
				rows[i] = append(rows[i], entry{j, rng.NormFloat64()})
			}
		}
	}

	return rows
}

// randomVec returns a deterministic vector of length n.
func randomVec(seed int64, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	v := make([]float64, n)
	for i := range v {
		v[i] = rng.NormFloat64()
	}

	return v
}
