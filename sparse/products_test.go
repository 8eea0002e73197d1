// SPDX-License-Identifier: MIT
package sparse_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lsqr/sparse"
)

func TestMultVector(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ncolumns int
		rows     [][]entry
		x        []float64
		want     []float64
	}{
		{"all nonzero", 3, full3x3(), []float64{1, 2, 3}, []float64{14, 32, 50}},
		{"zero diagonal", 3, zeroDiag3x3(), []float64{1, 2, 3}, []float64{13, 22, 23}},
		{"diagonal", 3, [][]entry{{{0, 1}}, {{1, 2}}, {{2, 3}}}, []float64{1, 2, 3}, []float64{1, 4, 9}},
		{"3x1", 1, [][]entry{{{0, 1}}, {{0, 2}}, {{0, 3}}}, []float64{2}, []float64{2, 4, 6}},
		{"1x3", 3, [][]entry{{{0, 1}, {1, 2}, {2, 3}}}, []float64{1, 2, 3}, []float64{14}},
		{"one nonzero", 3, [][]entry{{{0, 5}}, nil, nil}, []float64{1, 2, 3}, []float64{5, 0, 0}},
		{"duplicates summed", 2, [][]entry{{{1, 1}, {1, 2}}}, []float64{7, 10}, []float64{30}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := build(t, tc.ncolumns, tc.rows)
			// Stale content in b must be overwritten.
			b := []float64{10, 10, 10}
			got, err := m.MultVector(tc.x, b)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTransMultVector(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ncolumns int
		rows     [][]entry
		x        []float64
		want     []float64
	}{
		{"3x3", 3, full3x3(), []float64{1, 2, 3}, []float64{30, 36, 42}},
		{"3 rows 2 columns", 2, [][]entry{{{0, 1}, {1, 2}}, {{0, 3}, {1, 4}}, {{0, 5}, {1, 6}}}, []float64{1, 2, 3}, []float64{22, 28}},
		{"2 rows 3 columns", 3, [][]entry{{{0, 1}, {1, 2}, {2, 3}}, {{0, 4}, {1, 5}, {2, 6}}}, []float64{2, 3}, []float64{14, 19, 24}},
		{"empty column", 3, [][]entry{{{0, 1}}}, []float64{4}, []float64{4, 0, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := build(t, tc.ncolumns, tc.rows)
			got, err := m.TransMultVector(tc.x, []float64{-1, -1, -1, -1})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestProductsDimensionMismatch(t *testing.T) {
	t.Parallel()

	m := build(t, 3, full3x3()[:2])
	b := make([]float64, 2)

	got, err := m.MultVector([]float64{1, 2}, b)
	require.ErrorIs(t, err, sparse.ErrDimensionMismatch)
	assert.Equal(t, b, got, "b is returned unchanged on error")

	_, err = m.TransMultVector([]float64{1, 2, 3}, nil)
	require.ErrorIs(t, err, sparse.ErrDimensionMismatch)

	require.NoError(t, sparse.ValidateVecLen(nil, 0))
	require.ErrorIs(t, sparse.ValidateVecLen([]float64{1}, 2), sparse.ErrDimensionMismatch)
}

func TestProductsReuseStorage(t *testing.T) {
	t.Parallel()

	m := build(t, 3, full3x3())
	buf := make([]float64, 0, 8)
	got, err := m.MultVector([]float64{1, 0, 0}, buf)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Same(t, &buf[:1][0], &got[0], "backing array reused")

	small := make([]float64, 1)
	got, err = m.TransMultVector([]float64{1, 0, 0}, small)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, got)

	resized := sparse.ExportedResize([]float64{5, 5, 5, 5}, 2)
	assert.Equal(t, []float64{0, 0}, resized)
}

// ⟨A·x, y⟩ = ⟨x, Aᵗ·y⟩ on random matrices, and both products agree with a
// dense gonum reference.
func TestAdjointIdentity(t *testing.T) {
	t.Parallel()

	shapes := [][2]int{{1, 1}, {5, 3}, {3, 5}, {40, 25}, {25, 40}}
	for si, shape := range shapes {
		nl, nc := shape[0], shape[1]
		t.Run(fmt.Sprintf("%dx%d", nl, nc), func(t *testing.T) {
			t.Parallel()
			seed := int64(100 + si)
			m := build(t, nc, randomRows(seed, nl, nc, 0.35))
			x := randomVec(seed+1, nc)
			y := randomVec(seed+2, nl)

			ax, err := m.MultVector(x, nil)
			require.NoError(t, err)
			aty, err := m.TransMultVector(y, nil)
			require.NoError(t, err)

			lhs := floats.Dot(ax, y)
			rhs := floats.Dot(x, aty)
			assert.InDelta(t, lhs, rhs, 1e-10*(1+math.Abs(lhs)))

			if m.NumberElements() == 0 {
				return
			}
			d, err := m.ToDense()
			require.NoError(t, err)
			var want mat.VecDense
			want.MulVec(d, mat.NewVecDense(nc, x))
			assert.InDeltaSlice(t, want.RawVector().Data, ax, 1e-12)
			want.Reset()
			want.MulVec(d.T(), mat.NewVecDense(nl, y))
			assert.InDeltaSlice(t, want.RawVector().Data, aty, 1e-12)
		})
	}
}
