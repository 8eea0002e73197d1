// SPDX-License-Identifier: MIT
package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lsqr/reduce"
	"github.com/katalvlaran/lsqr/sparse"
)

func TestNew(t *testing.T) {
	t.Parallel()

	m, err := sparse.New(1)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.False(t, m.Finalized())
	assert.Equal(t, reduce.Local{}, m.Reducer())

	_, err = sparse.New(-1)
	require.ErrorIs(t, err, sparse.ErrBadShape)

	g, err := reduce.NewGroup(2)
	require.NoError(t, err)
	m, err = sparse.New(0, sparse.WithReducer(g.Member(1)))
	require.NoError(t, err)
	assert.Equal(t, 1, m.Reducer().Rank())
}

func TestAddSkipsZeros(t *testing.T) {
	t.Parallel()

	m, err := sparse.New(1)
	require.NoError(t, err)
	require.NoError(t, m.NewRow())
	require.Equal(t, 0, m.NumberElements())

	steps := []struct {
		val  float64
		col  int
		want int
	}{
		{0, 0, 0},
		{10, 0, 1},
		{20, 1, 2},
		{0, 2, 2},
		{30, 2, 3},
	}
	for _, s := range steps {
		require.NoError(t, m.Add(s.val, s.col))
		require.Equal(t, s.want, m.NumberElements())
	}
}

func TestAddBeforeFirstRow(t *testing.T) {
	t.Parallel()

	m, err := sparse.New(1)
	require.NoError(t, err)
	require.ErrorIs(t, m.Add(1, 0), sparse.ErrNoRow)
}

func TestAddNegativeColumn(t *testing.T) {
	t.Parallel()

	m, err := sparse.New(1)
	require.NoError(t, err)
	require.NoError(t, m.NewRow())
	require.ErrorIs(t, m.Add(1, -1), sparse.ErrColumnOutOfRange)
	require.Equal(t, 0, m.NumberElements())
}

func TestNumberRows(t *testing.T) {
	t.Parallel()

	m, err := sparse.New(3)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.Equal(t, i, m.CurrentRows())
		require.Equal(t, 3, m.TotalRows())
		require.NoError(t, m.NewRow())
	}
	require.Equal(t, 3, m.CurrentRows())
	require.Equal(t, 3, m.TotalRows())
}

func TestFinalize(t *testing.T) {
	t.Parallel()

	t.Run("zero columns", func(t *testing.T) {
		t.Parallel()
		m, err := sparse.New(1)
		require.NoError(t, err)
		require.NoError(t, m.NewRow())
		require.NoError(t, m.Finalize(0))
		assert.True(t, m.Finalized())
		assert.Equal(t, []int{0, 0}, m.RowOffsets())
	})

	t.Run("full", func(t *testing.T) {
		t.Parallel()
		m := build(t, 3, full3x3())
		assert.Equal(t, 3, m.Columns())
		assert.Equal(t, 9, m.NumberElements())
		assert.Equal(t, []int{0, 3, 6, 9}, m.RowOffsets())
		assert.Equal(t, []int{0, 1, 2, 0, 1, 2, 0, 1, 2}, m.ColumnIndices())
		assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, m.Values())
	})

	t.Run("wrong row count", func(t *testing.T) {
		t.Parallel()
		m, err := sparse.New(1)
		require.NoError(t, err)
		require.ErrorIs(t, m.Finalize(0), sparse.ErrRowCount)
		assert.False(t, m.Finalized())
	})

	t.Run("column out of range", func(t *testing.T) {
		t.Parallel()
		m, err := sparse.New(1)
		require.NoError(t, err)
		require.NoError(t, m.NewRow())
		require.NoError(t, m.Add(1, 2))
		require.ErrorIs(t, m.Finalize(1), sparse.ErrColumnOutOfRange)
		assert.False(t, m.Finalized())
		// The matrix is still buildable and finalizes with the right width.
		require.NoError(t, m.Finalize(3))
		assert.Equal(t, []int{0, 1}, m.RowOffsets())
	})

	t.Run("negative columns", func(t *testing.T) {
		t.Parallel()
		m, err := sparse.New(0)
		require.NoError(t, err)
		require.ErrorIs(t, m.Finalize(-1), sparse.ErrBadShape)
	})

	t.Run("refinalize", func(t *testing.T) {
		t.Parallel()
		m := build(t, 3, full3x3())
		require.NoError(t, m.Finalize(4))
		assert.Equal(t, 4, m.Columns())
		assert.Equal(t, []int{0, 3, 6, 9}, m.RowOffsets())
		require.ErrorIs(t, m.Finalize(2), sparse.ErrColumnOutOfRange)
		assert.True(t, m.Finalized())
		assert.Equal(t, 4, m.Columns())
	})
}

func TestNewRowOverflow(t *testing.T) {
	t.Parallel()

	m, err := sparse.New(3)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, m.NewRow())
		require.NoError(t, m.Add(1, 0))
	}
	require.ErrorIs(t, m.NewRow(), sparse.ErrRowOverflow)
}

func TestFinalizedRejectsMutation(t *testing.T) {
	t.Parallel()

	m := build(t, 3, full3x3())
	require.ErrorIs(t, m.NewRow(), sparse.ErrFinalized)
	require.ErrorIs(t, m.Add(1, 0), sparse.ErrFinalized)
	require.Equal(t, 9, m.NumberElements())
}

func TestNotFinalizedRejectsQueries(t *testing.T) {
	t.Parallel()

	m, err := sparse.New(1)
	require.NoError(t, err)
	require.NoError(t, m.NewRow())

	_, err = m.At(0, 0)
	require.ErrorIs(t, err, sparse.ErrNotFinalized)
	_, err = m.NonemptyRows()
	require.ErrorIs(t, err, sparse.ErrNotFinalized)
	_, err = m.MultVector(nil, nil)
	require.ErrorIs(t, err, sparse.ErrNotFinalized)
	_, err = m.TransMultVector([]float64{1}, nil)
	require.ErrorIs(t, err, sparse.ErrNotFinalized)
	require.ErrorIs(t, m.Extend(1, 1), sparse.ErrNotFinalized)
	_, err = m.ToDense()
	require.ErrorIs(t, err, sparse.ErrNotFinalized)
}

func TestAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rows [][]entry
		want [3][3]float64
	}{
		{"all nonzero", full3x3(), [3][3]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}},
		{"zero diagonal", zeroDiag3x3(), [3][3]float64{{0, 2, 3}, {4, 0, 6}, {7, 8, 0}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := build(t, 3, tc.rows)
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					got, err := m.At(i, j)
					require.NoError(t, err)
					assert.Equal(t, tc.want[i][j], got, "(%d,%d)", i, j)
				}
			}
		})
	}
}

func TestAtDuplicatesAndBounds(t *testing.T) {
	t.Parallel()

	m := build(t, 2, [][]entry{{{1, 5}, {1, 7}}})
	got, err := m.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got, "first stored duplicate wins")

	for _, idx := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 2}} {
		_, err = m.At(idx[0], idx[1])
		require.ErrorIs(t, err, sparse.ErrOutOfRange, "(%d,%d)", idx[0], idx[1])
	}
}

func TestReset(t *testing.T) {
	t.Parallel()

	m := build(t, 3, full3x3())
	require.Equal(t, 9, m.NumberElements())
	require.Equal(t, 3, m.CurrentRows())
	require.Equal(t, 3, m.TotalRows())

	m.Reset()
	require.Equal(t, 0, m.NumberElements())
	require.Equal(t, 0, m.CurrentRows())
	require.Equal(t, 3, m.TotalRows())
	require.Equal(t, 0, m.Columns())
	require.False(t, m.Finalized())
}

func TestResetRebuildMatchesFreshBuild(t *testing.T) {
	t.Parallel()

	rows := randomRows(7, 20, 15, 0.3)
	fresh := build(t, 15, rows)

	reused := build(t, 15, randomRows(8, 20, 15, 0.6))
	saCap, ijaCap, ijlCap := sparse.CapacityOf_TestOnly(reused)
	reused.Reset()
	for _, row := range rows {
		require.NoError(t, reused.NewRow())
		for _, e := range row {
			require.NoError(t, reused.Add(e.val, e.col))
		}
	}
	require.NoError(t, reused.Finalize(15))

	assert.Equal(t, fresh.Values(), reused.Values())
	assert.Equal(t, fresh.ColumnIndices(), reused.ColumnIndices())
	assert.Equal(t, fresh.RowOffsets(), reused.RowOffsets())

	sa, ija, ijl := sparse.CapacityOf_TestOnly(reused)
	assert.Equal(t, saCap, sa, "Reset keeps value storage")
	assert.Equal(t, ijaCap, ija, "Reset keeps index storage")
	assert.Equal(t, ijlCap, ijl, "Reset keeps row storage")
}

func TestExtend(t *testing.T) {
	t.Parallel()

	want := [3][3]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	check := func(t *testing.T, m *sparse.Matrix) {
		t.Helper()
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				got, err := m.At(i, j)
				require.NoError(t, err)
				assert.Equal(t, want[i][j], got, "(%d,%d)", i, j)
			}
		}
	}
	rows := full3x3()

	t.Run("non-empty", func(t *testing.T) {
		t.Parallel()
		m := build(t, 3, rows[:1])
		require.NoError(t, m.Extend(2, 6))
		require.False(t, m.Finalized())
		require.Equal(t, 3, m.TotalRows())
		require.Equal(t, 1, m.CurrentRows())
		for _, row := range rows[1:] {
			require.NoError(t, m.NewRow())
			for _, e := range row {
				require.NoError(t, m.Add(e.val, e.col))
			}
		}
		require.NoError(t, m.Finalize(3))
		check(t, m)
		require.Equal(t, []int{0, 3, 6, 9}, m.RowOffsets())
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		m, err := sparse.New(0)
		require.NoError(t, err)
		require.NoError(t, m.Finalize(3))
		require.NoError(t, m.Extend(3, 9))
		for _, row := range rows {
			require.NoError(t, m.NewRow())
			for _, e := range row {
				require.NoError(t, m.Add(e.val, e.col))
			}
		}
		require.NoError(t, m.Finalize(3))
		check(t, m)
	})

	t.Run("refinalize without new rows fails", func(t *testing.T) {
		t.Parallel()
		m := build(t, 3, rows)
		require.NoError(t, m.Extend(1, 0))
		require.ErrorIs(t, m.Finalize(3), sparse.ErrRowCount)
	})

	t.Run("negative", func(t *testing.T) {
		t.Parallel()
		m := build(t, 3, rows)
		require.ErrorIs(t, m.Extend(-1, 0), sparse.ErrBadShape)
		require.True(t, m.Finalized())
	})
}

func TestExtendPreservesProducts(t *testing.T) {
	t.Parallel()

	rows := randomRows(3, 12, 6, 0.5)
	base := build(t, 6, rows)
	x := randomVec(4, 6)
	before, err := base.MultVector(x, nil)
	require.NoError(t, err)

	require.NoError(t, base.Extend(2, 2))
	require.NoError(t, base.NewRow())
	require.NoError(t, base.Add(1, 0))
	require.NoError(t, base.NewRow())
	require.NoError(t, base.Finalize(6))

	after, err := base.MultVector(x, nil)
	require.NoError(t, err)
	require.Len(t, after, 14)
	assert.Equal(t, before, after[:12])
	assert.Equal(t, []float64{x[0], 0}, after[12:])
}

func TestNonemptyRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rows [][]entry
		want int
	}{
		{"no empty", full3x3(), 3},
		{"all empty", [][]entry{nil, nil, nil}, 0},
		{"some empty", [][]entry{{{0, 1}}, nil, nil}, 1},
		{"some empty 2", [][]entry{{{0, 1}}, nil, {{0, 2}}}, 2},
		{"zeros only", [][]entry{{{0, 0}, {1, 0}}}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := build(t, 3, tc.rows)
			got, err := m.NonemptyRows()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOptions(t *testing.T) {
	t.Parallel()

	require.Equal(t, sparse.DefaultCapacity, sparse.GatherCapacity_TestOnly())
	require.Equal(t, 12, sparse.GatherCapacity_TestOnly(sparse.WithCapacity(12), nil))
	require.PanicsWithValue(t, sparse.PanicCapacityInvalid_TestOnly, func() { sparse.WithCapacity(-1) })

	m, err := sparse.New(2, sparse.WithCapacity(8), sparse.WithReducer(nil))
	require.NoError(t, err)
	sa, ija, ijl := sparse.CapacityOf_TestOnly(m)
	assert.Equal(t, 8, sa)
	assert.Equal(t, 8, ija)
	assert.Equal(t, 3, ijl)
	assert.Equal(t, reduce.Local{}, m.Reducer())
}

func TestString(t *testing.T) {
	t.Parallel()

	m := build(t, 3, full3x3())
	assert.Equal(t, "sparse.Matrix{rows: 3/3, cols: 3, nnz: 9, finalized: true}", m.String())
}
