// SPDX-License-Identifier: MIT

// Package damping appends model-damping (regularization) rows to a finalized
// sparse system, turning min‖Ax−b‖ into
//
//	min ‖Ax−b‖² + α²·Σ wᵢ²·qᵢ²·(xᵢ−rᵢ)²
//
// where r is a reference model, w per-element weights and qᵢ the Lp-norm
// multiplier of NormMultiplier. For p ≠ 2 the rows linearize an Lp penalty
// around the current model (one step of iteratively reweighted least
// squares); repeated solves with updated models converge to the Lp solution.
//
// In column-partitioned mode every member calls Add with its local element
// count. Each member appends one row per global element: the row of an
// element it owns carries the damping entry at the local column, the other
// rows are empty. The right-hand-side extension is gathered so every member
// holds the same full vector.
package damping

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/lsqr/logger"
	"github.com/katalvlaran/lsqr/reduce"
	"github.com/katalvlaran/lsqr/sparse"
)

var (
	// ErrSizeMismatch is returned when an input vector or the matrix width
	// does not match the local element count.
	ErrSizeMismatch = errors.New("damping: wrong vector size")

	// ErrNotFinalized is returned when the matrix is nil or not finalized.
	ErrNotFinalized = errors.New("damping: matrix not finalized")
)

// Option configures a Damping.
type Option func(*Damping)

// WithLogger sets the logger used for debug output. nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(d *Damping) {
		if l != nil {
			d.log = l
		}
	}
}

// Damping adds damping rows for a fixed local element count.
type Damping struct {
	nelements int
	log       *zap.Logger
}

// New returns a Damping for nelements local model elements (columns).
func New(nelements int, opts ...Option) *Damping {
	d := &Damping{nelements: nelements, log: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	return d
}

// Elements returns the local element count.
func (d *Damping) Elements() int { return d.nelements }

// Add extends m with one damping row per global element and returns b
// extended by the matching right-hand-side entries.
//
// Row for local element j (global index offset+j):
//
//	value  v = alpha · w[j] · NormMultiplier(model[j], modelRef[j], normPower)
//	rhs      = −v · (model[j] − modelRef[j])
//
// Absent inputs default to w = 1, model = 0, modelRef = 0.
//
// Errors (checked before anything is modified): ErrSizeMismatch for a set
// input whose length differs from the element count, or when m.Columns()
// differs from it; ErrNotFinalized. Reduction failures are returned as is.
// Add is a collective in partitioned mode.
func (d *Damping) Add(alpha, normPower float64, m *sparse.Matrix, b []float64, model, modelRef, weight Optional) ([]float64, error) {
	for _, in := range []struct {
		name string
		o    Optional
	}{{"model", model}, {"modelRef", modelRef}, {"weight", weight}} {
		if in.o.IsSet() && in.o.Len() != d.nelements {
			return b, fmt.Errorf("Damping.Add: %s has %d values, want %d: %w", in.name, in.o.Len(), d.nelements, ErrSizeMismatch)
		}
	}
	if m == nil || !m.Finalized() {
		return b, fmt.Errorf("Damping.Add: %w", ErrNotFinalized)
	}
	if m.Columns() != d.nelements {
		return b, fmt.Errorf("Damping.Add: matrix has %d columns, want %d: %w", m.Columns(), d.nelements, ErrSizeMismatch)
	}

	r := reduce.Or(m.Reducer())
	total, err := reduce.TotalElements(r, d.nelements)
	if err != nil {
		return b, fmt.Errorf("Damping.Add: %w", err)
	}
	nsmaller, err := reduce.Offset(r, d.nelements)
	if err != nil {
		return b, fmt.Errorf("Damping.Add: %w", err)
	}

	if err = m.Extend(total, d.nelements); err != nil {
		return b, fmt.Errorf("Damping.Add: %w", err)
	}
	local := make([]float64, d.nelements)
	for i := 0; i < total; i++ {
		if err = m.NewRow(); err != nil {
			return b, fmt.Errorf("Damping.Add: %w", err)
		}
		if i < nsmaller || i >= nsmaller+d.nelements {
			continue
		}
		column := i - nsmaller
		w := weight.At(column, 1)
		mv := model.At(column, 0)
		rv := modelRef.At(column, 0)

		value := alpha * w * NormMultiplier(mv, rv, normPower)
		if err = m.Add(value, column); err != nil {
			return b, fmt.Errorf("Damping.Add: %w", err)
		}
		local[column] = -value * (mv - rv)
	}
	if err = m.Finalize(d.nelements); err != nil {
		return b, fmt.Errorf("Damping.Add: %w", err)
	}

	full, err := r.AllGatherFloat64s(local)
	if err != nil {
		return b, fmt.Errorf("Damping.Add: %w", err)
	}
	d.log.Debug("damping rows added",
		zap.Int(logger.FieldRank, r.Rank()),
		zap.Int(logger.FieldTotal, total),
		zap.Int(logger.FieldOffset, nsmaller),
		zap.Float64(logger.FieldAlpha, alpha),
		zap.Float64(logger.FieldNormPower, normPower),
	)

	return append(b, full...), nil
}

// NormMultiplier returns the Lp-norm multiplier |m−r|^(p/2−1), or 1 when
// p == 2 or m == r.
func NormMultiplier(model, modelRef, normPower float64) float64 {
	if normPower == 2 || model == modelRef {
		return 1
	}

	return math.Pow(math.Abs(model-modelRef), normPower/2-1)
}
