// SPDX-License-Identifier: MIT

// Package solver implements LSQR (Paige & Saunders) for sparse least-squares
// problems min ‖Ax − b‖₂ with A a sparse.Matrix.
//
// The iteration is driven by Golub–Kahan bidiagonalization:
//
//	β₁u₁ = b,  α₁v₁ = Aᵗu₁
//	βᵢ₊₁uᵢ₊₁ = Avᵢ − αᵢuᵢ
//	αᵢ₊₁vᵢ₊₁ = Aᵗuᵢ₊₁ − βᵢ₊₁vᵢ
//
// followed by a plane rotation that updates x and an analytic estimate of
// the relative residual r = ‖b − Ax‖/‖b‖. The loop runs while
// iteration ≤ niter and r > rmin; reaching niter is a normal outcome, not an
// error.
//
// Column-partitioned mode: when the matrix (or WithReducer) carries a
// reduce.Reducer of size > 1, each member holds its own column slice of A
// and of x while b is replicated. A·v is summed across members and norms of
// column-space vectors are reduced, so every member sees identical scalars
// and runs the same number of iterations. Solve is then a collective.
//
// Determinism: summation orders are fixed (row order in products, index
// order in norms, rank order in reductions), so repeated solves of the same
// system produce bit-identical results.
package solver

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/lsqr/logger"
	"github.com/katalvlaran/lsqr/reduce"
	"github.com/katalvlaran/lsqr/sparse"
	"github.com/katalvlaran/lsqr/vector"
)

// Solver owns the scratch vectors of one problem size.
// A Solver is not safe for concurrent use; partitioned members each need
// their own.
type Solver struct {
	nlines    int
	nelements int
	opts      Options

	u  []float64 // row space
	hv []float64 // row space: A·v, or A·x − b for the gradient
	v0 []float64 // column space: Aᵗ·u
	v  []float64 // column space
	w  []float64 // column space: search direction
}

// New allocates a solver for systems with nlines rows and nelements (local)
// columns.
func New(nlines, nelements int, opts ...Option) (*Solver, error) {
	if nlines < 0 || nelements < 0 {
		return nil, fmt.Errorf("solver.New(%d, %d): %w", nlines, nelements, ErrBadShape)
	}

	return &Solver{
		nlines:    nlines,
		nelements: nelements,
		opts:      gatherOptions(opts...),
		u:         make([]float64, nlines),
		hv:        make([]float64, nlines),
		v0:        make([]float64, nelements),
		v:         make([]float64, nelements),
		w:         make([]float64, nelements),
	}, nil
}

// run is the per-call state shared by the helpers of Solve.
type run struct {
	s   *Solver
	m   *sparse.Matrix
	r   reduce.Reducer
	log *zap.Logger
}

// applyA computes s.hv = A·x summed across members.
func (c *run) applyA(x []float64) error {
	var err error
	if c.s.hv, err = c.m.MultVector(x, c.s.hv); err != nil {
		return err
	}
	if c.r.Size() > 1 {
		return c.r.AllReduceSum(c.s.hv)
	}

	return nil
}

// gradient returns 2‖Aᵗ(Ax − b)‖, reduced across members. It clobbers hv
// and v0.
func (c *run) gradient(x, b []float64) (float64, error) {
	if err := c.applyA(x); err != nil {
		return 0, err
	}
	if err := vector.Transform(1, c.s.hv, -1, b); err != nil {
		return 0, err
	}
	var err error
	if c.s.v0, err = c.m.TransMultVector(c.s.hv, c.s.v0); err != nil {
		return 0, err
	}
	g, err := vector.NormParallel(c.s.v0, c.r)
	if err != nil {
		return 0, err
	}

	return 2 * g, nil
}

// validate checks the inputs of Solve against the solver dimensions.
func (s *Solver) validate(m *sparse.Matrix, b, x []float64) error {
	switch {
	case m == nil || !m.Finalized():
		return ErrNotFinalized
	case len(b) != s.nlines:
		return fmt.Errorf("len(b)=%d, nlines=%d: %w", len(b), s.nlines, ErrDimensionMismatch)
	case len(x) != s.nelements:
		return fmt.Errorf("len(x)=%d, nelements=%d: %w", len(x), s.nelements, ErrDimensionMismatch)
	case m.TotalRows() != s.nlines:
		return fmt.Errorf("matrix rows=%d, nlines=%d: %w", m.TotalRows(), s.nlines, ErrDimensionMismatch)
	case m.Columns() != s.nelements:
		return fmt.Errorf("matrix columns=%d, nelements=%d: %w", m.Columns(), s.nelements, ErrDimensionMismatch)
	}

	return nil
}

// Solve runs at most niter LSQR iterations on A·x ≈ b and writes the
// solution into x (this member's column slice in partitioned mode).
// MAIN DESCRIPTION:
//   - x is reset to 0 before iterating; its prior content is not a warm start.
//   - Iteration stops when the relative residual is ≤ rmin, after niter
//     iterations, or on a degenerate condition reported in Result.Reason.
//
// Behavior highlights:
//   - An empty matrix or a zero b returns immediately with x untouched.
//   - suppressOutput silences the periodic progress lines only.
//
// Errors:
//   - ErrNotFinalized, ErrDimensionMismatch (checked before any work);
//     reduction failures in partitioned mode.
//
// Complexity:
//   - Per iteration O(nnz) for the two products plus O(nl + nelements).
func (s *Solver) Solve(niter int, rmin float64, m *sparse.Matrix, b, x []float64, suppressOutput bool) (Result, error) {
	if err := s.validate(m, b, x); err != nil {
		return Result{}, fmt.Errorf("Solver.Solve: %w", err)
	}
	red := s.opts.reducer
	if red == nil {
		red = m.Reducer()
	}
	red = reduce.Or(red)
	c := &run{s: s, m: m, r: red, log: s.opts.log.With(zap.Int(logger.FieldRank, red.Rank()))}
	rank0 := red.Rank() == 0

	res, err := s.iterate(c, niter, rmin, b, x, suppressOutput, rank0)
	if err != nil {
		return res, fmt.Errorf("Solver.Solve: %w", err)
	}
	if err = red.Barrier(); err != nil {
		return res, fmt.Errorf("Solver.Solve: %w", err)
	}
	if rank0 {
		c.log.Info("lsqr finished",
			zap.Stringer(logger.FieldReason, res.Reason),
			zap.Float64(logger.FieldResidual, res.Residual),
			zap.Int(logger.FieldIteration, res.Iterations),
		)
	}

	return res, nil
}

func (s *Solver) iterate(c *run, niter int, rmin float64, b, x []float64, suppressOutput, rank0 bool) (Result, error) {
	// The empty-matrix check is global so that all members stop together.
	nel := []float64{float64(c.m.NumberElements())}
	if c.r.Size() > 1 {
		if err := c.r.AllReduceSum(nel); err != nil {
			return Result{}, err
		}
	}
	if nel[0] == 0 {
		c.log.Warn("zero elements in the matrix, exiting the solver")
		return Result{Residual: 1, Reason: StopEmptyMatrix}, nil
	}
	if vector.NormSquared(b) == 0 {
		c.log.Warn("|b| = 0, exiting the solver")
		return Result{Reason: StopZeroRHS}, nil
	}

	copy(s.u, b)
	beta, _ := vector.Normalize(s.u)
	clear(x)
	b1 := beta

	var err error
	if s.v, err = c.m.TransMultVector(s.u, s.v); err != nil {
		return Result{}, err
	}
	alpha, ok, err := vector.NormalizeParallel(s.v, c.r)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		c.log.Warn("Aᵗb = 0, x = 0 is a least-squares solution")
		return Result{Residual: 1, Reason: StopZeroGradient}, nil
	}

	rhobar, phibar := alpha, beta
	copy(s.w, s.v)

	res := Result{Residual: 1}
	if s.opts.history {
		res.History = make([]float64, 0, min(max(niter, 0), historyPrealloc))
	}
	r := 1.0
	iter := 1
	for ; iter <= niter && r > rmin; iter++ {
		// u = A·v − α·u
		vector.Multiply(s.u, -alpha)
		if err = c.applyA(s.v); err != nil {
			return res, err
		}
		if err = vector.Add(s.u, s.hv); err != nil {
			return res, err
		}
		if beta, ok = vector.Normalize(s.u); !ok {
			c.log.Warn("|u| = 0, possibly found an exact solution", zap.Int(logger.FieldIteration, iter))
		}

		// v = Aᵗ·u − β·v
		vector.Multiply(s.v, -beta)
		if s.v0, err = c.m.TransMultVector(s.u, s.v0); err != nil {
			return res, err
		}
		if err = vector.Add(s.v, s.v0); err != nil {
			return res, err
		}
		if alpha, ok, err = vector.NormalizeParallel(s.v, c.r); err != nil {
			return res, err
		} else if !ok {
			c.log.Warn("|v| = 0, possibly found an exact solution", zap.Int(logger.FieldIteration, iter))
		}

		rho := math.Sqrt(rhobar*rhobar + beta*beta)
		if rho == 0 {
			c.log.Warn("rho = 0, exiting the loop", zap.Int(logger.FieldIteration, iter))
			res.Iterations, res.Residual, res.Reason = iter-1, r, StopZeroRho

			return res, nil
		}
		cs := rhobar / rho
		sn := beta / rho
		theta := sn * alpha
		rhobar = -cs * alpha
		phi := cs * phibar
		phibar = sn * phibar

		// x = x + (φ/ρ)·w, then w = v − (θ/ρ)·w
		if err = vector.Transform(1, x, phi/rho, s.w); err != nil {
			return res, err
		}
		if err = vector.Transform(-theta/rho, s.w, 1, s.v); err != nil {
			return res, err
		}

		r = phibar / b1
		if s.opts.history {
			res.History = append(res.History, r)
		}

		if !suppressOutput && s.opts.logEvery > 0 && iter%s.opts.logEvery == 0 {
			g, err := c.gradient(x, b)
			if err != nil {
				return res, err
			}
			if rank0 {
				c.log.Info("lsqr iteration",
					zap.Int(logger.FieldIteration, iter),
					zap.Float64(logger.FieldResidual, r),
					zap.Float64(logger.FieldGradient, g),
				)
			}
		}

		if math.Abs(rhobar) < SmallRhoBar {
			c.log.Info("small rhobar, possibly converged", zap.Int(logger.FieldIteration, iter))
			res.Iterations, res.Residual, res.Reason = iter, r, StopSmallRhoBar

			return res, nil
		}
	}

	res.Iterations, res.Residual = iter-1, r
	if r <= rmin {
		res.Reason = StopConverged
	} else {
		res.Reason = StopIterationLimit
	}

	return res, nil
}
