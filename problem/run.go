// SPDX-License-Identifier: MIT

package problem

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/katalvlaran/lsqr/damping"
	"github.com/katalvlaran/lsqr/logger"
	"github.com/katalvlaran/lsqr/reduce"
	"github.com/katalvlaran/lsqr/solver"
)

// Settings drives Run.
type Settings struct {
	MaxIterations int
	RMin          float64
	LogEvery      int  // 0 disables progress lines
	Partitions    int  // in-process column partitions; < 1 means 1
	History       bool // record the residual of every iteration
	Logger        *zap.Logger
}

// Outcome is the assembled result of Run.
type Outcome struct {
	X          []float64 // global solution, partitions concatenated in rank order
	Result     solver.Result
	Rows       int // rows including damping rows
	Nonzeros   int // stored elements over all partitions, damping included
	Partitions int
}

// Run builds the system, appends the damping rows (Terms times, when
// Alpha > 0) and solves it. With Partitions > 1 every partition runs on its
// own goroutine as a member of a reduce.Group.
func Run(ctx context.Context, p *Problem, s Settings) (*Outcome, error) {
	parts := max(s.Partitions, 1)
	if parts > p.Columns {
		return nil, fmt.Errorf("problem.Run: %d partitions, %d columns: %w", parts, p.Columns, ErrPartitions)
	}
	log := logger.FromContext(ctx, logger.Component(logger.OrNop(s.Logger), "problem"))

	xs := make([][]float64, parts)
	results := make([]solver.Result, parts)
	rows := make([]int, parts)
	nnz := make([]int, parts)
	member := func(ctx context.Context, r reduce.Reducer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rank := r.Rank()
		local, err := p.Build(r)
		if err != nil {
			return err
		}
		b := local.B
		if d := p.Damping; d != nil && d.Alpha > 0 {
			if b, err = p.applyDamping(local, log); err != nil {
				return err
			}
		}
		if rank == 0 {
			log.Info("system assembled",
				zap.Int(logger.FieldRows, local.M.TotalRows()),
				zap.Int(logger.FieldColumns, p.Columns),
				zap.Int(logger.FieldPartitions, parts),
			)
		}

		sv, err := solver.New(len(b), local.Count,
			solver.WithLogger(log),
			solver.WithLogEvery(s.LogEvery),
			solver.WithHistory(s.History),
		)
		if err != nil {
			return err
		}
		x := make([]float64, local.Count)
		res, err := sv.Solve(s.MaxIterations, s.RMin, local.M, b, x, false)
		if err != nil {
			return err
		}
		xs[rank], results[rank] = x, res
		rows[rank], nnz[rank] = local.M.TotalRows(), local.M.NumberElements()

		return nil
	}

	if parts == 1 {
		if err := member(ctx, reduce.Local{}); err != nil {
			return nil, fmt.Errorf("problem.Run: %w", err)
		}
	} else {
		g, err := reduce.NewGroup(parts)
		if err != nil {
			return nil, fmt.Errorf("problem.Run: %w", err)
		}
		if err = reduce.Run(ctx, g, member); err != nil {
			return nil, fmt.Errorf("problem.Run: %w", err)
		}
	}

	out := &Outcome{
		X:          slices.Concat(xs...),
		Result:     results[0],
		Rows:       rows[0],
		Partitions: parts,
	}
	for _, n := range nnz {
		out.Nonzeros += n
	}

	return out, nil
}

// applyDamping appends the damping rows to the local system and returns the
// extended right-hand side.
func (p *Problem) applyDamping(local *Local, log *zap.Logger) ([]float64, error) {
	d := p.Damping
	slice := func(v []float64) damping.Optional {
		if len(v) == 0 {
			return damping.None()
		}

		return damping.Some(v[local.Offset : local.Offset+local.Count])
	}
	model, ref, weight := slice(d.Model), slice(d.ModelRef), slice(d.Weight)

	dmp := damping.New(local.Count, damping.WithLogger(log))
	b := local.B
	var err error
	for range d.Terms {
		if b, err = dmp.Add(d.Alpha, d.NormPower, local.M, b, model, ref, weight); err != nil {
			return nil, err
		}
	}

	return b, nil
}
