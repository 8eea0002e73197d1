// SPDX-License-Identifier: MIT

package solver

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/lsqr/reduce"
)

// Defaults.
const (
	// DefaultLogEvery is the iteration period of progress lines.
	DefaultLogEvery = 10

	// DefaultHistory controls residual-history recording.
	DefaultHistory = false

	// SmallRhoBar is the |ρ̄| threshold below which the loop stops.
	SmallRhoBar = 1e-30
)

// historyPrealloc bounds the initial history capacity; niter is only a cap.
const historyPrealloc = 1024

const panicLogEveryInvalid = "solver: WithLogEvery: period must be non-negative"

// Option configures a Solver.
type Option func(*Options)

// Options holds the effective solver settings.
type Options struct {
	log      *zap.Logger
	logEvery int
	history  bool
	reducer  reduce.Reducer // nil: use the matrix's reducer
}

// WithLogger sets the progress logger. nil selects a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.log = l
	}
}

// WithLogEvery sets the progress period in iterations; 0 disables progress
// lines (and the gradient evaluation they need). Panics if n < 0.
// In partitioned mode every member must use the same period.
func WithLogEvery(n int) Option {
	if n < 0 {
		panic(panicLogEveryInvalid)
	}

	return func(o *Options) { o.logEvery = n }
}

// WithHistory enables recording of the residual after every iteration.
func WithHistory(on bool) Option {
	return func(o *Options) { o.history = on }
}

// WithReducer overrides the reducer taken from the matrix.
func WithReducer(r reduce.Reducer) Option {
	return func(o *Options) { o.reducer = r }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		log:      zap.NewNop(),
		logEvery: DefaultLogEvery,
		history:  DefaultHistory,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
