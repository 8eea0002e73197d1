// SPDX-License-Identifier: MIT

// Package sparse: functional construction options.
//
//   - Option / Options follow the usual functional-options shape.
//   - WithX constructors panic only on nonsensical values (programmer error).
//   - gatherOptions resolves defaults from a single source of truth.

package sparse

import "github.com/katalvlaran/lsqr/reduce"

// DefaultCapacity is the number of element slots reserved up front.
// Storage grows on demand, so 0 only means "no preallocation".
const DefaultCapacity = 0

const panicCapacityInvalid = "sparse: WithCapacity: nnz must be non-negative"

// Option mutates Options. Applying the same Option twice is harmless.
type Option func(*Options)

// Options holds the effective construction settings.
type Options struct {
	capacity int            // reserved element slots (>= 0)
	reducer  reduce.Reducer // communicator handle; never nil after gatherOptions
}

// WithCapacity reserves storage for nnz stored elements.
// Panics if nnz < 0.
func WithCapacity(nnz int) Option {
	if nnz < 0 {
		panic(panicCapacityInvalid)
	}

	return func(o *Options) { o.capacity = nnz }
}

// WithReducer attaches the reducer of the partition this matrix belongs to.
// A nil reducer selects reduce.Local{}.
func WithReducer(r reduce.Reducer) Option {
	return func(o *Options) { o.reducer = reduce.Or(r) }
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts ...Option) Options {
	o := Options{
		capacity: DefaultCapacity,
		reducer:  reduce.Local{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
