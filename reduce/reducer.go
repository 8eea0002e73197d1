// SPDX-License-Identifier: MIT

package reduce

import "errors"

var (
	// ErrSizeMismatch is returned on every member when the buffers passed to
	// one AllReduceSum call do not have the same length on all members.
	ErrSizeMismatch = errors.New("reduce: buffer length differs across members")

	// ErrOpMismatch is returned when members enter different collectives
	// in the same round.
	ErrOpMismatch = errors.New("reduce: members issued different collectives")

	// ErrClosed is returned by collectives on a closed Group.
	ErrClosed = errors.New("reduce: group closed")

	// ErrBadPartition signals an invalid partition request (size<=0, rank
	// out of range, negative counts).
	ErrBadPartition = errors.New("reduce: invalid partition")
)

// Reducer is the capability a partitioned computation needs from its peers.
type Reducer interface {
	// Rank returns the zero-based index of this member.
	Rank() int

	// Size returns the number of members.
	Size() int

	// AllReduceSum replaces buf with the element-wise sum of buf across all
	// members. Lengths must agree on every member.
	AllReduceSum(buf []float64) error

	// AllGatherInts returns the value v of every member, in rank order.
	AllGatherInts(v int) ([]int, error)

	// AllGatherFloat64s returns the concatenation of local from every member,
	// in rank order. Slices may differ in length.
	AllGatherFloat64s(local []float64) ([]float64, error)

	// Barrier blocks until every member has reached it.
	Barrier() error
}

// Local is the single-participant Reducer.
type Local struct{}

var _ Reducer = Local{}

// Rank is always 0.
func (Local) Rank() int { return 0 }

// Size is always 1.
func (Local) Size() int { return 1 }

// AllReduceSum leaves buf unchanged.
func (Local) AllReduceSum([]float64) error { return nil }

// AllGatherInts returns []int{v}.
func (Local) AllGatherInts(v int) ([]int, error) { return []int{v}, nil }

// AllGatherFloat64s returns a copy of local.
func (Local) AllGatherFloat64s(local []float64) ([]float64, error) {
	out := make([]float64, len(local))
	copy(out, local)

	return out, nil
}

// Barrier returns immediately.
func (Local) Barrier() error { return nil }

// Or returns r, or Local{} when r is nil.
func Or(r Reducer) Reducer {
	if r == nil {
		return Local{}
	}

	return r
}
