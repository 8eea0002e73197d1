// SPDX-License-Identifier: MIT

package reduce

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// opKind tags the collective a round belongs to.
type opKind int

const (
	opReduceSum opKind = iota + 1
	opGatherInts
	opGatherFloats
	opBarrier
)

// round holds the contributions and the result of one collective call.
// Once done is set the round is immutable, so late readers never race with
// the next round.
type round struct {
	op      opKind
	arrived int
	floats  [][]float64 // per-rank contribution (reduce/gather floats)
	ints    []int       // per-rank contribution (gather ints)
	err     error       // round-level failure, reported to every member

	done     bool
	sum      []float64
	gathered []float64
}

// Group is a set of in-process members that perform collectives together.
// Each member must be driven by its own goroutine.
type Group struct {
	mu      sync.Mutex
	cond    *sync.Cond
	size    int
	cur     *round
	closed  bool
	members []*Member
}

// Member is one participant of a Group. It implements Reducer.
type Member struct {
	g    *Group
	rank int
}

var _ Reducer = (*Member)(nil)

// NewGroup creates a Group of n members. n must be positive.
func NewGroup(n int) (*Group, error) {
	if n <= 0 {
		return nil, fmt.Errorf("NewGroup(%d): %w", n, ErrBadPartition)
	}
	g := &Group{size: n}
	g.cond = sync.NewCond(&g.mu)
	g.members = make([]*Member, n)
	for i := range g.members {
		g.members[i] = &Member{g: g, rank: i}
	}

	return g, nil
}

// Size returns the number of members.
func (g *Group) Size() int { return g.size }

const panicRankInvalid = "reduce: Group.Member: rank out of range"

// Member returns the member with the given rank. Ranks come from
// [0, Size()); any other rank is a programming error and panics.
func (g *Group) Member(rank int) *Member {
	if rank < 0 || rank >= len(g.members) {
		panic(panicRankInvalid)
	}

	return g.members[rank]
}

// Members returns all members in rank order.
func (g *Group) Members() []*Member {
	out := make([]*Member, len(g.members))
	copy(out, g.members)

	return out
}

// Close wakes every blocked member with ErrClosed. Subsequent collectives
// fail with ErrClosed. Close is idempotent.
func (g *Group) Close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
	g.cond.Broadcast()
}

// enter registers the contribution of rank for the current round and blocks
// until the round completes. The returned round is read-only.
func (g *Group) enter(rank int, op opKind, floats []float64, v int) (*round, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil, ErrClosed
	}
	if g.cur == nil {
		g.cur = &round{
			op:     op,
			floats: make([][]float64, g.size),
			ints:   make([]int, g.size),
		}
	}
	r := g.cur
	if r.op != op {
		r.err = ErrOpMismatch
	}
	if floats != nil {
		c := make([]float64, len(floats))
		copy(c, floats)
		r.floats[rank] = c
	}
	r.ints[rank] = v
	r.arrived++

	if r.arrived == g.size {
		r.complete()
		g.cur = nil
		g.cond.Broadcast()
	}
	for !r.done && !g.closed {
		g.cond.Wait()
	}
	if !r.done {
		return nil, ErrClosed
	}
	if r.err != nil {
		return nil, r.err
	}

	return r, nil
}

// complete computes the round result in rank order.
func (r *round) complete() {
	defer func() { r.done = true }()
	if r.err != nil {
		return
	}
	switch r.op {
	case opReduceSum:
		n := len(r.floats[0])
		for _, part := range r.floats[1:] {
			if len(part) != n {
				r.err = ErrSizeMismatch
				return
			}
		}
		r.sum = make([]float64, n)
		for _, part := range r.floats {
			for i, x := range part {
				r.sum[i] += x
			}
		}
	case opGatherFloats:
		total := 0
		for _, part := range r.floats {
			total += len(part)
		}
		r.gathered = make([]float64, 0, total)
		for _, part := range r.floats {
			r.gathered = append(r.gathered, part...)
		}
	}
}

// Rank returns the member rank.
func (m *Member) Rank() int { return m.rank }

// Size returns the group size.
func (m *Member) Size() int { return m.g.size }

// AllReduceSum implements Reducer.
func (m *Member) AllReduceSum(buf []float64) error {
	if buf == nil {
		buf = []float64{}
	}
	r, err := m.g.enter(m.rank, opReduceSum, buf, 0)
	if err != nil {
		return fmt.Errorf("AllReduceSum(rank %d): %w", m.rank, err)
	}
	copy(buf, r.sum)

	return nil
}

// AllGatherInts implements Reducer.
func (m *Member) AllGatherInts(v int) ([]int, error) {
	r, err := m.g.enter(m.rank, opGatherInts, nil, v)
	if err != nil {
		return nil, fmt.Errorf("AllGatherInts(rank %d): %w", m.rank, err)
	}
	out := make([]int, len(r.ints))
	copy(out, r.ints)

	return out, nil
}

// AllGatherFloat64s implements Reducer.
func (m *Member) AllGatherFloat64s(local []float64) ([]float64, error) {
	if local == nil {
		local = []float64{}
	}
	r, err := m.g.enter(m.rank, opGatherFloats, local, 0)
	if err != nil {
		return nil, fmt.Errorf("AllGatherFloat64s(rank %d): %w", m.rank, err)
	}
	out := make([]float64, len(r.gathered))
	copy(out, r.gathered)

	return out, nil
}

// Barrier implements Reducer.
func (m *Member) Barrier() error {
	if _, err := m.g.enter(m.rank, opBarrier, nil, 0); err != nil {
		return fmt.Errorf("Barrier(rank %d): %w", m.rank, err)
	}

	return nil
}

// Run executes fn once per member of g, each on its own goroutine, and
// waits for all of them. The first error (or cancellation of ctx) closes g
// so no member stays blocked in a collective; that error is returned.
// g is closed when Run returns and cannot be reused.
func Run(ctx context.Context, g *Group, fn func(ctx context.Context, r Reducer) error) error {
	eg, ctx := errgroup.WithContext(ctx)
	stop := context.AfterFunc(ctx, g.Close)
	defer stop()

	for _, m := range g.members {
		eg.Go(func() error {
			return fn(ctx, m)
		})
	}
	err := eg.Wait()
	g.Close()

	return err
}
