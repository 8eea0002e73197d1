// SPDX-License-Identifier: MIT

package reduce

import "fmt"

// Counts returns the local element count n of every member, in rank order.
// It is a collective: all members must call it.
func Counts(r Reducer, n int) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("Counts(%d): %w", n, ErrBadPartition)
	}
	counts, err := Or(r).AllGatherInts(n)
	if err != nil {
		return nil, fmt.Errorf("Counts: %w", err)
	}

	return counts, nil
}

// TotalElements returns the sum of the local counts n over all members.
func TotalElements(r Reducer, n int) (int, error) {
	counts, err := Counts(r, n)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, c := range counts {
		total += c
	}

	return total, nil
}

// Offset returns the number of elements owned by members with a lower rank,
// i.e. the global index of this member's first element.
func Offset(r Reducer, n int) (int, error) {
	r = Or(r)
	counts, err := Counts(r, n)
	if err != nil {
		return 0, err
	}
	offset := 0
	for _, c := range counts[:r.Rank()] {
		offset += c
	}

	return offset, nil
}

// SplitEven splits total elements into size contiguous slices whose lengths
// differ by at most one (the first total%size slices get the extra element)
// and returns the slice of rank.
func SplitEven(total, size, rank int) (offset, count int, err error) {
	if total < 0 || size <= 0 || rank < 0 || rank >= size {
		return 0, 0, fmt.Errorf("SplitEven(total=%d, size=%d, rank=%d): %w", total, size, rank, ErrBadPartition)
	}
	base, rem := total/size, total%size
	count = base
	if rank < rem {
		count++
	}
	offset = rank*base + min(rank, rem)

	return offset, count, nil
}
