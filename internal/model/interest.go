package model

import (
	"slices"
	"sort"
)

// InterestSet is a sorted, duplicate-free set of line indices within a block
type InterestSet struct {
	indices []int
}

// NewInterestSet builds a set from arbitrary indices
func NewInterestSet(indices ...int) InterestSet {
	s := slices.Clone(indices)
	sort.Ints(s)
	s = slices.Compact(s)
	return InterestSet{indices: s}
}

// FullInterest returns the set 0..n-1
func FullInterest(n int) InterestSet {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return InterestSet{indices: s}
}

// Contains reports whether line i is of interest
func (s InterestSet) Contains(i int) bool {
	_, found := slices.BinarySearch(s.indices, i)
	return found
}

// Len returns the number of lines of interest
func (s InterestSet) Len() int {
	return len(s.indices)
}

// IsEmpty reports whether no line is of interest
func (s InterestSet) IsEmpty() bool {
	return len(s.indices) == 0
}

// Min returns the smallest index, or -1 for an empty set
func (s InterestSet) Min() int {
	if len(s.indices) == 0 {
		return -1
	}
	return s.indices[0]
}

// Max returns the largest index, or -1 for an empty set
func (s InterestSet) Max() int {
	if len(s.indices) == 0 {
		return -1
	}
	return s.indices[len(s.indices)-1]
}

// Indices returns a copy of the indices in ascending order
func (s InterestSet) Indices() []int {
	return slices.Clone(s.indices)
}
