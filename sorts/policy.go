// Package sorts implements classic in-memory sorting algorithms behind a
// uniform contract: a slice and a comparison policy in, a sorted slice out.
//
// Bubble, Insertion, Selection, Quick and Baseline sort in place and return
// their input. Merge and Heap return a new slice and leave the input
// untouched. Pigeonhole and Bucket are distribution sorts restricted to
// numeric element types; they return a new slice or an error.
package sorts

import "cmp"

// Less is a comparison policy. It reports whether a must be ordered before b.
// It must implement a strict weak ordering (irreflexive and transitive);
// this is not checked and the result of sorting with an invalid policy is
// undefined.
type Less[E any] func(a, b E) bool

// Ascending orders elements by their natural order.
func Ascending[E cmp.Ordered]() Less[E] {
	return cmp.Less[E]
}

// Descending orders elements by the reverse of their natural order.
func Descending[E cmp.Ordered]() Less[E] {
	return func(a, b E) bool { return cmp.Less(b, a) }
}

// Order returns Descending when desc is true and Ascending otherwise.
func Order[E cmp.Ordered](desc bool) Less[E] {
	if desc {
		return Descending[E]()
	}
	return Ascending[E]()
}

// Reverse inverts a policy.
func Reverse[E any](less Less[E]) Less[E] {
	return func(a, b E) bool { return less(b, a) }
}

// Compare converts a policy into a three-way comparison suitable for
// slices.SortFunc.
func (less Less[E]) Compare(a, b E) int {
	switch {
	case less(a, b):
		return -1
	case less(b, a):
		return 1
	}
	return 0
}

// IsSorted reports whether s is ordered under less.
func IsSorted[E any](s []E, less Less[E]) bool {
	for i := 1; i < len(s); i++ {
		if less(s[i], s[i-1]) {
			return false
		}
	}
	return true
}

func swap[E any](s []E, i, j int) {
	s[i], s[j] = s[j], s[i]
}
