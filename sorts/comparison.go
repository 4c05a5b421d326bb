package sorts

import (
	"slices"

	"github.com/lanrat/sortbench/heap"
)

// Bubble sorts s in place by repeated passes of adjacent swaps, stopping
// after the first pass that swaps nothing. Each pass leaves the largest
// remaining element at the end so the sorted suffix is skipped.
// Stable; O(n) best case, O(n²) worst case.
func Bubble[E any](s []E, less Less[E]) []E {
	for end := len(s) - 1; end > 0; end-- {
		swapped := false
		for i := 1; i <= end; i++ {
			if less(s[i], s[i-1]) {
				swap(s, i-1, i)
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
	return s
}

// Insertion sorts s in place by moving each element left into its position
// within the already sorted prefix.
// Stable; O(n) best case, O(n²) worst case.
func Insertion[E any](s []E, less Less[E]) []E {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && less(s[j], s[j-1]); j-- {
			swap(s, j-1, j)
		}
	}
	return s
}

// Selection sorts s in place by repeatedly swapping the first element of the
// remaining suffix with the suffix's least element. Not stable; O(n²).
func Selection[E any](s []E, less Less[E]) []E {
	for i := range s {
		m := i
		for j := i + 1; j < len(s); j++ {
			if less(s[j], s[m]) {
				m = j
			}
		}
		swap(s, i, m)
	}
	return s
}

// partition is a Hoare partition of s[left:right+1] around its middle
// element. It returns the first index of the right partition; every element
// before it is not greater than the pivot and every element from it on is
// not less than the pivot.
func partition[E any](s []E, left, right int, less Less[E]) int {
	pivot := s[int(uint(left+right)>>1)]
	i, j := left, right
	for i <= j {
		for less(s[i], pivot) {
			i++
		}
		for less(pivot, s[j]) {
			j--
		}
		if i <= j {
			swap(s, i, j)
			i++
			j--
		}
	}
	return i
}

// Quick sorts s in place using Hoare partitioning around the middle element.
// It splits each range at the partition index p into [left, p-1] and
// [p, right]; both are strictly smaller than the range they came from.
// Ranges are kept on an explicit stack, always processing the smaller one
// next, so the stack holds O(log n) ranges for any input.
// Not stable; O(n log n) average, O(n²) worst case.
func Quick[E any](s []E, less Less[E]) []E {
	type span struct{ left, right int }
	stack := []span{{0, len(s) - 1}}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for r.left < r.right {
			p := partition(s, r.left, r.right, less)
			lo, hi := span{r.left, p - 1}, span{p, r.right}
			if lo.right-lo.left > hi.right-hi.left {
				lo, hi = hi, lo
			}
			stack = append(stack, hi)
			r = lo
		}
	}
	return s
}

// Merge returns a sorted copy of s using top-down merge sort.
// Ties are taken from the left run so the sort is stable; O(n log n).
func Merge[E any](s []E, less Less[E]) []E {
	out := slices.Clone(s)
	if len(out) < 2 {
		return out
	}
	scratch := make([]E, len(out))
	mergeSort(out, scratch, less)
	return out
}

// mergeSort sorts s using scratch, which must be at least as long as s
func mergeSort[E any](s, scratch []E, less Less[E]) {
	if len(s) <= 1 {
		return
	}
	mid := len(s) >> 1
	mergeSort(s[:mid], scratch[:mid], less)
	mergeSort(s[mid:], scratch[mid:], less)

	left, right := s[:mid], s[mid:]
	if !less(right[0], left[len(left)-1]) {
		return // already in order
	}
	merged := scratch[:0]
	il, ir := 0, 0
	for il < len(left) && ir < len(right) {
		if less(right[ir], left[il]) {
			merged = append(merged, right[ir])
			ir++
		} else {
			merged = append(merged, left[il])
			il++
		}
	}
	// append whichever run is not exhausted
	merged = append(merged, left[il:]...)
	merged = append(merged, right[ir:]...)
	copy(s, merged)
}

// Heap returns a sorted copy of s. The input is loaded into a BinaryHeap
// whose root is the greatest element under less; the root is removed
// repeatedly and placed at the back of the result. Not stable; O(n log n).
func Heap[E any](s []E, less Less[E]) []E {
	h := heap.New(func(a, b E) bool { return less(b, a) }, s...)
	out := make([]E, len(s))
	for i := len(out) - 1; i >= 0; i-- {
		out[i], _ = h.Remove(h.MaxIndex())
	}
	return out
}

// Baseline sorts s in place with the standard library's general purpose
// sort. Not stable.
func Baseline[E any](s []E, less Less[E]) []E {
	slices.SortFunc(s, less.Compare)
	return s
}
