package sorts

import (
	"math"

	"golang.org/x/exp/constraints"
)

// MaxPigeonholeRange is the largest max-min+1 span Pigeonhole accepts.
const MaxPigeonholeRange = 1 << 24

// Number is the set of element types Bucket can sort.
type Number interface {
	constraints.Integer | constraints.Float
}

// bounds returns the numeric minimum and maximum of s, which must not be empty
func bounds[E Number](s []E) (lo, hi E) {
	lo, hi = s[0], s[0]
	for _, v := range s[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// descending reports whether less orders numerically greater values first
func descending[E Number](lo, hi E, less Less[E]) bool {
	return less(hi, lo)
}

// scatter concatenates groups into a new slice of length n, in order or in
// reverse order
func scatter[E any](groups [][]E, n int, reverse bool) []E {
	out := make([]E, 0, n)
	if reverse {
		for i := len(groups) - 1; i >= 0; i-- {
			out = append(out, groups[i]...)
		}
		return out
	}
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// Pigeonhole returns a sorted copy of s. Every element is placed in one of
// max-min+1 holes keyed by its offset from the minimum, then the holes are
// concatenated. Equal elements keep their input order so the sort is
// stable; O(n+range).
//
// less must agree with the numeric order of the elements or with its
// reverse; for a descending policy the holes are concatenated in reverse.
// A *RangeError is returned if the span exceeds MaxPigeonholeRange.
func Pigeonhole[E constraints.Integer](s []E, less Less[E]) ([]E, error) {
	if len(s) == 0 {
		return []E{}, nil
	}
	lo, hi := bounds(s)
	// computed in uint64 so spans wider than E do not overflow
	span := uint64(hi) - uint64(lo)
	if span >= MaxPigeonholeRange {
		return nil, NewRangeError("pigeonhole", float64(lo), float64(hi), MaxPigeonholeRange)
	}
	holes := make([][]E, span+1)
	for _, v := range s {
		i := uint64(v) - uint64(lo)
		holes[i] = append(holes[i], v)
	}
	return scatter(holes, len(s), descending(lo, hi, less)), nil
}

// Bucket returns a sorted copy of s. The span between the minimum and
// maximum is divided into bucketCount buckets of equal width, every element
// is scattered into its bucket, each bucket is insertion sorted under less
// and the buckets are concatenated. A bucketCount of zero or less picks
// len(s)/16, or 5 for small inputs. O(n+k) average, O(n²) worst case.
//
// less must agree with the numeric order of the elements or with its
// reverse. ErrNaN is returned if s contains a NaN and a *RangeError if the
// span is not finite.
func Bucket[E Number](s []E, bucketCount int, less Less[E]) ([]E, error) {
	if len(s) == 0 {
		return []E{}, nil
	}
	for _, v := range s {
		if math.IsNaN(float64(v)) {
			return nil, ErrNaN
		}
	}
	if bucketCount <= 0 {
		bucketCount = len(s) >> 4
		if bucketCount == 0 {
			bucketCount = 5
		}
	}
	lo, hi := bounds(s)
	width := (float64(hi) - float64(lo)) / float64(bucketCount)
	if math.IsInf(width, 0) {
		return nil, NewRangeError("bucket", float64(lo), float64(hi), math.MaxFloat64)
	}
	buckets := make([][]E, bucketCount)
	for _, v := range s {
		i := 0
		if width > 0 {
			i = int((float64(v) - float64(lo)) / width)
		}
		if i >= bucketCount {
			i = bucketCount - 1
		}
		buckets[i] = append(buckets[i], v)
	}
	for _, b := range buckets {
		Insertion(b, less)
	}
	return scatter(buckets, len(s), descending(lo, hi, less)), nil
}
