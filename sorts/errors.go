package sorts

import (
	"errors"
	"fmt"
)

// ErrNaN is returned by Bucket when the input contains a NaN, which has no
// position in a numeric order.
var ErrNaN = errors.New("sorts: NaN element has no bucket")

// RangeError is returned by the distribution sorts when the span between the
// smallest and largest element is too wide to allocate holes or buckets for.
type RangeError struct {
	// Algorithm is the sort that rejected the input
	Algorithm string
	// Min and Max are the numeric bounds of the input
	Min, Max float64
	// Limit is the largest span the algorithm accepts
	Limit float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s sort: span [%g, %g] exceeds limit %g", e.Algorithm, e.Min, e.Max, e.Limit)
}

// NewRangeError creates a RangeError
func NewRangeError(algorithm string, lo, hi, limit float64) error {
	return &RangeError{Algorithm: algorithm, Min: lo, Max: hi, Limit: limit}
}
