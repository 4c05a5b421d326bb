package sortbench_test

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lanrat/sortbench"
	"github.com/lanrat/sortbench/sorts"
)

// algorithm wraps fn as an Algorithm with the given ID
func algorithm(id string, fn sortbench.SortFunc[int]) sortbench.Algorithm[int] {
	return sortbench.Algorithm[int]{
		AlgorithmInfo: sortbench.AlgorithmInfo{ID: id, Name: id},
		Sort:          fn,
	}
}

// insertion is a SortFunc used by the custom test algorithms
func insertion(s []int, less sorts.Less[int]) ([]int, error) {
	return sorts.Insertion(s, less), nil
}

// inputRecorder remembers the input every algorithm saw for every sample
type inputRecorder struct {
	mu     sync.Mutex
	inputs map[string][][]int
}

func newInputRecorder() *inputRecorder {
	return &inputRecorder{inputs: map[string][][]int{}}
}

// algorithm returns an algorithm that records a copy of its input then sorts it
func (r *inputRecorder) algorithm(id string) sortbench.Algorithm[int] {
	return algorithm(id, func(s []int, less sorts.Less[int]) ([]int, error) {
		r.mu.Lock()
		r.inputs[id] = append(r.inputs[id], slices.Clone(s))
		r.mu.Unlock()
		return insertion(s, less)
	})
}

func (r *inputRecorder) get(id string) [][]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inputs[id]
}

// activeCounter tracks the number of simultaneously running jobs
type activeCounter struct {
	active atomic.Int64
	peak   atomic.Int64
	runs   atomic.Int64
}

func (c *activeCounter) algorithm(id string, hold time.Duration) sortbench.Algorithm[int] {
	return algorithm(id, func(s []int, less sorts.Less[int]) ([]int, error) {
		n := c.active.Add(1)
		for {
			peak := c.peak.Load()
			if n <= peak || c.peak.CompareAndSwap(peak, n) {
				break
			}
		}
		time.Sleep(hold)
		c.runs.Add(1)
		c.active.Add(-1)
		return insertion(s, less)
	})
}

// failing returns an algorithm whose errSample-th call returns an error and
// whose panicSample-th call panics. Calls match sample indexes when jobs run
// one at a time.
func failing(id string, errSample, panicSample int) sortbench.Algorithm[int] {
	var calls atomic.Int64
	return algorithm(id, func(s []int, less sorts.Less[int]) ([]int, error) {
		n := int(calls.Add(1)) - 1
		switch n {
		case errSample:
			return nil, fmt.Errorf("refusing sample %d", n)
		case panicSample:
			panic("boom")
		}
		return insertion(s, less)
	})
}

func ints(count int) []int {
	s := make([]int, count)
	for i := range s {
		s[i] = count - i
	}
	return s
}
