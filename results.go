package sortbench

import (
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"
)

// Results is the table of elapsed times of a run, keyed by sample index and
// algorithm ID. Jobs that failed are kept separately and are reported as
// unavailable. During a run only the harness writes to it; afterwards it is
// read-only. It is safe for concurrent readers.
type Results struct {
	mu     sync.RWMutex
	times  map[int]map[string]time.Duration // GUARDED_BY(mu)
	failed map[int]map[string]error         // GUARDED_BY(mu)
}

// NewResults returns an empty table.
func NewResults() *Results {
	return &Results{
		times:  map[int]map[string]time.Duration{},
		failed: map[int]map[string]error{},
	}
}

// Record stores the elapsed time of algorithm id for sample.
func (r *Results) Record(sample int, id string, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.times[sample] == nil {
		r.times[sample] = map[string]time.Duration{}
	}
	r.times[sample][id] = elapsed
	delete(r.failed[sample], id)
}

// Fail marks algorithm id as unavailable for sample.
func (r *Results) Fail(sample int, id string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failed[sample] == nil {
		r.failed[sample] = map[string]error{}
	}
	r.failed[sample][id] = err
	delete(r.times[sample], id)
}

// Get returns the elapsed time of algorithm id for sample. The boolean is
// false if there is no result, including when the job failed.
func (r *Results) Get(sample int, id string) (time.Duration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.times[sample][id]
	return d, ok
}

// Milliseconds is like Get but returns fractional milliseconds.
func (r *Results) Milliseconds(sample int, id string) (float64, bool) {
	d, ok := r.Get(sample, id)
	return Milliseconds(d), ok
}

// Err returns the error of a failed job, or nil.
func (r *Results) Err(sample int, id string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.failed[sample][id]
}

// Samples returns the indexes of all samples with at least one result or
// failure, in increasing order.
func (r *Results) Samples() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.samples()
}

func (r *Results) samples() []int {
	samples := lo.Union(lo.Keys(r.times), lo.Keys(r.failed))
	slices.Sort(samples)
	return samples
}

// Len returns the number of samples in the table.
func (r *Results) Len() int {
	return len(r.Samples())
}

// Algorithms returns the IDs with a recorded time for sample, sorted.
func (r *Results) Algorithms(sample int) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := lo.Keys(r.times[sample])
	slices.Sort(ids)
	return ids
}

// Table returns a copy of the table as sample -> algorithm -> milliseconds.
func (r *Results) Table() map[int]map[string]float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[int]map[string]float64, len(r.times))
	for sample, row := range r.times {
		out[sample] = lo.MapValues(row, func(d time.Duration, _ string) float64 {
			return Milliseconds(d)
		})
	}
	return out
}

// TotalTime sums the elapsed times over all samples, restricted to the
// given algorithm IDs if any are supplied.
func (r *Results) TotalTime(ids ...string) time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.SumBy(lo.Values(r.times), func(row map[string]time.Duration) time.Duration {
		if len(ids) == 0 {
			return lo.Sum(lo.Values(row))
		}
		return lo.SumBy(ids, func(id string) time.Duration { return row[id] })
	})
}

// Window returns a new table holding the samples in [first, last].
func (r *Results) Window(first, last int) *Results {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w := NewResults()
	for sample, row := range r.times {
		if sample >= first && sample <= last {
			w.times[sample] = lo.Assign(row)
		}
	}
	for sample, row := range r.failed {
		if sample >= first && sample <= last {
			w.failed[sample] = lo.Assign(row)
		}
	}
	return w
}

// Milliseconds converts a duration to fractional milliseconds.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
