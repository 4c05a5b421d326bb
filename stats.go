package sortbench

import (
	"math"
	"strconv"
	"time"

	"github.com/samber/lo"
)

// Ranking names the fastest and slowest algorithm of a run by total elapsed
// time over all samples. Both are empty if nothing succeeded.
type Ranking struct {
	Best  string
	Worst string
}

// Summary holds the statistics of one algorithm over all samples of a run.
type Summary struct {
	Algorithm string
	Total     time.Duration
	Average   time.Duration
	Min       time.Duration
	Max       time.Duration
	// Count is the number of samples with a result
	Count int
	// Failures is the number of samples where the job failed
	Failures int
}

// Summarize returns one Summary per algorithm in order. Algorithms that
// never ran are included with zero counts.
func Summarize(r *Results, order []string) []Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Map(order, func(id string, _ int) Summary {
		return r.summary(id)
	})
}

func (r *Results) summary(id string) Summary {
	s := Summary{Algorithm: id}
	for _, sample := range r.samples() {
		if _, failed := r.failed[sample][id]; failed {
			s.Failures++
			continue
		}
		d, ok := r.times[sample][id]
		if !ok {
			continue
		}
		if s.Count == 0 || d < s.Min {
			s.Min = d
		}
		s.Max = max(s.Max, d)
		s.Total += d
		s.Count++
	}
	if s.Count > 0 {
		s.Average = s.Total / time.Duration(s.Count)
	}
	return s
}

// RankSummaries picks the best and worst of summaries by total time. The
// first summary wins a tie, so callers control tie-breaks through order.
// Summaries without a single result are ignored.
func RankSummaries(summaries []Summary) Ranking {
	var rank Ranking
	var best, worst time.Duration
	for _, s := range summaries {
		if s.Count == 0 {
			continue
		}
		if rank.Best == "" || s.Total < best {
			rank.Best, best = s.Algorithm, s.Total
		}
		if rank.Worst == "" || s.Total > worst {
			rank.Worst, worst = s.Algorithm, s.Total
		}
	}
	return rank
}

// Rank returns the Ranking of the algorithms listed in order.
func Rank(r *Results, order []string) Ranking {
	return RankSummaries(Summarize(r, order))
}

// FormatTime formats a millisecond value truncated to five fractional
// digits, followed by unit if one is given.
func FormatTime(ms float64, unit string) string {
	s := strconv.FormatFloat(math.Trunc(ms*1e5)/1e5, 'f', 5, 64)
	if unit == "" {
		return s
	}
	return s + " " + unit
}
