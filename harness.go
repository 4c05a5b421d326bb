// Package sortbench benchmarks sorting algorithms against each other.
//
// A run generates SampleCount random inputs and times every selected
// algorithm on each of them. Every algorithm of a sample sorts its own copy
// of the same input. Jobs are executed either in-process or on a bounded
// pool of worker goroutines, and the elapsed times are collected into a
// Results table and aggregated into a Report.
package sortbench

import (
	"cmp"
	"context"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"cloudeng.io/errors"
	"cloudeng.io/logging/ctxlog"
	"github.com/lanrat/sortbench/gen"
	"github.com/lanrat/sortbench/heap"
	"github.com/lanrat/sortbench/sorts"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// GenerateFunc returns a new random input of count elements.
type GenerateFunc[E any] func(count int, rng *rand.Rand) []E

// Progress describes how far a run has got. It is reported after every
// finished job.
type Progress struct {
	// Done and Total count the finished and the scheduled jobs of the run
	Done  int
	Total int
	// Algorithm is the algorithm of the job that just finished
	Algorithm string
	// AlgorithmDone and AlgorithmTotal count the jobs of Algorithm
	AlgorithmDone  int
	AlgorithmTotal int
}

// Percent returns the completed share of the run in the range [0, 100].
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 100
	}
	return 100 * float64(p.Done) / float64(p.Total)
}

// Report is the outcome of a completed run.
type Report struct {
	Config     Config
	Algorithms []AlgorithmInfo // the algorithms run, in registry order
	Results    *Results
	Ranking    Ranking
	Summaries  []Summary
	// Errors holds every job failure of the run, nil if there were none
	Errors  error
	Elapsed time.Duration
}

// Option configures a Harness.
type Option func(*options)

type options struct {
	progress func(Progress)
	onError  func(error)
	metrics  *Metrics
}

// WithProgress sets a function called after every finished job. It is
// called from the goroutine running Sort.
func WithProgress(fn func(Progress)) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithErrorHandler sets a function called for every failed job. It is
// called from the goroutine running Sort.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}

// WithMetrics records the progress of runs in m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// Harness runs benchmarks of a fixed set of algorithms over element type E.
// A Harness runs one benchmark at a time and may be reused once Sort has
// returned.
type Harness[E cmp.Ordered] struct {
	config     Config
	algorithms []Algorithm[E]
	generate   GenerateFunc[E]
	less       sorts.Less[E]
	executor   Executor[E]
	opts       options
	state      atomic.Int32
	last       atomic.Pointer[Report]
}

// New returns a Harness for the algorithms selected by config.Algorithms
// out of algorithms, using generate to produce the sample inputs. Unset
// config values take their defaults; a nil config uses DefaultConfig.
func New[E cmp.Ordered](config *Config, algorithms []Algorithm[E], generate GenerateFunc[E], opts ...Option) (*Harness[E], error) {
	config = mergeConfig(config)
	selected, err := Select(algorithms, config.Algorithms)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, NewConfigError("Algorithms", config.Algorithms, "no algorithms to run", nil)
	}
	if generate == nil {
		return nil, NewConfigError("generate", nil, "a generator is required", nil)
	}
	h := &Harness[E]{
		config:     *config,
		algorithms: selected,
		generate:   generate,
		less:       sorts.Order[E](config.Descending),
	}
	if config.RunAsWorker {
		h.executor = &ConcurrentExecutor[E]{Workers: config.WorkerCount}
	} else {
		h.executor = SyncExecutor[E]{}
	}
	for _, opt := range opts {
		opt(&h.opts)
	}
	return h, nil
}

// State returns the current stage of the harness.
func (h *Harness[E]) State() State {
	return State(h.state.Load())
}

// Config returns the effective configuration of the harness.
func (h *Harness[E]) Config() Config {
	return h.config
}

// Report returns the report of the last completed run, or nil if the last
// run was cancelled or none has completed.
func (h *Harness[E]) Report() *Report {
	return h.last.Load()
}

// Sort performs one benchmark run and passes its report to done, which may
// be nil. Failed jobs do not stop the run; they are left out of the results
// and collected into Report.Errors. If ctx is cancelled the partial results
// are discarded, done is not called and the context's error is returned.
// Calling Sort while a run is in progress returns ErrRunInProgress.
func (h *Harness[E]) Sort(ctx context.Context, done func(*Report)) error {
	if !h.state.CompareAndSwap(int32(Idle), int32(Queued)) &&
		!h.state.CompareAndSwap(int32(Completed), int32(Queued)) {
		return ErrRunInProgress
	}
	h.last.Store(nil)
	report, err := h.run(ctx)
	if err != nil {
		h.opts.metrics.reset()
		h.state.Store(int32(Idle))
		return err
	}
	h.last.Store(report)
	h.state.Store(int32(Completed))
	if done != nil {
		done(report)
	}
	return nil
}

// enqueue generates one input per sample and queues a job for every
// algorithm, ordered by sample and then by selection order
func (h *Harness[E]) enqueue() *heap.PriorityQueue[Job[E]] {
	queue := heap.NewPriorityQueue(func(a, b Job[E]) bool {
		if a.Sample != b.Sample {
			return a.Sample < b.Sample
		}
		return a.order < b.order
	})
	rng := gen.NewRand(h.config.Seed)
	for sample := range h.config.SampleCount {
		input := h.generate(h.config.ItemCount, rng)
		for i, algorithm := range h.algorithms {
			queue.Push(Job[E]{
				Algorithm: algorithm,
				Sample:    sample,
				Input:     input,
				Less:      h.less,
				Verify:    h.config.Verify,
				order:     i,
			})
		}
	}
	return queue
}

func (h *Harness[E]) run(ctx context.Context) (*Report, error) {
	start := time.Now()
	ctx = ctxlog.ContextWith(ctx, "component", "sortbench")
	log := ctxlog.Logger(ctx)

	queue := h.enqueue()
	total := queue.Len()
	h.opts.metrics.enqueued(total)
	log.Info("run started",
		"algorithms", algorithmIDs(h.algorithms),
		"samples", h.config.SampleCount,
		"items", h.config.ItemCount,
		"workers", h.workers(),
		"jobs", total)

	h.state.Store(int32(Running))
	jobs := make(chan Job[E])
	results := make(chan JobResult, h.config.ResultChanBuffSize)
	group, gctx := errgroup.WithContext(ctx)

	// dispatch hands queued jobs over as the executor accepts them
	group.Go(func() error {
		defer close(jobs)
		for {
			job, ok := queue.Pop()
			if !ok {
				h.state.Store(int32(Draining))
				return nil
			}
			select {
			case jobs <- job:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})
	group.Go(func() error {
		defer close(results)
		return h.executor.Run(gctx, jobs, results)
	})

	rec := newRecorder(h.algorithms, h.config.SampleCount)
	for r := range results {
		h.record(ctx, rec, r)
	}
	if err := group.Wait(); err != nil {
		log.Info("run aborted", "error", err, "finished", rec.done, "jobs", total)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	order := algorithmIDs(h.algorithms)
	summaries := Summarize(rec.results, order)
	report := &Report{
		Config:     h.config,
		Algorithms: lo.Map(h.algorithms, func(a Algorithm[E], _ int) AlgorithmInfo { return a.AlgorithmInfo }),
		Results:    rec.results,
		Ranking:    RankSummaries(summaries),
		Summaries:  summaries,
		Errors:     rec.errs.Err(),
		Elapsed:    time.Since(start),
	}
	log.Info("run completed",
		"elapsed", report.Elapsed,
		"best", report.Ranking.Best,
		"worst", report.Ranking.Worst,
		"failures", rec.failures)
	return report, nil
}

// workers returns the number of jobs that may execute at once
func (h *Harness[E]) workers() int {
	if h.config.RunAsWorker {
		return h.config.WorkerCount
	}
	return 1
}

// recorder accumulates the results of one run. It is only used by the
// goroutine running Sort.
type recorder struct {
	results  *Results
	errs     errors.M
	done     int
	failures int
	perAlgo  map[string]int
	total    int
	samples  int
}

func newRecorder[E any](algorithms []Algorithm[E], samples int) *recorder {
	return &recorder{
		results: NewResults(),
		perAlgo: make(map[string]int, len(algorithms)),
		total:   len(algorithms) * samples,
		samples: samples,
	}
}

func (h *Harness[E]) record(ctx context.Context, rec *recorder, r JobResult) {
	log := ctxlog.Logger(ctx)
	if r.Phase == Started {
		h.opts.metrics.started()
		log.Debug("job started", "algorithm", r.Algorithm, "sample", r.Sample)
		return
	}
	h.opts.metrics.finished(r.Algorithm, r.Elapsed, r.Err)
	rec.done++
	rec.perAlgo[r.Algorithm]++
	if r.Err != nil {
		rec.failures++
		rec.results.Fail(r.Sample, r.Algorithm, r.Err)
		rec.errs.Append(r.Err)
		log.Warn("job failed", "algorithm", r.Algorithm, "sample", r.Sample, "error", r.Err)
		if h.opts.onError != nil {
			h.opts.onError(r.Err)
		}
	} else {
		rec.results.Record(r.Sample, r.Algorithm, r.Elapsed)
		log.Debug("job finished", "algorithm", r.Algorithm, "sample", r.Sample, "elapsed", r.Elapsed)
	}
	if h.opts.progress != nil {
		h.opts.progress(Progress{
			Done:           rec.done,
			Total:          rec.total,
			Algorithm:      r.Algorithm,
			AlgorithmDone:  rec.perAlgo[r.Algorithm],
			AlgorithmTotal: rec.samples,
		})
	}
}
