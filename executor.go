package sortbench

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Executor runs the jobs a Harness dispatches. Run consumes jobs until the
// channel is closed, emits a Started and a Finished JobResult for every job
// and returns once all accepted jobs are finished. A job is only received
// when the executor has capacity to start it, so jobs wait in the harness
// queue while every worker is busy. Run returns the context's error if it is
// cancelled.
type Executor[E any] interface {
	Run(ctx context.Context, jobs <-chan Job[E], results chan<- JobResult) error
}

// execute runs a single job, reporting both of its phases
func execute[E any](ctx context.Context, job Job[E], results chan<- JobResult) error {
	select {
	case results <- JobResult{Algorithm: job.Algorithm.ID, Sample: job.Sample, Phase: Started}:
	case <-ctx.Done():
		return ctx.Err()
	}
	r := job.Execute()
	select {
	case results <- r:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// SyncExecutor runs every job in-process on the goroutine calling Run, one
// at a time.
type SyncExecutor[E any] struct{}

// Run implements Executor.
func (SyncExecutor[E]) Run(ctx context.Context, jobs <-chan Job[E], results chan<- JobResult) error {
	for {
		select {
		case job, more := <-jobs:
			if !more {
				return nil
			}
			if err := execute(ctx, job, results); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// ConcurrentExecutor runs jobs on up to Workers goroutines. Workers are
// created on demand: a job goes to an idle worker if there is one, otherwise
// to a new worker while fewer than Workers exist, otherwise it waits until a
// worker becomes idle. Workers live until Run returns.
type ConcurrentExecutor[E any] struct {
	Workers int
}

// worker runs the jobs sent to inbox and announces itself on idle after each
// one
func (e *ConcurrentExecutor[E]) worker(ctx context.Context, inbox chan Job[E], idle chan<- chan Job[E], results chan<- JobResult) error {
	for job := range inbox {
		if err := execute(ctx, job, results); err != nil {
			return err
		}
		// idle has room for every worker and a worker is queued at most once
		idle <- inbox
	}
	return nil
}

// Run implements Executor.
func (e *ConcurrentExecutor[E]) Run(ctx context.Context, jobs <-chan Job[E], results chan<- JobResult) error {
	workers := max(e.Workers, 1)
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	idle := make(chan chan Job[E], workers)
	var inboxes []chan Job[E]

	// acquire returns an idle worker's inbox, creating a worker if none is idle
	acquire := func() chan Job[E] {
		select {
		case inbox := <-idle:
			return inbox
		default:
		}
		inbox := make(chan Job[E], 1)
		inboxes = append(inboxes, inbox)
		group.Go(func() error { return e.worker(ctx, inbox, idle, results) })
		return inbox
	}

	var err error
dispatch:
	for {
		var inbox chan Job[E]
		if len(inboxes) == workers {
			// every worker exists: wait for one to become idle before
			// taking the next job so it stays queued upstream
			select {
			case inbox = <-idle:
			case <-ctx.Done():
				err = ctx.Err()
				break dispatch
			}
		}
		select {
		case job, more := <-jobs:
			if !more {
				break dispatch
			}
			if inbox == nil {
				inbox = acquire()
			}
			inbox <- job
		case <-ctx.Done():
			err = ctx.Err()
			break dispatch
		}
	}
	for _, inbox := range inboxes {
		close(inbox)
	}
	if werr := group.Wait(); err == nil {
		err = werr
	}
	return err
}
