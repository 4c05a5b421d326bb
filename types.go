package sortbench

import (
	"slices"
	"time"

	"github.com/lanrat/sortbench/sorts"
)

// SortFunc is the uniform contract every benchmarked algorithm satisfies.
// It sorts s under less and returns the sorted slice, which may be s itself
// or a new slice.
type SortFunc[E any] func(s []E, less sorts.Less[E]) ([]E, error)

// AlgorithmInfo describes an algorithm for display and selection.
type AlgorithmInfo struct {
	ID    string // stable identifier used in configs and results
	Name  string // display name
	Color string // chart color
	// NumericOnly is set for the distribution sorts that need element offsets
	NumericOnly bool
}

// Algorithm binds an AlgorithmInfo to its implementation for element type E.
type Algorithm[E any] struct {
	AlgorithmInfo
	Sort SortFunc[E]
}

// Phase is the stage of a job a JobResult reports.
type Phase int

const (
	// Started is reported when a worker picks up a job.
	Started Phase = iota
	// Finished is reported when the job has completed or failed.
	Finished
)

func (p Phase) String() string {
	switch p {
	case Started:
		return "started"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Job is one (algorithm, sample) execution unit. Input is shared by every job
// of the same sample and must not be modified; Execute sorts a private copy.
type Job[E any] struct {
	Algorithm Algorithm[E]
	Sample    int
	Input     []E
	Less      sorts.Less[E]
	// Verify checks the output is ordered under Less
	Verify bool

	order int // position of Algorithm in the run's selection
}

// JobResult is emitted by a worker for every phase of a job.
type JobResult struct {
	Algorithm string
	Sample    int
	Phase     Phase
	// Elapsed and Err are only set for the Finished phase
	Elapsed time.Duration
	Err     error
}

// Execute runs the job on a copy of its input and returns the Finished
// result. The timer covers only the call to the algorithm; a panic inside it
// is returned as a *JobError.
func (j Job[E]) Execute() JobResult {
	input := slices.Clone(j.Input)
	start := time.Now()
	out, err := j.run(input)
	elapsed := time.Since(start)

	if err == nil && j.Verify {
		err = j.verify(out)
	}
	return JobResult{
		Algorithm: j.Algorithm.ID,
		Sample:    j.Sample,
		Phase:     Finished,
		Elapsed:   elapsed,
		Err:       err,
	}
}

// run calls the algorithm, converting panics and errors into a JobError
func (j Job[E]) run(input []E) (out []E, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, NewJobError(j.Algorithm.ID, j.Sample, r)
		}
	}()
	out, err = j.Algorithm.Sort(input, j.Less)
	if err != nil {
		return nil, NewJobError(j.Algorithm.ID, j.Sample, err)
	}
	return out, nil
}

// verify checks that out is a sorted result of the same length as the input
func (j Job[E]) verify(out []E) error {
	if len(out) != len(j.Input) {
		return NewVerificationError(j.Algorithm.ID, j.Sample, len(out), "length mismatch")
	}
	for i := 1; i < len(out); i++ {
		if j.Less(out[i], out[i-1]) {
			return NewVerificationError(j.Algorithm.ID, j.Sample, i, "out of order")
		}
	}
	return nil
}

// State is the lifecycle stage of a Harness run.
type State int32

const (
	// Idle means no run has started yet.
	Idle State = iota
	// Queued means jobs are being generated and enqueued.
	Queued
	// Running means jobs are being dispatched to workers.
	Running
	// Draining means the queue is empty and the last jobs are executing.
	Draining
	// Completed means the last run finished and its report was delivered.
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Queued:
		return "queued"
	case Running:
		return "running"
	case Draining:
		return "draining"
	case Completed:
		return "completed"
	}
	return "unknown"
}
