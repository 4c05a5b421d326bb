package sortbench_test

import (
	"bytes"
	"context"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"testing"
	"time"

	"cloudeng.io/logging/ctxlog"
	"cloudeng.io/sync/synctestutil"
	"github.com/lanrat/sortbench"
	"github.com/lanrat/sortbench/gen"
	"github.com/lanrat/sortbench/sorts"
	"github.com/stretchr/testify/require"
)

// TestRunResultsTable runs three samples of bubble and quick sort over 100
// elements and checks the shape of the table and the ranking
func TestRunResultsTable(t *testing.T) {
	defer synctestutil.AssertNoGoroutinesRacy(t, time.Second)()

	report, err := sortbench.Run(context.Background(), &sortbench.Config{
		ItemCount:   100,
		SampleCount: 3,
		Algorithms:  []string{sortbench.BubbleSort, sortbench.QuickSort},
		Seed:        1,
		Verify:      true,
	})
	require.NoError(t, err)
	require.NoError(t, report.Errors)

	results := report.Results
	require.Equal(t, 3, results.Len())
	require.Equal(t, []int{0, 1, 2}, results.Samples())
	for _, sample := range results.Samples() {
		require.Equal(t, []string{sortbench.BubbleSort, sortbench.QuickSort}, results.Algorithms(sample))
	}

	bubble := results.TotalTime(sortbench.BubbleSort)
	quick := results.TotalTime(sortbench.QuickSort)
	require.Equal(t, bubble+quick, results.TotalTime())
	switch {
	case quick < bubble:
		require.Equal(t, sortbench.Ranking{Best: sortbench.QuickSort, Worst: sortbench.BubbleSort}, report.Ranking)
	case bubble < quick:
		require.Equal(t, sortbench.Ranking{Best: sortbench.BubbleSort, Worst: sortbench.QuickSort}, report.Ranking)
	default:
		// a tie goes to the first algorithm in registry order
		require.Equal(t, sortbench.Ranking{Best: sortbench.BubbleSort, Worst: sortbench.BubbleSort}, report.Ranking)
	}

	table := results.Table()
	require.Len(t, table, 3)
	for _, row := range table {
		require.Len(t, row, 2)
	}
	require.Equal(t, []sortbench.AlgorithmInfo{
		{ID: sortbench.BubbleSort, Name: "Bubble", Color: "#ff9900"},
		{ID: sortbench.QuickSort, Name: "Quick", Color: "#109618"},
	}, report.Algorithms)
}

func TestRunAllAlgorithms(t *testing.T) {
	for _, typ := range []gen.ElementType{gen.Numeric, gen.String} {
		for _, worker := range []bool{false, true} {
			report, err := sortbench.Run(context.Background(), &sortbench.Config{
				ItemCount:   200,
				ElementType: typ,
				SampleCount: 2,
				RunAsWorker: worker,
				WorkerCount: 4,
				Descending:  true,
				Seed:        7,
				Verify:      true,
			})
			require.NoError(t, err, "%s worker=%v", typ, worker)
			require.NoError(t, report.Errors, "%s worker=%v", typ, worker)
			want := 9
			if typ == gen.String {
				want = 7
			}
			require.Len(t, report.Algorithms, want)
			require.Len(t, report.Summaries, want)
			for _, s := range report.Summaries {
				require.Equal(t, 2, s.Count, s.Algorithm)
				require.Zero(t, s.Failures, s.Algorithm)
			}
		}
	}
}

func TestRunRejectsNumericOnlyForStrings(t *testing.T) {
	_, err := sortbench.Run(context.Background(), &sortbench.Config{
		ElementType: gen.String,
		Algorithms:  []string{sortbench.QuickSort, sortbench.PigeonholeSort},
	})
	var cfgErr *sortbench.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	var typeErr *sortbench.UnsupportedElementTypeError
	require.ErrorAs(t, err, &typeErr)
	require.Equal(t, sortbench.PigeonholeSort, typeErr.Algorithm)
}

// TestSampleFairness checks every algorithm of a sample receives an
// identical, private copy of the sample's input
func TestSampleFairness(t *testing.T) {
	for _, worker := range []bool{false, true} {
		rec := newInputRecorder()
		algorithms := []sortbench.Algorithm[int]{
			rec.algorithm("first"),
			rec.algorithm("second"),
			rec.algorithm("third"),
		}
		h, err := sortbench.New(&sortbench.Config{
			ItemCount:   50,
			SampleCount: 4,
			RunAsWorker: worker,
			WorkerCount: 3,
			Seed:        42,
		}, algorithms, gen.Ints)
		require.NoError(t, err)
		require.NoError(t, h.Sort(context.Background(), nil))

		first := rec.get("first")
		require.Len(t, first, 4)
		for _, id := range []string{"second", "third"} {
			got := rec.get(id)
			require.Len(t, got, 4)
			// concurrent runs may start samples out of order, compare as sets
			for _, input := range got {
				require.True(t, slices.ContainsFunc(first, func(s []int) bool {
					return slices.Equal(s, input)
				}), "%s saw an input the first algorithm did not", id)
			}
		}
		for _, input := range first {
			require.Len(t, input, 50)
			require.False(t, sorts.IsSorted(input, sorts.Ascending[int]()), "input was sorted before it was handed out")
		}
	}
}

func TestSameSeedSameInputs(t *testing.T) {
	run := func() [][]int {
		rec := newInputRecorder()
		h, err := sortbench.New(&sortbench.Config{ItemCount: 20, SampleCount: 3, Seed: 99},
			[]sortbench.Algorithm[int]{rec.algorithm("a")}, gen.Ints)
		require.NoError(t, err)
		require.NoError(t, h.Sort(context.Background(), nil))
		return rec.get("a")
	}
	require.Equal(t, run(), run())
}

// TestWorkerBound checks no more than WorkerCount jobs run at once
func TestWorkerBound(t *testing.T) {
	defer synctestutil.AssertNoGoroutinesRacy(t, time.Second)()

	workers := min(3, runtime.NumCPU())
	var counter activeCounter
	algorithms := []sortbench.Algorithm[int]{
		counter.algorithm("a", 2*time.Millisecond),
		counter.algorithm("b", 2*time.Millisecond),
		counter.algorithm("c", 2*time.Millisecond),
		counter.algorithm("d", 2*time.Millisecond),
	}
	h, err := sortbench.New(&sortbench.Config{
		ItemCount:   10,
		SampleCount: 10,
		RunAsWorker: true,
		WorkerCount: workers,
	}, algorithms, gen.Ints)
	require.NoError(t, err)
	require.NoError(t, h.Sort(context.Background(), nil))
	require.EqualValues(t, 40, counter.runs.Load())
	require.GreaterOrEqual(t, counter.peak.Load(), int64(1))
	require.LessOrEqual(t, counter.peak.Load(), int64(workers))
}

func TestSyncExecutorRunsOneAtATime(t *testing.T) {
	var counter activeCounter
	h, err := sortbench.New(&sortbench.Config{
		ItemCount:   10,
		SampleCount: 5,
		WorkerCount: 4, // ignored without RunAsWorker
	}, []sortbench.Algorithm[int]{
		counter.algorithm("a", time.Millisecond),
		counter.algorithm("b", time.Millisecond),
	}, gen.Ints)
	require.NoError(t, err)
	require.NoError(t, h.Sort(context.Background(), nil))
	require.EqualValues(t, 10, counter.runs.Load())
	require.EqualValues(t, 1, counter.peak.Load())
}

// TestFailedJobs checks failing and panicking jobs are reported as
// unavailable without stopping the run
func TestFailedJobs(t *testing.T) {
	for _, worker := range []bool{false, true} {
		var handled []error
		h, err := sortbench.New(&sortbench.Config{
			ItemCount:   20,
			SampleCount: 4,
			RunAsWorker: worker,
			WorkerCount: 2,
		}, []sortbench.Algorithm[int]{
			algorithm("ok", insertion),
			failing("flaky", 1, 2),
		}, gen.Ints, sortbench.WithErrorHandler(func(err error) {
			handled = append(handled, err)
		}))
		require.NoError(t, err)

		var report *sortbench.Report
		require.NoError(t, h.Sort(context.Background(), func(r *sortbench.Report) { report = r }))
		require.NotNil(t, report)
		require.Len(t, handled, 2)
		require.Error(t, report.Errors)

		var jobErr *sortbench.JobError
		require.ErrorAs(t, report.Errors, &jobErr)
		require.Equal(t, "flaky", jobErr.Algorithm)

		unavailable := 0
		for _, sample := range report.Results.Samples() {
			_, ok := report.Results.Get(sample, "ok")
			require.True(t, ok)
			if _, ok := report.Results.Get(sample, "flaky"); !ok {
				unavailable++
				require.Error(t, report.Results.Err(sample, "flaky"))
			}
		}
		require.Equal(t, 2, unavailable)
		summaries := report.Summaries
		require.Equal(t, "flaky", summaries[1].Algorithm)
		require.Equal(t, 2, summaries[1].Failures)
		require.Equal(t, 2, summaries[1].Count)

		if !worker {
			// jobs ran in sample order
			_, ok := report.Results.Get(1, "flaky")
			require.False(t, ok)
			var panicErr *sortbench.JobError
			require.ErrorAs(t, report.Results.Err(2, "flaky"), &panicErr)
			require.Equal(t, "boom", panicErr.Cause)
			require.Equal(t, 2, panicErr.Sample)
		}
	}
}

func TestVerification(t *testing.T) {
	broken := algorithm("broken", func(s []int, _ sorts.Less[int]) ([]int, error) {
		return s, nil
	})
	short := algorithm("short", func(s []int, less sorts.Less[int]) ([]int, error) {
		return sorts.Insertion(s, less)[1:], nil
	})
	h, err := sortbench.New(&sortbench.Config{ItemCount: 100, Verify: true, Seed: 5},
		[]sortbench.Algorithm[int]{broken, short}, gen.Ints)
	require.NoError(t, err)
	require.NoError(t, h.Sort(context.Background(), nil))

	report := h.Report()
	var verr *sortbench.VerificationError
	require.ErrorAs(t, report.Results.Err(0, "broken"), &verr)
	require.Equal(t, "out of order", verr.Reason)
	require.ErrorAs(t, report.Results.Err(0, "short"), &verr)
	require.Equal(t, "length mismatch", verr.Reason)
	require.Equal(t, sortbench.Ranking{}, report.Ranking)
}

func TestCancel(t *testing.T) {
	defer synctestutil.AssertNoGoroutinesRacy(t, time.Second)()

	for _, worker := range []bool{false, true} {
		ctx, cancel := context.WithCancel(context.Background())
		h, err := sortbench.New(&sortbench.Config{
			ItemCount:   10,
			SampleCount: 100,
			RunAsWorker: worker,
			WorkerCount: 2,
		}, []sortbench.Algorithm[int]{
			algorithm("a", insertion),
			algorithm("b", insertion),
		}, gen.Ints, sortbench.WithProgress(func(p sortbench.Progress) {
			if p.Done == 1 {
				cancel()
			}
		}))
		require.NoError(t, err)

		called := false
		err = h.Sort(ctx, func(*sortbench.Report) { called = true })
		require.ErrorIs(t, err, context.Canceled)
		require.False(t, called)
		require.Equal(t, sortbench.Idle, h.State())
		require.Nil(t, h.Report())
		cancel()
	}
}

func TestRunInProgress(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	blocking := algorithm("blocking", func(s []int, less sorts.Less[int]) ([]int, error) {
		once.Do(func() { close(started) })
		<-release
		return insertion(s, less)
	})
	h, err := sortbench.New(&sortbench.Config{ItemCount: 5, SampleCount: 2},
		[]sortbench.Algorithm[int]{blocking}, gen.Ints)
	require.NoError(t, err)
	require.Equal(t, sortbench.Idle, h.State())

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.Sort(context.Background(), nil)
	}()
	<-started
	require.Contains(t, []sortbench.State{sortbench.Running, sortbench.Draining}, h.State())
	require.ErrorIs(t, h.Sort(context.Background(), nil), sortbench.ErrRunInProgress)
	close(release)
	require.NoError(t, <-errCh)
	require.Equal(t, sortbench.Completed, h.State())

	// a completed harness can run again
	require.NoError(t, h.Sort(context.Background(), nil))
	require.Equal(t, sortbench.Completed, h.State())
	require.Equal(t, 2, h.Report().Results.Len())
}

func TestDoneCalledOnce(t *testing.T) {
	h, err := sortbench.New(nil, []sortbench.Algorithm[int]{algorithm("a", insertion)}, gen.Ints)
	require.NoError(t, err)
	calls := 0
	require.NoError(t, h.Sort(context.Background(), func(r *sortbench.Report) {
		calls++
		require.Same(t, h.Report(), r)
		require.Positive(t, r.Elapsed)
	}))
	require.Equal(t, 1, calls)
}

func TestProgress(t *testing.T) {
	var reports []sortbench.Progress
	h, err := sortbench.New(&sortbench.Config{ItemCount: 10, SampleCount: 3},
		[]sortbench.Algorithm[int]{algorithm("a", insertion), algorithm("b", insertion)},
		gen.Ints, sortbench.WithProgress(func(p sortbench.Progress) {
			reports = append(reports, p)
		}))
	require.NoError(t, err)
	require.NoError(t, h.Sort(context.Background(), nil))

	require.Len(t, reports, 6)
	for i, p := range reports {
		require.Equal(t, i+1, p.Done)
		require.Equal(t, 6, p.Total)
		require.Equal(t, 3, p.AlgorithmTotal)
	}
	last := reports[len(reports)-1]
	require.Equal(t, 100.0, last.Percent())
	require.Equal(t, "b", last.Algorithm)
	require.Equal(t, 3, last.AlgorithmDone)
	require.Equal(t, 50.0, reports[2].Percent())
}

func TestNewErrors(t *testing.T) {
	algorithms := sortbench.OrderedAlgorithms[int]()
	_, err := sortbench.New(&sortbench.Config{Algorithms: []string{"nosuchsort"}}, algorithms, gen.Ints)
	var cfgErr *sortbench.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "Algorithms", cfgErr.Field)

	_, err = sortbench.New[int](nil, nil, gen.Ints)
	require.ErrorAs(t, err, &cfgErr)

	_, err = sortbench.New[int](nil, algorithms, nil)
	require.ErrorAs(t, err, &cfgErr)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := ctxlog.NewJSONLogger(context.Background(), &buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	h, err := sortbench.New(&sortbench.Config{ItemCount: 10, SampleCount: 3},
		[]sortbench.Algorithm[int]{failing("flaky", 0, -1)}, gen.Ints)
	require.NoError(t, err)
	require.NoError(t, h.Sort(ctx, nil))

	out := buf.String()
	for _, msg := range []string{"run started", "job started", "job finished", "job failed", "run completed"} {
		require.Contains(t, out, `"msg":"`+msg+`"`)
	}
	require.Contains(t, out, `"component":"sortbench"`)
	require.Error(t, h.Report().Errors)
}
