package simulation

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/distributions"
	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/metrics"
	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/obslog"
	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/rng"
	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/simerr"
)

// ProgressFunc is called after each batch completes, with the number of
// iterations finished so far and the total the run was asked for.
type ProgressFunc func(completed, total int)

// Engine runs one JobSpec to completion (or to cancellation).
type Engine struct{}

// NewEngine constructs an Engine. Stateless — safe to share across
// concurrent runs.
func NewEngine() *Engine {
	return &Engine{}
}

// Run executes spec: it batches NumIterations into BatchSize-sized chunks,
// runs up to MaxWorkers of them concurrently, derives each batch's seed
// independently of execution order (see rng.DeriveBatchSeed), and
// aggregates the result into risk metrics. ctx cancellation stops launching
// new batches and returns a partial Result alongside a
// simerr.CancelledError (the Result is nil if no batch had finished);
// batches already in flight are allowed to finish.
func (e *Engine) Run(ctx context.Context, spec JobSpec, progress ProgressFunc) (*Result, error) {
	start := time.Now()

	if err := spec.Validate(); err != nil {
		return nil, err
	}

	freq, err := distributions.NewFrequency(spec.Frequency.Name, spec.Frequency.Params)
	if err != nil {
		return nil, err
	}
	sev, err := distributions.NewSeverity(spec.Severity.Name, spec.Severity.Params)
	if err != nil {
		return nil, err
	}

	rootSeed := rng.RootSeedFromEntropy()
	if spec.RandomSeed != nil {
		rootSeed = *spec.RandomSeed
	}

	maxWorkers := spec.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = runtime.GOMAXPROCS(0)
	}

	losses := make([]float64, spec.NumIterations)
	filled := make([]bool, spec.NumIterations) // batches run out of order; tracks which slots are real
	var completed int64
	var progressMu sync.Mutex // serializes progress calls so reported counts never go backwards

	g, groupCtx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(maxWorkers))

	for batchStart := 0; batchStart < spec.NumIterations; batchStart += spec.BatchSize {
		batchStart := batchStart
		batchSize := spec.BatchSize
		if batchStart+batchSize > spec.NumIterations {
			batchSize = spec.NumIterations - batchStart
		}

		if err := sem.Acquire(groupCtx, 1); err != nil {
			break // context cancelled (or errgroup already failing); stop launching batches
		}

		g.Go(func() error {
			defer sem.Release(1)
			if groupCtx.Err() != nil {
				return groupCtx.Err()
			}

			batchStream := rng.NewBatchStream(rootSeed, batchStart)
			batchLosses := runBatch(batchStream, freq, sev, spec.Portfolio, spec.ReinsuranceLayers, spec.ApplyReinsurance, spec.MaxEventsPerIteration, batchSize)
			copy(losses[batchStart:batchStart+batchSize], batchLosses)
			for i := batchStart; i < batchStart+batchSize; i++ {
				filled[i] = true
			}

			atomic.AddInt64(&completed, int64(batchSize))
			progressMu.Lock()
			done := atomic.LoadInt64(&completed)
			if progress != nil {
				progress(int(done), spec.NumIterations)
			}
			progressMu.Unlock()
			obslog.Verbosef("batch start=%d size=%d complete=%d/%d", batchStart, batchSize, done, spec.NumIterations)
			return nil
		})
	}

	runErr := g.Wait()

	partial := int(atomic.LoadInt64(&completed))
	// A cancelled ctx can surface either as a batch returning ctx's error or
	// as the launch loop breaking out of sem.Acquire with every launched
	// batch finishing cleanly (runErr nil); both count as cancellation.
	cancelled := partial < spec.NumIterations &&
		(ctx.Err() != nil || (runErr != nil && (errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded))))
	if runErr != nil && !cancelled {
		return nil, runErr
	}

	effectiveLosses := losses
	if cancelled {
		effectiveLosses = compactFilled(losses, filled)
		// Convergence checking assumes a contiguous, in-order sequence of
		// iterations; a cancelled run's surviving batches are a sparse,
		// unordered subset, so the check is skipped rather than fed
		// misleading input.
		spec.ConvergenceCheck = false
	}

	calc := &metrics.Calculator{
		ConfidenceLevels: spec.ConfidenceLevels,
		PercentileLevels: spec.PercentileLevels,
	}
	riskMetrics, err := calc.Calculate(effectiveLosses)
	if err != nil {
		if cancelled {
			// No batch finished before cancellation: nothing to summarize.
			return nil, simerr.NewCancelled(partial)
		}
		return nil, err
	}

	result := &Result{
		JobID:             spec.JobID,
		Iterations:        spec.NumIterations,
		PartialIterations: len(effectiveLosses),
		ExecutionTime:     time.Since(start),
		RootSeed:          rootSeed,
		Metrics:           riskMetrics,
	}

	if spec.ConvergenceCheck {
		result.Convergence = checkConvergence(effectiveLosses, spec.ConvergenceWindow, spec.ConvergenceThreshold)
	}

	if cancelled {
		obslog.Eventf("job %s cancelled after %d/%d iterations", spec.JobID, partial, spec.NumIterations)
		return result, simerr.NewCancelled(partial)
	}

	obslog.Eventf("job %s completed %d iterations in %s", spec.JobID, spec.NumIterations, result.ExecutionTime)
	return result, nil
}

// compactFilled returns the subset of losses whose batch actually finished
// before cancellation, in whatever order the batches happened to complete.
func compactFilled(losses []float64, filled []bool) []float64 {
	out := make([]float64, 0, len(losses))
	for i, ok := range filled {
		if ok {
			out = append(out, losses[i])
		}
	}
	return out
}
