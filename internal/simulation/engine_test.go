package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/financial"
)

func basicSpec(seed int64, iterations int) JobSpec {
	return JobSpec{
		JobID:                 "test-job",
		Frequency:             DistributionSpec{Name: "poisson", Params: map[string]float64{"lambda": 3}},
		Severity:              DistributionSpec{Name: "lognormal", Params: map[string]float64{"mu": 10, "sigma": 1.5}},
		NumIterations:         iterations,
		RandomSeed:            &seed,
		MaxEventsPerIteration: 100,
		BatchSize:             250,
		MaxWorkers:            4,
		PercentileLevels:      []float64{0.5, 0.9, 0.99},
		ConfidenceLevels:      []float64{0.95, 0.99, 0.999},
	}
}

func TestBasicSimulation(t *testing.T) {
	e := NewEngine()
	spec := basicSpec(42, 2000)
	result, err := e.Run(context.Background(), spec, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Iterations != 2000 {
		t.Fatalf("expected 2000 iterations, got %d", result.Iterations)
	}
	if result.Metrics == nil {
		t.Fatalf("expected metrics to be populated")
	}
	if result.Metrics.ExpectedLoss <= 0 {
		t.Fatalf("expected positive expected loss, got %v", result.Metrics.ExpectedLoss)
	}
}

func TestDeterminism(t *testing.T) {
	e := NewEngine()
	spec1 := basicSpec(99, 3000)
	spec2 := basicSpec(99, 3000)

	r1, err := e.Run(context.Background(), spec1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := e.Run(context.Background(), spec2, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r1.Metrics.ExpectedLoss != r2.Metrics.ExpectedLoss {
		t.Fatalf("same seed produced different expected loss: %v != %v", r1.Metrics.ExpectedLoss, r2.Metrics.ExpectedLoss)
	}
	v1, _ := r1.Metrics.VaRAt(0.99)
	v2, _ := r2.Metrics.VaRAt(0.99)
	if v1 != v2 {
		t.Fatalf("same seed produced different VaR99: %v != %v", v1, v2)
	}
}

func TestDeterminismIndependentOfWorkerCount(t *testing.T) {
	e := NewEngine()
	spec1 := basicSpec(7, 4000)
	spec1.MaxWorkers = 1
	spec2 := basicSpec(7, 4000)
	spec2.MaxWorkers = 8

	r1, err := e.Run(context.Background(), spec1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := e.Run(context.Background(), spec2, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r1.Metrics.ExpectedLoss != r2.Metrics.ExpectedLoss {
		t.Fatalf("expected identical results regardless of worker count: %v != %v", r1.Metrics.ExpectedLoss, r2.Metrics.ExpectedLoss)
	}
}

func TestRunWithPolicyReducesExpectedLoss(t *testing.T) {
	e := NewEngine()
	policy, err := financial.NewPolicyTerms("p1", 100000, 20000, nil, 0, 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	spec := basicSpec(15, 3000)
	spec.Portfolio = []financial.PolicyTerms{*policy}

	result, err := e.Run(context.Background(), spec, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	baseline := basicSpec(15, 3000)
	baselineResult, err := e.Run(context.Background(), baseline, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Metrics.ExpectedLoss >= baselineResult.Metrics.ExpectedLoss {
		t.Fatalf("expected policy deductible/limit to reduce expected loss: with-policy=%v without=%v",
			result.Metrics.ExpectedLoss, baselineResult.Metrics.ExpectedLoss)
	}
}

func TestRunValidatesSpec(t *testing.T) {
	e := NewEngine()
	spec := basicSpec(1, 0)
	if _, err := e.Run(context.Background(), spec, nil); err == nil {
		t.Fatalf("expected validation error for zero iterations")
	}
}

func TestRunCancellation(t *testing.T) {
	e := NewEngine()
	spec := basicSpec(3, 2_000_000)
	spec.MaxWorkers = 1
	spec.BatchSize = 1000

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	result, err := e.Run(ctx, spec, nil)
	if err == nil {
		t.Fatalf("expected a cancellation error")
	}
	if result == nil {
		t.Fatalf("expected a partial result alongside the cancellation error")
	}
	if result.PartialIterations >= spec.NumIterations {
		t.Fatalf("expected a partial run, got %d/%d iterations", result.PartialIterations, spec.NumIterations)
	}
}

func TestProgressCallbackFires(t *testing.T) {
	e := NewEngine()
	spec := basicSpec(21, 1000)
	spec.BatchSize = 200

	var calls int
	var lastCompleted int
	progress := func(completed, total int) {
		calls++
		lastCompleted = completed
		if total != 1000 {
			t.Fatalf("expected total=1000, got %d", total)
		}
	}

	if _, err := e.Run(context.Background(), spec, progress); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls == 0 {
		t.Fatalf("expected progress callback to fire at least once")
	}
	if lastCompleted != 1000 {
		t.Fatalf("expected final completed count to be 1000, got %d", lastCompleted)
	}
}
