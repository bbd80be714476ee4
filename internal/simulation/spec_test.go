package simulation

import (
	"testing"

	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/config"
)

func TestNormalizeFillsZeroFields(t *testing.T) {
	defaults, err := config.Default()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	spec := JobSpec{Frequency: DistributionSpec{Name: "poisson", Params: map[string]float64{"lambda": 2}}}
	spec.Normalize(defaults.Engine)

	if spec.NumIterations != defaults.Engine.NumIterations {
		t.Fatalf("expected NumIterations to be filled from defaults, got %d", spec.NumIterations)
	}
	if spec.BatchSize != defaults.Engine.BatchSize {
		t.Fatalf("expected BatchSize to be filled from defaults, got %d", spec.BatchSize)
	}
}

func TestValidateRejectsMissingDistributions(t *testing.T) {
	spec := JobSpec{NumIterations: 100, MaxEventsPerIteration: 10, BatchSize: 10}
	if err := spec.Validate(); err == nil {
		t.Fatalf("expected error for missing distributions")
	}
}

func TestValidateRejectsExcessiveIterations(t *testing.T) {
	spec := basicSpec(1, 10_000_001)
	if err := spec.Validate(); err == nil {
		t.Fatalf("expected error for too many iterations")
	}
}

func TestValidateRejectsBatchSizeLargerThanIterations(t *testing.T) {
	spec := basicSpec(1, 100)
	spec.BatchSize = 200
	if err := spec.Validate(); err == nil {
		t.Fatalf("expected error for batch size exceeding iteration count")
	}
}

func TestValidateRejectsReinsuranceWithoutPolicy(t *testing.T) {
	spec := basicSpec(1, 100)
	spec.ApplyReinsurance = true
	if err := spec.Validate(); err == nil {
		t.Fatalf("expected error for reinsurance without a policy")
	}
}

func TestValidateRejectsConvergenceWindowTooLarge(t *testing.T) {
	spec := basicSpec(1, 100)
	spec.ConvergenceCheck = true
	spec.ConvergenceWindow = 100
	if err := spec.Validate(); err == nil {
		t.Fatalf("expected error for convergence window >= num_iterations")
	}
}
