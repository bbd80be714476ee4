// Package simulation implements the Monte Carlo aggregate-loss engine:
// batched iteration, worker-pool parallelism, convergence checking, and
// cooperative cancellation (C5).
package simulation

import (
	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/config"
	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/financial"
	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/simerr"
)

// DistributionSpec names a distribution and its parameters, the shape a
// job spec's JSON deserializes a frequency/severity choice into.
type DistributionSpec struct {
	Name   string             `json:"name"`
	Params map[string]float64 `json:"params"`
}

// JobSpec is everything needed to run one simulation: the event-count and
// loss-size distributions, the policy structure losses are run through, and
// the engine's execution parameters. Zero-valued execution fields are
// filled in from config.EngineDefaults by Normalize.
type JobSpec struct {
	JobID string `json:"job_id,omitempty"`

	Frequency DistributionSpec `json:"frequency"`
	Severity  DistributionSpec `json:"severity"`

	// Portfolio is the ordered sequence of policies losses are run through.
	// Every event applies to every policy in the portfolio; their
	// aggregate-capped covered losses are summed before reinsurance is
	// applied once to the iteration's total.
	Portfolio         []financial.PolicyTerms      `json:"portfolio,omitempty"`
	ReinsuranceLayers []financial.ReinsuranceLayer `json:"reinsurance_layers,omitempty"`
	ApplyReinsurance  bool                         `json:"apply_reinsurance"`

	NumIterations int    `json:"num_iterations"`
	RandomSeed    *int64 `json:"random_seed,omitempty"`

	MaxEventsPerIteration int `json:"max_events_per_iteration"`

	ConvergenceCheck     bool    `json:"convergence_check"`
	ConvergenceThreshold float64 `json:"convergence_threshold"`
	ConvergenceWindow    int     `json:"convergence_window"`

	BatchSize  int `json:"batch_size"`
	MaxWorkers int `json:"max_workers"`

	PercentileLevels []float64 `json:"percentile_levels,omitempty"`
	ConfidenceLevels []float64 `json:"confidence_levels,omitempty"`
}

// Normalize fills in zero-valued fields from the engine's defaults. Safe to
// call more than once.
func (s *JobSpec) Normalize(defaults config.EngineDefaults) {
	if s.NumIterations == 0 {
		s.NumIterations = defaults.NumIterations
	}
	if s.MaxEventsPerIteration == 0 {
		s.MaxEventsPerIteration = defaults.MaxEventsPerIteration
	}
	if s.BatchSize == 0 {
		s.BatchSize = defaults.BatchSize
	}
	if s.MaxWorkers == 0 {
		s.MaxWorkers = defaults.MaxWorkers
	}
	if !s.ConvergenceCheck {
		s.ConvergenceCheck = defaults.ConvergenceCheck
	}
	if s.ConvergenceThreshold == 0 {
		s.ConvergenceThreshold = defaults.ConvergenceThreshold
	}
	if s.ConvergenceWindow == 0 {
		s.ConvergenceWindow = defaults.ConvergenceWindow
	}
	if len(s.PercentileLevels) == 0 {
		s.PercentileLevels = defaults.PercentileLevels
	}
	if len(s.ConfidenceLevels) == 0 {
		s.ConfidenceLevels = defaults.ConfidenceLevels
	}
}

// Validate checks the spec's numeric bounds. Mirrors the original engine's
// parameter validation: iteration counts up to 10,000,000, at most 10,000
// events per iteration, and a convergence window that fits inside the
// iteration budget.
func (s *JobSpec) Validate() error {
	if s.Frequency.Name == "" {
		return simerr.Parameterf("frequency.name", "frequency distribution is required")
	}
	if s.Severity.Name == "" {
		return simerr.Parameterf("severity.name", "severity distribution is required")
	}
	if s.NumIterations <= 0 || s.NumIterations > 10_000_000 {
		return simerr.Parameterf("num_iterations", "must be in [1, 10000000], got %d", s.NumIterations)
	}
	if s.MaxEventsPerIteration <= 0 || s.MaxEventsPerIteration > 10_000 {
		return simerr.Parameterf("max_events_per_iteration", "must be in [1, 10000], got %d", s.MaxEventsPerIteration)
	}
	if s.BatchSize <= 0 || s.BatchSize > s.NumIterations {
		return simerr.Parameterf("batch_size", "must be in [1, num_iterations], got %d", s.BatchSize)
	}
	if s.ConvergenceCheck && s.ConvergenceWindow >= s.NumIterations {
		return simerr.Parameterf("convergence_window", "must be less than num_iterations when convergence_check is set")
	}
	if s.ApplyReinsurance && len(s.Portfolio) == 0 {
		return simerr.Parameterf("portfolio", "reinsurance cannot be applied without at least one policy")
	}
	return nil
}
