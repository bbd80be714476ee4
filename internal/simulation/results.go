package simulation

import (
	"time"

	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/metrics"
)

// ConvergenceInfo reports whether a run's rolling-window mean stabilized
// before exhausting its iteration budget.
type ConvergenceInfo struct {
	Checked              bool    `json:"checked"`
	Converged            bool    `json:"converged"`
	ConvergedAtIteration int     `json:"converged_at_iteration"`
	Threshold            float64 `json:"threshold"`
	Window               int     `json:"window"`
}

// Result is the outcome of one completed (or cancelled) simulation run.
type Result struct {
	JobID             string               `json:"job_id"`
	Iterations        int                  `json:"iterations"`
	PartialIterations int                  `json:"partial_iterations"` // < Iterations only if the run was cancelled mid-flight
	ExecutionTime     time.Duration        `json:"execution_time_ns"`
	RootSeed          int64                `json:"root_seed"`
	Metrics           *metrics.RiskMetrics `json:"metrics"`
	Convergence       *ConvergenceInfo     `json:"convergence,omitempty"`
}
