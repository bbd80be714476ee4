// Package registry implements the job registry and scheduler: job
// lifecycle state machine, per-user and global concurrency caps, and a
// FIFO queue for jobs waiting on capacity (C6).
package registry

import (
	"context"
	"sync"
	"time"

	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/simerr"
	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/simulation"
)

// State is a job's position in its lifecycle.
type State string

const (
	StateQueued    State = "queued"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
	StateCancelled State = "cancelled"
)

func (s State) terminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateCancelled
}

// job is the registry's internal record; Snapshot is the value callers get
// back, so nothing outside this package can race on job's own fields.
type job struct {
	mu sync.Mutex

	id     string
	userID string
	spec   simulation.JobSpec

	state       State
	submittedAt time.Time
	startedAt   time.Time
	finishedAt  time.Time

	result *simulation.Result
	err    error

	cancel context.CancelFunc
}

// Snapshot is a point-in-time, race-free copy of a job's state.
type Snapshot struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	State       State              `json:"state"`
	SubmittedAt time.Time          `json:"submitted_at"`
	StartedAt   time.Time          `json:"started_at,omitempty"`
	FinishedAt  time.Time          `json:"finished_at,omitempty"`
	Result      *simulation.Result `json:"result,omitempty"`
	Err         string             `json:"error,omitempty"`
}

func (j *job) snapshot() Snapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	s := Snapshot{
		ID:          j.id,
		UserID:      j.userID,
		State:       j.state,
		SubmittedAt: j.submittedAt,
		StartedAt:   j.startedAt,
		FinishedAt:  j.finishedAt,
		Result:      j.result,
	}
	if j.err != nil {
		s.Err = j.err.Error()
	}
	return s
}

// transition moves the job to `to`, failing if its current state isn't one
// of `from`. Guards against e.g. cancelling an already-completed job.
func (j *job) transition(from []State, to State) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, s := range from {
		if j.state == s {
			j.state = to
			return nil
		}
	}
	return simerr.Simulationf("job %s: cannot move from %s to %s", j.id, j.state, to)
}
