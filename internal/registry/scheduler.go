package registry

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/config"
	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/events"
	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/obslog"
	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/simerr"
	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/simulation"
)

// Scheduler owns every job submitted to it, dispatching queued jobs onto
// the engine as per-user and global concurrency caps allow.
type Scheduler struct {
	mu  sync.Mutex
	jobs map[string]*job
	queue []*job

	userRunning   map[string]int
	globalRunning int
	maxPerUser    int
	maxGlobal     int

	engine *simulation.Engine
	bus    *events.Bus
	wg     sync.WaitGroup
}

// NewScheduler constructs a Scheduler bounded by cfg's concurrency caps.
func NewScheduler(cfg config.SchedulerConfig, engine *simulation.Engine, bus *events.Bus) *Scheduler {
	maxPerUser := cfg.MaxConcurrentJobsPerUser
	if maxPerUser <= 0 {
		maxPerUser = 1
	}
	maxGlobal := cfg.MaxConcurrentJobsGlobal
	if maxGlobal <= 0 {
		maxGlobal = maxPerUser
	}
	return &Scheduler{
		jobs:        make(map[string]*job),
		userRunning: make(map[string]int),
		maxPerUser:  maxPerUser,
		maxGlobal:   maxGlobal,
		engine:      engine,
		bus:         bus,
	}
}

// Submit registers a new job for userID and either starts it immediately
// or queues it behind the user's/the process's concurrency cap.
func (s *Scheduler) Submit(userID string, spec simulation.JobSpec) (Snapshot, error) {
	if err := spec.Validate(); err != nil {
		return Snapshot{}, err
	}
	if spec.JobID == "" {
		spec.JobID = uuid.New().String()
	}

	j := &job{
		id:          spec.JobID,
		userID:      userID,
		spec:        spec,
		state:       StateQueued,
		submittedAt: time.Now(),
	}

	s.mu.Lock()
	s.jobs[j.id] = j
	s.queue = append(s.queue, j)
	s.mu.Unlock()

	s.bus.Publish(userID, events.Event{Kind: events.KindJobSubmitted, JobID: j.id, Timestamp: j.submittedAt})
	s.dispatch()

	return j.snapshot(), nil
}

// dispatch starts as many queued jobs as current capacity allows. Called
// after every Submit and after every job finishes.
func (s *Scheduler) dispatch() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return
		}
		if s.globalRunning >= s.maxGlobal {
			s.mu.Unlock()
			return
		}
		idx := -1
		for i, j := range s.queue {
			j.mu.Lock()
			userID := j.userID
			j.mu.Unlock()
			if s.userRunning[userID] < s.maxPerUser {
				idx = i
				break
			}
		}
		if idx == -1 {
			s.mu.Unlock()
			return
		}
		j := s.queue[idx]
		s.queue = append(s.queue[:idx], s.queue[idx+1:]...)
		s.globalRunning++
		s.userRunning[j.userID]++
		s.mu.Unlock()

		s.start(j)
	}
}

func (s *Scheduler) start(j *job) {
	if err := j.transition([]State{StateQueued}, StateRunning); err != nil {
		// Job was cancelled while queued; release the capacity we just
		// reserved for it and let dispatch try the next one.
		s.release(j.userID)
		return
	}
	j.mu.Lock()
	j.startedAt = time.Now()
	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel
	j.mu.Unlock()

	s.bus.Publish(j.userID, events.Event{Kind: events.KindJobStarted, JobID: j.id, Timestamp: j.startedAt})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.release(j.userID)
		defer s.dispatch()

		progress := func(completed, total int) {
			s.bus.Publish(j.userID, events.Event{Kind: events.KindJobProgress, JobID: j.id, Completed: completed, Total: total, Timestamp: time.Now()})
		}

		result, err := s.engine.Run(ctx, j.spec, progress)
		j.mu.Lock()
		j.finishedAt = time.Now()
		j.result = result
		j.err = err
		j.mu.Unlock()

		switch {
		case err == nil:
			j.transition([]State{StateRunning}, StateCompleted)
			s.bus.Publish(j.userID, events.Event{Kind: events.KindJobCompleted, JobID: j.id, Timestamp: j.finishedAt})
		case simerr.IsCancelled(err):
			j.transition([]State{StateRunning}, StateCancelled)
			s.bus.Publish(j.userID, events.Event{Kind: events.KindJobCancelled, JobID: j.id, Timestamp: j.finishedAt, Message: err.Error()})
		default:
			j.transition([]State{StateRunning}, StateFailed)
			s.bus.Publish(j.userID, events.Event{Kind: events.KindJobFailed, JobID: j.id, Timestamp: j.finishedAt, Message: err.Error()})
			obslog.Errorf("job %s failed: %v", j.id, err)
		}
	}()
}

func (s *Scheduler) release(userID string) {
	s.mu.Lock()
	s.globalRunning--
	s.userRunning[userID]--
	if s.userRunning[userID] <= 0 {
		delete(s.userRunning, userID)
	}
	s.mu.Unlock()
}

// Get returns a snapshot of jobID's current state.
func (s *Scheduler) Get(jobID string) (Snapshot, error) {
	s.mu.Lock()
	j, ok := s.jobs[jobID]
	s.mu.Unlock()
	if !ok {
		return Snapshot{}, simerr.Simulationf("job %s not found", jobID)
	}
	return j.snapshot(), nil
}

// List returns a snapshot of every job belonging to userID, most recently
// submitted first.
func (s *Scheduler) List(userID string) []Snapshot {
	s.mu.Lock()
	matches := make([]*job, 0)
	for _, j := range s.jobs {
		j.mu.Lock()
		if j.userID == userID {
			matches = append(matches, j)
		}
		j.mu.Unlock()
	}
	s.mu.Unlock()

	snapshots := make([]Snapshot, len(matches))
	for i, j := range matches {
		snapshots[i] = j.snapshot()
	}
	sort.SliceStable(snapshots, func(a, b int) bool {
		return snapshots[a].SubmittedAt.After(snapshots[b].SubmittedAt)
	})
	return snapshots
}

// Cancel stops jobID: a running job's context is cancelled cooperatively
// (the engine finishes its in-flight batches and returns a partial
// result); a still-queued job is removed from the queue and marked
// cancelled directly.
func (s *Scheduler) Cancel(jobID string) error {
	s.mu.Lock()
	j, ok := s.jobs[jobID]
	s.mu.Unlock()
	if !ok {
		return simerr.Simulationf("job %s not found", jobID)
	}

	j.mu.Lock()
	state := j.state
	cancel := j.cancel
	j.mu.Unlock()

	switch state {
	case StateRunning:
		cancel()
		return nil
	case StateQueued:
		if err := j.transition([]State{StateQueued}, StateCancelled); err != nil {
			return err
		}
		s.mu.Lock()
		for i, qj := range s.queue {
			if qj.id == jobID {
				s.queue = append(s.queue[:i], s.queue[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
		j.mu.Lock()
		j.finishedAt = time.Now()
		finishedAt := j.finishedAt
		j.mu.Unlock()
		s.bus.Publish(j.userID, events.Event{Kind: events.KindJobCancelled, JobID: j.id, Timestamp: finishedAt})
		return nil
	default:
		return simerr.Simulationf("job %s: cannot cancel a job in state %s", jobID, state)
	}
}

// Delete removes a terminal job from the registry. Returns an error if the
// job is still queued or running.
func (s *Scheduler) Delete(jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[jobID]
	if !ok {
		return simerr.Simulationf("job %s not found", jobID)
	}
	j.mu.Lock()
	state := j.state
	j.mu.Unlock()
	if !state.terminal() {
		return simerr.Simulationf("job %s: cannot delete a job in state %s", jobID, state)
	}
	delete(s.jobs, jobID)
	return nil
}

// Wait blocks until every currently-running job has finished. Intended for
// graceful shutdown.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
