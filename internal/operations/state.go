package operations

import (
	"sync"
	"time"

	"impactetl/internal/dataprocessing"
	"impactetl/internal/table"
	"impactetl/pkg/contracts/domain"
)

// RunStatus represents the overall status of a run
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusCancelled RunStatus = "cancelled"
)

// RunState carries the tables of one pipeline run from step to step,
// together with the bookkeeping of every step.
type RunState struct {
	mu sync.RWMutex

	ID        string     `json:"id"`
	Status    RunStatus  `json:"status"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Error     error      `json:"-"`

	// Bootstrapped is set when sample raw data was generated for this run.
	Bootstrapped bool `json:"bootstrapped"`

	Raw          map[dataprocessing.Source]*table.Table `json:"-"`
	Clean        dataprocessing.CleanTables             `json:"-"`
	Master       *table.Table                           `json:"-"`
	Quality      []domain.QualityReport                 `json:"quality,omitempty"`
	QualityTable *table.Table                           `json:"-"`

	steps map[string]*StepState
	order []string
}

// NewRunState creates a pending run with one pending state per step
func NewRunState(id string, steps []Step) *RunState {
	s := &RunState{
		ID:     id,
		Status: RunStatusPending,
		Raw:    make(map[dataprocessing.Source]*table.Table, len(dataprocessing.Sources)),
		steps:  make(map[string]*StepState, len(steps)),
	}
	for _, step := range steps {
		s.steps[step.ID()] = NewStepState(step.ID(), step.Name())
		s.order = append(s.order, step.ID())
	}
	return s
}

// Start marks the run as running
func (s *RunState) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Status = RunStatusRunning
	s.StartTime = time.Now()
}

// Complete marks the run as completed
func (s *RunState) Complete() {
	s.finish(RunStatusCompleted, nil)
}

// Fail marks the run as failed
func (s *RunState) Fail(err error) {
	s.finish(RunStatusFailed, err)
}

// Cancel marks the run as cancelled
func (s *RunState) Cancel(err error) {
	s.finish(RunStatusCancelled, err)
}

func (s *RunState) finish(status RunStatus, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = status
	s.Error = err
}

// GetStatus returns the current run status
func (s *RunState) GetStatus() RunStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Status
}

// GetStep returns the state of a step, or nil for an unknown ID
func (s *RunState) GetStep(id string) *StepState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.steps[id]
}

// setStepMetadata records a metadata value on a step; unknown steps are ignored
func (s *RunState) setStepMetadata(id, key string, value any) {
	if step := s.GetStep(id); step != nil {
		step.SetMetadata(key, value)
	}
}

// Steps returns the step states in execution order
func (s *RunState) Steps() []*StepState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*StepState, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.steps[id])
	}
	return out
}

// Duration returns the run duration so far
func (s *RunState) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.StartTime.IsZero() {
		return 0
	}
	if s.EndTime != nil {
		return s.EndTime.Sub(s.StartTime)
	}
	return time.Since(s.StartTime)
}
