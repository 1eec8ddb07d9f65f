package csv2labels

import "sync"

// Trigger labels shown by a user interface for the current phase.
const (
	LabelIdle    = "Gerar PDFs"
	LabelRunning = "Gerando..."
)

// Phase is the lifecycle stage of a run.
type Phase int

// Run phases. Idle is the zero value.
const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseCompleted
	PhaseAborted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseCompleted:
		return "completed"
	case PhaseAborted:
		return "aborted"
	}
	return "unknown"
}

// RunState tracks one run at a time. It is safe to read from another
// goroutine while Generate runs. The zero value is an idle state.
type RunState struct {
	mu      sync.Mutex
	phase   Phase
	current int
	total   int
	err     error
}

// Busy reports whether a run is in progress.
func (s *RunState) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == PhaseRunning
}

// Phase returns the current phase.
func (s *RunState) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Progress returns the 1-based record being laid out and the record count.
// Both are zero before layout starts.
func (s *RunState) Progress() (current, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.total
}

// Err returns the error that aborted the last run, if any.
func (s *RunState) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Label returns the trigger text: LabelRunning while busy, LabelIdle otherwise.
func (s *RunState) Label() string {
	if s.Busy() {
		return LabelRunning
	}
	return LabelIdle
}

func (s *RunState) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseRunning {
		return ErrBusy
	}
	s.phase = PhaseRunning
	s.current, s.total = 0, 0
	s.err = nil
	return nil
}

func (s *RunState) advance(current, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current, s.total = current, total
}

// finish leaves the running phase so a new run can start.
func (s *RunState) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		s.phase = PhaseAborted
		return
	}
	s.phase = PhaseCompleted
}
