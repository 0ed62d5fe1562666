package session

import (
	"errors"
	"fmt"
	"sync"
)

// State is the lifecycle state of a relay session.
type State string

const (
	StateIdle   State = "idle"
	StateActive State = "active"
	StatePaused State = "paused"
)

// ErrInvalidTransition is returned when an operation is not valid in the current state.
var ErrInvalidTransition = errors.New("session: invalid transition")

// ErrEmptyTaskID is returned by Start when no task id is given.
var ErrEmptyTaskID = errors.New("session: empty task id")

// Session tracks one relay task that can be paused and resumed.
// The zero value is an idle session ready to use.
type Session struct {
	mu         sync.Mutex
	activeTask string
	paused     bool
	buffer     string
}

// New returns an idle session.
func New() *Session {
	return &Session{}
}

// Start makes taskID the active task, clearing the buffer and any pause.
// It is valid from every state. An empty taskID is rejected with
// ErrEmptyTaskID and leaves the session unchanged.
func (s *Session) Start(taskID string) error {
	if taskID == "" {
		return ErrEmptyTaskID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTask = taskID
	s.buffer = ""
	s.paused = false
	return nil
}

// Pause suspends the active task.
func (s *Session) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st := s.state(); st != StateActive {
		return fmt.Errorf("%w: pause from %s", ErrInvalidTransition, st)
	}
	s.paused = true
	return nil
}

// Resume continues a paused task and returns the buffer exactly as it was
// when the task was paused.
func (s *Session) Resume() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st := s.state(); st != StatePaused {
		return "", fmt.Errorf("%w: resume from %s", ErrInvalidTransition, st)
	}
	s.paused = false
	return s.buffer, nil
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Session) state() State {
	switch {
	case s.activeTask == "":
		return StateIdle
	case s.paused:
		return StatePaused
	default:
		return StateActive
	}
}

// ActiveTask returns the current task id, empty when idle.
func (s *Session) ActiveTask() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTask
}

// Buffer returns the retained buffer.
func (s *Session) Buffer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer
}

// Paused reports whether the session is paused.
func (s *Session) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}
