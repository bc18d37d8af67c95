// Package wizard implements a generic multi-step form engine: an ordered
// sequence of steps, each with its own validation predicate, accumulating
// one combined data record. Forward navigation is blocked while the current
// step has field errors; backward navigation never validates.
package wizard

import (
	"context"
	"sync"
	"time"
)

// FieldErrors maps field name to a user-facing error message
type FieldErrors map[string]string

// Data is the combined form-data record accumulated across steps
type Data map[string]string

// Step is one stage of a wizard. Validate receives the full data record
// but must only inspect the fields belonging to this step.
type Step struct {
	Name     string
	Fields   []string
	Validate func(data Data) FieldErrors
}

// Definition is an ordered, immutable sequence of steps
type Definition struct {
	Name  string
	Steps []Step
}

// StepCount returns the number of steps in the definition
func (d *Definition) StepCount() int {
	return len(d.Steps)
}

// Session is one in-flight run of a wizard definition. Step is 1-based.
// Sessions are transient: they live in the in-memory store and are lost
// on restart.
type Session struct {
	ID        string
	Def       *Definition
	CreatedAt time.Time

	mu        sync.Mutex
	step      int
	data      Data
	errors    FieldErrors
	completed bool
	updatedAt time.Time

	// cancelInFlight aborts an outstanding network request (order creation)
	// when the wizard is dismissed mid-flight.
	cancelInFlight context.CancelFunc
}

// newSession starts a session at step 1 with empty data
func newSession(id string, def *Definition, now time.Time) *Session {
	return &Session{
		ID:        id,
		Def:       def,
		CreatedAt: now,
		step:      1,
		data:      Data{},
		errors:    FieldErrors{},
		updatedAt: now,
	}
}

// SetField stores a field value and clears that field's error immediately,
// whether or not the new value is valid. Errors are only recomputed on Next.
func (s *Session) SetField(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = value
	delete(s.errors, name)
	s.updatedAt = time.Now()
}

// Next validates the current step only. If it yields errors they are kept
// on the session and the step does not advance. Advancing past the last
// step marks the session completed.
func (s *Session) Next() (done bool, errs FieldErrors) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return true, nil
	}

	step := s.Def.Steps[s.step-1]
	if step.Validate != nil {
		if errs := step.Validate(s.data); len(errs) > 0 {
			s.errors = errs
			s.updatedAt = time.Now()
			return false, copyErrors(errs)
		}
	}

	s.errors = FieldErrors{}
	if s.step == len(s.Def.Steps) {
		s.completed = true
	} else {
		s.step++
	}
	s.updatedAt = time.Now()
	return s.completed, nil
}

// Previous steps back without validating. It always succeeds; at step 1
// it is a no-op.
func (s *Session) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completed || s.step <= 1 {
		return
	}
	s.step--
	s.updatedAt = time.Now()
}

// Snapshot returns a consistent copy of the session state for rendering
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		ID:         s.ID,
		Step:       s.step,
		TotalSteps: len(s.Def.Steps),
		Data:       copyData(s.data),
		Errors:     copyErrors(s.errors),
		Completed:  s.completed,
	}
}

// Completed reports whether the final step has been passed
func (s *Session) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

// DataCopy returns a copy of the accumulated form data
func (s *Session) DataCopy() Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyData(s.data)
}

// SetCancel registers the cancel function of an in-flight request tied to
// this session. A previously registered function is invoked first so at
// most one request is outstanding per session.
func (s *Session) SetCancel(cancel context.CancelFunc) {
	s.mu.Lock()
	prev := s.cancelInFlight
	s.cancelInFlight = cancel
	s.mu.Unlock()
	if prev != nil {
		prev()
	}
}

// CancelInFlight aborts the outstanding request, if any
func (s *Session) CancelInFlight() {
	s.mu.Lock()
	cancel := s.cancelInFlight
	s.cancelInFlight = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// expiredAt reports whether the session has been idle past the ttl
func (s *Session) expiredAt(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.updatedAt) > ttl
}

// State is a render-ready snapshot of a session
type State struct {
	ID         string      `json:"id"`
	Step       int         `json:"step"`
	TotalSteps int         `json:"totalSteps"`
	Data       Data        `json:"data"`
	Errors     FieldErrors `json:"errors"`
	Completed  bool        `json:"completed"`
}

func copyData(d Data) Data {
	out := make(Data, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

func copyErrors(e FieldErrors) FieldErrors {
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
