package monitor

import (
	"sync"
	"time"
)

// ActivityState holds the time of the last qualifying file activity.
// Written by the tracker on every create/modify notification and by the
// staleness monitor after firing an alert; read on every tick. All
// access goes through the lock so a tick never observes a torn value.
type ActivityState struct {
	mu   sync.Mutex
	last time.Time
}

// NewActivityState starts the activity clock at t.
func NewActivityState(t time.Time) *ActivityState {
	return &ActivityState{last: t}
}

// Touch records file activity at t. The value is monotonically
// non-decreasing: an out-of-order notification never moves it backwards.
func (s *ActivityState) Touch(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.After(s.last) {
		s.last = t
	}
}

// Reset forces the activity time to t. Only the staleness monitor calls
// this, immediately after an alert, to suppress a repeat on the next tick.
func (s *ActivityState) Reset(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = t
}

// Last returns the recorded time of last activity.
func (s *ActivityState) Last() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
