package monitor

import (
	"strings"
	"sync"
	"time"

	"filesentry/internal/logger"
	"filesentry/internal/notifier"
	"filesentry/internal/watcher"
)

type recordedEntry struct {
	level   logger.Level
	message string
}

// recordingSink captures log lines for assertions.
type recordingSink struct {
	mu      sync.Mutex
	entries []recordedEntry
}

func (r *recordingSink) Write(level logger.Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, recordedEntry{level: level, message: message})
}

func (r *recordingSink) count(level logger.Level, fragment string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.level == level && strings.Contains(e.message, fragment) {
			n++
		}
	}
	return n
}

// fakeClock is a settable clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// fakeWatcher drives the tracker from a test.
type fakeWatcher struct {
	events   chan watcher.Event
	errs     chan error
	watchErr error
	rearmErr error
	rearms   int
	stopped  bool
	stopOnce sync.Once
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{
		events: make(chan watcher.Event, 16),
		errs:   make(chan error, 16),
	}
}

func (f *fakeWatcher) Watch(dir string) error       { return f.watchErr }
func (f *fakeWatcher) Events() <-chan watcher.Event { return f.events }
func (f *fakeWatcher) Errors() <-chan error         { return f.errs }

func (f *fakeWatcher) Rearm() error {
	f.rearms++
	return f.rearmErr
}

func (f *fakeWatcher) Stop() error {
	f.stopOnce.Do(func() {
		f.stopped = true
		close(f.events)
		close(f.errs)
	})
	return nil
}

// fakeDispatcher records dispatch calls and optionally fails them.
type fakeDispatcher struct {
	mu    sync.Mutex
	calls []notifier.AlertEvent
	err   error
}

func (d *fakeDispatcher) Dispatch(event notifier.AlertEvent) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, event)
	return d.err
}

func (d *fakeDispatcher) dispatched() []notifier.AlertEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]notifier.AlertEvent(nil), d.calls...)
}
