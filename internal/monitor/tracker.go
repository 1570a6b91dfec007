package monitor

import (
	"fmt"
	"sync"

	"filesentry/internal/errorwrapper"
	"filesentry/internal/logger"
	"filesentry/internal/watcher"
)

// DirectoryWatcher is the watch capability the tracker consumes.
// watcher.FsWatcher satisfies it.
type DirectoryWatcher interface {
	Watch(dir string) error
	Events() <-chan watcher.Event
	Errors() <-chan error
	Rearm() error
	Stop() error
}

// FileActivityTracker consumes directory-change notifications through a
// single processing loop, updating the shared activity state. Creation
// and modification count as activity; deletion is logged but does not
// touch the clock. A watch-subsystem error triggers exactly one re-arm
// attempt; if that fails the tracker logs Critical and leaves
// monitoring disabled for the operator to act on.
type FileActivityTracker struct {
	watcher  DirectoryWatcher
	state    *ActivityState
	clock    Clock
	bridge   *logger.Bridge
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewFileActivityTracker wires the tracker to its collaborators.
func NewFileActivityTracker(w DirectoryWatcher, state *ActivityState, clock Clock, bridge *logger.Bridge) *FileActivityTracker {
	return &FileActivityTracker{
		watcher: w,
		state:   state,
		clock:   clock,
		bridge:  bridge,
	}
}

// Start arms the watch on dir and begins processing notifications.
// Returns an error wrapping errorwrapper.ErrDirectoryUnavailable when
// dir does not exist or cannot be watched.
func (t *FileActivityTracker) Start(dir string) error {
	if err := t.watcher.Watch(dir); err != nil {
		return err
	}

	t.bridge.TraceInfo("watching folder %s", dir)

	t.wg.Add(1)
	go t.loop()

	return nil
}

// Stop disables notifications and waits for the processing loop to
// drain. Safe to call multiple times and when Start never succeeded.
func (t *FileActivityTracker) Stop() {
	t.stopOnce.Do(func() {
		if err := t.watcher.Stop(); err != nil {
			t.bridge.TraceError("stopping watch: %v", err)
		}
		t.wg.Wait()
	})
}

// loop is the single consumer of the notification stream. After a
// failed re-arm it keeps draining the channels so the watcher can shut
// down cleanly, but stops acting on anything.
func (t *FileActivityTracker) loop() {
	defer t.wg.Done()

	events := t.watcher.Events()
	errs := t.watcher.Errors()
	disabled := false

	for events != nil || errs != nil {
		select {
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if !disabled {
				t.handleEvent(ev)
			}

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if !disabled && !t.handleWatchError(err) {
				disabled = true
			}
		}
	}
}

func (t *FileActivityTracker) handleEvent(ev watcher.Event) {
	switch ev.Op {
	case watcher.OpCreate:
		t.bridge.Info(fmt.Sprintf("file created: %s", ev.Path))
		t.state.Touch(t.clock.Now())
	case watcher.OpModify:
		t.bridge.Debug(fmt.Sprintf("file changed: %s", ev.Path))
		t.state.Touch(t.clock.Now())
	case watcher.OpDelete:
		// A deletion is not new content arriving.
		t.bridge.Warning(fmt.Sprintf("file deleted: %s", ev.Path))
	}
}

// handleWatchError attempts the single re-arm. Returns false when
// monitoring could not be restored.
func (t *FileActivityTracker) handleWatchError(err error) bool {
	t.bridge.Error(fmt.Sprintf("watch subsystem error: %v", err))

	if rearmErr := t.watcher.Rearm(); rearmErr != nil {
		t.bridge.Critical(fmt.Sprintf("watch re-arm failed, monitoring disabled: %v",
			errorwrapper.WrapError(rearmErr, "re-arm")))
		return false
	}

	t.bridge.Info("watch re-armed after subsystem error")
	return true
}
