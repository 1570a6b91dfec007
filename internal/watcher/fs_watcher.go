package watcher

import (
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"filesentry/internal/errorwrapper"
)

// Op classifies a filesystem notification.
type Op string

const (
	OpCreate Op = "create"
	OpModify Op = "modify"
	OpDelete Op = "delete"
)

// Event is one directory-change notification with a full path.
type Event struct {
	Path string
	Op   Op
}

// FsWatcher adapts fsnotify to a channel-based directory watch. Events
// and Errors are consumed by a single processing loop downstream; both
// channels close when the watcher stops.
type FsWatcher struct {
	watcher *fsnotify.Watcher
	events  chan Event
	errors  chan error
	logger  zerolog.Logger
	mu      sync.Mutex
	dir     string
	running bool
	closed  chan struct{}
}

// NewFsWatcher creates an unstarted watcher.
func NewFsWatcher(logger zerolog.Logger) (*FsWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to create fsnotify watcher")
	}

	fw := &FsWatcher{
		watcher: fsWatcher,
		events:  make(chan Event, 256),
		errors:  make(chan error, 16),
		logger:  logger.With().Str("component", "FsWatcher").Logger(),
		closed:  make(chan struct{}),
	}

	go fw.loop(fsWatcher)

	return fw, nil
}

// Watch begins delivering notifications for dir. The directory must
// already exist; creating it is a startup decision that belongs to the
// caller.
func (fw *FsWatcher) Watch(dir string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	info, err := os.Stat(dir)
	if err != nil {
		return errorwrapper.WrapError(errorwrapper.ErrDirectoryUnavailable, dir)
	}
	if !info.IsDir() {
		return errorwrapper.WrapError(errorwrapper.ErrDirectoryUnavailable, dir+" is not a directory")
	}

	if fw.watcher == nil {
		return errorwrapper.WrapError(errorwrapper.ErrWatchFailed, "watcher closed")
	}
	if err := fw.watcher.Add(dir); err != nil {
		return errorwrapper.WrapError(errorwrapper.ErrDirectoryUnavailable, err.Error())
	}

	fw.dir = dir
	fw.running = true
	fw.logger.Info().Str("dir", dir).Msg("Directory watch armed")

	return nil
}

// Rearm disables and re-enables notifications for the watched directory.
func (fw *FsWatcher) Rearm() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.dir == "" {
		return errorwrapper.WrapError(errorwrapper.ErrWatchFailed, "no directory watched")
	}
	if fw.watcher == nil {
		return errorwrapper.WrapError(errorwrapper.ErrWatchFailed, "watcher closed")
	}

	if err := fw.watcher.Remove(fw.dir); err != nil {
		fw.logger.Debug().Err(err).Str("dir", fw.dir).Msg("Remove during re-arm failed, attempting add anyway")
	}
	if err := fw.watcher.Add(fw.dir); err != nil {
		return errorwrapper.WrapError(errorwrapper.ErrWatchFailed, err.Error())
	}

	fw.logger.Info().Str("dir", fw.dir).Msg("Directory watch re-armed")
	return nil
}

// Events returns the notification stream.
func (fw *FsWatcher) Events() <-chan Event {
	return fw.events
}

// Errors returns the watch-subsystem error stream.
func (fw *FsWatcher) Errors() <-chan error {
	return fw.errors
}

// IsWatching reports whether a directory watch is active.
func (fw *FsWatcher) IsWatching() bool {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.running
}

// Stop releases the watch handle and closes both channels. Safe to call
// multiple times and before Watch ever succeeded.
func (fw *FsWatcher) Stop() error {
	fw.mu.Lock()
	if !fw.running && fw.watcher == nil {
		fw.mu.Unlock()
		return nil
	}

	var err error
	if fw.watcher != nil {
		err = fw.watcher.Close()
		fw.watcher = nil
	}
	fw.running = false
	fw.mu.Unlock()

	<-fw.closed

	close(fw.events)
	close(fw.errors)

	if err != nil {
		return errorwrapper.WrapError(err, "failed to close fsnotify watcher")
	}
	return nil
}

// loop converts raw fsnotify traffic into Events until the underlying
// watcher closes.
func (fw *FsWatcher) loop(source *fsnotify.Watcher) {
	defer close(fw.closed)

	for {
		select {
		case event, ok := <-source.Events:
			if !ok {
				return
			}
			if converted := convertEvent(event); converted != nil {
				fw.events <- *converted
			}

		case err, ok := <-source.Errors:
			if !ok {
				return
			}
			fw.errors <- err
		}
	}
}

// convertEvent maps an fsnotify event to a watch Event. Rename counts
// as a deletion of the old path; chmod-only traffic is dropped.
func convertEvent(event fsnotify.Event) *Event {
	var op Op

	switch {
	case event.Has(fsnotify.Create):
		op = OpCreate
	case event.Has(fsnotify.Write):
		op = OpModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		op = OpDelete
	default:
		return nil
	}

	return &Event{Path: event.Name, Op: op}
}
