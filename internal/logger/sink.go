package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"filesentry/internal/errorwrapper"
)

const (
	// DefaultMaxSizeBytes is the rotation threshold used when none is configured.
	DefaultMaxSizeBytes = 2 * 1024 * 1024

	timestampLayout = "2006-01-02 15:04:05.000"
	backupLayout    = "20060102_150405"
)

// EventSink is the write surface of the monitor log. FileSink implements it;
// components depend on this interface so tests can substitute a recorder.
type EventSink interface {
	Write(level Level, message string)
}

// FileSink is a thread-safe, append-only, size-bounded log writer.
// When the active file reaches maxSize the file is renamed to a
// timestamped backup and a fresh active file begins. Writes never fail
// to the caller: on I/O errors the line is diverted to the diagnostic
// logger and the sink keeps operating.
type FileSink struct {
	mu      sync.Mutex
	file    *os.File
	path    string
	size    int64
	maxSize int64
	diag    zerolog.Logger
	closed  bool
}

// NewFileSink opens (or creates) the active log file at path, creating
// parent directories as needed. diag receives lines that could not be
// written to the file.
func NewFileSink(path string, maxSize int64, diag zerolog.Logger) (*FileSink, error) {
	if path == "" {
		return nil, errorwrapper.NewValidationError("log_file", path, "log file path is required")
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSizeBytes
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errorwrapper.WrapError(err, "failed to create log directory")
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to open log file")
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, errorwrapper.WrapError(err, "failed to stat log file")
	}

	return &FileSink{
		file:    file,
		path:    path,
		size:    info.Size(),
		maxSize: maxSize,
		diag:    diag.With().Str("component", "FileSink").Logger(),
	}, nil
}

// Write appends one timestamped line for message at the given level.
// Empty or whitespace-only messages are dropped. Write never returns an
// error and never panics; logging is best-effort.
func (fs *FileSink) Write(level Level, message string) {
	if strings.TrimSpace(message) == "" {
		return
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.closed {
		return
	}

	if fs.size >= fs.maxSize {
		fs.rotate()
	}

	fs.writeLine(formatLine(time.Now(), level, message))
}

// CurrentSize returns the byte size of the active log file.
func (fs *FileSink) CurrentSize() int64 {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.size
}

// Path returns the active log file path.
func (fs *FileSink) Path() string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.path
}

// Close writes a final closing entry and releases the file handle.
// Subsequent writes are no-ops. Safe to call more than once.
func (fs *FileSink) Close() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.closed {
		return nil
	}

	fs.writeLine(formatLine(time.Now(), LevelInfo, "log sink closing"))
	fs.closed = true

	if fs.file == nil {
		return nil
	}
	if err := fs.file.Close(); err != nil {
		return errorwrapper.WrapError(err, "failed to close log file")
	}
	fs.file = nil
	return nil
}

// rotate renames the active file to a timestamped backup and starts a
// fresh one. Caller must hold fs.mu. A backup with the identical
// second-resolution name is replaced.
func (fs *FileSink) rotate() {
	backup := backupPath(fs.path, time.Now())

	if fs.file != nil {
		if err := fs.file.Close(); err != nil {
			fs.diag.Error().Err(err).Msg("Failed to close log file before rotation")
		}
		fs.file = nil
	}

	_ = os.Remove(backup)
	if err := os.Rename(fs.path, backup); err != nil {
		fs.diag.Error().Err(err).Str("backup", backup).Msg("Failed to rename log file during rotation")
	}

	file, err := os.OpenFile(fs.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fs.diag.Error().Err(err).Str("path", fs.path).Msg("Failed to reopen log file after rotation")
		fs.size = 0
		return
	}

	fs.file = file
	fs.size = 0
	fs.writeLine(formatLine(time.Now(), LevelInfo, fmt.Sprintf("log rotated, previous file: %s", filepath.Base(backup))))
}

// writeLine appends one pre-formatted line. Caller must hold fs.mu.
// On failure the line is diverted to the diagnostic logger.
func (fs *FileSink) writeLine(line string) {
	if fs.file == nil {
		fs.diag.Error().Str("line", strings.TrimRight(line, "\n")).Msg("Log file unavailable, line diverted to diagnostic channel")
		return
	}

	n, err := fs.file.WriteString(line)
	fs.size += int64(n)
	if err != nil {
		fs.diag.Error().Err(err).Str("line", strings.TrimRight(line, "\n")).Msg("Log write failed, line diverted to diagnostic channel")
	}
}

func formatLine(ts time.Time, level Level, message string) string {
	return fmt.Sprintf("[%s] [%s] %s\n", ts.Format(timestampLayout), level.String(), message)
}

func backupPath(path string, ts time.Time) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return base + "_" + ts.Format(backupLayout) + ext
}
