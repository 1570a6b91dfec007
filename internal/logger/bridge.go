package logger

import (
	"fmt"
	"strings"
)

// Bridge fans every event-style and trace-style call into exactly one
// sink write. It holds no state beyond the sink reference and an
// optional source tag prefixed to each message.
type Bridge struct {
	sink   EventSink
	source string
}

// NewBridge creates a bridge over sink.
func NewBridge(sink EventSink) *Bridge {
	return &Bridge{sink: sink}
}

// WithSource returns a bridge that prefixes every message with source.
func (b *Bridge) WithSource(source string) *Bridge {
	return &Bridge{sink: b.sink, source: source}
}

func (b *Bridge) Debug(message string)    { b.write(LevelDebug, message) }
func (b *Bridge) Info(message string)     { b.write(LevelInfo, message) }
func (b *Bridge) Warning(message string)  { b.write(LevelWarning, message) }
func (b *Bridge) Error(message string)    { b.write(LevelError, message) }
func (b *Bridge) Critical(message string) { b.write(LevelCritical, message) }

// TraceInfo writes a formatted free-text entry at Info.
func (b *Bridge) TraceInfo(format string, args ...any) {
	b.write(LevelInfo, fmt.Sprintf(format, args...))
}

// TraceWarning writes a formatted free-text entry at Warning.
func (b *Bridge) TraceWarning(format string, args ...any) {
	b.write(LevelWarning, fmt.Sprintf(format, args...))
}

// TraceError writes a formatted free-text entry at Error.
func (b *Bridge) TraceError(format string, args ...any) {
	b.write(LevelError, fmt.Sprintf(format, args...))
}

func (b *Bridge) write(level Level, message string) {
	// Blank messages stay blank so the sink can drop them.
	if b.source != "" && strings.TrimSpace(message) != "" {
		message = b.source + ": " + message
	}
	b.sink.Write(level, message)
}
