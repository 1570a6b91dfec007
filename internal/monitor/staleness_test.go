package monitor

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filesentry/internal/config"
	"filesentry/internal/logger"
)

func monitorFixture(t *testing.T, lastActivity time.Time) (*StalenessMonitor, *ActivityState, *fakeDispatcher, *recordingSink) {
	t.Helper()

	cfg := &config.MonitorConfig{
		MonitorFolder:        "/data/incoming",
		AlertIntervalMinutes: 30,
		MonitorStartTime:     "08:00",
		MonitorEndTime:       "18:00",
		TickIntervalSeconds:  60,
	}

	state := NewActivityState(lastActivity)
	dispatcher := &fakeDispatcher{}
	rec := &recordingSink{}

	m, err := NewStalenessMonitor(cfg, state, newFakeClock(lastActivity), dispatcher, logger.NewBridge(rec))
	require.NoError(t, err)

	return m, state, dispatcher, rec
}

func at(hour, minute, second int) time.Time {
	return time.Date(2026, 3, 9, hour, minute, second, 0, time.UTC)
}

func TestStalenessMonitor_NoAlertJustUnderThreshold(t *testing.T) {
	lastActivity := at(8, 0, 0)
	m, state, dispatcher, _ := monitorFixture(t, lastActivity)

	m.tick(at(8, 29, 59))

	assert.Empty(t, dispatcher.dispatched())
	assert.Equal(t, lastActivity, state.Last())
}

func TestStalenessMonitor_AlertJustOverThreshold(t *testing.T) {
	lastActivity := at(8, 0, 0)
	m, state, dispatcher, rec := monitorFixture(t, lastActivity)

	tickTime := at(8, 30, 1)
	m.tick(tickTime)

	calls := dispatcher.dispatched()
	require.Len(t, calls, 1, "exactly one dispatch per breaching tick")
	assert.Equal(t, tickTime, calls[0].FiredAt)
	assert.Equal(t, "/data/incoming", calls[0].FolderPath)
	assert.Equal(t, 30*time.Minute, calls[0].Threshold)
	assert.Equal(t, lastActivity, calls[0].LastActivity)

	assert.Equal(t, tickTime, state.Last(), "activity clock reset to the tick time")
	assert.Equal(t, 1, rec.count(logger.LevelWarning, "threshold breached"))
}

func TestStalenessMonitor_ResetSuppressesRepeatAlert(t *testing.T) {
	m, _, dispatcher, _ := monitorFixture(t, at(8, 0, 0))

	m.tick(at(8, 30, 1))
	require.Len(t, dispatcher.dispatched(), 1)

	// The immediately following tick computes elapsed ~= tick interval.
	m.tick(at(8, 31, 1))
	assert.Len(t, dispatcher.dispatched(), 1)
}

func TestStalenessMonitor_IdleOutsideWindow(t *testing.T) {
	m, state, dispatcher, rec := monitorFixture(t, at(17, 0, 0))

	// 19:00 with elapsed 120 minutes: outside the window, no alert.
	m.tick(at(19, 0, 0))

	assert.Empty(t, dispatcher.dispatched())
	assert.Equal(t, at(17, 0, 0), state.Last())
	assert.Equal(t, 1, rec.count(logger.LevelDebug, "outside monitoring window"))
}

func TestStalenessMonitor_WindowBoundsInclusive(t *testing.T) {
	m, _, dispatcher, _ := monitorFixture(t, at(6, 0, 0))

	m.tick(at(8, 0, 0))
	assert.Len(t, dispatcher.dispatched(), 1, "window start is inclusive")

	m.tick(at(18, 0, 59))
	assert.Len(t, dispatcher.dispatched(), 2, "window end is inclusive")

	m.tick(at(18, 1, 0))
	assert.Len(t, dispatcher.dispatched(), 2, "past window end")
}

func TestStalenessMonitor_DispatchFailureStillResets(t *testing.T) {
	lastActivity := at(8, 0, 0)
	m, state, dispatcher, rec := monitorFixture(t, lastActivity)
	dispatcher.err = errors.New("smtp: connection refused")

	tickTime := at(9, 0, 0)
	assert.NotPanics(t, func() { m.tick(tickTime) })

	require.Len(t, dispatcher.dispatched(), 1)
	assert.Equal(t, tickTime, state.Last(), "reset happens regardless of dispatch outcome")
	assert.Equal(t, 1, rec.count(logger.LevelError, "alert dispatch failed"))
}

func TestStalenessMonitor_StartStopLifecycle(t *testing.T) {
	cfg := &config.MonitorConfig{
		MonitorFolder:        "/data/incoming",
		AlertIntervalMinutes: 30,
		MonitorStartTime:     "00:00",
		MonitorEndTime:       "23:59",
		TickIntervalSeconds:  1,
	}
	m, err := NewStalenessMonitor(cfg, NewActivityState(time.Now()), SystemClock(), &fakeDispatcher{}, logger.NewBridge(&recordingSink{}))
	require.NoError(t, err)

	m.Start()
	m.Start() // second start is a warning, not a second loop
	m.Stop()
	m.Stop() // idempotent
}

func TestStalenessMonitor_RejectsUnparseableWindow(t *testing.T) {
	cfg := &config.MonitorConfig{
		MonitorFolder:        "/data/incoming",
		AlertIntervalMinutes: 30,
		MonitorStartTime:     "morning",
		MonitorEndTime:       "18:00",
	}
	_, err := NewStalenessMonitor(cfg, NewActivityState(time.Now()), SystemClock(), &fakeDispatcher{}, logger.NewBridge(&recordingSink{}))
	assert.Error(t, err)
}

func TestWindow_Contains(t *testing.T) {
	day := Window{Start: config.TimeOfDay{Hour: 8}, End: config.TimeOfDay{Hour: 18}}
	overnight := Window{Start: config.TimeOfDay{Hour: 22}, End: config.TimeOfDay{Hour: 6}}
	always := Window{Start: config.TimeOfDay{Hour: 9}, End: config.TimeOfDay{Hour: 9}}

	tests := []struct {
		name   string
		window Window
		tod    config.TimeOfDay
		want   bool
	}{
		{"day window inside", day, config.TimeOfDay{Hour: 12}, true},
		{"day window start edge", day, config.TimeOfDay{Hour: 8}, true},
		{"day window end edge", day, config.TimeOfDay{Hour: 18}, true},
		{"day window before", day, config.TimeOfDay{Hour: 7, Minute: 59}, false},
		{"day window after", day, config.TimeOfDay{Hour: 18, Minute: 1}, false},
		{"overnight late evening", overnight, config.TimeOfDay{Hour: 23}, true},
		{"overnight early morning", overnight, config.TimeOfDay{Hour: 5}, true},
		{"overnight midday", overnight, config.TimeOfDay{Hour: 12}, false},
		{"overnight start edge", overnight, config.TimeOfDay{Hour: 22}, true},
		{"overnight end edge", overnight, config.TimeOfDay{Hour: 6}, true},
		{"equal bounds inside", always, config.TimeOfDay{Hour: 9}, true},
		{"equal bounds elsewhere", always, config.TimeOfDay{Hour: 15}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.window.Contains(tt.tod))
		})
	}
}
