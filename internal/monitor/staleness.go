package monitor

import (
	"sync"
	"time"

	"filesentry/internal/config"
	"filesentry/internal/logger"
	"filesentry/internal/notifier"
)

// AlertSender dispatches one alert notification. notifier.AlertDispatcher
// satisfies it.
type AlertSender interface {
	Dispatch(event notifier.AlertEvent) error
}

// Window is the daily time-of-day interval during which staleness is
// evaluated, inclusive at both ends. An end before the start wraps
// midnight; equal bounds arm only that single minute.
type Window struct {
	Start config.TimeOfDay
	End   config.TimeOfDay
}

// Contains reports whether tod falls inside the window.
func (w Window) Contains(tod config.TimeOfDay) bool {
	m := tod.MinuteOfDay()
	start := w.Start.MinuteOfDay()
	end := w.End.MinuteOfDay()

	if start <= end {
		return m >= start && m <= end
	}
	return m >= start || m <= end
}

// StalenessMonitor periodically compares the time since last activity
// against the alert threshold. It is Idle outside the monitoring window
// and Armed inside it; the state is re-derived from the clock on every
// tick. A breach dispatches one alert synchronously on the tick
// goroutine and resets the activity clock whether or not the dispatch
// succeeded, so the next tick starts a fresh staleness interval.
type StalenessMonitor struct {
	folder     string
	threshold  time.Duration
	window     Window
	tickPeriod time.Duration
	state      *ActivityState
	clock      Clock
	dispatcher AlertSender
	bridge     *logger.Bridge

	mu     sync.Mutex
	active bool
	stop   chan struct{}
	done   chan struct{}
}

// NewStalenessMonitor builds a monitor from configuration. The window
// bounds were validated at startup; a parse failure here is still an
// error rather than a panic.
func NewStalenessMonitor(cfg *config.MonitorConfig, state *ActivityState, clock Clock, dispatcher AlertSender, bridge *logger.Bridge) (*StalenessMonitor, error) {
	start, end, err := cfg.Window()
	if err != nil {
		return nil, err
	}

	return &StalenessMonitor{
		folder:     cfg.MonitorFolder,
		threshold:  cfg.AlertThreshold(),
		window:     Window{Start: start, End: end},
		tickPeriod: cfg.TickInterval(),
		state:      state,
		clock:      clock,
		dispatcher: dispatcher,
		bridge:     bridge,
	}, nil
}

// Start launches the tick loop.
func (m *StalenessMonitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active {
		m.bridge.Warning("monitor already started")
		return
	}
	m.active = true
	m.stop = make(chan struct{})
	m.done = make(chan struct{})

	m.bridge.TraceInfo("staleness monitor started: folder=%s threshold=%s window=%s-%s tick=%s",
		m.folder, m.threshold, m.window.Start, m.window.End, m.tickPeriod)

	go m.run(m.stop, m.done)
}

// Stop halts the tick loop and waits for an in-flight tick (including a
// blocking dispatch) to finish. Idempotent.
func (m *StalenessMonitor) Stop() {
	m.mu.Lock()
	if !m.active {
		m.mu.Unlock()
		return
	}
	m.active = false
	stop, done := m.stop, m.done
	m.mu.Unlock()

	close(stop)
	<-done

	m.bridge.Info("staleness monitor stopped")
}

func (m *StalenessMonitor) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.tickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.tick(m.clock.Now())
		}
	}
}

// tick evaluates one staleness check at the given instant.
func (m *StalenessMonitor) tick(now time.Time) {
	tod := config.TimeOfDayOf(now)

	if !m.window.Contains(tod) {
		m.bridge.Debug("outside monitoring window, check skipped")
		return
	}

	last := m.state.Last()
	elapsed := now.Sub(last)
	m.bridge.Debug("armed check: " + elapsed.Truncate(time.Second).String() + " since last activity")

	if elapsed <= m.threshold {
		return
	}

	m.bridge.TraceWarning("staleness threshold breached: no activity for %s (threshold %s)", elapsed.Truncate(time.Second), m.threshold)

	event := notifier.NewAlertEvent(m.folder, m.threshold, elapsed, last, now)
	if err := m.dispatcher.Dispatch(event); err != nil {
		// The dispatcher already logged the transport detail; the
		// monitor keeps running and will alert again after the reset.
		m.bridge.TraceError("alert dispatch failed: %v", err)
	}

	// Anti-spam reset, not a claim that activity occurred.
	m.state.Reset(now)
}
