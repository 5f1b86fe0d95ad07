package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts what the event loop did. All methods are safe for
// concurrent use.
type Metrics struct {
	eventCount   atomic.Uint64
	eventTotalNs atomic.Int64
	eventMaxNs   atomic.Int64
	unhandled    atomic.Uint64
	commits      atomic.Uint64
	keys         atomic.Uint64
	sinkErrors   atomic.Uint64
	reloads      atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordEvent records the time taken to handle one event.
func (m *Metrics) RecordEvent(duration time.Duration, handled bool) {
	ns := duration.Nanoseconds()
	m.eventCount.Add(1)
	m.eventTotalNs.Add(ns)
	if !handled {
		m.unhandled.Add(1)
	}

	for {
		old := m.eventMaxNs.Load()
		if ns <= old {
			break
		}
		if m.eventMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordOutput records committed text and synthesized key pairs.
func (m *Metrics) RecordOutput(commits, keys int) {
	m.commits.Add(uint64(commits))
	m.keys.Add(uint64(keys))
}

// RecordSinkError records a failed delivery to the sink.
func (m *Metrics) RecordSinkError() {
	m.sinkErrors.Add(1)
}

// RecordReload records a keymap reload.
func (m *Metrics) RecordReload() {
	m.reloads.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	count := m.eventCount.Load()
	var avg int64
	if count > 0 {
		avg = m.eventTotalNs.Load() / int64(count)
	}
	return MetricsSnapshot{
		Uptime:     time.Since(m.startTime),
		EventCount: count,
		AvgEventNs: avg,
		MaxEventNs: m.eventMaxNs.Load(),
		Unhandled:  m.unhandled.Load(),
		Commits:    m.commits.Load(),
		Keys:       m.keys.Load(),
		SinkErrors: m.sinkErrors.Load(),
		Reloads:    m.reloads.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime     time.Duration
	EventCount uint64
	AvgEventNs int64
	MaxEventNs int64
	Unhandled  uint64
	Commits    uint64
	Keys       uint64
	SinkErrors uint64
	Reloads    uint64
}
