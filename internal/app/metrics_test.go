package app

import (
	"testing"
	"time"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()
	snapshot := m.Snapshot()
	if snapshot.EventCount != 0 {
		t.Errorf("expected 0 events, got %d", snapshot.EventCount)
	}
	if snapshot.AvgEventNs != 0 {
		t.Errorf("expected 0 average with no events, got %d", snapshot.AvgEventNs)
	}
}

func TestMetrics_RecordEvent(t *testing.T) {
	m := NewMetrics()

	m.RecordEvent(10*time.Microsecond, true)
	m.RecordEvent(30*time.Microsecond, false)
	m.RecordEvent(20*time.Microsecond, true)

	snapshot := m.Snapshot()
	if snapshot.EventCount != 3 {
		t.Errorf("expected 3 events, got %d", snapshot.EventCount)
	}
	if snapshot.Unhandled != 1 {
		t.Errorf("expected 1 unhandled, got %d", snapshot.Unhandled)
	}
	if snapshot.AvgEventNs != int64(20*time.Microsecond) {
		t.Errorf("expected avg 20us, got %d ns", snapshot.AvgEventNs)
	}
	if snapshot.MaxEventNs != int64(30*time.Microsecond) {
		t.Errorf("expected max 30us, got %d ns", snapshot.MaxEventNs)
	}
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.RecordOutput(2, 1)
	m.RecordOutput(1, 0)
	m.RecordSinkError()
	m.RecordReload()
	m.RecordReload()

	snapshot := m.Snapshot()
	if snapshot.Commits != 3 || snapshot.Keys != 1 {
		t.Errorf("expected 3 commits and 1 key, got %d and %d", snapshot.Commits, snapshot.Keys)
	}
	if snapshot.SinkErrors != 1 {
		t.Errorf("expected 1 sink error, got %d", snapshot.SinkErrors)
	}
	if snapshot.Reloads != 2 {
		t.Errorf("expected 2 reloads, got %d", snapshot.Reloads)
	}
}
