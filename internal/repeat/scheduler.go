package repeat

import (
	"context"
	"sort"
	"time"
)

// TimerScheduler schedules ticks on wall-clock timers and hands them to post
// from the timer goroutine. post is expected to forward the tick onto the
// owner's event queue.
type TimerScheduler struct {
	ctx  context.Context
	post func(Tick)
}

// NewTimerScheduler creates a scheduler whose timers stop posting once ctx is
// done.
func NewTimerScheduler(ctx context.Context, post func(Tick)) *TimerScheduler {
	return &TimerScheduler{ctx: ctx, post: post}
}

// Schedule implements Scheduler.
func (s *TimerScheduler) Schedule(after time.Duration, tick Tick) {
	time.AfterFunc(after, func() {
		if s.ctx.Err() != nil {
			return
		}
		s.post(tick)
	})
}

type pending struct {
	at   time.Duration
	seq  uint64
	tick Tick
}

// ManualScheduler is a fake clock. Ticks are delivered only by Advance.
type ManualScheduler struct {
	now     time.Duration
	seq     uint64
	pending []pending
}

// NewManualScheduler creates a manual scheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule implements Scheduler.
func (m *ManualScheduler) Schedule(after time.Duration, tick Tick) {
	m.seq++
	m.pending = append(m.pending, pending{at: m.now + after, seq: m.seq, tick: tick})
}

// Now returns the elapsed fake time.
func (m *ManualScheduler) Now() time.Duration {
	return m.now
}

// Pending returns the number of undelivered ticks.
func (m *ManualScheduler) Pending() int {
	return len(m.pending)
}

// Advance moves the clock forward by d and delivers every tick that falls due,
// in order. Ticks scheduled during delivery are delivered too if they fall
// inside the window.
func (m *ManualScheduler) Advance(d time.Duration, deliver func(Tick)) {
	end := m.now + d
	for {
		i := m.next()
		if i < 0 || m.pending[i].at > end {
			break
		}
		p := m.pending[i]
		m.pending = append(m.pending[:i], m.pending[i+1:]...)
		m.now = p.at
		deliver(p.tick)
	}
	m.now = end
}

func (m *ManualScheduler) next() int {
	if len(m.pending) == 0 {
		return -1
	}
	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].at != m.pending[j].at {
			return m.pending[i].at < m.pending[j].at
		}
		return m.pending[i].seq < m.pending[j].seq
	})
	return 0
}

// NopScheduler drops every tick, so a started repeat fires exactly once.
type NopScheduler struct{}

// Schedule implements Scheduler.
func (NopScheduler) Schedule(time.Duration, Tick) {}
