package repeat

import (
	"time"

	"github.com/dshills/padkeys/internal/input/key"
)

// DefaultInterval is the delay between repeated fires.
const DefaultInterval = 200 * time.Millisecond

// Tick is a scheduled wake-up for the repeat with the given generation.
type Tick struct {
	Generation uint64
}

// Scheduler arranges for tick to be delivered back to the driver's owner
// after the given delay. Delivery must happen on the owner's goroutine.
type Scheduler interface {
	Schedule(after time.Duration, tick Tick)
}

// Driver repeats at most one key at a time. It is not safe for concurrent
// use; all calls must come from the goroutine that owns it.
type Driver struct {
	interval time.Duration
	sched    Scheduler
	fire     func(key.Key)

	generation uint64
	action     key.Key
	active     bool
}

// New creates a driver. A non-positive interval selects DefaultInterval.
func New(interval time.Duration, sched Scheduler, fire func(key.Key)) *Driver {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Driver{
		interval: interval,
		sched:    sched,
		fire:     fire,
	}
}

// Interval returns the repeat interval.
func (d *Driver) Interval() time.Duration {
	return d.interval
}

// Start replaces any running repeat with k, fires k once and schedules the
// next fire.
func (d *Driver) Start(k key.Key) {
	d.generation++
	d.action = k
	d.active = true
	d.fire(k)
	d.sched.Schedule(d.interval, Tick{Generation: d.generation})
}

// Stop cancels the running repeat. Calling Stop when idle does nothing.
func (d *Driver) Stop() {
	if !d.active {
		return
	}
	d.generation++
	d.active = false
	d.action = key.KeyNone
}

// Tick fires the running repeat if t belongs to it and schedules the next
// fire. It reports whether anything fired.
func (d *Driver) Tick(t Tick) bool {
	if !d.active || t.Generation != d.generation {
		return false
	}
	d.fire(d.action)
	d.sched.Schedule(d.interval, Tick{Generation: d.generation})
	return true
}

// Active returns the key being repeated, if any.
func (d *Driver) Active() (key.Key, bool) {
	return d.action, d.active
}

// Generation returns the current generation.
func (d *Driver) Generation() uint64 {
	return d.generation
}
