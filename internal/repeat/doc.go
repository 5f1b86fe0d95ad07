// Package repeat re-fires a navigation key while the secondary stick is held.
//
// A Driver fires immediately on Start and then once per interval until Stop.
// Scheduling is delegated to a Scheduler which later hands a Tick back to the
// driver on the goroutine that owns it. Every Start and Stop bumps a
// generation counter and a Tick only fires when its generation is current, so
// ticks scheduled for a replaced or stopped repeat are dropped.
package repeat
