// Package machine is the input state machine of the gamepad keyboard.
//
// A Machine consumes Events (button presses, stick samples, field focus
// changes, repeat ticks and keymap reloads) and returns the Commands a text
// sink and a renderer should carry out. The state is the product
// {normal, symbols} x {shift off, shift on} plus the two stick directions
// and the active language index.
//
// A Machine is owned by a single goroutine. Other goroutines read state
// through Snapshot values published by the owner.
package machine
