// Package input groups the gamepad vocabulary shared by devices, front ends
// and the state machine.
//
// # Packages
//
//   - button: the buttons a device can report, with configuration names
//   - stick: direction classification for the primary and secondary sticks
//   - key: the non-printable keys sent to the text sink
//
// Devices translate raw readings into these types; nothing below input
// knows about evdev, ebiten or tcell.
package input
