// Package key defines the non-printable keys the keyboard synthesizes.
//
// Characters chosen from a keymap are committed to the sink as text. Keys are
// reserved for editing and navigation: erase sends Backspace, confirm sends
// Enter and the secondary stick repeats the arrow keys.
package key
