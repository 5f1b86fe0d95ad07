// Package keymap loads the character tables the gamepad keyboard types from.
//
// A table is a fixed 9x4 grid. Rows are stick directions (0 is center, 1 is
// north, proceeding clockwise) and columns are the face buttons A, B, X and Y.
// Each cell holds a primary character and an optional alt character.
//
// Tables are described in XML:
//
//	<GamepadKeyboard name="English">
//	  <StickDirection position="1">
//	    <A>a</A><B>b</B><X>c</X><Y>d</Y>
//	  </StickDirection>
//	  <StickDirection position="0">
//	    <A alt="!">.</A>
//	  </StickDirection>
//	</GamepadKeyboard>
//
// Entry-level problems are logged and skipped. A missing or wrong root element
// or an unparsable document fails the load with a *FormatError.
//
// The Registry resolves keymap ids against a user directory first and the
// built-in layouts second.
package keymap
