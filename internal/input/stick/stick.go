// Package stick turns analog stick samples into discrete directions.
//
// The reference axis is +Y (north) and angles grow clockwise, so the angle of
// a sample is atan2(x, y) in degrees within (-180, 180]. Sectors are half-open
// intervals (lower, upper] and the thresholds are integers rather than
// multiples of 22.5 degrees.
package stick

import (
	"fmt"
	"math"

	"github.com/dshills/padkeys/internal/input/key"
)

// Direction is a discrete stick position. Center is 0; 1 is north and values
// proceed clockwise to 8 (north-west).
type Direction uint8

const (
	Center Direction = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Count is the number of primary directions including Center.
const Count = 9

var directionNames = [Count]string{
	"center", "n", "ne", "e", "se", "s", "sw", "w", "nw",
}

// String returns a short compass name.
func (d Direction) String() string {
	if d < Count {
		return directionNames[d]
	}
	return fmt.Sprintf("direction(%d)", d)
}

// Valid reports whether d is within 0..8.
func (d Direction) Valid() bool {
	return d < Count
}

// NavKey returns the arrow key repeated for a secondary stick direction.
// Center and diagonals have no key.
func (d Direction) NavKey() (key.Key, bool) {
	switch d {
	case North:
		return key.KeyUp, true
	case East:
		return key.KeyRight, true
	case South:
		return key.KeyDown, true
	case West:
		return key.KeyLeft, true
	default:
		return key.KeyNone, false
	}
}

// GridCell returns the row and column of d in a 3x3 layout with north at the
// top and Center in the middle.
func (d Direction) GridCell() (row, col int) {
	switch d {
	case NorthWest:
		return 0, 0
	case North:
		return 0, 1
	case NorthEast:
		return 0, 2
	case West:
		return 1, 0
	case East:
		return 1, 2
	case SouthWest:
		return 2, 0
	case South:
		return 2, 1
	case SouthEast:
		return 2, 2
	default:
		return 1, 1
	}
}

// Angle returns the clockwise angle of (x, y) from north in degrees.
func Angle(x, y float64) float64 {
	return math.Atan2(x, y) * 180 / math.Pi
}

func atRest(x, y float64) bool {
	return (x == 0 && y == 0) || math.IsNaN(x) || math.IsNaN(y)
}

// ClassifyPrimary maps a sample to one of nine directions.
func ClassifyPrimary(x, y float64) Direction {
	if atRest(x, y) {
		return Center
	}
	w := Angle(x, y)
	switch {
	case w > -23 && w <= 23:
		return North
	case w > 23 && w <= 68:
		return NorthEast
	case w > 68 && w <= 113:
		return East
	case w > 113 && w <= 158:
		return SouthEast
	case w > 158 || w <= -158:
		return South
	case w > -158 && w <= -113:
		return SouthWest
	case w > -113 && w <= -68:
		return West
	default:
		return NorthWest
	}
}

// ClassifyRight maps a sample to Center or one of the four cardinal
// directions. It never returns a diagonal.
func ClassifyRight(x, y float64) Direction {
	if atRest(x, y) {
		return Center
	}
	w := Angle(x, y)
	switch {
	case w > -45 && w <= 45:
		return North
	case w > 45 && w <= 135:
		return East
	case w > 135 || w <= -135:
		return South
	default:
		return West
	}
}

// Flat zeroes a raw axis reading inside the device's flat range, bounds
// included.
func Flat(value, flat int32) int32 {
	if value >= -flat && value <= flat {
		return 0
	}
	return value
}

// Normalize scales a raw axis reading from [min, max] to [-1, 1]. The
// midpoint maps to 0. A degenerate range yields 0.
func Normalize(value, minimum, maximum int32) float64 {
	if maximum <= minimum {
		return 0
	}
	mid := (float64(minimum) + float64(maximum)) / 2
	half := (float64(maximum) - float64(minimum)) / 2
	v := (float64(value) - mid) / half
	return math.Max(-1, math.Min(1, v))
}

// DiagonalScale is applied to both axes when two D-pad arms are held.
const DiagonalScale = 0.75

// FromDpad converts held D-pad arms into an analog sample. Opposite arms
// cancel out.
func FromDpad(up, down, left, right bool) (x, y float64) {
	if right {
		x++
	}
	if left {
		x--
	}
	if up {
		y++
	}
	if down {
		y--
	}
	if x != 0 && y != 0 {
		x *= DiagonalScale
		y *= DiagonalScale
	}
	return x, y
}
