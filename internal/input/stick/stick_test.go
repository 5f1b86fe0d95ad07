package stick

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/padkeys/internal/input/key"
)

// polar returns a unit sample at deg degrees clockwise from north.
func polar(deg float64) (float64, float64) {
	r := deg * math.Pi / 180
	return math.Sin(r), math.Cos(r)
}

func TestClassifyAtRest(t *testing.T) {
	assert.Equal(t, Center, ClassifyPrimary(0, 0))
	assert.Equal(t, Center, ClassifyRight(0, 0))
	assert.Equal(t, Center, ClassifyPrimary(math.NaN(), 1))
}

func TestClassifyPrimaryCardinals(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want Direction
	}{
		{"north", 0, 1, North},
		{"east", 1, 0, East},
		{"south", 0, -1, South},
		{"south negative zero", math.Copysign(0, -1), -1, South},
		{"west", -1, 0, West},
		{"small live sample", 0.01, 0, East},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPrimary(tt.x, tt.y))
		})
	}
}

func TestClassifyPrimaryRotation(t *testing.T) {
	for k := 0; k < 8; k++ {
		x, y := polar(float64(45 * k))
		assert.Equal(t, Direction(k+1), ClassifyPrimary(x, y), "rotation %d", k)
	}
}

func TestClassifyPrimaryBoundaries(t *testing.T) {
	tests := []struct {
		deg  float64
		want Direction
	}{
		{22.5, North},
		{-22.5, North},
		{22.9, North},
		{23.5, NorthEast},
		{-23.5, NorthWest},
		{67.5, NorthEast},
		{68.5, East},
		{112.5, East},
		{113.5, SouthEast},
		{157.5, SouthEast},
		{158.5, South},
		{-158.5, South},
		{-157.5, SouthWest},
		{-113.5, SouthWest},
		{-112.5, West},
		{-68.5, West},
		{-67.5, NorthWest},
	}

	for _, tt := range tests {
		x, y := polar(tt.deg)
		assert.Equal(t, tt.want, ClassifyPrimary(x, y), "angle %v", tt.deg)
	}
}

func TestClassifyPrimaryAlwaysInRange(t *testing.T) {
	for deg := -180.0; deg < 180; deg += 0.5 {
		x, y := polar(deg)
		d := ClassifyPrimary(x, y)
		assert.True(t, d >= North && d <= NorthWest, "angle %v gave %v", deg, d)
	}
}

func TestClassifyRight(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want Direction
	}{
		{"up", 0, 1, North},
		{"right", 1, 0, East},
		{"down", 0, -1, South},
		{"left", -1, 0, West},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRight(tt.x, tt.y))
		})
	}

	angles := []struct {
		deg  float64
		want Direction
	}{
		{30, North},
		{-30, North},
		{60, East},
		{130, East},
		{140, South},
		{-140, South},
		{-130, West},
		{-60, West},
	}
	for _, tt := range angles {
		x, y := polar(tt.deg)
		assert.Equal(t, tt.want, ClassifyRight(x, y), "angle %v", tt.deg)
	}
}

func TestClassifyRightNeverDiagonal(t *testing.T) {
	for deg := -180.0; deg < 180; deg++ {
		x, y := polar(deg)
		switch ClassifyRight(x, y) {
		case North, East, South, West:
		default:
			t.Fatalf("angle %v produced a diagonal", deg)
		}
	}
}

func TestClassifyPure(t *testing.T) {
	for deg := -180.0; deg < 180; deg += 7 {
		x, y := polar(deg)
		assert.Equal(t, ClassifyPrimary(x, y), ClassifyPrimary(x, y))
		assert.Equal(t, ClassifyRight(x, y), ClassifyRight(x, y))
	}
}

func TestNavKey(t *testing.T) {
	tests := []struct {
		dir  Direction
		want key.Key
		ok   bool
	}{
		{North, key.KeyUp, true},
		{East, key.KeyRight, true},
		{South, key.KeyDown, true},
		{West, key.KeyLeft, true},
		{Center, key.KeyNone, false},
		{NorthEast, key.KeyNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			got, ok := tt.dir.NavKey()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestGridCell(t *testing.T) {
	seen := map[[2]int]Direction{}
	for d := Center; d < Count; d++ {
		r, c := d.GridCell()
		_, dup := seen[[2]int{r, c}]
		assert.False(t, dup, "duplicate cell for %v", d)
		seen[[2]int{r, c}] = d
	}
	r, c := North.GridCell()
	assert.Equal(t, [2]int{0, 1}, [2]int{r, c})
	r, c = Center.GridCell()
	assert.Equal(t, [2]int{1, 1}, [2]int{r, c})
}

func TestFlat(t *testing.T) {
	assert.Equal(t, int32(0), Flat(100, 128))
	assert.Equal(t, int32(0), Flat(-127, 128))
	assert.Equal(t, int32(0), Flat(128, 128))
	assert.Equal(t, int32(0), Flat(-128, 128))
	assert.Equal(t, int32(129), Flat(129, 128))
	assert.Equal(t, int32(-129), Flat(-129, 128))
	assert.Equal(t, int32(-300), Flat(-300, 128))
	assert.Equal(t, int32(5), Flat(5, 0))
}

func TestNormalize(t *testing.T) {
	assert.InDelta(t, 0.0, Normalize(128, 0, 256), 1e-9)
	assert.InDelta(t, 1.0, Normalize(256, 0, 256), 1e-9)
	assert.InDelta(t, -1.0, Normalize(-32768, -32768, 32767), 1e-9)
	assert.InDelta(t, 1.0, Normalize(40000, -32768, 32767), 1e-9)
	assert.Equal(t, 0.0, Normalize(5, 3, 3))
}

func TestFromDpad(t *testing.T) {
	x, y := FromDpad(false, false, false, false)
	assert.Equal(t, Center, ClassifyPrimary(x, y))

	x, y = FromDpad(true, false, false, false)
	assert.Equal(t, North, ClassifyPrimary(x, y))

	x, y = FromDpad(false, true, true, false)
	assert.InDelta(t, -0.75, x, 1e-9)
	assert.InDelta(t, -0.75, y, 1e-9)
	assert.Equal(t, SouthWest, ClassifyPrimary(x, y))

	x, y = FromDpad(true, true, false, true)
	assert.Equal(t, East, ClassifyPrimary(x, y))
}
