package viewport

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSized() *Controller {
	c := New()
	c.Resize(800, 600)
	c.SetMapSize(2000, 1000)
	return c
}

func TestWheelStepClamp(t *testing.T) {
	assert.InDelta(t, 0.05, WheelStep(-100), 1e-12)
	assert.InDelta(t, -0.05, WheelStep(100), 1e-12)
	assert.InDelta(t, 0.02, WheelStep(-2), 1e-12)
	assert.InDelta(t, 0, WheelStep(0), 1e-12)
}

func TestScaleAlwaysClamped(t *testing.T) {
	c := newSized()
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		d := (r.Float64() - 0.5) * math.Pow(10, float64(r.Intn(8)))
		c.Wheel(Point{r.Float64() * 800, r.Float64() * 600}, d)
		require.GreaterOrEqual(t, c.Scale(), MinScale)
		require.LessOrEqual(t, c.Scale(), float64(MaxScale))
	}
	for i := 0; i < 200; i++ {
		c.Wheel(Point{400, 300}, 1e9)
	}
	assert.InDelta(t, MinScale, c.Scale(), 1e-12)
	for i := 0; i < 500; i++ {
		c.Wheel(Point{400, 300}, -1e9)
	}
	assert.InDelta(t, MaxScale, c.Scale(), 1e-12)
}

func TestWheelKeepsCursorPointFixed(t *testing.T) {
	c := newSized()
	c.Set(Point{-300, -100}, 1)
	cursor := Point{420, 233}
	for _, delta := range []float64{-3, -3, 2, -1, 5, -0.5} {
		tx, ty := c.ToTexture(cursor)
		c.Wheel(cursor, delta)
		got := c.ToScreen(tx, ty)
		assert.InDelta(t, cursor.X, got.X, 1e-9, "delta %v", delta)
		assert.InDelta(t, cursor.Y, got.Y, 1e-9, "delta %v", delta)
	}
}

func TestWheelAtScaleLimitDoesNotPan(t *testing.T) {
	c := newSized()
	c.Set(Point{-300, -100}, MaxScale)
	before := c.Offset()
	c.Wheel(Point{10, 10}, -100)
	assert.Equal(t, before, c.Offset())
	assert.Equal(t, float64(MaxScale), c.Scale())
}

func TestDragStateMachine(t *testing.T) {
	c := newSized()
	c.Set(Point{0, 0}, 1)
	c.PointerMove(Point{50, 50})
	assert.Equal(t, Point{0, 0}, c.Offset())

	c.PointerDown(Point{100, 100})
	assert.True(t, c.Dragging())
	c.PointerMove(Point{90, 80})
	assert.Equal(t, Point{-10, -20}, c.Offset())
	c.PointerMove(Point{80, 80})
	assert.Equal(t, Point{-20, -20}, c.Offset())
	c.PointerUp()
	assert.False(t, c.Dragging())
	c.PointerMove(Point{0, 0})
	assert.Equal(t, Point{-20, -20}, c.Offset())
}

func TestOffsetClamp(t *testing.T) {
	c := newSized()
	c.Set(Point{5000, 5000}, 1)
	assert.Equal(t, Point{400, 300}, c.Offset())
	c.Set(Point{-5000, -5000}, 1)
	assert.Equal(t, Point{400 - 2000, 300 - 1000}, c.Offset())

	c.PointerDown(Point{0, 0})
	c.PointerMove(Point{1e6, -1e6})
	assert.Equal(t, Point{400, 300 - 1000}, c.Offset())
}

func TestNaNOffsetReset(t *testing.T) {
	c := newSized()
	c.Set(Point{math.NaN(), math.NaN()}, 1)
	o := c.Offset()
	assert.Equal(t, Point{0, 0}, o)

	c.Set(Point{10, 10}, math.NaN())
	assert.Equal(t, 1.0, c.Scale())
}

func TestResetFitsWidth(t *testing.T) {
	c := newSized()
	c.Set(Point{-50, -50}, 3)
	c.PointerDown(Point{1, 1})
	c.Reset()
	assert.InDelta(t, 0.4, c.Scale(), 1e-12)
	assert.Equal(t, Point{100, 100}, c.Offset())
	assert.False(t, c.Dragging())
}

func TestScreenTextureRoundTrip(t *testing.T) {
	c := newSized()
	c.Set(Point{-123, 45}, 1.7)
	p := c.ToScreen(321, 654)
	x, y := c.ToTexture(p)
	assert.InDelta(t, 321, x, 1e-9)
	assert.InDelta(t, 654, y, 1e-9)
}
