// Package viewport tracks pan and zoom of the map canvas.
package viewport

import "math"

const (
	MinScale = 0.1
	MaxScale = 5

	// wheelFactor converts a wheel delta into a scale step; the step is
	// limited to maxWheelStep in either direction.
	wheelFactor  = 0.01
	maxWheelStep = 0.05
)

// Point is a screen position in logical pixels.
type Point struct {
	X, Y float64
}

// Controller owns the viewport state of one map view: offset, scale and
// the drag anchor. Mutations come from pointer, wheel and resize input
// only, and every mutation ends with Clamp. Not safe for concurrent use.
type Controller struct {
	x, y  float64
	scale float64
	drag  *Point

	viewW, viewH float64
	mapW, mapH   float64
}

// New returns a controller with the default offset (100, 100) and scale 1.
func New() *Controller {
	return &Controller{x: 100, y: 100, scale: 1}
}

// Offset returns the screen position of the map's top-left corner.
func (c *Controller) Offset() Point { return Point{c.x, c.y} }

// Scale returns screen pixels per texture pixel.
func (c *Controller) Scale() float64 { return c.scale }

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool { return c.drag != nil }

// ViewSize returns the last size passed to Resize.
func (c *Controller) ViewSize() (float64, float64) { return c.viewW, c.viewH }

// MapSize returns the texture size passed to SetMapSize.
func (c *Controller) MapSize() (float64, float64) { return c.mapW, c.mapH }

// Resize records new viewport dimensions.
func (c *Controller) Resize(w, h float64) {
	c.viewW, c.viewH = w, h
	c.Clamp()
}

// SetMapSize records the map texture dimensions.
func (c *Controller) SetMapSize(w, h float64) {
	c.mapW, c.mapH = w, h
	c.Clamp()
}

// FitWidth scales the map so its width matches the viewport width.
func (c *Controller) FitWidth() {
	if c.mapW > 0 && c.viewW > 0 {
		c.scale = c.viewW / c.mapW
	}
	c.Clamp()
}

// Reset returns to the default offset and fits the map width when the map
// size is known.
func (c *Controller) Reset() {
	c.x, c.y, c.scale = 100, 100, 1
	c.drag = nil
	c.FitWidth()
}

// Set replaces offset and scale, then clamps.
func (c *Controller) Set(offset Point, scale float64) {
	c.x, c.y, c.scale = offset.X, offset.Y, scale
	c.Clamp()
}

// PointerDown starts a drag anchored at p.
func (c *Controller) PointerDown(p Point) {
	c.drag = &Point{p.X, p.Y}
}

// PointerMove pans by the distance from the anchor and moves the anchor.
// It does nothing while idle.
func (c *Controller) PointerMove(p Point) {
	if c.drag == nil {
		return
	}
	c.x += p.X - c.drag.X
	c.y += p.Y - c.drag.Y
	c.drag.X, c.drag.Y = p.X, p.Y
	c.Clamp()
}

// PointerUp ends a drag.
func (c *Controller) PointerUp() {
	c.drag = nil
}

// WheelStep is the scale change for a wheel delta.
func WheelStep(deltaY float64) float64 {
	return math.Max(-maxWheelStep, math.Min(maxWheelStep, -deltaY*wheelFactor))
}

// Wheel zooms toward the cursor: the texture point under cursor stays
// under cursor. The correction uses the step actually applied after the
// scale is clamped.
func (c *Controller) Wheel(cursor Point, deltaY float64) {
	old := c.scale
	next := clampScale(old + WheelStep(deltaY))
	step := next - old
	c.scale = next
	if old != 0 {
		c.x -= (cursor.X - c.x) / old * step
		c.y -= (cursor.Y - c.y) / old * step
	}
	c.Clamp()
}

// Clamp restores the invariants: scale within [MinScale, MaxScale] and an
// offset that keeps the map covering at least half the viewport per axis.
// A NaN offset is reset to 0 first.
func (c *Controller) Clamp() {
	c.scale = clampScale(c.scale)
	if math.IsNaN(c.x) {
		c.x = 0
	}
	if math.IsNaN(c.y) {
		c.y = 0
	}
	c.x = clampOffset(c.x, c.viewW, c.mapW*c.scale)
	c.y = clampOffset(c.y, c.viewH, c.mapH*c.scale)
}

func clampScale(s float64) float64 {
	if math.IsNaN(s) {
		return 1
	}
	return math.Max(MinScale, math.Min(MaxScale, s))
}

func clampOffset(v, view, mapSpan float64) float64 {
	half := view / 2
	return math.Min(half, math.Max(v, half-mapSpan))
}

// ToScreen maps a texture pixel to the screen.
func (c *Controller) ToScreen(tx, ty float64) Point {
	return Point{c.x + tx*c.scale, c.y + ty*c.scale}
}

// ToTexture maps a screen point back to texture pixels.
func (c *Controller) ToTexture(p Point) (float64, float64) {
	return (p.X - c.x) / c.scale, (p.Y - c.y) / c.scale
}
