package mapres

import "math"

// Mapper converts game-world coordinates to texture pixels with a per-axis
// affine transform derived once from a Calibration.
type Mapper struct {
	scale [2]float64
	shift [2]float64
}

// NewMapper derives scale and shift from the calibration rectangles. An
// axis whose game or texture span is zero (or not finite) keeps a scale of
// 1 so the transform stays invertible.
func NewMapper(c Calibration) Mapper {
	var m Mapper
	for axis := 0; axis < 2; axis++ {
		gameSpan := c.GamePos[1][axis] - c.GamePos[0][axis]
		texSpan := c.TexturePos[1][axis] - c.TexturePos[0][axis]
		s := texSpan / gameSpan
		if gameSpan == 0 || s == 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			s = 1
		}
		m.scale[axis] = s
		m.shift[axis] = c.TexturePos[0][axis] - c.GamePos[0][axis]*s
	}
	return m
}

// ToTexture maps a game point to texture pixels.
func (m Mapper) ToTexture(x, y float64) (float64, float64) {
	return x*m.scale[0] + m.shift[0], y*m.scale[1] + m.shift[1]
}

// ToGame is the inverse of ToTexture.
func (m Mapper) ToGame(x, y float64) (float64, float64) {
	return (x - m.shift[0]) / m.scale[0], (y - m.shift[1]) / m.scale[1]
}

// Scale returns the per-axis texture pixels per game unit.
func (m Mapper) Scale() (float64, float64) { return m.scale[0], m.scale[1] }
