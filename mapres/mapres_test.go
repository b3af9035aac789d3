package mapres

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `{"maps": [
  {"path": "res/maps/skeld.png", "center": [0, 0],
   "calibration": {"game_pos": [[-20, -10], [20, 10]], "texture_pos": [[0, 0], [4000, 2000]]},
   "body_pixel_width": 80, "ghost_pixel_width": 70}
]}`

func TestParseCatalog(t *testing.T) {
	c, err := ParseCatalog([]byte(catalogJSON))
	require.NoError(t, err)
	m, err := c.Map(0)
	require.NoError(t, err)
	assert.Equal(t, "res/maps/skeld.png", m.Path)
	assert.InDelta(t, 80, m.BodyPixelWidth, 1e-9)
	assert.InDelta(t, 4000, m.Calibration.TexturePos[1][0], 1e-9)

	_, err = c.Map(3)
	assert.ErrorIs(t, err, ErrMapIndex)
	_, err = (*Catalog)(nil).Map(0)
	assert.ErrorIs(t, err, ErrMapIndex)

	_, err = ParseCatalog([]byte("[]"))
	assert.Error(t, err)
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "res_hq/maps/skeld.png", HQPath("res/maps/skeld.png"))
	assert.Equal(t, "res/ghost/3.png", SpritePath(SpriteGhost, 3))
}

func TestMapperCorners(t *testing.T) {
	m := NewMapper(Calibration{
		GamePos:    Rect{{-20, -10}, {20, 10}},
		TexturePos: Rect{{0, 0}, {4000, 2000}},
	})
	x, y := m.ToTexture(-20, -10)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)
	x, y = m.ToTexture(20, 10)
	assert.InDelta(t, 4000, x, 1e-9)
	assert.InDelta(t, 2000, y, 1e-9)
	x, y = m.ToTexture(0, 0)
	assert.InDelta(t, 2000, x, 1e-9)
	assert.InDelta(t, 1000, y, 1e-9)
}

func TestMapperRoundTrip(t *testing.T) {
	m := NewMapper(Calibration{
		GamePos:    Rect{{-41.2, 17.5}, {12.3, -8.25}},
		TexturePos: Rect{{13, 900}, {2211, 12}},
	})
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		gx, gy := r.Float64()*200-100, r.Float64()*200-100
		tx, ty := m.ToTexture(gx, gy)
		bx, by := m.ToGame(tx, ty)
		assert.InDelta(t, gx, bx, 1e-9)
		assert.InDelta(t, gy, by, 1e-9)
	}
}

func TestMapperDegenerate(t *testing.T) {
	m := NewMapper(Calibration{
		GamePos:    Rect{{5, 0}, {5, 10}},
		TexturePos: Rect{{100, 0}, {100, 10}},
	})
	sx, sy := m.Scale()
	assert.InDelta(t, 1, sx, 1e-9)
	assert.InDelta(t, 1, sy, 1e-9)
	x, _ := m.ToTexture(5, 0)
	assert.InDelta(t, 100, x, 1e-9)
	gx, _ := m.ToGame(x, 0)
	assert.InDelta(t, 5, gx, 1e-9)
}
