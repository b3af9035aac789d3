// Package mapres describes the map artwork used to draw a replay and the
// calibration that ties game coordinates to texture pixels.
package mapres

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMapIndex is returned when a replay selects a map the catalog lacks.
var ErrMapIndex = errors.New("mapres: map index out of range")

// Rect is a pair of corners, [min, max], each as [x, y].
type Rect [2][2]float64

// Calibration relates the same rectangle in game space and texture space.
type Calibration struct {
	GamePos    Rect `json:"game_pos"`
	TexturePos Rect `json:"texture_pos"`
}

// Map is a single map resource record.
type Map struct {
	Path            string      `json:"path"`
	Center          [2]float64  `json:"center"`
	Calibration     Calibration `json:"calibration"`
	BodyPixelWidth  float64     `json:"body_pixel_width"`
	GhostPixelWidth float64     `json:"ghost_pixel_width"`
}

// Catalog is the resource configuration, indexed by the replay's map
// selector.
type Catalog struct {
	Maps []Map `json:"maps"`
}

// ParseCatalog decodes a resource config document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("mapres: config: %w", err)
	}
	return &c, nil
}

// Map returns the map resource for selector i.
func (c *Catalog) Map(i int) (Map, error) {
	if c == nil || i < 0 || i >= len(c.Maps) {
		return Map{}, fmt.Errorf("%w: %d", ErrMapIndex, i)
	}
	return c.Maps[i], nil
}

// HQPath rewrites a resource path to its high resolution variant.
func HQPath(path string) string {
	return strings.Replace(path, "res/", "res_hq/", 1)
}

// Sprite kinds stored under res/<kind>/<colour index>.png.
const (
	SpritePlayer = "player"
	SpriteGhost  = "ghost"
	SpriteBody   = "body"
)

// SpritePath returns the resource path of a player sprite.
func SpritePath(kind string, colorIndex int) string {
	return fmt.Sprintf("res/%s/%d.png", kind, colorIndex)
}
