// Package render draws one replay frame: the map, every player's avatar
// and name tag, and an optional stats overlay. Drawing goes through the
// Canvas interface so the same code serves the window and headless
// snapshots.
package render

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"auviewer/mapres"
	"auviewer/motion"
	"auviewer/replay"
	"auviewer/viewport"
)

// Image is anything with pixel bounds; each Canvas accepts its own kind.
type Image interface {
	Bounds() image.Rectangle
}

// Canvas is a 2-D drawing surface measured in device pixels. Text y
// coordinates are baselines.
type Canvas interface {
	Size() (w, h int)
	Clear()
	DrawImage(img Image, x, y, w, h, alpha float64)
	DrawText(s string, x, y, size float64, mono bool, clr color.Color)
	MeasureText(s string, size float64, mono bool) (width, descent float64)
}

// Sprites supplies the images a frame needs. A nil return means the image
// is not loaded yet; it is skipped for this frame.
type Sprites interface {
	Map() Image
	Avatar(c replay.Color, ghost bool) Image
}

const (
	nameSize  = 15
	statsSize = 10
	deadAlpha = 0.5
)

var (
	ImpostorLabel = color.NRGBA{0xff, 0x00, 0x00, 0xff}
	CrewLabel     = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	StatsText     = color.NRGBA{0xff, 0xff, 0xff, 0xff}
)

// Scene is everything a frame reads. The renderer never mutates it.
type Scene struct {
	Data       *replay.Dataset
	Map        mapres.Map
	Mapper     mapres.Mapper
	Motion     *motion.Index
	View       *viewport.Controller
	Sprites    Sprites
	PixelRatio float64
	ShowStats  bool
}

// Renderer draws frames of a Scene.
type Renderer struct {
	Scene Scene
	FPS   FPSCounter
}

// New returns a renderer for scene.
func New(scene Scene) *Renderer {
	if scene.PixelRatio <= 0 {
		scene.PixelRatio = 1
	}
	return &Renderer{Scene: scene}
}

// Avatar is the resolved screen placement of one player for a frame.
type Avatar struct {
	Player   int
	Name     string
	Screen   viewport.Point
	Dead     bool
	Impostor bool
}

// Avatars resolves every rostered player at second t into screen space.
func (r *Renderer) Avatars(t float64) []Avatar {
	s := &r.Scene
	out := make([]Avatar, 0, len(s.Data.Players))
	for id, p := range s.Data.Players {
		pos := s.Motion.Position(id, t)
		tx, ty := s.Mapper.ToTexture(pos.X, pos.Y)
		out = append(out, Avatar{
			Player:   id,
			Name:     p.Name,
			Screen:   s.View.ToScreen(tx, ty),
			Dead:     p.DeadBy(t),
			Impostor: s.Data.IsImpostor(id),
		})
	}
	return out
}

// Draw renders the frame for playback second t. now feeds the FPS counter.
func (r *Renderer) Draw(c Canvas, t float64, now time.Time) {
	r.FPS.Begin(now)
	s := &r.Scene
	pr := s.PixelRatio
	c.Clear()

	off := s.View.Offset()
	scale := s.View.Scale()
	if m := s.Sprites.Map(); m != nil {
		b := m.Bounds()
		c.DrawImage(m, off.X*pr, off.Y*pr, float64(b.Dx())*scale*pr, float64(b.Dy())*scale*pr, 1)
	}

	for _, a := range r.Avatars(t) {
		p := s.Data.Players[a.Player]
		alpha := 1.0
		pixelWidth := s.Map.BodyPixelWidth
		if a.Dead {
			alpha = deadAlpha
			pixelWidth = s.Map.GhostPixelWidth
		}
		w := pixelWidth * scale * pr
		h := 1.0
		sprite := s.Sprites.Avatar(p.Color, a.Dead)
		if sprite != nil {
			if b := sprite.Bounds(); b.Dx() > 0 {
				h = w * float64(b.Dy()) / float64(b.Dx())
			}
		}
		x, y := a.Screen.X*pr, a.Screen.Y*pr
		if sprite != nil {
			c.DrawImage(sprite, x-w/2, y-h, w, h, alpha)
		}
		clr := CrewLabel
		if a.Impostor {
			clr = ImpostorLabel
		}
		clr.A = uint8(alpha * 0xff)
		tw, descent := c.MeasureText(a.Name, nameSize*pr, false)
		c.DrawText(a.Name, x-tw/2, y-h-descent, nameSize*pr, false, clr)
	}

	if s.ShowStats {
		for i, line := range r.statsLines() {
			c.DrawText(line, 0, float64(i+1)*statsSize*pr, statsSize*pr, true, StatsText)
		}
	}
	r.FPS.End()
}

func (r *Renderer) statsLines() []string {
	off := r.Scene.View.Offset()
	return []string{
		fmt.Sprintf("x=%g", off.X),
		fmt.Sprintf("y=%g", off.Y),
		fmt.Sprintf("scale=%g", r.Scene.View.Scale()),
		fmt.Sprintf("pixelRatio=%g", r.Scene.PixelRatio),
		fmt.Sprintf("fps=%d", r.FPS.FPS()),
	}
}
