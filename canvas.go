package main

import (
	"image/color"

	"auviewer/render"

	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// screenCanvas adapts an ebiten image to render.Canvas. It draws
// *ebiten.Image values only.
type screenCanvas struct {
	dst *ebiten.Image
	bg  color.Color
}

func (c *screenCanvas) Size() (int, int) {
	b := c.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (c *screenCanvas) Clear() { c.dst.Fill(c.bg) }

func (c *screenCanvas) DrawImage(img render.Image, x, y, w, h, alpha float64) {
	src, ok := img.(*ebiten.Image)
	if !ok {
		return
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	c.dst.DrawImage(src, op)
}

func (c *screenCanvas) DrawText(s string, x, y, size float64, mono bool, clr color.Color) {
	drawTextBaseline(c.dst, s, x, y, faceFor(size, mono), clr)
}

func (c *screenCanvas) MeasureText(s string, size float64, mono bool) (float64, float64) {
	f := faceFor(size, mono)
	w, _ := text.Measure(s, f, 0)
	return w, f.Metrics().HDescent
}

// drawTextBaseline draws s with its baseline at y.
func drawTextBaseline(dst *ebiten.Image, s string, x, y float64, f *text.GoTextFace, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-f.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, f, op)
}
