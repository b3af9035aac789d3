package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Background fills the canvas on Clear.
var Background = color.RGBA{0x00, 0x00, 0x00, 0xff}

// ImageCanvas is a Canvas backed by an in-memory RGBA image. It draws
// images given as image.Image and ignores any other kind.
type ImageCanvas struct {
	Dst *image.RGBA

	regular *opentype.Font
	mono    *opentype.Font
	faces   map[faceKey]font.Face
}

type faceKey struct {
	size float64
	mono bool
}

// NewImageCanvas allocates a w×h canvas.
func NewImageCanvas(w, h int) *ImageCanvas {
	c := &ImageCanvas{
		Dst:   image.NewRGBA(image.Rect(0, 0, w, h)),
		faces: map[faceKey]font.Face{},
	}
	c.regular, _ = opentype.Parse(goregular.TTF)
	c.mono, _ = opentype.Parse(gomono.TTF)
	return c
}

func (c *ImageCanvas) Size() (int, int) {
	b := c.Dst.Bounds()
	return b.Dx(), b.Dy()
}

func (c *ImageCanvas) Clear() {
	draw.Draw(c.Dst, c.Dst.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
}

func (c *ImageCanvas) DrawImage(img Image, x, y, w, h, alpha float64) {
	src, ok := img.(image.Image)
	if !ok || w <= 0 || h <= 0 || alpha <= 0 {
		return
	}
	dr := image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)),
	)
	if dr.Empty() {
		return
	}
	var opts *draw.Options
	if alpha < 1 {
		opts = &draw.Options{SrcMask: image.NewUniform(color.Alpha{A: uint8(alpha * 0xff)})}
	}
	draw.ApproxBiLinear.Scale(c.Dst, dr, src, src.Bounds(), draw.Over, opts)
}

func (c *ImageCanvas) DrawText(s string, x, y, size float64, mono bool, clr color.Color) {
	d := font.Drawer{
		Dst:  c.Dst,
		Src:  image.NewUniform(clr),
		Face: c.face(size, mono),
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(s)
}

func (c *ImageCanvas) MeasureText(s string, size float64, mono bool) (float64, float64) {
	f := c.face(size, mono)
	adv := font.MeasureString(f, s)
	return float64(adv) / 64, float64(f.Metrics().Descent) / 64
}

// face returns a cached face for size, falling back to the fixed bitmap
// face when the TrueType data cannot be used.
func (c *ImageCanvas) face(size float64, mono bool) font.Face {
	k := faceKey{size, mono}
	if f, ok := c.faces[k]; ok {
		return f
	}
	src := c.regular
	if mono {
		src = c.mono
	}
	var f font.Face = basicfont.Face7x13
	if src != nil && size > 0 {
		if of, err := opentype.NewFace(src, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull}); err == nil {
			f = of
		}
	}
	c.faces[k] = f
	return f
}
