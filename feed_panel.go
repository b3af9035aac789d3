package main

import (
	"image"
	"image/color"
	"math"

	"auviewer/render"
	"auviewer/timeline"

	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
)

const (
	feedLineHeight = 18
	feedPadding    = 8
	feedLinkWidth  = 40
	feedIndent     = 16
	feedFontSize   = 13
	feedIconSize   = 14
	feedWheelStep  = 3 * feedLineHeight
)

// feedRow is one laid out line of the event feed. Y is relative to the top
// of the feed content.
type feedRow struct {
	Y      float64
	Line   timeline.Line
	Link   string
	Seek   float64
	Indent bool
}

// feedView is the scrollable layout of a timeline.Feed.
type feedView struct {
	rows   []feedRow
	height float64
	scroll float64
}

func layoutFeed(f *timeline.Feed) *feedView {
	v := &feedView{}
	y := float64(feedPadding)
	for _, l := range f.Header {
		v.rows = append(v.rows, feedRow{Y: y, Line: l})
		y += feedLineHeight
	}
	y += feedLineHeight / 2
	for _, e := range f.Entries {
		y += e.Spacing
		for i, l := range e.Lines {
			r := feedRow{Y: y, Line: l, Indent: i > 0}
			if i == 0 && e.Seekable {
				r.Link = timeline.ClockLabel(e.Timestamp)
				r.Seek = timeline.SeekTarget(e.Timestamp)
			}
			v.rows = append(v.rows, r)
			y += feedLineHeight
		}
	}
	y += feedLineHeight / 2
	for _, l := range f.Footer {
		v.rows = append(v.rows, feedRow{Y: y, Line: l})
		y += feedLineHeight
	}
	v.height = y + feedPadding
	return v
}

// Scroll moves the content by wheel delta dy within a panel of height viewH.
func (v *feedView) Scroll(dy, viewH float64) {
	v.scroll -= dy * feedWheelStep
	v.clamp(viewH)
}

func (v *feedView) clamp(viewH float64) {
	v.scroll = math.Max(0, math.Min(v.scroll, math.Max(0, v.height-viewH)))
}

// LinkAt returns the seek target of the timestamp link under the panel
// relative point (x, y).
func (v *feedView) LinkAt(x, y float64) (float64, bool) {
	if x < feedPadding || x >= feedPadding+feedLinkWidth {
		return 0, false
	}
	cy := y + v.scroll
	for _, r := range v.rows {
		if r.Link != "" && cy >= r.Y && cy < r.Y+feedLineHeight {
			return r.Seek, true
		}
	}
	return 0, false
}

func (g *Game) drawFeed(screen *ebiten.Image) {
	p, pr, pal := g.layout.Feed, g.pixelRatio, g.palette
	if p.W <= 0 || g.feed == nil {
		return
	}
	bounds := image.Rect(int(p.X*pr), int(p.Y*pr), int((p.X+p.W)*pr), int((p.Y+p.H)*pr))
	dst, ok := screen.SubImage(bounds).(*ebiten.Image)
	if !ok {
		return
	}
	dst.Fill(pal.PanelBG)
	var sep rectBatch
	sep.AddRect(rect{p.X, p.Y, 1, p.H}, pr, pal.Separator)
	sep.Draw(dst)

	g.feed.clamp(p.H)
	f := faceFor(feedFontSize*pr, false)
	for _, r := range g.feed.rows {
		top := p.Y + r.Y - g.feed.scroll
		if top+feedLineHeight < p.Y || top > p.Y+p.H {
			continue
		}
		base := (top + feedLineHeight - 5) * pr
		x := p.X + feedPadding
		if r.Link != "" {
			drawTextBaseline(dst, r.Link, x*pr, base, f, pal.Link)
		}
		if r.Link != "" || r.Indent {
			x += feedLinkWidth
		}
		if r.Indent {
			x += feedIndent
		}
		for _, s := range r.Line {
			x = g.drawSpan(dst, s, x, top, base, f)
		}
	}
}

// drawSpan draws s at logical x and returns the x after it.
func (g *Game) drawSpan(dst *ebiten.Image, s timeline.Span, x, top, base float64, f *text.GoTextFace) float64 {
	pr, pal := g.pixelRatio, g.palette
	var clr color.Color = pal.Text
	switch s.Kind {
	case timeline.SpanPlayer:
		switch {
		case s.Invalid:
			clr = pal.Muted
		case s.Impostor:
			clr = render.ImpostorLabel
		}
		if !s.Invalid {
			if path, ok := avatarPath(s.Color, s.Ghost); ok && g.session != nil {
				if icon := g.session.Sprites.ebitenImage(path); icon != nil {
					c := screenCanvas{dst: dst}
					b := icon.Bounds()
					w := feedIconSize * float64(b.Dx()) / math.Max(1, float64(b.Dy()))
					c.DrawImage(icon, x*pr, (top+2)*pr, w*pr, feedIconSize*pr, 1)
					x += w + 2
				}
			}
		}
	case timeline.SpanStrong:
		// No bold face is loaded; overdraw one pixel right instead.
		drawTextBaseline(dst, s.Text, x*pr+1, base, f, clr)
	}
	drawTextBaseline(dst, s.Text, x*pr, base, f, clr)
	w, _ := measure(s.Text, f)
	return x + w/pr
}
