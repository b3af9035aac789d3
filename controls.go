package main

import (
	"fmt"

	"auviewer/playback"
	"auviewer/timeline"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// meetingRects places each meeting on the seek bar.
func meetingRects(meetings []timeline.Interval, duration float64, seek rect) []rect {
	if duration <= 0 {
		return nil
	}
	out := make([]rect, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, rect{
			X: seek.X + m.Start/duration*seek.W,
			Y: seek.Y,
			W: (m.End - m.Start) / duration * seek.W,
			H: seek.H,
		})
	}
	return out
}

func timeLabel(c *playback.Clock) string {
	return timeline.PaddedClock(c.Current()) + " / " + timeline.PaddedClock(c.Duration())
}

func playLabel(c *playback.Clock) string {
	if c.Playing() {
		return "Pause"
	}
	return "Play"
}

func rateLabel(c *playback.Clock) string {
	return fmt.Sprintf("%gx", c.Rate())
}

func (g *Game) drawControls(screen *ebiten.Image) {
	l, pr, pal := g.layout, g.pixelRatio, g.palette
	c := g.clock

	var batch rectBatch
	batch.AddRect(l.Controls, pr, pal.PanelBG)
	batch.AddRect(l.Seek, pr, pal.SeekBG)
	fill := l.Seek
	fill.W = l.Seek.W * c.Progress()
	batch.AddRect(fill, pr, pal.SeekFill)
	for _, m := range meetingRects(g.timeline.Meetings, c.Duration(), l.Seek) {
		batch.AddRect(m, pr, pal.Meeting)
	}
	batch.Draw(screen)

	knobX := float32((l.Seek.X + fill.W) * pr)
	knobY := float32((l.Seek.Y + l.Seek.H/2) * pr)
	vector.DrawFilledCircle(screen, knobX, knobY, float32(l.Seek.H*0.8*pr), pal.Text, true)

	b := l.Play
	vector.DrawFilledRect(screen, float32(b.X*pr), float32(b.Y*pr), float32(b.W*pr), float32(b.H*pr), pal.Button, true)
	vector.StrokeRect(screen, float32(b.X*pr), float32(b.Y*pr), float32(b.W*pr), float32(b.H*pr), float32(pr), pal.Separator, true)

	f := faceFor(14*pr, false)
	label := playLabel(c)
	w, _ := measure(label, f)
	base := (b.Y + b.H/2 + 5) * pr
	drawTextBaseline(screen, label, b.X*pr+(b.W*pr-w)/2, base, f, pal.Text)

	clock := timeLabel(c)
	cw, _ := measure(clock, f)
	drawTextBaseline(screen, clock, (l.Controls.X+l.Controls.W/2)*pr-cw/2, base, f, pal.Text)

	rate := rateLabel(c)
	rw, _ := measure(rate, f)
	right := (l.Controls.X+l.Controls.W-seekMargin)*pr - rw
	drawTextBaseline(screen, rate, right, base, f, pal.Muted)
	if g.timeline.InMeeting(c.Current()) {
		mw, _ := measure("Meeting", f)
		drawTextBaseline(screen, "Meeting", right-mw-12*pr, base, f, pal.Meeting)
	}
}

// updateControls handles pointer input over the controls bar. It reports
// whether the pointer event was consumed.
func (g *Game) updateControls(x, y float64, pressed, justPressed bool) bool {
	l := g.layout
	if justPressed && l.Play.Contains(x, y) {
		g.clock.Toggle()
		return true
	}
	hit := l.Seek
	hit.Y -= 4
	hit.H += 8
	if justPressed && hit.Contains(x, y) {
		g.seeking = true
	}
	if g.seeking {
		if !pressed {
			g.seeking = false
			return true
		}
		g.clock.Seek(seekSeconds(l.Seek, x, g.clock.Duration()))
		return true
	}
	return justPressed && l.Controls.Contains(x, y)
}
