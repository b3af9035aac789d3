package main

import "math"

const (
	controlsHeight = 56
	seekHeight     = 10
	seekMargin     = 12
	buttonWidth    = 72
	buttonHeight   = 26
	minMapWidth    = 200
)

type rect struct {
	X, Y, W, H float64
}

func (r rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// screenLayout splits the window into the map view, the controls bar under
// it and the event feed on the right. All values are logical pixels.
type screenLayout struct {
	Map      rect
	Controls rect
	Seek     rect
	Play     rect
	Feed     rect
}

func computeLayout(w, h, feedWidth float64) screenLayout {
	feedW := math.Min(feedWidth, math.Max(0, w-minMapWidth))
	mainW := w - feedW
	mapH := math.Max(0, h-controlsHeight)
	var l screenLayout
	l.Map = rect{0, 0, mainW, mapH}
	l.Controls = rect{0, mapH, mainW, controlsHeight}
	l.Seek = rect{seekMargin, mapH + 6, math.Max(0, mainW-2*seekMargin), seekHeight}
	l.Play = rect{seekMargin, mapH + controlsHeight - buttonHeight - 6, buttonWidth, buttonHeight}
	l.Feed = rect{mainW, 0, feedW, h}
	return l
}

// seekSeconds maps a pointer x on the seek bar to a playback second.
func seekSeconds(seek rect, x, duration float64) float64 {
	if seek.W <= 0 || duration <= 0 {
		return 0
	}
	f := (x - seek.X) / seek.W
	f = math.Max(0, math.Min(1, f))
	return f * duration
}
