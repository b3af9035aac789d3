package render

import "time"

// FPSCounter counts drawn frames over rolling one second windows.
type FPSCounter struct {
	count int
	fps   int
	start time.Time
}

// Begin closes the current window when a second has passed since it
// opened. Call it before drawing a frame.
func (f *FPSCounter) Begin(now time.Time) {
	if f.start.IsZero() {
		f.start = now
		return
	}
	if now.Sub(f.start) >= time.Second {
		f.fps = f.count
		f.count = 0
		f.start = now
	}
}

// End records a finished frame.
func (f *FPSCounter) End() { f.count++ }

// FPS returns the frame count of the last complete window.
func (f *FPSCounter) FPS() int { return f.fps }
