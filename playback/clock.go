// Package playback owns the virtual clock that drives replay playback.
package playback

import (
	"math"
	"time"
)

// Rate limits for SetRate.
const (
	MinRate = 0.25
	MaxRate = 16
)

// Clock is the single mutable playback position. It is advanced once per
// animation tick by the frame loop and moved by explicit user actions; it
// is not safe for concurrent use.
type Clock struct {
	current  float64
	duration float64
	rate     float64
	playing  bool
	mapZoom  float64

	last time.Time
}

// NewClock returns a paused clock at second 0. A negative duration is
// treated as 0.
func NewClock(duration float64) *Clock {
	if duration < 0 || math.IsNaN(duration) {
		duration = 0
	}
	return &Clock{duration: duration, rate: 1, mapZoom: 0.25}
}

// Current returns the playback position in seconds.
func (c *Clock) Current() float64 { return c.current }

// Duration returns the length of the recording in seconds.
func (c *Clock) Duration() float64 { return c.duration }

// Playing reports whether the clock advances on Tick.
func (c *Clock) Playing() bool { return c.playing }

// Rate returns the playback speed multiplier.
func (c *Clock) Rate() float64 { return c.rate }

// MapZoom is the default map zoom carried with the playback state.
func (c *Clock) MapZoom() float64 { return c.mapZoom }

// SetMapZoom changes the default map zoom; non-positive values are ignored.
func (c *Clock) SetMapZoom(z float64) {
	if z > 0 {
		c.mapZoom = z
	}
}

// SetRate changes the speed multiplier, clamped to [MinRate, MaxRate].
func (c *Clock) SetRate(r float64) {
	if math.IsNaN(r) {
		return
	}
	c.rate = math.Max(MinRate, math.Min(MaxRate, r))
}

func (c *Clock) Play()   { c.playing = true }
func (c *Clock) Pause()  { c.playing = false }
func (c *Clock) Toggle() { c.playing = !c.playing }

// Seek moves to second s, clamped to [0, duration]. The playing flag is
// left alone.
func (c *Clock) Seek(s float64) {
	if math.IsNaN(s) {
		return
	}
	c.current = math.Max(0, math.Min(c.duration, s))
}

// SkipBy seeks relative to the current position.
func (c *Clock) SkipBy(delta float64) { c.Seek(c.current + delta) }

// Progress returns the position as a fraction of the duration.
func (c *Clock) Progress() float64 {
	if c.duration <= 0 {
		return 0
	}
	return c.current / c.duration
}

// Tick advances the clock by delta wall-clock seconds scaled by the rate.
// Reaching the end clamps to the duration and pauses.
func (c *Clock) Tick(delta float64) {
	if !c.playing || delta <= 0 || math.IsNaN(delta) {
		return
	}
	c.current += delta * c.rate
	if c.current >= c.duration {
		c.current = c.duration
		c.playing = false
	}
}

// Frame is called once per displayed frame with the wall-clock time. It
// ticks by the time elapsed since the previous frame, so a slow frame rate
// does not slow playback down. The first call only records the time.
func (c *Clock) Frame(now time.Time) {
	if !c.last.IsZero() {
		c.Tick(now.Sub(c.last).Seconds())
	}
	c.last = now
}
