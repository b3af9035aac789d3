package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlayTickClamp(t *testing.T) {
	c := NewClock(10)
	assert.False(t, c.Playing())
	assert.Equal(t, 0.0, c.Current())

	c.Play()
	c.SetRate(2)
	c.Tick(3.2)
	assert.InDelta(t, 6.4, c.Current(), 1e-9)
	assert.True(t, c.Playing())

	c.Tick(3.2)
	assert.Equal(t, 10.0, c.Current())
	assert.False(t, c.Playing())
}

func TestTickWhilePaused(t *testing.T) {
	c := NewClock(10)
	c.Tick(5)
	assert.Equal(t, 0.0, c.Current())
}

func TestSeekClampsAndKeepsPlayState(t *testing.T) {
	c := NewClock(30)
	c.Play()
	c.Seek(12)
	assert.Equal(t, 12.0, c.Current())
	c.Seek(12)
	assert.Equal(t, 12.0, c.Current())
	assert.True(t, c.Playing())

	c.Seek(-4)
	assert.Equal(t, 0.0, c.Current())
	c.Seek(99)
	assert.Equal(t, 30.0, c.Current())
	assert.True(t, c.Playing())

	c.SkipBy(-5)
	assert.Equal(t, 25.0, c.Current())
	assert.InDelta(t, 25.0/30.0, c.Progress(), 1e-12)
}

func TestToggleAndRate(t *testing.T) {
	c := NewClock(1)
	c.Toggle()
	assert.True(t, c.Playing())
	c.Toggle()
	assert.False(t, c.Playing())

	c.SetRate(100)
	assert.Equal(t, float64(MaxRate), c.Rate())
	c.SetRate(0)
	assert.Equal(t, float64(MinRate), c.Rate())

	assert.Equal(t, 0.25, c.MapZoom())
	c.SetMapZoom(-1)
	assert.Equal(t, 0.25, c.MapZoom())
}

func TestFrameUsesWallClockDeltas(t *testing.T) {
	c := NewClock(100)
	c.Play()
	start := time.Unix(1000, 0)
	c.Frame(start)
	assert.Equal(t, 0.0, c.Current())
	for i := 1; i <= 60; i++ {
		c.Frame(start.Add(time.Duration(i) * time.Second / 60))
	}
	assert.InDelta(t, 1.0, c.Current(), 1e-9)

	c.Pause()
	c.Frame(start.Add(5 * time.Second))
	c.Play()
	c.Frame(start.Add(6 * time.Second))
	assert.InDelta(t, 2.0, c.Current(), 1e-9)
}

func TestZeroDuration(t *testing.T) {
	c := NewClock(-3)
	assert.Equal(t, 0.0, c.Duration())
	assert.Equal(t, 0.0, c.Progress())
	c.Play()
	c.Tick(1)
	assert.False(t, c.Playing())
}
