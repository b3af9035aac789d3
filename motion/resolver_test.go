package motion

import (
	"testing"

	"auviewer/replay"

	"github.com/stretchr/testify/assert"
)

func sample(seq int64, ts, px, py, vx, vy float64) replay.MotionSample {
	return replay.MotionSample{
		Seq:       seq,
		Timestamp: ts,
		Position:  replay.Vec2{X: px, Y: py},
		Velocity:  replay.Vec2{X: vx, Y: vy},
	}
}

func TestResolveNoSample(t *testing.T) {
	assert.Equal(t, replay.Vec2{}, Resolve(nil, 5))
	samples := []replay.MotionSample{sample(1, 10, 3, 3, 1, 1)}
	assert.Equal(t, replay.Vec2{}, Resolve(samples, 9.99))
}

func TestResolveDeadReckoning(t *testing.T) {
	samples := []replay.MotionSample{sample(1, 0, 0, 0, 1, 0)}
	got := Resolve(samples, 5)
	assert.InDelta(t, 5, got.X, 1e-12)
	assert.InDelta(t, 0, got.Y, 1e-12)
}

func TestResolveStationary(t *testing.T) {
	samples := []replay.MotionSample{
		sample(1, 0, 1, 2, 0, 0),
		sample(2, 1, 4, 5, 0, 0),
		sample(3, 2, -7, 8, 0, 0),
	}
	for _, tc := range []struct {
		at   float64
		want replay.Vec2
	}{
		{0, replay.Vec2{X: 1, Y: 2}},
		{0.5, replay.Vec2{X: 1, Y: 2}},
		{1, replay.Vec2{X: 4, Y: 5}},
		{2, replay.Vec2{X: -7, Y: 8}},
		{50, replay.Vec2{X: -7, Y: 8}},
	} {
		assert.Equal(t, tc.want, Resolve(samples, tc.at), "t=%v", tc.at)
	}
}

func TestResolveOvershoot(t *testing.T) {
	samples := []replay.MotionSample{
		sample(1, 0, 0, 0, 1, 1),
		sample(2, 2, 10, 10, -1, 0.5),
	}
	got := Resolve(samples, 6)
	assert.InDelta(t, 6, got.X, 1e-12)
	assert.InDelta(t, 12, got.Y, 1e-12)
}

func TestResolveSkipsLowerSeq(t *testing.T) {
	samples := []replay.MotionSample{
		sample(5, 1, 100, 100, 0, 0),
		sample(4, 1, -1, -1, 0, 0),
		sample(6, 2, 200, 200, 0, 0),
	}
	assert.Equal(t, replay.Vec2{X: 100, Y: 100}, Resolve(samples, 1.5))
	assert.Equal(t, replay.Vec2{X: 200, Y: 200}, Resolve(samples, 2))
}

func TestIndex(t *testing.T) {
	moves := []replay.MotionSample{
		{Player: 0, Seq: 1, Timestamp: 0, Position: replay.Vec2{X: 1}},
		{Player: 1, Seq: 1, Timestamp: 0, Position: replay.Vec2{X: 2}},
		{Player: 0, Seq: 2, Timestamp: 3, Position: replay.Vec2{X: 3}, Kind: replay.MotionVents},
	}
	idx := NewIndex(moves)
	assert.Len(t, idx.Samples(0), 2)
	assert.Len(t, idx.Samples(1), 1)
	assert.Equal(t, replay.Vec2{X: 1}, idx.Position(0, 1))
	assert.Equal(t, replay.Vec2{X: 3}, idx.Position(0, 4))
	assert.Equal(t, replay.Vec2{X: 2}, idx.Position(1, 4))
	assert.Equal(t, replay.Vec2{}, idx.Position(9, 4))
}
