// Package motion reconstructs player positions from recorded motion samples
// by constant-velocity dead reckoning.
package motion

import "auviewer/replay"

// pick returns the index of the sample that governs second t, or -1.
// The latest sample at or before t wins, except that a sample whose seq is
// lower than the current candidate's is skipped. The scan stops at the
// first sample later than t.
func pick(samples []replay.MotionSample, t float64) int {
	best := -1
	for i := range samples {
		if samples[i].Timestamp > t {
			break
		}
		if best >= 0 && samples[i].Seq < samples[best].Seq {
			continue
		}
		best = i
	}
	return best
}

// Resolve returns the position at second t given one player's samples in
// recording order, projecting the governing sample's velocity forward.
// Without a governing sample the position is the origin.
func Resolve(samples []replay.MotionSample, t float64) replay.Vec2 {
	i := pick(samples, t)
	if i < 0 {
		return replay.Vec2{}
	}
	s := samples[i]
	return s.Position.Add(s.Velocity.Scale(t - s.Timestamp))
}

// Index partitions a dataset's motion samples by player once so every
// frame can resolve each player without rescanning the whole log.
type Index struct {
	byPlayer map[int][]replay.MotionSample
}

// NewIndex groups moves by player, preserving recording order.
func NewIndex(moves []replay.MotionSample) *Index {
	idx := &Index{byPlayer: make(map[int][]replay.MotionSample)}
	for _, m := range moves {
		idx.byPlayer[m.Player] = append(idx.byPlayer[m.Player], m)
	}
	return idx
}

// Samples returns the samples recorded for player.
func (idx *Index) Samples(player int) []replay.MotionSample {
	return idx.byPlayer[player]
}

// Position resolves player's position at second t.
func (idx *Index) Position(player int, t float64) replay.Vec2 {
	return Resolve(idx.byPlayer[player], t)
}
