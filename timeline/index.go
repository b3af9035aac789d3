// Package timeline derives presentation data from a replay's event log:
// meeting windows for the seek bar and the event feed model.
package timeline

import (
	"math"

	"auviewer/replay"
)

// Interval is a closed span of playback seconds.
type Interval struct {
	Start, End float64
}

// Meetings pairs each vote_finish with the most recent start_meeting
// before it. A vote_finish with no earlier start_meeting starts at 0.
func Meetings(events []replay.Event) []Interval {
	var out []Interval
	last := 0.0
	for _, ev := range events {
		switch ev.(type) {
		case replay.StartMeeting:
			last = ev.At()
		case replay.VoteFinish:
			out = append(out, Interval{Start: last, End: ev.At()})
		}
	}
	return out
}

// Gaps returns, for each event, the seconds elapsed since the previous
// event (or since second 0 for the first one).
func Gaps(events []replay.Event) []float64 {
	out := make([]float64, len(events))
	prev := 0.0
	for i, ev := range events {
		out[i] = ev.At() - prev
		prev = ev.At()
	}
	return out
}

// Spacing converts a gap into feed spacing in pixels: whole seconds, and
// nothing for gaps of a second or less.
func Spacing(gap float64) float64 {
	d := math.Floor(gap)
	if d > 1 {
		return d
	}
	return 0
}

// Index holds the derived data for one event sequence. It is computed once
// per dataset.
type Index struct {
	Meetings []Interval
	Gaps     []float64
}

// Build derives the index for events.
func Build(events []replay.Event) *Index {
	return &Index{Meetings: Meetings(events), Gaps: Gaps(events)}
}

// InMeeting reports whether second t falls inside a meeting window.
func (idx *Index) InMeeting(t float64) bool {
	for _, m := range idx.Meetings {
		if t >= m.Start && t <= m.End {
			return true
		}
	}
	return false
}
