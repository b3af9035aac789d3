package timeline

import (
	"strings"
	"testing"
	"time"

	"auviewer/replay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ip(i int) *int         { return &i }
func fp(f float64) *float64 { return &f }

func TestMeetings(t *testing.T) {
	events := []replay.Event{
		replay.NewStartMeeting(10, 0, nil),
		replay.NewVoted(12, 1),
		replay.NewVoteFinish(25, false, nil, nil),
		replay.NewChat(30, 0, "hi", false),
		replay.NewStartMeeting(40, 1, ip(0)),
		replay.NewVoteFinish(42, true, nil, nil),
	}
	assert.Equal(t, []Interval{{10, 25}, {40, 42}}, Meetings(events))

	idx := Build(events)
	assert.True(t, idx.InMeeting(10))
	assert.True(t, idx.InMeeting(41))
	assert.False(t, idx.InMeeting(30))
}

func TestMeetingWithoutStart(t *testing.T) {
	events := []replay.Event{replay.NewVoteFinish(5, false, nil, nil)}
	assert.Equal(t, []Interval{{0, 5}}, Meetings(events))
	assert.Empty(t, Meetings(nil))
}

func TestGapsAndSpacing(t *testing.T) {
	events := []replay.Event{
		replay.NewChat(3.5, 0, "a", false),
		replay.NewChat(4, 0, "b", false),
		replay.NewChat(10.9, 0, "c", false),
	}
	gaps := Gaps(events)
	require.Len(t, gaps, 3)
	assert.InDelta(t, 3.5, gaps[0], 1e-12)
	assert.InDelta(t, 0.5, gaps[1], 1e-12)
	assert.InDelta(t, 6.9, gaps[2], 1e-12)

	assert.Equal(t, 0.0, Spacing(1.9))
	assert.Equal(t, 0.0, Spacing(0.2))
	assert.Equal(t, 2.0, Spacing(2.7))
	assert.Equal(t, 6.0, Spacing(6.9))
}

func TestClockLabels(t *testing.T) {
	assert.Equal(t, "0:00", ClockLabel(0))
	assert.Equal(t, "1:05", ClockLabel(65.9))
	assert.Equal(t, "12:00", ClockLabel(720))
	assert.Equal(t, "01:05", PaddedClock(65.2))
	assert.Equal(t, "00:00", PaddedClock(0))
	assert.Equal(t, 9.0, SeekTarget(10))
}

func dataset() *replay.Dataset {
	return &replay.Dataset{
		StartedAt: 1600000000,
		Duration:  303,
		EndReason: replay.ImpostorsByKill,
		Players: []replay.Player{
			{Name: "alice", Color: "Red", DeadAt: fp(20)},
			{Name: "bob", Color: "Blue"},
			{Name: "carol", Color: "Green"},
		},
		Impostors: []int{1},
	}
}

func TestDescribe(t *testing.T) {
	d := dataset()

	e := Describe(d, replay.NewKill(20, 1, 0))
	require.Len(t, e.Lines, 1)
	assert.Equal(t, "bob killed alice", e.Lines[0].PlainText())
	assert.True(t, e.Lines[0][0].Impostor)
	assert.False(t, e.Lines[0][2].Ghost, "victim is not a ghost at the kill itself")
	assert.True(t, e.Seekable)

	e = Describe(d, replay.NewChat(25, 0, "boo", true))
	assert.Equal(t, "alice: boo", e.Lines[0].PlainText())
	assert.True(t, e.Lines[0][0].Ghost)

	e = Describe(d, replay.NewEnterVent(5, 7, 1))
	assert.Equal(t, "Invalid Player ID: 7 entered a vent", e.Lines[0].PlainText())
	assert.True(t, e.Lines[0][0].Invalid)

	e = Describe(d, replay.NewExitVent(6, 1, 1))
	assert.Equal(t, "bob exited a vent", e.Lines[0].PlainText())

	e = Describe(d, replay.NewStartMeeting(30, 2, nil))
	assert.Equal(t, "carol called a meeting (emergency button)", e.Lines[0].PlainText())
	e = Describe(d, replay.NewStartMeeting(30, 2, ip(0)))
	assert.Equal(t, "carol called a meeting (found alice's body)", e.Lines[0].PlainText())

	e = Describe(d, replay.NewVoted(31, 2))
	assert.Empty(t, e.Lines)
	assert.False(t, e.Seekable)
}

func TestDescribeVoteFinish(t *testing.T) {
	d := dataset()
	states := []replay.VoteState{
		{IsDead: true},
		{DidVote: true, VotedFor: ip(2)},
		{DidVote: true},
	}
	e := Describe(d, replay.NewVoteFinish(50, false, ip(2), states))
	var got []string
	for _, l := range e.Lines {
		got = append(got, l.PlainText())
	}
	assert.Equal(t, []string{"Voting finished!", "bob → carol", "carol → skip", "carol was ejected"}, got)

	e = Describe(d, replay.NewVoteFinish(50, true, nil, nil))
	assert.Equal(t, "Skipped (tied vote)", e.Lines[len(e.Lines)-1].PlainText())
	e = Describe(d, replay.NewVoteFinish(50, false, nil, nil))
	assert.Equal(t, "Skipped", e.Lines[len(e.Lines)-1].PlainText())
}

func TestDescribeUnknown(t *testing.T) {
	e := Describe(dataset(), replay.NewUnknown(70, "door_close", map[string]any{"door": 3}))
	require.Len(t, e.Lines, 1)
	assert.Equal(t, `Door Close: {"door":3}`, e.Lines[0].PlainText())
	assert.False(t, e.Seekable)
}

func TestBuildFeed(t *testing.T) {
	d := dataset()
	d.Events = []replay.Event{
		replay.NewChat(1, 0, "a", false),
		replay.NewChat(5.5, 1, "b", false),
	}
	now := time.Unix(1600000000, 0).Add(48 * time.Hour)
	f := BuildFeed(d, Build(d.Events), now)

	require.Len(t, f.Header, 4)
	assert.Contains(t, f.Header[0].PlainText(), "2 days ago")
	assert.Equal(t, "Impostors (1): bob", f.Header[1].PlainText())
	assert.Equal(t, "Crewmates (2): alice, carol", f.Header[2].PlainText())
	assert.Equal(t, "3 players in total", f.Header[3].PlainText())

	require.Len(t, f.Entries, 2)
	assert.Equal(t, 0.0, f.Entries[0].Spacing)
	assert.Equal(t, 4.0, f.Entries[1].Spacing)

	require.Len(t, f.Footer, 2)
	assert.Equal(t, "Game over: Impostors win by killing", f.Footer[0].PlainText())
	assert.True(t, strings.HasPrefix(f.Footer[1].PlainText(), "Duration: 5 minutes 3 seconds"))
}
