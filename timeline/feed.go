package timeline

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"auviewer/replay"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SpanKind selects how a Span is drawn.
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanStrong
	SpanPlayer
)

// Span is a run of feed text. Player spans carry the referenced player's
// appearance; Invalid is set when the id is not in the roster.
type Span struct {
	Kind     SpanKind
	Text     string
	Player   int
	Color    replay.Color
	Impostor bool
	Ghost    bool
	Invalid  bool
}

// Line is one row of the feed.
type Line []Span

// Entry is the feed rendering of a single event.
type Entry struct {
	Timestamp float64
	Kind      string
	Seekable  bool
	Spacing   float64
	Lines     []Line
}

// Feed is the whole chronological event list with header and footer.
type Feed struct {
	Header  []Line
	Entries []Entry
	Footer  []Line
}

var titleCase = cases.Title(language.English)

// ClockLabel formats seconds as m:ss, the style of feed timestamps.
func ClockLabel(sec float64) string {
	return fmt.Sprintf("%d:%02d", int(math.Floor(sec/60)), int(math.Floor(math.Mod(sec, 60))))
}

// PaddedClock formats seconds as mm:ss for the playback controls.
func PaddedClock(sec float64) string {
	return fmt.Sprintf("%02d:%02d", int(math.Floor(sec/60)), int(math.Floor(math.Mod(sec, 60))))
}

// SeekTarget is where clicking an event timestamp jumps to: one second
// before the event so it can be seen happening.
func SeekTarget(ts float64) float64 { return ts - 1 }

func text(s string) Span   { return Span{Kind: SpanText, Text: s} }
func strong(s string) Span { return Span{Kind: SpanStrong, Text: s} }

// PlayerSpan describes player id as of second ts.
func PlayerSpan(d *replay.Dataset, id int, ts float64) Span {
	p, ok := d.Player(id)
	if !ok {
		return Span{Kind: SpanText, Text: replay.InvalidPlayerLabel(id), Player: id, Invalid: true}
	}
	return Span{
		Kind:     SpanPlayer,
		Text:     p.Name,
		Player:   id,
		Color:    p.Color,
		Impostor: d.IsImpostor(id),
		Ghost:    p.DeadBefore(ts),
	}
}

// Describe renders one event. Voted events have no lines; unknown kinds
// are shown as their raw JSON.
func Describe(d *replay.Dataset, ev replay.Event) Entry {
	ts := ev.At()
	e := Entry{Timestamp: ts, Kind: ev.Kind(), Seekable: true}
	player := func(id int) Span { return PlayerSpan(d, id, ts) }
	switch ev := ev.(type) {
	case replay.Kill:
		e.Lines = []Line{{player(ev.Killer), text(" killed "), player(ev.Victim)}}
	case replay.EnterVent:
		e.Lines = []Line{{player(ev.Player), text(" entered a vent")}}
	case replay.ExitVent:
		e.Lines = []Line{{player(ev.Player), text(" exited a vent")}}
	case replay.StartMeeting:
		if ev.DeadBody == nil {
			e.Lines = []Line{{player(ev.Caller), text(" called a meeting (emergency button)")}}
		} else {
			e.Lines = []Line{{player(ev.Caller), text(" called a meeting (found "), player(*ev.DeadBody), text("'s body)")}}
		}
	case replay.VoteFinish:
		e.Lines = append(e.Lines, Line{strong("Voting finished!")})
		for id, st := range ev.States {
			if st.IsDead {
				continue
			}
			target := text("skip")
			if st.VotedFor != nil {
				target = player(*st.VotedFor)
			}
			e.Lines = append(e.Lines, Line{player(id), text(" → "), target})
		}
		switch {
		case ev.Exiled != nil:
			p := player(*ev.Exiled)
			e.Lines = append(e.Lines, Line{p, strong(" was ejected")})
		case ev.IsTie:
			e.Lines = append(e.Lines, Line{strong("Skipped (tied vote)")})
		default:
			e.Lines = append(e.Lines, Line{strong("Skipped")})
		}
	case replay.Voted:
		e.Seekable = false
	case replay.Chat:
		e.Lines = []Line{{player(ev.Player), text(": " + ev.Text)}}
	case replay.Unknown:
		raw, err := json.Marshal(ev.Raw)
		if err != nil {
			raw = []byte(fmt.Sprintf("%v", ev.Raw))
		}
		e.Seekable = false
		e.Lines = []Line{{strong(kindLabel(ev.Type) + ": "), text(string(raw))}}
	default:
		e.Seekable = false
		e.Lines = []Line{{text(fmt.Sprintf("%+v", ev))}}
	}
	return e
}

func kindLabel(kind string) string {
	if kind == "" {
		return "Unknown"
	}
	return titleCase.String(strings.ReplaceAll(kind, "_", " "))
}

// BuildFeed renders the full feed for a dataset. now is used for the
// relative start time in the header.
func BuildFeed(d *replay.Dataset, idx *Index, now time.Time) *Feed {
	f := &Feed{}
	started := time.Unix(int64(d.StartedAt), 0)
	f.Header = append(f.Header, Line{text(fmt.Sprintf("Started %s (%s)",
		started.Local().Format("2006-01-02 15:04:05"), humanize.RelTime(started, now, "ago", "from now")))})

	imp := Line{text(fmt.Sprintf("Impostors (%d): ", len(d.Impostors)))}
	for i, id := range d.Impostors {
		if i > 0 {
			imp = append(imp, text(", "))
		}
		imp = append(imp, PlayerSpan(d, id, 0))
	}
	crew := d.Crewmates()
	mates := Line{text(fmt.Sprintf("Crewmates (%d): ", len(d.Players)-len(d.Impostors)))}
	for i, id := range crew {
		if i > 0 {
			mates = append(mates, text(", "))
		}
		mates = append(mates, PlayerSpan(d, id, 0))
	}
	f.Header = append(f.Header, imp, mates, Line{text(fmt.Sprintf("%d players in total", len(d.Players)))})

	for i, ev := range d.Events {
		e := Describe(d, ev)
		if idx != nil && i < len(idx.Gaps) {
			e.Spacing = Spacing(idx.Gaps[i])
		}
		f.Entries = append(f.Entries, e)
	}

	dur := time.Duration(d.Duration * float64(time.Second)).Round(time.Second)
	f.Footer = []Line{
		{text("Game over: "), strong(d.EndReason.String())},
		{text("Duration: " + durafmt.Parse(dur).LimitFirstN(2).String())},
	}
	return f
}

// PlainText flattens a line for logs and clipboard use.
func (l Line) PlainText() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}
