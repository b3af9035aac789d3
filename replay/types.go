// Package replay holds the decoded, immutable contents of a recorded game
// session: discrete events, motion samples and the player roster.
package replay

import "fmt"

// Vec2 is a point or velocity in game-world units.
type Vec2 struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Scale returns v*s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

// Color is a player body colour as recorded by the game.
type Color string

const (
	Red        Color = "Red"
	Blue       Color = "Blue"
	Green      Color = "Green"
	Pink       Color = "Pink"
	Orange     Color = "Orange"
	Yellow     Color = "Yellow"
	Grey       Color = "Grey"
	White      Color = "White"
	Purple     Color = "Purple"
	Brown      Color = "Brown"
	Cyan       Color = "Cyan"
	LightGreen Color = "LightGreen"
)

// Colors lists body colours in sprite index order.
var Colors = []Color{
	Red, Blue, Green, Pink, Orange, Yellow,
	Grey, White, Purple, Brown, Cyan, LightGreen,
}

// Index returns the sprite index of c, or -1 when the colour is unknown.
func (c Color) Index() int {
	for i, v := range Colors {
		if v == c {
			return i
		}
	}
	return -1
}

// Player is one participant of the session.
type Player struct {
	Name   string   `json:"name" msgpack:"name"`
	Color  Color    `json:"color" msgpack:"color"`
	DeadAt *float64 `json:"dead_at" msgpack:"dead_at"`
}

// DeadBy reports whether the player is dead at second t (dead_at <= t).
func (p Player) DeadBy(t float64) bool {
	return p.DeadAt != nil && *p.DeadAt <= t
}

// DeadBefore reports whether the player died strictly before second t.
func (p Player) DeadBefore(t float64) bool {
	return p.DeadAt != nil && *p.DeadAt < t
}

// MotionKind tells normal walking apart from vent travel.
type MotionKind string

const (
	MotionNormal MotionKind = "normal"
	MotionVents  MotionKind = "vents"
)

// MotionSample is one recorded position/velocity pair.
type MotionSample struct {
	Kind      MotionKind `json:"type" msgpack:"type"`
	Player    int        `json:"player" msgpack:"player"`
	Seq       int64      `json:"seq" msgpack:"seq"`
	Timestamp float64    `json:"timestamp" msgpack:"timestamp"`
	Position  Vec2       `json:"position" msgpack:"position"`
	Velocity  Vec2       `json:"velocity" msgpack:"velocity"`
}

// EndReason is the recorded cause of the game ending.
type EndReason string

const (
	CrewmatesByVote     EndReason = "CREWMATES_BY_VOTE"
	CrewmatesByTask     EndReason = "CREWMATES_BY_TASK"
	ImpostorsByVote     EndReason = "IMPOSTORS_BY_VOTE"
	ImpostorsByKill     EndReason = "IMPOSTORS_BY_KILL"
	ImpostorsBySabotage EndReason = "IMPOSTORS_BY_SABOTAGE"
	ImpostorDisconnect  EndReason = "IMPOSTOR_DISCONNECT"
	CrewmateDisconnect  EndReason = "CREWMATE_DISCONNECT"
)

// String returns a human readable description of the end reason.
func (r EndReason) String() string {
	switch r {
	case CrewmatesByTask:
		return "Crewmates win by completing their tasks"
	case CrewmatesByVote:
		return "Crewmates win by voting out every impostor"
	case ImpostorsByKill:
		return "Impostors win by killing"
	case ImpostorsBySabotage:
		return "Impostors win by sabotage timeout"
	case ImpostorsByVote:
		return "Impostors win by voting out crewmates"
	case ImpostorDisconnect:
		return "Crewmates win after an impostor disconnected"
	case CrewmateDisconnect:
		return "Impostors win after a crewmate disconnected"
	default:
		return fmt.Sprintf("Unknown Reason (%s)", string(r))
	}
}

// Settings carries the game options that matter to the viewer.
type Settings struct {
	Map int `json:"map" msgpack:"map"`
}

// Dataset is a fully decoded replay. It is never mutated after Decode.
type Dataset struct {
	ID        string
	Events    []Event
	StartedAt float64
	Duration  float64
	Moves     []MotionSample
	Players   []Player
	Impostors []int
	EndReason EndReason
	Settings  Settings
}

// IsImpostor reports whether id belongs to the impostor team.
func (d *Dataset) IsImpostor(id int) bool {
	for _, i := range d.Impostors {
		if i == id {
			return true
		}
	}
	return false
}

// Player looks up a player by id. ok is false for ids outside the roster.
func (d *Dataset) Player(id int) (p Player, ok bool) {
	if id < 0 || id >= len(d.Players) {
		return Player{}, false
	}
	return d.Players[id], true
}

// PlayerName returns the player's name, or a placeholder for unknown ids.
func (d *Dataset) PlayerName(id int) string {
	if p, ok := d.Player(id); ok {
		return p.Name
	}
	return InvalidPlayerLabel(id)
}

// InvalidPlayerLabel is shown wherever an event references a missing player.
func InvalidPlayerLabel(id int) string {
	return fmt.Sprintf("Invalid Player ID: %d", id)
}

// Crewmates returns the ids of every player that is not an impostor.
func (d *Dataset) Crewmates() []int {
	out := make([]int, 0, len(d.Players))
	for i := range d.Players {
		if !d.IsImpostor(i) {
			out = append(out, i)
		}
	}
	return out
}
