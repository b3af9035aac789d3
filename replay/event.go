package replay

// Event is one timestamped entry of the discrete event log. The set of
// implementations is closed: Kill, EnterVent, ExitVent, StartMeeting,
// Voted, VoteFinish, Chat and Unknown.
type Event interface {
	At() float64
	Kind() string
	event()
}

type stamp struct {
	Timestamp float64
}

func (s stamp) At() float64 { return s.Timestamp }
func (stamp) event()        {}

// Kill records an impostor killing a crewmate.
type Kill struct {
	stamp
	Killer int
	Victim int
}

func (Kill) Kind() string { return "kill" }

// EnterVent records a player jumping into a vent.
type EnterVent struct {
	stamp
	Player int
	VentID int
}

func (EnterVent) Kind() string { return "enter_vent" }

// ExitVent records a player leaving a vent.
type ExitVent struct {
	stamp
	Player int
	VentID int
}

func (ExitVent) Kind() string { return "exit_vent" }

// StartMeeting records a meeting being called. DeadBody is nil when the
// emergency button was used.
type StartMeeting struct {
	stamp
	Caller   int
	DeadBody *int
}

func (StartMeeting) Kind() string { return "start_meeting" }

// Voted records that a player cast a vote.
type Voted struct {
	stamp
	Player int
}

func (Voted) Kind() string { return "voted" }

// VoteState is the per-player outcome of a meeting, indexed by player id.
type VoteState struct {
	DidReport bool `json:"did_report" msgpack:"did_report"`
	DidVote   bool `json:"did_vote" msgpack:"did_vote"`
	IsDead    bool `json:"is_dead" msgpack:"is_dead"`
	VotedFor  *int `json:"voted_for" msgpack:"voted_for"`
}

// VoteFinish closes a meeting. Exiled is nil when the vote was skipped.
type VoteFinish struct {
	stamp
	IsTie  bool
	Exiled *int
	States []VoteState
}

func (VoteFinish) Kind() string { return "vote_finish" }

// Chat is a chat line. IsDead is set when the sender was a ghost.
type Chat struct {
	stamp
	Player int
	Text   string
	IsDead bool
}

func (Chat) Kind() string { return "chat" }

// Unknown keeps events of a kind this viewer does not understand so they
// can still be shown in raw form.
type Unknown struct {
	stamp
	Type string
	Raw  map[string]any
}

func (u Unknown) Kind() string { return u.Type }

// NewKill and friends build events with a timestamp; they are mostly used
// by tests and tools that synthesise replays.
func NewKill(ts float64, killer, victim int) Kill {
	return Kill{stamp: stamp{ts}, Killer: killer, Victim: victim}
}

func NewEnterVent(ts float64, player, vent int) EnterVent {
	return EnterVent{stamp: stamp{ts}, Player: player, VentID: vent}
}

func NewExitVent(ts float64, player, vent int) ExitVent {
	return ExitVent{stamp: stamp{ts}, Player: player, VentID: vent}
}

func NewStartMeeting(ts float64, caller int, body *int) StartMeeting {
	return StartMeeting{stamp: stamp{ts}, Caller: caller, DeadBody: body}
}

func NewVoted(ts float64, player int) Voted {
	return Voted{stamp: stamp{ts}, Player: player}
}

func NewVoteFinish(ts float64, tie bool, exiled *int, states []VoteState) VoteFinish {
	return VoteFinish{stamp: stamp{ts}, IsTie: tie, Exiled: exiled, States: states}
}

func NewChat(ts float64, player int, text string, dead bool) Chat {
	return Chat{stamp: stamp{ts}, Player: player, Text: text, IsDead: dead}
}

func NewUnknown(ts float64, kind string, raw map[string]any) Unknown {
	return Unknown{stamp: stamp{ts}, Type: kind, Raw: raw}
}
