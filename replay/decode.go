package replay

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrEmpty is returned when the payload holds no bytes at all.
var ErrEmpty = errors.New("replay: empty payload")

// Stage is the progress of a replay load, in the order the loader walks
// through them.
type Stage int

const (
	StageFetch Stage = iota
	StageDownloading
	StageDeflate
	StageMsgpackDecode
	StageSuccess
)

func (s Stage) String() string {
	switch s {
	case StageFetch:
		return "fetch"
	case StageDownloading:
		return "downloading"
	case StageDeflate:
		return "deflate"
	case StageMsgpackDecode:
		return "msgpack decode"
	case StageSuccess:
		return "success"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

type wireDataset[R ~[]byte] struct {
	ID        string         `json:"id" msgpack:"id"`
	Events    []R            `json:"events" msgpack:"events"`
	StartedAt float64        `json:"started_at" msgpack:"started_at"`
	Duration  float64        `json:"duration" msgpack:"duration"`
	Moves     []MotionSample `json:"moves" msgpack:"moves"`
	Players   []Player       `json:"players" msgpack:"players"`
	Impostors []int          `json:"impostors" msgpack:"impostors"`
	EndReason EndReason      `json:"end_reason" msgpack:"end_reason"`
	Settings  Settings       `json:"settings" msgpack:"settings"`
}

// eventHead carries the fields every event kind shares. The body of the
// event is only decoded once the kind is known.
type eventHead struct {
	Type      string  `json:"type" msgpack:"type"`
	Timestamp float64 `json:"timestamp" msgpack:"timestamp"`
}

type wireKill struct {
	Imposter int `json:"imposter" msgpack:"imposter"`
	Victim   int `json:"victim" msgpack:"victim"`
}

type wireVent struct {
	Player int `json:"player" msgpack:"player"`
	VentID int `json:"vent_id" msgpack:"vent_id"`
}

type wireMeeting struct {
	Player   int  `json:"player" msgpack:"player"`
	DeadBody *int `json:"dead_body" msgpack:"dead_body"`
}

type wireVoted struct {
	Player int `json:"player" msgpack:"player"`
}

type wireVoteFinish struct {
	IsTie  bool        `json:"is_tie" msgpack:"is_tie"`
	Exiled *int        `json:"exiled" msgpack:"exiled"`
	States []VoteState `json:"states" msgpack:"states"`
}

type wireChat struct {
	Player int    `json:"player" msgpack:"player"`
	Text   string `json:"text" msgpack:"text"`
	IsDead bool   `json:"is_dead" msgpack:"is_dead"`
}

// Decode sniffs the payload and decodes it. A leading '{' selects JSON;
// anything else is treated as msgpack, either raw or wrapped in gzip or
// zlib. onStage may be nil.
func Decode(data []byte, onStage func(Stage)) (*Dataset, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if data[0] == '{' {
		return DecodeJSON(data)
	}
	if isGzip(data) || isZlib(data) {
		if onStage != nil {
			onStage(StageDeflate)
		}
		inflated, err := Inflate(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		data = inflated
	}
	if onStage != nil {
		onStage(StageMsgpackDecode)
	}
	return DecodeMsgpack(data)
}

func isGzip(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}

// isZlib checks the RFC 1950 header: deflate method and a CMF/FLG pair
// divisible by 31.
func isZlib(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x78 && (uint16(data[0])<<8|uint16(data[1]))%31 == 0
}

// Inflate reads a gzip or zlib stream fully, picking the format from its
// header.
func Inflate(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(2)
	var (
		zr  io.ReadCloser
		err error
	)
	if isZlib(head) {
		zr, err = zlib.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("replay: zlib: %w", err)
		}
	} else {
		zr, err = gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("replay: gzip: %w", err)
		}
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("replay: inflate: %w", err)
	}
	return out, nil
}

// DecodeJSON decodes the JSON form of a replay.
func DecodeJSON(data []byte) (*Dataset, error) {
	var w wireDataset[json.RawMessage]
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("replay: json: %w", err)
	}
	return build(w, json.Unmarshal)
}

// DecodeMsgpack decodes the msgpack form of a replay.
func DecodeMsgpack(data []byte) (*Dataset, error) {
	var w wireDataset[msgpack.RawMessage]
	if err := msgpack.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("replay: msgpack: %w", err)
	}
	return build(w, msgpack.Unmarshal)
}

func build[R ~[]byte](w wireDataset[R], unmarshal func([]byte, any) error) (*Dataset, error) {
	events := make([]Event, 0, len(w.Events))
	for i, raw := range w.Events {
		ev, err := decodeEvent([]byte(raw), unmarshal)
		if err != nil {
			return nil, fmt.Errorf("replay: event %d: %w", i, err)
		}
		events = append(events, ev)
	}
	return &Dataset{
		ID:        w.ID,
		Events:    events,
		StartedAt: w.StartedAt,
		Duration:  w.Duration,
		Moves:     w.Moves,
		Players:   w.Players,
		Impostors: w.Impostors,
		EndReason: w.EndReason,
		Settings:  w.Settings,
	}, nil
}

func decodeEvent(raw []byte, unmarshal func([]byte, any) error) (Event, error) {
	var h eventHead
	if err := unmarshal(raw, &h); err != nil {
		return nil, err
	}
	s := stamp{h.Timestamp}
	switch h.Type {
	case "kill":
		var w wireKill
		if err := unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return Kill{stamp: s, Killer: w.Imposter, Victim: w.Victim}, nil
	case "enter_vent", "exit_vent":
		var w wireVent
		if err := unmarshal(raw, &w); err != nil {
			return nil, err
		}
		if h.Type == "enter_vent" {
			return EnterVent{stamp: s, Player: w.Player, VentID: w.VentID}, nil
		}
		return ExitVent{stamp: s, Player: w.Player, VentID: w.VentID}, nil
	case "start_meeting":
		var w wireMeeting
		if err := unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return StartMeeting{stamp: s, Caller: w.Player, DeadBody: w.DeadBody}, nil
	case "voted":
		var w wireVoted
		if err := unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return Voted{stamp: s, Player: w.Player}, nil
	case "vote_finish":
		var w wireVoteFinish
		if err := unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return VoteFinish{stamp: s, IsTie: w.IsTie, Exiled: w.Exiled, States: w.States}, nil
	case "chat":
		var w wireChat
		if err := unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return Chat{stamp: s, Player: w.Player, Text: w.Text, IsDead: w.IsDead}, nil
	}
	m := map[string]any{}
	if err := unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return Unknown{stamp: s, Type: h.Type, Raw: m}, nil
}
