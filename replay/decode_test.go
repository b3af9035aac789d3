package replay

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

const sampleJSON = `{
  "id": "abc",
  "started_at": 1600000000,
  "duration": 120.5,
  "settings": {"map": 1},
  "end_reason": "IMPOSTORS_BY_KILL",
  "impostors": [1],
  "players": [
    {"name": "red", "color": "Red", "dead_at": 30},
    {"name": "blue", "color": "Blue", "dead_at": null}
  ],
  "moves": [
    {"type": "normal", "player": 0, "seq": 1, "timestamp": 0, "position": {"x": 1, "y": 2}, "velocity": {"x": 0.5, "y": 0}}
  ],
  "events": [
    {"type": "kill", "timestamp": 30, "imposter": 1, "victim": 0},
    {"type": "start_meeting", "timestamp": 40, "player": 1, "dead_body": 0},
    {"type": "vote_finish", "timestamp": 60, "is_tie": false, "exiled": null,
     "states": [{"did_report": false, "did_vote": false, "is_dead": true, "voted_for": null},
                {"did_report": true, "did_vote": true, "is_dead": false, "voted_for": 1}]},
    {"type": "chat", "timestamp": 61, "player": 1, "text": "gg", "is_dead": false},
    {"type": "sabotage", "timestamp": 70, "system": "reactor"}
  ]
}`

func TestDecodeJSON(t *testing.T) {
	d, err := Decode([]byte(sampleJSON), nil)
	require.NoError(t, err)

	assert.Equal(t, "abc", d.ID)
	assert.Equal(t, 1, d.Settings.Map)
	assert.Equal(t, ImpostorsByKill, d.EndReason)
	require.Len(t, d.Players, 2)
	require.NotNil(t, d.Players[0].DeadAt)
	assert.Nil(t, d.Players[1].DeadAt)
	require.Len(t, d.Moves, 1)
	assert.Equal(t, Vec2{X: 0.5}, d.Moves[0].Velocity)
	assert.Equal(t, MotionNormal, d.Moves[0].Kind)

	require.Len(t, d.Events, 5)
	kill, ok := d.Events[0].(Kill)
	require.True(t, ok)
	assert.Equal(t, 1, kill.Killer)
	assert.Equal(t, 0, kill.Victim)

	sm := d.Events[1].(StartMeeting)
	require.NotNil(t, sm.DeadBody)
	assert.Equal(t, 0, *sm.DeadBody)

	vf := d.Events[2].(VoteFinish)
	assert.Nil(t, vf.Exiled)
	require.Len(t, vf.States, 2)
	require.NotNil(t, vf.States[1].VotedFor)
	assert.Equal(t, 1, *vf.States[1].VotedFor)

	chat := d.Events[3].(Chat)
	assert.Equal(t, "gg", chat.Text)

	unk := d.Events[4].(Unknown)
	assert.Equal(t, "sabotage", unk.Kind())
	assert.Equal(t, "reactor", unk.Raw["system"])
	assert.InDelta(t, 70, unk.At(), 1e-9)
}

func msgpackFixture(t *testing.T) []byte {
	t.Helper()
	payload := map[string]any{
		"id":         "mp",
		"started_at": 10,
		"duration":   42,
		"settings":   map[string]any{"map": 2},
		"end_reason": "CREWMATES_BY_TASK",
		"impostors":  []int{0},
		"players": []map[string]any{
			{"name": "a", "color": "Cyan", "dead_at": nil},
		},
		"moves": []map[string]any{
			{"type": "vents", "player": 0, "seq": 3, "timestamp": 1.5,
				"position": map[string]any{"x": 1, "y": 1},
				"velocity": map[string]any{"x": 0, "y": -1}},
		},
		"events": []map[string]any{
			{"type": "enter_vent", "timestamp": 1, "player": 0, "vent_id": 7},
			{"type": "exit_vent", "timestamp": 2, "player": 0, "vent_id": 8},
			{"type": "voted", "timestamp": 3, "player": 0},
		},
	}
	b, err := msgpack.Marshal(payload)
	require.NoError(t, err)
	return b
}

func TestDecodeMsgpackGzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write(msgpackFixture(t))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	var stages []Stage
	d, err := Decode(buf.Bytes(), func(s Stage) { stages = append(stages, s) })
	require.NoError(t, err)
	assert.Equal(t, []Stage{StageDeflate, StageMsgpackDecode}, stages)

	assert.Equal(t, "mp", d.ID)
	assert.InDelta(t, 42, d.Duration, 1e-9)
	assert.Equal(t, 2, d.Settings.Map)
	require.Len(t, d.Moves, 1)
	assert.Equal(t, MotionVents, d.Moves[0].Kind)
	assert.Equal(t, int64(3), d.Moves[0].Seq)
	require.Len(t, d.Events, 3)
	assert.Equal(t, 7, d.Events[0].(EnterVent).VentID)
	assert.Equal(t, 8, d.Events[1].(ExitVent).VentID)
	assert.Equal(t, "voted", d.Events[2].Kind())
}

func TestDecodePlainMsgpack(t *testing.T) {
	d, err := Decode(msgpackFixture(t), nil)
	require.NoError(t, err)
	assert.Equal(t, Color("Cyan"), d.Players[0].Color)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(nil, nil)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Decode([]byte("{not json"), nil)
	assert.Error(t, err)

	_, err = Decode([]byte{0x1f, 0x8b, 0x00}, nil)
	assert.Error(t, err)
}

func TestDecodeZlibMsgpack(t *testing.T) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(msgpackFixture(t))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var stages []Stage
	d, err := Decode(buf.Bytes(), func(s Stage) { stages = append(stages, s) })
	require.NoError(t, err)
	assert.Equal(t, []Stage{StageDeflate, StageMsgpackDecode}, stages)
	assert.Equal(t, "mp", d.ID)
	require.Len(t, d.Events, 3)
}

func TestDecodeUnknownKindWithClashingFields(t *testing.T) {
	clash := map[string]any{
		"type":      "sabotage",
		"timestamp": 2,
		"player":    "reactor",
		"text":      map[string]any{"a": 1},
	}
	voted := map[string]any{"type": "voted", "timestamp": 3, "player": 0}

	jsonData := []byte(`{"id":"x","duration":10,"players":[],"moves":[],"events":[
		{"type":"sabotage","timestamp":2,"player":"reactor","text":{"a":1}},
		{"type":"voted","timestamp":3,"player":0}]}`)
	mpData, err := msgpack.Marshal(map[string]any{
		"id": "x", "duration": 10,
		"players": []any{}, "moves": []any{},
		"events": []any{clash, voted},
	})
	require.NoError(t, err)

	for name, data := range map[string][]byte{"json": jsonData, "msgpack": mpData} {
		t.Run(name, func(t *testing.T) {
			d, err := Decode(data, nil)
			require.NoError(t, err)
			require.Len(t, d.Events, 2)

			unk, ok := d.Events[0].(Unknown)
			require.True(t, ok)
			assert.Equal(t, "sabotage", unk.Kind())
			assert.Equal(t, "reactor", unk.Raw["player"])
			assert.NotNil(t, unk.Raw["text"])
			assert.InDelta(t, 2, unk.At(), 1e-9)

			assert.Equal(t, 0, d.Events[1].(Voted).Player)
		})
	}
}

func TestDecodeKnownKindBadFieldFails(t *testing.T) {
	data := []byte(`{"id":"x","events":[{"type":"chat","timestamp":1,"player":0,"text":{"a":1}}]}`)
	_, err := Decode(data, nil)
	assert.Error(t, err)
}
