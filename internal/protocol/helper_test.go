package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_EncodeDecode(t *testing.T) {
	t.Parallel()

	msg := MustNewMessage(MsgJoin, JoinPayload{Name: "alice", RoomID: "room1"})

	data, err := msg.Encode()
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, MsgJoin, decoded.Type)

	payload, err := ParsePayload[JoinPayload](decoded)
	require.NoError(t, err)
	assert.Equal(t, "alice", payload.Name)
	assert.Equal(t, "room1", payload.RoomID)
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("not json"))
	assert.Error(t, err)
}

func TestParsePayload_WrongShape(t *testing.T) {
	t.Parallel()

	msg := MustNewMessage(MsgCastVote, CastVotePayload{TargetID: "p2"})
	payload, err := ParsePayload[CastVotePayload](msg)
	require.NoError(t, err)
	assert.Equal(t, "p2", payload.TargetID)

	// A payload that is not an object fails to parse
	bad := &Message{Type: MsgCastVote, Payload: []byte(`"oops"`)}
	_, err = ParsePayload[CastVotePayload](bad)
	assert.Error(t, err)
}

func TestNewErrorMessage(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessage(ErrCodeNameTaken)
	payload, err := ParsePayload[ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, ErrCodeNameTaken, payload.Code)
	assert.Equal(t, "Name already taken", payload.Message)
}
