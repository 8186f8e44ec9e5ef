package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/one-night-werewolf/internal/apperrors"
	"github.com/palemoky/one-night-werewolf/internal/protocol"
	"github.com/palemoky/one-night-werewolf/internal/testutil"
)

func TestJoin_CreatesRoomOnFirstReference(t *testing.T) {
	t.Parallel()

	r := New(Deps{})
	assert.Nil(t, r.Get("WOLF1"))

	s, err := r.Join(testutil.NewSimpleClient("p1", "Alice"), "WOLF1")
	require.NoError(t, err)
	assert.Same(t, s, r.Get("WOLF1"))
	assert.Equal(t, 1, r.RoomCount())

	// A second join lands in the same room.
	s2, err := r.Join(testutil.NewSimpleClient("p2", "Bob"), "WOLF1")
	require.NoError(t, err)
	assert.Same(t, s, s2)
	assert.Equal(t, 2, s.PlayerCount())
}

func TestJoin_DuplicateNameRejected(t *testing.T) {
	t.Parallel()

	r := New(Deps{})
	_, err := r.Join(testutil.NewSimpleClient("p1", "Alice"), "WOLF1")
	require.NoError(t, err)

	_, err = r.Join(testutil.NewSimpleClient("p2", "Alice"), "WOLF1")
	assert.ErrorIs(t, err, apperrors.ErrNameTaken)
	assert.Equal(t, 1, r.Get("WOLF1").PlayerCount())
}

func TestJoin_FailedCreateIsRolledBack(t *testing.T) {
	t.Parallel()

	// AddPlayer can't fail on an empty room, so a failed first join can only
	// be simulated via the duplicate-name path on an existing room; what
	// matters is that no empty room is left behind after a host departs.
	r := New(Deps{})
	host := testutil.NewSimpleClient("p1", "Alice")
	_, err := r.Join(host, "WOLF1")
	require.NoError(t, err)

	r.Departed(host)
	assert.Nil(t, r.Get("WOLF1"))
	assert.Equal(t, 0, r.RoomCount())
}

func TestDeparted_HostTerminatesRoom(t *testing.T) {
	t.Parallel()

	r := New(Deps{})
	host := testutil.NewSimpleClient("p1", "Alice")
	guest := testutil.NewSimpleClient("p2", "Bob")
	_, err := r.Join(host, "WOLF1")
	require.NoError(t, err)
	_, err = r.Join(guest, "WOLF1")
	require.NoError(t, err)

	r.Departed(host)

	assert.Nil(t, r.Get("WOLF1"))
	msg := guest.LastOfType(protocol.MsgSessionTerminated)
	require.NotNil(t, msg)
	payload, err := protocol.ParsePayload[protocol.SessionTerminatedPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, "Host disconnected.", payload.Reason)
}

func TestDeparted_GuestLeavesRoomAlive(t *testing.T) {
	t.Parallel()

	r := New(Deps{})
	host := testutil.NewSimpleClient("p1", "Alice")
	guest := testutil.NewSimpleClient("p2", "Bob")
	_, err := r.Join(host, "WOLF1")
	require.NoError(t, err)
	_, err = r.Join(guest, "WOLF1")
	require.NoError(t, err)

	r.Departed(guest)

	s := r.Get("WOLF1")
	require.NotNil(t, s)
	assert.Equal(t, 1, s.PlayerCount())
	assert.Empty(t, guest.RoomID)
}

func TestDeparted_UntrackedClientIgnored(t *testing.T) {
	t.Parallel()

	r := New(Deps{})
	r.Departed(testutil.NewSimpleClient("p1", "Alice")) // never joined
	assert.Equal(t, 0, r.RoomCount())
}

func TestInProgressCount(t *testing.T) {
	t.Parallel()

	r := New(Deps{})
	for _, room := range []string{"A", "B"} {
		_, err := r.Join(testutil.NewSimpleClient("h"+room, "Host"+room), room)
		require.NoError(t, err)
		for j := 0; j < 2; j++ {
			name := "Guest" + room + string(rune('1'+j))
			_, err := r.Join(testutil.NewSimpleClient(name, name), room)
			require.NoError(t, err)
		}
	}
	assert.Equal(t, 0, r.InProgressCount())

	require.NoError(t, r.Get("A").Start(map[string]int{
		"Werewolf": 2,
		"Seer":     1,
		"Villager": 3,
	}))
	assert.Equal(t, 1, r.InProgressCount())
}
