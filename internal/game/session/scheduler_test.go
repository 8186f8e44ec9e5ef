package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/one-night-werewolf/internal/game/role"
	"github.com/palemoky/one-night-werewolf/internal/protocol"
	"github.com/palemoky/one-night-werewolf/internal/testutil"
)

// kickOff runs the scheduler from the current night cursor.
func kickOff(s *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advance()
}

func TestAdvance_AnnouncesAndPrompts(t *testing.T) {
	t.Parallel()

	s, clients := newTestSession(t, 3)
	seatPlayers(s,
		[]role.Role{role.Werewolf, role.Werewolf, role.Seer},
		[]role.Role{role.Villager, role.Villager, role.Robber},
	)
	kickOff(s)

	// The turn announcement is public; the wake-up prompt is private.
	for _, c := range clients {
		msg := c.LastOfType(protocol.MsgTurnAnnouncement)
		require.NotNil(t, msg)
		ann, err := protocol.ParsePayload[protocol.TurnAnnouncementPayload](msg)
		require.NoError(t, err)
		assert.Equal(t, "Werewolf", ann.ActiveRole)
	}
	assert.Equal(t, 1, clients[0].CountOfType(protocol.MsgYourTurn))
	assert.Equal(t, 1, clients[1].CountOfType(protocol.MsgYourTurn))
	assert.Equal(t, 0, clients[2].CountOfType(protocol.MsgYourTurn))

	// Two werewolves: neither prompt carries the lone wolf flag.
	prompt, err := protocol.ParsePayload[protocol.YourTurnPayload](clients[0].LastOfType(protocol.MsgYourTurn))
	require.NoError(t, err)
	assert.False(t, prompt.LoneWolf)
	assert.Equal(t, 3, prompt.CenterCount)
	require.Len(t, prompt.OtherPlayers, 2)
}

func TestAdvance_LoneWolfFlag(t *testing.T) {
	t.Parallel()

	s, clients := newTestSession(t, 3)
	seatPlayers(s,
		[]role.Role{role.Werewolf, role.Seer, role.Villager},
		[]role.Role{role.Villager, role.Villager, role.Robber},
	)
	kickOff(s)

	prompt, err := protocol.ParsePayload[protocol.YourTurnPayload](clients[0].LastOfType(protocol.MsgYourTurn))
	require.NoError(t, err)
	assert.True(t, prompt.LoneWolf)
}

func TestTurnDone_AdvancesWhenAllReleased(t *testing.T) {
	t.Parallel()

	s, clients := newTestSession(t, 3)
	seatPlayers(s,
		[]role.Role{role.Werewolf, role.Werewolf, role.Seer},
		[]role.Role{role.Villager, role.Villager, role.Robber},
	)
	kickOff(s)

	s.HandleTurnDone("p1")
	assert.Equal(t, 0, clients[2].CountOfType(protocol.MsgYourTurn))

	// Disconnects count as an implicit done for the same turn.
	s.HandleDeparture("p2")
	assert.Equal(t, 1, clients[2].CountOfType(protocol.MsgYourTurn))
}

func TestTurnDone_DuplicateAndStrangerIgnored(t *testing.T) {
	t.Parallel()

	s, clients := newTestSession(t, 3)
	seatPlayers(s,
		[]role.Role{role.Werewolf, role.Werewolf, role.Seer},
		[]role.Role{role.Villager, role.Villager, role.Robber},
	)
	kickOff(s)

	s.HandleTurnDone("p3")   // not pending this turn
	s.HandleTurnDone("nope") // not even seated
	s.HandleTurnDone("p1")
	s.HandleTurnDone("p1") // duplicate done

	// Still waiting on p2, so the Seer turn must not have opened.
	assert.Equal(t, 0, clients[2].CountOfType(protocol.MsgYourTurn))
	assert.Equal(t, PhaseNight, s.Phase())
}

func TestGhostTurn_AutoAdvances(t *testing.T) {
	t.Parallel()

	s, clients := newTestSession(t, 3)
	// Nobody holds the Robber card: both Robbers are in the center, so that
	// slot in the schedule must auto-skip after the randomized delay.
	seatPlayers(s,
		[]role.Role{role.Werewolf, role.Seer, role.Villager},
		[]role.Role{role.Robber, role.Robber, role.Villager},
	)
	kickOff(s)

	s.HandleTurnDone("p1") // Werewolf done
	s.HandleTurnDone("p2") // Seer done; Robber turn has no holder

	require.Eventually(t, func() bool {
		return s.Phase() == PhaseVoting
	}, time.Second, 5*time.Millisecond)

	// The ghost turn was still announced to everyone before the skip.
	found := false
	for _, msg := range clients[2].Messages {
		if msg.Type != protocol.MsgTurnAnnouncement {
			continue
		}
		ann, err := protocol.ParsePayload[protocol.TurnAnnouncementPayload](msg)
		require.NoError(t, err)
		if ann.ActiveRole == "Robber" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSchedule_ExhaustionEntersVoting(t *testing.T) {
	t.Parallel()

	s, clients := newTestSession(t, 3)
	seatPlayers(s,
		[]role.Role{role.Werewolf, role.Werewolf, role.Seer},
		[]role.Role{role.Villager, role.Villager, role.Villager},
	)
	kickOff(s)

	s.HandleTurnDone("p1")
	s.HandleTurnDone("p2")
	s.HandleTurnDone("p3")

	assert.Equal(t, PhaseVoting, s.Phase())
	msg := clients[0].LastOfType(protocol.MsgPhaseChange)
	require.NotNil(t, msg)
	change, err := protocol.ParsePayload[protocol.PhaseChangePayload](msg)
	require.NoError(t, err)
	assert.Equal(t, "VOTING", change.Phase)
}

func TestGhostTurn_StaleTimerDropped(t *testing.T) {
	t.Parallel()

	s := New("ROOM1", testDeps(7))
	c := testutil.NewSimpleClient("p1", "P1")
	require.NoError(t, s.AddPlayer(c))
	seatPlayers(s,
		[]role.Role{role.Seer},
		[]role.Role{role.Robber, role.Villager, role.Villager},
	)

	// Simulate a timer armed for an earlier turn: the sequence number no
	// longer matches, so firing must not move the cursor.
	s.mu.Lock()
	s.turnSeq = 5
	s.mu.Unlock()
	s.ghostAdvance(4)

	s.mu.Lock()
	assert.Equal(t, 0, s.nightIndex)
	s.mu.Unlock()

	// After termination even a matching sequence is ignored.
	s.Terminate("shutdown")
	s.ghostAdvance(5)
	s.mu.Lock()
	assert.Equal(t, 0, s.nightIndex)
	s.mu.Unlock()
}
