package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/one-night-werewolf/internal/game/role"
	"github.com/palemoky/one-night-werewolf/internal/protocol"
)

func TestHandleMsgJoined(t *testing.T) {
	// Setup
	model := NewModel("ws://localhost:1890/ws")
	msg := protocol.MustNewMessage(protocol.MsgJoined, protocol.JoinedPayload{
		PlayerID: "p1",
		RoomID:   "moonlight",
	})

	// Execute
	model.handleServerMessage(msg)

	// Verify
	assert.Equal(t, "p1", model.playerID)
	assert.Equal(t, "moonlight", model.roomID)
	assert.Equal(t, PhaseLobby, model.phase)
}

func TestHandleMsgRosterUpdate_HostDetection(t *testing.T) {
	model := NewModel("ws://localhost:1890/ws")
	model.playerID = "p1"

	msg := protocol.MustNewMessage(protocol.MsgRosterUpdate, protocol.RosterUpdatePayload{
		Players: []protocol.PlayerInfo{
			{ID: "p1", Name: "Alice", IsHost: true},
			{ID: "p2", Name: "Bob"},
		},
	})
	model.handleServerMessage(msg)

	assert.Len(t, model.roster, 2)
	assert.True(t, model.isHost)

	// Host left, roster reordered: we are no longer first
	msg = protocol.MustNewMessage(protocol.MsgRosterUpdate, protocol.RosterUpdatePayload{
		Players: []protocol.PlayerInfo{
			{ID: "p2", Name: "Bob", IsHost: true},
			{ID: "p1", Name: "Alice"},
		},
	})
	model.handleServerMessage(msg)
	assert.False(t, model.isHost)
}

func TestHandleMsgDealtRole_EntersNight(t *testing.T) {
	model := NewModel("ws://localhost:1890/ws")
	model.nightLog = []string{"stale line from a previous game"}

	msg := protocol.MustNewMessage(protocol.MsgDealtRole, protocol.DealtRolePayload{
		Role: role.Seer.String(),
	})
	model.handleServerMessage(msg)

	assert.Equal(t, PhaseNight, model.phase)
	assert.Equal(t, role.Seer.String(), model.myRole)
	assert.Empty(t, model.nightLog)
}

func TestHandleMsgTurnAnnouncement_ResetsTurnState(t *testing.T) {
	model := NewModel("ws://localhost:1890/ws")
	model.isMyTurn = true
	model.actionDone = true
	model.firstTarget = 2

	msg := protocol.MustNewMessage(protocol.MsgTurnAnnouncement, protocol.TurnAnnouncementPayload{
		ActiveRole: role.Robber.String(),
	})
	model.handleServerMessage(msg)

	assert.Equal(t, role.Robber.String(), model.activeRole)
	assert.False(t, model.isMyTurn)
	assert.False(t, model.actionDone)
	assert.Equal(t, -1, model.firstTarget)
}

func TestHandleMsgYourTurn(t *testing.T) {
	model := NewModel("ws://localhost:1890/ws")

	msg := protocol.MustNewMessage(protocol.MsgYourTurn, protocol.YourTurnPayload{
		LoneWolf: true,
		OtherPlayers: []protocol.PlayerInfo{
			{ID: "p2", Name: "Bob"},
		},
	})
	model.handleServerMessage(msg)

	assert.True(t, model.isMyTurn)
	assert.True(t, model.loneWolf)
	assert.Len(t, model.others, 1)
}

func TestHandleMsgActionResult_AppendsLog(t *testing.T) {
	model := NewModel("ws://localhost:1890/ws")

	msg := protocol.MustNewMessage(protocol.MsgActionResult, protocol.ActionResultPayload{
		Text: "Bob is the Werewolf",
	})
	model.handleServerMessage(msg)

	assert.Equal(t, []string{"Bob is the Werewolf"}, model.nightLog)
	assert.True(t, model.actionDone)
}

func TestHandleMsgPhaseChange_Voting(t *testing.T) {
	model := NewModel("ws://localhost:1890/ws")
	model.phase = PhaseNight
	model.voted = true
	model.cursor = 3

	msg := protocol.MustNewMessage(protocol.MsgPhaseChange, protocol.PhaseChangePayload{
		Phase: "VOTING",
	})
	model.handleServerMessage(msg)

	assert.Equal(t, PhaseVoting, model.phase)
	assert.False(t, model.voted)
	assert.Equal(t, 0, model.cursor)
}

func TestHandleMsgGameResults(t *testing.T) {
	model := NewModel("ws://localhost:1890/ws")

	msg := protocol.MustNewMessage(protocol.MsgGameResults, protocol.GameResultsPayload{
		Winner: "Werewolves Win!",
		Dead:   []string{"p2"},
		Players: []protocol.PlayerReveal{
			{ID: "p1", Name: "Alice", OriginalRole: "Werewolf", CurrentRole: "Werewolf"},
			{ID: "p2", Name: "Bob", OriginalRole: "Seer", CurrentRole: "Seer"},
		},
	})
	model.handleServerMessage(msg)

	assert.Equal(t, PhaseResults, model.phase)
	assert.Equal(t, "Werewolves Win!", model.winner)
	assert.Equal(t, []string{"p2"}, model.deadIDs)
	assert.Len(t, model.reveals, 2)
}

func TestHandleMsgSessionTerminated_BackToLogin(t *testing.T) {
	model := NewModel("ws://localhost:1890/ws")
	model.phase = PhaseNight
	model.step = stepRoom

	msg := protocol.MustNewMessage(protocol.MsgSessionTerminated, protocol.SessionTerminatedPayload{
		Reason: "Host disconnected.",
	})
	model.handleServerMessage(msg)

	assert.Equal(t, PhaseLogin, model.phase)
	assert.Equal(t, stepName, model.step)
	assert.Equal(t, "Host disconnected.", model.errMsg)
}

func TestHandleMsgError(t *testing.T) {
	model := NewModel("ws://localhost:1890/ws")

	msg := protocol.MustNewMessage(protocol.MsgError, protocol.ErrorPayload{
		Code:    protocol.ErrCodeNameTaken,
		Message: "Name already taken",
	})
	model.handleServerMessage(msg)

	assert.Equal(t, "Name already taken", model.errMsg)
}

func TestNumberKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		n       int
		wantIdx int
		wantOK  bool
	}{
		{"first target", "1", 3, 0, true},
		{"last target", "3", 3, 2, true},
		{"out of range", "4", 3, 0, false},
		{"zero is not a target", "0", 3, 0, false},
		{"letter key", "c", 3, 0, false},
		{"multi rune key", "enter", 3, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := numberKey(tt.key, tt.n)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantIdx, idx)
		})
	}
}

func TestDefaultRoleCounts_ClassicSix(t *testing.T) {
	counts := defaultRoleCounts()

	total := 0
	for _, n := range counts {
		total += n
	}
	// 3 players + 3 center cards
	assert.Equal(t, 6, total)
	assert.Equal(t, 2, counts[role.Werewolf.String()])
}
