package handler

import (
	"errors"

	"github.com/palemoky/one-night-werewolf/internal/apperrors"
	"github.com/palemoky/one-night-werewolf/internal/game/session"
	"github.com/palemoky/one-night-werewolf/internal/protocol"
	"github.com/palemoky/one-night-werewolf/internal/types"
)

// sessionOf 返回客户端所在的会话。不在房间或房间已回收时返回 nil；
// 夜晚与投票消息对离群客户端一律静默，避免给探测者任何反馈。
func (h *Handler) sessionOf(client types.ClientInterface) *session.Session {
	roomID := client.GetRoom()
	if roomID == "" {
		return nil
	}
	return h.registry.Get(roomID)
}

// handleStartGame 房主发牌开局
func (h *Handler) handleStartGame(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.StartGamePayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	s := h.sessionOf(client)
	if s == nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNotInRoom))
		return
	}
	if !s.IsHost(client.GetID()) {
		// 非房主的开局请求静默忽略
		return
	}

	if err := s.Start(payload.RoleCounts); err != nil {
		var gameErr *apperrors.GameError
		if errors.As(err, &gameErr) {
			client.SendMessage(protocol.NewErrorMessage(gameErr.Code))
		}
		// 诊断信息已由会话广播，无需额外回复
	}
}

// handleNightAction 夜晚能力行动
func (h *Handler) handleNightAction(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.NightActionPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	s := h.sessionOf(client)
	if s == nil {
		return
	}
	s.HandleNightAction(client.GetID(), payload)
}

// handleTurnDone 本回合行动完毕
func (h *Handler) handleTurnDone(client types.ClientInterface) {
	s := h.sessionOf(client)
	if s == nil {
		return
	}
	s.HandleTurnDone(client.GetID())
}

// handleGetVoteRoster 拉取投票名单
func (h *Handler) handleGetVoteRoster(client types.ClientInterface) {
	s := h.sessionOf(client)
	if s == nil {
		return
	}
	s.HandleVoteRoster(client.GetID())
}

// handleCastVote 投票
func (h *Handler) handleCastVote(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.CastVotePayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	s := h.sessionOf(client)
	if s == nil {
		return
	}
	s.HandleVote(client.GetID(), payload)
}
