package handler

import (
	"errors"
	"strings"

	"github.com/palemoky/one-night-werewolf/internal/apperrors"
	"github.com/palemoky/one-night-werewolf/internal/protocol"
	"github.com/palemoky/one-night-werewolf/internal/types"
)

// handleJoin 处理加入房间。房间号不存在时就地创建，第一个进来的人是房主。
func (h *Handler) handleJoin(client types.ClientInterface, msg *protocol.Message) {
	if h.server != nil && h.server.IsMaintenanceMode() {
		client.SendMessage(protocol.NewErrorMessageWithText(
			protocol.ErrCodeUnknown, "Server is under maintenance"))
		return
	}

	payload, err := protocol.ParsePayload[protocol.JoinPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	name := strings.TrimSpace(payload.Name)
	roomID := strings.TrimSpace(payload.RoomID)
	if name == "" || roomID == "" {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	// 已在房间中的客户端先退出原房间
	if client.GetRoom() != "" {
		h.registry.Departed(client)
	}

	client.SetName(name)

	if _, err := h.registry.Join(client, roomID); err != nil {
		var gameErr *apperrors.GameError
		if errors.As(err, &gameErr) {
			client.SendMessage(protocol.NewErrorMessage(gameErr.Code))
		} else {
			client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
		}
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgJoined, protocol.JoinedPayload{
		PlayerID: client.GetID(),
		RoomID:   roomID,
	}))
}
