package handler

import (
	"log"

	"github.com/palemoky/one-night-werewolf/internal/game/registry"
	"github.com/palemoky/one-night-werewolf/internal/protocol"
	"github.com/palemoky/one-night-werewolf/internal/server/storage"
	"github.com/palemoky/one-night-werewolf/internal/types"
)

// HandlerDeps 处理器依赖
type HandlerDeps struct {
	Server   types.ServerInterface
	Registry *registry.Registry
	History  *storage.HistoryStore
}

// Handler 消息处理器
type Handler struct {
	server   types.ServerInterface
	registry *registry.Registry
	history  *storage.HistoryStore
	handlers map[protocol.MessageType]handlerFunc
}

// handlerFunc 统一的处理器函数签名
type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// NewHandler 创建处理器
func NewHandler(deps HandlerDeps) *Handler {
	h := &Handler{
		server:   deps.Server,
		registry: deps.Registry,
		history:  deps.History,
	}
	h.initHandlers()
	return h
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		// 房间操作
		protocol.MsgJoin: h.handleJoin,

		// 游戏操作
		protocol.MsgStartGame:     h.handleStartGame,
		protocol.MsgNightAction:   h.handleNightAction,
		protocol.MsgTurnDone:      func(c types.ClientInterface, _ *protocol.Message) { h.handleTurnDone(c) },
		protocol.MsgGetVoteRoster: func(c types.ClientInterface, _ *protocol.Message) { h.handleGetVoteRoster(c) },
		protocol.MsgCastVote:      h.handleCastVote,

		// 信息查询
		protocol.MsgGetStats:       func(c types.ClientInterface, _ *protocol.Message) { h.handleGetStats(c) },
		protocol.MsgGetLeaderboard: h.handleGetLeaderboard,
	}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	if handler, ok := h.handlers[msg.Type]; ok {
		handler(client, msg)
		return
	}

	log.Printf("⚠️  未知消息类型: '%s' (来自玩家: %s, ID: %s)", msg.Type, client.GetName(), client.GetID())
	client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
}
