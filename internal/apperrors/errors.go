package apperrors

import (
	"github.com/palemoky/one-night-werewolf/internal/protocol"
)

// GameError 游戏错误（注册表和会话共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrRoomNotFound = &GameError{Code: protocol.ErrCodeRoomNotFound, Message: "room not found"}
	ErrNameTaken    = &GameError{Code: protocol.ErrCodeNameTaken, Message: "Name already taken"}
	ErrNotInRoom    = &GameError{Code: protocol.ErrCodeNotInRoom, Message: "you are not in a room"}
	ErrRoleCount    = &GameError{Code: protocol.ErrCodeRoleCount, Message: "role count must equal players + 3"}
)
