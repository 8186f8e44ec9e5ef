package protocol

// 错误码
const (
	ErrCodeUnknown      = 1000
	ErrCodeInvalidMsg   = 1001
	ErrCodeRateLimit    = 1002 // 速率限制
	ErrCodeRoomNotFound = 2001
	ErrCodeNameTaken    = 2002 // 房间内重名
	ErrCodeNotInRoom    = 2003
	ErrCodeRoleCount    = 3001 // 角色数量与玩家数不符
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:      "unknown error",
	ErrCodeInvalidMsg:   "invalid message format",
	ErrCodeRateLimit:    "too many requests",
	ErrCodeRoomNotFound: "room not found",
	ErrCodeNameTaken:    "Name already taken",
	ErrCodeNotInRoom:    "you are not in a room",
	ErrCodeRoleCount:    "role count must equal players + 3",
}
