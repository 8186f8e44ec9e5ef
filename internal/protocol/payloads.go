package protocol

// --- 客户端请求 Payloads ---

// JoinPayload 加入房间请求
type JoinPayload struct {
	Name   string `json:"name"`
	RoomID string `json:"room_id"`
}

// StartGamePayload 开局请求，角色名 → 数量
type StartGamePayload struct {
	RoleCounts map[string]int `json:"role_counts"`
}

// NightActionPayload 夜晚能力行动请求
type NightActionPayload struct {
	Action   string `json:"action"`
	TargetID string `json:"target_id,omitempty"`
	// 捣蛋鬼的两个目标必须在同一条消息里原子送达
	TargetID1 string `json:"target_id_1,omitempty"`
	TargetID2 string `json:"target_id_2,omitempty"`
}

// CastVotePayload 投票请求
type CastVotePayload struct {
	TargetID string `json:"target_id"`
}

// --- 服务端响应 Payloads ---

// JoinedPayload 加入成功响应
type JoinedPayload struct {
	PlayerID string `json:"player_id"`
	RoomID   string `json:"room_id"`
}

// RosterUpdatePayload 房间名单更新
type RosterUpdatePayload struct {
	Players []PlayerInfo `json:"players"`
}

// RoleCountsPayload 本局角色构成（供 UI 展示）
type RoleCountsPayload struct {
	Counts map[string]int `json:"counts"`
}

// DealtRolePayload 私发角色
type DealtRolePayload struct {
	Role string `json:"role"`
}

// TurnAnnouncementPayload 夜晚回合播报（所有人可见）
type TurnAnnouncementPayload struct {
	ActiveRole string `json:"active_role"`
}

// YourTurnPayload 行动提示（仅发给持有该角色的玩家）
type YourTurnPayload struct {
	Role         string       `json:"role"`
	LoneWolf     bool         `json:"lone_wolf,omitempty"`
	CenterCount  int          `json:"center_count"`
	OtherPlayers []PlayerInfo `json:"other_players"`
}

// ActionResultPayload 能力结算的私密结果
type ActionResultPayload struct {
	Text string `json:"text"`
}

// PhaseChangePayload 阶段切换通知
type PhaseChangePayload struct {
	Phase string `json:"phase"`
}

// VoteRosterPayload 投票名单
type VoteRosterPayload struct {
	Players []PlayerInfo `json:"players"`
}

// GameResultsPayload 终局结算
type GameResultsPayload struct {
	Winner  string         `json:"winner"`
	Dead    []string       `json:"dead"` // 死亡玩家 ID
	Players []PlayerReveal `json:"players"`
}

// PlayerReveal 终局身份揭示
type PlayerReveal struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	OriginalRole string `json:"original_role"`
	CurrentRole  string `json:"current_role"`
}

// SessionTerminatedPayload 房间销毁通知
type SessionTerminatedPayload struct {
	Reason string `json:"reason"`
}

// StatsPayload 个人累计战绩
type StatsPayload struct {
	Name          string `json:"name"`
	GamesPlayed   int64  `json:"games_played"`
	GamesWon      int64  `json:"games_won"`
	WerewolfGames int64  `json:"werewolf_games"`
	VillageGames  int64  `json:"village_games"`
	WinStreak     int64  `json:"win_streak"`
}

// GetLeaderboardPayload 排行榜查询
type GetLeaderboardPayload struct {
	Limit int64 `json:"limit,omitempty"`
}

// LeaderboardPayload 胜场排行榜
type LeaderboardPayload struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Name string `json:"name"`
	Wins int64  `json:"wins"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// --- 通用数据结构 ---

// PlayerInfo 玩家信息
type PlayerInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"is_host,omitempty"`
}
