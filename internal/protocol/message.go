package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	MsgJoin          MessageType = "join"            // 加入房间
	MsgStartGame     MessageType = "start_game"      // 房主发牌开局
	MsgNightAction   MessageType = "night_action"    // 夜晚能力行动
	MsgTurnDone      MessageType = "turn_done"       // 本回合行动完毕
	MsgGetVoteRoster MessageType = "get_vote_roster" // 拉取投票名单
	MsgCastVote      MessageType = "cast_vote"       // 投票

	MsgGetStats       MessageType = "get_stats"       // 查询个人战绩
	MsgGetLeaderboard MessageType = "get_leaderboard" // 查询胜场排行榜
)

// 服务端 → 客户端 消息类型
const (
	MsgJoined            MessageType = "joined"             // 加入成功
	MsgRosterUpdate      MessageType = "roster_update"      // 房间名单更新
	MsgRoleCounts        MessageType = "role_counts"        // 本局角色构成
	MsgDealtRole         MessageType = "dealt_role"         // 私发：你的角色
	MsgTurnAnnouncement  MessageType = "turn_announcement"  // 夜晚回合播报
	MsgYourTurn          MessageType = "your_turn"          // 私发：轮到你行动
	MsgActionResult      MessageType = "action_result"      // 私发：能力结算结果
	MsgPhaseChange       MessageType = "phase_change"       // 阶段切换
	MsgVoteRoster        MessageType = "vote_roster"        // 投票名单
	MsgGameResults       MessageType = "game_results"       // 结算：胜负与身份揭示
	MsgSessionTerminated MessageType = "session_terminated" // 房间被销毁
	MsgStats             MessageType = "stats"              // 个人战绩
	MsgLeaderboard       MessageType = "leaderboard"        // 胜场排行榜
	MsgError             MessageType = "error"              // 错误消息
)

// 夜晚行动类型（night_action 的 action 字段）
const (
	ActionTargetPlayer = "target_player" // 指定一名玩家
	ActionTargetCenter = "target_center" // 指向中央牌堆
	ActionCheckWolves  = "check_wolves"  // 爪牙查狼
	ActionCheckSelf    = "check_self"    // 失眠者看自己
	ActionCheckMasons  = "check_masons"  // 守夜人互认
)
