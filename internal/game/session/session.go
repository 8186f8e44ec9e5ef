package session

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/palemoky/one-night-werewolf/internal/apperrors"
	"github.com/palemoky/one-night-werewolf/internal/game/role"
	"github.com/palemoky/one-night-werewolf/internal/protocol"
	"github.com/palemoky/one-night-werewolf/internal/types"
)

// Phase 房间阶段。只允许单向推进：LOBBY → NIGHT → VOTING → RESULTS
type Phase string

const (
	PhaseLobby   Phase = "LOBBY"
	PhaseNight   Phase = "NIGHT"
	PhaseVoting  Phase = "VOTING"
	PhaseResults Phase = "RESULTS"
)

// centerSize 中央牌堆固定三张
const centerSize = 3

// Player 房间中的玩家。OriginalRole 在发牌时写入一次后不再变化，
// 决定整局的唤醒资格和能力；CurrentRole 是当前实际持有的牌，会被换来换去。
type Player struct {
	ID           string
	Name         string
	Client       types.ClientInterface
	OriginalRole role.Role
	CurrentRole  role.Role
}

// ResultRecorder 终局战绩记录接口（Redis 实现见 server/storage）
type ResultRecorder interface {
	RecordGameResult(ctx context.Context, playerID, playerName, team string, won bool) error
}

// Deps 会话依赖
type Deps struct {
	Rand         *rand.Rand     // 洗牌与随机延迟的随机源，测试注入固定种子
	Recorder     ResultRecorder // 可为 nil
	GhostTurnMin time.Duration  // 假回合最短延迟
	GhostTurnMax time.Duration  // 假回合最长延迟
}

// Session 一局游戏的全部状态。
// 所有状态只在持有 mu 的情况下变更，消息逐条处理，房间之间互不共享可变状态。
type Session struct {
	ID string

	mu      sync.Mutex
	deps    Deps
	players []*Player // 加入顺序即座次，首位是房主
	center  []role.Role
	phase   Phase

	schedule   []role.Role
	nightIndex int
	pending    map[string]struct{} // 本回合尚未发出 done 信号的玩家
	acted      map[string]struct{} // 本回合已提交过能力行动的玩家
	turnSeq    int                 // 回合序号，用于作废过期的假回合定时器

	votes  map[string]string // 投票人 → 目标
	closed bool
}

// New 创建会话
func New(id string, deps Deps) *Session {
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if deps.GhostTurnMin <= 0 {
		deps.GhostTurnMin = 3 * time.Second
	}
	if deps.GhostTurnMax < deps.GhostTurnMin {
		deps.GhostTurnMax = deps.GhostTurnMin + 4*time.Second
	}

	return &Session{
		ID:      id,
		deps:    deps,
		phase:   PhaseLobby,
		pending: make(map[string]struct{}),
		acted:   make(map[string]struct{}),
		votes:   make(map[string]string),
	}
}

// AddPlayer 添加玩家。房间内重名直接拒绝，状态不变；
// 成功后向全房间广播最新名单。
func (s *Session) AddPlayer(client types.ClientInterface) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.players {
		if p.Name == client.GetName() {
			return apperrors.ErrNameTaken
		}
	}

	s.players = append(s.players, &Player{
		ID:     client.GetID(),
		Name:   client.GetName(),
		Client: client,
	})
	client.SetRoom(s.ID)

	log.Printf("👤 玩家 %s 加入房间 %s（第 %d 位）", client.GetName(), s.ID, len(s.players))

	s.broadcastRoster()
	return nil
}

// IsHost 判断玩家是否为房主（加入顺序首位）
func (s *Session) IsHost(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players) > 0 && s.players[0].ID == playerID
}

// HandleDeparture 处理非房主玩家离开。
// 大厅阶段广播新名单；夜晚阶段视为隐式的回合完成信号，调度永远不会卡在
// 一个再也无法应答的玩家身上；投票阶段可能使当前票数达到完备条件。
func (s *Session) HandleDeparture(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, p := range s.players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}

	departed := s.players[idx]
	s.players = append(s.players[:idx], s.players[idx+1:]...)
	delete(s.votes, playerID)

	log.Printf("👋 玩家 %s 离开房间 %s", departed.Name, s.ID)

	switch s.phase {
	case PhaseLobby:
		s.broadcastRoster()
	case PhaseNight:
		s.releasePendingActor(playerID, releasedByDisconnect)
	case PhaseVoting:
		s.checkVotesComplete()
	}
}

// Terminate 销毁会话：广播终止原因并作废所有挂起的定时器
func (s *Session) Terminate(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	s.broadcast(protocol.MustNewMessage(protocol.MsgSessionTerminated, protocol.SessionTerminatedPayload{
		Reason: reason,
	}))

	log.Printf("💥 房间 %s 已销毁: %s", s.ID, reason)
}

// Start 开局。只在大厅阶段有效；角色总数必须恰好等于玩家数 + 3，
// 否则向房间广播诊断信息并保持大厅状态。
func (s *Session) Start(roleCounts map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseLobby {
		return nil // 非大厅阶段的 start 静默忽略
	}

	need := len(s.players) + centerSize
	deck, err := role.BuildDeck(roleCounts)
	if err != nil || len(deck) != need {
		s.broadcast(protocol.MustNewMessage(protocol.MsgActionResult, protocol.ActionResultPayload{
			Text: fmt.Sprintf("Error: Need exactly %d roles.", need),
		}))
		return apperrors.ErrRoleCount
	}

	log.Printf("🎲 房间 %s 开局: %v", s.ID, deck.Counts())

	// 广播本局角色构成，供所有客户端展示
	s.broadcast(protocol.MustNewMessage(protocol.MsgRoleCounts, protocol.RoleCountsPayload{
		Counts: deck.Counts(),
	}))

	// 洗牌并发牌：前 N 张给玩家，剩余三张进入中央牌堆
	deck.Shuffle(s.deps.Rand)
	for i, p := range s.players {
		p.OriginalRole = deck[i]
		p.CurrentRole = deck[i]
		p.Client.SendMessage(protocol.MustNewMessage(protocol.MsgDealtRole, protocol.DealtRolePayload{
			Role: deck[i].String(),
		}))
	}
	s.center = append([]role.Role(nil), deck[len(s.players):]...)

	s.schedule = deck.Schedule()
	s.nightIndex = 0
	s.phase = PhaseNight

	s.advance()
	return nil
}

// Phase 返回当前阶段
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// PlayerCount 返回在座玩家数
func (s *Session) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players)
}

// InProgress 判断游戏是否进行中（用于优雅关闭统计）
func (s *Session) InProgress() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == PhaseNight || s.phase == PhaseVoting
}

// --- 内部工具，调用方必须持有 mu ---

func (s *Session) playerByID(id string) *Player {
	for _, p := range s.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// broadcast 发送消息给房间内所有玩家
func (s *Session) broadcast(msg *protocol.Message) {
	for _, p := range s.players {
		p.Client.SendMessage(msg)
	}
}

func (s *Session) broadcastRoster() {
	s.broadcast(protocol.MustNewMessage(protocol.MsgRosterUpdate, protocol.RosterUpdatePayload{
		Players: s.rosterInfo(""),
	}))
}

// rosterInfo 生成名单，excludeID 非空时排除该玩家（用于行动提示里的"其他玩家"）
func (s *Session) rosterInfo(excludeID string) []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, 0, len(s.players))
	for i, p := range s.players {
		if p.ID == excludeID {
			continue
		}
		infos = append(infos, protocol.PlayerInfo{
			ID:     p.ID,
			Name:   p.Name,
			IsHost: i == 0,
		})
	}
	return infos
}
