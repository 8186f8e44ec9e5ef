package session

import (
	"fmt"
	"strings"

	"github.com/palemoky/one-night-werewolf/internal/game/role"
	"github.com/palemoky/one-night-werewolf/internal/protocol"
)

// abilityKey 能力表的键：发牌时的角色 + 行动类型。
// 能力永远绑定 originalRole——被换进预言家牌的玩家不会获得预言家的能力，
// 原predictor预言家失去牌后依然保有能力。
type abilityKey struct {
	Role   role.Role
	Action string
}

// abilityFunc 单个能力的结算。返回发给行动者的私密结果；ok 为 false 表示
// 行动不合法（静默忽略，不产生任何变更和回复）。
type abilityFunc func(s *Session, actor *Player, req *protocol.NightActionPayload) (result string, ok bool)

// abilityTable 扁平能力表。不在表里的 (角色, 行动) 组合一律忽略：
// 村民和猎人没有夜晚能力，猎人的能力在投票结算时触发。
var abilityTable = map[abilityKey]abilityFunc{
	{role.Werewolf, protocol.ActionTargetCenter}:     resolveLoneWolfPeek,
	{role.Minion, protocol.ActionCheckWolves}:        resolveMinionCheck,
	{role.Seer, protocol.ActionTargetPlayer}:         resolveSeerPlayer,
	{role.Seer, protocol.ActionTargetCenter}:         resolveSeerCenter,
	{role.Robber, protocol.ActionTargetPlayer}:       resolveRobberSwap,
	{role.Troublemaker, protocol.ActionTargetPlayer}: resolveTroublemakerSwap,
	{role.Drunk, protocol.ActionTargetCenter}:        resolveDrunkSwap,
	{role.Insomniac, protocol.ActionCheckSelf}:       resolveInsomniacCheck,
	{role.Mason, protocol.ActionCheckMasons}:         resolveMasonCheck,
}

// HandleNightAction 结算一次夜晚能力行动。
// 非夜晚阶段、不轮到该角色、行动者不在挂起集合、或本回合已行动过的
// 消息全部静默丢弃——迟到或恶意的客户端消息绝不能破坏会话状态。
func (s *Session) HandleNightAction(actorID string, req *protocol.NightActionPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseNight || s.nightIndex >= len(s.schedule) {
		return
	}
	actor := s.playerByID(actorID)
	if actor == nil || actor.OriginalRole != s.schedule[s.nightIndex] {
		return
	}
	if _, waiting := s.pending[actorID]; !waiting {
		return
	}
	if _, done := s.acted[actorID]; done {
		return // 每个回合最多一次能力行动
	}

	ability, ok := abilityTable[abilityKey{actor.OriginalRole, req.Action}]
	if !ok {
		return
	}

	result, ok := ability(s, actor, req)
	if !ok {
		return
	}

	s.acted[actorID] = struct{}{}
	actor.Client.SendMessage(protocol.MustNewMessage(protocol.MsgActionResult, protocol.ActionResultPayload{
		Text: result,
	}))
}

// --- 能力实现（调用时已持有 mu）---

// resolveLoneWolfPeek 独狼查看一张随机中央牌。仅在全场只有一名狼时合法
func resolveLoneWolfPeek(s *Session, actor *Player, _ *protocol.NightActionPayload) (string, bool) {
	if len(s.activePlayers(role.Werewolf)) != 1 {
		return "", false
	}
	card := s.center[s.deps.Rand.IntN(len(s.center))]
	return fmt.Sprintf("Lone Wolf: You saw a center card: %s", card), true
}

// resolveMinionCheck 爪牙得知所有狼（按 originalRole）的名字
func resolveMinionCheck(s *Session, actor *Player, _ *protocol.NightActionPayload) (string, bool) {
	names := s.namesWithOriginalRole(role.Werewolf, "")
	return fmt.Sprintf("The Werewolves are: %s", joinOrNone(names)), true
}

// resolveSeerPlayer 预言家查看目标玩家当前持有的牌
func resolveSeerPlayer(s *Session, actor *Player, req *protocol.NightActionPayload) (string, bool) {
	target := s.playerByID(req.TargetID)
	if target == nil || target.ID == actor.ID {
		return "", false
	}
	return fmt.Sprintf("%s is the %s", target.Name, target.CurrentRole), true
}

// resolveSeerCenter 预言家查看固定的前两张中央牌
func resolveSeerCenter(s *Session, actor *Player, _ *protocol.NightActionPayload) (string, bool) {
	return fmt.Sprintf("Center Cards: %s, %s", s.center[0], s.center[1]), true
}

// resolveRobberSwap 强盗与目标互换当前牌，并得知自己换来了什么
func resolveRobberSwap(s *Session, actor *Player, req *protocol.NightActionPayload) (string, bool) {
	target := s.playerByID(req.TargetID)
	if target == nil || target.ID == actor.ID {
		return "", false
	}
	actor.CurrentRole, target.CurrentRole = target.CurrentRole, actor.CurrentRole
	return fmt.Sprintf("You stole %s's card. You are now the %s", target.Name, actor.CurrentRole), true
}

// resolveTroublemakerSwap 捣蛋鬼互换另外两名玩家的牌。两个目标在同一条
// 消息里原子送达；目标不能是自己，也不能重复。没人看到任何牌
func resolveTroublemakerSwap(s *Session, actor *Player, req *protocol.NightActionPayload) (string, bool) {
	if req.TargetID1 == "" || req.TargetID2 == "" {
		return "", false
	}
	p1 := s.playerByID(req.TargetID1)
	p2 := s.playerByID(req.TargetID2)
	if p1 == nil || p2 == nil || p1.ID == p2.ID || p1.ID == actor.ID || p2.ID == actor.ID {
		return "", false
	}
	p1.CurrentRole, p2.CurrentRole = p2.CurrentRole, p1.CurrentRole
	return fmt.Sprintf("Swapped %s and %s.", p1.Name, p2.Name), true
}

// resolveDrunkSwap 酒鬼与一张随机中央牌互换，且不被告知换到了什么
func resolveDrunkSwap(s *Session, actor *Player, _ *protocol.NightActionPayload) (string, bool) {
	idx := s.deps.Rand.IntN(len(s.center))
	actor.CurrentRole, s.center[idx] = s.center[idx], actor.CurrentRole
	return "Swapped with Center Card. You don't know your new role.", true
}

// resolveInsomniacCheck 失眠者查看自己当前持有的牌
func resolveInsomniacCheck(_ *Session, actor *Player, _ *protocol.NightActionPayload) (string, bool) {
	return fmt.Sprintf("Your role is currently: %s", actor.CurrentRole), true
}

// resolveMasonCheck 守夜人得知其他守夜人（按 originalRole）的名字
func resolveMasonCheck(s *Session, actor *Player, _ *protocol.NightActionPayload) (string, bool) {
	names := s.namesWithOriginalRole(role.Mason, actor.ID)
	return fmt.Sprintf("Other Masons: %s", joinOrNone(names)), true
}

// namesWithOriginalRole 收集发牌角色为 r 的玩家名，excludeID 非空时排除
func (s *Session) namesWithOriginalRole(r role.Role, excludeID string) []string {
	var names []string
	for _, p := range s.players {
		if p.OriginalRole == r && p.ID != excludeID {
			names = append(names, p.Name)
		}
	}
	return names
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, ", ")
}
