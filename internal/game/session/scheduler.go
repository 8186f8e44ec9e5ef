package session

import (
	"log"
	"time"

	"github.com/palemoky/one-night-werewolf/internal/game/role"
	"github.com/palemoky/one-night-werewolf/internal/protocol"
)

// ReleaseReason 挂起玩家被释放的原因
type ReleaseReason string

const (
	releasedByDone       ReleaseReason = "explicit-done"
	releasedByDisconnect ReleaseReason = "disconnected"
)

// HandleTurnDone 玩家宣告本回合行动完毕
func (s *Session) HandleTurnDone(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releasePendingActor(playerID, releasedByDone)
}

// advance 推进夜晚调度。调用方必须持有 mu。
//
// 回合播报对全员可见；无人持有当前角色时，延迟一段随机时间再跳过——
// 让旁观者无法区分"没人拿到这个角色"和"有人正在行动"，这是保密模型的
// 一部分，不是装饰。
func (s *Session) advance() {
	if s.nightIndex >= len(s.schedule) {
		s.phase = PhaseVoting
		s.broadcast(protocol.MustNewMessage(protocol.MsgPhaseChange, protocol.PhaseChangePayload{
			Phase: string(PhaseVoting),
		}))
		log.Printf("🌅 房间 %s 夜晚结束，进入投票", s.ID)
		return
	}

	current := s.schedule[s.nightIndex]
	s.broadcast(protocol.MustNewMessage(protocol.MsgTurnAnnouncement, protocol.TurnAnnouncementPayload{
		ActiveRole: current.String(),
	}))

	active := s.activePlayers(current)
	if len(active) == 0 {
		seq := s.turnSeq
		delay := s.ghostDelay()
		time.AfterFunc(delay, func() { s.ghostAdvance(seq) })
		log.Printf("🌫️ 房间 %s 回合 %s 无人持有，%v 后跳过", s.ID, current, delay.Round(time.Millisecond))
		return
	}

	s.pending = make(map[string]struct{}, len(active))
	s.acted = make(map[string]struct{}, len(active))

	loneWolf := current == role.Werewolf && len(active) == 1
	for _, p := range active {
		s.pending[p.ID] = struct{}{}
		p.Client.SendMessage(protocol.MustNewMessage(protocol.MsgYourTurn, protocol.YourTurnPayload{
			Role:         current.String(),
			LoneWolf:     loneWolf,
			CenterCount:  len(s.center),
			OtherPlayers: s.rosterInfo(p.ID),
		}))
	}

	log.Printf("🌙 房间 %s 回合 %s，等待 %d 名玩家", s.ID, current, len(active))
}

// releasePendingActor 将玩家从挂起集合中移除。显式 done 和断线走同一条路径，
// 只是原因不同；集合清空时推进到下一个回合。调用方必须持有 mu。
func (s *Session) releasePendingActor(playerID string, reason ReleaseReason) {
	if s.phase != PhaseNight {
		return
	}
	if _, ok := s.pending[playerID]; !ok {
		return
	}
	delete(s.pending, playerID)

	if reason == releasedByDisconnect {
		log.Printf("⚡ 房间 %s: 玩家 %s 断线，视为回合完成", s.ID, playerID)
	}

	if len(s.pending) == 0 {
		s.nextTurn()
	}
}

// nextTurn 推进回合游标。调用方必须持有 mu。
func (s *Session) nextTurn() {
	s.nightIndex++
	s.turnSeq++
	s.advance()
}

// ghostAdvance 假回合定时器回调。房间可能已被销毁、也可能因为别的原因
// 已经推进过，两种情况下序号都对不上，直接丢弃。
func (s *Session) ghostAdvance(seq int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.phase != PhaseNight || seq != s.turnSeq {
		return
	}
	s.nextTurn()
}

// activePlayers 返回 originalRole 等于当前回合角色的玩家。
// 唤醒资格永远看发牌时的角色，与当前持有的牌无关。
func (s *Session) activePlayers(r role.Role) []*Player {
	var out []*Player
	for _, p := range s.players {
		if p.OriginalRole == r {
			out = append(out, p)
		}
	}
	return out
}

// ghostDelay 随机取一个 [min, max) 区间内的延迟
func (s *Session) ghostDelay() time.Duration {
	lo, hi := s.deps.GhostTurnMin, s.deps.GhostTurnMax
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(s.deps.Rand.Int64N(int64(hi-lo)))
}
