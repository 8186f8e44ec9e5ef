package session

import (
	"context"
	"log"
	"time"

	"github.com/palemoky/one-night-werewolf/internal/game/role"
	"github.com/palemoky/one-night-werewolf/internal/protocol"
)

// recordTimeout 战绩写入的单次超时
const recordTimeout = 5 * time.Second

// HandleVoteRoster 回复当前可投票名单。只在投票阶段答复
func (s *Session) HandleVoteRoster(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseVoting {
		return
	}
	voter := s.playerByID(playerID)
	if voter == nil {
		return
	}

	voter.Client.SendMessage(protocol.MustNewMessage(protocol.MsgVoteRoster, protocol.VoteRosterPayload{
		Players: s.rosterInfo(""),
	}))
}

// HandleVote 记录一票。投票人和目标都必须在座；重复投票直接忽略，
// 第一票即为最终票。全员投完立刻结算。
func (s *Session) HandleVote(voterID string, req *protocol.CastVotePayload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseVoting {
		return
	}
	if s.playerByID(voterID) == nil || s.playerByID(req.TargetID) == nil {
		return
	}
	if _, voted := s.votes[voterID]; voted {
		return
	}

	s.votes[voterID] = req.TargetID
	log.Printf("🗳️ 房间 %s: 已收到 %d/%d 票", s.ID, len(s.votes), len(s.players))

	s.checkVotesComplete()
}

// checkVotesComplete 票数达到在座人数即结算。调用方必须持有 mu。
// 投票阶段有人离开时也会触发：离开者的票已删除，剩余玩家可能恰好投完。
func (s *Session) checkVotesComplete() {
	if s.phase != PhaseVoting {
		return
	}
	if len(s.players) > 0 && len(s.votes) >= len(s.players) {
		s.finishGame()
	}
}

// finishGame 计票、结算死亡与胜负并广播全量揭示。调用方必须持有 mu。
func (s *Session) finishGame() {
	s.phase = PhaseResults

	dead := s.resolveDeaths()

	// 死亡集合里有没有狼（按当前持牌判定）
	wolfDied := false
	anyDead := len(dead) > 0
	for id := range dead {
		if p := s.playerByID(id); p != nil && p.CurrentRole == role.Werewolf {
			wolfDied = true
		}
	}
	wolvesExist := false
	for _, p := range s.players {
		if p.CurrentRole == role.Werewolf {
			wolvesExist = true
			break
		}
	}

	var winner string
	var winnerTeam string
	switch {
	case wolvesExist && wolfDied:
		winner = "Village Wins! (A Werewolf died)"
		winnerTeam = "village"
	case wolvesExist:
		winner = "Werewolves Win!"
		winnerTeam = "werewolves"
	case !anyDead:
		winner = "Village Wins! (No Wolves, nobody died)"
		winnerTeam = "village"
	default:
		winner = "Village Loses! (No Wolves, but you killed a Villager)"
		winnerTeam = "" // 没有赢家：无狼局里错杀了村民
	}

	deadIDs := make([]string, 0, len(dead))
	reveals := make([]protocol.PlayerReveal, 0, len(s.players))
	for _, p := range s.players {
		if _, ok := dead[p.ID]; ok {
			deadIDs = append(deadIDs, p.ID)
		}
		reveals = append(reveals, protocol.PlayerReveal{
			ID:           p.ID,
			Name:         p.Name,
			OriginalRole: p.OriginalRole.String(),
			CurrentRole:  p.CurrentRole.String(),
		})
	}

	s.broadcast(protocol.MustNewMessage(protocol.MsgGameResults, protocol.GameResultsPayload{
		Winner:  winner,
		Dead:    deadIDs,
		Players: reveals,
	}))

	log.Printf("🏆 房间 %s 结算: %s（死亡 %d 人）", s.ID, winner, len(deadIDs))

	s.recordResults(winnerTeam)
}

// resolveDeaths 计票并展开猎人连锁。调用方必须持有 mu。
//
// 得票最高者全部死亡，平票则并列死亡；随后反复检查：死者中若有当前持
// 猎人牌的玩家，其投票目标被拖入死亡集合，直到不再产生新的死者。
func (s *Session) resolveDeaths() map[string]struct{} {
	// 只统计仍然在座的目标：无法处决一个已经不在房间里的人
	tally := make(map[string]int)
	for _, targetID := range s.votes {
		if s.playerByID(targetID) != nil {
			tally[targetID]++
		}
	}

	maxVotes := 0
	for _, n := range tally {
		if n > maxVotes {
			maxVotes = n
		}
	}

	dead := make(map[string]struct{})
	if maxVotes == 0 {
		return dead
	}
	for id, n := range tally {
		if n == maxVotes {
			dead[id] = struct{}{}
		}
	}

	// 猎人连锁：不动点迭代，每轮至多新增一批目标，必然收敛
	for {
		grew := false
		for id := range dead {
			p := s.playerByID(id)
			if p == nil || p.CurrentRole != role.Hunter {
				continue
			}
			target, ok := s.votes[id]
			if !ok {
				continue
			}
			if _, already := dead[target]; !already {
				dead[target] = struct{}{}
				grew = true
			}
		}
		if !grew {
			break
		}
	}

	return dead
}

// recordResults 异步写入每名玩家的战绩。调用方必须持有 mu（只读取快照）。
// 阵营按终局状态判定：当前持狼牌、或发牌为爪牙的玩家记入狼阵营。
func (s *Session) recordResults(winnerTeam string) {
	if s.deps.Recorder == nil {
		return
	}

	type entry struct {
		id, name, team string
		won            bool
	}
	entries := make([]entry, 0, len(s.players))
	for _, p := range s.players {
		team := "village"
		if p.CurrentRole == role.Werewolf || p.OriginalRole == role.Minion {
			team = "werewolves"
		}
		entries = append(entries, entry{
			id:   p.ID,
			name: p.Name,
			team: team,
			won:  winnerTeam != "" && team == winnerTeam,
		})
	}

	recorder := s.deps.Recorder
	roomID := s.ID
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		for _, e := range entries {
			if err := recorder.RecordGameResult(ctx, e.id, e.name, e.team, e.won); err != nil {
				log.Printf("⚠️ 房间 %s 战绩写入失败 (玩家 %s): %v", roomID, e.name, err)
			}
		}
	}()
}
