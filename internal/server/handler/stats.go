package handler

import (
	"context"
	"log"
	"time"

	"github.com/palemoky/one-night-werewolf/internal/protocol"
	"github.com/palemoky/one-night-werewolf/internal/types"
)

const queryTimeout = 3 * time.Second

// handleGetStats 查询个人累计战绩
func (h *Handler) handleGetStats(client types.ClientInterface) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	stats, err := h.history.GetPlayerStats(ctx, client.GetID())
	if err != nil {
		log.Printf("⚠️ 查询玩家 %s 战绩失败: %v", client.GetID(), err)
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeUnknown))
		return
	}

	payload := protocol.StatsPayload{Name: client.GetName()}
	if stats != nil {
		payload = protocol.StatsPayload{
			Name:          stats.Name,
			GamesPlayed:   stats.GamesPlayed,
			GamesWon:      stats.GamesWon,
			WerewolfGames: stats.WerewolfGames,
			VillageGames:  stats.VillageGames,
			WinStreak:     stats.WinStreak,
		}
	}
	client.SendMessage(protocol.MustNewMessage(protocol.MsgStats, payload))
}

// handleGetLeaderboard 查询胜场排行榜
func (h *Handler) handleGetLeaderboard(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.GetLeaderboardPayload](msg)
	if err != nil || payload.Limit <= 0 || payload.Limit > 100 {
		payload = &protocol.GetLeaderboardPayload{Limit: 10}
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	top, err := h.history.GetTopWinners(ctx, payload.Limit)
	if err != nil {
		log.Printf("⚠️ 查询排行榜失败: %v", err)
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeUnknown))
		return
	}

	entries := make([]protocol.LeaderboardEntry, 0, len(top))
	for _, e := range top {
		entries = append(entries, protocol.LeaderboardEntry{
			Name: e.PlayerName,
			Wins: e.Wins,
		})
	}
	client.SendMessage(protocol.MustNewMessage(protocol.MsgLeaderboard, protocol.LeaderboardPayload{
		Entries: entries,
	}))
}
