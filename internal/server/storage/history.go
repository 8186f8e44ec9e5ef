package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key 前缀
	playerKeyPrefix = "player:"
	leaderboardKey  = "leaderboard:wins"

	// 玩家战绩保留时间
	statsExpiration = 30 * 24 * time.Hour
)

// PlayerStats 玩家累计战绩
type PlayerStats struct {
	Name          string `json:"name"`
	GamesPlayed   int64  `json:"games_played"`
	GamesWon      int64  `json:"games_won"`
	WerewolfGames int64  `json:"werewolf_games"`
	VillageGames  int64  `json:"village_games"`
	WinStreak     int64  `json:"win_streak"`
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	PlayerName string
	Wins       int64
}

// HistoryStore 战绩存储。client 为 nil 时所有写入都是空操作，
// 便于在没有 Redis 的环境（测试、单机试玩）下直接运行。
type HistoryStore struct {
	client *redis.Client
}

// NewHistoryStore 创建战绩存储
func NewHistoryStore(client *redis.Client) *HistoryStore {
	return &HistoryStore{client: client}
}

// RecordGameResult 记录一局结果：更新玩家累计战绩并累加排行榜胜场
func (hs *HistoryStore) RecordGameResult(ctx context.Context, playerID, playerName, team string, won bool) error {
	if hs.client == nil {
		return nil
	}

	key := playerKeyPrefix + playerID

	pipe := hs.client.Pipeline()
	pipe.HSet(ctx, key, "name", playerName)
	pipe.HIncrBy(ctx, key, "games_played", 1)
	if won {
		pipe.HIncrBy(ctx, key, "games_won", 1)
		pipe.HIncrBy(ctx, key, "win_streak", 1)
		pipe.ZIncrBy(ctx, leaderboardKey, 1, playerName)
	} else {
		pipe.HSet(ctx, key, "win_streak", 0)
	}
	switch team {
	case "werewolves":
		pipe.HIncrBy(ctx, key, "werewolf_games", 1)
	default:
		pipe.HIncrBy(ctx, key, "village_games", 1)
	}
	pipe.Expire(ctx, key, statsExpiration)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("写入玩家 %s 战绩失败: %w", playerID, err)
	}
	return nil
}

// GetPlayerStats 读取玩家累计战绩，不存在返回 nil
func (hs *HistoryStore) GetPlayerStats(ctx context.Context, playerID string) (*PlayerStats, error) {
	if hs.client == nil {
		return nil, nil
	}

	key := playerKeyPrefix + playerID
	data, err := hs.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	stats := &PlayerStats{Name: data["name"]}
	for field, dst := range map[string]*int64{
		"games_played":   &stats.GamesPlayed,
		"games_won":      &stats.GamesWon,
		"werewolf_games": &stats.WerewolfGames,
		"village_games":  &stats.VillageGames,
		"win_streak":     &stats.WinStreak,
	} {
		if raw, ok := data[field]; ok {
			*dst, _ = strconv.ParseInt(raw, 10, 64)
		}
	}
	return stats, nil
}

// GetTopWinners 读取胜场排行榜前 n 名
func (hs *HistoryStore) GetTopWinners(ctx context.Context, n int64) ([]LeaderboardEntry, error) {
	if hs.client == nil {
		return nil, nil
	}

	results, err := hs.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for _, z := range results {
		name, _ := z.Member.(string)
		entries = append(entries, LeaderboardEntry{
			PlayerName: name,
			Wins:       int64(z.Score),
		})
	}
	return entries, nil
}
