//go:build !production

package testutil

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockRecorder 实现 session.ResultRecorder 的 mock
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordGameResult(ctx context.Context, playerID, playerName, team string, won bool) error {
	args := m.Called(ctx, playerID, playerName, team, won)
	return args.Error(0)
}

// RecordedResult 一条被捕获的战绩
type RecordedResult struct {
	PlayerID   string
	PlayerName string
	Team       string
	Won        bool
}

// CapturingRecorder 收集所有战绩写入的轻量 recorder（异步写入场景下并发安全）
type CapturingRecorder struct {
	mu      sync.Mutex
	results []RecordedResult
}

func (r *CapturingRecorder) RecordGameResult(_ context.Context, playerID, playerName, team string, won bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, RecordedResult{
		PlayerID:   playerID,
		PlayerName: playerName,
		Team:       team,
		Won:        won,
	})
	return nil
}

// Results 返回已捕获战绩的快照
func (r *CapturingRecorder) Results() []RecordedResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedResult, len(r.results))
	copy(out, r.results)
	return out
}
