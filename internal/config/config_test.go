package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 1890, cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 3*time.Second, cfg.Game.GhostTurnMinDelayDuration())
	assert.Equal(t, 7*time.Second, cfg.Game.GhostTurnMaxDelayDuration())
}

func TestLoad(t *testing.T) {
	t.Parallel()

	content := `
server:
  host: 127.0.0.1
  port: 9999
redis:
  addr: redis:6379
  db: 2
game:
  ghost_turn_min_delay: 1
  ghost_turn_max_delay: 2
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, time.Second, cfg.Game.GhostTurnMinDelayDuration())
	// Defaults still applied for unset fields
	assert.Equal(t, 1000, cfg.Server.MaxConnections)
	assert.Equal(t, 120, cfg.Game.ShutdownTimeout)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
