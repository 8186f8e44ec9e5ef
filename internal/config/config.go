package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Game   GameConfig   `yaml:"game"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host            string   `yaml:"host"`
	Port            int      `yaml:"port"`
	MaxConnections  int      `yaml:"max_connections"`
	MaxMsgPerSecond int      `yaml:"max_msg_per_second"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GameConfig 游戏配置
type GameConfig struct {
	GhostTurnMinDelay int `yaml:"ghost_turn_min_delay"` // 无人持有角色时的假回合最短延迟（秒）
	GhostTurnMaxDelay int `yaml:"ghost_turn_max_delay"` // 无人持有角色时的假回合最长延迟（秒）
	ShutdownTimeout   int `yaml:"shutdown_timeout"`     // 优雅关闭等待（秒）
}

// GhostTurnMinDelayDuration 返回假回合最短延迟时长
func (c *GameConfig) GhostTurnMinDelayDuration() time.Duration {
	return time.Duration(c.GhostTurnMinDelay) * time.Second
}

// GhostTurnMaxDelayDuration 返回假回合最长延迟时长
func (c *GameConfig) GhostTurnMaxDelayDuration() time.Duration {
	return time.Duration(c.GhostTurnMaxDelay) * time.Second
}

// ShutdownTimeoutDuration 返回优雅关闭等待时长
func (c *GameConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults 填充未设置项的默认值
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 1890
	}
	if c.Server.MaxConnections == 0 {
		c.Server.MaxConnections = 1000
	}
	if c.Server.MaxMsgPerSecond == 0 {
		c.Server.MaxMsgPerSecond = 20
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Game.GhostTurnMinDelay == 0 {
		c.Game.GhostTurnMinDelay = 3
	}
	if c.Game.GhostTurnMaxDelay == 0 {
		c.Game.GhostTurnMaxDelay = 7
	}
	if c.Game.ShutdownTimeout == 0 {
		c.Game.ShutdownTimeout = 120
	}
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
