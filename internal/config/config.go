// Package config loads the server's TOML configuration file, mirroring the
// nested-struct-plus-defaults shape used for the L1J-style MMO server in the
// retrieval pack.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration document.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Network   NetworkConfig   `toml:"network"`
	Discovery DiscoveryConfig `toml:"discovery"`
	Level     LevelConfig     `toml:"level"`
	Logging   LoggingConfig   `toml:"logging"`
}

// ServerConfig names and binds the session.
type ServerConfig struct {
	Name       string `toml:"name"`
	Port       int    `toml:"port"`
	MaxPlayers int    `toml:"max_players"`
}

// NetworkConfig controls wire protocol and connection behavior.
type NetworkConfig struct {
	ProtocolRevision  uint8         `toml:"protocol_revision"`
	TickRate          float64       `toml:"tick_rate_hz"`
	InputTickRate     float64       `toml:"input_tick_rate_hz"`
	PlayerStatsRate   float64       `toml:"player_stats_rate_hz"`
	MaxPacketSize     int           `toml:"max_packet_size"`
	ConnectionTimeout time.Duration `toml:"connection_timeout"`
	ReliableRetries   int           `toml:"reliable_retries"`
	RTTSmoothing      float64       `toml:"rtt_smoothing_alpha"`
}

// DiscoveryConfig controls the LAN discovery beacon.
type DiscoveryConfig struct {
	Enabled        bool          `toml:"enabled"`
	MulticastGroup string        `toml:"multicast_group"`
	Port           int           `toml:"port"`
	Frequency      time.Duration `toml:"frequency"`
	RetryCount     int           `toml:"retry_count"`
}

// LevelConfig points at the level file loaded on session start.
type LevelConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Default returns a Config populated with the constants named in spec §6.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Name:       "arena",
			Port:       29015,
			MaxPlayers: 8,
		},
		Network: NetworkConfig{
			ProtocolRevision:  1,
			TickRate:          30,
			InputTickRate:     60,
			PlayerStatsRate:   1,
			MaxPacketSize:     512,
			ConnectionTimeout: 10 * time.Second,
			ReliableRetries:   16,
			RTTSmoothing:      0.1,
		},
		Discovery: DiscoveryConfig{
			Enabled:        true,
			MulticastGroup: "239.255.42.99",
			Port:           29016,
			Frequency:      time.Second,
			RetryCount:     5,
		},
		Level: LevelConfig{
			Path: "levels/arena.lvl",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads and decodes a TOML file at path, applying Default() first so an
// incomplete file still yields a usable configuration.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("decode config %q: %w", path, err)
	}

	return &cfg, nil
}
