// Package config loads dominion settings from a YAML file, DOMINION_*
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full set of process settings.
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Server  ServerConfig  `mapstructure:"server"`
	MCP     MCPConfig     `mapstructure:"mcp"`
	Web     WebConfig     `mapstructure:"web"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// GameConfig configures the engine for hosted games.
type GameConfig struct {
	Seed          int64    `mapstructure:"seed"`
	MaxTurns      int      `mapstructure:"max_turns"`
	NoShuffle     bool     `mapstructure:"no_shuffle"`
	Demo          bool     `mapstructure:"demo"`
	KingdomFile   string   `mapstructure:"kingdom_file"`
	KingdomPreset string   `mapstructure:"kingdom_preset"`
	PlayerNames   []string `mapstructure:"player_names"`
}

// ServerConfig is the TCP game host.
type ServerConfig struct {
	Addr string `mapstructure:"addr"` // address join/proxy dial
	Port string `mapstructure:"port"`
}

// MCPConfig is the TCP port the MCP host listens on for its human opponent.
type MCPConfig struct {
	Port string `mapstructure:"port"`
}

// WebConfig is the HTTP front door.
type WebConfig struct {
	Port string `mapstructure:"port"`
}

// LoggingConfig selects the zap logger built by NewLogger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
}

// Load reads path (if non-empty) and overlays DOMINION_* environment variables.
// Nested keys use underscores: DOMINION_SERVER_PORT sets server.port.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("DOMINION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.max_turns", 200)
	v.SetDefault("game.no_shuffle", false)
	v.SetDefault("game.demo", false)
	v.SetDefault("game.kingdom_file", "")
	v.SetDefault("game.kingdom_preset", "")
	v.SetDefault("game.player_names", []string{"P1", "P2"})

	v.SetDefault("server.addr", "localhost")
	v.SetDefault("server.port", "9999")
	v.SetDefault("mcp.port", "9998")
	v.SetDefault("web.port", "8080")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Validate rejects settings no command can run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Game.MaxTurns < 0 {
		errs = append(errs, fmt.Errorf("game.max_turns must not be negative, got %d", c.Game.MaxTurns))
	}
	if len(c.Game.PlayerNames) > 2 {
		errs = append(errs, fmt.Errorf("game.player_names takes at most 2 names, got %d", len(c.Game.PlayerNames)))
	}
	if c.Game.KingdomPreset != "" && c.Game.KingdomFile == "" {
		errs = append(errs, errors.New("game.kingdom_preset needs game.kingdom_file"))
	}
	for key, port := range map[string]string{"server.port": c.Server.Port, "mcp.port": c.MCP.Port, "web.port": c.Web.Port} {
		if port == "" {
			errs = append(errs, fmt.Errorf("%s must be set", key))
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q is not one of json, console", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// Names returns the two player names, padding missing ones with P1/P2.
func (g GameConfig) Names() [2]string {
	names := [2]string{"P1", "P2"}
	for i := 0; i < len(g.PlayerNames) && i < 2; i++ {
		if g.PlayerNames[i] != "" {
			names[i] = g.PlayerNames[i]
		}
	}
	return names
}
