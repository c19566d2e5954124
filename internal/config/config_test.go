package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.Game.MaxTurns)
	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Addr)
	assert.Equal(t, "9998", cfg.MCP.Port)
	assert.Equal(t, "8080", cfg.Web.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, [2]string{"P1", "P2"}, cfg.Game.Names())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dominion.yaml")
	data := `
game:
  seed: 7
  max_turns: 50
  no_shuffle: true
  player_names: [Alice]
server:
  port: "7000"
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	t.Setenv("DOMINION_WEB_PORT", "9090")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.EqualValues(t, 7, cfg.Game.Seed)
	assert.Equal(t, 50, cfg.Game.MaxTurns)
	assert.True(t, cfg.Game.NoShuffle)
	assert.Equal(t, [2]string{"Alice", "P2"}, cfg.Game.Names())
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "9090", cfg.Web.Port)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	bad := *cfg
	bad.Game.MaxTurns = -1
	bad.Game.KingdomPreset = "First Game"
	bad.Logging.Level = "loud"
	bad.Server.Port = ""

	err = bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_turns")
	assert.Contains(t, err.Error(), "kingdom_preset")
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "server.port")
}

func TestValidateLoggingFormat(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	for _, format := range []string{"json", "console"} {
		ok := *cfg
		ok.Logging.Format = format
		assert.NoError(t, ok.Validate(), format)
	}

	bad := *cfg
	bad.Logging.Format = "xml"
	err = bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.format")
	assert.Contains(t, err.Error(), `"xml"`)
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		logger, err := NewLogger(LoggingConfig{Level: "warn", Format: format})
		require.NoError(t, err, format)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	}
}
