package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rate-JP/metal-rookie-bot/internal/model"
)

// clearEnv blanks every variable the package reads so ambient shell
// state cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DISCORD_TOKEN", "CHANNEL_ID", "DQX_ROUTE_CHANNEL_ID", "PREFIX",
		"BOT_SCRIPT", "MESSAGE_MAIN", "DB_PATH", "DQX_DB_PATH", "PORT",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := FromEnv()
	assert.Equal(t, DefaultPrefix, cfg.Prefix)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultMessageMain, cfg.MessageMain)
	assert.Equal(t, DefaultDBPath, cfg.DBPath)
	assert.Equal(t, DefaultMapPath, cfg.MapPath)
	assert.Empty(t, cfg.Token)
	assert.Empty(t, cfg.EntryPoint)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISCORD_TOKEN", "tok")
	t.Setenv("CHANNEL_ID", "123")
	t.Setenv("PREFIX", "??")
	t.Setenv("PORT", "9090")
	t.Setenv("BOT_SCRIPT", "python3 legacy_bot.py")

	cfg := FromEnv()
	assert.Equal(t, "tok", cfg.Token)
	assert.Equal(t, "123", cfg.ChannelID)
	assert.Equal(t, "??", cfg.Prefix)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "python3 legacy_bot.py", cfg.EntryPoint)
}

// TestFromEnv_BadPortFallsBack covers non-numeric and out-of-range PORT
// values, which must yield the default instead of an error.
func TestFromEnv_BadPortFallsBack(t *testing.T) {
	for _, bad := range []string{"abc", "0", "-1", "70000"} {
		t.Run(bad, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("PORT", bad)
			assert.Equal(t, DefaultPort, FromEnv().Port)
		})
	}
}

// TestFromEnv_RouteChannelFallsBack verifies the route channel defaults
// to the announcement channel.
func TestFromEnv_RouteChannelFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHANNEL_ID", "123")

	assert.Equal(t, "123", FromEnv().RouteChannelID)

	t.Setenv("DQX_ROUTE_CHANNEL_ID", "456")
	assert.Equal(t, "456", FromEnv().RouteChannelID)
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"token: file-token\nchannel_id: \"999\"\nprefix: \"$\"\nport: 9000\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.Token)
	assert.Equal(t, "999", cfg.ChannelID)
	assert.Equal(t, "$", cfg.Prefix)
	assert.Equal(t, 9000, cfg.Port)
}

// TestLoad_EnvBeatsFile verifies precedence: the environment overrides
// the file, and file values survive where the environment is silent.
func TestLoad_EnvBeatsFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISCORD_TOKEN", "env-token")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"token: file-token\nchannel_id: \"999\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Token)
	assert.Equal(t, "999", cfg.ChannelID)
}

func TestLoad_EmptyPathSkipsFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitConfigError, cliErr.Code)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("{not yaml"), 0o644))
	_, err = Load(bad)
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitConfigError, cliErr.Code)
}

func TestValidateForRun(t *testing.T) {
	cfg := &Config{}
	var cliErr *model.CLIError
	require.ErrorAs(t, cfg.ValidateForRun(), &cliErr)
	assert.Equal(t, model.ExitConfigError, cliErr.Code)

	cfg.Token = "tok"
	require.ErrorAs(t, cfg.ValidateForRun(), &cliErr)

	cfg.ChannelID = "123"
	assert.NoError(t, cfg.ValidateForRun())
}
