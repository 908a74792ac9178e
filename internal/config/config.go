// Package config loads bot configuration from an optional YAML file with
// environment variable overrides.
//
// Every setting has an environment variable, because inside the container
// the environment is the only configuration surface the orchestrator
// controls. The YAML file exists for local development, where exporting
// eight variables per shell is tedious. Environment always wins.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Rate-JP/metal-rookie-bot/internal/model"
)

// Defaults applied when neither the environment nor the config file
// provides a value.
const (
	DefaultPrefix      = "!"
	DefaultPort        = 8080
	DefaultMessageMain = "🪙 メタルーキーの時間です！"
	DefaultDBPath      = "data.db"
	DefaultMapPath     = "dqx_map_data.jsonc"
)

// Config holds every runtime setting of the bot process.
type Config struct {
	// Token is the Discord bot token. Required by `run`.
	Token string `yaml:"token"`

	// ChannelID is the announcement channel. Required by `run`.
	ChannelID string `yaml:"channel_id"`

	// RouteChannelID is the channel for the route-help startup message.
	// Falls back to ChannelID when empty.
	RouteChannelID string `yaml:"route_channel_id"`

	// Prefix is the command prefix, "!" by default.
	Prefix string `yaml:"prefix"`

	// Port is the health listener / probe port.
	Port int `yaml:"port"`

	// EntryPoint is the executable the `launch` command starts. Empty
	// means the built-in bot (`run` on the current binary).
	EntryPoint string `yaml:"entry_point"`

	// MessageMain is the text of the main notification.
	MessageMain string `yaml:"message_main"`

	// DBPath is the sqlite settings database location.
	DBPath string `yaml:"db_path"`

	// MapPath is the route map data file location.
	MapPath string `yaml:"map_path"`
}

// Load builds a Config from the optional YAML file at path (empty path
// skips the file), then applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitConfigError,
				fmt.Sprintf("failed to read config file %q", path), err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, model.WrapCLIError(model.ExitConfigError,
				fmt.Sprintf("failed to parse config file %q", path), err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// FromEnv builds a Config from environment variables and defaults only.
func FromEnv() *Config {
	cfg := &Config{}
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyEnv() {
	setString(&c.Token, "DISCORD_TOKEN")
	setString(&c.ChannelID, "CHANNEL_ID")
	setString(&c.RouteChannelID, "DQX_ROUTE_CHANNEL_ID")
	setString(&c.Prefix, "PREFIX")
	setString(&c.EntryPoint, "BOT_SCRIPT")
	setString(&c.MessageMain, "MESSAGE_MAIN")
	setString(&c.DBPath, "DB_PATH")
	setString(&c.MapPath, "DQX_DB_PATH")

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 && port <= 65535 {
			c.Port = port
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.MessageMain == "" {
		c.MessageMain = DefaultMessageMain
	}
	if c.DBPath == "" {
		c.DBPath = DefaultDBPath
	}
	if c.MapPath == "" {
		c.MapPath = DefaultMapPath
	}
	if c.RouteChannelID == "" {
		c.RouteChannelID = c.ChannelID
	}
}

// ValidateForRun checks the settings the bot process cannot start without.
func (c *Config) ValidateForRun() error {
	if c.Token == "" {
		return model.NewCLIError(model.ExitConfigError,
			"DISCORD_TOKEN is not set (see .env)")
	}
	if c.ChannelID == "" {
		return model.NewCLIError(model.ExitConfigError,
			"CHANNEL_ID is not set (see .env)")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
