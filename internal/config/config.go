// Package config handles compositor configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the compositor's own configuration. It does not carry
// keybindings or layout policy — those are entirely owned by the
// out-of-process config client and never touch disk here.
type Config struct {
	Socket  SocketConfig  `mapstructure:"socket"`
	Backend BackendConfig `mapstructure:"backend"`
	Gate    GateConfig    `mapstructure:"gate"`
	Tags    TagsConfig    `mapstructure:"tags"`
}

// SocketConfig controls the RPC listener the config client connects to.
type SocketConfig struct {
	Path       string `mapstructure:"path"`
	MaxClients int    `mapstructure:"max_clients"`
}

// BackendConfig selects and tunes the windowing backend.
type BackendConfig struct {
	Name            string        `mapstructure:"name"` // "winit" or "udev"
	FrameThrottle   time.Duration `mapstructure:"frame_throttle"`
	AllowRoot       bool          `mapstructure:"allow_root"`
}

// GateConfig holds settings for the unmapped-window gate. The gate has
// no timeout by contract. WarnOnLateRules is loaded from the config file,
// but nothing reads it: a commit that arrives before every rule
// subscriber finished is always logged as a warning.
type GateConfig struct {
	WarnOnLateRules bool `mapstructure:"warn_on_late_rules"`
}

// TagsConfig seeds the tag set created on a newly connected output before
// the config client has had a chance to run its own startup commands.
type TagsConfig struct {
	DefaultNames []string `mapstructure:"default_names"`
}

var (
	// DefaultConfig provides sensible defaults.
	DefaultConfig = Config{
		Socket: SocketConfig{
			Path:       defaultSocketPath(),
			MaxClients: 8,
		},
		Backend: BackendConfig{
			Name:          "winit",
			FrameThrottle: 16 * time.Millisecond,
			AllowRoot:     false,
		},
		Gate: GateConfig{
			WarnOnLateRules: true,
		},
		Tags: TagsConfig{
			DefaultNames: []string{"1", "2", "3", "4", "5"},
		},
	}

	cfg *Config
)

// Init loads configuration from configDir (or the default XDG location)
// layered over DefaultConfig.
func Init(configDir string) error {
	viper.SetConfigName("pinnacle")
	viper.SetConfigType("toml")

	if configDir != "" {
		viper.AddConfigPath(configDir)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		viper.AddConfigPath(filepath.Join(xdg, "pinnacle"))
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "pinnacle"))
	}
	viper.AddConfigPath(".")

	viper.SetDefault("socket", DefaultConfig.Socket)
	viper.SetDefault("backend", DefaultConfig.Backend)
	viper.SetDefault("gate", DefaultConfig.Gate)
	viper.SetDefault("tags", DefaultConfig.Tags)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	return nil
}

// Get returns the active configuration, defaulting if Init was never called
// (e.g. unit tests exercising a package in isolation).
func Get() *Config {
	if cfg == nil {
		d := DefaultConfig
		return &d
	}
	return cfg
}

// Save persists the active configuration to GetConfigPath().
func Save() error {
	configPath := GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// GetConfigPath returns the path the active config file was read from.
// When no file was read it returns $HOME/.config/pinnacle/pinnacle.toml,
// regardless of --config-dir or XDG_CONFIG_HOME.
func GetConfigPath() string {
	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}
	return defaultSocketConfigPath()
}

func defaultSocketPath() string {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return filepath.Join(runtimeDir, "pinnacle.sock")
	}
	return filepath.Join(os.TempDir(), "pinnacle.sock")
}

func defaultSocketConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "pinnacle.toml")
	}
	return filepath.Join(home, ".config", "pinnacle", "pinnacle.toml")
}
