// Package config provides configuration management for qf.
// It handles loading, merging, and accessing configuration from default and user config files.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

//go:embed default.toml
var defaultConfigData string

// Config is the merged qf configuration.
type Config struct {
	DefaultLauncher string             `toml:"default_launcher" json:"default_launcher"`
	Launchers       LauncherConfig     `toml:"launchers" json:"launchers"`
	Search          map[string]any     `toml:"search" json:"search"`
	Notification    NotificationConfig `toml:"notification" json:"notification"`
}

// LauncherConfig holds extra arguments for every supported launcher
type LauncherConfig struct {
	Dmenu  LauncherCommand `toml:"dmenu" json:"dmenu"`
	Rofi   LauncherCommand `toml:"rofi" json:"rofi"`
	Fzf    LauncherCommand `toml:"fzf" json:"fzf"`
	Bemenu LauncherCommand `toml:"bemenu" json:"bemenu"`
	Fuzzel LauncherCommand `toml:"fuzzel" json:"fuzzel"`
}

// LauncherCommand describes how a launcher is started
type LauncherCommand struct {
	Args []string `toml:"args" json:"args"`
}

// NotificationConfig controls desktop notifications
type NotificationConfig struct {
	Enabled        bool   `toml:"enabled" json:"enabled"`
	Tool           string `toml:"tool" json:"tool"`
	Timeout        int    `toml:"timeout" json:"timeout"`
	Urgency        string `toml:"urgency" json:"urgency"`
	ShowInTerminal bool   `toml:"show_in_terminal" json:"show_in_terminal"`
}

// NotificationConfigFile is read from TOML (pointers for optional fields)
type NotificationConfigFile struct {
	Enabled        *bool   `toml:"enabled"`
	Tool           *string `toml:"tool"`
	Timeout        *int    `toml:"timeout"`
	Urgency        *string `toml:"urgency"`
	ShowInTerminal *bool   `toml:"show_in_terminal"`
}

// ConfigFile is the shape of a user or system config file
type ConfigFile struct {
	DefaultLauncher *string                `toml:"default_launcher"`
	Launchers       LauncherConfig         `toml:"launchers"`
	Search          map[string]any         `toml:"search"`
	Notification    NotificationConfigFile `toml:"notification"`
}

// GetUserConfigPath returns the user config path
func GetUserConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "qf", "config.toml")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "qf", "config.toml")
}

// GetSystemConfigPath returns the system-wide config path
func GetSystemConfigPath() string {
	return "/etc/qf/config.toml"
}

// Load merges the defaults with the first config file found.
// An explicit path must exist; otherwise the user config is tried, then the system one.
func Load(path string) (*Config, error) {
	defaultCfg, err := loadDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	if path != "" {
		fileCfg, err := loadConfigFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		return mergedOrDefaults(defaultCfg, fileCfg, path)
	}

	for _, candidate := range []string{GetUserConfigPath(), GetSystemConfigPath()} {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		fileCfg, err := loadConfigFromFile(candidate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load config %s: %v\n", candidate, err)
			fmt.Fprintf(os.Stderr, "Using default configuration\n")
			return validated(defaultCfg)
		}
		return mergedOrDefaults(defaultCfg, fileCfg, candidate)
	}

	return validated(defaultCfg)
}

// mergedOrDefaults merges fileCfg over the defaults; a result that fails the
// schema is dropped with a warning and the defaults are used instead
func mergedOrDefaults(defaultCfg *Config, fileCfg *ConfigFile, path string) (*Config, error) {
	merged := mergeConfigs(defaultCfg, fileCfg)
	if err := ValidateAgainstSchema(merged); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid config %s: %v\n", path, err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		return validated(defaultCfg)
	}
	return merged, nil
}

func validated(cfg *Config) (*Config, error) {
	if err := ValidateAgainstSchema(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDefaultConfig decodes the embedded default config
func loadDefaultConfig() (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(defaultConfigData, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadConfigFromFile decodes a config file
func loadConfigFromFile(path string) (*ConfigFile, error) {
	var cfg ConfigFile
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs merges a config file over the defaults (file values win)
func mergeConfigs(defaultCfg *Config, userCfg *ConfigFile) *Config {
	merged := *defaultCfg

	if userCfg.DefaultLauncher != nil && *userCfg.DefaultLauncher != "" {
		merged.DefaultLauncher = *userCfg.DefaultLauncher
	}

	mergeLauncherConfigs(&merged.Launchers, &userCfg.Launchers)

	merged.Search = make(map[string]any, len(defaultCfg.Search)+len(userCfg.Search))
	for k, v := range defaultCfg.Search {
		merged.Search[k] = v
	}
	for k, v := range userCfg.Search {
		merged.Search[k] = v
	}

	mergeNotificationConfig(&merged.Notification, &userCfg.Notification)

	return &merged
}

// mergeLauncherConfigs replaces launcher args that the user has set
func mergeLauncherConfigs(merged *LauncherConfig, user *LauncherConfig) {
	if len(user.Dmenu.Args) > 0 {
		merged.Dmenu.Args = user.Dmenu.Args
	}
	if len(user.Rofi.Args) > 0 {
		merged.Rofi.Args = user.Rofi.Args
	}
	if len(user.Fzf.Args) > 0 {
		merged.Fzf.Args = user.Fzf.Args
	}
	if len(user.Bemenu.Args) > 0 {
		merged.Bemenu.Args = user.Bemenu.Args
	}
	if len(user.Fuzzel.Args) > 0 {
		merged.Fuzzel.Args = user.Fuzzel.Args
	}
}

func mergeNotificationConfig(merged *NotificationConfig, user *NotificationConfigFile) {
	if user.Enabled != nil {
		merged.Enabled = *user.Enabled
	}
	if user.Tool != nil && *user.Tool != "" {
		merged.Tool = *user.Tool
	}
	if user.Timeout != nil {
		merged.Timeout = *user.Timeout
	}
	if user.Urgency != nil {
		merged.Urgency = *user.Urgency
	}
	if user.ShowInTerminal != nil {
		merged.ShowInTerminal = *user.ShowInTerminal
	}
}

// GetLauncherCommand returns the settings of a launcher, nil when unknown
func (c *Config) GetLauncherCommand(name string) *LauncherCommand {
	switch name {
	case "dmenu":
		return &c.Launchers.Dmenu
	case "rofi":
		return &c.Launchers.Rofi
	case "fzf":
		return &c.Launchers.Fzf
	case "bemenu":
		return &c.Launchers.Bemenu
	case "fuzzel":
		return &c.Launchers.Fuzzel
	default:
		return nil
	}
}

// GetSearchConfig returns the raw [search] table
func (c *Config) GetSearchConfig() map[string]any {
	return c.Search
}

// GetNotificationConfig returns the notification settings
func (c *Config) GetNotificationConfig() NotificationConfig {
	return c.Notification
}

// InitUserConfig writes the default config to path (the user config path when empty)
func InitUserConfig(path string) (string, error) {
	if path == "" {
		path = GetUserConfigPath()
	}

	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return path, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfigData), 0644); err != nil {
		return path, fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
