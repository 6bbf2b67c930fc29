package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// minCheckInterval is the floor for the liveness poll interval. Probing
// more often than this hammers the remote side for no benefit.
const minCheckInterval = 30

// Config holds all application configuration
type Config struct {
	Watcher       WatcherConfig       `toml:"watcher"`
	Notifications NotificationsConfig `toml:"notifications"`
	Watchdog      WatchdogConfig      `toml:"watchdog"`
}

// WatcherConfig holds the per-channel watch loop settings
type WatcherConfig struct {
	Channels             []string `toml:"channels"`
	OutputRoot           string   `toml:"output_root"`
	CheckIntervalSeconds int      `toml:"check_interval_seconds"`
	MinFreeDiskGB        float64  `toml:"min_free_disk_gb"`
	SaveMetadata         bool     `toml:"save_metadata"`
	AutoUpdate           bool     `toml:"auto_update"`
	UpdateSchedule       string   `toml:"update_schedule"` // cron expression, empty disables
}

// NotificationsConfig holds notification settings
type NotificationsConfig struct {
	Desktop bool `toml:"desktop"`
}

// WatchdogConfig holds the supervisor process settings
type WatchdogConfig struct {
	RestartDelaySeconds int      `toml:"restart_delay_seconds"`
	LogPath             string   `toml:"log_path"`
	WatcherBinary       string   `toml:"watcher_binary"`
	WatcherArgs         []string `toml:"watcher_args"`
}

// CheckInterval returns the poll interval as a duration.
func (w WatcherConfig) CheckInterval() time.Duration {
	return time.Duration(w.CheckIntervalSeconds) * time.Second
}

// RestartDelay returns the supervisor restart delay as a duration.
func (w WatchdogConfig) RestartDelay() time.Duration {
	return time.Duration(w.RestartDelaySeconds) * time.Second
}

// Default returns a Config with sensible defaults
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Watcher: WatcherConfig{
			OutputRoot:           filepath.Join(home, "Videos", "streamwatch"),
			CheckIntervalSeconds: 60,
			MinFreeDiskGB:        10,
			SaveMetadata:         true,
			AutoUpdate:           true,
		},
		Notifications: NotificationsConfig{
			Desktop: true,
		},
		Watchdog: WatchdogConfig{
			RestartDelaySeconds: 10,
			LogPath:             filepath.Join(home, ".local", "state", "streamwatch", "watchdog.log"),
			WatcherBinary:       "streamwatch",
		},
	}
}

// Load reads configuration from a TOML file, falling back to defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	// Expand paths
	cfg.Watcher.OutputRoot = ExpandPath(cfg.Watcher.OutputRoot)
	cfg.Watchdog.LogPath = ExpandPath(cfg.Watchdog.LogPath)

	// Clamp rather than reject: config mistakes should not stop the watcher
	if cfg.Watcher.CheckIntervalSeconds < minCheckInterval {
		cfg.Watcher.CheckIntervalSeconds = minCheckInterval
	}

	return cfg, nil
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "streamwatch", "config.toml")
}
