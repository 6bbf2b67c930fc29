package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Default()

	if cfg.Watcher.CheckIntervalSeconds != 60 {
		t.Errorf("CheckIntervalSeconds = %d, want 60", cfg.Watcher.CheckIntervalSeconds)
	}
	if cfg.Watcher.MinFreeDiskGB != 10 {
		t.Errorf("MinFreeDiskGB = %v, want 10", cfg.Watcher.MinFreeDiskGB)
	}
	if !cfg.Watcher.SaveMetadata {
		t.Error("SaveMetadata should default to true")
	}
	if !cfg.Notifications.Desktop {
		t.Error("Notifications.Desktop should default to true")
	}
	if cfg.Watchdog.RestartDelaySeconds != 10 {
		t.Errorf("RestartDelaySeconds = %d, want 10", cfg.Watchdog.RestartDelaySeconds)
	}
	if cfg.Watchdog.WatcherBinary != "streamwatch" {
		t.Errorf("WatcherBinary = %q, want streamwatch", cfg.Watchdog.WatcherBinary)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	content := `
[watcher]
channels = ["https://example.com/@First", "https://example.com/@Second"]
output_root = "/data/streams"
check_interval_seconds = 120
min_free_disk_gb = 25.5
save_metadata = false

[notifications]
desktop = false

[watchdog]
restart_delay_seconds = 30
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatal(err)
	}

	if len(cfg.Watcher.Channels) != 2 {
		t.Fatalf("got %d channels, want 2", len(cfg.Watcher.Channels))
	}
	if cfg.Watcher.OutputRoot != "/data/streams" {
		t.Errorf("OutputRoot = %q, want /data/streams", cfg.Watcher.OutputRoot)
	}
	if cfg.Watcher.CheckIntervalSeconds != 120 {
		t.Errorf("CheckIntervalSeconds = %d, want 120", cfg.Watcher.CheckIntervalSeconds)
	}
	if cfg.Watcher.MinFreeDiskGB != 25.5 {
		t.Errorf("MinFreeDiskGB = %v, want 25.5", cfg.Watcher.MinFreeDiskGB)
	}
	if cfg.Watcher.SaveMetadata {
		t.Error("SaveMetadata should be false")
	}
	if cfg.Notifications.Desktop {
		t.Error("Notifications.Desktop should be false")
	}
	if cfg.Watchdog.RestartDelay() != 30*time.Second {
		t.Errorf("RestartDelay = %v, want 30s", cfg.Watchdog.RestartDelay())
	}
}

func TestLoad_ClampsCheckInterval(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	content := `
[watcher]
check_interval_seconds = 5
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Watcher.CheckIntervalSeconds != 30 {
		t.Errorf("CheckIntervalSeconds = %d, want clamped to 30", cfg.Watcher.CheckIntervalSeconds)
	}
	if cfg.Watcher.CheckInterval() != 30*time.Second {
		t.Errorf("CheckInterval = %v, want 30s", cfg.Watcher.CheckInterval())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults, got %v", err)
	}
	if cfg.Watcher.CheckIntervalSeconds != 60 {
		t.Errorf("CheckIntervalSeconds = %d, want default 60", cfg.Watcher.CheckIntervalSeconds)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/streams", filepath.Join(home, "streams")},
		{"/absolute/path", "/absolute/path"},
		{"relative", "relative"},
	}

	for _, tt := range tests {
		got := ExpandPath(tt.input)
		if got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
