package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/obelisk-mc/obelisk/internal/server/world"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.MaxPlayers != 10 {
		t.Errorf("MaxPlayers = %d, want 10", cfg.MaxPlayers)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("Load of missing file = %+v, want defaults", cfg)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "obelisk.yaml")
	data := `
port: 25570
motd: Hello world
gamemode: survival
hardcore: true
level_type: amplified
spawn:
  x: 8.5
  y: 70
  z: -3.5
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 25570 || cfg.MOTD != "Hello world" || !cfg.Hardcore {
		t.Errorf("Load = %+v", cfg)
	}
	if cfg.MaxPlayers != 10 {
		t.Errorf("unset max_players = %d, want default 10", cfg.MaxPlayers)
	}
	if cfg.Spawn != (Spawn{X: 8.5, Y: 70, Z: -3.5}) {
		t.Errorf("Spawn = %+v", cfg.Spawn)
	}

	meta, err := cfg.WorldMetadata()
	if err != nil {
		t.Fatalf("WorldMetadata: %v", err)
	}
	want := world.Metadata{GameMode: world.Survival, Hardcore: true, Dimension: world.Overworld, LevelType: world.LevelAmplified}
	if meta != want {
		t.Errorf("WorldMetadata = %+v, want %+v", meta, want)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("port: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted malformed YAML")
	}
}

func TestMergeExplicitFlagsWin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = 30000
	cfg.MOTD = "from flag"

	fromFile := DefaultConfig()
	fromFile.Port = 25570
	fromFile.MOTD = "from file"
	fromFile.MaxPlayers = 42

	Merge(cfg, fromFile, map[string]bool{"port": true})

	if cfg.Port != 30000 {
		t.Errorf("Port = %d, explicit flag should win", cfg.Port)
	}
	if cfg.MOTD != "from file" || cfg.MaxPlayers != 42 {
		t.Errorf("file values not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Port = 0 }},
		{"max_players", func(c *Config) { c.MaxPlayers = 0 }},
		{"view_distance", func(c *Config) { c.ViewDistance = 33 }},
		{"spawn_y", func(c *Config) { c.Spawn.Y = 300 }},
		{"gamemode", func(c *Config) { c.GameMode = "god" }},
		{"difficulty", func(c *Config) { c.Difficulty = "nightmare" }},
		{"dimension", func(c *Config) { c.Dimension = "aether" }},
		{"level_type", func(c *Config) { c.LevelType = "customized" }},
		{"log_level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted an invalid config")
			}
		})
	}
}

func TestLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "debug"
	lvl, err := cfg.Level()
	if err != nil || lvl != slog.LevelDebug {
		t.Errorf("Level = %v, %v", lvl, err)
	}
}

func TestJoinMaxPlayers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPlayers = 1000
	if got := cfg.JoinMaxPlayers(); got != 255 {
		t.Errorf("JoinMaxPlayers = %d, want 255", got)
	}
}
