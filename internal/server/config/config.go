package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/obelisk-mc/obelisk/internal/server/world"
)

// Spawn is the block position new players join at.
type Spawn struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// Config holds the server configuration.
type Config struct {
	Port         int    `yaml:"port" json:"port"`
	MOTD         string `yaml:"motd" json:"motd"`
	MaxPlayers   int    `yaml:"max_players" json:"max_players"`
	ViewDistance int    `yaml:"view_distance" json:"view_distance"`

	GameMode   string `yaml:"gamemode" json:"gamemode"`
	Hardcore   bool   `yaml:"hardcore" json:"hardcore"`
	Difficulty string `yaml:"difficulty" json:"difficulty"`
	Dimension  string `yaml:"dimension" json:"dimension"`
	LevelType  string `yaml:"level_type" json:"level_type"`
	Spawn      Spawn  `yaml:"spawn" json:"spawn"`

	// PaletteFile is a PrismarineJS blocks.json; empty uses built-in state ids.
	PaletteFile string `yaml:"palette_file" json:"palette_file"`
	// MetricsAddr is the admin HTTP listen address; empty disables it.
	MetricsAddr string `yaml:"metrics_addr" json:"metrics_addr"`
	LogLevel    string `yaml:"log_level" json:"log_level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:         25565,
		MOTD:         "An Obelisk server",
		MaxPlayers:   10,
		ViewDistance: 3,
		GameMode:     "creative",
		Difficulty:   "peaceful",
		Dimension:    "overworld",
		LevelType:    "flat",
		Spawn:        Spawn{X: 0.5, Y: 5, Z: 0.5},
		LogLevel:     "info",
	}
}

// Load reads a YAML config file on top of the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["port"] {
		cfg.Port = fromFile.Port
	}
	if !explicitFlags["motd"] {
		cfg.MOTD = fromFile.MOTD
	}
	if !explicitFlags["max-players"] {
		cfg.MaxPlayers = fromFile.MaxPlayers
	}
	if !explicitFlags["view-distance"] {
		cfg.ViewDistance = fromFile.ViewDistance
	}
	if !explicitFlags["gamemode"] {
		cfg.GameMode = fromFile.GameMode
	}
	if !explicitFlags["hardcore"] {
		cfg.Hardcore = fromFile.Hardcore
	}
	if !explicitFlags["difficulty"] {
		cfg.Difficulty = fromFile.Difficulty
	}
	if !explicitFlags["dimension"] {
		cfg.Dimension = fromFile.Dimension
	}
	if !explicitFlags["level-type"] {
		cfg.LevelType = fromFile.LevelType
	}
	if !explicitFlags["palette"] {
		cfg.PaletteFile = fromFile.PaletteFile
	}
	if !explicitFlags["metrics-addr"] {
		cfg.MetricsAddr = fromFile.MetricsAddr
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
	cfg.Spawn = fromFile.Spawn
}

// Validate checks ranges and enum names.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.MaxPlayers < 1 {
		errs = append(errs, fmt.Errorf("max_players must be positive, got %d", c.MaxPlayers))
	}
	if c.ViewDistance < 1 || c.ViewDistance > 32 {
		errs = append(errs, fmt.Errorf("view_distance %d out of range [1,32]", c.ViewDistance))
	}
	if c.Spawn.Y < 0 || c.Spawn.Y >= 256 {
		errs = append(errs, fmt.Errorf("spawn y %v out of range [0,256)", c.Spawn.Y))
	}
	if _, err := c.WorldMetadata(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// WorldMetadata parses the world-related settings.
func (c *Config) WorldMetadata() (world.Metadata, error) {
	gm, err := world.ParseGameMode(c.GameMode)
	if err != nil {
		return world.Metadata{}, fmt.Errorf("gamemode: %w", err)
	}
	diff, err := world.ParseDifficulty(c.Difficulty)
	if err != nil {
		return world.Metadata{}, fmt.Errorf("difficulty: %w", err)
	}
	dim, err := world.ParseDimension(c.Dimension)
	if err != nil {
		return world.Metadata{}, fmt.Errorf("dimension: %w", err)
	}
	lt, err := world.ParseLevelType(c.LevelType)
	if err != nil {
		return world.Metadata{}, fmt.Errorf("level_type: %w", err)
	}
	return world.Metadata{
		GameMode:   gm,
		Hardcore:   c.Hardcore,
		Dimension:  dim,
		Difficulty: diff,
		LevelType:  lt,
	}, nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}

// JoinMaxPlayers is MaxPlayers clamped to what JoinGame can carry.
func (c *Config) JoinMaxPlayers() uint8 {
	return uint8(min(max(c.MaxPlayers, 0), 255))
}
