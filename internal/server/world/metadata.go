package world

import (
	"fmt"
	"strings"
)

// GameMode is the player game mode sent in JoinGame.
type GameMode uint8

const (
	Survival GameMode = iota
	Creative
	Adventure
	Spectator
)

var gameModeNames = [...]string{"survival", "creative", "adventure", "spectator"}

func (m GameMode) String() string {
	if int(m) < len(gameModeNames) {
		return gameModeNames[m]
	}
	return fmt.Sprintf("GameMode(%d)", uint8(m))
}

// Dimension identifies which dimension a world represents.
type Dimension int32

const (
	Nether    Dimension = -1
	Overworld Dimension = 0
	End       Dimension = 1
)

func (d Dimension) String() string {
	switch d {
	case Nether:
		return "nether"
	case Overworld:
		return "overworld"
	case End:
		return "end"
	}
	return fmt.Sprintf("Dimension(%d)", int32(d))
}

// HasSkyLight reports whether chunk sections in this dimension carry a sky
// light array.
func (d Dimension) HasSkyLight() bool { return d == Overworld }

type Difficulty uint8

const (
	Peaceful Difficulty = iota
	Easy
	Normal
	Hard
)

var difficultyNames = [...]string{"peaceful", "easy", "normal", "hard"}

func (d Difficulty) String() string {
	if int(d) < len(difficultyNames) {
		return difficultyNames[d]
	}
	return fmt.Sprintf("Difficulty(%d)", uint8(d))
}

// LevelType is the world generator preset advertised to clients.
type LevelType uint8

const (
	LevelDefault LevelType = iota
	LevelFlat
	LevelLargeBiomes
	LevelAmplified
	LevelDefault11
)

var levelTypeNames = [...]string{"default", "flat", "largeBiomes", "amplified", "default_1_1"}

// String returns the wire name of the level type.
func (l LevelType) String() string {
	if int(l) < len(levelTypeNames) {
		return levelTypeNames[l]
	}
	return "default"
}

// Metadata is the per-world information a client needs on join.
type Metadata struct {
	GameMode   GameMode
	Hardcore   bool
	Dimension  Dimension
	Difficulty Difficulty
	LevelType  LevelType
}

func ParseGameMode(s string) (GameMode, error) {
	for i, name := range gameModeNames {
		if strings.EqualFold(s, name) {
			return GameMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown game mode %q", s)
}

func ParseDimension(s string) (Dimension, error) {
	for _, d := range []Dimension{Nether, Overworld, End} {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown dimension %q", s)
}

func ParseDifficulty(s string) (Difficulty, error) {
	for i, name := range difficultyNames {
		if strings.EqualFold(s, name) {
			return Difficulty(i), nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

func ParseLevelType(s string) (LevelType, error) {
	for i, name := range levelTypeNames {
		if strings.EqualFold(s, name) {
			return LevelType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown level type %q", s)
}
