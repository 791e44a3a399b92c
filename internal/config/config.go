// Package config provides YAML-based game configuration loading with
// environment overrides for the petroglyphs game.
package config

import (
	"fmt"

	"github.com/vovakirdan/petroglyphs/internal/games/quest/sim"
)

// EnvPrefix is prepended to every environment variable read by this package.
const EnvPrefix = "PETROGLYPHS_"

// QuestConfig contains all tuning for the platformer.
type QuestConfig struct {
	Physics   QuestPhysics   `yaml:"physics" envPrefix:"PHYSICS_"`
	Playfield QuestPlayfield `yaml:"playfield" envPrefix:"PLAYFIELD_"`
	Player    QuestPlayer    `yaml:"player" envPrefix:"PLAYER_"`
	Fragment  QuestFragment  `yaml:"fragment" envPrefix:"FRAGMENT_"`
	Input     QuestInput     `yaml:"input" envPrefix:"INPUT_"`
}

// QuestPhysics defines the kinematics parameters.
type QuestPhysics struct {
	Gravity      float64 `yaml:"gravity" env:"GRAVITY"`             // Downward acceleration per tick
	JumpStrength float64 `yaml:"jump_strength" env:"JUMP_STRENGTH"` // Vertical velocity on jump (negative = up)
	Speed        float64 `yaml:"speed" env:"SPEED"`                 // Horizontal speed per tick
}

// QuestPlayfield defines the world size in playfield units.
type QuestPlayfield struct {
	Width  float64 `yaml:"width" env:"WIDTH"`
	Height float64 `yaml:"height" env:"HEIGHT"`
}

// QuestPlayer defines the player hitbox and spawn point.
type QuestPlayer struct {
	Width        float64 `yaml:"width" env:"WIDTH"`
	Height       float64 `yaml:"height" env:"HEIGHT"`
	SpawnOffsetX float64 `yaml:"spawn_offset_x" env:"SPAWN_OFFSET_X"`
}

// QuestFragment defines the fragment size.
type QuestFragment struct {
	Size float64 `yaml:"size" env:"SIZE"`
}

// QuestInput defines how terminal key presses map to held keys.
type QuestInput struct {
	// HoldTicks keeps a key held for this many ticks after its last press.
	// Terminals send no key-up events, so auto-repeat refreshes the hold.
	HoldTicks int `yaml:"hold_ticks" env:"HOLD_TICKS"`
}

// Params converts the tuning to simulation parameters.
func (c QuestConfig) Params() sim.Params {
	return sim.Params{
		Gravity:      c.Physics.Gravity,
		JumpStrength: c.Physics.JumpStrength,
		Speed:        c.Physics.Speed,
		PlayfieldW:   c.Playfield.Width,
		PlayfieldH:   c.Playfield.Height,
		PlayerW:      c.Player.Width,
		PlayerH:      c.Player.Height,
		SpawnOffsetX: c.Player.SpawnOffsetX,
		FragmentSize: c.Fragment.Size,
	}
}

// Validate rejects tuning that cannot produce a playable game.
func (c QuestConfig) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Physics.JumpStrength >= 0 {
		return fmt.Errorf("config: jump_strength must be negative, got %g", c.Physics.JumpStrength)
	}
	if c.Physics.Speed <= 0 {
		return fmt.Errorf("config: speed must be positive, got %g", c.Physics.Speed)
	}
	if c.Input.HoldTicks <= 0 {
		return fmt.Errorf("config: hold_ticks must be positive, got %d", c.Input.HoldTicks)
	}
	return nil
}

// RuntimeEnv holds process settings that may come from the environment.
// Command-line flags take precedence over these values.
type RuntimeEnv struct {
	FPS      int    `env:"FPS"`
	DBPath   string `env:"DB"`
	LogLevel string `env:"LOG_LEVEL"`
	Profile  string `env:"PROFILE"`
	Levels   string `env:"LEVELS"`
	SSHAddr  string `env:"SSH_ADDR"`
}

// Validate checks the runtime settings.
func (r RuntimeEnv) Validate() error {
	if r.FPS <= 0 || r.FPS > 240 {
		return fmt.Errorf("config: fps must be in 1..240, got %d", r.FPS)
	}
	return nil
}
