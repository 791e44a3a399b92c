// Package levels provides campaign loading for the quest game.
// This package depends on sim but sim does not depend on levels.
package levels

import (
	"fmt"

	"github.com/vovakirdan/petroglyphs/internal/games/quest/sim"
)

// Lore is the petroglyph entry shown in the museum after a level.
type Lore struct {
	Title       string
	Image       string
	Description string
}

// Level is one hand-authored layout of a campaign.
type Level struct {
	ID        string
	Name      string
	Platforms []sim.Platform
	Fragments []sim.Vec
	Lore      Lore
}

// Descriptor returns the immutable sim layout of the level. The slices
// are copied so callers cannot mutate the campaign through it.
func (l *Level) Descriptor() sim.Descriptor {
	platforms := make([]sim.Platform, len(l.Platforms))
	copy(platforms, l.Platforms)
	fragments := make([]sim.Vec, len(l.Fragments))
	copy(fragments, l.Fragments)
	return sim.Descriptor{Platforms: platforms, Fragments: fragments}
}

// Campaign is an ordered list of levels. It implements sim.LevelSource.
type Campaign struct {
	ID       string
	Name     string
	Levels   []Level
	FilePath string // Empty for built-in campaigns
}

// Count returns the number of levels.
func (c *Campaign) Count() int {
	return len(c.Levels)
}

// Descriptor returns the layout at index, or sim.ErrAllLevelsWon past the
// last level.
func (c *Campaign) Descriptor(index int) (sim.Descriptor, error) {
	if index < 0 {
		return sim.Descriptor{}, sim.ErrLevelIndex
	}
	if index >= len(c.Levels) {
		return sim.Descriptor{}, sim.ErrAllLevelsWon
	}
	return c.Levels[index].Descriptor(), nil
}

// Level returns the level at index.
func (c *Campaign) Level(index int) (Level, bool) {
	if index < 0 || index >= len(c.Levels) {
		return Level{}, false
	}
	return c.Levels[index], true
}

// Builtin reports whether the campaign was embedded in the binary.
func (c *Campaign) Builtin() bool {
	return c.FilePath == ""
}

// Validate checks every level against the sim rules.
func (c *Campaign) Validate() error {
	if len(c.Levels) == 0 {
		return fmt.Errorf("campaign %s has no levels", c.ID)
	}
	for i := range c.Levels {
		if err := c.Levels[i].Descriptor().Validate(); err != nil {
			return fmt.Errorf("level %d (%s): %w", i, c.Levels[i].ID, err)
		}
	}
	return nil
}
