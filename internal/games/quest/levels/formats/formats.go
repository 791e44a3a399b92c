// Package formats provides campaign file parsers. Every format decodes into
// the same File structure so the loader does not care which one was used.
package formats

import (
	"fmt"

	"github.com/vovakirdan/petroglyphs/internal/games/quest/sim"
)

// File is the on-disk structure of a campaign.
type File struct {
	ID     string      `yaml:"id" toml:"id"`
	Name   string      `yaml:"name" toml:"name"`
	Levels []FileLevel `yaml:"levels" toml:"levels"`
}

// FileLevel is one level entry of a campaign file.
type FileLevel struct {
	ID        string      `yaml:"id" toml:"id"`
	Name      string      `yaml:"name" toml:"name"`
	Platforms []FileRect  `yaml:"platforms" toml:"platforms"`
	Fragments []FilePoint `yaml:"fragments" toml:"fragments"`
	Lore      FileLore    `yaml:"lore" toml:"lore"`
}

// FileRect is a platform rectangle in playfield units.
type FileRect struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
	W float64 `yaml:"w" toml:"w"`
	H float64 `yaml:"h" toml:"h"`
}

// FilePoint is a fragment's top-left corner.
type FilePoint struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
}

// FileLore is the museum entry unlocked by completing a level.
type FileLore struct {
	Title       string `yaml:"title" toml:"title"`
	Image       string `yaml:"image" toml:"image"`
	Description string `yaml:"description" toml:"description"`
}

// Campaign is a parsed campaign ready for use.
type Campaign struct {
	ID     string
	Name   string
	Levels []Level
}

// Level is a parsed level.
type Level struct {
	ID        string
	Name      string
	Platforms []sim.Platform
	Fragments []sim.Vec
	Lore      Lore
}

// Lore is a parsed museum entry.
type Lore struct {
	Title       string
	Image       string
	Description string
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".toml"}
}

func (f File) toCampaign() (Campaign, error) {
	if f.ID == "" {
		return Campaign{}, fmt.Errorf("campaign id is required")
	}

	c := Campaign{
		ID:     f.ID,
		Name:   f.Name,
		Levels: make([]Level, 0, len(f.Levels)),
	}
	if c.Name == "" {
		c.Name = f.ID
	}

	for i, fl := range f.Levels {
		lvl := Level{
			ID:        fl.ID,
			Name:      fl.Name,
			Platforms: make([]sim.Platform, len(fl.Platforms)),
			Fragments: make([]sim.Vec, len(fl.Fragments)),
			Lore:      Lore(fl.Lore),
		}
		if lvl.ID == "" {
			lvl.ID = fmt.Sprintf("level-%d", i+1)
		}
		if lvl.Name == "" {
			lvl.Name = lvl.ID
		}
		for j, r := range fl.Platforms {
			lvl.Platforms[j] = sim.NewPlatform(r.X, r.Y, r.W, r.H)
		}
		for j, p := range fl.Fragments {
			lvl.Fragments[j] = sim.Vec{X: p.X, Y: p.Y}
		}
		c.Levels = append(c.Levels, lvl)
	}

	return c, nil
}
