package config

import (
	_ "embed"
)

//go:embed defaults/quest.yaml
var defaultQuestYAML []byte

// DefaultQuestConfig returns the default platformer configuration.
func DefaultQuestConfig() QuestConfig {
	return QuestConfig{
		Physics: QuestPhysics{
			Gravity:      0.5,
			JumpStrength: -12,
			Speed:        5,
		},
		Playfield: QuestPlayfield{
			Width:  800,
			Height: 600,
		},
		Player: QuestPlayer{
			Width:        30,
			Height:       40,
			SpawnOffsetX: 20,
		},
		Fragment: QuestFragment{
			Size: 20,
		},
		Input: QuestInput{
			HoldTicks: 30,
		},
	}
}

// DefaultRuntimeEnv returns the runtime settings used when neither the
// environment nor flags set a value.
func DefaultRuntimeEnv() RuntimeEnv {
	return RuntimeEnv{
		FPS:      60,
		DBPath:   "~/.petroglyphs/museum.db",
		LogLevel: "info",
		Profile:  "local",
		SSHAddr:  ":2222",
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultQuestYAML
}
