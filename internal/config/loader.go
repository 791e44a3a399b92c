package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// LoadQuest loads the platformer configuration and applies environment
// overrides on top of it.
// Search order: customPath -> ~/.petroglyphs/configs/quest.yaml -> ./configs/quest.yaml -> embedded default
func LoadQuest(customPath string) (QuestConfig, error) {
	cfg, err := loadQuestFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadQuestFile(customPath string) (QuestConfig, error) {
	// Missing keys keep their defaults.
	cfg := DefaultQuestConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("quest.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultQuestConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/quest.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultQuestConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultQuestYAML, &cfg); err != nil {
		return DefaultQuestConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ApplyEnv overrides tuning fields from PETROGLYPHS_* variables, e.g.
// PETROGLYPHS_PHYSICS_GRAVITY. Unset variables leave fields untouched.
func ApplyEnv(cfg *QuestConfig) error {
	return applyEnv(cfg, nil)
}

// LoadRuntimeEnv returns DefaultRuntimeEnv overridden by the environment.
func LoadRuntimeEnv() (RuntimeEnv, error) {
	return loadRuntimeEnv(nil)
}

func loadRuntimeEnv(environ map[string]string) (RuntimeEnv, error) {
	r := DefaultRuntimeEnv()
	if err := applyEnv(&r, environ); err != nil {
		return r, err
	}
	return r, nil
}

// applyEnv parses into v. A nil environ reads the process environment.
func applyEnv(v any, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(v, opts); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	return nil
}

// HomeDir returns ~/.petroglyphs, or empty if home is unavailable.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".petroglyphs")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := HomeDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}
