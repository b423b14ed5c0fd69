package config

import (
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// userConfigRelPath is the config location relative to the XDG config dirs.
const userConfigRelPath = "onedrop/onedrop.yaml"

// localConfigPath is checked relative to the working directory.
const localConfigPath = "configs/onedrop.yaml"

// Load loads the game configuration.
// Search order: customPath -> $XDG_CONFIG_HOME/onedrop/onedrop.yaml ->
// ./configs/onedrop.yaml -> embedded default.
//
// Files are decoded on top of the defaults, so a partial file only overrides
// the keys it names. A custom path that cannot be read or parsed is an error;
// broken files in the fallback locations are skipped.
func Load(customPath string) (OneDropConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return OneDropConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return OneDropConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	if userCfgPath, err := xdg.SearchConfigFile(userConfigRelPath); err == nil {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decode(data); err == nil && cfg.Validate() == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(localConfigPath); err == nil {
		if cfg, err := decode(data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	var cfg OneDropConfig
	if err := yaml.Unmarshal(defaultOneDropYAML, &cfg); err != nil {
		return DefaultOneDropConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decode parses YAML over the hardcoded defaults.
func decode(data []byte) (OneDropConfig, error) {
	cfg := DefaultOneDropConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadWithPreset loads the config and applies a difficulty preset.
// An empty preset leaves the loaded values untouched.
func LoadWithPreset(customPath string, preset DifficultyPreset) (OneDropConfig, error) {
	cfg, err := Load(customPath)
	if err != nil {
		return cfg, err
	}
	if preset != "" {
		ApplyOneDropPreset(&cfg, preset)
	}
	return cfg, nil
}
