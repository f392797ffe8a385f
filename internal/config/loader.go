package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the user and local config dirs.
const FileName = "clicko.yaml"

// Load loads Clicko configuration.
// Search order: customPath -> ~/.clicko/configs/clicko.yaml -> ./configs/clicko.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it
// overrides. An explicit customPath must exist and parse; the implicit
// locations are skipped when missing or broken.
func Load(customPath string) (ClickoConfig, error) {
	cfg, _, err := LoadWithSource(customPath)
	return cfg, err
}

// LoadWithSource is Load that also reports where the config came from
// ("embedded" for the built-in default).
func LoadWithSource(customPath string) (ClickoConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return ClickoConfig{}, "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return ClickoConfig{}, "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, userCfgPath, nil
			}
		}
	}

	// Try local configs directory
	local := filepath.Join("configs", FileName)
	if data, err := os.ReadFile(local); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, local, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultClickoYAML)
	if err != nil {
		return DefaultClickoConfig(), "builtin", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded", nil
}

// parse decodes YAML over the defaults and validates the result.
func parse(data []byte) (ClickoConfig, error) {
	cfg := DefaultClickoConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ClickoConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return ClickoConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg ClickoConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".clicko", "configs", filename)
}
