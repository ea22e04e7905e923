package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDodge loads the lane-dodge configuration.
// Search order: customPath -> ~/.dodge/configs/dodge.yaml -> ./configs/dodge.yaml -> embedded default.
// Files are decoded on top of the defaults, so partial files are fine.
func LoadDodge(customPath string) (DodgeConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultDodgeConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseDodge(data)
		if err != nil {
			return DefaultDodgeConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("dodge.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseDodge(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/dodge.yaml"); err == nil {
		if cfg, err := parseDodge(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseDodge(defaultDodgeYAML)
	if err != nil {
		return DefaultDodgeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseDodge decodes YAML over the hard-coded defaults and validates the result.
func parseDodge(data []byte) (DodgeConfig, error) {
	cfg := DefaultDodgeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dodge", "configs", filename)
}

// ApplyProfile switches the config to the named speed profile.
func ApplyProfile(cfg *DodgeConfig, name string) error {
	if name == "" {
		return nil
	}
	if _, err := cfg.Timing.Lookup(name); err != nil {
		return err
	}
	cfg.Timing.Profile = name
	return nil
}

// ApplyLocation pins a fixed geolocation onto the config.
func ApplyLocation(cfg *DodgeConfig, lat, lng float64) {
	cfg.Location.Latitude = &lat
	cfg.Location.Longitude = &lng
}
