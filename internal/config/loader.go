package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// LocalPath is the project-relative config location checked after the
// user's home directory.
const LocalPath = "configs/snake.yaml"

// LoadSnake loads the Snake configuration.
// Search order: customPath -> ~/.snake/snake.yaml -> ./configs/snake.yaml -> embedded default.
// Files only need to mention the values they change; everything else keeps
// its default.
func LoadSnake(customPath string) (SnakeConfig, error) {
	cfg, _, err := Load(customPath)
	return cfg, err
}

// Load is LoadSnake that also returns the file the config came from, or an
// empty string for the embedded default. Files on the search path that do
// not read, parse or validate are skipped.
func Load(customPath string) (SnakeConfig, string, error) {
	// An explicit path must exist and parse
	if customPath != "" {
		customPath = expandHome(customPath)
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SnakeConfig{}, "", fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data, customPath)
		if err != nil {
			return SnakeConfig{}, "", err
		}
		return cfg, customPath, nil
	}

	for _, path := range []string{userConfigPath("snake.yaml"), LocalPath} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data, path); err == nil {
			return cfg, path, nil
		}
	}

	cfg, err := Parse(defaultSnakeYAML, "embedded default")
	if err != nil {
		return DefaultSnakeConfig(), "", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "", nil
}

// Parse decodes YAML on top of the defaults and validates the result.
// name is only used in error messages.
func Parse(data []byte, name string) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SnakeConfig{}, fmt.Errorf("config: failed to parse %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return SnakeConfig{}, fmt.Errorf("config: invalid %s: %w", name, err)
	}
	return cfg, nil
}

// ResolvePath returns the file LoadSnake would load for customPath, or an
// empty string when the embedded default would be used. An explicit path is
// returned even when it fails to load.
func ResolvePath(customPath string) string {
	if customPath != "" {
		return expandHome(customPath)
	}
	_, path, _ := Load("")
	return path
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", filename)
}

// expandHome resolves a leading ~ in path. Paths it cannot expand are
// returned unchanged.
func expandHome(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}
