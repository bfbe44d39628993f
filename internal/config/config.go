// Package config provides YAML-based configuration loading for the snake
// game: board size, speed curve, scoring, colours and audio.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// SnakeConfig contains all configuration for a Snake session.
type SnakeConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	Speed   SpeedConfig   `yaml:"speed"`
	Scoring ScoringConfig `yaml:"scoring"`
	Palette PaletteConfig `yaml:"palette"`
	Audio   AudioConfig   `yaml:"audio"`
}

// GridConfig defines the board dimensions, wall border included.
type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// Interior returns the number of playable cells inside the wall border.
func (g GridConfig) Interior() int {
	if g.Rows < 3 || g.Cols < 3 {
		return 0
	}
	return (g.Rows - 2) * (g.Cols - 2)
}

// SpeedConfig defines how fast the snake moves as the score grows.
type SpeedConfig struct {
	BaseFPS      float64 `yaml:"base_fps"`
	PointsFactor float64 `yaml:"points_factor"`
	MaxFPS       float64 `yaml:"max_fps"`
}

// ScoringConfig defines score rewards.
type ScoringConfig struct {
	PointsPerApple int `yaml:"points_per_apple"`
}

// PaletteConfig defines the colour of each cell kind and the tile size used
// by pixel renderers.
type PaletteConfig struct {
	Board    core.Color `yaml:"board"`
	Wall     core.Color `yaml:"wall"`
	Apple    core.Color `yaml:"apple"`
	Head     core.Color `yaml:"head"`
	Body     core.Color `yaml:"body"`
	TileSize int        `yaml:"tile_size"`
}

// AudioConfig controls the sound cues.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"` // 0.0 - 1.0
	SampleRate int     `yaml:"sample_rate"`
}

// Validate checks that the configuration describes a playable game and
// normalises colour values. All problems are reported together.
func (c *SnakeConfig) Validate() error {
	var errs []error

	if c.Grid.Rows < 3 || c.Grid.Cols < 3 {
		errs = append(errs, fmt.Errorf("grid: %dx%d is smaller than 3x3", c.Grid.Rows, c.Grid.Cols))
	} else if c.Grid.Interior() < 2 {
		errs = append(errs, fmt.Errorf("grid: %dx%d leaves no room for an apple", c.Grid.Rows, c.Grid.Cols))
	}

	if c.Speed.BaseFPS <= 0 {
		errs = append(errs, fmt.Errorf("speed: base_fps must be positive, got %v", c.Speed.BaseFPS))
	}
	if c.Speed.PointsFactor < 0 {
		errs = append(errs, fmt.Errorf("speed: points_factor must not be negative, got %v", c.Speed.PointsFactor))
	}
	if c.Speed.MaxFPS < c.Speed.BaseFPS {
		errs = append(errs, fmt.Errorf("speed: max_fps %v is below base_fps %v", c.Speed.MaxFPS, c.Speed.BaseFPS))
	}

	if c.Scoring.PointsPerApple <= 0 {
		errs = append(errs, fmt.Errorf("scoring: points_per_apple must be positive, got %d", c.Scoring.PointsPerApple))
	}

	for _, entry := range []struct {
		name  string
		color *core.Color
	}{
		{"board", &c.Palette.Board},
		{"wall", &c.Palette.Wall},
		{"apple", &c.Palette.Apple},
		{"head", &c.Palette.Head},
		{"body", &c.Palette.Body},
	} {
		parsed, err := core.ParseColor(string(*entry.color))
		if err != nil {
			errs = append(errs, fmt.Errorf("palette: %s: %w", entry.name, err))
			continue
		}
		*entry.color = parsed
	}
	if c.Palette.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("palette: tile_size must be positive, got %d", c.Palette.TileSize))
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio: volume must be within [0, 1], got %v", c.Audio.Volume))
	}
	if c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio: sample_rate must be positive, got %d", c.Audio.SampleRate))
	}

	return errors.Join(errs...)
}
