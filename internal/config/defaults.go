package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default Snake configuration.
// The values match defaults/snake.yaml.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Rows: 30,
			Cols: 30,
		},
		Speed: SpeedConfig{
			BaseFPS:      10,
			PointsFactor: 0.05,
			MaxFPS:       40,
		},
		Scoring: ScoringConfig{
			PointsPerApple: 10,
		},
		Palette: PaletteConfig{
			Board:    "#000000",
			Wall:     "#c8c8c8",
			Apple:    "#ff0000",
			Head:     "#800080",
			Body:     "#f17df1",
			TileSize: 20,
		},
		Audio: AudioConfig{
			Enabled:    false,
			Volume:     0.5,
			SampleRate: 44100,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
