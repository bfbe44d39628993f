package config

import (
	"math"
	"time"
)

// FPS returns the tick rate for the given score.
// The rate stays at BaseFPS until score*PointsFactor exceeds 1, then grows
// linearly with the score up to MaxFPS.
func (s SpeedConfig) FPS(score int) float64 {
	multiplier := math.Max(1, float64(score)*s.PointsFactor)
	fps := s.BaseFPS * multiplier
	if s.MaxFPS > 0 {
		fps = math.Min(fps, s.MaxFPS)
	}
	if fps <= 0 {
		fps = 1
	}
	return fps
}

// Interval returns the delay between two ticks for the given score.
// It never increases as the score grows.
func (s SpeedConfig) Interval(score int) time.Duration {
	return time.Duration(float64(time.Second) / s.FPS(score))
}
