package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

const testRate = beep.SampleRate(44100)

// drain reads s to the end and returns every sample.
func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok || n == 0 {
			return out
		}
	}
}

func TestOscillatorLengthAndRange(t *testing.T) {
	for _, wave := range []Wave{WaveSine, WaveSquare, WaveSaw} {
		osc := NewOscillator(440, 100*time.Millisecond, wave, testRate)
		samples := drain(osc)

		assert.Len(t, samples, testRate.N(100*time.Millisecond))
		for i, s := range samples {
			if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
				t.Fatalf("wave %d sample %d = %v", wave, i, s)
			}
		}
		assert.NoError(t, osc.Err())
	}
}

func TestOscillatorDrainedReportsDone(t *testing.T) {
	osc := NewOscillator(440, 10*time.Millisecond, WaveSine, testRate)
	drain(osc)

	n, ok := osc.Stream(make([][2]float64, 16))
	assert.Zero(t, n)
	assert.False(t, ok)
}

func TestEnvelopeFadesInAndOut(t *testing.T) {
	d := 50 * time.Millisecond
	osc := NewOscillator(0, d, WaveSquare, testRate) // constant +1
	samples := drain(NewEnvelope(osc, d, 10*time.Millisecond, 10*time.Millisecond, testRate))
	require.Len(t, samples, testRate.N(d))

	assert.InDelta(t, 0.0, samples[0][0], 1e-9, "attack starts silent")
	assert.InDelta(t, 1.0, samples[len(samples)/2][0], 1e-9, "sustain at full level")
	assert.Less(t, samples[len(samples)-1][0], 0.01, "release ends near silence")
}

func TestCuesHaveExpectedLengths(t *testing.T) {
	tests := []struct {
		name  string
		sound beep.Streamer
		want  time.Duration
	}{
		{"start", StartSound(testRate, 1), 230 * time.Millisecond},
		{"eat", EatSound(testRate, 1), 60 * time.Millisecond},
		{"lose", LoseSound(testRate, 1), 460 * time.Millisecond},
		{"win", WinSound(testRate, 1), 600 * time.Millisecond},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := len(drain(tc.sound))
			assert.InDelta(t, testRate.N(tc.want), got, 3)
		})
	}
}

func TestSilentVolume(t *testing.T) {
	for _, s := range drain(EatSound(testRate, 0)) {
		require.Zero(t, s[0])
	}
}

func TestPlayerPlaysOneCuePerEvent(t *testing.T) {
	var played []beep.Streamer
	cfg := config.DefaultSnakeConfig().Audio
	p := newPlayer(cfg, nil, func(s beep.Streamer) { played = append(played, s) })
	require.True(t, p.Enabled())

	for _, kind := range []snake.EventKind{snake.GameStarted, snake.AppleEaten, snake.GameLost, snake.GameWon} {
		p.OnEvent(snake.Event{Kind: kind})
	}
	assert.Len(t, played, 4)

	p.OnEvent(snake.Event{Kind: snake.EventKind(99)})
	assert.Len(t, played, 4, "unknown events are silent")
}

func TestPlayerDisabledByConfig(t *testing.T) {
	cfg := config.DefaultSnakeConfig().Audio
	cfg.Enabled = false

	p := NewPlayer(cfg, nil)
	assert.False(t, p.Enabled())
	p.OnEvent(snake.Event{Kind: snake.AppleEaten})
	p.Close()
}

func TestPlayerListensToSession(t *testing.T) {
	var kinds []snake.EventKind
	cfg := config.DefaultSnakeConfig()
	p := newPlayer(cfg.Audio, nil, func(beep.Streamer) {})

	s := snake.NewSession(cfg, 1)
	s.Subscribe(p)
	s.Subscribe(snake.ListenerFunc(func(e snake.Event) { kinds = append(kinds, e.Kind) }))
	s.Start()

	assert.Equal(t, []snake.EventKind{snake.GameStarted}, kinds)
}
