// Package audio plays synthesized sound cues for snake events.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Player turns session events into sounds. A Player that failed to open
// the audio device stays silent; the game never notices.
type Player struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	volume  float64
	enabled bool
	logger  *log.Logger
	play    func(beep.Streamer)
	mixer   *beep.Mixer
}

// NewPlayer opens the speaker when cfg.Enabled is set. Errors are logged and
// leave the player disabled.
func NewPlayer(cfg config.AudioConfig, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p := newPlayer(cfg, logger, nil)
	if !cfg.Enabled {
		return p
	}

	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		logger.Warn("audio disabled", "error", err)
		return p
	}
	speaker.Play(p.mixer)
	p.play = func(s beep.Streamer) {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	}
	p.enabled = true
	logger.Debug("audio ready", "sample_rate", int(p.rate), "volume", p.volume)
	return p
}

func newPlayer(cfg config.AudioConfig, logger *log.Logger, play func(beep.Streamer)) *Player {
	return &Player{
		rate:    beep.SampleRate(cfg.SampleRate),
		volume:  cfg.Volume,
		enabled: play != nil,
		logger:  logger,
		play:    play,
		mixer:   &beep.Mixer{},
	}
}

// Enabled reports whether sounds are being played.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// OnEvent plays the cue for e.
func (p *Player) OnEvent(e snake.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return
	}
	if s := p.soundFor(e.Kind); s != nil {
		p.play(s)
	}
}

func (p *Player) soundFor(kind snake.EventKind) beep.Streamer {
	switch kind {
	case snake.GameStarted:
		return StartSound(p.rate, p.volume)
	case snake.AppleEaten:
		return EatSound(p.rate, p.volume)
	case snake.GameLost:
		return LoseSound(p.rate, p.volume)
	case snake.GameWon:
		return WinSound(p.rate, p.volume)
	default:
		return nil
	}
}

// Close silences the player.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.enabled = false
}
