package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave selects an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

// oscillator produces a fixed-length periodic wave.
type oscillator struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     Wave
	rate     beep.SampleRate
}

// NewOscillator creates a stream of the given wave lasting duration.
func NewOscillator(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:   freq,
		length: rate.N(duration),
		wave:   wave,
		rate:   rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSquare:
			val = 1.0
			if o.phase >= 0.5 {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		default:
			val = math.Sin(2 * math.Pi * o.phase)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s, which is expected to last duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.total - e.release
	for i := range n {
		vol := 1.0
		switch {
		case e.position < e.attack:
			vol = float64(e.position) / float64(e.attack)
		case e.release > 0 && e.position >= releaseStart:
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales s linearly by vol; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is one shaped tone.
func note(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(freq, d, wave, rate)
	return NewEnvelope(osc, d, 5*time.Millisecond, d/2, rate)
}

// StartSound is a rising two-note cue (E5, A5).
func StartSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return withVolume(beep.Seq(
		note(659.25, 90*time.Millisecond, WaveSquare, rate),
		note(880.00, 140*time.Millisecond, WaveSquare, rate),
	), vol)
}

// EatSound is a short high blip.
func EatSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return withVolume(note(1046.50, 60*time.Millisecond, WaveSine, rate), vol)
}

// LoseSound is a falling saw buzz.
func LoseSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return withVolume(beep.Seq(
		note(220, 120*time.Millisecond, WaveSaw, rate),
		note(146.83, 120*time.Millisecond, WaveSaw, rate),
		note(98, 220*time.Millisecond, WaveSaw, rate),
	), vol)
}

// WinSound is a major chord (C5, E5, G5).
func WinSound(rate beep.SampleRate, vol float64) beep.Streamer {
	d := 600 * time.Millisecond
	return withVolume(beep.Mix(
		withVolume(note(523.25, d, WaveSine, rate), 0.4),
		withVolume(note(659.25, d, WaveSine, rate), 0.3),
		withVolume(note(783.99, d, WaveSine, rate), 0.3),
	), vol)
}
