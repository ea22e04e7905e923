// Package sound plays short synthesized cues for game events through the
// system speaker.
package sound

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/lane-dodge/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Player is a feedback sink that turns events into sounds.
// Until Initialize succeeds every Notify is a silent no-op, so a machine
// without audio keeps playing the game.
type Player struct {
	mu          sync.Mutex
	initialized bool
	mixer       *beep.Mixer
	crash       *beep.Ctrl
	logger      *log.Logger
	volume      float64
}

// NewPlayer creates a player at the given volume (0..1).
func NewPlayer(volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		mixer:  &beep.Mixer{},
		logger: logger,
		volume: volume,
	}
}

// Initialize opens the speaker. On failure the player stays silent and the
// error is returned for logging.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		p.logger.Warn("audio disabled", "err", err)
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Enabled reports whether the speaker is open.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Notify plays the cue for ev.
func (p *Player) Notify(ev core.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	s := Cue(ev.Kind)
	if s == nil {
		return
	}
	s = withVolume(s, p.volume)

	speaker.Lock()
	defer speaker.Unlock()

	if ev.Kind == core.EventCrash {
		// A new crash cuts off the previous one.
		if p.crash != nil {
			p.crash.Streamer = nil
		}
		p.crash = &beep.Ctrl{Streamer: s}
		p.mixer.Add(p.crash)
		return
	}
	p.mixer.Add(s)
}

// Close silences everything and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	p.crash = nil
	speaker.Unlock()

	speaker.Close()
	p.initialized = false
}

// Cue returns a fresh streamer for the event kind, or nil when the kind
// has no sound.
func Cue(kind core.EventKind) beep.Streamer {
	switch kind {
	case core.EventCoinCollected:
		return coinChime(sampleRate)
	case core.EventCrash:
		return crashBurst(sampleRate)
	case core.EventRunOver:
		return runOverTone(sampleRate)
	default:
		return nil
	}
}
