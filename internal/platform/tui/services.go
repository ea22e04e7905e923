package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-dodge/internal/core"
	"github.com/vovakirdan/lane-dodge/internal/feedback"
	"github.com/vovakirdan/lane-dodge/internal/geo"
	"github.com/vovakirdan/lane-dodge/internal/highscore"
	"github.com/vovakirdan/lane-dodge/internal/input"
)

// HistoryRecorder stores every finished run.
type HistoryRecorder interface {
	SaveRun(variant string, score, ticks int, speedProfile string) (string, error)
}

// Services are the collaborators a game session is wired with.
// All of them are optional: without Scores finished runs are not ranked
// and the scoreboard entry does nothing.
type Services struct {
	Scores  *highscore.Store
	History HistoryRecorder
	Locator geo.Locator
	Sink    feedback.Sink
	// Tilt delivers sensor samples; nil disables sensor control.
	Tilt   <-chan input.Sample
	Bell   io.Writer
	Logger *log.Logger
	// LocateTimeout bounds the location lookup after a run.
	LocateTimeout time.Duration
}

const defaultLocateTimeout = 5 * time.Second

func (s Services) withDefaults() Services {
	if s.Locator == nil {
		s.Locator = geo.None{}
	}
	if s.Logger == nil {
		s.Logger = log.New(io.Discard)
	}
	if s.LocateTimeout <= 0 {
		s.LocateTimeout = defaultLocateTimeout
	}
	return s
}

// bellSink rings the terminal bell on crashes.
type bellSink struct {
	w io.Writer
}

func (b bellSink) Notify(ev core.Event) {
	if ev.Kind == core.EventCrash {
		//nolint:errcheck // Best-effort bell
		b.w.Write([]byte("\a"))
	}
}
