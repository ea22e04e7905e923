// Package feedback fans game events out to the things that react to them:
// toasts, the terminal bell, sound and the log.
package feedback

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-dodge/internal/core"
)

// Sink receives events in the order a tick produced them.
// Notify must not block the caller for long.
type Sink interface {
	Notify(ev core.Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ev core.Event)

// Notify calls f.
func (f SinkFunc) Notify(ev core.Event) { f(ev) }

// Multi forwards every event to each sink in order. Nil sinks are skipped.
type Multi []Sink

// Notify forwards ev.
func (m Multi) Notify(ev core.Event) {
	for _, s := range m {
		if s != nil {
			s.Notify(ev)
		}
	}
}

// NotifyAll sends a batch of events to s.
func NotifyAll(s Sink, events []core.Event) {
	if s == nil {
		return
	}
	for _, ev := range events {
		s.Notify(ev)
	}
}

// LogSink writes events to a structured logger.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink creates a log sink. A nil logger uses the default logger.
func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSink{logger: logger}
}

// Notify logs ev. Crashes and run-overs are logged at info, coins at debug.
func (s *LogSink) Notify(ev core.Event) {
	switch ev.Kind {
	case core.EventCoinCollected:
		s.logger.Debug("coin collected", "score", ev.Score)
	case core.EventCrash:
		s.logger.Info("crash", "lives", ev.Lives, "score", ev.Score)
	case core.EventRunOver:
		s.logger.Info("run over", "score", ev.Score)
	default:
		s.logger.Warn("unknown event", "kind", ev.Kind)
	}
}

// Message returns the short toast text for an event.
func Message(ev core.Event, coinValue int) string {
	switch ev.Kind {
	case core.EventCoinCollected:
		return fmt.Sprintf("Collected Coin! +%d", coinValue)
	case core.EventCrash:
		return "Crash"
	case core.EventRunOver:
		return fmt.Sprintf("Game Over: %d", ev.Score)
	default:
		return ""
	}
}
