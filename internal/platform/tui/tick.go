// Package tui provides the Bubble Tea driving layer for the game.
// It owns the tick cadence, maps keys and tilt samples to actions and
// hands tick events to the feedback sinks and the score store.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one simulation tick. Owner is the model that scheduled
// it and Gen its cadence; ticks from another model or an older cadence are
// dropped, so restarting the cadence never produces a double tick.
type TickMsg struct {
	Owner uint64
	Gen   uint64
	At    time.Time
}

// tickCmd schedules the next tick after interval.
func tickCmd(interval time.Duration, owner, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Owner: owner, Gen: gen, At: t}
	})
}

// tickNow posts a tick right away.
func tickNow(owner, gen uint64) tea.Cmd {
	return func() tea.Msg {
		return TickMsg{Owner: owner, Gen: gen, At: time.Now()}
	}
}
