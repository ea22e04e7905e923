package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
	"github.com/vovakirdan/lane-dodge/internal/highscore"
)

func TestSessionRecordsLateLocation(t *testing.T) {
	scores := highscore.New(highscore.NewMemoryBackend(nil))
	m := NewSessionModel(config.DefaultDodgeConfig(), Services{Scores: scores}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	next, cmd := m.Update(locationMsg{score: 21, at: time.Unix(1000, 0)})
	if cmd != nil {
		t.Error("expected no command")
	}
	if _, ok := next.(SessionModel); !ok {
		t.Fatalf("Update returned %T", next)
	}

	top, err := scores.Top(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0].Score != 21 {
		t.Errorf("ranked list = %v", top)
	}
}

func TestSessionQuitFromMenu(t *testing.T) {
	m := NewSessionModel(config.DefaultDodgeConfig(), Services{}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	next, cmd := m.Update(keyRunes("q"))
	sm := next.(SessionModel)
	if !sm.quitting || cmd == nil {
		t.Error("q in the menu should end the session")
	}
	if sm.View() != "" {
		t.Error("quitting session should render nothing")
	}
}

// leaveGame pauses the running game and goes back to the menu.
func leaveGame(t *testing.T, m SessionModel) SessionModel {
	t.Helper()
	for _, key := range []string{"p", "b"} {
		next, _ := m.Update(keyRunes(key))
		m = next.(SessionModel)
	}
	if m.gameModel != nil {
		t.Fatal("expected to be back in the menu")
	}
	return m
}

func startGame(t *testing.T, m SessionModel) SessionModel {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SessionModel)
	if m.gameModel == nil {
		t.Fatal("expected a running game")
	}
	return m
}

func TestSessionDropsTicksFromPreviousGame(t *testing.T) {
	m := NewSessionModel(config.DefaultDodgeConfig(), Services{}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	m = startGame(t, m)
	first := m.gameModel.id
	m = leaveGame(t, m)
	m = startGame(t, m)

	if m.gameModel.id == first {
		t.Fatal("every game needs its own identity")
	}

	// A tick the first game scheduled before it was left
	next, cmd := m.Update(TickMsg{Owner: first, Gen: 1})
	m = next.(SessionModel)
	if m.gameModel.State().Ticks != 0 || cmd != nil {
		t.Fatalf("tick of the previous game was processed: ticks=%d", m.gameModel.State().Ticks)
	}

	next, cmd = m.Update(TickMsg{Owner: m.gameModel.id, Gen: m.gameModel.gen})
	m = next.(SessionModel)
	if m.gameModel.State().Ticks != 1 || cmd == nil {
		t.Errorf("own tick not processed: ticks=%d", m.gameModel.State().Ticks)
	}
}

func TestSessionKeepsPendingRunOfNewGame(t *testing.T) {
	scores := highscore.New(highscore.NewMemoryBackend(nil))
	m := NewSessionModel(config.DefaultDodgeConfig(), Services{Scores: scores}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	m = startGame(t, m)
	first := m.gameModel.id
	m = leaveGame(t, m)
	m = startGame(t, m)

	// The second game's run is over and its lookup has not returned yet.
	m.gameModel.pending = &locationMsg{owner: m.gameModel.id, score: 222, at: time.Unix(2000, 0)}

	next, _ := m.Update(locationMsg{owner: first, score: 111, at: time.Unix(1000, 0)})
	m = next.(SessionModel)
	if m.gameModel.pending == nil {
		t.Fatal("late lookup of the first game cleared the second game's run")
	}

	// Quitting records the run still waiting for its lookup
	next, cmd := m.Update(keyRunes("q"))
	m = next.(SessionModel)
	if !m.quitting || cmd == nil {
		t.Fatal("q should end the session")
	}

	top, err := scores.Top(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 2 || top[0].Score != 222 || top[1].Score != 111 {
		t.Errorf("ranked list = %v", top)
	}
}
