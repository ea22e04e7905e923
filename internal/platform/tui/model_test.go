package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
	"github.com/vovakirdan/lane-dodge/internal/geo"
	"github.com/vovakirdan/lane-dodge/internal/highscore"
	"github.com/vovakirdan/lane-dodge/internal/input"
)

// fakeGame is a scripted registry.Game.
type fakeGame struct {
	steps   int
	applied []core.Action
	next    []core.StepResult
	state   core.GameState
}

func (f *fakeGame) ID() string    { return "fake" }
func (f *fakeGame) Title() string { return "Fake" }

func (f *fakeGame) Reset(core.RuntimeConfig) {
	f.steps = 0
	f.state = core.GameState{Lives: 3, Speed: f.state.Speed}
}

func (f *fakeGame) Apply(a core.Action) {
	f.applied = append(f.applied, a)
	switch a {
	case core.ActionFast:
		f.state.Speed = core.SpeedFast
	case core.ActionSlow:
		f.state.Speed = core.SpeedSlow
	case core.ActionNormal:
		f.state.Speed = core.SpeedNormal
	}
}

func (f *fakeGame) SetSpeed(mode core.SpeedMode) { f.state.Speed = mode }

func (f *fakeGame) Step() core.StepResult {
	f.steps++
	f.state.Ticks++
	if len(f.next) == 0 {
		return core.StepResult{State: f.state}
	}
	r := f.next[0]
	f.next = f.next[1:]
	f.state.Score = r.State.Score
	f.state.Lives = r.State.Lives
	f.state.GameOver = r.State.GameOver
	return core.StepResult{State: f.state, Events: r.Events}
}

func (f *fakeGame) TickInterval() time.Duration { return time.Millisecond }
func (f *fakeGame) Render(dst *core.Screen)     { dst.Clear(); dst.DrawText(0, 0, "fake") }
func (f *fakeGame) State() core.GameState       { return f.state }

type fakeHistory struct {
	runs []int
}

func (h *fakeHistory) SaveRun(variant string, score, ticks int, profile string) (string, error) {
	h.runs = append(h.runs, score)
	return "id", nil
}

func runOverResult(score int) core.StepResult {
	return core.StepResult{
		State: core.GameState{Score: score, GameOver: true},
		Events: []core.Event{
			{Kind: core.EventRunOver, Score: score},
		},
	}
}

func newTestModel(t *testing.T, game *fakeGame, svc Services) Model {
	t.Helper()
	return NewModel(game, config.DefaultDodgeConfig(), svc, core.RuntimeConfig{ScreenW: 60, ScreenH: 24, Seed: 1})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

// drainCmd runs cmd and any batched commands, collecting the messages of
// those that finish quickly. Long timers (toasts) are left out.
func drainCmd(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}

	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, drainCmd(t, c)...)
			}
			return out
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func findTick(msgs []tea.Msg) (TickMsg, bool) {
	for _, msg := range msgs {
		if tick, ok := msg.(TickMsg); ok {
			return tick, true
		}
	}
	return TickMsg{}, false
}

func TestTickSchedulesNext(t *testing.T) {
	game := &fakeGame{}
	m := newTestModel(t, game, Services{})

	m, cmd := update(t, m, TickMsg{Owner: m.id, Gen: m.gen})
	if game.steps != 1 {
		t.Fatalf("expected one step, got %d", game.steps)
	}

	tick, ok := findTick(drainCmd(t, cmd))
	if !ok || tick.Gen != m.gen {
		t.Errorf("expected next tick for generation %d, got %+v", m.gen, tick)
	}
}

func TestStaleTickIgnored(t *testing.T) {
	game := &fakeGame{}
	m := newTestModel(t, game, Services{})
	oldGen := m.gen

	m, _ = update(t, m, keyRunes("f"))
	if m.gen == oldGen {
		t.Fatal("speed change should start a new cadence")
	}

	m, cmd := update(t, m, TickMsg{Owner: m.id, Gen: oldGen})
	if game.steps != 0 || cmd != nil {
		t.Errorf("stale tick was processed: steps=%d", game.steps)
	}
	_ = m
}

func TestSpeedChangeTicksImmediately(t *testing.T) {
	game := &fakeGame{}
	m := newTestModel(t, game, Services{})

	m, cmd := update(t, m, keyRunes("s"))
	if m.State().Speed != core.SpeedSlow {
		t.Fatalf("speed = %v, expected slow", m.State().Speed)
	}

	tick, ok := findTick(drainCmd(t, cmd))
	if !ok || tick.Gen != m.gen {
		t.Fatalf("expected an immediate tick for the new cadence, got %+v", tick)
	}

	_, _ = update(t, m, tick)
	if game.steps != 1 {
		t.Errorf("expected exactly one step, got %d", game.steps)
	}
}

func TestMenuPausesAndResumes(t *testing.T) {
	game := &fakeGame{}
	m := newTestModel(t, game, Services{})
	gen := m.gen

	m, _ = update(t, m, keyRunes("m"))
	if m.menu == nil || !m.paused {
		t.Fatal("menu should open and pause the run")
	}

	m, _ = update(t, m, TickMsg{Owner: m.id, Gen: gen})
	m, _ = update(t, m, TickMsg{Owner: m.id, Gen: m.gen})
	if game.steps != 0 {
		t.Fatalf("paused run advanced %d steps", game.steps)
	}

	// Close with esc, which resumes with an immediate tick
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.menu != nil || m.paused {
		t.Fatal("menu should be closed and the run resumed")
	}
	tick, ok := findTick(drainCmd(t, cmd))
	if !ok {
		t.Fatal("resume should post a tick")
	}
	_, _ = update(t, m, tick)
	if game.steps != 1 {
		t.Errorf("expected one step after resume, got %d", game.steps)
	}
}

func TestMenuTogglesFastMode(t *testing.T) {
	game := &fakeGame{}
	m := newTestModel(t, game, Services{})

	m, _ = update(t, m, keyRunes("m"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // first entry: fast mode

	if m.State().Speed != core.SpeedFast {
		t.Errorf("speed = %v, expected fast", m.State().Speed)
	}
	if m.menu != nil || m.paused {
		t.Error("selecting an entry should close the menu")
	}
}

func TestMovesIgnoredWhilePaused(t *testing.T) {
	game := &fakeGame{}
	m := newTestModel(t, game, Services{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, keyRunes("p"))
	m, _ = update(t, m, keyRunes("d"))

	if len(game.applied) != 1 || game.applied[0] != core.ActionLeft {
		t.Errorf("applied = %v, expected only the move before the pause", game.applied)
	}
	_ = m
}

func TestRunOverRecordsScore(t *testing.T) {
	game := &fakeGame{next: []core.StepResult{runOverResult(42)}}
	history := &fakeHistory{}
	scores := highscore.New(highscore.NewMemoryBackend(nil))
	lat, lng := 32.1, 34.8
	locator, err := geo.NewStatic(lat, lng)
	if err != nil {
		t.Fatal(err)
	}

	m := newTestModel(t, game, Services{Scores: scores, History: history, Locator: locator})

	m, cmd := update(t, m, TickMsg{Owner: m.id, Gen: m.gen})
	if !m.State().GameOver {
		t.Fatal("expected game over")
	}
	if m.pending == nil {
		t.Fatal("expected a pending run")
	}

	msgs := drainCmd(t, cmd)
	if _, ok := findTick(msgs); ok {
		t.Error("no tick should be scheduled after the run ended")
	}
	for _, msg := range msgs {
		m, _ = update(t, m, msg)
	}

	if len(history.runs) != 1 || history.runs[0] != 42 {
		t.Errorf("history = %v", history.runs)
	}
	top, _ := scores.Top(10)
	if len(top) != 1 || top[0].Score != 42 {
		t.Fatalf("ranked list = %v", top)
	}
	if gotLat, gotLng, ok := top[0].Location(); !ok || gotLat != lat || gotLng != lng {
		t.Errorf("location = %v, %v, %v", gotLat, gotLng, ok)
	}
	if m.pending != nil {
		t.Error("pending run should be cleared")
	}
}

func TestFlushPendingOnExit(t *testing.T) {
	game := &fakeGame{next: []core.StepResult{runOverResult(7)}}
	scores := highscore.New(highscore.NewMemoryBackend(nil))
	m := newTestModel(t, game, Services{Scores: scores})

	m, _ = update(t, m, TickMsg{Owner: m.id, Gen: m.gen})
	m, cmd := update(t, m, keyRunes("b"))
	if !m.BackToMenu() || cmd == nil {
		t.Fatal("b after game over should leave the game")
	}

	m.flushPending()
	top, _ := scores.Top(10)
	if len(top) != 1 || top[0].Score != 7 || top[0].Lat != nil {
		t.Errorf("ranked list = %v", top)
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	game := &fakeGame{next: []core.StepResult{runOverResult(5)}}
	m := newTestModel(t, game, Services{})

	m, _ = update(t, m, keyRunes("r"))
	if game.steps != 0 {
		t.Fatal("restart should be ignored during a run")
	}

	m, _ = update(t, m, TickMsg{Owner: m.id, Gen: m.gen})
	m, cmd := update(t, m, keyRunes("r"))
	if m.State().GameOver || m.run != 1 {
		t.Errorf("restart failed: state=%+v run=%d", m.State(), m.run)
	}
	if cmd == nil {
		t.Error("restart should schedule a tick")
	}
}

func TestToggleControlNeedsFeed(t *testing.T) {
	m := newTestModel(t, &fakeGame{}, Services{})

	m, _ = update(t, m, keyRunes("c"))
	if m.control != ControlButtons {
		t.Error("sensor mode needs a tilt feed")
	}
	if m.toast == "" {
		t.Error("expected an explanation toast")
	}
}

func TestTiltSteersInSensorMode(t *testing.T) {
	game := &fakeGame{}
	feed := make(chan input.Sample)
	m := newTestModel(t, game, Services{Tilt: feed})

	base := time.Now()

	// Ignored in button mode
	m, _ = update(t, m, tiltMsg{sample: input.Sample{X: 5, At: base}, ok: true})
	if len(game.applied) != 0 {
		t.Fatalf("tilt applied in button mode: %v", game.applied)
	}

	m, _ = update(t, m, keyRunes("c"))
	if m.control != ControlSensors {
		t.Fatal("expected sensor mode")
	}

	// Baseline sample, tilted right: moves left
	m, _ = update(t, m, tiltMsg{sample: input.Sample{X: 5, Y: 0, At: base}, ok: true})
	// Tilted forward past the fast threshold
	m, cmd := update(t, m, tiltMsg{sample: input.Sample{X: 0, Y: -3, At: base.Add(200 * time.Millisecond)}, ok: true})

	if len(game.applied) != 1 || game.applied[0] != core.ActionLeft {
		t.Errorf("applied = %v, expected one left move", game.applied)
	}
	if m.State().Speed != core.SpeedFast {
		t.Errorf("speed = %v, expected fast", m.State().Speed)
	}
	if cmd == nil {
		t.Error("expected the feed to be re-armed")
	}

	// Closed feed falls back to buttons
	m, _ = update(t, m, tiltMsg{ok: false})
	if m.control != ControlButtons || !m.tiltDone {
		t.Error("closed feed should switch back to buttons")
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t, &fakeGame{}, Services{})

	m, cmd := update(t, m, keyRunes("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestViewShowsFooter(t *testing.T) {
	m := newTestModel(t, &fakeGame{}, Services{})
	view := m.View()
	if len(view) == 0 {
		t.Fatal("empty view")
	}
	if !containsPlain(view, "fake") || !containsPlain(view, "[buttons]") {
		t.Errorf("view missing game or status line:\n%s", view)
	}
}

func TestLocationFromOtherModelKeepsPending(t *testing.T) {
	game := &fakeGame{next: []core.StepResult{runOverResult(222)}}
	scores := highscore.New(highscore.NewMemoryBackend(nil))
	m := newTestModel(t, game, Services{Scores: scores})

	m, _ = update(t, m, TickMsg{Owner: m.id, Gen: m.gen})
	if m.pending == nil {
		t.Fatal("expected a pending run")
	}

	// Same run number, finished by another model
	m, _ = update(t, m, locationMsg{owner: m.id + 1000, run: m.run, score: 111, at: time.Unix(1000, 0)})
	if m.pending == nil {
		t.Fatal("pending run cleared by another model's lookup")
	}

	m.flushPending()
	top, _ := scores.Top(0)
	if len(top) != 2 || top[0].Score != 222 || top[1].Score != 111 {
		t.Errorf("ranked list = %v", top)
	}
}

func TestTicksFromOtherModelIgnored(t *testing.T) {
	game := &fakeGame{}
	m := newTestModel(t, game, Services{})
	other := newTestModel(t, &fakeGame{}, Services{})

	if other.id == m.id {
		t.Fatal("models share an identity")
	}
	_, cmd := update(t, m, TickMsg{Owner: other.id, Gen: m.gen})
	if game.steps != 0 || cmd != nil {
		t.Errorf("foreign tick was processed: steps=%d", game.steps)
	}
}

func TestRunOverWithoutScores(t *testing.T) {
	game := &fakeGame{next: []core.StepResult{runOverResult(9)}}
	m := newTestModel(t, game, Services{})

	m, cmd := update(t, m, TickMsg{Owner: m.id, Gen: m.gen})
	if !m.State().GameOver {
		t.Fatal("expected game over")
	}
	if m.pending != nil {
		t.Error("nothing to rank without a score store")
	}
	if msgs := drainCmd(t, cmd); len(msgs) != 0 {
		t.Errorf("unexpected commands: %v", msgs)
	}

	m, _ = update(t, m, keyRunes("m"))
	m.openScoreboard()
	if m.board != nil {
		t.Error("scoreboard needs a score store")
	}
}
