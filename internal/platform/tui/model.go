package tui

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
	"github.com/vovakirdan/lane-dodge/internal/feedback"
	"github.com/vovakirdan/lane-dodge/internal/geo"
	"github.com/vovakirdan/lane-dodge/internal/highscore"
	"github.com/vovakirdan/lane-dodge/internal/input"
	"github.com/vovakirdan/lane-dodge/internal/registry"
)

const (
	toastDuration = 1500 * time.Millisecond
	footerHeight  = 2
)

// Messages produced by the model's commands.
type (
	tiltMsg struct {
		sample input.Sample
		ok     bool
	}
	locationMsg struct {
		owner uint64 // model that finished the run
		run   int
		score int
		at    time.Time
		lat   *float64
		lng   *float64
	}
	runSavedMsg struct {
		id  string
		err error
	}
	toastExpiredMsg struct {
		id int
	}
	scoreboardClosedMsg struct{}
)

// Model is the Bubble Tea model driving one game session.
type Model struct {
	id       uint64 // unique per process; tags ticks and finished runs
	game     registry.Game
	cfg      config.DodgeConfig
	svc      Services
	sink     feedback.Sink
	screen   *core.Screen
	runtime  core.RuntimeConfig
	keys     *KeyMapper
	frame    core.InputFrame
	state    core.GameState
	gen      uint64 // current tick cadence
	paused   bool
	menu     *GameMenu
	board    *ScoreboardModel
	control  ControlMode
	tilt     *input.TiltMapper
	tiltDone bool
	toast    string
	toastID  int
	run      int
	pending  *locationMsg // finished run whose location lookup has not returned
	embedded bool         // inside a SessionModel: "back" must not quit the program
	quitting bool
	back     bool
}

// NewModel creates a session model and starts the first run.
func NewModel(game registry.Game, cfg config.DodgeConfig, svc Services, runtime core.RuntimeConfig) Model {
	svc = svc.withDefaults()

	sinks := feedback.Multi{svc.Sink}
	if svc.Bell != nil {
		sinks = append(sinks, bellSink{w: svc.Bell})
	}

	game.Reset(runtime)

	return Model{
		id:      nextModelID(),
		game:    game,
		cfg:     cfg,
		svc:     svc,
		sink:    sinks,
		screen:  core.NewScreen(runtime.ScreenW, max(runtime.ScreenH-footerHeight, 1)),
		runtime: runtime,
		keys:    NewKeyMapper(),
		frame:   core.NewInputFrame(),
		state:   game.State(),
		gen:     1,
		tilt:    input.NewTiltMapper(cfg.Tilt),
	}
}

// Init starts the tick cadence and the tilt feed.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.game.TickInterval(), m.id, m.gen),
		listenTilt(m.svc.Tilt),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-footerHeight, 1))
		if m.board != nil {
			return m.updateScoreboard(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if m.board != nil {
			return m.updateScoreboard(msg)
		}
		if m.menu != nil {
			cmd := m.handleMenuKey(msg)
			return m, cmd
		}
		cmd := m.handleKey(msg)
		return m, cmd

	case TickMsg:
		cmd := m.handleTick(msg)
		return m, cmd

	case tiltMsg:
		cmd := m.handleTilt(msg)
		return m, cmd

	case locationMsg:
		cmd := m.handleLocation(msg)
		return m, cmd

	case runSavedMsg:
		if msg.err != nil {
			m.svc.Logger.Warn("could not save run history", "err", msg.err)
		} else {
			m.svc.Logger.Debug("run saved", "id", msg.id)
		}
		return m, nil

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil

	case scoreboardClosedMsg:
		m.board = nil
		return m, nil
	}

	if m.board != nil {
		return m.updateScoreboard(msg)
	}
	return m, nil
}

// handleKey maps a key to actions and applies them right away.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.keys.MapKeyToFrame(msg, &m.frame) {
		m.quitting = true
		return tea.Quit
	}
	return m.applyFrame()
}

// frameOrder is the order actions collected in one frame are applied in.
var frameOrder = []core.Action{
	core.ActionLeft,
	core.ActionRight,
	core.ActionFast,
	core.ActionSlow,
	core.ActionNormal,
	core.ActionToggleControl,
	core.ActionMenu,
	core.ActionPause,
	core.ActionRestart,
	core.ActionBack,
}

func (m *Model) applyFrame() tea.Cmd {
	var cmds []tea.Cmd
	for _, a := range frameOrder {
		if m.frame.Has(a) {
			cmds = append(cmds, m.apply(a))
		}
	}
	m.frame.Clear()
	return tea.Batch(cmds...)
}

// apply executes one action between ticks.
func (m *Model) apply(a core.Action) tea.Cmd {
	switch a {
	case core.ActionLeft, core.ActionRight:
		if m.state.GameOver || m.paused || m.control == ControlSensors {
			return nil
		}
		m.game.Apply(a)
		return nil

	case core.ActionFast, core.ActionSlow, core.ActionNormal:
		if m.state.GameOver {
			return nil
		}
		m.game.Apply(a)
		m.state = m.game.State()
		return m.restartCadence()

	case core.ActionToggleControl:
		return m.toggleControl()

	case core.ActionMenu:
		if m.state.GameOver {
			return nil
		}
		m.menu = &GameMenu{}
		m.pause()
		return nil

	case core.ActionPause:
		if m.state.GameOver {
			return nil
		}
		if m.paused {
			return m.resume()
		}
		m.pause()
		return nil

	case core.ActionRestart:
		if !m.state.GameOver {
			return nil
		}
		return m.restart()

	case core.ActionBack:
		if !m.state.GameOver && !m.paused {
			return nil
		}
		m.back = true
		if m.embedded {
			return nil
		}
		return tea.Quit
	}
	return nil
}

// handleMenuKey drives the in-game menu.
func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return tea.Quit

	case MenuActionUp:
		m.menu.up()

	case MenuActionDown:
		m.menu.down()

	case MenuActionBack:
		m.menu = nil
		return m.resume()

	case MenuActionScoreboard:
		m.openScoreboard()

	case MenuActionSelect:
		switch m.menu.selected() {
		case itemFast:
			m.game.Apply(core.ActionFast)
		case itemSlow:
			m.game.Apply(core.ActionSlow)
		case itemControl:
			m.menu = nil
			cmd := m.toggleControl()
			return tea.Batch(cmd, m.resume())
		case itemScores:
			m.openScoreboard()
			return nil
		case itemResume:
		}
		m.state = m.game.State()
		m.menu = nil
		return m.resume()
	}
	return nil
}

func (m *Model) openScoreboard() {
	if m.svc.Scores == nil {
		return
	}
	sb := NewScoreboardModel(m.svc.Scores, m.runtime.ScreenW, m.runtime.ScreenH)
	sb.embedded = true
	m.board = &sb
}

func (m Model) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.board = &sb
		if sb.IsQuitting() {
			m.quitting = true
		}
	}
	return m, cmd
}

// handleTick runs one simulation step and schedules the next one.
func (m *Model) handleTick(msg TickMsg) tea.Cmd {
	if msg.Owner != m.id || msg.Gen != m.gen || m.paused || m.state.GameOver {
		return nil
	}

	res := m.game.Step()
	m.state = res.State

	var cmds []tea.Cmd
	for _, ev := range res.Events {
		m.sink.Notify(ev)
		switch ev.Kind {
		case core.EventCoinCollected, core.EventCrash:
			cmds = append(cmds, m.setToast(feedback.Message(ev, m.cfg.Rules.CoinValue)))
		case core.EventRunOver:
			cmds = append(cmds, m.finishRun(ev.Score))
		}
	}

	if !m.state.GameOver {
		cmds = append(cmds, tickCmd(m.game.TickInterval(), m.id, m.gen))
	}
	return tea.Batch(cmds...)
}

// finishRun records the final score. History is written in the
// background; the ranked list is updated from Update once the location
// lookup returns, so there is only ever one writer.
func (m *Model) finishRun(score int) tea.Cmd {
	at := time.Now()
	run := m.run
	ticks := int(m.state.Ticks)

	var cmds []tea.Cmd
	if h := m.svc.History; h != nil {
		variant, profile := m.game.ID(), profileName(m.game)
		cmds = append(cmds, func() tea.Msg {
			id, err := h.SaveRun(variant, score, ticks, profile)
			return runSavedMsg{id: id, err: err}
		})
	}

	if m.svc.Scores != nil {
		m.pending = &locationMsg{owner: m.id, run: run, score: score, at: at}
		cmds = append(cmds, locateCmd(m.svc, *m.pending))
	}

	return tea.Batch(cmds...)
}

// locateCmd resolves the location for a finished run off the update loop.
func locateCmd(svc Services, run locationMsg) tea.Cmd {
	return func() tea.Msg {
		return locate(svc, run)
	}
}

func locate(svc Services, run locationMsg) locationMsg {
	ctx, cancel := context.WithTimeout(context.Background(), svc.LocateTimeout)
	defer cancel()
	run.lat, run.lng = geo.Coordinates(ctx, svc.Locator)
	return run
}

// recordRun inserts a finished run into the ranked list.
func recordRun(svc Services, msg locationMsg) bool {
	if svc.Scores == nil {
		return false
	}
	changed, err := svc.Scores.Insert(highscore.NewRecord(msg.score, msg.lat, msg.lng, msg.at))
	if err != nil {
		svc.Logger.Error("could not update high scores", "err", err)
		return false
	}
	svc.Logger.Debug("run recorded", "score", msg.score, "ranked", changed)
	return changed
}

func (m *Model) handleLocation(msg locationMsg) tea.Cmd {
	current := m.pending != nil && msg.owner == m.id && m.pending.run == msg.run
	if current {
		m.pending = nil
	}
	if recordRun(m.svc, msg) && current {
		return m.setToast("New high score!")
	}
	return nil
}

// flushPending records a run whose lookup was still in flight when the
// session ended. It blocks for at most the locate timeout.
func (m *Model) flushPending() {
	if m.pending == nil {
		return
	}
	recordRun(m.svc, locate(m.svc, *m.pending))
	m.pending = nil
}

// handleTilt applies a sensor sample in sensor mode and waits for the next.
func (m *Model) handleTilt(msg tiltMsg) tea.Cmd {
	if !msg.ok {
		m.tiltDone = true
		if m.control == ControlSensors {
			m.control = ControlButtons
			return m.setToast("Tilt feed ended, back to buttons")
		}
		return nil
	}

	next := listenTilt(m.svc.Tilt)
	if m.control != ControlSensors || m.paused || m.state.GameOver {
		return next
	}

	d := m.tilt.Map(msg.sample)
	switch {
	case d.Move < 0:
		m.game.Apply(core.ActionLeft)
	case d.Move > 0:
		m.game.Apply(core.ActionRight)
	}
	if d.SpeedChanged {
		m.game.SetSpeed(d.Speed)
		m.state = m.game.State()
		return tea.Batch(next, m.restartCadence())
	}
	return next
}

func (m *Model) toggleControl() tea.Cmd {
	if m.control == ControlSensors {
		m.control = ControlButtons
		return m.setToast("Controls: buttons")
	}
	if m.svc.Tilt == nil || m.tiltDone {
		return m.setToast("No tilt feed (start with --tilt)")
	}

	m.control = ControlSensors
	m.tilt.Reset()
	if !m.state.GameOver {
		m.game.SetSpeed(core.SpeedNormal)
		m.state = m.game.State()
	}
	return tea.Batch(m.setToast("Controls: sensors"), m.restartCadence())
}

// pause stops the cadence; any tick already scheduled becomes stale.
func (m *Model) pause() {
	m.paused = true
	m.gen++
}

// resume posts a tick right away, then the regular cadence follows.
func (m *Model) resume() tea.Cmd {
	m.paused = false
	m.gen++
	if m.state.GameOver {
		return nil
	}
	return tickNow(m.id, m.gen)
}

// restartCadence applies a speed change without waiting out the old
// interval.
func (m *Model) restartCadence() tea.Cmd {
	if m.paused || m.state.GameOver {
		return nil
	}
	m.gen++
	return tickNow(m.id, m.gen)
}

func (m *Model) restart() tea.Cmd {
	m.run++
	m.runtime.Seed = time.Now().UnixNano()
	m.game.Reset(m.runtime)
	m.state = m.game.State()
	m.paused = false
	m.gen++
	return tickCmd(m.game.TickInterval(), m.id, m.gen)
}

func (m *Model) setToast(text string) tea.Cmd {
	m.toast = text
	m.toastID++
	id := m.toastID
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}

	m.game.Render(m.screen)
	if m.menu != nil {
		m.menu.render(m.screen, m.state.Speed, m.control)
	} else if m.paused && !m.state.GameOver {
		m.screen.DrawTextCentered(m.screen.Height()/2, " PAUSED ")
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(toastStyle.Render(centerText(m.toast, m.runtime.ScreenW)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(centerText(m.statusLine(), m.runtime.ScreenW)))
	return b.String()
}

var (
	toastStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m Model) statusLine() string {
	if m.control == ControlSensors {
		return fmt.Sprintf("[%s] tilt to steer  m menu  c buttons  q quit", m.control)
	}
	return fmt.Sprintf("[%s] ←/→ move  f fast  s slow  n normal  m menu  q quit", m.control)
}

// State returns the latest game state.
func (m Model) State() core.GameState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.back
}

var modelSeq atomic.Uint64

func nextModelID() uint64 {
	return modelSeq.Add(1)
}

func listenTilt(ch <-chan input.Sample) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-ch
		return tiltMsg{sample: s, ok: ok}
	}
}

func profileName(g registry.Game) string {
	if p, ok := g.(interface{ ProfileName() string }); ok {
		return p.ProfileName()
	}
	return ""
}

// RunResult reports how a standalone session ended.
type RunResult struct {
	Back       bool
	FinalScore int
}

// Run starts a Bubble Tea program for one game and blocks until it exits.
func Run(game registry.Game, cfg config.DodgeConfig, svc Services, runtime core.RuntimeConfig, opts ...tea.ProgramOption) (RunResult, error) {
	model := NewModel(game, cfg, svc, runtime)

	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(model, opts...)

	final, err := p.Run()
	if err != nil {
		return RunResult{}, err
	}

	m, ok := final.(Model)
	if !ok {
		return RunResult{}, nil
	}
	m.flushPending()
	return RunResult{Back: m.BackToMenu(), FinalScore: m.state.Score}, nil
}
