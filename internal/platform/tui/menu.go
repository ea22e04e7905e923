package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
	"github.com/vovakirdan/lane-dodge/internal/highscore"
	"github.com/vovakirdan/lane-dodge/internal/registry"
)

// MenuItem is a selectable variant.
type MenuItem struct {
	GameID string
	Title  string
	// Cadence lists the tick interval of each speed mode, e.g.
	// "fast 150ms / normal 350ms / slow 750ms".
	Cadence string
}

// MenuModel is the variant picker shown before a run.
type MenuModel struct {
	items          []MenuItem
	best           string // best ranked score, empty when unknown
	cursor         int
	width          int
	height         int
	runtime        core.RuntimeConfig
	keys           *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel lists every registered variant. scores may be nil.
func NewMenuModel(runtime core.RuntimeConfig, game config.DodgeConfig, scores *highscore.Store) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{
			GameID:  g.ID,
			Title:   g.Title,
			Cadence: variantCadence(g.ID, game),
		})
	}

	return MenuModel{
		items:   items,
		best:    bestScore(scores),
		width:   runtime.ScreenW,
		height:  runtime.ScreenH,
		runtime: runtime,
		keys:    NewKeyMapper(),
	}
}

// variantCadence describes the tick intervals a variant runs with.
func variantCadence(id string, cfg config.DodgeConfig) string {
	g, err := registry.Create(id, cfg)
	if err != nil {
		return ""
	}

	modes := []core.SpeedMode{core.SpeedFast, core.SpeedNormal, core.SpeedSlow}
	parts := make([]string, 0, len(modes))
	for _, mode := range modes {
		g.SetSpeed(mode)
		parts = append(parts, fmt.Sprintf("%s %dms", mode, g.TickInterval().Milliseconds()))
	}
	return strings.Join(parts, " / ")
}

func bestScore(scores *highscore.Store) string {
	if scores == nil || !scores.Initialized() {
		return ""
	}
	top, err := scores.Top(1)
	if err != nil || len(top) == 0 {
		return ""
	}
	return fmt.Sprintf("Best: %d", top[0].Score)
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.runtime.ScreenW, m.runtime.ScreenH = msg.Width, msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)

	case MenuActionDown:
		m.cursor = min(m.cursor+1, max(len(m.items)-1, 0))

	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cursor]
		m.selected = &item
		return m, tea.Quit

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{
		"",
		menuTitleStyle.Render(centerText("  L A N E   D O D G E  ", m.width)),
		"",
		centerText("dodge the bombs, grab the coins", m.width),
		"",
	}

	for i, item := range m.items {
		if i == m.cursor {
			lines = append(lines, menuActiveStyle.Render(centerText("> "+item.Title+" <", m.width)))
			continue
		}
		lines = append(lines, centerText(item.Title, m.width))
	}

	lines = append(lines, "")
	if len(m.items) > 0 && m.items[m.cursor].Cadence != "" {
		lines = append(lines, helpStyle.Render(centerText(m.items[m.cursor].Cadence, m.width)))
	}
	if m.best != "" {
		lines = append(lines, centerText(m.best, m.width))
	}

	lines = append(lines, "",
		helpStyle.Render(centerText("↑/↓ choose  enter play  tab scores  q quit", m.width)))

	return strings.Join(lines, "\n") + "\n"
}

// Selected returns the chosen variant, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.runtime
}

// centerText pads text on the left to center it within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult is how a standalone menu program ended.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the picker in its own program.
func RunMenu(runtime core.RuntimeConfig, game config.DodgeConfig, scores *highscore.Store) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(runtime, game, scores), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: runtime}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: runtime, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}
	return result, nil
}
