package tui

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/lane-dodge/internal/core"
)

// ControlMode selects where lane moves come from.
type ControlMode int

const (
	ControlButtons ControlMode = iota
	ControlSensors
)

// String returns the mode name shown in the UI.
func (c ControlMode) String() string {
	if c == ControlSensors {
		return "sensors"
	}
	return "buttons"
}

// gameMenuItem is an entry of the in-game menu.
type gameMenuItem int

const (
	itemFast gameMenuItem = iota
	itemSlow
	itemControl
	itemScores
	itemResume
	gameMenuItemCount
)

// GameMenu is the pause menu opened during a run. The run is paused
// while it is open.
type GameMenu struct {
	cursor int
}

func (g *GameMenu) up() {
	if g.cursor > 0 {
		g.cursor--
	}
}

func (g *GameMenu) down() {
	if g.cursor < int(gameMenuItemCount)-1 {
		g.cursor++
	}
}

func (g *GameMenu) selected() gameMenuItem {
	return gameMenuItem(g.cursor)
}

// labels returns the entry texts for the current settings.
func (g *GameMenu) labels(speed core.SpeedMode, control ControlMode) []string {
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	return []string{
		fmt.Sprintf("Fast mode: %s", onOff(speed == core.SpeedFast)),
		fmt.Sprintf("Slow mode: %s", onOff(speed == core.SpeedSlow)),
		fmt.Sprintf("Controls: %s", control),
		"High scores",
		"Resume",
	}
}

// render draws the menu as a box in the middle of the screen.
func (g *GameMenu) render(dst *core.Screen, speed core.SpeedMode, control ControlMode) {
	labels := g.labels(speed, control)

	width := utf8.RuneCountInString("MENU")
	for _, l := range labels {
		width = max(width, utf8.RuneCountInString(l)+2)
	}
	boxW := width + 4
	boxH := len(labels) + 4
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextColored(box.X+(boxW-4)/2, box.Y+1, "MENU", core.ColorBrightYellow)

	for i, l := range labels {
		prefix := "  "
		color := core.ColorDefault
		if i == g.cursor {
			prefix = "> "
			color = core.ColorBrightCyan
		}
		dst.DrawTextColored(box.X+2, box.Y+3+i, prefix+l, color)
	}
}
