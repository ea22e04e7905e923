package dodge

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/lane-dodge/internal/core"
)

// Sprites are three cells wide and centered in a lane.
const (
	laneWidth     = 5
	bombSprite    = "(●)"
	coinSprite    = "($)"
	carSprite     = "▟█▙"
	laneDivider   = '┊'
	heartFull     = '♥'
	heartEmpty    = '♡'
	hudHeight     = 2
	boardBorderHW = 2
)

// Render draws the board, HUD and game-over overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.engine.Snapshot()

	boardW := snap.Cols*laneWidth + boardBorderHW
	boardH := snap.Rows + boardBorderHW
	if dst.Width() < boardW || dst.Height() < boardH+hudHeight {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}

	boardX := (dst.Width() - boardW) / 2
	boardY := hudHeight

	g.drawHUD(dst, snap, boardX, boardW)
	dst.DrawBox(core.NewRect(boardX, boardY, boardW, boardH), core.ColorGray)

	for row := 0; row < snap.Rows; row++ {
		y := boardY + 1 + row
		for col := 1; col < snap.Cols; col++ {
			dst.SetColored(boardX+col*laneWidth, y, laneDivider, core.ColorGray)
		}
	}

	for _, o := range snap.Obstacles {
		drawSprite(dst, boardX, boardY, o.Row, o.Col, bombSprite, core.ColorBrightRed)
	}
	if snap.Coin != nil {
		drawSprite(dst, boardX, boardY, snap.Coin.Row, snap.Coin.Col, coinSprite, core.ColorBrightYellow)
	}
	drawSprite(dst, boardX, boardY, snap.PlayerRow, snap.PlayerCol, carSprite, core.ColorBrightCyan)

	if snap.GameOver {
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  R restart  |  B menu", snap.Score))
	}
}

// drawHUD renders lives, score and speed above the board.
func (g *Game) drawHUD(dst *core.Screen, snap Snapshot, boardX, boardW int) {
	hearts := strings.Repeat(string(heartFull), snap.Lives)
	if missing := g.cfg.Rules.StartLives - snap.Lives; missing > 0 {
		hearts += strings.Repeat(string(heartEmpty), missing)
	}
	dst.DrawTextColored(boardX, 0, hearts, core.ColorRed)

	score := fmt.Sprintf("%d", snap.Score)
	dst.DrawText(boardX+boardW-utf8.RuneCountInString(score), 0, score)

	speed := snap.Speed.String()
	color := core.ColorGray
	switch snap.Speed {
	case core.SpeedFast:
		color = core.ColorYellow
	case core.SpeedSlow:
		color = core.ColorCyan
	}
	dst.DrawTextColored(boardX+(boardW-len(speed))/2, 0, speed, color)
}

// drawSprite draws a three-cell sprite centered in the given lane.
func drawSprite(dst *core.Screen, boardX, boardY, row, col int, sprite string, c core.Color) {
	x := boardX + 1 + col*laneWidth + (laneWidth-utf8.RuneCountInString(sprite))/2
	dst.DrawTextColored(x, boardY+1+row, sprite, c)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	titleW := utf8.RuneCountInString(title)
	subtitleW := utf8.RuneCountInString(subtitle)

	boxW := max(titleW, subtitleW) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawTextColored(boxX+(boxW-titleW)/2, boxY+1, title, core.ColorBrightRed)
	dst.DrawText(boxX+(boxW-subtitleW)/2, boxY+3, subtitle)
}
