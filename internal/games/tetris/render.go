package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
	tcore "github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

const (
	cellW     = 2 // Terminal columns per board cell
	hudHeight = 2 // HUD line plus separator
	wellW     = tcore.Width*cellW + 2
	wellH     = tcore.Height + 2
)

// MinScreenSize returns the smallest screen that fits the HUD and the well.
func MinScreenSize() (w, h int) {
	return wellW, hudHeight + wellH
}

// Render draws the HUD and the well. Board row Height-1 is at the top.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}

	g.renderHUD(dst)

	minW, minH := MinScreenSize()
	if dst.Width() < minW || dst.Height() < minH {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", core.ColorAlert)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minW, minH), core.ColorHUD)
		return
	}

	area := core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight)
	well := area.Centered(wellW, wellH)
	dst.DrawBox(well, core.ColorBorder)
	g.renderBoard(dst, well.X+1, well.Y+1)

	switch {
	case g.gameOver:
		g.renderOverlay(dst, well, "Game Over", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, well, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Tetris  Locked: %d  Pieces: %d  Gravity: %.2fs",
		g.sim.Locked(), g.sim.Spawned(), g.sim.GravityInterval().Seconds())
	dst.DrawTextColored(0, 0, hud, core.ColorHUD)
	if g.sim.TopOut() {
		dst.DrawTextColored(len(hud)+2, 0, "TOP OUT", core.ColorAlert)
	}

	for x := range dst.Width() {
		dst.SetColored(x, 1, '─', core.ColorBorder)
	}
	if g.configErr != nil {
		dst.DrawTextColored(1, 1, " Config error, using defaults: "+g.configErr.Error()+" ", core.ColorAlert)
	}
}

func (g *Game) renderBoard(dst *core.Screen, left, top int) {
	rows := g.sim.Board().Rows()
	for y := range tcore.Height {
		sy := top + tcore.Height - 1 - y
		for x := range tcore.Width {
			sx := left + x*cellW
			cell := rows[y][x]
			if !cell.Filled {
				dst.SetColored(sx, sy, '·', core.ColorDim)
				dst.Set(sx+1, sy, ' ')
				continue
			}
			color := cellColor(cell.Color)
			dst.SetColored(sx, sy, '█', color)
			dst.SetColored(sx+1, sy, '█', color)
		}
	}
}

func (g *Game) renderOverlay(dst *core.Screen, well core.Rect, title, hint string) {
	mid := well.Y + well.H/2
	for _, line := range []struct {
		y     int
		text  string
		color core.Color
	}{
		{mid - 1, title, core.ColorAlert},
		{mid + 1, hint, core.ColorHUD},
	} {
		x := well.X + (well.W-len(line.text))/2
		dst.DrawTextColored(x, line.y, line.text, line.color)
	}
}

func cellColor(c tcore.RGB) core.Color {
	r, gr, b := c.Bytes()
	return core.RGB(r, gr, b)
}
