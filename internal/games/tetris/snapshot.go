package tetris

import (
	"strings"

	tcore "github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick     uint64
	Locked   int
	Spawned  int
	Kind     tcore.Kind
	Rotation int
	X, Y     int
	Filled   int
	TopOut   bool
	Paused   bool
	GameOver bool
	Board    string // One line per row, top row first, '#' filled, '.' empty
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.sim == nil {
		return Snapshot{}
	}

	p, _ := g.sim.Active()
	return Snapshot{
		Tick:     g.tick,
		Locked:   g.sim.Locked(),
		Spawned:  g.sim.Spawned(),
		Kind:     p.Kind,
		Rotation: p.Rotation,
		X:        p.X,
		Y:        p.Y,
		Filled:   g.sim.Board().FilledCount(),
		TopOut:   g.sim.TopOut(),
		Paused:   g.paused,
		GameOver: g.gameOver,
		Board:    boardString(g.sim.Board()),
	}
}

func boardString(b *tcore.Board) string {
	var sb strings.Builder
	sb.Grow((tcore.Width + 1) * tcore.Height)
	for y := tcore.Height - 1; y >= 0; y-- {
		for x := range tcore.Width {
			if b.IsFilled(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
