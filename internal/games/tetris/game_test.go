package tetris

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	tcore "github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// fastConfig fires gravity every tick at 10 ticks per second.
func fastConfig() config.TetrisConfig {
	cfg := config.DefaultTetrisConfig()
	cfg.Gravity.Interval = 0.1
	return cfg
}

func newGame(cfg config.TetrisConfig, seed int64) *Game {
	g := NewWithConfig(cfg)
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24, TickRate: 10})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatal("tetris should register itself")
	}
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatal(err)
	}
	if g.Title() != "Tetris" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestResetSpawnsFirstPiece(t *testing.T) {
	g := newGame(config.DefaultTetrisConfig(), 1)

	snap := g.Snapshot()
	if snap.Spawned != 1 || snap.Locked != 0 {
		t.Errorf("after Reset: spawned=%d locked=%d, expected 1 and 0", snap.Spawned, snap.Locked)
	}
	if snap.Filled != 4 {
		t.Errorf("first piece should be drawn, filled = %d", snap.Filled)
	}
	if snap.Y != tcore.SpawnY || snap.Rotation != 0 {
		t.Errorf("first piece at y=%d rot=%d", snap.Y, snap.Rotation)
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newGame(fastConfig(), 12345)
	g2 := newGame(fastConfig(), 12345)

	for i := range 300 {
		var in core.InputFrame
		switch i % 7 {
		case 1:
			in = frame(core.ActionMoveLeft)
		case 3:
			in = frame(core.ActionRotate)
		case 5:
			in = frame(core.ActionMoveRight, core.ActionRotate)
		default:
			in = frame()
		}
		g1.Step(in)
		g2.Step(in)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1 != s2 {
		t.Errorf("snapshots diverged:\n%+v\n%+v", s1, s2)
	}
	if s1.Locked == 0 {
		t.Error("300 fast ticks should lock at least one piece")
	}
}

func TestGravityFollowsTickRate(t *testing.T) {
	g := newGame(config.DefaultTetrisConfig(), 3)
	startY := g.Snapshot().Y

	for range 4 {
		g.Step(frame())
	}
	if y := g.Snapshot().Y; y != startY {
		t.Errorf("piece fell before 0.5s elapsed: y=%d", y)
	}

	g.Step(frame())
	if y := g.Snapshot().Y; y != startY-1 {
		t.Errorf("after 5 ticks at 10Hz y = %d, expected %d", y, startY-1)
	}
}

func TestMoveActions(t *testing.T) {
	g := newGame(config.DefaultTetrisConfig(), 5)
	g.sim.Place(tcore.ActivePiece{Kind: tcore.KindT, X: 4, Y: 10, Color: tcore.RGB{G: 1}})

	g.Step(frame(core.ActionMoveLeft, core.ActionMoveRight))
	if x := g.Snapshot().X; x != 4 {
		t.Errorf("left then right should cancel, x = %d", x)
	}

	g.Step(frame(core.ActionMoveLeft))
	if x := g.Snapshot().X; x != 3 {
		t.Errorf("x = %d, expected 3", x)
	}

	g.Step(frame(core.ActionRotate))
	if r := g.Snapshot().Rotation; r != 1 {
		t.Errorf("rotation = %d, expected 1", r)
	}
}

func TestPauseStopsGravity(t *testing.T) {
	g := newGame(fastConfig(), 9)
	startY := g.Snapshot().Y

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	for range 5 {
		g.Step(frame(core.ActionMoveLeft))
	}
	snap := g.Snapshot()
	if snap.Y != startY {
		t.Errorf("paused piece moved from y=%d to y=%d", startY, snap.Y)
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

// fillSpawnRows makes every spawn overlap settled blocks and parks the
// active piece on the floor so the next gravity step locks it.
func fillSpawnRows(g *Game) {
	for _, y := range []int{tcore.SpawnY, tcore.SpawnY + 1} {
		for x := range tcore.Width {
			g.sim.Board().Set(x, y, tcore.FilledCell(tcore.RGB{R: 0.5, G: 0.5, B: 0.5}))
		}
	}
	g.sim.Place(tcore.ActivePiece{Kind: tcore.KindI, X: 0, Y: 0, Color: tcore.RGB{R: 1}})
}

func TestTopOutEndsGameWhenEnabled(t *testing.T) {
	cfg := fastConfig()
	cfg.Rules.EndOnTopOut = true
	g := newGame(cfg, 11)
	fillSpawnRows(g)

	res := g.Step(frame())
	if !res.State.GameOver {
		t.Fatal("spawning over settled blocks should end the game")
	}

	before := g.Snapshot()
	g.Step(frame(core.ActionMoveLeft))
	if after := g.Snapshot(); after.Board != before.Board {
		t.Error("game over should freeze the board")
	}

	g.Step(frame(core.ActionRestart))
	state := g.State()
	if state.GameOver || state.Locked != 0 || state.Spawned != 1 {
		t.Errorf("restart should start a fresh game, got %+v", state)
	}
}

func TestTopOutIsReportedOnly(t *testing.T) {
	g := newGame(fastConfig(), 11)
	fillSpawnRows(g)

	res := g.Step(frame())
	if res.State.GameOver {
		t.Error("top-out must not end the game by default")
	}
	if !g.TopOut() {
		t.Error("top-out should still be reported")
	}
	if res.State.Locked != 1 {
		t.Errorf("locked = %d, expected 1", res.State.Locked)
	}
}

func TestRender(t *testing.T) {
	g := newGame(config.DefaultTetrisConfig(), 21)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Tetris") {
		t.Errorf("HUD should name the game, got %q", screen.Row(0))
	}
	if screen.Get(29, 2) != '┌' || screen.Get(50, 23) != '┘' {
		t.Errorf("well should be centered below the HUD:\n%s", screen.String())
	}
	if n := strings.Count(screen.String(), "█"); n != 8 {
		t.Errorf("active piece should cover 8 columns, got %d", n)
	}

	p, _ := g.sim.Active()
	pt := p.Footprint()[0]
	sx, sy := 30+pt.X*cellW, 3+tcore.Height-1-pt.Y
	cell := screen.GetCell(sx, sy)
	if cell.Rune != '█' || cell.Color != cellColor(p.Color) {
		t.Errorf("cell (%d,%d) = %+v, expected piece color %s", sx, sy, cell, p.Color)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newGame(config.DefaultTetrisConfig(), 21)
	screen := core.NewScreen(40, 10)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected size warning, got:\n%s", screen.String())
	}
}

func TestSetDifficultyPreset(t *testing.T) {
	t.Cleanup(func() { difficultyPreset = "" })

	if err := SetDifficultyPreset("hard"); err != nil {
		t.Fatal(err)
	}
	if err := SetDifficultyPreset("ludicrous"); err == nil {
		t.Error("unknown preset should be rejected")
	}
	if difficultyPreset != config.DifficultyHard {
		t.Errorf("rejected preset should not change the current one, got %q", difficultyPreset)
	}
}

func TestGravityIntervalIsExactAt60Hz(t *testing.T) {
	tests := []struct {
		interval float64
		ticks    int
	}{
		{0.5, 30},
		{0.25, 15},
		{0.8, 48},
	}

	for _, tt := range tests {
		cfg := config.DefaultTetrisConfig()
		cfg.Gravity.Interval = tt.interval
		g := NewWithConfig(cfg)
		g.Reset(core.RuntimeConfig{Seed: 4, ScreenW: 80, ScreenH: 24, TickRate: 60})
		startY := g.Snapshot().Y

		for drop := 1; drop <= 2; drop++ {
			for range tt.ticks - 1 {
				g.Step(frame())
			}
			if y := g.Snapshot().Y; y != startY-drop+1 {
				t.Errorf("interval %.2fs: piece fell early on drop %d, y=%d", tt.interval, drop, y)
			}
			g.Step(frame())
			if y := g.Snapshot().Y; y != startY-drop {
				t.Errorf("interval %.2fs: drop %d expected after %d ticks, y=%d", tt.interval, drop, tt.ticks, y)
			}
		}
	}
}

func TestStepDurationSumsExactly(t *testing.T) {
	g := newGame(config.DefaultTetrisConfig(), 1)
	for _, rate := range []int{60, 144, 7} {
		g.rate = time.Duration(rate)
		var total time.Duration
		for n := uint64(1); n <= uint64(rate); n++ {
			total += g.stepDuration(n)
		}
		if total != time.Second {
			t.Errorf("%d ticks at %dHz sum to %v, expected 1s", rate, rate, total)
		}
	}
}

func TestConfigErrorFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	if err := os.WriteFile(path, []byte("gravity:\n  interval: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24, TickRate: 60})

	if g.ConfigErr() == nil {
		t.Fatal("invalid config should be reported")
	}
	if got := g.sim.GravityInterval(); got != 500*time.Millisecond {
		t.Errorf("gravity = %v, expected the 0.5s default", got)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.Row(1), "Config error") {
		t.Errorf("HUD should warn about the config, got %q", screen.Row(1))
	}

	SetConfigPath("")
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24, TickRate: 60})
	if err := g.ConfigErr(); err != nil {
		t.Errorf("a clean reload should clear the warning, got %v", err)
	}
}
