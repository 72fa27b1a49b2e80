// Package tetris adapts the falling-block simulation to the platform's
// fixed-tick Game interface.
package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	tcore "github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// GameID is the registry and storage identifier.
const GameID = "tetris"

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the gravity preset. Unknown names are rejected
// and leave the current preset in place.
func SetDifficultyPreset(preset string) error {
	p, err := config.ParseDifficultyPreset(preset)
	if err != nil {
		return err
	}
	difficultyPreset = p
	return nil
}

// Game drives a Simulation one platform tick at a time.
type Game struct {
	fixed *config.TetrisConfig
	cfg   config.TetrisConfig

	sim   *tcore.Simulation
	rng   *rand.Rand
	tick  uint64
	steps uint64 // Ticks fed to the simulation
	rate  time.Duration

	configErr error

	runtime  core.RuntimeConfig
	paused   bool
	gameOver bool
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// New creates a game that loads its configuration on every Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game with a fixed configuration, ignoring the
// config search path and presets.
func NewWithConfig(cfg config.TetrisConfig) *Game {
	return &Game{fixed: &cfg}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset builds a fresh simulation and spawns the first piece.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = runtime
	g.cfg, g.configErr = g.loadConfig()

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.rate = time.Duration(runtime.TickRate)
	g.tick = 0
	g.steps = 0
	g.paused = false
	g.gameOver = false

	g.sim = tcore.New(tcore.Config{
		GravityInterval: g.cfg.GravityInterval(),
		Colors:          tcore.ColorRange{Min: g.cfg.Spawn.ColorMin, Max: g.cfg.Spawn.ColorMax},
		Rand:            g.rng,
	})
	g.sim.Spawn()
}

// loadConfig returns the configuration to play with. A load error is
// returned next to the defaults that replace it.
func (g *Game) loadConfig() (config.TetrisConfig, error) {
	if g.fixed != nil {
		return *g.fixed, nil
	}

	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		cfg = config.DefaultTetrisConfig()
	}
	if difficultyPreset != "" {
		config.ApplyTetrisPreset(&cfg, difficultyPreset)
	}
	return cfg, err
}

// stepDuration returns the time covered by simulation tick n (1-based).
// Each tick spans the difference of the cumulative times, so n ticks add
// up to exactly n/TickRate seconds with no rounding drift.
func (g *Game) stepDuration(n uint64) time.Duration {
	end := time.Duration(n) * time.Second / g.rate
	start := time.Duration(n-1) * time.Second / g.rate
	return end - start
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) && g.gameOver {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.runtime.ScreenW,
			ScreenH:  g.runtime.ScreenH,
			TickRate: g.runtime.TickRate,
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	g.steps++
	res := g.sim.Update(tcore.FrameInput{
		Left:   input.Has(core.ActionMoveLeft),
		Right:  input.Has(core.ActionMoveRight),
		Rotate: input.Has(core.ActionRotate),
	}, g.stepDuration(g.steps))

	if res.Gravity == tcore.OutcomeLocked && g.cfg.Rules.EndOnTopOut && g.sim.TopOut() {
		g.gameOver = true
	}

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{}
	}
	return core.GameState{
		Locked:   g.sim.Locked(),
		Spawned:  g.sim.Spawned(),
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// ConfigErr returns the error that made the last Reset fall back to the
// default configuration, or nil.
func (g *Game) ConfigErr() error {
	return g.configErr
}

// TopOut reports whether the latest piece spawned over settled blocks.
func (g *Game) TopOut() bool {
	return g.sim != nil && g.sim.TopOut()
}
