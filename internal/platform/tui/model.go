package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// LocalPlayer is the player name recorded for terminal sessions.
const LocalPlayer = "local"

// helpHeight is the row reserved under the game screen for the help bar.
const helpHeight = 1

// topOuter is implemented by games that can report a spawn overlap.
type topOuter interface {
	TopOut() bool
}

// GameModel runs one game inside a Bubble Tea program. It records a
// session in the store exactly once per played game.
type GameModel struct {
	game     registry.Game
	screen   *core.Screen
	renderer *ScreenRenderer
	store    *storage.Store
	config   core.RuntimeConfig
	player   string

	keys  GameKeyMap
	help  help.Model
	input core.InputFrame
	state core.GameState

	started time.Time
	ticks   int
	saved   bool

	quitting   bool
	backToMenu bool
	quitOnBack bool
}

// NewGameModel creates a model for game. store may be nil.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string, lg *lipgloss.Renderer) *GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return &GameModel{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 0)),
		renderer: NewScreenRenderer(lg),
		store:    store,
		config:   cfg,
		player:   player,
		keys:     DefaultGameKeyMap(),
		help:     h,
		input:    core.NewInputFrame(),
	}
}

// Init resets the game and starts the tick loop.
func (m *GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.state = m.game.State()
	m.started = time.Now()
	m.ticks = 0
	m.saved = false
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m *GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-helpHeight, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if m.quitting || m.backToMenu {
			return m, nil
		}
		return m, m.handleTick()
	}

	return m, nil
}

func (m *GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.finish()
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.finish()
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil
	case core.ActionNone:
	default:
		m.input.Set(action)
	}
	return m, nil
}

func (m *GameModel) handleTick() tea.Cmd {
	wasOver := m.state.GameOver

	result := m.game.Step(m.input)
	m.input.Clear()
	m.state = result.State
	if !wasOver {
		m.ticks++
	}

	switch {
	case wasOver && !m.state.GameOver:
		// The game restarted itself.
		m.started = time.Now()
		m.ticks = 0
		m.saved = false
	case m.state.GameOver:
		m.finish()
	}

	return tickCmd(m.config.TickRate)
}

// finish saves the current session once. Sessions that never got past
// the first tick are not recorded.
func (m *GameModel) finish() {
	if m.saved || m.ticks == 0 {
		return
	}
	m.saved = true
	if m.store == nil {
		return
	}

	rec := storage.SessionRecord{
		GameID:   m.game.ID(),
		Player:   m.player,
		Spawned:  m.state.Spawned,
		Locked:   m.state.Locked,
		Ticks:    m.ticks,
		Duration: time.Since(m.started),
	}
	if t, ok := m.game.(topOuter); ok {
		rec.TopOut = t.TopOut()
	}
	//nolint:errcheck // Best-effort save, the game continues regardless
	m.store.SaveSession(rec)
}

// View renders the game followed by the help bar.
func (m *GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	helpStyle := m.renderer.lg.NewStyle().Foreground(lipgloss.Color("241"))
	return m.renderer.Render(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// State returns the game state observed on the last tick.
func (m *GameModel) State() core.GameState {
	return m.state
}

// Saved reports whether the current session has been recorded.
func (m *GameModel) Saved() bool {
	return m.saved
}

// IsQuitting returns true if user requested to quit entirely.
func (m *GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m *GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in the local terminal.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, store, cfg, LocalPlayer, nil)
	model.quitOnBack = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
