package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// MenuChoice is an entry of the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceHistory
	ChoiceQuit
)

// String returns the menu label.
func (c MenuChoice) String() string {
	switch c {
	case ChoicePlay:
		return "Play"
	case ChoiceHistory:
		return "History"
	case ChoiceQuit:
		return "Quit"
	default:
		return ""
	}
}

var menuChoices = []MenuChoice{ChoicePlay, ChoiceHistory, ChoiceQuit}

// MenuModel is the main menu: Play, History or Quit.
type MenuModel struct {
	gameID   string
	store    *storage.Store
	lg       *lipgloss.Renderer
	keys     MenuKeyMap
	help     help.Model
	cursor   int
	width    int
	height   int
	summary  string
	selected MenuChoice
}

// NewMenuModel creates the main menu for gameID. store may be nil.
func NewMenuModel(gameID string, store *storage.Store, width, height int, lg *lipgloss.Renderer) MenuModel {
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	h := help.New()
	h.Width = width

	return MenuModel{
		gameID:  gameID,
		store:   store,
		lg:      lg,
		keys:    DefaultMenuKeyMap(),
		help:    h,
		width:   width,
		height:  height,
		summary: statsSummary(store, gameID),
	}
}

// statsSummary describes past sessions in one line, or "" without a store.
func statsSummary(store *storage.Store, gameID string) string {
	if store == nil {
		return ""
	}
	stats, err := store.Stats(gameID)
	if err != nil || stats.Sessions == 0 {
		return "No sessions played yet"
	}
	return fmt.Sprintf("Sessions: %d  Best: %d locked  Avg: %.1f", stats.Sessions, stats.MaxLocked, stats.AvgLocked)
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.selected = ChoiceQuit
		case key.Matches(msg, m.keys.Up):
			m.cursor = (m.cursor + len(menuChoices) - 1) % len(menuChoices)
		case key.Matches(msg, m.keys.Down):
			m.cursor = (m.cursor + 1) % len(menuChoices)
		case key.Matches(msg, m.keys.Select):
			m.selected = menuChoices[m.cursor]
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	titleStyle := m.lg.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	itemStyle := m.lg.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle := m.lg.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	dimStyle := m.lg.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("T E T R I S"))
	b.WriteString("\n\n")

	for i, c := range menuChoices {
		label := fmt.Sprintf("  %-9s", c)
		if i == m.cursor {
			b.WriteString(activeStyle.Render("> " + strings.TrimPrefix(label, "  ")))
		} else {
			b.WriteString(itemStyle.Render(label))
		}
		b.WriteString("\n")
	}

	if m.summary != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(m.summary))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return m.lg.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

// Selected returns the confirmed choice, or ChoiceNone.
func (m MenuModel) Selected() MenuChoice {
	return m.selected
}
