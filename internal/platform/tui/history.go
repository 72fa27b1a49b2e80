package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

const maxHistoryRows = 100

// HistoryView selects which sessions the history screen lists.
type HistoryView int

const (
	ViewRecent HistoryView = iota
	ViewBest
)

// String returns the view title.
func (v HistoryView) String() string {
	if v == ViewBest {
		return "BEST SESSIONS"
	}
	return "RECENT SESSIONS"
}

// HistoryModel lists recorded sessions in a table.
type HistoryModel struct {
	gameID   string
	store    *storage.Store
	lg       *lipgloss.Renderer
	view     HistoryView
	records  []storage.SessionRecord
	loadErr  error
	table    table.Model
	help     help.Model
	keys     MenuKeyMap
	width    int
	height   int
	quitting bool
	back     bool
}

// NewHistoryModel creates the history screen for gameID. store may be nil.
func NewHistoryModel(gameID string, store *storage.Store, width, height int, lg *lipgloss.Renderer) HistoryModel {
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	h := help.New()
	h.Width = width

	m := HistoryModel{
		gameID: gameID,
		store:  store,
		lg:     lg,
		keys:   DefaultMenuKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Locked", Width: 8},
		{Title: "Pieces", Width: 8},
		{Title: "Time", Width: 8},
		{Title: "Player", Width: 12},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(historyTableHeight(m.height)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// historyTableHeight fits the table under the title, box and help lines
// of a screen h rows tall.
func historyTableHeight(h int) int {
	return core.Clamp(h-9, 3, maxHistoryRows)
}

func (m *HistoryModel) load() {
	m.records, m.loadErr = nil, nil
	if m.store != nil {
		if m.view == ViewBest {
			m.records, m.loadErr = m.store.BestSessions(m.gameID, maxHistoryRows)
		} else {
			m.records, m.loadErr = m.store.RecentSessions(m.gameID, maxHistoryRows)
		}
	}
	m.table.SetRows(historyRows(m.records))
	m.table.GotoTop()
}

func historyRows(records []storage.SessionRecord) []table.Row {
	rows := make([]table.Row, len(records))
	for i, r := range records {
		top := ""
		if r.TopOut {
			top = "*"
		}
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Locked) + top,
			strconv.Itoa(r.Spawned),
			formatDuration(r.Duration),
			r.Player,
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

// formatDuration renders m:ss, or h:mm:ss past an hour.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	mnt := int(d/time.Minute) % 60
	sec := int(d/time.Second) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mnt, sec)
	}
	return fmt.Sprintf("%d:%02d", mnt, sec)
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.view = 1 - m.view
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.table.SetRows(historyRows(m.records))
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	titleStyle := m.lg.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boxStyle := m.lg.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	dimStyle := m.lg.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.view.String()))
	b.WriteString("\n\n")

	switch {
	case m.store == nil:
		b.WriteString(boxStyle.Render(dimStyle.Italic(true).Render("History is unavailable without a database.")))
	case m.loadErr != nil:
		b.WriteString(boxStyle.Render(dimStyle.Render("Could not load sessions: " + m.loadErr.Error())))
	case len(m.records) == 0:
		b.WriteString(boxStyle.Render(dimStyle.Italic(true).Padding(1, 3).Render("No sessions recorded yet.\nPlay a game to fill this table!")))
	default:
		b.WriteString(boxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("* spawned over settled blocks"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(historyHelp{m.keys})))

	return m.lg.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

// historyHelp lists the bindings that apply on the history screen.
type historyHelp struct{ k MenuKeyMap }

func (h historyHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Up, h.k.Down, h.k.Toggle, h.k.Back, h.k.Quit}
}

func (h historyHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}
