package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// ScreenRenderer turns a Screen into styled terminal output. Styles are
// cached per color; a renderer is owned by a single Bubble Tea program.
type ScreenRenderer struct {
	lg     *lipgloss.Renderer
	styles map[core.Color]lipgloss.Style
}

// NewScreenRenderer creates a renderer. A nil lipgloss renderer means the
// process default, which is right for local play; SSH sessions pass one
// bound to the session's terminal.
func NewScreenRenderer(lg *lipgloss.Renderer) *ScreenRenderer {
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	return &ScreenRenderer{
		lg:     lg,
		styles: make(map[core.Color]lipgloss.Style),
	}
}

func (r *ScreenRenderer) style(c core.Color) lipgloss.Style {
	if s, ok := r.styles[c]; ok {
		return s
	}
	s := r.lg.NewStyle()
	if !c.IsDefault() {
		s = s.Foreground(lipgloss.Color(c.Hex()))
	}
	r.styles[c] = s
	return s
}

// Render converts the screen buffer to a string.
// Adjacent cells with the same color share one styled run.
func (r *ScreenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(r.style(color).Render(run.String()))
		}
	}
	return sb.String()
}
