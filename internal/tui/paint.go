package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/passage/internal/render"
)

const (
	returnGlyph     = '⏎'
	wrongSpaceGlyph = '•'
)

// paintRows renders the visible glyphs of f into rows terminal lines.
// Glyph X coordinates are cell columns relative to left.
func paintRows(f render.Frame, rows int, left float64) []string {
	lines := make([]strings.Builder, rows)
	cols := make([]int, rows)
	for _, g := range f.Glyphs {
		if !g.Visible || g.Row < 0 || g.Row >= rows {
			continue
		}
		col := int(math.Round(g.X - left))
		if pad := col - cols[g.Row]; pad > 0 {
			lines[g.Row].WriteString(strings.Repeat(" ", pad))
			cols[g.Row] = col
		}
		displayed, style := glyphStyle(g)
		lines[g.Row].WriteString(style.Render(string(displayed)))
		cols[g.Row] += max(int(math.Round(g.Width)), 1)
	}
	out := make([]string, rows)
	for i := range lines {
		out[i] = lines[i].String()
	}
	return out
}

func glyphStyle(g render.Glyph) (rune, lipgloss.Style) {
	displayed := g.Rune
	if displayed == '\n' {
		displayed = returnGlyph
	}
	var style lipgloss.Style
	switch g.State {
	case render.Correct:
		style = correctStyle
	case render.Incorrect:
		style = incorrectStyle
		if g.Rune == ' ' {
			displayed = wrongSpaceGlyph
		}
	default:
		switch {
		case g.Rune == '\n':
			style = returnStyle
		case g.InWord && g.Rune != ' ':
			style = currentWordStyle
		default:
			style = pendingStyle
		}
	}
	if g.Cursor {
		style = style.Underline(true)
	}
	return displayed, style
}
