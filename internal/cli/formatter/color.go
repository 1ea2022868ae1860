package formatter

import (
	"github.com/charmbracelet/lipgloss"

	"myspace/internal/core"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleToday  = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true).Underline(true)
)

// Formatter renders page views for the terminal. With color disabled every
// style renders its text unchanged.
type Formatter struct {
	color bool
}

// New returns a Formatter. Pass false when stdout is not a terminal.
func New(color bool) Formatter {
	return Formatter{color: color}
}

// Color reports whether styles are applied.
func (f Formatter) Color() bool {
	return f.color
}

func (f Formatter) render(s lipgloss.Style, text string) string {
	if !f.color {
		return text
	}
	return s.Render(text)
}

// PaceStyle maps a pace class to its color.
func PaceStyle(c core.PaceClass) lipgloss.Style {
	switch c {
	case core.PaceBehind:
		return StyleRed
	case core.PaceAhead:
		return StyleGreen
	default:
		return StyleYellow
	}
}
