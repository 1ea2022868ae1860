package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable renders an aligned table with a header separator line.
// Widths are measured on visible text so styled cells line up. A non-empty
// footer is set apart by a second separator.
func (f Formatter) RenderTable(headers []string, rows, footer [][]string) string {
	cols := len(headers)
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}
	for _, row := range footer {
		measure(row)
	}

	var b strings.Builder
	styled := make([]string, cols)
	for i, h := range headers {
		styled[i] = f.render(StyleHeader, h)
	}
	f.writeRow(&b, styled, widths)
	f.writeSeparator(&b, widths)
	for _, row := range rows {
		f.writeRow(&b, row, widths)
	}
	if len(footer) > 0 {
		f.writeSeparator(&b, widths)
		for _, row := range footer {
			f.writeRow(&b, row, widths)
		}
	}
	return b.String()
}

func (f Formatter) writeRow(b *strings.Builder, row []string, widths []int) {
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		b.WriteString(cell)
		if i < len(widths)-1 {
			pad := w - lipgloss.Width(cell)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(strings.Repeat(" ", pad+colGap))
		}
	}
	b.WriteString("\n")
}

func (f Formatter) writeSeparator(b *strings.Builder, widths []int) {
	for i, w := range widths {
		b.WriteString(f.render(StyleDim, strings.Repeat("─", w)))
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
}
