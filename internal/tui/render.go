package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlayCentered draws overlay on top of base, centered in a width by
// height cell grid. Modal prompts, the palette, and the log viewer all
// render through here so they share the same compositing rules.
func overlayCentered(base, overlay string, width, height int) string {
	lines := splitLines(overlay)
	x := (width - maxLineWidth(lines)) / 2
	y := (height - len(lines)) / 2
	return overlayAt(base, overlay, max(x, 0), max(y, 0), width, height)
}

func overlayAt(base, overlay string, x, y, width, height int) string {
	rows := splitLines(base)
	lines := splitLines(overlay)
	boxWidth := maxLineWidth(lines)
	for i, line := range lines {
		row := y + i
		if row < 0 || row >= len(rows) || row >= height {
			continue
		}
		rows[row] = spliceRow(rows[row], padRight(line, boxWidth), x, width)
	}
	return strings.Join(rows, "\n")
}

// spliceRow replaces the cells of row from column x onward with line,
// keeping whatever of the row extends past the line's right edge. The
// arithmetic works in visual cells so styled runs survive the cut.
func spliceRow(row, line string, x, width int) string {
	row = padRight(row, width)
	left := ansi.Truncate(row, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	if width <= 0 {
		return left + line
	}
	edge := x + ansi.StringWidth(line)
	right := ansi.TruncateLeft(row, edge, "")
	if gap := width - edge - ansi.StringWidth(right); gap > 0 {
		right = strings.Repeat(" ", gap) + right
	}
	return left + line + right
}

func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

func maxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

// padRight extends s with spaces to width visual cells. Strings already
// at or past width come back unchanged.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// truncate cuts s down to width cells with a trailing ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
