package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette, true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorSky      lipgloss.Color = "#89dceb"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorCrust    lipgloss.Color = "#11111b"
)

// ---------------------------------------------------------------------------
// Semantic color aliases
// ---------------------------------------------------------------------------

const (
	colorAccent   = colorMauve
	colorFocus    = colorLavender
	colorSuccess  = colorGreen
	colorError    = colorRed
	colorWarning  = colorYellow
	colorInfo     = colorTeal
	colorPlayhead = colorPeach
)

// ---------------------------------------------------------------------------
// Shared styles
// ---------------------------------------------------------------------------

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	stylePane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1)

	stylePaneFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorFocus)

	styleTabActive   = lipgloss.NewStyle().Bold(true).Foreground(colorBase).Background(colorAccent).Padding(0, 1)
	styleTabInactive = lipgloss.NewStyle().Foreground(colorSubtext0).Padding(0, 1)

	styleCursor   = lipgloss.NewStyle().Foreground(colorBase).Background(colorFocus)
	styleSelected = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleDim      = lipgloss.NewStyle().Foreground(colorOverlay0)
	styleMuted    = lipgloss.NewStyle().Foreground(colorSubtext0)

	styleStatusOK  = lipgloss.NewStyle().Foreground(colorSubtext0)
	styleStatusErr = lipgloss.NewStyle().Foreground(colorError)

	styleModal = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Background(colorBase).
			Padding(1, 2)

	stylePlayhead = lipgloss.NewStyle().Foreground(colorPlayhead).Bold(true)
)
