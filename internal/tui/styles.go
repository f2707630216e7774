package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sprite-ai/consentlens/internal/form"
)

// Color palette.
var (
	colorRed    = lipgloss.Color("#ff5555")
	colorGreen  = lipgloss.Color("#50fa7b")
	colorYellow = lipgloss.Color("#f1fa8c")
	colorBlue   = lipgloss.Color("#8be9fd")
	colorPurple = lipgloss.Color("#bd93f9")
	colorDim    = lipgloss.Color("#6272a4")
	colorBgLite = lipgloss.Color("#343746")
	colorFg     = lipgloss.Color("#f8f8f2")
	colorOrange = lipgloss.Color("#ffb86c")
	colorBorder = lipgloss.Color("#44475a")
	colorAccent = lipgloss.Color("#2563eb")
)

// riskColors maps the form's color tokens onto the palette.
var riskColors = map[form.Color]lipgloss.Color{
	form.ColorRed:    colorRed,
	form.ColorOrange: colorOrange,
	form.ColorGreen:  colorGreen,
}

// riskForeground returns the palette color for a risk level string.
func riskForeground(level string) lipgloss.Color {
	return riskColors[form.RiskColor(level)]
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 0, 1, 0)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Bold(true)

	// Policy input
	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	inputFocusedStyle = inputStyle.
				BorderForeground(colorPurple)

	// Permission checklist
	permItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	permSelectedStyle = lipgloss.NewStyle().
				Foreground(colorGreen).
				Bold(true)

	permCursorStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)

	// Submit button
	buttonStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Background(colorAccent).
			Padding(0, 2)

	buttonFocusedStyle = buttonStyle.
				Bold(true).
				Underline(true)

	buttonDisabledStyle = lipgloss.NewStyle().
				Foreground(colorDim).
				Background(colorBgLite).
				Padding(0, 2)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorPurple)

	// Result panel
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	failurePanelStyle = panelStyle.
				BorderForeground(colorRed)

	appNameStyle = lipgloss.NewStyle().
			Foreground(colorPurple).
			Bold(true).
			Padding(0, 0, 1, 0)

	sectionStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	failureTitleStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Bold(true)

	// Status and help bars
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Background(colorBgLite).
			Padding(0, 1)

	helpBarStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorYellow)
)
