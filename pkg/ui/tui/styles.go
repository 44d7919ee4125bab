package tui

import "github.com/charmbracelet/lipgloss"

var (
	fbBlue      = lipgloss.Color("#1877F2")
	fbLightBlue = lipgloss.Color("#4599FF")
	okGreen     = lipgloss.Color("#42B72A")
	warnOrange  = lipgloss.Color("#F7B928")
	errRed      = lipgloss.Color("#FA383E")
	dimGray     = lipgloss.Color("#8A8D91")
	darkBg      = lipgloss.Color("#18191A")
	panelBg     = lipgloss.Color("#242526")

	logoStyle = lipgloss.NewStyle().
			Foreground(fbBlue).
			Bold(true).
			Padding(1, 0)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(fbBlue).
			Background(panelBg).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Background(fbBlue).
			Foreground(darkBg).
			Bold(true).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(fbLightBlue).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E4E6EB"))

	successStyle = lipgloss.NewStyle().
			Foreground(okGreen).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warnOrange).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errRed).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimGray)

	helpStyle = lipgloss.NewStyle().
			Foreground(dimGray).
			Padding(1, 0, 0, 2)
)

// levelColor picks the color of a log level badge
func levelColor(level string) lipgloss.Color {
	switch level {
	case "ERROR", "ERR", "FTL":
		return errRed
	case "WARN", "WRN":
		return warnOrange
	case "SUCCESS":
		return okGreen
	case "INFO", "INF":
		return fbLightBlue
	default:
		return dimGray
	}
}
