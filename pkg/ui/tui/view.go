package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const logo = `█▀█ █▀▀ █▀▀ █    █▀ █▀▀ █▀█ ▄▀█ █▀█ █▀▀ █▀█
█▀▄ ██▄ ██▄ █▄▄  ▄█ █▄▄ █▀▄ █▀█ █▀▀ ██▄ █▀▄`

// View renders the dashboard
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	width := (m.width - 4) / 2
	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderStatsPanel(width),
		m.renderRecentPanel(width),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPagesPanel(width),
		m.renderLogsPanel(width),
	)

	sections := []string{
		logoStyle.Render(logo),
		lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right),
	}
	if m.showHelp {
		sections = append(sections, m.renderHelp())
	} else {
		sections = append(sections, helpStyle.Render("Press ? for help, q to stop"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderStatsPanel(width int) string {
	status := m.spinner.View() + " scraping"
	if m.finished {
		status = successStyle.Render("✓ finished")
	}

	m.bar.Width = width - 6
	stats := []string{
		status,
		m.bar.ViewAs(m.Progress()),
		fmt.Sprintf("%s %s", labelStyle.Render("Elapsed:"), valueStyle.Render(formatDuration(time.Since(m.sessionStart)))),
		fmt.Sprintf("%s %s", labelStyle.Render("Pages:"), valueStyle.Render(fmt.Sprintf("%d", len(m.pageOrder)))),
		fmt.Sprintf("%s %s", labelStyle.Render("Reels:"), valueStyle.Render(fmt.Sprintf("%d", m.records))),
	}
	if m.failedReels > 0 {
		stats = append(stats, errorStyle.Render(fmt.Sprintf("%d reels failed", m.failedReels)))
	}

	return panel(width, " RUN ", lipgloss.JoinVertical(lipgloss.Left, stats...))
}

func (m *Model) renderPagesPanel(width int) string {
	if len(m.pageOrder) == 0 {
		return panel(width, " PAGES ", dimStyle.Render("Waiting for the first page..."))
	}

	var rows []string
	for _, url := range m.pageOrder {
		p := m.pages[url]
		var badge string
		switch p.State {
		case PageActive:
			badge = warningStyle.Render("…")
		case PageDone:
			badge = successStyle.Render("✓")
		case PageFailed:
			badge = errorStyle.Render("✗")
		default:
			badge = dimStyle.Render("•")
		}
		rows = append(rows, fmt.Sprintf("%s %s %s",
			badge,
			truncate(url, width-16),
			dimStyle.Render(fmt.Sprintf("%d/%d", p.Done, p.Total)),
		))
	}

	return panel(width, " PAGES ", strings.Join(rows, "\n"))
}

func (m *Model) renderRecentPanel(width int) string {
	if len(m.recent) == 0 {
		return panel(width, " RECENT REELS ", dimStyle.Render("No reels yet"))
	}
	var rows []string
	for _, label := range m.recent {
		rows = append(rows, successStyle.Render("✓ ")+truncate(label, width-8))
	}
	return panel(width, " RECENT REELS ", strings.Join(rows, "\n"))
}

func (m *Model) renderLogsPanel(width int) string {
	start := len(m.logMessages) - 10
	if start < 0 {
		start = 0
	}

	var logs []string
	for _, msg := range m.logMessages[start:] {
		level := lipgloss.NewStyle().Foreground(levelColor(msg.Level)).Bold(true).Render(fmt.Sprintf("[%-7s]", msg.Level))
		logs = append(logs, fmt.Sprintf("%s %s %s",
			dimStyle.Render(msg.Time.Format("15:04:05")),
			level,
			truncate(msg.Message, width-25),
		))
	}

	content := strings.Join(logs, "\n")
	if content == "" {
		content = dimStyle.Render("No logs yet...")
	}
	return panel(width, " LOGS ", content)
}

func (m *Model) renderHelp() string {
	help := `
  q / ctrl+c  stop the scrape and write what was collected
  ?           toggle this help
  ctrl+l      clear logs
`
	return panelStyle.Width(m.width - 2).Render(help)
}

func panel(width int, title, content string) string {
	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), content),
	)
}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
