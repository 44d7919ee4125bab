package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// PageStartMsg is sent when a listing page has been fetched
type PageStartMsg struct {
	URL   string
	Total int
}

// ReelDoneMsg is sent when a reel has been extracted
type ReelDoneMsg struct {
	PageURL string
	ReelURL string
	Label   string
}

// ReelFailedMsg is sent when a reel could not be scraped
type ReelFailedMsg struct {
	PageURL string
	ReelURL string
	Error   error
}

// PageFailedMsg is sent when a listing page could not be scraped
type PageFailedMsg struct {
	URL   string
	Error error
}

// FinishedMsg is sent once the run is over
type FinishedMsg struct {
	Records int
}

// LogMsg is sent to add a log message
type LogMsg struct {
	Level   string
	Message string
}

// TickMsg is sent periodically to update the UI
type TickMsg time.Time

// Init starts the spinner and the refresh tick
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tickCmd())
}

// Update handles all messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TickMsg:
		if m.finished {
			return m, nil
		}
		return m, tickCmd()

	case PageStartMsg:
		m.StartPage(msg.URL, msg.Total)
		m.AddLogMessage("INFO", "Scanning "+msg.URL)
		return m, nil

	case ReelDoneMsg:
		m.CompleteReel(msg.PageURL, msg.ReelURL, msg.Label)
		return m, nil

	case ReelFailedMsg:
		m.FailReel(msg.PageURL, msg.ReelURL, msg.Error)
		m.AddLogMessage("ERROR", "Failed: "+msg.ReelURL+" - "+msg.Error.Error())
		return m, nil

	case PageFailedMsg:
		m.FailPage(msg.URL, msg.Error)
		m.AddLogMessage("ERROR", "Page failed: "+msg.URL+" - "+msg.Error.Error())
		return m, nil

	case FinishedMsg:
		m.finished = true
		m.AddLogMessage("SUCCESS", "Scrape finished")
		return m, tea.Quit

	case LogMsg:
		m.AddLogMessage(msg.Level, msg.Message)
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "ctrl+l":
		m.logMessages = nil
		return m, nil
	}

	return m, nil
}

// tickCmd returns a command that sends a tick message
func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
