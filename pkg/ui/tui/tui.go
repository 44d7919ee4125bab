// Package tui renders a live scrape dashboard with bubbletea.
package tui

import (
	"bufio"
	"bytes"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// TUI runs the dashboard program. It implements ui.Tracker, and as an
// io.Writer it turns console log lines into dashboard log entries.
type TUI struct {
	program *tea.Program
	model   *Model
	onQuit  func()
}

// New creates a dashboard. onQuit runs when the program exits, whether
// the user stopped it or the run finished.
func New(onQuit func()) *TUI {
	model := NewModel()
	return &TUI{
		program: tea.NewProgram(model),
		model:   model,
		onQuit:  onQuit,
	}
}

// Start runs the program until the run finishes or the user quits
func (t *TUI) Start() error {
	_, err := t.program.Run()
	if t.onQuit != nil {
		t.onQuit()
	}
	return err
}

// Stop stops the program
func (t *TUI) Stop() {
	t.program.Quit()
}

// Send sends a message to the program
func (t *TUI) Send(msg tea.Msg) {
	t.program.Send(msg)
}

func (t *TUI) StartPage(pageURL string, reels int) {
	t.Send(PageStartMsg{URL: pageURL, Total: reels})
}

func (t *TUI) CompleteReel(pageURL, reelURL, label string) {
	t.Send(ReelDoneMsg{PageURL: pageURL, ReelURL: reelURL, Label: label})
}

func (t *TUI) FailReel(pageURL, reelURL string, err error) {
	t.Send(ReelFailedMsg{PageURL: pageURL, ReelURL: reelURL, Error: err})
}

func (t *TUI) FailPage(pageURL string, err error) {
	t.Send(PageFailedMsg{URL: pageURL, Error: err})
}

func (t *TUI) Finish(records int) {
	t.Send(FinishedMsg{Records: records})
}

// Write forwards each line of p as a log entry
func (t *TUI) Write(p []byte) (int, error) {
	scanner := bufio.NewScanner(bytes.NewReader(p))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		t.Send(parseLogLine(line))
	}
	return len(p), nil
}

// parseLogLine splits a plain console log line "15:04:05 WRN | message"
// into its level and message
func parseLogLine(line string) LogMsg {
	fields := strings.Fields(line)
	if len(fields) >= 2 {
		level := strings.ToUpper(fields[1])
		switch level {
		case "DBG", "INF", "WRN", "ERR", "FTL", "DEBG", "INFO", "WARN", "ERRO":
			msg := strings.TrimSpace(strings.Join(fields[2:], " "))
			msg = strings.TrimSpace(strings.TrimPrefix(msg, "|"))
			return LogMsg{Level: normalizeLevel(level), Message: msg}
		}
	}
	return LogMsg{Level: "INFO", Message: line}
}

func normalizeLevel(level string) string {
	switch level {
	case "DBG", "DEBG":
		return "DEBUG"
	case "INF", "INFO":
		return "INFO"
	case "WRN", "WARN":
		return "WARN"
	default:
		return "ERROR"
	}
}

// Finished reports whether the run reached its end before the dashboard closed
func (t *TUI) Finished() bool {
	return t.model.Finished()
}
