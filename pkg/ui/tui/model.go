package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
)

// PageState represents the state of a listing page
type PageState int

const (
	PagePending PageState = iota
	PageActive
	PageDone
	PageFailed
)

// PageItem tracks one listing page
type PageItem struct {
	URL       string
	Total     int
	Done      int
	Failed    int
	State     PageState
	Error     error
	StartTime time.Time
}

// LogMessage represents a log entry
type LogMessage struct {
	Time    time.Time
	Level   string
	Message string
}

// Model is the bubbletea model of the scrape dashboard. It is only touched
// from the program's event loop.
type Model struct {
	spinner spinner.Model
	bar     progress.Model

	pages     map[string]*PageItem
	pageOrder []string
	recent    []string
	maxRecent int

	records      int
	failedReels  int
	sessionStart time.Time
	finished     bool

	width          int
	height         int
	showHelp       bool
	logMessages    []LogMessage
	maxLogMessages int
}

// NewModel creates a new dashboard model
func NewModel() *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = labelStyle

	return &Model{
		spinner:        s,
		bar:            progress.New(progress.WithDefaultGradient()),
		pages:          make(map[string]*PageItem),
		maxRecent:      5,
		sessionStart:   time.Now(),
		maxLogMessages: 50,
	}
}

func (m *Model) page(url string) *PageItem {
	p, ok := m.pages[url]
	if !ok {
		p = &PageItem{URL: url}
		m.pages[url] = p
		m.pageOrder = append(m.pageOrder, url)
	}
	return p
}

// StartPage marks a page as active with total reels to visit
func (m *Model) StartPage(url string, total int) {
	p := m.page(url)
	p.State = PageActive
	p.Total = total
	p.StartTime = time.Now()
	if total == 0 {
		p.State = PageDone
	}
}

// CompleteReel records an extracted reel
func (m *Model) CompleteReel(pageURL, reelURL, label string) {
	p := m.page(pageURL)
	p.Done++
	m.records++
	if p.Done >= p.Total {
		p.State = PageDone
	}

	m.recent = append(m.recent, label)
	if len(m.recent) > m.maxRecent {
		m.recent = m.recent[len(m.recent)-m.maxRecent:]
	}
}

// FailReel records a reel that could not be scraped
func (m *Model) FailReel(pageURL, reelURL string, err error) {
	p := m.page(pageURL)
	p.Done++
	p.Failed++
	m.failedReels++
	if p.Done >= p.Total {
		p.State = PageDone
	}
}

// FailPage marks a page as failed
func (m *Model) FailPage(url string, err error) {
	p := m.page(url)
	p.State = PageFailed
	p.Error = err
}

// AddLogMessage adds a log message, keeping the most recent ones
func (m *Model) AddLogMessage(level, message string) {
	m.logMessages = append(m.logMessages, LogMessage{
		Time:    time.Now(),
		Level:   level,
		Message: message,
	})
	if len(m.logMessages) > m.maxLogMessages {
		m.logMessages = m.logMessages[len(m.logMessages)-m.maxLogMessages:]
	}
}

// Progress returns the share of discovered reels already visited
func (m *Model) Progress() float64 {
	total, done := 0, 0
	for _, p := range m.pages {
		total += p.Total
		done += p.Done
	}
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}

// Records returns the number of extracted reels
func (m *Model) Records() int {
	return m.records
}

// Finished reports whether the run is over
func (m *Model) Finished() bool {
	return m.finished
}

// formatDuration formats a duration as mm:ss or hh:mm:ss
func formatDuration(d time.Duration) string {
	if d < 0 {
		return "00:00"
	}

	h := int(d.Hours())
	mins := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, mins, s)
	}
	return fmt.Sprintf("%02d:%02d", mins, s)
}
