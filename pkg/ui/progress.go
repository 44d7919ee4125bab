package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// ProgressDisplay renders a single updating progress line per page
type ProgressDisplay struct {
	mu        sync.Mutex
	page      string
	total     int
	done      int
	failed    int
	pages     int
	records   int
	startTime time.Time
	verbose   bool
}

// NewProgressDisplay creates a new progress display. In verbose mode every
// reel is printed on its own line instead of redrawing the progress line.
func NewProgressDisplay(verbose bool) *ProgressDisplay {
	return &ProgressDisplay{
		startTime: time.Now(),
		verbose:   verbose,
	}
}

// StartPage begins tracking a listing page with total reel links
func (p *ProgressDisplay) StartPage(pageURL string, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.page = pageURL
	p.total = total
	p.done = 0
	p.failed = 0
	p.pages++

	Printf("\n%s %s %s\n", Magenta("→"), pageURL, Dim(fmt.Sprintf("(%d reels)", total)))
}

// CompleteReel marks one reel as extracted
func (p *ProgressDisplay) CompleteReel(pageURL, reelURL, label string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	if p.verbose {
		Printf("%s %s %s\n", Green("✓"), label, Dim(reelURL))
		return
	}
	p.printProgress()
}

// FailReel marks one reel as failed
func (p *ProgressDisplay) FailReel(pageURL, reelURL string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	p.failed++
	if p.verbose {
		Printf("%s %s - %v\n", Red("✗"), reelURL, err)
		return
	}
	p.printProgress()
}

// FailPage reports a page that could not be scraped
func (p *ProgressDisplay) FailPage(pageURL string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	Printf("\n%s %s - %v\n", Red("✗"), pageURL, err)
}

// Finish prints the closing summary line
func (p *ProgressDisplay) Finish(records int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.records = records
	Printf("\n\n%s Scraped %d reels from %d pages in %s\n",
		Green("✓"),
		records,
		p.pages,
		formatDuration(time.Since(p.startTime)),
	)
}

// printProgress redraws the progress line for the current page
func (p *ProgressDisplay) printProgress() {
	progress := 0.0
	if p.total > 0 {
		progress = float64(p.done) / float64(p.total)
	}
	const barWidth = 20
	filled := int(progress * float64(barWidth))
	bar := strings.Repeat("━", filled) + strings.Repeat("─", barWidth-filled)

	line := fmt.Sprintf("[%s] %d/%d • %s", bar, p.done, p.total, formatDuration(time.Since(p.startTime)))
	if p.failed > 0 {
		line += " • " + Red(fmt.Sprintf("%d failed", p.failed))
	}

	Printf("\r%s\r%s", strings.Repeat(" ", 80), line)
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
