package ui

// Tracker receives progress events while pages are scraped
type Tracker interface {
	StartPage(pageURL string, reels int)
	CompleteReel(pageURL, reelURL, label string)
	FailReel(pageURL, reelURL string, err error)
	FailPage(pageURL string, err error)
	Finish(records int)
}

// NopTracker discards all progress events
type NopTracker struct{}

func (NopTracker) StartPage(string, int) {}
func (NopTracker) CompleteReel(string, string, string) {}
func (NopTracker) FailReel(string, string, error) {}
func (NopTracker) FailPage(string, error) {}
func (NopTracker) Finish(int) {}
