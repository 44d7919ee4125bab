package scraper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bella040/facebook-reel-scraper/pkg/input"
	"github.com/Bella040/facebook-reel-scraper/pkg/logger"
	"github.com/Bella040/facebook-reel-scraper/pkg/reel"
)

const listingURL = "https://www.facebook.com/Formula1/reels"

// fakeFetcher serves canned markup keyed by URL
type fakeFetcher struct {
	mu     sync.Mutex
	pages  map[string]string
	fail   map[string]error
	calls  []string
	onCall func(url string)
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()
	if f.onCall != nil {
		f.onCall(url)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err, ok := f.fail[url]; ok {
		return "", err
	}
	if body, ok := f.pages[url]; ok {
		return body, nil
	}
	return "", fmt.Errorf("unexpected url %s", url)
}

type panicExtractor struct {
	panicOn string
	inner   RecordExtractor
}

func (p panicExtractor) Extract(markup, pageURL string) reel.Record {
	if pageURL == p.panicOn {
		panic("boom")
	}
	return p.inner.Extract(markup, pageURL)
}

type recordingTracker struct {
	started   map[string]int
	completed []string
	failed    []string
	failedPg  []string
	finished  int
}

func newRecordingTracker() *recordingTracker {
	return &recordingTracker{started: map[string]int{}, finished: -1}
}

func (r *recordingTracker) StartPage(page string, total int) { r.started[page] = total }
func (r *recordingTracker) CompleteReel(page, reelURL, label string) { r.completed = append(r.completed, reelURL) }
func (r *recordingTracker) FailReel(page, reelURL string, err error) { r.failed = append(r.failed, reelURL) }
func (r *recordingTracker) FailPage(page string, err error) { r.failedPg = append(r.failedPg, page) }
func (r *recordingTracker) Finish(records int) { r.finished = records }

func reelPage(caption string) string {
	return fmt.Sprintf(`<html><head><meta property="og:title" content="%s"></head><body></body></html>`, caption)
}

func listing(ids ...int) string {
	markup := "<html><body>"
	for _, id := range ids {
		markup += fmt.Sprintf(`<a href="/reel/%d">reel</a>`, id)
	}
	return markup + "</body></html>"
}

func reelLink(id int) string {
	return fmt.Sprintf("https://www.facebook.com/reel/%d", id)
}

func intPtr(n int) *int { return &n }

func TestRunCollectsRecords(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		listingURL:  listing(1, 2, 1),
		reelLink(1): reelPage("first"),
		reelLink(2): reelPage("second"),
	}}
	tracker := newRecordingTracker()
	s := New(fetcher, reel.NewExtractor(), WithTracker(tracker), WithLogger(logger.NewNopLogger()))

	records := s.Run(context.Background(), []input.Target{{URL: listingURL}})

	require.Len(t, records, 2)
	assert.Equal(t, "first", *records[0].Caption)
	assert.Equal(t, "2", *records[1].ReelID)
	assert.Equal(t, []string{listingURL, reelLink(1), reelLink(2)}, fetcher.calls)

	assert.Equal(t, 2, tracker.started[listingURL])
	assert.Equal(t, []string{reelLink(1), reelLink(2)}, tracker.completed)
	assert.Equal(t, 2, tracker.finished)

	stats := s.Stats()
	assert.Equal(t, 1, stats.Pages)
	assert.Equal(t, 2, stats.Links)
	assert.Equal(t, 2, stats.Records)
}

func TestRunRespectsTargetLimit(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		listingURL:  listing(1, 2, 3),
		reelLink(1): reelPage("only"),
	}}
	s := New(fetcher, reel.NewExtractor(), WithLogger(logger.NewNopLogger()))

	records := s.Run(context.Background(), []input.Target{{URL: listingURL, MaxReels: intPtr(1)}})
	require.Len(t, records, 1)
	assert.Equal(t, reelLink(1), *records[0].URL)
}

func TestRunSkipsInvalidPageURL(t *testing.T) {
	fetcher := &fakeFetcher{}
	tl := logger.NewTestLogger()
	tracker := newRecordingTracker()
	s := New(fetcher, reel.NewExtractor(), WithLogger(tl), WithTracker(tracker))

	records := s.Run(context.Background(), []input.Target{{URL: "not-a-url"}})
	assert.Empty(t, records)
	assert.NotNil(t, records)
	assert.Empty(t, fetcher.calls)
	assert.True(t, tl.HasMessage("Skipping invalid page URL"))
	assert.Equal(t, []string{"not-a-url"}, tracker.failedPg)
}

func TestRunFailedListingYieldsNothing(t *testing.T) {
	other := "https://www.facebook.com/other/reels"
	fetcher := &fakeFetcher{
		pages: map[string]string{
			other:       listing(7),
			reelLink(7): reelPage("survivor"),
		},
		fail: map[string]error{listingURL: errors.New("connection reset")},
	}
	tl := logger.NewTestLogger()
	s := New(fetcher, reel.NewExtractor(), WithLogger(tl))

	records := s.Run(context.Background(), []input.Target{{URL: listingURL}, {URL: other}})
	require.Len(t, records, 1)
	assert.Equal(t, "survivor", *records[0].Caption)
	assert.Equal(t, 1, s.Stats().FailedPages)
	assert.Len(t, tl.GetMessagesByLevel("WARN"), 1)
}

func TestRunSkipsFailedReel(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[string]string{
			listingURL:  listing(1, 2),
			reelLink(2): reelPage("second"),
		},
		fail: map[string]error{reelLink(1): errors.New("timeout")},
	}
	tracker := newRecordingTracker()
	s := New(fetcher, reel.NewExtractor(), WithTracker(tracker), WithLogger(logger.NewNopLogger()))

	records := s.Run(context.Background(), []input.Target{{URL: listingURL}})
	require.Len(t, records, 1)
	assert.Equal(t, []string{reelLink(1)}, tracker.failed)
	assert.Equal(t, 1, s.Stats().FailedReels)
}

func TestRunRecoversExtractionPanic(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		listingURL:  listing(1, 2),
		reelLink(1): reelPage("explodes"),
		reelLink(2): reelPage("fine"),
	}}
	tl := logger.NewTestLogger()
	extractor := panicExtractor{panicOn: reelLink(1), inner: reel.NewExtractor()}
	s := New(fetcher, extractor, WithLogger(tl))

	records := s.Run(context.Background(), []input.Target{{URL: listingURL}})
	require.Len(t, records, 1)
	assert.Equal(t, "fine", *records[0].Caption)

	debug := tl.GetMessagesByLevel("DEBUG")
	require.Len(t, debug, 1)
	assert.Equal(t, "Recovered from extraction panic", debug[0].Message)
	assert.Equal(t, "boom", debug[0].Fields["panic"])
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fetcher := &fakeFetcher{pages: map[string]string{
		listingURL:  listing(1, 2, 3),
		reelLink(1): reelPage("first"),
	}}
	fetcher.onCall = func(url string) {
		if url == reelLink(1) {
			cancel()
		}
	}
	s := New(fetcher, reel.NewExtractor(), WithLogger(logger.NewNopLogger()))

	records := s.Run(ctx, []input.Target{{URL: listingURL}, {URL: "https://www.facebook.com/next/reels"}})
	assert.Empty(t, records)
	assert.Equal(t, []string{listingURL, reelLink(1)}, fetcher.calls)
}
