package ui

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetColor(false)
	SetQuietMode(false)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		SetQuietMode(false)
	})
	return &buf
}

func TestPrintHelpersRespectQuietMode(t *testing.T) {
	buf := captureOutput(t)

	PrintInfo("Pages", "3")
	PrintError("Failed", errors.New("boom"))
	if got := buf.String(); got != "Pages: 3\nFailed: boom\n" {
		t.Errorf("unexpected output %q", got)
	}

	buf.Reset()
	SetQuietMode(true)
	PrintSuccess("hidden")
	if buf.Len() != 0 {
		t.Errorf("quiet mode should suppress output, got %q", buf.String())
	}
}

func TestColorize(t *testing.T) {
	captureOutput(t)

	if got := Green("ok"); got != "ok" {
		t.Errorf("colors disabled: got %q", got)
	}
	SetColor(true)
	defer SetColor(false)
	if got := Green("ok"); got != "\033[32mok\033[0m" {
		t.Errorf("colors enabled: got %q", got)
	}
}

func TestProgressDisplay(t *testing.T) {
	buf := captureOutput(t)

	p := NewProgressDisplay(false)
	p.StartPage("https://www.facebook.com/page/reels", 2)
	p.CompleteReel("https://www.facebook.com/page/reels", "https://www.facebook.com/reel/1", "reel 1")
	p.FailReel("https://www.facebook.com/page/reels", "https://www.facebook.com/reel/2", errors.New("timeout"))
	p.Finish(1)

	out := buf.String()
	for _, want := range []string{"(2 reels)", "1/2", "2/2", "1 failed", "Scraped 1 reels from 1 pages"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestProgressDisplayVerbose(t *testing.T) {
	buf := captureOutput(t)

	p := NewProgressDisplay(true)
	p.StartPage("https://www.facebook.com/page/reels", 1)
	p.CompleteReel("https://www.facebook.com/page/reels", "https://www.facebook.com/reel/1", "reel 1 by page")

	if !strings.Contains(buf.String(), "✓ reel 1 by page https://www.facebook.com/reel/1") {
		t.Errorf("verbose line missing:\n%s", buf.String())
	}
}

type fakeSender struct {
	titles []string
}

func (f *fakeSender) Send(title, message string) error {
	f.titles = append(f.titles, title)
	return errors.New("no desktop")
}

func TestNotifier(t *testing.T) {
	buf := captureOutput(t)
	sender := &fakeSender{}

	n := NewNotifierWithSender(sender)
	n.SendSuccess("Done", "12 reels")
	n.SendError("Failed", "no pages")

	if len(sender.titles) != 2 {
		t.Errorf("expected 2 notifications, got %d", len(sender.titles))
	}
	if !strings.Contains(buf.String(), "Done: 12 reels") {
		t.Errorf("console message missing: %q", buf.String())
	}

	NewNotifierWithSender(nil).SendSuccess("Done", "no sender")
}

func TestSenderFor(t *testing.T) {
	if senderFor("plan9") != nil {
		t.Error("unsupported platform should have no sender")
	}
	if _, ok := senderFor("linux").(LinuxNotificationSender); !ok {
		t.Error("linux should use notify-send")
	}
	if _, ok := senderFor("darwin").(MacOSNotificationSender); !ok {
		t.Error("darwin should use osascript")
	}
}

func TestNopTracker(t *testing.T) {
	var tr Tracker = NopTracker{}
	tr.StartPage("p", 1)
	tr.Finish(0)
}
