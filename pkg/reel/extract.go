package reel

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/Bella040/facebook-reel-scraper/pkg/datetime"
	"github.com/Bella040/facebook-reel-scraper/pkg/logger"
)

// stage fills whatever record fields it can find. Stages never overwrite a
// field an earlier stage already set.
type stage struct {
	name string
	run  func(doc *goquery.Document, rec *Record)
}

// Extractor turns a reel page into a Record
type Extractor struct {
	normalizer *datetime.Normalizer
	logger     logger.Logger
	stages     []stage
}

// Option configures an Extractor
type Option func(*Extractor)

// WithNormalizer sets the normalizer applied to the date fields
func WithNormalizer(n *datetime.Normalizer) Option {
	return func(e *Extractor) { e.normalizer = n }
}

// WithLogger sets the logger used to report failing stages
func WithLogger(l logger.Logger) Option {
	return func(e *Extractor) { e.logger = l }
}

// NewExtractor creates an Extractor. Without WithNormalizer dates are left
// as found on the page.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{logger: logger.NewNopLogger()}
	for _, opt := range opts {
		opt(e)
	}
	e.stages = []stage{
		{"url", e.fromURL},
		{"meta", fromMeta},
		{"json-ld", fromStructuredData},
		{"text", fromVisibleText},
		{"scripts", fromScripts},
	}
	return e
}

// Extract parses one reel page. It never fails: missing or malformed
// signals leave the corresponding fields nil.
func (e *Extractor) Extract(markup, pageURL string) Record {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		doc = goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
	}

	rec := NewRecord(pageURL)
	for _, st := range e.stages {
		e.runStage(st, doc, &rec)
	}
	e.normalizeDates(&rec)
	return rec
}

func (e *Extractor) runStage(st stage, doc *goquery.Document, rec *Record) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.DebugWithFields("extraction stage failed", map[string]interface{}{
				"stage": st.name,
				"url":   *rec.URL,
				"error": fmt.Sprint(r),
			})
		}
	}()
	st.run(doc, rec)
}

func (e *Extractor) normalizeDates(rec *Record) {
	if e.normalizer == nil {
		return
	}
	if rec.ReelDateTime != nil {
		v := e.normalizer.Normalize(*rec.ReelDateTime, false)
		rec.ReelDateTime = &v
	}
	if rec.ReelDate != nil {
		v := e.normalizer.Normalize(*rec.ReelDate, true)
		rec.ReelDate = &v
	}
}

func (e *Extractor) fromURL(_ *goquery.Document, rec *Record) {
	pageURL := *rec.URL
	m := ReelIDPattern.FindStringSubmatch(pageURL)
	if m == nil {
		return
	}
	rec.SetIfAbsent("reelId", m[1])
	if owner, ok := OwnerFromURL(pageURL); ok {
		rec.SetIfAbsent("ownerUsername", owner)
	}
}

// OwnerFromURL returns the path segment preceding "reel" on a facebook.com
// reel URL, e.g. "Formula1" for https://www.facebook.com/Formula1/reel/555.
// The segment is returned as it appears in the URL, without unescaping.
func OwnerFromURL(pageURL string) (string, bool) {
	if !ReelIDPattern.MatchString(pageURL) {
		return "", false
	}
	u, err := url.Parse(pageURL)
	if err != nil || !IsFacebookHost(u.Hostname()) {
		return "", false
	}
	var segments []string
	for _, s := range strings.Split(u.EscapedPath(), "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	for i, s := range segments {
		if s == "reel" {
			if i == 0 {
				return "", false
			}
			return segments[i-1], true
		}
	}
	return "", false
}

// IsFacebookHost reports whether host is facebook.com or one of its subdomains
func IsFacebookHost(host string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	return host == "facebook.com" || strings.HasSuffix(host, ".facebook.com")
}

func fromMeta(doc *goquery.Document, rec *Record) {
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		key := s.AttrOr("property", "")
		if key == "" {
			key = s.AttrOr("name", "")
		}
		field, ok := metaFields[strings.TrimSpace(key)]
		if !ok {
			return
		}
		if content := strings.TrimSpace(s.AttrOr("content", "")); content != "" {
			rec.SetIfAbsent(field, content)
		}
	})
}

func fromStructuredData(doc *goquery.Document, rec *Record) {
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		body := strings.TrimSpace(s.Text())
		if body == "" {
			return
		}
		var data interface{}
		if err := json.Unmarshal([]byte(body), &data); err != nil {
			return
		}
		switch v := data.(type) {
		case map[string]interface{}:
			applyLinkedData(v, rec)
		case []interface{}:
			for _, item := range v {
				if obj, ok := item.(map[string]interface{}); ok {
					applyLinkedData(obj, rec)
				}
			}
		}
	})
}

func applyLinkedData(data map[string]interface{}, rec *Record) {
	setString := func(field, key string) {
		if s, ok := data[key].(string); ok {
			rec.SetIfAbsent(field, s)
		}
	}

	setString("reelDateTime", "uploadDate")
	setString("reelDate", "datePublished")
	switch thumb := data["thumbnailUrl"].(type) {
	case string:
		rec.SetIfAbsent("img", thumb)
	case []interface{}:
		if len(thumb) > 0 {
			if s, ok := thumb[0].(string); ok {
				rec.SetIfAbsent("img", s)
			}
		}
	}
	setString("caption", "name")
	setString("caption", "headline")
	if author, ok := data["author"].(map[string]interface{}); ok {
		if name, ok := author["name"].(string); ok {
			rec.SetIfAbsent("ownerUsername", name)
		}
	}
}

func fromVisibleText(doc *goquery.Document, rec *Record) {
	scanMetrics(visibleText(doc.Nodes), rec)
}

func scanMetrics(text string, rec *Record) {
	for _, m := range metrics {
		if rec.Has(m.key) {
			continue
		}
		match := m.pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		value := match[1]
		if m.normalize {
			value = NormalizeCount(value)
		}
		rec.SetIfAbsent(m.key, value)
	}
}

func fromScripts(doc *goquery.Document, rec *Record) {
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		if text == "" {
			return
		}

		if m := DateTimePattern.FindStringSubmatch(text); m != nil {
			if m[2] != "" {
				rec.SetIfAbsent("reelDateTime", m[1]+" "+m[2])
			} else {
				rec.SetIfAbsent("reelDate", m[1])
			}
		}

		scanMetrics(text, rec)

		if !rec.Has("ownerUsername") && strings.Contains(text, "page_name") {
			if m := PageNamePattern.FindStringSubmatch(text); m != nil {
				rec.SetIfAbsent("ownerUsername", m[1])
			}
		}
		if !rec.Has("music") {
			if m := MusicPattern.FindStringSubmatch(text); m != nil {
				rec.SetIfAbsent("music", m[1])
			}
		}
	})
}
