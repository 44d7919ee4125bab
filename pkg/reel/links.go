package reel

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DiscoverLinks returns the absolute reel URLs referenced by a listing page.
// Anchor hrefs are collected first, then the raw markup is scanned for reel
// paths that anchors missed. Results keep first-seen order without
// duplicates. A nil limit means no cap; a negative limit yields nothing.
func DiscoverLinks(baseURL, markup string, limit *int) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		base = &url.URL{}
	}

	var found []string
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup)); err == nil {
		doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			if ReelPathPattern.MatchString(href) {
				found = append(found, resolve(base, href))
			}
		})
	}
	for _, path := range ReelPathPattern.FindAllString(markup, -1) {
		found = append(found, resolve(base, path))
	}

	links := dedupe(found)
	if limit != nil {
		n := *limit
		if n < 0 {
			n = 0
		}
		if n < len(links) {
			links = links[:n]
		}
	}
	return links
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
