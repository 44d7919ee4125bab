// Package input reads the list of pages to scrape.
package input

import (
	"fmt"
	"os"
	"strings"

	"github.com/titanous/json5"
)

// Target is one page to scrape
type Target struct {
	URL string
	// MaxReels caps discovered reels; nil means unlimited
	MaxReels *int
}

// Load reads targets from a JSON or JSON5 file
func Load(path string, defaultMax *int) ([]Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	targets, err := Parse(data, defaultMax)
	if err != nil {
		return nil, fmt.Errorf("failed to parse input file %s: %w", path, err)
	}
	return targets, nil
}

// Parse decodes either a list of items or an object with a "pages" list.
// An item is a URL string or an object {url, maxReels}. Items without a URL
// are skipped. A missing maxReels takes defaultMax; an explicit null means
// unlimited.
func Parse(data []byte, defaultMax *int) ([]Target, error) {
	var raw interface{}
	if err := json5.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	var items []interface{}
	switch v := raw.(type) {
	case []interface{}:
		items = v
	case map[string]interface{}:
		pages, ok := v["pages"]
		if !ok || pages == nil {
			return nil, nil
		}
		list, ok := pages.([]interface{})
		if !ok {
			return nil, fmt.Errorf(`"pages" must be a list, got %T`, pages)
		}
		items = list
	default:
		return nil, fmt.Errorf("input must be a list or an object with pages, got %T", raw)
	}

	targets := make([]Target, 0, len(items))
	for i, item := range items {
		target, ok, err := parseItem(item, defaultMax)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if ok {
			targets = append(targets, target)
		}
	}
	return targets, nil
}

func parseItem(item interface{}, defaultMax *int) (Target, bool, error) {
	switch v := item.(type) {
	case string:
		u := strings.TrimSpace(v)
		return Target{URL: u, MaxReels: copyInt(defaultMax)}, u != "", nil
	case map[string]interface{}:
		u, _ := v["url"].(string)
		u = strings.TrimSpace(u)
		if u == "" {
			return Target{}, false, nil
		}
		target := Target{URL: u, MaxReels: copyInt(defaultMax)}
		if limit, present := v["maxReels"]; present {
			n, err := toLimit(limit)
			if err != nil {
				return Target{}, false, err
			}
			target.MaxReels = n
		}
		return target, true, nil
	default:
		return Target{}, false, nil
	}
}

// toLimit reads a maxReels value. Fractions are truncated and negative
// values clamp to 0.
func toLimit(v interface{}) (*int, error) {
	if v == nil {
		return nil, nil
	}
	f, ok := v.(float64)
	if !ok {
		return nil, fmt.Errorf("maxReels must be a number or null, got %v", v)
	}
	n := int(f)
	if n < 0 {
		n = 0
	}
	return &n, nil
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	n := *p
	return &n
}
