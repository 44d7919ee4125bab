package facebook

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// BaseURL is the base URL for Facebook
const BaseURL = "https://www.facebook.com"

var reelURLPattern = regexp.MustCompile(`(?i)/reel/\d+`)

// ReelURL builds the canonical URL of a reel
func ReelURL(id string) string {
	return fmt.Sprintf("%s/reel/%s", BaseURL, url.PathEscape(id))
}

// IsReelURL reports whether raw points at a reel page
func IsReelURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return reelURLPattern.MatchString(u.Path)
}

// ValidatePageURL checks that raw is an absolute URL with a scheme and host
func ValidatePageURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid page url %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid page url %q: scheme and host are required", raw)
	}
	return nil
}
