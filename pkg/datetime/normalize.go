package datetime

import (
	"fmt"
	"strings"
	"time"

	// Embedded zone database so zone lookups work on hosts without one.
	_ "time/tzdata"
)

const (
	// DefaultZone is the target zone when none is configured
	DefaultZone = "Asia/Karachi"
	// EnvZone names the environment variable that overrides the target zone
	EnvZone = "SCRAPER_TZ"

	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"
)

// layouts are tried in order. Values without an offset are read as UTC.
var layouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2 Jan 2006 15:04",
	"2 Jan 2006",
}

// isoLayouts catch the remaining ISO-8601 shapes
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04Z07:00",
	"2006-01-02T15",
}

// Normalizer rewrites timestamps into a fixed target zone
type Normalizer struct {
	loc *time.Location
}

// New returns a Normalizer targeting loc. A nil loc means UTC.
func New(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{loc: loc}
}

// NewForZone returns a Normalizer for an IANA zone name, falling back to
// UTC when the name is unknown.
func NewForZone(name string) *Normalizer {
	loc, err := LoadZone(name)
	if err != nil {
		return New(time.UTC)
	}
	return New(loc)
}

// LoadZone resolves an IANA zone name. An empty name selects DefaultZone.
func LoadZone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return loc, nil
}

// Location returns the target zone
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Parse reads value with the supported layouts
func (n *Normalizer) Parse(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Normalize converts value into the target zone and formats it as
// YYYY-MM-DD (dateOnly) or YYYY-MM-DD HH:MM. Values it cannot read are
// returned unchanged.
func (n *Normalizer) Normalize(value string, dateOnly bool) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	t, ok := n.Parse(value)
	if !ok {
		return value
	}
	local := t.In(n.loc)
	if dateOnly {
		return local.Format(DateLayout)
	}
	return local.Format(DateTimeLayout)
}
