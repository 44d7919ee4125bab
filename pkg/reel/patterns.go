package reel

import "regexp"

// count captures a number with an optional compact suffix ("1,234", "1.2K")
const count = `([\d,.]+(?:\s?[kmb])?)`

var (
	// ReelPathPattern matches a reel path inside an href or raw markup
	ReelPathPattern = regexp.MustCompile(`(?i)/reel/\d+/?`)
	// ReelIDPattern captures the numeric reel id
	ReelIDPattern = regexp.MustCompile(`(?i)/reel/(\d+)`)

	PlayCountPattern = regexp.MustCompile(`(?i)\b` + count + `\s*(plays|views)\b`)
	LikesPattern     = regexp.MustCompile(`(?i)\b` + count + `\s*(likes?)\b`)
	CommentsPattern  = regexp.MustCompile(`(?i)\b` + count + `\s*(comments?)\b`)
	SharesPattern    = regexp.MustCompile(`(?i)\b` + count + `\s*(shares?)\b`)
	DurationPattern  = regexp.MustCompile(`(?i)\b([\d.,]+)\s*(s|sec|seconds)\b`)

	// DateTimePattern captures an ISO date and an optional HH:MM[:SS] time
	DateTimePattern = regexp.MustCompile(`(?i)\b(\d{4}-\d{2}-\d{2})(?:[ T](\d{2}:\d{2}(?::\d{2})?))?`)
	PageNamePattern = regexp.MustCompile(`"page_name"\s*:\s*"([^"]+)"`)
	MusicPattern    = regexp.MustCompile(`"music[^"]*"\s*:\s*"([^"]+)"`)

	compactCountPattern = regexp.MustCompile(`^([0-9]*\.?[0-9]+)\s*([KkMmBb])?$`)
)

type metric struct {
	key       string
	pattern   *regexp.Regexp
	normalize bool
}

// metrics are scanned in this order over visible text and script bodies
var metrics = []metric{
	{"playCount", PlayCountPattern, true},
	{"likesCount", LikesPattern, true},
	{"commentsCount", CommentsPattern, true},
	{"sharesCount", SharesPattern, true},
	{"reelDuration", DurationPattern, false},
}

// metaFields maps meta property or name keys to record keys
var metaFields = map[string]string{
	"og:title":            "caption",
	"og:description":      "caption",
	"twitter:title":       "caption",
	"twitter:description": "caption",
	"og:image":            "img",
	"og:image:url":        "img",
	"og:url":              "url",
}
