package reel

import "strings"

var suffixShift = map[string]int{
	"k": 3,
	"m": 6,
	"b": 9,
}

// NormalizeCount expands a displayed count into a plain integer string.
// Commas are dropped and K/M/B suffixes multiply by 1e3/1e6/1e9. The
// fractional remainder is truncated. Tokens that are not a number are
// returned cleaned but otherwise unchanged.
func NormalizeCount(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	m := compactCountPattern.FindStringSubmatch(s)
	if m == nil {
		return s
	}

	shift := suffixShift[strings.ToLower(m[2])]
	whole, frac, _ := strings.Cut(m[1], ".")
	if len(frac) > shift {
		frac = frac[:shift]
	} else {
		frac += strings.Repeat("0", shift-len(frac))
	}

	digits := strings.TrimLeft(whole+frac, "0")
	if digits == "" {
		return "0"
	}
	return digits
}
