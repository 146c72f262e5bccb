package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// thousand separators seen in benchmark exports
var groupSeparators = strings.NewReplacer(",", "", " ", "", "\u00A0", "", "\u202F", "", "'", "")

// whole number, optionally with an all-zero fraction ("12345.0")
var rxScore = regexp.MustCompile(`^\d+(?:\.0+)?$`)

// ParseScore reads a non-negative integer benchmark score from a sheet cell.
// Thousand separators are ignored: "12,345" -> 12345, "9 876" -> 9876.
// Negative, fractional and non-numeric values are rejected.
func ParseScore(s string) (int, bool) {
	s = groupSeparators.Replace(strings.TrimSpace(s))
	if !rxScore.MatchString(s) {
		return 0, false
	}
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
