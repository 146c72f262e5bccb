package service

import (
	"regexp"
	"strings"
)

// "A or B", "A / B", "A, B"
var reAlternatives = regexp.MustCompile(`(?i)\s+or\s+|\s*/\s*|\s*,\s*`)

// placeholders that mean "no requirement given"
var emptyValues = map[string]struct{}{
	"none":          {},
	"not specified": {},
	"n/a":           {},
}

// Split breaks a raw requirement line into its alternative component names.
// Blank input and placeholder values yield nil.
func Split(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if _, ok := emptyValues[strings.ToLower(raw)]; ok {
		return nil
	}
	var out []string
	for _, p := range reAlternatives.Split(raw, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
