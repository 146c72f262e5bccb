package service

import (
	"strings"

	"benchmark-service/internal/benchmark/model"
)

// MatchThreshold is the minimum similarity (inclusive) for a candidate to be
// accepted as a catalog entry. Weaker matches are reported as no match.
const MatchThreshold = 0.7

// FindBestMatch returns the catalog record most similar to candidate.
// All records sharing the top similarity are kept and the highest score among
// them wins; on equal scores the earlier record wins.
func FindBestMatch(candidate string, catalog []model.Record) (model.Record, bool) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" || len(catalog) == 0 {
		return model.Record{}, false
	}

	best := -1.0
	var ties []int
	for i := range catalog {
		s := Ratio(candidate, catalog[i].Name)
		switch {
		case s > best:
			best = s
			ties = append(ties[:0], i)
		case s == best:
			ties = append(ties, i)
		}
	}
	if best < MatchThreshold {
		return model.Record{}, false
	}

	pick := ties[0]
	for _, i := range ties[1:] {
		if catalog[i].Score > catalog[pick].Score {
			pick = i
		}
	}
	return catalog[pick], true
}
