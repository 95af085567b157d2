package usecase

import (
	"math"
	"sort"
	"strings"

	"github.com/mavantgarderc/langcard/internal/domain"
)

// DefaultTopN is the number of languages shown on the card.
const DefaultTopN = 6

// Rank filters the distribution against the exclusion set (matched
// case-insensitively), sorts by byte total descending with a name-ascending
// tie-break, truncates to topN entries, and computes each entry's percentage
// of the surviving subset sum, rounded to one decimal place.
//
// The percentages are plain-rounded; no remainder redistribution. Their sum
// is 100.0 within a tolerance of 0.1 per entry.
func Rank(dist domain.AggregateDistribution, excluded map[string]struct{}, topN int) ([]domain.RankedEntry, error) {
	if topN <= 0 {
		topN = DefaultTopN
	}

	entries := make([]domain.RankedEntry, 0, len(dist))
	for name, bytes := range dist {
		if _, drop := excluded[strings.ToLower(name)]; drop {
			continue
		}
		entries = append(entries, domain.RankedEntry{Name: name, Bytes: bytes})
	}
	if len(entries) == 0 {
		return nil, &domain.NoLanguageDataError{}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Bytes != entries[j].Bytes {
			return entries[i].Bytes > entries[j].Bytes
		}
		return entries[i].Name < entries[j].Name
	})
	if len(entries) > topN {
		entries = entries[:topN]
	}

	sum := 0
	for _, e := range entries {
		sum += e.Bytes
	}
	if sum == 0 {
		return nil, &domain.NoLanguageDataError{}
	}
	for i := range entries {
		entries[i].Percent = math.Round(1000*float64(entries[i].Bytes)/float64(sum)) / 10
	}
	return entries, nil
}
