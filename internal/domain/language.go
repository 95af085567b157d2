// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// Repository identifies one repository owned by the analyzed account.
// Instances are fetched fresh on every run and never persisted.
type Repository struct {
	Owner    string
	Name     string
	FullName string
	Fork     bool
	Archived bool
	Private  bool
}

// LanguageBytes maps a language name to the number of bytes GitHub's
// classifier attributes to it within a single repository. Language names
// are kept case-sensitive, exactly as returned by the API.
type LanguageBytes map[string]int

// AggregateDistribution is the account-wide language distribution obtained
// by summing LanguageBytes maps across all analyzed repositories.
type AggregateDistribution map[string]int

// RankedEntry is one row of the rendered card. Percent is the entry's share
// of the top-N subset sum, rounded to one decimal place.
type RankedEntry struct {
	Name    string
	Bytes   int
	Percent float64
}

// ContributionDay is a single day in the contribution calendar.
type ContributionDay struct {
	Date  time.Time
	Count int
}

// ContributionActivity holds one fetched slice of the contribution calendar,
// typically a calendar year.
type ContributionActivity struct {
	Commits      int
	Issues       int
	PullRequests int
	Reviews      int
	Total        int
	Days         []ContributionDay
}

// ContributionStats is the merged, all-time contribution summary shown in
// the stat boxes of the card.
type ContributionStats struct {
	Total         int
	CurrentStreak int
	LongestStreak int
}
