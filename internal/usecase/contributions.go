package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/mavantgarderc/langcard/internal/domain"
)

// currentStreakWindow bounds how far back the current-streak walk goes.
const currentStreakWindow = 365

// Contributions fetches the account's contribution calendar from its creation
// year through the current year and computes the all-time totals and streaks
// shown in the card's stat boxes.
func (a *Aggregator) Contributions(ctx context.Context, login string, now time.Time) (*domain.ContributionStats, error) {
	created, err := a.fetcher.FetchAccountCreated(ctx, login)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Account created", "login", login, "created", created.Format("2006-01-02"))

	var days []domain.ContributionDay
	total := 0
	for year := created.Year(); year <= now.Year(); year++ {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
		activity, err := a.fetcher.FetchContributions(ctx, login, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch contributions for %d: %w", year, err)
		}
		days = append(days, activity.Days...)
		total += activity.Total
		a.logger.Debug("Fetched contribution year", "year", year, "total", activity.Total)
	}

	current, longest := streaks(days, now)
	return &domain.ContributionStats{
		Total:         total,
		CurrentStreak: current,
		LongestStreak: longest,
	}, nil
}

// streaks computes the current and longest contribution streaks in days.
// The current streak walks backwards from today and breaks on the first day
// without contributions; the longest streak is the maximum run length over
// the whole calendar.
func streaks(days []domain.ContributionDay, now time.Time) (current, longest int) {
	if len(days) == 0 {
		return 0, 0
	}

	counts := make(map[string]int, len(days))
	first := days[0].Date
	last := days[0].Date
	for _, day := range days {
		counts[dayKey(day.Date)] += day.Count
		if day.Date.Before(first) {
			first = day.Date
		}
		if day.Date.After(last) {
			last = day.Date
		}
	}

	var runs []float64
	run := 0
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if counts[dayKey(d)] > 0 {
			run++
			continue
		}
		if run > 0 {
			runs = append(runs, float64(run))
			run = 0
		}
	}
	if run > 0 {
		runs = append(runs, float64(run))
	}
	if len(runs) > 0 {
		if max, err := stats.Max(runs); err == nil {
			longest = int(max)
		}
	}

	floor := now.AddDate(0, 0, -currentStreakWindow)
	for d := now; !d.Before(floor) && !d.Before(first); d = d.AddDate(0, 0, -1) {
		if counts[dayKey(d)] == 0 {
			break
		}
		current++
	}
	return current, longest
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
