// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/mavantgarderc/langcard/internal/domain"
	"github.com/mavantgarderc/langcard/internal/gateway"
)

// languageFetchConcurrency caps the number of in-flight language requests.
const languageFetchConcurrency = 5

// Aggregator is the use case for building the account-wide language
// distribution. It orchestrates listing, per-repository fetching, and folding.
type Aggregator struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Result is the outcome of one aggregation run. Skipped counts repositories
// whose language map could not be fetched or came back empty; those never
// fail the run on their own.
type Result struct {
	Languages domain.AggregateDistribution
	Analyzed  int
	Skipped   int
}

// Aggregate lists the account's repositories, fetches each included
// repository's language byte-map concurrently, and folds them into one
// distribution. Forked repositories are excluded unless includeForks is set;
// archived repositories are always excluded.
//
// Per-repository results are gathered into an index-addressed slice and
// folded sequentially afterwards, so concurrent fetches share no mutable
// state and processing order cannot affect the outcome.
func (a *Aggregator) Aggregate(ctx context.Context, login string, includeForks bool) (*Result, error) {
	a.logger.Debug("Usecase: starting language aggregation", "login", login)

	repos, err := a.fetcher.ListRepositories(ctx, login)
	if err != nil {
		return nil, err
	}

	var included []domain.Repository
	for _, repo := range repos {
		if repo.Archived {
			continue
		}
		if repo.Fork && !includeForks {
			continue
		}
		included = append(included, repo)
	}
	a.logger.Debug("Repositories selected", "total", len(repos), "included", len(included))

	maps := make([]domain.LanguageBytes, len(included))
	failures := make([]error, len(included))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(languageFetchConcurrency)
	for i, repo := range included {
		i, repo := i, repo
		eg.Go(func() error {
			langs, err := a.fetcher.FetchLanguages(egCtx, repo.Owner, repo.Name)
			if err != nil {
				if isFatal(err) {
					return err
				}
				failures[i] = err
				return nil
			}
			maps[i] = langs
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	skipped := 0
	for i := range included {
		switch {
		case failures[i] != nil:
			skipped++
			a.logger.Warn("Skipping repository", "repo", included[i].FullName, "err", failures[i])
		case len(maps[i]) == 0:
			skipped++
			a.logger.Debug("Repository has no language data", "repo", included[i].FullName)
		}
	}

	result := &Result{
		Languages: Fold(maps),
		Analyzed:  len(included) - skipped,
		Skipped:   skipped,
	}
	a.logger.Debug("Usecase: aggregation complete", "languages", len(result.Languages))
	return result, nil
}

// Fold sums a sequence of per-repository byte-maps into one distribution.
// Summation is commutative: the order of maps does not affect the result.
func Fold(maps []domain.LanguageBytes) domain.AggregateDistribution {
	total := make(domain.AggregateDistribution)
	for _, m := range maps {
		for lang, bytes := range m {
			total[lang] += bytes
		}
	}
	return total
}

// isFatal reports whether a per-repository fetch error must abort the whole
// run rather than being absorbed as a skip.
func isFatal(err error) bool {
	var authErr *domain.AuthError
	var rateErr *domain.RateLimitError
	return errors.As(err, &authErr) || errors.As(err, &rateErr)
}
