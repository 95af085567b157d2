// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/mavantgarderc/langcard/internal/domain"
)

const (
	reposPerPage = 100
	// maxRepoPages bounds pagination; 5000 owned repositories is far beyond
	// any account this tool targets.
	maxRepoPages = 50

	requestTimeout = 30 * time.Second
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	ListRepositories(ctx context.Context, login string) ([]domain.Repository, error)
	FetchLanguages(ctx context.Context, owner, name string) (domain.LanguageBytes, error)
	FetchAccountCreated(ctx context.Context, login string) (time.Time, error)
	FetchContributions(ctx context.Context, login string, from, to time.Time) (*domain.ContributionActivity, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
// In authenticated mode it lists the token owner's repositories (public and
// private); without a token it falls back to the public listing for the
// named account, and the GraphQL contribution queries are unavailable.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	authenticated bool
	logger        *log.Logger
}

// accountCreatedQuery resolves the account creation date, which bounds the
// range of contribution years to fetch.
type accountCreatedQuery struct {
	User struct {
		CreatedAt githubv4.DateTime
	} `graphql:"user(login: $login)"`
}

// contributionsQuery fetches one slice of the contribution calendar. GitHub
// limits the from/to span to a single year, so callers query year by year.
type contributionsQuery struct {
	User struct {
		ContributionsCollection struct {
			TotalCommitContributions            int
			TotalIssueContributions             int
			TotalPullRequestContributions       int
			TotalPullRequestReviewContributions int
			ContributionCalendar                struct {
				TotalContributions int
				Weeks              []struct {
					ContributionDays []struct {
						Date              string
						ContributionCount int
					}
				}
			}
		} `graphql:"contributionsCollection(from: $from, to: $to)"`
	} `graphql:"user(login: $login)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// An empty token yields an unauthenticated gateway restricted to public data.
func NewGitHubGateway(token string, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	httpClient := &http.Client{
		Transport: rateLimitWaiter,
		Timeout:   requestTimeout,
	}

	var graphqlClient *githubv4.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient.Transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		}
		graphqlClient = githubv4.NewClient(httpClient)
	}

	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: graphqlClient,
		authenticated: token != "",
		logger:        logger,
	}, nil
}

// ListRepositories returns the complete, de-duplicated set of repositories
// owned by the account, following pagination to the end.
func (g *GitHubGateway) ListRepositories(ctx context.Context, login string) ([]domain.Repository, error) {
	g.logger.Debug("Listing repositories", "login", login, "authenticated", g.authenticated)

	seen := make(map[string]bool)
	var repos []domain.Repository
	page := 1
	for {
		batch, resp, err := g.listPage(ctx, login, page)
		if err != nil {
			return nil, classify(fmt.Sprintf("repositories of %s", login), err)
		}
		for _, r := range batch {
			fullName := r.GetFullName()
			if seen[fullName] {
				continue
			}
			seen[fullName] = true
			repos = append(repos, domain.Repository{
				Owner:    r.GetOwner().GetLogin(),
				Name:     r.GetName(),
				FullName: fullName,
				Fork:     r.GetFork(),
				Archived: r.GetArchived(),
				Private:  r.GetPrivate(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		page = resp.NextPage
		if page > maxRepoPages {
			g.logger.Warn("Reached maximum repository page limit", "pages", maxRepoPages)
			break
		}
		g.logger.Debug("Fetching next page of repositories", "page", page)
	}
	g.logger.Debug("Completed repository listing", "count", len(repos))
	return repos, nil
}

func (g *GitHubGateway) listPage(ctx context.Context, login string, page int) ([]*github.Repository, *github.Response, error) {
	listOpts := github.ListOptions{Page: page, PerPage: reposPerPage}
	if g.authenticated {
		opts := &github.RepositoryListByAuthenticatedUserOptions{
			Type:        "owner",
			Sort:        "updated",
			ListOptions: listOpts,
		}
		return g.restClient.Repositories.ListByAuthenticatedUser(ctx, opts)
	}
	opts := &github.RepositoryListByUserOptions{
		Type:        "owner",
		Sort:        "updated",
		ListOptions: listOpts,
	}
	return g.restClient.Repositories.ListByUser(ctx, login, opts)
}

// FetchLanguages returns the language byte-map for a single repository.
func (g *GitHubGateway) FetchLanguages(ctx context.Context, owner, name string) (domain.LanguageBytes, error) {
	langs, _, err := g.restClient.Repositories.ListLanguages(ctx, owner, name)
	if err != nil {
		return nil, classify(fmt.Sprintf("languages of %s/%s", owner, name), err)
	}
	return domain.LanguageBytes(langs), nil
}

// FetchAccountCreated returns the account creation timestamp via GraphQL.
func (g *GitHubGateway) FetchAccountCreated(ctx context.Context, login string) (time.Time, error) {
	if g.graphqlClient == nil {
		return time.Time{}, &domain.AuthError{Reason: "contribution data requires a token"}
	}
	var q accountCreatedQuery
	variables := map[string]interface{}{"login": githubv4.String(login)}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return time.Time{}, fmt.Errorf("failed to query account creation date: %w", err)
	}
	return q.User.CreatedAt.Time, nil
}

// FetchContributions returns the contribution totals and calendar for the
// given span, flattened to a day list.
func (g *GitHubGateway) FetchContributions(ctx context.Context, login string, from, to time.Time) (*domain.ContributionActivity, error) {
	if g.graphqlClient == nil {
		return nil, &domain.AuthError{Reason: "contribution data requires a token"}
	}
	var q contributionsQuery
	variables := map[string]interface{}{
		"login": githubv4.String(login),
		"from":  githubv4.DateTime{Time: from},
		"to":    githubv4.DateTime{Time: to},
	}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to query contributions: %w", err)
	}

	collection := q.User.ContributionsCollection
	activity := &domain.ContributionActivity{
		Commits:      collection.TotalCommitContributions,
		Issues:       collection.TotalIssueContributions,
		PullRequests: collection.TotalPullRequestContributions,
		Reviews:      collection.TotalPullRequestReviewContributions,
		Total:        collection.ContributionCalendar.TotalContributions,
	}
	for _, week := range collection.ContributionCalendar.Weeks {
		for _, day := range week.ContributionDays {
			date, err := time.Parse("2006-01-02", day.Date)
			if err != nil {
				return nil, fmt.Errorf("failed to parse contribution date %q: %w", day.Date, err)
			}
			activity.Days = append(activity.Days, domain.ContributionDay{
				Date:  date,
				Count: day.ContributionCount,
			})
		}
	}
	return activity, nil
}

// classify maps go-github errors onto the domain error taxonomy so callers
// can distinguish "broken token" from "try again later" from "skip this repo".
func classify(resource string, err error) error {
	var rateLimitErr *github.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &domain.RateLimitError{ResetAt: rateLimitErr.Rate.Reset.Time}
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &domain.RateLimitError{}
	}
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &domain.AuthError{Reason: respErr.Message}
		case http.StatusNotFound:
			return &domain.NotFoundError{Resource: resource}
		}
	}
	return fmt.Errorf("failed to fetch %s: %w", resource, err)
}
