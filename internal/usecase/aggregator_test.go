package usecase

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mavantgarderc/langcard/internal/domain"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) ListRepositories(ctx context.Context, login string) ([]domain.Repository, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Repository), args.Error(1)
}

func (m *mockFetcher) FetchLanguages(ctx context.Context, owner, name string) (domain.LanguageBytes, error) {
	args := m.Called(ctx, owner, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.LanguageBytes), args.Error(1)
}

func (m *mockFetcher) FetchAccountCreated(ctx context.Context, login string) (time.Time, error) {
	args := m.Called(ctx, login)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *mockFetcher) FetchContributions(ctx context.Context, login string, from, to time.Time) (*domain.ContributionActivity, error) {
	args := m.Called(ctx, login, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContributionActivity), args.Error(1)
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestAggregator_Aggregate(t *testing.T) {
	repoA := domain.Repository{Owner: "u", Name: "alpha", FullName: "u/alpha"}
	repoB := domain.Repository{Owner: "u", Name: "beta", FullName: "u/beta"}
	fork := domain.Repository{Owner: "u", Name: "forked", FullName: "u/forked", Fork: true}
	archived := domain.Repository{Owner: "u", Name: "old", FullName: "u/old", Archived: true}

	testCases := []struct {
		name         string
		repos        []domain.Repository
		listErr      error
		langs        map[string]domain.LanguageBytes
		langErrs     map[string]error
		includeForks bool
		expected     *Result
		expectError  bool
		errTarget    func() interface{}
	}{
		{
			name:  "happy path - sums languages across non-fork repos",
			repos: []domain.Repository{repoA, repoB, fork, archived},
			langs: map[string]domain.LanguageBytes{
				"alpha": {"Go": 100, "Shell": 50},
				"beta":  {"Go": 25, "Python": 10},
			},
			expected: &Result{
				Languages: domain.AggregateDistribution{"Go": 125, "Shell": 50, "Python": 10},
				Analyzed:  2,
				Skipped:   0,
			},
		},
		{
			name:  "per-repo fetch failure is skipped, aggregate matches a run without that repo",
			repos: []domain.Repository{repoA, repoB},
			langs: map[string]domain.LanguageBytes{
				"alpha": {"Go": 100},
			},
			langErrs: map[string]error{
				"beta": &domain.NotFoundError{Resource: "languages of u/beta"},
			},
			expected: &Result{
				Languages: domain.AggregateDistribution{"Go": 100},
				Analyzed:  1,
				Skipped:   1,
			},
		},
		{
			name:  "empty language map counts as skipped",
			repos: []domain.Repository{repoA, repoB},
			langs: map[string]domain.LanguageBytes{
				"alpha": {"Go": 100},
				"beta":  {},
			},
			expected: &Result{
				Languages: domain.AggregateDistribution{"Go": 100},
				Analyzed:  1,
				Skipped:   1,
			},
		},
		{
			name:  "rate limit during language fetch aborts the run",
			repos: []domain.Repository{repoA},
			langErrs: map[string]error{
				"alpha": &domain.RateLimitError{},
			},
			expectError: true,
			errTarget:   func() interface{} { var e *domain.RateLimitError; return &e },
		},
		{
			name:        "listing failure propagates",
			listErr:     errors.New("boom"),
			expectError: true,
		},
		{
			name:         "include-forks policy includes forked repositories",
			repos:        []domain.Repository{repoA, fork},
			includeForks: true,
			langs: map[string]domain.LanguageBytes{
				"alpha":  {"Go": 100},
				"forked": {"Rust": 30},
			},
			expected: &Result{
				Languages: domain.AggregateDistribution{"Go": 100, "Rust": 30},
				Analyzed:  2,
				Skipped:   0,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := new(mockFetcher)
			if tc.listErr != nil {
				fetcher.On("ListRepositories", mock.Anything, "someone").Return(nil, tc.listErr)
			} else {
				fetcher.On("ListRepositories", mock.Anything, "someone").Return(tc.repos, nil)
			}
			for name, langs := range tc.langs {
				fetcher.On("FetchLanguages", mock.Anything, "u", name).Return(langs, nil)
			}
			for name, err := range tc.langErrs {
				fetcher.On("FetchLanguages", mock.Anything, "u", name).Return(nil, err)
			}

			aggregator := NewAggregator(fetcher, discardLogger())
			result, err := aggregator.Aggregate(context.Background(), "someone", tc.includeForks)

			if tc.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
				if tc.errTarget != nil {
					assert.ErrorAs(t, err, tc.errTarget())
				}
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, result)
			fetcher.AssertExpectations(t)
		})
	}
}

// Language maps for excluded repositories must never be fetched.
func TestAggregator_Aggregate_SkipsForkFetches(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("ListRepositories", mock.Anything, "someone").Return([]domain.Repository{
		{Owner: "u", Name: "forked", FullName: "u/forked", Fork: true},
	}, nil)

	aggregator := NewAggregator(fetcher, discardLogger())
	result, err := aggregator.Aggregate(context.Background(), "someone", false)

	assert.NoError(t, err)
	assert.Empty(t, result.Languages)
	fetcher.AssertNotCalled(t, "FetchLanguages", mock.Anything, mock.Anything, mock.Anything)
}

func TestFold_Commutative(t *testing.T) {
	a := domain.LanguageBytes{"Go": 100, "Shell": 5}
	b := domain.LanguageBytes{"Go": 50, "Python": 7}
	c := domain.LanguageBytes{"Python": 3}

	want := domain.AggregateDistribution{"Go": 150, "Shell": 5, "Python": 10}

	permutations := [][]domain.LanguageBytes{
		{a, b, c},
		{c, b, a},
		{b, a, c},
		{c, a, b},
	}
	for _, p := range permutations {
		assert.Equal(t, want, Fold(p))
	}
}

func TestFold_Empty(t *testing.T) {
	assert.Empty(t, Fold(nil))
	assert.Empty(t, Fold([]domain.LanguageBytes{{}, nil}))
}
