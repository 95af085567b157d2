// Package config resolves the run configuration from the environment.
// The resolved Config is an immutable value passed into the pipeline; no
// component reads process-wide state on its own.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultTopN is how many languages the card shows.
	DefaultTopN = 6
	// DefaultOutputPath is where the SVG artifact is written.
	DefaultOutputPath = "assets/languages.svg"
)

// Config is the resolved configuration for one run.
type Config struct {
	// Username is the account whose repositories are analyzed.
	Username string
	// Token is the optional bearer credential. When empty the run is
	// restricted to public repositories at the unauthenticated rate ceiling.
	Token string
	// Excluded holds lowercased language names to drop before ranking.
	Excluded map[string]struct{}
	// TopN is the number of languages to rank and display.
	TopN int
	// OutputPath is where the SVG artifact is written.
	OutputPath string
	// IncludeForks flips the default policy of excluding forked repositories.
	IncludeForks bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	username := os.Getenv("GITHUB_USERNAME")
	if username == "" {
		username = os.Getenv("USERNAME")
	}
	if username == "" {
		return nil, fmt.Errorf("GITHUB_USERNAME (or USERNAME) environment variable must be set")
	}

	return &Config{
		Username:   username,
		Token:      os.Getenv("GH_TOKEN"),
		Excluded:   ParseExclusions(os.Getenv("EXCLUDED_LANGS")),
		TopN:       parseTopN(os.Getenv("TOP_LANGS"), DefaultTopN),
		OutputPath: DefaultOutputPath,
	}, nil
}

// ParseExclusions splits a comma-separated list of language names into a
// lowercased set. Empty segments are ignored.
func ParseExclusions(raw string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		if name := strings.ToLower(strings.TrimSpace(part)); name != "" {
			set[name] = struct{}{}
		}
	}
	return set
}

// parseTopN parses the TOP_LANGS override, falling back to def on empty,
// malformed, or non-positive input.
func parseTopN(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
