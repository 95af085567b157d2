package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mavantgarderc/langcard/internal/artifact"
	"github.com/mavantgarderc/langcard/internal/config"
	"github.com/mavantgarderc/langcard/internal/domain"
	"github.com/mavantgarderc/langcard/internal/gateway"
	"github.com/mavantgarderc/langcard/internal/render"
	"github.com/mavantgarderc/langcard/internal/usecase"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Aggregates language statistics and writes the SVG card",
	Long: `Fetches every repository owned by the configured account, sums the
per-repository language byte counts, ranks the top languages, and renders
them as an SVG card.

Configuration is taken from the environment (a .env file is honored):
GITHUB_USERNAME or USERNAME (required), GH_TOKEN (optional, enables private
repositories and contribution stats), EXCLUDED_LANGS (comma-separated) and
TOP_LANGS (default 6).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := newLogger(os.Stderr, verbose)

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if output, _ := cmd.Flags().GetString("output"); output != "" {
			cfg.OutputPath = output
		}
		cfg.IncludeForks, _ = cmd.Flags().GetBool("include-forks")

		if cfg.Token == "" {
			logger.Warn("No GH_TOKEN provided; only public repositories will be analyzed and lower rate limits apply")
		}
		if len(cfg.Excluded) > 0 {
			logger.Info("Excluding languages", "count", len(cfg.Excluded))
		}

		githubGateway, err := gateway.NewGitHubGateway(cfg.Token, logger)
		if err != nil {
			return fmt.Errorf("failed to create GitHub gateway: %w", err)
		}
		aggregator := usecase.NewAggregator(githubGateway, logger)

		result, err := aggregator.Aggregate(ctx, cfg.Username, cfg.IncludeForks)
		if err != nil {
			return err
		}
		logger.Info("Aggregation complete",
			"languages", len(result.Languages),
			"analyzed", result.Analyzed,
			"skipped", result.Skipped)

		entries, err := usecase.Rank(result.Languages, cfg.Excluded, cfg.TopN)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			logger.Debug("Ranked language", "name", entry.Name, "bytes", entry.Bytes, "percent", entry.Percent)
		}

		var contrib *domain.ContributionStats
		if cfg.Token != "" {
			contrib, err = aggregator.Contributions(ctx, cfg.Username, time.Now())
			if err != nil {
				logger.Warn("Could not fetch contribution data; rendering card without it", "err", err)
				contrib = nil
			}
		}

		svg, err := render.Card(entries, contrib, render.DefaultConfig(cfg.Username))
		if err != nil {
			return err
		}

		changed, err := artifact.Write(cfg.OutputPath, svg)
		if err != nil {
			return err
		}
		if changed {
			logger.Info("Card written", "path", cfg.OutputPath, "bytes", len(svg))
		} else {
			logger.Info("Card unchanged", "path", cfg.OutputPath)
		}
		return nil
	},
}

// newLogger builds the run logger. Info level by default; --verbose lowers
// it to debug.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringP("output", "o", "", "Output path for the SVG card (default assets/languages.svg)")
	generateCmd.Flags().Bool("include-forks", false, "Include forked repositories in the analysis")
}
