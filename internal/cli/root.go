// Package cli provides the command-line interface for movierec.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/raphaelgruber/movierec/internal/client"
	"github.com/raphaelgruber/movierec/internal/config"
	"github.com/raphaelgruber/movierec/internal/dataset"
	"github.com/raphaelgruber/movierec/internal/metrics"
	"github.com/raphaelgruber/movierec/internal/service"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose     bool
	datasetPath string
	serverURL   string

	// Global config and logger
	cfg           config.Config
	logger        *slog.Logger
	loggerCleanup func() error

	// Lazy-initialized local recommender
	collector *metrics.Collector
	recSvc    *service.RecommendService
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "movierec",
	Short: "Content-based movie recommendations",
	Long: `movierec recommends movies similar to one you like.

Genres, keywords, tagline, cast and director of every movie in movies.csv are
turned into TF-IDF vectors and compared by cosine similarity. Your input is
matched to the closest known title first, so small typos are fine.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()
		if datasetPath != "" {
			cfg.DatasetPath = datasetPath
		}
		if serverURL != "" {
			cfg.ServerURL = serverURL
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		logger, loggerCleanup = config.SetupCLILogger(cfg, verbose)
		slog.SetDefault(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if loggerCleanup != nil {
			if err := loggerCleanup(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

// getService creates the local recommender on first use.
func getService() *service.RecommendService {
	if recSvc == nil {
		collector = metrics.NewCollector()
		loader := dataset.NewLoader(cfg.DatasetPath, dataset.ReadOptions{Encoding: cfg.DatasetEncoding}, logger, collector)
		recSvc = service.NewRecommendService(loader, service.Options{
			Limit:  cfg.ResultLimit,
			Cutoff: cfg.MatchCutoff,
		}, logger, collector)
	}
	return recSvc
}

// remote returns a client when a server URL was configured.
func remote() *client.Client {
	if cfg.ServerURL == "" {
		return nil
	}
	return client.New(cfg.ServerURL)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "path to movies.csv (default $MOVIEREC_DATASET or movies.csv)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "query a running movierec-server instead of the local dataset")

	// Add subcommands
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(titlesCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}
