package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index and runtime statistics",
	Long: `Show the size of the similarity index and timing statistics.

Without --server the index is built locally first, so the timings show how
long loading, vectorizing and the similarity matrix take on this dataset.

Examples:
  movierec stats
  movierec stats --server http://localhost:8501`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	if c := remote(); c != nil {
		stats, err := c.Stats(ctx)
		if err != nil {
			return fmt.Errorf("get server stats: %w", err)
		}
		printStats(out, stats.Index, stats.Metrics)
		return nil
	}

	svc := getService()
	if err := svc.Warm(ctx); err != nil {
		return fmt.Errorf("build index: %w", err)
	}
	printStats(out, svc.Stats(), collector.Snapshot())
	return nil
}
