package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/raphaelgruber/movierec/internal/models"
	"github.com/raphaelgruber/movierec/internal/service"
	"github.com/spf13/cobra"
)

var (
	recommendJSON  bool
	recommendLimit int
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <movie name>",
	Short: "Recommend movies similar to a title",
	Long: `Recommend movies similar to a title.

The name is matched to the closest known title first, so typos are tolerated.
The matched movie is listed as row 1, followed by the most similar movies.

Examples:
  movierec recommend Avatar
  movierec recommend "the dark knight" -n 10
  movierec recommend avtaar --json
  movierec recommend Heat --server http://localhost:8501`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "print the result as JSON")
	recommendCmd.Flags().IntVarP(&recommendLimit, "limit", "n", 0, "max rows including the matched movie (default 30)")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	ctx := context.Background()

	var (
		set *models.RecommendationSet
		err error
	)
	if c := remote(); c != nil {
		set, err = c.Recommend(ctx, query)
	} else {
		set, err = getService().Recommend(ctx, query)
	}

	out := cmd.OutOrStdout()
	if err != nil {
		// Invalid input and no match are answers, not failures.
		if service.IsInvalidInput(err) || service.IsNoMatch(err) {
			printQueryError(out, err, defaultTheme)
			return nil
		}
		return fmt.Errorf("recommend: %w", err)
	}

	if recommendLimit > 0 && len(set.Results) > recommendLimit {
		set.Results = set.Results[:recommendLimit]
		set.Count = len(set.Results)
	}

	if recommendJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(set)
	}

	printRecommendations(out, set, defaultTheme, terminalWidth())
	return nil
}
