package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/raphaelgruber/movierec/internal/models"
	"github.com/raphaelgruber/movierec/internal/service"
	"github.com/spf13/cobra"
)

var titlesLimit int

var titlesCmd = &cobra.Command{
	Use:   "titles <approximate title>",
	Short: "List known titles close to the input",
	Long: `List known titles that closely match the input, best first.

Examples:
  movierec titles "pirates caribean"
  movierec titles alien -n 5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTitles,
}

func init() {
	titlesCmd.Flags().IntVarP(&titlesLimit, "limit", "n", 10, "max titles")
}

func runTitles(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	ctx := context.Background()

	var (
		found []models.TitleSuggestion
		err   error
	)
	if c := remote(); c != nil {
		found, err = c.Titles(ctx, query, titlesLimit)
	} else {
		found, err = getService().Suggest(ctx, query, titlesLimit)
	}

	out := cmd.OutOrStdout()
	if err != nil {
		if service.IsInvalidInput(err) {
			printQueryError(out, err, defaultTheme)
			return nil
		}
		return fmt.Errorf("titles: %w", err)
	}

	if len(found) == 0 {
		fmt.Fprintln(out, "No titles found.")
		return nil
	}
	for i, s := range found {
		fmt.Fprintf(out, "%d. %s (%.2f)\n", i+1, s.Title, s.Score)
	}
	return nil
}
