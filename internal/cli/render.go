package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/raphaelgruber/movierec/internal/metrics"
	"github.com/raphaelgruber/movierec/internal/models"
	"github.com/raphaelgruber/movierec/internal/service"
	"golang.org/x/term"
)

// Theme holds the color scheme for terminal output.
type Theme struct {
	Header  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
	Border  lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Header:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
	Border:  lipgloss.Color("#3A3A3A"), // dark gray
}

func (t Theme) headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Header).Bold(true)
}

func (t Theme) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// Table column headers, as shown in the web UI.
var tableHeaders = []string{"#", "Movie Name", "Genre", "Overview"}

// subheader introduces a recommendation table.
const subheader = "Movies suggested for you:"

// terminalWidth returns the width of stdout, or 0 when it is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}

// renderTable renders the results as a bordered table. A positive width
// wraps the table to fit.
func renderTable(set *models.RecommendationSet, theme Theme, width int) string {
	rows := make([][]string, len(set.Results))
	for i, r := range set.Results {
		rows[i] = []string{strconv.Itoa(r.Rank), r.Title, r.Genre, r.Overview}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(tableHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return style.Inherit(theme.headerStyle())
			case row == 0 && col == 1:
				return style.Inherit(theme.titleStyle())
			}
			return style
		})
	if width > 0 {
		t = t.Width(width)
	}
	return t.String()
}

// printRecommendations writes the subheader and table.
func printRecommendations(w io.Writer, set *models.RecommendationSet, theme Theme, width int) {
	if set.MatchedTitle != set.Query {
		fmt.Fprintln(w, theme.hintStyle().Render(fmt.Sprintf("Showing results for %q", set.MatchedTitle)))
	}
	fmt.Fprintln(w, theme.headerStyle().Render(subheader))
	fmt.Fprintln(w, renderTable(set, theme, width))
}

// printQueryError writes the user-facing message for a failed query.
func printQueryError(w io.Writer, err error, theme Theme) {
	msg := service.Message(err)
	if service.IsDataUnavailable(err) {
		msg = theme.errorStyle().Render(msg)
	}
	fmt.Fprintln(w, msg)
}

// printStats displays index and runtime statistics.
func printStats(w io.Writer, index service.Stats, snap metrics.Snapshot) {
	fmt.Fprintf(w, "Index\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════\n")
	if !index.Ready {
		fmt.Fprintf(w, "Not built yet\n")
	} else {
		fmt.Fprintf(w, "Dataset:     %s\n", index.Dataset)
		fmt.Fprintf(w, "Movies:      %d (%d with a title)\n", index.Movies, index.Titled)
		fmt.Fprintf(w, "Vocabulary:  %d terms (%s)\n", index.Vocabulary, index.Model)
		fmt.Fprintf(w, "Overview:    %t\n", index.HasOverview)
	}

	fmt.Fprintf(w, "\nStatistics (in-memory, since start)\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════\n")
	fmt.Fprintf(w, "Uptime: %.1f seconds\n", snap.UptimeSeconds)

	ops := []struct {
		name string
		op   *metrics.OperationSnapshot
	}{
		{"Dataset load", snap.DatasetLoad},
		{"Feature combine", snap.FeatureCombine},
		{"Vectorize", snap.Vectorize},
		{"Similarity", snap.Similarity},
		{"Recommend", snap.Recommend},
	}
	for _, o := range ops {
		if o.op == nil {
			continue
		}
		fmt.Fprintf(w, "\n%s:\n", o.name)
		printOpStats(w, o.op)
	}

	if len(snap.Outcomes) > 0 {
		fmt.Fprintf(w, "\nOutcomes:\n")
		for _, name := range []string{metrics.OutcomeOK, metrics.OutcomeInvalidInput, metrics.OutcomeNoMatch, metrics.OutcomeDataUnavailable} {
			if n, ok := snap.Outcomes[name]; ok {
				fmt.Fprintf(w, "  %-17s %d\n", name, n)
			}
		}
	}
}

// printOpStats displays timing statistics for an operation.
func printOpStats(w io.Writer, op *metrics.OperationSnapshot) {
	fmt.Fprintf(w, "  Calls: %d, Errors: %d, Total: %dms\n", op.Count, op.Errors, op.TotalTimeMs)
	fmt.Fprintf(w, "  Time: avg %.1fms, min %dms, max %dms\n",
		op.AvgTimeMs, op.MinTimeMs, op.MaxTimeMs)
}
