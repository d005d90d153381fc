package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/table"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/raphaelgruber/movierec/internal/models"
	"github.com/raphaelgruber/movierec/internal/service"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// queryTimeout bounds one interactive query, including a first index build.
const queryTimeout = 2 * time.Minute

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Search for recommendations in a terminal UI",
	Long: `Start a terminal UI: type a movie name, press enter, and browse the
recommendations. Every query is independent; the index is built once.

Keys: enter search, tab switch between input and table, esc quit.

Examples:
  movierec interactive
  movierec interactive --server http://localhost:8501`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

// queryFunc answers one query.
type queryFunc func(ctx context.Context, query string) (*models.RecommendationSet, error)

// resultMsg carries the answer to a query.
type resultMsg struct {
	query string
	set   *models.RecommendationSet
	err   error
}

// interactiveModel is the bubbletea model for the recommendation UI.
type interactiveModel struct {
	query    queryFunc
	input    textinput.Model
	table    table.Model
	theme    Theme
	set      *models.RecommendationSet
	message  string
	loading  bool
	width    int
	quitting bool
}

// newInteractiveModel creates the model with the input focused.
func newInteractiveModel(q queryFunc) interactiveModel {
	input := textinput.New()
	input.Placeholder = "Avatar"
	input.Prompt = "> "
	input.CharLimit = 200
	input.Focus()

	t := table.New(
		table.WithColumns(columnsFor(80)),
		table.WithHeight(12),
	)
	t.SetStyles(table.DefaultStyles())

	return interactiveModel{
		query:   q,
		input:   input,
		table:   t,
		theme:   defaultTheme,
		message: service.ErrInvalidInput.Error(),
		width:   80,
	}
}

// columnsFor splits width between the table columns.
func columnsFor(width int) []table.Column {
	rest := max(width-4-8, 30)
	return []table.Column{
		{Title: tableHeaders[0], Width: 4},
		{Title: tableHeaders[1], Width: rest * 3 / 10},
		{Title: tableHeaders[2], Width: rest * 3 / 10},
		{Title: tableHeaders[3], Width: rest - 2*(rest*3/10)},
	}
}

// Init returns the initial command.
func (m interactiveModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and returns the updated model.
func (m interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.SetWidth(max(msg.Width-4, 10))
		m.table.SetColumns(columnsFor(msg.Width))
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(msg.Height-9, 3))
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.input.Focused() && m.set != nil {
				m.input.Blur()
				m.table.Focus()
			} else {
				m.table.Blur()
				return m, m.input.Focus()
			}
			return m, nil
		case "enter":
			if m.input.Focused() && !m.loading {
				m.loading = true
				return m, m.run(m.input.Value())
			}
		}

	case resultMsg:
		m.loading = false
		if msg.err != nil {
			m.set = nil
			m.message = service.Message(msg.err)
			m.table.SetRows(nil)
			return m, nil
		}
		m.set = msg.set
		m.message = ""
		m.table.SetRows(rowsFor(msg.set))
		m.table.GotoTop()
		return m, nil
	}

	var cmd tea.Cmd
	if m.table.Focused() {
		m.table, cmd = m.table.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// rowsFor converts results to table rows.
func rowsFor(set *models.RecommendationSet) []table.Row {
	rows := make([]table.Row, len(set.Results))
	for i, r := range set.Results {
		rows[i] = table.Row{strconv.Itoa(r.Rank), r.Title, r.Genre, r.Overview}
	}
	return rows
}

// run queries in a separate goroutine (command) to avoid blocking Update().
func (m interactiveModel) run(query string) tea.Cmd {
	q := m.query
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		set, err := q(ctx, query)
		return resultMsg{query: query, set: set, err: err}
	}
}

// View renders the UI.
func (m interactiveModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

// renderContent builds the display string.
func (m interactiveModel) renderContent() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.headerStyle().Render("Movie Recommendation System"))
	b.WriteString("\n\nEnter your favorite movie name:\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.theme.hintStyle().Render("Finding movies..."))
		b.WriteString("\n")
	case m.set != nil:
		b.WriteString(m.theme.headerStyle().Render(subheader))
		b.WriteString("\n")
		b.WriteString(m.table.View())
		b.WriteString("\n")
	case m.message != "":
		b.WriteString(m.message)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.hintStyle().Render("enter: search • tab: switch focus • esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func runInteractive(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("interactive mode needs a terminal; use 'movierec recommend' instead")
	}

	var q queryFunc
	if c := remote(); c != nil {
		sess, err := c.Dial(context.Background())
		if err != nil {
			return fmt.Errorf("connect to server: %w", err)
		}
		defer sess.Close()
		q = sess.Recommend
	} else {
		q = getService().Recommend
	}

	p := tea.NewProgram(newInteractiveModel(q))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive UI error: %w", err)
	}
	return nil
}
