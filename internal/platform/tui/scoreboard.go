package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/zombie-arena/internal/games/zombies"
	"github.com/vovakirdan/zombie-arena/internal/leaderboard"
	"github.com/vovakirdan/zombie-arena/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the stats sidebar
	sidebarWidth       = 24 // Width of stats sidebar
	maxRuns            = 50 // Max runs to load
)

// scoreView is one of the tables the scoreboard can show.
type scoreView int

const (
	viewLeaderboard scoreView = iota
	viewRuns
	viewCount
)

func (v scoreView) String() string {
	if v == viewRuns {
		return "Best Runs"
	}
	return "Top 10"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextView key.Binding
	PrevView key.Binding
	Refresh  key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.Refresh, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView, k.PrevView},
		{k.Refresh, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev view"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	svc         Services
	view        scoreView
	records     []leaderboard.Record
	runs        []storage.Run
	stats       *storage.GameStats
	status      string // shown instead of the table when loading failed
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	embedded    bool // back returns to the session instead of quitting
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a new scoreboard model and loads its data.
func NewScoreboardModel(svc Services, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		svc:         svc,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with columns for the current view.
func (m *ScoreboardModel) createTable() table.Model {
	var columns []table.Column
	if m.view == viewRuns {
		columns = []table.Column{
			{Title: "#", Width: 4},
			{Title: "Player", Width: 14},
			{Title: "Score", Width: 7},
			{Title: "Kills", Width: 6},
			{Title: "Acc", Width: 5},
			{Title: "Time", Width: 7},
			{Title: "Mode", Width: 7},
		}
	} else {
		columns = []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Player", Width: leaderboard.MaxNameLen},
			{Title: "Score", Width: 8},
			{Title: "Date", Width: 13},
		}
	}

	// Shrink the name column on narrow terminals.
	avail := m.width - 6
	if m.showSidebar {
		avail -= sidebarWidth + 4
	}
	total := 0
	for _, c := range columns {
		total += c.Width + 2
	}
	if over := total - avail; over > 0 {
		columns[1].Width = max(6, columns[1].Width-over)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches the data for the current view.
func (m *ScoreboardModel) load() {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	m.status = ""
	m.records, m.runs = nil, nil

	switch m.view {
	case viewLeaderboard:
		if m.svc.Board == nil {
			m.status = "Leaderboard unavailable"
			break
		}
		recs, err := m.svc.Board.Top(ctx)
		if err != nil {
			m.svc.logger().Warn("cannot load leaderboard", "err", err)
			m.status = "Leaderboard unavailable"
			break
		}
		m.records = recs
	case viewRuns:
		if m.svc.Runs == nil {
			m.status = "Run history needs the sqlite store"
			break
		}
		runs, err := m.svc.Runs.TopRuns(ctx, zombies.GameID, maxRuns)
		if err != nil {
			m.svc.logger().Warn("cannot load runs", "err", err)
			m.status = "Run history unavailable"
			break
		}
		m.runs = runs
	}

	m.stats = nil
	if m.svc.Runs != nil {
		if stats, err := m.svc.Runs.GetGameStats(ctx, zombies.GameID); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded data.
func (m *ScoreboardModel) updateTableRows() {
	var rows []table.Row
	switch m.view {
	case viewLeaderboard:
		rows = make([]table.Row, len(m.records))
		for i, r := range m.records {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				r.PlayerName,
				fmt.Sprintf("%d", r.Score),
				r.Date.Local().Format("Jan 02 15:04"),
			}
		}
	case viewRuns:
		rows = make([]table.Row, len(m.runs))
		for i, r := range m.runs {
			acc := "-"
			if r.ShotsFired > 0 {
				acc = fmt.Sprintf("%d%%", r.Hits*100/r.ShotsFired)
			}
			rows[i] = table.Row{
				fmt.Sprintf("%d", i+1),
				r.PlayerName,
				fmt.Sprintf("%d", r.Score),
				fmt.Sprintf("%d", r.Kills),
				acc,
				formatDuration(time.Duration(r.SurvivedMs) * time.Millisecond),
				r.Difficulty,
			}
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.embedded {
				return m, nil
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextView):
			m.switchView((m.view + 1) % viewCount)
			return m, nil

		case key.Matches(msg, m.keys.PrevView):
			m.switchView((m.view + viewCount - 1) % viewCount)
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) switchView(v scoreView) {
	m.view = v
	m.table = m.createTable()
	m.load()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || (m.goingBack && !m.embedded) {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("HIGH SCORES - "+m.view.String(), m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", tableRendered))
	} else {
		b.WriteString(centerStyled(tableRendered, m.width))
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar renders aggregated run statistics.
func (m ScoreboardModel) renderSidebar() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Stats\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	if m.stats == nil {
		sb.WriteString("No run history")
		return style.Render(sb.String())
	}
	s := m.stats
	lines := []string{
		fmt.Sprintf("Runs     %d", s.RunsCount),
		fmt.Sprintf("Best     %d", s.HighScore),
		fmt.Sprintf("Average  %.0f", s.AvgScore),
		fmt.Sprintf("Kills    %d", s.TotalKills),
		fmt.Sprintf("Accuracy %.0f%%", s.Accuracy()*100),
		fmt.Sprintf("Longest  %s", formatDuration(s.LongestRun)),
	}
	if !s.LastPlayed.IsZero() {
		lines = append(lines, "Last     "+s.LastPlayed.Local().Format("Jan 02"))
	}
	sb.WriteString(strings.Join(lines, "\n"))
	return style.Render(sb.String())
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
	if m.status != "" {
		return emptyStyle.Render(m.status)
	}
	if len(m.table.Rows()) == 0 {
		return emptyStyle.Render("No scores recorded yet.\nSurvive a wave to set a high score!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen on its own.
func RunScoreboard(svc Services, width, height int) error {
	model := NewScoreboardModel(svc, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
