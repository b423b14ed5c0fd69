package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/one-drop/internal/registry"
	"github.com/vovakirdan/one-drop/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show layout list sidebar
	sidebarWidth       = 24  // Width of layout list sidebar
	maxRuns            = 100 // Max runs to load
)

// HistoryKeyMap defines the key bindings for the run history.
type HistoryKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	NextLayout key.Binding
	PrevLayout key.Binding
	Toggle     key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLayout, k.Toggle, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextLayout, k.PrevLayout},
		{k.Toggle, k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev layout"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next layout"),
		),
		NextLayout: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next layout"),
		),
		PrevLayout: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev layout"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "best/recent"),
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

// HistoryModel is the Bubble Tea model for the run history screen.
// It shows either the fastest successful runs or the most recent runs of
// one layout at a time.
type HistoryModel struct {
	layouts     []registry.GameInfo
	cursor      int // Currently selected layout index
	store       *storage.Store
	runs        []storage.RunRecord
	stats       *storage.LayoutStats
	recent      bool // Recent runs instead of best times
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	embedded    bool // Hosted by a SessionModel; Back does not quit the program
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool
}

// NewHistoryModel creates a new history model.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		layouts:     registry.List(),
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.load()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Result", Width: 11},
		{Title: "Time", Width: 8},
		{Title: "Player", Width: 10},
		{Title: "Date", Width: 13},
		{Title: "Cause", Width: 20},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}

	// The cause column takes whatever is left
	fixed := 0
	for _, c := range columns[:len(columns)-1] {
		fixed += c.Width + 2
	}
	if rest := tableWidth - fixed - 2; rest > columns[len(columns)-1].Width {
		columns[len(columns)-1].Width = rest
	}

	height := m.height - 9 // Header, stats line, help and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("25")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads runs and stats for the current layout.
func (m *HistoryModel) load() {
	m.runs = nil
	m.stats = nil

	if m.store != nil && len(m.layouts) > 0 {
		id := m.layouts[m.cursor].ID

		var (
			runs []storage.RunRecord
			err  error
		)
		if m.recent {
			runs, err = m.store.RecentRuns(id, maxRuns)
		} else {
			runs, err = m.store.BestTimes(id, maxRuns)
		}
		if err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetLayoutStats(id); err == nil {
			m.stats = stats
		}
	}

	m.updateTableRows()
}

// updateTableRows updates the table with the loaded runs.
func (m *HistoryModel) updateTableRows() {
	causeWidth := m.table.Columns()[len(m.table.Columns())-1].Width

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		player := r.Player
		if player == "" {
			player = "local"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			r.Outcome,
			fmt.Sprintf("%.1fs", r.Seconds),
			ansi.Truncate(player, 10, "…"),
			r.CreatedAt.Format("Jan 02 15:04"),
			ansi.Truncate(r.Cause, causeWidth, "…"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		case key.Matches(msg, m.keys.NextLayout), key.Matches(msg, m.keys.Right):
			if len(m.layouts) > 0 {
				m.cursor = (m.cursor + 1) % len(m.layouts)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevLayout), key.Matches(msg, m.keys.Left):
			if len(m.layouts) > 0 {
				m.cursor = (m.cursor + len(m.layouts) - 1) % len(m.layouts)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			m.recent = !m.recent
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
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

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run history.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	mode := "BEST TIMES"
	if m.recent {
		mode = "RECENT RUNS"
	}
	title := mode
	if len(m.layouts) > 0 {
		title = fmt.Sprintf("%s - %s", mode, m.layouts[m.cursor].Title)
	}

	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(dim.Render(m.statsLine()))
	b.WriteString("\n")
	b.WriteString(dim.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes the current layout.
func (m HistoryModel) statsLine() string {
	st := m.stats
	if st == nil || st.Runs == 0 {
		return "No runs yet"
	}
	line := fmt.Sprintf("Runs: %d  |  Sparked: %d (%.0f%%)", st.Runs, st.Successes, st.SuccessRate()*100)
	if st.Successes > 0 {
		line += fmt.Sprintf("  |  Best: %.1fs  |  Avg: %.1fs", st.BestTime, st.AvgTime)
	}
	return line
}

// renderWideLayout renders the history with a sidebar for layout selection.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Layouts\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, l := range m.layouts {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := runewidth.Truncate(l.Title, sidebarWidth-6, ".")
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders the history with the layout name above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.layouts) > 0 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.layouts[m.cursor].Title), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		if m.recent {
			return emptyStyle.Render("No runs recorded yet.")
		}
		return emptyStyle.Render("No drop has reached the seed yet.\nBe the first to spark life!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewHistoryModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
