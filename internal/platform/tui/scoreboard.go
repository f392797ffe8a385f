package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/clicko/internal/config"
	"github.com/vovakirdan/clicko/internal/games/clicko"
	"github.com/vovakirdan/clicko/internal/registry"
	"github.com/vovakirdan/clicko/internal/storage"
)

// topPerLevel is how many clears of a level the scoreboard keeps.
const topPerLevel = 2

// levelRow is the scoreboard line of one level.
type levelRow struct {
	level  int
	clicks int
	top    []storage.TimeEntry // Fastest first, at most topPerLevel
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Next, k.Prev},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next variant"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev variant"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardStatsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	tabStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	emptyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 4)
)

// ScoreboardModel shows the best times of every level, one variant at a
// time.
type ScoreboardModel struct {
	variants  []registry.GameInfo
	current   int
	store     *storage.Store
	levels    config.LevelsConfig
	rows      []levelRow
	stats     *storage.GameStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewScoreboardModel creates a new scoreboard model. store may be nil.
func NewScoreboardModel(store *storage.Store, cfg config.ClickoConfig, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		variants: registry.List(),
		store:    store,
		levels:   cfg.Levels,
		keys:     DefaultScoreboardKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	m.table = m.newTable()
	if len(m.variants) > 0 {
		m.load(m.variants[0].ID)
	}
	return m
}

// newTable sizes the table to the window.
func (m *ScoreboardModel) newTable() table.Model {
	setW := max(min(m.width-44, 20), 10)
	columns := []table.Column{
		{Title: "Level", Width: 6},
		{Title: "Clicks", Width: 7},
		{Title: "Best", Width: 7},
		{Title: "2nd", Width: 7},
		{Title: "Set", Width: setW},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-11, 3)), // Title, stats, tabs, frame and help
	)

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

// load reads the times of one variant. Levels without a clear keep an
// empty row so the table always lists the whole campaign.
func (m *ScoreboardModel) load(gameID string) {
	m.rows = make([]levelRow, m.levels.Count)
	m.stats = nil
	for i := range m.rows {
		m.rows[i] = levelRow{level: i, clicks: m.levels.Clicks(i)}
	}

	if m.store != nil {
		for i := range m.rows {
			top, err := m.store.TopTimes(gameID, i, topPerLevel)
			if err != nil {
				logger.Warn("cannot load level times", "game", gameID, "level", i+1, "error", err)
				continue
			}
			m.rows[i].top = top
		}
		if stats, err := m.store.GetGameStats(gameID); err == nil {
			m.stats = stats
		}
	}

	m.table.SetRows(m.tableRows())
	m.table.GotoTop()
}

func (m ScoreboardModel) tableRows() []table.Row {
	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		best, second, set := "--:--", "--:--", ""
		if len(r.top) > 0 {
			best = clicko.FormatSeconds(r.top[0].Seconds)
			set = humanize.Time(r.top[0].CreatedAt)
		}
		if len(r.top) > 1 {
			second = clicko.FormatSeconds(r.top[1].Seconds)
		}
		rows[i] = table.Row{strconv.Itoa(r.level + 1), strconv.Itoa(r.clicks), best, second, set}
	}
	return rows
}

// cleared reports whether any level of the variant has a time.
func (m ScoreboardModel) cleared() bool {
	for _, r := range m.rows {
		if len(r.top) > 0 {
			return true
		}
	}
	return false
}

// statsLine summarizes all clears of the current variant.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.Clears == 0 {
		return ""
	}
	return fmt.Sprintf("%s clears  |  %d levels  |  %s played  |  last %s",
		humanize.Comma(int64(m.stats.Clears)),
		m.stats.LevelsCleared,
		clicko.FormatSeconds(int(m.stats.TotalSeconds)),
		humanize.Time(m.stats.LastPlayed),
	)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.switchVariant(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.switchVariant(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.table.SetRows(m.tableRows())
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) switchVariant(step int) {
	if len(m.variants) == 0 {
		return
	}
	m.current = (m.current + step + len(m.variants)) % len(m.variants)
	m.load(m.variants[m.current].ID)
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "BEST TIMES"
	if len(m.variants) > 0 {
		title = "BEST TIMES - " + m.variants[m.current].Title
	}
	b.WriteString(boardTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	if line := m.statsLine(); line != "" {
		b.WriteString(boardStatsStyle.Render(centerText(line, m.width)))
	}
	b.WriteString("\n\n")

	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")

	content := m.table.View()
	if !m.cleared() {
		content = emptyStyle.Render("No levels cleared yet.\nClear a level to set a best time!")
	}
	b.WriteString(centerText(boardFrameStyle.Render(content), m.width))
	b.WriteString("\n")

	b.WriteString(boardStatsStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs renders the variant switcher.
func (m ScoreboardModel) tabs() string {
	tabs := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.current {
			tabs[i] = activeTabStyle.Render(v.Title)
		} else {
			tabs[i] = tabStyle.Render(v.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, cfg config.ClickoConfig, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, cfg, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
