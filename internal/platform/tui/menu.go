package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/clicko/internal/core"
	"github.com/vovakirdan/clicko/internal/registry"
	"github.com/vovakirdan/clicko/internal/storage"
)

// MenuItem is one variant in the picker together with the player's
// progress in it.
type MenuItem struct {
	GameID  string
	Title   string
	Saved   bool // A saved game can be continued
	Reached int  // Highest level reached, 1-based
	Bests   int  // Levels with a recorded best time
	Wins    int  // Finished campaigns
}

// summary describes the progress shown under the title.
func (it MenuItem) summary() string {
	if it.Bests == 0 && it.Reached <= 1 {
		return "not played yet"
	}
	s := fmt.Sprintf("level %d reached, %d best times", it.Reached, it.Bests)
	if it.Wins > 0 {
		s += fmt.Sprintf(", %d× finished", it.Wins)
	}
	return s
}

var (
	menuTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuCursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	menuSummaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	menuSavedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// MenuModel is the Bubble Tea model for the variant picker menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	help           help.Model
	quitting       bool
	selected       *MenuItem // Set when user selects a variant
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. store may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, loadMenuItem(store, g))
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
	}
}

// loadMenuItem reads the progress of one variant. Storage errors leave the
// item looking unplayed.
func loadMenuItem(store *storage.Store, g registry.GameInfo) MenuItem {
	item := MenuItem{GameID: g.ID, Title: g.Title, Reached: 1}
	if store == nil {
		return item
	}

	if _, ok, err := store.LoadGame(g.ID); err == nil {
		item.Saved = ok
	}
	if p, err := store.LoadProgress(g.ID); err == nil {
		item.Reached = p.HighestLevel + 1
		item.Wins = p.GamesCompleted
	}
	if best, err := store.BestTimes(g.ID); err == nil {
		item.Bests = len(best)
	} else {
		logger.Warn("cannot read best times", "game", g.ID, "error", err)
	}
	return item
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)

	case MenuActionDown:
		m.cursor = min(m.cursor+1, len(m.items)-1)

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("C L I C K O", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Clear the board. Every click lowers the four neighbours.", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		label := "  " + item.Title
		if item.Saved {
			label += " (saved)"
		}
		line := centerText(label, m.width)
		switch {
		case i == m.cursor:
			line = centerText("> "+strings.TrimPrefix(label, "  "), m.width)
			b.WriteString(menuCursorStyle.Render(line))
		case item.Saved:
			b.WriteString(menuSavedStyle.Render(line))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
		b.WriteString(menuSummaryStyle.Render(centerText(item.summary(), m.width)))
		b.WriteString("\n\n")
	}

	b.WriteString(centerText(m.help.View(m.keyMapper.MenuKeys()), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}
	return result, nil
}
