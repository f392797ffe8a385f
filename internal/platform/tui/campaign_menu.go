package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/clicko/internal/config"
	"github.com/vovakirdan/clicko/internal/games/clicko"
	"github.com/vovakirdan/clicko/internal/storage"
)

// CampaignSelection holds the user's choice from the campaign menu.
type CampaignSelection struct {
	Continue bool // Restore the saved game
	Level    int  // 0 = start from beginning, 1..N = specific level
}

// levelInfo is one row of the level list.
type levelInfo struct {
	clicks   int
	best     int
	hasBest  bool
	unlocked bool
}

// CampaignModel lets users continue, start over or pick a level.
type CampaignModel struct {
	title         string
	saved         *clicko.SaveFile
	levels        []levelInfo
	options       []string
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	keyMapper     *KeyMapper
	help          help.Model
	selection     CampaignSelection
	choosing      bool
	quitting      bool
	back          bool
}

var lockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// NewCampaignModel creates the campaign menu for one game variant.
// store may be nil, in which case only level 1 is unlocked.
func NewCampaignModel(gameID, title string, cfg config.ClickoConfig, store *storage.Store, width, height int) CampaignModel {
	m := CampaignModel{
		title:     title,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
		choosing:  true,
	}

	var (
		best    map[int]int
		highest int
	)
	if store != nil {
		if data, ok, err := store.LoadGame(gameID); err != nil {
			logger.Warn("cannot read saved game", "game", gameID, "error", err)
		} else if ok {
			if f, err := clicko.DecodeSave(data); err == nil {
				m.saved = &f
			} else {
				logger.Warn("ignoring unreadable saved game", "game", gameID, "error", err)
			}
		}

		var err error
		if best, err = store.BestTimes(gameID); err != nil {
			logger.Warn("cannot read best times", "game", gameID, "error", err)
		}
		if p, err := store.LoadProgress(gameID); err == nil {
			highest = p.HighestLevel
		}
	}

	m.levels = make([]levelInfo, cfg.Levels.Count)
	for i := range m.levels {
		b, ok := best[i]
		m.levels[i] = levelInfo{
			clicks:   cfg.Levels.Clicks(i),
			best:     b,
			hasBest:  ok,
			unlocked: i <= highest,
		}
	}

	if m.saved != nil {
		m.options = append(m.options, fmt.Sprintf("Continue (level %d, %s)",
			m.saved.Level+1, clicko.FormatSeconds(m.saved.Seconds)))
	}
	m.options = append(m.options,
		fmt.Sprintf("New campaign (%d levels)", cfg.Levels.Count),
		"Select level...",
	)
	return m
}

// Init initializes the model.
func (m CampaignModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m CampaignModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m CampaignModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inLevelSelect {
		return m.handleLevelSelectKey(action)
	}
	return m.handleModeSelectKey(action)
}

func (m CampaignModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		option := m.cursor
		if m.saved == nil {
			option++ // No continue entry
		}
		switch option {
		case 0: // Continue
			m.choosing = false
			m.selection = CampaignSelection{Continue: true}
			return m, tea.Quit
		case 1: // New campaign
			m.choosing = false
			m.selection = CampaignSelection{}
			return m, tea.Quit
		case 2: // Select level
			m.inLevelSelect = true
			m.levelCursor = 0
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m CampaignModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		if !m.levels[m.levelCursor].unlocked {
			return m, nil
		}
		m.choosing = false
		m.selection = CampaignSelection{Level: m.levelCursor + 1} // 1-indexed
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the mode/level selection.
func (m CampaignModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewModeSelect()
}

func (m CampaignModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(strings.ToUpper(m.title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Clear every counter to zero.", m.width))
	b.WriteString("\n\n")

	for i, option := range m.options {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+option, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footer())

	return b.String()
}

func (m CampaignModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	for i, lvl := range m.levels {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}

		if !lvl.unlocked {
			line := fmt.Sprintf("%s%2d. locked", cursor, i+1)
			b.WriteString(lockedStyle.Render(centerText(line, m.width)))
			b.WriteString("\n")
			continue
		}

		line := fmt.Sprintf("%s%2d. %3d clicks   best %s", cursor, i+1, lvl.clicks, clicko.FormatBest(lvl.best, lvl.hasBest))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footer())

	return b.String()
}

// footer renders the key help without the scoreboard binding.
func (m CampaignModel) footer() string {
	keys := m.keyMapper.MenuKeys()
	keys.Scores.SetEnabled(false)
	return centerText(m.help.View(keys), m.width)
}

// Selected returns the selection, or nil if still choosing.
func (m CampaignModel) Selected() *CampaignSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m CampaignModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m CampaignModel) WantsBack() bool {
	return m.back
}

// RunCampaignMenu shows the campaign menu and returns the selection, or nil
// when the user backed out or quit.
func RunCampaignMenu(gameID, title string, cfg config.ClickoConfig, store *storage.Store, width, height int) (*CampaignSelection, error) {
	model := NewCampaignModel(gameID, title, cfg, store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(CampaignModel)
	if !ok {
		return nil, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}

	return m.Selected(), nil
}
