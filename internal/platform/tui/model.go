package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/clicko/internal/core"
	"github.com/vovakirdan/clicko/internal/registry"
	"github.com/vovakirdan/clicko/internal/storage"
)

var logger = log.New(io.Discard)

// SetLogger sets the logger used by the platform.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Resizer is implemented by games that can adapt to a new terminal size
// without starting over.
type Resizer interface {
	Resize(w, h int)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	saved      []byte // Saved game to continue, if any
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game. saved, when
// non-nil, is restored after the first Reset.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, saved []byte) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		saved:      saved,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.restore()

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// restore continues the saved game. A save that cannot be loaded is logged
// and the fresh campaign is kept.
func (m Model) restore() {
	if m.saved == nil {
		return
	}
	saver, ok := m.game.(registry.Saver)
	if !ok {
		return
	}
	if err := saver.Load(m.saved); err != nil {
		logger.Warn("cannot continue saved game", "game", m.game.ID(), "error", err)
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.persist()
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleMouse turns a left button press into a pointer click.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.inputFrame.AddClick(msg.X, msg.Y)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games that cannot relayout start over
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Cleared != nil {
		m.recordProgress(*result.Cleared)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// recordProgress stores campaign progress after a cleared level.
// Storage errors never interrupt the game.
func (m Model) recordProgress(res core.LevelResult) {
	if m.store == nil {
		return
	}

	if m.gameState.GameOver {
		if err := m.store.CompleteGame(res.GameID); err != nil {
			logger.Warn("cannot record completed campaign", "game", res.GameID, "error", err)
		}
		if err := m.store.ClearGame(res.GameID); err != nil {
			logger.Warn("cannot clear saved game", "game", res.GameID, "error", err)
		}
		return
	}

	if err := m.store.ReachLevel(res.GameID, res.Level+1); err != nil {
		logger.Warn("cannot record progress", "game", res.GameID, "level", res.Level+2, "error", err)
	}
}

// persist saves the running game so it can be continued later.
func (m Model) persist() {
	if m.store == nil {
		return
	}
	saver, ok := m.game.(registry.Saver)
	if !ok {
		return
	}

	data, ok, err := saver.Save()
	if err != nil {
		logger.Warn("cannot encode saved game", "game", m.game.ID(), "error", err)
		return
	}
	if !ok {
		if err := m.store.ClearGame(m.game.ID()); err != nil {
			logger.Warn("cannot clear saved game", "game", m.game.ID(), "error", err)
		}
		return
	}
	if err := m.store.SaveGame(m.game.ID(), data); err != nil {
		logger.Warn("cannot save game", "game", m.game.ID(), "error", err)
		return
	}
	logger.Info("game saved", "game", m.game.ID())
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".clicko", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("cannot save screenshot", "error", err)
		return
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		logger.Warn("cannot save screenshot", "error", err)
		return
	}
	logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, saved []byte) error {
	model := NewModel(game, store, cfg, saved)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Pointer clicks on the board
	)

	_, err := p.Run()
	return err
}
