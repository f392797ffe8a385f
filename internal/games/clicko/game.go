// Package clicko provides the Clicko tile-reduction puzzle.
// Clicking a cell decrements its four orthogonal neighbours; a level is won
// when every counter reaches zero.
package clicko

import (
	"errors"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/clicko/internal/config"
	platformcore "github.com/vovakirdan/clicko/internal/core"
	"github.com/vovakirdan/clicko/internal/games/clicko/core"
	"github.com/vovakirdan/clicko/internal/registry"
)

// Records stores level times. Implemented by storage.Store.
type Records interface {
	RecordTime(gameID string, level, seconds int) (newBest bool, err error)
	BestTime(gameID string, level int) (seconds int, ok bool, err error)
}

// Variant is one registered flavour of the game.
type Variant struct {
	ID    string
	Title string
	Deep  bool // use board.deep_max_cell_value
}

var (
	// Classic is the original 7-high variant.
	Classic = Variant{ID: "clicko", Title: "Clicko"}
	// Deep allows counters up to 20.
	Deep = Variant{ID: "clicko_deep", Title: "Clicko Deep", Deep: true}
)

// Package-level variables for configuration
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	selectedStart    int
	records          Records
	logger           = log.New(io.Discard)
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset overrides the preset from the config file.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetStartLevel sets the starting level (1-indexed). 0 means start from beginning.
func SetStartLevel(level int) {
	selectedStart = level
}

// SetRecords sets where level times are stored. nil disables records.
func SetRecords(r Records) {
	records = r
}

// SetLogger sets the logger used by every game instance.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	for _, v := range []Variant{Classic, Deep} {
		v := v
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}

// Game implements the Clicko campaign.
type Game struct {
	variant Variant
	cfg     config.ClickoConfig
	log     *log.Logger

	rng    *rand.Rand
	engine *core.Engine
	coord  *core.Coordinator
	events *core.EventQueue
	anim   *Animator
	timer  *LevelTimer

	// Campaign
	level     int
	moves     int
	bestTime  int
	hasBest   bool
	newBest   bool
	clearWait int // Ticks left before the next level starts

	// Status
	tick      uint64
	paused    bool
	locked    bool
	levelDone bool
	gameOver  bool
	cleared   *platformcore.LevelResult // Set on the tick a level is cleared

	cursor  core.Coord
	message message

	// Screen
	screenW int
	screenH int
	layout  boardLayout
}

// New creates a game of the given variant. Reset must be called before use.
func New(v Variant) *Game {
	return &Game{
		variant: v,
		cfg:     config.DefaultClickoConfig(),
		log:     logger,
		timer:   NewLevelTimer(60),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Config returns the configuration in effect.
func (g *Game) Config() config.ClickoConfig {
	return g.cfg
}

// Engine returns the rules engine of the current level.
func (g *Game) Engine() *core.Engine {
	return g.engine
}

// Reset loads the configuration and starts a new campaign.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.log = logger.With("game", g.variant.ID)
	g.cfg = g.loadConfig()

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.timer = NewLevelTimer(cfg.TickRate)
	g.tick = 0
	g.paused = false
	g.gameOver = false

	ec := core.EngineConfig{
		Width:        g.cfg.Board.Width,
		Height:       g.cfg.Board.Height,
		MaxCellValue: g.cfg.Board.MaxCellValue,
		UndoPolicy:   core.UndoPolicy(g.cfg.Rules.UndoPolicy),
	}
	if g.variant.Deep {
		ec.MaxCellValue = g.cfg.Board.DeepMaxCellValue
	}
	engine, err := core.NewEngine(ec)
	if err != nil {
		g.log.Warn("bad board config, using defaults", "error", err)
		ec = core.DefaultEngineConfig()
		if g.variant.Deep {
			ec.MaxCellValue = config.DefaultClickoConfig().Board.DeepMaxCellValue
		}
		engine, _ = core.NewEngine(ec)
	}

	g.engine = engine
	g.events = core.NewEventQueue()
	g.anim = NewAnimator(map[core.AnimKind]int{
		core.AnimReduce: g.cfg.Animation.ReduceTicks,
		core.AnimReject: g.cfg.Animation.RejectTicks,
	})
	g.coord = core.NewCoordinator(g.engine, g.anim, g.events)
	g.layout = newBoardLayout(g.engine.Width(), g.engine.Height(), g.screenW, g.screenH)

	// Apply selected start level
	level := 0
	if selectedStart > 0 {
		level = min(selectedStart, g.cfg.Levels.Count) - 1
		selectedStart = 0 // Reset after use
	}
	g.startLevel(level)
}

// loadConfig reads the YAML config, falling back to defaults on error.
func (g *Game) loadConfig() config.ClickoConfig {
	cfg, err := config.Load(configPath)
	if err != nil {
		g.log.Warn("cannot load config, using defaults", "error", err)
		cfg = config.DefaultClickoConfig()
	}

	config.ResolvePreset(&cfg, difficultyPreset)
	return cfg
}

// Resize adapts the layout to a new terminal size without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.engine != nil {
		g.layout = newBoardLayout(g.engine.Width(), g.engine.Height(), w, h)
	}
}

// startLevel abandons any in-flight move and generates a fresh board.
func (g *Game) startLevel(level int) {
	g.coord.Cancel()
	g.anim.Clear()
	g.events.Drain()

	g.level = level
	g.moves = 0
	g.locked = false
	g.levelDone = false
	g.newBest = false
	g.clearWait = 0
	g.message = message{}
	g.cursor = core.C(g.engine.Width()/2, g.engine.Height()/2)

	clicks := g.cfg.Levels.Clicks(level)
	realized := g.engine.Generate(clicks, g.rng)
	g.log.Info("level started", "level", level+1, "clicks", clicks, "realized", realized)

	g.bestTime, g.hasBest = g.lookupBest(level)

	g.timer.Reset()
	g.timer.Start()

	if g.engine.IsEmpty() {
		// Only a board without neighbours generates empty.
		g.finishLevel()
	}
}

func (g *Game) lookupBest(level int) (int, bool) {
	if records == nil {
		return 0, false
	}
	best, ok, err := records.BestTime(g.variant.ID, level)
	if err != nil {
		g.log.Warn("cannot read best time", "level", level+1, "error", err)
		return 0, false
	}
	return best, ok
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++
	g.cleared = nil

	if in.Has(platformcore.ActionRestart) {
		g.restart()
		return g.result()
	}

	if in.Has(platformcore.ActionPause) && !g.gameOver {
		g.paused = !g.paused
		if g.paused {
			g.timer.Stop()
		} else if !g.levelDone {
			g.timer.Start()
		}
	}
	if g.paused || g.gameOver {
		return g.result()
	}

	g.anim.Tick()
	g.timer.Tick()
	g.message.tick()

	if g.levelDone {
		g.clearWait--
		if g.clearWait <= 0 || in.Has(platformcore.ActionConfirm) || in.Has(platformcore.ActionClick) {
			g.startLevel(g.level + 1)
		}
		g.drainEvents()
		return g.result()
	}

	g.handleInput(in)
	g.drainEvents()
	return g.result()
}

// restart regenerates the current level, or the whole campaign once it is over.
func (g *Game) restart() {
	g.paused = false
	if g.gameOver {
		g.gameOver = false
		g.log.Info("campaign restarted")
		g.startLevel(0)
		return
	}
	g.log.Info("level restarted", "level", g.level+1)
	g.startLevel(g.level)
}

func (g *Game) handleInput(in platformcore.InputFrame) {
	if in.Empty() {
		return
	}
	if in.Has(platformcore.ActionUp) {
		g.moveCursor(core.DirUp)
	}
	if in.Has(platformcore.ActionDown) {
		g.moveCursor(core.DirDown)
	}
	if in.Has(platformcore.ActionLeft) {
		g.moveCursor(core.DirLeft)
	}
	if in.Has(platformcore.ActionRight) {
		g.moveCursor(core.DirRight)
	}

	if in.Has(platformcore.ActionUndo) {
		g.undo()
	}

	if in.Has(platformcore.ActionClick) {
		g.click(g.cursor)
	}
	for _, p := range in.Clicks {
		cell, ok := g.layout.cellAt(p.X, p.Y)
		if !ok {
			continue
		}
		g.cursor = cell
		g.click(cell)
	}
}

func (g *Game) moveCursor(d core.Dir) {
	next := g.cursor.Step(d)
	if g.engine.InBounds(next) {
		g.cursor = next
	}
}

// Click clicks the board cell c, as a cursor or mouse click would.
func (g *Game) Click(c core.Coord) error {
	if g.levelDone || g.gameOver || g.paused {
		return nil
	}
	return g.click(c)
}

func (g *Game) click(c core.Coord) error {
	_, err := g.coord.Click(c)
	switch {
	case err == nil:
	case errors.Is(err, core.ErrMoveInFlight):
		// The previous move is still animating; drop the click.
	case errors.Is(err, core.ErrIllegalMove):
		// Reported through MoveRejectedEvent.
	default:
		g.log.Debug("click ignored", "cell", c, "error", err)
	}
	return err
}

func (g *Game) undo() {
	at, err := g.coord.Undo()
	switch {
	case errors.Is(err, core.ErrMoveInFlight):
		return
	case errors.Is(err, core.ErrNoHistory):
		g.message.show("NOTHING TO UNDO", platformcore.ColorGray, g.cfg.Animation.MessageTicks)
		return
	case err != nil:
		g.message.show("UNDO BLOCKED", platformcore.ColorRed, g.cfg.Animation.MessageTicks)
		g.log.Debug("undo blocked", "cell", at, "policy", g.engine.Policy(), "error", err)
	default:
		g.moves--
		g.timer.AddPenalty(g.cfg.Rules.UndoPenaltySeconds)
		g.cursor = at
	}
	g.refreshLock()
}

// drainEvents handles everything the coordinator reported this tick.
func (g *Game) drainEvents() {
	for _, ev := range g.events.Drain() {
		switch ev := ev.(type) {
		case core.MoveStartedEvent:
			g.log.Debug("move started", "move", ev.Move, "cell", ev.At, "neighbors", ev.Neighbors)
		case core.MoveCommittedEvent:
			g.moves++
			g.log.Debug("move committed", "move", ev.Move, "cell", ev.At, "outcome", ev.Outcome)
			switch ev.Outcome {
			case core.OutcomeCleared:
				g.finishLevel()
			case core.OutcomeLocked:
				g.locked = true
				g.log.Info("board locked", "level", g.level+1, "total", g.engine.Total())
			default:
				g.locked = false
			}
		case core.CommitFailedEvent:
			g.log.Warn("commit failed", "move", ev.Move, "cell", ev.At, "error", ev.Err)
		case core.MoveRejectedEvent:
			g.log.Debug("move rejected", "cell", ev.At, "blockers", len(ev.Blockers))
			g.message.show("BLOCKED", platformcore.ColorRed, g.cfg.Animation.MessageTicks)
		case core.MoveCancelledEvent:
			g.log.Debug("move cancelled", "move", ev.Move, "cell", ev.At)
		case core.UndoneEvent:
			g.log.Debug("undone", "cell", ev.At, "error", ev.Err)
		}
	}
}

// refreshLock re-evaluates the lockout after the board changed outside a commit.
func (g *Game) refreshLock() {
	g.locked = !g.engine.IsEmpty() && g.engine.IsLocked()
}

// finishLevel stops the clock, records the time and schedules the next level.
func (g *Game) finishLevel() {
	g.timer.Stop()
	g.levelDone = true
	g.locked = false
	seconds := g.timer.Seconds()

	if records != nil {
		newBest, err := records.RecordTime(g.variant.ID, g.level, seconds)
		if err != nil {
			g.log.Warn("cannot record time", "level", g.level+1, "error", err)
		}
		g.newBest = newBest
		if newBest {
			g.bestTime, g.hasBest = seconds, true
		}
	}

	g.cleared = &platformcore.LevelResult{
		GameID:  g.variant.ID,
		Level:   g.level,
		Seconds: seconds,
	}
	g.log.Info("level cleared", "level", g.level+1, "time", FormatSeconds(seconds), "moves", g.moves, "best", g.newBest)

	if g.level+1 >= g.cfg.Levels.Count {
		g.gameOver = true
		g.log.Info("campaign complete")
		return
	}
	g.clearWait = g.cfg.Animation.ClearDelayTicks
}

func (g *Game) result() platformcore.StepResult {
	return platformcore.StepResult{State: g.State(), Cleared: g.cleared}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Level:     g.level,
		Levels:    g.cfg.Levels.Count,
		Seconds:   g.timer.Seconds(),
		Moves:     g.moves,
		Paused:    g.paused,
		LevelDone: g.levelDone,
		Locked:    g.locked,
		GameOver:  g.gameOver,
	}
}

// Cursor returns the cell under the keyboard cursor.
func (g *Game) Cursor() core.Coord {
	return g.cursor
}

// Snapshot is a compact view of the whole game.
type Snapshot struct {
	Tick    uint64
	Variant string
	Level   int
	Seconds int
	Board   core.Snapshot
	State   platformcore.GameState
}

// Snapshot captures the current game for comparison in tests and tools.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:    g.tick,
		Variant: g.variant.ID,
		Level:   g.level,
		Seconds: g.timer.Seconds(),
		Board:   g.engine.Snapshot(),
		State:   g.State(),
	}
}

// message is a transient line shown under the board.
type message struct {
	text  string
	color platformcore.Color
	ticks int
}

func (m *message) show(text string, c platformcore.Color, ticks int) {
	m.text = text
	m.color = c
	m.ticks = ticks
}

func (m *message) tick() {
	if m.ticks > 0 {
		m.ticks--
		if m.ticks == 0 {
			m.text = ""
		}
	}
}
