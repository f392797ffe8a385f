package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Level     int  // Current level, 0-based
	Levels    int  // Number of levels in the campaign
	Seconds   int  // Elapsed level time including penalties
	Moves     int  // Reductions committed on this level
	Paused    bool // Whether the game is paused
	LevelDone bool // Level cleared, waiting to advance
	Locked    bool // No reduction is possible
	GameOver  bool // Final level cleared
}

// LevelResult describes a finished level. Platforms use it to persist times.
type LevelResult struct {
	GameID  string
	Level   int
	Seconds int
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Cleared is set on the tick a level is cleared.
	Cleared *LevelResult
}
