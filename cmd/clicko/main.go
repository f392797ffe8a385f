// clicko is a terminal tile-reduction puzzle: clicking a cell decrements
// its four neighbours, and a level is won when every counter is zero.
//
// Usage:
//
//	clicko play [variant]    - Play a campaign
//	clicko menu              - Pick a variant interactively
//	clicko list              - List available variants
//	clicko scores [variant]  - Show best times per level
//	clicko export [variant]  - Write the saved game as YAML
//	clicko import <file>     - Load a saved game from YAML
//	clicko config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible boards
//	--db <path>          - Set database path (default: ~/.clicko/clicko.db)
//	--config <path>      - Use a custom config file
//	--difficulty <name>  - Override the difficulty preset
//	--log-file <path>    - Write logs to a file (default: ~/.clicko/clicko.log)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/clicko/internal/config"
	"github.com/vovakirdan/clicko/internal/games/clicko"
	"github.com/vovakirdan/clicko/internal/platform/tui"
	"github.com/vovakirdan/clicko/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string

	difficulty config.DifficultyPreset // Parsed --difficulty, empty when unset
	logCloser  io.Closer
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "clicko",
	Short: "Clicko - clear the board in your terminal",
	Long: `Clicko is a tile-reduction puzzle for the terminal.

Clicking a cell decrements each of its four neighbours by one. A click is
only allowed when every neighbour is above zero. Clear all counters to
finish a level; ten levels make a campaign.

Available commands:
  play     - Play a campaign directly
  menu     - Interactive variant picker
  list     - Show all variants
  scores   - View best times
  export   - Write the saved game as YAML
  import   - Load a saved game from YAML
  config   - Print the effective configuration

Examples:
  clicko play
  clicko play clicko_deep --difficulty hard
  clicko play --continue
  clicko scores`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.clicko/clicko.db", "Path to records database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogFile, "log-file", "~/.clicko/clicko.log", "Log file (empty = no logging)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(configCmd)
}

// setup validates global flags, opens the log and configures the game.
func setup(_ *cobra.Command, _ []string) error {
	if flagFPS < 1 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	if flagDifficulty != "" {
		p, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return err
		}
		difficulty = p
	}

	logger, closer, err := tui.OpenLogger(flagLogFile, flagLogLevel)
	if err != nil {
		return err
	}
	logCloser = closer
	clicko.SetLogger(logger)
	tui.SetLogger(logger)

	clicko.SetConfigPath(flagConfig)
	clicko.SetDifficultyPreset(difficulty)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

// loadConfig returns the configuration the game will run with and where
// it came from.
func loadConfig() (config.ClickoConfig, string, error) {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return cfg, source, err
	}
	config.ResolvePreset(&cfg, difficulty)
	return cfg, source, nil
}

// openStore opens the records database. Playing without one is allowed,
// so callers decide whether a failure is fatal.
func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, err
	}
	clicko.SetRecords(store)
	return store, nil
}
