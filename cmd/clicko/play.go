package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/clicko/internal/core"
	"github.com/vovakirdan/clicko/internal/games/clicko"
	"github.com/vovakirdan/clicko/internal/platform/tui"
	"github.com/vovakirdan/clicko/internal/registry"
	"github.com/vovakirdan/clicko/internal/storage"
)

var (
	flagLevel    int
	flagContinue bool
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a campaign",
	Long: `Start a Clicko campaign. Without --level or --continue a menu offers
to continue the saved game, start over or pick an unlocked level.

Variants:
  clicko       - Counters up to 7
  clicko_deep  - Counters up to 20

Controls:
  Arrows/WASD  - Move the cursor
  Space/Enter  - Reduce the cell under the cursor
  Mouse click  - Reduce the clicked cell
  U/Backspace  - Undo the last reduction (adds a time penalty)
  R            - Restart the level
  P/Esc        - Pause
  Q/Ctrl+C     - Save and quit

Difficulty options:
  easy   - Fewer additions per level, no undo penalty
  normal - The classic campaign
  hard   - Twice the additions, 5s undo penalty
  fixed  - Every level equally crowded

Examples:
  clicko play
  clicko play clicko_deep
  clicko play --level 4 --difficulty easy
  clicko play --continue
  clicko play --config ./my-clicko.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start at this level (1-based)")
	playCmd.Flags().BoolVar(&flagContinue, "continue", false, "Continue the saved game")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := clicko.Classic.ID
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'clicko list' to see available variants.")
		os.Exit(1)
	}

	cfg := runtimeConfig()

	// Open record storage
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open records database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	var saved []byte
	switch {
	case flagContinue:
		saved, err = loadSaved(store, gameID)
		if err != nil {
			closeStore(store)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case flagLevel > 0:
		clicko.SetStartLevel(flagLevel)
	default:
		sel, selErr := selectCampaign(gameID, store, cfg)
		if selErr != nil {
			closeStore(store)
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}
		// User pressed back or quit
		if sel == nil {
			closeStore(store)
			return
		}
		saved = sel.saved
	}

	runErr := runGame(gameID, store, cfg, saved)
	closeStore(store)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// campaignStart is what the campaign menu decided.
type campaignStart struct {
	saved []byte
}

// selectCampaign shows the campaign menu. nil means the user backed out.
func selectCampaign(gameID string, store *storage.Store, cfg core.RuntimeConfig) (*campaignStart, error) {
	gameCfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return nil, err
	}

	sel, err := tui.RunCampaignMenu(gameID, game.Title(), gameCfg, store, cfg.ScreenW, cfg.ScreenH)
	if err != nil || sel == nil {
		return nil, err
	}

	if sel.Continue {
		saved, err := loadSaved(store, gameID)
		if err != nil {
			return nil, err
		}
		return &campaignStart{saved: saved}, nil
	}
	if sel.Level > 0 {
		clicko.SetStartLevel(sel.Level)
	}
	return &campaignStart{}, nil
}

// loadSaved returns the saved game of gameID.
func loadSaved(store *storage.Store, gameID string) ([]byte, error) {
	if store == nil {
		return nil, fmt.Errorf("no records database, cannot continue")
	}
	data, ok, err := store.LoadGame(gameID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no saved game for %s", gameID)
	}
	return data, nil
}

// runGame creates the game and hands it to the TUI.
func runGame(gameID string, store *storage.Store, cfg core.RuntimeConfig, saved []byte) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	return tui.Run(game, store, cfg, saved)
}

func closeStore(store *storage.Store) {
	if store != nil {
		store.Close()
	}
}
