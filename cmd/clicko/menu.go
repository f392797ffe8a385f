package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/clicko/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant picker menu",
	Long: `Start Clicko in interactive menu mode.

Pick a variant, then continue the saved game, start a new campaign or
choose an unlocked level. After quitting a game you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Best times
  Esc          - Back
  Q            - Quit

Examples:
  clicko menu
  clicko menu --fps 30
  clicko menu --db ./clicko.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	// Open record storage
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open records database: %v\n", err)
		store = nil
	}
	defer closeStore(store)

	cfg := runtimeConfig()

	// Menu loop
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		// Check if user quit
		if menuResult.Quit {
			break
		}

		// Check if user wants scoreboard
		if menuResult.WantsScoreboard {
			gameCfg, _, cfgErr := loadConfig()
			if cfgErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", cfgErr)
				break
			}
			goBack, sbErr := tui.RunScoreboard(store, gameCfg, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		gameID := menuResult.GameID
		if gameID == "" {
			break
		}

		sel, selErr := selectCampaign(gameID, store, cfg)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			continue
		}
		// User pressed back or quit
		if sel == nil {
			continue
		}

		if err := runGame(gameID, store, cfg, sel.saved); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}
}
