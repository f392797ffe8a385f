package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/clicko/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available variants",
	Long:  `Shows every registered Clicko variant and whether it has a saved game.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No variants available.")
		return
	}

	// Saved games are optional here
	store, err := openStore()
	if err != nil {
		store = nil
	}
	defer closeStore(store)

	fmt.Println("Available variants:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Saved")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----")

	// Print games
	for _, g := range games {
		saved := "-"
		switch {
		case !g.Saves:
			saved = "n/a"
		case store != nil:
			if _, ok, err := store.LoadGame(g.ID); err == nil && ok {
				saved = "yes"
			}
		}
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, saved)
	}

	fmt.Println()
	fmt.Println("Run 'clicko play <id>' to play a variant.")
}
