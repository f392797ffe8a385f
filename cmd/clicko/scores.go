package main

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/clicko/internal/games/clicko"
	"github.com/vovakirdan/clicko/internal/registry"
	"github.com/vovakirdan/clicko/internal/storage"
)

var (
	flagRecent int
	flagReset  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show best times per level",
	Long: `Display the best clear time of every level of a variant.

Examples:
  clicko scores
  clicko scores clicko_deep
  clicko scores --recent 10
  clicko scores --reset`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 0, "Also list the N most recent clears")
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete all recorded times of the variant")
}

func runScores(_ *cobra.Command, args []string) {
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

	// Get game title
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	// Open record storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening records database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagReset {
		if err := store.ClearTimes(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error resetting times: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Best times of %s deleted.\n", title)
		return
	}

	if err := printScores(store, gameID, title); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving times: %v\n", err)
		os.Exit(1)
	}
}

func printScores(store *storage.Store, gameID, title string) error {
	best, err := store.BestTimes(gameID)
	if err != nil {
		return err
	}

	// Display times
	fmt.Printf("Best Times - %s\n", title)
	fmt.Println()

	if len(best) == 0 {
		fmt.Println("No levels cleared yet.")
		fmt.Println()
		fmt.Printf("Play 'clicko play %s' to set the first time!\n", gameID)
		return nil
	}

	levels := make([]int, 0, len(best))
	for level := range best {
		levels = append(levels, level)
	}
	slices.Sort(levels)

	// Print header
	fmt.Printf("  %-5s  %-6s  %s\n", "Level", "Best", "Set")
	fmt.Printf("  %-5s  %-6s  %s\n", "-----", "----", "---")

	for _, level := range levels {
		set := "-"
		if top, err := store.TopTimes(gameID, level, 1); err == nil && len(top) > 0 {
			set = humanize.Time(top[0].CreatedAt)
		}
		fmt.Printf("  %-5d  %-6s  %s\n", level+1, clicko.FormatSeconds(best[level]), set)
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("%s clears, %d levels, %s played in total\n",
			humanize.Comma(int64(stats.Clears)),
			stats.LevelsCleared,
			clicko.FormatSeconds(int(stats.TotalSeconds)))
	}

	if p, err := store.LoadProgress(gameID); err == nil && p.GamesCompleted > 0 {
		fmt.Printf("Campaign finished %s\n", english.Plural(p.GamesCompleted, "time", "times"))
	}

	if flagRecent > 0 {
		recent, err := store.RecentTimes(gameID, flagRecent)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println("Recent clears:")
		for _, e := range recent {
			fmt.Printf("  level %-3d %s  %s\n", e.Level+1, clicko.FormatSeconds(e.Seconds), e.CreatedAt.Format(time.DateTime))
		}
	}
	return nil
}
