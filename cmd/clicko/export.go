package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/clicko/internal/games/clicko"
	"github.com/vovakirdan/clicko/internal/registry"
	"github.com/vovakirdan/clicko/internal/storage"
)

var flagOutput string

var exportCmd = &cobra.Command{
	Use:   "export [variant]",
	Short: "Write the saved game as YAML",
	Long: `Write the saved game of a variant as a YAML document, to stdout or
to the file given with --output. The file can be loaded again with import.

Examples:
  clicko export > clicko-save.yaml
  clicko export clicko_deep -o deep.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load a saved game from YAML",
	Long: `Replace the saved game of a variant with a YAML document written by
export. The board is checked against the current configuration before it
is stored; continue it with 'clicko play --continue'.

Examples:
  clicko import clicko-save.yaml
  clicko import - < deep.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write to this file instead of stdout")
}

func runExport(_ *cobra.Command, args []string) error {
	gameID := clicko.Classic.ID
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening records database: %w", err)
	}
	defer store.Close()

	data, err := loadSaved(store, gameID)
	if err != nil {
		return err
	}

	if flagOutput == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(flagOutput, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", flagOutput, err)
	}
	fmt.Fprintf(os.Stderr, "Saved game of %s written to %s\n", gameID, flagOutput)
	return nil
}

func runImport(_ *cobra.Command, args []string) error {
	data, err := readInput(args[0])
	if err != nil {
		return err
	}

	f, err := clicko.DecodeSave(data)
	if err != nil {
		return err
	}
	if !registry.Exists(f.Variant) {
		return fmt.Errorf("unknown variant %q", f.Variant)
	}

	// Restore into a scratch game so bad boards never reach the database
	game, err := registry.Create(f.Variant)
	if err != nil {
		return err
	}
	saver, ok := game.(registry.Saver)
	if !ok {
		return fmt.Errorf("variant %q cannot be saved", f.Variant)
	}
	game.Reset(runtimeConfig())
	if err := saver.Load(data); err != nil {
		return fmt.Errorf("invalid saved game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening records database: %w", err)
	}
	defer store.Close()

	if err := store.SaveGame(f.Variant, data); err != nil {
		return err
	}
	fmt.Printf("Imported %s at level %d. Run 'clicko play %s --continue' to resume.\n",
		f.Variant, f.Level+1, f.Variant)
	return nil
}

// readInput reads a file, or stdin for "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("no such file: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
