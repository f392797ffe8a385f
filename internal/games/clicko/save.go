package clicko

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/clicko/internal/games/clicko/core"
)

// saveVersion is bumped when the saved game layout changes.
const saveVersion = 1

// ErrWrongVariant is returned when a saved game belongs to another variant.
var ErrWrongVariant = errors.New("saved game is for another variant")

// SaveFile is the YAML document stored in the database and written by
// export. An empty board means the level has not been generated yet.
type SaveFile struct {
	Version       int    `yaml:"version"`
	Variant       string `yaml:"variant"`
	core.SaveGame `yaml:",inline"`
}

// EncodeSave marshals a saved game to YAML.
func EncodeSave(f SaveFile) ([]byte, error) {
	if f.Version == 0 {
		f.Version = saveVersion
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode save: %w", err)
	}
	return data, nil
}

// DecodeSave parses a saved game produced by EncodeSave.
func DecodeSave(data []byte) (SaveFile, error) {
	var f SaveFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return SaveFile{}, fmt.Errorf("decode save: %w", err)
	}
	if f.Version != saveVersion {
		return SaveFile{}, fmt.Errorf("decode save: unsupported version %d", f.Version)
	}
	if f.Variant == "" {
		return SaveFile{}, errors.New("decode save: missing variant")
	}
	return f, nil
}

// SaveState returns the current progress. ok is false once the campaign is
// over. A cleared level is saved as the start of the next one.
func (g *Game) SaveState() (SaveFile, bool) {
	if g.engine == nil || g.gameOver {
		return SaveFile{}, false
	}

	f := SaveFile{Version: saveVersion, Variant: g.variant.ID}
	if g.levelDone {
		f.Level = g.level + 1
		return f, true
	}
	f.Level = g.level
	f.Seconds = g.timer.Seconds()
	f.Board = g.engine.Snapshot()
	return f, true
}

// Save implements registry.Saver.
func (g *Game) Save() ([]byte, bool, error) {
	f, ok := g.SaveState()
	if !ok {
		return nil, false, nil
	}
	data, err := EncodeSave(f)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Load implements registry.Saver.
func (g *Game) Load(data []byte) error {
	f, err := DecodeSave(data)
	if err != nil {
		return err
	}
	return g.Restore(f)
}

// Restore continues a saved game. Reset must have been called. The current
// state is kept if the save does not fit this game.
func (g *Game) Restore(f SaveFile) error {
	if f.Variant != g.variant.ID {
		return fmt.Errorf("restore %s into %s: %w", f.Variant, g.variant.ID, ErrWrongVariant)
	}
	if f.Level < 0 || f.Level >= g.cfg.Levels.Count {
		return fmt.Errorf("restore: level %d outside 1..%d", f.Level+1, g.cfg.Levels.Count)
	}

	if len(f.Board.Cells) == 0 {
		g.startLevel(f.Level)
		g.log.Info("save restored", "level", f.Level+1, "board", "fresh")
		return nil
	}

	// Validate against the engine before touching any game state.
	if err := g.engine.Restore(f.Board); err != nil {
		return fmt.Errorf("restore: %w", err)
	}

	g.startLevel(f.Level)
	_ = g.engine.Restore(f.Board) // accepted above
	g.timer.SetSeconds(f.Seconds)
	g.moves = len(f.Board.History)
	g.levelDone = false
	g.refreshLock()
	if g.engine.IsEmpty() {
		g.finishLevel()
	}
	g.log.Info("save restored", "level", f.Level+1, "seconds", f.Seconds, "moves", g.moves)
	return nil
}
