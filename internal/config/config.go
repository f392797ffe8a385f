// Package config provides YAML-based game configuration loading and
// difficulty management for Clicko.
package config

import (
	"errors"
	"fmt"
)

// ClickoConfig contains all configuration for the Clicko game.
type ClickoConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Levels     LevelsConfig     `yaml:"levels"`
	Rules      RulesConfig      `yaml:"rules"`
	Animation  AnimationConfig  `yaml:"animation"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the grid dimensions and value bounds.
type BoardConfig struct {
	Width            int `yaml:"width"`
	Height           int `yaml:"height"`
	MaxCellValue     int `yaml:"max_cell_value"`      // clicko
	DeepMaxCellValue int `yaml:"deep_max_cell_value"` // clicko_deep
}

// LevelsConfig defines the campaign length and how many random additions
// populate each level.
type LevelsConfig struct {
	Count         int `yaml:"count"`
	ClickBase     int `yaml:"click_base"`
	ClickExponent int `yaml:"click_exponent"`
}

// RulesConfig defines undo behaviour.
type RulesConfig struct {
	UndoPolicy         string `yaml:"undo_policy"` // "lossy" or "atomic"
	UndoPenaltySeconds int    `yaml:"undo_penalty_seconds"`
}

// AnimationConfig defines animation and overlay lengths in ticks.
type AnimationConfig struct {
	ReduceTicks     int `yaml:"reduce_ticks"`
	RejectTicks     int `yaml:"reject_ticks"`
	ClearDelayTicks int `yaml:"clear_delay_ticks"`
	MessageTicks    int `yaml:"message_ticks"`
}

// DifficultyConfig selects a named preset.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate rejects values the game cannot run with.
func (c ClickoConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Board.Width >= 1 && c.Board.Height >= 1,
		"board size %dx%d", c.Board.Width, c.Board.Height)
	check(c.Board.MaxCellValue >= 1, "board.max_cell_value %d", c.Board.MaxCellValue)
	check(c.Board.DeepMaxCellValue >= 1, "board.deep_max_cell_value %d", c.Board.DeepMaxCellValue)
	check(c.Levels.Count >= 1, "levels.count %d", c.Levels.Count)
	check(c.Levels.ClickBase >= 1, "levels.click_base %d", c.Levels.ClickBase)
	check(c.Levels.ClickExponent >= 0 && c.Levels.ClickExponent <= 4,
		"levels.click_exponent %d outside [0,4]", c.Levels.ClickExponent)
	check(c.Rules.UndoPolicy == "" || c.Rules.UndoPolicy == "lossy" || c.Rules.UndoPolicy == "atomic",
		"rules.undo_policy %q", c.Rules.UndoPolicy)
	check(c.Rules.UndoPenaltySeconds >= 0, "rules.undo_penalty_seconds %d", c.Rules.UndoPenaltySeconds)
	check(c.Animation.ReduceTicks >= 1, "animation.reduce_ticks %d", c.Animation.ReduceTicks)
	check(c.Animation.RejectTicks >= 1, "animation.reject_ticks %d", c.Animation.RejectTicks)
	check(c.Animation.ClearDelayTicks >= 0, "animation.clear_delay_ticks %d", c.Animation.ClearDelayTicks)
	check(c.Animation.MessageTicks >= 0, "animation.message_ticks %d", c.Animation.MessageTicks)
	if _, err := ParsePreset(string(c.Difficulty.Preset)); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}

	return errors.Join(errs...)
}
