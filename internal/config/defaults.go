package config

import (
	_ "embed"
)

//go:embed defaults/clicko.yaml
var defaultClickoYAML []byte

// DefaultClickoConfig returns the default Clicko configuration.
// It matches defaults/clicko.yaml.
func DefaultClickoConfig() ClickoConfig {
	return ClickoConfig{
		Board: BoardConfig{
			Width:            8,
			Height:           10,
			MaxCellValue:     7,
			DeepMaxCellValue: 20,
		},
		Levels: LevelsConfig{
			Count:         10,
			ClickBase:     1,
			ClickExponent: 2,
		},
		Rules: RulesConfig{
			UndoPolicy:         "lossy",
			UndoPenaltySeconds: 3,
		},
		Animation: AnimationConfig{
			ReduceTicks:     12,
			RejectTicks:     18,
			ClearDelayTicks: 120,
			MessageTicks:    90,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
		},
	}
}
