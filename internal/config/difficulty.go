package config

// Clicks returns the number of random additions used to populate a level.
// level is 0-based. The classic campaign uses (level+1)^2.
func (l LevelsConfig) Clicks(level int) int {
	if level < 0 {
		level = 0
	}
	n := l.ClickBase
	for i := 0; i < l.ClickExponent; i++ {
		n *= level + 1
	}
	return n
}

// ApplyPreset modifies the config based on a difficulty preset.
// Board size and value bounds are left alone; presets only change how
// crowded levels are and how much an undo costs.
func ApplyPreset(cfg *ClickoConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset

	switch preset {
	case DifficultyEasy:
		cfg.Levels.ClickBase = 1
		cfg.Levels.ClickExponent = 1
		cfg.Rules.UndoPenaltySeconds = 0
	case DifficultyNormal:
		cfg.Levels.ClickBase = 1
		cfg.Levels.ClickExponent = 2
		cfg.Rules.UndoPenaltySeconds = 3
	case DifficultyHard:
		cfg.Levels.ClickBase = 2
		cfg.Levels.ClickExponent = 2
		cfg.Rules.UndoPenaltySeconds = 5
	case DifficultyFixed:
		// Every level is equally crowded.
		cfg.Levels.ClickBase = 25
		cfg.Levels.ClickExponent = 0
	}
}

// ResolvePreset applies override when set, otherwise the preset named in
// the file. The normal preset keeps the file's own values.
func ResolvePreset(cfg *ClickoConfig, override DifficultyPreset) {
	preset := override
	if preset == "" {
		preset = cfg.Difficulty.Preset
		if preset == DifficultyNormal {
			return
		}
	}
	if preset != "" {
		ApplyPreset(cfg, preset)
	}
}
