// Package tui provides the Bubble Tea integration for Clicko.
// It handles the terminal UI loop, input mapping and persistence of progress.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultTickRate is used when the runtime config leaves the rate unset.
const defaultTickRate = 60

// TickMsg advances the game by one fixed step. Animations and the level
// timer both count these ticks, so the rate sets their real-time speed.
type TickMsg time.Time

// tickInterval is the wall-clock length of one tick.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next tick.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
