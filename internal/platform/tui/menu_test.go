package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/clicko/internal/config"
	"github.com/vovakirdan/clicko/internal/games/clicko"
	"github.com/vovakirdan/clicko/internal/games/clicko/core"
)

func press(m tea.Model, msgs ...tea.KeyMsg) tea.Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestMenuListsVariants(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveGame("clicko_deep", []byte("x")); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}

	m := NewMenuModel(store, testConfig())
	view := m.View()
	for _, want := range []string{"Clicko", "Clicko Deep (saved)"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q:\n%s", want, view)
		}
	}

	got := press(m, keyEnter).(MenuModel)
	if got.Selected() == nil || got.Selected().GameID != "clicko" {
		t.Errorf("Selected() = %+v, want clicko", got.Selected())
	}
}

func TestMenuShowsProgress(t *testing.T) {
	store := openTestStore(t)
	if err := store.ReachLevel("clicko", 2); err != nil {
		t.Fatalf("ReachLevel: %v", err)
	}
	if _, err := store.RecordTime("clicko", 0, 30); err != nil {
		t.Fatalf("RecordTime: %v", err)
	}

	m := NewMenuModel(store, testConfig())
	view := m.View()
	if !strings.Contains(view, "level 3 reached, 1 best times") {
		t.Errorf("menu missing progress summary:\n%s", view)
	}
	if !strings.Contains(view, "not played yet") {
		t.Errorf("unplayed variant should say so:\n%s", view)
	}

	got := press(m, tea.KeyMsg{Type: tea.KeyTab}).(MenuModel)
	if !got.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}
}

func TestCampaignMenuWithoutSave(t *testing.T) {
	cfg := config.DefaultClickoConfig()
	m := NewCampaignModel("clicko", "Clicko", cfg, nil, 80, 24)

	if strings.Contains(m.View(), "Continue") {
		t.Error("continue offered without a saved game")
	}

	got := press(m, keyEnter).(CampaignModel)
	sel := got.Selected()
	if sel == nil || sel.Continue || sel.Level != 0 {
		t.Errorf("Selected() = %+v, want a new campaign", sel)
	}
}

func TestCampaignMenuContinue(t *testing.T) {
	store := openTestStore(t)
	data, err := clicko.EncodeSave(clicko.SaveFile{Variant: "clicko", SaveGame: core.SaveGame{Level: 4, Seconds: 75}})
	if err != nil {
		t.Fatalf("EncodeSave: %v", err)
	}
	if err := store.SaveGame("clicko", data); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}

	m := NewCampaignModel("clicko", "Clicko", config.DefaultClickoConfig(), store, 80, 24)
	if !strings.Contains(m.View(), "Continue (level 5, 01:15)") {
		t.Errorf("view missing continue entry:\n%s", m.View())
	}

	got := press(m, keyEnter).(CampaignModel)
	if sel := got.Selected(); sel == nil || !sel.Continue {
		t.Errorf("Selected() = %+v, want continue", sel)
	}
}

func TestCampaignMenuLockedLevels(t *testing.T) {
	store := openTestStore(t)
	if err := store.ReachLevel("clicko", 1); err != nil {
		t.Fatalf("ReachLevel: %v", err)
	}
	if _, err := store.RecordTime("clicko", 0, 42); err != nil {
		t.Fatalf("RecordTime: %v", err)
	}

	m := NewCampaignModel("clicko", "Clicko", config.DefaultClickoConfig(), store, 80, 24)
	// Select level..., then move to level 3.
	got := press(m, keyDown, keyEnter).(CampaignModel)
	view := got.View()
	if !strings.Contains(view, "best 00:42") {
		t.Errorf("level list missing best time:\n%s", view)
	}
	if !strings.Contains(view, "3. locked") {
		t.Errorf("level 3 should be locked:\n%s", view)
	}

	got = press(got, keyDown, keyDown, keyEnter).(CampaignModel)
	if got.Selected() != nil {
		t.Error("locked level was selectable")
	}

	got = press(got, tea.KeyMsg{Type: tea.KeyUp}, keyEnter).(CampaignModel)
	if sel := got.Selected(); sel == nil || sel.Level != 2 {
		t.Errorf("Selected() = %+v, want level 2", sel)
	}
}

func TestCampaignMenuBack(t *testing.T) {
	m := NewCampaignModel("clicko", "Clicko", config.DefaultClickoConfig(), nil, 80, 24)
	got := press(m, keyEsc).(CampaignModel)
	if !got.WantsBack() || got.Selected() != nil {
		t.Errorf("back = %v, selected = %+v", got.WantsBack(), got.Selected())
	}
}

func TestScoreboardShowsBestTimes(t *testing.T) {
	store := openTestStore(t)
	for _, s := range []int{90, 61, 75} {
		if _, err := store.RecordTime("clicko", 0, s); err != nil {
			t.Fatalf("RecordTime: %v", err)
		}
	}

	cfg := config.DefaultClickoConfig()
	m := NewScoreboardModel(store, cfg, 100, 30)
	if len(m.rows) != cfg.Levels.Count {
		t.Fatalf("rows = %d, want one per level (%d)", len(m.rows), cfg.Levels.Count)
	}
	top := m.rows[0].top
	if len(top) != 2 || top[0].Seconds != 61 || top[1].Seconds != 75 {
		t.Errorf("level 1 top = %+v, want 61s then 75s", top)
	}
	if len(m.rows[1].top) != 0 {
		t.Errorf("level 2 should have no times: %+v", m.rows[1].top)
	}

	view := m.View()
	for _, want := range []string{"BEST TIMES - Clicko", "01:01", "01:15", "3 clears"} {
		if !strings.Contains(view, want) {
			t.Errorf("scoreboard missing %q:\n%s", want, view)
		}
	}
}

func TestScoreboardSwitchesVariant(t *testing.T) {
	m := NewScoreboardModel(nil, config.DefaultClickoConfig(), 100, 30)
	if !strings.Contains(m.View(), "No levels cleared yet.") {
		t.Errorf("empty scoreboard should say so:\n%s", m.View())
	}

	got := press(m, tea.KeyMsg{Type: tea.KeyTab}).(ScoreboardModel)
	if !strings.Contains(got.View(), "BEST TIMES - Clicko Deep") {
		t.Errorf("tab should switch to the deep variant:\n%s", got.View())
	}

	got = press(got, tea.KeyMsg{Type: tea.KeyShiftTab}).(ScoreboardModel)
	if got.current != 0 {
		t.Errorf("shift+tab should switch back, current = %d", got.current)
	}

	got = press(got, keyEsc).(ScoreboardModel)
	if !got.IsGoingBack() {
		t.Error("esc should go back")
	}
}
