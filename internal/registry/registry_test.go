package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/clicko/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig) {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen) {}
func (g stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register("zz_stub_b", func() Game { return stubGame{id: "zz_stub_b"} })
	Register("zz_stub_a", func() Game { return stubGame{id: "zz_stub_a"} })

	if !Exists("zz_stub_a") {
		t.Fatal("registered game should exist")
	}
	if Exists("zz_missing") {
		t.Error("unregistered game should not exist")
	}

	g, err := Create("zz_stub_a")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "zz_stub_a" {
		t.Errorf("Create returned %q", g.ID())
	}
	if _, err := Create("zz_missing"); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create of unknown id = %v, want ErrUnknownGame", err)
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
		if info.ID == "zz_stub_b" && info.Title != "Stub zz_stub_b" {
			t.Errorf("title = %q", info.Title)
		}
		if info.ID == "zz_stub_b" && info.Saves {
			t.Error("stub does not implement Saver")
		}
	}
	posA, posB := -1, -1
	for i, id := range ids {
		switch id {
		case "zz_stub_a":
			posA = i
		case "zz_stub_b":
			posB = i
		}
	}
	if posA < 0 || posB < 0 || posA > posB {
		t.Errorf("List should be sorted by id, got %v", ids)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_stub_dup", func() Game { return stubGame{id: "zz_stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz_stub_dup", func() Game { return stubGame{id: "zz_stub_dup"} })
}

type savingStub struct{ stubGame }

func (savingStub) Save() ([]byte, bool, error) { return nil, false, nil }
func (savingStub) Load([]byte) error { return nil }

func TestListReportsSaver(t *testing.T) {
	Register("zz_stub_saver", func() Game { return savingStub{stubGame{id: "zz_stub_saver"}} })

	for _, info := range List() {
		if info.ID == "zz_stub_saver" && !info.Saves {
			t.Error("Saves should be true for a Saver")
		}
	}
}
