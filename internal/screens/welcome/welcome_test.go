package welcome

import (
	"encoding/json"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/senseilabs/sensei/internal/generate"
	"github.com/senseilabs/sensei/internal/learn"
	"github.com/senseilabs/sensei/internal/llm"
	"github.com/senseilabs/sensei/internal/router"
	"github.com/senseilabs/sensei/internal/screen"
)

type stubStudy struct{}

func (stubStudy) Init() tea.Cmd                           { return nil }
func (s stubStudy) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (stubStudy) View(int, int) string                    { return "study" }
func (stubStudy) Title() string                           { return "Study" }

func newTestScreen() *WelcomeScreen {
	ctrl := learn.NewController(learn.Snapshot{}, learn.NopPersister{})
	provider := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`[{"title":"Basics","description":"Start here"}]`),
	})
	gw := generate.New(provider, generate.DefaultConfig())
	return New(ctrl, gw, func() screen.Screen { return stubStudy{} })
}

func TestAdvanceRequiresName(t *testing.T) {
	w := newTestScreen()
	w.Init()

	w.advance(1)

	if w.ctrl.Intro().ActivePage != 1 {
		t.Errorf("expected to stay on page 1, got %d", w.ctrl.Intro().ActivePage)
	}
	if w.errMsg == "" {
		t.Error("expected an error message for empty name")
	}
}

func TestAdvanceThroughPages(t *testing.T) {
	w := newTestScreen()
	w.Init()

	w.nameInput.Model.SetValue("Ada")
	w.advance(1)

	if w.ctrl.UserName() != "Ada" {
		t.Errorf("expected name saved, got %q", w.ctrl.UserName())
	}
	if w.ctrl.Intro().ActivePage != 2 {
		t.Errorf("expected page 2, got %d", w.ctrl.Intro().ActivePage)
	}

	w.menu.Selected = 3 // playful
	w.advance(2)

	if w.ctrl.Personality() != learn.PersonalityPlayful {
		t.Errorf("expected playful, got %q", w.ctrl.Personality())
	}
	if w.ctrl.Intro().ActivePage != 3 {
		t.Errorf("expected page 3, got %d", w.ctrl.Intro().ActivePage)
	}
	if !w.ctrl.Intro().Pages[1].ButtonPressed || !w.ctrl.Intro().Pages[2].ButtonPressed {
		t.Error("expected button presses recorded for pages 1 and 2")
	}
}

func TestTopicStartsGeneration(t *testing.T) {
	w := newTestScreen()
	w.Init()
	w.ctrl.VisitPage(3)

	w.topicInput.Model.SetValue("Go generics")
	_, cmd := w.advance(3)

	if cmd == nil {
		t.Fatal("expected a generation command")
	}
	if !w.ctrl.Intro().Loading {
		t.Error("expected loading flag set while generation runs")
	}
	if w.ctrl.Study().Phase != learn.PhaseFetchingList {
		t.Errorf("expected fetching-list phase, got %v", w.ctrl.Study().Phase)
	}
}

func TestModuleListSuccessReplacesScreen(t *testing.T) {
	w := newTestScreen()
	w.Init()
	w.ctrl.SetTopic("Go generics")
	tok, ok := w.ctrl.BeginListGeneration()
	if !ok {
		t.Fatal("expected generation to start")
	}

	cmd := w.handleModuleList(moduleListMsg{
		Tok:     tok,
		Modules: []learn.Module{{Title: "Basics", Description: "Start here"}},
		Turns: []learn.ChatTurn{
			learn.NewTurn(learn.RoleUser, "plan"),
			learn.NewTurn(learn.RoleModel, "[]"),
		},
	})
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}

	msg := cmd()
	if _, ok := msg.(router.ReplaceScreenMsg); !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	if w.ctrl.Intro().Show {
		t.Error("expected intro dismissed after a successful plan")
	}
	if len(w.ctrl.History()) != 2 {
		t.Errorf("expected 2 history turns, got %d", len(w.ctrl.History()))
	}
}

func TestModuleListFailureStaysOnWizard(t *testing.T) {
	w := newTestScreen()
	w.Init()
	w.ctrl.SetTopic("Go generics")
	tok, _ := w.ctrl.BeginListGeneration()

	cmd := w.handleModuleList(moduleListMsg{Tok: tok, Err: &generate.GenerationError{}})

	if cmd != nil {
		t.Error("expected no navigation on failure")
	}
	if w.errMsg == "" {
		t.Error("expected an error message")
	}
	if w.ctrl.Intro().Loading {
		t.Error("expected loading cleared on failure")
	}
}

func TestStaleModuleListIgnored(t *testing.T) {
	w := newTestScreen()
	w.Init()
	w.ctrl.SetTopic("Go generics")
	tok, _ := w.ctrl.BeginListGeneration()
	w.ctrl.ResetContext()

	cmd := w.handleModuleList(moduleListMsg{
		Tok:     tok,
		Modules: []learn.Module{{Title: "Stale"}},
	})

	if cmd != nil {
		t.Error("expected stale result to be dropped")
	}
	if len(w.ctrl.Study().Modules) != 0 {
		t.Errorf("expected no modules installed, got %d", len(w.ctrl.Study().Modules))
	}
}

func TestKeysIgnoredWhileLoading(t *testing.T) {
	w := newTestScreen()
	w.Init()
	w.ctrl.VisitPage(3)
	w.topicInput.Model.SetValue("Go generics")
	w.advance(3)

	before := w.ctrl.Study().Phase
	w.Update(tea.KeyPressMsg{Code: tea.KeyEscape})

	if w.ctrl.Study().Phase != before {
		t.Error("expected keys to be ignored while loading")
	}
}
