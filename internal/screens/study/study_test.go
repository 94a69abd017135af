package study

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/senseilabs/sensei/internal/generate"
	"github.com/senseilabs/sensei/internal/learn"
	"github.com/senseilabs/sensei/internal/llm"
	"github.com/senseilabs/sensei/internal/router"
	"github.com/senseilabs/sensei/internal/screen"
)

type stubScreen struct{ title string }

func (s stubScreen) Init() tea.Cmd                           { return nil }
func (s stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s stubScreen) View(int, int) string                    { return s.title }
func (s stubScreen) Title() string                           { return s.title }

type fakeSessionRepo struct {
	saved []learn.Session
}

func (f *fakeSessionRepo) List(context.Context, string) ([]learn.Session, error) { return nil, nil }
func (f *fakeSessionRepo) Save(_ context.Context, s learn.Session) (learn.Session, error) {
	f.saved = append(f.saved, s)
	return s, nil
}
func (f *fakeSessionRepo) Delete(context.Context, string, string) error { return nil }

func newTestScreen(responses ...llm.MockResponse) (*StudyScreen, *fakeSessionRepo) {
	ctrl := learn.NewController(learn.Snapshot{
		Topic: "Go generics",
		Study: learn.StudyState{
			Show: true,
			Modules: []learn.Module{
				{Title: "Type parameters", Description: "The basics"},
				{Title: "Constraints", Description: "Interfaces as bounds"},
			},
		},
	}, learn.NopPersister{})

	gw := generate.New(llm.NewMockProvider(responses...), generate.DefaultConfig())
	repo := &fakeSessionRepo{}

	s := New(Options{
		Controller:     ctrl,
		Gateway:        gw,
		Sessions:       repo,
		UserID:         "local",
		SidebarOpen:    true,
		WelcomeFactory: func() screen.Screen { return stubScreen{title: "welcome"} },
		HistoryFactory: func() screen.Screen { return stubScreen{title: "history"} },
	})
	return s, repo
}

func TestSelectClosedModuleStartsFetch(t *testing.T) {
	s, _ := newTestScreen(llm.MockResponse{
		Content: json.RawMessage(`[{"html":"<p>hello</p>"}]`),
	})

	cmd := s.selectModule(0)
	if cmd == nil {
		t.Fatal("expected a fetch command")
	}
	if s.ctrl.Study().Phase != learn.PhaseFetchingContent {
		t.Errorf("expected fetching-content phase, got %v", s.ctrl.Study().Phase)
	}
	if s.ctrl.Study().FetchTarget != 0 {
		t.Errorf("expected fetch target 0, got %d", s.ctrl.Study().FetchTarget)
	}
}

func TestModuleContentUnlocksModule(t *testing.T) {
	s, _ := newTestScreen()
	tok, _ := s.ctrl.SelectModule(0)

	s.handleModuleContent(moduleContentMsg{
		Tok:    tok,
		Index:  0,
		Blocks: []learn.ContentBlock{{HTML: "<p>hello</p>"}},
		Turns: []learn.ChatTurn{
			learn.NewTurn(learn.RoleUser, "content please"),
			learn.NewTurn(learn.RoleModel, "[]"),
		},
	})

	study := s.ctrl.Study()
	if !study.Modules[0].Open {
		t.Error("expected module opened")
	}
	if study.Phase != learn.PhaseViewing {
		t.Errorf("expected viewing phase, got %v", study.Phase)
	}
	if len(s.ctrl.History()) != 2 {
		t.Errorf("expected generation history appended, got %d turns", len(s.ctrl.History()))
	}
}

func TestModuleContentFailureKeepsModuleClosed(t *testing.T) {
	s, _ := newTestScreen()
	tok, _ := s.ctrl.SelectModule(0)

	s.handleModuleContent(moduleContentMsg{Tok: tok, Index: 0, Err: &generate.GenerationError{}})

	study := s.ctrl.Study()
	if study.Modules[0].Open {
		t.Error("expected module to stay closed on failure")
	}
	if study.IsLoading() {
		t.Error("expected in-flight state cleared")
	}
	if s.errMsg == "" {
		t.Error("expected an error message")
	}
}

func TestStaleContentDropped(t *testing.T) {
	s, _ := newTestScreen()
	tok, _ := s.ctrl.SelectModule(0)
	s.ctrl.ResetContext()

	s.handleModuleContent(moduleContentMsg{
		Tok:    tok,
		Index:  0,
		Blocks: []learn.ContentBlock{{HTML: "<p>stale</p>"}},
	})

	if len(s.ctrl.Study().Modules) != 0 {
		t.Errorf("expected reset state untouched, got %d modules", len(s.ctrl.Study().Modules))
	}
}

func TestOpenModuleSelectionNeedsNoFetch(t *testing.T) {
	s, _ := newTestScreen()
	tok, _ := s.ctrl.SelectModule(1)
	s.ctrl.ApplyModuleContent(tok, []learn.ContentBlock{{HTML: "<p>done</p>"}})

	cmd := s.selectModule(1)
	if cmd != nil {
		t.Error("expected no fetch for an already open module")
	}
	if s.ctrl.Study().Phase != learn.PhaseViewing {
		t.Errorf("expected viewing phase, got %v", s.ctrl.Study().Phase)
	}
}

func TestChatReplyAppendsToAskedModule(t *testing.T) {
	s, _ := newTestScreen()
	tok, _ := s.ctrl.SelectModule(0)
	s.ctrl.ApplyModuleContent(tok, []learn.ContentBlock{{HTML: "<p>x</p>"}})

	s.Update(chatReplyMsg{Index: 0, Question: "why?", Reply: "because"})

	chat := s.ctrl.Study().Modules[0].ChatHistory
	if len(chat) != 2 {
		t.Fatalf("expected question and reply, got %d turns", len(chat))
	}
	if chat[0].Role != learn.RoleUser || chat[1].Role != learn.RoleModel {
		t.Errorf("unexpected roles: %+v", chat)
	}
}

func TestSaveSessionPersists(t *testing.T) {
	s, repo := newTestScreen()

	cmd := s.saveSession()
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	msg := cmd()

	saved, ok := msg.(sessionSavedMsg)
	if !ok {
		t.Fatalf("expected sessionSavedMsg, got %T", msg)
	}
	if saved.Err != nil {
		t.Fatalf("unexpected save error: %v", saved.Err)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("expected 1 saved session, got %d", len(repo.saved))
	}
	if repo.saved[0].Topic != "Go generics" || repo.saved[0].UserID != "local" {
		t.Errorf("unexpected session: %+v", repo.saved[0])
	}
	if repo.saved[0].ID == "" {
		t.Error("expected a session ID to be minted")
	}
}

func TestNewTopicResetsAndReplacesScreen(t *testing.T) {
	s, _ := newTestScreen()

	_, cmd := s.handleKey(tea.KeyPressMsg{Code: 'n', Text: "n"})
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}

	msg := cmd()
	rep, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	if rep.Screen.Title() != "welcome" {
		t.Errorf("expected welcome screen, got %q", rep.Screen.Title())
	}
	if len(s.ctrl.Study().Modules) != 0 {
		t.Error("expected study state cleared")
	}
	if s.ctrl.Topic() != "" {
		t.Errorf("expected topic cleared, got %q", s.ctrl.Topic())
	}
}

func TestTruncateTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		max   int
	}{
		{"long ascii", "A Very Long Module Title Indeed", 12},
		{"multi-byte", "Введение в горутины и каналы", 12},
		{"wide runes", "ゴルーチンとチャネル入門", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateTitle(tt.title, tt.max)
			if !utf8.ValidString(got) {
				t.Fatalf("truncation produced invalid UTF-8: %q", got)
			}
			if w := lipgloss.Width(got); w > tt.max {
				t.Errorf("width %d exceeds %d: %q", w, tt.max, got)
			}
			if !strings.HasSuffix(got, "…") {
				t.Errorf("expected an ellipsis suffix, got %q", got)
			}
		})
	}

	if got := truncateTitle("Short", 12); got != "Short" {
		t.Errorf("short title must pass through, got %q", got)
	}
}

func TestChatKeysDoNotTriggerShortcuts(t *testing.T) {
	s, _ := newTestScreen()
	tok, _ := s.ctrl.SelectModule(0)
	s.ctrl.ApplyModuleContent(tok, []learn.ContentBlock{{HTML: "<p>x</p>"}})
	s.chatOpen = true

	s.handleKey(tea.KeyPressMsg{Code: 'n', Text: "n"})

	if len(s.ctrl.Study().Modules) == 0 {
		t.Error("expected 'n' to go to the chat input, not reset the context")
	}
}
