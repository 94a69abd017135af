package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/senseilabs/sensei/internal/learn"
	"github.com/senseilabs/sensei/internal/router"
	"github.com/senseilabs/sensei/internal/screen"
)

type stubStudy struct{}

func (s stubStudy) Init() tea.Cmd                           { return nil }
func (s stubStudy) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s stubStudy) View(int, int) string                    { return "study" }
func (s stubStudy) Title() string                           { return "Study" }

type fakeRepo struct {
	sessions []learn.Session
	deleted  []string
}

func (f *fakeRepo) List(context.Context, string) ([]learn.Session, error) {
	return f.sessions, nil
}

func (f *fakeRepo) Save(_ context.Context, s learn.Session) (learn.Session, error) {
	return s, nil
}

func (f *fakeRepo) Delete(_ context.Context, id, _ string) error {
	for i, s := range f.sessions {
		if s.ID == id {
			f.sessions = append(f.sessions[:i], f.sessions[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return errors.New("not found")
}

func sessionAt(id, topic string, age time.Duration) learn.Session {
	return learn.Session{
		ID:        id,
		UserID:    "local",
		Topic:     topic,
		CreatedAt: time.Now().Add(-age),
		Modules:   []learn.Module{{Title: "m1", Open: true}, {Title: "m2"}},
	}
}

func newLoadedScreen(sessions ...learn.Session) (*HistoryScreen, *fakeRepo, *learn.Controller) {
	ctrl := learn.NewController(learn.Snapshot{}, learn.NopPersister{})
	repo := &fakeRepo{sessions: sessions}
	s := New(ctrl, repo, "local", func() screen.Screen { return stubStudy{} })

	msg := s.Init()()
	s.Update(msg)
	return s, repo, ctrl
}

func TestDefaultViewDeduplicatesTopics(t *testing.T) {
	s, _, _ := newLoadedScreen(
		sessionAt("s1", "Rust", time.Hour),
		sessionAt("s2", "rust", 2*time.Hour),
		sessionAt("s3", "Go", 3*time.Hour),
	)

	visible := s.visible()
	if len(visible) != 2 {
		t.Fatalf("expected 2 deduplicated sessions, got %d", len(visible))
	}
	if visible[0].ID != "s1" {
		t.Errorf("expected the newest Rust session, got %q", visible[0].ID)
	}
}

func TestLoadFailureKeepsListUsable(t *testing.T) {
	ctrl := learn.NewController(learn.Snapshot{}, learn.NopPersister{})
	s := New(ctrl, &fakeRepo{}, "local", func() screen.Screen { return stubStudy{} })

	s.Update(sessionsLoadedMsg{Err: errors.New("database locked")})

	view := s.View(80, 24)
	if !strings.Contains(view, "Error: database locked") {
		t.Errorf("expected an error notice, got %q", view)
	}
	if !strings.Contains(view, "No saved sessions yet.") {
		t.Errorf("failed load must still render the empty list, got %q", view)
	}

	// The screen stays interactive: esc still pops.
	_, cmd := s.handleKey(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected esc to produce a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected esc to pop the screen")
	}
}

func TestToggleShowAll(t *testing.T) {
	s, _, _ := newLoadedScreen(
		sessionAt("s1", "Rust", time.Hour),
		sessionAt("s2", "Rust", 2*time.Hour),
	)

	s.handleKey(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if len(s.visible()) != 2 {
		t.Errorf("expected all versions visible, got %d", len(s.visible()))
	}

	s.handleKey(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if len(s.visible()) != 1 {
		t.Errorf("expected deduplicated view restored, got %d", len(s.visible()))
	}
}

func TestResumeHydratesControllerAndReplaces(t *testing.T) {
	s, _, ctrl := newLoadedScreen(sessionAt("s1", "Rust", time.Hour))

	cmd := s.resumeSelected()
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	msg := cmd()
	if _, ok := msg.(router.ReplaceScreenMsg); !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}

	if ctrl.Topic() != "Rust" {
		t.Errorf("expected controller topic Rust, got %q", ctrl.Topic())
	}
	if ctrl.SessionID() != "s1" {
		t.Errorf("expected session id carried over, got %q", ctrl.SessionID())
	}
	if len(ctrl.Study().Modules) != 2 {
		t.Errorf("expected modules hydrated, got %d", len(ctrl.Study().Modules))
	}
	if ctrl.Intro().ActivePage != learn.IntroPageCount {
		t.Error("expected onboarding marked complete after resume")
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	s, repo, _ := newLoadedScreen(sessionAt("s1", "Rust", time.Hour))

	s.handleKey(tea.KeyPressMsg{Code: 'd', Text: "d"})
	if !s.confirming {
		t.Fatal("expected confirmation prompt")
	}
	if len(repo.deleted) != 0 {
		t.Fatal("expected no deletion before confirmation")
	}

	// Any key except y cancels.
	s.handleKey(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if s.confirming {
		t.Error("expected confirmation cancelled")
	}
	if len(repo.deleted) != 0 {
		t.Error("expected no deletion after cancel")
	}
}

func TestDeleteConfirmedRemovesSession(t *testing.T) {
	s, repo, _ := newLoadedScreen(
		sessionAt("s1", "Rust", time.Hour),
		sessionAt("s2", "Go", 2*time.Hour),
	)

	s.handleKey(tea.KeyPressMsg{Code: 'd', Text: "d"})
	_, cmd := s.handleKey(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if cmd == nil {
		t.Fatal("expected a delete command")
	}

	msg := cmd()
	_, reload := s.Update(msg)

	if len(repo.deleted) != 1 {
		t.Fatalf("expected 1 deletion, got %d", len(repo.deleted))
	}
	if reload == nil {
		t.Fatal("expected a reload after deletion")
	}
	s.Update(reload())

	if len(s.visible()) != 1 {
		t.Errorf("expected 1 remaining session, got %d", len(s.visible()))
	}
	if s.visible()[0].Topic != "Go" {
		t.Errorf("expected the Go session to remain, got %q", s.visible()[0].Topic)
	}
}
