package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/senseilabs/sensei/internal/learn"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testSession(id, topic string) learn.Session {
	return learn.Session{
		ID:          id,
		UserID:      "user-1",
		Topic:       topic,
		Personality: learn.PersonalityPlayful,
		Modules: []learn.Module{
			{
				Title:       "Basics",
				Description: "Start here",
				Content:     []learn.ContentBlock{{HTML: "<p>hi</p>"}},
				Open:        true,
			},
			{Title: "Advanced", Description: "Later"},
		},
		GenerationHistory: []learn.ChatTurn{
			learn.NewTurn(learn.RoleUser, "plan please"),
			learn.NewTurn(learn.RoleModel, "[]"),
		},
	}
}

func TestSessionSaveAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	saved, err := repo.Save(ctx, testSession("s1", "Rust"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
		t.Error("expected timestamps filled in on save")
	}

	sessions, err := repo.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}

	got := sessions[0]
	if got.Topic != "Rust" || got.Personality != learn.PersonalityPlayful {
		t.Errorf("session fields lost: %+v", got)
	}
	if len(got.Modules) != 2 || !got.Modules[0].Open || len(got.Modules[0].Content) != 1 {
		t.Errorf("modules not round-tripped: %+v", got.Modules)
	}
	if len(got.GenerationHistory) != 2 || got.GenerationHistory[1].Role != learn.RoleModel {
		t.Errorf("history not round-tripped: %+v", got.GenerationHistory)
	}
}

func TestSessionSaveUpserts(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	sess := testSession("s1", "Go")
	if _, err := repo.Save(ctx, sess); err != nil {
		t.Fatalf("first save: %v", err)
	}

	sess.Modules[1].Open = true
	sess.Modules[1].Content = []learn.ContentBlock{{HTML: "<p>more</p>"}}
	if _, err := repo.Save(ctx, sess); err != nil {
		t.Fatalf("second save: %v", err)
	}

	sessions, err := repo.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected upsert to keep 1 row, got %d", len(sessions))
	}
	if !sessions[0].Modules[1].Open {
		t.Error("expected updated module state")
	}
}

func TestSessionListOrderedNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	if _, err := repo.Save(ctx, testSession("s1", "first")); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := repo.Save(ctx, testSession("s2", "second")); err != nil {
		t.Fatal(err)
	}

	sessions, err := repo.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != "s2" {
		t.Errorf("expected newest first, got %q", sessions[0].ID)
	}
}

func TestSessionListScopedToUser(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	other := testSession("s9", "Theirs")
	other.UserID = "user-2"
	if _, err := repo.Save(ctx, other); err != nil {
		t.Fatal(err)
	}

	sessions, err := repo.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("expected no sessions for user-1, got %d", len(sessions))
	}
}

func TestSessionDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	if _, err := repo.Save(ctx, testSession("s1", "Rust")); err != nil {
		t.Fatal(err)
	}

	if err := repo.Delete(ctx, "s1", "user-2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleting another user's session should be ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "s1", "user-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "s1", "user-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete should be ErrNotFound, got %v", err)
	}
}

func TestLLMEventAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "gemini",
		Model:        "gemini-2.0-flash",
		Purpose:      "module-list",
		InputTokens:  100,
		OutputTokens: 400,
		LatencyMs:    1200,
		Success:      true,
		ResponseBody: `[{"title":"A","description":"B"}]`,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Purpose != "module-list" || !events[0].Success {
		t.Errorf("event fields lost: %+v", events[0])
	}

	got, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Model != "gemini-2.0-flash" {
		t.Errorf("unexpected event: %+v", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 99999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for an absent event")
	}
}

func TestLLMUsageAggregation(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, d := range []LLMRequestEventData{
		{Provider: "gemini", Model: "m1", Purpose: "module-list", InputTokens: 100, OutputTokens: 200, LatencyMs: 1000, Success: true},
		{Provider: "gemini", Model: "m1", Purpose: "module-list", InputTokens: 50, OutputTokens: 100, LatencyMs: 2000, Success: true},
		{Provider: "gemini", Model: "m2", Purpose: "module-chat", InputTokens: 10, OutputTokens: 20, LatencyMs: 500, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(byPurpose))
	}
	for _, u := range byPurpose {
		if u.Purpose == "module-list" {
			if u.Calls != 2 || u.InputTokens != 150 || u.OutputTokens != 300 {
				t.Errorf("unexpected module-list usage: %+v", u)
			}
			if u.AvgLatencyMs != 1500 {
				t.Errorf("expected avg latency 1500, got %d", u.AvgLatencyMs)
			}
		}
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("expected 2 models, got %d", len(byModel))
	}
}
