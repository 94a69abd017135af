package generate

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/senseilabs/sensei/internal/learn"
	"github.com/senseilabs/sensei/internal/llm"
)

func TestRequestModuleListParsesFencedResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("Sure! Here's your plan:\n```json\n[{\"title\":\"A\",\"description\":\"B\"}]\n```"),
	})
	g := New(mock, DefaultConfig())

	res, err := g.RequestModuleList(t.Context(), "Rust", learn.PersonalityDefault, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Modules) != 1 {
		t.Fatalf("expected 1 module, got %d", len(res.Modules))
	}
	if res.Modules[0].Title != "A" || res.Modules[0].Description != "B" {
		t.Errorf("unexpected module: %+v", res.Modules[0])
	}
	if len(res.Turns) != 2 {
		t.Fatalf("expected user+model turns, got %d", len(res.Turns))
	}
	if res.Turns[0].Role != learn.RoleUser || res.Turns[1].Role != learn.RoleModel {
		t.Errorf("unexpected turn roles: %+v", res.Turns)
	}
}

func TestRequestModuleListNoBrackets(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("no brackets here"),
	})
	g := New(mock, DefaultConfig())

	_, err := g.RequestModuleList(t.Context(), "Rust", learn.PersonalityDefault, nil)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestRequestModuleListWrongShape(t *testing.T) {
	// A valid JSON array whose elements miss the required fields.
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`[{"name":"A"}]`),
	})
	g := New(mock, DefaultConfig())

	_, err := g.RequestModuleList(t.Context(), "Rust", learn.PersonalityDefault, nil)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestRequestModuleListProviderFailure(t *testing.T) {
	mock := llm.NewMockProvider() // empty queue → provider unavailable
	g := New(mock, DefaultConfig())

	_, err := g.RequestModuleList(t.Context(), "Rust", learn.PersonalityDefault, nil)
	var gerr *GenerationError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *GenerationError, got %v", err)
	}
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Errorf("expected wrapped provider error, got %v", err)
	}
}

func TestRequestModuleContent(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`[{"html":"<h1>Ownership</h1>"},{"html":"<p>Borrowing rules...</p>"}]`),
	})
	g := New(mock, DefaultConfig())

	res, err := g.RequestModuleContent(t.Context(), "Rust",
		ModuleDescriptor{Title: "Ownership", Description: "Memory model"},
		learn.PersonalityPlayful, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(res.Blocks))
	}
	if res.Blocks[0].HTML != "<h1>Ownership</h1>" {
		t.Errorf("unexpected first block: %q", res.Blocks[0].HTML)
	}
}

func TestHistoryIsReplayedToProvider(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`[{"html":"<p>x</p>"}]`),
	})
	g := New(mock, DefaultConfig())

	history := []learn.ChatTurn{
		learn.NewTurn(learn.RoleUser, "plan please"),
		learn.NewTurn(learn.RoleModel, `[{"title":"A","description":"B"}]`),
	}
	_, err := g.RequestModuleContent(t.Context(), "Rust",
		ModuleDescriptor{Title: "A"}, learn.PersonalityDefault, history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mock.Calls))
	}
	msgs := mock.Calls[0].Messages
	if len(msgs) != 3 {
		t.Fatalf("expected history + prompt = 3 messages, got %d", len(msgs))
	}
	if msgs[0].Role != llm.RoleUser || msgs[1].Role != llm.RoleAssistant {
		t.Errorf("history roles not mapped: %+v", msgs)
	}
}

func TestRequestChatReply(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("  A pointer is an address.\n"),
	})
	g := New(mock, DefaultConfig())

	reply, err := g.RequestChatReply(t.Context(), nil, "what is a pointer?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "A pointer is an address." {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestPersonalityOnlyAffectsPrompt(t *testing.T) {
	for _, p := range learn.AllPersonalities() {
		mock := llm.NewMockProvider(llm.MockResponse{
			Content: json.RawMessage(`[{"title":"A","description":"B"}]`),
		})
		g := New(mock, DefaultConfig())
		res, err := g.RequestModuleList(t.Context(), "Go", p, nil)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", p, err)
		}
		if len(res.Modules) != 1 {
			t.Errorf("%s: expected identical parse regardless of personality", p)
		}
	}
}
