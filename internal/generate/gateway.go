package generate

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/senseilabs/sensei/internal/learn"
	"github.com/senseilabs/sensei/internal/llm"
)

// ModuleDescriptor is one entry of a generated study plan.
type ModuleDescriptor struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Config holds generation settings per operation.
type Config struct {
	ListMaxTokens    int
	ContentMaxTokens int
	ChatMaxTokens    int
	Temperature      float64
}

// DefaultConfig returns sensible defaults for content generation.
func DefaultConfig() Config {
	return Config{
		ListMaxTokens:    1024,
		ContentMaxTokens: 4096,
		ChatMaxTokens:    1024,
		Temperature:      0.7,
	}
}

// Gateway is the façade over the remote text-generation service. The
// model is asked for raw text and the JSON array is extracted from it, so
// upstreams that wrap JSON in prose or markdown fences still work.
type Gateway struct {
	provider llm.Provider
	cfg      Config
}

// New creates a Gateway on top of an LLM provider.
func New(provider llm.Provider, cfg Config) *Gateway {
	return &Gateway{provider: provider, cfg: cfg}
}

// ListResult is a successful module-list generation: the parsed plan plus
// the turns to append to the generation history.
type ListResult struct {
	Modules []ModuleDescriptor
	Turns   []learn.ChatTurn
}

// RequestModuleList asks the model for a study plan on topic. Fails with
// *GenerationError if the remote call fails and *ParseError if no valid
// JSON array can be extracted from its response.
func (g *Gateway) RequestModuleList(ctx context.Context, topic string, p learn.Personality, history []learn.ChatTurn) (*ListResult, error) {
	ctx = llm.WithPurpose(ctx, "module-list")

	prompt := buildListPrompt(topic, p)
	raw, err := g.complete(ctx, listSystemPrompt, history, prompt, g.cfg.ListMaxTokens)
	if err != nil {
		return nil, err
	}

	cleaned, err := ExtractJSONArray(raw)
	if err != nil {
		return nil, err
	}
	if err := validateArray("module-list", moduleListSchemaDef, cleaned); err != nil {
		return nil, err
	}

	var modules []ModuleDescriptor
	if err := json.Unmarshal([]byte(cleaned), &modules); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	return &ListResult{
		Modules: modules,
		Turns: []learn.ChatTurn{
			learn.NewTurn(learn.RoleUser, prompt),
			learn.NewTurn(learn.RoleModel, cleaned),
		},
	}, nil
}

// ContentResult is a successful module-content generation.
type ContentResult struct {
	Blocks []learn.ContentBlock
	Turns  []learn.ChatTurn
}

// RequestModuleContent asks the model for the body of one module. Same
// failure contract as RequestModuleList.
func (g *Gateway) RequestModuleContent(ctx context.Context, topic string, mod ModuleDescriptor, p learn.Personality, history []learn.ChatTurn) (*ContentResult, error) {
	ctx = llm.WithPurpose(ctx, "module-content")

	prompt := buildContentPrompt(topic, mod, p)
	raw, err := g.complete(ctx, contentSystemPrompt, history, prompt, g.cfg.ContentMaxTokens)
	if err != nil {
		return nil, err
	}

	cleaned, err := ExtractJSONArray(raw)
	if err != nil {
		return nil, err
	}
	if err := validateArray("module-content", moduleContentSchemaDef, cleaned); err != nil {
		return nil, err
	}

	var blocks []learn.ContentBlock
	if err := json.Unmarshal([]byte(cleaned), &blocks); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	return &ContentResult{
		Blocks: blocks,
		Turns: []learn.ChatTurn{
			learn.NewTurn(learn.RoleUser, prompt),
			learn.NewTurn(learn.RoleModel, cleaned),
		},
	}, nil
}

// RequestChatReply asks the model a learner question in the context of a
// module conversation. The reply is free-form text, no array extraction.
func (g *Gateway) RequestChatReply(ctx context.Context, history []learn.ChatTurn, question string) (string, error) {
	ctx = llm.WithPurpose(ctx, "module-chat")

	raw, err := g.complete(ctx, chatSystemPrompt, history, question, g.cfg.ChatMaxTokens)
	if err != nil {
		return "", err
	}
	reply := strings.TrimSpace(raw)
	if reply == "" {
		return "", &GenerationError{Err: errors.New("empty reply")}
	}
	return reply, nil
}

// complete replays the conversation history, appends the new user prompt
// and returns the model's raw text.
func (g *Gateway) complete(ctx context.Context, system string, history []learn.ChatTurn, prompt string, maxTokens int) (string, error) {
	messages := make([]llm.Message, 0, len(history)+1)
	for _, turn := range history {
		messages = append(messages, llm.Message{
			Role:    mapRole(turn.Role),
			Content: turnText(turn),
		})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: prompt})

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	return string(resp.Content), nil
}

func mapRole(r learn.Role) llm.Role {
	if r == learn.RoleModel {
		return llm.RoleAssistant
	}
	return llm.RoleUser
}

func turnText(turn learn.ChatTurn) string {
	if len(turn.Parts) == 1 {
		return turn.Parts[0].Text
	}
	var b strings.Builder
	for i, p := range turn.Parts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(p.Text)
	}
	return b.String()
}
