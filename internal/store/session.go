package store

import (
	"context"
	"fmt"

	"github.com/senseilabs/sensei/ent"
	"github.com/senseilabs/sensei/ent/learningsession"
	entschema "github.com/senseilabs/sensei/ent/schema"
	"github.com/senseilabs/sensei/internal/learn"
)

// sessionRepo implements SessionRepo using the ent client.
type sessionRepo struct {
	client *ent.Client
}

func (r *sessionRepo) List(ctx context.Context, userID string) ([]learn.Session, error) {
	rows, err := r.client.LearningSession.Query().
		Where(learningsession.UserID(userID)).
		Order(ent.Desc(learningsession.FieldCreatedAt)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	out := make([]learn.Session, 0, len(rows))
	for _, row := range rows {
		out = append(out, entToSession(row))
	}
	return out, nil
}

func (r *sessionRepo) Save(ctx context.Context, s learn.Session) (learn.Session, error) {
	existing, err := r.client.LearningSession.Query().
		Where(learningsession.Sid(s.ID), learningsession.UserID(s.UserID)).
		Only(ctx)
	if err != nil && !ent.IsNotFound(err) {
		return learn.Session{}, fmt.Errorf("query session: %w", err)
	}

	modules := modulesToData(s.Modules)
	history := turnsToData(s.GenerationHistory)

	if existing == nil {
		created, err := r.client.LearningSession.Create().
			SetSid(s.ID).
			SetUserID(s.UserID).
			SetTopic(s.Topic).
			SetPersonality(string(s.Personality)).
			SetModulesData(modules).
			SetGenerationHistory(history).
			Save(ctx)
		if err != nil {
			return learn.Session{}, fmt.Errorf("create session: %w", err)
		}
		return entToSession(created), nil
	}

	updated, err := existing.Update().
		SetTopic(s.Topic).
		SetPersonality(string(s.Personality)).
		SetModulesData(modules).
		SetGenerationHistory(history).
		Save(ctx)
	if err != nil {
		return learn.Session{}, fmt.Errorf("update session: %w", err)
	}
	return entToSession(updated), nil
}

func (r *sessionRepo) Delete(ctx context.Context, id, userID string) error {
	n, err := r.client.LearningSession.Delete().
		Where(learningsession.Sid(id), learningsession.UserID(userID)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete session %s: %w", id, ErrNotFound)
	}
	return nil
}

func entToSession(row *ent.LearningSession) learn.Session {
	return learn.Session{
		ID:                row.Sid,
		UserID:            row.UserID,
		Topic:             row.Topic,
		Personality:       learn.Personality(row.Personality),
		Modules:           dataToModules(row.ModulesData),
		GenerationHistory: dataToTurns(row.GenerationHistory),
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

func modulesToData(mods []learn.Module) []entschema.ModuleData {
	out := make([]entschema.ModuleData, 0, len(mods))
	for _, m := range mods {
		blocks := make([]entschema.ContentBlockData, 0, len(m.Content))
		for _, b := range m.Content {
			blocks = append(blocks, entschema.ContentBlockData{HTML: b.HTML})
		}
		out = append(out, entschema.ModuleData{
			Title:       m.Title,
			Description: m.Description,
			Content:     blocks,
			IsOpen:      m.Open,
			ChatHistory: turnsToData(m.ChatHistory),
			AudioURL:    m.AudioURL,
		})
	}
	return out
}

func dataToModules(data []entschema.ModuleData) []learn.Module {
	out := make([]learn.Module, 0, len(data))
	for _, d := range data {
		blocks := make([]learn.ContentBlock, 0, len(d.Content))
		for _, b := range d.Content {
			blocks = append(blocks, learn.ContentBlock{HTML: b.HTML})
		}
		out = append(out, learn.Module{
			Title:       d.Title,
			Description: d.Description,
			Content:     blocks,
			Open:        d.IsOpen,
			ChatHistory: dataToTurns(d.ChatHistory),
			AudioURL:    d.AudioURL,
		})
	}
	return out
}

func turnsToData(turns []learn.ChatTurn) []entschema.ChatTurnData {
	out := make([]entschema.ChatTurnData, 0, len(turns))
	for _, t := range turns {
		parts := make([]entschema.PartData, 0, len(t.Parts))
		for _, p := range t.Parts {
			parts = append(parts, entschema.PartData{Text: p.Text})
		}
		out = append(out, entschema.ChatTurnData{Role: string(t.Role), Parts: parts})
	}
	return out
}

func dataToTurns(data []entschema.ChatTurnData) []learn.ChatTurn {
	out := make([]learn.ChatTurn, 0, len(data))
	for _, d := range data {
		parts := make([]learn.Part, 0, len(d.Parts))
		for _, p := range d.Parts {
			parts = append(parts, learn.Part{Text: p.Text})
		}
		out = append(out, learn.ChatTurn{Role: learn.Role(d.Role), Parts: parts})
	}
	return out
}
