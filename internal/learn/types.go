package learn

import (
	"strings"
	"time"
)

// Personality selects the tone of the AI teacher. It only affects the
// instruction text sent to the generation gateway; no other state
// depends on it.
type Personality string

const (
	PersonalityFormal   Personality = "formal"
	PersonalityInformal Personality = "informal"
	PersonalityPlayful  Personality = "playful"
	PersonalitySerious  Personality = "serious"
	PersonalityDefault  Personality = "default"
)

// AllPersonalities lists the selectable teacher personalities in menu order.
func AllPersonalities() []Personality {
	return []Personality{
		PersonalityDefault,
		PersonalityFormal,
		PersonalityInformal,
		PersonalityPlayful,
		PersonalitySerious,
	}
}

// Valid reports whether p is one of the closed set of personalities.
func (p Personality) Valid() bool {
	switch p {
	case PersonalityFormal, PersonalityInformal, PersonalityPlayful,
		PersonalitySerious, PersonalityDefault:
		return true
	}
	return false
}

// Role is the author of a chat turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Part is one text fragment of a chat turn.
type Part struct {
	Text string `json:"text"`
}

// ChatTurn is a single entry in a conversation log. Turns are append-only
// within a session and are replayed as context to the generation gateway.
type ChatTurn struct {
	Role  Role   `json:"role"`
	Parts []Part `json:"parts"`
}

// NewTurn builds a single-part chat turn.
func NewTurn(role Role, text string) ChatTurn {
	return ChatTurn{Role: role, Parts: []Part{{Text: text}}}
}

// ContentBlock is one unit of generated module body content.
type ContentBlock struct {
	HTML string `json:"html"`
}

// Module is one unit of generated learning content. Title and Description
// are fixed once the module list is generated; Content is appended to
// (never replaced) as generation proceeds.
type Module struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Content     []ContentBlock `json:"content,omitempty"`
	Open        bool           `json:"isOpen"`
	ChatHistory []ChatTurn     `json:"chatHistory,omitempty"`
	AudioURL    string         `json:"audioUrl,omitempty"`
}

// Session is a persisted record of one topic's generated modules, chosen
// personality, and conversation history. A session is owned by exactly one
// user; it is created on the first successful module-list generation for a
// topic and updated on each save.
type Session struct {
	ID                string
	UserID            string
	Topic             string
	Personality       Personality
	Modules           []Module
	GenerationHistory []ChatTurn
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// LatestPerTopic reduces a CreatedAt-descending session list to the most
// recent session per case-insensitive topic. This is a presentation-level
// reduction for the history listing; older sessions stay in storage.
func LatestPerTopic(sessions []Session) []Session {
	type best struct {
		idx int
		at  time.Time
	}
	seen := make(map[string]best)
	var order []string
	for i, s := range sessions {
		key := foldTopic(s.Topic)
		b, ok := seen[key]
		if !ok {
			seen[key] = best{idx: i, at: s.CreatedAt}
			order = append(order, key)
			continue
		}
		if s.CreatedAt.After(b.at) {
			seen[key] = best{idx: i, at: s.CreatedAt}
		}
	}
	out := make([]Session, 0, len(order))
	for _, key := range order {
		out = append(out, sessions[seen[key].idx])
	}
	return out
}

func foldTopic(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}
