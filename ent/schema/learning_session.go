package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// PartData is the serialized form of one chat turn fragment.
type PartData struct {
	Text string `json:"text"`
}

// ChatTurnData is the serialized form of one conversation turn.
type ChatTurnData struct {
	Role  string     `json:"role"`
	Parts []PartData `json:"parts"`
}

// ContentBlockData is the serialized form of one module body section.
type ContentBlockData struct {
	HTML string `json:"html"`
}

// ModuleData is the serialized form of one study module.
type ModuleData struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Content     []ContentBlockData `json:"content,omitempty"`
	IsOpen      bool               `json:"isOpen"`
	ChatHistory []ChatTurnData     `json:"chatHistory,omitempty"`
	AudioURL    string             `json:"audioUrl,omitempty"`
}

// LearningSession is one persisted personalized-learning session: the
// topic, the chosen teacher personality, the generated modules and the
// conversation history that produced them.
type LearningSession struct {
	ent.Schema
}

func (LearningSession) Fields() []ent.Field {
	return []ent.Field{
		field.String("sid").
			Unique().
			Immutable().
			NotEmpty().
			Comment("Client-minted UUID for the session"),
		field.String("user_id").
			NotEmpty().
			Comment("Owning user account"),
		field.String("topic").
			NotEmpty().
			Comment("Study topic entered in onboarding"),
		field.String("personality").
			Default("default").
			Comment("Teacher personality preset"),
		field.JSON("modules_data", []ModuleData{}).
			Optional().
			Comment("Generated modules with lazily fetched content"),
		field.JSON("generation_history", []ChatTurnData{}).
			Optional().
			Comment("Conversation replayed to the generation gateway"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

func (LearningSession) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id"),
		index.Fields("user_id", "created_at"),
		index.Fields("topic"),
	}
}
