// Code generated by ent, DO NOT EDIT.

package ent

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql"
	"github.com/senseilabs/sensei/ent/learningsession"
	"github.com/senseilabs/sensei/ent/schema"
)

// LearningSession is the model entity for the LearningSession schema.
type LearningSession struct {
	config `json:"-"`
	// ID of the ent.
	ID int `json:"id,omitempty"`
	// Client-minted UUID for the session
	Sid string `json:"sid,omitempty"`
	// Owning user account
	UserID string `json:"user_id,omitempty"`
	// Study topic entered in onboarding
	Topic string `json:"topic,omitempty"`
	// Teacher personality preset
	Personality string `json:"personality,omitempty"`
	// Generated modules with lazily fetched content
	ModulesData []schema.ModuleData `json:"modules_data,omitempty"`
	// Conversation replayed to the generation gateway
	GenerationHistory []schema.ChatTurnData `json:"generation_history,omitempty"`
	// CreatedAt holds the value of the "created_at" field.
	CreatedAt time.Time `json:"created_at,omitempty"`
	// UpdatedAt holds the value of the "updated_at" field.
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
	selectValues sql.SelectValues
}

// scanValues returns the types for scanning values from sql.Rows.
func (*LearningSession) scanValues(columns []string) ([]any, error) {
	values := make([]any, len(columns))
	for i := range columns {
		switch columns[i] {
		case learningsession.FieldModulesData, learningsession.FieldGenerationHistory:
			values[i] = new([]byte)
		case learningsession.FieldID:
			values[i] = new(sql.NullInt64)
		case learningsession.FieldSid, learningsession.FieldUserID, learningsession.FieldTopic, learningsession.FieldPersonality:
			values[i] = new(sql.NullString)
		case learningsession.FieldCreatedAt, learningsession.FieldUpdatedAt:
			values[i] = new(sql.NullTime)
		default:
			values[i] = new(sql.UnknownType)
		}
	}
	return values, nil
}

// assignValues assigns the values that were returned from sql.Rows (after scanning)
// to the LearningSession fields.
func (_m *LearningSession) assignValues(columns []string, values []any) error {
	if m, n := len(values), len(columns); m < n {
		return fmt.Errorf("mismatch number of scan values: %d != %d", m, n)
	}
	for i := range columns {
		switch columns[i] {
		case learningsession.FieldID:
			value, ok := values[i].(*sql.NullInt64)
			if !ok {
				return fmt.Errorf("unexpected type %T for field id", value)
			}
			_m.ID = int(value.Int64)
		case learningsession.FieldSid:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field sid", values[i])
			} else if value.Valid {
				_m.Sid = value.String
			}
		case learningsession.FieldUserID:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field user_id", values[i])
			} else if value.Valid {
				_m.UserID = value.String
			}
		case learningsession.FieldTopic:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field topic", values[i])
			} else if value.Valid {
				_m.Topic = value.String
			}
		case learningsession.FieldPersonality:
			if value, ok := values[i].(*sql.NullString); !ok {
				return fmt.Errorf("unexpected type %T for field personality", values[i])
			} else if value.Valid {
				_m.Personality = value.String
			}
		case learningsession.FieldModulesData:
			if value, ok := values[i].(*[]byte); !ok {
				return fmt.Errorf("unexpected type %T for field modules_data", values[i])
			} else if value != nil && len(*value) > 0 {
				if err := json.Unmarshal(*value, &_m.ModulesData); err != nil {
					return fmt.Errorf("unmarshal field modules_data: %w", err)
				}
			}
		case learningsession.FieldGenerationHistory:
			if value, ok := values[i].(*[]byte); !ok {
				return fmt.Errorf("unexpected type %T for field generation_history", values[i])
			} else if value != nil && len(*value) > 0 {
				if err := json.Unmarshal(*value, &_m.GenerationHistory); err != nil {
					return fmt.Errorf("unmarshal field generation_history: %w", err)
				}
			}
		case learningsession.FieldCreatedAt:
			if value, ok := values[i].(*sql.NullTime); !ok {
				return fmt.Errorf("unexpected type %T for field created_at", values[i])
			} else if value.Valid {
				_m.CreatedAt = value.Time
			}
		case learningsession.FieldUpdatedAt:
			if value, ok := values[i].(*sql.NullTime); !ok {
				return fmt.Errorf("unexpected type %T for field updated_at", values[i])
			} else if value.Valid {
				_m.UpdatedAt = value.Time
			}
		default:
			_m.selectValues.Set(columns[i], values[i])
		}
	}
	return nil
}

// Value returns the ent.Value that was dynamically selected and assigned to the LearningSession.
// This includes values selected through modifiers, order, etc.
func (_m *LearningSession) Value(name string) (ent.Value, error) {
	return _m.selectValues.Get(name)
}

// Update returns a builder for updating this LearningSession.
// Note that you need to call LearningSession.Unwrap() before calling this method if this LearningSession
// was returned from a transaction, and the transaction was committed or rolled back.
func (_m *LearningSession) Update() *LearningSessionUpdateOne {
	return NewLearningSessionClient(_m.config).UpdateOne(_m)
}

// Unwrap unwraps the LearningSession entity that was returned from a transaction after it was closed,
// so that all future queries will be executed through the driver which created the transaction.
func (_m *LearningSession) Unwrap() *LearningSession {
	_tx, ok := _m.config.driver.(*txDriver)
	if !ok {
		panic("ent: LearningSession is not a transactional entity")
	}
	_m.config.driver = _tx.drv
	return _m
}

// String implements the fmt.Stringer.
func (_m *LearningSession) String() string {
	var builder strings.Builder
	builder.WriteString("LearningSession(")
	builder.WriteString(fmt.Sprintf("id=%v, ", _m.ID))
	builder.WriteString("sid=")
	builder.WriteString(_m.Sid)
	builder.WriteString(", ")
	builder.WriteString("user_id=")
	builder.WriteString(_m.UserID)
	builder.WriteString(", ")
	builder.WriteString("topic=")
	builder.WriteString(_m.Topic)
	builder.WriteString(", ")
	builder.WriteString("personality=")
	builder.WriteString(_m.Personality)
	builder.WriteString(", ")
	builder.WriteString("modules_data=")
	builder.WriteString(fmt.Sprintf("%v", _m.ModulesData))
	builder.WriteString(", ")
	builder.WriteString("generation_history=")
	builder.WriteString(fmt.Sprintf("%v", _m.GenerationHistory))
	builder.WriteString(", ")
	builder.WriteString("created_at=")
	builder.WriteString(_m.CreatedAt.Format(time.ANSIC))
	builder.WriteString(", ")
	builder.WriteString("updated_at=")
	builder.WriteString(_m.UpdatedAt.Format(time.ANSIC))
	builder.WriteByte(')')
	return builder.String()
}

// LearningSessions is a parsable slice of LearningSession.
type LearningSessions []*LearningSession
