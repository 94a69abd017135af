// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/senseilabs/sensei/ent/learningsession"
	"github.com/senseilabs/sensei/ent/schema"
)

// LearningSessionCreate is the builder for creating a LearningSession entity.
type LearningSessionCreate struct {
	config
	mutation *LearningSessionMutation
	hooks    []Hook
}

// SetSid sets the "sid" field.
func (_c *LearningSessionCreate) SetSid(v string) *LearningSessionCreate {
	_c.mutation.SetSid(v)
	return _c
}

// SetUserID sets the "user_id" field.
func (_c *LearningSessionCreate) SetUserID(v string) *LearningSessionCreate {
	_c.mutation.SetUserID(v)
	return _c
}

// SetTopic sets the "topic" field.
func (_c *LearningSessionCreate) SetTopic(v string) *LearningSessionCreate {
	_c.mutation.SetTopic(v)
	return _c
}

// SetPersonality sets the "personality" field.
func (_c *LearningSessionCreate) SetPersonality(v string) *LearningSessionCreate {
	_c.mutation.SetPersonality(v)
	return _c
}

// SetNillablePersonality sets the "personality" field if the given value is not nil.
func (_c *LearningSessionCreate) SetNillablePersonality(v *string) *LearningSessionCreate {
	if v != nil {
		_c.SetPersonality(*v)
	}
	return _c
}

// SetModulesData sets the "modules_data" field.
func (_c *LearningSessionCreate) SetModulesData(v []schema.ModuleData) *LearningSessionCreate {
	_c.mutation.SetModulesData(v)
	return _c
}

// SetGenerationHistory sets the "generation_history" field.
func (_c *LearningSessionCreate) SetGenerationHistory(v []schema.ChatTurnData) *LearningSessionCreate {
	_c.mutation.SetGenerationHistory(v)
	return _c
}

// SetCreatedAt sets the "created_at" field.
func (_c *LearningSessionCreate) SetCreatedAt(v time.Time) *LearningSessionCreate {
	_c.mutation.SetCreatedAt(v)
	return _c
}

// SetNillableCreatedAt sets the "created_at" field if the given value is not nil.
func (_c *LearningSessionCreate) SetNillableCreatedAt(v *time.Time) *LearningSessionCreate {
	if v != nil {
		_c.SetCreatedAt(*v)
	}
	return _c
}

// SetUpdatedAt sets the "updated_at" field.
func (_c *LearningSessionCreate) SetUpdatedAt(v time.Time) *LearningSessionCreate {
	_c.mutation.SetUpdatedAt(v)
	return _c
}

// SetNillableUpdatedAt sets the "updated_at" field if the given value is not nil.
func (_c *LearningSessionCreate) SetNillableUpdatedAt(v *time.Time) *LearningSessionCreate {
	if v != nil {
		_c.SetUpdatedAt(*v)
	}
	return _c
}

// Mutation returns the LearningSessionMutation object of the builder.
func (_c *LearningSessionCreate) Mutation() *LearningSessionMutation {
	return _c.mutation
}

// Save creates the LearningSession in the database.
func (_c *LearningSessionCreate) Save(ctx context.Context) (*LearningSession, error) {
	_c.defaults()
	return withHooks(ctx, _c.sqlSave, _c.mutation, _c.hooks)
}

// SaveX calls Save and panics if Save returns an error.
func (_c *LearningSessionCreate) SaveX(ctx context.Context) *LearningSession {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *LearningSessionCreate) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *LearningSessionCreate) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_c *LearningSessionCreate) defaults() {
	if _, ok := _c.mutation.Personality(); !ok {
		v := learningsession.DefaultPersonality
		_c.mutation.SetPersonality(v)
	}
	if _, ok := _c.mutation.CreatedAt(); !ok {
		v := learningsession.DefaultCreatedAt()
		_c.mutation.SetCreatedAt(v)
	}
	if _, ok := _c.mutation.UpdatedAt(); !ok {
		v := learningsession.DefaultUpdatedAt()
		_c.mutation.SetUpdatedAt(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_c *LearningSessionCreate) check() error {
	if _, ok := _c.mutation.Sid(); !ok {
		return &ValidationError{Name: "sid", err: errors.New(`ent: missing required field "LearningSession.sid"`)}
	}
	if v, ok := _c.mutation.Sid(); ok {
		if err := learningsession.SidValidator(v); err != nil {
			return &ValidationError{Name: "sid", err: fmt.Errorf(`ent: validator failed for field "LearningSession.sid": %w`, err)}
		}
	}
	if _, ok := _c.mutation.UserID(); !ok {
		return &ValidationError{Name: "user_id", err: errors.New(`ent: missing required field "LearningSession.user_id"`)}
	}
	if v, ok := _c.mutation.UserID(); ok {
		if err := learningsession.UserIDValidator(v); err != nil {
			return &ValidationError{Name: "user_id", err: fmt.Errorf(`ent: validator failed for field "LearningSession.user_id": %w`, err)}
		}
	}
	if _, ok := _c.mutation.Topic(); !ok {
		return &ValidationError{Name: "topic", err: errors.New(`ent: missing required field "LearningSession.topic"`)}
	}
	if v, ok := _c.mutation.Topic(); ok {
		if err := learningsession.TopicValidator(v); err != nil {
			return &ValidationError{Name: "topic", err: fmt.Errorf(`ent: validator failed for field "LearningSession.topic": %w`, err)}
		}
	}
	if _, ok := _c.mutation.Personality(); !ok {
		return &ValidationError{Name: "personality", err: errors.New(`ent: missing required field "LearningSession.personality"`)}
	}
	if _, ok := _c.mutation.CreatedAt(); !ok {
		return &ValidationError{Name: "created_at", err: errors.New(`ent: missing required field "LearningSession.created_at"`)}
	}
	if _, ok := _c.mutation.UpdatedAt(); !ok {
		return &ValidationError{Name: "updated_at", err: errors.New(`ent: missing required field "LearningSession.updated_at"`)}
	}
	return nil
}

func (_c *LearningSessionCreate) sqlSave(ctx context.Context) (*LearningSession, error) {
	if err := _c.check(); err != nil {
		return nil, err
	}
	_node, _spec := _c.createSpec()
	if err := sqlgraph.CreateNode(ctx, _c.driver, _spec); err != nil {
		if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	id := _spec.ID.Value.(int64)
	_node.ID = int(id)
	_c.mutation.id = &_node.ID
	_c.mutation.done = true
	return _node, nil
}

func (_c *LearningSessionCreate) createSpec() (*LearningSession, *sqlgraph.CreateSpec) {
	var (
		_node = &LearningSession{config: _c.config}
		_spec = sqlgraph.NewCreateSpec(learningsession.Table, sqlgraph.NewFieldSpec(learningsession.FieldID, field.TypeInt))
	)
	if value, ok := _c.mutation.Sid(); ok {
		_spec.SetField(learningsession.FieldSid, field.TypeString, value)
		_node.Sid = value
	}
	if value, ok := _c.mutation.UserID(); ok {
		_spec.SetField(learningsession.FieldUserID, field.TypeString, value)
		_node.UserID = value
	}
	if value, ok := _c.mutation.Topic(); ok {
		_spec.SetField(learningsession.FieldTopic, field.TypeString, value)
		_node.Topic = value
	}
	if value, ok := _c.mutation.Personality(); ok {
		_spec.SetField(learningsession.FieldPersonality, field.TypeString, value)
		_node.Personality = value
	}
	if value, ok := _c.mutation.ModulesData(); ok {
		_spec.SetField(learningsession.FieldModulesData, field.TypeJSON, value)
		_node.ModulesData = value
	}
	if value, ok := _c.mutation.GenerationHistory(); ok {
		_spec.SetField(learningsession.FieldGenerationHistory, field.TypeJSON, value)
		_node.GenerationHistory = value
	}
	if value, ok := _c.mutation.CreatedAt(); ok {
		_spec.SetField(learningsession.FieldCreatedAt, field.TypeTime, value)
		_node.CreatedAt = value
	}
	if value, ok := _c.mutation.UpdatedAt(); ok {
		_spec.SetField(learningsession.FieldUpdatedAt, field.TypeTime, value)
		_node.UpdatedAt = value
	}
	return _node, _spec
}

// LearningSessionCreateBulk is the builder for creating many LearningSession entities in bulk.
type LearningSessionCreateBulk struct {
	config
	err      error
	builders []*LearningSessionCreate
}

// Save creates the LearningSession entities in the database.
func (_c *LearningSessionCreateBulk) Save(ctx context.Context) ([]*LearningSession, error) {
	if _c.err != nil {
		return nil, _c.err
	}
	specs := make([]*sqlgraph.CreateSpec, len(_c.builders))
	nodes := make([]*LearningSession, len(_c.builders))
	mutators := make([]Mutator, len(_c.builders))
	for i := range _c.builders {
		func(i int, root context.Context) {
			builder := _c.builders[i]
			builder.defaults()
			var mut Mutator = MutateFunc(func(ctx context.Context, m Mutation) (Value, error) {
				mutation, ok := m.(*LearningSessionMutation)
				if !ok {
					return nil, fmt.Errorf("unexpected mutation type %T", m)
				}
				if err := builder.check(); err != nil {
					return nil, err
				}
				builder.mutation = mutation
				var err error
				nodes[i], specs[i] = builder.createSpec()
				if i < len(mutators)-1 {
					_, err = mutators[i+1].Mutate(root, _c.builders[i+1].mutation)
				} else {
					spec := &sqlgraph.BatchCreateSpec{Nodes: specs}
					// Invoke the actual operation on the latest mutation in the chain.
					if err = sqlgraph.BatchCreate(ctx, _c.driver, spec); err != nil {
						if sqlgraph.IsConstraintError(err) {
							err = &ConstraintError{msg: err.Error(), wrap: err}
						}
					}
				}
				if err != nil {
					return nil, err
				}
				mutation.id = &nodes[i].ID
				if specs[i].ID.Value != nil {
					id := specs[i].ID.Value.(int64)
					nodes[i].ID = int(id)
				}
				mutation.done = true
				return nodes[i], nil
			})
			for i := len(builder.hooks) - 1; i >= 0; i-- {
				mut = builder.hooks[i](mut)
			}
			mutators[i] = mut
		}(i, ctx)
	}
	if len(mutators) > 0 {
		if _, err := mutators[0].Mutate(ctx, _c.builders[0].mutation); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// SaveX is like Save, but panics if an error occurs.
func (_c *LearningSessionCreateBulk) SaveX(ctx context.Context) []*LearningSession {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *LearningSessionCreateBulk) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *LearningSessionCreateBulk) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}
