// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/dialect/sql/sqljson"
	"entgo.io/ent/schema/field"
	"github.com/senseilabs/sensei/ent/learningsession"
	"github.com/senseilabs/sensei/ent/predicate"
	"github.com/senseilabs/sensei/ent/schema"
)

// LearningSessionUpdate is the builder for updating LearningSession entities.
type LearningSessionUpdate struct {
	config
	hooks    []Hook
	mutation *LearningSessionMutation
}

// Where appends a list predicates to the LearningSessionUpdate builder.
func (_u *LearningSessionUpdate) Where(ps ...predicate.LearningSession) *LearningSessionUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetUserID sets the "user_id" field.
func (_u *LearningSessionUpdate) SetUserID(v string) *LearningSessionUpdate {
	_u.mutation.SetUserID(v)
	return _u
}

// SetNillableUserID sets the "user_id" field if the given value is not nil.
func (_u *LearningSessionUpdate) SetNillableUserID(v *string) *LearningSessionUpdate {
	if v != nil {
		_u.SetUserID(*v)
	}
	return _u
}

// SetTopic sets the "topic" field.
func (_u *LearningSessionUpdate) SetTopic(v string) *LearningSessionUpdate {
	_u.mutation.SetTopic(v)
	return _u
}

// SetNillableTopic sets the "topic" field if the given value is not nil.
func (_u *LearningSessionUpdate) SetNillableTopic(v *string) *LearningSessionUpdate {
	if v != nil {
		_u.SetTopic(*v)
	}
	return _u
}

// SetPersonality sets the "personality" field.
func (_u *LearningSessionUpdate) SetPersonality(v string) *LearningSessionUpdate {
	_u.mutation.SetPersonality(v)
	return _u
}

// SetNillablePersonality sets the "personality" field if the given value is not nil.
func (_u *LearningSessionUpdate) SetNillablePersonality(v *string) *LearningSessionUpdate {
	if v != nil {
		_u.SetPersonality(*v)
	}
	return _u
}

// SetModulesData sets the "modules_data" field.
func (_u *LearningSessionUpdate) SetModulesData(v []schema.ModuleData) *LearningSessionUpdate {
	_u.mutation.SetModulesData(v)
	return _u
}

// AppendModulesData appends value to the "modules_data" field.
func (_u *LearningSessionUpdate) AppendModulesData(v []schema.ModuleData) *LearningSessionUpdate {
	_u.mutation.AppendModulesData(v)
	return _u
}

// ClearModulesData clears the value of the "modules_data" field.
func (_u *LearningSessionUpdate) ClearModulesData() *LearningSessionUpdate {
	_u.mutation.ClearModulesData()
	return _u
}

// SetGenerationHistory sets the "generation_history" field.
func (_u *LearningSessionUpdate) SetGenerationHistory(v []schema.ChatTurnData) *LearningSessionUpdate {
	_u.mutation.SetGenerationHistory(v)
	return _u
}

// AppendGenerationHistory appends value to the "generation_history" field.
func (_u *LearningSessionUpdate) AppendGenerationHistory(v []schema.ChatTurnData) *LearningSessionUpdate {
	_u.mutation.AppendGenerationHistory(v)
	return _u
}

// ClearGenerationHistory clears the value of the "generation_history" field.
func (_u *LearningSessionUpdate) ClearGenerationHistory() *LearningSessionUpdate {
	_u.mutation.ClearGenerationHistory()
	return _u
}

// SetUpdatedAt sets the "updated_at" field.
func (_u *LearningSessionUpdate) SetUpdatedAt(v time.Time) *LearningSessionUpdate {
	_u.mutation.SetUpdatedAt(v)
	return _u
}

// Mutation returns the LearningSessionMutation object of the builder.
func (_u *LearningSessionUpdate) Mutation() *LearningSessionMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *LearningSessionUpdate) Save(ctx context.Context) (int, error) {
	_u.defaults()
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *LearningSessionUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *LearningSessionUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *LearningSessionUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_u *LearningSessionUpdate) defaults() {
	if _, ok := _u.mutation.UpdatedAt(); !ok {
		v := learningsession.UpdateDefaultUpdatedAt()
		_u.mutation.SetUpdatedAt(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *LearningSessionUpdate) check() error {
	if v, ok := _u.mutation.UserID(); ok {
		if err := learningsession.UserIDValidator(v); err != nil {
			return &ValidationError{Name: "user_id", err: fmt.Errorf(`ent: validator failed for field "LearningSession.user_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.Topic(); ok {
		if err := learningsession.TopicValidator(v); err != nil {
			return &ValidationError{Name: "topic", err: fmt.Errorf(`ent: validator failed for field "LearningSession.topic": %w`, err)}
		}
	}
	return nil
}

func (_u *LearningSessionUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(learningsession.Table, learningsession.Columns, sqlgraph.NewFieldSpec(learningsession.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.UserID(); ok {
		_spec.SetField(learningsession.FieldUserID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Topic(); ok {
		_spec.SetField(learningsession.FieldTopic, field.TypeString, value)
	}
	if value, ok := _u.mutation.Personality(); ok {
		_spec.SetField(learningsession.FieldPersonality, field.TypeString, value)
	}
	if value, ok := _u.mutation.ModulesData(); ok {
		_spec.SetField(learningsession.FieldModulesData, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedModulesData(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, learningsession.FieldModulesData, value)
		})
	}
	if _u.mutation.ModulesDataCleared() {
		_spec.ClearField(learningsession.FieldModulesData, field.TypeJSON)
	}
	if value, ok := _u.mutation.GenerationHistory(); ok {
		_spec.SetField(learningsession.FieldGenerationHistory, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedGenerationHistory(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, learningsession.FieldGenerationHistory, value)
		})
	}
	if _u.mutation.GenerationHistoryCleared() {
		_spec.ClearField(learningsession.FieldGenerationHistory, field.TypeJSON)
	}
	if value, ok := _u.mutation.UpdatedAt(); ok {
		_spec.SetField(learningsession.FieldUpdatedAt, field.TypeTime, value)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{learningsession.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// LearningSessionUpdateOne is the builder for updating a single LearningSession entity.
type LearningSessionUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *LearningSessionMutation
}

// SetUserID sets the "user_id" field.
func (_u *LearningSessionUpdateOne) SetUserID(v string) *LearningSessionUpdateOne {
	_u.mutation.SetUserID(v)
	return _u
}

// SetNillableUserID sets the "user_id" field if the given value is not nil.
func (_u *LearningSessionUpdateOne) SetNillableUserID(v *string) *LearningSessionUpdateOne {
	if v != nil {
		_u.SetUserID(*v)
	}
	return _u
}

// SetTopic sets the "topic" field.
func (_u *LearningSessionUpdateOne) SetTopic(v string) *LearningSessionUpdateOne {
	_u.mutation.SetTopic(v)
	return _u
}

// SetNillableTopic sets the "topic" field if the given value is not nil.
func (_u *LearningSessionUpdateOne) SetNillableTopic(v *string) *LearningSessionUpdateOne {
	if v != nil {
		_u.SetTopic(*v)
	}
	return _u
}

// SetPersonality sets the "personality" field.
func (_u *LearningSessionUpdateOne) SetPersonality(v string) *LearningSessionUpdateOne {
	_u.mutation.SetPersonality(v)
	return _u
}

// SetNillablePersonality sets the "personality" field if the given value is not nil.
func (_u *LearningSessionUpdateOne) SetNillablePersonality(v *string) *LearningSessionUpdateOne {
	if v != nil {
		_u.SetPersonality(*v)
	}
	return _u
}

// SetModulesData sets the "modules_data" field.
func (_u *LearningSessionUpdateOne) SetModulesData(v []schema.ModuleData) *LearningSessionUpdateOne {
	_u.mutation.SetModulesData(v)
	return _u
}

// AppendModulesData appends value to the "modules_data" field.
func (_u *LearningSessionUpdateOne) AppendModulesData(v []schema.ModuleData) *LearningSessionUpdateOne {
	_u.mutation.AppendModulesData(v)
	return _u
}

// ClearModulesData clears the value of the "modules_data" field.
func (_u *LearningSessionUpdateOne) ClearModulesData() *LearningSessionUpdateOne {
	_u.mutation.ClearModulesData()
	return _u
}

// SetGenerationHistory sets the "generation_history" field.
func (_u *LearningSessionUpdateOne) SetGenerationHistory(v []schema.ChatTurnData) *LearningSessionUpdateOne {
	_u.mutation.SetGenerationHistory(v)
	return _u
}

// AppendGenerationHistory appends value to the "generation_history" field.
func (_u *LearningSessionUpdateOne) AppendGenerationHistory(v []schema.ChatTurnData) *LearningSessionUpdateOne {
	_u.mutation.AppendGenerationHistory(v)
	return _u
}

// ClearGenerationHistory clears the value of the "generation_history" field.
func (_u *LearningSessionUpdateOne) ClearGenerationHistory() *LearningSessionUpdateOne {
	_u.mutation.ClearGenerationHistory()
	return _u
}

// SetUpdatedAt sets the "updated_at" field.
func (_u *LearningSessionUpdateOne) SetUpdatedAt(v time.Time) *LearningSessionUpdateOne {
	_u.mutation.SetUpdatedAt(v)
	return _u
}

// Mutation returns the LearningSessionMutation object of the builder.
func (_u *LearningSessionUpdateOne) Mutation() *LearningSessionMutation {
	return _u.mutation
}

// Where appends a list predicates to the LearningSessionUpdate builder.
func (_u *LearningSessionUpdateOne) Where(ps ...predicate.LearningSession) *LearningSessionUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *LearningSessionUpdateOne) Select(field string, fields ...string) *LearningSessionUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated LearningSession entity.
func (_u *LearningSessionUpdateOne) Save(ctx context.Context) (*LearningSession, error) {
	_u.defaults()
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *LearningSessionUpdateOne) SaveX(ctx context.Context) *LearningSession {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *LearningSessionUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *LearningSessionUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_u *LearningSessionUpdateOne) defaults() {
	if _, ok := _u.mutation.UpdatedAt(); !ok {
		v := learningsession.UpdateDefaultUpdatedAt()
		_u.mutation.SetUpdatedAt(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *LearningSessionUpdateOne) check() error {
	if v, ok := _u.mutation.UserID(); ok {
		if err := learningsession.UserIDValidator(v); err != nil {
			return &ValidationError{Name: "user_id", err: fmt.Errorf(`ent: validator failed for field "LearningSession.user_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.Topic(); ok {
		if err := learningsession.TopicValidator(v); err != nil {
			return &ValidationError{Name: "topic", err: fmt.Errorf(`ent: validator failed for field "LearningSession.topic": %w`, err)}
		}
	}
	return nil
}

func (_u *LearningSessionUpdateOne) sqlSave(ctx context.Context) (_node *LearningSession, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(learningsession.Table, learningsession.Columns, sqlgraph.NewFieldSpec(learningsession.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "LearningSession.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, learningsession.FieldID)
		for _, f := range fields {
			if !learningsession.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != learningsession.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.UserID(); ok {
		_spec.SetField(learningsession.FieldUserID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Topic(); ok {
		_spec.SetField(learningsession.FieldTopic, field.TypeString, value)
	}
	if value, ok := _u.mutation.Personality(); ok {
		_spec.SetField(learningsession.FieldPersonality, field.TypeString, value)
	}
	if value, ok := _u.mutation.ModulesData(); ok {
		_spec.SetField(learningsession.FieldModulesData, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedModulesData(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, learningsession.FieldModulesData, value)
		})
	}
	if _u.mutation.ModulesDataCleared() {
		_spec.ClearField(learningsession.FieldModulesData, field.TypeJSON)
	}
	if value, ok := _u.mutation.GenerationHistory(); ok {
		_spec.SetField(learningsession.FieldGenerationHistory, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedGenerationHistory(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, learningsession.FieldGenerationHistory, value)
		})
	}
	if _u.mutation.GenerationHistoryCleared() {
		_spec.ClearField(learningsession.FieldGenerationHistory, field.TypeJSON)
	}
	if value, ok := _u.mutation.UpdatedAt(); ok {
		_spec.SetField(learningsession.FieldUpdatedAt, field.TypeTime, value)
	}
	_node = &LearningSession{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{learningsession.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
