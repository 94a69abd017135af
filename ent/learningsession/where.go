// Code generated by ent, DO NOT EDIT.

package learningsession

import (
	"time"

	"entgo.io/ent/dialect/sql"
	"github.com/senseilabs/sensei/ent/predicate"
)

// ID filters vertices based on their ID field.
func ID(id int) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldEQ(FieldID, id))
}

// IDEQ applies the EQ predicate on the ID field.
func IDEQ(id int) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldEQ(FieldID, id))
}

// IDNEQ applies the NEQ predicate on the ID field.
func IDNEQ(id int) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldNEQ(FieldID, id))
}

// IDIn applies the In predicate on the ID field.
func IDIn(ids ...int) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldIn(FieldID, ids...))
}

// IDNotIn applies the NotIn predicate on the ID field.
func IDNotIn(ids ...int) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldNotIn(FieldID, ids...))
}

// IDGT applies the GT predicate on the ID field.
func IDGT(id int) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldGT(FieldID, id))
}

// IDGTE applies the GTE predicate on the ID field.
func IDGTE(id int) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldGTE(FieldID, id))
}

// IDLT applies the LT predicate on the ID field.
func IDLT(id int) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldLT(FieldID, id))
}

// IDLTE applies the LTE predicate on the ID field.
func IDLTE(id int) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldLTE(FieldID, id))
}

// Sid applies equality check predicate on the "sid" field. It's identical to SidEQ.
func Sid(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldEQ(FieldSid, v))
}

// UserID applies equality check predicate on the "user_id" field. It's identical to UserIDEQ.
func UserID(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldEQ(FieldUserID, v))
}

// Topic applies equality check predicate on the "topic" field. It's identical to TopicEQ.
func Topic(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldEQ(FieldTopic, v))
}

// Personality applies equality check predicate on the "personality" field. It's identical to PersonalityEQ.
func Personality(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldEQ(FieldPersonality, v))
}

// CreatedAt applies equality check predicate on the "created_at" field. It's identical to CreatedAtEQ.
func CreatedAt(v time.Time) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldEQ(FieldCreatedAt, v))
}

// UpdatedAt applies equality check predicate on the "updated_at" field. It's identical to UpdatedAtEQ.
func UpdatedAt(v time.Time) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldEQ(FieldUpdatedAt, v))
}

// SidEQ applies the EQ predicate on the "sid" field.
func SidEQ(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldEQ(FieldSid, v))
}

// SidNEQ applies the NEQ predicate on the "sid" field.
func SidNEQ(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldNEQ(FieldSid, v))
}

// SidIn applies the In predicate on the "sid" field.
func SidIn(vs ...string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldIn(FieldSid, vs...))
}

// SidNotIn applies the NotIn predicate on the "sid" field.
func SidNotIn(vs ...string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldNotIn(FieldSid, vs...))
}

// SidGT applies the GT predicate on the "sid" field.
func SidGT(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldGT(FieldSid, v))
}

// SidGTE applies the GTE predicate on the "sid" field.
func SidGTE(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldGTE(FieldSid, v))
}

// SidLT applies the LT predicate on the "sid" field.
func SidLT(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldLT(FieldSid, v))
}

// SidLTE applies the LTE predicate on the "sid" field.
func SidLTE(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldLTE(FieldSid, v))
}

// SidContains applies the Contains predicate on the "sid" field.
func SidContains(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldContains(FieldSid, v))
}

// SidHasPrefix applies the HasPrefix predicate on the "sid" field.
func SidHasPrefix(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldHasPrefix(FieldSid, v))
}

// SidHasSuffix applies the HasSuffix predicate on the "sid" field.
func SidHasSuffix(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldHasSuffix(FieldSid, v))
}

// SidEqualFold applies the EqualFold predicate on the "sid" field.
func SidEqualFold(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldEqualFold(FieldSid, v))
}

// SidContainsFold applies the ContainsFold predicate on the "sid" field.
func SidContainsFold(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldContainsFold(FieldSid, v))
}

// UserIDEQ applies the EQ predicate on the "user_id" field.
func UserIDEQ(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldEQ(FieldUserID, v))
}

// UserIDNEQ applies the NEQ predicate on the "user_id" field.
func UserIDNEQ(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldNEQ(FieldUserID, v))
}

// UserIDIn applies the In predicate on the "user_id" field.
func UserIDIn(vs ...string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldIn(FieldUserID, vs...))
}

// UserIDNotIn applies the NotIn predicate on the "user_id" field.
func UserIDNotIn(vs ...string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldNotIn(FieldUserID, vs...))
}

// UserIDGT applies the GT predicate on the "user_id" field.
func UserIDGT(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldGT(FieldUserID, v))
}

// UserIDGTE applies the GTE predicate on the "user_id" field.
func UserIDGTE(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldGTE(FieldUserID, v))
}

// UserIDLT applies the LT predicate on the "user_id" field.
func UserIDLT(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldLT(FieldUserID, v))
}

// UserIDLTE applies the LTE predicate on the "user_id" field.
func UserIDLTE(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldLTE(FieldUserID, v))
}

// UserIDContains applies the Contains predicate on the "user_id" field.
func UserIDContains(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldContains(FieldUserID, v))
}

// UserIDHasPrefix applies the HasPrefix predicate on the "user_id" field.
func UserIDHasPrefix(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldHasPrefix(FieldUserID, v))
}

// UserIDHasSuffix applies the HasSuffix predicate on the "user_id" field.
func UserIDHasSuffix(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldHasSuffix(FieldUserID, v))
}

// UserIDEqualFold applies the EqualFold predicate on the "user_id" field.
func UserIDEqualFold(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldEqualFold(FieldUserID, v))
}

// UserIDContainsFold applies the ContainsFold predicate on the "user_id" field.
func UserIDContainsFold(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldContainsFold(FieldUserID, v))
}

// TopicEQ applies the EQ predicate on the "topic" field.
func TopicEQ(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldEQ(FieldTopic, v))
}

// TopicNEQ applies the NEQ predicate on the "topic" field.
func TopicNEQ(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldNEQ(FieldTopic, v))
}

// TopicIn applies the In predicate on the "topic" field.
func TopicIn(vs ...string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldIn(FieldTopic, vs...))
}

// TopicNotIn applies the NotIn predicate on the "topic" field.
func TopicNotIn(vs ...string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldNotIn(FieldTopic, vs...))
}

// TopicGT applies the GT predicate on the "topic" field.
func TopicGT(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldGT(FieldTopic, v))
}

// TopicGTE applies the GTE predicate on the "topic" field.
func TopicGTE(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldGTE(FieldTopic, v))
}

// TopicLT applies the LT predicate on the "topic" field.
func TopicLT(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldLT(FieldTopic, v))
}

// TopicLTE applies the LTE predicate on the "topic" field.
func TopicLTE(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldLTE(FieldTopic, v))
}

// TopicContains applies the Contains predicate on the "topic" field.
func TopicContains(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldContains(FieldTopic, v))
}

// TopicHasPrefix applies the HasPrefix predicate on the "topic" field.
func TopicHasPrefix(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldHasPrefix(FieldTopic, v))
}

// TopicHasSuffix applies the HasSuffix predicate on the "topic" field.
func TopicHasSuffix(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldHasSuffix(FieldTopic, v))
}

// TopicEqualFold applies the EqualFold predicate on the "topic" field.
func TopicEqualFold(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldEqualFold(FieldTopic, v))
}

// TopicContainsFold applies the ContainsFold predicate on the "topic" field.
func TopicContainsFold(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldContainsFold(FieldTopic, v))
}

// PersonalityEQ applies the EQ predicate on the "personality" field.
func PersonalityEQ(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldEQ(FieldPersonality, v))
}

// PersonalityNEQ applies the NEQ predicate on the "personality" field.
func PersonalityNEQ(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldNEQ(FieldPersonality, v))
}

// PersonalityIn applies the In predicate on the "personality" field.
func PersonalityIn(vs ...string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldIn(FieldPersonality, vs...))
}

// PersonalityNotIn applies the NotIn predicate on the "personality" field.
func PersonalityNotIn(vs ...string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldNotIn(FieldPersonality, vs...))
}

// PersonalityGT applies the GT predicate on the "personality" field.
func PersonalityGT(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldGT(FieldPersonality, v))
}

// PersonalityGTE applies the GTE predicate on the "personality" field.
func PersonalityGTE(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldGTE(FieldPersonality, v))
}

// PersonalityLT applies the LT predicate on the "personality" field.
func PersonalityLT(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldLT(FieldPersonality, v))
}

// PersonalityLTE applies the LTE predicate on the "personality" field.
func PersonalityLTE(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldLTE(FieldPersonality, v))
}

// PersonalityContains applies the Contains predicate on the "personality" field.
func PersonalityContains(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldContains(FieldPersonality, v))
}

// PersonalityHasPrefix applies the HasPrefix predicate on the "personality" field.
func PersonalityHasPrefix(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldHasPrefix(FieldPersonality, v))
}

// PersonalityHasSuffix applies the HasSuffix predicate on the "personality" field.
func PersonalityHasSuffix(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldHasSuffix(FieldPersonality, v))
}

// PersonalityEqualFold applies the EqualFold predicate on the "personality" field.
func PersonalityEqualFold(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldEqualFold(FieldPersonality, v))
}

// PersonalityContainsFold applies the ContainsFold predicate on the "personality" field.
func PersonalityContainsFold(v string) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldContainsFold(FieldPersonality, v))
}

// ModulesDataIsNil applies the IsNil predicate on the "modules_data" field.
func ModulesDataIsNil() predicate.LearningSession {
	return predicate.LearningSession(sql.FieldIsNull(FieldModulesData))
}

// ModulesDataNotNil applies the NotNil predicate on the "modules_data" field.
func ModulesDataNotNil() predicate.LearningSession {
	return predicate.LearningSession(sql.FieldNotNull(FieldModulesData))
}

// GenerationHistoryIsNil applies the IsNil predicate on the "generation_history" field.
func GenerationHistoryIsNil() predicate.LearningSession {
	return predicate.LearningSession(sql.FieldIsNull(FieldGenerationHistory))
}

// GenerationHistoryNotNil applies the NotNil predicate on the "generation_history" field.
func GenerationHistoryNotNil() predicate.LearningSession {
	return predicate.LearningSession(sql.FieldNotNull(FieldGenerationHistory))
}

// CreatedAtEQ applies the EQ predicate on the "created_at" field.
func CreatedAtEQ(v time.Time) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldEQ(FieldCreatedAt, v))
}

// CreatedAtNEQ applies the NEQ predicate on the "created_at" field.
func CreatedAtNEQ(v time.Time) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldNEQ(FieldCreatedAt, v))
}

// CreatedAtIn applies the In predicate on the "created_at" field.
func CreatedAtIn(vs ...time.Time) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldIn(FieldCreatedAt, vs...))
}

// CreatedAtNotIn applies the NotIn predicate on the "created_at" field.
func CreatedAtNotIn(vs ...time.Time) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldNotIn(FieldCreatedAt, vs...))
}

// CreatedAtGT applies the GT predicate on the "created_at" field.
func CreatedAtGT(v time.Time) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldGT(FieldCreatedAt, v))
}

// CreatedAtGTE applies the GTE predicate on the "created_at" field.
func CreatedAtGTE(v time.Time) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldGTE(FieldCreatedAt, v))
}

// CreatedAtLT applies the LT predicate on the "created_at" field.
func CreatedAtLT(v time.Time) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldLT(FieldCreatedAt, v))
}

// CreatedAtLTE applies the LTE predicate on the "created_at" field.
func CreatedAtLTE(v time.Time) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldLTE(FieldCreatedAt, v))
}

// UpdatedAtEQ applies the EQ predicate on the "updated_at" field.
func UpdatedAtEQ(v time.Time) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldEQ(FieldUpdatedAt, v))
}

// UpdatedAtNEQ applies the NEQ predicate on the "updated_at" field.
func UpdatedAtNEQ(v time.Time) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldNEQ(FieldUpdatedAt, v))
}

// UpdatedAtIn applies the In predicate on the "updated_at" field.
func UpdatedAtIn(vs ...time.Time) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldIn(FieldUpdatedAt, vs...))
}

// UpdatedAtNotIn applies the NotIn predicate on the "updated_at" field.
func UpdatedAtNotIn(vs ...time.Time) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldNotIn(FieldUpdatedAt, vs...))
}

// UpdatedAtGT applies the GT predicate on the "updated_at" field.
func UpdatedAtGT(v time.Time) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldGT(FieldUpdatedAt, v))
}

// UpdatedAtGTE applies the GTE predicate on the "updated_at" field.
func UpdatedAtGTE(v time.Time) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldGTE(FieldUpdatedAt, v))
}

// UpdatedAtLT applies the LT predicate on the "updated_at" field.
func UpdatedAtLT(v time.Time) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldLT(FieldUpdatedAt, v))
}

// UpdatedAtLTE applies the LTE predicate on the "updated_at" field.
func UpdatedAtLTE(v time.Time) predicate.LearningSession {
	return predicate.LearningSession(sql.FieldLTE(FieldUpdatedAt, v))
}

// And groups predicates with the AND operator between them.
func And(predicates ...predicate.LearningSession) predicate.LearningSession {
	return predicate.LearningSession(sql.AndPredicates(predicates...))
}

// Or groups predicates with the OR operator between them.
func Or(predicates ...predicate.LearningSession) predicate.LearningSession {
	return predicate.LearningSession(sql.OrPredicates(predicates...))
}

// Not applies the not operator on the given predicate.
func Not(p predicate.LearningSession) predicate.LearningSession {
	return predicate.LearningSession(sql.NotPredicates(p))
}
