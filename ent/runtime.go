// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/senseilabs/sensei/ent/learningsession"
	"github.com/senseilabs/sensei/ent/llmrequestevent"
	"github.com/senseilabs/sensei/ent/schema"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	llmrequesteventFields := schema.LLMRequestEvent{}.Fields()
	_ = llmrequesteventFields
	// llmrequesteventDescTimestamp is the schema descriptor for timestamp field.
	llmrequesteventDescTimestamp := llmrequesteventFields[0].Descriptor()
	// llmrequestevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	llmrequestevent.DefaultTimestamp = llmrequesteventDescTimestamp.Default.(func() time.Time)
	// llmrequesteventDescInputTokens is the schema descriptor for input_tokens field.
	llmrequesteventDescInputTokens := llmrequesteventFields[4].Descriptor()
	// llmrequestevent.DefaultInputTokens holds the default value on creation for the input_tokens field.
	llmrequestevent.DefaultInputTokens = llmrequesteventDescInputTokens.Default.(int)
	// llmrequesteventDescOutputTokens is the schema descriptor for output_tokens field.
	llmrequesteventDescOutputTokens := llmrequesteventFields[5].Descriptor()
	// llmrequestevent.DefaultOutputTokens holds the default value on creation for the output_tokens field.
	llmrequestevent.DefaultOutputTokens = llmrequesteventDescOutputTokens.Default.(int)
	// llmrequesteventDescLatencyMs is the schema descriptor for latency_ms field.
	llmrequesteventDescLatencyMs := llmrequesteventFields[6].Descriptor()
	// llmrequestevent.DefaultLatencyMs holds the default value on creation for the latency_ms field.
	llmrequestevent.DefaultLatencyMs = llmrequesteventDescLatencyMs.Default.(int64)
	// llmrequesteventDescErrorMessage is the schema descriptor for error_message field.
	llmrequesteventDescErrorMessage := llmrequesteventFields[8].Descriptor()
	// llmrequestevent.DefaultErrorMessage holds the default value on creation for the error_message field.
	llmrequestevent.DefaultErrorMessage = llmrequesteventDescErrorMessage.Default.(string)
	// llmrequesteventDescRequestBody is the schema descriptor for request_body field.
	llmrequesteventDescRequestBody := llmrequesteventFields[9].Descriptor()
	// llmrequestevent.DefaultRequestBody holds the default value on creation for the request_body field.
	llmrequestevent.DefaultRequestBody = llmrequesteventDescRequestBody.Default.(string)
	// llmrequesteventDescResponseBody is the schema descriptor for response_body field.
	llmrequesteventDescResponseBody := llmrequesteventFields[10].Descriptor()
	// llmrequestevent.DefaultResponseBody holds the default value on creation for the response_body field.
	llmrequestevent.DefaultResponseBody = llmrequesteventDescResponseBody.Default.(string)
	learningsessionFields := schema.LearningSession{}.Fields()
	_ = learningsessionFields
	// learningsessionDescSid is the schema descriptor for sid field.
	learningsessionDescSid := learningsessionFields[0].Descriptor()
	// learningsession.SidValidator is a validator for the "sid" field. It is called by the builders before save.
	learningsession.SidValidator = learningsessionDescSid.Validators[0].(func(string) error)
	// learningsessionDescUserID is the schema descriptor for user_id field.
	learningsessionDescUserID := learningsessionFields[1].Descriptor()
	// learningsession.UserIDValidator is a validator for the "user_id" field. It is called by the builders before save.
	learningsession.UserIDValidator = learningsessionDescUserID.Validators[0].(func(string) error)
	// learningsessionDescTopic is the schema descriptor for topic field.
	learningsessionDescTopic := learningsessionFields[2].Descriptor()
	// learningsession.TopicValidator is a validator for the "topic" field. It is called by the builders before save.
	learningsession.TopicValidator = learningsessionDescTopic.Validators[0].(func(string) error)
	// learningsessionDescPersonality is the schema descriptor for personality field.
	learningsessionDescPersonality := learningsessionFields[3].Descriptor()
	// learningsession.DefaultPersonality holds the default value on creation for the personality field.
	learningsession.DefaultPersonality = learningsessionDescPersonality.Default.(string)
	// learningsessionDescCreatedAt is the schema descriptor for created_at field.
	learningsessionDescCreatedAt := learningsessionFields[6].Descriptor()
	// learningsession.DefaultCreatedAt holds the default value on creation for the created_at field.
	learningsession.DefaultCreatedAt = learningsessionDescCreatedAt.Default.(func() time.Time)
	// learningsessionDescUpdatedAt is the schema descriptor for updated_at field.
	learningsessionDescUpdatedAt := learningsessionFields[7].Descriptor()
	// learningsession.DefaultUpdatedAt holds the default value on creation for the updated_at field.
	learningsession.DefaultUpdatedAt = learningsessionDescUpdatedAt.Default.(func() time.Time)
	// learningsession.UpdateDefaultUpdatedAt holds the default value on update for the updated_at field.
	learningsession.UpdateDefaultUpdatedAt = learningsessionDescUpdatedAt.UpdateDefault.(func() time.Time)
}
