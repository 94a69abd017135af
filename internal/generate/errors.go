package generate

import "fmt"

// ParseError indicates the model's response did not contain a
// recoverable JSON array. Raw carries the offending text for the event
// log; it is never kept in application state.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("no valid JSON array in model response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// GenerationError indicates the remote text-generation call itself
// failed (network, rate limit, provider outage).
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("content generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
