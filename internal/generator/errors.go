package generator

import (
	"encoding/json"
	"fmt"
	"time"
)

// User-facing messages.
const (
	MsgRateLimited       = "API rate limit exceeded. Please wait and try again."
	MsgPaletteFailed     = "Failed to generate palette from AI. The model may be unavailable or the request was blocked."
	MsgVariationsFailed  = "Failed to generate palette variations from AI."
	reasonInvalidData    = "invalid data format"
	reasonExpectedFive   = "expected 5 colors"
	reasonInvalidColor   = "invalid color object"
	reasonInvalidFormat  = "invalid format"
	reasonExpectedFour   = "expected 4 variations"
	reasonInvalidVarHex  = "invalid hex in variation"
	reasonVariationColor = "variation %d invalid color format"
)

// ValidationError means the model answered but the answer broke the contract.
// Entry holds the offending raw JSON value when a single entry is at fault.
type ValidationError struct {
	Reason string
	Entry  json.RawMessage
}

func (e *ValidationError) Error() string {
	if len(e.Entry) > 0 {
		return fmt.Sprintf("validation: %s: %s", e.Reason, e.Entry)
	}
	return "validation: " + e.Reason
}

// RateLimitError means the service quota is exhausted. RetryAfter is the
// server's suggestion and may be zero.
type RateLimitError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string { return MsgRateLimited }

func (e *RateLimitError) Unwrap() error { return e.Err }

// GenerationFailure covers every other transport or validation failure. Error
// returns the user-facing message; the cause is available through Unwrap.
type GenerationFailure struct {
	Message string
	Err     error
}

func (e *GenerationFailure) Error() string { return e.Message }

func (e *GenerationFailure) Unwrap() error { return e.Err }
