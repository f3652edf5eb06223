package genai

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrMissingAPIKey = errors.New("genai: API key not set (export GEMINI_API_KEY)")
	ErrEmptyResponse = errors.New("genai: response contained no text")
)

// StatusError is a non-2xx reply from the generative service.
type StatusError struct {
	Code       int
	Status     string
	Message    string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Code)
	}
	if e.Status != "" {
		return fmt.Sprintf("genai: %d %s: %s", e.Code, e.Status, msg)
	}
	return fmt.Sprintf("genai: %d: %s", e.Code, msg)
}

// BlockedError means the service refused to answer the prompt.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return "genai: request blocked: " + e.Reason
}

// IsRateLimited reports whether err carries a quota-exceeded status.
func IsRateLimited(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == http.StatusTooManyRequests || se.Status == "RESOURCE_EXHAUSTED"
}

// RetryAfter returns the server-suggested wait for a rate-limited err, or 0.
func RetryAfter(err error) time.Duration {
	var se *StatusError
	if errors.As(err, &se) {
		return se.RetryAfter
	}
	return 0
}
