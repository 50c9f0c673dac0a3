package moodtrack

import (
	"errors"
	"fmt"
)

var (
	// ErrTokenization is the sentinel wrapped by every TokenizationError.
	ErrTokenization = errors.New("tokenization failed")

	// ErrInvalidSessionState is returned when a stored session context
	// violates its invariants (negative streak, unknown mood label).
	ErrInvalidSessionState = errors.New("invalid session state")

	// ErrSessionNotFound is returned by repositories for unknown session IDs.
	ErrSessionNotFound = errors.New("session not found")

	// ErrEmptyMessage is returned by Assistant.HandleMessage for blank input.
	ErrEmptyMessage = errors.New("empty message")

	// ErrProfileIncomplete is returned when the assistant requires a profile
	// and the session has none.
	ErrProfileIncomplete = errors.New("profile incomplete: department and age group are required")

	// ErrInvalidProfile is returned by Profile.Validate.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrIntercepted is returned when a middleware stops a message without a reply.
	ErrIntercepted = errors.New("message intercepted by middleware")
)

// TokenizationError reports a failure of the external tokenizer or emotion model.
// Callers decide the fallback; the core never downgrades it to a mood.
type TokenizationError struct {
	Stage string // "tokenize" or "emotion"
	Err   error
}

func (e *TokenizationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrTokenization, e.Stage, e.Err)
}

func (e *TokenizationError) Unwrap() []error {
	return []error{ErrTokenization, e.Err}
}
