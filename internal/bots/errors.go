package bots

import (
	"errors"
	"fmt"
)

var (
	// ErrBlueprintNotFound means the bot id is unknown to the store.
	ErrBlueprintNotFound = errors.New("bots: blueprint not found")

	// ErrAIUnavailable wraps failures of the persona-generation model.
	ErrAIUnavailable = errors.New("bots: ai service unavailable")
)

// ValidationError rejects malformed interview or snippet input.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("bots: %s", e.Detail)
}
