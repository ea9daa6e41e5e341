package services

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when a backend answers without text
var ErrEmptyCompletion = errors.New("empty completion")

// Completer defines the interface for single-prompt text completion
type Completer interface {
	// Complete sends one user prompt and returns the model's reply
	Complete(ctx context.Context, prompt string) (string, error)
}
