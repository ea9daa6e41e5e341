package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/asv-bible-study-api/pkg/schema/config"
)

// CompletionService answers prompts using a pluggable backend
type CompletionService struct {
	completer Completer
}

var (
	completionService *CompletionService
	completionOnce    sync.Once
	initErr           error
)

// NewCompletionService wraps a completer
func NewCompletionService(c Completer) *CompletionService {
	return &CompletionService{completer: c}
}

// GetCompletionService returns the singleton completion service
func GetCompletionService() *CompletionService {
	completionOnce.Do(func() {
		cfg := config.GetConfig()
		ctx := context.Background()

		var completer Completer
		switch cfg.CompletionProvider {
		case "vertex":
			var err error
			completer, err = NewVertexCompleter(ctx, cfg)
			if err != nil {
				initErr = fmt.Errorf("failed to create Vertex AI completer: %w", err)
				return
			}
		default:
			completer = NewOpenAICompleter(cfg)
		}

		completionService = NewCompletionService(completer)
	})
	return completionService
}

// GetInitError returns any error that occurred during initialization
func GetInitError() error {
	return initErr
}

// Complete answers prompt
func (s *CompletionService) Complete(ctx context.Context, prompt string) (string, error) {
	return s.completer.Complete(ctx, prompt)
}

// Close releases the backend when it holds resources
func (s *CompletionService) Close() error {
	if c, ok := s.completer.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
