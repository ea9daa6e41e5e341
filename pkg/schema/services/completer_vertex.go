package services

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"github.com/asv-bible-study-api/pkg/schema/config"
	"google.golang.org/api/option"
)

// VertexCompleter implements Completer using Gemini on Vertex AI
type VertexCompleter struct {
	cfg    *config.Config
	client *genai.Client
}

// NewVertexCompleter creates a new Vertex AI Gemini completer
func NewVertexCompleter(ctx context.Context, cfg *config.Config) (*VertexCompleter, error) {
	if cfg.GCPProjectID == "" {
		return nil, fmt.Errorf("GCP_PROJECT_ID is required for Vertex AI completions")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := genai.NewClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	return &VertexCompleter{
		cfg:    cfg,
		client: client,
	}, nil
}

// Close closes the Vertex AI client
func (c *VertexCompleter) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Complete generates a reply to prompt
func (c *VertexCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.cfg.GeminiModel)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("vertex AI generation failed: %w", err)
	}

	text := extractText(resp)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}
