package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/asv-bible-study-api/internal/models"
	pkgservices "github.com/asv-bible-study-api/pkg/schema/services"
)

// FallbackText is the explanation shown when the remote call fails
const FallbackText = "AI explanation unavailable."

// DefaultExplainTimeout bounds a single explanation call
const DefaultExplainTimeout = 20 * time.Second

var fallbackDetails = models.FallbackDetails{
	Greek:       "Word study is unavailable right now.",
	Context:     "Read the surrounding verses of the chapter for context.",
	CrossRef:    "Compare parallel passages in the other gospels.",
	Commentary:  "Commentary could not be retrieved.",
	Application: "Consider what this verse asks of the reader today.",
}

// ExplanationClient obtains explanatory prose for a prompt
type ExplanationClient interface {
	Explain(ctx context.Context, prompt string) (string, error)
}

// ExplanationService asks an ExplanationClient about a verse and falls
// back to canned content on any failure.
type ExplanationService struct {
	store   *VerseStore
	client  ExplanationClient
	timeout time.Duration
	log     *slog.Logger
}

// NewExplanationService creates an explanation service. A non-positive
// timeout uses DefaultExplainTimeout.
func NewExplanationService(store *VerseStore, client ExplanationClient, timeout time.Duration, log *slog.Logger) *ExplanationService {
	if timeout <= 0 {
		timeout = DefaultExplainTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &ExplanationService{
		store:   store,
		client:  client,
		timeout: timeout,
		log:     log,
	}
}

// ExplainPrompt builds the prompt sent for a verse
func ExplainPrompt(reference, text string) string {
	return fmt.Sprintf("Explain %s (\"%s\") in 3–4 sentences.", reference, text)
}

// Explain returns an explanation of the verse. It never fails: unknown
// verses, transport errors and empty replies all yield the fallback.
func (s *ExplanationService) Explain(ctx context.Context, book string, chapter, verse int) models.Explanation {
	ref := models.FormatReference(book, chapter, verse)
	key := models.NewVerseKey(book, chapter, verse)

	text, ok := s.store.Lookup(book, chapter, verse)
	if !ok {
		s.log.Warn("explanation requested for unknown verse", "reference", ref)
		return Fallback(key, ref, "")
	}

	if s.client == nil {
		return Fallback(key, ref, text)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.client.Explain(ctx, ExplainPrompt(ref, text))
	if err == nil && strings.TrimSpace(reply) == "" {
		err = pkgservices.ErrEmptyCompletion
	}
	if err != nil {
		s.log.Error("explanation request failed", "reference", ref, "error", err)
		return Fallback(key, ref, text)
	}

	return models.Explanation{
		Kind:      models.ExplanationRemote,
		Key:       key,
		Reference: ref,
		VerseText: text,
		Text:      reply,
	}
}

// Fallback builds the canned explanation for a verse
func Fallback(key models.VerseKey, reference, verseText string) models.Explanation {
	details := fallbackDetails
	return models.Explanation{
		Kind:      models.ExplanationFallback,
		Key:       key,
		Reference: reference,
		VerseText: verseText,
		Text:      FallbackText,
		Fallback:  &details,
	}
}

// ProxyClient posts prompts to a remote explanation endpoint
type ProxyClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewProxyClient creates a client for endpoint
func NewProxyClient(endpoint string) *ProxyClient {
	return &ProxyClient{
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
}

// Explain implements ExplanationClient
func (c *ProxyClient) Explain(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(models.CompletionRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call explanation endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("explanation endpoint error (%d): %s", resp.StatusCode, string(msg))
	}

	var out models.CompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if strings.TrimSpace(out.Explanation) == "" {
		return "", errors.New("explanation endpoint returned no explanation")
	}
	return out.Explanation, nil
}

// CompleterClient answers prompts in-process with a completion backend
type CompleterClient struct {
	completer pkgservices.Completer
}

// NewCompleterClient wraps completer
func NewCompleterClient(completer pkgservices.Completer) *CompleterClient {
	return &CompleterClient{completer: completer}
}

// Explain implements ExplanationClient
func (c *CompleterClient) Explain(ctx context.Context, prompt string) (string, error) {
	return c.completer.Complete(ctx, prompt)
}

var (
	_ ExplanationClient     = (*ProxyClient)(nil)
	_ ExplanationClient     = (*CompleterClient)(nil)
	_ pkgservices.Completer = (*pkgservices.CompletionService)(nil)
)
