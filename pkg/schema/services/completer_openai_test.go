package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asv-bible-study-api/pkg/schema/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAICompleter_Complete(t *testing.T) {
	var got chatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"The genealogy opens the gospel."}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAICompleter(&config.Config{
		OpenAIBaseURL: srv.URL + "/",
		OpenAIAPIKey:  "test-key",
		OpenAIModel:   "gpt-4",
	})

	text, err := c.Complete(t.Context(), "Explain Matthew 1:1")
	require.NoError(t, err)
	assert.Equal(t, "The genealogy opens the gospel.", text)
	assert.Equal(t, "gpt-4", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "Explain Matthew 1:1", got.Messages[0].Content)
}

func TestOpenAICompleter_Errors(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		},
		"no choices": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		},
		"bad json": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":`))
		},
	}

	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			c := NewOpenAICompleter(&config.Config{OpenAIBaseURL: srv.URL, OpenAIModel: "gpt-4"})
			_, err := c.Complete(t.Context(), "prompt")
			require.Error(t, err)
		})
	}
}

func TestCompletionService_Close(t *testing.T) {
	s := NewCompletionService(NewOpenAICompleter(&config.Config{}))
	assert.NoError(t, s.Close())
}
