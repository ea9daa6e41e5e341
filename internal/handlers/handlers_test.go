package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/asv-bible-study-api/internal/models"
	"github.com/asv-bible-study-api/internal/repository/memory"
	"github.com/asv-bible-study-api/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

var testVerses = []models.Verse{
	{Book: "Matthew", Chapter: 1, Verse: 1, Text: "The book of the generation of Jesus Christ, the son of David, the son of Abraham."},
	{Book: "Matthew", Chapter: 1, Verse: 2, Text: "Abraham begat Isaac; and Isaac begat Jacob; and Jacob begat Judah and his brethren;"},
	{Book: "John", Chapter: 1, Verse: 1, Text: "In the beginning was the Word, and the Word was with God, and the Word was God."},
	{Book: "John", Chapter: 3, Verse: 16, Text: "For God so loved the world, that he gave his only begotten Son, that whosoever believeth on him should not perish, but have eternal life."},
}

type stubCompleter struct {
	reply string
	err   error
}

func (c stubCompleter) Complete(context.Context, string) (string, error) {
	return c.reply, c.err
}

type testServer struct {
	e           *echo.Echo
	annotations *services.AnnotationService
	kv          *memory.KeyValueRepository
}

type serverOptions struct {
	completer stubCompleter
	speech    bool
}

func newTestServer(t *testing.T, opts serverOptions) *testServer {
	t.Helper()

	store := services.NewVerseStore(testVerses)
	kv := memory.NewKeyValueRepository()
	annotations := services.NewAnnotationService(kv, nil)
	search := services.NewSearchService(store, services.SearchCacheConfig{})
	t.Cleanup(search.Close)

	explainer := services.NewExplanationService(store, services.NewCompleterClient(opts.completer), time.Second, nil)
	session := services.NewStudySession(store, annotations, search, explainer)
	speech := services.StaticSpeech(opts.speech)

	e := echo.New()
	api := e.Group("/api/v1")
	NewHealthHandler(kv, "memory").RegisterRoutes(api)
	NewVoiceHandler(store, speech).RegisterRoutes(api)
	NewVerseHandler(store, annotations).RegisterRoutes(api)
	NewSearchHandler(search).RegisterRoutes(api)
	NewAnnotationHandler(store, annotations).RegisterRoutes(api)
	NewExplainHandler(explainer).RegisterRoutes(api)
	NewStudyHandler(session, speech).RegisterRoutes(api)
	NewProxyHandler(opts.completer).RegisterRoutes(e.Group("/api"))

	return &testServer{e: e, annotations: annotations, kv: kv}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

var errUpstream = errors.New("upstream unavailable")
