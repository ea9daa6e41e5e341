package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/asv-bible-study-api/internal/config"
	"github.com/asv-bible-study-api/internal/corpus"
	"github.com/asv-bible-study-api/internal/handlers"
	"github.com/asv-bible-study-api/internal/middleware"
	"github.com/asv-bible-study-api/internal/models"
	"github.com/asv-bible-study-api/internal/repository/postgres"
	"github.com/asv-bible-study-api/internal/services"
	"github.com/asv-bible-study-api/internal/storage"
	schemaconfig "github.com/asv-bible-study-api/pkg/schema/config"
	"github.com/asv-bible-study-api/pkg/schema/db"
	pkgservices "github.com/asv-bible-study-api/pkg/schema/services"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	// Get configuration
	cfg := config.GetConfig()
	storeCfg := schemaconfig.GetConfig()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSMiddleware())

	ctx := context.Background()

	// Load the verse corpus
	verses, err := loadVerses(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to load verse corpus: %v", err)
	}
	store := services.NewVerseStore(verses)
	log.Printf("Loaded %d verses in %d books from %s corpus", store.Len(), len(store.Books()), cfg.VerseSource)

	// Open durable storage
	kv, closeStorage, err := storage.Open(ctx, storeCfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", storeCfg.StorageBackend, err)
	}
	log.Printf("Using %s storage backend", storeCfg.StorageBackend)

	annotations := services.NewAnnotationService(kv, logger)
	annotations.Load(ctx)

	// Create services
	search := services.NewSearchService(store, services.SearchCacheConfig{
		MaxKeys: cfg.SearchCacheKeys,
		MaxCost: cfg.SearchCacheCost,
	})

	completions := pkgservices.GetCompletionService()
	if err := pkgservices.GetInitError(); err != nil {
		log.Fatalf("Failed to initialize completion service: %v", err)
	}

	var client services.ExplanationClient
	switch cfg.ExplainMode {
	case "proxy":
		log.Printf("Explanations proxied to %s", cfg.ExplainEndpoint)
		client = services.NewProxyClient(cfg.ExplainEndpoint)
	default:
		log.Printf("Explanations served by %s completions", storeCfg.CompletionProvider)
		client = services.NewCompleterClient(completions)
	}
	explainer := services.NewExplanationService(store, client, cfg.ExplainTimeout, logger)

	speech := services.StaticSpeech(cfg.VoiceEnabled)
	session := services.NewStudySession(store, annotations, search, explainer)

	// Create API group with prefix
	api := e.Group(cfg.APIPrefix)

	// Register handlers
	handlers.NewHealthHandler(kv, storeCfg.StorageBackend).RegisterRoutes(api)
	handlers.NewVoiceHandler(store, speech).RegisterRoutes(api)
	handlers.NewVerseHandler(store, annotations).RegisterRoutes(api)
	handlers.NewSearchHandler(search).RegisterRoutes(api)
	handlers.NewAnnotationHandler(store, annotations).RegisterRoutes(api)
	handlers.NewExplainHandler(explainer).RegisterRoutes(api)
	handlers.NewStudyHandler(session, speech).RegisterRoutes(api)

	// Explanation proxy keeps its historical path outside the prefix
	handlers.NewProxyHandler(completions).RegisterRoutes(e.Group("/api"))

	// Root health check
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"name":    cfg.APITitle,
			"version": cfg.APIVersion,
			"status":  "running",
		})
	})

	// Start server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Starting %s v%s on %s", cfg.APITitle, cfg.APIVersion, addr)
		if err := e.Start(addr); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	if err := annotations.Persist(shutdownCtx); err != nil {
		log.Printf("Error persisting annotations: %v", err)
	}

	search.Close()

	if err := closeStorage(); err != nil {
		log.Printf("Error closing storage: %v", err)
	}

	if err := db.ClosePostgres(); err != nil {
		log.Printf("Error closing PostgreSQL: %v", err)
	}

	if err := completions.Close(); err != nil {
		log.Printf("Error closing completion client: %v", err)
	}

	log.Println("Server stopped")
}

// loadVerses reads the corpus from the configured source
func loadVerses(ctx context.Context, cfg *config.Config) ([]models.Verse, error) {
	switch cfg.VerseSource {
	case "file":
		if cfg.VerseDataPath == "" {
			return nil, fmt.Errorf("VERSE_DATA_PATH is required when VERSE_SOURCE=file")
		}
		return corpus.LoadFile(cfg.VerseDataPath)
	case "postgres":
		if err := db.InitPostgres(ctx); err != nil {
			return nil, err
		}
		return postgres.NewVerseRepository(db.GetPostgres()).ListVerses(ctx)
	default:
		return corpus.Embedded()
	}
}
