package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config holds all application configuration
type Config struct {
	// API Settings
	APITitle        string
	APIVersion      string
	APIPrefix       string
	Port            string
	ShutdownTimeout time.Duration

	// CORS
	CORSOrigins []string

	// Verse corpus: "embedded", "file" or "postgres"
	VerseSource   string
	VerseDataPath string

	// Search result cache
	SearchCacheKeys int64
	SearchCacheCost int64

	// Voice commands are only served when enabled
	VoiceEnabled bool

	// Explanations: "direct" calls the completion backend in-process,
	// "proxy" posts to ExplainEndpoint
	ExplainMode     string
	ExplainEndpoint string
	ExplainTimeout  time.Duration
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the singleton configuration instance
func GetConfig() *Config {
	once.Do(func() {
		config = loadConfig()
	})
	return config
}

func loadConfig() *Config {
	return &Config{
		APITitle:        getEnv("API_TITLE", "ASV Bible Study API"),
		APIVersion:      getEnv("API_VERSION", "1.0.0"),
		APIPrefix:       getEnv("API_PREFIX", "/api/v1"),
		Port:            getEnv("PORT", "8081"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		CORSOrigins:     parseCORSOrigins(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")),

		VerseSource:   getEnv("VERSE_SOURCE", "embedded"),
		VerseDataPath: getEnv("VERSE_DATA_PATH", ""),

		SearchCacheKeys: int64(getEnvInt("SEARCH_CACHE_KEYS", 1000)),
		SearchCacheCost: int64(getEnvInt("SEARCH_CACHE_COST", 100000)),

		VoiceEnabled: getEnvBool("VOICE_ENABLED", true),

		ExplainMode:     getEnv("EXPLAIN_MODE", "direct"),
		ExplainEndpoint: getEnv("EXPLAIN_ENDPOINT", "http://localhost:8081/api/ai-explain"),
		ExplainTimeout:  getEnvDuration("EXPLAIN_TIMEOUT", 20*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func parseCORSOrigins(value string) []string {
	var origins []string
	if err := json.Unmarshal([]byte(value), &origins); err == nil {
		return origins
	}
	parts := strings.Split(value, ",")
	origins = make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
