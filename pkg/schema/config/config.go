package config

import (
	"os"
	"strconv"
	"sync"
)

// Config holds configuration for storage and completion operations
type Config struct {
	// Durable storage backend: "memory", "sqlite", "postgres" or "redis"
	StorageBackend string

	// SQLite
	SQLitePath string

	// PostgreSQL
	PostgresURI string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	// Completions: "openai" or "vertex"
	CompletionProvider string

	// OpenAI-compatible chat completions
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Vertex AI Gemini (when CompletionProvider = "vertex")
	GCPProjectID    string
	GCPLocation     string
	GeminiModel     string
	CredentialsFile string
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
		StorageBackend: getEnv("STORAGE_BACKEND", "sqlite"),

		// SQLite
		SQLitePath: getEnv("SQLITE_PATH", "data/bible_study.db"),

		// PostgreSQL
		PostgresURI: getEnv("POSTGRES_URI", ""),

		// Redis
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPrefix:   getEnv("REDIS_PREFIX", "bible:"),

		// Completions
		CompletionProvider: getEnv("COMPLETION_PROVIDER", "openai"),

		// OpenAI
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4"),

		// Vertex AI
		GCPProjectID:    getEnv("GCP_PROJECT_ID", ""),
		GCPLocation:     getEnv("GCP_LOCATION", "us-central1"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
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
		i, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return i
	}
	return defaultValue
}
