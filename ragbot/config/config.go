package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr         string
	OllamaURL        string
	EmbedModel       string
	QdrantURL        string
	QdrantAPIKey     string
	QdrantCollection string
	TelegramToken    string
	TopK             int
	RetrievalTimeout time.Duration
	SessionTTL       time.Duration // 0 disables the idle-session reaper
	PromptFile       string
}

func LoadConfig() Config {
	_ = godotenv.Load() // no .env file means system environment only

	return Config{
		HTTPAddr:         getEnv("HTTP_ADDR", ":8000"),
		OllamaURL:        getEnv("OLLAMA_URL", "http://localhost:11434"),
		EmbedModel:       getEnv("EMBED_MODEL", "nomic-embed-text"),
		QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6334"),
		QdrantAPIKey:     getEnv("QDRANT_API_KEY", ""),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "my_collection"),
		TelegramToken:    getEnv("TELEGRAM_TOKEN", ""),
		TopK:             getEnvInt("TOP_K", 3),
		RetrievalTimeout: getEnvDuration("RETRIEVAL_TIMEOUT", 30*time.Second),
		SessionTTL:       getEnvDuration("SESSION_TTL", 0),
		PromptFile:       getEnv("PROMPT_FILE", ""),
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
