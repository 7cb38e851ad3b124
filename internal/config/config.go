package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Catalog   CatalogConfig
	Keys      APIKeys
	Matching  MatchingConfig
	Embedding EmbeddingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	HistorySize        int
	WarmupTopic        string
}

type CatalogConfig struct {
	Dir string `validate:"required"`
}

type APIKeys struct {
	GoogleGemini string
	Jina         string
}

// MatchingConfig is the tuning surface the matching core requires from its
// caller. SimilarityThreshold is deliberately required with no default: it
// is a calibration parameter of the embedding model in use, and a value
// borrowed from another model silently yields zero matches.
type MatchingConfig struct {
	SimilarityThreshold  float64 `validate:"required,gt=0,lt=1"`
	SopOverrideThreshold float64 `validate:"required,gt=0,lt=1"`
	LowConfidenceTopN    int
	MaxResults           int
	StopWords            []string
}

type EmbeddingConfig struct {
	Providers     []string      `validate:"required,min=1"` // ranked, primary first
	Timeout       time.Duration `validate:"required"`
	OllamaBaseURL string
	OllamaModel   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			HistorySize:        getEnvAsInt("DECISION_HISTORY_SIZE", 100),
			WarmupTopic:        getEnv("EMBED_PRINCIPLE_TOPIC_NAME", "EMBED_PRINCIPLE"),
		},
		Catalog: CatalogConfig{
			Dir: getEnv("CATALOG_DIR", "./data"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Jina:         getEnv("JINA_API_KEY", ""),
		},
		Matching: MatchingConfig{
			SimilarityThreshold:  getEnvAsFloat("SIMILARITY_THRESHOLD", 0),
			SopOverrideThreshold: getEnvAsFloat("SOP_OVERRIDE_THRESHOLD", 0),
			LowConfidenceTopN:    getEnvAsInt("LOW_CONFIDENCE_TOP_N", 3),
			MaxResults:           getEnvAsInt("MAX_MATCH_RESULTS", 3),
			StopWords:            getEnvAsList("STOP_WORDS", nil),
		},
		Embedding: EmbeddingConfig{
			Providers:     getEnvAsList("EMBEDDING_PROVIDERS", []string{"gemini"}),
			Timeout:       getEnvAsDuration("EMBEDDING_TIMEOUT", 10*time.Second),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:   getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
		},
	}
}

// Validate checks the loaded configuration once at startup. The matching
// core never reads environment state itself.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c.Catalog); err != nil {
		return err
	}
	if err := v.Struct(c.Matching); err != nil {
		return err
	}
	return v.Struct(c.Embedding)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	parts := strings.Split(strValue, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
