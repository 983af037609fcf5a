package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	ProcessingPath string
	SummaryPath    string
	SearchTerms    []string

	Provider          string
	OllamaBaseURL     string
	OllamaModel       string
	PerplexityBaseURL string
	PerplexityModel   string
	PerplexityAPIKey  string
	GeminiAPIKey      string
	GeminiModel       string
	GeminiBaseURL     string
	LLMTimeoutSeconds int

	FilterEnabled    bool
	FilterWindowSize int
	FilterMergeGap   int

	TessdataPrefix   string
	UnidocLicenseKey string
	LogLevel         slog.Level
}

// Load reads configuration from environment variables with sensible defaults.
// A local .env file is loaded first, best-effort, for dev convenience.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		ProcessingPath: os.Getenv("PROCESSING_PATH"),
		SummaryPath:    getEnv("SUMMARY_PATH", "data/summaries"),
		SearchTerms:    splitAndTrim(os.Getenv("SEARCH_TERMS")),

		Provider:          strings.ToLower(getEnv("AI_PROVIDER", "perplexity")),
		OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:       getEnv("OLLAMA_MODEL_NAME", "llama3.1:8b"),
		PerplexityBaseURL: getEnv("PERPLEXITY_BASE_URL", "https://api.perplexity.ai"),
		PerplexityModel:   getEnv("PERPLEXITY_MODEL", "sonar-pro"),
		PerplexityAPIKey:  os.Getenv("PERPLEXITY_API_KEY"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL:     os.Getenv("GEMINI_BASE_URL"),
		LLMTimeoutSeconds: getEnvInt("LLM_TIMEOUT_SECONDS", 300),

		FilterEnabled:    getEnvBool("FILTER_ENABLED", true),
		FilterWindowSize: getEnvInt("FILTER_WINDOW_SIZE", 1000),
		FilterMergeGap:   getEnvInt("FILTER_MERGE_GAP", 100),

		TessdataPrefix:   os.Getenv("TESSDATA_PREFIX"),
		UnidocLicenseKey: os.Getenv("UNIDOC_LICENSE_API_KEY"),
		LogLevel:         parseLogLevel(getEnv("LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func getEnvBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
