package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// DefaultAPIBaseURL is the relay address the chat client uses when
// CHAT_API_BASE_URL is unset. Override at build time with
// -ldflags "-X botnest/internal/config.DefaultAPIBaseURL=https://...".
var DefaultAPIBaseURL = "http://localhost:5000"

type Config struct {
	// Server
	Port                   string
	Env                    string
	ShutdownTimeoutSeconds int

	// Provider
	Provider string

	// OpenAI
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	// Gemini AI
	GeminiAPIKey string
	GeminiModel  string

	// Redis (optional, exchange feed)
	RedisURL string

	// Tracing (optional)
	OTLPEndpoint string

	// Frontend
	FrontendURL string
}

// ClientConfig configures the terminal chat client.
type ClientConfig struct {
	APIBaseURL string
	ThemeFile  string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                   getEnvOrDefault("PORT", "5000"),
		Env:                    getEnvOrDefault("ENV", "development"),
		ShutdownTimeoutSeconds: getEnvAsIntOrDefault("SHUTDOWN_TIMEOUT_SECONDS", 30),
		Provider:               strings.ToLower(getEnvOrDefault("AI_PROVIDER", ProviderOpenAI)),
		OpenAIModel:            getEnvOrDefault("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIBaseURL:          getEnvOrDefault("OPENAI_BASE_URL", ""),
		GeminiModel:            getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		RedisURL:               getEnvOrDefault("REDIS_URL", ""),
		OTLPEndpoint:           getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		FrontendURL:            getEnvOrDefault("FRONTEND_URL", "*"),
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		cfg.OpenAIAPIKey = mustGetEnv("OPENAI_API_KEY")
	case ProviderGemini:
		cfg.GeminiAPIKey = mustGetEnv("GEMINI_API_KEY")
	default:
		panic(fmt.Sprintf("unsupported AI_PROVIDER %q (want %s or %s)", cfg.Provider, ProviderOpenAI, ProviderGemini))
	}

	return cfg
}

func LoadClient() *ClientConfig {
	godotenv.Load()

	return &ClientConfig{
		APIBaseURL: strings.TrimRight(getEnvOrDefault("CHAT_API_BASE_URL", DefaultAPIBaseURL), "/"),
		ThemeFile:  getEnvOrDefault("CHAT_THEME_FILE", ""),
	}
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
