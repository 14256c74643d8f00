package config

import (
	"os"
	"testing"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"uses env value", "TEST_VAR_1", "hello", "default", "hello"},
		{"uses default when empty", "TEST_VAR_2", "", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			result := getEnvOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal int
		expected   int
	}{
		{"parses integer", "TEST_INT_1", "42", 10, 42},
		{"uses default for empty", "TEST_INT_2", "", 10, 10},
		{"uses default for non-numeric", "TEST_INT_3", "abc", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			result := getEnvAsIntOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, result)
			}
		})
	}
}

func TestMustGetEnv_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for missing required env var")
		}
	}()

	os.Unsetenv("NONEXISTENT_REQUIRED_VAR")
	mustGetEnv("NONEXISTENT_REQUIRED_VAR")
}

func TestMustGetEnv_ReturnsValue(t *testing.T) {
	os.Setenv("TEST_REQUIRED", "value123")
	defer os.Unsetenv("TEST_REQUIRED")

	result := mustGetEnv("TEST_REQUIRED")
	if result != "value123" {
		t.Errorf("Expected 'value123', got %q", result)
	}
}

func TestLoad_DefaultsToOpenAI(t *testing.T) {
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("PORT", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := Load()
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("Expected provider %q, got %q", ProviderOpenAI, cfg.Provider)
	}
	if cfg.Port != "5000" {
		t.Errorf("Expected default port 5000, got %q", cfg.Port)
	}
	if cfg.OpenAIModel != "gpt-3.5-turbo" {
		t.Errorf("Expected default model gpt-3.5-turbo, got %q", cfg.OpenAIModel)
	}
	if cfg.OpenAIAPIKey != "sk-test" {
		t.Errorf("Expected API key from env, got %q", cfg.OpenAIAPIKey)
	}
}

func TestLoad_GeminiRequiresItsKey(t *testing.T) {
	t.Setenv("AI_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for missing GEMINI_API_KEY")
		}
	}()
	Load()
}

func TestLoad_RejectsUnknownProvider(t *testing.T) {
	t.Setenv("AI_PROVIDER", "llama")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for unsupported provider")
		}
	}()
	Load()
}

func TestLoadClient_TrimsBaseURL(t *testing.T) {
	t.Setenv("CHAT_API_BASE_URL", "https://relay.example.com/")

	cfg := LoadClient()
	if cfg.APIBaseURL != "https://relay.example.com" {
		t.Errorf("Expected trailing slash trimmed, got %q", cfg.APIBaseURL)
	}
}

func TestLoadClient_FallsBackToBuildDefault(t *testing.T) {
	t.Setenv("CHAT_API_BASE_URL", "")

	cfg := LoadClient()
	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("Expected %q, got %q", DefaultAPIBaseURL, cfg.APIBaseURL)
	}
}
