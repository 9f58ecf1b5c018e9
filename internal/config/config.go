package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Default models per LLM provider.
var defaultModels = map[string]string{
	"openai":    "gpt-4",
	"anthropic": "claude-sonnet-4-20250514",
	"gemini":    "gemini-2.0-flash",
	"mock":      "mock",
}

// Config holds all application configuration.
type Config struct {
	// Database
	DatabasePath string

	// VecLite semantic memory
	MemoryPath   string // Path to VecLite database (default: data/memory.veclite)
	MemoryConfig string // veclite.yaml path; empty searches the veclite defaults

	// Completion provider
	LLMProvider string // openai, anthropic, gemini or mock (default: openai)
	LLMModel    string // empty uses the provider default
	LLMBaseURL  string

	OpenAIAPIKey    string
	AnthropicAPIKey string
	GeminiAPIKey    string

	// Sampling
	CreativeTemperature   float64
	AnalyticalTemperature float64
	MaxTokens             int
	MaxVariations         int

	// Retries
	LLMMaxRetries int
	LLMRetryDelay time.Duration
	LLMTimeout    time.Duration

	// HTTP
	ListenAddr string

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:    getEnv("DATABASE_PATH", "data/adnova.db"),
		MemoryPath:      getEnv("MEMORY_PATH", "data/memory.veclite"),
		MemoryConfig:    getEnv("MEMORY_CONFIG", ""),
		LLMProvider:     getEnv("LLM_PROVIDER", "openai"),
		LLMModel:        getEnv("LLM_MODEL", ""),
		LLMBaseURL:      getEnv("LLM_BASE_URL", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	// Parse floats
	var err error
	cfg.CreativeTemperature, err = strconv.ParseFloat(getEnv("CREATIVE_TEMPERATURE", "0.9"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CREATIVE_TEMPERATURE: %w", err)
	}
	cfg.AnalyticalTemperature, err = strconv.ParseFloat(getEnv("ANALYTICAL_TEMPERATURE", "0.3"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ANALYTICAL_TEMPERATURE: %w", err)
	}

	// Parse integers
	cfg.MaxTokens, err = strconv.Atoi(getEnv("MAX_TOKENS", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_TOKENS: %w", err)
	}
	cfg.MaxVariations, err = strconv.Atoi(getEnv("MAX_VARIATIONS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_VARIATIONS: %w", err)
	}
	cfg.LLMMaxRetries, err = strconv.Atoi(getEnv("LLM_MAX_RETRIES", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_MAX_RETRIES: %w", err)
	}

	// Parse durations
	cfg.LLMRetryDelay, err = time.ParseDuration(getEnv("LLM_RETRY_DELAY", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_RETRY_DELAY: %w", err)
	}
	cfg.LLMTimeout, err = time.ParseDuration(getEnv("LLM_TIMEOUT", "120s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	return nil
}

// ValidateForGeneration checks configuration needed to call the LLM.
func (c *Config) ValidateForGeneration() error {
	if err := c.Validate(); err != nil {
		return err
	}
	switch c.LLMProvider {
	case "openai", "":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER is openai")
		}
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required when LLM_PROVIDER is anthropic")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER is gemini")
		}
	case "mock":
	default:
		return fmt.Errorf("invalid LLM_PROVIDER: %s (must be 'openai', 'anthropic', 'gemini' or 'mock')", c.LLMProvider)
	}
	if c.MaxVariations < 1 {
		return fmt.Errorf("MAX_VARIATIONS must be at least 1")
	}
	return nil
}

// ValidateForMemory checks configuration needed for the VecLite memory.
func (c *Config) ValidateForMemory() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.MemoryPath == "" {
		return fmt.Errorf("MEMORY_PATH is required")
	}
	return nil
}

// ValidateForServe checks all configuration needed for serve mode.
func (c *Config) ValidateForServe() error {
	if err := c.ValidateForGeneration(); err != nil {
		return err
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("LISTEN_ADDR is required for serve")
	}
	return nil
}

// Model returns LLM_MODEL or the provider's default model.
func (c *Config) Model() string {
	if c.LLMModel != "" {
		return c.LLMModel
	}
	provider := c.LLMProvider
	if provider == "" {
		provider = "openai"
	}
	return defaultModels[provider]
}

// APIKey returns the key for the configured provider.
func (c *Config) APIKey() string {
	switch c.LLMProvider {
	case "anthropic":
		return c.AnthropicAPIKey
	case "gemini":
		return c.GeminiAPIKey
	case "mock":
		return ""
	}
	return c.OpenAIAPIKey
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
