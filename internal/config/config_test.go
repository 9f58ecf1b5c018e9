package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env and restore after test
	origEnv := os.Environ()
	t.Cleanup(func() {
		os.Clearenv()
		for _, e := range origEnv {
			for i := 0; i < len(e); i++ {
				if e[i] == '=' {
					os.Setenv(e[:i], e[i+1:])
					break
				}
			}
		}
	})

	t.Run("defaults", func(t *testing.T) {
		os.Clearenv()
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "data/adnova.db", cfg.DatabasePath)
		assert.Equal(t, "data/memory.veclite", cfg.MemoryPath)
		assert.Equal(t, "openai", cfg.LLMProvider)
		assert.Equal(t, "gpt-4", cfg.Model())
		assert.Equal(t, 0.9, cfg.CreativeTemperature)
		assert.Equal(t, 0.3, cfg.AnalyticalTemperature)
		assert.Equal(t, 1000, cfg.MaxTokens)
		assert.Equal(t, 5, cfg.MaxVariations)
		assert.Equal(t, 3, cfg.LLMMaxRetries)
		assert.Equal(t, time.Second, cfg.LLMRetryDelay)
		assert.Equal(t, 120*time.Second, cfg.LLMTimeout)
		assert.Equal(t, ":8080", cfg.ListenAddr)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("custom values", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("DATABASE_PATH", "/custom/path.db")
		os.Setenv("LLM_PROVIDER", "anthropic")
		os.Setenv("ANTHROPIC_API_KEY", "sk-test")
		os.Setenv("MAX_VARIATIONS", "8")
		os.Setenv("LLM_RETRY_DELAY", "250ms")
		os.Setenv("CREATIVE_TEMPERATURE", "0.7")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "/custom/path.db", cfg.DatabasePath)
		assert.Equal(t, "sk-test", cfg.APIKey())
		assert.Equal(t, "claude-sonnet-4-20250514", cfg.Model())
		assert.Equal(t, 8, cfg.MaxVariations)
		assert.Equal(t, 250*time.Millisecond, cfg.LLMRetryDelay)
		assert.Equal(t, 0.7, cfg.CreativeTemperature)
	})

	t.Run("invalid duration", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("LLM_TIMEOUT", "invalid")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "LLM_TIMEOUT")
	})

	t.Run("invalid integer", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("MAX_VARIATIONS", "notanumber")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "MAX_VARIATIONS")
	})

	t.Run("invalid float", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("ANALYTICAL_TEMPERATURE", "warm")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ANALYTICAL_TEMPERATURE")
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := &Config{DatabasePath: "test.db"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing database path", func(t *testing.T) {
		cfg := &Config{}
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_PATH")
	})
}

func TestConfig_ValidateForGeneration(t *testing.T) {
	t.Run("openai needs a key", func(t *testing.T) {
		cfg := &Config{DatabasePath: "test.db", LLMProvider: "openai", MaxVariations: 5}
		err := cfg.ValidateForGeneration()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "OPENAI_API_KEY")

		cfg.OpenAIAPIKey = "sk-test"
		assert.NoError(t, cfg.ValidateForGeneration())
	})

	t.Run("gemini needs a key", func(t *testing.T) {
		cfg := &Config{DatabasePath: "test.db", LLMProvider: "gemini", MaxVariations: 5}
		err := cfg.ValidateForGeneration()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	})

	t.Run("mock needs nothing", func(t *testing.T) {
		cfg := &Config{DatabasePath: "test.db", LLMProvider: "mock", MaxVariations: 5}
		assert.NoError(t, cfg.ValidateForGeneration())
		assert.Empty(t, cfg.APIKey())
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := &Config{DatabasePath: "test.db", LLMProvider: "llama", MaxVariations: 5}
		err := cfg.ValidateForGeneration()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "LLM_PROVIDER")
	})

	t.Run("max variations", func(t *testing.T) {
		cfg := &Config{DatabasePath: "test.db", LLMProvider: "mock"}
		err := cfg.ValidateForGeneration()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "MAX_VARIATIONS")
	})
}

func TestConfig_ValidateForServe(t *testing.T) {
	cfg := &Config{DatabasePath: "test.db", LLMProvider: "mock", MaxVariations: 5}
	err := cfg.ValidateForServe()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "LISTEN_ADDR")

	cfg.ListenAddr = ":9000"
	assert.NoError(t, cfg.ValidateForServe())
}

func TestConfig_ValidateForMemory(t *testing.T) {
	cfg := &Config{DatabasePath: "test.db"}
	err := cfg.ValidateForMemory()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "MEMORY_PATH")

	cfg.MemoryPath = "mem.veclite"
	assert.NoError(t, cfg.ValidateForMemory())
}

func TestConfig_Model(t *testing.T) {
	cfg := &Config{LLMProvider: "gemini"}
	assert.Equal(t, "gemini-2.0-flash", cfg.Model())

	cfg.LLMModel = "gemini-2.5-pro"
	assert.Equal(t, "gemini-2.5-pro", cfg.Model())

	cfg = &Config{}
	assert.Equal(t, "gpt-4", cfg.Model())
}
