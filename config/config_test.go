package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	ai "github.com/spetersoncode/relay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every relay variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		KeyOpenAIKey, KeyAnthropicKey, KeyGeminiKey,
		KeyOpenAIModel, KeyClaudeModel, KeyGeminiModel,
		KeyMaxTokens, KeyDBPath, KeyPort, KeyLogLevel,
		KeyRetentionDays, KeyCleanupSchedule, KeyCallTimeout,
		KeyMaxConcurrency, KeyAllowedOrigins,
	}
	for _, k := range keys {
		env := strings.ToUpper(k)
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
	// Keep a stray .env in the package directory out of the way.
	t.Chdir(t.TempDir())
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load(viper.New(), "")

		require.NoError(t, err)
		assert.Equal(t, 512, cfg.MaxTokens)
		assert.Equal(t, "conversation.db", cfg.DBPath)
		assert.Equal(t, "8000", cfg.Port)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 30, cfg.RetentionDays)
		assert.Equal(t, "@daily", cfg.CleanupSchedule)
		assert.Zero(t, cfg.CallTimeout)
		assert.Equal(t, DefaultAllowedOrigins, cfg.AllowedOrigins)
		assert.ElementsMatch(t, ai.Providers, cfg.MissingKeys())
	})

	t.Run("environment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("CLAUDE_MODEL", "claude-3-5-haiku-latest")
		t.Setenv("RELAY_MAX_TOKENS", "1024")
		t.Setenv("RELAY_CALL_TIMEOUT", "45s")
		t.Setenv("RELAY_ALLOWED_ORIGINS", "http://a.example, http://b.example")
		t.Setenv("RELAY_LOG_LEVEL", "DEBUG")

		cfg, err := Load(viper.New(), "")

		require.NoError(t, err)
		assert.Equal(t, "sk-test", cfg.OpenAIKey)
		assert.Equal(t, "sk-test", cfg.Key(ai.ProviderOpenAI))
		assert.Equal(t, "claude-3-5-haiku-latest", cfg.ClaudeModel)
		assert.Equal(t, 1024, cfg.MaxTokens)
		assert.Equal(t, 45*time.Second, cfg.CallTimeout)
		assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, []ai.Provider{ai.ProviderAnthropic, ai.ProviderGoogle}, cfg.MissingKeys())
	})

	t.Run("dotenv file", func(t *testing.T) {
		clearEnv(t)
		require.NoError(t, os.WriteFile(".env", []byte("GEMINI_API_KEY=from-dotenv\nRELAY_PORT=9090\n"), 0o600))
		t.Cleanup(func() {
			os.Unsetenv("GEMINI_API_KEY")
			os.Unsetenv("RELAY_PORT")
		})

		cfg, err := Load(viper.New(), "")

		require.NoError(t, err)
		assert.Equal(t, "from-dotenv", cfg.GeminiKey)
		assert.Equal(t, "9090", cfg.Port)
	})

	t.Run("config file with environment override", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "relay.yaml")
		require.NoError(t, os.WriteFile(path, []byte("relay_db_path: /tmp/relay.db\nrelay_retention_days: 7\nrelay_port: \"7000\"\n"), 0o600))
		t.Setenv("RELAY_PORT", "7100")

		cfg, err := Load(viper.New(), path)

		require.NoError(t, err)
		assert.Equal(t, "/tmp/relay.db", cfg.DBPath)
		assert.Equal(t, 7, cfg.RetentionDays)
		assert.Equal(t, "7100", cfg.Port)
		assert.Equal(t, 7*24*time.Hour, cfg.Retention())
	})

	t.Run("missing config file", func(t *testing.T) {
		clearEnv(t)

		_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))

		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RELAY_LOG_LEVEL", "loud")
		t.Setenv("RELAY_RETENTION_DAYS", "-1")

		_, err := Load(viper.New(), "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "loud")
		assert.Contains(t, err.Error(), "RELAY_RETENTION_DAYS")
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
		ok    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, err == nil)
		})
	}
}
