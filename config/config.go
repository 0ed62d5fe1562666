// Package config loads relay settings from a .env file, the environment and
// an optional config file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	ai "github.com/spetersoncode/relay"
	"github.com/spetersoncode/relay/client"
)

// Keys, matching the environment variable names.
const (
	KeyOpenAIKey       = "openai_api_key"
	KeyAnthropicKey    = "anthropic_api_key"
	KeyGeminiKey       = "gemini_api_key"
	KeyOpenAIModel     = "openai_model"
	KeyClaudeModel     = "claude_model"
	KeyGeminiModel     = "gemini_model"
	KeyMaxTokens       = "relay_max_tokens"
	KeyDBPath          = "relay_db_path"
	KeyPort            = "relay_port"
	KeyLogLevel        = "relay_log_level"
	KeyRetentionDays   = "relay_retention_days"
	KeyCleanupSchedule = "relay_cleanup_schedule"
	KeyCallTimeout     = "relay_call_timeout"
	KeyMaxConcurrency  = "relay_max_concurrency"
	KeyAllowedOrigins  = "relay_allowed_origins"
)

// DefaultAllowedOrigins are the browser origins the HTTP API accepts by default.
var DefaultAllowedOrigins = []string{
	"http://127.0.0.1:8000",
	"http://localhost:63343",
	"http://127.0.0.1:63343",
	"http://localhost:63342",
	"http://localhost:63344",
}

// Config holds the relay configuration.
type Config struct {
	// API keys; an empty key leaves that provider unconfigured.
	OpenAIKey    string
	AnthropicKey string
	GeminiKey    string

	// Default model per provider family; empty uses the built-in default.
	OpenAIModel string
	ClaudeModel string
	GeminiModel string

	MaxTokens int

	DBPath   string
	Port     string
	LogLevel string // debug, info, warn, error

	RetentionDays   int
	CleanupSchedule string // cron spec or descriptor such as @daily

	CallTimeout    time.Duration
	MaxConcurrency int

	AllowedOrigins []string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyMaxTokens, 512)
	v.SetDefault(KeyDBPath, "conversation.db")
	v.SetDefault(KeyPort, "8000")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyRetentionDays, 30)
	v.SetDefault(KeyCleanupSchedule, "@daily")
	v.SetDefault(KeyCallTimeout, "0s")
	v.SetDefault(KeyMaxConcurrency, 0)
	v.SetDefault(KeyAllowedOrigins, DefaultAllowedOrigins)
}

// Load reads configuration into a Config. A .env file in the working
// directory is loaded first if present (silent when absent); it never
// overrides variables already set in the environment. configFile, when
// non-empty, is read as well; environment values take precedence over it.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	_ = godotenv.Load() // Load .env file if present

	SetDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		OpenAIKey:       v.GetString(KeyOpenAIKey),
		AnthropicKey:    v.GetString(KeyAnthropicKey),
		GeminiKey:       v.GetString(KeyGeminiKey),
		OpenAIModel:     v.GetString(KeyOpenAIModel),
		ClaudeModel:     v.GetString(KeyClaudeModel),
		GeminiModel:     v.GetString(KeyGeminiModel),
		MaxTokens:       v.GetInt(KeyMaxTokens),
		DBPath:          v.GetString(KeyDBPath),
		Port:            v.GetString(KeyPort),
		LogLevel:        strings.ToLower(v.GetString(KeyLogLevel)),
		RetentionDays:   v.GetInt(KeyRetentionDays),
		CleanupSchedule: v.GetString(KeyCleanupSchedule),
		CallTimeout:     v.GetDuration(KeyCallTimeout),
		MaxConcurrency:  v.GetInt(KeyMaxConcurrency),
		AllowedOrigins:  splitList(v.GetStringSlice(KeyAllowedOrigins)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitList flattens comma separated entries, as produced by environment values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks value ranges. Missing API keys are not an error; see MissingKeys.
func (c *Config) Validate() error {
	var errs []error
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.RetentionDays < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %d", strings.ToUpper(KeyRetentionDays), c.RetentionDays))
	}
	if c.MaxTokens < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %d", strings.ToUpper(KeyMaxTokens), c.MaxTokens))
	}
	if c.CallTimeout < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %s", strings.ToUpper(KeyCallTimeout), c.CallTimeout))
	}
	if c.DBPath == "" {
		errs = append(errs, fmt.Errorf("%s is required", strings.ToUpper(KeyDBPath)))
	}
	return errors.Join(errs...)
}

// Key returns the API key configured for p.
func (c *Config) Key(p ai.Provider) string {
	switch p {
	case ai.ProviderOpenAI:
		return c.OpenAIKey
	case ai.ProviderAnthropic:
		return c.AnthropicKey
	case ai.ProviderGoogle:
		return c.GeminiKey
	default:
		return ""
	}
}

// MissingKeys lists the providers without an API key.
func (c *Config) MissingKeys() []ai.Provider {
	var missing []ai.Provider
	for _, p := range ai.Providers {
		if c.Key(p) == "" {
			missing = append(missing, p)
		}
	}
	return missing
}

// WarnMissingKeys logs one warning per unconfigured provider.
func (c *Config) WarnMissingKeys(logger *slog.Logger) {
	for _, p := range c.MissingKeys() {
		logger.Warn("API key not configured; provider unavailable",
			"provider", p, "env", p.CredentialEnv())
	}
}

// Retention returns the cleanup age threshold.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (must be debug, info, warn or error)", s)
	}
}

// ClientConfig returns the provider client settings.
func (c *Config) ClientConfig() client.Config {
	return client.Config{
		APIKeys: client.APIKeys{
			Anthropic: c.AnthropicKey,
			OpenAI:    c.OpenAIKey,
			Google:    c.GeminiKey,
		},
		Defaults: client.Defaults{
			Anthropic: c.ClaudeModel,
			OpenAI:    c.OpenAIModel,
			Google:    c.GeminiModel,
		},
		MaxTokens: c.MaxTokens,
	}
}
