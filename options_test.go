package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyOptions(t *testing.T) {
	t.Run("returns empty options when no options provided", func(t *testing.T) {
		opts := ApplyOptions()
		assert.NotNil(t, opts)
		assert.Empty(t, opts.Model)
		assert.Zero(t, opts.MaxTokens)
	})

	t.Run("applies multiple options", func(t *testing.T) {
		opts := ApplyOptions(WithModel("gpt-4"), WithMaxTokens(1000))
		assert.Equal(t, "gpt-4", opts.Model)
		assert.Equal(t, 1000, opts.MaxTokens)
	})

	t.Run("later options override earlier ones", func(t *testing.T) {
		opts := ApplyOptions(WithModel("a"), WithModel("b"))
		assert.Equal(t, "b", opts.Model)
	})
}

func TestProvider(t *testing.T) {
	tests := []struct {
		provider Provider
		display  string
		env      string
	}{
		{ProviderOpenAI, "OpenAI", "OPENAI_API_KEY"},
		{ProviderAnthropic, "Claude", "ANTHROPIC_API_KEY"},
		{ProviderGoogle, "Gemini", "GEMINI_API_KEY"},
		{Provider("other"), "other", ""},
	}

	for _, tt := range tests {
		t.Run(tt.provider.String(), func(t *testing.T) {
			assert.Equal(t, tt.display, tt.provider.DisplayName())
			assert.Equal(t, tt.env, tt.provider.CredentialEnv())
		})
	}
}
