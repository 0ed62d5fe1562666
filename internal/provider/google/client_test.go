package google

import (
	"context"
	"errors"
	"net/http"
	"testing"

	ai "github.com/spetersoncode/relay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	resp     *genai.GenerateContentResponse
	err      error
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.contents = contents
	f.config = config
	return f.resp, f.err
}

func candidate(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: "model"}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content}},
	}
}

func newTestClient(f *fakeGenerator, opts ...ClientOption) *Client {
	c := &Client{models: f, model: DefaultChatModel}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func TestConvertMessages(t *testing.T) {
	out := convertMessages([]ai.Message{
		ai.UserMessage("Hello"),
		ai.AssistantMessage("Hi", "gemini-2.0-flash"),
		ai.AssistantMessage("", "gemini-2.0-flash"),
		ai.UserMessage("Again"),
	})

	require.Len(t, out, 3)
	assert.Equal(t, "user", out[0].Role)
	assert.Equal(t, "Hello", out[0].Parts[0].Text)
	assert.Equal(t, "model", out[1].Role)
	assert.Equal(t, "Hi", out[1].Parts[0].Text)
	assert.Equal(t, "user", out[2].Role)
}

func TestExtractText(t *testing.T) {
	t.Run("joins text parts", func(t *testing.T) {
		text, ok := extractText(candidate("Hello, ", "world"))
		assert.True(t, ok)
		assert.Equal(t, "Hello, world", text)
	})

	t.Run("blocked prompt has no candidates", func(t *testing.T) {
		text, ok := extractText(&genai.GenerateContentResponse{})
		assert.False(t, ok)
		assert.Equal(t, "Gemini did not return any text content.", text)
	})

	t.Run("candidate without text", func(t *testing.T) {
		_, ok := extractText(candidate(""))
		assert.False(t, ok)
	})
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ai.ErrorKind
	}{
		{"reason code", errors.New("Error 400, Message: API key not valid, Details: [API_KEY_INVALID]"), ai.KindUnauthenticated},
		{"invalid key wording", errors.New("Invalid API Key supplied"), ai.KindUnauthenticated},
		{"resource exhausted", errors.New("Error 429, Status: RESOURCE_EXHAUSTED"), ai.KindQuotaExceeded},
		{"other", errors.New("Error 500, Status: INTERNAL"), ai.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wrapError(tt.err)
			assert.Equal(t, tt.expected, ai.KindOf(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	t.Run("api error keeps code", func(t *testing.T) {
		apiErr := genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED", Message: "quota"}

		var e *ai.Error
		require.True(t, errors.As(wrapError(apiErr), &e))
		assert.Equal(t, ai.KindQuotaExceeded, e.Kind)
		assert.Equal(t, http.StatusTooManyRequests, e.Code)
		assert.Equal(t, ai.ProviderGoogle, e.Provider)
	})
}

func TestClient_Chat(t *testing.T) {
	ctx := context.Background()

	t.Run("default model without token cap", func(t *testing.T) {
		f := &fakeGenerator{resp: candidate("Bonjour")}
		c := newTestClient(f)

		resp, err := c.Chat(ctx, []ai.Message{ai.UserMessage("Hello in French")})

		require.NoError(t, err)
		assert.Equal(t, "Bonjour", resp.Content)
		assert.Equal(t, "gemini-2.0-flash", f.model)
		assert.Equal(t, "gemini-2.0-flash", resp.Model)
		assert.Equal(t, ai.ProviderGoogle, resp.Provider)
		assert.Zero(t, f.config.MaxOutputTokens)
		assert.Len(t, f.contents, 1)
	})

	t.Run("request overrides", func(t *testing.T) {
		f := &fakeGenerator{resp: candidate("ok")}
		c := newTestClient(f, WithModel(Gemini25Flash), WithMaxTokens(256))

		_, err := c.Chat(ctx, []ai.Message{ai.UserMessage("x")})
		require.NoError(t, err)
		assert.Equal(t, "gemini-2.5-flash", f.model)
		assert.Equal(t, int32(256), f.config.MaxOutputTokens)

		_, err = c.Chat(ctx, []ai.Message{ai.UserMessage("x")}, ai.WithModel("gemini-2.5-pro"), ai.WithMaxTokens(32))
		require.NoError(t, err)
		assert.Equal(t, "gemini-2.5-pro", f.model)
		assert.Equal(t, int32(32), f.config.MaxOutputTokens)
	})

	t.Run("no text", func(t *testing.T) {
		c := newTestClient(&fakeGenerator{resp: &genai.GenerateContentResponse{}})

		resp, err := c.Chat(ctx, []ai.Message{ai.UserMessage("x")})

		require.NoError(t, err)
		assert.True(t, resp.NoText)
	})

	t.Run("failure", func(t *testing.T) {
		c := newTestClient(&fakeGenerator{err: errors.New("API_KEY_INVALID")})

		resp, err := c.Chat(ctx, []ai.Message{ai.UserMessage("x")})

		assert.Nil(t, resp)
		assert.True(t, ai.IsKind(err, ai.KindUnauthenticated))
	})
}
