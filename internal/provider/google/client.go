package google

import (
	"context"

	ai "github.com/spetersoncode/relay"
	"google.golang.org/genai"
)

// generator is the slice of the genai Models service the adapter uses.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client wraps the Google GenAI SDK to implement ai.ChatProvider.
type Client struct {
	models    generator
	model     ChatModel
	maxTokens int32
}

// New creates a new Google GenAI client with the given API key.
func New(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, wrapError(err)
	}
	c := &Client{
		models: client.Models,
		model:  DefaultChatModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ClientOption configures the Google client.
type ClientOption func(*Client)

// WithModel sets the default model for requests.
func WithModel(model ChatModel) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithMaxTokens caps answer length for every request that does not set its own.
func WithMaxTokens(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxTokens = int32(n)
		}
	}
}

// Provider returns ai.ProviderGoogle.
func (c *Client) Provider() ai.Provider { return ai.ProviderGoogle }

// Model returns the default model used when a request does not name one.
func (c *Client) Model() ChatModel { return c.model }

// MaxTokens returns the client-wide answer length cap, 0 when unset.
func (c *Client) MaxTokens() int { return int(c.maxTokens) }

// Chat sends a conversation and returns the text of the first candidate.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	options := ai.ApplyOptions(opts...)
	model := c.model
	if options.Model != "" {
		model = ChatModel(options.Model)
	}

	config := &genai.GenerateContentConfig{}
	maxTokens := c.maxTokens
	if options.MaxTokens > 0 {
		maxTokens = int32(options.MaxTokens)
	}
	if maxTokens > 0 {
		config.MaxOutputTokens = maxTokens
	}

	resp, err := c.models.GenerateContent(ctx, model.String(), convertMessages(messages), config)
	if err != nil {
		return nil, wrapError(err)
	}

	content, ok := extractText(resp)
	return &ai.Response{
		Content:  content,
		Model:    model.String(),
		Provider: ai.ProviderGoogle,
		NoText:   !ok,
	}, nil
}

var _ ai.ChatProvider = (*Client)(nil)
