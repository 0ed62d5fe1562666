package openai

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	ai "github.com/spetersoncode/relay"
)

// completer is the slice of the SDK chat completion service the adapter uses.
type completer interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Client wraps the OpenAI SDK to implement ai.ChatProvider.
type Client struct {
	completions completer
	model       ChatModel
	maxTokens   int64
}

// New creates a new OpenAI client with the given API key.
func New(apiKey string, opts ...ClientOption) *Client {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	c := &Client{
		completions: &client.Chat.Completions,
		model:       DefaultChatModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClientOption configures the OpenAI client.
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
			c.maxTokens = int64(n)
		}
	}
}

// Provider returns ai.ProviderOpenAI.
func (c *Client) Provider() ai.Provider { return ai.ProviderOpenAI }

// Model returns the default model used when a request does not name one.
func (c *Client) Model() ChatModel { return c.model }

// MaxTokens returns the client-wide answer length cap, 0 when unset.
func (c *Client) MaxTokens() int { return int(c.maxTokens) }

// Chat sends a conversation and returns the first textual answer.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	options := ai.ApplyOptions(opts...)
	model := c.model
	if options.Model != "" {
		model = ChatModel(options.Model)
	}

	params := openai.ChatCompletionNewParams{
		Model:    model.String(),
		Messages: convertMessages(messages),
	}
	maxTokens := c.maxTokens
	if options.MaxTokens > 0 {
		maxTokens = int64(options.MaxTokens)
	}
	if maxTokens > 0 {
		params.MaxTokens = openai.Int(maxTokens)
	}

	resp, err := c.completions.New(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}

	content, ok := extractText(resp)
	return &ai.Response{
		Content:  content,
		Model:    model.String(),
		Provider: ai.ProviderOpenAI,
		NoText:   !ok,
	}, nil
}

var _ ai.ChatProvider = (*Client)(nil)
