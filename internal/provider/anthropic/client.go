package anthropic

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	ai "github.com/spetersoncode/relay"
)

// DefaultMaxTokens caps answer length when a request does not set one.
const DefaultMaxTokens = 512

// messenger is the slice of the SDK messages service the adapter uses.
type messenger interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Client wraps the Anthropic SDK to implement ai.ChatProvider.
type Client struct {
	messages  messenger
	model     ChatModel
	maxTokens int64
}

// New creates a new Anthropic client with the given API key.
func New(apiKey string, opts ...ClientOption) *Client {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	c := &Client{
		messages:  &client.Messages,
		model:     DefaultChatModel,
		maxTokens: DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClientOption configures the Anthropic client.
type ClientOption func(*Client)

// WithModel sets the default model for requests.
func WithModel(model ChatModel) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithMaxTokens sets the default answer length cap.
func WithMaxTokens(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxTokens = int64(n)
		}
	}
}

// Provider returns ai.ProviderAnthropic.
func (c *Client) Provider() ai.Provider { return ai.ProviderAnthropic }

// Model returns the default model used when a request does not name one.
func (c *Client) Model() ChatModel { return c.model }

// MaxTokens returns the default answer length cap.
func (c *Client) MaxTokens() int { return int(c.maxTokens) }

// Chat sends a conversation and returns the first text block of the reply.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	options := ai.ApplyOptions(opts...)
	model := c.model
	if options.Model != "" {
		model = ChatModel(options.Model)
	}

	maxTokens := c.maxTokens
	if options.MaxTokens > 0 {
		maxTokens = int64(options.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model.String()),
		MaxTokens: maxTokens,
		Messages:  convertMessages(messages),
	}

	resp, err := c.messages.New(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}

	content, ok := extractText(resp)
	return &ai.Response{
		Content:  content,
		Model:    model.String(),
		Provider: ai.ProviderAnthropic,
		NoText:   !ok,
	}, nil
}

var _ ai.ChatProvider = (*Client)(nil)
