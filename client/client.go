package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	ai "github.com/spetersoncode/relay"
	"github.com/spetersoncode/relay/internal/provider/anthropic"
	"github.com/spetersoncode/relay/internal/provider/google"
	"github.com/spetersoncode/relay/internal/provider/openai"
)

// APIKeys holds API keys for different providers.
// Only configure keys for providers you intend to use.
type APIKeys struct {
	Anthropic string
	OpenAI    string
	Google    string
}

// Key returns the configured key for p.
func (k APIKeys) Key(p ai.Provider) string {
	switch p {
	case ai.ProviderAnthropic:
		return k.Anthropic
	case ai.ProviderOpenAI:
		return k.OpenAI
	case ai.ProviderGoogle:
		return k.Google
	default:
		return ""
	}
}

// Defaults holds the model each provider family uses when a request names none.
// Empty fields fall back to the adapter's built-in default.
type Defaults struct {
	Anthropic string
	OpenAI    string
	Google    string
}

// Config holds configuration for creating a unified client.
type Config struct {
	// APIKeys contains authentication keys for each provider.
	APIKeys APIKeys

	// Defaults contains the default model per provider family.
	Defaults Defaults

	// MaxTokens caps answer length for every provider. Zero keeps each
	// adapter's default (512 for Claude, uncapped otherwise).
	MaxTokens int

	// Events is an optional channel for receiving client operation events.
	// Events are sent non-blocking; if the channel is full, events are dropped.
	Events chan<- Event
}

// ErrMissingAPIKey is returned when a provider is used but no API key
// is configured for it.
type ErrMissingAPIKey struct {
	Provider string
	Model    string
}

func (e *ErrMissingAPIKey) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("no API key configured for %s (required by model %q)", e.Provider, e.Model)
	}
	return fmt.Sprintf("no API key configured for %s", e.Provider)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithProvider installs an adapter for its provider family, bypassing lazy
// initialization and the API key check.
func WithProvider(p ai.ChatProvider) ClientOption {
	return func(c *Client) {
		c.providers[p.Provider()] = p
	}
}

// WithDefaultChatOptions sets default options for all chat requests.
// Per-request options override these defaults.
func WithDefaultChatOptions(opts ...ai.Option) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, opts...)
	}
}

// Client is a unified interface to every provider family.
// Provider clients are lazily initialized when first needed.
type Client struct {
	apiKeys         APIKeys
	defaults        Defaults
	maxTokens       int
	events          chan<- Event
	defaultChatOpts []ai.Option

	// Lazy-initialized providers (protected by mutex)
	mu        sync.RWMutex
	providers map[ai.Provider]ai.ChatProvider
	initErrs  map[ai.Provider]error
}

// New creates a unified client with the given configuration.
// Provider clients are lazily initialized on first use.
func New(cfg Config, opts ...ClientOption) *Client {
	c := &Client{
		apiKeys:   cfg.APIKeys,
		defaults:  cfg.Defaults,
		maxTokens: cfg.MaxTokens,
		events:    cfg.Events,
		providers: make(map[ai.Provider]ai.ChatProvider),
		initErrs:  make(map[ai.Provider]error),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether p has an installed adapter or an API key.
func (c *Client) Configured(p ai.Provider) bool {
	c.mu.RLock()
	_, ok := c.providers[p]
	c.mu.RUnlock()
	return ok || c.apiKeys.Key(p) != ""
}

// DefaultModel returns the model p uses when a request names none.
func (c *Client) DefaultModel(p ai.Provider) string {
	switch p {
	case ai.ProviderAnthropic:
		if c.defaults.Anthropic != "" {
			return c.defaults.Anthropic
		}
		return anthropic.DefaultChatModel.String()
	case ai.ProviderOpenAI:
		if c.defaults.OpenAI != "" {
			return c.defaults.OpenAI
		}
		return openai.DefaultChatModel.String()
	case ai.ProviderGoogle:
		if c.defaults.Google != "" {
			return c.defaults.Google
		}
		return google.DefaultChatModel.String()
	default:
		return ""
	}
}

// provider returns the adapter for p, initializing it if needed.
func (c *Client) provider(ctx context.Context, p ai.Provider) (ai.ChatProvider, error) {
	c.mu.RLock()
	if cp, ok := c.providers[p]; ok {
		defer c.mu.RUnlock()
		return cp, nil
	}
	if err := c.initErrs[p]; err != nil {
		defer c.mu.RUnlock()
		return nil, err
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if cp, ok := c.providers[p]; ok {
		return cp, nil
	}
	if err := c.initErrs[p]; err != nil {
		return nil, err
	}

	key := c.apiKeys.Key(p)
	if key == "" {
		return nil, ai.NewError(ai.KindUnconfigured, p, &ErrMissingAPIKey{Provider: p.String()})
	}

	var cp ai.ChatProvider
	switch p {
	case ai.ProviderAnthropic:
		cp = anthropic.New(key,
			anthropic.WithModel(anthropic.ChatModel(c.defaults.Anthropic)),
			anthropic.WithMaxTokens(c.maxTokens),
		)
	case ai.ProviderOpenAI:
		cp = openai.New(key,
			openai.WithModel(openai.ChatModel(c.defaults.OpenAI)),
			openai.WithMaxTokens(c.maxTokens),
		)
	case ai.ProviderGoogle:
		gc, err := google.New(ctx, key,
			google.WithModel(google.ChatModel(c.defaults.Google)),
			google.WithMaxTokens(c.maxTokens),
		)
		if err != nil {
			c.initErrs[p] = fmt.Errorf("failed to initialize Google client: %w", err)
			return nil, c.initErrs[p]
		}
		cp = gc
	default:
		return nil, fmt.Errorf("unsupported provider: %s", p)
	}

	c.providers[p] = cp
	return cp, nil
}

// Chat sends a conversation to provider p and returns the normalized answer.
// The model can be specified via ai.WithModel, or the provider default is used.
// Failures are *ai.Error values; a missing API key is KindUnconfigured.
func (c *Client) Chat(ctx context.Context, p ai.Provider, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	// Prepend default options so per-request options override them
	opts = append(append([]ai.Option(nil), c.defaultChatOpts...), opts...)
	options := ai.ApplyOptions(opts...)

	model := options.Model
	if model == "" {
		model = c.DefaultModel(p)
	}

	chatProvider, err := c.provider(ctx, p)
	if err != nil {
		emit(c.events, Event{
			Type:     EventRequestError,
			Provider: p,
			Model:    model,
			Error:    err,
		})
		return nil, err
	}

	start := time.Now()
	emit(c.events, Event{
		Type:     EventRequestStart,
		Provider: p,
		Model:    model,
	})

	resp, err := chatProvider.Chat(ctx, messages, opts...)
	if err != nil {
		emit(c.events, Event{
			Type:     EventRequestError,
			Provider: p,
			Model:    model,
			Duration: time.Since(start),
			Error:    err,
		})
		return nil, err
	}

	emit(c.events, Event{
		Type:     EventRequestComplete,
		Provider: p,
		Model:    model,
		Duration: time.Since(start),
	})
	return resp, nil
}
