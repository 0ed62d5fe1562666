package router

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	ai "github.com/spetersoncode/relay"
)

// Chatter sends a conversation to a provider family.
// *client.Client satisfies it.
type Chatter interface {
	Chat(ctx context.Context, p ai.Provider, messages []ai.Message, opts ...ai.Option) (*ai.Response, error)
}

// Router dispatches single prompts to the provider an alias names and keeps
// the conversation history current.
type Router struct {
	chat    Chatter
	history ai.HistoryStore
	logger  *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Router that calls providers through chat and threads history
// from the given store.
func New(chat Chatter, history ai.HistoryStore, opts ...Option) *Router {
	r := &Router{
		chat:    chat,
		history: history,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "router")
	return r
}

// Ask resolves alias, sends prompt after the conversation's history, and
// records the exchange. History is read before the call; on success exactly
// two messages are written (the prompt, then the answer tagged with the model
// used). Failed calls write nothing. An empty conversationID skips history.
//
// Unknown aliases fail with KindUnsupportedModel and empty prompts with
// KindInvalidRequest, both without contacting a provider.
func (r *Router) Ask(ctx context.Context, alias, prompt, conversationID string) (*ai.Response, error) {
	p, model, ok := Resolve(alias)
	if !ok {
		r.logger.Info("unsupported model", "alias", alias)
		return nil, ai.NewUnsupportedModelError(alias)
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, ai.NewInvalidRequestError("Prompt was empty.")
	}

	log := r.logger.With("provider", p, "alias", alias, "conversation_id", conversationID)

	var history []ai.Message
	if conversationID != "" {
		var err error
		history, err = r.history.History(ctx, conversationID)
		if err != nil {
			log.Error("history read failed", "error", err)
			return nil, fmt.Errorf("router: load history: %w", err)
		}
	}

	var opts []ai.Option
	if model != "" {
		opts = append(opts, ai.WithModel(model))
	}

	resp, err := r.chat.Chat(ctx, p, ai.WithPrompt(history, prompt), opts...)
	if err != nil {
		log.Warn("provider call failed", "kind", ai.KindOf(err), "error", err)
		return nil, err
	}
	if resp.Model == "" {
		resp.Model = r.modelFor(p, model)
	}
	if resp.NoText {
		log.Warn("provider returned no text", "model", resp.Model)
	}

	if conversationID != "" {
		if _, err := r.history.Append(ctx, conversationID, ai.UserMessage(prompt)); err != nil {
			log.Error("history write failed", "error", err)
			return nil, fmt.Errorf("router: save prompt: %w", err)
		}
		if _, err := r.history.Append(ctx, conversationID, ai.AssistantMessage(resp.Content, resp.Model)); err != nil {
			log.Error("history write failed", "error", err)
			return nil, fmt.Errorf("router: save answer: %w", err)
		}
	}

	log.Debug("answered", "model", resp.Model, "history", len(history))
	return resp, nil
}

type defaultModeler interface {
	DefaultModel(p ai.Provider) string
}

func (r *Router) modelFor(p ai.Provider, model string) string {
	if model != "" {
		return model
	}
	if d, ok := r.chat.(defaultModeler); ok {
		return d.DefaultModel(p)
	}
	return ""
}

// Route is the string-only form of Ask: the answer text on success, otherwise
// the user-facing sentence for the failure. It never returns raw provider
// error text.
func (r *Router) Route(ctx context.Context, alias, prompt, conversationID string) string {
	resp, err := r.Ask(ctx, alias, prompt, conversationID)
	if err != nil {
		p, _, _ := Resolve(alias)
		return ai.UserMessageOf(err, p)
	}
	return resp.Content
}
