package compare

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	ai "github.com/spetersoncode/relay"
	"github.com/spetersoncode/relay/router"
	"golang.org/x/sync/errgroup"
)

// Request is one comparison round.
type Request struct {
	Prompt         string   `json:"message"`
	Models         []string `json:"models"`
	ConversationID string   `json:"conversation_id,omitempty"`
}

// ComparisonResult is one model's outcome. Timestamp is nil when nothing was
// written for the model.
type ComparisonResult struct {
	Model     string       `json:"model"`
	Response  string       `json:"response"`
	Timestamp *string      `json:"timestamp"`
	Error     ai.ErrorKind `json:"error,omitempty"`
}

// Failed reports whether the call produced no answer.
func (r ComparisonResult) Failed() bool { return r.Error != "" }

// Result holds one result per requested model, in request order.
type Result struct {
	ConversationID string             `json:"conversation_id"`
	Results        []ComparisonResult `json:"responses"`
}

// Comparer runs comparison rounds. *Orchestrator satisfies it.
type Comparer interface {
	Compare(ctx context.Context, req Request) (*Result, error)
}

// Orchestrator fans a prompt out to several models concurrently.
type Orchestrator struct {
	chat           router.Chatter
	history        ai.HistoryStore
	logger         *slog.Logger
	maxConcurrency int
	callTimeout    time.Duration
	newID          func() string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMaxConcurrency limits how many provider calls run at once.
// Zero or negative means unlimited.
func WithMaxConcurrency(n int) Option {
	return func(o *Orchestrator) { o.maxConcurrency = n }
}

// WithCallTimeout bounds each provider call. Zero disables the bound.
func WithCallTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.callTimeout = d }
}

// New creates an Orchestrator.
func New(chat router.Chatter, history ai.HistoryStore, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		chat:    chat,
		history: history,
		logger:  slog.Default(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.With("component", "compare")
	return o
}

// Compare sends req.Prompt to every model in req.Models and waits for all of
// them. The prompt is written to history once, then history is read once and
// the same snapshot goes to every call. Each successful call appends its own
// answer tagged with the model id as requested.
//
// Only validation and history failures are returned as errors. Provider
// failures, unknown models, and panics inside a call become results.
func (o *Orchestrator) Compare(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ai.NewInvalidRequestError("Message is required")
	}
	if len(req.Models) == 0 {
		return nil, ai.NewInvalidRequestError("At least one model must be specified")
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = o.newID()
	}
	log := o.logger.With("conversation_id", conversationID)

	if _, err := o.history.Append(ctx, conversationID, ai.UserMessage(req.Prompt)); err != nil {
		return nil, fmt.Errorf("compare: save prompt: %w", err)
	}
	snapshot, err := o.history.History(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("compare: load history: %w", err)
	}

	results := make([]ComparisonResult, len(req.Models))
	g, gCtx := errgroup.WithContext(ctx)
	if o.maxConcurrency > 0 {
		g.SetLimit(o.maxConcurrency)
	}

	start := time.Now()
	for i, modelID := range req.Models {
		g.Go(func() error {
			// Unique index per goroutine, no mutex needed
			results[i] = o.compareOne(gCtx, log, conversationID, modelID, snapshot)
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	log.Info("comparison complete", "models", len(req.Models), "failed", failed, "duration", time.Since(start))

	return &Result{ConversationID: conversationID, Results: results}, nil
}

func (o *Orchestrator) compareOne(ctx context.Context, log *slog.Logger, conversationID, modelID string, snapshot []ai.Message) (result ComparisonResult) {
	result.Model = modelID
	log = log.With("model", modelID)

	p, model, ok := router.ResolveModel(modelID)
	if !ok {
		log.Info("unknown model")
		result.Response = "Unknown model: " + modelID
		result.Error = ai.KindUnsupportedModel
		return result
	}

	defer func() {
		if v := recover(); v != nil {
			log.Error("provider call panicked", "panic", v)
			result.Response = ai.FailureMessage(ai.KindInternal, p)
			result.Error = ai.KindInternal
			result.Timestamp = nil
		}
	}()

	callCtx := ctx
	if o.callTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, o.callTimeout)
		defer cancel()
	}

	var opts []ai.Option
	if model != "" {
		opts = append(opts, ai.WithModel(model))
	}

	resp, err := o.chat.Chat(callCtx, p, snapshot, opts...)
	if err != nil {
		log.Warn("provider call failed", "provider", p, "kind", ai.KindOf(err), "error", err)
		result.Response = ai.UserMessageOf(err, p)
		result.Error = ai.KindOf(err)
		return result
	}

	result.Response = resp.Content
	ts, err := o.history.Append(ctx, conversationID, ai.AssistantMessage(resp.Content, modelID))
	if err != nil {
		log.Error("history write failed", "error", err)
		return result
	}
	result.Timestamp = &ts
	return result
}
