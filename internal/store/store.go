package store

import (
	"context"
	"time"

	ai "github.com/spetersoncode/relay"
)

// Conversation summarizes a stored conversation.
type Conversation struct {
	ID            string `json:"conversation_id"`
	CreatedAt     string `json:"created_at"`
	MessageCount  int    `json:"message_count"`
	LastMessageAt string `json:"last_message_at,omitempty"`
}

// Store is a conversation store. Implementations are safe for concurrent use
// and serialize their own writes.
type Store interface {
	ai.HistoryStore

	// Conversations lists every conversation, most recently active first.
	Conversations(ctx context.Context) ([]Conversation, error)

	// Delete removes a conversation and its messages.
	// It reports whether the conversation existed.
	Delete(ctx context.Context, conversationID string) (bool, error)

	// Cleanup removes conversations created more than olderThan ago,
	// together with their messages, and returns how many were removed.
	Cleanup(ctx context.Context, olderThan time.Duration) (int, error)

	// Close releases resources. Further calls return ErrClosed.
	Close() error
}

// Option configures a store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces the time source used for timestamps and cleanup cutoffs.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func applyOptions(opts ...Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// stamp returns the message timestamp, assigning one from now when unset.
func stamp(msg ai.Message, now func() time.Time) string {
	if msg.Timestamp != "" {
		return msg.Timestamp
	}
	return ai.FormatTimestamp(now())
}
