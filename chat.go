package relay

import "context"

// ChatProvider defines the interface for provider adapters.
type ChatProvider interface {
	// Provider identifies the provider family the adapter speaks to.
	Provider() Provider

	// Chat sends the conversation and returns the first textual answer.
	// Messages with empty content are dropped before translation.
	// Failures are returned as *Error values.
	Chat(ctx context.Context, messages []Message, opts ...Option) (*Response, error)
}

// HistoryStore is the conversation store consumed by the router and orchestrator.
// Implementations serialize their own writes.
type HistoryStore interface {
	// History returns the conversation's messages in ascending write order.
	// Unknown conversations yield an empty slice.
	History(ctx context.Context, conversationID string) ([]Message, error)

	// Append writes a message, creating the conversation if needed,
	// and returns the stored timestamp.
	Append(ctx context.Context, conversationID string, msg Message) (string, error)
}
