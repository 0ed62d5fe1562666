package relay

import "time"

// Role represents the author of a message in a conversation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// TimestampLayout is the fixed-width UTC layout used for message timestamps.
// Lexical order of formatted values matches chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// FormatTimestamp formats t with TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Message represents a single turn in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	// Model names the model that produced an assistant turn. Empty for user turns.
	Model string `json:"model,omitempty"`
	// Timestamp is assigned by the history store when the message is written.
	Timestamp string `json:"timestamp,omitempty"`
}

// UserMessage creates a user turn.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage creates an assistant turn produced by model.
func AssistantMessage(content, model string) Message {
	return Message{Role: RoleAssistant, Content: content, Model: model}
}

// Sendable reports whether the message may be forwarded to a provider.
func (m Message) Sendable() bool {
	return m.Content != ""
}

// WithPrompt returns history followed by the prompt as a new user turn.
// The input slice is never modified.
func WithPrompt(history []Message, prompt string) []Message {
	out := make([]Message, 0, len(history)+1)
	out = append(out, history...)
	return append(out, UserMessage(prompt))
}

// Response represents a normalized answer from a chat provider.
type Response struct {
	Content  string   `json:"content"`
	Model    string   `json:"model,omitempty"`
	Provider Provider `json:"provider,omitempty"`
	// NoText is set when the provider returned no textual content and Content
	// holds the placeholder sentence instead.
	NoText bool `json:"noText,omitempty"`
}

// NoTextContent returns the placeholder answer used when a provider replies without text.
func NoTextContent(p Provider) string {
	return p.DisplayName() + " did not return any text content."
}
