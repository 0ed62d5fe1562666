package openai

// ChatModel represents an OpenAI chat model.
type ChatModel string

const (
	GPT4      ChatModel = "gpt-4"
	GPT4o     ChatModel = "gpt-4o"
	GPT41     ChatModel = "gpt-4.1"
	GPT41Mini ChatModel = "gpt-4.1-mini"
	GPT41Nano ChatModel = "gpt-4.1-nano"

	// DefaultChatModel is used when neither the client nor the request names a model.
	DefaultChatModel ChatModel = GPT41Mini
)

// String returns the model identifier string.
func (m ChatModel) String() string { return string(m) }
