package anthropic

// ChatModel represents an Anthropic Claude model.
type ChatModel string

const (
	Claude35SonnetLatest ChatModel = "claude-3-5-sonnet-latest"
	Claude35HaikuLatest  ChatModel = "claude-3-5-haiku-latest"
	Claude37SonnetLatest ChatModel = "claude-3-7-sonnet-latest"
	ClaudeSonnet4        ChatModel = "claude-sonnet-4-0"

	// DefaultChatModel is used when neither the client nor the request names a model.
	DefaultChatModel ChatModel = Claude35SonnetLatest
)

// String returns the model identifier string.
func (m ChatModel) String() string { return string(m) }
