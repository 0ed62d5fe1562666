package google

// ChatModel represents a Google Gemini chat model.
type ChatModel string

const (
	Gemini20Flash     ChatModel = "gemini-2.0-flash"
	Gemini25Pro       ChatModel = "gemini-2.5-pro"
	Gemini25Flash     ChatModel = "gemini-2.5-flash"
	Gemini25FlashLite ChatModel = "gemini-2.5-flash-lite"

	// DefaultChatModel is used when neither the client nor the request names a model.
	DefaultChatModel ChatModel = Gemini20Flash
)

// String returns the model identifier string.
func (m ChatModel) String() string { return string(m) }
