package openai

import (
	"github.com/openai/openai-go"
	ai "github.com/spetersoncode/relay"
)

// convertMessages maps turns onto chat completion messages with inline string content.
func convertMessages(messages []ai.Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		if !msg.Sendable() {
			continue
		}
		switch msg.Role {
		case ai.RoleAssistant:
			result = append(result, openai.AssistantMessage(msg.Content))
		default:
			result = append(result, openai.UserMessage(msg.Content))
		}
	}
	return result
}

// extractText returns the first choice's content, or the placeholder sentence
// and false when the completion carries no text.
func extractText(resp *openai.ChatCompletion) (string, bool) {
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return ai.NoTextContent(ai.ProviderOpenAI), false
	}
	return resp.Choices[0].Message.Content, true
}
