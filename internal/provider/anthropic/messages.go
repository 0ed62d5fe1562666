package anthropic

import (
	"github.com/anthropics/anthropic-sdk-go"
	ai "github.com/spetersoncode/relay"
)

// convertMessages maps turns onto messages whose content is a list of typed text blocks.
func convertMessages(messages []ai.Message) []anthropic.MessageParam {
	result := make([]anthropic.MessageParam, 0, len(messages))
	for _, msg := range messages {
		// Anthropic rejects empty text blocks
		if !msg.Sendable() {
			continue
		}
		switch msg.Role {
		case ai.RoleAssistant:
			result = append(result, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}
	return result
}

// extractText returns the first text block, or the placeholder sentence and
// false when the reply has none.
func extractText(resp *anthropic.Message) (string, bool) {
	if resp != nil {
		for _, block := range resp.Content {
			if block.Type == "text" && block.Text != "" {
				return block.Text, true
			}
		}
	}
	return ai.NoTextContent(ai.ProviderAnthropic), false
}
