package google

import (
	"strings"

	ai "github.com/spetersoncode/relay"
	"google.golang.org/genai"
)

// convertMessages maps turns onto genai contents. Assistant turns use the
// "model" role.
func convertMessages(messages []ai.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		if !msg.Sendable() {
			continue
		}
		role := "user"
		if msg.Role == ai.RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Content}},
		})
	}
	return contents
}

// extractText joins the text parts of the first candidate. A blocked prompt
// or an empty candidate yields the placeholder sentence and false.
func extractText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ai.NoTextContent(ai.ProviderGoogle), false
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	if b.Len() == 0 {
		return ai.NoTextContent(ai.ProviderGoogle), false
	}
	return b.String(), true
}
