package google

import (
	"errors"

	ai "github.com/spetersoncode/relay"
	"google.golang.org/genai"
)

// errorRules classify Gemini failures by the text of the SDK error.
var errorRules = []ai.Rule{
	{Kind: ai.KindUnauthenticated, Substrings: []string{"API_KEY_INVALID"}},
	{Kind: ai.KindUnauthenticated, Substrings: []string{"invalid", "key"}, MatchAll: true, Fold: true},
	{Kind: ai.KindQuotaExceeded, Substrings: []string{"RESOURCE_EXHAUSTED"}},
}

// wrapError wraps a Google GenAI error as a classified *ai.Error.
// genai.APIError is returned by value, so the status code is read from a value target.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	e := ai.NewError(ai.Classify(errorRules, err), ai.ProviderGoogle, err)
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		e.Code = apiErr.Code
	}
	return e
}
