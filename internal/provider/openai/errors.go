package openai

import (
	"errors"

	"github.com/openai/openai-go"
	ai "github.com/spetersoncode/relay"
)

// errorRules classify OpenAI failures by the text of the SDK error.
var errorRules = []ai.Rule{
	{Kind: ai.KindUnauthenticated, Substrings: []string{"invalid_api_key", "Incorrect API key"}},
	{Kind: ai.KindQuotaExceeded, Substrings: []string{"insufficient_quota", "You exceeded your current quota"}},
}

// wrapError wraps an OpenAI SDK error as a classified *ai.Error.
// The HTTP status code is kept when the SDK reports one.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	e := ai.NewError(ai.Classify(errorRules, err), ai.ProviderOpenAI, err)
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		e.Code = apiErr.StatusCode
	}
	return e
}
