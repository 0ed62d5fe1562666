package anthropic

import (
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	ai "github.com/spetersoncode/relay"
)

// errorRules classify Anthropic failures by the text of the SDK error.
var errorRules = []ai.Rule{
	{Kind: ai.KindUnauthenticated, Substrings: []string{"authentication_error", "invalid x-api-key"}},
	{Kind: ai.KindQuotaExceeded, Substrings: []string{"credit balance is too low"}},
}

// wrapError wraps an Anthropic SDK error as a classified *ai.Error.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	e := ai.NewError(ai.Classify(errorRules, err), ai.ProviderAnthropic, err)
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		e.Code = apiErr.StatusCode
	}
	return e
}
