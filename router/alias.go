package router

import (
	"strings"

	ai "github.com/spetersoncode/relay"
)

// target is what an alias resolves to. An empty model means the family default.
type target struct {
	provider ai.Provider
	model    string
}

// aliases maps lower-cased caller aliases to provider families.
var aliases = map[string]target{
	"openai":       {ai.ProviderOpenAI, ""},
	"gpt":          {ai.ProviderOpenAI, ""},
	"gpt-4":        {ai.ProviderOpenAI, "gpt-4"},
	"gpt-4o":       {ai.ProviderOpenAI, "gpt-4o"},
	"gpt-4.1":      {ai.ProviderOpenAI, "gpt-4.1"},
	"gpt-4.1-mini": {ai.ProviderOpenAI, "gpt-4.1-mini"},
	"gpt-4.1-nano": {ai.ProviderOpenAI, "gpt-4.1-nano"},

	"claude":     {ai.ProviderAnthropic, ""},
	"claude-3":   {ai.ProviderAnthropic, ""},
	"claude-3-5": {ai.ProviderAnthropic, ""},

	"gemini":           {ai.ProviderGoogle, ""},
	"gemini-2.0-flash": {ai.ProviderGoogle, "gemini-2.0-flash"},
	"gemini-2.5-flash": {ai.ProviderGoogle, "gemini-2.5-flash"},
	"gemini-2.5-pro":   {ai.ProviderGoogle, "gemini-2.5-pro"},
}

// Resolve maps an alias to its provider family and concrete model.
// Matching is case-insensitive. Family aliases such as "gpt" or "claude"
// return an empty model, meaning the provider's configured default.
func Resolve(alias string) (ai.Provider, string, bool) {
	t, ok := aliases[strings.ToLower(alias)]
	if !ok {
		return "", "", false
	}
	return t.provider, t.model, true
}

// Aliases returns the known aliases for p in no particular order.
func Aliases(p ai.Provider) []string {
	var result []string
	for name, t := range aliases {
		if t.provider == p {
			result = append(result, name)
		}
	}
	return result
}

// familyMarkers are checked in order against lower-cased model ids.
var familyMarkers = []struct {
	marker   string
	provider ai.Provider
}{
	{"gpt", ai.ProviderOpenAI},
	{"claude", ai.ProviderAnthropic},
	{"gemini", ai.ProviderGoogle},
}

// ResolveFamily picks a provider family by substring of a model id,
// so dated or unlisted model names still reach the right provider.
func ResolveFamily(modelID string) (ai.Provider, bool) {
	id := strings.ToLower(modelID)
	for _, f := range familyMarkers {
		if strings.Contains(id, f.marker) {
			return f.provider, true
		}
	}
	return "", false
}

// ResolveModel resolves a model id for direct dispatch. Known aliases resolve
// through the alias table; any other id containing a family marker is passed
// through unchanged.
func ResolveModel(modelID string) (ai.Provider, string, bool) {
	if p, model, ok := Resolve(modelID); ok {
		return p, model, true
	}
	p, ok := ResolveFamily(modelID)
	if !ok {
		return "", "", false
	}
	return p, modelID, true
}
