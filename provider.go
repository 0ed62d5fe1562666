package relay

// Provider identifies an AI provider family.
type Provider string

// String returns the provider identifier.
func (p Provider) String() string { return string(p) }

// Supported providers.
const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogle    Provider = "google"
)

// Providers lists every supported provider in a stable order.
var Providers = []Provider{ProviderOpenAI, ProviderAnthropic, ProviderGoogle}

// DisplayName returns the name used in user-facing messages.
func (p Provider) DisplayName() string {
	switch p {
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderAnthropic:
		return "Claude"
	case ProviderGoogle:
		return "Gemini"
	default:
		return string(p)
	}
}

// CredentialEnv returns the environment variable holding the provider's API key.
func (p Provider) CredentialEnv() string {
	switch p {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderGoogle:
		return "GEMINI_API_KEY"
	default:
		return ""
	}
}
