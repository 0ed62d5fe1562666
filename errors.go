package relay

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched with errors.Is against *Error values of the same kind.
var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrUnsupportedModel = errors.New("unsupported model")
)

// ErrorKind classifies provider and routing failures.
type ErrorKind string

const (
	// KindUnconfigured indicates no credential is configured for the provider.
	KindUnconfigured ErrorKind = "unconfigured"

	// KindUnauthenticated indicates the provider rejected the credential.
	KindUnauthenticated ErrorKind = "unauthenticated"

	// KindQuotaExceeded indicates the account ran out of quota.
	KindQuotaExceeded ErrorKind = "quota_exceeded"

	// KindInternal covers every provider failure no rule recognizes.
	KindInternal ErrorKind = "internal"

	// KindUnsupportedModel indicates the model alias or id is not recognized.
	KindUnsupportedModel ErrorKind = "unsupported_model"

	// KindInvalidRequest indicates the caller supplied unusable input.
	KindInvalidRequest ErrorKind = "invalid_request"
)

// Error is a classified failure. Its Error text may contain raw provider detail;
// use UserMessage for anything shown to an end user.
type Error struct {
	Kind     ErrorKind
	Provider Provider
	Model    string // model or alias involved, if any
	Code     int    // HTTP status code, 0 if not applicable
	Msg      string
	Cause    error
}

// Error returns the error message.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Provider != "" {
		b.WriteString(" (")
		b.WriteString(string(e.Provider))
		b.WriteString(")")
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the package sentinels against the error kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidRequest:
		return e.Kind == KindInvalidRequest
	case ErrUnsupportedModel:
		return e.Kind == KindUnsupportedModel
	}
	return false
}

// UserMessage returns the sentence shown to end users for this error.
// It never includes the cause text.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindUnsupportedModel:
		return fmt.Sprintf("Model '%s' not supported yet.", e.Model)
	case KindInvalidRequest:
		if e.Msg != "" {
			return e.Msg
		}
		return "Invalid request."
	default:
		return FailureMessage(e.Kind, e.Provider)
	}
}

// FailureMessage returns the constant user-facing sentence for a provider failure kind.
// An empty provider yields a provider-neutral internal error sentence.
func FailureMessage(kind ErrorKind, p Provider) string {
	name := p.DisplayName()
	switch kind {
	case KindUnconfigured:
		return fmt.Sprintf("%s API key not configured. Please set %s in .env.", name, p.CredentialEnv())
	case KindUnauthenticated:
		return name + " is not available right now (invalid or missing API key)."
	case KindQuotaExceeded:
		return name + " is not available right now (insufficient quota on the backend)."
	default:
		if p == "" {
			return "The request failed due to an internal error. Please try again later."
		}
		return name + " is currently unavailable due to an internal error. Please try again later."
	}
}

// NewError creates a classified provider error.
func NewError(kind ErrorKind, p Provider, cause error) *Error {
	return &Error{Kind: kind, Provider: p, Cause: cause}
}

// NewInvalidRequestError creates an invalid_request error with a user-facing message.
func NewInvalidRequestError(msg string) *Error {
	return &Error{Kind: KindInvalidRequest, Msg: msg}
}

// NewUnsupportedModelError creates an unsupported_model error for the given alias.
func NewUnsupportedModelError(model string) *Error {
	return &Error{Kind: KindUnsupportedModel, Model: model}
}

// KindOf returns the kind of a classified error.
// Unclassified errors report KindInternal; nil reports the empty kind.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind returns true if err is classified as kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// UserMessageOf returns the user-facing sentence for err.
// Unclassified errors are reported as internal failures of p.
func UserMessageOf(err error, p Provider) string {
	var e *Error
	if errors.As(err, &e) {
		return e.UserMessage()
	}
	return FailureMessage(KindInternal, p)
}

// Rule maps substrings of a raw error's text to an ErrorKind.
type Rule struct {
	Kind       ErrorKind
	Substrings []string
	// MatchAll requires every substring instead of any one of them.
	MatchAll bool
	// Fold compares case-insensitively.
	Fold bool
}

// Match reports whether text satisfies the rule.
func (r Rule) Match(text string) bool {
	if len(r.Substrings) == 0 {
		return false
	}
	if r.Fold {
		text = strings.ToLower(text)
	}
	for _, s := range r.Substrings {
		if r.Fold {
			s = strings.ToLower(s)
		}
		found := strings.Contains(text, s)
		if found && !r.MatchAll {
			return true
		}
		if !found && r.MatchAll {
			return false
		}
	}
	return r.MatchAll
}

// Classify applies rules in order to err's text and returns the first match.
// Errors matching no rule are KindInternal.
func Classify(rules []Rule, err error) ErrorKind {
	if err == nil {
		return ""
	}
	text := err.Error()
	for _, r := range rules {
		if r.Match(text) {
			return r.Kind
		}
	}
	return KindInternal
}
