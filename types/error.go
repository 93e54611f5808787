package types

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure. Every error produced by this module
// carries exactly one Kind.
type Kind string

const (
	// KindUnsupportedType - schema compilation met a type token outside the
	// supported set.
	KindUnsupportedType Kind = "unsupported_type"
	// KindParsing - raw text could not be interpreted as JSON even after one
	// repair attempt.
	KindParsing Kind = "parsing_error"
	// KindValidation - decoded JSON does not satisfy the compiled schema.
	KindValidation Kind = "validation_error"
	// KindModelProvider - the upstream generation call failed; subdivided by
	// ProviderErrorType.
	KindModelProvider Kind = "model_provider_error"
	// KindSubmission - remote job submission returned no identifier.
	KindSubmission Kind = "submission_error"
	// KindJobFailed - the remote job reported failure.
	KindJobFailed Kind = "job_failed"
	// KindTimedOut - the polling attempt budget was exhausted.
	KindTimedOut Kind = "timed_out"
)

// ProviderErrorType subdivides KindModelProvider errors.
type ProviderErrorType string

const (
	ProviderOverloaded         ProviderErrorType = "overloaded"
	ProviderRateLimit          ProviderErrorType = "rate_limit"
	ProviderContextLength      ProviderErrorType = "context_length"
	ProviderAuth               ProviderErrorType = "auth"
	ProviderServiceUnavailable ProviderErrorType = "service_unavailable"
	ProviderUnknown            ProviderErrorType = "unknown"
)

// Error is a classified failure value. It is created at the point of failure
// and never mutated afterwards; the With* builders are for construction only.
type Error struct {
	Kind      Kind              `json:"kind"`
	Message   string            `json:"message"`
	Provider  string            `json:"provider,omitempty"`
	ErrorType ProviderErrorType `json:"error_type,omitempty"`
	Field     string            `json:"field,omitempty"`
	Raw       string            `json:"raw,omitempty"`
	Repaired  string            `json:"repaired,omitempty"`
	Cause     error             `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Field, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	default:
		return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given kind and message.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WithCause adds an underlying cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithProvider sets the upstream provider name.
func (e *Error) WithProvider(provider string) *Error {
	e.Provider = provider
	return e
}

// WithErrorType sets the provider error subdivision.
func (e *Error) WithErrorType(et ProviderErrorType) *Error {
	e.ErrorType = et
	return e
}

// WithField sets the dot-separated field path of a validation failure.
func (e *Error) WithField(path string) *Error {
	e.Field = path
	return e
}

// WithRaw preserves the original unclassified text for diagnostics.
func (e *Error) WithRaw(raw string) *Error {
	e.Raw = raw
	return e
}

// WithRepaired preserves the post-repair text of a parsing failure.
func (e *Error) WithRepaired(repaired string) *Error {
	e.Repaired = repaired
	return e
}

// GetKind extracts the classification from an error, or "" when the error is
// not a *Error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is a *Error with the given kind.
func IsKind(err error, kind Kind) bool {
	return GetKind(err) == kind
}

// AsError extracts the *Error from err, or nil.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
