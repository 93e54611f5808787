// Package classify maps raw upstream provider failures onto the classified
// error taxonomy.
//
// Classification is a pure, total function over the error text: keyword rules
// are checked in a fixed priority order so exactly one fires, and every input
// yields exactly one classified error.
package classify

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/BaSui01/structcast/internal/metrics"
	"github.com/BaSui01/structcast/types"
)

// Messages surfaced per error class. The raw upstream text is preserved
// separately for diagnostics.
const (
	msgOverloaded    = "The model is currently overloaded. Please try again later."
	msgRateLimit     = "Rate limit exceeded. Please try again in a few minutes."
	msgContextLength = "Input is too long for the model's context window. Please reduce the input length."
	msgAuth          = "Authentication error with the LLM service. Please check your API key."
	msgUnavailable   = "The LLM service is temporarily unavailable. Please try again later."
	msgUnknown       = "An error occurred with the LLM service"
)

// Classify turns an upstream error message into a model_provider_error.
// The provider identity is the substring of modelIdentifier before the first
// "/" separator, or "unknown" when no separator is present.
func Classify(errorText, modelIdentifier string) *types.Error {
	provider := "unknown"
	if i := strings.Index(modelIdentifier, "/"); i >= 0 {
		provider = modelIdentifier[:i]
	}

	lower := strings.ToLower(errorText)

	errorType := types.ProviderUnknown
	message := msgUnknown
	switch {
	case strings.Contains(lower, "the model is overloaded"):
		errorType = types.ProviderOverloaded
		message = msgOverloaded
	case strings.Contains(lower, "rate limit"):
		errorType = types.ProviderRateLimit
		message = msgRateLimit
	case strings.Contains(lower, "context length") || strings.Contains(lower, "maximum token"):
		errorType = types.ProviderContextLength
		message = msgContextLength
	case strings.Contains(lower, "invalid api key") || strings.Contains(lower, "authentication"):
		errorType = types.ProviderAuth
		message = msgAuth
	case strings.Contains(lower, "bad gateway") || strings.Contains(errorText, "503"):
		errorType = types.ProviderServiceUnavailable
		message = msgUnavailable
	}

	return types.NewError(types.KindModelProvider, message).
		WithProvider(provider).
		WithErrorType(errorType).
		WithRaw(errorText)
}

// Classifier wraps Classify with logging and per-provider counters for
// long-running services. The zero value is unusable; construct with New.
type Classifier struct {
	logger    *zap.Logger
	registry  prometheus.Registerer
	collector *metrics.Collector
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger sets a custom zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics enables prometheus counters on the given registry.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Classifier) {
		c.registry = reg
	}
}

// New creates a Classifier. Without options it behaves exactly like the
// package-level Classify.
func New(opts ...Option) *Classifier {
	c := &Classifier{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry != nil {
		c.collector = metrics.NewCollector("structcast", "classify", c.registry, c.logger)
	}
	return c
}

// Classify classifies an upstream failure and records it.
func (c *Classifier) Classify(errorText, modelIdentifier string) *types.Error {
	err := Classify(errorText, modelIdentifier)
	c.collector.Classification(err.Provider, string(err.ErrorType))
	c.logger.Warn("provider error classified",
		zap.String("provider", err.Provider),
		zap.String("error_type", string(err.ErrorType)),
	)
	return err
}
