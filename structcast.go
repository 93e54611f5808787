// Package structcast coerces untrusted, free-form model output into values
// that satisfy a JSON-Schema-shaped contract declared at configuration time,
// or fails with a precise, classified error.
//
// Usage:
//
//	import "github.com/BaSui01/structcast"
//
//	compiled, err := structcast.Compile(doc)
//	resolver := structcast.NewResolver()
//	value, err := resolver.Resolve(compiled, rawModelOutput)
//
// This is a thin wrapper over the schema, resolve, classify, and poll
// packages. Use this package when you prefer the shorter import path; drop
// down to the subpackages for metrics, logging, and tuning options.
package structcast

import (
	"github.com/BaSui01/structcast/classify"
	"github.com/BaSui01/structcast/config"
	"github.com/BaSui01/structcast/poll"
	"github.com/BaSui01/structcast/repair"
	"github.com/BaSui01/structcast/resolve"
	"github.com/BaSui01/structcast/schema"
	"github.com/BaSui01/structcast/types"
)

// Error is the classified error every operation returns on failure.
type Error = types.Error

// Kind classifies a failure.
type Kind = types.Kind

// Compile turns a schema document into an immutable StructuralType tree.
var Compile = schema.Compile

// ParseSchema deserializes a schema document from JSON.
var ParseSchema = schema.FromJSON

// Repair applies the textual repair pipeline to near-JSON text.
var Repair = repair.Repair

// Decode parses raw text as JSON with one repair attempt on failure.
var Decode = resolve.Decode

// Classify maps an upstream provider failure onto the error taxonomy.
var Classify = classify.Classify

// GetKind extracts the classification from an error.
var GetKind = types.GetKind

// NewResolver creates an output resolver with default settings.
func NewResolver(opts ...resolve.Option) *resolve.Resolver {
	return resolve.NewResolver(opts...)
}

// NewResolverFromConfig creates a resolver whose logger and degrade policy
// follow a loaded configuration.
func NewResolverFromConfig(cfg *config.Config, opts ...resolve.Option) (*resolve.Resolver, error) {
	logger, err := cfg.Log.BuildLogger()
	if err != nil {
		return nil, err
	}
	configured := []resolve.Option{resolve.WithLogger(logger)}
	if cfg.Resolve.DegradeToEmpty {
		configured = append(configured, resolve.WithDegradeToEmpty())
	}
	return resolve.NewResolver(append(configured, opts...)...), nil
}

// NewPoller creates a job poller with the default bounds.
func NewPoller(opts ...poll.Option) *poll.Poller {
	return poll.New(opts...)
}

// NewPollerFromConfig creates a job poller bounded by a loaded configuration.
func NewPollerFromConfig(cfg *config.Config, opts ...poll.Option) *poll.Poller {
	bounds := poll.WithConfig(poll.Config{
		BaseDelay:   cfg.Poll.BaseDelay,
		MaxDelay:    cfg.Poll.MaxDelay,
		MaxAttempts: cfg.Poll.MaxAttempts,
	})
	return poll.New(append([]poll.Option{bounds}, opts...)...)
}
