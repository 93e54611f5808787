package resolve

import (
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/BaSui01/structcast/internal/metrics"
	"github.com/BaSui01/structcast/schema"
	"github.com/BaSui01/structcast/types"
)

// Resolver validates decoded output against compiled contracts. It holds no
// per-call state; one Resolver is safe for concurrent use.
type Resolver struct {
	logger    *zap.Logger
	registry  prometheus.Registerer
	collector *metrics.Collector
	degrade   bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets a custom zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics enables prometheus counters on the given registry.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(r *Resolver) {
		r.registry = reg
	}
}

// WithDegradeToEmpty makes Resolve degrade every failure to an empty object
// instead of returning the classified error, as ResolveOrEmpty does per call.
// This is a caller policy for non-fatal pipelines, never the default.
func WithDegradeToEmpty() Option {
	return func(r *Resolver) {
		r.degrade = true
	}
}

// NewResolver creates a Resolver. Without options it logs nowhere and
// records no metrics.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry != nil {
		r.collector = metrics.NewCollector("structcast", "resolve", r.registry, r.logger)
	}
	return r
}

// Resolve decodes raw text and validates it against the compiled type,
// returning the validated value or a classified error. Parsing failures
// propagate unchanged from the decoder; validation failures name the
// offending dot-separated field path. A resolver built with
// WithDegradeToEmpty swallows the failure and returns an empty object.
func (r *Resolver) Resolve(compiled *schema.StructuralType, raw string) (any, error) {
	out, err := r.resolve(compiled, raw)
	if err != nil && r.degrade {
		r.logger.Warn("degrading failed resolution to empty result", zap.Error(err))
		return map[string]any{}, nil
	}
	return out, err
}

func (r *Resolver) resolve(compiled *schema.StructuralType, raw string) (any, error) {
	value, repaired, err := decode(raw)
	if repaired {
		r.collector.Repair()
	}
	if err != nil {
		r.collector.ParseFailure()
		r.collector.Resolution(string(types.KindParsing))
		r.logger.Warn("output unparseable after repair", zap.Error(err))
		return nil, err
	}

	out, verr := validate(compiled, value, "")
	if verr != nil {
		r.collector.Resolution(string(types.KindValidation))
		r.logger.Warn("output failed contract validation",
			zap.String("field", verr.Field),
			zap.String("reason", verr.Message),
		)
		return nil, verr
	}

	r.collector.Resolution("ok")
	return out, nil
}

// ResolveOrEmpty degrades to an empty object instead of failing. This is a
// caller policy for non-fatal contexts, never the default: the classified
// error is logged and counted, then swallowed.
func (r *Resolver) ResolveOrEmpty(compiled *schema.StructuralType, raw string) any {
	out, err := r.resolve(compiled, raw)
	if err != nil {
		r.logger.Warn("degrading failed resolution to empty result", zap.Error(err))
		return map[string]any{}
	}
	return out
}

// validate walks the decoded value against the compiled type. It returns the
// value in its declared shape, or the first failure with its field path.
func validate(t *schema.StructuralType, value any, path string) (any, *types.Error) {
	if t == nil {
		return value, nil
	}

	switch t.Kind {
	case schema.KindAny, schema.KindNull:
		return value, nil

	case schema.KindString:
		s, ok := value.(string)
		if !ok {
			return nil, mismatch(t.Kind, value, path)
		}
		return s, nil

	case schema.KindBoolean:
		b, ok := value.(bool)
		if !ok {
			return nil, mismatch(t.Kind, value, path)
		}
		return b, nil

	case schema.KindFloat:
		f, ok := value.(float64)
		if !ok {
			return nil, mismatch(t.Kind, value, path)
		}
		return f, nil

	case schema.KindInteger:
		f, ok := value.(float64)
		if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
			return nil, mismatch(t.Kind, value, path)
		}
		return int64(f), nil

	case schema.KindArray:
		arr, ok := value.([]any)
		if !ok {
			return nil, mismatch(t.Kind, value, path)
		}
		out := make([]any, len(arr))
		for i, elem := range arr {
			v, err := validate(t.Elem, elem, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case schema.KindObject:
		obj, ok := value.(map[string]any)
		if !ok {
			return nil, mismatch(t.Kind, value, path)
		}
		out := make(map[string]any, len(t.Fields))
		for _, field := range t.Fields {
			fv, present := obj[field.Name]
			if !present {
				if field.Required {
					return nil, types.NewError(types.KindValidation, "missing required field").
						WithField(joinPath(path, field.Name))
				}
				// Optional and absent stays absent; no zero-value defaulting.
				continue
			}
			v, err := validate(field.Type, fv, joinPath(path, field.Name))
			if err != nil {
				return nil, err
			}
			out[field.Name] = v
		}
		return out, nil

	default:
		return nil, types.NewError(types.KindValidation,
			fmt.Sprintf("unknown compiled kind %q", t.Kind)).WithField(path)
	}
}

func mismatch(want schema.TypeKind, got any, path string) *types.Error {
	return types.NewError(types.KindValidation,
		fmt.Sprintf("expected %s, got %s", want, jsonTypeName(got))).WithField(path)
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
