package classify

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/BaSui01/structcast/types"
)

var knownErrorTypes = map[types.ProviderErrorType]bool{
	types.ProviderOverloaded:         true,
	types.ProviderRateLimit:          true,
	types.ProviderContextLength:      true,
	types.ProviderAuth:               true,
	types.ProviderServiceUnavailable: true,
	types.ProviderUnknown:            true,
}

// Classification is total: every input yields exactly one classified error
// with a known error type and never panics.
func TestProperty_ClassifyIsTotal(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("every input maps to one known classification", prop.ForAll(
		func(errorText, model string) bool {
			err := Classify(errorText, model)
			if err == nil {
				return false
			}
			if err.Kind != types.KindModelProvider {
				return false
			}
			if !knownErrorTypes[err.ErrorType] {
				return false
			}
			return err.Raw == errorText
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.Property("provider is the prefix before the first separator", prop.ForAll(
		func(model string) bool {
			err := Classify("some failure", model)
			if i := strings.Index(model, "/"); i >= 0 {
				return err.Provider == model[:i]
			}
			return err.Provider == "unknown"
		},
		gen.AnyString(),
	))

	properties.Property("rate limit phrase always classifies as rate_limit absent an overload phrase", prop.ForAll(
		func(prefix, suffix string) bool {
			text := prefix + " rate limit " + suffix
			if strings.Contains(strings.ToLower(text), "the model is overloaded") {
				return true // overload outranks by priority; skip
			}
			return Classify(text, "openai/gpt-4o").ErrorType == types.ProviderRateLimit
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
