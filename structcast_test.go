package structcast

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/structcast/config"
	"github.com/BaSui01/structcast/poll"
	"github.com/BaSui01/structcast/types"
)

func TestFacade_EndToEndResolution(t *testing.T) {
	doc, err := ParseSchema([]byte(`{
		"type": "object",
		"properties": {
			"answer": {"type": "string"},
			"confidence": {"type": "number"}
		},
		"required": ["answer"]
	}`))
	require.NoError(t, err)

	compiled, err := Compile(doc)
	require.NoError(t, err)

	resolver := NewResolver()

	t.Run("near-JSON model output", func(t *testing.T) {
		got, err := resolver.Resolve(compiled, `{'answer': 'yes', 'confidence': 0.9,}`)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"answer": "yes", "confidence": 0.9}, got)
	})

	t.Run("contract violation", func(t *testing.T) {
		_, err := resolver.Resolve(compiled, `{"confidence": 0.9}`)
		require.Error(t, err)
		assert.Equal(t, types.KindValidation, GetKind(err))
	})
}

func TestFacade_Classify(t *testing.T) {
	err := Classify("Rate limit exceeded", "openai/gpt-4o")
	assert.Equal(t, types.KindModelProvider, err.Kind)
	assert.Equal(t, types.ProviderRateLimit, err.ErrorType)
	assert.Equal(t, "openai", err.Provider)
}

func TestFacade_Repair(t *testing.T) {
	assert.Equal(t, "{}", Repair(""))
}

func TestFacade_NewResolverFromConfig(t *testing.T) {
	doc, err := ParseSchema([]byte(`{
		"type": "object",
		"properties": {"x": {"type": "integer"}},
		"required": ["x"]
	}`))
	require.NoError(t, err)
	compiled, err := Compile(doc)
	require.NoError(t, err)

	t.Run("degrade policy applies", func(t *testing.T) {
		cfg, err := config.Parse([]byte("resolve:\n  degrade_to_empty: true\n"))
		require.NoError(t, err)

		r, err := NewResolverFromConfig(cfg)
		require.NoError(t, err)

		got, err := r.Resolve(compiled, `{}`)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{}, got)
	})

	t.Run("strict by default", func(t *testing.T) {
		cfg, err := config.Parse(nil)
		require.NoError(t, err)

		r, err := NewResolverFromConfig(cfg)
		require.NoError(t, err)

		_, err = r.Resolve(compiled, `{}`)
		require.Error(t, err)
		assert.Equal(t, types.KindValidation, GetKind(err))
	})
}

func TestFacade_NewPollerFromConfig(t *testing.T) {
	cfg, err := config.Parse([]byte("poll:\n  base_delay: 1ms\n  max_delay: 2ms\n  max_attempts: 2\n"))
	require.NoError(t, err)

	p := NewPollerFromConfig(cfg)

	submit := func(_ context.Context, _ poll.Params) (string, error) { return "job-1", nil }
	status := func(_ context.Context, _ string) (poll.StatusResponse, error) {
		return poll.StatusResponse{Status: poll.StatusPending}, nil
	}

	start := time.Now()
	_, err = p.Run(context.Background(), submit, status, nil)
	require.Error(t, err)
	assert.Equal(t, types.KindTimedOut, GetKind(err))
	assert.Less(t, time.Since(start), time.Second, "configured bounds must apply")
}
