package poll

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/structcast/types"
)

func TestGroup_IndependentOutcomes(t *testing.T) {
	p, _ := newTestPoller(t)
	g := NewGroup(p)

	completed := Job{
		Submit: func(_ context.Context, _ Params) (string, error) { return "ok-job", nil },
		Status: func(_ context.Context, _ string) (StatusResponse, error) {
			return StatusResponse{Status: StatusCompleted, Data: "payload"}, nil
		},
	}
	failed := Job{
		Submit: func(_ context.Context, _ Params) (string, error) { return "bad-job", nil },
		Status: func(_ context.Context, _ string) (StatusResponse, error) {
			return StatusResponse{Status: StatusFailed, Error: "boom"}, nil
		},
	}
	unsubmittable := Job{
		Submit: func(_ context.Context, _ Params) (string, error) { return "", nil },
		Status: func(_ context.Context, _ string) (StatusResponse, error) {
			return StatusResponse{Status: StatusCompleted}, nil
		},
	}

	results := g.Run(context.Background(), []Job{completed, failed, unsubmittable})
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, "payload", results[0].Data)

	assert.True(t, types.IsKind(results[1].Err, types.KindJobFailed))
	assert.True(t, types.IsKind(results[2].Err, types.KindSubmission))
}

func TestGroup_ManyConcurrentJobs(t *testing.T) {
	p := New(WithConfig(Config{
		BaseDelay:   time.Millisecond,
		MaxDelay:    2 * time.Millisecond,
		MaxAttempts: 5,
	}))
	g := NewGroup(p)
	g.Limit = 4

	jobs := make([]Job, 16)
	for i := range jobs {
		id := fmt.Sprintf("job-%d", i)
		jobs[i] = Job{
			Submit: func(_ context.Context, _ Params) (string, error) { return id, nil },
			Status: func(_ context.Context, gotID string) (StatusResponse, error) {
				// Each job sees only its own identifier.
				if gotID != id {
					return StatusResponse{}, fmt.Errorf("handle mixup: %s != %s", gotID, id)
				}
				return StatusResponse{Status: StatusCompleted, Data: gotID}, nil
			},
		}
	}

	results := g.Run(context.Background(), jobs)
	require.Len(t, results, 16)
	for i, res := range results {
		require.NoError(t, res.Err)
		assert.Equal(t, fmt.Sprintf("job-%d", i), res.Data)
	}
}

func TestGroup_Empty(t *testing.T) {
	p, _ := newTestPoller(t)
	results := NewGroup(p).Run(context.Background(), nil)
	assert.Empty(t, results)
}
