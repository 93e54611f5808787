package poll

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/BaSui01/structcast/internal/metrics"
	"github.com/BaSui01/structcast/types"
)

// Status is a remote job state as reported by the status service.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusPending   Status = "pending"
)

// StatusResponse is the minimal shape the status service must expose.
type StatusResponse struct {
	Status Status `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Params carries the submission parameters of a job.
type Params map[string]any

// SubmitFunc submits a job and returns its remote identifier.
type SubmitFunc func(ctx context.Context, params Params) (string, error)

// StatusFunc reads the current remote status of a submitted job.
type StatusFunc func(ctx context.Context, id string) (StatusResponse, error)

// Handle identifies a submitted job. It is created on successful submission
// and goes out of scope once a terminal status has been reported.
type Handle struct {
	// ID is the remote job identifier.
	ID string
	// TrackingID correlates log lines for one local wait.
	TrackingID string
	// Params are the submission parameters, kept for diagnostics.
	Params Params
}

// Config bounds the polling loop.
type Config struct {
	// BaseDelay is the wait before the second poll; attempt i waits
	// min(BaseDelay * 2^i, MaxDelay).
	BaseDelay time.Duration
	// MaxDelay caps the exponential backoff.
	MaxDelay time.Duration
	// MaxAttempts is the poll budget; exhausting it yields timed_out.
	MaxAttempts int
}

// DefaultConfig returns the default polling bounds.
func DefaultConfig() Config {
	return Config{
		BaseDelay:   2 * time.Second,
		MaxDelay:    60 * time.Second,
		MaxAttempts: 30,
	}
}

// Poller runs the submit/poll/backoff state machine. Pollers hold no shared
// mutable state; one Poller may drive any number of independent jobs.
type Poller struct {
	cfg       Config
	logger    *zap.Logger
	registry  prometheus.Registerer
	collector *metrics.Collector

	// sleep is swapped out in tests to observe the backoff schedule.
	sleep func(ctx context.Context, d time.Duration) error
}

// Option configures a Poller.
type Option func(*Poller)

// WithConfig overrides the default polling bounds.
func WithConfig(cfg Config) Option {
	return func(p *Poller) {
		p.cfg = cfg
	}
}

// WithLogger sets a custom zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Poller) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMetrics enables prometheus counters on the given registry.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(p *Poller) {
		p.registry = reg
	}
}

// New creates a Poller with the default bounds.
func New(opts ...Option) *Poller {
	p := &Poller{
		cfg:    DefaultConfig(),
		logger: zap.NewNop(),
		sleep:  ctxSleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.cfg.BaseDelay <= 0 {
		p.cfg.BaseDelay = 2 * time.Second
	}
	if p.cfg.MaxDelay <= 0 {
		p.cfg.MaxDelay = 60 * time.Second
	}
	if p.cfg.MaxAttempts <= 0 {
		p.cfg.MaxAttempts = 30
	}
	if p.registry != nil {
		p.collector = metrics.NewCollector("structcast", "poll", p.registry, p.logger)
	}
	return p
}

// Submit submits a job and returns its handle. A submission that yields no
// identifier is a submission_error.
func (p *Poller) Submit(ctx context.Context, submit SubmitFunc, params Params) (*Handle, error) {
	id, err := submit(ctx, params)
	if err != nil {
		return nil, types.NewError(types.KindSubmission, "job submission failed").WithCause(err)
	}
	if id == "" {
		return nil, types.NewError(types.KindSubmission, "no job identifier returned by submission")
	}

	handle := &Handle{ID: id, TrackingID: uuid.NewString(), Params: params}
	p.logger.Debug("job submitted",
		zap.String("job_id", handle.ID),
		zap.String("tracking_id", handle.TrackingID),
	)
	return handle, nil
}

// Wait polls the job until a terminal state. It returns the remote data on
// completion, a job_failed error with the remote reason on failure, or a
// timed_out error once the attempt budget is exhausted. Cancelling ctx
// abandons the local wait; the remote job itself is not cancelled.
func (p *Poller) Wait(ctx context.Context, handle *Handle, status StatusFunc) (any, error) {
	for attempt := 0; attempt < p.cfg.MaxAttempts; attempt++ {
		p.collector.PollAttempt()
		resp, err := status(ctx, handle.ID)
		if err != nil {
			p.collector.PollOutcome(string(types.KindJobFailed))
			return nil, types.NewError(types.KindJobFailed, "job status check failed").WithCause(err)
		}

		switch resp.Status {
		case StatusCompleted:
			p.collector.PollOutcome(string(StatusCompleted))
			p.logger.Debug("job completed",
				zap.String("job_id", handle.ID),
				zap.Int("attempts", attempt+1),
			)
			return resp.Data, nil

		case StatusFailed:
			reason := resp.Error
			if reason == "" {
				reason = "Unknown error"
			}
			p.collector.PollOutcome(string(StatusFailed))
			return nil, types.NewError(types.KindJobFailed,
				fmt.Sprintf("remote job failed: %s", reason)).WithRaw(reason)
		}

		// Pending. Back off before the next poll unless the budget is spent.
		if attempt == p.cfg.MaxAttempts-1 {
			break
		}
		delay := p.backoff(attempt)
		p.logger.Debug("job pending",
			zap.String("job_id", handle.ID),
			zap.String("tracking_id", handle.TrackingID),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
		)
		if err := p.sleep(ctx, delay); err != nil {
			return nil, fmt.Errorf("polling abandoned: %w", err)
		}
	}

	p.collector.PollOutcome(string(types.KindTimedOut))
	p.logger.Warn("job polling budget exhausted",
		zap.String("job_id", handle.ID),
		zap.Int("attempts", p.cfg.MaxAttempts),
	)
	return nil, types.NewError(types.KindTimedOut, "job did not complete within the attempt budget")
}

// Run submits a job and waits for its terminal state.
func (p *Poller) Run(ctx context.Context, submit SubmitFunc, status StatusFunc, params Params) (any, error) {
	handle, err := p.Submit(ctx, submit, params)
	if err != nil {
		return nil, err
	}
	return p.Wait(ctx, handle, status)
}

// backoff computes the wait after 0-indexed attempt i: min(base * 2^i, cap).
func (p *Poller) backoff(attempt int) time.Duration {
	delay := p.cfg.BaseDelay
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= p.cfg.MaxDelay {
			return p.cfg.MaxDelay
		}
	}
	if delay > p.cfg.MaxDelay {
		return p.cfg.MaxDelay
	}
	return delay
}

// ctxSleep waits for d or until ctx is done, whichever comes first.
func ctxSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
