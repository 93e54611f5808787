package poll

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Job pairs the submit/status functions of one remote job with its
// submission parameters.
type Job struct {
	Submit SubmitFunc
	Status StatusFunc
	Params Params
}

// Result is the terminal outcome of one job in a group run.
type Result struct {
	Data any
	Err  error
}

// Group runs several independent jobs concurrently over one Poller. Jobs
// share nothing; one job's failure never cancels another's wait.
type Group struct {
	poller *Poller
	// Limit caps concurrent jobs; zero means no cap.
	Limit int
}

// NewGroup creates a Group over the given poller.
func NewGroup(p *Poller) *Group {
	return &Group{poller: p}
}

// Run drives all jobs to a terminal state and returns one Result per job,
// index-aligned with the input.
func (g *Group) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))

	var eg errgroup.Group
	if g.Limit > 0 {
		eg.SetLimit(g.Limit)
	}
	for i, job := range jobs {
		i, job := i, job
		eg.Go(func() error {
			data, err := g.poller.Run(ctx, job.Submit, job.Status, job.Params)
			results[i] = Result{Data: data, Err: err}
			return nil
		})
	}
	// Errors are reported per job; Wait only synchronizes.
	_ = eg.Wait()
	return results
}
