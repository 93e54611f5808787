// Package poll drives long-running remote jobs to a terminal state.
//
// A job is submitted once, then its status is polled with exponential
// backoff up to a fixed attempt budget. Every run ends in exactly one of
// completed, failed, or timed out. The backoff wait selects on the caller's
// context, so abandoning a poll stops the local waiting without touching the
// remote job.
package poll
