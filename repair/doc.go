// Package repair recovers well-formed JSON from the near-JSON text that
// generative models emit: single-quoted strings, trailing commas, missing
// separators, unquoted keys, and surrounding prose.
//
// Repair is an ordered pipeline of local textual transforms. It is total,
// deterministic, and best-effort: it normalizes syntax and never invents
// missing values. The stage order is load-bearing; see the comments on each
// stage before reordering anything.
package repair
