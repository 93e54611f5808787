// Package types defines the classified error model shared by every stage of
// the output-resolution pipeline.
//
// A failure anywhere in the pipeline is reported as a *types.Error with a
// fixed Kind, a human-readable message, and the diagnostic payload the stage
// had on hand (raw text, repaired text, field path, provider identity).
// Raw upstream failures never escape unclassified.
package types
