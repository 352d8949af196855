// Package analysis implements the chunked analysis pipeline: per-chunk inference,
// defensive decoding, first-write-wins aggregation and optional consolidation.
package analysis

import "context"

// Completer sends a prompt to a text-inference backend and returns its raw reply
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a function to the Completer interface
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f(ctx, prompt)
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
