package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ErrInferenceFailed wraps errors returned by the completer itself
var ErrInferenceFailed = errors.New("inference call failed")

// maxLoggedResponse bounds how much of a bad reply ends up in the logs
const maxLoggedResponse = 500

// Outcome is the result of one inference call.
// When Fallback is set, Unit is the schema's fallback and Err holds the cause.
type Outcome[U any] struct {
	Unit     U
	Fallback bool
	Err      error
}

// InferenceClient turns prompts into validated units of one variant.
// It is stateless and never retries.
type InferenceClient[U any] struct {
	completer Completer
	schema    Schema[U]
	logger    zerolog.Logger
}

// NewInferenceClient creates a new inference client for a schema
func NewInferenceClient[U any](completer Completer, schema Schema[U], logger zerolog.Logger) *InferenceClient[U] {
	return &InferenceClient[U]{
		completer: completer,
		schema:    schema,
		logger:    logger.With().Str("component", "inference").Str("variant", schema.Variant.String()).Logger(),
	}
}

// Infer sends prompt to the completer and decodes the reply.
// Cancellation, completer errors and invalid replies all produce a fallback outcome.
func (c *InferenceClient[U]) Infer(ctx context.Context, prompt string) Outcome[U] {
	startTime := time.Now()

	if err := ctx.Err(); err != nil {
		return c.fallback(fmt.Errorf("%w: %w", ErrInferenceFailed, err))
	}

	response, err := c.completer.Complete(ctx, prompt)
	if err != nil {
		return c.fallback(fmt.Errorf("%w: %w", ErrInferenceFailed, err))
	}

	unit, err := c.schema.Decode(StripCodeFences(response))
	if err != nil {
		c.logger.Debug().
			Str("response", truncate(response, maxLoggedResponse)).
			Msg("Raw response that failed validation")
		return c.fallback(err)
	}

	c.logger.Debug().
		Int("prompt_length", len(prompt)).
		Int("response_length", len(response)).
		Dur("duration", time.Since(startTime)).
		Msg("Inference succeeded")

	return Outcome[U]{Unit: unit}
}

func (c *InferenceClient[U]) fallback(err error) Outcome[U] {
	c.logger.Warn().Err(err).Msg("Inference failed, using fallback unit")

	unit := c.schema.Fallback()
	normalize(&unit)
	return Outcome[U]{Unit: unit, Fallback: true, Err: err}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
