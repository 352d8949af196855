package analysis

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
)

// Consolidator runs the optional second inference pass over per-chunk units
type Consolidator[U any] struct {
	inference *InferenceClient[U]
	prompt    PromptFunc
	merge     func([]U) U
	logger    zerolog.Logger
}

// NewConsolidator creates a consolidator that builds its prompt from the JSON of all units
func NewConsolidator[U any](inference *InferenceClient[U], prompt PromptFunc, merge func([]U) U, logger zerolog.Logger) *Consolidator[U] {
	return &Consolidator[U]{
		inference: inference,
		prompt:    prompt,
		merge:     merge,
		logger:    logger.With().Str("component", "consolidator").Logger(),
	}
}

// Consolidate asks for one coherent unit covering all units.
// It reports false and returns the plain merge when there is nothing to
// consolidate or when the second pass fails.
func (c *Consolidator[U]) Consolidate(ctx context.Context, units []U) (U, bool) {
	if len(units) <= 1 {
		return c.merge(units), false
	}

	payload, err := json.MarshalIndent(units, "", "  ")
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to serialize units for consolidation")
		return c.merge(units), false
	}

	outcome := c.inference.Infer(ctx, c.prompt(string(payload)))
	if outcome.Fallback {
		c.logger.Warn().
			Err(outcome.Err).
			Int("unit_count", len(units)).
			Msg("Consolidation failed, falling back to merged result")
		return c.merge(units), false
	}

	// Dedup and caps still apply to what the second pass returned.
	unit := c.merge([]U{outcome.Unit})
	if span, ok := unitsSpan(units); ok {
		setSpan(&unit, span)
	}

	c.logger.Info().Int("unit_count", len(units)).Msg("Units consolidated")
	return unit, true
}
