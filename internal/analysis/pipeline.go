package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/community-analyzer/internal/chunk"
	"github.com/community-analyzer/internal/models"
	"github.com/community-analyzer/internal/transcript"
)

// ErrStrictFailure is returned when a chunk fails in strict mode
var ErrStrictFailure = errors.New("chunk analysis failed in strict mode")

// PromptFunc renders the prompt for a transcript or, for consolidation, a JSON payload
type PromptFunc func(input string) string

// State is a step of a pipeline run
type State int

const (
	StateChunking State = iota
	StatePerChunkInference
	StateAggregating
	StateConsolidating
	StateDone
)

func (s State) String() string {
	switch s {
	case StateChunking:
		return "chunking"
	case StatePerChunkInference:
		return "per_chunk_inference"
	case StateAggregating:
		return "aggregating"
	case StateConsolidating:
		return "consolidating"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// MaxRetries bounds Config.Retries; the backoff doubles per attempt
const MaxRetries = 10

// Config is everything one pipeline run needs to know about its variant
type Config[U any] struct {
	Schema            Schema[U]
	Prompt            PromptFunc
	ConsolidatePrompt PromptFunc
	ChunkSize         int
	FailureMode       models.FailureMode
	Consolidate       bool

	// Retries is the number of extra inference attempts per chunk; zero disables retrying
	Retries      int
	RetryBackoff time.Duration
}

func (c Config[U]) validate() error {
	if c.ChunkSize < 1 {
		return fmt.Errorf("%w: got %d", chunk.ErrInvalidSize, c.ChunkSize)
	}
	if c.Prompt == nil {
		return fmt.Errorf("prompt is required")
	}
	if c.Schema.Fallback == nil || c.Schema.Merge == nil {
		return fmt.Errorf("schema for %q is incomplete", c.Schema.Variant)
	}
	if c.Consolidate && c.ConsolidatePrompt == nil {
		return fmt.Errorf("consolidation prompt is required when consolidation is enabled")
	}
	switch c.FailureMode {
	case models.FailureLenient, models.FailureStrict:
	default:
		return fmt.Errorf("unknown failure mode %q", c.FailureMode)
	}
	if c.Retries < 0 || c.Retries > MaxRetries {
		return fmt.Errorf("retries must be between 0 and %d, got %d", MaxRetries, c.Retries)
	}
	return nil
}

// Result is the outcome of one pipeline run
type Result[U any] struct {
	Variant      models.Variant
	Units        []U // one per chunk, in chunk order
	Aggregate    U
	Final        U // consolidated unit when Consolidated, otherwise Aggregate
	Consolidated bool
	MessageCount int
	ChunkCount   int
	FailedChunks int
	DateRange    models.DateRange
	States       []State
}

// Pipeline sequences chunking, per-chunk inference, aggregation and consolidation
type Pipeline[U any] struct {
	cfg          Config[U]
	inference    *InferenceClient[U]
	consolidator *Consolidator[U]
	formatter    *transcript.Formatter
	logger       zerolog.Logger
}

// NewPipeline creates a new pipeline for one variant
func NewPipeline[U any](cfg Config[U], completer Completer, formatter *transcript.Formatter, logger zerolog.Logger) (*Pipeline[U], error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline config: %w", err)
	}
	if formatter == nil {
		formatter = transcript.New()
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = time.Second
	}

	logger = logger.With().Str("component", "pipeline").Str("variant", cfg.Schema.Variant.String()).Logger()
	inference := NewInferenceClient(completer, cfg.Schema, logger)

	p := &Pipeline[U]{
		cfg:       cfg,
		inference: inference,
		formatter: formatter,
		logger:    logger,
	}
	if cfg.Consolidate {
		p.consolidator = NewConsolidator(inference, cfg.ConsolidatePrompt, cfg.Schema.Merge, logger)
	}
	return p, nil
}

// Run analyzes messages chunk by chunk, in order.
// In lenient mode it always returns a result; in strict mode the first failed chunk aborts the run.
func (p *Pipeline[U]) Run(ctx context.Context, messages []models.Message, users models.UserDirectory) (*Result[U], error) {
	startTime := time.Now()
	result := &Result[U]{
		Variant:      p.cfg.Schema.Variant,
		MessageCount: len(messages),
		DateRange:    models.SpanOf(messages),
	}

	result.States = append(result.States, StateChunking)
	chunks, err := chunk.Split(messages, p.cfg.ChunkSize)
	if err != nil {
		return nil, fmt.Errorf("failed to chunk messages: %w", err)
	}
	result.ChunkCount = len(chunks)

	p.logger.Info().
		Int("message_count", len(messages)).
		Int("chunk_count", len(chunks)).
		Int("chunk_size", p.cfg.ChunkSize).
		Str("failure_mode", string(p.cfg.FailureMode)).
		Msg("Starting analysis")

	result.States = append(result.States, StatePerChunkInference)
	result.Units = make([]U, 0, len(chunks))
	for i, c := range chunks {
		p.logger.Debug().
			Int("chunk", i+1).
			Int("chunk_count", len(chunks)).
			Int("message_count", len(c)).
			Msg("Processing chunk")

		outcome := p.analyzeChunk(ctx, c, users)
		if outcome.Fallback {
			result.FailedChunks++
			if p.cfg.FailureMode == models.FailureStrict {
				p.logger.Error().
					Err(outcome.Err).
					Int("chunk", i+1).
					Msg("Chunk failed in strict mode, aborting run")
				return nil, fmt.Errorf("%w: chunk %d of %d: %w", ErrStrictFailure, i+1, len(chunks), outcome.Err)
			}
		}

		unit := outcome.Unit
		setSpan(&unit, models.SpanOf(c))
		result.Units = append(result.Units, unit)
	}

	result.States = append(result.States, StateAggregating)
	result.Aggregate = p.cfg.Schema.Merge(result.Units)
	result.Final = result.Aggregate

	if p.consolidator != nil && len(result.Units) > 1 {
		result.States = append(result.States, StateConsolidating)
		if unit, ok := p.consolidator.Consolidate(ctx, result.Units); ok {
			result.Final = unit
			result.Consolidated = true
		}
	}

	result.States = append(result.States, StateDone)

	p.logger.Info().
		Int("chunk_count", result.ChunkCount).
		Int("failed_chunks", result.FailedChunks).
		Bool("consolidated", result.Consolidated).
		Dur("duration", time.Since(startTime)).
		Msg("Analysis completed")

	return result, nil
}

// analyzeChunk runs inference for one chunk, retrying with exponential backoff when configured
func (p *Pipeline[U]) analyzeChunk(ctx context.Context, c []models.Message, users models.UserDirectory) Outcome[U] {
	prompt := p.cfg.Prompt(p.formatter.Format(c, users))

	var outcome Outcome[U]
	for attempt := 0; attempt <= p.cfg.Retries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * p.cfg.RetryBackoff
			p.logger.Warn().
				Int("attempt", attempt+1).
				Dur("backoff", backoff).
				Msg("Retrying chunk inference")

			select {
			case <-ctx.Done():
				return outcome
			case <-time.After(backoff):
			}
		}

		outcome = p.inference.Infer(ctx, prompt)
		if !outcome.Fallback {
			return outcome
		}
	}
	return outcome
}
