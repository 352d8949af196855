// Package runner executes one analysis run end to end: it resolves the server,
// fetches messages, drives the variant's pipeline, writes artifacts and reports the outcome.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/community-analyzer/internal/analysis"
	"github.com/community-analyzer/internal/community"
	"github.com/community-analyzer/internal/models"
	"github.com/community-analyzer/internal/notify"
	"github.com/community-analyzer/internal/output"
	"github.com/community-analyzer/internal/prompts"
	"github.com/community-analyzer/internal/transcript"
)

var (
	// ErrNoMessages is returned when the requested range holds no messages
	ErrNoMessages = errors.New("no messages found")

	// ErrInvalidRequest is returned for run requests that cannot be executed
	ErrInvalidRequest = errors.New("invalid run request")
)

// DataSource provides messages and author names
type DataSource interface {
	FetchMessages(ctx context.Context, serverID, channelID string, start, end time.Time) ([]models.Message, error)
	FetchUsers(ctx context.Context, userIDs []string) (models.UserDirectory, error)
}

// ReportStore persists completed runs
type ReportStore interface {
	SaveReport(ctx context.Context, report *models.Report) error
}

// Publisher announces completed runs
type Publisher interface {
	PublishRun(ctx context.Context, report *models.Report) error
}

// Runner executes analysis runs
type Runner struct {
	cfg       *models.AppConfig
	catalog   *community.Catalog
	source    DataSource
	completer analysis.Completer
	sinks     []output.Sink
	reports   ReportStore
	notifier  notify.Notifier
	publisher Publisher
	now       func() time.Time
	logger    zerolog.Logger
}

// Option configures optional collaborators
type Option func(*Runner)

// WithReportStore persists every completed run
func WithReportStore(s ReportStore) Option {
	return func(r *Runner) { r.reports = s }
}

// WithNotifier sends a digest of every completed run
func WithNotifier(n notify.Notifier) Option {
	return func(r *Runner) { r.notifier = n }
}

// WithPublisher publishes an event for every completed run
func WithPublisher(p Publisher) Option {
	return func(r *Runner) { r.publisher = p }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// New creates a new runner
func New(
	cfg *models.AppConfig,
	catalog *community.Catalog,
	source DataSource,
	completer analysis.Completer,
	sinks []output.Sink,
	logger zerolog.Logger,
	opts ...Option,
) *Runner {
	r := &Runner{
		cfg:       cfg,
		catalog:   catalog,
		source:    source,
		completer: completer,
		sinks:     sinks,
		now:       time.Now,
		logger:    logger.With().Str("component", "runner").Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Catalog returns the community catalog the runner resolves names against
func (r *Runner) Catalog() *community.Catalog {
	return r.catalog
}

// scope is a resolved run request
type scope struct {
	variant      models.Variant
	serverID     string
	serverName   string
	channelIDs   []string
	channelNames []string
	start, end   time.Time
	settings     models.VariantSettings
}

// Run executes one analysis run and returns its report
func (r *Runner) Run(ctx context.Context, req models.RunRequest) (*models.Report, error) {
	startTime := r.now()
	runID := uuid.NewString()

	sc, err := r.resolve(req)
	if err != nil {
		return nil, err
	}
	logger := r.logger.With().Str("run_id", runID).Str("variant", sc.variant.String()).Logger()

	logger.Info().
		Str("server", sc.serverName).
		Strs("channels", sc.channelNames).
		Time("start", sc.start).
		Time("end", sc.end).
		Msg("Starting analysis run")

	// Step 1: fetch messages
	messages, err := r.fetchMessages(ctx, sc)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		logger.Info().Msg("No messages in range, skipping")
		return nil, fmt.Errorf("%w for %s between %s and %s", ErrNoMessages, sc.serverName,
			sc.start.Format(time.RFC3339), sc.end.Format(time.RFC3339))
	}

	// Step 2: resolve authors
	users, err := r.source.FetchUsers(ctx, models.UniqueUserIDs(messages))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	logger.Debug().
		Int("message_count", len(messages)).
		Int("user_count", len(users)).
		Msg("Fetched messages and users")

	// Step 3: analyze and render
	report := &models.Report{
		ID:         runID,
		Variant:    sc.variant,
		ServerID:   sc.serverID,
		ServerName: sc.serverName,
		Channels:   sc.channelNames,
		StartDate:  sc.start,
		EndDate:    sc.end,
	}
	artifacts, err := r.analyze(ctx, sc, messages, users, report, logger)
	if err != nil {
		return nil, err
	}

	// Step 4: write artifacts
	for _, a := range artifacts {
		for _, sink := range r.sinks {
			location, err := sink.Write(ctx, a)
			if err != nil {
				return nil, fmt.Errorf("failed to write artifact %s: %w", a.Key, err)
			}
			report.Artifacts = append(report.Artifacts, location)
		}
	}
	report.CreatedAt = r.now().UTC()

	// Step 5: persist and announce
	if r.reports != nil {
		if err := r.reports.SaveReport(ctx, report); err != nil {
			return nil, fmt.Errorf("failed to save report: %w", err)
		}
	}
	if r.notifier != nil {
		if err := r.notifier.Notify(ctx, report); err != nil {
			logger.Warn().Err(err).Msg("Failed to send run digest")
		}
	}
	if r.publisher != nil {
		if err := r.publisher.PublishRun(ctx, report); err != nil {
			logger.Warn().Err(err).Msg("Failed to publish run event")
		}
	}

	logger.Info().
		Int("message_count", report.MessageCount).
		Int("chunk_count", report.ChunkCount).
		Int("failed_chunks", report.FailedChunks).
		Bool("consolidated", report.Consolidated).
		Strs("artifacts", report.Artifacts).
		Dur("duration", r.now().Sub(startTime)).
		Msg("Analysis run completed")

	return report, nil
}

func (r *Runner) resolve(req models.RunRequest) (scope, error) {
	variant, err := models.ParseVariant(req.Variant.String())
	if err != nil {
		return scope{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return scope{}, fmt.Errorf("%w: start and end dates are required", ErrInvalidRequest)
	}
	if req.End.Before(req.Start) {
		return scope{}, fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidRequest,
			req.End.Format(time.RFC3339), req.Start.Format(time.RFC3339))
	}

	settings := r.cfg.Settings(variant)
	if req.FailureMode != "" {
		mode, err := models.ParseFailureMode(string(req.FailureMode))
		if err != nil {
			return scope{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		settings.FailureMode = mode
	}

	serverID, err := r.catalog.ServerID(req.Server)
	if err != nil {
		return scope{}, fmt.Errorf("failed to resolve server: %w", err)
	}
	channelIDs := r.catalog.ChannelIDs(serverID, req.Channels)
	serverName, channelNames := r.catalog.Names(serverID, channelIDs)

	return scope{
		variant:      variant,
		serverID:     serverID,
		serverName:   serverName,
		channelIDs:   channelIDs,
		channelNames: channelNames,
		start:        req.Start,
		end:          req.End,
		settings:     settings,
	}, nil
}

// fetchMessages reads the whole server, or each requested channel in order
func (r *Runner) fetchMessages(ctx context.Context, sc scope) ([]models.Message, error) {
	if len(sc.channelIDs) == 0 {
		messages, err := r.source.FetchMessages(ctx, sc.serverID, "", sc.start, sc.end)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch messages: %w", err)
		}
		return messages, nil
	}

	var messages []models.Message
	for i, channelID := range sc.channelIDs {
		batch, err := r.source.FetchMessages(ctx, sc.serverID, channelID, sc.start, sc.end)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch messages for channel %s: %w", sc.channelNames[i], err)
		}
		messages = append(messages, batch...)
	}
	return messages, nil
}

func (r *Runner) analyze(
	ctx context.Context,
	sc scope,
	messages []models.Message,
	users models.UserDirectory,
	report *models.Report,
	logger zerolog.Logger,
) ([]output.Artifact, error) {
	builder := prompts.NewBuilder(r.catalog.Profile, r.catalog.ExistingTasks)
	formatter := r.formatter(sc.variant)
	h := output.Header{
		ServerName: sc.serverName,
		Channels:   sc.channelNames,
		Range:      models.DateRange{Start: sc.start, End: sc.end},
	}

	switch sc.variant {
	case models.VariantInsight:
		res, err := runPipeline(ctx, r, analysis.InsightSchema(), sc, builder, formatter, messages, users, logger)
		if err != nil {
			return nil, err
		}
		fill(report, res)
		report.Summary = res.Final.Summary
		return insightArtifacts(sc, h, res)

	case models.VariantTask:
		res, err := runPipeline(ctx, r, analysis.TaskSchema(), sc, builder, formatter, messages, users, logger)
		if err != nil {
			return nil, err
		}
		fill(report, res)
		report.Summary = fmt.Sprintf("%d tasks and %d contributions identified",
			len(res.Final.IdentifiedTasks), len(res.Final.Contributions))
		return taskArtifacts(sc, h, res, r.now())

	case models.VariantReward:
		res, err := runPipeline(ctx, r, analysis.RewardSchema(), sc, builder, formatter, messages, users, logger)
		if err != nil {
			return nil, err
		}
		fill(report, res)
		report.Summary = fmt.Sprintf("%d rewards suggested", len(res.Final.IdentifiedRewards))
		return rewardArtifacts(sc, res)
	}

	res, err := runPipeline(ctx, r, analysis.ChatSchema(), sc, builder, formatter, messages, users, logger)
	if err != nil {
		return nil, err
	}
	fill(report, res)
	report.Summary = res.Final.Summary
	return chatArtifacts(sc, h, res)
}

// formatter returns the transcript formatter of a variant; only reward transcripts name channels
func (r *Runner) formatter(v models.Variant) *transcript.Formatter {
	if v == models.VariantReward {
		return transcript.New(transcript.WithChannels(r.catalog))
	}
	return transcript.New()
}

func runPipeline[U any](
	ctx context.Context,
	r *Runner,
	schema analysis.Schema[U],
	sc scope,
	builder *prompts.Builder,
	formatter *transcript.Formatter,
	messages []models.Message,
	users models.UserDirectory,
	logger zerolog.Logger,
) (*analysis.Result[U], error) {
	cfg := analysis.Config[U]{
		Schema:            schema,
		Prompt:            builder.Analyze(sc.variant),
		ConsolidatePrompt: builder.Consolidate(sc.variant),
		ChunkSize:         sc.settings.ChunkSize,
		FailureMode:       sc.settings.FailureMode,
		Consolidate:       sc.settings.Consolidate,
		Retries:           r.cfg.InferenceRetries,
	}

	pipeline, err := analysis.NewPipeline(cfg, r.completer, formatter, logger)
	if err != nil {
		return nil, err
	}
	res, err := pipeline.Run(ctx, messages, users)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", sc.serverName, err)
	}
	return res, nil
}

func fill[U any](report *models.Report, res *analysis.Result[U]) {
	report.MessageCount = res.MessageCount
	report.ChunkCount = res.ChunkCount
	report.FailedChunks = res.FailedChunks
	report.Consolidated = res.Consolidated
}
