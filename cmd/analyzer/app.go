package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/community-analyzer/internal/community"
	"github.com/community-analyzer/internal/events"
	"github.com/community-analyzer/internal/llm"
	"github.com/community-analyzer/internal/models"
	"github.com/community-analyzer/internal/notify"
	"github.com/community-analyzer/internal/output"
	"github.com/community-analyzer/internal/pgstore"
	"github.com/community-analyzer/internal/ratelimit"
	"github.com/community-analyzer/internal/runner"
	"github.com/community-analyzer/internal/storage"
)

// dataStore is a message source that also keeps reports
type dataStore interface {
	runner.DataSource
	runner.ReportStore
}

// app holds the wired runner and everything that must be closed on exit
type app struct {
	runner  *runner.Runner
	catalog *community.Catalog
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// newApp wires every collaborator from configuration
func newApp(ctx context.Context, cfg *models.AppConfig, logger zerolog.Logger) (*app, error) {
	a := &app{}

	// Community catalog
	catalog, err := community.Load(cfg.CommunityConfig)
	if err != nil {
		return nil, err
	}
	a.catalog = catalog
	logger.Info().
		Str("community", catalog.Profile.Name).
		Int("servers", len(catalog.Servers)).
		Int("schedules", len(catalog.Schedules)).
		Msg("Community catalog loaded")

	// Data source
	store, err := newDataStore(ctx, cfg, logger, a)
	if err != nil {
		a.Close()
		return nil, err
	}

	// LLM client
	logger.Info().Str("model", cfg.GeminiModel).Msg("Initializing Gemini LLM client...")
	llmClient, err := llm.NewClient(cfg.GeminiAPIKey, llm.Options{
		Model:       cfg.GeminiModel,
		Timeout:     cfg.GeminiTimeout,
		Temperature: cfg.LLMTemperature,
		TopP:        cfg.LLMTopP,
		TopK:        cfg.LLMTopK,
		MaxTokens:   cfg.LLMMaxTokens,
		JSON:        true,
	}, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}
	a.closers = append(a.closers, func() {
		if err := llmClient.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close LLM client")
		}
	})
	completer := ratelimit.NewLimiter(llmClient, cfg.LLMRequestsPerMinute, logger)

	// Output sinks
	sinks := []output.Sink{output.NewFileSink(cfg.OutputDir)}
	if cfg.S3Endpoint != "" {
		s3Sink, err := output.NewS3Sink(output.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			UseSSL:    cfg.S3UseSSL,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create s3 sink: %w", err)
		}
		sinks = append(sinks, s3Sink)
		logger.Info().Str("bucket", cfg.S3Bucket).Msg("S3 output enabled")
	}

	opts := []runner.Option{runner.WithReportStore(store)}

	// Notifications
	var notifiers notify.Multi
	if cfg.TelegramToken != "" {
		telegram, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, cfg.Environment == "development", logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		notifiers = append(notifiers, telegram)
	}
	if cfg.SlackToken != "" {
		notifiers = append(notifiers, notify.NewSlack(cfg.SlackToken, cfg.SlackChannel, logger))
	}
	if len(notifiers) > 0 {
		opts = append(opts, runner.WithNotifier(notifiers))
	}

	// Events
	if cfg.NATSURL != "" {
		publisher, err := events.NewPublisher(cfg.NATSURL, cfg.NATSToken, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, publisher.Close)
		opts = append(opts, runner.WithPublisher(publisher))
	}

	a.runner = runner.New(cfg, catalog, store, completer, sinks, logger, opts...)
	return a, nil
}

func newDataStore(ctx context.Context, cfg *models.AppConfig, logger zerolog.Logger, a *app) (dataStore, error) {
	if cfg.DataSource == "postgres" {
		logger.Info().Msg("Connecting to Postgres...")
		store, err := pgstore.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		logger.Info().Msg("Postgres connection successful")
		return store, nil
	}

	logger.Info().Msg("Initializing Supabase client...")
	client, err := storage.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseTimeout, cfg.UserCacheSize, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to supabase: %w", err)
	}
	logger.Info().Msg("Supabase connection successful")
	return client, nil
}
