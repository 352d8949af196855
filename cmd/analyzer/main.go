package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/community-analyzer/internal/api"
	"github.com/community-analyzer/internal/config"
	"github.com/community-analyzer/internal/models"
	"github.com/community-analyzer/internal/runner"
	"github.com/community-analyzer/internal/scheduler"
)

const usage = `Usage:
  analyzer run   -variant chat|insight|task|reward -server NAME [-channels a,b|all] [-start DATE] [-end DATE] [-days N] [-failure-mode strict|lenient]
  analyzer serve`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	logger := setupLogger(cfg.LogLevel, cfg.Environment)
	logger.Info().
		Str("environment", cfg.Environment).
		Str("timezone", cfg.Timezone).
		Str("data_source", cfg.DataSource).
		Msg("Starting community analyzer")

	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch os.Args[1] {
	case "run":
		err = runCommand(ctx, cfg, logger, os.Args[2:])
	case "serve":
		err = serveCommand(ctx, cfg, logger)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("Analyzer stopped with error")
	}
}

// runCommand executes a single analysis run
func runCommand(ctx context.Context, cfg *models.AppConfig, logger zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	variant := fs.String("variant", "chat", "analysis variant: chat, insight, task or reward")
	server := fs.String("server", "", "server name or ID")
	channels := fs.String("channels", "", "comma-separated channel names or IDs, or all")
	start := fs.String("start", "", "start date (YYYY-MM-DD or RFC 3339)")
	end := fs.String("end", "", "end date (YYYY-MM-DD or RFC 3339), defaults to now")
	days := fs.Int("days", 7, "look-back window in days when -start is not set")
	failureMode := fs.String("failure-mode", "", "override the configured failure mode: strict or lenient")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *server == "" {
		return fmt.Errorf("-server is required")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("failed to load timezone %s: %w", cfg.Timezone, err)
	}

	v, err := models.ParseVariant(*variant)
	if err != nil {
		return err
	}
	req := models.RunRequest{
		Variant:     v,
		Server:      *server,
		Channels:    splitList(*channels),
		FailureMode: models.FailureMode(*failureMode),
	}

	req.Start, req.End = runner.Window(time.Now(), *days, loc)
	if *end != "" {
		if req.End, err = runner.ParseDate(*end, true, loc); err != nil {
			return err
		}
	}
	if *start != "" {
		if req.Start, err = runner.ParseDate(*start, false, loc); err != nil {
			return err
		}
	} else if *end != "" {
		req.Start = req.End.AddDate(0, 0, -*days)
	}

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.runner.Run(ctx, req)
	if err != nil {
		return err
	}

	logger.Info().
		Str("report_id", report.ID).
		Strs("artifacts", report.Artifacts).
		Msg("Analysis written")
	return nil
}

// serveCommand runs the HTTP API and the cron scheduler until a termination signal arrives
func serveCommand(ctx context.Context, cfg *models.AppConfig, logger zerolog.Logger) error {
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	sched, err := scheduler.NewScheduler(a.runner, a.catalog.Schedules, cfg.Timezone, logger)
	if err != nil {
		return err
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("failed to load timezone %s: %w", cfg.Timezone, err)
	}
	server := api.NewServer(cfg.APIPort, a.runner, a.catalog, loc, logger)

	// Start scheduler in background
	schedDone := make(chan struct{})
	go func() {
		defer close(schedDone)
		if err := sched.Start(ctx); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("Scheduler stopped with error")
		}
	}()

	logger.Info().Int("port", cfg.APIPort).Msg("Analyzer is running. Press Ctrl+C to stop.")

	err = server.Start(ctx)
	logger.Info().Msg("Initiating graceful shutdown...")

	// Give running jobs some time to finish
	select {
	case <-schedDone:
		logger.Info().Msg("Graceful shutdown completed")
	case <-time.After(30 * time.Second):
		logger.Warn().Msg("Shutdown timeout exceeded, scheduled runs may be lost")
	}

	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// setupLogger configures and returns a zerolog logger
func setupLogger(level, environment string) zerolog.Logger {
	// Parse log level
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	// Configure output format
	var logger zerolog.Logger
	if environment == "development" {
		// Pretty console output for development
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Caller().Logger()
	} else {
		// JSON output for production
		logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	return logger
}
