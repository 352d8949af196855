// Package scheduler triggers analysis runs from the cron schedules in the community catalog.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/community-analyzer/internal/models"
	"github.com/community-analyzer/internal/runner"
)

// DefaultWindowDays is the look-back window of a schedule without days set
const DefaultWindowDays = 1

// Runner executes one analysis run
type Runner interface {
	Run(ctx context.Context, req models.RunRequest) (*models.Report, error)
}

// Scheduler handles scheduled analysis runs
type Scheduler struct {
	cron      *cron.Cron
	runner    Runner
	schedules []models.Schedule
	entries   map[string]cron.EntryID
	timezone  *time.Location
	now       func() time.Time
	ctx       context.Context
	logger    zerolog.Logger
}

// NewScheduler creates a new scheduler and registers every schedule
func NewScheduler(r Runner, schedules []models.Schedule, timezone string, logger zerolog.Logger) (*Scheduler, error) {
	loc, err := loadLocation(timezone)
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		runner:    r,
		schedules: schedules,
		entries:   make(map[string]cron.EntryID, len(schedules)),
		timezone:  loc,
		now:       time.Now,
		ctx:       context.Background(),
		logger:    logger.With().Str("component", "scheduler").Logger(),
	}

	for _, sch := range schedules {
		id, err := s.cron.AddFunc(sch.Cron, func() { s.runSchedule(s.ctx, sch) })
		if err != nil {
			return nil, fmt.Errorf("invalid cron %q for schedule %s: %w", sch.Cron, sch.Name, err)
		}
		s.entries[sch.Name] = id
	}

	return s, nil
}

// Start runs the scheduler until ctx is cancelled, then waits for running jobs
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info().Int("schedules", len(s.schedules)).Msg("Starting scheduler...")

	s.ctx = ctx
	s.cron.Start()

	for _, sch := range s.schedules {
		s.logger.Info().
			Str("schedule", sch.Name).
			Str("variant", sch.Variant.String()).
			Time("next_run", s.cron.Entry(s.entries[sch.Name]).Next).
			Msg("Scheduled analysis run")
	}

	<-ctx.Done()

	s.logger.Info().Msg("Stopping scheduler, waiting for running jobs")
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("Scheduler stopped")
	return ctx.Err()
}

// Request builds the run request of a schedule for the window ending at now
func (s *Scheduler) Request(sch models.Schedule, now time.Time) models.RunRequest {
	days := sch.Days
	if days <= 0 {
		days = DefaultWindowDays
	}
	start, end := runner.Window(now, days, s.timezone)

	return models.RunRequest{
		Variant:  sch.Variant,
		Server:   sch.Server,
		Channels: sch.Channels,
		Start:    start,
		End:      end,
	}
}

// runSchedule executes one scheduled run; failures are logged, never fatal
func (s *Scheduler) runSchedule(ctx context.Context, sch models.Schedule) {
	startTime := time.Now()
	logger := s.logger.With().Str("schedule", sch.Name).Str("variant", sch.Variant.String()).Logger()
	logger.Info().Msg("Running scheduled analysis")

	report, err := s.runner.Run(ctx, s.Request(sch, s.now()))
	switch {
	case errors.Is(err, runner.ErrNoMessages):
		logger.Info().Msg("No messages for scheduled analysis, skipping")
	case err != nil:
		logger.Error().Err(err).Msg("Scheduled analysis failed")
	default:
		logger.Info().
			Str("report_id", report.ID).
			Int("message_count", report.MessageCount).
			Dur("duration", time.Since(startTime)).
			Msg("Scheduled analysis completed")
	}
}
