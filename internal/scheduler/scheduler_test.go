package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/community-analyzer/internal/models"
	"github.com/community-analyzer/internal/runner"
)

type fakeRunner struct {
	mu       sync.Mutex
	requests []models.RunRequest
	err      error
	done     chan struct{}
}

func (f *fakeRunner) Run(_ context.Context, req models.RunRequest) (*models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.done != nil && len(f.requests) == 1 {
		close(f.done)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &models.Report{ID: "run-1", MessageCount: 3}, nil
}

func weekly() models.Schedule {
	return models.Schedule{
		Name:     "weekly-insights",
		Cron:     "0 9 * * MON",
		Variant:  models.VariantInsight,
		Server:   "Builders",
		Channels: []string{"all"},
		Days:     7,
	}
}

func TestNewSchedulerRejectsInvalidCron(t *testing.T) {
	sch := weekly()
	sch.Cron = "every monday"

	_, err := NewScheduler(&fakeRunner{}, []models.Schedule{sch}, "UTC", zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weekly-insights")
}

func TestNewSchedulerRejectsInvalidTimezone(t *testing.T) {
	_, err := NewScheduler(&fakeRunner{}, nil, "Mars/Olympus", zerolog.Nop())
	require.Error(t, err)
}

func TestLoadLocationDefaultsToUTC(t *testing.T) {
	loc, err := loadLocation("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestRequestWindow(t *testing.T) {
	s, err := NewScheduler(&fakeRunner{}, nil, "Europe/Moscow", zerolog.Nop())
	require.NoError(t, err)

	now := time.Date(2024, 6, 10, 6, 0, 0, 0, time.UTC)
	req := s.Request(weekly(), now)

	assert.Equal(t, models.VariantInsight, req.Variant)
	assert.Equal(t, "Builders", req.Server)
	assert.Equal(t, []string{"all"}, req.Channels)
	assert.True(t, req.End.Equal(now))
	assert.Equal(t, "Europe/Moscow", req.End.Location().String())
	assert.True(t, req.Start.Equal(now.AddDate(0, 0, -7)))

	sch := weekly()
	sch.Days = 0
	req = s.Request(sch, now)
	assert.True(t, req.Start.Equal(now.Add(-24*time.Hour)))
}

func TestRunScheduleSwallowsErrors(t *testing.T) {
	for _, err := range []error{nil, runner.ErrNoMessages, errors.New("boom")} {
		r := &fakeRunner{err: err}
		s, nerr := NewScheduler(r, nil, "UTC", zerolog.Nop())
		require.NoError(t, nerr)
		s.now = func() time.Time { return time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC) }

		s.runSchedule(context.Background(), weekly())

		require.Len(t, r.requests, 1)
		assert.Equal(t, time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC), r.requests[0].Start)
	}
}

func TestStartFiresSchedules(t *testing.T) {
	r := &fakeRunner{done: make(chan struct{})}
	sch := weekly()
	sch.Cron = "@every 1s"

	s, err := NewScheduler(r, []models.Schedule{sch}, "UTC", zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Start(ctx) }()

	select {
	case <-r.done:
	case <-time.After(5 * time.Second):
		t.Fatal("schedule did not fire")
	}

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
