package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/bowerhall/cadence/internal/config"
	"github.com/bowerhall/cadence/internal/insight"
	"github.com/bowerhall/cadence/internal/logger"
	"github.com/bowerhall/cadence/internal/store"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Notifier pushes a freshly generated message to a chat. Delivery is
// best-effort and never affects persisted artifacts.
type Notifier interface {
	Send(chatID int64, message string) error
}

// Runner owns the two calendar-driven jobs. Jobs run to completion
// sequentially per invocation; concurrent duplicate triggers are arbitrated
// by the storage uniqueness constraints, not by in-process locking.
type Runner struct {
	store        *store.Store
	generator    *insight.Generator
	notifier     Notifier
	notifyChatID int64
	timezone     *time.Location
	cfg          config.JobsConfig
	cron         *cron.Cron
	now          func() time.Time
}

func NewRunner(st *store.Store, gen *insight.Generator, tz *time.Location, cfg config.JobsConfig) *Runner {
	return &Runner{
		store:     st,
		generator: gen,
		timezone:  tz,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (r *Runner) SetNotifier(n Notifier, chatID int64) {
	r.notifier = n
	r.notifyChatID = chatID
}

// Start registers both jobs with the scheduler and returns. Job bodies run
// on the cron goroutine pool, never on the caller.
func (r *Runner) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(r.timezone))

	if _, err := c.AddFunc(r.cfg.DailySchedule, func() {
		r.runWithRetry(ctx, "daily motivation", r.cfg.DailyRetryDelay, r.RunDaily)
	}); err != nil {
		return fmt.Errorf("invalid daily schedule: %w", err)
	}

	if _, err := c.AddFunc(r.cfg.MonthlySchedule, func() {
		r.runWithRetry(ctx, "monthly review", r.cfg.MonthlyRetryDelay, r.RunMonthly)
	}); err != nil {
		return fmt.Errorf("invalid monthly schedule: %w", err)
	}

	c.Start()
	r.cron = c

	logger.Info("job scheduler started",
		"daily", r.cfg.DailySchedule,
		"monthly", r.cfg.MonthlySchedule,
		"timezone", r.timezone.String())

	return nil
}

func (r *Runner) Stop() {
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
}

// runWithRetry retries a whole job on unexpected failure, up to the
// configured bound with a fixed delay. Per-owner failures are contained
// inside the job body and never reach here, so already-succeeded owners are
// not reprocessed on retry.
func (r *Runner) runWithRetry(ctx context.Context, name string, delay time.Duration, fn func(context.Context) error) {
	runID := uuid.New().String()[:8]

	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return
		}

		logger.Error("job failed", "job", name, "run", runID, "attempt", attempt+1, "error", err)

		if attempt >= r.cfg.MaxRetries {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}
