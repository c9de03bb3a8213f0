package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bowerhall/cadence/internal/insight"
	"github.com/bowerhall/cadence/internal/logger"
	"github.com/bowerhall/cadence/internal/store"
)

// RunMonthly generates one structured review per eligible user for the
// current calendar month. Same containment rules as RunDaily: only failures
// outside the owner loop trigger the whole-job retry.
func (r *Runner) RunMonthly(ctx context.Context) error {
	now := r.now().In(r.timezone)
	first, last := monthRange(now)
	month := now.Format("2006-01")

	logger.Info("monthly review job starting",
		"month", month,
		"from", first.Format("2006-01-02"),
		"to", last.Format("2006-01-02"))

	owners, err := r.store.OwnersWithLogsBetween(first, last)
	if err != nil {
		return fmt.Errorf("list owners: %w", err)
	}

	for _, userID := range owners {
		r.processMonthlyOwner(ctx, userID, month, first, last)
	}

	logger.Info("monthly review job completed", "owners", len(owners))
	return nil
}

func (r *Runner) processMonthlyOwner(ctx context.Context, userID int64, month string, first, last time.Time) {
	exists, err := r.store.HasMonthlyReview(userID, month)
	if err != nil {
		logger.Error("review existence check failed", "user", userID, "error", err)
		return
	}
	if exists {
		logger.Debug("review already exists, skipping", "user", userID)
		return
	}

	logs, err := r.store.LogsBetween(userID, first, last)
	if err != nil {
		logger.Error("failed to fetch month logs", "user", userID, "error", err)
		return
	}
	if len(logs) == 0 {
		logger.Debug("no logs in month, skipping", "user", userID)
		return
	}

	timeline := buildTimeline(logs)

	// never fails: malformed model output collapses into the fallback record
	review := r.generator.MonthlyReview(ctx, userID, month, timeline)

	content, err := json.Marshal(review)
	if err != nil {
		logger.Error("failed to encode review", "user", userID, "error", err)
		return
	}

	id, created, err := r.store.InsertMonthlyReview(userID, month, string(content))
	if err != nil {
		logger.Error("failed to save review", "user", userID, "error", err)
		return
	}
	if !created {
		logger.Info("review written by a concurrent run, skipping", "user", userID)
		return
	}

	if err := r.store.SaveMemory(ctx, userID, store.SourceMonthlyReview, id, insight.Summary(review)); err != nil {
		logger.Warn("failed to store embedding", "user", userID, "error", err)
	}

	logger.Info("review saved", "user", userID)
}

// monthRange returns the first and last calendar date of t's month.
func monthRange(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}

func buildTimeline(logs []store.ActivityRecord) []insight.TimelineDay {
	timeline := make([]insight.TimelineDay, 0, len(logs))
	for _, l := range logs {
		timeline = append(timeline, insight.TimelineDay{
			Date:           l.Date.Format("2006-01-02"),
			WorkHours:      l.WorkHours,
			StudyHours:     l.StudyHours,
			SleepHours:     l.SleepHours,
			MoodScore:      l.MoodScore,
			GoalCompletion: l.GoalCompletedPercentage,
		})
	}
	return timeline
}
