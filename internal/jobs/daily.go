package jobs

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/bowerhall/cadence/internal/insight"
	"github.com/bowerhall/cadence/internal/logger"
	"github.com/bowerhall/cadence/internal/store"
)

// recentLogWindow is how many of a user's latest logs feed the motivation
// context.
const recentLogWindow = 5

// RunDaily generates one motivational message per eligible user for today.
// Per-owner failures are logged and skipped; only errors outside the owner
// loop surface, triggering the whole-job retry.
func (r *Runner) RunDaily(ctx context.Context) error {
	today := r.now().In(r.timezone)
	logger.Info("daily motivation job starting", "date", today.Format("2006-01-02"))

	owners, err := r.store.OwnersWithLogs()
	if err != nil {
		return fmt.Errorf("list owners: %w", err)
	}

	for _, userID := range owners {
		r.processDailyOwner(ctx, userID, today)
	}

	logger.Info("daily motivation job completed", "owners", len(owners))
	return nil
}

func (r *Runner) processDailyOwner(ctx context.Context, userID int64, today time.Time) {
	// cheap fast path; the insert conflict below is the source of truth
	exists, err := r.store.HasDailyInsight(userID, today)
	if err != nil {
		logger.Error("insight existence check failed", "user", userID, "error", err)
		return
	}
	if exists {
		logger.Debug("motivation already exists, skipping", "user", userID)
		return
	}

	logs, err := r.store.RecentLogs(userID, recentLogWindow)
	if err != nil {
		logger.Error("failed to fetch recent logs", "user", userID, "error", err)
		return
	}
	if len(logs) == 0 {
		logger.Debug("no logs, skipping", "user", userID)
		return
	}

	rc := buildRecentContext(logs)

	message, err := r.generator.DailyMotivation(ctx, userID, rc)
	if err != nil {
		logger.Error("motivation generation failed", "user", userID, "error", err)
		return
	}

	id, created, err := r.store.InsertDailyInsight(userID, today, message)
	if err != nil {
		logger.Error("failed to save motivation", "user", userID, "error", err)
		return
	}
	if !created {
		logger.Info("motivation written by a concurrent run, skipping", "user", userID)
		return
	}

	if err := r.store.SaveMemory(ctx, userID, store.SourceDailyInsight, id, message); err != nil {
		logger.Warn("failed to store embedding", "user", userID, "error", err)
	}

	if r.notifier != nil {
		if err := r.notifier.Send(r.notifyChatID, message); err != nil {
			logger.Warn("failed to deliver motivation", "user", userID, "error", err)
		}
	}

	logger.Info("motivation saved", "user", userID)
}

// buildRecentContext aggregates up to recentLogWindow logs, newest first.
func buildRecentContext(logs []store.ActivityRecord) insight.RecentContext {
	var mood, sleep, work, study float64
	for _, l := range logs {
		mood += float64(l.MoodScore)
		sleep += l.SleepHours
		work += l.WorkHours
		study += l.StudyHours
	}

	n := float64(len(logs))

	return insight.RecentContext{
		MissedYesterday: logs[0].GoalCompletedPercentage < 100,
		AvgMood:         round2(mood / n),
		AvgSleepHours:   round2(sleep / n),
		AvgWorkHours:    round2(work / n),
		AvgStudyHours:   round2(study / n),
		ConsistencyDays: len(logs),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
