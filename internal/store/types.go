package store

import (
	"context"
	"database/sql"
	"time"
)

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type Store struct {
	db       *sql.DB
	embedder Embedder
}

// Source kinds for memory entries
const (
	SourceDailyInsight  = "daily_insight"
	SourceMonthlyReview = "monthly_review"
	SourceActivityLog   = "activity_log"
	SourceCustomNote    = "custom_note"
)

// ActivityRecord is one day of logged activity. The log service owns these
// rows; the insight pipeline only reads them. Missing numeric fields read
// as zero.
type ActivityRecord struct {
	ID                      int64
	UserID                  int64
	Date                    time.Time
	WorkHours               float64
	StudyHours              float64
	SleepHours              float64
	MoodScore               int
	GoalCompletedPercentage float64
	Notes                   string
	CreatedAt               time.Time
}

type DailyInsight struct {
	ID        int64
	UserID    int64
	Date      time.Time
	Message   string
	CreatedAt time.Time
}

type MonthlyReview struct {
	ID        int64
	UserID    int64
	Month     string // YYYY-MM
	Content   string
	CreatedAt time.Time
}

type Memory struct {
	ID        int64
	UserID    int64
	Source    string
	SourceID  int64
	Content   string
	CreatedAt time.Time
}
