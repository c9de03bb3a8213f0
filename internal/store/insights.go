package store

import (
	"database/sql"
	"time"
)

// InsertDailyInsight persists one generated motivation for (user, date).
// The uniqueness constraint is the authoritative idempotency mechanism:
// created is false when another writer already owns the period, which the
// caller treats as "already processed".
func (s *Store) InsertDailyInsight(userID int64, date time.Time, message string) (int64, bool, error) {
	result, err := s.db.Exec(`
		INSERT INTO daily_insights (user_id, date, message)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, date) DO NOTHING`,
		userID, date.Format(dateLayout), message)
	if err != nil {
		return 0, false, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, false, err
	}
	if n == 0 {
		return 0, false, nil
	}

	id, err := result.LastInsertId()
	return id, true, err
}

// HasDailyInsight is the cheap fast path before generating; the insert
// conflict above remains the source of truth.
func (s *Store) HasDailyInsight(userID int64, date time.Time) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM daily_insights WHERE user_id = ? AND date = ?)`,
		userID, date.Format(dateLayout)).Scan(&exists)
	return exists, err
}

func (s *Store) GetDailyInsight(userID int64, date time.Time) (*DailyInsight, error) {
	var ins DailyInsight
	var dateStr string
	err := s.db.QueryRow(`
		SELECT id, user_id, date, message FROM daily_insights
		WHERE user_id = ? AND date = ?`,
		userID, date.Format(dateLayout)).Scan(&ins.ID, &ins.UserID, &dateStr, &ins.Message)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ins.Date, _ = time.Parse(dateLayout, dateStr)
	return &ins, nil
}

// InsertMonthlyReview persists one structured review for (user, month).
// Same insert-once contract as InsertDailyInsight.
func (s *Store) InsertMonthlyReview(userID int64, month, content string) (int64, bool, error) {
	result, err := s.db.Exec(`
		INSERT INTO monthly_reviews (user_id, month, content)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, month) DO NOTHING`,
		userID, month, content)
	if err != nil {
		return 0, false, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, false, err
	}
	if n == 0 {
		return 0, false, nil
	}

	id, err := result.LastInsertId()
	return id, true, err
}

func (s *Store) HasMonthlyReview(userID int64, month string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM monthly_reviews WHERE user_id = ? AND month = ?)`,
		userID, month).Scan(&exists)
	return exists, err
}

func (s *Store) GetMonthlyReview(userID int64, month string) (*MonthlyReview, error) {
	var rev MonthlyReview
	err := s.db.QueryRow(`
		SELECT id, user_id, month, content FROM monthly_reviews
		WHERE user_id = ? AND month = ?`,
		userID, month).Scan(&rev.ID, &rev.UserID, &rev.Month, &rev.Content)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &rev, nil
}
