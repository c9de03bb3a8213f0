package store

import (
	"database/sql"
	"time"
)

// InsertLog writes one activity record. The pipeline never calls this; it
// exists for the log service and for tests. A duplicate (user, date) pair
// fails on the uniqueness constraint.
func (s *Store) InsertLog(rec *ActivityRecord) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO activity_logs
		    (user_id, date, work_hours, study_hours, sleep_hours, mood_score, goal_completed_percentage, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.UserID, rec.Date.Format(dateLayout),
		rec.WorkHours, rec.StudyHours, rec.SleepHours,
		rec.MoodScore, rec.GoalCompletedPercentage, rec.Notes)
	if err != nil {
		return 0, err
	}

	return result.LastInsertId()
}

// OwnersWithLogs returns every user id that has at least one activity record.
func (s *Store) OwnersWithLogs() ([]int64, error) {
	rows, err := s.db.Query(`SELECT DISTINCT user_id FROM activity_logs`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanIDs(rows)
}

// OwnersWithLogsBetween returns user ids with at least one activity record
// dated within [from, to] inclusive.
func (s *Store) OwnersWithLogsBetween(from, to time.Time) ([]int64, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT user_id FROM activity_logs
		WHERE date BETWEEN ? AND ?`,
		from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanIDs(rows)
}

// RecentLogs returns up to limit activity records for a user, newest first.
func (s *Store) RecentLogs(userID int64, limit int) ([]ActivityRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, date,
		       COALESCE(work_hours, 0), COALESCE(study_hours, 0), COALESCE(sleep_hours, 0),
		       COALESCE(mood_score, 0), COALESCE(goal_completed_percentage, 0), COALESCE(notes, '')
		FROM activity_logs
		WHERE user_id = ?
		ORDER BY date DESC
		LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLogs(rows)
}

// LogsBetween returns a user's activity records within [from, to] inclusive,
// oldest first.
func (s *Store) LogsBetween(userID int64, from, to time.Time) ([]ActivityRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, date,
		       COALESCE(work_hours, 0), COALESCE(study_hours, 0), COALESCE(sleep_hours, 0),
		       COALESCE(mood_score, 0), COALESCE(goal_completed_percentage, 0), COALESCE(notes, '')
		FROM activity_logs
		WHERE user_id = ? AND date BETWEEN ? AND ?
		ORDER BY date ASC`,
		userID, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLogs(rows)
}

func scanIDs(rows *sql.Rows) ([]int64, error) {
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

func scanLogs(rows *sql.Rows) ([]ActivityRecord, error) {
	var logs []ActivityRecord
	for rows.Next() {
		var rec ActivityRecord
		var date string
		if err := rows.Scan(&rec.ID, &rec.UserID, &date,
			&rec.WorkHours, &rec.StudyHours, &rec.SleepHours,
			&rec.MoodScore, &rec.GoalCompletedPercentage, &rec.Notes); err != nil {
			return nil, err
		}
		rec.Date, _ = time.Parse(dateLayout, date)
		logs = append(logs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}
