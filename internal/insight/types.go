package insight

// ReviewRecord is the structured monthly review the model is asked to emit.
// After normalization every field is present, even when the model omits it.
type ReviewRecord struct {
	Patterns        string   `json:"patterns"`
	RootCauses      string   `json:"root_causes"`
	Recommendations []string `json:"recommendations"`
	Notable         string   `json:"notable"`
}

// RecentContext is the small aggregate the daily job computes from a user's
// last few activity records. Averages are rounded to 2 decimal places.
type RecentContext struct {
	MissedYesterday bool
	AvgMood         float64
	AvgSleepHours   float64
	AvgWorkHours    float64
	AvgStudyHours   float64
	ConsistencyDays int
}

// TimelineDay is one day of a user's month, reduced for the review prompt.
type TimelineDay struct {
	Date           string  `json:"date"`
	WorkHours      float64 `json:"work_hours"`
	StudyHours     float64 `json:"study_hours"`
	SleepHours     float64 `json:"sleep_hours"`
	MoodScore      int     `json:"mood_score"`
	GoalCompletion float64 `json:"goal_completion"`
}
