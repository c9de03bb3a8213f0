package store

import (
	"context"
	"fmt"
	"testing"
	"time"
)

// stubEmbedder maps known texts to fixed vectors so KNN ordering is
// deterministic. Unknown texts get a far-away vector.
type stubEmbedder struct {
	vecs map[string][]float32
	err  error
}

func (e *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	if text == "" {
		return nil, nil
	}
	if v, ok := e.vecs[text]; ok {
		return v, nil
	}
	return vec(100), nil
}

func vec(fill float32) []float32 {
	v := make([]float32, VectorDimensions)
	v[0] = fill
	return v
}

func day(d int) time.Time {
	return time.Date(2026, time.August, d, 0, 0, 0, 0, time.UTC)
}

func TestOpenAndClose(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()
}

func TestLogUniquePerDay(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	rec := &ActivityRecord{UserID: 1, Date: day(1), MoodScore: 7, GoalCompletedPercentage: 80}
	if _, err := s.InsertLog(rec); err != nil {
		t.Fatalf("failed to insert log: %v", err)
	}

	if _, err := s.InsertLog(rec); err == nil {
		t.Error("expected second insert for the same day to fail")
	}
}

func TestRecentLogsNewestFirst(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	for d := 1; d <= 7; d++ {
		_, err := s.InsertLog(&ActivityRecord{UserID: 1, Date: day(d), SleepHours: float64(d)})
		if err != nil {
			t.Fatalf("failed to insert log: %v", err)
		}
	}

	logs, err := s.RecentLogs(1, 5)
	if err != nil {
		t.Fatalf("failed to fetch recent logs: %v", err)
	}

	if len(logs) != 5 {
		t.Fatalf("expected 5 logs, got %d", len(logs))
	}

	if !logs[0].Date.Equal(day(7)) {
		t.Errorf("expected newest log first, got %s", logs[0].Date)
	}

	if !logs[4].Date.Equal(day(3)) {
		t.Errorf("expected oldest of window last, got %s", logs[4].Date)
	}
}

func TestLogsBetween(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	for d := 1; d <= 10; d++ {
		if _, err := s.InsertLog(&ActivityRecord{UserID: 1, Date: day(d)}); err != nil {
			t.Fatalf("failed to insert log: %v", err)
		}
	}

	logs, err := s.LogsBetween(1, day(3), day(6))
	if err != nil {
		t.Fatalf("failed to fetch logs: %v", err)
	}

	if len(logs) != 4 {
		t.Fatalf("expected 4 logs, got %d", len(logs))
	}

	if !logs[0].Date.Equal(day(3)) || !logs[3].Date.Equal(day(6)) {
		t.Errorf("expected ascending range 3..6, got %s..%s", logs[0].Date, logs[3].Date)
	}
}

func TestOwnersWithLogsBetween(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	if _, err := s.InsertLog(&ActivityRecord{UserID: 1, Date: day(5)}); err != nil {
		t.Fatalf("failed to insert log: %v", err)
	}
	if _, err := s.InsertLog(&ActivityRecord{UserID: 2, Date: day(25)}); err != nil {
		t.Fatalf("failed to insert log: %v", err)
	}

	owners, err := s.OwnersWithLogsBetween(day(1), day(10))
	if err != nil {
		t.Fatalf("failed to fetch owners: %v", err)
	}

	if len(owners) != 1 || owners[0] != 1 {
		t.Errorf("expected only user 1 in range, got %v", owners)
	}

	all, err := s.OwnersWithLogs()
	if err != nil {
		t.Fatalf("failed to fetch all owners: %v", err)
	}

	if len(all) != 2 {
		t.Errorf("expected 2 owners overall, got %d", len(all))
	}
}

func TestDailyInsightInsertOnce(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	id, created, err := s.InsertDailyInsight(1, day(1), "keep going")
	if err != nil {
		t.Fatalf("failed to insert insight: %v", err)
	}
	if !created || id == 0 {
		t.Fatalf("expected first insert to create a row, got created=%v id=%d", created, id)
	}

	_, created, err = s.InsertDailyInsight(1, day(1), "different text")
	if err != nil {
		t.Fatalf("duplicate insert should not error: %v", err)
	}
	if created {
		t.Error("expected duplicate insert to be absorbed by the constraint")
	}

	ins, err := s.GetDailyInsight(1, day(1))
	if err != nil {
		t.Fatalf("failed to fetch insight: %v", err)
	}
	if ins == nil || ins.Message != "keep going" {
		t.Errorf("expected the first writer's message to survive, got %+v", ins)
	}

	exists, err := s.HasDailyInsight(1, day(1))
	if err != nil || !exists {
		t.Errorf("expected insight to exist, got exists=%v err=%v", exists, err)
	}
}

func TestMonthlyReviewInsertOnce(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	_, created, err := s.InsertMonthlyReview(1, "2026-08", `{"patterns":"p"}`)
	if err != nil || !created {
		t.Fatalf("expected first insert to create, got created=%v err=%v", created, err)
	}

	_, created, err = s.InsertMonthlyReview(1, "2026-08", `{"patterns":"q"}`)
	if err != nil {
		t.Fatalf("duplicate insert should not error: %v", err)
	}
	if created {
		t.Error("expected duplicate insert to be absorbed by the constraint")
	}

	rev, err := s.GetMonthlyReview(1, "2026-08")
	if err != nil {
		t.Fatalf("failed to fetch review: %v", err)
	}
	if rev == nil || rev.Content != `{"patterns":"p"}` {
		t.Errorf("expected the first writer's content to survive, got %+v", rev)
	}
}

func TestSaveMemoryOverwrites(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	s.SetEmbedder(&stubEmbedder{vecs: map[string][]float32{}})

	ctx := context.Background()
	if err := s.SaveMemory(ctx, 1, SourceDailyInsight, 42, "first version"); err != nil {
		t.Fatalf("failed to save memory: %v", err)
	}
	if err := s.SaveMemory(ctx, 1, SourceDailyInsight, 42, "second version"); err != nil {
		t.Fatalf("failed to re-save memory: %v", err)
	}

	var count int
	if err := s.DB().QueryRow(`SELECT COUNT(*) FROM memories`).Scan(&count); err != nil {
		t.Fatalf("failed to count memories: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 memory row, got %d", count)
	}

	if err := s.DB().QueryRow(`SELECT COUNT(*) FROM vec_memories`).Scan(&count); err != nil {
		t.Fatalf("failed to count vectors: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 vector row, got %d", count)
	}

	m, err := s.GetMemory(1, SourceDailyInsight, 42)
	if err != nil {
		t.Fatalf("failed to fetch memory: %v", err)
	}
	if m.Content != "second version" {
		t.Errorf("expected overwritten content, got %q", m.Content)
	}
}

func TestSaveMemoryEmbedErrorPropagates(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	s.SetEmbedder(&stubEmbedder{err: fmt.Errorf("embedding service down")})

	if err := s.SaveMemory(context.Background(), 1, SourceDailyInsight, 1, "text"); err == nil {
		t.Error("expected embed failure to propagate")
	}
}

func TestRecallNearestFirst(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	s.SetEmbedder(&stubEmbedder{vecs: map[string][]float32{
		"slept badly all week":  vec(0.1),
		"good focus on study":   vec(0.5),
		"missed every goal":     vec(0.9),
		"how was sleep lately?": vec(0.15),
	}})

	ctx := context.Background()
	for i, text := range []string{"slept badly all week", "good focus on study", "missed every goal"} {
		if err := s.SaveMemory(ctx, 1, SourceDailyInsight, int64(i+1), text); err != nil {
			t.Fatalf("failed to save memory: %v", err)
		}
	}

	results, err := s.Recall(ctx, 1, "how was sleep lately?", 2)
	if err != nil {
		t.Fatalf("recall failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if results[0] != "slept badly all week" {
		t.Errorf("expected nearest memory first, got %q", results[0])
	}
}

func TestRecallScopedToOwner(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	s.SetEmbedder(&stubEmbedder{vecs: map[string][]float32{
		"user one memory": vec(0.1),
		"user two memory": vec(0.1),
		"query":           vec(0.1),
	}})

	ctx := context.Background()
	if err := s.SaveMemory(ctx, 1, SourceDailyInsight, 1, "user one memory"); err != nil {
		t.Fatalf("failed to save memory: %v", err)
	}
	if err := s.SaveMemory(ctx, 2, SourceDailyInsight, 2, "user two memory"); err != nil {
		t.Fatalf("failed to save memory: %v", err)
	}

	results, err := s.Recall(ctx, 1, "query", 5)
	if err != nil {
		t.Fatalf("recall failed: %v", err)
	}

	for _, r := range results {
		if r == "user two memory" {
			t.Error("recall leaked another owner's memory")
		}
	}
}

func TestRecallEmptyQuery(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	s.SetEmbedder(&stubEmbedder{vecs: map[string][]float32{}})

	results, err := s.Recall(context.Background(), 1, "", 3)
	if err != nil {
		t.Fatalf("expected no error for empty query, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %v", results)
	}
}

func TestRecallEmbedFailureIsSilent(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	s.SetEmbedder(&stubEmbedder{err: fmt.Errorf("timeout")})

	results, err := s.Recall(context.Background(), 1, "anything", 3)
	if err != nil {
		t.Fatalf("expected embed failure to be absorbed, got %v", err)
	}
	if results != nil {
		t.Errorf("expected nil results, got %v", results)
	}
}

func TestRecallWithoutEmbedder(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	results, err := s.Recall(context.Background(), 1, "anything", 3)
	if err != nil || results != nil {
		t.Errorf("expected (nil, nil) without embedder, got (%v, %v)", results, err)
	}
}
