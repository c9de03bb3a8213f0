package config

import (
	"os"
	"testing"
	"time"
)

func TestDetectProviderGroq(t *testing.T) {
	oldGroq := os.Getenv("GROQ_API_KEY")
	oldClaude := os.Getenv("ANTHROPIC_API_KEY")
	oldOpenAI := os.Getenv("OPENAI_API_KEY")
	defer func() {
		os.Setenv("GROQ_API_KEY", oldGroq)
		os.Setenv("ANTHROPIC_API_KEY", oldClaude)
		os.Setenv("OPENAI_API_KEY", oldOpenAI)
	}()

	os.Setenv("GROQ_API_KEY", "test-key")
	os.Setenv("ANTHROPIC_API_KEY", "")
	os.Setenv("OPENAI_API_KEY", "")

	provider := DetectProvider()
	if provider != "groq" {
		t.Errorf("expected groq, got %s", provider)
	}
}

func TestDetectProviderClaude(t *testing.T) {
	oldGroq := os.Getenv("GROQ_API_KEY")
	oldClaude := os.Getenv("ANTHROPIC_API_KEY")
	oldOpenAI := os.Getenv("OPENAI_API_KEY")
	defer func() {
		os.Setenv("GROQ_API_KEY", oldGroq)
		os.Setenv("ANTHROPIC_API_KEY", oldClaude)
		os.Setenv("OPENAI_API_KEY", oldOpenAI)
	}()

	os.Setenv("GROQ_API_KEY", "")
	os.Setenv("ANTHROPIC_API_KEY", "test-key")
	os.Setenv("OPENAI_API_KEY", "")

	provider := DetectProvider()
	if provider != "claude" {
		t.Errorf("expected claude, got %s", provider)
	}
}

func TestJobsConfigDefaults(t *testing.T) {
	oldDaily := os.Getenv("CRON_DAILY")
	oldMonthly := os.Getenv("CRON_MONTHLY")
	oldRetries := os.Getenv("JOB_MAX_RETRIES")
	defer func() {
		os.Setenv("CRON_DAILY", oldDaily)
		os.Setenv("CRON_MONTHLY", oldMonthly)
		os.Setenv("JOB_MAX_RETRIES", oldRetries)
	}()

	os.Setenv("CRON_DAILY", "")
	os.Setenv("CRON_MONTHLY", "")
	os.Setenv("JOB_MAX_RETRIES", "")

	cfg := loadJobsConfig()
	if cfg.DailySchedule != "0 0 * * *" {
		t.Errorf("expected default daily schedule, got %s", cfg.DailySchedule)
	}
	if cfg.MonthlySchedule != "0 1 1 * *" {
		t.Errorf("expected default monthly schedule, got %s", cfg.MonthlySchedule)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("expected 3 retries, got %d", cfg.MaxRetries)
	}
	if cfg.DailyRetryDelay != 30*time.Second {
		t.Errorf("expected 30s daily retry delay, got %s", cfg.DailyRetryDelay)
	}
	if cfg.MonthlyRetryDelay != 60*time.Second {
		t.Errorf("expected 60s monthly retry delay, got %s", cfg.MonthlyRetryDelay)
	}
}

func TestInsightConfigOverride(t *testing.T) {
	old := os.Getenv("INSIGHT_MAX_RECS")
	defer os.Setenv("INSIGHT_MAX_RECS", old)

	os.Setenv("INSIGHT_MAX_RECS", "4")

	cfg := loadInsightConfig()
	if cfg.MaxRecommendations != 4 {
		t.Errorf("expected 4, got %d", cfg.MaxRecommendations)
	}
}

func TestNotifyDisabledWithoutToken(t *testing.T) {
	oldProvider := os.Getenv("NOTIFY_PROVIDER")
	oldToken := os.Getenv("NOTIFY_TOKEN")
	defer func() {
		os.Setenv("NOTIFY_PROVIDER", oldProvider)
		os.Setenv("NOTIFY_TOKEN", oldToken)
	}()

	os.Setenv("NOTIFY_PROVIDER", "telegram")
	os.Setenv("NOTIFY_TOKEN", "")

	cfg := loadNotifyConfig()
	if cfg.Enabled {
		t.Error("expected notify to be disabled without a token")
	}
}
