package config

import "time"

type Config struct {
	DBPath   string
	Timezone string
	LLM      LLMConfig
	Embedder EmbedderConfig
	Notify   NotifyConfig
	Jobs     JobsConfig
	Insight  InsightConfig
}

type LLMConfig struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
}

type EmbedderConfig struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
}

type NotifyConfig struct {
	Enabled  bool
	Provider string
	Token    string
	ChatID   int64
}

type JobsConfig struct {
	DailySchedule     string
	MonthlySchedule   string
	MaxRetries        int
	DailyRetryDelay   time.Duration
	MonthlyRetryDelay time.Duration
}

type InsightConfig struct {
	MaxRecommendations int
}
