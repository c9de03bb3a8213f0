package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

func Load() (*Config, error) {
	dbPath := os.Getenv("CADENCE_DB")
	if dbPath == "" {
		dbPath = "cadence.db"
	}

	timezone := os.Getenv("TZ")
	if timezone == "" {
		timezone = "UTC"
	}

	llmConfig, err := loadLLMConfig()
	if err != nil {
		return nil, err
	}

	embedderConfig := loadEmbedderConfig()
	notifyConfig := loadNotifyConfig()
	jobsConfig := loadJobsConfig()
	insightConfig := loadInsightConfig()

	return &Config{
		DBPath:   dbPath,
		Timezone: timezone,
		LLM:      llmConfig,
		Embedder: embedderConfig,
		Notify:   notifyConfig,
		Jobs:     jobsConfig,
		Insight:  insightConfig,
	}, nil
}

// DetectProvider picks an LLM provider from whichever API key is present
func DetectProvider() string {
	if os.Getenv("GROQ_API_KEY") != "" {
		return "groq"
	}
	if os.Getenv("ANTHROPIC_API_KEY") != "" {
		return "claude"
	}
	if os.Getenv("OPENAI_API_KEY") != "" {
		return "openai"
	}
	return "groq"
}

func loadLLMConfig() (LLMConfig, error) {
	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = DetectProvider()
	}

	apiKey, err := getAPIKey(provider)
	if err != nil {
		return LLMConfig{}, err
	}

	var temperature float64
	if t, err := strconv.ParseFloat(os.Getenv("LLM_TEMPERATURE"), 64); err == nil && t > 0 {
		temperature = t
	}

	return LLMConfig{
		Provider:    provider,
		APIKey:      apiKey,
		Model:       os.Getenv("LLM_MODEL"),
		BaseURL:     os.Getenv("LLM_BASE_URL"),
		Temperature: temperature,
	}, nil
}

func getAPIKey(provider string) (string, error) {
	envKey := os.Getenv("LLM_API_KEY")
	if envKey != "" {
		return envKey, nil
	}

	switch provider {
	case "claude":
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			return "", fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
		return key, nil
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return "", fmt.Errorf("OPENAI_API_KEY not set")
		}
		return key, nil
	case "groq":
		key := os.Getenv("GROQ_API_KEY")
		if key == "" {
			return "", fmt.Errorf("GROQ_API_KEY not set")
		}
		return key, nil
	case "ollama":
		// Ollama doesn't need an API key
		return "ollama", nil
	default:
		key := os.Getenv(envKeyName(provider))
		if key == "" {
			return "", fmt.Errorf("%s not set", envKeyName(provider))
		}
		return key, nil
	}
}

func envKeyName(provider string) string {
	name := make([]byte, 0, len(provider))
	for i := 0; i < len(provider); i++ {
		c := provider[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		name = append(name, c)
	}
	return string(name) + "_API_KEY"
}

func loadEmbedderConfig() EmbedderConfig {
	return EmbedderConfig{
		Provider: os.Getenv("EMBEDDER_PROVIDER"),
		APIKey:   os.Getenv("EMBEDDER_API_KEY"),
		BaseURL:  os.Getenv("EMBEDDER_URL"),
		Model:    os.Getenv("EMBEDDER_MODEL"),
	}
}

func loadNotifyConfig() NotifyConfig {
	provider := os.Getenv("NOTIFY_PROVIDER")
	token := os.Getenv("NOTIFY_TOKEN")

	var chatID int64
	if id, err := strconv.ParseInt(os.Getenv("NOTIFY_CHAT_ID"), 10, 64); err == nil {
		chatID = id
	}

	return NotifyConfig{
		Enabled:  provider != "" && token != "",
		Provider: provider,
		Token:    token,
		ChatID:   chatID,
	}
}

func loadJobsConfig() JobsConfig {
	dailySchedule := os.Getenv("CRON_DAILY")
	if dailySchedule == "" {
		dailySchedule = "0 0 * * *"
	}

	monthlySchedule := os.Getenv("CRON_MONTHLY")
	if monthlySchedule == "" {
		monthlySchedule = "0 1 1 * *"
	}

	maxRetries := 3
	if n, err := strconv.Atoi(os.Getenv("JOB_MAX_RETRIES")); err == nil && n >= 0 {
		maxRetries = n
	}

	dailyDelay := 30 * time.Second
	if n, err := strconv.Atoi(os.Getenv("JOB_DAILY_RETRY_SECONDS")); err == nil && n > 0 {
		dailyDelay = time.Duration(n) * time.Second
	}

	monthlyDelay := 60 * time.Second
	if n, err := strconv.Atoi(os.Getenv("JOB_MONTHLY_RETRY_SECONDS")); err == nil && n > 0 {
		monthlyDelay = time.Duration(n) * time.Second
	}

	return JobsConfig{
		DailySchedule:     dailySchedule,
		MonthlySchedule:   monthlySchedule,
		MaxRetries:        maxRetries,
		DailyRetryDelay:   dailyDelay,
		MonthlyRetryDelay: monthlyDelay,
	}
}

func loadInsightConfig() InsightConfig {
	maxRecs := 3
	if n, err := strconv.Atoi(os.Getenv("INSIGHT_MAX_RECS")); err == nil && n > 0 {
		maxRecs = n
	}

	return InsightConfig{
		MaxRecommendations: maxRecs,
	}
}
