package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bowerhall/cadence/internal/config"
	"github.com/bowerhall/cadence/internal/embedder"
	"github.com/bowerhall/cadence/internal/insight"
	"github.com/bowerhall/cadence/internal/jobs"
	"github.com/bowerhall/cadence/internal/llm"
	"github.com/bowerhall/cadence/internal/logger"
	"github.com/bowerhall/cadence/internal/notify"
	"github.com/bowerhall/cadence/internal/store"
	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}

	model, err := llm.New(llm.Config{
		Provider:    cfg.LLM.Provider,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
	})
	if err != nil {
		logger.Fatal("failed to create llm", "error", err)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open store", "error", err)
	}

	defer db.Close()

	emb, err := embedder.New(embedder.Config{
		Provider: cfg.Embedder.Provider,
		APIKey:   cfg.Embedder.APIKey,
		BaseURL:  cfg.Embedder.BaseURL,
		Model:    cfg.Embedder.Model,
	})
	if err != nil {
		logger.Fatal("failed to create embedder", "error", err)
	}

	if emb != nil {
		db.SetEmbedder(emb)
		logger.Debug("embedder configured", "provider", cfg.Embedder.Provider)
	}

	tz, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatal("invalid timezone", "timezone", cfg.Timezone, "error", err)
	}

	generator := insight.NewGenerator(model, db, cfg.Insight.MaxRecommendations)
	runner := jobs.NewRunner(db, generator, tz, cfg.Jobs)

	if cfg.Notify.Enabled {
		n, err := notify.New(notify.Config{
			Provider: cfg.Notify.Provider,
			Token:    cfg.Notify.Token,
			ChatID:   cfg.Notify.ChatID,
		})
		if err != nil {
			logger.Fatal("failed to create notifier", "error", err)
		}

		runner.SetNotifier(n, cfg.Notify.ChatID)
		logger.Info("notifications enabled", "provider", cfg.Notify.Provider, "chatID", cfg.Notify.ChatID)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := runner.Start(ctx); err != nil {
		logger.Fatal("failed to start scheduler", "error", err)
	}

	embedderProvider := cfg.Embedder.Provider
	if embedderProvider == "" {
		embedderProvider = "none"
	}

	logger.Info("cadence started",
		"llm", cfg.LLM.Provider,
		"embedder", embedderProvider,
		"db", cfg.DBPath,
		"timezone", cfg.Timezone,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	cancel()
	runner.Stop()
}
