package embedder

import (
	"fmt"

	"github.com/bowerhall/cadence/internal/store"
)

func New(cfg Config) (store.Embedder, error) {
	switch cfg.Provider {
	case "jina":
		model := cfg.Model
		if model == "" {
			model = "jina-embeddings-v3"
		}
		return newJina(cfg.APIKey, model), nil
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		model := cfg.Model
		if model == "" {
			model = "nomic-embed-text"
		}
		return newOllama(baseURL, model), nil
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown embedder provider: %s", cfg.Provider)
	}
}
