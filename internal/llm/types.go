package llm

import "context"

type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
}

type Message struct {
	Role    string
	Content string
}

// LLM is a single text-in, text-out generative capability. The pipeline
// treats the far end as opaque; any output contract lives in the prompt.
type LLM interface {
	Chat(ctx context.Context, systemPrompt string, messages []Message) (string, error)
}
