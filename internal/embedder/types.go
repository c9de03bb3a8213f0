package embedder

import "time"

// requestTimeout bounds every embedding call; callers treat a timeout as an
// ordinary failure.
const requestTimeout = 20 * time.Second

type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
}
