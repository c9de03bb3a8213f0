package notify

import (
	"fmt"
)

// Notifier delivers generated messages to a chat. Delivery is outbound only;
// inbound traffic is out of scope for this process.
type Notifier interface {
	Send(chatID int64, message string) error
}

type Config struct {
	Provider string
	Token    string
	ChatID   int64
}

func New(cfg Config) (Notifier, error) {
	switch cfg.Provider {
	case "telegram":
		return newTelegram(cfg.Token)
	case "discord":
		return newDiscord(cfg.Token)
	default:
		return nil, fmt.Errorf("unknown notify provider: %s", cfg.Provider)
	}
}
