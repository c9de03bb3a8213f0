package notify

import (
	"github.com/bowerhall/cadence/internal/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type telegram struct {
	api *tgbotapi.BotAPI
}

func newTelegram(token string) (Notifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &telegram{api: api}, nil
}

func (t *telegram) Send(chatID int64, message string) error {
	msg := tgbotapi.NewMessage(chatID, message)
	_, err := t.api.Send(msg)
	if err != nil {
		logger.Error("telegram send failed", "error", err, "chatID", chatID)
	} else {
		logger.Info("telegram message sent", "chatID", chatID, "chars", len(message))
	}
	return err
}
