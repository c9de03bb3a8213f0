package notify

import (
	"fmt"

	"github.com/bowerhall/cadence/internal/logger"
	"github.com/bwmarrin/discordgo"
)

type discord struct {
	session *discordgo.Session
}

func newDiscord(token string) (Notifier, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	return &discord{session: session}, nil
}

func (d *discord) Send(chatID int64, message string) error {
	channelID := fmt.Sprintf("%d", chatID)
	_, err := d.session.ChannelMessageSend(channelID, message)
	if err != nil {
		logger.Error("discord send failed", "error", err, "channelID", channelID)
	} else {
		logger.Info("discord message sent", "channelID", channelID, "chars", len(message))
	}
	return err
}
