package notificator

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"

	"github.com/adambennett/Planetwatcher-Server/pkg/logger"
)

// TelegramNotificator delivers notifications as bot direct messages. The
// token value of a telegram subscriber is its chat id.
type TelegramNotificator struct {
	logger *logger.Logger
	bot    *bot.Bot
}

func NewTelegramNotificator(token string, logger *logger.Logger) (*TelegramNotificator, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram bot: %w", err)
	}
	return &TelegramNotificator{logger: logger, bot: b}, nil
}

// Send messages every chat in the batch. A chat that rejects the message is
// logged and does not stop the rest of the batch; the last failure is
// surfaced so the dispatcher skips the lastSent update for the group.
func (t *TelegramNotificator) Send(ctx context.Context, tokens []string, title, body string) error {
	var lastErr error
	for _, chatID := range tokens {
		params := &bot.SendMessageParams{
			ChatID: chatID,
			Text:   title + "\n" + body,
		}
		if _, err := t.bot.SendMessage(ctx, params); err != nil {
			t.logger.Error("Failed to send telegram message ", "chat ", chatID, " error ", err)
			lastErr = err
		}
	}
	return lastErr
}
