package dispatch

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// telegramNotifier sends the SMS-style order summary to a Telegram chat.
type telegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegramNotifier creates a Notifier that posts order summaries to the
// given chat.
func NewTelegramNotifier(token string, chatID int64, logger zerolog.Logger) (Notifier, error) {
	logger = logger.With().Str("component", "telegram-notifier").Logger()

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialise telegram bot")
		return nil, fmt.Errorf("failed to initialise telegram bot: %w", err)
	}

	logger.Info().Str("bot", bot.Self.UserName).Int64("chat_id", chatID).Msg("telegram notifier ready")

	return &telegramNotifier{
		bot:    bot,
		chatID: chatID,
		logger: logger,
	}, nil
}

// Notify posts summary to the configured chat.
func (n *telegramNotifier) Notify(ctx context.Context, summary string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, summary)
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error().Err(err).Msg("failed to send telegram notification")
		return fmt.Errorf("failed to send telegram notification: %w", err)
	}

	n.logger.Debug().Int64("chat_id", n.chatID).Msg("telegram notification sent")

	return nil
}
