package notifier

import (
	"context"
	"fmt"

	"pumpScout/internal/ports"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram implements the ports.Notifier interface using the Telegram Bot API.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger ports.Logger
}

// TelegramConfig holds configuration for the Telegram notifier.
type TelegramConfig struct {
	BotToken string
	ChatID   int64
	Logger   ports.Logger
}

// NewTelegram creates a Telegram notifier. It validates the token against the
// API at construction time so misconfiguration surfaces at startup.
func NewTelegram(cfg TelegramConfig) (*Telegram, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for Telegram notifier")
	}
	if cfg.BotToken == "" || cfg.ChatID == 0 {
		return nil, fmt.Errorf("telegram bot token and chat ID are required: %w", ports.ErrConfigurationError)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram bot: %w", err)
	}

	cfg.Logger.Info(context.Background(), "Telegram notifier initialized", map[string]interface{}{"botUsername": bot.Self.UserName})

	return &Telegram{
		bot:    bot,
		chatID: cfg.ChatID,
		logger: cfg.Logger,
	}, nil
}

// Notify sends a message to the configured chat. Delivery failures are
// returned to the caller; they are expected to log and move on.
func (t *Telegram) Notify(ctx context.Context, message string) error {
	msg := tgbotapi.NewMessage(t.chatID, message)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	t.logger.Debug(ctx, "Telegram notification sent", map[string]interface{}{"chatID": t.chatID})
	return nil
}
