package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Telegram sends messages through the Bot API.
type Telegram struct {
	bot    *bot.Bot
	logger *slog.Logger
}

// NewTelegram wraps an initialized bot client.
func NewTelegram(b *bot.Bot, logger *slog.Logger) *Telegram {
	if logger == nil {
		logger = slog.Default()
	}
	return &Telegram{bot: b, logger: logger}
}

// Send delivers one message. Link previews are disabled; explorer links
// would otherwise dominate every alert.
func (t *Telegram) Send(ctx context.Context, chatID any, text string, mode ParseMode) error {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
		LinkPreviewOptions: &models.LinkPreviewOptions{
			IsDisabled: bot.True(),
		},
	}
	if mode != ModePlain {
		params.ParseMode = models.ParseMode(mode)
	}

	_, err := t.bot.SendMessage(ctx, params)
	if err == nil {
		return nil
	}

	if isPermanent(err) {
		return fmt.Errorf("chat %v unreachable: %w", chatID, errors.Join(ErrRecipientGone, err))
	}
	return fmt.Errorf("send to chat %v: %w", chatID, err)
}

// isPermanent reports whether a Bot API error can never succeed on retry
// for this chat.
func isPermanent(err error) bool {
	if errors.Is(err, bot.ErrorForbidden) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "chat not found") ||
		strings.Contains(msg, "bot was kicked") ||
		strings.Contains(msg, "user is deactivated")
}
