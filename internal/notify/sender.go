package notify

import (
	"context"
	"errors"
)

// ParseMode selects Telegram message formatting.
type ParseMode string

const (
	ModePlain      ParseMode = ""
	ModeMarkdown   ParseMode = "Markdown"
	ModeMarkdownV2 ParseMode = "MarkdownV2"
	ModeHTML       ParseMode = "HTML"
)

// ErrRecipientGone marks a permanent delivery failure: the chat no longer
// exists or the bot was blocked or kicked. Senders wrap it so callers can
// test with errors.Is and drop the recipient.
var ErrRecipientGone = errors.New("recipient gone")

// Sender delivers one rendered message to a chat. chatID is an int64 chat
// id or a string channel reference ("@name" or "-100...").
type Sender interface {
	Send(ctx context.Context, chatID any, text string, mode ParseMode) error
}

// SenderFunc is a function adapter for Sender.
type SenderFunc func(ctx context.Context, chatID any, text string, mode ParseMode) error

func (f SenderFunc) Send(ctx context.Context, chatID any, text string, mode ParseMode) error {
	return f(ctx, chatID, text, mode)
}
