package notify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Subscriptions is what the toggle command needs from the buyback watcher.
type Subscriptions interface {
	Toggle(chatID int64) bool
	IsSubscribed(chatID int64) bool
}

// Poker triggers an immediate poll of every watcher.
type Poker interface {
	PokeAll(ctx context.Context)
}

// StatusSource reports one status line per watcher.
type StatusSource interface {
	StatusLines() []string
}

// Switch flips a watcher on or off at runtime.
type Switch interface {
	Enabled() bool
	SetEnabled(on bool)
}

// OverviewSource renders the current network overview on demand.
type OverviewSource interface {
	Summary(ctx context.Context) (string, error)
}

// Commands wires the bot's chat commands to the watchers.
type Commands struct {
	Subs       Subscriptions
	Poke       Poker
	Status     StatusSource
	Dex        Switch
	Overview   OverviewSource
	InstanceID string
	Logger     *slog.Logger
}

// Register attaches all command handlers to the bot.
func (c *Commands) Register(b *bot.Bot) {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	b.RegisterHandler(bot.HandlerTypeMessageText, "/buybackalerts", bot.MatchTypePrefix, c.handleBuybackToggle)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/dexalerts", bot.MatchTypePrefix, c.handleDexToggle)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/alertstatus", bot.MatchTypePrefix, c.handleStatus)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/checkalerts", bot.MatchTypePrefix, c.handleCheck)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypePrefix, c.handleStats)
}

func (c *Commands) handleStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if c.Overview == nil {
		c.reply(ctx, b, chatID, "Network stats are not available.")
		return
	}

	text, err := c.Overview.Summary(ctx)
	if err != nil {
		c.Logger.Warn("stats command failed", "error", err)
		c.reply(ctx, b, chatID, "Could not fetch network stats, try again in a moment.")
		return
	}

	c.reply(ctx, b, chatID, text)
}

func (c *Commands) handleDexToggle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	text := "DEX alerts are not available right now."
	if c.Dex != nil {
		on := !c.Dex.Enabled()
		c.Dex.SetEnabled(on)
		if on {
			text = "🔔 DEX alerts resumed."
		} else {
			text = "🔕 DEX alerts paused. Send /dexalerts again to resume."
		}
	}

	c.reply(ctx, b, chatID, text)
}

func (c *Commands) handleBuybackToggle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	text := "Buyback alerts are not available right now."
	if c.Subs != nil {
		if c.Subs.Toggle(chatID) {
			text = "🔔 Buyback alerts enabled for this chat. Send /buybackalerts again to disable."
		} else {
			text = "🔕 Buyback alerts disabled for this chat."
		}
	}

	c.reply(ctx, b, chatID, text)
}

func (c *Commands) handleStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	lines := []string{"📊 Watcher status:"}
	if c.InstanceID != "" {
		lines[0] = "📊 Watcher status (instance " + c.InstanceID + "):"
	}
	if c.Status != nil {
		lines = append(lines, c.Status.StatusLines()...)
	}
	if c.Subs != nil {
		if c.Subs.IsSubscribed(chatID) {
			lines = append(lines, "This chat receives buyback alerts.")
		} else {
			lines = append(lines, "This chat does not receive buyback alerts.")
		}
	}

	c.reply(ctx, b, chatID, strings.Join(lines, "\n"))
}

func (c *Commands) handleCheck(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if c.Poke == nil {
		c.reply(ctx, b, chatID, "Manual checks are not available.")
		return
	}

	c.reply(ctx, b, chatID, "🔎 Checking all feeds now...")
	c.Poke.PokeAll(ctx)
}

func (c *Commands) reply(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		c.Logger.Warn("command reply failed",
			"chat_id", chatID,
			"error", err,
		)
	}
}
