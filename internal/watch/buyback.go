package watch

import (
	"context"
	"fmt"
	"strings"

	"github.com/wchain-tools/wco-alertbot/internal/config"
	"github.com/wchain-tools/wco-alertbot/internal/format"
	"github.com/wchain-tools/wco-alertbot/internal/model"
	"github.com/wchain-tools/wco-alertbot/internal/notify"
)

// NewBuyback watches incoming native transfers to the buyback wallet.
// Alerts broadcast to chats that opted in via the toggle command.
func NewBuyback(cfg config.BuybackConfig, d Deps) *Engine {
	wallet := strings.ToLower(cfg.Wallet)
	minWei := format.WCOToWei(cfg.MinAmountWCO)
	price := d.price()

	stream := Stream{
		Name: "incoming",
		Fetch: func(ctx context.Context) ([]FeedItem, error) {
			txs, err := d.Explorer.AddressTransactions(ctx, wallet, "to", d.PageSize)
			if err != nil {
				return nil, err
			}
			return txItems(txs), nil
		},
		Classify: func(ctx context.Context, item FeedItem) (*model.Alert, error) {
			tx := item.Value.(model.Transaction)
			if tx.Value == nil || tx.Value.Sign() <= 0 {
				return nil, nil
			}
			if !model.SameAddr(tx.To, wallet) {
				return nil, nil
			}
			if tx.Value.Cmp(minWei) < 0 {
				return nil, nil
			}

			p, err := price.Price(ctx)
			if err != nil {
				p = nil
			}
			return &model.Alert{
				Kind:   model.KindBuyback,
				TxHash: tx.Hash,
				From:   tx.From,
				To:     tx.To,
				Amount: tx.Value,
				USD:    usdValue(tx.Value, p),
				When:   tx.Timestamp,
			}, nil
		},
	}

	webURL := d.WebURL
	render := func(a model.Alert) (string, notify.ParseMode) {
		var b strings.Builder
		b.WriteString("🟢 *WCO Buyback!*\n\n")
		fmt.Fprintf(&b, "💰 Amount: *%s WCO*", format.WCO(a.Amount))
		if a.USD != nil {
			fmt.Fprintf(&b, " (%s)", format.USD(a.USD))
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "📤 From: `%s`\n", format.ShortAddr(a.From))
		fmt.Fprintf(&b, "🔗 [View Transaction](%s)", format.TxLink(webURL, a.TxHash))
		return b.String(), notify.ModeMarkdown
	}

	return NewEngine(Options{
		Name:    "buyback",
		Streams: staticStreams(stream),
		Render:  render,
		Sender:  d.Sender,
		Store:   d.Store,
		Logger:  d.Logger,
		Enabled: cfg.Enabled,
	})
}
