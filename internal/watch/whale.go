package watch

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/wchain-tools/wco-alertbot/internal/config"
	"github.com/wchain-tools/wco-alertbot/internal/format"
	"github.com/wchain-tools/wco-alertbot/internal/model"
	"github.com/wchain-tools/wco-alertbot/internal/notify"
)

// NewWhale watches the router's internal transactions for large WCO buys
// landing in private wallets. Router-to-contract transfers are plumbing,
// not buys, and are skipped.
func NewWhale(cfg config.WhaleConfig, d Deps) *Engine {
	router := strings.ToLower(cfg.Router)
	tier1 := format.WCOToWei(cfg.Tier1WCO)
	tier2 := format.WCOToWei(cfg.Tier2WCO)
	tier3 := format.WCOToWei(cfg.Tier3WCO)
	price := d.price()

	stream := Stream{
		Name: "router",
		Fetch: func(ctx context.Context) ([]FeedItem, error) {
			its, err := d.Explorer.AddressInternalTransactions(ctx, router, d.PageSize)
			if err != nil {
				return nil, err
			}
			return internalTxItems(its), nil
		},
		Classify: func(ctx context.Context, item FeedItem) (*model.Alert, error) {
			it := item.Value.(model.InternalTransaction)
			if !model.SameAddr(it.From, router) {
				return nil, nil
			}
			if it.ToIsContract {
				return nil, nil
			}
			if it.Value == nil || it.Value.Cmp(tier1) < 0 {
				return nil, nil
			}

			p, err := price.Price(ctx)
			if err != nil {
				p = nil
			}
			return &model.Alert{
				Kind:   model.KindWhaleTransfer,
				TxHash: it.TxHash,
				From:   it.From,
				To:     it.To,
				Amount: it.Value,
				USD:    usdValue(it.Value, p),
				When:   it.Timestamp,
			}, nil
		},
	}

	webURL := d.WebURL
	render := func(a model.Alert) (string, notify.ParseMode) {
		headline := whaleHeadline(a.Amount, tier2, tier3)

		var b strings.Builder
		b.WriteString(headline + "\n\n")
		fmt.Fprintf(&b, "Amount: %s WCO", format.WCO(a.Amount))
		if a.USD != nil {
			fmt.Fprintf(&b, " (%s)", format.USD(a.USD))
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "Wallet: %s\n", format.ShortAddr(a.To))
		fmt.Fprintf(&b, "Tx: %s", format.TxLink(webURL, a.TxHash))
		return b.String(), notify.ModePlain
	}

	return NewEngine(Options{
		Name:    "whale",
		Streams: staticStreams(stream),
		Render:  render,
		Sender:  d.Sender,
		Store:   d.Store,
		Logger:  d.Logger,
		Channel: cfg.Channel,
		Enabled: cfg.Enabled,
	})
}

func whaleHeadline(amount, tier2, tier3 *big.Int) string {
	switch {
	case amount.Cmp(tier3) >= 0:
		return "🚨🐋 MASSIVE WHALE BUY 🐋🚨"
	case amount.Cmp(tier2) >= 0:
		return "🐋 Huge whale buy detected!"
	default:
		return "🐳 Whale buy detected"
	}
}
