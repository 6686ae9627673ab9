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

// NewExchangeFlow watches deposits to and withdrawals from the configured
// exchange wallets. Each wallet is its own stream with its own cursor.
func NewExchangeFlow(cfg config.ExchangeFlowConfig, d Deps) *Engine {
	minWei := format.WCOToWei(cfg.MinAmountWCO)
	price := d.price()

	streams := make([]Stream, 0, len(cfg.Exchanges))
	for _, ex := range cfg.Exchanges {
		name := ex.Name
		wallet := strings.ToLower(ex.Wallet)

		streams = append(streams, Stream{
			Name: "exchange:" + strings.ToLower(name),
			Fetch: func(ctx context.Context) ([]FeedItem, error) {
				txs, err := d.Explorer.AddressTransactions(ctx, wallet, "", d.PageSize)
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

				toUs := model.SameAddr(tx.To, wallet)
				fromUs := model.SameAddr(tx.From, wallet)

				var kind model.AlertKind
				switch {
				case toUs && !fromUs:
					kind = model.KindInflow
				case fromUs && !toUs:
					kind = model.KindOutflow
				default:
					// Self-transfers and anything that touches neither
					// side are not flow.
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
					Kind:     kind,
					TxHash:   tx.Hash,
					From:     tx.From,
					To:       tx.To,
					Amount:   tx.Value,
					USD:      usdValue(tx.Value, p),
					Exchange: name,
					When:     tx.Timestamp,
				}, nil
			},
		})
	}

	webURL := d.WebURL
	render := func(a model.Alert) (string, notify.ParseMode) {
		var b strings.Builder
		if a.Kind == model.KindInflow {
			fmt.Fprintf(&b, "📥 WCO deposit to %s\n\n", a.Exchange)
			fmt.Fprintf(&b, "From: %s\n", format.ShortAddr(a.From))
		} else {
			fmt.Fprintf(&b, "📤 WCO withdrawal from %s\n\n", a.Exchange)
			fmt.Fprintf(&b, "To: %s\n", format.ShortAddr(a.To))
		}
		fmt.Fprintf(&b, "Amount: %s WCO", format.WCO(a.Amount))
		if a.USD != nil {
			fmt.Fprintf(&b, " (%s)", format.USD(a.USD))
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "Tx: %s", format.TxLink(webURL, a.TxHash))
		return b.String(), notify.ModePlain
	}

	return NewEngine(Options{
		Name:    "exchange_flow",
		Streams: staticStreams(streams...),
		Render:  render,
		Sender:  d.Sender,
		Store:   d.Store,
		Logger:  d.Logger,
		Channel: cfg.Channel,
		Enabled: cfg.Enabled,
	})
}
