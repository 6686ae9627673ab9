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

// NewDex watches swap activity from three angles: router internal
// transactions (buys paid in native WCO), per-pool transactions
// (buys/sells and liquidity moves, read from the transaction's token
// transfers) and network-wide validated transactions (large wallet-to-
// wallet moves). A buy often shows up on both the router and a pool
// feed, so alerts dedup on transaction hash.
//
// knownAddrs lists router, pools and exchange wallets; transfers touching
// any of them are not "whale moves".
func NewDex(cfg config.DexConfig, knownAddrs []string, d Deps) *Engine {
	router := strings.ToLower(cfg.Router)
	wwco := strings.ToLower(cfg.WWCO)
	minBuy := format.WCOToWei(cfg.MinBuyWCO)
	minSell := format.WCOToWei(cfg.MinSellWCO)
	minLiquidity := format.WCOToWei(cfg.MinLiquidityWCO)
	whaleMove := format.WCOToWei(cfg.WhaleMoveWCO)
	price := d.price()

	known := make(map[string]struct{}, len(knownAddrs))
	for _, a := range knownAddrs {
		known[strings.ToLower(a)] = struct{}{}
	}

	var streams []Stream

	if router != "" {
		streams = append(streams, Stream{
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
				if !model.SameAddr(it.From, router) || it.ToIsContract {
					return nil, nil
				}
				if it.Value == nil || it.Value.Cmp(minBuy) < 0 {
					return nil, nil
				}

				p, err := price.Price(ctx)
				if err != nil {
					p = nil
				}
				return &model.Alert{
					Kind:     model.KindBuy,
					TxHash:   it.TxHash,
					From:     it.From,
					To:       it.To,
					Amount:   it.Value,
					USD:      usdValue(it.Value, p),
					When:     it.Timestamp,
					DedupKey: it.TxHash,
				}, nil
			},
		})
	}

	for _, pc := range cfg.Pools {
		pool := strings.ToLower(pc.Address)
		poolName := pc.Name
		if poolName == "" {
			poolName = format.ShortAddr(pool)
		}

		streams = append(streams, Stream{
			Name: "pool:" + pool,
			Fetch: func(ctx context.Context) ([]FeedItem, error) {
				txs, err := d.Explorer.AddressTransactions(ctx, pool, "", d.PageSize)
				if err != nil {
					return nil, err
				}
				return txItems(txs), nil
			},
			Classify: func(ctx context.Context, item FeedItem) (*model.Alert, error) {
				tx := item.Value.(model.Transaction)
				return classifyPoolTx(ctx, d.Explorer, price, tx, pool, poolName, wwco,
					minBuy, minSell, minLiquidity)
			},
		})
	}

	if cfg.WhaleMoveWCO > 0 {
		streams = append(streams, Stream{
			Name: "moves",
			Fetch: func(ctx context.Context) ([]FeedItem, error) {
				txs, err := d.Explorer.RecentTransactions(ctx, d.PageSize)
				if err != nil {
					return nil, err
				}
				return txItems(txs), nil
			},
			Classify: func(ctx context.Context, item FeedItem) (*model.Alert, error) {
				tx := item.Value.(model.Transaction)
				if tx.Value == nil || tx.Value.Cmp(whaleMove) < 0 {
					return nil, nil
				}
				if tx.FromIsContract || tx.ToIsContract {
					return nil, nil
				}
				if _, ok := known[tx.From]; ok {
					return nil, nil
				}
				if _, ok := known[tx.To]; ok {
					return nil, nil
				}
				if !tx.IsCoinTransfer() && tx.Method != "" {
					return nil, nil
				}

				p, err := price.Price(ctx)
				if err != nil {
					p = nil
				}
				return &model.Alert{
					Kind:     model.KindWhaleMove,
					TxHash:   tx.Hash,
					From:     tx.From,
					To:       tx.To,
					Amount:   tx.Value,
					USD:      usdValue(tx.Value, p),
					When:     tx.Timestamp,
					DedupKey: tx.Hash,
				}, nil
			},
		})
	}

	webURL := d.WebURL
	render := func(a model.Alert) (string, notify.ParseMode) {
		return renderDexAlert(a, webURL)
	}

	return NewEngine(Options{
		Name:      "dex",
		Streams:   staticStreams(streams...),
		Render:    render,
		Sender:    d.Sender,
		Store:     d.Store,
		Logger:    d.Logger,
		Channel:   cfg.Channel,
		CacheSize: cfg.CacheSize,
		Enabled:   cfg.Enabled,
	})
}

// classifyPoolTx reads a pool-touching transaction's token transfers.
// An LP-token mint or burn marks a liquidity move; otherwise wrapped WCO
// leaving the pool is a buy and entering it is a sell. Amounts are the
// wrapped-WCO leg.
func classifyPoolTx(ctx context.Context, ex Explorer, price PriceSource, tx model.Transaction,
	pool, poolName, wwco string, minBuy, minSell, minLiquidity *big.Int) (*model.Alert, error) {

	transfers, err := ex.TransactionTokenTransfers(ctx, tx.Hash)
	if err != nil {
		return nil, err
	}

	var wcoIn, wcoOut *big.Int
	var lpMint, lpBurn bool
	for _, tr := range transfers {
		switch {
		case model.SameAddr(tr.Token.Address, pool):
			// The pool contract is its own LP token.
			if tr.IsMint() {
				lpMint = true
			}
			if tr.IsBurn() {
				lpBurn = true
			}
		case model.SameAddr(tr.Token.Address, wwco):
			if model.SameAddr(tr.To, pool) {
				wcoIn = addWei(wcoIn, tr.Amount)
			}
			if model.SameAddr(tr.From, pool) {
				wcoOut = addWei(wcoOut, tr.Amount)
			}
		}
	}

	var kind model.AlertKind
	var amount, min *big.Int
	switch {
	case lpMint:
		kind, amount, min = model.KindLiquidityAdd, wcoIn, minLiquidity
	case lpBurn:
		kind, amount, min = model.KindLiquidityRemove, wcoOut, minLiquidity
	case wcoOut != nil:
		kind, amount, min = model.KindBuy, wcoOut, minBuy
	case wcoIn != nil:
		kind, amount, min = model.KindSell, wcoIn, minSell
	default:
		return nil, nil
	}

	if amount == nil || amount.Cmp(min) < 0 {
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
		Amount:   amount,
		USD:      usdValue(amount, p),
		Pool:     pool,
		PairName: poolName,
		When:     tx.Timestamp,
		DedupKey: tx.Hash,
	}, nil
}

func addWei(acc, v *big.Int) *big.Int {
	if v == nil {
		return acc
	}
	if acc == nil {
		return new(big.Int).Set(v)
	}
	return acc.Add(acc, v)
}

func renderDexAlert(a model.Alert, webURL string) (string, notify.ParseMode) {
	var title string
	switch a.Kind {
	case model.KindBuy:
		title = "🟢 WCO Buy"
	case model.KindSell:
		title = "🔴 WCO Sell"
	case model.KindLiquidityAdd:
		title = "💧 Liquidity Added"
	case model.KindLiquidityRemove:
		title = "📉 Liquidity Removed"
	case model.KindWhaleMove:
		title = "🐋 Large WCO Transfer"
	default:
		title = "WCO Activity"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n\n", format.EscapeMarkdownV2(title))

	line := format.WCO(a.Amount) + " WCO"
	if a.USD != nil {
		line += fmt.Sprintf(" (%s)", format.USD(a.USD))
	}
	fmt.Fprintf(&b, "💰 %s\n", format.EscapeMarkdownV2(line))

	if a.PairName != "" {
		fmt.Fprintf(&b, "🏊 Pool: %s\n", format.EscapeMarkdownV2(a.PairName))
	}
	if a.Kind == model.KindWhaleMove {
		fmt.Fprintf(&b, "👛 %s → %s\n",
			format.EscapeMarkdownV2(format.ShortAddr(a.From)),
			format.EscapeMarkdownV2(format.ShortAddr(a.To)),
		)
	}
	fmt.Fprintf(&b, "[View Transaction](%s)", format.TxLink(webURL, a.TxHash))
	return b.String(), notify.ModeMarkdownV2
}
