package watch

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/wchain-tools/wco-alertbot/internal/config"
	"github.com/wchain-tools/wco-alertbot/internal/format"
	"github.com/wchain-tools/wco-alertbot/internal/model"
	"github.com/wchain-tools/wco-alertbot/internal/notify"
)

// Event signatures on W-Swap (UniswapV2-compatible) contracts.
const (
	topicPairCreated = "0x0d3648bd0f6ba80134a33ba9275ac585d9d315f0ad8355cddefde31afa28d0e9"
	topicMint        = "0x4c209b5fc8ad50758f13e2e1088ba56a560dff690a1c6fef26394f4c03821c4f"
	topicBurn        = "0xdccd412f0b1252819cb1fd330b93224ca42612892bb3f4f789976e6d81936496"
)

// pairsSection persists the discovered pair set separately from the
// watcher's cursors; the pair list survives even if cursors are wiped.
const pairsSection = "liquidity_pairs"

// liquidityWatcher tracks W-Swap liquidity. The factory log feed
// discovers WCO pairs; every discovered pair becomes its own log stream
// watching Mint and Burn events. New pairs baseline before they alert.
type liquidityWatcher struct {
	cfg    config.LiquidityConfig
	d      Deps
	price  PriceSource
	minUSD *big.Rat
	wwco   string

	mu          sync.Mutex
	pairs       map[string]model.Pair
	lastRefresh time.Time
}

// NewLiquidity creates the liquidity watcher.
func NewLiquidity(cfg config.LiquidityConfig, d Deps) *Engine {
	w := &liquidityWatcher{
		cfg:    cfg,
		d:      d,
		price:  d.price(),
		minUSD: big.NewRat(cfg.MinUSD, 1),
		wwco:   strings.ToLower(cfg.WWCO),
		pairs:  make(map[string]model.Pair),
	}
	w.restorePairs()

	return NewEngine(Options{
		Name:      "liquidity",
		Streams:   w.streams,
		Render:    w.render,
		Sender:    d.Sender,
		Store:     d.Store,
		Logger:    d.Logger,
		Channel:   cfg.Channel,
		CacheSize: cfg.CacheSize,
		Enabled:   cfg.Enabled,
	})
}

// streams rebuilds the stream set each cycle: the factory feed plus one
// feed per known pair. The factory page is also re-scanned periodically
// so pairs created before the bot existed, or past the cursor window,
// still get picked up.
func (w *liquidityWatcher) streams(ctx context.Context) ([]Stream, error) {
	w.maybeRefresh(ctx)

	factory := strings.ToLower(w.cfg.Factory)
	out := []Stream{{
		Name: "factory",
		Fetch: func(ctx context.Context) ([]FeedItem, error) {
			logs, err := w.d.Explorer.AddressLogs(ctx, factory, w.d.PageSize)
			if err != nil {
				return nil, err
			}
			return logItems(logs), nil
		},
		Classify: w.classifyFactoryLog,
	}}

	for _, p := range w.knownPairs() {
		pair := p
		out = append(out, Stream{
			Name: "pair:" + pair.Address,
			Fetch: func(ctx context.Context) ([]FeedItem, error) {
				logs, err := w.d.Explorer.AddressLogs(ctx, pair.Address, w.d.PageSize)
				if err != nil {
					return nil, err
				}
				return logItems(logs), nil
			},
			Classify: func(ctx context.Context, item FeedItem) (*model.Alert, error) {
				return w.classifyPairLog(ctx, pair, item)
			},
		})
	}

	return out, nil
}

// maybeRefresh re-scans the factory log page for WCO pairs. Runs on the
// first cycle and then every PairRefresh.
func (w *liquidityWatcher) maybeRefresh(ctx context.Context) {
	w.mu.Lock()
	due := time.Since(w.lastRefresh) >= w.cfg.PairRefresh
	if due {
		w.lastRefresh = time.Now()
	}
	w.mu.Unlock()
	if !due {
		return
	}

	logs, err := w.d.Explorer.AddressLogs(ctx, strings.ToLower(w.cfg.Factory), w.d.PageSize)
	if err != nil {
		w.d.Logger.Warn("pair refresh failed", "error", err)
		return
	}

	for _, l := range logs {
		if len(l.Topics) == 0 || l.Topics[0] != topicPairCreated {
			continue
		}
		if _, _, err := w.ensurePair(ctx, l); err != nil {
			w.d.Logger.Warn("pair registration failed",
				"tx", l.TxHash,
				"error", err,
			)
		}
	}
}

// classifyFactoryLog registers newly created WCO pairs and raises a
// NEW PAIR alert for each.
func (w *liquidityWatcher) classifyFactoryLog(ctx context.Context, item FeedItem) (*model.Alert, error) {
	l := item.Value.(model.LogEntry)
	if len(l.Topics) == 0 || l.Topics[0] != topicPairCreated {
		return nil, nil
	}

	pair, isNew, err := w.ensurePair(ctx, l)
	if err != nil {
		return nil, err
	}
	if !isNew {
		return nil, nil
	}

	return &model.Alert{
		Kind:     model.KindNewPair,
		TxHash:   l.TxHash,
		Pool:     pair.Address,
		PairName: w.pairName(pair),
		DedupKey: "pair:" + pair.Address,
	}, nil
}

// classifyPairLog turns a pair's Mint/Burn events into liquidity alerts.
// The amount is the wrapped-WCO side; its USD value doubles to cover
// both legs of the deposit.
func (w *liquidityWatcher) classifyPairLog(ctx context.Context, pair model.Pair, item FeedItem) (*model.Alert, error) {
	l := item.Value.(model.LogEntry)
	if len(l.Topics) == 0 {
		return nil, nil
	}

	var kind model.AlertKind
	switch l.Topics[0] {
	case topicMint:
		kind = model.KindLiquidityAdd
	case topicBurn:
		kind = model.KindLiquidityRemove
	default:
		return nil, nil
	}

	amountParam := "amount1"
	if model.SameAddr(pair.Token0.Address, w.wwco) {
		amountParam = "amount0"
	}
	raw := l.Param(amountParam)
	if raw == "" {
		// Undecoded event, nothing to size the alert with.
		return nil, nil
	}
	amount, err := format.ParseWei(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", amountParam, err)
	}

	p, err := w.price.Price(ctx)
	if err != nil {
		p = nil
	}
	usd := usdValue(amount, p)
	if usd != nil {
		// Total position value: the WCO leg plus the matching token leg.
		usd.Mul(usd, big.NewRat(2, 1))
		if usd.Cmp(w.minUSD) < 0 {
			return nil, nil
		}
	}

	return &model.Alert{
		Kind:     kind,
		TxHash:   l.TxHash,
		Amount:   amount,
		USD:      usd,
		Pool:     pair.Address,
		PairName: w.pairName(pair),
		DedupKey: l.TxHash,
	}, nil
}

// ensurePair registers the pair from a PairCreated log if it involves
// wrapped WCO. Returns the pair and whether it was newly registered.
func (w *liquidityWatcher) ensurePair(ctx context.Context, l model.LogEntry) (model.Pair, bool, error) {
	pairAddr := strings.ToLower(l.Param("pair"))
	token0 := strings.ToLower(l.Param("token0"))
	token1 := strings.ToLower(l.Param("token1"))

	// Indexed topics carry the token addresses when the explorer did not
	// decode the event.
	if token0 == "" && len(l.Topics) > 2 {
		token0 = topicAddr(l.Topics[1])
		token1 = topicAddr(l.Topics[2])
	}
	if pairAddr == "" || token0 == "" || token1 == "" {
		return model.Pair{}, false, fmt.Errorf("pair created log %s missing parameters", l.Key())
	}

	if !model.SameAddr(token0, w.wwco) && !model.SameAddr(token1, w.wwco) {
		return model.Pair{}, false, nil
	}

	w.mu.Lock()
	existing, known := w.pairs[pairAddr]
	w.mu.Unlock()
	if known {
		return existing, false, nil
	}

	t0, err := w.tokenInfo(ctx, token0)
	if err != nil {
		return model.Pair{}, false, err
	}
	t1, err := w.tokenInfo(ctx, token1)
	if err != nil {
		return model.Pair{}, false, err
	}

	pair := model.Pair{Address: pairAddr, Token0: t0, Token1: t1}

	w.mu.Lock()
	w.pairs[pairAddr] = pair
	w.mu.Unlock()
	w.persistPairs()

	w.d.Logger.Info("tracking new pair",
		"pair", pairAddr,
		"name", w.pairName(pair),
	)
	return pair, true, nil
}

func (w *liquidityWatcher) tokenInfo(ctx context.Context, addr string) (model.TokenInfo, error) {
	if model.SameAddr(addr, w.wwco) {
		return model.TokenInfo{Address: w.wwco, Symbol: "WCO", Decimals: 18}, nil
	}
	return w.d.Explorer.Token(ctx, addr)
}

func (w *liquidityWatcher) pairName(p model.Pair) string {
	other := p.CounterToken(w.wwco)
	symbol := other.Symbol
	if symbol == "" {
		symbol = format.ShortAddr(other.Address)
	}
	return "WCO/" + symbol
}

func (w *liquidityWatcher) knownPairs() []model.Pair {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]model.Pair, 0, len(w.pairs))
	for _, p := range w.pairs {
		out = append(out, p)
	}
	return out
}

func (w *liquidityWatcher) restorePairs() {
	var pairs []model.Pair
	ok, err := w.d.Store.Load(pairsSection, &pairs)
	if err != nil {
		w.d.Logger.Warn("pair list restore failed", "error", err)
		return
	}
	if !ok {
		return
	}
	for _, p := range pairs {
		w.pairs[strings.ToLower(p.Address)] = p
	}
}

func (w *liquidityWatcher) persistPairs() {
	pairs := w.knownPairs()
	if err := w.d.Store.Save(pairsSection, pairs); err != nil {
		w.d.Logger.Warn("pair list persist failed", "error", err)
	}
}

func (w *liquidityWatcher) render(a model.Alert) (string, notify.ParseMode) {
	webURL := w.d.WebURL

	if a.Kind == model.KindNewPair {
		var b strings.Builder
		fmt.Fprintf(&b, "🆕 New W-Swap pair: %s\n\n", a.PairName)
		fmt.Fprintf(&b, "Pair: %s\n", format.AddrLink(webURL, a.Pool))
		fmt.Fprintf(&b, "Tx: %s", format.TxLink(webURL, a.TxHash))
		return b.String(), notify.ModePlain
	}

	verb := "added to"
	emoji := "💧"
	if a.Kind == model.KindLiquidityRemove {
		verb = "removed from"
		emoji = "📉"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Liquidity %s %s\n\n", emoji, verb, a.PairName)
	fmt.Fprintf(&b, "Amount: %s WCO", format.WCO(a.Amount))
	if a.USD != nil {
		fmt.Fprintf(&b, " (%s total)", format.USD(a.USD))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Tx: %s", format.TxLink(webURL, a.TxHash))
	return b.String(), notify.ModePlain
}

// topicAddr extracts the address from a 32-byte indexed topic.
func topicAddr(topic string) string {
	t := strings.TrimPrefix(strings.ToLower(topic), "0x")
	if len(t) < 40 {
		return ""
	}
	return "0x" + t[len(t)-40:]
}
