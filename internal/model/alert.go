package model

import (
	"math/big"
	"time"
)

// AlertKind classifies an alert for thresholds, metrics and rendering.
type AlertKind string

const (
	KindBuyback         AlertKind = "buyback"
	KindWhaleTransfer   AlertKind = "whale_transfer"
	KindInflow          AlertKind = "inflow"
	KindOutflow         AlertKind = "outflow"
	KindBuy             AlertKind = "buy"
	KindSell            AlertKind = "sell"
	KindLiquidityAdd    AlertKind = "liquidity_add"
	KindLiquidityRemove AlertKind = "liquidity_remove"
	KindWhaleMove       AlertKind = "whale_move"
	KindNewPair         AlertKind = "new_pair"
)

// Alert is a classified on-chain event ready for rendering and delivery.
type Alert struct {
	Kind     AlertKind
	TxHash   string
	From     string
	To       string
	Amount   *big.Int // Native amount in wei, nil when not applicable
	USD      *big.Rat // Optional USD valuation
	Exchange string   // Exchange label (inflow/outflow)
	Pool     string   // Pool or pair address (dex/liquidity)
	PairName string   // e.g. "WCO/USDT"
	When     time.Time

	// DedupKey identifies the underlying event across streams. Empty means
	// the alert is never suppressed by the processed-id cache.
	DedupKey string
}
