package watch

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/wchain-tools/wco-alertbot/internal/config"
	"github.com/wchain-tools/wco-alertbot/internal/format"
	"github.com/wchain-tools/wco-alertbot/internal/model"
	"github.com/wchain-tools/wco-alertbot/internal/notify"
	"github.com/wchain-tools/wco-alertbot/internal/state"
)

const reportSection = "daily_report"

// reportSnapshot is yesterday's figures, kept to compute day-over-day
// deltas. Price is stored as a rational string so no precision is lost.
type reportSnapshot struct {
	Date              string `json:"date"`
	Price             string `json:"price,omitempty"`
	TotalTransactions int64  `json:"total_transactions"`
	TotalAddresses    int64  `json:"total_addresses"`
	TotalBlocks       int64  `json:"total_blocks"`
}

// DailyReport posts a network summary once a day. It is a scheduled job
// rather than a polling watcher: there is no feed to cursor over.
type DailyReport struct {
	cfg    config.DailyReportConfig
	ex     Explorer
	oracle OracleSource
	sender notify.Sender
	store  *state.Store
	logger *slog.Logger
}

// NewDailyReport creates the report job. oracle may be nil.
func NewDailyReport(cfg config.DailyReportConfig, ex Explorer, oracle OracleSource, sender notify.Sender, store *state.Store, logger *slog.Logger) *DailyReport {
	if logger == nil {
		logger = slog.Default()
	}
	return &DailyReport{
		cfg:    cfg,
		ex:     ex,
		oracle: oracle,
		sender: sender,
		store:  store,
		logger: logger.With("watcher", "report"),
	}
}

// Run gathers the day's figures, posts the report and stores the new
// snapshot. The snapshot is only replaced after a successful send.
func (r *DailyReport) Run(ctx context.Context) {
	if !r.cfg.Enabled {
		return
	}

	stats, err := r.ex.Stats(ctx)
	if err != nil {
		r.logger.Warn("stats fetch failed", "error", err)
		return
	}

	var price *big.Rat
	var supply *big.Int
	if r.oracle != nil {
		if p, err := r.oracle.Price(ctx); err == nil {
			price = p
		} else {
			r.logger.Warn("price fetch failed", "error", err)
		}
		if s, err := r.oracle.Supply(ctx); err == nil {
			supply = s.Circulating
		} else {
			r.logger.Warn("supply fetch failed", "error", err)
		}
	}

	var prev reportSnapshot
	havePrev := false
	if ok, err := r.store.Load(reportSection, &prev); err != nil {
		r.logger.Warn("report snapshot load failed", "error", err)
	} else {
		havePrev = ok
	}

	text := r.render(stats, price, supply, prev, havePrev)
	if err := r.sender.Send(ctx, r.cfg.Channel, text, notify.ModePlain); err != nil {
		r.logger.Warn("report delivery failed", "error", err)
		return
	}

	next := reportSnapshot{
		Date:              time.Now().UTC().Format("2006-01-02"),
		TotalTransactions: stats.TotalTransactions,
		TotalAddresses:    stats.TotalAddresses,
		TotalBlocks:       stats.TotalBlocks,
	}
	if price != nil {
		next.Price = price.RatString()
	}
	if err := r.store.Save(reportSection, next); err != nil {
		r.logger.Warn("report snapshot persist failed", "error", err)
	}
	r.logger.Info("daily report sent")
}

func (r *DailyReport) render(stats model.NetworkStats, price *big.Rat, supply *big.Int, prev reportSnapshot, havePrev bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 W-Chain Daily Report (%s)\n\n", time.Now().UTC().Format("Jan 2, 2006"))

	if price != nil {
		fmt.Fprintf(&b, "WCO price: %s", format.Price(price))
		if havePrev && prev.Price != "" {
			if old, ok := new(big.Rat).SetString(prev.Price); ok && old.Sign() > 0 {
				b.WriteString(priceDelta(price, old))
			}
		}
		b.WriteString("\n")
	}
	if supply != nil {
		fmt.Fprintf(&b, "Circulating supply: %s WCO\n", format.WCO(supply))
	}

	fmt.Fprintf(&b, "Transactions: %s%s\n",
		format.Comma(stats.TotalTransactions),
		countDelta(stats.TotalTransactions, prev.TotalTransactions, havePrev))
	fmt.Fprintf(&b, "Addresses: %s%s\n",
		format.Comma(stats.TotalAddresses),
		countDelta(stats.TotalAddresses, prev.TotalAddresses, havePrev))
	fmt.Fprintf(&b, "Blocks: %s%s",
		format.Comma(stats.TotalBlocks),
		countDelta(stats.TotalBlocks, prev.TotalBlocks, havePrev))
	return b.String()
}

func countDelta(now, before int64, havePrev bool) string {
	if !havePrev || now < before {
		return ""
	}
	return fmt.Sprintf(" (+%s today)", format.Comma(now-before))
}

// priceDelta renders the percentage move since the previous snapshot.
func priceDelta(now, old *big.Rat) string {
	diff := new(big.Rat).Sub(now, old)
	pct := new(big.Rat).Quo(diff, old)
	pct.Mul(pct, big.NewRat(100, 1))

	sign := "+"
	if pct.Sign() < 0 {
		sign = ""
	}
	return fmt.Sprintf(" (%s%s%%)", sign, pct.FloatString(2))
}
