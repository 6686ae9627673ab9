package watch

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/wchain-tools/wco-alertbot/internal/format"
	"github.com/wchain-tools/wco-alertbot/internal/model"
)

// Overview answers the on-demand network stats command: current price,
// market cap, supply and chain-wide counters in one message.
type Overview struct {
	ex     Explorer
	oracle OracleSource
	logger *slog.Logger
}

// NewOverview creates the overview renderer. oracle may be nil; the
// message then carries only the explorer counters.
func NewOverview(ex Explorer, oracle OracleSource, logger *slog.Logger) *Overview {
	if logger == nil {
		logger = slog.Default()
	}
	return &Overview{ex: ex, oracle: oracle, logger: logger}
}

// Summary fetches and renders the current network overview. Oracle
// failures degrade the message; explorer failures fail the call.
func (o *Overview) Summary(ctx context.Context) (string, error) {
	stats, err := o.ex.Stats(ctx)
	if err != nil {
		return "", fmt.Errorf("network stats: %w", err)
	}

	var price *big.Rat
	var supply model.SupplyInfo
	if o.oracle != nil {
		if p, err := o.oracle.Price(ctx); err == nil {
			price = p
		} else {
			o.logger.Warn("price fetch failed", "error", err)
		}
		if s, err := o.oracle.Supply(ctx); err == nil {
			supply = s
		} else {
			o.logger.Warn("supply fetch failed", "error", err)
		}
	}

	var b strings.Builder
	b.WriteString("🌐 W-Chain Overview\n\n")

	if price != nil {
		fmt.Fprintf(&b, "WCO price: %s\n", format.Price(price))
	}
	if supply.Circulating != nil {
		fmt.Fprintf(&b, "Circulating supply: %s WCO\n", format.WCO(supply.Circulating))
		if mcap := usdValue(supply.Circulating, price); mcap != nil {
			fmt.Fprintf(&b, "Market cap: %s\n", format.USD(mcap))
		}
	}
	if supply.Total != nil {
		fmt.Fprintf(&b, "Total supply: %s WCO\n", format.WCO(supply.Total))
	}

	fmt.Fprintf(&b, "Transactions: %s\n", format.Comma(stats.TotalTransactions))
	fmt.Fprintf(&b, "Addresses: %s\n", format.Comma(stats.TotalAddresses))
	fmt.Fprintf(&b, "Blocks: %s", format.Comma(stats.TotalBlocks))
	if stats.AverageBlockTime > 0 {
		fmt.Fprintf(&b, "\nAverage block time: %s", stats.AverageBlockTime.Round(100*time.Millisecond))
	}

	return b.String(), nil
}
