package watch

import (
	"context"
	"log/slog"
	"math/big"

	"github.com/wchain-tools/wco-alertbot/internal/model"
	"github.com/wchain-tools/wco-alertbot/internal/notify"
	"github.com/wchain-tools/wco-alertbot/internal/state"
)

// Explorer is the slice of the explorer client the watchers use.
type Explorer interface {
	AddressTransactions(ctx context.Context, addr, filter string, limit int) ([]model.Transaction, error)
	AddressInternalTransactions(ctx context.Context, addr string, limit int) ([]model.InternalTransaction, error)
	AddressLogs(ctx context.Context, addr string, limit int) ([]model.LogEntry, error)
	RecentTransactions(ctx context.Context, limit int) ([]model.Transaction, error)
	TransactionTokenTransfers(ctx context.Context, hash string) ([]model.TokenTransfer, error)
	Token(ctx context.Context, addr string) (model.TokenInfo, error)
	Stats(ctx context.Context) (model.NetworkStats, error)
}

// PriceSource provides the WCO/USD price. Implementations return
// (nil, nil) when no price is available.
type PriceSource interface {
	Price(ctx context.Context) (*big.Rat, error)
}

// OracleSource extends PriceSource with supply figures for the report.
type OracleSource interface {
	PriceSource
	Supply(ctx context.Context) (model.SupplyInfo, error)
}

// noPrice is the PriceSource used when no oracle is configured.
type noPrice struct{}

func (noPrice) Price(ctx context.Context) (*big.Rat, error) { return nil, nil }

// Deps bundles the shared dependencies handed to every watcher.
type Deps struct {
	Explorer Explorer
	Price    PriceSource
	Store    *state.Store
	Sender   notify.Sender
	Logger   *slog.Logger
	PageSize int
	WebURL   string // explorer base for message links
}

func (d Deps) price() PriceSource {
	if d.Price == nil {
		return noPrice{}
	}
	return d.Price
}

// Group collects the engines for the command surface and manual polls.
type Group struct {
	engines []*Engine
	logger  *slog.Logger
}

// NewGroup creates an empty group.
func NewGroup(logger *slog.Logger) *Group {
	if logger == nil {
		logger = slog.Default()
	}
	return &Group{logger: logger}
}

// Add registers an engine.
func (g *Group) Add(e *Engine) {
	g.engines = append(g.engines, e)
}

// PokeAll runs one cycle of every watcher, sequentially.
func (g *Group) PokeAll(ctx context.Context) {
	g.logger.Info("manual poll requested")
	for _, e := range g.engines {
		e.Poll(ctx)
	}
}

// StatusLines returns one summary line per watcher.
func (g *Group) StatusLines() []string {
	out := make([]string, 0, len(g.engines))
	for _, e := range g.engines {
		out = append(out, e.StatusLine())
	}
	return out
}
