package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/wchain-tools/wco-alertbot/internal/format"
	"github.com/wchain-tools/wco-alertbot/internal/model"
	"github.com/wchain-tools/wco-alertbot/internal/version"
)

// Oracle fetches the WCO/USD price and supply figures, caching answers for
// a short TTL. A stale price is better than no price, so fetch failures
// fall back to the last good value when one exists.
type Oracle struct {
	priceURL   string
	supplyURL  string
	ttl        time.Duration
	httpClient *http.Client
	logger     *slog.Logger

	mu       sync.Mutex
	price    *big.Rat
	priceAt  time.Time
	supply   *model.SupplyInfo
	supplyAt time.Time
}

// NewOracle creates a price oracle client. supplyURL may be empty when
// supply lookups are not needed.
func NewOracle(priceURL, supplyURL string, ttl time.Duration, logger *slog.Logger) *Oracle {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Oracle{
		priceURL:   priceURL,
		supplyURL:  supplyURL,
		ttl:        ttl,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

type wirePrice struct {
	Price string `json:"price"`
}

type wireSupply struct {
	TotalSupply       string `json:"total_supply"`
	CirculatingSupply string `json:"circulating_supply"`
}

// Price returns the current WCO/USD price. Returns nil (no error) when no
// oracle is configured, so callers can render alerts without USD values.
func (o *Oracle) Price(ctx context.Context) (*big.Rat, error) {
	if o.priceURL == "" {
		return nil, nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.price != nil && time.Since(o.priceAt) < o.ttl {
		return o.price, nil
	}

	var w wirePrice
	if err := o.fetch(ctx, o.priceURL, &w); err != nil {
		if o.price != nil {
			o.logger.Warn("price fetch failed, using stale price",
				"age", time.Since(o.priceAt),
				"error", err,
			)
			return o.price, nil
		}
		return nil, err
	}

	p, ok := new(big.Rat).SetString(w.Price)
	if !ok {
		return nil, fmt.Errorf("oracle returned invalid price %q", w.Price)
	}

	o.price = p
	o.priceAt = time.Now()
	return p, nil
}

// Supply returns total and circulating supply in wei.
func (o *Oracle) Supply(ctx context.Context) (model.SupplyInfo, error) {
	if o.supplyURL == "" {
		return model.SupplyInfo{}, nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.supply != nil && time.Since(o.supplyAt) < o.ttl {
		return *o.supply, nil
	}

	var w wireSupply
	if err := o.fetch(ctx, o.supplyURL, &w); err != nil {
		if o.supply != nil {
			return *o.supply, nil
		}
		return model.SupplyInfo{}, err
	}

	total, err := format.ParseWei(w.TotalSupply)
	if err != nil {
		return model.SupplyInfo{}, fmt.Errorf("invalid total supply: %w", err)
	}
	circulating, err := format.ParseWei(w.CirculatingSupply)
	if err != nil {
		return model.SupplyInfo{}, fmt.Errorf("invalid circulating supply: %w", err)
	}

	info := model.SupplyInfo{Total: total, Circulating: circulating}
	o.supply = &info
	o.supplyAt = time.Now()
	return info, nil
}

func (o *Oracle) fetch(ctx context.Context, rawURL string, into any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       body,
		}
	}

	if err := json.Unmarshal(body, into); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
