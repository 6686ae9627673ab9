package config

import (
	"log/slog"
	"strings"
	"time"
)

// BotConfig is the root configuration for an alertbot instance.
type BotConfig struct {
	Log         LogConfig          `yaml:"log"`
	Telegram    TelegramConfig     `yaml:"telegram"`
	Explorer    ExplorerConfig     `yaml:"explorer"`
	Price       PriceConfig        `yaml:"price"`
	State       StateConfig        `yaml:"state"`
	Metrics     MetricsConfig      `yaml:"metrics"`
	Buyback     BuybackConfig      `yaml:"buyback"`
	Whale       WhaleConfig        `yaml:"whale"`
	Exchange    ExchangeFlowConfig `yaml:"exchange_flow"`
	Dex         DexConfig          `yaml:"dex"`
	Liquidity   LiquidityConfig    `yaml:"liquidity"`
	DailyReport DailyReportConfig  `yaml:"daily_report"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// TelegramConfig holds bot API settings.
type TelegramConfig struct {
	Token string `yaml:"token"`
}

// ExplorerConfig holds Blockscout API settings.
type ExplorerConfig struct {
	APIURL     string        `yaml:"api_url"` // v2 REST base
	WebURL     string        `yaml:"web_url"` // Browser-facing base for links
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
	PageSize   int           `yaml:"page_size"`
}

// PriceConfig holds the WCO price oracle settings.
type PriceConfig struct {
	PriceURL  string        `yaml:"price_url"`
	SupplyURL string        `yaml:"supply_url"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
}

// StateConfig holds persistence settings.
type StateConfig struct {
	Path string `yaml:"path"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}

// BuybackConfig watches incoming native transfers to the buyback wallet.
// Alerts broadcast to chats that opted in via the toggle command.
type BuybackConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Wallet       string        `yaml:"wallet"`
	MinAmountWCO int64         `yaml:"min_amount_wco"`
	Interval     time.Duration `yaml:"interval"`
}

// WhaleConfig watches router internal transactions for large buys.
type WhaleConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Router   string        `yaml:"router"`
	Channel  string        `yaml:"channel"`
	Interval time.Duration `yaml:"interval"`

	// Message tiers in whole WCO; each tier gets its own template.
	Tier1WCO int64 `yaml:"tier1_wco"`
	Tier2WCO int64 `yaml:"tier2_wco"`
	Tier3WCO int64 `yaml:"tier3_wco"`
}

// ExchangeConfig names one watched exchange wallet.
type ExchangeConfig struct {
	Name   string `yaml:"name"`
	Wallet string `yaml:"wallet"`
}

// ExchangeFlowConfig watches deposits and withdrawals on exchange wallets.
type ExchangeFlowConfig struct {
	Enabled      bool             `yaml:"enabled"`
	Channel      string           `yaml:"channel"`
	MinAmountWCO int64            `yaml:"min_amount_wco"`
	Interval     time.Duration    `yaml:"interval"`
	Exchanges    []ExchangeConfig `yaml:"exchanges"`
}

// PoolConfig names one watched DEX pool contract.
type PoolConfig struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

// DexConfig watches swap activity: router buys, pool transfers and
// network-wide whale moves.
type DexConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Channel  string        `yaml:"channel"`
	Router   string        `yaml:"router"`
	WWCO     string        `yaml:"wwco"` // Wrapped WCO, identifies swap direction
	Pools    []PoolConfig  `yaml:"pools"`
	Interval time.Duration `yaml:"interval"`

	MinBuyWCO       int64 `yaml:"min_buy_wco"`
	MinSellWCO      int64 `yaml:"min_sell_wco"`
	MinLiquidityWCO int64 `yaml:"min_liquidity_wco"`
	WhaleMoveWCO    int64 `yaml:"whale_move_wco"`

	CacheSize int `yaml:"cache_size"`
}

// LiquidityConfig watches W-Swap factory and pair events.
type LiquidityConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Channel     string        `yaml:"channel"`
	Factory     string        `yaml:"factory"`
	WWCO        string        `yaml:"wwco"` // Wrapped WCO token address
	MinUSD      int64         `yaml:"min_usd"`
	Interval    time.Duration `yaml:"interval"`
	PairRefresh time.Duration `yaml:"pair_refresh"`
	CacheSize   int           `yaml:"cache_size"`
}

// DailyReportConfig sends the daily network summary.
type DailyReportConfig struct {
	Enabled bool   `yaml:"enabled"`
	Channel string `yaml:"channel"`
	Hour    int    `yaml:"hour"`   // UTC
	Minute  int    `yaml:"minute"` // UTC
}
