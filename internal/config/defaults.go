package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultAPIURL     = "https://scan.w-chain.com/api/v2"
	DefaultWebURL     = "https://scan.w-chain.com"
	DefaultAPITimeout = 30 * time.Second
	DefaultMaxRetries = 3
	DefaultPageSize   = 50

	DefaultPriceTTL = 5 * time.Minute

	DefaultStatePath = "alert_state.json"

	DefaultMetricsPort = 9091
	DefaultMetricsPath = "/metrics"

	DefaultPollInterval = 60 * time.Second
	DefaultPairRefresh  = 30 * time.Minute

	DefaultWhaleTier1 = 500_000
	DefaultWhaleTier2 = 1_000_000
	DefaultWhaleTier3 = 5_000_000

	DefaultDexCacheSize       = 1000
	DefaultLiquidityCacheSize = 2000

	DefaultReportHour = 9
)

func (c *BotConfig) applyDefaults() {
	// Explorer defaults
	if c.Explorer.APIURL == "" {
		c.Explorer.APIURL = DefaultAPIURL
	}
	if c.Explorer.WebURL == "" {
		c.Explorer.WebURL = DefaultWebURL
	}
	if c.Explorer.Timeout == 0 {
		c.Explorer.Timeout = DefaultAPITimeout
	}
	if c.Explorer.MaxRetries == 0 {
		c.Explorer.MaxRetries = DefaultMaxRetries
	}
	if c.Explorer.PageSize == 0 {
		c.Explorer.PageSize = DefaultPageSize
	}

	// Price defaults
	if c.Price.CacheTTL == 0 {
		c.Price.CacheTTL = DefaultPriceTTL
	}

	// State defaults
	if c.State.Path == "" {
		c.State.Path = DefaultStatePath
	}

	// Metrics defaults
	if c.Metrics.Port == 0 {
		c.Metrics.Port = DefaultMetricsPort
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}

	// Watcher intervals
	if c.Buyback.Interval == 0 {
		c.Buyback.Interval = DefaultPollInterval
	}
	if c.Whale.Interval == 0 {
		c.Whale.Interval = DefaultPollInterval
	}
	if c.Exchange.Interval == 0 {
		c.Exchange.Interval = DefaultPollInterval
	}
	if c.Dex.Interval == 0 {
		c.Dex.Interval = DefaultPollInterval
	}
	if c.Liquidity.Interval == 0 {
		c.Liquidity.Interval = DefaultPollInterval
	}
	if c.Liquidity.PairRefresh == 0 {
		c.Liquidity.PairRefresh = DefaultPairRefresh
	}

	// Whale tiers
	if c.Whale.Tier1WCO == 0 {
		c.Whale.Tier1WCO = DefaultWhaleTier1
	}
	if c.Whale.Tier2WCO == 0 {
		c.Whale.Tier2WCO = DefaultWhaleTier2
	}
	if c.Whale.Tier3WCO == 0 {
		c.Whale.Tier3WCO = DefaultWhaleTier3
	}

	// Dedup cache sizes
	if c.Dex.CacheSize == 0 {
		c.Dex.CacheSize = DefaultDexCacheSize
	}
	if c.Liquidity.CacheSize == 0 {
		c.Liquidity.CacheSize = DefaultLiquidityCacheSize
	}

	// Daily report
	if c.DailyReport.Hour == 0 && c.DailyReport.Minute == 0 {
		c.DailyReport.Hour = DefaultReportHour
	}
}
