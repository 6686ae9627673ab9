package config

import (
	"errors"
	"fmt"
)

// Validate checks the process-wide configuration. Per-watcher problems are
// handled by DisableInvalidWatchers so one misconfigured watcher cannot
// take the whole bot down.
func (c *BotConfig) Validate() error {
	if c.Telegram.Token == "" {
		return errors.New("telegram.token is required")
	}

	if c.Explorer.PageSize < 1 {
		return errors.New("explorer.page_size must be >= 1")
	}

	if c.Metrics.Enabled {
		if c.Metrics.Port < 1 || c.Metrics.Port > 65535 {
			return fmt.Errorf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port)
		}
	}

	return nil
}

// DisableInvalidWatchers checks every enabled watcher and turns off the
// misconfigured ones, leaving the rest running. Returns the reasons keyed
// by watcher name so the caller can log them.
func (c *BotConfig) DisableInvalidWatchers() map[string]error {
	issues := make(map[string]error)

	if c.Buyback.Enabled {
		if err := c.Buyback.validate(); err != nil {
			c.Buyback.Enabled = false
			issues["buyback"] = err
		}
	}
	if c.Whale.Enabled {
		if err := c.Whale.validate(); err != nil {
			c.Whale.Enabled = false
			issues["whale"] = err
		}
	}
	if c.Exchange.Enabled {
		if err := c.Exchange.validate(); err != nil {
			c.Exchange.Enabled = false
			issues["exchange_flow"] = err
		}
	}
	if c.Dex.Enabled {
		if err := c.Dex.validate(); err != nil {
			c.Dex.Enabled = false
			issues["dex"] = err
		}
	}
	if c.Liquidity.Enabled {
		if err := c.Liquidity.validate(); err != nil {
			c.Liquidity.Enabled = false
			issues["liquidity"] = err
		}
	}
	if c.DailyReport.Enabled {
		if err := c.DailyReport.validate(); err != nil {
			c.DailyReport.Enabled = false
			issues["daily_report"] = err
		}
	}

	return issues
}

func (c BuybackConfig) validate() error {
	if c.Wallet == "" {
		return errors.New("buyback.wallet is required")
	}
	if c.MinAmountWCO < 0 {
		return errors.New("buyback.min_amount_wco must be >= 0")
	}
	return nil
}

func (c WhaleConfig) validate() error {
	if c.Router == "" {
		return errors.New("whale.router is required")
	}
	if c.Channel == "" {
		return errors.New("whale.channel is required")
	}
	if c.Tier1WCO > c.Tier2WCO || c.Tier2WCO > c.Tier3WCO {
		return errors.New("whale tiers must be ascending")
	}
	return nil
}

func (c ExchangeFlowConfig) validate() error {
	if c.Channel == "" {
		return errors.New("exchange_flow.channel is required")
	}
	if len(c.Exchanges) == 0 {
		return errors.New("exchange_flow.exchanges must list at least one wallet")
	}
	for i, ex := range c.Exchanges {
		if ex.Name == "" {
			return fmt.Errorf("exchange_flow.exchanges[%d].name is required", i)
		}
		if ex.Wallet == "" {
			return fmt.Errorf("exchange_flow.exchanges[%d].wallet is required", i)
		}
	}
	return nil
}

func (c DexConfig) validate() error {
	if c.Channel == "" {
		return errors.New("dex.channel is required")
	}
	if c.Router == "" && len(c.Pools) == 0 {
		return errors.New("dex requires a router or at least one pool")
	}
	if len(c.Pools) > 0 && c.WWCO == "" {
		return errors.New("dex.wwco is required when pools are configured")
	}
	for i, p := range c.Pools {
		if p.Address == "" {
			return fmt.Errorf("dex.pools[%d].address is required", i)
		}
	}
	return nil
}

func (c LiquidityConfig) validate() error {
	if c.Channel == "" {
		return errors.New("liquidity.channel is required")
	}
	if c.Factory == "" {
		return errors.New("liquidity.factory is required")
	}
	if c.WWCO == "" {
		return errors.New("liquidity.wwco is required")
	}
	return nil
}

func (c DailyReportConfig) validate() error {
	if c.Channel == "" {
		return errors.New("daily_report.channel is required")
	}
	if c.Hour < 0 || c.Hour > 23 {
		return fmt.Errorf("daily_report.hour must be 0-23, got %d", c.Hour)
	}
	if c.Minute < 0 || c.Minute > 59 {
		return fmt.Errorf("daily_report.minute must be 0-59, got %d", c.Minute)
	}
	return nil
}
