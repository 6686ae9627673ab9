package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	yaml := `
telegram:
  token: test-token
explorer:
  api_url: https://scan.example.com/api/v2
buyback:
  enabled: true
  wallet: "0xBuyback"
  min_amount_wco: 10000
  interval: 90s
exchange_flow:
  enabled: true
  channel: "@wcoflow"
  exchanges:
    - name: Bitrue
      wallet: "0xBitrue"
    - name: MEXC
      wallet: "0xMexc"
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Telegram.Token != "test-token" {
		t.Errorf("Telegram.Token = %q, want %q", cfg.Telegram.Token, "test-token")
	}
	if cfg.Explorer.APIURL != "https://scan.example.com/api/v2" {
		t.Errorf("Explorer.APIURL = %q", cfg.Explorer.APIURL)
	}
	if cfg.Buyback.MinAmountWCO != 10000 {
		t.Errorf("Buyback.MinAmountWCO = %d, want 10000", cfg.Buyback.MinAmountWCO)
	}
	if cfg.Buyback.Interval != 90*time.Second {
		t.Errorf("Buyback.Interval = %v, want 90s", cfg.Buyback.Interval)
	}
	if len(cfg.Exchange.Exchanges) != 2 || cfg.Exchange.Exchanges[1].Name != "MEXC" {
		t.Errorf("Exchange.Exchanges = %+v", cfg.Exchange.Exchanges)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_BOT_TOKEN", "secret123")

	yaml := `
telegram:
  token: ${TEST_BOT_TOKEN}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Telegram.Token != "secret123" {
		t.Errorf("Telegram.Token = %q, want %q", cfg.Telegram.Token, "secret123")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	yaml := `
telegram:
  token: test-token
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.Explorer.APIURL != DefaultAPIURL {
		t.Errorf("Explorer.APIURL = %q, want default", cfg.Explorer.APIURL)
	}
	if cfg.Explorer.Timeout != DefaultAPITimeout {
		t.Errorf("Explorer.Timeout = %v, want %v", cfg.Explorer.Timeout, DefaultAPITimeout)
	}
	if cfg.State.Path != DefaultStatePath {
		t.Errorf("State.Path = %q, want %q", cfg.State.Path, DefaultStatePath)
	}
	if cfg.Whale.Tier1WCO != DefaultWhaleTier1 {
		t.Errorf("Whale.Tier1WCO = %d, want %d", cfg.Whale.Tier1WCO, DefaultWhaleTier1)
	}
	if cfg.Liquidity.CacheSize != DefaultLiquidityCacheSize {
		t.Errorf("Liquidity.CacheSize = %d, want %d", cfg.Liquidity.CacheSize, DefaultLiquidityCacheSize)
	}
	if cfg.DailyReport.Hour != DefaultReportHour {
		t.Errorf("DailyReport.Hour = %d, want %d", cfg.DailyReport.Hour, DefaultReportHour)
	}
}

func TestValidate(t *testing.T) {
	base := func() *BotConfig {
		cfg := &BotConfig{}
		cfg.Telegram.Token = "tok"
		cfg.applyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*BotConfig)
		wantErr bool
	}{
		{"minimal valid", func(c *BotConfig) {}, false},
		{"missing token", func(c *BotConfig) { c.Telegram.Token = "" }, true},
		{"bad page size", func(c *BotConfig) { c.Explorer.PageSize = -1 }, true},
		{"bad metrics port", func(c *BotConfig) {
			c.Metrics.Enabled = true
			c.Metrics.Port = 70000
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDisableInvalidWatchers(t *testing.T) {
	base := func() *BotConfig {
		cfg := &BotConfig{}
		cfg.Telegram.Token = "tok"
		cfg.applyDefaults()
		return cfg
	}

	tests := []struct {
		name        string
		mutate      func(*BotConfig)
		wantIssue   string
		stillActive func(*BotConfig) bool
	}{
		{"buyback without wallet", func(c *BotConfig) {
			c.Buyback.Enabled = true
		}, "buyback", func(c *BotConfig) bool { return !c.Buyback.Enabled }},
		{"whale without channel", func(c *BotConfig) {
			c.Whale.Enabled = true
			c.Whale.Router = "0xrouter"
		}, "whale", func(c *BotConfig) bool { return !c.Whale.Enabled }},
		{"whale tiers descending", func(c *BotConfig) {
			c.Whale.Enabled = true
			c.Whale.Router = "0xrouter"
			c.Whale.Channel = "@ch"
			c.Whale.Tier1WCO = 9_000_000
		}, "whale", func(c *BotConfig) bool { return !c.Whale.Enabled }},
		{"exchange flow without wallets", func(c *BotConfig) {
			c.Exchange.Enabled = true
			c.Exchange.Channel = "@ch"
		}, "exchange_flow", func(c *BotConfig) bool { return !c.Exchange.Enabled }},
		{"dex without router or pools", func(c *BotConfig) {
			c.Dex.Enabled = true
			c.Dex.Channel = "@ch"
		}, "dex", func(c *BotConfig) bool { return !c.Dex.Enabled }},
		{"dex pools without wwco", func(c *BotConfig) {
			c.Dex.Enabled = true
			c.Dex.Channel = "@ch"
			c.Dex.Pools = []PoolConfig{{Name: "WCO/USDT", Address: "0xpool"}}
		}, "dex", func(c *BotConfig) bool { return !c.Dex.Enabled }},
		{"liquidity without factory", func(c *BotConfig) {
			c.Liquidity.Enabled = true
			c.Liquidity.Channel = "@ch"
			c.Liquidity.WWCO = "0xwwco"
		}, "liquidity", func(c *BotConfig) bool { return !c.Liquidity.Enabled }},
		{"report bad hour", func(c *BotConfig) {
			c.DailyReport.Enabled = true
			c.DailyReport.Channel = "@ch"
			c.DailyReport.Hour = 25
		}, "daily_report", func(c *BotConfig) bool { return !c.DailyReport.Enabled }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)

			issues := cfg.DisableInvalidWatchers()
			if _, ok := issues[tt.wantIssue]; !ok {
				t.Errorf("DisableInvalidWatchers() issues = %v, want %q reported", issues, tt.wantIssue)
			}
			if !tt.stillActive(cfg) {
				t.Errorf("watcher %q left enabled despite invalid configuration", tt.wantIssue)
			}
		})
	}
}

func TestDisableInvalidWatchersKeepsHealthyOnes(t *testing.T) {
	cfg := &BotConfig{}
	cfg.Telegram.Token = "tok"
	cfg.applyDefaults()

	// Buyback is broken, whale is complete.
	cfg.Buyback.Enabled = true
	cfg.Whale.Enabled = true
	cfg.Whale.Router = "0xrouter"
	cfg.Whale.Channel = "@ch"

	issues := cfg.DisableInvalidWatchers()
	if len(issues) != 1 {
		t.Fatalf("issues = %v, want exactly the buyback problem", issues)
	}
	if cfg.Buyback.Enabled {
		t.Error("broken buyback watcher left enabled")
	}
	if !cfg.Whale.Enabled {
		t.Error("healthy whale watcher was disabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() after per-watcher check = %v, want nil", err)
	}
}

func TestDexConfigComplete(t *testing.T) {
	c := DexConfig{
		Enabled: true,
		Channel: "@ch",
		Router:  "0xrouter",
		WWCO:    "0xwwco",
		Pools:   []PoolConfig{{Name: "WCO/USDT", Address: "0xpool"}},
	}
	if err := c.validate(); err != nil {
		t.Errorf("validate() = %v, want nil", err)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := (LogConfig{Level: tt.level}).SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
