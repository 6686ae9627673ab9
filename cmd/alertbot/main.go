package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/wchain-tools/wco-alertbot/internal/config"
	"github.com/wchain-tools/wco-alertbot/internal/explorer"
	"github.com/wchain-tools/wco-alertbot/internal/metrics"
	"github.com/wchain-tools/wco-alertbot/internal/notify"
	"github.com/wchain-tools/wco-alertbot/internal/sched"
	"github.com/wchain-tools/wco-alertbot/internal/state"
	"github.com/wchain-tools/wco-alertbot/internal/version"
	"github.com/wchain-tools/wco-alertbot/internal/watch"
)

func main() {
	configPath := flag.String("config", "configs/alertbot.yaml", "path to config file")
	flag.Parse()

	// .env is optional; deployments usually set the environment directly.
	_ = godotenv.Load()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Rebuild the logger at the configured level.
	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// A misconfigured watcher is turned off; the others keep running.
	for name, err := range cfg.DisableInvalidWatchers() {
		logger.Warn("watcher disabled, configuration invalid",
			"watcher", name,
			"error", err,
		)
	}

	instanceID := uuid.New().String()
	logger.Info("starting alertbot",
		"version", version.Version,
		"commit", version.Commit,
		"instance_id", instanceID,
		"config", *configPath,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Explorer API client
	client := explorer.NewClient(
		cfg.Explorer.APIURL,
		explorer.WithLogger(logger),
		explorer.WithTimeout(cfg.Explorer.Timeout),
		explorer.WithRetries(cfg.Explorer.MaxRetries, time.Second),
	)

	// Price oracle, if configured
	var oracle *explorer.Oracle
	if cfg.Price.PriceURL != "" {
		oracle = explorer.NewOracle(cfg.Price.PriceURL, cfg.Price.SupplyURL, cfg.Price.CacheTTL, logger)
	}

	// Durable watcher state
	store := state.NewStore(cfg.State.Path, logger)
	logger.Info("state store ready", "path", store.Path())

	// Telegram bot
	b, err := bot.New(cfg.Telegram.Token)
	if err != nil {
		logger.Error("failed to create telegram bot", "error", err)
		os.Exit(1)
	}
	sender := notify.NewTelegram(b, logger)

	deps := watch.Deps{
		Explorer: client,
		Store:    store,
		Sender:   sender,
		Logger:   logger,
		PageSize: cfg.Explorer.PageSize,
		WebURL:   cfg.Explorer.WebURL,
	}
	if oracle != nil {
		deps.Price = oracle
	}

	// Addresses the whale-move feed must never flag as wallet activity.
	known := []string{cfg.Buyback.Wallet, cfg.Dex.Router, cfg.Whale.Router}
	for _, p := range cfg.Dex.Pools {
		known = append(known, p.Address)
	}
	for _, ex := range cfg.Exchange.Exchanges {
		known = append(known, ex.Wallet)
	}

	group := watch.NewGroup(logger)
	scheduler := sched.New(logger)

	var buyback *watch.Engine
	if cfg.Buyback.Enabled {
		buyback = watch.NewBuyback(cfg.Buyback, deps)
		group.Add(buyback)
		scheduler.Every("buyback", cfg.Buyback.Interval, buyback.Poll)
	}
	if cfg.Whale.Enabled {
		whale := watch.NewWhale(cfg.Whale, deps)
		group.Add(whale)
		scheduler.Every("whale", cfg.Whale.Interval, whale.Poll)
	}
	if cfg.Exchange.Enabled {
		flows := watch.NewExchangeFlow(cfg.Exchange, deps)
		group.Add(flows)
		scheduler.Every("exchange_flow", cfg.Exchange.Interval, flows.Poll)
	}
	var dex *watch.Engine
	if cfg.Dex.Enabled {
		dex = watch.NewDex(cfg.Dex, known, deps)
		group.Add(dex)
		scheduler.Every("dex", cfg.Dex.Interval, dex.Poll)
	}
	if cfg.Liquidity.Enabled {
		liquidity := watch.NewLiquidity(cfg.Liquidity, deps)
		group.Add(liquidity)
		scheduler.Every("liquidity", cfg.Liquidity.Interval, liquidity.Poll)
	}
	var oracleSrc watch.OracleSource
	if oracle != nil {
		oracleSrc = oracle
	}
	if cfg.DailyReport.Enabled {
		report := watch.NewDailyReport(cfg.DailyReport, client, oracleSrc, sender, store, logger)
		scheduler.DailyAt("daily_report", cfg.DailyReport.Hour, cfg.DailyReport.Minute, report.Run)
	}

	// Chat commands
	cmds := &notify.Commands{
		Poke:       group,
		Status:     group,
		Overview:   watch.NewOverview(client, oracleSrc, logger),
		InstanceID: instanceID,
		Logger:     logger,
	}
	if buyback != nil {
		cmds.Subs = buyback
	}
	if dex != nil {
		cmds.Dex = dex
	}
	cmds.Register(b)

	// Prometheus endpoint
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
		metricsServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler: mux,
		}
		go func() {
			logger.Info("starting metrics server", "port", cfg.Metrics.Port, "path", cfg.Metrics.Path)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	if err := scheduler.Start(ctx); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}

	// Long-polls Telegram until the context is cancelled.
	go b.Start(ctx)
	logger.Info("alertbot running")

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := scheduler.Stop(shutdownCtx); err != nil {
		logger.Warn("scheduler shutdown incomplete", "error", err)
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	logger.Info("alertbot stopped")
}
