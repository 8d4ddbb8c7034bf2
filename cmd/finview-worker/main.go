package main

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"finview/internal/cli"
	"finview/internal/log"
	"finview/internal/market"
	"finview/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	settings := market.LoadSettings(cfg.UserSettingsPath, logger)
	stocks := market.NewStockClient(cfg.StockAPIURL, cfg.StockAPIKey, cfg.FetchTimeout, logger)
	prices := market.NewPriceCache(cfg.StockCachePath, stocks, logger)

	w := worker.NewRefreshWorker(prices, settings, cfg.RefreshInterval, logger)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	broker := cli.InitAMQP(logger, cfg)
	defer broker.Close()
	if broker != nil {
		journal := worker.NewNotificationJournal(
			filepath.Join(cfg.ResultsDir, "notifications.jsonl"), logger)
		go func() {
			err := broker.ConsumeReportGenerated(ctx, journal.Record)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("Report notification consumer stopped", log.FieldError, err.Error())
			}
		}()
	}

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker error", log.FieldError, err.Error())
	}
	cli.WaitForShutdown(ctx, done)
}
