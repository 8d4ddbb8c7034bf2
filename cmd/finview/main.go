package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"finview/internal/backend"
	"finview/internal/cli"
	apphttp "finview/internal/http"
	"finview/internal/log"
	"finview/internal/market"
	"finview/internal/reports"
	"finview/internal/services"
	"finview/internal/views"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()

	src, err := backend.NewFactory(logger).Create(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize transaction source", log.FieldError, err.Error())
		os.Exit(1)
	}
	defer src.Close()

	settings := market.LoadSettings(cfg.UserSettingsPath, logger)
	rates := market.NewCurrencyClient(cfg.CurrencyAPIURL, cfg.FetchTimeout, logger)
	stocks := market.NewStockClient(cfg.StockAPIURL, cfg.StockAPIKey, cfg.FetchTimeout, logger)
	prices := market.NewPriceCache(cfg.StockCachePath, stocks, logger)

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Reader:   src.Reader,
		Reports:  reports.NewService(logger),
		Search:   services.NewSearchService(logger),
		Analysis: services.NewAnalysisService(logger),
		Views:    views.NewService(settings, rates, prices, cfg.TopTransactions, logger),
		Logger:   logger,
	})

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	shutdownCtx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		sctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err.Error())
		}
	})

	logger.Info("Starting finview server",
		log.FieldOperation, log.OpStartup,
		"port", cfg.Port,
		log.FieldSource, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err.Error(), "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(shutdownCtx, done)
	logger.Info("Server stopped gracefully")
}
