package worker

import (
	"context"
	"time"

	"finview/internal/log"
	"finview/internal/market"
)

// RefreshWorker keeps the stock price cache warm so dashboard requests
// rarely pay for remote fetches. It refreshes once at startup and then
// on a fixed interval; the cache itself decides which symbols are stale.
type RefreshWorker struct {
	cache    *market.PriceCache
	settings market.Settings
	interval time.Duration
	logger   *log.Logger
}

func NewRefreshWorker(cache *market.PriceCache, settings market.Settings, interval time.Duration, logger *log.Logger) *RefreshWorker {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &RefreshWorker{
		cache:    cache,
		settings: settings,
		interval: interval,
		logger:   logger.WithComponent(log.ComponentWorker),
	}
}

// Run blocks until the context is cancelled.
func (w *RefreshWorker) Run(ctx context.Context) error {
	w.logger.InfoContext(ctx, "Price refresh worker started",
		log.FieldOperation, log.OpStartup,
		"interval", w.interval.String(),
		log.FieldCount, len(w.settings.UserStocks))

	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "Price refresh worker stopping",
				log.FieldOperation, log.OpShutdown)
			return ctx.Err()
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *RefreshWorker) refresh(ctx context.Context) {
	quotes := w.cache.Prices(ctx, w.settings.UserStocks)

	stale := 0
	for _, q := range quotes {
		if q.Price == 0 {
			stale++
		}
	}
	w.logger.InfoContext(ctx, "Price refresh pass completed",
		log.FieldOperation, log.OpRefresh,
		log.FieldCount, len(quotes),
		"zero_priced", stale)
}
