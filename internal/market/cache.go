package market

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"finview/internal/log"
)

// CacheDateLayout is the day stamp recorded in the cache file.
const CacheDateLayout = "02.01.2006"

type cacheFile struct {
	Date   string  `json:"date"`
	Stocks []Quote `json:"stocks"`
}

// PriceCache serves stock quotes from a same-day file cache. A cached
// quote is fresh only when the file's day stamp equals today and the
// price is non-zero; zero is the failed-fetch sentinel. Stale or
// missing symbols are refreshed individually, fresh ones are kept
// (partial refresh), and the file is rewritten with the full
// current-day set.
type PriceCache struct {
	path    string
	fetcher QuoteFetcher
	logger  *log.Logger
	group   singleflight.Group

	// now is injectable for tests.
	now func() time.Time
}

func NewPriceCache(path string, fetcher QuoteFetcher, logger *log.Logger) *PriceCache {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &PriceCache{
		path:    path,
		fetcher: fetcher,
		logger:  logger.WithComponent(log.ComponentCache),
		now:     time.Now,
	}
}

// Prices returns quotes for the requested symbols in request order.
// Fetch failures degrade the affected symbol to the zero sentinel and
// never fail the batch. Concurrent calls for the same symbol set are
// collapsed into one refresh.
func (p *PriceCache) Prices(ctx context.Context, symbols []string) []Quote {
	if len(symbols) == 0 {
		return []Quote{}
	}

	key := strings.Join(symbols, ",")
	v, _, _ := p.group.Do(key, func() (any, error) {
		return p.prices(ctx, symbols), nil
	})
	return v.([]Quote)
}

func (p *PriceCache) prices(ctx context.Context, symbols []string) []Quote {
	today := p.now()
	cached := p.readFresh(today)

	quotes := make([]Quote, 0, len(symbols))
	refreshed := 0
	for _, symbol := range symbols {
		if price, ok := cached[symbol]; ok && price > 0 {
			quotes = append(quotes, Quote{Stock: symbol, Price: price})
			continue
		}

		price, err := p.fetcher.Quote(ctx, symbol)
		if err != nil {
			p.logger.ErrorContext(ctx, "Stock quote fetch failed, using zero sentinel",
				log.FieldSymbol, symbol, log.FieldError, err.Error())
			price = 0
		}
		quotes = append(quotes, Quote{Stock: symbol, Price: price})
		refreshed++
	}

	if refreshed > 0 {
		p.persist(ctx, today, quotes)
	} else {
		p.logger.DebugContext(ctx, "Stock quotes served from cache", log.FieldCount, len(quotes))
	}
	return quotes
}

// readFresh returns the cached symbol prices when the file's day stamp
// equals today. Missing or corrupt files are a plain cache miss.
func (p *PriceCache) readFresh(today time.Time) map[string]float64 {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil
	}

	var file cacheFile
	if err := json.Unmarshal(data, &file); err != nil {
		p.logger.Warn("Price cache file is corrupt, refreshing",
			log.FieldFilePath, p.path, log.FieldError, err.Error())
		return nil
	}

	stamp, err := time.Parse(CacheDateLayout, file.Date)
	if err != nil || !sameDay(stamp, today) {
		return nil
	}

	prices := make(map[string]float64, len(file.Stocks))
	for _, q := range file.Stocks {
		prices[q.Stock] = q.Price
	}
	return prices
}

// persist overwrites the cache file with the full current-day set,
// mixing freshly fetched and still-valid quotes. Failures are logged
// and swallowed.
func (p *PriceCache) persist(ctx context.Context, today time.Time, quotes []Quote) {
	data, err := json.MarshalIndent(cacheFile{
		Date:   today.Format(CacheDateLayout),
		Stocks: quotes,
	}, "", "  ")
	if err != nil {
		p.logger.ErrorContext(ctx, "Price cache marshal failed", log.FieldError, err.Error())
		return
	}
	if err := os.WriteFile(p.path, data, 0644); err != nil {
		p.logger.ErrorContext(ctx, "Price cache write failed",
			log.FieldFilePath, p.path, log.FieldError, err.Error())
		return
	}
	p.logger.InfoContext(ctx, "Price cache refreshed",
		log.FieldOperation, log.OpPersist, log.FieldCount, len(quotes))
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
