package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"finview/internal/log"
)

// Quote is one stock price for the dashboard and the cache file.
type Quote struct {
	Stock string  `json:"stock"`
	Price float64 `json:"price"`
}

// QuoteFetcher fetches a single symbol's current price.
type QuoteFetcher interface {
	Quote(ctx context.Context, symbol string) (float64, error)
}

// StockClient fetches per-symbol quotes from the Alpha Vantage global
// quote endpoint. One attempt per symbol, fixed timeout.
type StockClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *log.Logger
}

var _ QuoteFetcher = (*StockClient)(nil)

func NewStockClient(baseURL, apiKey string, timeout time.Duration, logger *log.Logger) *StockClient {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &StockClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.WithComponent(log.ComponentMarket),
	}
}

type globalQuoteResponse struct {
	GlobalQuote struct {
		Price string `json:"05. price"`
	} `json:"Global Quote"`
}

// Quote returns the current price for one symbol.
func (c *StockClient) Quote(ctx context.Context, symbol string) (float64, error) {
	q := url.Values{}
	q.Set("function", "GLOBAL_QUOTE")
	q.Set("symbol", symbol)
	q.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body globalQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode quote: %w", err)
	}
	if body.GlobalQuote.Price == "" {
		return 0, fmt.Errorf("no price in response for %s", symbol)
	}

	price, err := strconv.ParseFloat(body.GlobalQuote.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", body.GlobalQuote.Price, err)
	}

	c.logger.DebugContext(ctx, "Stock quote fetched", log.FieldSymbol, symbol, "price", price)
	return price, nil
}
