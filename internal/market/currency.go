package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"finview/internal/log"
)

// Rate is one currency quote for the dashboard.
type Rate struct {
	Currency string  `json:"currency"`
	Rate     float64 `json:"rate"`
}

// CurrencyClient fetches daily currency rates from the central bank
// JSON feed. One attempt, fixed timeout, no retry.
type CurrencyClient struct {
	url        string
	httpClient *http.Client
	logger     *log.Logger
}

func NewCurrencyClient(url string, timeout time.Duration, logger *log.Logger) *CurrencyClient {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &CurrencyClient{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.WithComponent(log.ComponentMarket),
	}
}

type dailyRatesResponse struct {
	Valute map[string]struct {
		Value float64 `json:"Value"`
	} `json:"Valute"`
}

// Rates returns quotes for the requested currency codes, preserving
// request order. Provider failure degrades to an empty slice; a code
// missing from the feed is logged and skipped. Never returns an error.
func (c *CurrencyClient) Rates(ctx context.Context, codes []string) []Rate {
	body, err := c.fetch(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "Currency rates fetch failed",
			log.FieldOperation, log.OpFetch, log.FieldError, err.Error())
		return []Rate{}
	}

	rates := make([]Rate, 0, len(codes))
	for _, code := range codes {
		info, ok := body.Valute[code]
		if !ok {
			c.logger.WarnContext(ctx, "Currency missing from provider response",
				log.FieldCurrency, code)
			continue
		}
		rates = append(rates, Rate{Currency: code, Rate: info.Value})
	}

	c.logger.InfoContext(ctx, "Currency rates fetched", log.FieldCount, len(rates))
	return rates
}

func (c *CurrencyClient) fetch(ctx context.Context) (*dailyRatesResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body dailyRatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode rates: %w", err)
	}
	return &body, nil
}
