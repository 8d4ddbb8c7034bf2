package views

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"finview/internal/core"
	"finview/internal/log"
	"finview/internal/market"
)

// TopTransactionDateLayout formats the day stamp on dashboard
// transaction rows.
const TopTransactionDateLayout = "02.01.2006"

// RatesProvider supplies currency quotes for dashboard payloads.
type RatesProvider interface {
	Rates(ctx context.Context, codes []string) []market.Rate
}

// PricesProvider supplies stock quotes for dashboard payloads.
type PricesProvider interface {
	Prices(ctx context.Context, symbols []string) []market.Quote
}

// CardSummary is the per-card spend and cashback rollup on the home
// dashboard. TotalSpent is the expense sum sign-flipped to positive.
type CardSummary struct {
	LastDigits string  `json:"last_digits"`
	TotalSpent float64 `json:"total_spent"`
	Cashback   float64 `json:"cashback"`
}

// TopTransaction is one row of the top-by-amount list.
type TopTransaction struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// HomePayload is the "home" dashboard report.
type HomePayload struct {
	Greeting        string           `json:"greeting"`
	Cards           []CardSummary    `json:"cards"`
	TopTransactions []TopTransaction `json:"top_transactions"`
	CurrencyRates   []market.Rate    `json:"currency_rates"`
	StockPrices     []market.Quote   `json:"stock_prices"`
}

// Service assembles the home and events dashboard payloads.
type Service struct {
	settings market.Settings
	rates    RatesProvider
	prices   PricesProvider
	topN     int
	logger   *log.Logger

	// now drives the greeting hour; injectable for tests.
	now func() time.Time
}

func NewService(settings market.Settings, rates RatesProvider, prices PricesProvider, topN int, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	if topN < 1 {
		topN = 5
	}
	return &Service{
		settings: settings,
		rates:    rates,
		prices:   prices,
		topN:     topN,
		logger:   logger.WithComponent(log.ComponentViews),
		now:      time.Now,
	}
}

// Greeting returns the salutation for an hour of day. Bands: [6,12)
// morning, [12,18) afternoon, [18,23) evening, everything else night.
func Greeting(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return "Good morning"
	case hour >= 12 && hour < 18:
		return "Good afternoon"
	case hour >= 18 && hour < 23:
		return "Good evening"
	default:
		return "Good night"
	}
}

// Home builds the home dashboard for the start-of-month-to-ref window:
// greeting, per-card rollup, top-N transactions by absolute amount, and
// the market quotes for the user's configured currencies and stocks.
func (s *Service) Home(ctx context.Context, ref time.Time, txs []core.Transaction) HomePayload {
	start, end := core.MonthToDate(ref)

	window := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.HasDate() && core.InRange(tx.Date, start, end) {
			window = append(window, tx)
		}
	}
	s.logger.DebugContext(ctx, "Home window filtered",
		log.FieldCount, len(window), log.FieldOperation, log.OpFilter)

	payload := HomePayload{
		Greeting:        Greeting(s.now().Hour()),
		Cards:           cardSummaries(window),
		TopTransactions: topTransactions(window, s.topN),
		CurrencyRates:   s.rates.Rates(ctx, s.settings.UserCurrencies),
		StockPrices:     s.prices.Prices(ctx, s.settings.UserStocks),
	}
	s.logger.InfoContext(ctx, "Home payload assembled",
		log.FieldFunction, "home", log.FieldCount, len(window))
	return payload
}

// cardSummaries groups successful expenses by card suffix. Records
// without a card identifier are excluded. Output is sorted by suffix
// for a stable payload.
func cardSummaries(txs []core.Transaction) []CardSummary {
	type totals struct {
		spent    decimal.Decimal
		cashback decimal.Decimal
	}
	byCard := make(map[string]*totals)
	for _, tx := range txs {
		if !tx.IsExpense() || tx.CardSuffix() == "N/A" {
			continue
		}
		t, ok := byCard[tx.CardSuffix()]
		if !ok {
			t = &totals{}
			byCard[tx.CardSuffix()] = t
		}
		t.spent = t.spent.Add(tx.Amount.Neg())
		t.cashback = t.cashback.Add(tx.Cashback)
	}

	cards := make([]CardSummary, 0, len(byCard))
	for suffix, t := range byCard {
		cards = append(cards, CardSummary{
			LastDigits: suffix,
			TotalSpent: core.Round2(t.spent),
			Cashback:   core.Round2(t.cashback),
		})
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].LastDigits < cards[j].LastDigits })
	return cards
}

// topTransactions returns the n largest successful transactions by
// absolute amount. Ties keep input order.
func topTransactions(txs []core.Transaction, n int) []TopTransaction {
	valid := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.IsSuccessful() {
			valid = append(valid, tx)
		}
	}
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Amount.Abs().GreaterThan(valid[j].Amount.Abs())
	})
	if len(valid) > n {
		valid = valid[:n]
	}

	top := make([]TopTransaction, 0, len(valid))
	for _, tx := range valid {
		category := tx.Category
		if category == "" {
			category = "N/A"
		}
		top = append(top, TopTransaction{
			Date:        tx.Date.Format(TopTransactionDateLayout),
			Amount:      core.Round2(tx.Amount),
			Category:    category,
			Description: tx.Description,
		})
	}
	return top
}
