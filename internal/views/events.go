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

const mainCategoryLimit = 7

// CategoryAmount is one category bucket on the events report. Amounts
// are whole units, fractions truncated.
type CategoryAmount struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

// ExpenseSummary splits expenses into the top categories, an Other
// remainder bucket, and a dedicated cash/transfers breakdown.
type ExpenseSummary struct {
	TotalAmount      int64            `json:"total_amount"`
	Main             []CategoryAmount `json:"main"`
	TransfersAndCash []CategoryAmount `json:"transfers_and_cash"`
}

// IncomeSummary lists every income category with a positive sum, no
// truncation.
type IncomeSummary struct {
	TotalAmount int64            `json:"total_amount"`
	Main        []CategoryAmount `json:"main"`
}

// EventsPayload is the "events" report for one period window.
type EventsPayload struct {
	Expenses      ExpenseSummary `json:"expenses"`
	Income        IncomeSummary  `json:"income"`
	CurrencyRates []market.Rate  `json:"currency_rates"`
	StockPrices   []market.Quote `json:"stock_prices"`
}

// Events builds the events report over the period window ending at ref.
// Only successful dated transactions count; totals include records with
// an empty category, category groupings exclude them.
func (s *Service) Events(ctx context.Context, ref time.Time, period core.Period, txs []core.Transaction) EventsPayload {
	start, end := core.PeriodRange(ref, period)

	var expenses, income []core.Transaction
	for _, tx := range txs {
		if !tx.HasDate() || !core.InRange(tx.Date, start, end) {
			continue
		}
		switch {
		case tx.IsExpense():
			expenses = append(expenses, tx)
		case tx.IsIncome():
			income = append(income, tx)
		}
	}
	s.logger.DebugContext(ctx, "Events window filtered", log.FieldPeriod, string(period),
		log.FieldCount, len(expenses)+len(income), log.FieldOperation, log.OpFilter)

	payload := EventsPayload{
		Expenses:      expenseSummary(expenses),
		Income:        incomeSummary(income),
		CurrencyRates: s.rates.Rates(ctx, s.settings.UserCurrencies),
		StockPrices:   s.prices.Prices(ctx, s.settings.UserStocks),
	}
	s.logger.InfoContext(ctx, "Events payload assembled",
		log.FieldFunction, "events", log.FieldPeriod, string(period))
	return payload
}

func expenseSummary(expenses []core.Transaction) ExpenseSummary {
	total := decimal.Zero
	for _, tx := range expenses {
		total = total.Add(tx.Amount)
	}

	main := categoryBuckets(expenses)
	summary := ExpenseSummary{
		TotalAmount:      total.Neg().IntPart(),
		TransfersAndCash: transfersAndCash(expenses),
	}
	if len(main) > mainCategoryLimit {
		var rest int64
		for _, bucket := range main[mainCategoryLimit:] {
			rest += bucket.Amount
		}
		main = main[:mainCategoryLimit]
		if rest > 0 {
			main = append(main, CategoryAmount{Category: "Other", Amount: rest})
		}
	}
	summary.Main = main
	return summary
}

func incomeSummary(income []core.Transaction) IncomeSummary {
	total := decimal.Zero
	for _, tx := range income {
		total = total.Add(tx.Amount)
	}
	return IncomeSummary{
		TotalAmount: total.IntPart(),
		Main:        categoryBuckets(income),
	}
}

// categoryBuckets groups by non-empty category, takes the absolute
// whole-unit sum per category, and sorts descending. Ties keep
// first-seen category order.
func categoryBuckets(txs []core.Transaction) []CategoryAmount {
	sums := make(map[string]decimal.Decimal)
	var order []string
	for _, tx := range txs {
		if tx.Category == "" {
			continue
		}
		if _, ok := sums[tx.Category]; !ok {
			order = append(order, tx.Category)
		}
		sums[tx.Category] = sums[tx.Category].Add(tx.Amount)
	}

	buckets := make([]CategoryAmount, 0, len(order))
	for _, category := range order {
		buckets = append(buckets, CategoryAmount{
			Category: category,
			Amount:   sums[category].Abs().IntPart(),
		})
	}
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].Amount > buckets[j].Amount })
	return buckets
}

func transfersAndCash(expenses []core.Transaction) []CategoryAmount {
	matched := make([]core.Transaction, 0)
	for _, tx := range expenses {
		if tx.CategoryEquals(core.CategoryTransfers) || tx.CategoryEquals(core.CategoryCash) {
			matched = append(matched, tx)
		}
	}
	return categoryBuckets(matched)
}
