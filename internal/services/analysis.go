package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"finview/internal/core"
	"finview/internal/log"
)

// MonthLayout is the MM.YYYY month selector format.
const MonthLayout = "01.2006"

// highCashbackRate is the assumed premium rate for the what-if analysis.
var highCashbackRate = decimal.RequireFromString("0.10")

type AnalysisService struct {
	logger *log.Logger
}

func NewAnalysisService(logger *log.Logger) *AnalysisService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &AnalysisService{logger: logger.WithComponent(log.ComponentSearch)}
}

// InvestmentBank sums the precomputed round-up-to-savings amounts of
// successful expenses in the given MM.YYYY month. Records without a
// parseable timestamp are skipped. The total is rounded to two
// decimals.
func (s *AnalysisService) InvestmentBank(ctx context.Context, month string, txs []core.Transaction) (float64, error) {
	target, err := time.Parse(MonthLayout, month)
	if err != nil {
		return 0, fmt.Errorf("parse month %q: %w", month, err)
	}

	total := decimal.Zero
	for _, tx := range txs {
		if !tx.HasDate() {
			s.logger.DebugContext(ctx, "Skipping record without timestamp in round-up summation")
			continue
		}
		if tx.Date.Year() != target.Year() || tx.Date.Month() != target.Month() {
			continue
		}
		if !tx.IsExpense() {
			continue
		}
		total = total.Add(tx.RoundUp)
	}

	result := core.Round2(total)
	s.logger.InfoContext(ctx, "Round-up savings computed",
		log.FieldMonth, month, "total_savings", result)
	return result, nil
}

// CategoryCashback is one row of the cashback opportunity analysis.
type CategoryCashback struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// AnalyzeCashbackCategories estimates the cashback each category would
// have earned at the premium rate in the given year and month. The
// result is sorted descending by amount; exact ties keep first-seen
// category order.
func (s *AnalysisService) AnalyzeCashbackCategories(ctx context.Context, txs []core.Transaction, year int, month int) []CategoryCashback {
	sums := map[string]decimal.Decimal{}
	var order []string

	for _, tx := range txs {
		if !tx.HasDate() {
			s.logger.DebugContext(ctx, "Skipping record without timestamp in cashback analysis")
			continue
		}
		if tx.Date.Year() != year || int(tx.Date.Month()) != month {
			continue
		}
		if !tx.IsSuccessful() || tx.Category == "" {
			continue
		}
		if _, seen := sums[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		potential := tx.Amount.Abs().Mul(highCashbackRate)
		sums[tx.Category] = sums[tx.Category].Add(potential)
	}

	result := make([]CategoryCashback, 0, len(order))
	for _, cat := range order {
		result = append(result, CategoryCashback{Category: cat, Amount: core.Round2(sums[cat])})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Amount > result[j].Amount
	})

	s.logger.InfoContext(ctx, "Cashback analysis finished",
		log.FieldYear, year, log.FieldMonth, month, log.FieldCount, len(result))
	return result
}
