// Package reports builds the date-window spending reports.
package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"finview/internal/core"
	"finview/internal/log"
	"finview/internal/source"
)

// spendingWindow is how far back from the reference date the spending
// reports look.
const spendingWindow = 90 * 24 * time.Hour

// RefDateLayout is the reference-date format accepted by report calls.
const RefDateLayout = "02.01.2006"

type Service struct {
	logger *log.Logger
}

func NewService(logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Service{logger: logger.WithComponent(log.ComponentReports)}
}

// CategoryRecord is one raw transaction in a category spending report.
type CategoryRecord struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// ParseRefDate parses an optional DD.MM.YYYY reference date. Blank or
// unparseable input falls back to now with a logged warning, never an
// error.
func (s *Service) ParseRefDate(ctx context.Context, dateStr string, now time.Time) time.Time {
	if dateStr == "" {
		return now
	}
	ref, err := time.Parse(RefDateLayout, dateStr)
	if err != nil {
		s.logger.WarnContext(ctx, "Unparseable reference date, using current date",
			"date", dateStr, log.FieldError, err.Error())
		return now
	}
	return ref
}

// SpendingByCategory returns the raw expense records for one category
// over the 90 days up to ref. Category match is case-insensitive and
// exact; input order is preserved.
func (s *Service) SpendingByCategory(ctx context.Context, txs []core.Transaction, category string, ref time.Time) []CategoryRecord {
	start := ref.Add(-spendingWindow)

	records := make([]CategoryRecord, 0)
	for _, tx := range txs {
		if !tx.HasDate() || !tx.IsExpense() {
			continue
		}
		if !core.InRange(tx.Date, start, ref) {
			continue
		}
		if !tx.CategoryEquals(category) {
			continue
		}
		records = append(records, CategoryRecord{
			Date:        tx.Date.Format(source.OperationTimeLayout),
			Amount:      core.Round2(tx.Amount),
			Category:    tx.Category,
			Description: tx.Description,
		})
	}

	s.logger.InfoContext(ctx, "Category spending report built",
		log.FieldCategory, category, log.FieldCount, len(records))
	return records
}

// SpendingByWeekday aggregates absolute expense amounts per weekday over
// the 90 days up to ref. All seven weekdays are always present; days
// without spend report 0.0.
func (s *Service) SpendingByWeekday(ctx context.Context, txs []core.Transaction, ref time.Time) map[string]float64 {
	start := ref.Add(-spendingWindow)

	sums := [7]decimal.Decimal{}
	for _, tx := range txs {
		if !tx.HasDate() || !tx.IsExpense() {
			continue
		}
		if !core.InRange(tx.Date, start, ref) {
			continue
		}
		i := core.WeekdayIndex(tx.Date)
		sums[i] = sums[i].Add(tx.Amount.Abs())
	}

	result := make(map[string]float64, 7)
	for i, name := range core.WeekdayNames {
		result[name] = core.Round2(sums[i])
	}

	s.logger.InfoContext(ctx, "Weekday spending report built")
	return result
}

// SpendingByWorkday aggregates absolute expense amounts per calendar
// date over the 90 days up to ref, Monday through Friday only. Dates
// without qualifying spend are omitted.
func (s *Service) SpendingByWorkday(ctx context.Context, txs []core.Transaction, ref time.Time) map[string]float64 {
	start := ref.Add(-spendingWindow)

	sums := map[string]decimal.Decimal{}
	for _, tx := range txs {
		if !tx.HasDate() || !tx.IsExpense() {
			continue
		}
		if !core.InRange(tx.Date, start, ref) || !core.IsWorkday(tx.Date) {
			continue
		}
		day := tx.Date.Format("2006-01-02")
		sums[day] = sums[day].Add(tx.Amount.Abs())
	}

	result := make(map[string]float64, len(sums))
	for day, sum := range sums {
		result[day] = core.Round2(sum)
	}

	s.logger.InfoContext(ctx, "Workday spending report built", log.FieldCount, len(result))
	return result
}
