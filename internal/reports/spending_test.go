package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finview/internal/core"
)

func tx(date time.Time, status string, amount float64, category string) core.Transaction {
	return core.Transaction{
		Date:     date,
		Status:   status,
		Amount:   decimal.NewFromFloat(amount),
		Category: category,
	}
}

func TestSpendingByCategoryCaseInsensitive(t *testing.T) {
	s := NewService(nil)
	ref := time.Date(2020, 10, 15, 0, 0, 0, 0, time.UTC)
	txs := []core.Transaction{
		tx(time.Date(2020, 9, 15, 12, 0, 0, 0, time.UTC), core.StatusOK, -100, "Еда"),
		tx(time.Date(2020, 9, 20, 12, 0, 0, 0, time.UTC), core.StatusOK, -50, "Transport"),
	}

	lower := s.SpendingByCategory(context.Background(), txs, "еДа", ref)
	upper := s.SpendingByCategory(context.Background(), txs, "ЕДА", ref)
	if len(lower) != 1 || len(upper) != 1 {
		t.Fatalf("case-insensitive match failed: %d / %d records", len(lower), len(upper))
	}
	if lower[0].Amount != upper[0].Amount || lower[0].Description != upper[0].Description {
		t.Error("differently-cased queries must return identical record sets")
	}
}

func TestSpendingByCategoryWindow(t *testing.T) {
	s := NewService(nil)
	ref := time.Date(2020, 10, 15, 0, 0, 0, 0, time.UTC)
	txs := []core.Transaction{
		tx(ref.AddDate(0, 0, -91), core.StatusOK, -10, "Food"), // outside 90d window
		tx(ref.AddDate(0, 0, -89), core.StatusOK, -20, "Food"),
		tx(ref.AddDate(0, 0, 1), core.StatusOK, -30, "Food"), // after ref
		tx(ref.AddDate(0, 0, -5), core.StatusOK, 40, "Food"), // income, not spend
		tx(ref.AddDate(0, 0, -5), "FAILED", -50, "Food"),
	}
	got := s.SpendingByCategory(context.Background(), txs, "Food", ref)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Amount != -20 {
		t.Errorf("Amount = %v, want -20", got[0].Amount)
	}
}

// End-to-end case: one expense on Tuesday 15.09.2020 plus an income the
// day after; only Tuesday carries spend.
func TestSpendingByWeekday(t *testing.T) {
	s := NewService(nil)
	ref := time.Date(2020, 10, 15, 0, 0, 0, 0, time.UTC)
	txs := []core.Transaction{
		tx(time.Date(2020, 9, 15, 10, 0, 0, 0, time.UTC), core.StatusOK, -100, "Food"),
		tx(time.Date(2020, 9, 16, 10, 0, 0, 0, time.UTC), core.StatusOK, 500, "Salary"),
	}

	got := s.SpendingByWeekday(context.Background(), txs, ref)
	if len(got) != 7 {
		t.Fatalf("weekday report must always emit 7 keys, got %d", len(got))
	}
	for name, amount := range got {
		want := 0.0
		if name == "Tuesday" {
			want = 100.0
		}
		if amount != want {
			t.Errorf("%s = %v, want %v", name, amount, want)
		}
	}
}

func TestSpendingByWeekdaySkipsDateless(t *testing.T) {
	s := NewService(nil)
	ref := time.Date(2020, 10, 15, 0, 0, 0, 0, time.UTC)
	txs := []core.Transaction{
		{Status: core.StatusOK, Amount: decimal.NewFromInt(-100)}, // zero date
	}
	got := s.SpendingByWeekday(context.Background(), txs, ref)
	for name, amount := range got {
		if amount != 0 {
			t.Errorf("%s = %v, want 0 for dateless input", name, amount)
		}
	}
}

func TestSpendingByWorkday(t *testing.T) {
	s := NewService(nil)
	ref := time.Date(2020, 10, 15, 0, 0, 0, 0, time.UTC)
	txs := []core.Transaction{
		// Friday and Saturday of the same week.
		tx(time.Date(2020, 9, 18, 10, 0, 0, 0, time.UTC), core.StatusOK, -30.555, "Food"),
		tx(time.Date(2020, 9, 18, 18, 0, 0, 0, time.UTC), core.StatusOK, -9.44, "Food"),
		tx(time.Date(2020, 9, 19, 10, 0, 0, 0, time.UTC), core.StatusOK, -100, "Food"),
	}

	got := s.SpendingByWorkday(context.Background(), txs, ref)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1 (weekends excluded, no zero-filling)", len(got))
	}
	if amount, ok := got["2020-09-18"]; !ok || amount != 40.0 {
		t.Errorf("2020-09-18 = %v (present=%v), want 40.0", amount, ok)
	}
	if _, ok := got["2020-09-19"]; ok {
		t.Error("Saturday spend must not appear in the workday report")
	}
}

func TestParseRefDate(t *testing.T) {
	s := NewService(nil)
	now := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)

	got := s.ParseRefDate(context.Background(), "31.12.2020", now)
	if !got.Equal(time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("got %v", got)
	}
	if got := s.ParseRefDate(context.Background(), "", now); !got.Equal(now) {
		t.Errorf("blank input should fall back to now, got %v", got)
	}
	if got := s.ParseRefDate(context.Background(), "2020-12-31", now); !got.Equal(now) {
		t.Errorf("bad format should fall back to now, got %v", got)
	}
}
