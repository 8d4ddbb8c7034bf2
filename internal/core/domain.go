package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StatusOK is the success sentinel. A transaction counts towards an
// aggregate only when its status equals this value.
const StatusOK = "OK"

// Category names with dedicated report treatment.
const (
	CategoryTransfers = "Transfers"
	CategoryCash      = "Cash"
)

// Transaction is a single ledger record as loaded from the operations
// source. Amount sign is the sole expense/income discriminator:
// negative = expense, positive = income.
type Transaction struct {
	Date        time.Time       // zero when the source timestamp was unparseable
	Status      string
	Amount      decimal.Decimal
	Category    string
	Description string
	Card        string
	Cashback    decimal.Decimal
	RoundUp     decimal.Decimal
}

// IsSuccessful reports whether the transaction has the success status.
func (t Transaction) IsSuccessful() bool {
	return t.Status == StatusOK
}

// IsExpense reports whether the transaction is a successful expense.
func (t Transaction) IsExpense() bool {
	return t.IsSuccessful() && t.Amount.IsNegative()
}

// IsIncome reports whether the transaction is a successful income.
func (t Transaction) IsIncome() bool {
	return t.IsSuccessful() && t.Amount.IsPositive()
}

// HasDate reports whether the operation timestamp was parseable.
func (t Transaction) HasDate() bool {
	return !t.Date.IsZero()
}

// CardSuffix returns the last four characters of the card identifier,
// or "N/A" when no card is recorded.
func (t Transaction) CardSuffix() string {
	card := strings.TrimSpace(t.Card)
	if card == "" {
		return "N/A"
	}
	if len(card) <= 4 {
		return card
	}
	return card[len(card)-4:]
}

// CategoryEquals compares the category case-insensitively, ignoring
// surrounding whitespace.
func (t Transaction) CategoryEquals(name string) bool {
	return strings.EqualFold(strings.TrimSpace(t.Category), strings.TrimSpace(name))
}

// Round2 returns the decimal rounded to two places as a float64 for
// report payloads. Keep decimals for arithmetic; convert at the edge.
func Round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
