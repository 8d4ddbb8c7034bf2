package source

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finview/internal/core"
)

// OperationTimeLayout is the timestamp format used by bank exports.
const OperationTimeLayout = "02.01.2006 15:04:05"

// Columns lists the canonical column order shared by the tabular sources.
var Columns = []string{
	"date", "status", "amount", "category", "description", "card", "cashback", "round_up",
}

// ParseRow converts one tabular row into a Transaction. An unparseable
// timestamp yields a zero Date rather than an error, so the record stays
// in the ledger and is skipped by date-scoped aggregations. An
// unparseable amount is an error: such a row carries no usable signal.
func ParseRow(row []string) (core.Transaction, error) {
	if len(row) < len(Columns) {
		return core.Transaction{}, fmt.Errorf("expected %d columns, got %d", len(Columns), len(row))
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(row[2]))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse amount %q: %w", row[2], err)
	}

	tx := core.Transaction{
		Status:      strings.TrimSpace(row[1]),
		Amount:      amount,
		Category:    strings.TrimSpace(row[3]),
		Description: strings.TrimSpace(row[4]),
		Card:        strings.TrimSpace(row[5]),
		Cashback:    parseOptionalDecimal(row[6]),
		RoundUp:     parseOptionalDecimal(row[7]),
	}

	if ts, err := time.Parse(OperationTimeLayout, strings.TrimSpace(row[0])); err == nil {
		tx.Date = ts
	}

	return tx, nil
}

// parseOptionalDecimal treats blanks and garbage as zero, matching the
// fill-missing-with-zero policy for cashback and round-up columns.
func parseOptionalDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
