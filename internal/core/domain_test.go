package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransactionPredicates(t *testing.T) {
	exp := Transaction{Status: StatusOK, Amount: decimal.NewFromInt(-100)}
	inc := Transaction{Status: StatusOK, Amount: decimal.NewFromInt(500)}
	failed := Transaction{Status: "FAILED", Amount: decimal.NewFromInt(-100)}

	if !exp.IsExpense() || exp.IsIncome() {
		t.Error("negative OK amount should be an expense")
	}
	if !inc.IsIncome() || inc.IsExpense() {
		t.Error("positive OK amount should be an income")
	}
	if failed.IsExpense() || failed.IsIncome() {
		t.Error("non-OK status must be excluded from both")
	}
}

func TestCardSuffix(t *testing.T) {
	cases := []struct {
		card string
		want string
	}{
		{"*7197", "7197"},
		{"1234567890123456", "3456"},
		{"", "N/A"},
		{"  ", "N/A"},
		{"42", "42"},
	}
	for _, tc := range cases {
		tx := Transaction{Card: tc.card}
		if got := tx.CardSuffix(); got != tc.want {
			t.Errorf("CardSuffix(%q) = %q, want %q", tc.card, got, tc.want)
		}
	}
}

func TestCategoryEquals(t *testing.T) {
	tx := Transaction{Category: "Supermarkets"}
	if !tx.CategoryEquals("supermarkets") || !tx.CategoryEquals("SUPERMARKETS") {
		t.Error("category comparison must be case-insensitive")
	}
	if tx.CategoryEquals("markets") {
		t.Error("substring must not match")
	}
	cyr := Transaction{Category: "Еда"}
	if !cyr.CategoryEquals("еДа") {
		t.Error("case folding must cover non-ASCII categories")
	}
}

func TestRound2(t *testing.T) {
	d := decimal.RequireFromString("10.005")
	if got := Round2(d); got != 10.01 {
		t.Errorf("Round2(10.005) = %v, want 10.01", got)
	}
	if got := Round2(decimal.RequireFromString("-99.999")); got != -100.0 {
		t.Errorf("Round2(-99.999) = %v, want -100", got)
	}
}
