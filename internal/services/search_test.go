package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"finview/internal/core"
)

func TestSimpleSearch(t *testing.T) {
	s := NewSearchService(nil)
	txs := []core.Transaction{
		{Description: "Lunch at CAFE", Category: "Food"},
		{Description: "Taxi ride", Category: "Transport"},
		{Description: "Groceries", Category: "Supermarkets"},
	}

	got := s.Simple(context.Background(), "cafe", txs)
	if len(got) != 1 || got[0].Description != "Lunch at CAFE" {
		t.Fatalf("got %+v", got)
	}

	// Category matches too, and order is preserved.
	got = s.Simple(context.Background(), "r", txs)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Category != "Food" || got[2].Category != "Supermarkets" {
		t.Error("input order must be preserved")
	}

	if got := s.Simple(context.Background(), "nothing-here", txs); len(got) != 0 {
		t.Errorf("expected empty result, got %+v", got)
	}
}

func TestTransfersToIndividuals(t *testing.T) {
	s := NewSearchService(nil)
	txs := []core.Transaction{
		{Category: "Transfers", Description: "Ivan I."},
		{Category: "transfers", Description: "Мария П."},
		{Category: "Transfers", Description: "OOO Romashka"},
		{Category: "Food", Description: "Ivan I."},
		{Category: "Transfers", Description: "ivan i."},
	}

	got := s.TransfersToIndividuals(context.Background(), txs)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(got), got)
	}
	if got[0].Description != "Ivan I." || got[1].Description != "Мария П." {
		t.Errorf("got %+v", got)
	}
}

func TestByPhoneNumber(t *testing.T) {
	s := NewSearchService(nil)
	cases := []struct {
		desc string
		want bool
	}{
		{"Top-up +7 995 555-55-55", true},
		{"Top-up +7 995 555 55 55", true},
		{"Top-up +7-995-555-55-55", false}, // dash after the country code
		{"Top-up 8 995 555 55 55", false},
		{"No phone here", false},
	}
	for _, tc := range cases {
		txs := []core.Transaction{{Description: tc.desc, Amount: decimal.NewFromInt(-1)}}
		got := s.ByPhoneNumber(context.Background(), txs)
		if (len(got) == 1) != tc.want {
			t.Errorf("%q: matched=%v, want %v", tc.desc, len(got) == 1, tc.want)
		}
	}
}
