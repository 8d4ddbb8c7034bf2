package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "user_settings.json")
	content := `{"user_currencies": ["USD"], "user_stocks": ["AAPL", "TSLA"]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s := LoadSettings(path, nil)
	if len(s.UserCurrencies) != 1 || s.UserCurrencies[0] != "USD" {
		t.Errorf("UserCurrencies = %v", s.UserCurrencies)
	}
	if len(s.UserStocks) != 2 {
		t.Errorf("UserStocks = %v", s.UserStocks)
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	s := LoadSettings(filepath.Join(t.TempDir(), "nope.json"), nil)
	def := DefaultSettings()
	if len(s.UserCurrencies) != len(def.UserCurrencies) || len(s.UserStocks) != len(def.UserStocks) {
		t.Errorf("missing file must yield defaults, got %+v", s)
	}
}

func TestLoadSettingsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_settings.json")
	if err := os.WriteFile(path, []byte("{oops"), 0644); err != nil {
		t.Fatal(err)
	}
	s := LoadSettings(path, nil)
	if len(s.UserStocks) != 5 {
		t.Errorf("malformed file must yield defaults, got %+v", s)
	}
}

func TestCurrencyRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Valute": {"USD": {"Value": 75.5}, "EUR": {"Value": 90.1}}}`))
	}))
	defer srv.Close()

	c := NewCurrencyClient(srv.URL, time.Second, nil)
	got := c.Rates(context.Background(), []string{"USD", "EUR", "GBP"})
	if len(got) != 2 {
		t.Fatalf("got %+v", got)
	}
	if got[0] != (Rate{Currency: "USD", Rate: 75.5}) || got[1] != (Rate{Currency: "EUR", Rate: 90.1}) {
		t.Errorf("got %+v", got)
	}
}

func TestCurrencyRatesProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewCurrencyClient(srv.URL, time.Second, nil)
	if got := c.Rates(context.Background(), []string{"USD"}); len(got) != 0 {
		t.Errorf("provider failure must degrade to empty, got %+v", got)
	}
}

func TestStockQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("symbol") != "TSLA" {
			t.Errorf("symbol = %q", r.URL.Query().Get("symbol"))
		}
		if r.URL.Query().Get("function") != "GLOBAL_QUOTE" {
			t.Errorf("function = %q", r.URL.Query().Get("function"))
		}
		w.Write([]byte(`{"Global Quote": {"01. symbol": "TSLA", "05. price": "1007.0800"}}`))
	}))
	defer srv.Close()

	c := NewStockClient(srv.URL, "test-key", time.Second, nil)
	price, err := c.Quote(context.Background(), "TSLA")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if price != 1007.08 {
		t.Errorf("price = %v", price)
	}
}

func TestStockQuoteNoPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Global Quote": {}}`))
	}))
	defer srv.Close()

	c := NewStockClient(srv.URL, "test-key", time.Second, nil)
	if _, err := c.Quote(context.Background(), "TSLA"); err == nil {
		t.Fatal("expected error when price is missing")
	}
}
