package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const sample = `date,status,amount,category,description,card,cashback,round_up
15.09.2020 14:20:01,OK,-100.00,Food,Lunch at cafe,*7197,1.00,0.00
16.09.2020 10:00:00,OK,500.00,Salary,September salary,,0.00,0.00
bogus-date,OK,-20.00,Food,No timestamp,,0.00,0.00
17.09.2020 09:00:00,OK,not-a-number,Food,Broken row,,0.00,0.00
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "operations.csv")
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	r := New(writeSample(t), nil)
	txs, err := r.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// The broken-amount row is dropped; the dateless row survives.
	if len(txs) != 3 {
		t.Fatalf("len = %d, want 3", len(txs))
	}
	if txs[0].Description != "Lunch at cafe" || txs[1].Description != "September salary" {
		t.Errorf("order not preserved: %+v", txs)
	}
	if txs[2].HasDate() {
		t.Error("bogus-date row should carry a zero date")
	}
}

func TestLoadMissingFile(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "nope.csv"), nil)
	if _, err := r.Load(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadBadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "operations.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	r := New(path, nil)
	if _, err := r.Load(context.Background()); err == nil {
		t.Fatal("expected error for bad header")
	}
}
