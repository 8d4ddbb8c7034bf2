package reports

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"
)

func TestFileSinkWrite(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(dir, nil)

	env := NewEnvelope("spending_by_weekday", map[string]float64{"Tuesday": 100}, time.Date(2020, 10, 15, 9, 0, 0, 0, time.UTC))
	path, err := sink.Write(context.Background(), env)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.HasPrefix(path, dir) || !strings.Contains(path, "spending_by_weekday_") {
		t.Errorf("unexpected path %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got Envelope
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid JSON written: %v", err)
	}
	if got.Function != "spending_by_weekday" {
		t.Errorf("Function = %q", got.Function)
	}
	if got.Timestamp != "15.10.2020 09:00:00" {
		t.Errorf("Timestamp = %q", got.Timestamp)
	}
}

func TestFileSinkCreatesDir(t *testing.T) {
	dir := t.TempDir() + "/nested/reports"
	sink := NewFileSink(dir, nil)
	if _, err := sink.Write(context.Background(), NewEnvelope("x", 1, time.Now())); err != nil {
		t.Fatalf("Write into missing dir: %v", err)
	}
}
