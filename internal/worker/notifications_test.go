package worker

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"finview/internal/amqp"
)

func TestNotificationJournalRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal", "notifications.jsonl")
	j := NewNotificationJournal(path, nil)

	if err := j.Record(amqp.NewReportGeneratedMessage("home", "/reports/home.json")); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := j.Record(amqp.NewReportGeneratedMessage("events", "/reports/events.json")); err != nil {
		t.Fatalf("Record: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer f.Close()

	var functions []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var msg amqp.ReportGeneratedMessage
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			t.Fatalf("unmarshal line: %v", err)
		}
		functions = append(functions, msg.Function)
	}
	if err := scanner.Err(); err != nil {
		t.Fatal(err)
	}

	if len(functions) != 2 || functions[0] != "home" || functions[1] != "events" {
		t.Errorf("journal functions = %v", functions)
	}
}

func TestNotificationJournalRecordUnwritablePath(t *testing.T) {
	// A plain file occupies the spot where the journal directory belongs.
	base := t.TempDir()
	blocker := filepath.Join(base, "journal")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	j := NewNotificationJournal(filepath.Join(blocker, "notifications.jsonl"), nil)
	if err := j.Record(amqp.NewReportGeneratedMessage("home", "/reports/home.json")); err == nil {
		t.Fatal("expected an error for an unwritable journal path")
	}
}
