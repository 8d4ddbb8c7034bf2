package worker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"finview/internal/amqp"
	"finview/internal/log"
)

// NotificationJournal archives report notifications as JSON lines so
// the history of generated reports survives broker restarts.
type NotificationJournal struct {
	path   string
	logger *log.Logger
}

func NewNotificationJournal(path string, logger *log.Logger) *NotificationJournal {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &NotificationJournal{
		path:   path,
		logger: logger.WithComponent(log.ComponentWorker),
	}
}

// Record appends one notification to the journal file, creating the
// file and its directory on first use.
func (j *NotificationJournal) Record(msg *amqp.ReportGeneratedMessage) error {
	if dir := filepath.Dir(j.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create journal directory: %w", err)
		}
	}

	line, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append journal: %w", err)
	}

	j.logger.Info("Recorded report notification",
		log.FieldFunction, msg.Function,
		log.FieldFilePath, msg.Path)
	return nil
}
