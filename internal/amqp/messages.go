package amqp

import (
	"encoding/json"
	"time"
)

// ReportGeneratedMessage announces that a report file has been written.
// Consumers fetch the payload from the path themselves; the message
// carries only the identifying metadata.
type ReportGeneratedMessage struct {
	Function  string    `json:"function"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// NewReportGeneratedMessage creates a notification for one written report.
func NewReportGeneratedMessage(function, path string) *ReportGeneratedMessage {
	return &ReportGeneratedMessage{
		Function:  function,
		Path:      path,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ReportGeneratedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportGeneratedMessageFromJSON creates a message from JSON bytes
func ReportGeneratedMessageFromJSON(data []byte) (*ReportGeneratedMessage, error) {
	var msg ReportGeneratedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
