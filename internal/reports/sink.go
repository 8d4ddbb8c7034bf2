package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"finview/internal/log"
	"finview/internal/source"
)

// Envelope wraps a report payload with its originating function name
// and generation timestamp.
type Envelope struct {
	Function  string `json:"function"`
	Timestamp string `json:"timestamp"`
	Result    any    `json:"result"`
}

// NewEnvelope stamps a payload for persistence.
func NewEnvelope(function string, result any, now time.Time) Envelope {
	return Envelope{
		Function:  function,
		Timestamp: now.Format(source.OperationTimeLayout),
		Result:    result,
	}
}

// FileSink writes report envelopes as JSON files. Assemblers return
// values; persisting is an explicit, separate step for callers that
// want it.
type FileSink struct {
	dir    string
	logger *log.Logger
}

func NewFileSink(dir string, logger *log.Logger) *FileSink {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &FileSink{dir: dir, logger: logger.WithComponent(log.ComponentReports)}
}

// Write persists the envelope to <dir>/<function>_<stamp>.json and
// returns the file path.
func (s *FileSink) Write(ctx context.Context, env Envelope) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	stamp := time.Now().Format("02012006150405")
	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", env.Function, stamp))

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write report file: %w", err)
	}

	s.logger.InfoContext(ctx, "Report saved",
		log.FieldFunction, env.Function, log.FieldFilePath, path)
	return path, nil
}
