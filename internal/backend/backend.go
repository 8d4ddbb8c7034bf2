// Package backend selects and wires the configured transaction source.
package backend

import (
	"context"
	"fmt"
	"io"

	"finview/internal/config"
	"finview/internal/log"
	"finview/internal/source"
	"finview/internal/source/csvfile"
	"finview/internal/source/google"
	"finview/internal/source/memory"
	"finview/internal/source/sqlite"
)

// Type identifies a transaction source backend.
type Type string

const (
	CSVBackend    Type = "csv"
	SheetsBackend Type = "sheets"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

// IsValid reports whether the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case CSVBackend, SheetsBackend, SQLiteBackend, MemoryBackend:
		return true
	}
	return false
}

// Result bundles the constructed reader with its optional closer.
type Result struct {
	Reader source.Reader
	Closer io.Closer
}

// Close releases backend resources, if any.
func (r *Result) Close() error {
	if r.Closer != nil {
		return r.Closer.Close()
	}
	return nil
}

// Factory builds transaction sources from configuration.
type Factory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) *Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Factory{logger: logger.WithComponent(log.ComponentSource)}
}

// Create builds the reader named by cfg.DataBackend.
func (f *Factory) Create(ctx context.Context, cfg *config.Config) (*Result, error) {
	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	switch t {
	case SheetsBackend:
		cli, err := google.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, f.logger)
		if err != nil {
			return nil, fmt.Errorf("initialize sheets source: %w", err)
		}
		f.logger.Info("Initialized Google Sheets source", log.FieldSource, string(t))
		return &Result{Reader: cli}, nil
	case SQLiteBackend:
		repo, err := sqlite.New(cfg.SQLiteDBPath, f.logger)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite source: %w", err)
		}
		f.logger.Info("Initialized SQLite source", log.FieldSource, string(t), log.FieldFilePath, cfg.SQLiteDBPath)
		return &Result{Reader: repo, Closer: repo}, nil
	case MemoryBackend:
		f.logger.Info("Initialized memory source", log.FieldSource, string(t))
		return &Result{Reader: memory.New()}, nil
	default:
		f.logger.Info("Initialized CSV source", log.FieldSource, string(t), log.FieldFilePath, cfg.OperationsCSVPath)
		return &Result{Reader: csvfile.New(cfg.OperationsCSVPath, f.logger)}, nil
	}
}
