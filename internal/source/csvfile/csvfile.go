// Package csvfile loads the operations ledger from a CSV export.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"finview/internal/core"
	"finview/internal/log"
	"finview/internal/source"
)

type Reader struct {
	path   string
	logger *log.Logger
}

var _ source.Reader = (*Reader)(nil)

func New(path string, logger *log.Logger) *Reader {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Reader{
		path:   path,
		logger: logger.WithComponent(log.ComponentSource),
	}
}

// Load reads the whole CSV file. The first row must be a header. Rows
// that cannot be parsed are skipped with a debug log; the load only
// fails when the file itself cannot be read.
func (r *Reader) Load(ctx context.Context) ([]core.Transaction, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open operations file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < len(source.Columns) {
		return nil, fmt.Errorf("unexpected header: %v", header)
	}

	var txs []core.Transaction
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			r.logger.DebugContext(ctx, "Skipping malformed CSV row",
				log.FieldFilePath, r.path, "line", line, log.FieldError, err.Error())
			continue
		}
		tx, err := source.ParseRow(row)
		if err != nil {
			r.logger.DebugContext(ctx, "Skipping unparseable operation row",
				log.FieldFilePath, r.path, "line", line, log.FieldError, err.Error())
			continue
		}
		txs = append(txs, tx)
	}

	r.logger.InfoContext(ctx, "Operations loaded from CSV",
		log.FieldFilePath, r.path, log.FieldCount, len(txs))
	return txs, nil
}
