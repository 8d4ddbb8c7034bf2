// Package sqlite reads the operations ledger from a SQLite export
// produced by cmd/opimport. Report generation treats the database as
// read-only; only the importer writes to it.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"finview/internal/core"
	"finview/internal/log"
	"finview/internal/source"
)

type Repository struct {
	db     *sql.DB
	logger *log.Logger
}

var _ source.Reader = (*Repository)(nil)

func New(dbPath string, logger *log.Logger) (*Repository, error) {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{
		db:     db,
		logger: logger.WithComponent(log.ComponentSource),
	}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load returns the full ledger ordered by insertion id.
func (r *Repository) Load(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT operated_at, status, amount, category, description, card, cashback, round_up
		FROM operations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query operations: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var operatedAt, status, amount, category, description, card, cashback, roundUp string
		if err := rows.Scan(&operatedAt, &status, &amount, &category, &description, &card, &cashback, &roundUp); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}

		amt, err := decimal.NewFromString(amount)
		if err != nil {
			r.logger.DebugContext(ctx, "Skipping operation with bad amount",
				log.FieldError, err.Error())
			continue
		}
		tx := core.Transaction{
			Status:      status,
			Amount:      amt,
			Category:    category,
			Description: description,
			Card:        card,
			Cashback:    optionalDecimal(cashback),
			RoundUp:     optionalDecimal(roundUp),
		}
		if operatedAt != "" {
			if ts, err := time.Parse(time.RFC3339, operatedAt); err == nil {
				tx.Date = ts
			}
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operations: %w", err)
	}

	r.logger.InfoContext(ctx, "Operations loaded from SQLite", log.FieldCount, len(txs))
	return txs, nil
}

// InsertBatch appends transactions in order. Used by cmd/opimport only.
func (r *Repository) InsertBatch(ctx context.Context, txs []core.Transaction) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO operations (operated_at, status, amount, category, description, card, cashback, round_up)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, tx := range txs {
		operatedAt := ""
		if tx.HasDate() {
			operatedAt = tx.Date.Format(time.RFC3339)
		}
		if _, err := stmt.ExecContext(ctx, operatedAt, tx.Status, tx.Amount.String(),
			tx.Category, tx.Description, tx.Card, tx.Cashback.String(), tx.RoundUp.String()); err != nil {
			return fmt.Errorf("insert operation: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	r.logger.InfoContext(ctx, "Operations imported", log.FieldCount, len(txs))
	return nil
}

func optionalDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
