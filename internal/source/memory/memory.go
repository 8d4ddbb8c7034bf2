// Package memory provides an in-process transaction source for tests
// and local development.
package memory

import (
	"context"
	"sync"

	"finview/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.Transaction
}

func New(txs ...core.Transaction) *Store {
	s := &Store{}
	s.items = append(s.items, txs...)
	return s
}

// Add appends transactions preserving insertion order.
func (s *Store) Add(txs ...core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, txs...)
}

// Load returns a snapshot copy of the stored ledger.
func (s *Store) Load(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.items))
	copy(out, s.items)
	return out, nil
}
