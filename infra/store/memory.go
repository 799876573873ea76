// Package store provides the record store implementations: a SQLite-backed
// store for deployments and an in-memory store for tests and demo mode.
package store

import (
	"context"
	"fmt"
	"sync"

	corestore "github.com/skylark/droneops/core/store"
)

// MemoryStore keeps all tables in memory. Row locations are zero-based
// indexes into the table.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[corestore.Kind][]corestore.Row
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[corestore.Kind][]corestore.Row)}
}

// Seed replaces the table for kind with the given rows.
func (s *MemoryStore) Seed(kind corestore.Kind, rows []corestore.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]corestore.Row, len(rows))
	for i, r := range rows {
		cp[i] = append(corestore.Row(nil), r...)
	}
	s.tables[kind] = cp
}

// ReadAll returns a copy of every row of the kind in insertion order.
func (s *MemoryStore) ReadAll(ctx context.Context, kind corestore.Kind) ([]corestore.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.tables[kind]
	out := make([]corestore.Row, len(rows))
	for i, r := range rows {
		out[i] = append(corestore.Row(nil), r...)
	}
	return out, nil
}

// FindByKey locates the row whose first column matches key ignoring case.
func (s *MemoryStore) FindByKey(ctx context.Context, kind corestore.Kind, key string) (int64, corestore.Row, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, r := range s.tables[kind] {
		if len(r) > 0 && equalKey(r[0], key) {
			return int64(i), append(corestore.Row(nil), r...), nil
		}
	}
	return 0, nil, corestore.ErrNotFound
}

// WriteRow replaces the row at loc.
func (s *MemoryStore) WriteRow(ctx context.Context, kind corestore.Kind, loc int64, row corestore.Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.tables[kind]
	if loc < 0 || loc >= int64(len(rows)) {
		return fmt.Errorf("%s: no row at location %d", kind, loc)
	}
	rows[loc] = append(corestore.Row(nil), row...)
	return nil
}
