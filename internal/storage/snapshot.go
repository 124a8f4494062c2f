package storage

import "sync"

// Snapshot implements begin/commit/rollback for in-memory stores by copying
// the record map on Begin and restoring it on Rollback. Stores built on it
// are single-writer: Rollback restores the whole map, so a write made by any
// other caller while the transaction is open is discarded with it.
type Snapshot[K comparable, V any] struct {
	mu     sync.Mutex
	saved  map[K]V
	active bool
}

// Begin records a copy of current. Nested transactions are not supported.
func (s *Snapshot[K, V]) Begin(current map[K]V, clone func(V) V) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return ErrTransactionActive
	}
	saved := make(map[K]V, len(current))
	for key, value := range current {
		saved[key] = clone(value)
	}
	s.saved = saved
	s.active = true
	return nil
}

// Commit discards the saved copy.
func (s *Snapshot[K, V]) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return ErrNoTransaction
	}
	s.saved = nil
	s.active = false
	return nil
}

// Rollback returns the state captured by Begin.
func (s *Snapshot[K, V]) Rollback() (map[K]V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return nil, ErrNoTransaction
	}
	saved := s.saved
	s.saved = nil
	s.active = false
	return saved, nil
}
