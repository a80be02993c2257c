package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/cognicore/glossa/pkg/glossa/corpus"
	"github.com/cognicore/glossa/pkg/glossa/definition"
	"github.com/cognicore/glossa/pkg/glossa/internalerr"
	"github.com/cognicore/glossa/pkg/glossa/pattern"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu           sync.RWMutex
	transactions []corpus.Transaction
	pools        map[pattern.Kind][]pattern.Pattern
	defs         map[string]definition.Definition
	defOrder     []string
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		pools: make(map[pattern.Kind][]pattern.Pattern),
		defs:  make(map[string]definition.Definition),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// AddTransactions appends transactions in corpus order.
func (s *Store) AddTransactions(ctx context.Context, ts []corpus.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, ts...)
	return nil
}

// LoadCorpus returns the stored corpus.
func (s *Store) LoadCorpus(ctx context.Context) (*corpus.Corpus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ts := make([]corpus.Transaction, len(s.transactions))
	copy(ts, s.transactions)
	return corpus.New(ts), nil
}

// CountTransactions returns the corpus size.
func (s *Store) CountTransactions(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transactions), nil
}

// SavePool replaces the pool for the kind.
func (s *Store) SavePool(ctx context.Context, kind pattern.Kind, patterns []pattern.Pattern) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool := make([]pattern.Pattern, len(patterns))
	for i, p := range patterns {
		if p.Kind != kind {
			return fmt.Errorf("%w: %s pattern in %s pool", internalerr.ErrKindMismatch, p.Kind, kind)
		}
		pool[i] = p
	}
	s.pools[kind] = pool
	return nil
}

// LoadPool returns the pool for the kind in rank order.
func (s *Store) LoadPool(ctx context.Context, kind pattern.Kind) ([]pattern.Pattern, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool := make([]pattern.Pattern, len(s.pools[kind]))
	copy(pool, s.pools[kind])
	return pool, nil
}

// SaveDefinition stores a definition by ID.
func (s *Store) SaveDefinition(ctx context.Context, d definition.Definition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.defs[d.ID]; !exists {
		s.defOrder = append(s.defOrder, d.ID)
	}
	s.defs[d.ID] = d
	return nil
}

// GetDefinition returns a stored definition by ID.
func (s *Store) GetDefinition(ctx context.Context, id string) (definition.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if d, ok := s.defs[id]; ok {
		return d, nil
	}
	return definition.Definition{}, fmt.Errorf("definition %s: %w", id, internalerr.ErrNotFound)
}

// ListDefinitions returns stored definitions, newest first.
func (s *Store) ListDefinitions(ctx context.Context, limit int) ([]definition.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	var defs []definition.Definition
	for i := len(s.defOrder) - 1; i >= 0 && len(defs) < limit; i-- {
		defs = append(defs, s.defs[s.defOrder[i]])
	}
	return defs, nil
}
