package payments

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository keeps the payment ledger in process memory
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []Entry
	byTxn   map[string]int
}

// creates an empty in-memory ledger
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byTxn: make(map[string]int)}
}

// records a payment; fills ID and CreatedAt when empty
func (m *MemoryRepository) Append(_ context.Context, e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byTxn[e.TransactionID]; exists {
		return ErrDuplicateTransaction
	}

	prepare(e)
	m.byTxn[e.TransactionID] = len(m.entries)
	m.entries = append(m.entries, *e)
	return nil
}

// finds the entry for a provider transaction id; returns nil when absent
func (m *MemoryRepository) FindByTransactionID(_ context.Context, transactionID string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.byTxn[transactionID]
	if !ok {
		return nil, nil
	}

	e := m.entries[i]
	return &e, nil
}

// lists the most recent payments of an owner; limit <= 0 means DefaultListLimit
func (m *MemoryRepository) ListByPayer(_ context.Context, email string, limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []Entry{}
	for _, e := range m.entries {
		if e.PayerEmail == email {
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit = listLimit(limit); len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}
