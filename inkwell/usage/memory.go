package usage

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository keeps usage records in process memory
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string][]Record
	nextID  int64
}

// creates an empty in-memory usage store
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string][]Record)}
}

// appends a usage record
func (m *MemoryRepository) Append(_ context.Context, rec NewRecord) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++

	out := Record{
		ID:           m.nextID,
		OwnerEmail:   rec.OwnerEmail,
		TemplateSlug: rec.TemplateSlug,
		CreatedAt:    time.Now(),
	}

	if rec.Response != nil {
		resp := *rec.Response
		out.Response = &resp
	}

	m.records[rec.OwnerEmail] = append(m.records[rec.OwnerEmail], out)
	return &out, nil
}

// lists every record for an owner, oldest first
func (m *MemoryRepository) ListByOwner(_ context.Context, email string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Record, len(m.records[email]))
	copy(out, m.records[email])
	return out, nil
}
