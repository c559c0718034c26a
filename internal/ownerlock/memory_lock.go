package ownerlock

import (
	"context"
	"fmt"
	"sync"
)

// MemoryLocker implements Locker inside one process
type MemoryLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

// creates an in-process locker
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{slots: make(map[string]*slot)}
}

type memoryLock struct {
	locker *MemoryLocker
	key    string
	once   sync.Once
}

// blocks until the owner lock is held or ctx ends
func (l *MemoryLocker) Acquire(ctx context.Context, key string) (Lock, error) {
	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
		return &memoryLock{locker: l, key: key}, nil
	case <-ctx.Done():
		l.unref(key)
		return nil, fmt.Errorf("%w: %w", ErrNotAcquired, ctx.Err())
	}
}

func (l *MemoryLocker) unref(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := l.slots[key]
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

// releases the lock; extra calls are no-ops
func (m *memoryLock) Release(_ context.Context) error {
	m.once.Do(func() {
		m.locker.mu.Lock()
		s := m.locker.slots[m.key]
		m.locker.mu.Unlock()

		<-s.ch
		m.locker.unref(m.key)
	})

	return nil
}
