// Package ownerlock serializes read-modify-write work on a single owner's
// account across requests and instances.
package ownerlock

import (
	"context"
	"errors"
	"time"
)

var ErrNotAcquired = errors.New("ownerlock: lock not acquired")

// a held lock
type Lock interface {
	Release(ctx context.Context) error
}

// hands out exclusive per-key locks; Acquire blocks until the lock is free or
// ctx is done
type Locker interface {
	Acquire(ctx context.Context, key string) (Lock, error)
}

const (
	// lock expiry, bounds how long a crashed holder can block an owner
	DefaultTTL = 30 * time.Second

	// delay between acquisition attempts
	DefaultRetryInterval = 25 * time.Millisecond
)
