package ownerlock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() }) //nolint:errcheck // test cleanup

	return NewRedisLocker(client, time.Second), mr
}

// runs the same exclusivity check against every implementation
func lockers(t *testing.T) map[string]Locker {
	redisLocker, _ := setupRedisLocker(t)

	return map[string]Locker{
		"memory": NewMemoryLocker(),
		"redis":  redisLocker,
	}
}

func TestLocker_MutualExclusion(t *testing.T) {
	for name, locker := range lockers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			var inside, maxInside int32
			var wg sync.WaitGroup

			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()

					lock, err := locker.Acquire(ctx, "a@example.com")
					if !assert.NoError(t, err) {
						return
					}

					n := atomic.AddInt32(&inside, 1)
					for {
						m := atomic.LoadInt32(&maxInside)
						if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
							break
						}
					}

					time.Sleep(2 * time.Millisecond)
					atomic.AddInt32(&inside, -1)

					assert.NoError(t, lock.Release(ctx))
				}()
			}

			wg.Wait()
			assert.Equal(t, int32(1), maxInside)
		})
	}
}

func TestLocker_TimesOutWhileHeld(t *testing.T) {
	for name, locker := range lockers(t) {
		t.Run(name, func(t *testing.T) {
			held, err := locker.Acquire(context.Background(), "a@example.com")
			require.NoError(t, err)
			defer held.Release(context.Background()) //nolint:errcheck // test cleanup

			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			_, err = locker.Acquire(ctx, "a@example.com")
			assert.ErrorIs(t, err, ErrNotAcquired)
			assert.ErrorIs(t, err, context.DeadlineExceeded)
		})
	}
}

func TestLocker_IndependentKeys(t *testing.T) {
	for name, locker := range lockers(t) {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			a, err := locker.Acquire(ctx, "a@example.com")
			require.NoError(t, err)

			b, err := locker.Acquire(ctx, "b@example.com")
			require.NoError(t, err)

			assert.NoError(t, a.Release(ctx))
			assert.NoError(t, b.Release(ctx))
		})
	}
}

func TestRedisLocker_ReleaseKeepsForeignLock(t *testing.T) {
	locker, mr := setupRedisLocker(t)
	ctx := context.Background()

	lock, err := locker.Acquire(ctx, "a@example.com")
	require.NoError(t, err)

	// our lock expires and another holder takes the key
	mr.FastForward(2 * time.Second)
	other, err := locker.Acquire(ctx, "a@example.com")
	require.NoError(t, err)

	require.NoError(t, lock.Release(ctx))
	assert.True(t, mr.Exists("billing:owner_lock:a@example.com"))

	require.NoError(t, other.Release(ctx))
	assert.False(t, mr.Exists("billing:owner_lock:a@example.com"))
}

func TestMemoryLocker_DropsIdleSlots(t *testing.T) {
	locker := NewMemoryLocker()
	ctx := context.Background()

	lock, err := locker.Acquire(ctx, "a@example.com")
	require.NoError(t, err)
	require.NoError(t, lock.Release(ctx))
	require.NoError(t, lock.Release(ctx))

	locker.mu.Lock()
	defer locker.mu.Unlock()
	assert.Empty(t, locker.slots)
}
