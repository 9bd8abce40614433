package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runLockerContract(t *testing.T, l Locker) {
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "round-1")
	require.NoError(t, err)

	// a different key is independent
	other, err := l.Lock(ctx, "round-2")
	require.NoError(t, err)
	require.NoError(t, other(ctx))

	// the same key blocks until the context ends
	short, cancel := context.WithTimeout(ctx, 150*time.Millisecond)
	defer cancel()
	_, err = l.Lock(short, "round-1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))
	again, err := l.Lock(ctx, "round-1")
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}

func TestMemoryLocker_Contract(t *testing.T) {
	l := NewMemoryLocker()
	runLockerContract(t, l)
	assert.Equal(t, 0, l.size(), "idle keys are dropped")
}

func TestMemoryLocker_Serializes(t *testing.T) {
	l := NewMemoryLocker()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx, "k")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			inside++
			maxSeen = max(maxSeen, inside)
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inside--
			mu.Unlock()
			_ = unlock(ctx)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, 0, l.size())
}

func TestMemoryLocker_UnlockTwice(t *testing.T) {
	l := NewMemoryLocker()
	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	require.NoError(t, unlock(context.Background()))
	require.NoError(t, unlock(context.Background()))
	assert.Equal(t, 0, l.size())
}

func TestRedisLocker_Contract(t *testing.T) {
	mr, client := newMiniredis(t)
	l := NewRedisLocker(client, "test:", time.Second)
	runLockerContract(t, l)
	assert.False(t, mr.Exists("test:lock:round-1"))
}

func TestRedisLocker_ExpiredLockIsNotStolen(t *testing.T) {
	mr, client := newMiniredis(t)
	ctx := context.Background()
	a := NewRedisLocker(client, "test:", time.Second)

	unlockA, err := a.Lock(ctx, "k")
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)

	// a second holder takes over after expiry
	unlockB, err := a.Lock(ctx, "k")
	require.NoError(t, err)

	// the first holder's release must not delete the second holder's key
	assert.ErrorIs(t, unlockA(ctx), ErrLockLost)
	assert.True(t, mr.Exists("test:lock:k"))
	require.NoError(t, unlockB(ctx))
	assert.False(t, mr.Exists("test:lock:k"))
}
