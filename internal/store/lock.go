// internal/store/lock.go
//
// Per-round mutual exclusion.
// Responsibilities:
//   - MemoryLocker: keyed mutex for a single process; entries are dropped
//     when the last holder or waiter leaves.
//   - RedisLocker: SET NX lease with a random token, polled until acquired;
//     unlock deletes the key only while the token still matches.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"
)

// UnlockFunc releases a lock. Calling it more than once is harmless.
type UnlockFunc func(ctx context.Context) error

// Locker serializes work on one key (a round ID) across goroutines, or
// across processes for the Redis implementation.
type Locker interface {
	Lock(ctx context.Context, key string) (UnlockFunc, error)
}

// MemoryLocker is a keyed mutex. Entries are dropped once nobody holds or
// waits for them.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: make(map[string]*keyLock)}
}

func (l *MemoryLocker) Lock(ctx context.Context, key string) (UnlockFunc, error) {
	l.mu.Lock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		l.locks[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	select {
	case kl.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, kl)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			<-kl.ch
			l.release(key, kl)
		})
		return nil
	}, nil
}

func (l *MemoryLocker) release(key string, kl *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, key)
	}
}

func (l *MemoryLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

const (
	// DefaultLockTTL bounds how long a crashed holder can block a round.
	DefaultLockTTL = 5 * time.Second
	lockPoll       = 50 * time.Millisecond
)

var ErrLockLost = errors.New("store: lock expired before release")

// Deletes the key only if it still holds our token.
var unlockScript = backend.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker acquires locks with SET NX PX and polls until the context
// is done.
type RedisLocker struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

func NewRedisLocker(client *backend.Client, prefix string, ttl time.Duration) *RedisLocker {
	if prefix == "" {
		prefix = "wordle:"
	}
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &RedisLocker{client: client, prefix: prefix, ttl: ttl}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (UnlockFunc, error) {
	lockKey := l.prefix + "lock:" + key
	token := uuid.NewString()

	ticker := time.NewTicker(lockPoll)
	defer ticker.Stop()
	for {
		ok, err := l.client.SetNX(ctx, lockKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("store: acquire lock: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	var once sync.Once
	return func(ctx context.Context) error {
		var err error
		once.Do(func() {
			var n int64
			n, err = unlockScript.Run(ctx, l.client, []string{lockKey}, token).Int64()
			if err == nil && n == 0 {
				err = ErrLockLost
			}
		})
		return err
	}, nil
}
