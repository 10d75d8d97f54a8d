package lock

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Scope grants exclusive access to a key while claim/deposit state is
// checked and mutated. The claim authorizer acquires a scope around every
// check-then-act sequence; without it two concurrent claims could both
// pass the cooldown check before either writes back.
type Scope interface {
	// Acquire blocks until the key is held or ctx is done. The returned
	// release func must be called exactly once.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// LocalScope is the in-process fallback: one mutex per key. Sufficient for
// a single instance; multi-instance deployments need RedisScope. Entries
// are refcounted and dropped from the map once no caller holds or waits on
// them, so the map stays proportional to in-flight work.
type LocalScope struct {
	mu    sync.Mutex
	locks map[string]*localLock
}

type localLock struct {
	mu   sync.Mutex
	refs int
}

func NewLocalScope() *LocalScope {
	return &LocalScope{locks: make(map[string]*localLock)}
}

func (s *LocalScope) Acquire(ctx context.Context, key string) (func(), error) {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &localLock{}
		s.locks[key] = l
	}
	l.refs++
	s.mu.Unlock()

	release := func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, key)
		}
		s.mu.Unlock()
	}

	locked := make(chan struct{})
	go func() {
		l.mu.Lock()
		close(locked)
	}()

	select {
	case <-locked:
		return release, nil
	case <-ctx.Done():
		// the goroutine will eventually grab and immediately drop the lock
		go func() {
			<-locked
			release()
		}()
		return nil, ctx.Err()
	}
}

// RedisScope holds locks in redis via SET NX with a TTL, so concurrent
// instances exclude each other. The TTL bounds how long a crashed holder
// can wedge an address.
type RedisScope struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
}

func NewRedisScope(client *redis.Client, ttl time.Duration) *RedisScope {
	if ttl == 0 {
		ttl = 30 * time.Second
	}
	return &RedisScope{
		client: client,
		ttl:    ttl,
		retry:  50 * time.Millisecond,
	}
}

func (s *RedisScope) Acquire(ctx context.Context, key string) (func(), error) {
	redisKey := "lock:" + key

	for {
		ok, err := s.client.SetNX(ctx, redisKey, 1, s.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				// release uses a fresh context: the request ctx may
				// already be cancelled by the time we unlock
				releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				s.client.Del(releaseCtx, redisKey)
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.retry):
		}
	}
}
