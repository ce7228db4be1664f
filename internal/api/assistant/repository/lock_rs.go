package assistantRepository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type heldLock struct {
	token string
	until time.Time
}

// MemoryLock is the single-process query lock used when Redis is not
// configured. It has the same contract as the Redis lock: acquire fails
// while an unexpired holder exists, and release only frees the lock for
// the token that acquired it.
type MemoryLock struct {
	mu    sync.Mutex
	held  map[string]heldLock
	clock func() time.Time
}

func NewMemoryLock() *MemoryLock {
	return &MemoryLock{
		held:  make(map[string]heldLock),
		clock: time.Now,
	}
}

func (l *MemoryLock) AcquireQueryLock(_ context.Context, key string, expiration time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if h, ok := l.held[key]; ok && now.Before(h.until) {
		return "", false, nil
	}

	token := uuid.NewString()
	l.held[key] = heldLock{token: token, until: now.Add(expiration)}
	return token, true, nil
}

func (l *MemoryLock) ReleaseQueryLock(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if h, ok := l.held[key]; ok && h.token == token {
		delete(l.held, key)
	}
	return nil
}
