package utils

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	NewID() (string, error)
}

// utils keeps one monotonic entropy source so ids minted within the same
// millisecond still sort in creation order.
type utils struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func New() IUtils {
	return &utils{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t), u.entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) NewID() (string, error) {
	return u.NewULIDFromTimestamp(time.Now())
}
