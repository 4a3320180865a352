package cache

import (
	"context"
	"sync"
	"time"
)

// LocalShopLocker implements ShopLocker in process memory. It is used in
// single-instance deployments and tests where Redis is not available.
type LocalShopLocker struct {
	mu    sync.Mutex
	locks map[string]time.Time // shop key -> lock expiry
}

// NewLocalShopLocker creates an in-memory shop locker.
func NewLocalShopLocker() *LocalShopLocker {
	return &LocalShopLocker{
		locks: make(map[string]time.Time),
	}
}

// Acquire takes the per-shop lock unless a non-expired lock is held.
func (l *LocalShopLocker) Acquire(_ context.Context, shopKey string, ttl time.Duration) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if expiry, held := l.locks[shopKey]; held && time.Now().Before(expiry) {
		return nil, false, nil
	}
	l.locks[shopKey] = time.Now().Add(ttl)

	release := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.locks, shopKey)
	}
	return release, true, nil
}
