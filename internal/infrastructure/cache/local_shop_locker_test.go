package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalShopLocker_AcquireAndRelease(t *testing.T) {
	locker := NewLocalShopLocker()
	ctx := context.Background()

	release, acquired, err := locker.Acquire(ctx, "shop-a", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	// Second acquire on the same shop fails while held
	_, acquired, err = locker.Acquire(ctx, "shop-a", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired)

	// A different shop is independent
	releaseB, acquired, err := locker.Acquire(ctx, "shop-b", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
	releaseB()

	release()

	// After release the lock is available again
	release2, acquired, err := locker.Acquire(ctx, "shop-a", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
	release2()
}

func TestLocalShopLocker_ExpiredLockIsTakenOver(t *testing.T) {
	locker := NewLocalShopLocker()
	ctx := context.Background()

	_, acquired, err := locker.Acquire(ctx, "shop-a", time.Nanosecond)
	require.NoError(t, err)
	require.True(t, acquired)

	time.Sleep(time.Millisecond)

	release, acquired, err := locker.Acquire(ctx, "shop-a", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
	release()
}

func TestLocalShopLocker_ConcurrentAcquire(t *testing.T) {
	locker := NewLocalShopLocker()
	ctx := context.Background()

	const workers = 20
	wins := make(chan struct{}, workers)
	done := make(chan struct{})

	for i := 0; i < workers; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			_, acquired, err := locker.Acquire(ctx, "shop-a", time.Minute)
			require.NoError(t, err)
			if acquired {
				wins <- struct{}{}
			}
		}()
	}
	for i := 0; i < workers; i++ {
		<-done
	}
	close(wins)

	count := 0
	for range wins {
		count++
	}
	assert.Equal(t, 1, count, "exactly one worker should win the lock")
}
