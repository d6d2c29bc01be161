package claim

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

	"github.com/Mkaniukov/carwash-crm/internal/infra/storage/memory"
	"github.com/Mkaniukov/carwash-crm/pkg/logger"
	"github.com/Mkaniukov/carwash-crm/pkg/txmanager"
)

func TestLocalLocker_MutualExclusion(t *testing.T) {
	locker := NewLocalLocker()

	var (
		inside  int32
		maxSeen int32
		wg      sync.WaitGroup
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background(), "schedule:1")
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			n := atomic.AddInt32(&inside, 1)
			for {
				seen := atomic.LoadInt32(&maxSeen)
				if n <= seen || atomic.CompareAndSwapInt32(&maxSeen, seen, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen)
	assert.Equal(t, 0, locker.Size(), "unused keys are dropped")
}

func TestLocalLocker_ContextCancel(t *testing.T) {
	locker := NewLocalLocker()

	unlock, err := locker.Lock(context.Background(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = locker.Lock(ctx, "k")
	assert.ErrorIs(t, err, ErrLockNotAcquired)

	// другой ключ свободен
	otherUnlock, err := locker.Lock(context.Background(), "other")
	require.NoError(t, err)
	otherUnlock()

	unlock()
	unlock() // повторный вызов безопасен
	assert.Equal(t, 0, locker.Size())
}

func TestRedisLocker(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	locker := NewRedisLocker(client, time.Second, 5*time.Millisecond, logger.NewNop())

	t.Run("AcquireAndRelease", func(t *testing.T) {
		unlock, err := locker.Lock(context.Background(), "schedule:1")
		require.NoError(t, err)
		assert.True(t, s.Exists(redisLockPrefix+"schedule:1"))

		unlock()
		assert.False(t, s.Exists(redisLockPrefix+"schedule:1"))
	})

	t.Run("SecondWaiterTimesOut", func(t *testing.T) {
		unlock, err := locker.Lock(context.Background(), "schedule:2")
		require.NoError(t, err)
		defer unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()

		_, err = locker.Lock(ctx, "schedule:2")
		assert.ErrorIs(t, err, ErrLockNotAcquired)
	})

	t.Run("WaiterAcquiresAfterRelease", func(t *testing.T) {
		unlock, err := locker.Lock(context.Background(), "schedule:3")
		require.NoError(t, err)

		acquired := make(chan struct{})
		go func() {
			second, err := locker.Lock(context.Background(), "schedule:3")
			if err == nil {
				second()
			}
			close(acquired)
		}()

		time.Sleep(20 * time.Millisecond)
		unlock()

		select {
		case <-acquired:
		case <-time.After(time.Second):
			t.Fatal("waiter did not acquire the lock")
		}
	})

	t.Run("ReleaseDoesNotStealForeignLock", func(t *testing.T) {
		unlock, err := locker.Lock(context.Background(), "schedule:4")
		require.NoError(t, err)

		// ключ истёк и его взял другой владелец
		s.FastForward(2 * time.Second)
		require.NoError(t, s.Set(redisLockPrefix+"schedule:4", "someone-else"))

		unlock()
		value, err := s.Get(redisLockPrefix + "schedule:4")
		require.NoError(t, err)
		assert.Equal(t, "someone-else", value)
	})

	t.Run("RedisDown", func(t *testing.T) {
		broken := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 50 * time.Millisecond})
		defer broken.Close()

		_, err := NewRedisLocker(broken, time.Second, 0, logger.NewNop()).Lock(context.Background(), "schedule:5")
		assert.ErrorIs(t, err, ErrLockNotAcquired)
	})
}

func TestGuard_WithRedisLocker(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	store := &slowStore{BookingStore: memory.NewBookingStore(), delay: time.Millisecond}
	guard := NewGuard(store, NewRedisLocker(client, time.Second, time.Millisecond, logger.NewNop()), txmanager.Nop{}, 2*time.Second, logger.NewNop())

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := guard.TryClaimSlot(context.Background(), 7, at(14, 0), 30, draft("racer")); err == nil {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
}
