package claim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultLockTTL       = 10 * time.Second
	defaultRetryInterval = 25 * time.Millisecond
	redisLockPrefix      = "carwash:lock:"
)

// Снимаем ключ только если он всё ещё принадлежит нам
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker распределённая блокировка на SET NX PX с уникальным токеном владельца.
// Нужна, когда сервис запущен в нескольких экземплярах.
type RedisLocker struct {
	client        *redis.Client
	ttl           time.Duration
	retryInterval time.Duration
	logger        Logger
}

// NewRedisLocker создает locker. ttl страхует от зависших блокировок упавших экземпляров
// и должен быть больше таймаута захвата слота.
func NewRedisLocker(client *redis.Client, ttl, retryInterval time.Duration, logger Logger) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	if retryInterval <= 0 {
		retryInterval = defaultRetryInterval
	}
	return &RedisLocker{
		client:        client,
		ttl:           ttl,
		retryInterval: retryInterval,
		logger:        logger,
	}
}

// Lock повторяет SET NX до успеха или отмены контекста
func (l *RedisLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	redisKey := redisLockPrefix + key
	token := uuid.NewString()

	for {
		acquired, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: key=%s: %v", ErrLockNotAcquired, key, err)
		}
		if acquired {
			break
		}

		timer := time.NewTimer(l.retryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("%w: key=%s: %v", ErrLockNotAcquired, key, ctx.Err())
		case <-timer.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// контекст вызова мог уже истечь, а ключ нужно снять в любом случае
			releaseCtx, cancel := context.WithTimeout(context.Background(), l.ttl)
			defer cancel()

			if err := releaseScript.Run(releaseCtx, l.client, []string{redisKey}, token).Err(); err != nil {
				l.logger.Error("RedisLocker: failed to release key=%s: %v", redisKey, err)
			}
		})
	}, nil
}
