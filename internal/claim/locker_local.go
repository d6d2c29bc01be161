package claim

import (
	"context"
	"fmt"
	"sync"
)

// LocalLocker блокировка по ключу в пределах одного процесса.
// Ожидание прерывается контекстом. Записи для ключей удаляются,
// когда их никто не держит и не ждёт.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	sem  chan struct{}
	refs int
}

// NewLocalLocker создает in-process locker
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]*keyLock)}
}

// Lock ждёт освобождения ключа или отмены контекста
func (l *LocalLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	kl := l.acquireRef(key)

	select {
	case kl.sem <- struct{}{}:
	case <-ctx.Done():
		l.releaseRef(key, kl)
		return nil, fmt.Errorf("%w: key=%s: %v", ErrLockNotAcquired, key, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-kl.sem
			l.releaseRef(key, kl)
		})
	}, nil
}

// Size количество ключей, которые сейчас заняты или ожидаются
func (l *LocalLocker) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func (l *LocalLocker) acquireRef(key string) *keyLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{sem: make(chan struct{}, 1)}
		l.locks[key] = kl
	}
	kl.refs++
	return kl
}

func (l *LocalLocker) releaseRef(key string, kl *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, key)
	}
}
