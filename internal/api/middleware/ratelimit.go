package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Mkaniukov/carwash-crm/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

// RateLimiter ограничивает частоту запросов с одного IP
type RateLimiter struct {
	limiters sync.Map // ip -> *visitor
	rps      rate.Limit
	burst    int
	idleTTL  time.Duration
}

type visitor struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

// NewRateLimiter создает ограничитель: rps запросов в секунду с запасом burst
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		idleTTL: 10 * time.Minute,
	}
}

// Limit middleware для gorilla/mux
func (l *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientIP(r), time.Now()) {
			w.Header().Set("Retry-After", "60")
			handlers.RespondTooManyRequests(w, msgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) allow(ip string, now time.Time) bool {
	v := l.getVisitor(ip)
	v.mu.Lock()
	v.lastSeen = now
	v.mu.Unlock()
	return v.limiter.AllowN(now, 1)
}

func (l *RateLimiter) getVisitor(ip string) *visitor {
	if v, ok := l.limiters.Load(ip); ok {
		return v.(*visitor)
	}
	actual, _ := l.limiters.LoadOrStore(ip, &visitor{limiter: rate.NewLimiter(l.rps, l.burst)})
	return actual.(*visitor)
}

// Cleanup удаляет давно неактивные IP
func (l *RateLimiter) Cleanup(now time.Time) int {
	removed := 0
	l.limiters.Range(func(key, value interface{}) bool {
		v := value.(*visitor)
		v.mu.Lock()
		idle := now.Sub(v.lastSeen) > l.idleTTL
		v.mu.Unlock()
		if idle {
			l.limiters.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// RunCleanup периодически вызывает Cleanup до закрытия stop
func (l *RateLimiter) RunCleanup(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			l.Cleanup(now)
		}
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
