package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/greysolve/outreach-console/utils"
	"go.uber.org/zap"
)

const (
	bucketIdleThreshold = time.Hour
	cleanupInterval     = 30 * time.Minute
)

type clientBucket struct {
	tokens     int
	lastRefill time.Time
}

// RateLimiter is a per-client token bucket refilled once per window
type RateLimiter struct {
	mu       sync.Mutex
	capacity int
	window   time.Duration
	clients  map[string]*clientBucket
	now      func() time.Time
	logger   *zap.Logger

	stopCleanup chan struct{}
	stopOnce    sync.Once
	done        chan struct{}
}

// NewRateLimiter creates a limiter allowing capacity requests per window for
// each client. Stop must be called to release the cleanup goroutine.
func NewRateLimiter(capacity int, window time.Duration, logger *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		capacity:    capacity,
		window:      window,
		clients:     make(map[string]*clientBucket),
		now:         time.Now,
		logger:      logger,
		stopCleanup: make(chan struct{}),
		done:        make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *RateLimiter) cleanupLoop() {
	defer close(rl.done)

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, bucket := range rl.clients {
		if now.Sub(bucket.lastRefill) > bucketIdleThreshold {
			delete(rl.clients, key)
		}
	}
}

// Stop ends the cleanup goroutine and waits for it to exit
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCleanup) })
	<-rl.done
}

// Allow takes a token for key and returns false when none is left, along
// with the time the bucket refills
func (rl *RateLimiter) Allow(key string) (bool, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	bucket, exists := rl.clients[key]
	if !exists {
		rl.clients[key] = &clientBucket{tokens: rl.capacity - 1, lastRefill: now}
		return true, now.Add(rl.window)
	}

	if now.Sub(bucket.lastRefill) >= rl.window {
		bucket.tokens = rl.capacity
		bucket.lastRefill = now
	}
	resetAt := bucket.lastRefill.Add(rl.window)

	if bucket.tokens <= 0 {
		return false, resetAt
	}
	bucket.tokens--
	return true, resetAt
}

// Middleware rejects requests from clients that exhausted their bucket
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		allowed, resetAt := rl.Allow(ip)
		if !allowed {
			retryAfter := int(resetAt.Sub(rl.now()).Seconds()) + 1
			rl.logger.Warn("rate limit exceeded",
				zap.String("request_id", GetRequestIDFromContext(r.Context())),
				zap.String("remote_ip", ip),
				zap.String("path", r.URL.Path))

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			_ = utils.WriteTooManyRequests(w, "", map[string]interface{}{
				"limit":    rl.capacity,
				"window":   rl.window.String(),
				"reset_at": resetAt.UTC().Format(time.RFC3339),
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
