package ratelimit

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/telekom/job-container-naming/pkg/apiresponses"
	"github.com/telekom/job-container-naming/pkg/metrics"
)

// Config holds rate limiter configuration
type Config struct {
	// Rate is the number of requests allowed per second
	Rate float64
	// Burst is the maximum number of requests allowed in a burst
	Burst int
	// CleanupInterval is how often to clean up stale entries
	CleanupInterval time.Duration
	// MaxAge is how long to keep an entry after last access
	MaxAge time.Duration
}

// Enabled reports whether cfg limits anything.
func (cfg Config) Enabled() bool {
	return cfg.Rate > 0 && cfg.Burst > 0
}

type entry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// ClientLimiter rate limits requests per client IP and forgets clients that
// have been idle for longer than MaxAge.
type ClientLimiter struct {
	mu       sync.Mutex
	entries  map[string]*entry
	config   Config
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a per-client limiter and starts its cleanup goroutine. Call
// Stop to release it.
func New(cfg Config) *ClientLimiter {
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Minute
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 5 * time.Minute
	}

	rl := &ClientLimiter{
		entries: make(map[string]*entry),
		config:  cfg,
		done:    make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Allow checks if a request from the given client should be allowed
func (rl *ClientLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	e, exists := rl.entries[client]
	if !exists {
		e = &entry{limiter: rate.NewLimiter(rate.Limit(rl.config.Rate), rl.config.Burst)}
		rl.entries[client] = e
	}
	e.lastAccess = time.Now()
	return e.limiter.Allow()
}

// Middleware returns a Gin middleware that rejects clients over their limit
// with 429.
func (rl *ClientLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			metrics.ContainerNameErrors.WithLabelValues("rate_limited").Inc()
			apiresponses.RespondTooManyRequests(c)
			return
		}
		c.Next()
	}
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (rl *ClientLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

func (rl *ClientLimiter) cleanup() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.cleanupStaleEntries(time.Now())
		}
	}
}

func (rl *ClientLimiter) cleanupStaleEntries(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for client, e := range rl.entries {
		if now.Sub(e.lastAccess) > rl.config.MaxAge {
			delete(rl.entries, client)
		}
	}
}

// Len returns the current number of tracked clients
func (rl *ClientLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.entries)
}
